package services

import (
	"context"
	"fmt"

	"github.com/edu-certificate/app/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// HybridLectureCache kết hợp cache in-process (L1) + Redis (L2)
type HybridLectureCache struct {
	local  ILectureCache // L1 - nhanh, theo instance
	shared ILectureCache // L2 - dùng chung giữa các instance
	logger *zap.Logger
}

// NewHybridLectureCache tạo mới hybrid cache
func NewHybridLectureCache(local, shared ILectureCache, logger *zap.Logger) *HybridLectureCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HybridLectureCache{
		local:  local,
		shared: shared,
		logger: logger,
	}
}

// Get lấy khóa học (L1 trước, L2 sau). Lỗi L2 được coi như miss.
func (hc *HybridLectureCache) Get(ctx context.Context, id int64) (*models.Lecture, bool, error) {
	// 1. L1
	lecture, found, err := hc.local.Get(ctx, id)
	if err == nil && found {
		return lecture, true, nil
	}

	// 2. L2
	lecture, found, err = hc.shared.Get(ctx, id)
	if err != nil {
		hc.logger.Warn("Lỗi L2 cache, coi như miss", zap.Error(err), zap.Int64("lecture_id", id))
		return nil, false, nil
	}
	if !found {
		return nil, false, nil
	}

	// 3. Đồng bộ lên L1
	if err := hc.local.Set(ctx, lecture); err != nil {
		hc.logger.Warn("Lỗi sync L2->L1", zap.Error(err), zap.Int64("lecture_id", id))
	}
	return lecture, true, nil
}

// Set lưu vào cả 2 tầng song song
func (hc *HybridLectureCache) Set(ctx context.Context, lecture *models.Lecture) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hc.local.Set(gctx, lecture) })
	g.Go(func() error { return hc.shared.Set(gctx, lecture) })

	if err := g.Wait(); err != nil {
		return fmt.Errorf("lỗi lưu hybrid cache: %w", err)
	}
	return nil
}

// Delete xóa khỏi cả 2 tầng
func (hc *HybridLectureCache) Delete(ctx context.Context, id int64) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return hc.local.Delete(gctx, id) })
	g.Go(func() error { return hc.shared.Delete(gctx, id) })

	if err := g.Wait(); err != nil {
		return fmt.Errorf("lỗi xóa hybrid cache: %w", err)
	}
	return nil
}

// GetStats cộng thống kê 2 tầng; một tầng lỗi thì dùng tầng còn lại
func (hc *HybridLectureCache) GetStats(ctx context.Context) (*CacheStats, error) {
	localStats, localErr := hc.local.GetStats(ctx)
	sharedStats, sharedErr := hc.shared.GetStats(ctx)

	switch {
	case localErr != nil && sharedErr != nil:
		return nil, fmt.Errorf("cả L1 và L2 đều lỗi: %v, %v", localErr, sharedErr)
	case localErr != nil:
		return sharedStats, nil
	case sharedErr != nil:
		return localStats, nil
	}

	return newCacheStats(
		localStats.TotalHits+sharedStats.TotalHits,
		localStats.TotalMiss+sharedStats.TotalMiss,
		sharedStats.TotalItems,
	), nil
}

// Close đóng cả 2 tầng
func (hc *HybridLectureCache) Close() error {
	localErr := hc.local.Close()
	sharedErr := hc.shared.Close()
	if localErr != nil || sharedErr != nil {
		return fmt.Errorf("close errors: %v, %v", localErr, sharedErr)
	}
	return nil
}

package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/edu-certificate/app/models"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
)

// LocalLectureCache cache in-process: LRU có TTL
type LocalLectureCache struct {
	lru    *expirable.LRU[int64, models.Lecture]
	logger *zap.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

// NewLocalLectureCache tạo cache với tối đa size phần tử, mỗi phần tử sống ttl
func NewLocalLectureCache(size int, ttl time.Duration, logger *zap.Logger) *LocalLectureCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if size <= 0 {
		size = 1000
	}
	return &LocalLectureCache{
		lru:    expirable.NewLRU[int64, models.Lecture](size, nil, ttl),
		logger: logger,
	}
}

// Get lấy khóa học từ LRU
func (lc *LocalLectureCache) Get(_ context.Context, id int64) (*models.Lecture, bool, error) {
	lecture, ok := lc.lru.Get(id)
	if !ok {
		lc.misses.Add(1)
		return nil, false, nil
	}
	lc.hits.Add(1)
	return &lecture, true, nil
}

// Set lưu bản sao khóa học
func (lc *LocalLectureCache) Set(_ context.Context, lecture *models.Lecture) error {
	lc.lru.Add(lecture.ID, *lecture)
	return nil
}

// Delete xóa khóa học khỏi LRU
func (lc *LocalLectureCache) Delete(_ context.Context, id int64) error {
	lc.lru.Remove(id)
	return nil
}

// GetStats thống kê LRU
func (lc *LocalLectureCache) GetStats(_ context.Context) (*CacheStats, error) {
	return newCacheStats(lc.hits.Load(), lc.misses.Load(), int64(lc.lru.Len())), nil
}

// Close không cần làm gì
func (lc *LocalLectureCache) Close() error {
	return nil
}

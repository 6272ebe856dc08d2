package services

import (
	"context"

	"github.com/edu-certificate/app/models"
	"go.uber.org/zap"
)

// CachedLectureStore đọc khóa học qua cache trước khi xuống store (MongoDB).
// Khóa học không tồn tại thì không cache.
type CachedLectureStore struct {
	store  LectureStore
	cache  ILectureCache
	logger *zap.Logger
}

// NewCachedLectureStore tạo store có cache
func NewCachedLectureStore(store LectureStore, cache ILectureCache, logger *zap.Logger) *CachedLectureStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedLectureStore{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// FindByID lấy khóa học theo id
func (s *CachedLectureStore) FindByID(ctx context.Context, id int64) (*models.Lecture, bool, error) {
	lecture, found, err := s.cache.Get(ctx, id)
	if err != nil {
		s.logger.Warn("Lỗi đọc lecture cache, fallback store", zap.Error(err), zap.Int64("lecture_id", id))
	} else if found {
		return lecture, true, nil
	}

	lecture, found, err = s.store.FindByID(ctx, id)
	if err != nil || !found {
		return nil, found, err
	}

	if err := s.cache.Set(ctx, lecture); err != nil {
		s.logger.Warn("Lỗi lưu lecture cache", zap.Error(err), zap.Int64("lecture_id", id))
	}
	return lecture, true, nil
}

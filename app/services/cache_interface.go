package services

import (
	"context"

	"github.com/edu-certificate/app/models"
)

// CacheStats thống kê cache
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

func newCacheStats(hits, misses, items int64) *CacheStats {
	stats := &CacheStats{TotalHits: hits, TotalMiss: misses, TotalItems: items}
	if total := hits + misses; total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}
	return stats
}

// ILectureCache cache khóa học theo id
type ILectureCache interface {
	// Get lấy khóa học từ cache
	Get(ctx context.Context, id int64) (*models.Lecture, bool, error)

	// Set lưu khóa học vào cache
	Set(ctx context.Context, lecture *models.Lecture) error

	// Delete xóa khóa học khỏi cache
	Delete(ctx context.Context, id int64) error

	// GetStats lấy thống kê cache
	GetStats(ctx context.Context) (*CacheStats, error)

	// Close đóng kết nối (nếu cần)
	Close() error
}

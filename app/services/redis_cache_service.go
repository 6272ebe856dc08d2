package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/edu-certificate/app/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const lectureKeyPrefix = "edu_cert:lecture:"

// NewRedisClient parse URL và kiểm tra kết nối
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("lỗi parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("không thể kết nối Redis: %w", err)
	}
	return client, nil
}

// RedisLectureCache cache khóa học dùng chung giữa các instance
type RedisLectureCache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisLectureCache tạo mới Redis cache
func NewRedisLectureCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisLectureCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RedisLectureCache{
		client: client,
		logger: logger,
		ttl:    ttl,
	}
}

func lectureKey(id int64) string {
	return lectureKeyPrefix + strconv.FormatInt(id, 10)
}

// Get lấy khóa học từ Redis
func (rc *RedisLectureCache) Get(ctx context.Context, id int64) (*models.Lecture, bool, error) {
	key := lectureKey(id)

	val, err := rc.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		rc.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		rc.logger.Error("Lỗi get từ Redis", zap.Error(err), zap.String("key", key))
		return nil, false, err
	}

	var lecture models.Lecture
	if err := json.Unmarshal(val, &lecture); err != nil {
		rc.logger.Error("Lỗi unmarshal cache data", zap.Error(err), zap.String("key", key))
		return nil, false, err
	}

	rc.hits.Add(1)
	return &lecture, true, nil
}

// Set lưu khóa học vào Redis với TTL
func (rc *RedisLectureCache) Set(ctx context.Context, lecture *models.Lecture) error {
	data, err := json.Marshal(lecture)
	if err != nil {
		return fmt.Errorf("lỗi marshal cache data: %w", err)
	}

	if err := rc.client.Set(ctx, lectureKey(lecture.ID), data, rc.ttl).Err(); err != nil {
		rc.logger.Error("Lỗi set vào Redis", zap.Error(err), zap.Int64("lecture_id", lecture.ID))
		return err
	}
	return nil
}

// Delete xóa khóa học khỏi Redis
func (rc *RedisLectureCache) Delete(ctx context.Context, id int64) error {
	return rc.client.Del(ctx, lectureKey(id)).Err()
}

// GetStats thống kê hit/miss của instance này; TotalItems đếm key theo prefix
func (rc *RedisLectureCache) GetStats(ctx context.Context) (*CacheStats, error) {
	var items int64
	iter := rc.client.Scan(ctx, 0, lectureKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		items++
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("lỗi scan Redis keys: %w", err)
	}

	return newCacheStats(rc.hits.Load(), rc.misses.Load(), items), nil
}

// Close đóng kết nối Redis
func (rc *RedisLectureCache) Close() error {
	return rc.client.Close()
}

package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/edu-certificate/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const lectureCollection = "lectures"

// LectureRepository đọc khóa học từ MongoDB
type LectureRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewLectureRepository tạo repository khóa học
func NewLectureRepository(db *mongo.Database, logger *zap.Logger) *LectureRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LectureRepository{
		collection: db.Collection(lectureCollection),
		logger:     logger,
	}
}

// FindByID lấy khóa học theo id
func (r *LectureRepository) FindByID(ctx context.Context, id int64) (*models.Lecture, bool, error) {
	var lecture models.Lecture
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&lecture)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lỗi query khóa học %d: %w", id, err)
	}
	return &lecture, true, nil
}

// Upsert thêm hoặc thay thế khóa học (dùng khi seed dữ liệu)
func (r *LectureRepository) Upsert(ctx context.Context, lecture *models.Lecture) error {
	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": lecture.ID}, lecture, opts); err != nil {
		return fmt.Errorf("lỗi upsert khóa học %d: %w", lecture.ID, err)
	}

	r.logger.Debug("Lecture upserted", zap.Int64("lecture_id", lecture.ID))
	return nil
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edu-certificate/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const certificateCollection = "certificates"

// CertificateRepository lưu chứng chỉ trong MongoDB.
// Unique index (member_id, lecture_id) là chốt chặn thật sự chống trùng;
// ExistsByMemberAndLecture chỉ để báo lỗi sớm.
type CertificateRepository struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewCertificateRepository tạo repository trên database cho trước
func NewCertificateRepository(db *mongo.Database, logger *zap.Logger) *CertificateRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CertificateRepository{
		collection: db.Collection(certificateCollection),
		logger:     logger,
	}
}

// EnsureIndexes tạo các index cần thiết, gọi một lần khi khởi động
func (r *CertificateRepository) EnsureIndexes(ctx context.Context) error {
	indexModels := []mongo.IndexModel{
		{
			Keys: bson.D{
				bson.E{Key: "member_id", Value: 1},
				bson.E{Key: "lecture_id", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_member_lecture"),
		},
		{
			Keys: bson.D{bson.E{Key: "approval_status", Value: 1}},
		},
	}

	if _, err := r.collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("lỗi tạo indexes cho %s: %w", certificateCollection, err)
	}
	return nil
}

// ExistsByMemberAndLecture kiểm tra member đã có chứng chỉ cho khóa học chưa
func (r *CertificateRepository) ExistsByMemberAndLecture(ctx context.Context, memberID, lectureID int64) (bool, error) {
	filter := bson.M{"member_id": memberID, "lecture_id": lectureID}
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})

	err := r.collection.FindOne(ctx, filter, opts).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lỗi kiểm tra chứng chỉ tồn tại: %w", err)
	}
	return true, nil
}

// Save thêm chứng chỉ mới. Trả ErrDuplicate nếu cặp (member, lecture) đã tồn tại.
func (r *CertificateRepository) Save(ctx context.Context, cert *models.Certificate) error {
	if cert.ID.IsZero() {
		cert.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, cert)
	if mongo.IsDuplicateKeyError(err) {
		r.logger.Warn("Certificate duplicate at insert",
			zap.Int64("member_id", cert.MemberID),
			zap.Int64("lecture_id", cert.LectureID))
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("lỗi lưu chứng chỉ: %w", err)
	}
	return nil
}

// FindByMemberAndLecture tìm chứng chỉ theo cặp (member, lecture)
func (r *CertificateRepository) FindByMemberAndLecture(ctx context.Context, memberID, lectureID int64) (*models.Certificate, bool, error) {
	return r.findOne(ctx, bson.M{"member_id": memberID, "lecture_id": lectureID})
}

// FindByID tìm chứng chỉ theo id
func (r *CertificateRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Certificate, bool, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *CertificateRepository) findOne(ctx context.Context, filter bson.M) (*models.Certificate, bool, error) {
	var cert models.Certificate
	err := r.collection.FindOne(ctx, filter).Decode(&cert)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lỗi query chứng chỉ: %w", err)
	}
	return &cert, true, nil
}

// UpdateStatus ghi trạng thái duyệt mới
func (r *CertificateRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ApprovalStatus, updatedAt time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"approval_status": status,
			"updated_at":      updatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("lỗi cập nhật trạng thái chứng chỉ: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

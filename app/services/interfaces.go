package services

import (
	"context"
	"time"

	"github.com/edu-certificate/app/models"
	"github.com/edu-certificate/internal/matcher"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OCRClient trích xuất các dòng chữ từ ảnh
type OCRClient interface {
	ExtractText(ctx context.Context, image []byte, fileName string) ([]string, error)
}

// FileStorage lưu file private, trả về key (không phải URL public)
type FileStorage interface {
	UploadPrivate(ctx context.Context, data []byte, category, fileName, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	Open(ctx context.Context, key string) ([]byte, error)
}

// CertificateStore lưu trữ chứng chỉ.
// Save phải trả repositories.ErrDuplicate khi vi phạm unique (member_id, lecture_id).
type CertificateStore interface {
	ExistsByMemberAndLecture(ctx context.Context, memberID, lectureID int64) (bool, error)
	Save(ctx context.Context, cert *models.Certificate) error
	FindByMemberAndLecture(ctx context.Context, memberID, lectureID int64) (*models.Certificate, bool, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Certificate, bool, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.ApprovalStatus, updatedAt time.Time) error
}

// LectureStore đọc khóa học
type LectureStore interface {
	FindByID(ctx context.Context, id int64) (*models.Lecture, bool, error)
}

// NameMatcher quyết định OCR có khớp tên khóa học không
type NameMatcher interface {
	Evaluate(lectureName string, ocrLines []string) matcher.MatchResult
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edu-certificate/app/models"
	"github.com/edu-certificate/app/repositories"
	"github.com/edu-certificate/internal/metrics"
	"go.uber.org/zap"
)

const (
	// CertificateCategory thư mục lưu ảnh chứng chỉ trong private storage
	CertificateCategory = "certificates"
	// DefaultMaxUploadBytes giới hạn kích thước ảnh mặc định (10 MiB)
	DefaultMaxUploadBytes = 10 << 20
)

var allowedContentTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/heic":      true,
	"application/pdf": true,
}

// VerifyRequest yêu cầu xác thực chứng chỉ của một member
type VerifyRequest struct {
	MemberID    int64
	LectureID   int64
	Image       []byte
	FileName    string
	ContentType string
}

// CertificateService xác thực ảnh chứng chỉ và tạo bản ghi chờ duyệt
type CertificateService struct {
	certificates   CertificateStore
	lectures       LectureStore
	ocr            OCRClient
	storage        FileStorage
	matcher        NameMatcher
	metrics        *metrics.Metrics
	logger         *zap.Logger
	maxUploadBytes int
	now            func() time.Time
}

// NewCertificateService tạo mới CertificateService
func NewCertificateService(
	certificates CertificateStore,
	lectures LectureStore,
	ocr OCRClient,
	storage FileStorage,
	matcher NameMatcher,
	logger *zap.Logger,
) *CertificateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CertificateService{
		certificates:   certificates,
		lectures:       lectures,
		ocr:            ocr,
		storage:        storage,
		matcher:        matcher,
		logger:         logger,
		maxUploadBytes: DefaultMaxUploadBytes,
		now:            time.Now,
	}
}

// SetMaxUploadBytes đổi giới hạn kích thước ảnh
func (cs *CertificateService) SetMaxUploadBytes(n int) {
	if n > 0 {
		cs.maxUploadBytes = n
	}
}

// SetMetrics gắn metrics (nil = tắt)
func (cs *CertificateService) SetMetrics(m *metrics.Metrics) {
	cs.metrics = m
}

// SetClock thay đồng hồ (dùng trong test)
func (cs *CertificateService) SetClock(now func() time.Time) {
	cs.now = now
}

// Verify chạy tuần tự: kiểm tra trùng → tìm khóa học → kiểm tra file → OCR → so khớp → upload → lưu.
// Bước nào lỗi thì dừng, không có bản ghi nào được lưu.
func (cs *CertificateService) Verify(ctx context.Context, req VerifyRequest) (*models.Certificate, error) {
	cert, outcome, err := cs.verify(ctx, req)
	cs.metrics.IncVerification(outcome)
	return cert, err
}

func (cs *CertificateService) verify(ctx context.Context, req VerifyRequest) (*models.Certificate, string, error) {
	log := cs.logger.With(
		zap.Int64("member_id", req.MemberID),
		zap.Int64("lecture_id", req.LectureID))

	// 1. Kiểm tra trùng để báo lỗi sớm; unique index mới là chốt chặn thật
	exists, err := cs.certificates.ExistsByMemberAndLecture(ctx, req.MemberID, req.LectureID)
	if err != nil {
		log.Error("Lỗi kiểm tra chứng chỉ tồn tại", zap.Error(err))
		return nil, metrics.OutcomeError, fmt.Errorf("lỗi kiểm tra chứng chỉ tồn tại: %w", err)
	}
	if exists {
		log.Info("Certificate already exists")
		return nil, metrics.OutcomeAlreadyExists, ErrCertificateAlreadyExists
	}

	// 2. Khóa học
	lecture, found, err := cs.lectures.FindByID(ctx, req.LectureID)
	if err != nil {
		log.Error("Lỗi tìm khóa học", zap.Error(err))
		return nil, metrics.OutcomeError, fmt.Errorf("lỗi tìm khóa học: %w", err)
	}
	if !found {
		log.Info("Lecture not found")
		return nil, metrics.OutcomeNotFound, ErrLectureNotFound
	}

	// 3. File upload
	if err := cs.validateImage(req); err != nil {
		log.Info("Invalid certificate image", zap.Error(err))
		return nil, metrics.OutcomeInvalidImage, err
	}

	// 4. OCR, không retry
	started := time.Now()
	lines, err := cs.ocr.ExtractText(ctx, req.Image, req.FileName)
	cs.metrics.ObserveOCRLatency(time.Since(started))
	if err != nil {
		log.Error("Lỗi OCR", zap.Error(err))
		return nil, metrics.OutcomeError, fmt.Errorf("lỗi OCR: %w", err)
	}

	// 5. So khớp tên khóa học
	result := cs.matcher.Evaluate(lecture.LectureName, lines)
	cs.metrics.IncMatchStage(string(result.Stage))
	if !result.Matched {
		log.Info("Certificate text does not match lecture",
			zap.String("stage", string(result.Stage)),
			zap.Float64("similarity", result.Similarity),
			zap.Int("edit_distance", result.EditDistance))
		return nil, metrics.OutcomeMismatch, ErrLectureMismatch
	}

	// 6. Upload ảnh
	key, err := cs.storage.UploadPrivate(ctx, req.Image, CertificateCategory, req.FileName, req.ContentType)
	if err != nil {
		log.Error("Lỗi upload ảnh chứng chỉ", zap.Error(err))
		return nil, metrics.OutcomeError, fmt.Errorf("lỗi upload ảnh chứng chỉ: %w", err)
	}

	// 7. Lưu ở trạng thái PENDING
	cert := models.NewCertificate(req.MemberID, req.LectureID, key, cs.now())
	if err := cs.certificates.Save(ctx, cert); err != nil {
		cs.deleteOrphan(log, key)

		if errors.Is(err, repositories.ErrDuplicate) {
			// Request song song đã lưu trước
			log.Info("Certificate already exists at persist")
			return nil, metrics.OutcomeAlreadyExists, ErrCertificateAlreadyExists
		}
		log.Error("Lỗi lưu chứng chỉ", zap.Error(err))
		return nil, metrics.OutcomeError, fmt.Errorf("lỗi lưu chứng chỉ: %w", err)
	}

	log.Info("Certificate verified",
		zap.String("certificate_id", cert.ID.Hex()),
		zap.String("stage", string(result.Stage)))

	return cert, metrics.OutcomeSuccess, nil
}

// deleteOrphan xóa ảnh đã upload khi không lưu được bản ghi
func (cs *CertificateService) deleteOrphan(log *zap.Logger, key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := cs.storage.Delete(ctx, key); err != nil {
		log.Warn("Không xóa được ảnh mồ côi", zap.String("key", key), zap.Error(err))
	}
}

func (cs *CertificateService) validateImage(req VerifyRequest) error {
	if len(req.Image) == 0 {
		return fmt.Errorf("%w: file rỗng", ErrInvalidImage)
	}
	if len(req.Image) > cs.maxUploadBytes {
		return fmt.Errorf("%w: vượt quá %d bytes", ErrInvalidImage, cs.maxUploadBytes)
	}
	if !allowedContentTypes[req.ContentType] {
		return fmt.Errorf("%w: định dạng %q không được hỗ trợ", ErrInvalidImage, req.ContentType)
	}
	return nil
}

// Check trả về chứng chỉ của member cho khóa học nếu có, không có side effect
func (cs *CertificateService) Check(ctx context.Context, memberID, lectureID int64) (*models.Certificate, bool, error) {
	cert, found, err := cs.certificates.FindByMemberAndLecture(ctx, memberID, lectureID)
	if err != nil {
		return nil, false, fmt.Errorf("lỗi kiểm tra chứng chỉ: %w", err)
	}
	return cert, found, nil
}

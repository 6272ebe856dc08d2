package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/edu-certificate/app/models"
	"github.com/edu-certificate/app/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AdminService các thao tác duyệt chứng chỉ của admin
type AdminService struct {
	certificates CertificateStore
	storage      FileStorage
	logger       *zap.Logger
	now          func() time.Time
}

// NewAdminService tạo mới AdminService
func NewAdminService(certificates CertificateStore, storage FileStorage, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{
		certificates: certificates,
		storage:      storage,
		logger:       logger,
		now:          time.Now,
	}
}

// SetClock thay đồng hồ (dùng trong test)
func (as *AdminService) SetClock(now func() time.Time) {
	as.now = now
}

// Get lấy chứng chỉ theo id
func (as *AdminService) Get(ctx context.Context, id primitive.ObjectID) (*models.Certificate, error) {
	cert, found, err := as.certificates.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lỗi tìm chứng chỉ: %w", err)
	}
	if !found {
		return nil, ErrCertificateNotFound
	}
	return cert, nil
}

// Approve duyệt chứng chỉ. Không chặn duyệt lại hay đổi từ REJECTED sang APPROVED.
func (as *AdminService) Approve(ctx context.Context, id primitive.ObjectID) (*models.Certificate, error) {
	return as.transition(ctx, id, (*models.Certificate).Approve)
}

// Reject từ chối chứng chỉ. Gọi được ở mọi trạng thái.
func (as *AdminService) Reject(ctx context.Context, id primitive.ObjectID) (*models.Certificate, error) {
	return as.transition(ctx, id, (*models.Certificate).Reject)
}

func (as *AdminService) transition(ctx context.Context, id primitive.ObjectID, apply func(*models.Certificate, time.Time)) (*models.Certificate, error) {
	cert, err := as.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := cert.ApprovalStatus
	apply(cert, as.now())

	err = as.certificates.UpdateStatus(ctx, cert.ID, cert.ApprovalStatus, cert.UpdatedAt)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrCertificateNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lỗi cập nhật trạng thái chứng chỉ: %w", err)
	}

	fields := []zap.Field{
		zap.String("certificate_id", cert.ID.Hex()),
		zap.String("from", string(previous)),
		zap.String("to", string(cert.ApprovalStatus)),
	}
	// Không chặn, chỉ để lại dấu vết khi admin ghi đè quyết định trước
	if previous.IsResolved() {
		as.logger.Warn("Overriding resolved certificate status", fields...)
	} else {
		as.logger.Info("Certificate status changed", fields...)
	}

	return cert, nil
}

// OpenImage đọc ảnh chứng chỉ từ private storage để admin xem
func (as *AdminService) OpenImage(ctx context.Context, id primitive.ObjectID) ([]byte, error) {
	cert, err := as.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := as.storage.Open(ctx, cert.ImageKey)
	if err != nil {
		return nil, fmt.Errorf("lỗi đọc ảnh chứng chỉ: %w", err)
	}
	return data, nil
}

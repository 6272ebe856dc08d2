package controllers

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/edu-certificate/app/requests"
	"github.com/edu-certificate/app/responses"
	"github.com/edu-certificate/app/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CertificateController controller nộp và kiểm tra chứng chỉ của member
type CertificateController struct {
	certificateService *services.CertificateService
	logger             *zap.Logger
	requestTimeout     time.Duration
	maxUploadBytes     int64
	startTime          time.Time
}

// NewCertificateController tạo mới CertificateController
func NewCertificateController(certificateService *services.CertificateService, requestTimeout time.Duration, maxUploadBytes int64, logger *zap.Logger) *CertificateController {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxUploadBytes <= 0 {
		maxUploadBytes = services.DefaultMaxUploadBytes
	}
	return &CertificateController{
		certificateService: certificateService,
		logger:             logger,
		requestTimeout:     requestTimeout,
		maxUploadBytes:     maxUploadBytes,
		startTime:          time.Now(),
	}
}

func (cc *CertificateController) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if cc.requestTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), cc.requestTimeout)
}

// Submit nhận ảnh chứng chỉ và xác thực
func (cc *CertificateController) Submit(c *gin.Context) {
	var req requests.SubmitCertificateRequest
	if err := c.ShouldBind(&req); err != nil {
		abortBadRequest(c, "Request không hợp lệ: "+err.Error())
		return
	}

	image, contentType, err := cc.readUpload(req.Image)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(c, "INVALID_IMAGE", err.Error()))
		return
	}

	ctx, cancel := cc.requestContext(c)
	defer cancel()

	cert, err := cc.certificateService.Verify(ctx, services.VerifyRequest{
		MemberID:    c.GetInt64(MemberIDKey),
		LectureID:   req.LectureID,
		Image:       image,
		FileName:    req.Image.Filename,
		ContentType: contentType,
	})
	if err != nil {
		writeServiceError(c, cc.logger, err)
		return
	}

	c.JSON(http.StatusCreated, responses.SubmitCertificateResponse{
		CertificateID:  cert.ID.Hex(),
		ApprovalStatus: cert.ApprovalStatus,
	})
}

// Check kiểm tra member đã nộp chứng chỉ cho khóa học chưa
func (cc *CertificateController) Check(c *gin.Context) {
	var req requests.CheckCertificateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortBadRequest(c, "Request không hợp lệ: "+err.Error())
		return
	}

	ctx, cancel := cc.requestContext(c)
	defer cancel()

	cert, found, err := cc.certificateService.Check(ctx, c.GetInt64(MemberIDKey), req.LectureID)
	if err != nil {
		writeServiceError(c, cc.logger, err)
		return
	}
	if !found {
		c.JSON(http.StatusOK, responses.CheckCertificateResponse{Exists: false})
		return
	}

	c.JSON(http.StatusOK, responses.CheckCertificateResponse{
		Exists:         true,
		CertificateID:  cert.ID.Hex(),
		ApprovalStatus: cert.ApprovalStatus,
	})
}

// HealthCheck kiểm tra sức khỏe service
func (cc *CertificateController) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(cc.startTime).String(),
		Version:   "1.0.0",
		Services: map[string]string{
			"certificate": "healthy",
		},
	})
}

// readUpload đọc file upload, giới hạn kích thước và xác định content type
func (cc *CertificateController) readUpload(header *multipart.FileHeader) ([]byte, string, error) {
	if header.Size > cc.maxUploadBytes {
		return nil, "", fmt.Errorf("file vượt quá %d bytes", cc.maxUploadBytes)
	}

	file, err := header.Open()
	if err != nil {
		return nil, "", fmt.Errorf("không đọc được file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, cc.maxUploadBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("không đọc được file: %w", err)
	}
	if int64(len(data)) > cc.maxUploadBytes {
		return nil, "", fmt.Errorf("file vượt quá %d bytes", cc.maxUploadBytes)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}

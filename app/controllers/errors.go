package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/edu-certificate/app/responses"
	"github.com/edu-certificate/app/services"
	"github.com/edu-certificate/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// MemberIDKey key trong gin.Context chứa id member đã xác thực
	MemberIDKey = "member_id"
	// AdminIDKey key trong gin.Context chứa id admin
	AdminIDKey = "admin_id"
	// RequestIDKey key trong gin.Context chứa request id
	RequestIDKey = "request_id"
)

func errorResponse(c *gin.Context, code, message string) responses.ErrorResponse {
	return responses.ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: c.GetString(RequestIDKey),
	}
}

func abortBadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse(c, "INVALID_REQUEST", message))
}

// writeServiceError map lỗi service sang HTTP status.
// Lỗi hạ tầng luôn là 500, không bao giờ báo thành mismatch.
func writeServiceError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		status int
		code   string
	)

	switch {
	case errors.Is(err, services.ErrCertificateAlreadyExists):
		status, code = http.StatusConflict, "CERTIFICATE_ALREADY_EXISTS"
	case errors.Is(err, services.ErrLectureNotFound):
		status, code = http.StatusNotFound, "LECTURE_NOT_FOUND"
	case errors.Is(err, services.ErrCertificateNotFound):
		status, code = http.StatusNotFound, "CERTIFICATE_NOT_FOUND"
	case errors.Is(err, storage.ErrObjectNotFound):
		status, code = http.StatusNotFound, "IMAGE_NOT_FOUND"
	case errors.Is(err, services.ErrLectureMismatch):
		status, code = http.StatusUnprocessableEntity, "LECTURE_MISMATCH"
	case errors.Is(err, services.ErrInvalidImage):
		status, code = http.StatusBadRequest, "INVALID_IMAGE"
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error("Request timeout", zap.Error(err), zap.String("path", c.FullPath()))
		c.AbortWithStatusJSON(http.StatusGatewayTimeout, errorResponse(c, "TIMEOUT", "Xử lý quá thời gian cho phép"))
		return
	default:
		logger.Error("Internal error", zap.Error(err), zap.String("path", c.FullPath()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse(c, "INTERNAL_ERROR", "Lỗi hệ thống, vui lòng thử lại sau"))
		return
	}

	c.AbortWithStatusJSON(status, errorResponse(c, code, err.Error()))
}

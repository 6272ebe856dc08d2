package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/edu-certificate/app/controllers"
	"github.com/edu-certificate/app/responses"
	"github.com/edu-certificate/helpers/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MemberIDHeader header chứa id member đã được gateway xác thực
const MemberIDHeader = "X-Member-Id"

// AdminIDHeader header chứa id admin, gateway chỉ gắn cho tài khoản admin
const AdminIDHeader = "X-Admin-Id"

// RequestIDHeader header request id
const RequestIDHeader = "X-Request-Id"

// RequireMember đọc id member từ header, thiếu hoặc sai thì 401
func RequireMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		memberID, err := strconv.ParseInt(c.GetHeader(MemberIDHeader), 10, 64)
		if err != nil || memberID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Error:     "UNAUTHORIZED",
				Message:   "Thiếu hoặc sai header " + MemberIDHeader,
				Timestamp: time.Now().Format(time.RFC3339),
				RequestID: c.GetString(controllers.RequestIDKey),
			})
			return
		}
		c.Set(controllers.MemberIDKey, memberID)
		c.Next()
	}
}

// RequireAdmin chặn request không có id admin hợp lệ (403)
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		adminID, err := strconv.ParseInt(c.GetHeader(AdminIDHeader), 10, 64)
		if err != nil || adminID <= 0 {
			c.AbortWithStatusJSON(http.StatusForbidden, responses.ErrorResponse{
				Error:     "FORBIDDEN",
				Message:   "Chỉ admin được truy cập",
				Timestamp: time.Now().Format(time.RFC3339),
				RequestID: c.GetString(controllers.RequestIDKey),
			})
			return
		}
		c.Set(controllers.AdminIDKey, adminID)
		c.Next()
	}
}

// RequestID gắn request id (lấy từ header nếu có)
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = utils.GenerateShortID()
		}
		c.Set(controllers.RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// ZapLogger log mỗi request bằng zap thay cho gin.Logger
func ZapLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(controllers.RequestIDKey)))
	}
}

package controllers

import (
	"net/http"

	"github.com/edu-certificate/app/requests"
	"github.com/edu-certificate/app/responses"
	"github.com/edu-certificate/app/services"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AdminController controller duyệt chứng chỉ
type AdminController struct {
	adminService *services.AdminService
	lectureCache services.ILectureCache
	logger       *zap.Logger
}

// NewAdminController tạo mới AdminController. lectureCache có thể nil.
func NewAdminController(adminService *services.AdminService, lectureCache services.ILectureCache, logger *zap.Logger) *AdminController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminController{
		adminService: adminService,
		lectureCache: lectureCache,
		logger:       logger,
	}
}

func bindCertificateID(c *gin.Context) (primitive.ObjectID, bool) {
	var uri requests.CertificateIDUri
	if err := c.ShouldBindUri(&uri); err != nil {
		abortBadRequest(c, "ID chứng chỉ không hợp lệ")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(uri.ID)
	if err != nil {
		abortBadRequest(c, "ID chứng chỉ không hợp lệ")
		return primitive.NilObjectID, false
	}
	return id, true
}

// GetCertificate chi tiết chứng chỉ
func (ac *AdminController) GetCertificate(c *gin.Context) {
	id, ok := bindCertificateID(c)
	if !ok {
		return
	}

	cert, err := ac.adminService.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, responses.NewCertificateResponse(cert))
}

// Approve duyệt chứng chỉ
func (ac *AdminController) Approve(c *gin.Context) {
	id, ok := bindCertificateID(c)
	if !ok {
		return
	}

	cert, err := ac.adminService.Approve(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, responses.NewCertificateResponse(cert))
}

// Reject từ chối chứng chỉ
func (ac *AdminController) Reject(c *gin.Context) {
	id, ok := bindCertificateID(c)
	if !ok {
		return
	}

	cert, err := ac.adminService.Reject(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, responses.NewCertificateResponse(cert))
}

// GetImage trả về ảnh chứng chỉ từ private storage
func (ac *AdminController) GetImage(c *gin.Context) {
	id, ok := bindCertificateID(c)
	if !ok {
		return
	}

	data, err := ac.adminService.OpenImage(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, ac.logger, err)
		return
	}
	c.Data(http.StatusOK, http.DetectContentType(data), data)
}

// GetCacheStats thống kê lecture cache
func (ac *AdminController) GetCacheStats(c *gin.Context) {
	if ac.lectureCache == nil {
		c.JSON(http.StatusOK, services.CacheStats{})
		return
	}

	stats, err := ac.lectureCache.GetStats(c.Request.Context())
	if err != nil {
		writeServiceError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

package routes

import (
	"github.com/edu-certificate/app/controllers"
	"github.com/gin-gonic/gin"
)

// SetupAPIRoutes thiết lập tất cả API routes
func SetupAPIRoutes(router *gin.Engine, certificateController *controllers.CertificateController, adminController *controllers.AdminController) {
	// API v1 group
	v1 := router.Group("/v1")
	{
		// Member routes, id member do gateway xác thực gửi qua header
		certificates := v1.Group("/certificates", RequireMember())
		{
			certificates.POST("", certificateController.Submit)
			certificates.GET("/check", certificateController.Check)
		}

		// Admin routes
		admin := v1.Group("/admin", RequireAdmin())
		{
			admin.GET("/certificates/:id", adminController.GetCertificate)
			admin.POST("/certificates/:id/approve", adminController.Approve)
			admin.POST("/certificates/:id/reject", adminController.Reject)
			admin.GET("/certificates/:id/image", adminController.GetImage)
			admin.GET("/cache/stats", adminController.GetCacheStats)
		}

		// Health check route
		v1.GET("/health", certificateController.HealthCheck)
	}
}

// SetupHealthRoutes thiết lập health check routes
func SetupHealthRoutes(router *gin.Engine, certificateController *controllers.CertificateController) {
	router.GET("/health", certificateController.HealthCheck)
	router.GET("/ready", certificateController.HealthCheck)
	router.GET("/live", certificateController.HealthCheck)
}

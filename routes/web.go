package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupWebRoutes thiết lập web routes
func SetupWebRoutes(router *gin.Engine) {
	web := router.Group("/")
	{
		web.GET("/", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"message": "Certificate Verification Service",
				"version": "1.0.0",
				"docs":    "/docs",
			})
		})

		web.GET("/docs", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"api": "Certificate API v1",
				"endpoints": map[string]string{
					"submit":  "POST /v1/certificates",
					"check":   "GET /v1/certificates/check?lecture_id=",
					"get":     "GET /v1/admin/certificates/:id",
					"approve": "POST /v1/admin/certificates/:id/approve",
					"reject":  "POST /v1/admin/certificates/:id/reject",
					"image":   "GET /v1/admin/certificates/:id/image",
					"health":  "GET /v1/health",
					"metrics": "GET /metrics",
				},
			})
		})
	}
}

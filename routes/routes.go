// Package routes đăng ký toàn bộ HTTP routes của service:
// api.go (/v1/*), web.go (/, /docs), middleware.go (member, request id, log).
package routes

import (
	"github.com/edu-certificate/app/controllers"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupMetricsRoutes thiết lập metrics routes (cho Prometheus)
func SetupMetricsRoutes(router *gin.Engine, gatherer prometheus.Gatherer) {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// SetupAllRoutes thiết lập tất cả routes
func SetupAllRoutes(router *gin.Engine, certificateController *controllers.CertificateController, adminController *controllers.AdminController, gatherer prometheus.Gatherer, logger *zap.Logger) {
	// Thiết lập middleware
	setupMiddleware(router, logger)

	// Thiết lập các loại routes
	SetupWebRoutes(router)
	SetupHealthRoutes(router, certificateController)
	SetupAPIRoutes(router, certificateController, adminController)
	SetupMetricsRoutes(router, gatherer)

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "Route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

// setupMiddleware thiết lập middleware cho router
func setupMiddleware(router *gin.Engine, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(ZapLogger(logger))
}

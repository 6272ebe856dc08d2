package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edu-certificate/app/config"
	"github.com/edu-certificate/app/controllers"
	"github.com/edu-certificate/app/repositories"
	"github.com/edu-certificate/app/services"
	"github.com/edu-certificate/internal/matcher"
	"github.com/edu-certificate/internal/metrics"
	"github.com/edu-certificate/internal/ocr"
	"github.com/edu-certificate/internal/storage"
	"github.com/edu-certificate/routes"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/afero"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "đường dẫn file config yaml")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	// Initialize logger
	logger := newLogger(cfg)
	defer logger.Sync()

	logger.Info("Starting Certificate Service...")
	if redacted, err := cfg.Redacted(); err == nil {
		logger.Debug("Loaded configuration", zap.String("config", redacted))
	}

	ctx := context.Background()

	// Repositories: có mongo.url thì dùng MongoDB, không thì in-memory
	certificateStore, lectureStore, cleanup := initStores(ctx, cfg, afero.NewOsFs(), logger)
	defer cleanup()

	// Lecture cache: L1 local, thêm L2 redis nếu có cấu hình
	lectureCache := initLectureCache(ctx, cfg, logger)
	defer lectureCache.Close()
	lectures := services.NewCachedLectureStore(lectureStore, lectureCache, logger)

	// OCR + private storage
	ocrClient := ocr.NewClovaClient(ocr.ClientConfig{
		URL:     cfg.OCR.URL,
		Secret:  cfg.OCR.Secret,
		Timeout: cfg.OCR.Timeout,
	}, logger)

	privateStorage, err := storage.NewPrivateStorage(afero.NewOsFs(), cfg.Storage.Root, logger)
	if err != nil {
		logger.Fatal("Failed to init private storage", zap.Error(err))
	}

	certificateMatcher := matcher.NewCertificateMatcher(matcher.Config{
		SimilarityThreshold: cfg.Certificate.SimilarityThreshold,
		MinLengthRatio:      cfg.Certificate.MinLengthRatio,
	}, logger)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	serviceMetrics := metrics.New(registry)

	// Initialize services
	certificateService := services.NewCertificateService(certificateStore, lectures, ocrClient, privateStorage, certificateMatcher, logger)
	certificateService.SetMaxUploadBytes(cfg.Storage.MaxUploadBytes)
	certificateService.SetMetrics(serviceMetrics)

	adminService := services.NewAdminService(certificateStore, privateStorage, logger)

	// Initialize controllers
	certificateController := controllers.NewCertificateController(certificateService, cfg.App.RequestTimeout, int64(cfg.Storage.MaxUploadBytes), logger)
	adminController := controllers.NewAdminController(adminService, lectureCache, logger)

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	routes.SetupAllRoutes(router, certificateController, adminController, registry, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newLogger(cfg *config.AppConfig) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

func initStores(ctx context.Context, cfg *config.AppConfig, fs afero.Fs, logger *zap.Logger) (services.CertificateStore, services.LectureStore, func()) {
	if cfg.Mongo.URL == "" {
		logger.Warn("mongo.url is empty, using in-memory stores")
		certificates := repositories.NewMemoryCertificateRepository()
		cleanup := func() {
			logger.Warn("Discarding in-memory certificates", zap.Int("count", certificates.Count()))
		}
		return certificates, initMemoryLectures(ctx, cfg, fs, logger), cleanup
	}

	mongoClient, err := initMongoDB(ctx, cfg.Mongo.URL, logger)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	database := mongoClient.Database(cfg.Mongo.Database)

	certificates := repositories.NewCertificateRepository(database, logger)
	indexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := certificates.EnsureIndexes(indexCtx); err != nil {
		logger.Fatal("Failed to create certificate indexes", zap.Error(err))
	}

	cleanup := func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.Error("Failed to disconnect from MongoDB", zap.Error(err))
		}
	}
	return certificates, repositories.NewLectureRepository(database, logger), cleanup
}

// initMemoryLectures nạp file seed vào store in-memory; lỗi đọc file chỉ log, store rỗng
func initMemoryLectures(ctx context.Context, cfg *config.AppConfig, fs afero.Fs, logger *zap.Logger) *repositories.MemoryLectureRepository {
	lectures := repositories.NewMemoryLectureRepository()
	if cfg.Lecture.SeedFile == "" {
		return lectures
	}

	items, err := repositories.LoadLectureFile(fs, cfg.Lecture.SeedFile)
	if err != nil {
		logger.Warn("Failed to load lecture seed file", zap.String("file", cfg.Lecture.SeedFile), zap.Error(err))
		return lectures
	}
	count, err := repositories.SeedLectures(ctx, lectures, items)
	if err != nil {
		logger.Warn("Failed to seed in-memory lectures", zap.Error(err))
	}
	logger.Info("Seeded in-memory lectures", zap.Int("count", count))
	return lectures
}

func initMongoDB(ctx context.Context, uri string, logger *zap.Logger) (*mongo.Client, error) {
	logger.Info("Connecting to MongoDB")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// Test connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, err
	}

	logger.Info("Successfully connected to MongoDB")
	return client, nil
}

func initLectureCache(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) services.ILectureCache {
	local := services.NewLocalLectureCache(cfg.Cache.L1Size, cfg.Cache.TTL, logger)
	if cfg.Redis.URL == "" {
		return local
	}

	client, err := services.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		// Redis chỉ là cache, lỗi thì chạy với L1
		logger.Warn("Redis unavailable, using local cache only", zap.Error(err))
		return local
	}
	shared := services.NewRedisLectureCache(client, cfg.Cache.TTL, logger)
	return services.NewHybridLectureCache(local, shared, logger)
}

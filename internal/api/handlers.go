package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bitewise-app/backend/config"
	"github.com/bitewise-app/backend/internal/database"
	"github.com/bitewise-app/backend/internal/middleware"
	"github.com/bitewise-app/backend/internal/service"
)

// HealthCheck returns a handler reporting API liveness. When a connection is
// supplied it also verifies the database is reachable.
func HealthCheck(sqlDB *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sqlDB != nil {
			if err := sqlDB.HealthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "unhealthy",
					"message": "database unreachable",
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "BiteWise API is running",
			"version": "v1.0.0",
		})
	}
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, db *gorm.DB, sqlDB *database.DB, authService service.IAuthService, s3Config *config.S3Config, cfg *config.Config) {
	// Health check endpoint (no auth required)
	healthCheck := HealthCheck(sqlDB)
	router.GET("/health", healthCheck)
	router.GET("/api/health", healthCheck)

	// Redis backs the report cache and rate limiting; both degrade
	// gracefully when it is unavailable
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v", err)
		redisClient = nil
	}

	var exportLimiter *middleware.RateLimiter
	var standardizationQuota service.StandardizationQuota
	if redisClient != nil {
		exportLimiter = middleware.NewExportRateLimiter(redisClient)
		standardizationQuota = middleware.NewStandardizationRateLimiter(redisClient)
	}

	standardizer := service.NewStandardizerService(cfg.StandardizerURL, cfg.StandardizerAPIKey)

	reportService := service.NewReportService(db, redisClient, standardizerOrNil(standardizer), standardizationQuota)
	embeddingService := service.NewEmbeddingService()
	reactionService := service.NewReactionService(db, embeddingService, reportService)

	var exportService service.IExportService
	if s3Config != nil {
		exportService = service.NewExportService(db, reportService, s3Config)
	}

	// Create handlers
	authHandler := NewAuthHandler(authService)
	reactionHandler := NewReactionHandler(reactionService, authService)
	reportHandler := NewReportHandler(reportService, exportService, authService, exportLimiter)
	dashboardHandler := NewDashboardHandler(db, reportService)

	// Register routes
	v1 := router.Group("/api/v1")
	authHandler.RegisterRoutes(v1)
	reactionHandler.RegisterRoutes(v1)
	reportHandler.RegisterRoutes(v1)

	// Dashboard routes (with auth middleware)
	dashboardGroup := v1.Group("")
	dashboardGroup.Use(middleware.AuthMiddleware(authService))
	dashboardHandler.RegisterRoutes(dashboardGroup)
}

// standardizerOrNil converts a possibly-nil concrete standardizer into the
// interface without producing a non-nil interface around a nil pointer
func standardizerOrNil(s *service.StandardizerService) service.IStandardizerService {
	if s == nil {
		return nil
	}
	return s
}

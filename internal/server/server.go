package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bitewise-app/backend/config"
	"github.com/bitewise-app/backend/internal/api"
	"github.com/bitewise-app/backend/internal/database"
	"github.com/bitewise-app/backend/internal/middleware"
	"github.com/bitewise-app/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	cfg    *config.Config
}

// New creates a new server instance, connecting to the database and wiring
// all services and routes.
func New(cfg *config.Config) (*Server, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(db, "migrations"); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Separate ping-checked connection backing the health endpoints
	sqlDB, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open health check connection: %w", err)
	}

	// Report exports need S3; the rest of the API works without it
	s3Config, err := config.NewS3Config(context.Background())
	if err != nil {
		log.Printf("Warning: S3 unavailable, report export disabled: %v", err)
		s3Config = nil
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)

	router := gin.Default()
	router.Use(middleware.CORS())
	api.RegisterRoutes(router, db, sqlDB, authService, s3Config, cfg)

	return &Server{
		router: router,
		db:     db,
		cfg:    cfg,
	}, nil
}

// Start starts the HTTP server and blocks until it exits
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    ":" + s.cfg.ServerPort,
		Handler: s.router,
	}

	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}

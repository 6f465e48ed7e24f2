package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bitewise-app/backend/internal/database"
	"github.com/bitewise-app/backend/internal/middleware"
	"github.com/bitewise-app/backend/internal/service"
	"github.com/bitewise-app/backend/internal/testhelpers"
	"github.com/bitewise-app/backend/internal/types"
)

// setupTestRouter wires the real services over an in-memory database, with
// redis, the standardizer and S3 all absent.
func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *service.AuthService) {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupSQLiteDB(t)

	authService := service.NewAuthService(db, "test-secret")
	reportService := service.NewReportService(db, nil, nil, nil)
	reactionService := service.NewReactionService(db, service.NewEmbeddingService(), reportService)

	router := gin.New()
	router.Use(gin.Recovery())

	raw, err := db.DB()
	require.NoError(t, err)
	router.GET("/health", HealthCheck(&database.DB{DB: raw}))

	v1 := router.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)
	NewReactionHandler(reactionService, authService).RegisterRoutes(v1)
	NewReportHandler(reportService, nil, authService, nil).RegisterRoutes(v1)

	dashboardGroup := v1.Group("")
	dashboardGroup.Use(middleware.AuthMiddleware(authService))
	NewDashboardHandler(db, reportService).RegisterRoutes(dashboardGroup)

	return router, db, authService
}

// registerTestUser creates a user through the auth service and returns a token
func registerTestUser(t *testing.T, authService *service.AuthService) string {
	token, err := authService.Register(context.Background(), &types.RegisterRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "password123",
		Username: "testuser",
	})
	require.NoError(t, err)
	return token
}

// performRequest sends a JSON request to the router, optionally with a token
func performRequest(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func statusIs(t *testing.T, w *httptest.ResponseRecorder, want int) {
	if w.Code != want {
		t.Fatalf("expected status %d, got %d: %s", want, w.Code, w.Body.String())
	}
}

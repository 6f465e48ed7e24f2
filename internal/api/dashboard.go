package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bitewise-app/backend/internal/models"
	"github.com/bitewise-app/backend/internal/service"
)

// DashboardHandler handles dashboard-related requests
type DashboardHandler struct {
	db            *gorm.DB
	reportService service.IReportService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(db *gorm.DB, reportService service.IReportService) *DashboardHandler {
	return &DashboardHandler{
		db:            db,
		reportService: reportService,
	}
}

// RegisterRoutes registers the dashboard routes. Auth middleware is applied
// by the caller's route group.
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")
	{
		dashboard.GET("/stats", h.GetStats)
		dashboard.GET("/allergens", h.GetKnownAllergens)
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	ReactionsLogged int    `json:"reactionsLogged"`
	ThisMonth       int    `json:"thisMonth"`
	TopTrigger      string `json:"topTrigger"`
	Confidence      string `json:"confidence"`
}

// GetStats returns dashboard statistics for the current user
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	uid := userID.(uuid.UUID)

	var total int64
	if err := h.db.Model(&models.Reaction{}).
		Where("user_id = ?", uid).
		Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	monthStart := time.Now().AddDate(0, -1, 0)
	var thisMonth int64
	if err := h.db.Model(&models.Reaction{}).
		Where("user_id = ? AND occurred_at >= ?", uid, monthStart).
		Count(&thisMonth).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
		return
	}

	stats := DashboardStats{
		ReactionsLogged: int(total),
		ThisMonth:       int(thisMonth),
	}

	report, err := h.reportService.GetTriggerReport(c.Request.Context(), uid)
	if err == nil {
		stats.Confidence = string(report.Confidence.Label)
		if len(report.AllTriggers) > 0 {
			stats.TopTrigger = report.AllTriggers[0].IngredientLabel
		}
	}

	c.JSON(http.StatusOK, stats)
}

// GetKnownAllergens returns the allergens the user declared at registration
func (h *DashboardHandler) GetKnownAllergens(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var allergens []models.KnownAllergen
	if err := h.db.Where("user_id = ?", userID.(uuid.UUID)).
		Order("allergen_name ASC").
		Find(&allergens).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load allergens"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"allergens": allergens})
}

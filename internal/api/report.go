package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bitewise-app/backend/internal/middleware"
	"github.com/bitewise-app/backend/internal/service"
)

// ReportHandler handles trigger report requests
type ReportHandler struct {
	reportService service.IReportService
	exportService service.IExportService
	authService   service.IAuthService
	exportLimiter *middleware.RateLimiter
}

// NewReportHandler creates a new ReportHandler. exportService and
// exportLimiter may be nil when exports are not configured.
func NewReportHandler(reportService service.IReportService, exportService service.IExportService, authService service.IAuthService, exportLimiter *middleware.RateLimiter) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		exportService: exportService,
		authService:   authService,
		exportLimiter: exportLimiter,
	}
}

// RegisterRoutes registers the report routes
func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup) {
	report := router.Group("/report")
	report.Use(middleware.AuthMiddleware(h.authService))
	{
		report.GET("", h.GetReport)
		report.GET("/insights", h.GetInsights)

		if h.exportService != nil {
			export := report.Group("")
			if h.exportLimiter != nil {
				export.Use(h.exportLimiter.RateLimitMiddleware())
			}
			export.POST("/export", h.ExportReport)
			report.GET("/exports", h.ListExports)
		}
	}
}

// GetReport returns the full trigger report for the current user
func (h *ReportHandler) GetReport(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	report, err := h.reportService.GetTriggerReport(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetInsights returns only the narrative and chips of the report, for the
// home screen card
func (h *ReportHandler) GetInsights(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	report, err := h.reportService.GetTriggerReport(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"insight_text":  report.InsightText,
		"context_chips": report.ContextChips,
		"confidence":    report.Confidence,
	})
}

// ExportReport writes the current report to document storage
func (h *ReportHandler) ExportReport(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	export, err := h.exportService.ExportReport(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export report"})
		return
	}

	c.JSON(http.StatusCreated, export)
}

// ListExports lists previous report exports for the current user, with the
// remaining export quota when rate limiting is active
func (h *ReportHandler) ListExports(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	exports, err := h.exportService.ListExports(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list exports"})
		return
	}

	response := gin.H{"exports": exports}
	if h.exportLimiter != nil {
		remaining, resetTime, err := h.exportLimiter.GetRemainingRequests(c.Request.Context(), userID.(uuid.UUID).String())
		if err == nil {
			response["exports_remaining"] = remaining
			response["exports_reset"] = resetTime.Unix()
		}
	}

	c.JSON(http.StatusOK, response)
}

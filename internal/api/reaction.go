package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bitewise-app/backend/internal/middleware"
	"github.com/bitewise-app/backend/internal/service"
	"github.com/bitewise-app/backend/internal/types"
)

// ReactionHandler handles reaction log requests
type ReactionHandler struct {
	reactionService service.IReactionService
	authService     service.IAuthService
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactionService service.IReactionService, authService service.IAuthService) *ReactionHandler {
	return &ReactionHandler{
		reactionService: reactionService,
		authService:     authService,
	}
}

// RegisterRoutes registers the reaction routes
func (h *ReactionHandler) RegisterRoutes(router *gin.RouterGroup) {
	reactions := router.Group("/reactions")
	reactions.Use(middleware.AuthMiddleware(h.authService))
	{
		reactions.POST("", h.CreateReaction)
		reactions.GET("", h.ListReactions)
		reactions.GET("/:id", h.GetReaction)
		reactions.PUT("/:id", h.UpdateReaction)
		reactions.DELETE("/:id", h.DeleteReaction)
	}
}

// CreateReaction logs a new reaction
func (h *ReactionHandler) CreateReaction(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req types.CreateReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reaction, err := h.reactionService.CreateReaction(c.Request.Context(), userID.(uuid.UUID), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create reaction"})
		return
	}

	c.JSON(http.StatusCreated, reaction)
}

// ListReactions lists the user's reactions; ?q= searches by food name
func (h *ReactionHandler) ListReactions(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if query := c.Query("q"); query != "" {
		reactions, err := h.reactionService.SearchReactions(c.Request.Context(), userID.(uuid.UUID), query)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to search reactions"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reactions": reactions})
		return
	}

	reactions, err := h.reactionService.ListReactions(c.Request.Context(), userID.(uuid.UUID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reactions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reactions": reactions})
}

// GetReaction retrieves a single reaction
func (h *ReactionHandler) GetReaction(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reaction id"})
		return
	}

	reaction, err := h.reactionService.GetReaction(c.Request.Context(), userID.(uuid.UUID), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get reaction"})
		return
	}

	c.JSON(http.StatusOK, reaction)
}

// UpdateReaction replaces a logged reaction
func (h *ReactionHandler) UpdateReaction(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reaction id"})
		return
	}

	var req types.CreateReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	reaction, err := h.reactionService.UpdateReaction(c.Request.Context(), userID.(uuid.UUID), id, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update reaction"})
		return
	}

	c.JSON(http.StatusOK, reaction)
}

// DeleteReaction removes a reaction
func (h *ReactionHandler) DeleteReaction(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reaction id"})
		return
	}

	if err := h.reactionService.DeleteReaction(c.Request.Context(), userID.(uuid.UUID), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "reaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete reaction"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "reaction deleted"})
}

package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bitewise-app/backend/internal/models"
	"github.com/bitewise-app/backend/internal/types"
)

// ReactionService handles reaction log operations
type ReactionService struct {
	db               *gorm.DB
	embeddingService EmbeddingServiceInterface
	reportService    IReportService
}

// NewReactionService creates a new ReactionService instance. reportService
// may be nil when report invalidation is not needed (tests, seed tooling).
func NewReactionService(db *gorm.DB, embeddingService EmbeddingServiceInterface, reportService IReportService) *ReactionService {
	return &ReactionService{
		db:               db,
		embeddingService: embeddingService,
		reportService:    reportService,
	}
}

// CreateReaction logs a new reaction for the user
func (s *ReactionService) CreateReaction(ctx context.Context, userID uuid.UUID, req *types.CreateReactionRequest) (*models.Reaction, error) {
	reaction := &models.Reaction{
		ID:                   uuid.New(),
		UserID:               userID,
		FoodName:             req.FoodName,
		OccurredAt:           req.OccurredAt,
		Severity:             req.Severity,
		Symptoms:             models.JSONBStringArray(req.Symptoms),
		SuspectedIngredients: models.JSONBStringArray(req.SuspectedIngredients),
		Notes:                req.Notes,
	}

	vec, err := s.embeddingService.GenerateEmbedding(req.FoodName)
	if err != nil {
		return nil, err
	}
	reaction.Embedding = vec

	if err := s.db.WithContext(ctx).Create(reaction).Error; err != nil {
		return nil, err
	}

	s.invalidateReport(ctx, userID)
	return reaction, nil
}

// GetReaction retrieves a single reaction, scoped to the owning user
func (s *ReactionService) GetReaction(ctx context.Context, userID, id uuid.UUID) (*models.Reaction, error) {
	var reaction models.Reaction
	if err := s.db.WithContext(ctx).First(&reaction, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}
	return &reaction, nil
}

// ListReactions lists all reactions for a user, most recent first
func (s *ReactionService) ListReactions(ctx context.Context, userID uuid.UUID) ([]*models.Reaction, error) {
	var reactions []models.Reaction
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurred_at DESC").
		Find(&reactions).Error; err != nil {
		return nil, err
	}
	result := make([]*models.Reaction, len(reactions))
	for i := range reactions {
		result[i] = &reactions[i]
	}
	return result, nil
}

// UpdateReaction replaces a logged reaction. Rows are immutable: the old row
// is soft-deleted and a new one created, so a report snapshot never sees a
// half-edited record.
func (s *ReactionService) UpdateReaction(ctx context.Context, userID, id uuid.UUID, req *types.CreateReactionRequest) (*models.Reaction, error) {
	var existing models.Reaction
	if err := s.db.WithContext(ctx).First(&existing, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, err
	}

	replacement := &models.Reaction{
		ID:                   uuid.New(),
		UserID:               userID,
		FoodName:             req.FoodName,
		OccurredAt:           req.OccurredAt,
		Severity:             req.Severity,
		Symptoms:             models.JSONBStringArray(req.Symptoms),
		SuspectedIngredients: models.JSONBStringArray(req.SuspectedIngredients),
		Notes:                req.Notes,
	}

	vec, err := s.embeddingService.GenerateEmbedding(req.FoodName)
	if err != nil {
		return nil, err
	}
	replacement.Embedding = vec

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Reaction{}, "id = ?", existing.ID).Error; err != nil {
			return err
		}
		return tx.Create(replacement).Error
	})
	if err != nil {
		return nil, err
	}

	s.invalidateReport(ctx, userID)
	return replacement, nil
}

// DeleteReaction removes a reaction, scoped to the owning user
func (s *ReactionService) DeleteReaction(ctx context.Context, userID, id uuid.UUID) error {
	var reaction models.Reaction
	if err := s.db.WithContext(ctx).First(&reaction, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return gorm.ErrRecordNotFound
		}
		return err
	}

	if err := s.db.WithContext(ctx).Delete(&models.Reaction{}, "id = ?", id).Error; err != nil {
		return err
	}

	s.invalidateReport(ctx, userID)
	return nil
}

// SearchReactions searches a user's reactions by food name
func (s *ReactionService) SearchReactions(ctx context.Context, userID uuid.UUID, query string) ([]*models.Reaction, error) {
	var reactions []models.Reaction

	dbQuery := s.db.WithContext(ctx).Where("user_id = ?", userID)

	if query != "" {
		if s.db.Dialector.Name() == "postgres" {
			// Generate embedding for similarity search
			vec, err := s.embeddingService.GenerateEmbedding(query)
			if err != nil {
				return nil, err
			}

			// Combine similarity and keyword search
			subQuery := s.db.Model(&models.Reaction{}).
				Select("id, embedding <-> ? as similarity", vec).
				Where("user_id = ? AND (LOWER(food_name) LIKE ? OR LOWER(notes) LIKE ?)",
					userID,
					"%"+strings.ToLower(query)+"%",
					"%"+strings.ToLower(query)+"%",
				)

			dbQuery = dbQuery.Joins("JOIN (?) as search ON reactions.id = search.id", subQuery).
				Order("search.similarity ASC")
		} else {
			// Fallback to keyword search for non-PostgreSQL databases
			like := "%" + strings.ToLower(query) + "%"
			dbQuery = dbQuery.Where("LOWER(food_name) LIKE ? OR LOWER(notes) LIKE ?", like, like)
		}
	}

	if err := dbQuery.Find(&reactions).Error; err != nil {
		return nil, err
	}

	result := make([]*models.Reaction, len(reactions))
	for i := range reactions {
		result[i] = &reactions[i]
	}
	return result, nil
}

func (s *ReactionService) invalidateReport(ctx context.Context, userID uuid.UUID) {
	if s.reportService != nil {
		s.reportService.InvalidateReport(ctx, userID)
	}
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/bitewise-app/backend/internal/analysis"
	"github.com/bitewise-app/backend/internal/models"
)

const reportCacheTTL = time.Hour

// ReportService builds trigger reports from a user's reaction history.
// The analysis itself is pure; everything stateful (snapshot load, the
// optional standardizer call, redis caching) lives here.
type ReportService struct {
	db           *gorm.DB
	redis        *redis.Client
	analyzer     *analysis.Analyzer
	standardizer IStandardizerService
	quota        StandardizationQuota
}

// NewReportService creates a new ReportService instance. redis, standardizer
// and quota may be nil; all are optional enhancements.
func NewReportService(db *gorm.DB, redisClient *redis.Client, standardizer IStandardizerService, quota StandardizationQuota) *ReportService {
	return &ReportService{
		db:           db,
		redis:        redisClient,
		analyzer:     analysis.NewAnalyzer(),
		standardizer: standardizer,
		quota:        quota,
	}
}

// GetTriggerReport returns the trigger report for a user, from cache when the
// reaction set has not changed since it was built.
func (s *ReportService) GetTriggerReport(ctx context.Context, userID uuid.UUID) (*analysis.TriggerReport, error) {
	count, maxUpdated, err := s.reactionSetVersion(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to version reaction set: %w", err)
	}

	cacheKey := fmt.Sprintf("trigger_report:%s:%d:%d", userID, count, maxUpdated.Unix())
	if s.redis != nil {
		if data, err := s.redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached analysis.TriggerReport
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	var reactions []models.Reaction
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurred_at ASC").
		Find(&reactions).Error; err != nil {
		return nil, fmt.Errorf("failed to load reactions: %w", err)
	}

	input := make([]analysis.Reaction, 0, len(reactions))
	for _, r := range reactions {
		ingredients := []string(r.SuspectedIngredients)
		if s.standardizer != nil && s.standardizeAllowed(ctx, userID) {
			ingredients = s.standardizer.Standardize(ctx, ingredients)
		}
		input = append(input, analysis.Reaction{
			ID:                   r.ID.String(),
			FoodName:             r.FoodName,
			OccurredAt:           r.OccurredAt,
			Severity:             analysis.Severity(r.Severity),
			Symptoms:             r.Symptoms,
			SuspectedIngredients: ingredients,
			Notes:                r.Notes,
		})
	}

	report := s.analyzer.ComputeReport(input, time.Now())

	if s.redis != nil {
		if data, err := json.Marshal(report); err == nil {
			if err := s.redis.Set(ctx, cacheKey, data, reportCacheTTL).Err(); err != nil {
				log.Printf("[ReportService] failed to cache report for user %s: %v", userID, err)
			}
		}
	}

	return &report, nil
}

// InvalidateReport drops any cached reports for the user
func (s *ReportService) InvalidateReport(ctx context.Context, userID uuid.UUID) {
	if s.redis == nil {
		return
	}
	keys, err := s.redis.Keys(ctx, fmt.Sprintf("trigger_report:%s:*", userID)).Result()
	if err != nil {
		log.Printf("[ReportService] failed to list cached reports for user %s: %v", userID, err)
		return
	}
	if len(keys) > 0 {
		if err := s.redis.Del(ctx, keys...).Err(); err != nil {
			log.Printf("[ReportService] failed to invalidate report cache for user %s: %v", userID, err)
		}
	}
}

// standardizeAllowed consumes one unit of the upstream standardization quota
// per call, matching the one-request-per-reaction cost. Standardization stays
// best-effort: over quota (or on a quota check error) the raw ingredient
// strings pass through unchanged.
func (s *ReportService) standardizeAllowed(ctx context.Context, userID uuid.UUID) bool {
	if s.quota == nil {
		return true
	}
	allowed, _, _, err := s.quota.IsAllowed(ctx, userID.String())
	if err != nil {
		log.Printf("[ReportService] standardization quota check failed for user %s: %v", userID, err)
		return false
	}
	return allowed
}

// reactionSetVersion returns a cheap fingerprint of the user's reaction set.
// Any create, edit or delete changes the count or the max updated-at, so a
// stale cache entry can never be served.
func (s *ReportService) reactionSetVersion(ctx context.Context, userID uuid.UUID) (int64, time.Time, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Reaction{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, time.Time{}, err
	}

	var maxUpdated struct {
		MaxUpdated *time.Time
	}
	if err := s.db.WithContext(ctx).Model(&models.Reaction{}).
		Select("MAX(updated_at) as max_updated").
		Where("user_id = ?", userID).
		Scan(&maxUpdated).Error; err != nil {
		return 0, time.Time{}, err
	}

	version := time.Time{}
	if maxUpdated.MaxUpdated != nil {
		version = *maxUpdated.MaxUpdated
	}
	return count, version, nil
}

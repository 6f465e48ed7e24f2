package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitewise-app/backend/internal/analysis"
	"github.com/bitewise-app/backend/internal/service"
	"github.com/bitewise-app/backend/internal/testhelpers"
	"github.com/bitewise-app/backend/internal/types"
)

func TestGetTriggerReportBuildingState(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	reactionSvc := service.NewReactionService(db, service.NewEmbeddingService(), nil)
	reportSvc := service.NewReportService(db, nil, nil, nil)
	userID := uuid.New()

	_, err := reactionSvc.CreateReaction(context.Background(), userID, cheeseToastie(1))
	require.NoError(t, err)

	report, err := reportSvc.GetTriggerReport(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, analysis.ConfidenceNotEnoughData, report.Confidence.Label)
	assert.Empty(t, report.AllTriggers)
	assert.NotEmpty(t, report.InsightText)
}

func TestGetTriggerReportIdentifiesDairy(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	reactionSvc := service.NewReactionService(db, service.NewEmbeddingService(), nil)
	reportSvc := service.NewReportService(db, nil, nil, nil)
	userID := uuid.New()

	foods := []struct {
		name        string
		ingredients []string
	}{
		{"Latte", []string{"milk", "espresso"}},
		{"Milkshake", []string{"milk", "ice cream"}},
		{"Mac and Cheese", []string{"milk", "cheddar cheese", "macaroni"}},
		{"Green Salad", []string{"lettuce", "cucumber"}},
	}

	for i, f := range foods {
		req := &types.CreateReactionRequest{
			FoodName:             f.name,
			OccurredAt:           time.Now().AddDate(0, 0, -(i + 1)),
			Severity:             "moderate",
			Symptoms:             []string{"bloating"},
			SuspectedIngredients: f.ingredients,
		}
		_, err := reactionSvc.CreateReaction(context.Background(), userID, req)
		require.NoError(t, err)
	}

	report, err := reportSvc.GetTriggerReport(context.Background(), userID)
	require.NoError(t, err)

	require.NotEmpty(t, report.AllTriggers)
	assert.Equal(t, "Milk", report.AllTriggers[0].IngredientLabel)
	assert.Equal(t, 3, report.AllTriggers[0].OccurrenceCount)
	assert.Equal(t, 75, report.AllTriggers[0].PercentageOfReactions)

	require.NotEmpty(t, report.AllergenGroups)
	assert.Equal(t, analysis.CategoryMilk, report.AllergenGroups[0].Category)

	assert.Equal(t, analysis.ConfidenceLow, report.Confidence.Label)
	assert.NotEmpty(t, report.InsightText)
	assert.NotEmpty(t, report.ContextChips)
}

type recordingStandardizer struct {
	calls int
}

func (s *recordingStandardizer) Standardize(ctx context.Context, ingredients []string) []string {
	s.calls++
	return ingredients
}

type fixedQuota struct {
	allowed bool
}

func (q *fixedQuota) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	return q.allowed, 0, time.Time{}, nil
}

func TestGetTriggerReportStandardizationQuota(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	reactionSvc := service.NewReactionService(db, service.NewEmbeddingService(), nil)
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := reactionSvc.CreateReaction(context.Background(), userID, cheeseToastie(i+1))
		require.NoError(t, err)
	}

	// Over quota the report still builds, just without standardization
	exhausted := &recordingStandardizer{}
	reportSvc := service.NewReportService(db, nil, exhausted, &fixedQuota{allowed: false})
	report, err := reportSvc.GetTriggerReport(context.Background(), userID)
	require.NoError(t, err)
	assert.Zero(t, exhausted.calls)
	assert.NotEmpty(t, report.AllTriggers)

	// One upstream call per reaction while the quota holds
	open := &recordingStandardizer{}
	reportSvc = service.NewReportService(db, nil, open, &fixedQuota{allowed: true})
	_, err = reportSvc.GetTriggerReport(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 3, open.calls)
}

func TestGetTriggerReportScopedToUser(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	reactionSvc := service.NewReactionService(db, service.NewEmbeddingService(), nil)
	reportSvc := service.NewReportService(db, nil, nil, nil)
	userID := uuid.New()

	for i := 0; i < 3; i++ {
		_, err := reactionSvc.CreateReaction(context.Background(), userID, cheeseToastie(i+1))
		require.NoError(t, err)
	}

	report, err := reportSvc.GetTriggerReport(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, analysis.ConfidenceNotEnoughData, report.Confidence.Label)
}

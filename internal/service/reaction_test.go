package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/bitewise-app/backend/internal/models"
	"github.com/bitewise-app/backend/internal/service"
	"github.com/bitewise-app/backend/internal/testhelpers"
	"github.com/bitewise-app/backend/internal/types"
)

func setupReactionTest(t *testing.T) (*gorm.DB, *service.ReactionService, uuid.UUID) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewReactionService(db, service.NewEmbeddingService(), nil)
	return db, svc, uuid.New()
}

func cheeseToastie(daysAgo int) *types.CreateReactionRequest {
	return &types.CreateReactionRequest{
		FoodName:             "Cheese Toastie",
		OccurredAt:           time.Now().AddDate(0, 0, -daysAgo),
		Severity:             "moderate",
		Symptoms:             []string{"bloating"},
		SuspectedIngredients: []string{"cheddar cheese", "wheat flour"},
	}
}

func TestCreateReactionSetsEmbedding(t *testing.T) {
	_, svc, userID := setupReactionTest(t)

	reaction, err := svc.CreateReaction(context.Background(), userID, cheeseToastie(1))
	require.NoError(t, err)

	assert.Equal(t, userID, reaction.UserID)
	assert.Equal(t, "Cheese Toastie", reaction.FoodName)
	assert.Len(t, reaction.Embedding.Slice(), 3)
}

func TestListReactionsMostRecentFirst(t *testing.T) {
	_, svc, userID := setupReactionTest(t)

	for _, daysAgo := range []int{5, 1, 3} {
		_, err := svc.CreateReaction(context.Background(), userID, cheeseToastie(daysAgo))
		require.NoError(t, err)
	}

	reactions, err := svc.ListReactions(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, reactions, 3)
	assert.True(t, reactions[0].OccurredAt.After(reactions[1].OccurredAt))
	assert.True(t, reactions[1].OccurredAt.After(reactions[2].OccurredAt))
}

func TestUpdateReactionReplacesRow(t *testing.T) {
	db, svc, userID := setupReactionTest(t)

	original, err := svc.CreateReaction(context.Background(), userID, cheeseToastie(1))
	require.NoError(t, err)

	req := cheeseToastie(1)
	req.FoodName = "Ham and Cheese Toastie"
	updated, err := svc.UpdateReaction(context.Background(), userID, original.ID, req)
	require.NoError(t, err)

	assert.NotEqual(t, original.ID, updated.ID)
	assert.Equal(t, "Ham and Cheese Toastie", updated.FoodName)

	// The old row is gone from normal queries
	var count int64
	require.NoError(t, db.Model(&models.Reaction{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = svc.GetReaction(context.Background(), userID, original.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteReaction(t *testing.T) {
	_, svc, userID := setupReactionTest(t)

	reaction, err := svc.CreateReaction(context.Background(), userID, cheeseToastie(1))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteReaction(context.Background(), userID, reaction.ID))

	_, err = svc.GetReaction(context.Background(), userID, reaction.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = svc.DeleteReaction(context.Background(), userID, reaction.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestReactionsAreScopedToUser(t *testing.T) {
	_, svc, userID := setupReactionTest(t)
	otherID := uuid.New()

	reaction, err := svc.CreateReaction(context.Background(), userID, cheeseToastie(1))
	require.NoError(t, err)

	_, err = svc.GetReaction(context.Background(), otherID, reaction.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	err = svc.DeleteReaction(context.Background(), otherID, reaction.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	reactions, err := svc.ListReactions(context.Background(), otherID)
	require.NoError(t, err)
	assert.Empty(t, reactions)
}

func TestSearchReactionsKeywordFallback(t *testing.T) {
	_, svc, userID := setupReactionTest(t)

	_, err := svc.CreateReaction(context.Background(), userID, cheeseToastie(1))
	require.NoError(t, err)

	latte := cheeseToastie(2)
	latte.FoodName = "Oat Latte"
	_, err = svc.CreateReaction(context.Background(), userID, latte)
	require.NoError(t, err)

	results, err := svc.SearchReactions(context.Background(), userID, "toastie")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Cheese Toastie", results[0].FoodName)

	results, err = svc.SearchReactions(context.Background(), userID, "")
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

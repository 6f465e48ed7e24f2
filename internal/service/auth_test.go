package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitewise-app/backend/internal/models"
	"github.com/bitewise-app/backend/internal/service"
	"github.com/bitewise-app/backend/internal/testhelpers"
	"github.com/bitewise-app/backend/internal/types"
)

func registerRequest() *types.RegisterRequest {
	return &types.RegisterRequest{
		Name:           "Test User",
		Email:          "test@example.com",
		Password:       "password123",
		Username:       "testuser",
		KnownAllergens: []string{"Peanuts", "Milk"},
	}
}

func TestRegisterCreatesUserProfileAndAllergens(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewAuthService(db, "test-secret")

	token, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	var user models.User
	require.NoError(t, db.Where("email = ?", "test@example.com").First(&user).Error)
	assert.Equal(t, "Test User", user.Name)
	assert.NotEqual(t, "password123", user.PasswordHash)

	var profile models.UserProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, "testuser", profile.Username)

	var allergens []models.KnownAllergen
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&allergens).Error)
	assert.Len(t, allergens, 2)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewAuthService(db, "test-secret")

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	req := registerRequest()
	req.Username = "otheruser"
	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, service.ErrUserExists)
}

func TestLogin(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewAuthService(db, "test-secret")

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "test@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Login(context.Background(), "test@example.com", "wrongpassword")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "unknown@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestValidateToken(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)
	svc := service.NewAuthService(db, "test-secret")

	token, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "testuser", claims.Username)

	var user models.User
	require.NoError(t, db.Where("email = ?", "test@example.com").First(&user).Error)
	assert.Equal(t, user.ID, claims.UserID)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)

	// Token signed with a different secret must be rejected
	other := service.NewAuthService(db, "other-secret")
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

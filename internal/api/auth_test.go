package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterEndpoint(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	w := performRequest(router, "POST", "/api/v1/auth/register", map[string]interface{}{
		"name":            "Test User",
		"email":           "test@example.com",
		"password":        "password123",
		"username":        "testuser",
		"known_allergens": []string{"Peanuts"},
	}, "")
	statusIs(t, w, http.StatusCreated)

	var resp TokenResponse
	decodeBody(t, w, &resp)
	assert.NotEmpty(t, resp.Token)
}

func TestRegisterValidatesBody(t *testing.T) {
	router, _, _ := setupTestRouter(t)

	// Missing required fields
	w := performRequest(router, "POST", "/api/v1/auth/register", map[string]interface{}{
		"email": "test@example.com",
	}, "")
	statusIs(t, w, http.StatusBadRequest)

	// Short password
	w = performRequest(router, "POST", "/api/v1/auth/register", map[string]interface{}{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "short",
		"username": "testuser",
	}, "")
	statusIs(t, w, http.StatusBadRequest)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	router, _, authService := setupTestRouter(t)
	registerTestUser(t, authService)

	w := performRequest(router, "POST", "/api/v1/auth/register", map[string]interface{}{
		"name":     "Test User",
		"email":    "test@example.com",
		"password": "password123",
		"username": "otheruser",
	}, "")
	statusIs(t, w, http.StatusConflict)
}

func TestLoginEndpoint(t *testing.T) {
	router, _, authService := setupTestRouter(t)
	registerTestUser(t, authService)

	w := performRequest(router, "POST", "/api/v1/auth/login", map[string]interface{}{
		"email":    "test@example.com",
		"password": "password123",
	}, "")
	statusIs(t, w, http.StatusOK)

	var resp TokenResponse
	decodeBody(t, w, &resp)
	assert.NotEmpty(t, resp.Token)

	w = performRequest(router, "POST", "/api/v1/auth/login", map[string]interface{}{
		"email":    "test@example.com",
		"password": "wrongpassword",
	}, "")
	statusIs(t, w, http.StatusUnauthorized)
}

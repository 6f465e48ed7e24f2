package types

import "time"

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Name           string   `json:"name" binding:"required"`
	Email          string   `json:"email" binding:"required,email"`
	Password       string   `json:"password" binding:"required,min=8"`
	Username       string   `json:"username" binding:"required"`
	KnownAllergens []string `json:"known_allergens"`
}

// LoginRequest is the payload for authentication.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// CreateReactionRequest is the payload for logging a reaction.
type CreateReactionRequest struct {
	FoodName             string    `json:"food_name" binding:"required"`
	OccurredAt           time.Time `json:"occurred_at" binding:"required"`
	Severity             string    `json:"severity" binding:"required,oneof=mild moderate severe"`
	Symptoms             []string  `json:"symptoms"`
	SuspectedIngredients []string  `json:"suspected_ingredients"`
	Notes                string    `json:"notes"`
}

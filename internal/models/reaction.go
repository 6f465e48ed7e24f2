package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Reaction is one logged food reaction. Records are immutable once created:
// an edit creates a new row and deletes the old one, so the analysis
// pipeline always sees a clean snapshot.
type Reaction struct {
	ID                   uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
	DeletedAt            gorm.DeletedAt   `gorm:"index" json:"-"`
	UserID               uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	FoodName             string           `gorm:"size:255;not null" json:"food_name"`
	OccurredAt           time.Time        `gorm:"not null;index" json:"occurred_at"`
	Severity             string           `gorm:"size:20;not null" json:"severity"`
	Symptoms             JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"symptoms"`
	SuspectedIngredients JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"suspected_ingredients"`
	Notes                string           `gorm:"type:text" json:"notes"`
	Embedding            pgvector.Vector  `gorm:"type:vector(3)" json:"-"`
}

// ReportExport records a generated trigger-report document.
type ReportExport struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	ReactionCount int            `gorm:"not null" json:"reaction_count"`
	DocumentURL   string         `gorm:"size:512" json:"document_url"`
}

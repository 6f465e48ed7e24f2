package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"

	"github.com/bitewise-app/backend/internal/analysis"
	"github.com/bitewise-app/backend/internal/models"
	"github.com/bitewise-app/backend/internal/types"
)

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, req *types.RegisterRequest) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// IReactionService defines the interface for reaction log operations
type IReactionService interface {
	CreateReaction(ctx context.Context, userID uuid.UUID, req *types.CreateReactionRequest) (*models.Reaction, error)
	GetReaction(ctx context.Context, userID, id uuid.UUID) (*models.Reaction, error)
	ListReactions(ctx context.Context, userID uuid.UUID) ([]*models.Reaction, error)
	UpdateReaction(ctx context.Context, userID, id uuid.UUID, req *types.CreateReactionRequest) (*models.Reaction, error)
	DeleteReaction(ctx context.Context, userID, id uuid.UUID) error
	SearchReactions(ctx context.Context, userID uuid.UUID, query string) ([]*models.Reaction, error)
}

// IReportService defines the interface for trigger report operations
type IReportService interface {
	GetTriggerReport(ctx context.Context, userID uuid.UUID) (*analysis.TriggerReport, error)
	InvalidateReport(ctx context.Context, userID uuid.UUID)
}

// IStandardizerService defines the interface for ingredient standardization
type IStandardizerService interface {
	Standardize(ctx context.Context, ingredients []string) []string
}

// StandardizationQuota gates upstream standardizer calls. Satisfied by the
// redis rate limiter; the key identifies the user whose report is building.
type StandardizationQuota interface {
	IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error)
}

// IExportService defines the interface for report export operations
type IExportService interface {
	ExportReport(ctx context.Context, userID uuid.UUID) (*models.ReportExport, error)
	ListExports(ctx context.Context, userID uuid.UUID) ([]*models.ReportExport, error)
}

// EmbeddingServiceInterface generates vector embeddings for food names
type EmbeddingServiceInterface interface {
	GenerateEmbedding(text string) (pgvector.Vector, error)
}

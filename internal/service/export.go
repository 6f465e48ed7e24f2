package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bitewise-app/backend/config"
	"github.com/bitewise-app/backend/internal/analysis"
	"github.com/bitewise-app/backend/internal/models"
)

const exportURLExpiry = 24 * time.Hour

// exportDocument is the JSON document written to S3 for a report export
type exportDocument struct {
	GeneratedAt time.Time               `json:"generated_at"`
	UserID      string                  `json:"user_id"`
	Report      *analysis.TriggerReport `json:"report"`
	Reactions   []models.Reaction       `json:"reactions"`
}

// ExportService writes a point-in-time trigger report plus the underlying
// reaction log to S3 so users can share it with a clinician.
type ExportService struct {
	db            *gorm.DB
	reportService IReportService
	s3Config      *config.S3Config
}

// NewExportService creates a new ExportService instance
func NewExportService(db *gorm.DB, reportService IReportService, s3Config *config.S3Config) *ExportService {
	return &ExportService{
		db:            db,
		reportService: reportService,
		s3Config:      s3Config,
	}
}

// ExportReport builds the user's current report, uploads the document and
// records the export.
func (s *ExportService) ExportReport(ctx context.Context, userID uuid.UUID) (*models.ReportExport, error) {
	report, err := s.reportService.GetTriggerReport(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	var reactions []models.Reaction
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurred_at ASC").
		Find(&reactions).Error; err != nil {
		return nil, fmt.Errorf("failed to load reactions: %w", err)
	}

	doc := exportDocument{
		GeneratedAt: time.Now().UTC(),
		UserID:      userID.String(),
		Report:      report,
		Reactions:   reactions,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export document: %w", err)
	}

	key := fmt.Sprintf("exports/%s/%s.json", userID, uuid.New())
	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload export to S3: %w", err)
	}

	url, err := s.s3Config.GeneratePresignedURL(ctx, key, exportURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign export URL: %w", err)
	}

	export := &models.ReportExport{
		ID:            uuid.New(),
		UserID:        userID,
		ReactionCount: len(reactions),
		DocumentURL:   url,
	}
	if err := s.db.WithContext(ctx).Create(export).Error; err != nil {
		return nil, fmt.Errorf("failed to record export: %w", err)
	}

	log.Printf("[ExportService] exported report for user %s (%d reactions)", userID, len(reactions))
	return export, nil
}

// ListExports lists a user's previous exports, most recent first
func (s *ExportService) ListExports(ctx context.Context, userID uuid.UUID) ([]*models.ReportExport, error) {
	var exports []models.ReportExport
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&exports).Error; err != nil {
		return nil, err
	}
	result := make([]*models.ReportExport, len(exports))
	for i := range exports {
		result[i] = &exports[i]
	}
	return result, nil
}

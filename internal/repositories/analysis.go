package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hiretrack/screening-api/internal/models"
)

type AnalysisRepository interface {
	Create(analysis *models.AIAnalysis) error
	FindByApplicationID(applicationID uuid.UUID) ([]models.AIAnalysis, error)
	FindLatestByApplicationID(applicationID uuid.UUID) (*models.AIAnalysis, error)
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

// Create implements AnalysisRepository. Analyses are append-only; a re-run
// for the same application inserts a new row.
func (r *analysisRepository) Create(analysis *models.AIAnalysis) error {
	if err := r.db.Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

// FindByApplicationID implements AnalysisRepository.
func (r *analysisRepository) FindByApplicationID(applicationID uuid.UUID) ([]models.AIAnalysis, error) {
	var analyses []models.AIAnalysis
	err := r.db.
		Where("job_application_id = ?", applicationID).
		Order("created_at DESC").
		Find(&analyses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find analyses: %w", err)
	}
	return analyses, nil
}

// FindLatestByApplicationID implements AnalysisRepository.
func (r *analysisRepository) FindLatestByApplicationID(applicationID uuid.UUID) (*models.AIAnalysis, error) {
	var analysis models.AIAnalysis
	err := r.db.
		Where("job_application_id = ?", applicationID).
		Order("created_at DESC").
		First(&analysis).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("analysis for application %s: %w", applicationID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find latest analysis: %w", err)
	}
	return &analysis, nil
}

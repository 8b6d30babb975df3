package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hiretrack/screening-api/internal/models"
)

type ApplicationRepository interface {
	Create(app *models.JobApplication, answers []models.ScreeningAnswer, attachments []models.ApplicationAttachment) error
	FindByID(id uuid.UUID) (*models.JobApplication, error)
	FindAnswers(applicationID uuid.UUID) ([]models.ScreeningAnswer, error)
	// FindAttachments returns the application's attachments in upload order,
	// each joined with the name of the requirement it was uploaded for.
	FindAttachments(applicationID uuid.UUID) ([]models.Attachment, error)
	// FindUnscreened returns IDs of pending applications that have no stored
	// analysis yet, oldest first.
	FindUnscreened(limit int) ([]uuid.UUID, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create implements ApplicationRepository. The application, its screening
// answers, and its attachments are written in one transaction.
func (r *applicationRepository) Create(
	app *models.JobApplication,
	answers []models.ScreeningAnswer,
	attachments []models.ApplicationAttachment,
) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(app).Error; err != nil {
			return err
		}
		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		if len(attachments) > 0 {
			if err := tx.Create(&attachments).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// FindByID implements ApplicationRepository.
func (r *applicationRepository) FindByID(id uuid.UUID) (*models.JobApplication, error) {
	var app models.JobApplication
	if err := r.db.Where("id = ?", id).First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("application %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &app, nil
}

// FindAnswers implements ApplicationRepository.
func (r *applicationRepository) FindAnswers(applicationID uuid.UUID) ([]models.ScreeningAnswer, error) {
	var answers []models.ScreeningAnswer
	err := r.db.
		Where("job_application_id = ?", applicationID).
		Order("id ASC").
		Find(&answers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find screening answers: %w", err)
	}
	return answers, nil
}

// FindAttachments implements ApplicationRepository.
func (r *applicationRepository) FindAttachments(applicationID uuid.UUID) ([]models.Attachment, error) {
	var rows []struct {
		FileURL         string
		FileName        *string
		RequirementName *string
	}
	err := r.db.Table("application_attachments aa").
		Select("aa.file_url, aa.file_name, jr.name AS requirement_name").
		Joins("LEFT JOIN job_requirements jr ON jr.id = aa.job_requirement_id").
		Where("aa.job_application_id = ?", applicationID).
		Order("aa.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find attachments: %w", err)
	}

	attachments := make([]models.Attachment, 0, len(rows))
	for _, row := range rows {
		attachments = append(attachments, models.Attachment{
			FileURL:         row.FileURL,
			FileName:        row.FileName,
			RequirementName: row.RequirementName,
		})
	}
	return attachments, nil
}

// FindUnscreened implements ApplicationRepository.
func (r *applicationRepository) FindUnscreened(limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.JobApplication{}).
		Joins("LEFT JOIN ai_analyses ON ai_analyses.job_application_id = job_applications.id").
		Where("ai_analyses.id IS NULL").
		Where("job_applications.status = ?", models.ApplicationStatusPending).
		Order("job_applications.created_at ASC").
		Limit(limit).
		Pluck("job_applications.id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find unscreened applications: %w", err)
	}
	return ids, nil
}

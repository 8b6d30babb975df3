package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hiretrack/screening-api/internal/models"
)

type JobRepository interface {
	FindByID(id uuid.UUID) (*models.JobPosting, error)
	FindMandatoryCriteria(jobID uuid.UUID) ([]string, error)
	FindSoftSkills(jobID uuid.UUID) ([]string, error)
	// FindExpectedDocuments returns the distinct requirement names covered by
	// an application's attachments, the labels the job declared it wants.
	FindExpectedDocuments(applicationID uuid.UUID) ([]string, error)
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

// FindByID implements JobRepository.
func (r *jobRepository) FindByID(id uuid.UUID) (*models.JobPosting, error) {
	var job models.JobPosting
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job posting %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find job posting: %w", err)
	}
	return &job, nil
}

// FindMandatoryCriteria implements JobRepository.
func (r *jobRepository) FindMandatoryCriteria(jobID uuid.UUID) ([]string, error) {
	var criteria []string
	err := r.db.Model(&models.MandatoryCriterion{}).
		Where("job_posting_id = ?", jobID).
		Order("id ASC").
		Pluck("criteria", &criteria).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find mandatory criteria: %w", err)
	}
	return criteria, nil
}

// FindSoftSkills implements JobRepository.
func (r *jobRepository) FindSoftSkills(jobID uuid.UUID) ([]string, error) {
	var skills []string
	err := r.db.Model(&models.SoftSkill{}).
		Where("job_posting_id = ?", jobID).
		Order("id ASC").
		Pluck("skill", &skills).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find soft skills: %w", err)
	}
	return skills, nil
}

// FindExpectedDocuments implements JobRepository.
func (r *jobRepository) FindExpectedDocuments(applicationID uuid.UUID) ([]string, error) {
	var names []string
	err := r.db.Table("job_requirements jr").
		Distinct("jr.name").
		Joins("INNER JOIN application_attachments aa ON aa.job_requirement_id = jr.id").
		Where("aa.job_application_id = ?", applicationID).
		Pluck("jr.name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find expected documents: %w", err)
	}
	return names, nil
}

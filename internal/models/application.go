package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "PENDING"
	ApplicationStatusQualified   ApplicationStatus = "QUALIFIED"
	ApplicationStatusUnqualified ApplicationStatus = "UNQUALIFIED"
	ApplicationStatusWaitlisted  ApplicationStatus = "WAITLISTED"
	ApplicationStatusInterview   ApplicationStatus = "INTERVIEW"
)

type JobApplication struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobPostingID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"job_posting_id"`
	Status         ApplicationStatus `gorm:"not null;default:'PENDING'" json:"status"`
	FirstName      string            `gorm:"type:text;not null" json:"first_name"`
	MiddleName     *string           `gorm:"type:text" json:"middle_name,omitempty"`
	LastName       string            `gorm:"type:text;not null" json:"last_name"`
	Email          string            `gorm:"type:text;not null;index" json:"email"`
	Phone          string            `gorm:"type:text" json:"phone"`
	ApplicantImage *string           `gorm:"type:text" json:"applicant_image,omitempty"`
	CreatedAt      time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (JobApplication) TableName() string {
	return "job_applications"
}

// ScreeningAnswer is one free-form question/answer pair collected during the
// application form's screening step.
type ScreeningAnswer struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobApplicationID uuid.UUID `gorm:"type:uuid;not null;index" json:"job_application_id"`
	Question         string    `gorm:"type:text;not null" json:"question"`
	Answer           string    `gorm:"type:text" json:"answer"`
}

func (ScreeningAnswer) TableName() string {
	return "screening_answers"
}

// ApplicationAttachment ties an uploaded file URL to an application and,
// optionally, to the job requirement it satisfies. Files themselves live with
// the upload provider; only the URL is stored.
type ApplicationAttachment struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobApplicationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"job_application_id"`
	JobRequirementID *uuid.UUID `gorm:"type:uuid" json:"job_requirement_id,omitempty"`
	FileURL          string     `gorm:"type:text;not null" json:"file_url"`
	FileName         *string    `gorm:"type:text" json:"file_name,omitempty"`
	CreatedAt        time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Requirement *JobRequirement `gorm:"foreignKey:JobRequirementID" json:"-"`
}

func (ApplicationAttachment) TableName() string {
	return "application_attachments"
}

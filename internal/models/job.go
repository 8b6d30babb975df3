package models

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusDraft    JobStatus = "DRAFT"
	JobStatusActive   JobStatus = "ACTIVE"
	JobStatusClosed   JobStatus = "CLOSED"
	JobStatusArchived JobStatus = "ARCHIVED"
)

type JobPosting struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title       string     `gorm:"type:text;not null" json:"title"`
	Slug        string     `gorm:"type:text;uniqueIndex" json:"slug"`
	Description string     `gorm:"type:text" json:"description"`
	Status      JobStatus  `gorm:"not null;default:'DRAFT'" json:"status"`
	Deadline    *time.Time `gorm:"type:timestamp" json:"deadline,omitempty"`
	CreatedAt   time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (JobPosting) TableName() string {
	return "job_postings"
}

// JobRequirement is a named document the posting asks applicants to upload
// (e.g. "Resume", "Diploma"). Attachment labels come from here.
type JobRequirement struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobPostingID    uuid.UUID `gorm:"type:uuid;not null;index" json:"job_posting_id"`
	Name            string    `gorm:"type:text;not null" json:"name"`
	IsMandatory     bool      `gorm:"not null;default:false" json:"is_mandatory"`
	AcceptsMultiple bool      `gorm:"not null;default:false" json:"accepts_multiple"`
	SortOrder       int       `gorm:"not null;default:0" json:"sort_order"`
}

func (JobRequirement) TableName() string {
	return "job_requirements"
}

// MandatoryCriterion is a pass/fail requirement; an applicant must match
// every one of a posting's criteria to be qualified.
type MandatoryCriterion struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobPostingID uuid.UUID `gorm:"type:uuid;not null;index" json:"job_posting_id"`
	Criteria     string    `gorm:"type:text;not null" json:"criteria"`
}

func (MandatoryCriterion) TableName() string {
	return "mandatory_criteria"
}

type SoftSkill struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobPostingID uuid.UUID `gorm:"type:uuid;not null;index" json:"job_posting_id"`
	Skill        string    `gorm:"type:text;not null" json:"skill"`
}

func (SoftSkill) TableName() string {
	return "soft_skills"
}

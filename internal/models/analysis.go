package models

import (
	"time"

	"github.com/google/uuid"
)

// AIAnalysis is one stored screening verdict. Rows are insert-only: re-running
// the screening for an application appends a new record, it never overwrites.
// The applicant's status is left for human review regardless of the verdict.
type AIAnalysis struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	JobApplicationID uuid.UUID `gorm:"type:uuid;not null;index" json:"job_application_id"`
	ResultJSON       string    `gorm:"type:jsonb;not null" json:"result_json"`
	Analysis         string    `gorm:"type:text" json:"analysis"`
	Score            int       `gorm:"not null;default:0" json:"score"`
	CreatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (AIAnalysis) TableName() string {
	return "ai_analyses"
}

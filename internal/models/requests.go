package models

import "time"

type ScreenRequest struct {
	ApplicationID string `json:"application_id" validate:"required,uuid"`
}

type ScreenResponse struct {
	Success  bool              `json:"success"`
	Analysis *ScreeningVerdict `json:"analysis"`
}

// FileData references one uploaded file plus the requirement it was uploaded
// for, used by the streaming document-analysis endpoint.
type FileData struct {
	FileURL         string `json:"file_url"`
	RequirementName string `json:"requirement_name,omitempty"`
}

type AnalyzeDocumentsRequest struct {
	FileURLs []string   `json:"file_urls,omitempty"`
	FileData []FileData `json:"file_data,omitempty"`
}

type AnalyzeDocumentsResponse struct {
	Success bool                   `json:"success"`
	Data    *ExtractedPersonalData `json:"data"`
}

type AnswerInput struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer"`
}

type AttachmentInput struct {
	RequirementID string  `json:"requirement_id,omitempty"`
	FileURL       string  `json:"file_url" validate:"required,url"`
	FileName      *string `json:"file_name,omitempty"`
}

type CreateApplicationRequest struct {
	JobID          string            `json:"job_id" validate:"required,uuid"`
	FirstName      string            `json:"first_name" validate:"required"`
	MiddleName     string            `json:"middle_name,omitempty"`
	LastName       string            `json:"last_name" validate:"required"`
	Email          string            `json:"email" validate:"required,email"`
	Phone          string            `json:"phone"`
	ApplicantImage string            `json:"applicant_image,omitempty"`
	Answers        []AnswerInput     `json:"answers,omitempty"`
	Attachments    []AttachmentInput `json:"attachments,omitempty"`
}

type CreateApplicationResponse struct {
	Success       bool   `json:"success"`
	ApplicationID string `json:"application_id"`
	Message       string `json:"message"`
}

type AnalysisResponse struct {
	ID            string            `json:"id"`
	ApplicationID string            `json:"application_id"`
	Score         int               `json:"score"`
	Analysis      string            `json:"analysis"`
	Result        *ScreeningVerdict `json:"result"`
	CreatedAt     time.Time         `json:"created_at"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

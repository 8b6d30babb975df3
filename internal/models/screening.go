package models

import "time"

// FileKind is the resolved content type of an uploaded file reference.
type FileKind string

const (
	KindPDF     FileKind = "pdf"
	KindImage   FileKind = "image"
	KindUnknown FileKind = "unknown"
)

// Attachment is the pipeline's view of one uploaded file: an opaque URL plus
// the labels available for naming whatever text comes out of it.
type Attachment struct {
	FileURL         string
	RequirementName *string
	FileName        *string
}

// ExtractedDocument is one successfully extracted attachment. Text is never
// empty; attachments that yield no text are dropped, not represented.
type ExtractedDocument struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

type PersonalInfo struct {
	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName,omitempty"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// ApplicantProfile is everything the scorer sees about one applicant.
// Documents keep attachment processing order.
type ApplicantProfile struct {
	PersonalInfo     PersonalInfo        `json:"personalInfo"`
	Documents        []ExtractedDocument `json:"documents"`
	ScreeningAnswers map[string]string   `json:"screeningAnswers"`
}

// CriteriaSet is the job-side input to scoring. All slices are
// order-preserving.
type CriteriaSet struct {
	MandatoryCriteria []string
	SoftSkills        []string
	ExpectedDocuments []string
}

type VerdictStatus string

const (
	VerdictQualified   VerdictStatus = "QUALIFIED"
	VerdictUnqualified VerdictStatus = "UNQUALIFIED"
	VerdictWaitlisted  VerdictStatus = "WAITLISTED"
)

type CriterionMatch struct {
	Criteria   string  `json:"criteria"`
	Matched    bool    `json:"matched"`
	Evidence   string  `json:"evidence"`
	Confidence float64 `json:"confidence"`
}

type SkillScore struct {
	Skill    string `json:"skill"`
	Score    int    `json:"score"`
	Evidence string `json:"evidence"`
}

type CriteriaAnalysis struct {
	MandatoryCriteria []CriterionMatch `json:"mandatoryCriteria"`
	SoftSkills        []SkillScore     `json:"softSkills"`
}

type DocumentNote struct {
	Document string `json:"document"`
	Comment  string `json:"comment"`
}

// ScreeningVerdict is the structured output of one scoring run.
// Invariant: Status == QUALIFIED implies every mandatory criterion has
// Matched == true; the scorer repairs model output that violates this.
type ScreeningVerdict struct {
	Score            int              `json:"score"`
	Status           VerdictStatus    `json:"status"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	CriteriaAnalysis CriteriaAnalysis `json:"criteriaAnalysis"`
	DocumentAnalysis []DocumentNote   `json:"documentAnalysis,omitempty"`
}

// ProgressEvent is one incremental status frame pushed to a streaming caller.
// Events are transient and never persisted.
type ProgressEvent struct {
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// ExtractedPersonalData is the model's structured guess at an applicant's
// contact and education details. All fields are suggestions for the applicant
// to confirm; Confidence is advisory only.
type ExtractedPersonalData struct {
	FirstName             string  `json:"first_name,omitempty"`
	MiddleName            string  `json:"middle_name,omitempty"`
	LastName              string  `json:"last_name,omitempty"`
	Email                 string  `json:"email,omitempty"`
	Phone                 string  `json:"phone,omitempty"`
	Address               string  `json:"address,omitempty"`
	EducationalAttainment string  `json:"educational_attainment,omitempty"`
	CourseDegree          string  `json:"course_degree,omitempty"`
	SchoolGraduated       string  `json:"school_graduated,omitempty"`
	Confidence            float64 `json:"confidence"`
}

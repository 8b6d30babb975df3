package services

import (
	"encoding/json"
	"fmt"
	"strings"

	"hiretrack/screening-api/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildScreeningPrompt assembles the single screening request: job context,
// enumerated criteria and skills, the applicant profile, and every extracted
// document wrapped in boundary markers so the model can attribute evidence to
// a named source.
func (pb *PromptBuilder) BuildScreeningPrompt(
	job *models.JobPosting,
	criteria models.CriteriaSet,
	profile models.ApplicantProfile,
	guidelineContext string,
) string {
	var sb strings.Builder

	sb.WriteString("You are an expert HR recruiter analyzing job applications.\n\n")

	sb.WriteString(fmt.Sprintf("JOB TITLE: %s\n\n", job.Title))
	sb.WriteString("JOB DESCRIPTION:\n")
	sb.WriteString(job.Description)
	sb.WriteString("\n\n")

	if guidelineContext != "" {
		sb.WriteString("HIRING GUIDELINES (reference material, advisory):\n")
		sb.WriteString(guidelineContext)
		sb.WriteString("\n\n")
	}

	sb.WriteString("MANDATORY CRITERIA (All must be met for qualification):\n")
	for i, c := range criteria.MandatoryCriteria {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, c))
	}

	sb.WriteString("\nSOFT SKILLS TO EVALUATE:\n")
	for i, s := range criteria.SoftSkills {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, s))
	}

	sb.WriteString("\nEXPECTED DOCUMENTS:\n")
	for i, d := range criteria.ExpectedDocuments {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, d))
	}

	sb.WriteString("\nAPPLICANT INFORMATION:\n")
	if info, err := json.MarshalIndent(profile.PersonalInfo, "", "  "); err == nil {
		sb.Write(info)
	}
	sb.WriteString("\n\nSCREENING ANSWERS:\n")
	for question, answer := range profile.ScreeningAnswers {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", question, answer))
	}

	sb.WriteString("\nAPPLICANT'S DOCUMENTS:\n")
	for _, doc := range profile.Documents {
		sb.WriteString(fmt.Sprintf("--- DOCUMENT: %s ---\n", doc.Label))
		sb.WriteString(doc.Text)
		sb.WriteString("\n--- END DOCUMENT ---\n\n")
	}

	sb.WriteString(`Analyze this application and return ONLY a valid JSON object with this exact structure:

{
  "score": 0-100 (overall score),
  "status": "QUALIFIED" | "UNQUALIFIED" | "WAITLISTED",
  "title": "Brief title summarizing the decision",
  "description": "Detailed explanation of why the applicant is qualified/unqualified",
  "criteriaAnalysis": {
    "mandatoryCriteria": [
      {
        "criteria": "exact criteria text",
        "matched": true/false,
        "evidence": "specific evidence from application",
        "confidence": 0.0-1.0
      }
    ],
    "softSkills": [
      {
        "skill": "exact skill text",
        "score": 0-100,
        "evidence": "specific evidence from application"
      }
    ]
  },
  "documentAnalysis": [
    {
      "document": "document label",
      "comment": "short note on what this document shows"
    }
  ]
}

IMPORTANT RULES:
- Status is "QUALIFIED" ONLY if ALL mandatory criteria are matched
- Status is "UNQUALIFIED" if any mandatory criteria is not matched
- Status is "WAITLISTED" if criteria are borderline or need clarification
- Score bands: 0-35 poor match or missing mandatory documents, 36-60 partial match, 61-85 good fit, 86-100 strong match
- Provide specific evidence from the documents/answers, citing documents by their label
- Be thorough but fair in your assessment
- Return ONLY the JSON object, no additional text`)

	return sb.String()
}

// BuildPersonalDataPrompt constrains the model to a declared JSON shape for
// extracting contact and education details from combined document text.
func (pb *PromptBuilder) BuildPersonalDataPrompt(documentText string) string {
	return fmt.Sprintf(`You are an expert at extracting structured information from resumes and CVs.

Analyze the following document text and extract personal information. Return ONLY a valid JSON object with the following structure:

{
  "first_name": "extracted first name or null",
  "middle_name": "extracted middle name or null",
  "last_name": "extracted last name or null",
  "email": "extracted email or null",
  "phone": "extracted phone number or null",
  "address": "extracted complete address or null",
  "educational_attainment": "highest educational level or null",
  "course_degree": "course or degree name or null",
  "school_graduated": "name of school/university or null",
  "confidence": 0.0 to 1.0 (overall confidence in extraction)
}

Important:
- Extract only what is clearly present in the document
- Use null for missing information
- For educational_attainment, choose from: "High School Graduate", "Vocational", "College Level", "College Graduate", "Completed Master's Degree", "Vocational/TVET"
- Confidence should reflect how clear and complete the information is
- Return ONLY the JSON object, no additional text

Document text:
%s`, documentText)
}

// FormatGuidelineContext renders retrieved guideline chunks for prompt
// inclusion.
func FormatGuidelineContext(chunks []GuidelineChunk) string {
	if len(chunks) == 0 {
		return ""
	}

	var parts []string
	for i, chunk := range chunks {
		parts = append(parts, fmt.Sprintf("--- Context %d (Score: %.2f) ---\n%s",
			i+1, chunk.Score, strings.TrimSpace(chunk.Text)))
	}

	return strings.Join(parts, "\n\n")
}

package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"hiretrack/screening-api/internal/models"
)

// documentSeparator visibly joins multiple documents' text before personal
// data extraction.
const documentSeparator = "\n\n---\n\n"

// PersonalDataExtractor guesses structured contact/education fields from
// combined document text, for pre-filling the application form. It never
// fails: any model or parse error yields a zero-confidence empty result, and
// every field is a suggestion requiring human confirmation.
type PersonalDataExtractor interface {
	ExtractFromText(ctx context.Context, combinedText string) *models.ExtractedPersonalData
}

type personalDataExtractor struct {
	gemini  GeminiService
	prompts *PromptBuilder
	logger  *zap.SugaredLogger
}

func NewPersonalDataExtractor(gemini GeminiService, logger *zap.SugaredLogger) PersonalDataExtractor {
	return &personalDataExtractor{
		gemini:  gemini,
		prompts: NewPromptBuilder(),
		logger:  logger,
	}
}

// ExtractFromText implements PersonalDataExtractor.
func (p *personalDataExtractor) ExtractFromText(ctx context.Context, combinedText string) *models.ExtractedPersonalData {
	prompt := p.prompts.BuildPersonalDataPrompt(combinedText)

	response, err := p.gemini.GenerateText(ctx, prompt, 0.2)
	if err != nil {
		p.logger.Warnw("personal data extraction failed", "error", err)
		return &models.ExtractedPersonalData{Confidence: 0}
	}

	// Confidence is a pointer here so a present-but-zero value can be told
	// apart from an absent one.
	var raw struct {
		FirstName             string   `json:"first_name"`
		MiddleName            string   `json:"middle_name"`
		LastName              string   `json:"last_name"`
		Email                 string   `json:"email"`
		Phone                 string   `json:"phone"`
		Address               string   `json:"address"`
		EducationalAttainment string   `json:"educational_attainment"`
		CourseDegree          string   `json:"course_degree"`
		SchoolGraduated       string   `json:"school_graduated"`
		Confidence            *float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(extractJSON(response)), &raw); err != nil {
		p.logger.Warnw("personal data response unparsable", "error", err)
		return &models.ExtractedPersonalData{Confidence: 0}
	}

	confidence := 0.5
	if raw.Confidence != nil {
		confidence = clampFloat(*raw.Confidence, 0, 1)
	}

	return &models.ExtractedPersonalData{
		FirstName:             raw.FirstName,
		MiddleName:            raw.MiddleName,
		LastName:              raw.LastName,
		Email:                 raw.Email,
		Phone:                 raw.Phone,
		Address:               raw.Address,
		EducationalAttainment: raw.EducationalAttainment,
		CourseDegree:          raw.CourseDegree,
		SchoolGraduated:       raw.SchoolGraduated,
		Confidence:            confidence,
	}
}

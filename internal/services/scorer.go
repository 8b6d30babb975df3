package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"hiretrack/screening-api/internal/models"
)

// ApplicationScorer produces a ScreeningVerdict for one applicant profile
// against a job's criteria. The underlying model is probabilistic; the repair
// step makes the deterministic guarantees, not the model.
type ApplicationScorer interface {
	Score(ctx context.Context, job *models.JobPosting, criteria models.CriteriaSet, profile models.ApplicantProfile) (*models.ScreeningVerdict, error)
}

type applicationScorer struct {
	gemini    GeminiService
	knowledge KnowledgeBase // optional; nil disables guideline retrieval
	prompts   *PromptBuilder
	logger    *zap.SugaredLogger
}

func NewApplicationScorer(
	gemini GeminiService,
	knowledge KnowledgeBase,
	logger *zap.SugaredLogger,
) ApplicationScorer {
	return &applicationScorer{
		gemini:    gemini,
		knowledge: knowledge,
		prompts:   NewPromptBuilder(),
		logger:    logger,
	}
}

// Score implements ApplicationScorer. One request, one parse-and-repair pass.
// Guideline retrieval is advisory: failures degrade to an empty context.
func (s *applicationScorer) Score(
	ctx context.Context,
	job *models.JobPosting,
	criteria models.CriteriaSet,
	profile models.ApplicantProfile,
) (*models.ScreeningVerdict, error) {
	guidelineContext := s.retrieveGuidelines(ctx, job)

	prompt := s.prompts.BuildScreeningPrompt(job, criteria, profile, guidelineContext)
	s.logger.Debugw("screening prompt built", "chars", len(prompt), "documents", len(profile.Documents))

	response, err := s.gemini.GenerateText(ctx, prompt, 0.3)
	if err != nil {
		return nil, fmt.Errorf("failed to generate screening analysis: %w", err)
	}

	verdict, err := parseVerdict(response)
	if err != nil {
		return nil, fmt.Errorf("failed to parse screening response: %w", err)
	}
	return verdict, nil
}

func (s *applicationScorer) retrieveGuidelines(ctx context.Context, job *models.JobPosting) string {
	if s.knowledge == nil {
		return ""
	}

	query := fmt.Sprintf("Hiring guidelines and screening rubric for %s", job.Title)
	embedding, err := s.gemini.GenerateEmbedding(ctx, query)
	if err != nil {
		s.logger.Warnw("guideline retrieval skipped: embedding failed", "error", err)
		return ""
	}

	var chunks []GuidelineChunk
	for _, docType := range []string{"hiring_guidelines", "screening_rubric"} {
		results, err := s.knowledge.SearchGuidelines(ctx, embedding, docType, 3)
		if err != nil {
			s.logger.Warnw("guideline search failed", "doc_type", docType, "error", err)
			continue
		}
		chunks = append(chunks, results...)
	}

	return FormatGuidelineContext(chunks)
}

// parseVerdict turns a raw model response into a typed verdict, or fails.
// The repair pass applies the scoring-policy contract regardless of what the
// model returned.
func parseVerdict(response string) (*models.ScreeningVerdict, error) {
	jsonStr := extractJSON(response)

	var verdict models.ScreeningVerdict
	if err := json.Unmarshal([]byte(jsonStr), &verdict); err != nil {
		return nil, fmt.Errorf("failed to unmarshal verdict JSON: %w", err)
	}

	repairVerdict(&verdict)
	return &verdict, nil
}

// repairVerdict normalizes the model's output in place:
//   - unrecognized or missing status becomes WAITLISTED, never QUALIFIED
//   - any unmatched mandatory criterion forces UNQUALIFIED, even if the model
//     claimed QUALIFIED
//   - scores and confidences are clamped to their ranges
//   - sub-arrays are never nil
func repairVerdict(v *models.ScreeningVerdict) {
	switch models.VerdictStatus(strings.ToUpper(string(v.Status))) {
	case models.VerdictQualified:
		v.Status = models.VerdictQualified
	case models.VerdictUnqualified:
		v.Status = models.VerdictUnqualified
	case models.VerdictWaitlisted:
		v.Status = models.VerdictWaitlisted
	default:
		v.Status = models.VerdictWaitlisted
	}

	if v.CriteriaAnalysis.MandatoryCriteria == nil {
		v.CriteriaAnalysis.MandatoryCriteria = []models.CriterionMatch{}
	}
	if v.CriteriaAnalysis.SoftSkills == nil {
		v.CriteriaAnalysis.SoftSkills = []models.SkillScore{}
	}

	for i := range v.CriteriaAnalysis.MandatoryCriteria {
		c := &v.CriteriaAnalysis.MandatoryCriteria[i]
		c.Confidence = clampFloat(c.Confidence, 0, 1)
		if !c.Matched {
			v.Status = models.VerdictUnqualified
		}
	}

	for i := range v.CriteriaAnalysis.SoftSkills {
		sk := &v.CriteriaAnalysis.SoftSkills[i]
		sk.Score = clampInt(sk.Score, 0, 100)
	}

	v.Score = clampInt(v.Score, 0, 100)
}

// extractJSON pulls a JSON object or array out of text that may wrap it in
// markdown fences or commentary.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	}
	if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}
	return text
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

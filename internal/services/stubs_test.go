package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hiretrack/screening-api/internal/models"
	"hiretrack/screening-api/internal/repositories"
)

var errNotFoundForTest = fmt.Errorf("stub lookup: %w", repositories.ErrNotFound)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// stubGemini answers with canned responses per entry point.
type stubGemini struct {
	textFn      func(prompt string, temperature float32) (string, error)
	fileFn      func(prompt string, data []byte, mimeType string) (string, error)
	embeddingFn func(text string) ([]float32, error)
}

func (s *stubGemini) GenerateText(_ context.Context, prompt string, temperature float32) (string, error) {
	if s.textFn == nil {
		return "", errors.New("GenerateText not stubbed")
	}
	return s.textFn(prompt, temperature)
}

func (s *stubGemini) GenerateWithFile(_ context.Context, prompt string, data []byte, mimeType string) (string, error) {
	if s.fileFn == nil {
		return "", errors.New("GenerateWithFile not stubbed")
	}
	return s.fileFn(prompt, data, mimeType)
}

func (s *stubGemini) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	if s.embeddingFn == nil {
		return nil, errors.New("GenerateEmbedding not stubbed")
	}
	return s.embeddingFn(text)
}

// stubResolver classifies by a fixed table, unknown when absent.
type stubResolver struct {
	kinds map[string]models.FileKind
}

func (s *stubResolver) DetectKind(_ context.Context, fileURL string) models.FileKind {
	if kind, ok := s.kinds[fileURL]; ok {
		return kind
	}
	return models.KindUnknown
}

// stubExtractor returns fixed text per URL and records the calls it saw.
type stubExtractor struct {
	pdfTexts   map[string]string
	imageTexts map[string]string
	pdfCalls   []string
	imageCalls []string
}

func (s *stubExtractor) ExtractFromPDF(_ context.Context, fileURL string) string {
	s.pdfCalls = append(s.pdfCalls, fileURL)
	return s.pdfTexts[fileURL]
}

func (s *stubExtractor) ExtractFromImage(_ context.Context, fileURL string) string {
	s.imageCalls = append(s.imageCalls, fileURL)
	return s.imageTexts[fileURL]
}

// stubScorer returns one fixed verdict or error.
type stubScorer struct {
	verdict *models.ScreeningVerdict
	err     error

	gotJob      *models.JobPosting
	gotCriteria models.CriteriaSet
	gotProfile  models.ApplicantProfile
}

func (s *stubScorer) Score(_ context.Context, job *models.JobPosting, criteria models.CriteriaSet, profile models.ApplicantProfile) (*models.ScreeningVerdict, error) {
	s.gotJob = job
	s.gotCriteria = criteria
	s.gotProfile = profile
	if s.err != nil {
		return nil, s.err
	}
	return s.verdict, nil
}

// stubAppRepo serves one application's rows from memory.
type stubAppRepo struct {
	application *models.JobApplication
	answers     []models.ScreeningAnswer
	attachments []models.Attachment
	unscreened  []uuid.UUID

	findErr        error
	attachmentsErr error
}

func (s *stubAppRepo) Create(*models.JobApplication, []models.ScreeningAnswer, []models.ApplicationAttachment) error {
	return errors.New("not implemented")
}

func (s *stubAppRepo) FindByID(id uuid.UUID) (*models.JobApplication, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if s.application == nil || s.application.ID != id {
		return nil, errNotFoundForTest
	}
	return s.application, nil
}

func (s *stubAppRepo) FindAnswers(uuid.UUID) ([]models.ScreeningAnswer, error) {
	return s.answers, nil
}

func (s *stubAppRepo) FindAttachments(uuid.UUID) ([]models.Attachment, error) {
	if s.attachmentsErr != nil {
		return nil, s.attachmentsErr
	}
	return s.attachments, nil
}

func (s *stubAppRepo) FindUnscreened(int) ([]uuid.UUID, error) {
	return s.unscreened, nil
}

// stubJobRepo serves one job posting and its criteria.
type stubJobRepo struct {
	job       *models.JobPosting
	mandatory []string
	skills    []string
	expected  []string
}

func (s *stubJobRepo) FindByID(id uuid.UUID) (*models.JobPosting, error) {
	if s.job == nil || s.job.ID != id {
		return nil, errNotFoundForTest
	}
	return s.job, nil
}

func (s *stubJobRepo) FindMandatoryCriteria(uuid.UUID) ([]string, error) {
	return s.mandatory, nil
}

func (s *stubJobRepo) FindSoftSkills(uuid.UUID) ([]string, error) {
	return s.skills, nil
}

func (s *stubJobRepo) FindExpectedDocuments(uuid.UUID) ([]string, error) {
	return s.expected, nil
}

// stubAnalysisRepo records created analyses in memory.
type stubAnalysisRepo struct {
	created   []*models.AIAnalysis
	createErr error
}

func (s *stubAnalysisRepo) Create(analysis *models.AIAnalysis) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, analysis)
	return nil
}

func (s *stubAnalysisRepo) FindByApplicationID(applicationID uuid.UUID) ([]models.AIAnalysis, error) {
	var out []models.AIAnalysis
	for _, a := range s.created {
		if a.JobApplicationID == applicationID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *stubAnalysisRepo) FindLatestByApplicationID(applicationID uuid.UUID) (*models.AIAnalysis, error) {
	all, _ := s.FindByApplicationID(applicationID)
	if len(all) == 0 {
		return nil, errNotFoundForTest
	}
	return &all[len(all)-1], nil
}

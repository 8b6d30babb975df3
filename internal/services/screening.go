package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hiretrack/screening-api/internal/models"
	"hiretrack/screening-api/internal/repositories"
)

// runEventBuffer bounds the progress channel. A consumer slower than the
// pipeline loses events rather than stalling the run; events are advisory.
const runEventBuffer = 64

// ScreeningRun is one in-flight screening. Events() drains the progress
// stream (closed when the run finishes, whatever the outcome); Wait() blocks
// until the run reaches DONE or ERROR and returns the verdict or the failure.
type ScreeningRun interface {
	Events() <-chan models.ProgressEvent
	Wait() (*models.ScreeningVerdict, error)
}

type screeningRun struct {
	events  chan models.ProgressEvent
	verdict *models.ScreeningVerdict
	err     error
	done    chan struct{}
}

func newScreeningRun() *screeningRun {
	return &screeningRun{
		events: make(chan models.ProgressEvent, runEventBuffer),
		done:   make(chan struct{}),
	}
}

func (r *screeningRun) Events() <-chan models.ProgressEvent { return r.events }

func (r *screeningRun) Wait() (*models.ScreeningVerdict, error) {
	<-r.done
	return r.verdict, r.err
}

func (r *screeningRun) emit(message string, data map[string]any) {
	event := models.ProgressEvent{
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
	select {
	case r.events <- event:
	default:
		// Buffer full: the consumer stopped reading. Drop the event and keep
		// the run moving; it still completes and persists.
	}
}

// ScreeningService coordinates one application's screening: load reference
// data, assemble documents, score, persist the verdict, streaming progress
// throughout. The applicant's status is never auto-advanced; the verdict is
// input to a separate human decision.
type ScreeningService interface {
	Screen(ctx context.Context, applicationID uuid.UUID) ScreeningRun
}

type screeningService struct {
	appRepo      repositories.ApplicationRepository
	jobRepo      repositories.JobRepository
	analysisRepo repositories.AnalysisRepository
	assembler    DocumentAssembler
	scorer       ApplicationScorer
	logger       *zap.SugaredLogger
}

func NewScreeningService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	analysisRepo repositories.AnalysisRepository,
	assembler DocumentAssembler,
	scorer ApplicationScorer,
	logger *zap.SugaredLogger,
) ScreeningService {
	return &screeningService{
		appRepo:      appRepo,
		jobRepo:      jobRepo,
		analysisRepo: analysisRepo,
		assembler:    assembler,
		scorer:       scorer,
		logger:       logger,
	}
}

// Screen implements ScreeningService. The returned run's event channel is
// closed exactly once, by the producer, on success and on failure alike.
func (s *screeningService) Screen(ctx context.Context, applicationID uuid.UUID) ScreeningRun {
	run := newScreeningRun()
	go s.execute(ctx, applicationID, run)
	return run
}

func (s *screeningService) execute(ctx context.Context, applicationID uuid.UUID, run *screeningRun) {
	defer close(run.done)
	defer close(run.events)

	started := time.Now()

	fail := func(err error, message string) {
		run.err = err
		run.emit("Error: "+message, map[string]any{"error": err.Error()})
		s.logger.Errorw("screening run failed", "application_id", applicationID, "error", err)
	}

	run.emit("Fetching application data...", nil)
	application, err := s.appRepo.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			fail(ErrApplicationNotFound, "Application not found")
		} else {
			fail(err, "Failed to load application")
		}
		return
	}

	run.emit("Loading job requirements...", nil)
	job, err := s.jobRepo.FindByID(application.JobPostingID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			fail(ErrJobNotFound, "Job posting not found")
		} else {
			fail(err, "Failed to load job posting")
		}
		return
	}

	criteria, err := s.loadCriteria(application.ID, job.ID)
	if err != nil {
		fail(err, "Failed to load screening criteria")
		return
	}

	attachments, err := s.appRepo.FindAttachments(application.ID)
	if err != nil {
		fail(err, "Failed to load attachments")
		return
	}

	answers, err := s.appRepo.FindAnswers(application.ID)
	if err != nil {
		fail(err, "Failed to load screening answers")
		return
	}

	// Zero extracted documents is a valid outcome; the scorer sees an empty
	// document list and the score lands accordingly.
	documents := s.assembler.Assemble(ctx, attachments, run.emit)

	run.emit("Running AI screening analysis...", nil)
	profile := buildProfile(application, documents, answers)

	verdict, err := s.scorer.Score(ctx, job, criteria, profile)
	if err != nil {
		fail(fmt.Errorf("%w: %v", ErrScoringFailed, err), "Failed to perform AI screening")
		return
	}

	run.emit("Saving analysis results...", nil)
	resultJSON, err := json.Marshal(verdict)
	if err != nil {
		fail(fmt.Errorf("%w: %v", ErrPersistFailed, err), "Failed to save analysis results")
		return
	}

	analysis := &models.AIAnalysis{
		ID:               uuid.New(),
		JobApplicationID: application.ID,
		ResultJSON:       string(resultJSON),
		Analysis:         verdict.Description,
		Score:            verdict.Score,
	}
	if err := s.analysisRepo.Create(analysis); err != nil {
		fail(fmt.Errorf("%w: %v", ErrPersistFailed, err), "Failed to save analysis results")
		return
	}

	run.verdict = verdict
	run.emit("Analysis complete", map[string]any{"analysis": verdict})
	s.logger.Infow("screening run completed",
		"application_id", applicationID,
		"score", verdict.Score,
		"status", verdict.Status,
		"documents", len(documents),
		"duration", time.Since(started),
	)
}

func (s *screeningService) loadCriteria(applicationID, jobID uuid.UUID) (models.CriteriaSet, error) {
	mandatory, err := s.jobRepo.FindMandatoryCriteria(jobID)
	if err != nil {
		return models.CriteriaSet{}, err
	}
	skills, err := s.jobRepo.FindSoftSkills(jobID)
	if err != nil {
		return models.CriteriaSet{}, err
	}
	expected, err := s.jobRepo.FindExpectedDocuments(applicationID)
	if err != nil {
		return models.CriteriaSet{}, err
	}
	return models.CriteriaSet{
		MandatoryCriteria: mandatory,
		SoftSkills:        skills,
		ExpectedDocuments: expected,
	}, nil
}

func buildProfile(
	application *models.JobApplication,
	documents []models.ExtractedDocument,
	answers []models.ScreeningAnswer,
) models.ApplicantProfile {
	screeningAnswers := make(map[string]string, len(answers))
	for _, a := range answers {
		screeningAnswers[a.Question] = a.Answer
	}

	info := models.PersonalInfo{
		FirstName: application.FirstName,
		LastName:  application.LastName,
		Email:     application.Email,
		Phone:     application.Phone,
	}
	if application.MiddleName != nil {
		info.MiddleName = *application.MiddleName
	}

	return models.ApplicantProfile{
		PersonalInfo:     info,
		Documents:        documents,
		ScreeningAnswers: screeningAnswers,
	}
}

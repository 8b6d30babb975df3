package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"hiretrack/screening-api/internal/models"
)

// DocumentAnalysisRun is one in-flight document analysis, mirroring
// ScreeningRun: a closed-once event stream plus a blocking result.
type DocumentAnalysisRun interface {
	Events() <-chan models.ProgressEvent
	Wait() (*models.ExtractedPersonalData, error)
}

type documentAnalysisRun struct {
	events chan models.ProgressEvent
	result *models.ExtractedPersonalData
	err    error
	done   chan struct{}
}

func (r *documentAnalysisRun) Events() <-chan models.ProgressEvent { return r.events }

func (r *documentAnalysisRun) Wait() (*models.ExtractedPersonalData, error) {
	<-r.done
	return r.result, r.err
}

func (r *documentAnalysisRun) emit(message string, data map[string]any) {
	event := models.ProgressEvent{
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
	select {
	case r.events <- event:
	default:
	}
}

// DocumentAnalysisService powers form pre-fill: extract text from the
// uploaded files, combine it, and guess the applicant's personal details.
type DocumentAnalysisService interface {
	Analyze(ctx context.Context, files []models.Attachment) DocumentAnalysisRun
}

type documentAnalysisService struct {
	assembler DocumentAssembler
	personal  PersonalDataExtractor
	logger    *zap.SugaredLogger
}

func NewDocumentAnalysisService(
	assembler DocumentAssembler,
	personal PersonalDataExtractor,
	logger *zap.SugaredLogger,
) DocumentAnalysisService {
	return &documentAnalysisService{
		assembler: assembler,
		personal:  personal,
		logger:    logger,
	}
}

// Analyze implements DocumentAnalysisService.
func (s *documentAnalysisService) Analyze(ctx context.Context, files []models.Attachment) DocumentAnalysisRun {
	run := &documentAnalysisRun{
		events: make(chan models.ProgressEvent, runEventBuffer),
		done:   make(chan struct{}),
	}
	go s.execute(ctx, files, run)
	return run
}

func (s *documentAnalysisService) execute(ctx context.Context, files []models.Attachment, run *documentAnalysisRun) {
	defer close(run.done)
	defer close(run.events)

	documents := s.assembler.Assemble(ctx, files, run.emit)

	texts := make([]string, 0, len(documents))
	for _, doc := range documents {
		texts = append(texts, doc.Text)
	}
	combined := strings.Join(texts, documentSeparator)

	if strings.TrimSpace(combined) == "" {
		run.err = ErrNoTextExtracted
		run.emit("Error: Could not extract text from documents", nil)
		return
	}

	run.emit("Extracting personal information...", nil)
	extracted := s.personal.ExtractFromText(ctx, combined)

	run.result = extracted
	run.emit("Analysis complete", asDataMap(extracted))
}

// asDataMap flattens a result into the map shape progress events carry; the
// final frame's data holds the extracted fields directly.
func asDataMap(v any) map[string]any {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

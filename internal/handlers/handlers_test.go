package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hiretrack/screening-api/internal/models"
	"hiretrack/screening-api/internal/repositories"
	"hiretrack/screening-api/internal/services"
)

var errStubNotFound = fmt.Errorf("stub lookup: %w", repositories.ErrNotFound)

// fakeRun replays a finished screening: its events are pre-buffered and the
// channel closed before any consumer sees it.
type fakeRun struct {
	events  chan models.ProgressEvent
	verdict *models.ScreeningVerdict
	err     error
}

func newFakeRun(verdict *models.ScreeningVerdict, err error, messages ...string) *fakeRun {
	events := make(chan models.ProgressEvent, len(messages)+1)
	for _, msg := range messages {
		events <- models.ProgressEvent{Message: msg, Timestamp: time.Now()}
	}
	if verdict != nil {
		events <- models.ProgressEvent{
			Message:   "Analysis complete",
			Data:      map[string]any{"analysis": verdict},
			Timestamp: time.Now(),
		}
	}
	close(events)
	return &fakeRun{events: events, verdict: verdict, err: err}
}

func (r *fakeRun) Events() <-chan models.ProgressEvent     { return r.events }
func (r *fakeRun) Wait() (*models.ScreeningVerdict, error) { return r.verdict, r.err }

type fakeScreeningService struct {
	run   *fakeRun
	gotID uuid.UUID
}

func (s *fakeScreeningService) Screen(_ context.Context, applicationID uuid.UUID) services.ScreeningRun {
	s.gotID = applicationID
	return s.run
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()

	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func newScreeningApp(service services.ScreeningService) *fiber.App {
	app := fiber.New()
	app.Post("/api/v1/ai-screening", NewScreeningHandler(service).HandleScreen)
	return app
}

func TestHandleScreenSuccess(t *testing.T) {
	verdict := &models.ScreeningVerdict{
		Score:  78,
		Status: models.VerdictQualified,
		Title:  "Good fit",
	}
	service := &fakeScreeningService{run: newFakeRun(verdict, nil, "Fetching application data...")}
	app := newScreeningApp(service)

	applicationID := uuid.New()
	resp := postJSON(t, app, "/api/v1/ai-screening", models.ScreenRequest{ApplicationID: applicationID.String()})

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody[models.ScreenResponse](t, resp)
	assert.True(t, body.Success)
	require.NotNil(t, body.Analysis)
	assert.Equal(t, 78, body.Analysis.Score)
	assert.Equal(t, models.VerdictQualified, body.Analysis.Status)
	assert.Equal(t, applicationID, service.gotID)
}

func TestHandleScreenValidation(t *testing.T) {
	tests := []struct {
		name     string
		body     any
		wantCode string
	}{
		{"missing application id", models.ScreenRequest{}, "MISSING_APPLICATION_ID"},
		{"malformed application id", models.ScreenRequest{ApplicationID: "not-a-uuid"}, "INVALID_APPLICATION_ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newScreeningApp(&fakeScreeningService{})

			resp := postJSON(t, app, "/api/v1/ai-screening", tt.body)
			require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			body := decodeBody[models.ErrorResponse](t, resp)
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestHandleScreenNotFoundMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"application missing", services.ErrApplicationNotFound, fiber.StatusNotFound, "APPLICATION_NOT_FOUND"},
		{"job missing", services.ErrJobNotFound, fiber.StatusNotFound, "JOB_NOT_FOUND"},
		{"pipeline failure", errors.New("model unavailable"), fiber.StatusInternalServerError, "SCREENING_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newScreeningApp(&fakeScreeningService{run: newFakeRun(nil, tt.err)})

			resp := postJSON(t, app, "/api/v1/ai-screening", models.ScreenRequest{ApplicationID: uuid.New().String()})
			require.Equal(t, tt.wantStatus, resp.StatusCode)
			body := decodeBody[models.ErrorResponse](t, resp)
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}

func TestHandleScreenStreaming(t *testing.T) {
	verdict := &models.ScreeningVerdict{Score: 78, Status: models.VerdictQualified}
	service := &fakeScreeningService{run: newFakeRun(verdict, nil, "Fetching application data...", "Running AI screening analysis...")}
	app := newScreeningApp(service)

	raw, err := json.Marshal(models.ScreenRequest{ApplicationID: uuid.New().String()})
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, "/api/v1/ai-screening?stream=true", bytes.NewReader(raw))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	frames := bytes.Split(bytes.TrimSpace(body), []byte("\n\n"))
	require.Len(t, frames, 3)
	for _, frame := range frames {
		assert.True(t, bytes.HasPrefix(frame, []byte("data: ")))
	}

	var last models.ProgressEvent
	require.NoError(t, json.Unmarshal(bytes.TrimPrefix(frames[2], []byte("data: ")), &last))
	assert.Equal(t, "Analysis complete", last.Message)
	assert.Contains(t, last.Data, "analysis")
}

package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hiretrack/screening-api/internal/models"
)

// recordingScreeningService completes every run immediately and remembers
// which application IDs it was asked to screen.
type recordingScreeningService struct {
	mu       sync.Mutex
	screened []uuid.UUID
}

func (s *recordingScreeningService) Screen(_ context.Context, applicationID uuid.UUID) ScreeningRun {
	s.mu.Lock()
	s.screened = append(s.screened, applicationID)
	s.mu.Unlock()

	run := newScreeningRun()
	run.verdict = &models.ScreeningVerdict{Score: 50, Status: models.VerdictWaitlisted}
	close(run.events)
	close(run.done)
	return run
}

func (s *recordingScreeningService) ids() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uuid.UUID(nil), s.screened...)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestWorkerProcessesEnqueuedApplications(t *testing.T) {
	screening := &recordingScreeningService{}
	worker := NewWorker(&stubAppRepo{}, screening, 2, time.Hour, testLogger())

	worker.Start(context.Background())
	defer worker.Stop()

	first := uuid.New()
	second := uuid.New()
	worker.Enqueue(first)
	worker.Enqueue(second)

	waitFor(t, 2*time.Second, func() bool { return len(screening.ids()) == 2 })
}

func TestWorkerPollerPicksUpUnscreened(t *testing.T) {
	pending := uuid.New()
	screening := &recordingScreeningService{}
	worker := NewWorker(&stubAppRepo{unscreened: []uuid.UUID{pending}}, screening, 1, 20*time.Millisecond, testLogger())

	worker.Start(context.Background())
	defer worker.Stop()

	waitFor(t, 2*time.Second, func() bool {
		for _, id := range screening.ids() {
			if id == pending {
				return true
			}
		}
		return false
	})
}

func TestWorkerEnqueueAfterStop(t *testing.T) {
	screening := &recordingScreeningService{}
	worker := NewWorker(&stubAppRepo{}, screening, 1, time.Hour, testLogger())

	worker.Start(context.Background())
	worker.Stop()

	// Enqueue after stop must not block or panic.
	assert.NotPanics(t, func() { worker.Enqueue(uuid.New()) })
}

func TestWorkerEnqueueNeverBlocksWhenQueueFull(t *testing.T) {
	screening := &recordingScreeningService{}
	// Never started: nothing drains the queue.
	worker := NewWorker(&stubAppRepo{}, screening, 1, time.Hour, testLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			worker.Enqueue(uuid.New())
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Enqueue blocked on a full queue")
	}
	require.Empty(t, screening.ids())
}

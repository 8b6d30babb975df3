package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hiretrack/screening-api/internal/repositories"
)

// Worker runs screenings in the background for applications submitted through
// intake. A poller sweeps applications that have no analysis yet, so a run
// lost to a crash or a full queue is picked up again.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	Enqueue(applicationID uuid.UUID)
}

type worker struct {
	appRepo      repositories.ApplicationRepository
	screening    ScreeningService
	queue        chan uuid.UUID
	concurrency  int
	pollInterval time.Duration
	wg           sync.WaitGroup
	stopChan     chan struct{}
	logger       *zap.SugaredLogger
}

func NewWorker(
	appRepo repositories.ApplicationRepository,
	screening ScreeningService,
	concurrency int,
	pollInterval time.Duration,
	logger *zap.SugaredLogger,
) Worker {
	return &worker{
		appRepo:      appRepo,
		screening:    screening,
		queue:        make(chan uuid.UUID, 100),
		concurrency:  concurrency,
		pollInterval: pollInterval,
		stopChan:     make(chan struct{}),
		logger:       logger,
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	w.logger.Infow("starting screening worker", "concurrency", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollUnscreened()
}

// Stop implements Worker.
func (w *worker) Stop() {
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("screening worker stopped")
}

// Enqueue implements Worker.
func (w *worker) Enqueue(applicationID uuid.UUID) {
	select {
	case w.queue <- applicationID:
		w.logger.Debugw("screening enqueued", "application_id", applicationID)
	case <-w.stopChan:
		w.logger.Warnw("worker stopped, screening not enqueued", "application_id", applicationID)
	default:
		// Queue full; the poller will find this application later.
		w.logger.Warnw("screening queue full, deferring to poller", "application_id", applicationID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			return
		case applicationID := <-w.queue:
			w.logger.Infow("background screening started", "worker", workerID, "application_id", applicationID)

			run := w.screening.Screen(ctx, applicationID)
			for range run.Events() {
				// No transport attached; drain so the run never stalls.
			}
			if _, err := run.Wait(); err != nil {
				w.logger.Warnw("background screening failed", "worker", workerID, "application_id", applicationID, "error", err)
			}
		}
	}
}

func (w *worker) pollUnscreened() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			ids, err := w.appRepo.FindUnscreened(10)
			if err != nil {
				w.logger.Warnw("failed to poll unscreened applications", "error", err)
				continue
			}
			for _, id := range ids {
				w.Enqueue(id)
			}
		}
	}
}

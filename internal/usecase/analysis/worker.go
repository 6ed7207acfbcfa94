package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-facilitator/internal/domain/entities"
	"github.com/johnquangdev/meeting-facilitator/internal/infrastructure/metrics"
	"github.com/johnquangdev/meeting-facilitator/internal/usecase/minutes"
	"github.com/johnquangdev/meeting-facilitator/pkg/jobcontext"
)

const jobType = "analysis"

// Job outcomes reported to metrics
const (
	outcomeSuccess = "success"
	outcomeError   = "error"
	outcomeDropped = "dropped"
)

// MinutesReconciler applies a statement to the minutes
type MinutesReconciler interface {
	Reconcile(ctx context.Context, meetingID string, latest *entities.Message) (minutes.ReconcileReport, error)
}

// InterventionRequester runs the intervention check of a meeting
type InterventionRequester interface {
	Request(ctx context.Context, meetingID string) (bool, error)
}

// Options configures the worker
type Options struct {
	// Async moves jobs onto a bounded queue; otherwise Submit runs them inline
	Async     bool
	Workers   int
	QueueSize int
	Job       jobcontext.Options
}

// Job is the analysis of one posted statement
type Job struct {
	MeetingID string
	Message   *entities.Message
}

// Worker runs minutes reconciliation and the intervention check after each statement
type Worker struct {
	reconciler    MinutesReconciler
	interventions InterventionRequester
	opts          Options
	logger        *zap.Logger

	queue   chan Job
	wg      sync.WaitGroup
	mu      sync.RWMutex
	running bool
}

func NewWorker(reconciler MinutesReconciler, interventions InterventionRequester, opts Options, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.QueueSize < 1 {
		opts.QueueSize = 1
	}
	return &Worker{
		reconciler:    reconciler,
		interventions: interventions,
		opts:          opts,
		logger:        logger,
	}
}

// Start launches the worker goroutines in async mode. ctx is the parent of every job.
func (w *Worker) Start(ctx context.Context) error {
	if !w.opts.Async {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return fmt.Errorf("analysis worker already running")
	}

	w.queue = make(chan Job, w.opts.QueueSize)
	w.running = true

	w.logger.Info("🚀 Starting analysis workers",
		zap.Int("worker_count", w.opts.Workers),
		zap.Int("queue_size", w.opts.QueueSize),
	)
	for i := 0; i < w.opts.Workers; i++ {
		w.wg.Add(1)
		go w.loop(ctx, i)
	}
	return nil
}

// Stop closes the queue and waits for queued jobs to finish or ctx to expire
func (w *Worker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	close(w.queue)
	w.mu.Unlock()

	w.logger.Info("🛑 Stopping analysis workers...")

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.logger.Info("✅ Analysis workers stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("analysis workers did not drain: %w", ctx.Err())
	}
}

// Submit schedules the analysis of message. In async mode a full queue drops the job.
func (w *Worker) Submit(ctx context.Context, meetingID string, message *entities.Message) {
	job := Job{MeetingID: meetingID, Message: message}

	if !w.opts.Async {
		// the request may end before the job does
		w.run(context.WithoutCancel(ctx), 0, job)
		return
	}

	w.mu.RLock()
	defer w.mu.RUnlock()

	if !w.running {
		metrics.RecordAnalysisJob(outcomeDropped)
		w.logger.Warn("Analysis worker not running, job dropped", zap.String("meeting_id", meetingID))
		return
	}

	select {
	case w.queue <- job:
		metrics.SetAnalysisQueueDepth(len(w.queue))
	default:
		metrics.RecordAnalysisJob(outcomeDropped)
		w.logger.Warn("Analysis queue full, job dropped",
			zap.String("meeting_id", meetingID),
			zap.Int("queue_size", cap(w.queue)),
		)
	}
}

func (w *Worker) loop(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for job := range w.queue {
		metrics.SetAnalysisQueueDepth(len(w.queue))
		w.run(ctx, workerID, job)
	}
}

// run never returns an error: failures are logged and counted
func (w *Worker) run(parentCtx context.Context, workerID int, job Job) {
	ctx, cancel := jobcontext.JobBegin(parentCtx, jobType, job.MeetingID, workerID, w.opts.Job)
	defer cancel()

	// each step retries on its own so a retried check never re-applies minutes changes
	var report minutes.ReconcileReport
	reconcileErr := jobcontext.JobEnd(ctx, func(ctx context.Context) error {
		var err error
		report, err = w.reconciler.Reconcile(ctx, job.MeetingID, job.Message)
		return err
	})

	var requested bool
	interventionErr := jobcontext.JobEnd(ctx, func(ctx context.Context) error {
		var err error
		requested, err = w.interventions.Request(ctx, job.MeetingID)
		return err
	})

	if err := errors.Join(reconcileErr, interventionErr); err != nil {
		metrics.RecordAnalysisJob(outcomeError)
		w.logger.Error("❌ Analysis job failed",
			zap.Int("worker_id", workerID),
			zap.String("meeting_id", job.MeetingID),
			zap.Error(err),
		)
		return
	}

	metrics.RecordAnalysisJob(outcomeSuccess)
	w.logger.Debug("Analysis job done",
		zap.Int("worker_id", workerID),
		zap.String("meeting_id", job.MeetingID),
		zap.Bool("minutes_changed", report.Changed()),
		zap.Bool("intervention_requested", requested),
	)
}

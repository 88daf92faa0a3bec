package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Common runner errors
var (
	ErrNoHandler         = errors.New("no handler registered for task type")
	ErrTaskNotCancelable = errors.New("task is not cancelable")
	ErrRunnerStopped     = errors.New("task runner is stopped")
)

// RunnerConfig holds configuration for the task runner
type RunnerConfig struct {
	// WorkersPerType determines how many concurrent workers process each
	// task type's backlog
	WorkersPerType int

	// QueueSize determines the buffer size of each type's backlog
	QueueSize int

	// HandlerTimeout bounds a single task's execution, including any
	// generative-backend calls. On expiry the handler's context is
	// canceled and the task is marked failed.
	HandlerTimeout time.Duration
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkersPerType: 2,
		QueueSize:      100,
		HandlerTimeout: 5 * time.Minute,
	}
}

// Runner manages background task processing: it accepts submissions, fans
// task ids out to per-type worker pools, and writes terminal state back to
// the store. One worker owns one task from active to terminal; no lock is
// held across handler execution, so a slow task never blocks tasks behind a
// different worker.
type Runner struct {
	store    Store
	queue    *Queue
	handlers map[Type]Handler
	config   RunnerConfig
	logger   *slog.Logger

	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup

	// cancels tracks the context cancel function of each in-flight task
	// so a caller-initiated cancel can stop work cooperatively.
	cancelsMu sync.Mutex
	cancels   map[uuid.UUID]context.CancelFunc

	startOnce sync.Once
	stopOnce  sync.Once
}

// NewRunner creates a Runner with the given store and configuration.
// Handlers must be registered before Start.
func NewRunner(store Store, config RunnerConfig, logger *slog.Logger) *Runner {
	if config.WorkersPerType <= 0 {
		config.WorkersPerType = 1
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultRunnerConfig().QueueSize
	}
	if config.HandlerTimeout <= 0 {
		config.HandlerTimeout = DefaultRunnerConfig().HandlerTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		store:      store,
		queue:      NewQueue(config.QueueSize, logger),
		handlers:   make(map[Type]Handler),
		config:     config,
		logger:     logger,
		ctx:        ctx,
		cancelFunc: cancel,
		cancels:    make(map[uuid.UUID]context.CancelFunc),
	}
}

// RegisterHandler binds a handler to a task type. Submissions of a type with
// no handler are rejected at submission time.
func (r *Runner) RegisterHandler(taskType Type, handler Handler) {
	r.handlers[taskType] = handler
}

// Submit persists the task and appends it to its type's backlog. The task
// must already be validated; by the time Submit returns, a poller can
// observe it in StatusWaiting.
func (r *Runner) Submit(ctx context.Context, t *Task) error {
	if _, ok := r.handlers[t.Type]; !ok {
		return fmt.Errorf("%w: %q", ErrNoHandler, t.Type)
	}

	if err := r.store.CreateTask(ctx, t); err != nil {
		return fmt.Errorf("failed to save task: %w", err)
	}

	if err := r.queue.Enqueue(t.Type, t.ID); err != nil {
		// The record exists but will never be picked up; fail it so the
		// poller is not left watching a forever-waiting task.
		if markErr := r.store.MarkActive(ctx, t.ID); markErr == nil {
			_ = r.store.FailTask(ctx, t.ID, "task could not be queued: "+err.Error())
		}
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	return nil
}

// Start launches the per-type worker pools.
func (r *Runner) Start() {
	r.startOnce.Do(func() {
		for taskType := range r.handlers {
			for i := 0; i < r.config.WorkersPerType; i++ {
				r.wg.Add(1)
				go r.worker(taskType, i)
			}
		}
		r.logger.Info("task runner started",
			"task_types", len(r.handlers),
			"workers_per_type", r.config.WorkersPerType)
	})
}

// Stop closes the queue, waits for in-flight tasks to reach a terminal
// state, and releases the workers.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		r.queue.Close()
		r.cancelFunc()
		r.wg.Wait()
		r.logger.Info("task runner stopped")
	})
}

// Cancel requests cooperative cancellation of an in-flight task. A waiting
// or terminal task is not cancelable; the worker that owns an active task
// observes the canceled context at its next checkpoint and fails the task.
func (r *Runner) Cancel(id uuid.UUID) error {
	r.cancelsMu.Lock()
	cancel, ok := r.cancels[id]
	r.cancelsMu.Unlock()

	if !ok {
		return ErrTaskNotCancelable
	}
	cancel()
	return nil
}

// worker consumes one task type's backlog until the queue closes or the
// runner shuts down.
func (r *Runner) worker(taskType Type, workerID int) {
	defer r.wg.Done()

	logger := r.logger.With("task_type", taskType, "worker_id", workerID)
	logger.Debug("starting worker")

	backlog := r.queue.Channel(taskType)
	for {
		select {
		case <-r.ctx.Done():
			logger.Debug("stopping worker")
			return

		case id, ok := <-backlog:
			if !ok {
				logger.Debug("backlog closed, stopping worker")
				return
			}
			r.processTask(taskType, id, logger)
		}
	}
}

// processTask drives a single task from active to terminal.
func (r *Runner) processTask(taskType Type, id uuid.UUID, logger *slog.Logger) {
	ctx := context.Background()
	logger = logger.With("task_id", id)

	// The cancel hook must be registered before the task becomes observable
	// as active: a Cancel arriving between MarkActive and registration would
	// otherwise be rejected for a task its caller already sees as in flight.
	taskCtx, cancel := context.WithTimeout(ctx, r.config.HandlerTimeout)
	r.cancelsMu.Lock()
	r.cancels[id] = cancel
	r.cancelsMu.Unlock()

	defer func() {
		r.cancelsMu.Lock()
		delete(r.cancels, id)
		r.cancelsMu.Unlock()
		cancel()
	}()

	snapshot, err := r.store.GetTask(ctx, id)
	if err != nil {
		logger.Error("failed to load queued task", "error", err)
		return
	}

	if err := r.store.MarkActive(ctx, id); err != nil {
		logger.Error("failed to mark task active", "error", err)
		return
	}

	handler := r.handlers[taskType]

	report := func(progress int) {
		if err := r.store.SetProgress(ctx, id, progress); err != nil {
			logger.Warn("failed to record task progress", "error", err, "progress", progress)
		}
	}

	logger.Info("processing task")
	started := time.Now()

	result, err := handler.Handle(taskCtx, snapshot.Payload, report)

	if err != nil {
		if ctxErr := taskCtx.Err(); ctxErr != nil {
			err = fmt.Errorf("task execution aborted: %w", ctxErr)
		}
		logger.Error("task execution failed",
			"error", err,
			"duration_ms", time.Since(started).Milliseconds())
		if updateErr := r.store.FailTask(ctx, id, err.Error()); updateErr != nil {
			logger.Error("failed to mark task failed", "error", updateErr)
		}
		return
	}

	if updateErr := r.store.CompleteTask(ctx, id, result); updateErr != nil {
		logger.Error("failed to mark task completed", "error", updateErr)
		return
	}

	logger.Info("task completed",
		"duration_ms", time.Since(started).Milliseconds())
}

package task

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
)

// Common errors returned by the Queue
var (
	ErrQueueClosed = errors.New("task queue is closed")
	ErrQueueFull   = errors.New("task queue is full")
)

// Queue is a type-partitioned backlog of pending task ids. Each task type
// has its own buffered channel, so a burst of one type never starves the
// others' workers. Channel receives provide exclusive delivery: an id is
// handed to exactly one worker.
type Queue struct {
	mu       sync.Mutex
	backlogs map[Type]chan uuid.UUID
	logger   *slog.Logger
	closed   bool
}

// NewQueue creates a queue with one backlog of the given buffer size per
// supported task type.
func NewQueue(size int, logger *slog.Logger) *Queue {
	backlogs := make(map[Type]chan uuid.UUID)
	for _, t := range []Type{
		TypeScriptAnalysis,
		TypeScheduleOptimization,
		TypeCastingRecommendation,
		TypeMarketingContent,
	} {
		backlogs[t] = make(chan uuid.UUID, size)
	}

	return &Queue{
		backlogs: backlogs,
		logger:   logger,
	}
}

// Enqueue appends a task id to its type's backlog.
// Returns ErrQueueFull if the backlog buffer is exhausted and ErrQueueClosed
// after Close.
func (q *Queue) Enqueue(taskType Type, id uuid.UUID) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	backlog, ok := q.backlogs[taskType]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTaskType, taskType)
	}

	select {
	case backlog <- id:
		q.logger.Debug("task enqueued",
			"task_id", id,
			"task_type", taskType,
			"backlog_len", len(backlog),
			"backlog_cap", cap(backlog))
		return nil
	default:
		return fmt.Errorf("%w: %q backlog capacity %d reached", ErrQueueFull, taskType, cap(backlog))
	}
}

// Channel returns the read-only backlog for one task type, for consumption
// by that type's workers.
func (q *Queue) Channel(taskType Type) <-chan uuid.UUID {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.backlogs[taskType]
}

// Close closes every backlog, preventing further submission. Workers drain
// the remaining ids before their channels report closed.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	for _, backlog := range q.backlogs {
		close(backlog)
	}
	q.logger.Info("task queue closed")
}

package task

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
)

// Common store errors
var (
	ErrTaskNotFound = errors.New("task not found")
	ErrTaskTerminal = errors.New("task is in a terminal state")
)

// Store persists tasks and serves consistent snapshots to pollers.
//
// Implementations must guarantee single-writer-per-key, many-readers-per-key
// semantics: a concurrent GetTask during an update may return the state
// before or after the update, but never a torn intermediate (for example
// StatusCompleted with a nil result). All writes to a terminal task must be
// rejected with ErrTaskTerminal.
type Store interface {
	// CreateTask persists a new task in StatusWaiting.
	CreateTask(ctx context.Context, t *Task) error

	// GetTask returns a snapshot of the task, or ErrTaskNotFound.
	// The snapshot is a copy; mutating it does not affect the store.
	GetTask(ctx context.Context, id uuid.UUID) (*Task, error)

	// MarkActive transitions the task from waiting to active, recording
	// the start time and resetting progress to zero.
	MarkActive(ctx context.Context, id uuid.UUID) error

	// SetProgress updates progress on an active task. Values are clamped
	// to [0,100] and may never decrease.
	SetProgress(ctx context.Context, id uuid.UUID, progress int) error

	// CompleteTask transitions an active task to completed with a result.
	CompleteTask(ctx context.Context, id uuid.UUID, result json.RawMessage) error

	// FailTask transitions an active task to failed with an error message.
	FailTask(ctx context.Context, id uuid.UUID, errMsg string) error
}

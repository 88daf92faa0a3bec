package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TaskSubmissionEvent announces that a validated task submission is ready
// for background processing. It carries everything a dispatcher needs
// without a direct dependency on the task package; the submitting service
// generates the task id up front so it can return it to the caller before
// the event is handled.
type TaskSubmissionEvent struct {
	// TaskID is the id of the task to be created.
	TaskID uuid.UUID `json:"taskId"`

	// TaskType indicates which handler should process the task.
	TaskType string `json:"taskType"`

	// Payload contains the task-specific data serialized as JSON.
	Payload json.RawMessage `json:"payload"`

	// SubmittedAt is the timestamp when the submission was accepted.
	SubmittedAt time.Time `json:"submittedAt"`
}

// NewTaskSubmissionEvent creates a submission event for an already-validated
// payload.
func NewTaskSubmissionEvent(taskID uuid.UUID, taskType string, payload json.RawMessage) *TaskSubmissionEvent {
	return &TaskSubmissionEvent{
		TaskID:      taskID,
		TaskType:    taskType,
		Payload:     payload,
		SubmittedAt: time.Now().UTC(),
	}
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *TaskSubmissionEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// EventHandler processes submission events. Handlers are responsible for
// turning an accepted submission into queued background work.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskSubmissionEvent) error
}

// EventEmitter publishes submission events. This allows the submitting
// service to stay decoupled from the task runner that consumes them.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	EmitEvent(ctx context.Context, event *TaskSubmissionEvent) error
}

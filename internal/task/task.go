package task

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Status represents the current state of a task
type Status string

// Possible task status values
const (
	StatusWaiting   Status = "waiting"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Type identifies which handler processes a task
type Type string

// Supported task types
const (
	TypeScriptAnalysis        Type = "script-analysis"
	TypeScheduleOptimization  Type = "schedule-optimization"
	TypeCastingRecommendation Type = "casting-recommendation"
	TypeMarketingContent      Type = "marketing-content"
)

// Common task errors
var (
	ErrUnknownTaskType = errors.New("unknown task type")
	ErrInvalidStatus   = errors.New("invalid task status")
)

// Task is a unit of asynchronous work. The submission gateway creates it in
// StatusWaiting; the owning worker moves it through StatusActive to a
// terminal state. Result is set if and only if the task completed; Error is
// set if and only if it failed.
type Task struct {
	ID          uuid.UUID       `json:"id"`
	Type        Type            `json:"type"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Status      Status          `json:"status"`
	Progress    int             `json:"progress"`
	Result      json.RawMessage `json:"result,omitempty"`
	Error       string          `json:"error,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	StartedAt   *time.Time      `json:"startedAt,omitempty"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
}

// New creates a Task in StatusWaiting with a freshly generated id.
// Resubmitting the same payload always yields a new, independent task;
// there is no deduplication across submissions.
func New(taskType Type, payload json.RawMessage) (*Task, error) {
	if !IsValidType(taskType) {
		return nil, ErrUnknownTaskType
	}

	return &Task{
		ID:        uuid.New(),
		Type:      taskType,
		Payload:   payload,
		Status:    StatusWaiting,
		Progress:  0,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// IsValidType reports whether t is a supported task type.
func IsValidType(t Type) bool {
	switch t {
	case TypeScriptAnalysis, TypeScheduleOptimization,
		TypeCastingRecommendation, TypeMarketingContent:
		return true
	default:
		return false
	}
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransitionTo reports whether moving from s to next respects the
// monotonic lifecycle waiting -> active -> completed|failed.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusWaiting:
		return next == StatusActive
	case StatusActive:
		return next == StatusCompleted || next == StatusFailed
	default:
		return false
	}
}

// Terminal reports whether the task has reached a terminal state.
func (t *Task) Terminal() bool {
	return t.Status.Terminal()
}

// Clone returns a deep copy of the task. Stores hand out clones so that a
// poller can never observe a worker's in-progress mutation.
func (t *Task) Clone() *Task {
	c := *t
	if t.Payload != nil {
		c.Payload = append(json.RawMessage(nil), t.Payload...)
	}
	if t.Result != nil {
		c.Result = append(json.RawMessage(nil), t.Result...)
	}
	if t.StartedAt != nil {
		started := *t.StartedAt
		c.StartedAt = &started
	}
	if t.CompletedAt != nil {
		completed := *t.CompletedAt
		c.CompletedAt = &completed
	}
	return &c
}

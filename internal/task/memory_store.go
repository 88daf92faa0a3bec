package task

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store implementation backed by a mutex-guarded
// map. It is the default store for single-process deployments and tests;
// durable deployments inject the postgres implementation instead.
type MemoryStore struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*Task
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tasks: make(map[uuid.UUID]*Task),
	}
}

// CreateTask persists a new task in StatusWaiting.
func (s *MemoryStore) CreateTask(ctx context.Context, t *Task) error {
	if t.Status != StatusWaiting {
		return fmt.Errorf("%w: new task must be waiting, got %q", ErrInvalidStatus, t.Status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[t.ID]; exists {
		return fmt.Errorf("task %s already exists", t.ID)
	}

	s.tasks[t.ID] = t.Clone()
	return nil
}

// GetTask returns a snapshot of the task, or ErrTaskNotFound.
func (s *MemoryStore) GetTask(ctx context.Context, id uuid.UUID) (*Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return t.Clone(), nil
}

// MarkActive transitions the task from waiting to active.
func (s *MemoryStore) MarkActive(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return ErrTaskNotFound
	}
	if t.Terminal() {
		return ErrTaskTerminal
	}
	if !t.Status.CanTransitionTo(StatusActive) {
		return fmt.Errorf("%w: cannot activate task in status %q", ErrInvalidStatus, t.Status)
	}

	now := time.Now().UTC()
	t.Status = StatusActive
	t.StartedAt = &now
	t.Progress = 0
	return nil
}

// SetProgress updates progress on an active task, clamped to [0,100] and
// never decreasing.
func (s *MemoryStore) SetProgress(ctx context.Context, id uuid.UUID, progress int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return ErrTaskNotFound
	}
	if t.Terminal() {
		return ErrTaskTerminal
	}
	if t.Status != StatusActive {
		return fmt.Errorf("%w: progress updates require an active task, got %q", ErrInvalidStatus, t.Status)
	}

	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	if progress > t.Progress {
		t.Progress = progress
	}
	return nil
}

// CompleteTask transitions an active task to completed with a result.
// The status, result, progress, and completion time change under one lock
// acquisition, so a concurrent reader sees either none or all of them.
func (s *MemoryStore) CompleteTask(ctx context.Context, id uuid.UUID, result json.RawMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return ErrTaskNotFound
	}
	if t.Terminal() {
		return ErrTaskTerminal
	}
	if !t.Status.CanTransitionTo(StatusCompleted) {
		return fmt.Errorf("%w: cannot complete task in status %q", ErrInvalidStatus, t.Status)
	}

	now := time.Now().UTC()
	t.Status = StatusCompleted
	t.Result = append(json.RawMessage(nil), result...)
	t.Error = ""
	t.Progress = 100
	t.CompletedAt = &now
	return nil
}

// FailTask transitions an active task to failed with an error message.
func (s *MemoryStore) FailTask(ctx context.Context, id uuid.UUID, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return ErrTaskNotFound
	}
	if t.Terminal() {
		return ErrTaskTerminal
	}
	if !t.Status.CanTransitionTo(StatusFailed) {
		return fmt.Errorf("%w: cannot fail task in status %q", ErrInvalidStatus, t.Status)
	}

	now := time.Now().UTC()
	t.Status = StatusFailed
	t.Result = nil
	t.Error = errMsg
	t.CompletedAt = &now
	return nil
}

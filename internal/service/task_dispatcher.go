package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nollyprod/stagehand-api/internal/events"
	"github.com/nollyprod/stagehand-api/internal/task"
)

// TaskSubmitter persists a task and queues it for background processing.
type TaskSubmitter interface {
	Submit(ctx context.Context, t *task.Task) error
}

// TaskDispatcher bridges submission events to the task runner. It implements
// events.EventHandler so the planning service never depends on the runner
// directly.
type TaskDispatcher struct {
	submitter TaskSubmitter
	logger    *slog.Logger
}

// NewTaskDispatcher creates a TaskDispatcher backed by the given submitter.
func NewTaskDispatcher(submitter TaskSubmitter, logger *slog.Logger) *TaskDispatcher {
	return &TaskDispatcher{
		submitter: submitter,
		logger:    logger.With("component", "task_dispatcher"),
	}
}

// HandleEvent turns a submission event into a persisted, queued task. The
// event carries a pre-generated id so the submitting service could already
// return it to the caller.
func (d *TaskDispatcher) HandleEvent(ctx context.Context, event *events.TaskSubmissionEvent) error {
	taskType := task.Type(event.TaskType)
	if !task.IsValidType(taskType) {
		return fmt.Errorf("%w: %q", task.ErrUnknownTaskType, event.TaskType)
	}
	if event.TaskID == uuid.Nil {
		return fmt.Errorf("task submission event has no task id")
	}

	t := &task.Task{
		ID:        event.TaskID,
		Type:      taskType,
		Payload:   event.Payload,
		Status:    task.StatusWaiting,
		CreatedAt: event.SubmittedAt,
	}

	if err := d.submitter.Submit(ctx, t); err != nil {
		return fmt.Errorf("failed to dispatch task %s: %w", event.TaskID, err)
	}

	d.logger.DebugContext(ctx, "task dispatched",
		"task_id", event.TaskID,
		"task_type", event.TaskType)

	return nil
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nollyprod/stagehand-api/internal/casting"
	"github.com/nollyprod/stagehand-api/internal/events"
	"github.com/nollyprod/stagehand-api/internal/marketing"
	"github.com/nollyprod/stagehand-api/internal/planner"
	"github.com/nollyprod/stagehand-api/internal/script"
	"github.com/nollyprod/stagehand-api/internal/task"
)

// TaskCanceler requests cooperative cancellation of an in-flight task.
type TaskCanceler interface {
	Cancel(id uuid.UUID) error
}

// PlanningService is the submission gateway for production-planning tasks.
// It validates payloads synchronously, so a malformed submission is rejected
// before any task exists, and hands accepted submissions to the background
// runner through the event emitter.
type PlanningService struct {
	store    task.Store
	emitter  events.EventEmitter
	canceler TaskCanceler
	logger   *slog.Logger
}

// NewPlanningService creates a PlanningService.
func NewPlanningService(store task.Store, emitter events.EventEmitter, canceler TaskCanceler, logger *slog.Logger) *PlanningService {
	return &PlanningService{
		store:    store,
		emitter:  emitter,
		canceler: canceler,
		logger:   logger.With("component", "planning_service"),
	}
}

// SubmitTask validates the payload for the given task type and submits it
// for background processing. By the time it returns, a poller can observe
// the task in waiting state.
func (s *PlanningService) SubmitTask(ctx context.Context, taskType task.Type, payload json.RawMessage) (uuid.UUID, error) {
	if !task.IsValidType(taskType) {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrUnknownTaskType, taskType)
	}

	if err := validatePayload(taskType, payload); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	event := events.NewTaskSubmissionEvent(uuid.New(), string(taskType), payload)
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		return uuid.Nil, fmt.Errorf("failed to submit task: %w", err)
	}

	s.logger.InfoContext(ctx, "task submitted",
		"task_id", event.TaskID,
		"task_type", taskType)

	return event.TaskID, nil
}

// GetTaskStatus returns a snapshot of the task. Polling is idempotent and
// has no side effects: repeated reads of a terminal task return the same
// result. Returns task.ErrTaskNotFound for unknown ids.
func (s *PlanningService) GetTaskStatus(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	return s.store.GetTask(ctx, id)
}

// CancelTask requests cooperative cancellation of an active task. Returns
// task.ErrTaskNotFound for unknown ids and task.ErrTaskNotCancelable when
// the task is not in a cancelable state.
func (s *PlanningService) CancelTask(ctx context.Context, id uuid.UUID) error {
	if _, err := s.store.GetTask(ctx, id); err != nil {
		return err
	}
	return s.canceler.Cancel(id)
}

// validatePayload runs the type-specific submission validation. Validation
// failures here are ValidationErrors: the task is never enqueued.
func validatePayload(taskType task.Type, payload json.RawMessage) error {
	switch taskType {
	case task.TypeScriptAnalysis:
		var p script.AnalyzeScriptPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return err
		}
		return p.Validate()

	case task.TypeScheduleOptimization:
		var p planner.OptimizeSchedulePayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return err
		}
		return p.Validate()

	case task.TypeCastingRecommendation:
		var p casting.CastingRecommendationPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return err
		}
		return p.Validate()

	case task.TypeMarketingContent:
		var p marketing.MarketingContentPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return err
		}
		return p.Validate()

	default:
		return fmt.Errorf("no validator for task type %q", taskType)
	}
}

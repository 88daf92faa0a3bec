package service_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nollyprod/stagehand-api/internal/events"
	"github.com/nollyprod/stagehand-api/internal/service"
	"github.com/nollyprod/stagehand-api/internal/task"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func noopHandler() task.Handler {
	return task.HandlerFunc(func(ctx context.Context, payload json.RawMessage, report task.ProgressFunc) (json.RawMessage, error) {
		return json.RawMessage(`{}`), nil
	})
}

// newPlanningService wires a planning service against a real in-memory store,
// emitter, dispatcher, and runner, without starting the workers.
func newPlanningService(t *testing.T) (*service.PlanningService, *task.MemoryStore) {
	t.Helper()

	store := task.NewMemoryStore()
	runner := task.NewRunner(store, task.RunnerConfig{WorkersPerType: 1, QueueSize: 10}, discardLogger())
	t.Cleanup(runner.Stop)

	for _, taskType := range []task.Type{
		task.TypeScriptAnalysis,
		task.TypeScheduleOptimization,
		task.TypeCastingRecommendation,
		task.TypeMarketingContent,
	} {
		runner.RegisterHandler(taskType, noopHandler())
	}

	emitter := events.NewInMemoryEventEmitter(discardLogger())
	emitter.RegisterHandler(service.NewTaskDispatcher(runner, discardLogger()))

	return service.NewPlanningService(store, emitter, runner, discardLogger()), store
}

func TestSubmitTask(t *testing.T) {
	svc, store := newPlanningService(t)
	ctx := context.Background()

	id, err := svc.SubmitTask(ctx, task.TypeScriptAnalysis,
		json.RawMessage(`{"scriptText": "INT. OFFICE - DAY"}`))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	// The task is observable in waiting state before any worker runs.
	got, err := store.GetTask(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, task.StatusWaiting, got.Status)
	assert.Equal(t, task.TypeScriptAnalysis, got.Type)
}

func TestSubmitTaskRejectsUnknownType(t *testing.T) {
	svc, _ := newPlanningService(t)

	_, err := svc.SubmitTask(context.Background(), task.Type("catering"), json.RawMessage(`{}`))
	assert.ErrorIs(t, err, service.ErrUnknownTaskType)
}

func TestSubmitTaskValidatesPayloads(t *testing.T) {
	svc, _ := newPlanningService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		taskType task.Type
		payload  string
	}{
		{"script without text", task.TypeScriptAnalysis, `{}`},
		{"schedule with negative maxDays", task.TypeScheduleOptimization, `{"maxDays": -2}`},
		{"schedule with invalid scene", task.TypeScheduleOptimization, `{"scenes": [{"name": "no id"}]}`},
		{"casting without role", task.TypeCastingRecommendation, `{"candidates": []}`},
		{"marketing without title", task.TypeMarketingContent, `{"brief": {}}`},
		{"not json at all", task.TypeScriptAnalysis, `scriptText=yes`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SubmitTask(ctx, tc.taskType, json.RawMessage(tc.payload))
			assert.ErrorIs(t, err, service.ErrInvalidPayload)
		})
	}
}

func TestGetTaskStatus(t *testing.T) {
	svc, _ := newPlanningService(t)
	ctx := context.Background()

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.GetTaskStatus(ctx, uuid.New())
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})

	t.Run("round trip", func(t *testing.T) {
		id, err := svc.SubmitTask(ctx, task.TypeMarketingContent,
			json.RawMessage(`{"brief": {"projectTitle": "Harbor Lights"}}`))
		require.NoError(t, err)

		got, err := svc.GetTaskStatus(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, got.ID)
	})
}

func TestCancelTask(t *testing.T) {
	svc, _ := newPlanningService(t)
	ctx := context.Background()

	t.Run("unknown id", func(t *testing.T) {
		assert.ErrorIs(t, svc.CancelTask(ctx, uuid.New()), task.ErrTaskNotFound)
	})

	t.Run("waiting task is not cancelable", func(t *testing.T) {
		id, err := svc.SubmitTask(ctx, task.TypeScriptAnalysis,
			json.RawMessage(`{"scriptText": "INT. OFFICE - DAY"}`))
		require.NoError(t, err)

		assert.ErrorIs(t, svc.CancelTask(ctx, id), task.ErrTaskNotCancelable)
	})
}

package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nollyprod/stagehand-api/internal/api"
	"github.com/nollyprod/stagehand-api/internal/domain"
	"github.com/nollyprod/stagehand-api/internal/events"
	"github.com/nollyprod/stagehand-api/internal/planner"
	"github.com/nollyprod/stagehand-api/internal/service"
	"github.com/nollyprod/stagehand-api/internal/task"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestRouter wires the task endpoints against an in-memory stack without
// starting the workers, so submitted tasks stay observable in waiting state.
func newTestRouter(t *testing.T) http.Handler {
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
		runner.RegisterHandler(taskType, task.HandlerFunc(
			func(ctx context.Context, payload json.RawMessage, report task.ProgressFunc) (json.RawMessage, error) {
				return json.RawMessage(`{}`), nil
			}))
	}

	emitter := events.NewInMemoryEventEmitter(discardLogger())
	emitter.RegisterHandler(service.NewTaskDispatcher(runner, discardLogger()))
	planning := service.NewPlanningService(store, emitter, runner, discardLogger())

	handler := api.NewTaskHandler(planning)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/tasks", handler.SubmitTask)
		r.Get("/tasks/{id}", handler.GetTask)
		r.Delete("/tasks/{id}", handler.CancelTask)
	})
	return r
}

func submitTask(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSubmitTaskEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := submitTask(t, router, `{
		"type": "script-analysis",
		"payload": {"scriptText": "INT. OFFICE - DAY"}
	}`)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp api.SubmitTaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "waiting", resp.Status)

	_, err := uuid.Parse(resp.ID)
	assert.NoError(t, err)
}

func TestSubmitTaskEndpointRejectsBadRequests(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"not json", `task please`},
		{"missing type", `{"payload": {}}`},
		{"missing payload", `{"type": "script-analysis"}`},
		{"unknown type", `{"type": "catering", "payload": {}}`},
		{"invalid payload", `{"type": "script-analysis", "payload": {}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := submitTask(t, router, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestGetTaskEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := submitTask(t, router, `{
		"type": "marketing-content",
		"payload": {"brief": {"projectTitle": "Harbor Lights"}}
	}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var submitted api.SubmitTaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submitted))

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/"+submitted.ID, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, req)

	require.Equal(t, http.StatusOK, getRec.Code)

	var resp api.TaskResponse
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &resp))
	assert.Equal(t, submitted.ID, resp.ID)
	assert.Equal(t, "marketing-content", resp.Type)
	assert.Equal(t, "waiting", resp.Status)
	assert.Equal(t, 0, resp.Progress)
	assert.Empty(t, resp.Result)
	assert.Empty(t, resp.Error)
}

func TestGetTaskEndpointUnknownID(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetTaskEndpointInvalidID(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCancelTaskEndpoint(t *testing.T) {
	router := newTestRouter(t)

	t.Run("unknown task", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/tasks/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("waiting task conflicts", func(t *testing.T) {
		rec := submitTask(t, router, `{
			"type": "script-analysis",
			"payload": {"scriptText": "INT. OFFICE - DAY"}
		}`)
		require.Equal(t, http.StatusAccepted, rec.Code)

		var submitted api.SubmitTaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submitted))

		req := httptest.NewRequest(http.MethodDelete, "/api/tasks/"+submitted.ID, nil)
		cancelRec := httptest.NewRecorder()
		router.ServeHTTP(cancelRec, req)

		assert.Equal(t, http.StatusConflict, cancelRec.Code)
	})
}

// newPlanningRouter wires the endpoints with the real schedule-optimization
// handler and started workers, so tasks run to completion. No generative
// backend is configured; the optimizer takes its deterministic path.
func newPlanningRouter(t *testing.T) http.Handler {
	t.Helper()

	store := task.NewMemoryStore()
	runner := task.NewRunner(store, task.RunnerConfig{WorkersPerType: 1, QueueSize: 10}, discardLogger())
	t.Cleanup(runner.Stop)

	optimizer := planner.NewOptimizer(nil, planner.OptimizerConfig{
		BaselineCost:        500000,
		WeatherRiskInterval: 3,
	}, discardLogger())
	runner.RegisterHandler(task.TypeScheduleOptimization, planner.NewTaskHandler(optimizer))

	emitter := events.NewInMemoryEventEmitter(discardLogger())
	emitter.RegisterHandler(service.NewTaskDispatcher(runner, discardLogger()))
	planning := service.NewPlanningService(store, emitter, runner, discardLogger())

	handler := api.NewTaskHandler(planning)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/tasks", handler.SubmitTask)
		r.Get("/tasks/{id}", handler.GetTask)
		r.Delete("/tasks/{id}", handler.CancelTask)
	})

	runner.Start()
	return r
}

func TestScheduleOptimizationEndToEnd(t *testing.T) {
	router := newPlanningRouter(t)

	rec := submitTask(t, router, `{
		"type": "schedule-optimization",
		"payload": {
			"scenes": [
				{"id": "SCN-1", "location": "Street", "duration": 120},
				{"id": "SCN-2", "location": "Street", "duration": 90},
				{"id": "SCN-3", "location": "Market", "duration": 60},
				{"id": "SCN-4", "location": "Harbor", "duration": 30}
			],
			"maxDays": 2
		}
	}`)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var submitted api.SubmitTaskResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &submitted))

	var final api.TaskResponse
	require.Eventually(t, func() bool {
		req := httptest.NewRequest(http.MethodGet, "/api/tasks/"+submitted.ID, nil)
		getRec := httptest.NewRecorder()
		router.ServeHTTP(getRec, req)
		if getRec.Code != http.StatusOK {
			return false
		}
		if err := json.Unmarshal(getRec.Body.Bytes(), &final); err != nil {
			return false
		}
		return final.Status == "completed"
	}, 3*time.Second, 5*time.Millisecond)

	assert.Equal(t, 100, final.Progress)
	assert.Empty(t, final.Error)

	var result struct {
		Optimization domain.ScheduleOptimizationResult `json:"optimization"`
		Provenance   domain.Provenance                 `json:"provenance"`
	}
	require.NoError(t, json.Unmarshal(final.Result, &result))

	assert.Equal(t, domain.SourceFallback, result.Provenance.Source)

	plan := result.Optimization
	require.Len(t, plan.Days, 2)
	assert.Equal(t, 2, plan.TotalDays)

	assert.Equal(t, []string{"SCN-1", "SCN-2"}, plan.Days[0].Scenes)
	assert.Equal(t, []string{"SCN-3", "SCN-4"}, plan.Days[1].Scenes)
	assert.Equal(t, 210, plan.Days[0].TotalDuration)
	assert.Equal(t, 90, plan.Days[1].TotalDuration)

	// Every day fits a 12-hour shooting window and the plan is an exact
	// partition of the submitted scene ids.
	for _, day := range plan.Days {
		assert.LessOrEqual(t, day.TotalDuration, 12*60)
	}
	assert.ElementsMatch(t, []string{"SCN-1", "SCN-2", "SCN-3", "SCN-4"}, plan.SceneIDs())
}

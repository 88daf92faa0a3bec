package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nollyprod/stagehand-api/internal/events"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingHandler captures every event it receives.
type recordingHandler struct {
	received []*events.TaskSubmissionEvent
	err      error
}

func (h *recordingHandler) HandleEvent(ctx context.Context, event *events.TaskSubmissionEvent) error {
	h.received = append(h.received, event)
	return h.err
}

func TestNewTaskSubmissionEvent(t *testing.T) {
	id := uuid.New()
	payload := json.RawMessage(`{"scriptText": "INT. OFFICE - DAY"}`)

	event := events.NewTaskSubmissionEvent(id, "script-analysis", payload)

	assert.Equal(t, id, event.TaskID)
	assert.Equal(t, "script-analysis", event.TaskType)
	assert.False(t, event.SubmittedAt.IsZero())

	var decoded struct {
		ScriptText string `json:"scriptText"`
	}
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, "INT. OFFICE - DAY", decoded.ScriptText)
}

func TestEmitEventDeliversSynchronously(t *testing.T) {
	emitter := events.NewInMemoryEventEmitter(discardLogger())
	handler := &recordingHandler{}
	emitter.RegisterHandler(handler)

	event := events.NewTaskSubmissionEvent(uuid.New(), "script-analysis", nil)
	require.NoError(t, emitter.EmitEvent(context.Background(), event))

	// Synchronous delivery: the handler has run by the time EmitEvent returns.
	require.Len(t, handler.received, 1)
	assert.Equal(t, event.TaskID, handler.received[0].TaskID)
}

func TestEmitEventWithNoHandlers(t *testing.T) {
	emitter := events.NewInMemoryEventEmitter(discardLogger())

	event := events.NewTaskSubmissionEvent(uuid.New(), "script-analysis", nil)
	assert.NoError(t, emitter.EmitEvent(context.Background(), event))
}

func TestEmitEventDeliversToAllHandlersDespiteErrors(t *testing.T) {
	emitter := events.NewInMemoryEventEmitter(discardLogger())

	failing := &recordingHandler{err: errors.New("dispatch failed")}
	healthy := &recordingHandler{}
	emitter.RegisterHandler(failing)
	emitter.RegisterHandler(healthy)

	event := events.NewTaskSubmissionEvent(uuid.New(), "marketing-content", nil)
	err := emitter.EmitEvent(context.Background(), event)

	assert.ErrorContains(t, err, "dispatch failed")
	assert.Len(t, failing.received, 1)
	assert.Len(t, healthy.received, 1, "later handlers still receive the event")
}

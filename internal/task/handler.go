package task

import (
	"context"
	"encoding/json"
)

// ProgressFunc reports handler progress in percent. The runner clamps values
// to [0,100] and ignores regressions, so handlers may report approximate
// milestones freely.
type ProgressFunc func(progress int)

// Handler executes one task type's work. The payload is the raw submission
// payload; the returned value becomes the task's result.
//
// Handlers must absorb generative-backend failures via their local fallback
// path and return an error only for genuine logic failures: a returned error
// marks the task failed with no automatic retry. The context carries the
// per-task execution deadline and is canceled on a caller-initiated cancel;
// handlers should check it between bounded units of work.
type Handler interface {
	Handle(ctx context.Context, payload json.RawMessage, report ProgressFunc) (json.RawMessage, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, payload json.RawMessage, report ProgressFunc) (json.RawMessage, error)

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, payload json.RawMessage, report ProgressFunc) (json.RawMessage, error) {
	return f(ctx, payload, report)
}

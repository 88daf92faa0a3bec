package script

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nollyprod/stagehand-api/internal/domain"
	"github.com/nollyprod/stagehand-api/internal/task"
)

// ErrEmptyScript rejects submissions with no script text at all.
var ErrEmptyScript = errors.New("script text cannot be empty")

// AnalyzeScriptPayload is the script-analysis task payload.
type AnalyzeScriptPayload struct {
	ProjectID  string `json:"projectId,omitempty"`
	ScriptText string `json:"scriptText"`
}

// Validate checks the payload at submission time, before the task is
// enqueued.
func (p *AnalyzeScriptPayload) Validate() error {
	if p.ScriptText == "" {
		return ErrEmptyScript
	}
	return nil
}

// NewTaskHandler returns the task handler for script-analysis tasks.
func NewTaskHandler(analyzer *Analyzer) task.Handler {
	return task.HandlerFunc(func(ctx context.Context, payload json.RawMessage, report task.ProgressFunc) (json.RawMessage, error) {
		var p AnalyzeScriptPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("invalid script-analysis payload: %w", err)
		}

		report(10)

		outcome := analyzer.Analyze(ctx, p.ScriptText)
		report(70)

		result, err := json.Marshal(struct {
			*domain.ScriptOutcome
			ProjectID string `json:"projectId,omitempty"`
		}{ScriptOutcome: outcome, ProjectID: p.ProjectID})
		if err != nil {
			return nil, fmt.Errorf("failed to encode script analysis: %w", err)
		}

		report(100)
		return result, nil
	})
}

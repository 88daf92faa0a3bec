package marketing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nollyprod/stagehand-api/internal/domain"
	"github.com/nollyprod/stagehand-api/internal/task"
)

// ErrEmptyProjectTitle rejects submissions without a project title.
var ErrEmptyProjectTitle = errors.New("project title cannot be empty")

// MarketingContentPayload is the marketing-content task payload.
type MarketingContentPayload struct {
	ProjectID string                `json:"projectId,omitempty"`
	Brief     domain.MarketingBrief `json:"brief"`
}

// Validate checks the payload at submission time, before the task is
// enqueued.
func (p *MarketingContentPayload) Validate() error {
	if p.Brief.ProjectTitle == "" {
		return ErrEmptyProjectTitle
	}
	return nil
}

// NewTaskHandler returns the task handler for marketing-content tasks.
func NewTaskHandler(generator *Generator) task.Handler {
	return task.HandlerFunc(func(ctx context.Context, payload json.RawMessage, report task.ProgressFunc) (json.RawMessage, error) {
		var p MarketingContentPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("invalid marketing-content payload: %w", err)
		}

		report(10)

		outcome := generator.Generate(ctx, p.Brief)
		report(70)

		result, err := json.Marshal(struct {
			*domain.MarketingOutcome
			ProjectID string `json:"projectId,omitempty"`
		}{MarketingOutcome: outcome, ProjectID: p.ProjectID})
		if err != nil {
			return nil, fmt.Errorf("failed to encode marketing content: %w", err)
		}

		report(100)
		return result, nil
	})
}

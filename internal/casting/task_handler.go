package casting

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nollyprod/stagehand-api/internal/domain"
	"github.com/nollyprod/stagehand-api/internal/task"
)

// CastingRecommendationPayload is the casting-recommendation task payload.
type CastingRecommendationPayload struct {
	ProjectID            string             `json:"projectId,omitempty"`
	Role                 string             `json:"role"`
	CharacterDescription string             `json:"characterDescription,omitempty"`
	Requirements         string             `json:"requirements,omitempty"`
	Candidates           []domain.Candidate `json:"candidates"`
	Limit                int                `json:"limit,omitempty"`
}

// Validate checks the payload at submission time, before the task is
// enqueued.
func (p *CastingRecommendationPayload) Validate() error {
	if p.Role == "" {
		return domain.ErrEmptyRole
	}
	for i, candidate := range p.Candidates {
		if err := candidate.Validate(); err != nil {
			return fmt.Errorf("candidate %d: %w", i, err)
		}
	}
	return nil
}

// NewTaskHandler returns the task handler for casting-recommendation tasks.
func NewTaskHandler(scorer *Scorer) task.Handler {
	return task.HandlerFunc(func(ctx context.Context, payload json.RawMessage, report task.ProgressFunc) (json.RawMessage, error) {
		var p CastingRecommendationPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("invalid casting-recommendation payload: %w", err)
		}

		report(10)

		outcome := scorer.Score(ctx, p.Role, p.CharacterDescription, p.Requirements, p.Candidates)
		if p.Limit > 0 && len(outcome.Recommendations) > p.Limit {
			outcome.Recommendations = outcome.Recommendations[:p.Limit]
		}
		report(70)

		result, err := json.Marshal(struct {
			*domain.CastingOutcome
			ProjectID string `json:"projectId,omitempty"`
		}{CastingOutcome: outcome, ProjectID: p.ProjectID})
		if err != nil {
			return nil, fmt.Errorf("failed to encode casting recommendations: %w", err)
		}

		report(100)
		return result, nil
	})
}

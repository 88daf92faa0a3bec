package planner

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nollyprod/stagehand-api/internal/domain"
	"github.com/nollyprod/stagehand-api/internal/task"
)

// Default constraints applied when the submission omits them.
const (
	DefaultMaxDays        = 10
	DefaultMaxHoursPerDay = 10
	DefaultDaylightStart  = "06:00"
	DefaultDaylightEnd    = "18:00"
)

// OptimizeSchedulePayload is the schedule-optimization task payload.
// MaxDailyScenes is accepted for compatibility with existing clients but
// does not influence the optimizer.
type OptimizeSchedulePayload struct {
	ProjectID             string              `json:"projectId,omitempty"`
	Scenes                []domain.Scene      `json:"scenes"`
	MaxDailyScenes        int                 `json:"maxDailyScenes,omitempty"`
	MaxDays               int                 `json:"maxDays,omitempty"`
	MaxHoursPerDay        int                 `json:"maxHoursPerDay,omitempty"`
	LocationCosts         map[string]float64  `json:"locationCosts,omitempty"`
	DaylightHours         *domain.DaylightWindow `json:"daylightHours,omitempty"`
	CrewAvailability      map[string][]string `json:"crewAvailability,omitempty"`
	EquipmentAvailability map[string][]string `json:"equipmentAvailability,omitempty"`
	WeatherDependencies   []string            `json:"weatherDependencies,omitempty"`
}

// Constraints converts the payload into optimizer constraints, applying
// defaults for omitted fields.
func (p *OptimizeSchedulePayload) Constraints() domain.Constraints {
	c := domain.Constraints{
		MaxDays:               p.MaxDays,
		MaxHoursPerDay:        p.MaxHoursPerDay,
		LocationCosts:         p.LocationCosts,
		CrewAvailability:      p.CrewAvailability,
		EquipmentAvailability: p.EquipmentAvailability,
		WeatherDependencies:   p.WeatherDependencies,
	}
	if c.MaxDays == 0 {
		c.MaxDays = DefaultMaxDays
	}
	if c.MaxHoursPerDay == 0 {
		c.MaxHoursPerDay = DefaultMaxHoursPerDay
	}
	if p.DaylightHours != nil {
		c.DaylightHours = *p.DaylightHours
	} else {
		c.DaylightHours = domain.DaylightWindow{Start: DefaultDaylightStart, End: DefaultDaylightEnd}
	}
	return c
}

// Validate checks the payload at submission time, before the task is
// enqueued.
func (p *OptimizeSchedulePayload) Validate() error {
	if p.MaxDays < 0 {
		return domain.ErrInvalidMaxDays
	}
	for i, scene := range p.Scenes {
		if err := scene.Validate(); err != nil {
			return fmt.Errorf("scene %d: %w", i, err)
		}
	}
	return nil
}

// NewTaskHandler returns the task handler for schedule-optimization tasks.
func NewTaskHandler(optimizer *Optimizer) task.Handler {
	return task.HandlerFunc(func(ctx context.Context, payload json.RawMessage, report task.ProgressFunc) (json.RawMessage, error) {
		var p OptimizeSchedulePayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, fmt.Errorf("invalid schedule-optimization payload: %w", err)
		}

		report(10)

		outcome := optimizer.Optimize(ctx, p.Scenes, p.Constraints())
		report(70)

		result, err := json.Marshal(struct {
			*domain.ScheduleOutcome
			ProjectID string `json:"projectId,omitempty"`
		}{ScheduleOutcome: outcome, ProjectID: p.ProjectID})
		if err != nil {
			return nil, fmt.Errorf("failed to encode optimization result: %w", err)
		}

		report(100)
		return result, nil
	})
}

package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nollyprod/stagehand-api/internal/domain"
	"github.com/nollyprod/stagehand-api/internal/generation"
)

const systemPrompt = "You are a professional film production scheduler. " +
	"Create optimal shooting schedules that minimize costs and maximize efficiency. " +
	"Always return valid JSON. Consider all constraints carefully."

// OptimizerConfig tunes the fallback heuristic. The baseline cost and the
// weather-risk interval preserve long-observed behavior; change them only in
// coordination with downstream consumers of the schedule payload.
type OptimizerConfig struct {
	// BaselineCost is the fixed estimated cost the fallback reports for a
	// non-empty schedule. The fallback deliberately ignores the supplied
	// location costs.
	BaselineCost float64

	// WeatherRiskInterval flags every Nth day as weather-dependent in the
	// fallback. A placeholder risk policy, not a business rule.
	WeatherRiskInterval int
}

// DefaultOptimizerConfig returns the observed production defaults.
func DefaultOptimizerConfig() OptimizerConfig {
	return OptimizerConfig{
		BaselineCost:        500000,
		WeatherRiskInterval: 3,
	}
}

// Optimizer produces day-by-day shoot plans from scenes and constraints.
// A nil generator disables the generative path entirely.
type Optimizer struct {
	generator generation.TextGenerator
	config    OptimizerConfig
	logger    *slog.Logger
}

// NewOptimizer creates an Optimizer. generator may be nil, in which case
// every call takes the fallback path.
func NewOptimizer(generator generation.TextGenerator, config OptimizerConfig, logger *slog.Logger) *Optimizer {
	if config.WeatherRiskInterval <= 0 {
		config.WeatherRiskInterval = DefaultOptimizerConfig().WeatherRiskInterval
	}

	return &Optimizer{
		generator: generator,
		config:    config,
		logger:    logger.With("component", "schedule_optimizer"),
	}
}

// Optimize produces a shoot plan for the given scenes under the given
// constraints. It never returns an error: backend problems are absorbed by
// the fallback path and recorded in the outcome's provenance.
func (o *Optimizer) Optimize(ctx context.Context, scenes []domain.Scene, constraints domain.Constraints) *domain.ScheduleOutcome {
	if o.generator == nil {
		return &domain.ScheduleOutcome{
			Result:     o.fallback(scenes, constraints),
			Provenance: domain.Fallback("generative backend not configured"),
		}
	}

	result, err := o.optimizeGenerative(ctx, scenes, constraints)
	if err != nil {
		o.logger.Warn("generative schedule optimization failed, using fallback",
			"error", err,
			"scene_count", len(scenes))
		return &domain.ScheduleOutcome{
			Result:     o.fallback(scenes, constraints),
			Provenance: domain.Fallback(err.Error()),
		}
	}

	return &domain.ScheduleOutcome{
		Result:     *result,
		Provenance: domain.Generative(),
	}
}

// optimizeGenerative asks the backend for a plan and validates the response
// shape. Any error here sends the caller to the fallback.
func (o *Optimizer) optimizeGenerative(ctx context.Context, scenes []domain.Scene, constraints domain.Constraints) (*domain.ScheduleOptimizationResult, error) {
	prompt, err := buildPrompt(scenes, constraints)
	if err != nil {
		return nil, fmt.Errorf("failed to build prompt: %w", err)
	}

	raw, err := o.generator.GenerateJSON(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, err
	}

	var result domain.ScheduleOptimizationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrMalformedResponse, err)
	}

	if len(scenes) > 0 && len(result.Days) == 0 {
		return nil, fmt.Errorf("%w: backend returned no shoot days", generation.ErrMalformedResponse)
	}

	result.Normalize()
	return &result, nil
}

// buildPrompt renders the scenes and constraints into the structured
// optimization request.
func buildPrompt(scenes []domain.Scene, constraints domain.Constraints) (string, error) {
	scenesJSON, err := json.MarshalIndent(scenes, "", "  ")
	if err != nil {
		return "", err
	}
	locationCosts, err := json.Marshal(constraints.LocationCosts)
	if err != nil {
		return "", err
	}
	crew, err := json.Marshal(constraints.CrewAvailability)
	if err != nil {
		return "", err
	}
	equipment, err := json.Marshal(constraints.EquipmentAvailability)
	if err != nil {
		return "", err
	}
	weather, err := json.Marshal(constraints.WeatherDependencies)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(`Optimize this film shooting schedule with the following constraints:

Scenes:
%s

Constraints:
- Maximum days: %d
- Maximum hours per day: %d
- Location costs: %s
- Daylight hours: %s - %s
- Crew availability: %s
- Equipment availability: %s
- Weather dependencies: %s

Return a JSON object with this structure:
{
  "days": [
    {
      "day": 1,
      "date": "2026-01-01",
      "scenes": ["SCN-1", "SCN-2"],
      "totalDuration": 480,
      "locations": ["Location1", "Location2"],
      "crewCall": "07:00",
      "shootStart": "08:00",
      "lunch": "12:00-13:00",
      "wrap": "18:00",
      "equipmentNeeded": ["Camera1", "Light1"],
      "specialRequirements": ["Special requirement 1"],
      "weatherDependencies": ["Scene requiring good weather"]
    }
  ],
  "totalDays": 5,
  "estimatedCost": 500000,
  "costBreakdown": {"crew": 200000, "equipment": 150000, "locations": 100000, "other": 50000},
  "optimizationNotes": ["Note1", "Note2"],
  "riskAssessment": {
    "highRiskDays": [3],
    "weatherDependencies": ["Day 2 scenes"],
    "crewFatigueFactors": ["Long consecutive shooting days"]
  },
  "resourceAllocation": {
    "crew": {"director": 1, "camera": 3},
    "equipment": {"cameras": 2, "lights": 5},
    "locations": {"studio": 2, "exterior": 1}
  }
}

Optimize for:
1. Minimize location changes
2. Group scenes by time of day
3. Respect daylight hours for exterior scenes
4. Minimize total cost
5. Balance daily workload
6. Consider crew fatigue
7. Account for equipment availability
8. Plan for weather dependencies`,
		scenesJSON,
		constraints.MaxDays,
		constraints.MaxHoursPerDay,
		locationCosts,
		constraints.DaylightHours.Start,
		constraints.DaylightHours.End,
		crew,
		equipment,
		weather,
	), nil
}

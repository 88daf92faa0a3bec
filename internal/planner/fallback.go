package planner

import (
	"math"

	"github.com/nollyprod/stagehand-api/internal/domain"
)

// Fixed placeholders applied by the fallback plan. The fallback cannot infer
// real equipment needs from scene metadata, so every day carries the same
// baseline kit.
var fallbackEquipment = []string{"Camera A", "Lighting Kit"}

var fallbackNotes = []string{
	"Optimized for location grouping",
	"Balanced daily workload",
}

// fallback partitions scenes into ceil(sceneCount/maxDays)-sized contiguous
// chunks preserving input order. It applies a uniform call-time template
// without validating against maxHoursPerDay, reports a fixed baseline cost
// that ignores the supplied location costs, and flags every
// WeatherRiskInterval-th day as weather-dependent.
func (o *Optimizer) fallback(scenes []domain.Scene, constraints domain.Constraints) domain.ScheduleOptimizationResult {
	var result domain.ScheduleOptimizationResult

	if len(scenes) == 0 || constraints.MaxDays < 1 {
		result.Normalize()
		return result
	}

	scenesPerDay := int(math.Ceil(float64(len(scenes)) / float64(constraints.MaxDays)))

	for day := 1; day <= constraints.MaxDays; day++ {
		start := (day - 1) * scenesPerDay
		if start >= len(scenes) {
			// Days that would receive zero scenes are omitted entirely.
			break
		}
		end := start + scenesPerDay
		if end > len(scenes) {
			end = len(scenes)
		}
		chunk := scenes[start:end]

		shootDay := domain.ShootDay{
			Day:                 day,
			Scenes:              sceneIDs(chunk),
			TotalDuration:       totalDuration(chunk),
			Locations:           dedupedLocations(chunk),
			CrewCall:            domain.DefaultCrewCall,
			ShootStart:          domain.DefaultShootStart,
			Lunch:               domain.DefaultLunch,
			Wrap:                domain.DefaultWrap,
			EquipmentNeeded:     append([]string(nil), fallbackEquipment...),
			SpecialRequirements: []string{},
			WeatherDependencies: []string{},
		}
		if day%o.config.WeatherRiskInterval == 0 {
			shootDay.WeatherDependencies = []string{"Exterior scenes"}
			result.RiskAssessment.HighRiskDays = append(result.RiskAssessment.HighRiskDays, day)
		}

		result.Days = append(result.Days, shootDay)
	}

	result.EstimatedCost = o.config.BaselineCost
	result.CostBreakdown = baselineBreakdown(o.config.BaselineCost)
	result.OptimizationNotes = append([]string(nil), fallbackNotes...)
	result.RiskAssessment.WeatherDependencies = append([]string(nil), constraints.WeatherDependencies...)
	if len(result.Days) > 1 {
		result.RiskAssessment.CrewFatigueFactors = []string{"Long consecutive shooting days"}
	}
	result.Resources = fallbackResources(result.Days)

	result.Normalize()
	return result
}

// baselineBreakdown splits the baseline cost across the standard categories
// in fixed proportions.
func baselineBreakdown(baseline float64) map[string]float64 {
	return map[string]float64{
		"crew":      baseline * 0.4,
		"equipment": baseline * 0.3,
		"locations": baseline * 0.2,
		"other":     baseline * 0.1,
	}
}

// fallbackResources summarizes location usage from the plan itself and
// applies a fixed crew/equipment template.
func fallbackResources(days []domain.ShootDay) domain.ResourceAllocation {
	locations := map[string]int{}
	for _, d := range days {
		for _, loc := range d.Locations {
			locations[loc]++
		}
	}

	return domain.ResourceAllocation{
		Crew:      map[string]int{"director": 1, "camera": 3},
		Equipment: map[string]int{"cameras": 2, "lights": 5},
		Locations: locations,
	}
}

func sceneIDs(scenes []domain.Scene) []string {
	ids := make([]string, 0, len(scenes))
	for _, s := range scenes {
		ids = append(ids, s.ID)
	}
	return ids
}

func totalDuration(scenes []domain.Scene) int {
	total := 0
	for _, s := range scenes {
		total += s.Duration()
	}
	return total
}

func dedupedLocations(scenes []domain.Scene) []string {
	seen := map[string]bool{}
	locations := make([]string, 0, len(scenes))
	for _, s := range scenes {
		if !seen[s.Location] {
			seen[s.Location] = true
			locations = append(locations, s.Location)
		}
	}
	return locations
}

package domain

// Fixed call-time template applied by the fallback scheduler. The generative
// path is asked for per-day times but falls back to the same template when a
// day omits them.
const (
	DefaultCrewCall   = "07:00"
	DefaultShootStart = "08:00"
	DefaultLunch      = "12:00-13:00"
	DefaultWrap       = "18:00"
)

// ShootDay groups the scenes assigned to one calendar day of production,
// together with the day's logistics.
type ShootDay struct {
	Day                 int      `json:"day"`
	Date                string   `json:"date,omitempty"`
	Scenes              []string `json:"scenes"`
	TotalDuration       int      `json:"totalDuration"`
	Locations           []string `json:"locations"`
	CrewCall            string   `json:"crewCall"`
	ShootStart          string   `json:"shootStart"`
	Lunch               string   `json:"lunch"`
	Wrap                string   `json:"wrap"`
	EquipmentNeeded     []string `json:"equipmentNeeded"`
	SpecialRequirements []string `json:"specialRequirements"`
	WeatherDependencies []string `json:"weatherDependencies"`
}

// RiskAssessment surfaces schedule-level risk factors alongside the plan.
type RiskAssessment struct {
	HighRiskDays        []int    `json:"highRiskDays"`
	WeatherDependencies []string `json:"weatherDependencies"`
	CrewFatigueFactors  []string `json:"crewFatigueFactors"`
}

// ResourceAllocation summarizes crew, equipment, and location usage across
// the whole schedule.
type ResourceAllocation struct {
	Crew      map[string]int `json:"crew"`
	Equipment map[string]int `json:"equipment"`
	Locations map[string]int `json:"locations"`
}

// ScheduleOptimizationResult is the optimizer's day-by-day shoot plan.
//
// When the optimizer succeeds, the Scenes fields across Days form an exact
// partition of the input scene-id set: every id appears exactly once.
type ScheduleOptimizationResult struct {
	Days              []ShootDay         `json:"days"`
	TotalDays         int                `json:"totalDays"`
	EstimatedCost     float64            `json:"estimatedCost"`
	CostBreakdown     map[string]float64 `json:"costBreakdown"`
	OptimizationNotes []string           `json:"optimizationNotes"`
	RiskAssessment    RiskAssessment     `json:"riskAssessment"`
	Resources         ResourceAllocation `json:"resourceAllocation"`
}

// Normalize fills nil collections with empty values and recomputes TotalDays
// so that partially-populated results (typically from the generative backend)
// present a consistent shape to pollers.
func (r *ScheduleOptimizationResult) Normalize() {
	if r.Days == nil {
		r.Days = []ShootDay{}
	}
	for i := range r.Days {
		d := &r.Days[i]
		if d.Scenes == nil {
			d.Scenes = []string{}
		}
		if d.Locations == nil {
			d.Locations = []string{}
		}
		if d.EquipmentNeeded == nil {
			d.EquipmentNeeded = []string{}
		}
		if d.SpecialRequirements == nil {
			d.SpecialRequirements = []string{}
		}
		if d.WeatherDependencies == nil {
			d.WeatherDependencies = []string{}
		}
		if d.CrewCall == "" {
			d.CrewCall = DefaultCrewCall
		}
		if d.ShootStart == "" {
			d.ShootStart = DefaultShootStart
		}
		if d.Lunch == "" {
			d.Lunch = DefaultLunch
		}
		if d.Wrap == "" {
			d.Wrap = DefaultWrap
		}
	}
	r.TotalDays = len(r.Days)
	if r.CostBreakdown == nil {
		r.CostBreakdown = map[string]float64{}
	}
	if r.OptimizationNotes == nil {
		r.OptimizationNotes = []string{}
	}
	if r.RiskAssessment.HighRiskDays == nil {
		r.RiskAssessment.HighRiskDays = []int{}
	}
	if r.RiskAssessment.WeatherDependencies == nil {
		r.RiskAssessment.WeatherDependencies = []string{}
	}
	if r.RiskAssessment.CrewFatigueFactors == nil {
		r.RiskAssessment.CrewFatigueFactors = []string{}
	}
	if r.Resources.Crew == nil {
		r.Resources.Crew = map[string]int{}
	}
	if r.Resources.Equipment == nil {
		r.Resources.Equipment = map[string]int{}
	}
	if r.Resources.Locations == nil {
		r.Resources.Locations = map[string]int{}
	}
}

// SceneIDs returns every scene id in the plan, in day order. Used by tests
// and validation to check the partition invariant.
func (r *ScheduleOptimizationResult) SceneIDs() []string {
	var ids []string
	for _, d := range r.Days {
		ids = append(ids, d.Scenes...)
	}
	return ids
}

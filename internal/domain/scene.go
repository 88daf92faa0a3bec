package domain

import "errors"

// DefaultSceneMinutes is the duration assumed for a scene that does not
// declare one. Schedule totals must stay consistent across the generative
// and fallback paths, so both use this constant.
const DefaultSceneMinutes = 5

// Common validation errors for scheduling inputs
var (
	ErrEmptySceneID       = errors.New("scene ID cannot be empty")
	ErrEmptySceneLocation = errors.New("scene location cannot be empty")
	ErrInvalidMaxDays     = errors.New("maxDays must be at least 1")
)

// Scene is an atomic shooting unit extracted from a script breakdown.
// Scenes are immutable inputs to the schedule optimizer; they are supplied
// fresh on every optimization call and never persisted by this service.
type Scene struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Location         string   `json:"location"`
	TimeOfDay        string   `json:"timeOfDay"`
	DurationMinutes  int      `json:"duration,omitempty"`
	Characters       []string `json:"characters,omitempty"`
	Props            []string `json:"props,omitempty"`
	Wardrobe         []string `json:"wardrobe,omitempty"`
	VFX              []string `json:"vfx,omitempty"`
	SoundEffects     []string `json:"soundEffects,omitempty"`
	Lighting         []string `json:"lighting,omitempty"`
	CameraAngles     []string `json:"cameraAngles,omitempty"`
	EmotionalTone    string   `json:"emotionalTone,omitempty"`
	NarrativePurpose string   `json:"narrativePurpose,omitempty"`
}

// Duration returns the scene's shooting duration in minutes, substituting
// DefaultSceneMinutes when the script breakdown did not estimate one.
func (s Scene) Duration() int {
	if s.DurationMinutes <= 0 {
		return DefaultSceneMinutes
	}
	return s.DurationMinutes
}

// Validate checks that the scene carries the fields the optimizer needs.
func (s Scene) Validate() error {
	if s.ID == "" {
		return ErrEmptySceneID
	}
	if s.Location == "" {
		return ErrEmptySceneLocation
	}
	return nil
}

// DaylightWindow is the span of usable natural light for exterior scenes,
// expressed as HH:MM clock strings.
type DaylightWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Constraints bound the schedule optimizer's search. All fields are
// optional except MaxDays; zero-valued maps and slices mean "unconstrained".
type Constraints struct {
	MaxDays               int                 `json:"maxDays"`
	MaxHoursPerDay        int                 `json:"maxHoursPerDay,omitempty"`
	LocationCosts         map[string]float64  `json:"locationCosts,omitempty"`
	DaylightHours         DaylightWindow      `json:"daylightHours,omitempty"`
	CrewAvailability      map[string][]string `json:"crewAvailability,omitempty"`
	EquipmentAvailability map[string][]string `json:"equipmentAvailability,omitempty"`
	WeatherDependencies   []string            `json:"weatherDependencies,omitempty"`
}

// Validate checks the constraint set for values the optimizer cannot work with.
func (c Constraints) Validate() error {
	if c.MaxDays < 1 {
		return ErrInvalidMaxDays
	}
	return nil
}

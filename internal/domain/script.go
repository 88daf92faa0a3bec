package domain

import "time"

// CharacterProfile describes one character extracted from a script.
type CharacterProfile struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	CharacterArc   string   `json:"characterArc"`
	EmotionalRange []string `json:"emotionalRange"`
	KeyTraits      []string `json:"keyTraits"`
}

// LocationProfile describes one shooting location extracted from a script.
type LocationProfile struct {
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	Type                 string   `json:"type"`
	LightingRequirements []string `json:"lightingRequirements"`
	SoundRequirements    []string `json:"soundRequirements"`
}

// BudgetEstimate is a low/high production budget range with a category
// breakdown.
type BudgetEstimate struct {
	Low       float64            `json:"low"`
	High      float64            `json:"high"`
	Breakdown map[string]float64 `json:"breakdown"`
}

// ProductionTimeline estimates the phases of production in days.
type ProductionTimeline struct {
	PreProduction  int `json:"preProduction"`
	Shooting       int `json:"shooting"`
	PostProduction int `json:"postProduction"`
	Total          int `json:"total"`
}

// ProductionRisk is one identified risk with severity and mitigation.
type ProductionRisk struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
	Mitigation  string `json:"mitigation"`
}

// ScriptAnalysis is the full production breakdown of a script.
type ScriptAnalysis struct {
	SceneCount    int                `json:"scenes"`
	SceneList     []Scene            `json:"sceneList"`
	Characters    []CharacterProfile `json:"characters"`
	Locations     []LocationProfile  `json:"locations"`
	EstimatedCrew map[string]int     `json:"estimatedCrew"`
	Props         []string           `json:"props"`
	Wardrobe      []string           `json:"wardrobe"`
	VFX           []string           `json:"vfx"`
	SoundDesign   []string           `json:"soundDesign"`
	LightingSetup []string           `json:"lightingSetup"`
	CameraGear    []string           `json:"cameraEquipment"`
	Budget        BudgetEstimate     `json:"budgetEstimate"`
	Timeline      ProductionTimeline `json:"timeline"`
	Risks         []ProductionRisk   `json:"risks"`
	AnalyzedAt    time.Time          `json:"analyzedAt"`
}

// Normalize fills nil collections with empty values so partially-populated
// generative responses present a consistent shape.
func (a *ScriptAnalysis) Normalize() {
	if a.SceneList == nil {
		a.SceneList = []Scene{}
	}
	if a.Characters == nil {
		a.Characters = []CharacterProfile{}
	}
	if a.Locations == nil {
		a.Locations = []LocationProfile{}
	}
	if a.EstimatedCrew == nil {
		a.EstimatedCrew = map[string]int{}
	}
	if a.Props == nil {
		a.Props = []string{}
	}
	if a.Wardrobe == nil {
		a.Wardrobe = []string{}
	}
	if a.VFX == nil {
		a.VFX = []string{}
	}
	if a.SoundDesign == nil {
		a.SoundDesign = []string{}
	}
	if a.LightingSetup == nil {
		a.LightingSetup = []string{}
	}
	if a.CameraGear == nil {
		a.CameraGear = []string{}
	}
	if a.Budget.Breakdown == nil {
		a.Budget.Breakdown = map[string]float64{}
	}
	if a.Risks == nil {
		a.Risks = []ProductionRisk{}
	}
	a.SceneCount = len(a.SceneList)
}

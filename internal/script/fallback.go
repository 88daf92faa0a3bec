package script

import (
	"fmt"
	"strings"

	"github.com/nollyprod/stagehand-api/internal/domain"
)

// Scene-count bounds applied by the fallback's word-count heuristic.
const (
	wordsPerScene = 50
	minScenes     = 8
	maxScenes     = 80
)

// fallback estimates a breakdown from word count alone: one scene per 50
// words, clamped to [8,80], with a repeating location/time-of-day pattern
// and template crew, budget, and timeline figures.
func (a *Analyzer) fallback(scriptText string) domain.ScriptAnalysis {
	words := len(strings.Fields(scriptText))
	sceneCount := words / wordsPerScene
	if sceneCount < minScenes {
		sceneCount = minScenes
	}
	if sceneCount > maxScenes {
		sceneCount = maxScenes
	}

	sceneList := make([]domain.Scene, 0, sceneCount)
	for i := 0; i < sceneCount; i++ {
		scene := domain.Scene{
			ID:               fmt.Sprintf("SCN-%d", i+1),
			Name:             fmt.Sprintf("Scene %d", i+1),
			Location:         "Interior",
			TimeOfDay:        "Day",
			DurationMinutes:  5 + (i%3)*5,
			Characters:       []string{"Lead", "Support"},
			Props:            []string{"Phone", "Keys"},
			Wardrobe:         []string{"Casual", "Formal"},
			VFX:              []string{},
			SoundEffects:     []string{"Traffic", "Dialogue"},
			Lighting:         []string{"Natural", "Artificial"},
			CameraAngles:     []string{"Wide", "Close-up"},
			EmotionalTone:    "Calm",
			NarrativePurpose: "Character development",
		}
		if i%2 == 0 {
			scene.Location = "Street"
			scene.EmotionalTone = "Tense"
		}
		if i%3 == 0 {
			scene.TimeOfDay = "Night"
		}
		sceneList = append(sceneList, scene)
	}

	analysis := domain.ScriptAnalysis{
		SceneList: sceneList,
		Characters: []domain.CharacterProfile{
			{
				Name:           "Lead Character",
				Description:    "Protagonist with complex motivations",
				CharacterArc:   "Journey from doubt to confidence",
				EmotionalRange: []string{"Determined", "Vulnerable", "Angry"},
				KeyTraits:      []string{"Resilient", "Intelligent", "Empathetic"},
			},
		},
		Locations: []domain.LocationProfile{
			{
				Name:                 "Street",
				Description:          "Busy urban street setting",
				Type:                 "Exterior",
				LightingRequirements: []string{"Natural lighting", "Reflectors"},
				SoundRequirements:    []string{"Traffic noise", "Crowd sounds"},
			},
		},
		EstimatedCrew: map[string]int{
			"gaffer":          1,
			"sound_engineer":  1,
			"makeup_artist":   1,
			"editor":          1,
			"camera_operator": 2,
		},
		Props:         []string{"Phone", "Keys", "Car"},
		Wardrobe:      []string{"Casual", "Formal", "Costume"},
		VFX:           []string{"Color correction", "Background replacement"},
		SoundDesign:   []string{"Ambient noise", "Sound effects"},
		LightingSetup: []string{"Key lighting", "Fill lighting"},
		CameraGear:    []string{"DSLR", "Stabilizer"},
		Budget: domain.BudgetEstimate{
			Low:  1000000,
			High: 2000000,
			Breakdown: map[string]float64{
				"crew":      500000,
				"equipment": 300000,
				"locations": 200000,
			},
		},
		Timeline: domain.ProductionTimeline{
			PreProduction:  60,
			Shooting:       45,
			PostProduction: 90,
			Total:          195,
		},
		Risks: []domain.ProductionRisk{
			{
				Category:    "Logistical",
				Description: "Location availability",
				Severity:    "medium",
				Mitigation:  "Secure backup locations",
			},
		},
		AnalyzedAt: a.now().UTC(),
	}

	analysis.Normalize()
	return analysis
}

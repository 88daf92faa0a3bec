// Package script implements the script breakdown analyzer: a generative
// path that extracts a full production breakdown from raw script text, and a
// deterministic word-count heuristic used when the backend is unavailable.
package script

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/nollyprod/stagehand-api/internal/domain"
	"github.com/nollyprod/stagehand-api/internal/generation"
)

const systemPrompt = "You are a professional film script analyst. " +
	"Extract detailed production information from scripts. " +
	"Always return valid JSON. Be comprehensive and specific in your analysis."

// maxScriptChars caps the script excerpt sent to the backend to stay within
// token limits.
const maxScriptChars = 8000

// Analyzer produces production breakdowns from raw script text. A nil
// generator disables the generative path entirely.
type Analyzer struct {
	generator generation.TextGenerator
	logger    *slog.Logger
	now       func() time.Time
}

// NewAnalyzer creates an Analyzer. generator may be nil, in which case every
// call takes the fallback path.
func NewAnalyzer(generator generation.TextGenerator, logger *slog.Logger) *Analyzer {
	return &Analyzer{
		generator: generator,
		logger:    logger.With("component", "script_analyzer"),
		now:       time.Now,
	}
}

// Analyze breaks the script down into scenes, characters, locations, and
// production estimates. It never returns an error: backend problems are
// absorbed by the fallback path and recorded in the outcome's provenance.
func (a *Analyzer) Analyze(ctx context.Context, scriptText string) *domain.ScriptOutcome {
	if a.generator == nil {
		return &domain.ScriptOutcome{
			Analysis:   a.fallback(scriptText),
			Provenance: domain.Fallback("generative backend not configured"),
		}
	}

	analysis, err := a.analyzeGenerative(ctx, scriptText)
	if err != nil {
		a.logger.Warn("generative script analysis failed, using fallback",
			"error", err,
			"script_length", len(scriptText))
		return &domain.ScriptOutcome{
			Analysis:   a.fallback(scriptText),
			Provenance: domain.Fallback(err.Error()),
		}
	}

	return &domain.ScriptOutcome{
		Analysis:   *analysis,
		Provenance: domain.Generative(),
	}
}

func (a *Analyzer) analyzeGenerative(ctx context.Context, scriptText string) (*domain.ScriptAnalysis, error) {
	raw, err := a.generator.GenerateJSON(ctx, systemPrompt, buildPrompt(scriptText))
	if err != nil {
		return nil, err
	}

	var analysis domain.ScriptAnalysis
	if err := json.Unmarshal(raw, &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", generation.ErrMalformedResponse, err)
	}

	if len(analysis.SceneList) == 0 {
		return nil, fmt.Errorf("%w: backend returned no scenes", generation.ErrMalformedResponse)
	}

	analysis.AnalyzedAt = a.now().UTC()
	analysis.Normalize()
	return &analysis, nil
}

func buildPrompt(scriptText string) string {
	if len(scriptText) > maxScriptChars {
		// Back up to a rune boundary so the cut never produces invalid UTF-8.
		cut := maxScriptChars
		for cut > 0 && !utf8.RuneStart(scriptText[cut]) {
			cut--
		}
		scriptText = scriptText[:cut]
	}

	return fmt.Sprintf(`Analyze this film script and extract detailed information. Return a JSON object with the following structure:

{
  "scenes": number,
  "sceneList": [
    {
      "id": "SCN-1",
      "name": "Scene Name",
      "location": "Location Name",
      "timeOfDay": "Day/Night/Dawn/Dusk",
      "duration": estimated_minutes,
      "characters": ["Character1", "Character2"],
      "props": ["Prop1", "Prop2"],
      "wardrobe": ["Wardrobe1", "Wardrobe2"],
      "vfx": ["VFX1", "VFX2"],
      "soundEffects": ["Sound1", "Sound2"],
      "lighting": ["Lighting1", "Lighting2"],
      "cameraAngles": ["Angle1", "Angle2"],
      "emotionalTone": "emotional tone of scene",
      "narrativePurpose": "purpose in story"
    }
  ],
  "characters": [
    {
      "name": "Character Name",
      "description": "Physical and personality description",
      "characterArc": "Character development arc",
      "emotionalRange": ["Emotion1", "Emotion2"],
      "keyTraits": ["Trait1", "Trait2"]
    }
  ],
  "locations": [
    {
      "name": "Location Name",
      "description": "Detailed location description",
      "type": "Interior/Exterior/Studio",
      "lightingRequirements": ["Requirement1", "Requirement2"],
      "soundRequirements": ["Requirement1", "Requirement2"]
    }
  ],
  "estimatedCrew": {"director": 1, "camera_operator": 2, "sound_engineer": 1, "gaffer": 1, "makeup_artist": 1, "editor": 1},
  "props": ["All props needed"],
  "wardrobe": ["All wardrobe items"],
  "vfx": ["All VFX requirements"],
  "soundDesign": ["Sound design elements"],
  "lightingSetup": ["Lighting setup requirements"],
  "cameraEquipment": ["Camera equipment needed"],
  "budgetEstimate": {"low": 1000000, "high": 2000000, "breakdown": {"crew": 500000, "equipment": 300000, "locations": 200000}},
  "timeline": {"preProduction": 60, "shooting": 45, "postProduction": 90, "total": 195},
  "risks": [
    {
      "category": "Logistical/Creative/Financial",
      "description": "Risk description",
      "severity": "low/medium/high",
      "mitigation": "How to mitigate"
    }
  ]
}

Script text:
%s`, scriptText)
}

package script_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nollyprod/stagehand-api/internal/domain"
	"github.com/nollyprod/stagehand-api/internal/script"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubGenerator returns a canned response or error for every call, recording
// the last user prompt it received.
type stubGenerator struct {
	response []byte
	err      error
	prompt   string
}

func (s *stubGenerator) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) ([]byte, error) {
	s.prompt = userPrompt
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestAnalyzeFallbackSceneCount(t *testing.T) {
	tests := []struct {
		name       string
		script     string
		wantScenes int
	}{
		{"short script clamps to minimum", words(10), 8},
		{"one scene per fifty words", words(600), 12},
		{"long script clamps to maximum", words(10000), 80},
	}

	a := script.NewAnalyzer(nil, discardLogger())

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			outcome := a.Analyze(context.Background(), tc.script)

			require.Equal(t, domain.SourceFallback, outcome.Provenance.Source)
			assert.Len(t, outcome.Analysis.SceneList, tc.wantScenes)
			assert.Equal(t, tc.wantScenes, outcome.Analysis.SceneCount)
		})
	}
}

func TestAnalyzeFallbackScenePattern(t *testing.T) {
	a := script.NewAnalyzer(nil, discardLogger())

	outcome := a.Analyze(context.Background(), words(500))
	scenes := outcome.Analysis.SceneList
	require.GreaterOrEqual(t, len(scenes), 4)

	// Even-indexed scenes are tense street exteriors, every third is at night.
	assert.Equal(t, "SCN-1", scenes[0].ID)
	assert.Equal(t, "Street", scenes[0].Location)
	assert.Equal(t, "Tense", scenes[0].EmotionalTone)
	assert.Equal(t, "Night", scenes[0].TimeOfDay)

	assert.Equal(t, "Interior", scenes[1].Location)
	assert.Equal(t, "Calm", scenes[1].EmotionalTone)
	assert.Equal(t, "Day", scenes[1].TimeOfDay)

	assert.Equal(t, "Night", scenes[3].TimeOfDay)

	// Durations cycle 5, 10, 15 deterministically.
	assert.Equal(t, 5, scenes[0].DurationMinutes)
	assert.Equal(t, 10, scenes[1].DurationMinutes)
	assert.Equal(t, 15, scenes[2].DurationMinutes)
	assert.Equal(t, 5, scenes[3].DurationMinutes)
}

func TestAnalyzeFallbackTemplateEstimates(t *testing.T) {
	a := script.NewAnalyzer(nil, discardLogger())

	outcome := a.Analyze(context.Background(), words(100))
	analysis := outcome.Analysis

	assert.NotEmpty(t, analysis.Characters)
	assert.NotEmpty(t, analysis.Locations)
	assert.Equal(t, float64(1000000), analysis.Budget.Low)
	assert.Equal(t, float64(2000000), analysis.Budget.High)
	assert.Equal(t, 195, analysis.Timeline.Total)
	assert.NotEmpty(t, analysis.Risks)
	assert.WithinDuration(t, time.Now().UTC(), analysis.AnalyzedAt, 5*time.Second)
}

func TestAnalyzeGenerative(t *testing.T) {
	gen := &stubGenerator{response: []byte(`{
		"sceneList": [
			{"id": "SCN-1", "name": "Opening", "location": "Harbor", "timeOfDay": "Dawn", "duration": 7}
		],
		"characters": [{"name": "Kemi", "description": "Fisherwoman"}]
	}`)}
	a := script.NewAnalyzer(gen, discardLogger())

	outcome := a.Analyze(context.Background(), "FADE IN: a harbor at dawn")

	require.Equal(t, domain.SourceGenerative, outcome.Provenance.Source)
	require.Len(t, outcome.Analysis.SceneList, 1)
	assert.Equal(t, "Harbor", outcome.Analysis.SceneList[0].Location)
	assert.Equal(t, 1, outcome.Analysis.SceneCount)
	assert.False(t, outcome.Analysis.AnalyzedAt.IsZero())
}

func TestAnalyzeGenerativeFailuresFallBack(t *testing.T) {
	tests := []struct {
		name string
		gen  *stubGenerator
	}{
		{"backend error", &stubGenerator{err: errors.New("model overloaded")}},
		{"malformed json", &stubGenerator{response: []byte("not json at all")}},
		{"no scenes", &stubGenerator{response: []byte(`{"sceneList": []}`)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := script.NewAnalyzer(tc.gen, discardLogger())

			outcome := a.Analyze(context.Background(), words(100))

			require.Equal(t, domain.SourceFallback, outcome.Provenance.Source)
			assert.NotEmpty(t, outcome.Provenance.FallbackReason)
			assert.Len(t, outcome.Analysis.SceneList, 8)
		})
	}
}

func TestAnalyzeScriptPayloadValidate(t *testing.T) {
	t.Run("rejects empty script", func(t *testing.T) {
		p := script.AnalyzeScriptPayload{}
		assert.ErrorIs(t, p.Validate(), script.ErrEmptyScript)
	})

	t.Run("accepts script text", func(t *testing.T) {
		p := script.AnalyzeScriptPayload{ScriptText: "INT. OFFICE - DAY"}
		assert.NoError(t, p.Validate())
	})
}

func TestAnalyzeTruncatesLongScriptsOnRuneBoundary(t *testing.T) {
	gen := &stubGenerator{response: []byte(`{
		"sceneList": [{"id": "SCN-1", "location": "Street"}]
	}`)}
	a := script.NewAnalyzer(gen, discardLogger())

	// Place a multi-byte rune straddling the excerpt limit; the cut must back
	// up rather than send a split rune to the backend.
	long := strings.Repeat("a", 7999) + strings.Repeat("é", 20)
	a.Analyze(context.Background(), long)

	require.NotEmpty(t, gen.prompt)
	assert.True(t, utf8.ValidString(gen.prompt))
	assert.Contains(t, gen.prompt, strings.Repeat("a", 7999))
}

package domain

// ResultSource tells callers whether a result came from the generative
// backend or from the local deterministic heuristic.
type ResultSource string

// Possible result sources
const (
	SourceGenerative ResultSource = "generative"
	SourceFallback   ResultSource = "fallback"
)

// Provenance records how a handler produced its result. Backend failures are
// absorbed by the fallback path rather than surfaced as task failures, so
// this is the only place a caller can tell an AI-generated plan apart from a
// heuristic one.
type Provenance struct {
	Source         ResultSource `json:"source"`
	FallbackReason string       `json:"fallbackReason,omitempty"`
}

// Generative returns provenance for a backend-produced result.
func Generative() Provenance {
	return Provenance{Source: SourceGenerative}
}

// Fallback returns provenance for a heuristic result, recording why the
// generative path was not used.
func Fallback(reason string) Provenance {
	return Provenance{Source: SourceFallback, FallbackReason: reason}
}

// ScheduleOutcome pairs a schedule plan with its provenance.
type ScheduleOutcome struct {
	Result     ScheduleOptimizationResult `json:"optimization"`
	Provenance Provenance                 `json:"provenance"`
}

// CastingOutcome pairs ranked recommendations with their provenance.
type CastingOutcome struct {
	Recommendations []CastingRecommendation `json:"recommendations"`
	Provenance      Provenance              `json:"provenance"`
}

// ScriptOutcome pairs a script breakdown with its provenance.
type ScriptOutcome struct {
	Analysis   ScriptAnalysis `json:"breakdown"`
	Provenance Provenance     `json:"provenance"`
}

// MarketingOutcome pairs marketing content with its provenance.
type MarketingOutcome struct {
	Content    MarketingContent `json:"content"`
	Provenance Provenance       `json:"provenance"`
}

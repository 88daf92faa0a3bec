package casting_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nollyprod/stagehand-api/internal/casting"
	"github.com/nollyprod/stagehand-api/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubEmbedder returns fixed vectors keyed by a substring of the input text.
type stubEmbedder struct {
	vectors map[string][]float64
	err     error
}

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	for key, vec := range s.vectors {
		if strings.Contains(text, key) {
			return vec, nil
		}
	}
	return []float64{0, 0}, nil
}

func strongCandidate() domain.Candidate {
	return domain.Candidate{
		ID:           "c-strong",
		Name:         "Adaora Eze",
		Bio:          "Award-winning dramatic lead",
		Skills:       []string{"Drama", "Improvisation"},
		Experience:   "10 years of professional acting",
		Location:     "Lagos, Nigeria",
		Availability: "available",
		Budget:       50000,
		Training:     []string{"Lagos Film Academy"},
		HasPortfolio: true,
		PreviousRoles: []domain.PreviousRole{
			{Title: "Market Days", Genre: "drama", Role: "Lead detective", Rating: 4.5},
		},
	}
}

func weakCandidate() domain.Candidate {
	return domain.Candidate{
		ID:           "c-weak",
		Name:         "Unknown Extra",
		Location:     "Remote",
		Availability: "busy",
		Budget:       250000,
	}
}

func TestScoreRuleOnlyWithoutEmbedder(t *testing.T) {
	scorer := casting.NewScorer(nil, casting.DefaultBiasConfig(), discardLogger())

	outcome := scorer.Score(context.Background(), "Detective in a drama series",
		"A determined detective", "5 years drama improvisation",
		[]domain.Candidate{weakCandidate(), strongCandidate()})

	require.Equal(t, domain.SourceFallback, outcome.Provenance.Source)
	assert.Equal(t, "generative backend not configured", outcome.Provenance.FallbackReason)

	require.Len(t, outcome.Recommendations, 2)
	assert.Equal(t, "c-strong", outcome.Recommendations[0].CandidateID)
	assert.Equal(t, "c-weak", outcome.Recommendations[1].CandidateID)
	assert.Greater(t, outcome.Recommendations[0].Score, outcome.Recommendations[1].Score)

	for _, rec := range outcome.Recommendations {
		assert.GreaterOrEqual(t, rec.Score, 0.0)
		assert.LessOrEqual(t, rec.Score, 1.0)
		assert.NotEmpty(t, rec.Reasons)
		assert.NotEmpty(t, rec.BiasCheck.AuditTrail, "bias audit trail is mandatory")
	}
}

func TestScoreWithEmbeddings(t *testing.T) {
	embedder := &stubEmbedder{vectors: map[string][]float64{
		"Detective":     {1, 0},
		"Adaora Eze":    {1, 0},
		"Unknown Extra": {0, 1},
	}}
	scorer := casting.NewScorer(embedder, casting.DefaultBiasConfig(), discardLogger())

	outcome := scorer.Score(context.Background(), "Detective in a drama series",
		"A determined detective", "5 years drama",
		[]domain.Candidate{weakCandidate(), strongCandidate()})

	require.Equal(t, domain.SourceGenerative, outcome.Provenance.Source)
	require.Len(t, outcome.Recommendations, 2)
	assert.Equal(t, "c-strong", outcome.Recommendations[0].CandidateID)
}

func TestScoreEmbeddingErrorFallsBack(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("embedding service unreachable")}
	scorer := casting.NewScorer(embedder, casting.DefaultBiasConfig(), discardLogger())

	outcome := scorer.Score(context.Background(), "Detective", "", "",
		[]domain.Candidate{strongCandidate()})

	require.Equal(t, domain.SourceFallback, outcome.Provenance.Source)
	assert.Contains(t, outcome.Provenance.FallbackReason, "embedding service unreachable")
	require.Len(t, outcome.Recommendations, 1)
}

func TestScoreMatchFactors(t *testing.T) {
	scorer := casting.NewScorer(nil, casting.DefaultBiasConfig(), discardLogger())

	outcome := scorer.Score(context.Background(), "Detective in a drama series",
		"A determined detective", "5 years drama improvisation",
		[]domain.Candidate{strongCandidate()})

	require.Len(t, outcome.Recommendations, 1)
	f := outcome.Recommendations[0].MatchFactors

	assert.Equal(t, 1.0, f.Experience, "10 years covers a 5-year requirement")
	assert.Equal(t, 0.9, f.Location, "Lagos-based candidates get the local bonus")
	assert.Equal(t, 1.0, f.Availability)
	assert.Equal(t, 1.0, f.Budget)
	assert.Equal(t, 1.0, f.GenreCompatibility, "the only previous role is a drama")
	assert.Greater(t, f.Skills, 0.0)
}

func TestScoreConfidenceReflectsProfileCompleteness(t *testing.T) {
	scorer := casting.NewScorer(nil, casting.DefaultBiasConfig(), discardLogger())

	outcome := scorer.Score(context.Background(), "Detective", "", "",
		[]domain.Candidate{strongCandidate(), weakCandidate()})

	byID := map[string]domain.CastingRecommendation{}
	for _, rec := range outcome.Recommendations {
		byID[rec.CandidateID] = rec
	}

	assert.Equal(t, 1.0, byID["c-strong"].Confidence)
	// No previous roles, no portfolio, no training: 0.7 * 0.8 * 0.9.
	assert.InDelta(t, 0.504, byID["c-weak"].Confidence, 1e-9)
}

func TestScoreReasonsDefaultToPotentialMatch(t *testing.T) {
	scorer := casting.NewScorer(nil, casting.DefaultBiasConfig(), discardLogger())

	outcome := scorer.Score(context.Background(), "Lead role", "", "5 years stunts",
		[]domain.Candidate{weakCandidate()})

	require.Len(t, outcome.Recommendations, 1)
	assert.Equal(t, []string{"Potential match"}, outcome.Recommendations[0].Reasons)
}

func TestScoreSuggestedImprovements(t *testing.T) {
	scorer := casting.NewScorer(nil, casting.DefaultBiasConfig(), discardLogger())

	outcome := scorer.Score(context.Background(), "Lead role", "", "5 years stunts",
		[]domain.Candidate{weakCandidate()})

	require.Len(t, outcome.Recommendations, 1)
	improvements := outcome.Recommendations[0].SuggestedImprovements

	assert.Contains(t, improvements, "Gain 5 more years of relevant experience")
	assert.Contains(t, improvements, "Consider formal training in acting techniques")

	foundSkills := false
	for _, s := range improvements {
		if strings.HasPrefix(s, "Develop skills in: ") {
			foundSkills = true
		}
	}
	assert.True(t, foundSkills)
}

func TestScoreProjectedSuccess(t *testing.T) {
	scorer := casting.NewScorer(nil, casting.DefaultBiasConfig(), discardLogger())

	outcome := scorer.Score(context.Background(), "Detective in a drama series",
		"A determined detective", "5 years drama",
		[]domain.Candidate{strongCandidate()})

	require.Len(t, outcome.Recommendations, 1)
	ps := outcome.Recommendations[0].ProjectedSuccess

	assert.Greater(t, ps.BoxOffice, 0.0)
	assert.LessOrEqual(t, ps.BoxOffice, 1.0)
	assert.LessOrEqual(t, ps.CriticalReception, 1.0)
	assert.LessOrEqual(t, ps.AudienceAppeal, 1.0)
	assert.LessOrEqual(t, ps.BoxOffice, ps.CriticalReception)
}

func TestScoreBiasAuditAcrossRanking(t *testing.T) {
	scorer := casting.NewScorer(nil, casting.DefaultBiasConfig(), discardLogger())

	candidates := make([]domain.Candidate, 0, 9)
	for i := 0; i < 9; i++ {
		c := strongCandidate()
		c.ID = "c-" + string(rune('a'+i))
		c.Gender = "male"
		// Distinct locations keep the audit focused on the gender dimension.
		c.Location = "City-" + string(rune('a'+i))
		candidates = append(candidates, c)
	}

	outcome := scorer.Score(context.Background(), "Detective", "", "", candidates)
	require.Len(t, outcome.Recommendations, 9)

	// The last-audited candidate saw eight prior males: 8 > 8*0.7.
	var last domain.CastingRecommendation
	for _, rec := range outcome.Recommendations {
		if rec.CandidateID == "c-i" {
			last = rec
		}
	}
	assert.Contains(t, last.BiasCheck.FairnessFlags, "Gender imbalance detected")
	assert.InDelta(t, 0.8, last.BiasCheck.DiversityScore, 1e-9)
}

func TestScoreEmptyCandidates(t *testing.T) {
	scorer := casting.NewScorer(nil, casting.DefaultBiasConfig(), discardLogger())

	outcome := scorer.Score(context.Background(), "Detective", "", "", nil)

	assert.Empty(t, outcome.Recommendations)
	assert.Equal(t, domain.SourceFallback, outcome.Provenance.Source)
}

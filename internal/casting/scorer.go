package casting

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/nollyprod/stagehand-api/internal/domain"
	"github.com/nollyprod/stagehand-api/internal/generation"
)

// Mixing weights for the blended score. The embedding-similarity term
// carries weight only on the generative path; the fallback redistributes it
// across the rule factors so both paths score on the same [0,1] scale.
const (
	weightSimilarity         = 0.4
	weightExperience         = 0.15
	weightSkills             = 0.15
	weightLocation           = 0.05
	weightAvailability       = 0.05
	weightBudget             = 0.05
	weightGenreCompatibility = 0.1
	weightCharacterFit       = 0.05
)

// Scorer ranks casting candidates for a role. A nil embedder disables the
// similarity path and every call scores rule-only.
type Scorer struct {
	embedder generation.Embedder
	bias     BiasConfig
	logger   *slog.Logger
}

// NewScorer creates a Scorer. embedder may be nil.
func NewScorer(embedder generation.Embedder, bias BiasConfig, logger *slog.Logger) *Scorer {
	return &Scorer{
		embedder: embedder,
		bias:     bias,
		logger:   logger.With("component", "casting_scorer"),
	}
}

// Score ranks the candidates for the role, sorted descending by score. It
// never returns an error: embedding failures drop the similarity term and
// the rule-only ranking is returned with fallback provenance. The bias
// audit runs for every candidate on both paths.
func (s *Scorer) Score(ctx context.Context, role, characterDescription, requirements string, candidates []domain.Candidate) *domain.CastingOutcome {
	if s.embedder == nil {
		return &domain.CastingOutcome{
			Recommendations: s.scoreRuleOnly(candidates, role, characterDescription, requirements),
			Provenance:      domain.Fallback("generative backend not configured"),
		}
	}

	recommendations, err := s.scoreWithEmbeddings(ctx, role, characterDescription, requirements, candidates)
	if err != nil {
		s.logger.Warn("embedding-based casting scoring failed, using rule-only fallback",
			"error", err,
			"candidate_count", len(candidates))
		return &domain.CastingOutcome{
			Recommendations: s.scoreRuleOnly(candidates, role, characterDescription, requirements),
			Provenance:      domain.Fallback(err.Error()),
		}
	}

	return &domain.CastingOutcome{
		Recommendations: recommendations,
		Provenance:      domain.Generative(),
	}
}

// scoreWithEmbeddings embeds the role text and each candidate profile and
// blends cosine similarity with the rule factors. Any embedding error sends
// the caller to the rule-only path.
func (s *Scorer) scoreWithEmbeddings(ctx context.Context, role, characterDescription, requirements string, candidates []domain.Candidate) ([]domain.CastingRecommendation, error) {
	roleText := fmt.Sprintf("%s: %s - %s", role, characterDescription, requirements)
	roleEmbedding, err := s.embedder.Embed(ctx, roleText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed role description: %w", err)
	}

	recommendations := make([]domain.CastingRecommendation, 0, len(candidates))
	ranked := make([]domain.Candidate, 0, len(candidates))

	for _, candidate := range candidates {
		profile := fmt.Sprintf("%s - %s - Skills: %s - Experience: %s",
			candidate.Name, candidate.Bio, strings.Join(candidate.Skills, ", "), candidate.Experience)
		candidateEmbedding, err := s.embedder.Embed(ctx, profile)
		if err != nil {
			return nil, fmt.Errorf("failed to embed candidate %s: %w", candidate.ID, err)
		}

		similarity := cosineSimilarity(roleEmbedding, candidateEmbedding)
		factors := matchFactors(candidate, role, characterDescription, requirements)
		score := similarity*weightSimilarity + ruleScore(factors)

		recommendations = append(recommendations, s.buildRecommendation(candidate, score, factors, ranked, role, requirements))
		ranked = append(ranked, candidate)
	}

	sortByScore(recommendations)
	return recommendations, nil
}

// scoreRuleOnly ranks using only the rule factors. The similarity weight is
// redistributed proportionally so the rule-only score still spans [0,1].
func (s *Scorer) scoreRuleOnly(candidates []domain.Candidate, role, characterDescription, requirements string) []domain.CastingRecommendation {
	recommendations := make([]domain.CastingRecommendation, 0, len(candidates))
	ranked := make([]domain.Candidate, 0, len(candidates))

	for _, candidate := range candidates {
		factors := matchFactors(candidate, role, characterDescription, requirements)
		score := ruleScore(factors) / (1 - weightSimilarity)

		recommendations = append(recommendations, s.buildRecommendation(candidate, score, factors, ranked, role, requirements))
		ranked = append(ranked, candidate)
	}

	sortByScore(recommendations)
	return recommendations
}

func (s *Scorer) buildRecommendation(candidate domain.Candidate, score float64, factors domain.MatchFactors, ranked []domain.Candidate, role, requirements string) domain.CastingRecommendation {
	return domain.CastingRecommendation{
		CandidateID:           candidate.ID,
		Score:                 clamp01(score),
		Confidence:            confidence(candidate),
		Reasons:               recommendationReasons(factors),
		MatchFactors:          factors,
		BiasCheck:             auditBias(s.bias, candidate, ranked),
		SuggestedImprovements: suggestedImprovements(candidate, requirements),
		ProjectedSuccess:      projectedSuccess(candidate, factors),
	}
}

func sortByScore(recommendations []domain.CastingRecommendation) {
	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].Score > recommendations[j].Score
	})
}

func ruleScore(f domain.MatchFactors) float64 {
	return f.Experience*weightExperience +
		f.Skills*weightSkills +
		f.Location*weightLocation +
		f.Availability*weightAvailability +
		f.Budget*weightBudget +
		f.GenreCompatibility*weightGenreCompatibility +
		f.CharacterFit*weightCharacterFit
}

func matchFactors(candidate domain.Candidate, role, characterDescription, requirements string) domain.MatchFactors {
	return domain.MatchFactors{
		Experience:         experienceMatch(candidate.Experience, requirements),
		Skills:             skillsMatch(candidate.Skills, requirements),
		Location:           locationBonus(candidate.Location),
		Availability:       availabilityBonus(candidate.Availability),
		Budget:             budgetFit(candidate.Budget),
		GenreCompatibility: genreCompatibility(candidate.PreviousRoles, role),
		CharacterFit:       characterFit(characterDescription, candidate.PreviousRoles),
	}
}

var yearsPattern = regexp.MustCompile(`\d+`)

// experienceMatch compares the first number found in the candidate's
// experience text against the first number in the requirements.
func experienceMatch(experience, requirements string) float64 {
	expYears := firstNumber(experience)
	reqYears := firstNumber(requirements)

	if expYears >= reqYears {
		return 1.0
	}
	return float64(expYears) / math.Max(float64(reqYears), 1)
}

func firstNumber(text string) int {
	match := yearsPattern.FindString(text)
	if match == "" {
		return 0
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return n
}

// skillsMatch is the fraction of requirement keywords covered by the
// candidate's skill list.
func skillsMatch(skills []string, requirements string) float64 {
	reqSkills := splitKeywords(requirements)
	if len(reqSkills) == 0 {
		return 0
	}

	matches := 0
	for _, skill := range skills {
		lower := strings.ToLower(skill)
		for _, req := range reqSkills {
			if strings.Contains(lower, req) {
				matches++
				break
			}
		}
	}

	return float64(matches) / float64(len(reqSkills))
}

func locationBonus(location string) float64 {
	if strings.Contains(strings.ToLower(location), "lagos") {
		return 0.9
	}
	return 0.7
}

func availabilityBonus(availability string) float64 {
	if availability == "available" {
		return 1.0
	}
	return 0.5
}

func budgetFit(budget float64) float64 {
	if budget <= 100000 {
		return 1.0
	}
	return 0.8
}

// genreCompatibility is the fraction of previous roles whose genre appears
// in the target role text. No history scores a neutral 0.5.
func genreCompatibility(previousRoles []domain.PreviousRole, targetRole string) float64 {
	if len(previousRoles) == 0 {
		return 0.5
	}

	target := strings.ToLower(targetRole)
	matching := 0
	for _, r := range previousRoles {
		if r.Genre != "" && strings.Contains(target, strings.ToLower(r.Genre)) {
			matching++
		}
	}

	return float64(matching) / float64(len(previousRoles))
}

// characterFit overlaps the character description's keywords with each
// previous role's title and role name. No history scores a neutral 0.5.
func characterFit(characterDescription string, previousRoles []domain.PreviousRole) float64 {
	if len(previousRoles) == 0 {
		return 0.5
	}

	keyTraits := splitKeywords(characterDescription)
	if len(keyTraits) == 0 {
		return 0
	}

	totalMatches := 0
	for _, r := range previousRoles {
		roleTraits := splitKeywords(r.Role + " " + r.Title)
		for _, trait := range keyTraits {
			for _, roleTrait := range roleTraits {
				if strings.Contains(roleTrait, trait) || strings.Contains(trait, roleTrait) {
					totalMatches++
					break
				}
			}
		}
	}

	return math.Min(1, float64(totalMatches)/float64(len(keyTraits)*len(previousRoles)))
}

var keywordSplitter = regexp.MustCompile(`[,\s]+`)

func splitKeywords(text string) []string {
	parts := keywordSplitter.Split(strings.ToLower(text), -1)
	keywords := parts[:0]
	for _, p := range parts {
		if p != "" {
			keywords = append(keywords, p)
		}
	}
	return keywords
}

// confidence reflects profile completeness, not match quality.
func confidence(candidate domain.Candidate) float64 {
	c := 1.0
	if len(candidate.PreviousRoles) == 0 {
		c *= 0.7
	}
	if !candidate.HasPortfolio {
		c *= 0.8
	}
	if len(candidate.Training) == 0 {
		c *= 0.9
	}
	return c
}

func recommendationReasons(f domain.MatchFactors) []string {
	reasons := []string{}
	if f.Experience > 0.8 {
		reasons = append(reasons, "Strong experience match")
	}
	if f.Skills > 0.7 {
		reasons = append(reasons, "Relevant skills")
	}
	if f.Location > 0.8 {
		reasons = append(reasons, "Good location match")
	}
	if f.Availability == 1.0 {
		reasons = append(reasons, "Available for project")
	}
	if f.Budget > 0.8 {
		reasons = append(reasons, "Within budget range")
	}
	if f.GenreCompatibility > 0.7 {
		reasons = append(reasons, "Genre compatibility")
	}
	if f.CharacterFit > 0.6 {
		reasons = append(reasons, "Strong character fit")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "Potential match")
	}
	return reasons
}

func suggestedImprovements(candidate domain.Candidate, requirements string) []string {
	improvements := []string{}

	reqYears := firstNumber(requirements)
	expYears := firstNumber(candidate.Experience)
	if expYears < reqYears {
		improvements = append(improvements, fmt.Sprintf("Gain %d more years of relevant experience", reqYears-expYears))
	}

	missing := []string{}
	for _, req := range splitKeywords(requirements) {
		covered := false
		for _, skill := range candidate.Skills {
			if strings.Contains(strings.ToLower(skill), req) {
				covered = true
				break
			}
		}
		if !covered {
			missing = append(missing, req)
		}
	}
	if len(missing) > 0 {
		if len(missing) > 3 {
			missing = missing[:3]
		}
		improvements = append(improvements, "Develop skills in: "+strings.Join(missing, ", "))
	}

	if len(candidate.Training) == 0 {
		improvements = append(improvements, "Consider formal training in acting techniques")
	}

	return improvements
}

// projectedSuccess derives a rough commercial outlook from the average match
// factor, scaled by the candidate's prior role ratings.
func projectedSuccess(candidate domain.Candidate, f domain.MatchFactors) domain.ProjectedSuccess {
	base := (f.Experience + f.Skills + f.Location + f.Availability + f.Budget + f.GenreCompatibility + f.CharacterFit) / 7

	successFactor := 1.0
	if len(candidate.PreviousRoles) > 0 {
		sum := 0.0
		for _, r := range candidate.PreviousRoles {
			sum += r.Rating
		}
		avgRating := sum / float64(len(candidate.PreviousRoles))
		// Scale 0.8 to 1.2 over a 0-5 rating range.
		successFactor = 0.8 + avgRating/5*0.4
	}

	return domain.ProjectedSuccess{
		BoxOffice:         math.Min(1, base*successFactor*0.9),
		CriticalReception: math.Min(1, base*successFactor),
		AudienceAppeal:    math.Min(1, base*successFactor*1.1),
	}
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

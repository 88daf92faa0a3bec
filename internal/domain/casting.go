package domain

import "errors"

// Common validation errors for casting inputs
var (
	ErrEmptyCandidateID = errors.New("candidate ID cannot be empty")
	ErrEmptyRole        = errors.New("role cannot be empty")
)

// PreviousRole is one credited appearance in a candidate's history.
type PreviousRole struct {
	Title  string  `json:"title"`
	Genre  string  `json:"genre"`
	Role   string  `json:"role"`
	Rating float64 `json:"rating"`
}

// Candidate is an actor profile submitted for casting consideration.
// Demographic fields feed the bias audit; they never contribute to the
// match score itself.
type Candidate struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Bio             string         `json:"bio"`
	Skills          []string       `json:"skills"`
	Experience      string         `json:"experience"`
	ExperienceLevel string         `json:"experienceLevel,omitempty"`
	Location        string         `json:"location"`
	Availability    string         `json:"availability"`
	Budget          float64        `json:"budget"`
	Gender          string         `json:"gender,omitempty"`
	Age             int            `json:"age,omitempty"`
	PreviousRoles   []PreviousRole `json:"previousRoles,omitempty"`
	Training        []string       `json:"training,omitempty"`
	HasPortfolio    bool           `json:"hasPortfolio,omitempty"`
}

// Validate checks that the candidate carries the fields scoring needs.
func (c Candidate) Validate() error {
	if c.ID == "" {
		return ErrEmptyCandidateID
	}
	return nil
}

// MatchFactors are the rule-based sub-scores behind a recommendation, each
// in [0,1].
type MatchFactors struct {
	Experience         float64 `json:"experience"`
	Skills             float64 `json:"skills"`
	Location           float64 `json:"location"`
	Availability       float64 `json:"availability"`
	Budget             float64 `json:"budget"`
	GenreCompatibility float64 `json:"genreCompatibility"`
	CharacterFit       float64 `json:"characterFit"`
}

// BiasCheck is the fairness audit attached to every recommendation.
// It is computed for every candidate regardless of ranking or fallback
// mode; auditability is never optional.
type BiasCheck struct {
	DiversityScore float64  `json:"diversityScore"`
	FairnessFlags  []string `json:"fairnessFlags"`
	AuditTrail     []string `json:"auditTrail"`
}

// ProjectedSuccess is a rough commercial outlook for casting a candidate,
// derived from match factors and prior role ratings.
type ProjectedSuccess struct {
	BoxOffice         float64 `json:"boxOffice"`
	CriticalReception float64 `json:"criticalReception"`
	AudienceAppeal    float64 `json:"audienceAppeal"`
}

// CastingRecommendation is one ranked candidate with its scoring evidence.
type CastingRecommendation struct {
	CandidateID           string           `json:"candidateId"`
	Score                 float64          `json:"score"`
	Confidence            float64          `json:"confidence"`
	Reasons               []string         `json:"reasons"`
	MatchFactors          MatchFactors     `json:"matchFactors"`
	BiasCheck             BiasCheck        `json:"biasCheck"`
	SuggestedImprovements []string         `json:"suggestedImprovements"`
	ProjectedSuccess      ProjectedSuccess `json:"projectedSuccess"`
}

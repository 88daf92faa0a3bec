package casting

import (
	"fmt"
	"strings"

	"github.com/nollyprod/stagehand-api/internal/domain"
)

// BiasConfig holds the concentration thresholds and penalties applied by the
// per-candidate bias audit. Thresholds are fractions of the already-ranked
// candidate set; a dimension is flagged when the share of prior candidates
// matching the new candidate exceeds its threshold.
type BiasConfig struct {
	GenderThreshold          float64
	AgeThreshold             float64
	LocationThreshold        float64
	ExperienceLevelThreshold float64
	NewcomerThreshold        float64

	GenderPenalty          float64
	AgePenalty             float64
	LocationPenalty        float64
	ExperienceLevelPenalty float64
	NewcomerPenalty        float64

	// AgeBandYears defines how close two ages must be to count as the
	// same age band.
	AgeBandYears int
}

// DefaultBiasConfig returns the observed production thresholds and
// penalties.
func DefaultBiasConfig() BiasConfig {
	return BiasConfig{
		GenderThreshold:          0.7,
		AgeThreshold:             0.6,
		LocationThreshold:        0.8,
		ExperienceLevelThreshold: 0.8,
		NewcomerThreshold:        0.9,
		GenderPenalty:            0.2,
		AgePenalty:               0.1,
		LocationPenalty:          0.1,
		ExperienceLevelPenalty:   0.1,
		NewcomerPenalty:          0.15,
		AgeBandYears:             5,
	}
}

// auditBias inspects the already-ranked candidates and computes the new
// candidate's diversity score, fairness flags, and audit trail. The audit
// trail is emitted for every candidate regardless of whether bias was
// detected; auditability is never optional.
func auditBias(cfg BiasConfig, candidate domain.Candidate, ranked []domain.Candidate) domain.BiasCheck {
	flags := []string{}
	score := 1.0
	total := len(ranked)

	if candidate.Gender != "" {
		sameGender := 0
		for _, r := range ranked {
			if r.Gender == candidate.Gender {
				sameGender++
			}
		}
		if sameGender > 0 && float64(sameGender) > float64(total)*cfg.GenderThreshold {
			flags = append(flags, "Gender imbalance detected")
			score -= cfg.GenderPenalty
		}
	}

	if candidate.Age > 0 {
		similarAges := 0
		for _, r := range ranked {
			if r.Age > 0 && abs(r.Age-candidate.Age) < cfg.AgeBandYears {
				similarAges++
			}
		}
		if similarAges > 0 && float64(similarAges) > float64(total)*cfg.AgeThreshold {
			flags = append(flags, "Age group concentration")
			score -= cfg.AgePenalty
		}
	}

	if candidate.Location != "" {
		sameLocation := 0
		for _, r := range ranked {
			if r.Location == candidate.Location {
				sameLocation++
			}
		}
		if sameLocation > 0 && float64(sameLocation) > float64(total)*cfg.LocationThreshold {
			flags = append(flags, "Geographic concentration")
			score -= cfg.LocationPenalty
		}
	}

	if candidate.ExperienceLevel != "" {
		sameLevel := 0
		for _, r := range ranked {
			if r.ExperienceLevel == candidate.ExperienceLevel {
				sameLevel++
			}
		}
		if sameLevel > 0 && float64(sameLevel) > float64(total)*cfg.ExperienceLevelThreshold {
			flags = append(flags, "Experience level concentration")
			score -= cfg.ExperienceLevelPenalty
		}
	}

	if strings.Contains(candidate.Experience, "newcomer") {
		experienced := 0
		for _, r := range ranked {
			if r.Experience != "" && !strings.Contains(r.Experience, "newcomer") {
				experienced++
			}
		}
		if experienced > 0 && float64(experienced) > float64(total)*cfg.NewcomerThreshold {
			flags = append(flags, "Experience bias - favoring established actors")
			score -= cfg.NewcomerPenalty
		}
	}

	if score < 0 {
		score = 0
	}

	trail := []string{
		"Candidate: " + candidate.Name,
		"Gender: " + orNotSpecified(candidate.Gender),
		"Age: " + ageString(candidate.Age),
		"Location: " + orNotSpecified(candidate.Location),
		"Experience: " + orNotSpecified(candidate.Experience),
		"Experience Level: " + orNotSpecified(candidate.ExperienceLevel),
		fmt.Sprintf("Diversity score: %.2f", score),
	}
	if len(flags) > 0 {
		trail = append(trail, "Fairness flags: "+strings.Join(flags, ", "))
	}

	return domain.BiasCheck{
		DiversityScore: score,
		FairnessFlags:  flags,
		AuditTrail:     trail,
	}
}

func orNotSpecified(s string) string {
	if s == "" {
		return "Not specified"
	}
	return s
}

func ageString(age int) string {
	if age <= 0 {
		return "Not specified"
	}
	return fmt.Sprintf("%d", age)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

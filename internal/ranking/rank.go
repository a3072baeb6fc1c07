// Package ranking orders evaluated candidates by weighted composite
// score with deterministic tiebreaks, tie-aware rank numbers and tier
// assignment.
package ranking

import (
	"fmt"
	"math"
	"sort"

	"github.com/jonathan/hiring-agent/internal/types"
)

// Composite score weights. Domain compatibility and role fit share top
// priority; these are deliberately NOT the attribution weights used by
// the explainability waterfall, which values role fit higher for display.
const (
	weightDomainCompatibility = 0.30
	weightRoleFit             = 0.30
	weightCapabilityStrength  = 0.20
	weightExecutionLanguage   = 0.15
	weightGrowthPotential     = 0.05
)

// Candidate is an evaluated, not yet ranked candidate.
type Candidate struct {
	Name        string
	Scores      types.CandidateScores
	Action      types.Action
	Explanation string
	XAIReport   string
}

// Composite computes the weighted composite score, rounded to 4 decimals.
// Since every input is bounded to [0,1] and the weights are non-negative
// and sum to 1.0, the result is in [0,1] by construction.
func Composite(s types.CandidateScores) float64 {
	composite := weightDomainCompatibility*s.DomainCompatibility +
		weightRoleFit*s.RoleFit +
		weightCapabilityStrength*s.CapabilityStrength +
		weightExecutionLanguage*s.ExecutionLanguage +
		weightGrowthPotential*s.GrowthPotential
	return round4(composite)
}

// Tier buckets a composite score.
func Tier(composite float64) string {
	switch {
	case composite >= 0.7:
		return types.TierExcellent
	case composite >= 0.5:
		return types.TierGood
	case composite >= 0.3:
		return types.TierMarginal
	default:
		return types.TierRejected
	}
}

// Rank orders candidates descending by composite score with the tiebreak
// cascade: action priority, domain compatibility, role fit, capability
// strength, then candidate name ascending. Rank numbers follow
// competition ranking with gaps: candidates sharing an exact composite
// score share a rank and carry a "T" marker, and the next distinct score
// resumes at its list position (e.g. 1, 2T, 2T, 4). Pure: no I/O, and
// re-ranking the same input reproduces identical output.
func Rank(candidates []Candidate) []types.CandidateResult {
	results := make([]types.CandidateResult, 0, len(candidates))
	for _, c := range candidates {
		composite := Composite(c.Scores)
		results = append(results, types.CandidateResult{
			Name:           c.Name,
			Scores:         c.Scores,
			Action:         c.Action,
			Explanation:    c.Explanation,
			CompositeScore: composite,
			Tier:           Tier(composite),
			XAIReport:      c.XAIReport,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.CompositeScore != b.CompositeScore {
			return a.CompositeScore > b.CompositeScore
		}
		if a.Action.Priority() != b.Action.Priority() {
			return a.Action.Priority() > b.Action.Priority()
		}
		if a.Scores.DomainCompatibility != b.Scores.DomainCompatibility {
			return a.Scores.DomainCompatibility > b.Scores.DomainCompatibility
		}
		if a.Scores.RoleFit != b.Scores.RoleFit {
			return a.Scores.RoleFit > b.Scores.RoleFit
		}
		if a.Scores.CapabilityStrength != b.Scores.CapabilityStrength {
			return a.Scores.CapabilityStrength > b.Scores.CapabilityStrength
		}
		return a.Name < b.Name
	})

	assignRanks(results)
	return results
}

// assignRanks walks tie groups of exact composite-score equality. Every
// member of a multi-candidate group gets the group's 1-based start
// position with a "T" suffix; singletons get a plain number.
func assignRanks(results []types.CandidateResult) {
	for start := 0; start < len(results); {
		end := start + 1
		for end < len(results) && results[end].CompositeScore == results[start].CompositeScore {
			end++
		}

		rank := start + 1
		for i := start; i < end; i++ {
			if end-start > 1 {
				results[i].Rank = fmt.Sprintf("%dT", rank)
			} else {
				results[i].Rank = fmt.Sprintf("%d", rank)
			}
		}
		start = end
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

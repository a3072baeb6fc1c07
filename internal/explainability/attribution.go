// Package explainability produces the per-candidate XAI report: a
// weighted feature attribution (a simplified decomposition, not a real
// attribution method), top semantic matches, skill gaps, counterfactual
// probes and a confidence label.
package explainability

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/hiring-agent/internal/types"
)

// Attribution display weights. These intentionally differ from the
// ranking composite weights (role fit is valued higher for display);
// keep the two sets distinct.
const (
	attrWeightRoleFit             = 0.35
	attrWeightDomainCompatibility = 0.25
	attrWeightCapabilityStrength  = 0.20
	attrWeightExecutionLanguage   = 0.15
	attrWeightGrowthPotential     = 0.05
)

// Contribution is one feature's share of the attributed score.
type Contribution struct {
	Feature string
	Value   float64
}

// Contributions decomposes candidate scores into per-feature
// contributions (score x attribution weight).
func Contributions(s types.CandidateScores) []Contribution {
	return []Contribution{
		{Feature: "Role Fit", Value: s.RoleFit * attrWeightRoleFit},
		{Feature: "Domain Compatibility", Value: s.DomainCompatibility * attrWeightDomainCompatibility},
		{Feature: "Capability Strength", Value: s.CapabilityStrength * attrWeightCapabilityStrength},
		{Feature: "Execution Language", Value: s.ExecutionLanguage * attrWeightExecutionLanguage},
		{Feature: "Growth Potential", Value: s.GrowthPotential * attrWeightGrowthPotential},
	}
}

// sortByMagnitude returns contributions ordered by absolute value,
// highest impact first. Stable, so equal contributions keep the fixed
// feature order.
func sortByMagnitude(contributions []Contribution) []Contribution {
	sorted := make([]Contribution, len(contributions))
	copy(sorted, contributions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return math.Abs(sorted[i].Value) > math.Abs(sorted[j].Value)
	})
	return sorted
}

// Waterfall renders the contribution breakdown as a running-total table
// from a zero baseline to the composite score.
func Waterfall(contributions []Contribution, composite float64) string {
	var sb strings.Builder
	divider := strings.Repeat("-", 60)

	sb.WriteString("Score Breakdown (Waterfall Analysis):\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("%-30s %6.4f\n", "Baseline:", 0.0))
	sb.WriteString(divider + "\n")

	runningTotal := 0.0
	for _, c := range sortByMagnitude(contributions) {
		runningTotal += c.Value
		sb.WriteString(fmt.Sprintf("%-30s +%6.4f  %s  (total: %.4f)\n",
			c.Feature+":", c.Value, impactMarker(c.Value), runningTotal))
	}

	sb.WriteString(divider + "\n")
	sb.WriteString(fmt.Sprintf("%-30s %6.4f\n", "Final Composite Score:", composite))
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	return sb.String()
}

func impactMarker(contribution float64) string {
	switch {
	case contribution > 0.15:
		return "high"
	case contribution > 0.05:
		return "mid"
	default:
		return "low"
	}
}

// Confidence labels the decision by the variance of the five scores
// around their mean: consistent scores mean a confident evaluation.
func Confidence(s types.CandidateScores) string {
	scores := []float64{
		s.RoleFit, s.CapabilityStrength, s.GrowthPotential,
		s.DomainCompatibility, s.ExecutionLanguage,
	}

	mean := 0.0
	for _, v := range scores {
		mean += v
	}
	mean /= float64(len(scores))

	variance := 0.0
	for _, v := range scores {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(scores))

	switch {
	case variance < 0.05:
		return "HIGH (scores are consistent)"
	case variance < 0.15:
		return "MEDIUM (some score variation)"
	default:
		return "LOW (high score variation - decision may be uncertain)"
	}
}

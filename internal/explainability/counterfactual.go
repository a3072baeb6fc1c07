package explainability

import (
	"fmt"
	"strings"

	"github.com/jonathan/hiring-agent/internal/policy"
	"github.com/jonathan/hiring-agent/internal/types"
)

// Probe is one what-if scenario: a single score raised to a fixed level.
type Probe struct {
	Description string
	Applies     func(types.CandidateScores) bool
	Apply       func(types.CandidateScores) types.CandidateScores
}

// probes are the fixed counterfactual scenarios. Each only raises a
// score, so a probed decision can never be worse than the original.
var probes = []Probe{
	{
		Description: "If Role Fit was 0.7+",
		Applies:     func(s types.CandidateScores) bool { return s.RoleFit < 0.7 },
		Apply: func(s types.CandidateScores) types.CandidateScores {
			s.RoleFit = 0.7
			return s
		},
	},
	{
		Description: "If Domain Compatibility was 0.9+",
		Applies:     func(s types.CandidateScores) bool { return s.DomainCompatibility < 0.9 },
		Apply: func(s types.CandidateScores) types.CandidateScores {
			s.DomainCompatibility = 0.9
			return s
		},
	},
	{
		Description: "If Capability Strength was 0.6+",
		Applies:     func(s types.CandidateScores) bool { return s.CapabilityStrength < 0.6 },
		Apply: func(s types.CandidateScores) types.CandidateScores {
			s.CapabilityStrength = 0.6
			return s
		},
	},
	{
		Description: "If candidate had required language",
		Applies:     func(s types.CandidateScores) bool { return s.ExecutionLanguage == 0 },
		Apply: func(s types.CandidateScores) types.CandidateScores {
			s.ExecutionLanguage = 1
			return s
		},
	},
}

// ProbeOutcome records a probe that changed the decision.
type ProbeOutcome struct {
	Description string
	NewAction   types.Action
}

// RunProbes re-evaluates the decision policy under each applicable probe
// and returns the scenarios where the action changed.
func RunProbes(scores types.CandidateScores, action types.Action) []ProbeOutcome {
	var outcomes []ProbeOutcome
	for _, probe := range probes {
		if !probe.Applies(scores) {
			continue
		}
		newAction := policy.Decide(probe.Apply(scores))
		if newAction != action {
			outcomes = append(outcomes, ProbeOutcome{
				Description: probe.Description,
				NewAction:   newAction,
			})
		}
	}
	return outcomes
}

// CounterfactualSection renders the what-if analysis as report text.
func CounterfactualSection(scores types.CandidateScores, action types.Action) string {
	var sb strings.Builder
	separator := strings.Repeat("=", 80)

	sb.WriteString("\nCounterfactual Analysis (What would change the decision?):\n")
	sb.WriteString(separator + "\n")

	outcomes := RunProbes(scores, action)
	if len(outcomes) == 0 {
		sb.WriteString("- No single score change would significantly alter the decision.\n")
		sb.WriteString("  This indicates a robust evaluation.\n")
	} else {
		for _, outcome := range outcomes {
			sb.WriteString(fmt.Sprintf("- %s -> Decision would be: %s\n",
				outcome.Description, outcome.NewAction))
		}
	}

	sb.WriteString(separator + "\n")
	return sb.String()
}

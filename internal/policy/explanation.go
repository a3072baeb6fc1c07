package policy

import (
	"fmt"
	"strings"

	"github.com/jonathan/hiring-agent/internal/types"
)

// Explain renders a human-readable rationale for a decision. The wording
// varies with which thresholds actually fired: INTERVIEW distinguishes
// high-domain-fit candidates from high-growth ones, and REJECT
// accumulates every concrete reason that applies.
func Explain(action types.Action, s types.CandidateScores) string {
	switch action {
	case types.ActionFastTrack:
		return fmt.Sprintf(
			"Strong candidate with excellent role fit (%v), capability (%v), and domain compatibility (%v). "+
				"Has required programming language. Recommended for fast-track hiring.",
			s.RoleFit, s.CapabilityStrength, s.DomainCompatibility)

	case types.ActionInterview:
		return explainInterview(s)

	case types.ActionPool:
		return fmt.Sprintf(
			"Candidate has required language and relevant skills (domain: %v, capability: %v) "+
				"but doesn't meet current interview thresholds. Consider for future opportunities or different roles.",
			s.DomainCompatibility, s.CapabilityStrength)

	case types.ActionReject:
		return explainReject(s)
	}

	return "Unable to determine recommendation."
}

func explainInterview(s types.CandidateScores) string {
	// Transferable ML developer branch.
	if s.DomainCompatibility >= 0.9 && s.CapabilityStrength >= 0.5 {
		return fmt.Sprintf(
			"Strong ML/Python developer with excellent domain fit (%v) and capability (%v). "+
				"Growth potential: %v. Skills are highly transferable to this role. "+
				"Recommend interview to assess specific project alignment.",
			s.DomainCompatibility, s.CapabilityStrength, s.GrowthPotential)
	}

	if s.GrowthPotential >= 0.7 && s.DomainCompatibility >= 0.7 {
		return fmt.Sprintf(
			"Promising candidate with high growth potential (%v) and strong domain fit (%v). "+
				"Has required programming language. Recommend interview to assess potential and cultural fit.",
			s.GrowthPotential, s.DomainCompatibility)
	}

	if s.DomainCompatibility >= 0.8 && s.CapabilityStrength >= 0.5 {
		return fmt.Sprintf(
			"Technically strong candidate with domain expertise (%v) and capability (%v). "+
				"Recommend interview to evaluate hands-on experience and project fit.",
			s.DomainCompatibility, s.CapabilityStrength)
	}

	return fmt.Sprintf(
		"Good candidate with role fit (%v) and required language skills. Domain compatibility: %v. "+
			"Recommend interview to assess experience depth.",
		s.RoleFit, s.DomainCompatibility)
}

func explainReject(s types.CandidateScores) string {
	var reasons []string

	if s.ExecutionLanguage == 0 {
		reasons = append(reasons, "missing required programming language (e.g., Java/C++ developer for Python role)")
	}
	if s.DomainCompatibility < 0.4 {
		reasons = append(reasons, fmt.Sprintf("incompatible technical domain (score: %v)", s.DomainCompatibility))
	}
	if s.ExecutionLanguage == 1 && s.DomainCompatibility < 0.6 && s.CapabilityStrength < 0.4 {
		reasons = append(reasons, "insufficient technical depth and domain alignment")
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "does not meet minimum evaluation thresholds")
	}

	return fmt.Sprintf("Not recommended: %s.", strings.Join(reasons, "; "))
}

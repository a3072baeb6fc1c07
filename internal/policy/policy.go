package policy

import "github.com/jonathan/hiring-agent/internal/types"

// Decide maps candidate scores to a hiring action through an ordered
// cascade of guards. First match wins; the order is load-bearing. Rules
// after the first two are implicitly gated on the required language being
// present, since rule 1 already rejected its absence.
func Decide(s types.CandidateScores) types.Action {
	// Hard gate: missing required language.
	if s.ExecutionLanguage == 0 {
		return types.ActionReject
	}

	// Hard gate: incompatible tech stack.
	if s.DomainCompatibility < 0.4 {
		return types.ActionReject
	}

	// Strong role fit with real capability.
	if s.RoleFit >= 0.6 && s.CapabilityStrength >= 0.3 {
		return types.ActionFastTrack
	}

	// Good direct role fit.
	if s.RoleFit >= 0.5 {
		return types.ActionInterview
	}

	// High growth potential in the right domain.
	if s.GrowthPotential >= 0.7 && s.DomainCompatibility >= 0.7 {
		return types.ActionInterview
	}

	// Near-perfect domain fit with decent capability, e.g. an ML
	// developer against a Python role whose direct matches are weak.
	if s.DomainCompatibility >= 0.9 && s.CapabilityStrength >= 0.5 {
		return types.ActionInterview
	}

	if s.DomainCompatibility >= 0.8 && s.CapabilityStrength >= 0.5 {
		return types.ActionInterview
	}

	// Worth keeping around: right language, decent domain, some signal.
	if s.DomainCompatibility >= 0.6 && (s.CapabilityStrength >= 0.4 || s.GrowthPotential >= 0.6) {
		return types.ActionPool
	}

	return types.ActionReject
}

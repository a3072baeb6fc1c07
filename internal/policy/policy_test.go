package policy

import (
	"testing"

	"github.com/jonathan/hiring-agent/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestDecide_MissingLanguageAlwaysRejects(t *testing.T) {
	scores := types.CandidateScores{
		RoleFit:             1.0,
		CapabilityStrength:  1.0,
		GrowthPotential:     1.0,
		DomainCompatibility: 1.0,
		ExecutionLanguage:   0,
	}
	assert.Equal(t, types.ActionReject, Decide(scores))
}

func TestDecide_LowDomainGateFiresBeforeInterviewRules(t *testing.T) {
	scores := types.CandidateScores{
		RoleFit:             0.9,
		CapabilityStrength:  0.9,
		GrowthPotential:     0.9,
		DomainCompatibility: 0.35,
		ExecutionLanguage:   1,
	}
	assert.Equal(t, types.ActionReject, Decide(scores))
}

func TestDecide_FastTrack(t *testing.T) {
	scores := types.CandidateScores{
		RoleFit:             0.8,
		CapabilityStrength:  0.5,
		GrowthPotential:     0.5,
		DomainCompatibility: 0.95,
		ExecutionLanguage:   1,
	}
	assert.Equal(t, types.ActionFastTrack, Decide(scores))
}

func TestDecide_InterviewOnRoleFit(t *testing.T) {
	scores := types.CandidateScores{
		RoleFit:             0.55,
		CapabilityStrength:  0.2, // below fast-track capability bar
		GrowthPotential:     0.1,
		DomainCompatibility: 0.5,
		ExecutionLanguage:   1,
	}
	assert.Equal(t, types.ActionInterview, Decide(scores))
}

func TestDecide_InterviewOnGrowthAndDomain(t *testing.T) {
	scores := types.CandidateScores{
		RoleFit:             0.2,
		CapabilityStrength:  0.1,
		GrowthPotential:     0.8,
		DomainCompatibility: 0.75,
		ExecutionLanguage:   1,
	}
	assert.Equal(t, types.ActionInterview, Decide(scores))
}

func TestDecide_InterviewOnDomainAndCapability(t *testing.T) {
	scores := types.CandidateScores{
		RoleFit:             0.2,
		CapabilityStrength:  0.55,
		GrowthPotential:     0.1,
		DomainCompatibility: 0.92,
		ExecutionLanguage:   1,
	}
	assert.Equal(t, types.ActionInterview, Decide(scores))

	scores.DomainCompatibility = 0.85
	assert.Equal(t, types.ActionInterview, Decide(scores))
}

func TestDecide_Pool(t *testing.T) {
	scores := types.CandidateScores{
		RoleFit:             0.3,
		CapabilityStrength:  0.45,
		GrowthPotential:     0.2,
		DomainCompatibility: 0.65,
		ExecutionLanguage:   1,
	}
	assert.Equal(t, types.ActionPool, Decide(scores))

	// Growth can substitute for capability.
	scores.CapabilityStrength = 0.1
	scores.GrowthPotential = 0.65
	assert.Equal(t, types.ActionPool, Decide(scores))
}

func TestDecide_DefaultReject(t *testing.T) {
	scores := types.CandidateScores{
		RoleFit:             0.3,
		CapabilityStrength:  0.2,
		GrowthPotential:     0.2,
		DomainCompatibility: 0.5,
		ExecutionLanguage:   1,
	}
	assert.Equal(t, types.ActionReject, Decide(scores))
}

func TestDecide_EmptyResumeFallsToDomainGate(t *testing.T) {
	// An empty fragment list produces zero scores across the board; the
	// domain gate rejects before any interview rule is considered.
	scores := types.CandidateScores{ExecutionLanguage: 1}
	assert.Equal(t, types.ActionReject, Decide(scores))
}

func TestDecide_TotalOverScoreGrid(t *testing.T) {
	// Every grid point must map to exactly one of the four actions, and
	// execution_language=0 must always reject.
	steps := []float64{0, 0.25, 0.5, 0.75, 1}
	for _, rfs := range steps {
		for _, css := range steps {
			for _, gps := range steps {
				for _, dcs := range steps {
					for _, elc := range []float64{0, 1} {
						scores := types.CandidateScores{
							RoleFit:             rfs,
							CapabilityStrength:  css,
							GrowthPotential:     gps,
							DomainCompatibility: dcs,
							ExecutionLanguage:   elc,
						}
						action := Decide(scores)
						assert.Contains(t, []types.Action{
							types.ActionFastTrack, types.ActionInterview,
							types.ActionPool, types.ActionReject,
						}, action)
						if elc == 0 {
							assert.Equal(t, types.ActionReject, action)
						}
					}
				}
			}
		}
	}
}

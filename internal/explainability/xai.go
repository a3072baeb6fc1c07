package explainability

import (
	"fmt"
	"strings"

	"github.com/jonathan/hiring-agent/internal/types"
)

const (
	topMatchesToShow = 5
	gapsToShow       = 5
	snippetLength    = 80
)

// Report assembles the full explainable-AI analysis for one candidate:
// feature contributions, top semantic matches, skill gaps,
// counterfactual probes and the decision summary.
func Report(name string, scores types.CandidateScores, action types.Action, composite float64, matches []types.SemanticMatch, requirements []string) string {
	var sb strings.Builder
	separator := strings.Repeat("=", 80)
	divider := strings.Repeat("-", 80)

	sb.WriteString("\n" + separator + "\n")
	sb.WriteString(fmt.Sprintf("EXPLAINABLE AI ANALYSIS: %s\n", name))
	sb.WriteString(separator + "\n\n")

	contributions := Contributions(scores)

	sb.WriteString("FEATURE CONTRIBUTION ANALYSIS\n")
	sb.WriteString(divider + "\n")
	sb.WriteString(Waterfall(contributions, composite))

	sb.WriteString("\nSEMANTIC SIMILARITY ANALYSIS\n")
	sb.WriteString(divider + "\n")
	sb.WriteString(topMatchesSection(matches))

	sb.WriteString("\nSKILL GAP ANALYSIS\n")
	sb.WriteString(divider + "\n")
	sb.WriteString(skillGapsSection(requirements, matches))

	sb.WriteString("\nCOUNTERFACTUAL ANALYSIS\n")
	sb.WriteString(divider + "\n")
	sb.WriteString(CounterfactualSection(scores, action))

	sb.WriteString("\nDECISION SUMMARY\n")
	sb.WriteString(divider + "\n")
	sb.WriteString(fmt.Sprintf("Final Decision: %s\n", action))
	sb.WriteString(fmt.Sprintf("Composite Score: %.4f\n", composite))
	sb.WriteString(fmt.Sprintf("Confidence Level: %s\n", Confidence(scores)))
	sb.WriteString(keyFactorsSection(contributions))

	sb.WriteString("\n" + separator + "\n")
	return sb.String()
}

// topMatchesSection explains which requirements best matched the
// candidate's experience, with a bar proportional to similarity.
func topMatchesSection(matches []types.SemanticMatch) string {
	if len(matches) == 0 {
		return "No semantic matches found between JD and resume.\n"
	}

	var sb strings.Builder
	separator := strings.Repeat("=", 80)

	shown := min(topMatchesToShow, len(matches))
	sb.WriteString(fmt.Sprintf("\nTop %d Matching Skills/Experience:\n", shown))
	sb.WriteString(separator + "\n")

	for i, match := range matches[:shown] {
		bar := strings.Repeat("#", int(match.Similarity*20))
		sb.WriteString(fmt.Sprintf("\n%d. Match Strength: %.3f %s\n", i+1, match.Similarity, bar))
		sb.WriteString(fmt.Sprintf("   JD Requirement: %s...\n", snippet(match.JDText)))
		sb.WriteString(fmt.Sprintf("   Candidate Has:  %s...\n", snippet(match.ResumeText)))
	}

	sb.WriteString("\n" + separator + "\n")
	return sb.String()
}

// skillGapsSection lists requirements with no match at all, by set
// difference against matched requirement texts.
func skillGapsSection(requirements []string, matches []types.SemanticMatch) string {
	matched := make(map[string]bool)
	for _, match := range matches {
		matched[match.JDText] = true
	}

	var gaps []string
	for _, requirement := range requirements {
		if !matched[requirement] {
			gaps = append(gaps, requirement)
		}
	}

	if len(gaps) == 0 {
		return "\nAll JD requirements have at least some matching experience.\n"
	}

	var sb strings.Builder
	separator := strings.Repeat("=", 80)

	sb.WriteString(fmt.Sprintf("\nPotential Skill Gaps (%d requirements not strongly matched):\n", len(gaps)))
	sb.WriteString(separator + "\n")

	shown := min(gapsToShow, len(gaps))
	for i, gap := range gaps[:shown] {
		sb.WriteString(fmt.Sprintf("%d. %s...\n", i+1, snippet(gap)))
	}
	if len(gaps) > gapsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more unmatched requirements.\n", len(gaps)-gapsToShow))
	}

	sb.WriteString(separator + "\n")
	return sb.String()
}

// keyFactorsSection lists the strongest and weakest contributions.
func keyFactorsSection(contributions []Contribution) string {
	sorted := make([]Contribution, len(contributions))
	copy(sorted, contributions)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].Value > sorted[i].Value {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("\nKey Factors:\n")

	sb.WriteString("\nStrengths:\n")
	for _, c := range sorted[:3] {
		if c.Value > 0.1 {
			sb.WriteString(fmt.Sprintf("  + %s: %.4f\n", c.Feature, c.Value))
		}
	}

	sb.WriteString("\nAreas for Improvement:\n")
	for _, c := range sorted[len(sorted)-3:] {
		if c.Value < 0.15 {
			sb.WriteString(fmt.Sprintf("  - %s: %.4f\n", c.Feature, c.Value))
		}
	}

	return sb.String()
}

func snippet(s string) string {
	runes := []rune(s)
	if len(runes) <= snippetLength {
		return s
	}
	return string(runes[:snippetLength])
}

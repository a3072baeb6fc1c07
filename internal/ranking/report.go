package ranking

import (
	"fmt"
	"strings"

	"github.com/jonathan/hiring-agent/internal/types"
)

const reportWidth = 80

// GenerateReport renders the ranked candidate list as a formatted text
// report with per-candidate score lines and the tier legend.
func GenerateReport(results []types.CandidateResult) string {
	var sb strings.Builder
	separator := strings.Repeat("=", reportWidth)
	divider := strings.Repeat("-", reportWidth)

	sb.WriteString("\n" + separator + "\n")
	sb.WriteString("CANDIDATE RANKING REPORT\n")
	sb.WriteString(separator + "\n\n")

	for _, result := range results {
		sb.WriteString(fmt.Sprintf("%5s | %-25s | Score: %.4f | %s\n",
			"#"+result.Rank, result.Name, result.CompositeScore, result.Tier))
		sb.WriteString(fmt.Sprintf("      | Action: %s\n", result.Action))
		sb.WriteString(fmt.Sprintf("      | RFS: %.3f | CSS: %.3f | GPS: %.3f | DCS: %.3f | ELC: %.0f\n",
			result.Scores.RoleFit, result.Scores.CapabilityStrength,
			result.Scores.GrowthPotential, result.Scores.DomainCompatibility,
			result.Scores.ExecutionLanguage))

		if strings.HasSuffix(result.Rank, "T") {
			sb.WriteString("      | Tied with other candidate(s) - ranked by domain compatibility and role fit\n")
		}

		sb.WriteString(fmt.Sprintf("      | Reason: %s\n", truncate(result.Explanation, 100)))
		sb.WriteString(divider + "\n")
	}

	sb.WriteString("\n" + separator + "\n")
	sb.WriteString("TIER DEFINITIONS:\n")
	sb.WriteString("  - Excellent (>=0.7): Top candidates, recommend immediate action\n")
	sb.WriteString("  - Good (>=0.5): Solid candidates, worth interviewing\n")
	sb.WriteString("  - Marginal (>=0.3): Edge cases, consider for specific needs\n")
	sb.WriteString("  - Rejected (<0.3): Not suitable for current role\n")
	sb.WriteString(separator + "\n")

	return sb.String()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/hiring-agent/internal/pipeline"
	"github.com/jonathan/hiring-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintSession outputs a human-readable summary of a prepared session.
func (p *Printer) PrintSession(session *pipeline.Session) {
	if session == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job Description: %s\n", session.JDName))
	sb.WriteString(fmt.Sprintf("Threshold:       %.2f\n", session.Threshold))
	sb.WriteString(fmt.Sprintf("Language:        %s\n", session.RequiredLanguage))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Requirements (%d):\n", len(session.Requirements)))
	count := min(len(session.Requirements), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", session.Requirements[i]))
	}
	if len(session.Requirements) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(session.Requirements)-maxItemsToShow))
	}

	p.printBox("SESSION", sb.String())
}

// PrintCandidate outputs a one-candidate evaluation summary.
func (p *Printer) PrintCandidate(result types.CandidateResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Decision:  %s\n", result.Action.Tag()))
	sb.WriteString(fmt.Sprintf("Composite: %.4f (#%s, %s)\n", result.CompositeScore, result.Rank, result.Tier))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Role Fit:             %.3f\n", result.Scores.RoleFit))
	sb.WriteString(fmt.Sprintf("Capability Strength:  %.3f\n", result.Scores.CapabilityStrength))
	sb.WriteString(fmt.Sprintf("Growth Potential:     %.3f\n", result.Scores.GrowthPotential))
	sb.WriteString(fmt.Sprintf("Domain Compatibility: %.3f\n", result.Scores.DomainCompatibility))
	sb.WriteString(fmt.Sprintf("Execution Language:   %.0f\n", result.Scores.ExecutionLanguage))

	p.printBox(result.Name, sb.String())
}

// PrintSummary outputs the run's decision counts.
func (p *Printer) PrintSummary(summary pipeline.Summary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Candidates: %d\n", summary.Total))
	sb.WriteString(fmt.Sprintf("Fast Track: %d\n", summary.FastTrack))
	sb.WriteString(fmt.Sprintf("Interview:  %d\n", summary.Interview))
	sb.WriteString(fmt.Sprintf("Pool:       %d\n", summary.Pool))
	sb.WriteString(fmt.Sprintf("Reject:     %d\n", summary.Reject))
	if summary.Skipped > 0 {
		sb.WriteString(fmt.Sprintf("Skipped:    %d\n", summary.Skipped))
	}

	p.printBox("SUMMARY", sb.String())
}

// PrintSkipped lists candidates that could not be evaluated.
func (p *Printer) PrintSkipped(skipped []pipeline.SkippedResume) {
	if len(skipped) == 0 {
		return
	}

	var sb strings.Builder
	for _, s := range skipped {
		sb.WriteString(fmt.Sprintf("• %s: %s\n", s.Name, s.Reason))
	}
	p.printBox("SKIPPED", sb.String())
}

// Package ontology holds the keyword heuristics that classify job
// description content: which fragments are evaluative requirements, which
// documents are job descriptions, and which role a requirement belongs to.
package ontology

import "strings"

// actionKeywords indicate that a sentence describes something the hire
// will actually do.
var actionKeywords = []string{
	"write", "build", "develop", "design", "implement", "work",
	"debug", "test", "deploy", "learn", "assist", "create",
	"train", "evaluate", "optimize", "collect", "preprocess",
}

// skillKeywords indicate that a sentence references a concrete technical
// skill.
var skillKeywords = []string{
	"python", "api", "apis", "database", "sql",
	"flask", "django", "oop", "git", "testing",
	"machine learning", "ml", "pandas", "numpy",
	"scikit", "statistics", "data",
}

// negativePatterns mark non-evaluative boilerplate sections.
var negativePatterns = []string{
	"company overview",
	"professional development",
	"position",
	"entry-level",
	"fresher",
	"roles responsibilities",
	"day-to-day",
	"location",
	"guide",
	"phase",
}

const minRequirementWords = 4

// IsRequirement reports whether a normalized JD fragment is an evaluative
// requirement: long enough, free of boilerplate markers, and containing
// both an action keyword and a skill keyword.
func IsRequirement(fragment string) bool {
	lower := strings.ToLower(fragment)

	for _, pattern := range negativePatterns {
		if strings.Contains(lower, pattern) {
			return false
		}
	}

	if len(strings.Fields(lower)) < minRequirementWords {
		return false
	}

	return containsAny(lower, actionKeywords) && containsAny(lower, skillKeywords)
}

// ExtractRequirements filters JD fragments down to the evaluative
// requirement subset, de-duplicated with input order preserved.
func ExtractRequirements(fragments []string) []string {
	seen := make(map[string]bool)
	var requirements []string

	for _, fragment := range fragments {
		trimmed := strings.TrimSpace(fragment)
		if !IsRequirement(trimmed) {
			continue
		}
		if seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		requirements = append(requirements, trimmed)
	}

	return requirements
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// Package preprocess turns raw extracted document text into clean,
// PII-redacted sentence fragments ready for evaluation.
package preprocess

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`\b[\w.-]+@[\w.-]+\.\w+\b`)
	phonePattern = regexp.MustCompile(`\b(\+?\d[\d\s\-()]{7,}\d)\b`)
	urlPattern   = regexp.MustCompile(`(https?://\S+|www\.\S+)`)

	whitespacePattern  = regexp.MustCompile(`\s+`)
	specialCharPattern = regexp.MustCompile(`[^\w\s.,\-:;()\[\]]`)
	camelCasePattern   = regexp.MustCompile(`([a-z])([A-Z])`)
	terminatorPattern  = regexp.MustCompile(`[.!?]\s+`)
)

// contactHeaderKeywords mark fragments that are contact/header boilerplate
// rather than evaluable content.
var contactHeaderKeywords = []string{
	"linkedin", "github", "gmail", "contact info",
	"personal details", "email", "phone",
}

const (
	minLineLength     = 5
	minFragmentLength = 15
	maxRedactions     = 2
)

// RedactPII replaces email addresses, phone numbers and URLs with
// placeholder tokens. Redaction runs before any other processing so PII
// never reaches downstream components.
func RedactPII(text string) string {
	text = emailPattern.ReplaceAllString(text, "[EMAIL]")
	text = phonePattern.ReplaceAllString(text, "[PHONE]")
	text = urlPattern.ReplaceAllString(text, "[URL]")
	return text
}

// cleanFragment collapses whitespace and strips special characters while
// keeping basic punctuation readable.
func cleanFragment(text string) string {
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = specialCharPattern.ReplaceAllString(text, "")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// splitJoinedWords inserts spaces into obvious camelCase joins. PDF
// extraction sometimes glues words together across layout boundaries;
// only the unambiguous lower-to-upper transition is split.
func splitJoinedWords(text string) string {
	return camelCasePattern.ReplaceAllString(text, "$1 $2")
}

// splitSentences breaks text into sentence-like fragments. Lines that end
// with a terminator are kept whole, lines with embedded terminators are
// split on them, and anything else (bullet points, headings) passes
// through as a single fragment.
func splitSentences(text string) []string {
	var fragments []string

	for _, paragraph := range strings.Split(text, "\n\n") {
		for _, line := range strings.Split(paragraph, "\n") {
			line = strings.TrimSpace(line)
			if len(line) < minLineLength {
				continue
			}

			switch {
			case strings.HasSuffix(line, ".") || strings.HasSuffix(line, "!") ||
				strings.HasSuffix(line, "?") || strings.HasSuffix(line, ":"):
				fragments = append(fragments, line)
			case terminatorPattern.MatchString(line):
				fragments = append(fragments, splitInline(line)...)
			default:
				fragments = append(fragments, line)
			}
		}
	}

	return fragments
}

// splitInline splits a single line on sentence terminators, keeping the
// terminator with the preceding sentence.
func splitInline(line string) []string {
	var out []string

	start := 0
	for _, loc := range terminatorPattern.FindAllStringIndex(line, -1) {
		sentence := strings.TrimSpace(line[start : loc[0]+1])
		if len(sentence) > 10 {
			out = append(out, sentence)
		}
		start = loc[1]
	}
	if rest := strings.TrimSpace(line[start:]); len(rest) > 10 {
		out = append(out, rest)
	}

	return out
}

// isContactHeader reports whether a fragment looks like contact or profile
// boilerplate that should not be evaluated.
func isContactHeader(fragment string) bool {
	lower := strings.ToLower(fragment)
	for _, kw := range contactHeaderKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// redactionCount counts placeholder tokens left by RedactPII.
func redactionCount(fragment string) int {
	return strings.Count(fragment, "[EMAIL]") +
		strings.Count(fragment, "[PHONE]") +
		strings.Count(fragment, "[URL]")
}

// Normalize converts raw document text into cleaned sentence fragments:
// PII is redacted first, joined words are conservatively split, the text
// is segmented into sentences, and short, contact-header, or
// redaction-heavy fragments are dropped. Deterministic and pure.
func Normalize(text string) []string {
	text = RedactPII(text)
	text = splitJoinedWords(text)

	var fragments []string
	for _, raw := range splitSentences(text) {
		cleaned := cleanFragment(raw)
		if len(cleaned) <= minFragmentLength {
			continue
		}
		if isContactHeader(cleaned) {
			continue
		}
		if redactionCount(cleaned) > maxRedactions {
			continue
		}
		fragments = append(fragments, cleaned)
	}

	return fragments
}

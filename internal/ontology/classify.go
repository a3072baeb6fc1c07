package ontology

import "strings"

// jdKeywords are phrases that commonly appear in job descriptions but not
// in resumes. A document matching at least two of them is classified as a
// job description.
var jdKeywords = []string{
	"job description",
	"responsibilities",
	"requirements",
	"we are hiring",
	"skills required",
	"role",
	"eligibility",
	"position",
}

const minJDKeywordHits = 2

// IsJobDescription reports whether raw document text looks like a job
// description rather than a resume.
func IsJobDescription(text string) bool {
	lower := strings.ToLower(text)

	hits := 0
	for _, kw := range jdKeywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	return hits >= minJDKeywordHits
}

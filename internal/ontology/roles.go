package ontology

import "strings"

// roleKeywords buckets requirements into role profiles. The set can grow
// as new role families are added.
var roleKeywords = map[string][]string{
	"python_backend": {
		"python", "api", "apis", "database", "sql",
		"backend", "flask", "django", "crud", "server",
	},
	"ml_engineer": {
		"machine learning", "ml", "dataset", "data",
		"preprocess", "train", "evaluate", "model",
		"numpy", "pandas", "scikit", "prediction",
	},
}

// SplitByRole assigns each requirement to every role whose keyword set it
// touches. Requirements matching no role are dropped; roles with no
// requirements are omitted from the result.
func SplitByRole(requirements []string) map[string][]string {
	buckets := make(map[string][]string)

	for _, requirement := range requirements {
		lower := strings.ToLower(requirement)
		for role, keywords := range roleKeywords {
			if containsAny(lower, keywords) {
				buckets[role] = append(buckets[role], requirement)
			}
		}
	}

	return buckets
}

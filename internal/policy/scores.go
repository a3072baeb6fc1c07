// Package policy implements candidate scoring and the hiring decision
// cascade. Every score is a pure function over keyword lists and semantic
// matches, bounded to [0,1] and rounded to 3 decimals for determinism.
package policy

import (
	"math"
	"strings"

	"github.com/jonathan/hiring-agent/internal/types"
)

// topMatchCount is how many of the highest semantic matches feed the role
// fit average.
const topMatchCount = 10

// densityMultiplier scales keyword-hit density for the capability and
// growth scores before clamping to 1.0.
const densityMultiplier = 5.0

// strengthKeywords signal seniority and hands-on depth.
var strengthKeywords = []string{
	"expert", "advanced", "proficient", "experienced",
	"senior", "lead", "architect", "specialist",
	"years", "projects", "deployed", "production",
}

// growthKeywords signal learning momentum.
var growthKeywords = []string{
	"learning", "course", "certification", "training",
	"bootcamp", "internship", "project", "hackathon",
	"self-taught", "passionate", "eager", "motivated",
}

// Technical keyword categories for domain compatibility.
var (
	pythonKeywords = []string{
		"python", "django", "flask", "fastapi", "pandas", "numpy",
		"scikit-learn", "tensorflow", "pytorch", "keras",
	}
	mlKeywords = []string{
		"machine learning", "ml", "data science", "ai",
		"deep learning", "neural network", "model training",
	}
	dataKeywords = []string{
		"data analysis", "data processing", "sql", "postgresql",
		"mongodb", "data visualization",
	}
	webKeywords  = []string{"api", "rest", "http", "web", "backend", "frontend"}
	javaKeywords = []string{"java", "spring", "hibernate", "j2ee", "maven", "gradle"}
	cppKeywords  = []string{"c++", "cpp", "stl", "boost"}
)

// mlTransferIndicators are ML-stack skills that imply working Python
// proficiency. Used both by the execution language equivalence check and
// the combined role fit adjustment.
var mlTransferIndicators = []string{
	"machine learning", "data science", "tensorflow", "pytorch",
	"keras", "scikit-learn", "pandas", "numpy",
}

// RoleFit averages the similarity of the K highest semantic matches.
// Matches are expected sorted descending by similarity (the matcher's
// ordering guarantee). No matches means 0.
func RoleFit(matches []types.SemanticMatch) float64 {
	if len(matches) == 0 {
		return 0.0
	}

	topN := min(topMatchCount, len(matches))
	total := 0.0
	for _, match := range matches[:topN] {
		total += match.Similarity
	}
	return round3(total / float64(topN))
}

// CombinedRoleFit folds a transferability signal into the pure role fit:
// a resume carrying ML-stack skills for a Python/ML job description is a
// plausible fit even when direct sentence matches are weak. The
// adjustment scales with the number of distinct indicators present,
// capped below the fast-track band so transferred skills alone cannot
// fast-track a candidate.
func CombinedRoleFit(matches []types.SemanticMatch, fragments []string, requirements []string) float64 {
	pure := RoleFit(matches)
	adjustment := transferabilityAdjustment(fragments, requirements)
	return round3(math.Max(pure, adjustment))
}

func transferabilityAdjustment(fragments []string, requirements []string) float64 {
	jdText := joinedLower(requirements)
	if !containsAny(jdText, pythonKeywords) && !containsAny(jdText, mlKeywords) {
		return 0.0
	}

	resumeText := joinedLower(fragments)
	hits := 0
	for _, indicator := range mlTransferIndicators {
		if strings.Contains(resumeText, indicator) {
			hits++
		}
	}
	if hits == 0 {
		return 0.0
	}

	return math.Min(0.65, 0.45+0.05*float64(hits))
}

// CapabilityStrength scores the density of seniority/experience keywords
// across resume fragments.
func CapabilityStrength(fragments []string) float64 {
	return keywordDensityScore(fragments, strengthKeywords)
}

// GrowthPotential scores the density of learning/training keywords across
// resume fragments.
func GrowthPotential(fragments []string) float64 {
	return keywordDensityScore(fragments, growthKeywords)
}

func keywordDensityScore(fragments []string, keywords []string) float64 {
	if len(fragments) == 0 {
		return 0.0
	}

	hits := 0
	for _, fragment := range fragments {
		lower := strings.ToLower(fragment)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
	}

	score := math.Min(1.0, float64(hits)/float64(len(fragments))*densityMultiplier)
	return round3(score)
}

// DomainCompatibility measures keyword-category overlap between the JD
// and the resume: for each category (Python, ML, data, web) the fraction
// of the JD's category keywords the resume also carries, averaged over
// the categories the JD actually uses. A resume signalling a conflicting
// primary stack (Java or C++ for a Python/ML role) with no Python
// overlap is capped near the bottom of the scale instead of averaged.
func DomainCompatibility(requirements []string, fragments []string) float64 {
	if len(requirements) == 0 || len(fragments) == 0 {
		return 0.0
	}

	jdText := joinedLower(requirements)
	resumeText := joinedLower(fragments)

	pythonScore := categoryOverlap(pythonKeywords, jdText, resumeText)
	mlScore := categoryOverlap(mlKeywords, jdText, resumeText)
	dataScore := categoryOverlap(dataKeywords, jdText, resumeText)
	webScore := categoryOverlap(webKeywords, jdText, resumeText)

	// Wrong primary language penalty: a pure Java/C++ profile against a
	// Python/ML JD is incompatible regardless of incidental web overlap.
	pythonInJD := containsAny(jdText, pythonKeywords) || containsAny(jdText, mlKeywords)
	conflictingStack := containsAny(resumeText, javaKeywords) || containsAny(resumeText, cppKeywords)
	if pythonInJD && conflictingStack {
		hasPython := containsAny(resumeText, pythonKeywords) || containsAny(resumeText, mlKeywords)
		if !hasPython {
			return round3(math.Max(webScore*0.3, 0.1))
		}
	}

	total := 0.0
	nonzero := 0
	for _, score := range []float64{pythonScore, mlScore, dataScore, webScore} {
		if score > 0 {
			total += score
			nonzero++
		}
	}
	if nonzero == 0 {
		return 0.0
	}

	return round3(math.Min(1.0, total/float64(nonzero)))
}

// categoryOverlap returns the ratio of a category's JD keywords that also
// appear in the resume, or 0 when the JD uses none of the category.
func categoryOverlap(keywords []string, jdText, resumeText string) float64 {
	jdCount := 0
	resumeCount := 0
	for _, kw := range keywords {
		if strings.Contains(jdText, kw) {
			jdCount++
		}
		if strings.Contains(resumeText, kw) {
			resumeCount++
		}
	}
	if jdCount == 0 {
		return 0.0
	}
	return float64(resumeCount) / float64(jdCount)
}

// ExecutionLanguage is the binary required-language gate: 1 when the
// resume carries the required language or a member of its closed
// equivalence set, 0 otherwise.
func ExecutionLanguage(requiredLanguage string, fragments []string) float64 {
	if len(fragments) == 0 || requiredLanguage == "" {
		return 0
	}

	resumeText := joinedLower(fragments)
	required := strings.ToLower(requiredLanguage)

	if strings.Contains(resumeText, required) {
		return 1
	}

	switch required {
	case "python":
		// ML/data-science stack implies Python.
		if containsAny(resumeText, mlTransferIndicators) {
			return 1
		}
	case "javascript":
		if containsAny(resumeText, []string{"javascript", "typescript", "node", "nodejs", "react", "angular", "vue"}) {
			return 1
		}
	case "java":
		if containsAny(resumeText, []string{"java", "spring", "j2ee", "kotlin"}) {
			return 1
		}
	case "c++":
		if containsAny(resumeText, []string{"c++", "cpp"}) {
			return 1
		}
	}

	return 0
}

// Evaluate computes all five scores for one candidate.
func Evaluate(matches []types.SemanticMatch, fragments []string, requirements []string, requiredLanguage string) types.CandidateScores {
	return types.CandidateScores{
		RoleFit:             CombinedRoleFit(matches, fragments, requirements),
		CapabilityStrength:  CapabilityStrength(fragments),
		GrowthPotential:     GrowthPotential(fragments),
		DomainCompatibility: DomainCompatibility(requirements, fragments),
		ExecutionLanguage:   ExecutionLanguage(requiredLanguage, fragments),
	}
}

func joinedLower(fragments []string) string {
	return strings.ToLower(strings.Join(fragments, " "))
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

package types

// CandidateScores holds the five evaluation scores for one candidate.
// All values are bounded to [0,1]; ExecutionLanguage is binary (0 or 1).
type CandidateScores struct {
	RoleFit             float64 `json:"role_fit"`
	CapabilityStrength  float64 `json:"capability_strength"`
	GrowthPotential     float64 `json:"growth_potential"`
	DomainCompatibility float64 `json:"domain_compatibility"`
	ExecutionLanguage   float64 `json:"execution_language"`
}

// SemanticMatch records one requirement/fragment pair whose embedding
// similarity cleared the match threshold.
type SemanticMatch struct {
	JDText      string  `json:"jd_text"`
	ResumeText  string  `json:"resume_text"`
	Similarity  float64 `json:"similarity"`
	JDIndex     int     `json:"jd_index"`
	ResumeIndex int     `json:"resume_index"`
}

// Tier buckets a candidate by composite score.
const (
	TierExcellent = "Excellent"
	TierGood      = "Good"
	TierMarginal  = "Marginal"
	TierRejected  = "Rejected"
)

// CandidateResult is the terminal, externally visible entity of the pipeline:
// one evaluated, ranked, explained candidate.
type CandidateResult struct {
	Name           string          `json:"name"`
	Scores         CandidateScores `json:"scores"`
	Action         Action          `json:"action"`
	Explanation    string          `json:"explanation"`
	CompositeScore float64         `json:"composite_score"`
	// Rank is 1-based and carries a "T" suffix when the candidate is tied
	// with another on exact composite score, e.g. "2T".
	Rank      string `json:"rank"`
	Tier      string `json:"tier"`
	XAIReport string `json:"xai_report,omitempty"`
}

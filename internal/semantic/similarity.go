package semantic

import (
	"fmt"
	"math"
	"sort"

	"github.com/jonathan/hiring-agent/internal/types"
)

// DefaultThreshold is the minimum cosine similarity for a requirement and
// a resume fragment to count as a match.
const DefaultThreshold = 0.55

// ShapeError indicates that the texts and vectors passed to Matches do
// not line up: mismatched lengths or inconsistent vector dimensions.
// Inputs are never silently truncated.
type ShapeError struct {
	Message string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("invalid input shape: %s", e.Message)
}

// Matches computes the full pairwise cosine-similarity matrix between
// requirement vectors and fragment vectors and returns every pair whose
// similarity meets the threshold, sorted descending by similarity.
// Ties keep requirement order, then fragment order, so the result is
// deterministic. Empty requirement or fragment sets yield an empty
// result, not an error.
func Matches(requirements []string, requirementVectors [][]float32, fragments []string, fragmentVectors [][]float32, threshold float64) ([]types.SemanticMatch, error) {
	if err := checkShape(requirements, requirementVectors, "requirement"); err != nil {
		return nil, err
	}
	if err := checkShape(fragments, fragmentVectors, "fragment"); err != nil {
		return nil, err
	}

	if len(requirements) == 0 || len(fragments) == 0 {
		return nil, nil
	}

	if len(requirementVectors[0]) != len(fragmentVectors[0]) {
		return nil, &ShapeError{
			Message: fmt.Sprintf("requirement vectors have dimension %d but fragment vectors have %d",
				len(requirementVectors[0]), len(fragmentVectors[0])),
		}
	}

	var matches []types.SemanticMatch
	for i, requirement := range requirements {
		for j, fragment := range fragments {
			similarity := cosine(requirementVectors[i], fragmentVectors[j])
			if similarity >= threshold {
				matches = append(matches, types.SemanticMatch{
					JDText:      requirement,
					ResumeText:  fragment,
					Similarity:  similarity,
					JDIndex:     i,
					ResumeIndex: j,
				})
			}
		}
	}

	// Stable sort keeps (requirement, fragment) insertion order for equal
	// similarities.
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].Similarity > matches[b].Similarity
	})

	return matches, nil
}

func checkShape(texts []string, vectors [][]float32, kind string) error {
	if len(texts) != len(vectors) {
		return &ShapeError{
			Message: fmt.Sprintf("%d %s texts but %d vectors", len(texts), kind, len(vectors)),
		}
	}
	for i, vector := range vectors {
		if len(vector) != len(vectors[0]) {
			return &ShapeError{
				Message: fmt.Sprintf("%s vector %d has dimension %d, expected %d",
					kind, i, len(vector), len(vectors[0])),
			}
		}
	}
	return nil
}

// cosine returns the cosine similarity of two vectors, or 0 when either
// has zero magnitude.
func cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

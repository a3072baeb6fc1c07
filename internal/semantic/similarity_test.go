package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches_ThresholdFiltering(t *testing.T) {
	requirements := []string{"build APIs", "train models"}
	reqVectors := [][]float32{{1, 0}, {0, 1}}
	fragments := []string{"built REST APIs", "wrote documentation"}
	fragVectors := [][]float32{{1, 0}, {0.5, 0.5}}

	matches, err := Matches(requirements, reqVectors, fragments, fragVectors, 0.9)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "build APIs", matches[0].JDText)
	assert.Equal(t, "built REST APIs", matches[0].ResumeText)
	assert.InDelta(t, 1.0, matches[0].Similarity, 1e-9)
}

func TestMatches_SortedDescendingBySimilarity(t *testing.T) {
	requirements := []string{"r1"}
	reqVectors := [][]float32{{1, 0}}
	fragments := []string{"far", "near", "exact"}
	fragVectors := [][]float32{{1, 1}, {4, 1}, {1, 0}}

	matches, err := Matches(requirements, reqVectors, fragments, fragVectors, 0.5)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, "exact", matches[0].ResumeText)
	assert.Equal(t, "near", matches[1].ResumeText)
	assert.Equal(t, "far", matches[2].ResumeText)
}

func TestMatches_EmptyInputsYieldEmptyResult(t *testing.T) {
	matches, err := Matches(nil, nil, []string{"a"}, [][]float32{{1}}, 0.5)
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = Matches([]string{"a"}, [][]float32{{1}}, nil, nil, 0.5)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestMatches_ShapeMismatchFails(t *testing.T) {
	// More texts than vectors
	_, err := Matches([]string{"a", "b"}, [][]float32{{1}}, []string{"c"}, [][]float32{{1}}, 0.5)
	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)

	// Inconsistent dimensions within a side
	_, err = Matches([]string{"a", "b"}, [][]float32{{1, 0}, {1}}, []string{"c"}, [][]float32{{1, 0}}, 0.5)
	require.ErrorAs(t, err, &shapeErr)

	// Requirement and fragment dimensions disagree
	_, err = Matches([]string{"a"}, [][]float32{{1, 0}}, []string{"c"}, [][]float32{{1, 0, 0}}, 0.5)
	require.ErrorAs(t, err, &shapeErr)
}

func TestMatches_ZeroVectorScoresZero(t *testing.T) {
	matches, err := Matches([]string{"a"}, [][]float32{{0, 0}}, []string{"b"}, [][]float32{{1, 0}}, 0.1)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestCosine_OrthogonalAndParallel(t *testing.T) {
	assert.InDelta(t, 0.0, cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, 1.0, cosine([]float32{2, 0}, []float32{5, 0}), 1e-9)
	assert.InDelta(t, -1.0, cosine([]float32{1, 0}, []float32{-3, 0}), 1e-9)
}

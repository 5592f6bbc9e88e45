package tree

import (
	"context"
	"testing"

	"github.com/Gakkilovemath/mlpack/dataset"
	"github.com/Gakkilovemath/mlpack/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyReturnsOnePredictionPerPoint(t *testing.T) {
	m := numericMatrix(t, [][]float64{{1}, {2}, {3}, {4}})
	labels := []int{0, 0, 1, 1}
	tr, err := Grow(context.Background(), m, labels, 2, nil, 1, 1e-7)
	require.NoError(t, err)

	predictions, probabilities, err := tr.Classify(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, labels, predictions)
	require.Len(t, probabilities, m.Count())
	for _, probs := range probabilities {
		assert.Len(t, probs, 2)
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	m := numericMatrix(t, [][]float64{{1, 9}, {2, 8}, {3, 7}, {4, 6}, {5, 5}, {6, 4}})
	labels := []int{0, 0, 1, 1, 2, 2}
	tr, err := Grow(context.Background(), m, labels, 3, nil, 1, 1e-7)
	require.NoError(t, err)

	firstPredictions, firstProbabilities, err := tr.Classify(context.Background(), m)
	require.NoError(t, err)
	secondPredictions, secondProbabilities, err := tr.Classify(context.Background(), m)
	require.NoError(t, err)

	assert.Equal(t, firstPredictions, secondPredictions)
	assert.Equal(t, firstProbabilities, secondProbabilities)
}

func TestClassifyRejectsIncompatibleSchemas(t *testing.T) {
	m := numericMatrix(t, [][]float64{{1}, {2}, {3}, {4}})
	tr, err := Grow(context.Background(), m, []int{0, 0, 1, 1}, 2, nil, 1, 1e-7)
	require.NoError(t, err)

	wider := numericMatrix(t, [][]float64{{1, 2}})
	_, _, err = tr.Classify(context.Background(), wider)
	assert.Error(t, err, "dimension count mismatch")

	a, err := feature.NewCategoricalAttribute("x0", []string{"a", "b"})
	require.NoError(t, err)
	schema, err := feature.NewSchema([]*feature.Attribute{a})
	require.NoError(t, err)
	categorical, err := dataset.New(schema, [][]float64{{0}})
	require.NoError(t, err)
	_, _, err = tr.Classify(context.Background(), categorical)
	assert.Error(t, err, "attribute kind mismatch")
}

func TestClassifyRejectsCategoryCountMismatch(t *testing.T) {
	m := categoricalMatrix(t, []string{"red", "green", "blue"}, []float64{0, 0, 1, 1, 2, 2})
	tr, err := Grow(context.Background(), m, []int{0, 0, 0, 0, 1, 1}, 2, nil, 1, 1e-7)
	require.NoError(t, err)

	query := categoricalMatrix(t, []string{"red", "green"}, []float64{0})
	_, _, err = tr.Classify(context.Background(), query)
	assert.Error(t, err)
}

func TestClassifyHonorsContextCancellation(t *testing.T) {
	m := numericMatrix(t, [][]float64{{1}, {2}, {3}, {4}})
	tr, err := Grow(context.Background(), m, []int{0, 0, 1, 1}, 2, nil, 1, 1e-7)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = tr.Classify(ctx, m)
	assert.Error(t, err)
}

func TestClassifyPointRoutesUnseenCodesToFallbackChild(t *testing.T) {
	tr := &Tree{
		NumClasses: 2,
		Root: &Node{
			Split: &CategoricalSplit{Dim: 0, Categories: 2, Fallback: 1},
			Children: []*Node{
				{Class: 0, Probabilities: []float64{1, 0}},
				{Class: 1, Probabilities: []float64{0, 1}},
			},
		},
	}

	class, _ := tr.ClassifyPoint([]float64{0})
	assert.Equal(t, 0, class)

	// codes outside the trained range and non-integral values descend
	// to the fallback child
	for _, v := range []float64{7, -1, 0.5} {
		class, probs := tr.ClassifyPoint([]float64{v})
		assert.Equal(t, 1, class)
		assert.Equal(t, []float64{0, 1}, probs)
	}
}

func TestClassifyFallbackChildHasGreatestTrainingWeight(t *testing.T) {
	// category blue carries the most weight, so unseen codes go there
	m := categoricalMatrix(t, []string{"red", "green", "blue"}, []float64{0, 1, 2, 2, 2})
	labels := []int{0, 0, 1, 1, 1}
	tr, err := Grow(context.Background(), m, labels, 2, nil, 1, 1e-7)
	require.NoError(t, err)

	split, ok := tr.Root.Split.(*CategoricalSplit)
	require.True(t, ok)
	assert.Equal(t, 2, split.Fallback)

	class, _ := tr.ClassifyPoint([]float64{9})
	assert.Equal(t, 1, class)
}

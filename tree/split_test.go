package tree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGiniImpurity(t *testing.T) {
	assert.Equal(t, 0.0, GiniImpurity([]float64{4, 0}, 4), "pure distribution")
	assert.Equal(t, 0.5, GiniImpurity([]float64{2, 2}, 4), "even two-class distribution")
	assert.Equal(t, 0.375, GiniImpurity([]float64{3, 1}, 4), "skewed distribution")
	assert.Equal(t, 0.0, GiniImpurity([]float64{0, 0}, 0), "zero total weight")
	assert.InDelta(t, 2.0/3.0, GiniImpurity([]float64{1, 1, 1}, 3), 1e-12, "even three-class distribution")
}

func TestEvaluateNumericSkipsThresholdsBetweenEqualValues(t *testing.T) {
	m := numericMatrix(t, [][]float64{{1}, {1}, {2}, {2}})
	sp := &splitter{
		m:           m,
		labels:      []int{0, 0, 1, 1},
		weights:     []float64{1, 1, 1, 1},
		numClasses:  2,
		minLeafSize: 1,
	}

	c := sp.evaluate([]int{0, 1, 2, 3}, 0, 0.5, 4)
	require.NotNil(t, c.rule)
	split, ok := c.rule.(*NumericSplit)
	require.True(t, ok)
	assert.Equal(t, 1.5, split.Threshold)
	assert.Equal(t, 0.5, c.gain)
}

func TestEvaluateConstantDimensionYieldsNoRule(t *testing.T) {
	m := numericMatrix(t, [][]float64{{7}, {7}, {7}, {7}})
	sp := &splitter{
		m:           m,
		labels:      []int{0, 1, 0, 1},
		weights:     []float64{1, 1, 1, 1},
		numClasses:  2,
		minLeafSize: 1,
	}

	c := sp.evaluate([]int{0, 1, 2, 3}, 0, 0.5, 4)
	assert.Nil(t, c.rule)

	cm := categoricalMatrix(t, []string{"red", "green"}, []float64{1, 1, 1, 1})
	sp.m = cm
	c = sp.evaluate([]int{0, 1, 2, 3}, 0, 0.5, 4)
	assert.Nil(t, c.rule)
}

func TestEvaluateNumericHonorsMinimumLeafSize(t *testing.T) {
	m := numericMatrix(t, [][]float64{{1}, {2}, {3}, {4}})
	sp := &splitter{
		m:           m,
		labels:      []int{0, 1, 1, 1},
		weights:     []float64{1, 1, 1, 1},
		numClasses:  2,
		minLeafSize: 2,
	}

	// the best threshold, 1.5, would leave a single point on the left
	c := sp.evaluate([]int{0, 1, 2, 3}, 0, 0.375, 4)
	require.NotNil(t, c.rule)
	split, ok := c.rule.(*NumericSplit)
	require.True(t, ok)
	assert.Equal(t, 2.5, split.Threshold)
}

func TestEvaluateWeightsShiftTheBestThreshold(t *testing.T) {
	m := numericMatrix(t, [][]float64{{1}, {2}, {3}, {4}})
	labels := []int{0, 1, 1, 0}

	// unweighted, thresholds 1.5 and 3.5 tie and the lowest wins; a
	// heavy last point makes isolating it the best split instead
	uniform, err := Grow(context.Background(), m, labels, 2, nil, 1, 1e-7)
	require.NoError(t, err)
	weighted, err := Grow(context.Background(), m, labels, 2, []float64{1, 1, 1, 9}, 1, 1e-7)
	require.NoError(t, err)

	uniformSplit, ok := uniform.Root.Split.(*NumericSplit)
	require.True(t, ok)
	weightedSplit, ok := weighted.Root.Split.(*NumericSplit)
	require.True(t, ok)
	assert.Equal(t, 1.5, uniformSplit.Threshold)
	assert.Equal(t, 3.5, weightedSplit.Threshold)
}

func TestTreeHeightAndCountNodes(t *testing.T) {
	leaf := func(class int) *Node {
		return &Node{Class: class, Probabilities: []float64{1, 0}}
	}
	tr := &Tree{
		NumClasses: 2,
		Root: &Node{
			Split: &NumericSplit{Dim: 0, Threshold: 2.5},
			Children: []*Node{
				{
					Split:         &NumericSplit{Dim: 0, Threshold: 1.5},
					Children:      []*Node{leaf(0), leaf(1)},
					Probabilities: []float64{0.5, 0.5},
				},
				leaf(1),
			},
			Probabilities: []float64{0.5, 0.5},
		},
	}

	assert.Equal(t, 3, tr.Height())
	assert.Equal(t, 5, tr.CountNodes())
}

func TestNumericSplitChildFor(t *testing.T) {
	s := &NumericSplit{Dim: 3, Threshold: 2.5}
	assert.Equal(t, 3, s.Dimension())
	assert.Equal(t, 2, s.NumChildren())
	assert.Equal(t, 0, s.ChildFor(2.4))
	assert.Equal(t, 1, s.ChildFor(2.5))
	assert.Equal(t, 1, s.ChildFor(100))
}

func TestCategoricalSplitChildFor(t *testing.T) {
	s := &CategoricalSplit{Dim: 1, Categories: 3, Fallback: 2}
	assert.Equal(t, 1, s.Dimension())
	assert.Equal(t, 3, s.NumChildren())
	assert.Equal(t, 0, s.ChildFor(0))
	assert.Equal(t, 1, s.ChildFor(1))
	assert.Equal(t, 2, s.ChildFor(2))
	assert.Equal(t, 2, s.ChildFor(3), "out-of-range code")
	assert.Equal(t, 2, s.ChildFor(-1), "negative code")
	assert.Equal(t, 2, s.ChildFor(1.5), "non-integral value")
}

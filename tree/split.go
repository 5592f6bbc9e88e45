package tree

import (
	"sort"

	"github.com/Gakkilovemath/mlpack/dataset"
	"github.com/Gakkilovemath/mlpack/feature"
)

/*
GiniImpurity takes a slice with the summed weight of each class and the
total weight they add up to and returns the Gini impurity of that
distribution: 1 - sum over classes of p(class)^2. Zero total weight
yields zero impurity. Gini is the single impurity measure used across
the whole tree, for both split evaluation and stopping.
*/
func GiniImpurity(classWeights []float64, totalWeight float64) float64 {
	if totalWeight <= 0 {
		return 0.0
	}
	g := 0.0
	for _, w := range classWeights {
		if w > 0 {
			p := w / totalWeight
			g += p * p
		}
	}
	return 1.0 - g
}

/*
candidateSplit is the outcome of evaluating one dimension at one node:
the best rule found for it and the weighted impurity reduction it
yields. A nil rule with zero gain means the dimension is constant over
the node's points or every candidate was filtered out by the minimum
leaf size.
*/
type candidateSplit struct {
	gain float64
	rule Split
}

/*
splitter evaluates candidate splits for the nodes of one growth run.
It reads the training matrix, labels and weights and never mutates
them; the points slices it receives are the caller's.
*/
type splitter struct {
	m           *dataset.Matrix
	labels      []int
	weights     []float64
	numClasses  int
	minLeafSize int
}

/*
evaluate returns the best split of the given dimension over the given
points. parentImpurity and totalWeight describe the node the points
belong to and are shared across the dimensions evaluated for it.

Tie-breaking is deterministic: among equal-gain thresholds of a numeric
dimension the lowest wins, because candidates are scanned in ascending
threshold order and only a strictly greater gain displaces the current
best. The caller scans dimensions in ascending order under the same
strict comparison, so equal-gain dimensions resolve to the lowest index.
*/
func (sp *splitter) evaluate(points []int, dimension int, parentImpurity, totalWeight float64) candidateSplit {
	if totalWeight <= 0 || len(points) < 2 {
		return candidateSplit{}
	}
	if sp.m.Schema().Attribute(dimension).Kind() == feature.Categorical {
		return sp.evaluateCategorical(points, dimension, parentImpurity, totalWeight)
	}
	return sp.evaluateNumeric(points, dimension, parentImpurity, totalWeight)
}

func (sp *splitter) evaluateNumeric(points []int, dimension int, parentImpurity, totalWeight float64) candidateSplit {
	ordered := make([]int, len(points))
	copy(ordered, points)
	sort.SliceStable(ordered, func(i, j int) bool {
		return sp.m.Value(ordered[i], dimension) < sp.m.Value(ordered[j], dimension)
	})

	leftWeights := make([]float64, sp.numClasses)
	rightWeights := make([]float64, sp.numClasses)
	leftTotal := 0.0
	for _, p := range ordered {
		rightWeights[sp.labels[p]] += sp.weights[p]
	}
	rightTotal := totalWeight

	best := candidateSplit{}
	n := len(ordered)
	for i := 1; i < n; i++ {
		p := ordered[i-1]
		w := sp.weights[p]
		leftWeights[sp.labels[p]] += w
		leftTotal += w
		rightWeights[sp.labels[p]] -= w
		rightTotal -= w

		prev := sp.m.Value(ordered[i-1], dimension)
		cur := sp.m.Value(ordered[i], dimension)
		if cur <= prev {
			// no threshold between equal values
			continue
		}
		// minimum leaf size is counted in points, not summed weight
		if i < sp.minLeafSize || n-i < sp.minLeafSize {
			continue
		}
		gain := parentImpurity -
			(leftTotal/totalWeight)*GiniImpurity(leftWeights, leftTotal) -
			(rightTotal/totalWeight)*GiniImpurity(rightWeights, rightTotal)
		if best.rule == nil || gain > best.gain {
			best = candidateSplit{
				gain: gain,
				rule: &NumericSplit{Dim: dimension, Threshold: (prev + cur) / 2.0},
			}
		}
	}
	return best
}

/*
evaluateCategorical scores the single multiway partition of the points
by category code. The minimum leaf size filters partitions that would
receive points but too few of them; a category unobserved at this node
leaves an empty partition, which is allowed and later becomes a leaf
child carrying the parent's distribution.
*/
func (sp *splitter) evaluateCategorical(points []int, dimension int, parentImpurity, totalWeight float64) candidateSplit {
	numCategories := sp.m.Schema().Attribute(dimension).NumCategories()
	counts := make([]int, numCategories)
	catWeights := make([]float64, numCategories)
	classWeights := make([][]float64, numCategories)
	for c := range classWeights {
		classWeights[c] = make([]float64, sp.numClasses)
	}
	for _, p := range points {
		c := int(sp.m.Value(p, dimension))
		counts[c]++
		catWeights[c] += sp.weights[p]
		classWeights[c][sp.labels[p]] += sp.weights[p]
	}

	nonEmpty := 0
	fallback := 0
	for c := 0; c < numCategories; c++ {
		if counts[c] == 0 {
			continue
		}
		if counts[c] < sp.minLeafSize {
			return candidateSplit{}
		}
		nonEmpty++
		if catWeights[c] > catWeights[fallback] {
			fallback = c
		}
	}
	if nonEmpty < 2 {
		// dimension is constant over these points
		return candidateSplit{}
	}

	gain := parentImpurity
	for c := 0; c < numCategories; c++ {
		if counts[c] == 0 {
			continue
		}
		gain -= (catWeights[c] / totalWeight) * GiniImpurity(classWeights[c], catWeights[c])
	}
	return candidateSplit{
		gain: gain,
		rule: &CategoricalSplit{Dim: dimension, Categories: numCategories, Fallback: fallback},
	}
}

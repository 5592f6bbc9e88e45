package tree

import (
	"context"
	"fmt"

	"github.com/Gakkilovemath/mlpack/dataset"
)

/*
Grow takes a context, a training matrix, one label per point in
[0, numClasses), the class count, an optional weight per point (nil
defaults every weight to 1.0), the minimum number of points any
split-resulting partition may hold and the minimum impurity reduction
in (0, 1) a split must yield to be accepted, and returns a tree grown
by recursively partitioning the points, or an error.

All validation happens before any growth: invalid hyperparameters,
shape mismatches, out-of-range labels, and negative weights are
reported as errors and no partial tree is returned. Growth itself
cannot fail except through context cancellation.

Growth is deterministic: identical inputs in identical order produce
identical trees. Ties between equal-gain splits resolve to the lowest
dimension index and, within a numeric dimension, the lowest threshold.
*/
func Grow(ctx context.Context, m *dataset.Matrix, labels []int, numClasses int, weights []float64, minimumLeafSize int, minimumGainSplit float64) (*Tree, error) {
	if m == nil || m.Count() == 0 {
		return nil, fmt.Errorf("growing tree: empty training matrix")
	}
	if minimumLeafSize <= 0 {
		return nil, fmt.Errorf("growing tree: minimum leaf size must be positive, got %d", minimumLeafSize)
	}
	if minimumGainSplit <= 0.0 || minimumGainSplit >= 1.0 {
		return nil, fmt.Errorf("growing tree: minimum gain split must be in (0, 1), got %v", minimumGainSplit)
	}
	if err := dataset.ValidateLabels(labels, m.Count(), numClasses); err != nil {
		return nil, fmt.Errorf("growing tree: %v", err)
	}
	if weights == nil {
		weights = dataset.UniformWeights(m.Count())
	} else if err := dataset.ValidateWeights(weights, m.Count()); err != nil {
		return nil, fmt.Errorf("growing tree: %v", err)
	}

	b := &builder{
		sp: &splitter{
			m:           m,
			labels:      labels,
			weights:     weights,
			numClasses:  numClasses,
			minLeafSize: minimumLeafSize,
		},
		minGainSplit: minimumGainSplit,
	}
	points := make([]int, m.Count())
	for i := range points {
		points[i] = i
	}
	root, err := b.grow(ctx, points)
	if err != nil {
		return nil, fmt.Errorf("growing tree: %v", err)
	}
	return &Tree{Root: root, Schema: m.Schema(), NumClasses: numClasses}, nil
}

type builder struct {
	sp           *splitter
	minGainSplit float64
}

/*
grow develops the node owning the given points: it produces a leaf when
a stopping rule applies, and otherwise selects the best split over all
dimensions, partitions the points with it and recurses to build the
children bottom-up. Nodes are never mutated once returned.
*/
func (b *builder) grow(ctx context.Context, points []int) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sp := b.sp
	n, classWeights, totalWeight := b.leaf(points)
	impurity := GiniImpurity(classWeights, totalWeight)

	// too few points to yield two valid partitions, or a pure node
	if len(points) < 2*sp.minLeafSize || impurity == 0.0 {
		return n, nil
	}

	best := candidateSplit{}
	for dim := 0; dim < sp.m.Dimensions(); dim++ {
		c := sp.evaluate(points, dim, impurity, totalWeight)
		if c.rule != nil && (best.rule == nil || c.gain > best.gain) {
			best = c
		}
	}
	// covers constant dimensions (no rule anywhere) and insufficient gain
	if best.rule == nil || best.gain < b.minGainSplit {
		return n, nil
	}

	groups := make([][]int, best.rule.NumChildren())
	dim := best.rule.Dimension()
	for _, p := range points {
		child := best.rule.ChildFor(sp.m.Value(p, dim))
		groups[child] = append(groups[child], p)
	}

	children := make([]*Node, len(groups))
	for i, group := range groups {
		if len(group) == 0 {
			// unobserved category: a leaf carrying the parent's
			// distribution keeps every code's traversal defined
			children[i] = &Node{
				Class:         n.Class,
				Probabilities: append([]float64(nil), n.Probabilities...),
			}
			continue
		}
		child, err := b.grow(ctx, group)
		if err != nil {
			return nil, err
		}
		children[i] = child
	}
	n.Split = best.rule
	n.Children = children
	return n, nil
}

/*
leaf builds a node holding the weighted class distribution of the given
points, normalized to sum to 1, and the arg-max class with ties broken
by lowest class id. A zero total weight cannot happen for points that
reach a split, but is guarded with a uniform distribution. It also
returns the raw class weights and their total for reuse by the caller.
*/
func (b *builder) leaf(points []int) (*Node, []float64, float64) {
	sp := b.sp
	classWeights := make([]float64, sp.numClasses)
	totalWeight := 0.0
	for _, p := range points {
		classWeights[sp.labels[p]] += sp.weights[p]
		totalWeight += sp.weights[p]
	}
	probabilities := make([]float64, sp.numClasses)
	if totalWeight > 0 {
		for c, w := range classWeights {
			probabilities[c] = w / totalWeight
		}
	} else {
		for c := range probabilities {
			probabilities[c] = 1.0 / float64(sp.numClasses)
		}
	}
	class := 0
	for c, p := range probabilities {
		if p > probabilities[class] {
			class = c
		}
	}
	return &Node{Class: class, Probabilities: probabilities}, classWeights, totalWeight
}

package tree

import (
	"context"
	"fmt"

	"github.com/Gakkilovemath/mlpack/dataset"
	"github.com/Gakkilovemath/mlpack/feature"
)

/*
ClassifyPoint takes a point with one value per schema dimension and
returns its predicted class and the class-probability distribution of
the leaf it lands on. It descends from the root applying each internal
node's split rule to the point's value for the rule's dimension until
it reaches a leaf.

ClassifyPoint is a pure function of the tree and the point: it mutates
nothing and may be called concurrently. The returned distribution is
the leaf's own storage and must not be mutated.
*/
func (t *Tree) ClassifyPoint(point []float64) (int, []float64) {
	n := t.Root
	for !n.Leaf() {
		n = n.Children[n.Split.ChildFor(point[n.Split.Dimension()])]
	}
	return n.Class, n.Probabilities
}

/*
Classify takes a context and a query matrix matching the tree's schema
and returns the predicted class of every point and a probability
distribution over the tree's classes for every point, or an error if
the matrix was built against an incompatible schema or the context is
cancelled. Points are independent; the order of the results matches
the order of the points.
*/
func (t *Tree) Classify(ctx context.Context, m *dataset.Matrix) ([]int, [][]float64, error) {
	if err := compatibleSchemas(t.Schema, m.Schema()); err != nil {
		return nil, nil, fmt.Errorf("classifying matrix: %v", err)
	}
	predictions := make([]int, m.Count())
	probabilities := make([][]float64, m.Count())
	for i := 0; i < m.Count(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		class, probs := t.ClassifyPoint(m.Point(i))
		predictions[i] = class
		probabilities[i] = append([]float64(nil), probs...)
	}
	return predictions, probabilities, nil
}

func compatibleSchemas(trained, query *feature.Schema) error {
	if query == nil {
		return fmt.Errorf("query matrix has no schema")
	}
	if trained.Dimensions() != query.Dimensions() {
		return fmt.Errorf("query schema has %d dimensions, tree was trained on %d", query.Dimensions(), trained.Dimensions())
	}
	for d := 0; d < trained.Dimensions(); d++ {
		ta, qa := trained.Attribute(d), query.Attribute(d)
		if ta.Kind() != qa.Kind() {
			return fmt.Errorf("dimension %d is %v in the query schema but %v in the trained schema", d, qa.Kind(), ta.Kind())
		}
		if ta.Kind() == feature.Categorical && ta.NumCategories() != qa.NumCategories() {
			return fmt.Errorf("dimension %d has %d categories in the query schema but %d in the trained schema", d, qa.NumCategories(), ta.NumCategories())
		}
	}
	return nil
}

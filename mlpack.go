/*
Package mlpack grows decision trees for classification over datasets
with mixed numeric and categorical dimensions, and classifies new
points with them.

Training takes a dataset.Matrix with a label per point and an optional
weight per point and produces a tree.Tree; the tree together with its
feature.Schema is the whole model, sufficient to classify and to
persist. Classification takes a matrix against the same schema and
returns a predicted class and a class-probability distribution per
point.
*/
package mlpack

import (
	"context"

	"github.com/Gakkilovemath/mlpack/dataset"
	"github.com/Gakkilovemath/mlpack/tree"
)

const (
	// DefaultMinimumLeafSize is the minimum number of points in any
	// split-resulting partition when the caller does not choose one.
	DefaultMinimumLeafSize = 20
	// DefaultMinimumGainSplit is the minimum impurity reduction a
	// split must yield when the caller does not choose one.
	DefaultMinimumGainSplit = 1e-7
)

/*
Train takes a context, a training matrix, one label per point in
[0, numClasses), the class count, an optional weight vector (nil
meaning weight 1.0 for every point) and the minimum-leaf-size and
minimum-gain-split hyperparameters, and returns the grown tree or a
validation error. Nothing is computed when validation fails; a
returned tree is always complete.
*/
func Train(ctx context.Context, m *dataset.Matrix, labels []int, numClasses int, weights []float64, minimumLeafSize int, minimumGainSplit float64) (*tree.Tree, error) {
	return tree.Grow(ctx, m, labels, numClasses, weights, minimumLeafSize, minimumGainSplit)
}

/*
Classify takes a context, a trained tree and a query matrix matching
the tree's schema and returns the predicted class of every point and a
probability distribution over the tree's classes for every point, or
an error.
*/
func Classify(ctx context.Context, t *tree.Tree, m *dataset.Matrix) ([]int, [][]float64, error) {
	return t.Classify(ctx, m)
}

/*
Accuracy takes a prediction vector and a ground-truth label vector of
the same length and returns the fraction of agreeing entries, and the
number of agreeing entries. Labels outside the trained class range
simply never agree.
*/
func Accuracy(predictions, labels []int) (float64, int) {
	if len(predictions) == 0 {
		return 0.0, 0
	}
	correct := 0
	for i, p := range predictions {
		if i < len(labels) && p == labels[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(predictions)), correct
}

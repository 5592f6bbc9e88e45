/*
Package dataset holds the dense representation training and query data
take on their way into the tree: a matrix of points interpreted through
a feature.Schema, an integer label per point and an optional weight per
point.
*/
package dataset

import (
	"fmt"
	"math"

	"github.com/Gakkilovemath/mlpack/feature"
)

/*
Matrix is a fixed-size collection of points, one row per point, with
one column per schema dimension. Numeric dimensions store real values
and categorical dimensions store non-negative integer category codes
in [0, NumCategories).
*/
type Matrix struct {
	schema *feature.Schema
	points [][]float64
}

/*
New takes a schema and a slice of points and returns a matrix with them,
or an error if any point's dimensionality does not match the schema, a
categorical dimension holds a value that is not an integer code in
range, or a numeric dimension holds a NaN.
*/
func New(schema *feature.Schema, points [][]float64) (*Matrix, error) {
	if schema == nil {
		return nil, fmt.Errorf("dataset needs a schema")
	}
	for i, p := range points {
		if len(p) != schema.Dimensions() {
			return nil, fmt.Errorf("point %d has %d dimensions, schema has %d", i, len(p), schema.Dimensions())
		}
		for d, v := range p {
			a := schema.Attribute(d)
			switch a.Kind() {
			case feature.Numeric:
				if math.IsNaN(v) {
					return nil, fmt.Errorf("point %d has NaN for numeric attribute %s", i, a.Name())
				}
			case feature.Categorical:
				if v != math.Trunc(v) || v < 0 || int(v) >= a.NumCategories() {
					return nil, fmt.Errorf("point %d has invalid code %v for categorical attribute %s with %d categories", i, v, a.Name(), a.NumCategories())
				}
			}
		}
	}
	return &Matrix{schema: schema, points: points}, nil
}

/*
Schema returns the schema through which the matrix is interpreted.
*/
func (m *Matrix) Schema() *feature.Schema {
	return m.schema
}

/*
Count returns the number of points in the matrix.
*/
func (m *Matrix) Count() int {
	return len(m.points)
}

/*
Dimensions returns the number of dimensions of every point.
*/
func (m *Matrix) Dimensions() int {
	return m.schema.Dimensions()
}

/*
Point returns the i-th point. The returned slice is the matrix's own
storage and must not be mutated.
*/
func (m *Matrix) Point(i int) []float64 {
	return m.points[i]
}

/*
Value returns the value of the given dimension of the i-th point.
*/
func (m *Matrix) Value(i, dimension int) float64 {
	return m.points[i][dimension]
}

/*
NumClasses takes a label vector and derives the class count as the
greatest label plus one. It returns an error if the vector is empty or
contains a negative label.
*/
func NumClasses(labels []int) (int, error) {
	if len(labels) == 0 {
		return 0, fmt.Errorf("cannot derive class count from an empty label vector")
	}
	max := 0
	for i, l := range labels {
		if l < 0 {
			return 0, fmt.Errorf("label %d for point %d is negative", l, i)
		}
		if l > max {
			max = l
		}
	}
	return max + 1, nil
}

/*
ValidateLabels takes a label vector, the number of points it must cover
and a class count, and returns an error if the lengths disagree or any
label falls outside [0, numClasses).
*/
func ValidateLabels(labels []int, count, numClasses int) error {
	if numClasses <= 0 {
		return fmt.Errorf("class count must be positive, got %d", numClasses)
	}
	if len(labels) != count {
		return fmt.Errorf("got %d labels for %d points", len(labels), count)
	}
	for i, l := range labels {
		if l < 0 || l >= numClasses {
			return fmt.Errorf("label %d for point %d is outside [0, %d)", l, i, numClasses)
		}
	}
	return nil
}

/*
UniformWeights returns a weight vector assigning weight 1.0 to each of
n points, the default when no weights are given.
*/
func UniformWeights(n int) []float64 {
	ws := make([]float64, n)
	for i := range ws {
		ws[i] = 1.0
	}
	return ws
}

/*
ValidateWeights takes a weight vector and the number of points it must
cover and returns an error if the lengths disagree or any weight is
negative or not a number.
*/
func ValidateWeights(weights []float64, count int) error {
	if len(weights) != count {
		return fmt.Errorf("got %d weights for %d points", len(weights), count)
	}
	for i, w := range weights {
		if math.IsNaN(w) || w < 0 {
			return fmt.Errorf("weight %v for point %d is not a non-negative number", w, i)
		}
	}
	return nil
}

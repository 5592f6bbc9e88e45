/*
Package tree grows classification trees over datasets with numeric and
categorical dimensions and classifies points with them.
*/
package tree

import (
	"fmt"
	"math"
	"strings"

	"github.com/Gakkilovemath/mlpack/feature"
)

/*
Split represents the rule an internal node applies to decide which of
its children a point descends to.

Its Dimension method returns the dimension the rule examines.

Its NumChildren method returns how many children a node applying the
rule owns.

Its ChildFor method takes the point's value for the rule's dimension
and returns the index of the child the point descends to.
*/
type Split interface {
	Dimension() int
	NumChildren() int
	ChildFor(value float64) int
}

/*
NumericSplit is a binary split on a numeric dimension: values below
Threshold descend to child 0, values greater or equal descend to
child 1.
*/
type NumericSplit struct {
	Dim       int
	Threshold float64
}

// Dimension returns the dimension the split examines.
func (s *NumericSplit) Dimension() int {
	return s.Dim
}

// NumChildren returns 2: one child on each side of the threshold.
func (s *NumericSplit) NumChildren() int {
	return 2
}

// ChildFor returns 0 for values below the threshold and 1 otherwise.
func (s *NumericSplit) ChildFor(value float64) int {
	if value < s.Threshold {
		return 0
	}
	return 1
}

func (s *NumericSplit) String() string {
	return fmt.Sprintf("dimension %d < %v", s.Dim, s.Threshold)
}

/*
CategoricalSplit is a multiway split on a categorical dimension with
one child per category code in [0, Categories). Fallback is the index
of the child that received the greatest training weight; category codes
outside the trained range descend there, so classifying a point with a
code unseen during training is defined and never fails.
*/
type CategoricalSplit struct {
	Dim        int
	Categories int
	Fallback   int
}

// Dimension returns the dimension the split examines.
func (s *CategoricalSplit) Dimension() int {
	return s.Dim
}

// NumChildren returns the number of categories, one child per code.
func (s *CategoricalSplit) NumChildren() int {
	return s.Categories
}

// ChildFor returns the child indexed by the category code, or the
// fallback child for codes outside [0, Categories).
func (s *CategoricalSplit) ChildFor(value float64) int {
	if value != math.Trunc(value) {
		return s.Fallback
	}
	c := int(value)
	if c < 0 || c >= s.Categories {
		return s.Fallback
	}
	return c
}

func (s *CategoricalSplit) String() string {
	return fmt.Sprintf("dimension %d in %d categories", s.Dim, s.Categories)
}

/*
Node is a node of the tree. A node with a nil Split is a leaf; an
internal node owns exactly Split.NumChildren() children, created during
growth and never shared or mutated afterwards.

Every node carries the class-probability distribution of the training
points that reached it and the arg-max class of that distribution (ties
broken by lowest class id); classification reads them at leaves only.
*/
type Node struct {
	Split         Split
	Children      []*Node
	Class         int
	Probabilities []float64
}

/*
Leaf returns whether the node is a leaf.
*/
func (n *Node) Leaf() bool {
	return n.Split == nil
}

/*
Tree is a trained classification tree: the root of the node hierarchy
together with the schema of the data it was grown from and the number
of classes it predicts. The pair of hierarchy and schema is
self-contained: nothing else is needed to classify points or to
persist and reload the model. A Tree is immutable once grown and safe
for concurrent classification.
*/
type Tree struct {
	Root       *Node
	Schema     *feature.Schema
	NumClasses int
}

/*
Height returns the number of nodes on the longest path from the root
to a leaf.
*/
func (t *Tree) Height() int {
	return height(t.Root)
}

func height(n *Node) int {
	if n == nil {
		return 0
	}
	max := 0
	for _, c := range n.Children {
		if h := height(c); h > max {
			max = h
		}
	}
	return max + 1
}

/*
CountNodes returns the total number of nodes in the tree.
*/
func (t *Tree) CountNodes() int {
	return countNodes(t.Root)
}

func countNodes(n *Node) int {
	if n == nil {
		return 0
	}
	count := 1
	for _, c := range n.Children {
		count += countNodes(c)
	}
	return count
}

func (t *Tree) String() string {
	if t == nil || t.Root == nil {
		return "[empty tree]\n"
	}
	return t.subtreeString(t.Root)
}

func (t *Tree) subtreeString(n *Node) string {
	var result string
	if n.Leaf() {
		result = fmt.Sprintf("[class %d %v]\n", n.Class, n.Probabilities)
	} else {
		result = fmt.Sprintf("[%v]\n", n.Split)
	}
	if len(n.Children) > 0 {
		result = fmt.Sprintf("%s|\n", result)
	}
	for i, c := range n.Children {
		for j, line := range strings.Split(t.subtreeString(c), "\n") {
			if len(line) == 0 {
				continue
			}
			if j == 0 {
				result = fmt.Sprintf("%s|__%s\n", result, line)
			} else {
				if i == len(n.Children)-1 {
					result = fmt.Sprintf("%s   %s\n", result, line)
				} else {
					result = fmt.Sprintf("%s|  %s\n", result, line)
				}
			}
		}
	}
	return result
}

/*
Package json encodes trained trees, schema included, as JSON model
artifacts and decodes them back. A decoded tree is structurally equal
to the encoded one: same hierarchy, split rules, distributions and
schema.
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gakkilovemath/mlpack/feature"
	"github.com/Gakkilovemath/mlpack/tree"
)

const (
	numericKind     = "numeric"
	categoricalKind = "categorical"
)

type jsonModel struct {
	Schema     []jsonAttribute `json:"schema"`
	NumClasses int             `json:"numClasses"`
	Root       *jsonNode       `json:"root"`
}

type jsonAttribute struct {
	Name       string   `json:"name"`
	Kind       string   `json:"kind"`
	Categories []string `json:"categories,omitempty"`
}

type jsonNode struct {
	Split         *jsonSplit  `json:"split,omitempty"`
	Children      []*jsonNode `json:"children,omitempty"`
	Class         int         `json:"class"`
	Probabilities []float64   `json:"probs"`
}

type jsonSplit struct {
	Kind       string  `json:"kind"`
	Dimension  int     `json:"dim"`
	Threshold  float64 `json:"threshold,omitempty"`
	Categories int     `json:"categories,omitempty"`
	Fallback   int     `json:"fallback,omitempty"`
}

/*
Encode takes a trained tree and returns a slice of bytes with the tree
and its schema encoded, or an error if the encoding could not be
performed for some reason.
*/
func Encode(t *tree.Tree) ([]byte, error) {
	if t == nil || t.Root == nil {
		return nil, fmt.Errorf("encoding tree: nil tree")
	}
	attributes := make([]jsonAttribute, 0, t.Schema.Dimensions())
	for _, a := range t.Schema.Attributes() {
		ja := jsonAttribute{Name: a.Name(), Kind: numericKind}
		if a.Kind() == feature.Categorical {
			ja.Kind = categoricalKind
			ja.Categories = a.Categories()
		}
		attributes = append(attributes, ja)
	}
	root, err := encodeNode(t.Root)
	if err != nil {
		return nil, fmt.Errorf("encoding tree: %v", err)
	}
	return json.Marshal(&jsonModel{
		Schema:     attributes,
		NumClasses: t.NumClasses,
		Root:       root,
	})
}

func encodeNode(n *tree.Node) (*jsonNode, error) {
	jn := &jsonNode{Class: n.Class, Probabilities: n.Probabilities}
	if n.Leaf() {
		return jn, nil
	}
	switch s := n.Split.(type) {
	case *tree.NumericSplit:
		jn.Split = &jsonSplit{Kind: numericKind, Dimension: s.Dim, Threshold: s.Threshold}
	case *tree.CategoricalSplit:
		jn.Split = &jsonSplit{Kind: categoricalKind, Dimension: s.Dim, Categories: s.Categories, Fallback: s.Fallback}
	default:
		return nil, fmt.Errorf("unknown split type %T", n.Split)
	}
	jn.Children = make([]*jsonNode, len(n.Children))
	for i, c := range n.Children {
		jc, err := encodeNode(c)
		if err != nil {
			return nil, err
		}
		jn.Children[i] = jc
	}
	return jn, nil
}

/*
Decode takes a slice of bytes and returns the tree and schema decoded
from it, or an error if the bytes do not hold a valid model.
*/
func Decode(data []byte) (*tree.Tree, error) {
	jm := &jsonModel{}
	err := json.Unmarshal(data, jm)
	if err != nil {
		return nil, fmt.Errorf("decoding tree: %v", err)
	}
	if jm.Root == nil {
		return nil, fmt.Errorf("decoding tree: model has no root node")
	}
	if jm.NumClasses <= 0 {
		return nil, fmt.Errorf("decoding tree: invalid class count %d", jm.NumClasses)
	}
	attributes := make([]*feature.Attribute, 0, len(jm.Schema))
	for _, ja := range jm.Schema {
		switch ja.Kind {
		case numericKind:
			attributes = append(attributes, feature.NewNumericAttribute(ja.Name))
		case categoricalKind:
			a, err := feature.NewCategoricalAttribute(ja.Name, ja.Categories)
			if err != nil {
				return nil, fmt.Errorf("decoding tree: %v", err)
			}
			attributes = append(attributes, a)
		default:
			return nil, fmt.Errorf("decoding tree: unknown attribute kind %q", ja.Kind)
		}
	}
	schema, err := feature.NewSchema(attributes)
	if err != nil {
		return nil, fmt.Errorf("decoding tree: %v", err)
	}
	root, err := decodeNode(jm.Root, jm.NumClasses)
	if err != nil {
		return nil, fmt.Errorf("decoding tree: %v", err)
	}
	return &tree.Tree{Root: root, Schema: schema, NumClasses: jm.NumClasses}, nil
}

func decodeNode(jn *jsonNode, numClasses int) (*tree.Node, error) {
	if len(jn.Probabilities) != numClasses {
		return nil, fmt.Errorf("node distribution covers %d classes, model has %d", len(jn.Probabilities), numClasses)
	}
	n := &tree.Node{Class: jn.Class, Probabilities: jn.Probabilities}
	if jn.Split == nil {
		if len(jn.Children) > 0 {
			return nil, fmt.Errorf("node has %d children but no split rule", len(jn.Children))
		}
		return n, nil
	}
	switch jn.Split.Kind {
	case numericKind:
		n.Split = &tree.NumericSplit{Dim: jn.Split.Dimension, Threshold: jn.Split.Threshold}
	case categoricalKind:
		n.Split = &tree.CategoricalSplit{Dim: jn.Split.Dimension, Categories: jn.Split.Categories, Fallback: jn.Split.Fallback}
	default:
		return nil, fmt.Errorf("unknown split kind %q", jn.Split.Kind)
	}
	if len(jn.Children) != n.Split.NumChildren() {
		return nil, fmt.Errorf("split %v expects %d children, node has %d", n.Split, n.Split.NumChildren(), len(jn.Children))
	}
	n.Children = make([]*tree.Node, len(jn.Children))
	for i, jc := range jn.Children {
		c, err := decodeNode(jc, numClasses)
		if err != nil {
			return nil, err
		}
		n.Children[i] = c
	}
	return n, nil
}

/*
WriteTree takes an io.Writer and a tree and writes the encoded model to
the writer, returning an error if the encoding or the write fails.
*/
func WriteTree(w io.Writer, t *tree.Tree) error {
	data, err := Encode(t)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing tree: %v", err)
	}
	return nil
}

/*
ReadTree takes an io.Reader with an encoded model and returns the
decoded tree or an error.
*/
func ReadTree(r io.Reader) (*tree.Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading tree: %v", err)
	}
	return Decode(data)
}

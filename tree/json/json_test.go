package json

import (
	"bytes"
	"context"
	"testing"

	"github.com/Gakkilovemath/mlpack/dataset"
	"github.com/Gakkilovemath/mlpack/feature"
	"github.com/Gakkilovemath/mlpack/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grownTree(t *testing.T) *tree.Tree {
	t.Helper()
	color, err := feature.NewCategoricalAttribute("color", []string{"red", "green", "blue"})
	require.NoError(t, err)
	schema, err := feature.NewSchema([]*feature.Attribute{
		feature.NewNumericAttribute("age"),
		color,
	})
	require.NoError(t, err)
	// grows a categorical split at the root with a numeric split under
	// the blue child, exercising both rule kinds in the encoding
	m, err := dataset.New(schema, [][]float64{
		{1, 0}, {4, 0}, {2, 1}, {5, 1}, {3, 2}, {6, 2},
	})
	require.NoError(t, err)
	tr, err := tree.Grow(context.Background(), m, []int{0, 0, 0, 0, 1, 0}, 2, nil, 1, 1e-7)
	require.NoError(t, err)
	return tr
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := grownTree(t)

	data, err := Encode(original)
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, original.NumClasses, decoded.NumClasses)
	require.Equal(t, original.Schema.Dimensions(), decoded.Schema.Dimensions())
	for d := 0; d < original.Schema.Dimensions(); d++ {
		oa, da := original.Schema.Attribute(d), decoded.Schema.Attribute(d)
		assert.Equal(t, oa.Name(), da.Name())
		assert.Equal(t, oa.Kind(), da.Kind())
		assert.Equal(t, oa.Categories(), da.Categories())
	}
	assert.Equal(t, original.Root, decoded.Root)
}

func TestDecodedTreeClassifiesLikeTheOriginal(t *testing.T) {
	original := grownTree(t)

	data, err := Encode(original)
	require.NoError(t, err)
	decoded, err := Decode(data)
	require.NoError(t, err)

	for _, point := range [][]float64{{1.5, 0}, {3.5, 1}, {5.5, 2}, {9, 7}} {
		originalClass, originalProbs := original.ClassifyPoint(point)
		decodedClass, decodedProbs := decoded.ClassifyPoint(point)
		assert.Equal(t, originalClass, decodedClass)
		assert.Equal(t, originalProbs, decodedProbs)
	}
}

func TestWriteAndReadTree(t *testing.T) {
	original := grownTree(t)

	var buf bytes.Buffer
	require.NoError(t, WriteTree(&buf, original))
	decoded, err := ReadTree(&buf)
	require.NoError(t, err)
	assert.Equal(t, original.Root, decoded.Root)
}

func TestEncodeRejectsNilTree(t *testing.T) {
	_, err := Encode(nil)
	assert.Error(t, err)
	_, err = Encode(&tree.Tree{})
	assert.Error(t, err)
}

func TestDecodeRejectsInvalidModels(t *testing.T) {
	for name, data := range map[string]string{
		"not json":            `{`,
		"no root":             `{"schema":[{"name":"x","kind":"numeric"}],"numClasses":2}`,
		"bad class count":     `{"schema":[{"name":"x","kind":"numeric"}],"numClasses":0,"root":{"class":0,"probs":[]}}`,
		"unknown kind":        `{"schema":[{"name":"x","kind":"ordinal"}],"numClasses":1,"root":{"class":0,"probs":[1]}}`,
		"short distribution":  `{"schema":[{"name":"x","kind":"numeric"}],"numClasses":2,"root":{"class":0,"probs":[1]}}`,
		"leaf with children":  `{"schema":[{"name":"x","kind":"numeric"}],"numClasses":1,"root":{"class":0,"probs":[1],"children":[{"class":0,"probs":[1]}]}}`,
		"missing child": `{"schema":[{"name":"x","kind":"numeric"}],"numClasses":1,` +
			`"root":{"class":0,"probs":[1],"split":{"kind":"numeric","dim":0,"threshold":1},"children":[{"class":0,"probs":[1]}]}}`,
		"unknown split kind": `{"schema":[{"name":"x","kind":"numeric"}],"numClasses":1,` +
			`"root":{"class":0,"probs":[1],"split":{"kind":"hyperplane","dim":0},"children":[]}}`,
		"empty schema": `{"schema":[],"numClasses":1,"root":{"class":0,"probs":[1]}}`,
	} {
		_, err := Decode([]byte(data))
		assert.Error(t, err, name)
	}
}

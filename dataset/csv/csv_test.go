package csv

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Gakkilovemath/mlpack/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema(t *testing.T) *feature.Schema {
	t.Helper()
	color, err := feature.NewCategoricalAttribute("color", []string{"red", "green", "blue"})
	require.NoError(t, err)
	s, err := feature.NewSchema([]*feature.Attribute{
		feature.NewNumericAttribute("age"),
		color,
	})
	require.NoError(t, err)
	return s
}

func TestReadDatasetWithDefaultLabelColumn(t *testing.T) {
	content := `age,color,class
1.5,red,0
2.5,green,1
3.5,blue,0
`
	reading, err := ReadDataset(strings.NewReader(content), testSchema(t), "", "")
	require.NoError(t, err)

	require.Equal(t, 3, reading.Matrix.Count())
	assert.Equal(t, []float64{1.5, 0}, reading.Matrix.Point(0))
	assert.Equal(t, []float64{2.5, 1}, reading.Matrix.Point(1))
	assert.Equal(t, []float64{3.5, 2}, reading.Matrix.Point(2))
	assert.Equal(t, []int{0, 1, 0}, reading.Labels)
	assert.Nil(t, reading.Weights)
}

func TestReadDatasetWithNamedLabelAndWeightColumns(t *testing.T) {
	// columns may come in any order
	content := `target,weight,color,age
1,0.5,blue,1
0,2,red,2
`
	reading, err := ReadDataset(strings.NewReader(content), testSchema(t), "target", "weight")
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2}, reading.Matrix.Point(0))
	assert.Equal(t, []float64{2, 0}, reading.Matrix.Point(1))
	assert.Equal(t, []int{1, 0}, reading.Labels)
	assert.Equal(t, []float64{0.5, 2}, reading.Weights)
}

func TestReadDatasetWithoutLabels(t *testing.T) {
	content := `age,color
1,red
2,green
`
	reading, err := ReadDataset(strings.NewReader(content), testSchema(t), "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, reading.Matrix.Count())
	assert.Nil(t, reading.Labels)
}

func TestReadDatasetRejectsMalformedContent(t *testing.T) {
	s := testSchema(t)
	for name, content := range map[string]string{
		"unknown attribute":   "age,size,color,class\n1,2,red,0\n",
		"missing attribute":   "age,class\n1,0\n",
		"duplicate attribute": "age,age,color,class\n1,1,red,0\n",
		"unknown category":    "age,color,class\n1,yellow,0\n",
		"non-numeric value":   "age,color,class\nold,red,0\n",
		"negative label":      "age,color,class\n1,red,-1\n",
		"non-integer label":   "age,color,class\n1,red,zero\n",
		"short row":           "age,color,class\n1,red\n",
	} {
		_, err := ReadDataset(strings.NewReader(content), s, "", "")
		assert.Error(t, err, name)
	}

	_, err := ReadDataset(strings.NewReader("age,color,class\n1,red,0\n"), s, "target", "")
	assert.Error(t, err, "missing label column")
	_, err = ReadDataset(strings.NewReader("age,color,class\n1,red,0\n"), s, "", "weight")
	assert.Error(t, err, "missing weight column")
	_, err = ReadDataset(strings.NewReader("age,color,class\nbad,weight,row,0\n"), s, "", "")
	assert.Error(t, err, "row with more columns than the header")
}

func TestReadDatasetFromFilePathRejectsMissingFile(t *testing.T) {
	_, err := ReadDatasetFromFilePath("testdata/nonexistent.csv", testSchema(t), "", "")
	assert.Error(t, err)
}

func TestWritePredictions(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePredictions(&buf, []int{1, 0, 2}))
	assert.Equal(t, "prediction\n1\n0\n2\n", buf.String())
}

func TestWriteProbabilities(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProbabilities(&buf, [][]float64{{0.25, 0.75}, {1, 0}}))
	assert.Equal(t, "0.25,0.75\n1,0\n", buf.String())
}

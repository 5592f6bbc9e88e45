/*
Package csv reads training and query matrices from CSV streams whose
columns are described by a feature.Schema, and writes prediction
results back out as CSV.
*/
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Gakkilovemath/mlpack/dataset"
	"github.com/Gakkilovemath/mlpack/feature"
)

/*
Reading is the outcome of parsing a CSV stream against a schema: the
point matrix plus the label and weight vectors if their columns were
present. Labels is nil when the stream carried no label column, and
Weights is nil when no weight attribute was requested.
*/
type Reading struct {
	Matrix  *dataset.Matrix
	Labels  []int
	Weights []float64
}

/*
ReadDataset takes an io.Reader for a CSV stream, the schema of the
dataset, the name of the label column and the name of the weight
column, and returns the parsed matrix, labels and weights or an error.

The header or first row of the CSV content is expected to name every
schema attribute; numeric columns hold real values and categorical
columns hold category values, which are translated to their integer
codes. If labelName is empty, the last header column that is not a
schema attribute is used as label column, following the convention
that the labels are the last dimension of the training file; label
values must be non-negative integers. weightName may be empty when the
stream carries no weights.
*/
func ReadDataset(reader io.Reader, schema *feature.Schema, labelName, weightName string) (*Reading, error) {
	r := csv.NewReader(reader)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %v", err)
	}
	cols, err := mapColumns(header, schema, labelName, weightName)
	if err != nil {
		return nil, err
	}

	var points [][]float64
	var labels []int
	var weights []float64
	for l := 2; ; l++ {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading body: %v", err)
		}
		point, label, weight, err := parseRow(row, schema, cols)
		if err != nil {
			return nil, fmt.Errorf("parsing line %d: %v", l, err)
		}
		points = append(points, point)
		if cols.label >= 0 {
			labels = append(labels, label)
		}
		if cols.weight >= 0 {
			weights = append(weights, weight)
		}
	}
	m, err := dataset.New(schema, points)
	if err != nil {
		return nil, err
	}
	return &Reading{Matrix: m, Labels: labels, Weights: weights}, nil
}

/*
ReadDatasetFromFilePath takes a filepath string and uses ReadDataset to
parse the file it points to, or os.Stdin when the filepath is empty. It
returns an error if the file cannot be opened for reading.
*/
func ReadDatasetFromFilePath(filepath string, schema *feature.Schema, labelName, weightName string) (*Reading, error) {
	var f *os.File
	var err error
	if filepath == "" {
		f = os.Stdin
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("opening dataset at %s: %v", filepath, err)
		}
		defer f.Close()
	}
	reading, err := ReadDataset(f, schema, labelName, weightName)
	if err != nil {
		err = fmt.Errorf("parsing CSV file %s: %v", filepath, err)
	}
	return reading, err
}

type columnMapping struct {
	// dimension[i] is the schema dimension header column i feeds,
	// or -1 when column i is the label or weight column
	dimension []int
	label     int
	weight    int
}

func mapColumns(header []string, schema *feature.Schema, labelName, weightName string) (*columnMapping, error) {
	cols := &columnMapping{
		dimension: make([]int, len(header)),
		label:     -1,
		weight:    -1,
	}
	covered := make([]bool, schema.Dimensions())
	for i, name := range header {
		cols.dimension[i] = -1
		if name == weightName && weightName != "" {
			if cols.weight >= 0 {
				return nil, fmt.Errorf("parsing header: weight column %s appears twice", name)
			}
			cols.weight = i
			continue
		}
		if name == labelName && labelName != "" {
			if cols.label >= 0 {
				return nil, fmt.Errorf("parsing header: label column %s appears twice", name)
			}
			cols.label = i
			continue
		}
		d, _ := schema.AttributeNamed(name)
		if d < 0 {
			if labelName == "" && i == len(header)-1 {
				// labels default to the last column
				cols.label = i
				continue
			}
			return nil, fmt.Errorf("parsing header: reference to unknown attribute %s", name)
		}
		if covered[d] {
			return nil, fmt.Errorf("parsing header: attribute %s appears twice", name)
		}
		covered[d] = true
		cols.dimension[i] = d
	}
	for d, ok := range covered {
		if !ok {
			return nil, fmt.Errorf("parsing header: no column for attribute %s", schema.Attribute(d).Name())
		}
	}
	if labelName != "" && cols.label < 0 {
		return nil, fmt.Errorf("parsing header: no column for label %s", labelName)
	}
	if weightName != "" && cols.weight < 0 {
		return nil, fmt.Errorf("parsing header: no column for weight %s", weightName)
	}
	return cols, nil
}

func parseRow(row []string, schema *feature.Schema, cols *columnMapping) ([]float64, int, float64, error) {
	if len(row) != len(cols.dimension) {
		return nil, 0, 0, fmt.Errorf("row has %d columns, header has %d", len(row), len(cols.dimension))
	}
	point := make([]float64, schema.Dimensions())
	label := 0
	weight := 0.0
	for i, v := range row {
		if i == cols.label {
			l, err := strconv.Atoi(v)
			if err != nil || l < 0 {
				return nil, 0, 0, fmt.Errorf("label %q is not a non-negative integer", v)
			}
			label = l
			continue
		}
		if i == cols.weight {
			w, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, 0, 0, fmt.Errorf("converting weight %q to float64: %v", v, err)
			}
			weight = w
			continue
		}
		d := cols.dimension[i]
		a := schema.Attribute(d)
		if a.Kind() == feature.Categorical {
			code, err := a.CodeFor(v)
			if err != nil {
				return nil, 0, 0, err
			}
			point[d] = float64(code)
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("converting %q to float64 for attribute %s: %v", v, a.Name(), err)
		}
		point[d] = f
	}
	return point, label, weight, nil
}

/*
WritePredictions takes an io.Writer and a prediction per point and
dumps them as a single-column CSV with a "prediction" header.
*/
func WritePredictions(writer io.Writer, predictions []int) error {
	w := csv.NewWriter(writer)
	if err := w.Write([]string{"prediction"}); err != nil {
		return fmt.Errorf("writing predictions header: %v", err)
	}
	for i, p := range predictions {
		if err := w.Write([]string{strconv.Itoa(p)}); err != nil {
			return fmt.Errorf("writing prediction for point %d: %v", i, err)
		}
	}
	w.Flush()
	return w.Error()
}

/*
WriteProbabilities takes an io.Writer and a class-probability
distribution per point and dumps them as CSV, one column per class.
*/
func WriteProbabilities(writer io.Writer, probabilities [][]float64) error {
	w := csv.NewWriter(writer)
	for i, probs := range probabilities {
		record := make([]string, len(probs))
		for c, p := range probs {
			record[c] = strconv.FormatFloat(p, 'g', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing probabilities for point %d: %v", i, err)
		}
	}
	w.Flush()
	return w.Error()
}

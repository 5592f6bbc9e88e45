/*
Package mongodataset reads training and query matrices from a MongoDB
collection holding one document per point.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gakkilovemath/mlpack/dataset"
	"github.com/Gakkilovemath/mlpack/feature"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const samplesCollectionName = "samples"

/*
Read takes a context, a MongoDB session, the schema of the dataset and
the names of the label and weight document fields (either may be empty)
and returns the point matrix with the label and weight vectors read
from the samples collection of the session's default database, or an
error.

Every document must define a field per schema attribute; numeric
attribute fields must hold numbers, categorical attribute fields may
hold either the category value or its integer code. Documents are read
sorted by _id so the same collection always yields the same matrix.
*/
func Read(ctx context.Context, session *mgo.Session, schema *feature.Schema, labelField, weightField string) (*dataset.Matrix, []int, []float64, error) {
	for _, a := range schema.Attributes() {
		if err := validFieldName(a.Name()); err != nil {
			return nil, nil, nil, err
		}
	}
	var points [][]float64
	var labels []int
	var weights []float64
	var doc bson.M
	iter := session.DB("").C(samplesCollectionName).Find(nil).Sort("_id").Iter()
	defer iter.Close()
	for iter.Next(&doc) {
		if err := ctx.Err(); err != nil {
			return nil, nil, nil, err
		}
		point := make([]float64, schema.Dimensions())
		for d := 0; d < schema.Dimensions(); d++ {
			a := schema.Attribute(d)
			v, err := attributeValue(a, doc[a.Name()])
			if err != nil {
				return nil, nil, nil, fmt.Errorf("reading document %d: %v", len(points), err)
			}
			point[d] = v
		}
		points = append(points, point)
		if labelField != "" {
			l, err := intValue(doc[labelField])
			if err != nil {
				return nil, nil, nil, fmt.Errorf("reading label of document %d: %v", len(points)-1, err)
			}
			labels = append(labels, l)
		}
		if weightField != "" {
			w, err := floatValue(doc[weightField])
			if err != nil {
				return nil, nil, nil, fmt.Errorf("reading weight of document %d: %v", len(points)-1, err)
			}
			weights = append(weights, w)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("reading samples collection: %v", err)
	}
	m, err := dataset.New(schema, points)
	if err != nil {
		return nil, nil, nil, err
	}
	return m, labels, weights, nil
}

func validFieldName(name string) error {
	if name == "_id" {
		return fmt.Errorf("invalid attribute name %q: reserved collection field", name)
	}
	if strings.ContainsAny(name, ".$") {
		return fmt.Errorf("invalid attribute name %q: contains reserved characters %q or %q", name, ".", "$")
	}
	return nil
}

func attributeValue(a *feature.Attribute, v interface{}) (float64, error) {
	if v == nil {
		return 0, fmt.Errorf("no value for attribute %s", a.Name())
	}
	if a.Kind() == feature.Categorical {
		if s, ok := v.(string); ok {
			code, err := a.CodeFor(s)
			if err != nil {
				return 0, err
			}
			return float64(code), nil
		}
		code, err := intValue(v)
		if err != nil {
			return 0, fmt.Errorf("value %v for categorical attribute %s: %v", v, a.Name(), err)
		}
		return float64(code), nil
	}
	f, err := floatValue(v)
	if err != nil {
		return 0, fmt.Errorf("value for numeric attribute %s: %v", a.Name(), err)
	}
	return f, nil
}

func floatValue(v interface{}) (float64, error) {
	switch f := v.(type) {
	case float64:
		return f, nil
	case int:
		return float64(f), nil
	case int64:
		return float64(f), nil
	}
	return 0, fmt.Errorf("cannot interpret %T value %v as a number", v, v)
}

func intValue(v interface{}) (int, error) {
	switch i := v.(type) {
	case int:
		return i, nil
	case int64:
		return int(i), nil
	case float64:
		if i != float64(int(i)) {
			return 0, fmt.Errorf("value %v is not an integer", i)
		}
		return int(i), nil
	}
	return 0, fmt.Errorf("cannot interpret %T value %v as an integer", v, v)
}

/*
Package sqldataset reads training and query matrices from a table in a
SQL database through an Adapter that absorbs the differences between
database engines.
*/
package sqldataset

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/Gakkilovemath/mlpack/dataset"
	"github.com/Gakkilovemath/mlpack/feature"
)

/*
Adapter is an interface for access to a specific SQL database engine.

Its DB method returns the database handle to query.

Its ColumnName method takes an attribute name and returns the column
name holding its values, or an error if the name cannot be a column on
the engine.
*/
type Adapter interface {
	DB() *sql.DB
	ColumnName(attributeName string) (string, error)
}

/*
Read takes a context, an adapter, the schema of the dataset, the name
of the table holding one row per point, and the names of the label and
weight columns (either may be empty) and returns the point matrix with
the label and weight vectors read from the table, or an error.

Numeric attribute columns must hold numbers; categorical attribute
columns may hold either the category value or its integer code. Rows
are read in the order the database returns them.
*/
func Read(ctx context.Context, a Adapter, schema *feature.Schema, table, labelColumn, weightColumn string) (*dataset.Matrix, []int, []float64, error) {
	if strings.ContainsAny(table, `" `) {
		return nil, nil, nil, fmt.Errorf("invalid table name %q", table)
	}
	columns := make([]string, 0, schema.Dimensions()+2)
	for _, attr := range schema.Attributes() {
		c, err := a.ColumnName(attr.Name())
		if err != nil {
			return nil, nil, nil, fmt.Errorf("reading dataset from %s: %v", table, err)
		}
		columns = append(columns, c)
	}
	if labelColumn != "" {
		c, err := a.ColumnName(labelColumn)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("reading dataset from %s: %v", table, err)
		}
		columns = append(columns, c)
	}
	if weightColumn != "" {
		c, err := a.ColumnName(weightColumn)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("reading dataset from %s: %v", table, err)
		}
		columns = append(columns, c)
	}

	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = fmt.Sprintf("%q", c)
	}
	query := fmt.Sprintf(`SELECT %s FROM %q`, strings.Join(quoted, ", "), table)
	rows, err := a.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("querying dataset from %s: %v", table, err)
	}
	defer rows.Close()

	var points [][]float64
	var labels []int
	var weights []float64
	values := make([]interface{}, len(columns))
	valuePtrs := make([]interface{}, len(columns))
	for i := range values {
		valuePtrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, nil, nil, fmt.Errorf("scanning dataset row %d: %v", len(points), err)
		}
		point := make([]float64, schema.Dimensions())
		for d := 0; d < schema.Dimensions(); d++ {
			point[d], err = attributeValue(schema.Attribute(d), values[d])
			if err != nil {
				return nil, nil, nil, fmt.Errorf("reading dataset row %d: %v", len(points), err)
			}
		}
		points = append(points, point)
		col := schema.Dimensions()
		if labelColumn != "" {
			l, err := intValue(values[col])
			if err != nil {
				return nil, nil, nil, fmt.Errorf("reading label on row %d: %v", len(points)-1, err)
			}
			labels = append(labels, l)
			col++
		}
		if weightColumn != "" {
			w, err := floatValue(values[col])
			if err != nil {
				return nil, nil, nil, fmt.Errorf("reading weight on row %d: %v", len(points)-1, err)
			}
			weights = append(weights, w)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, nil, fmt.Errorf("reading dataset from %s: %v", table, err)
	}
	m, err := dataset.New(schema, points)
	if err != nil {
		return nil, nil, nil, err
	}
	return m, labels, weights, nil
}

func attributeValue(a *feature.Attribute, v interface{}) (float64, error) {
	if a.Kind() == feature.Categorical {
		if s, ok := stringValue(v); ok {
			code, err := a.CodeFor(s)
			if err == nil {
				return float64(code), nil
			}
			// fall through: the column may store codes as text
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

func stringValue(v interface{}) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	}
	return "", false
}

func floatValue(v interface{}) (float64, error) {
	switch f := v.(type) {
	case float64:
		return f, nil
	case int64:
		return float64(f), nil
	case []byte:
		return strconv.ParseFloat(string(f), 64)
	case string:
		return strconv.ParseFloat(f, 64)
	}
	return 0, fmt.Errorf("cannot interpret %T value %v as a number", v, v)
}

func intValue(v interface{}) (int, error) {
	switch i := v.(type) {
	case int64:
		return int(i), nil
	case float64:
		if i != float64(int(i)) {
			return 0, fmt.Errorf("value %v is not an integer", i)
		}
		return int(i), nil
	case []byte:
		return strconv.Atoi(string(i))
	case string:
		return strconv.Atoi(i)
	}
	return 0, fmt.Errorf("cannot interpret %T value %v as an integer", v, v)
}

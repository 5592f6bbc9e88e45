package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gakkilovemath/mlpack/dataset"
	"github.com/Gakkilovemath/mlpack/dataset/csv"
	"github.com/Gakkilovemath/mlpack/dataset/mongodataset"
	"github.com/Gakkilovemath/mlpack/dataset/sqldataset"
	"github.com/Gakkilovemath/mlpack/dataset/sqldataset/pgadapter"
	"github.com/Gakkilovemath/mlpack/dataset/sqldataset/sqlite3adapter"
	"github.com/Gakkilovemath/mlpack/feature"
	mgo "gopkg.in/mgo.v2"
)

// datasetInput loads a point matrix with optional labels and weights
// from the location the user gave: a CSV path (or STDIN when empty), a
// SQLite3 .db file, or a PostgreSQL or MongoDB connection URL.
type datasetInput struct {
	*rootCmdConfig
	dataInput     string
	labelFeature  string
	weightFeature string
	table         string
	maxDBConns    int
}

func (di *datasetInput) load(ctx context.Context, schema *feature.Schema) (*dataset.Matrix, []int, []float64, error) {
	switch {
	case strings.HasPrefix(di.dataInput, "postgresql://"):
		return di.loadPostgreSQL(ctx, schema)
	case strings.HasPrefix(di.dataInput, "mongodb://"):
		return di.loadMongoDB(ctx, schema)
	case strings.HasSuffix(di.dataInput, ".db"):
		return di.loadSqlite3(ctx, schema)
	}
	return di.loadCSV(schema)
}

func (di *datasetInput) loadCSV(schema *feature.Schema) (*dataset.Matrix, []int, []float64, error) {
	if di.dataInput == "" {
		di.Logf("Reading dataset from STDIN...")
	} else {
		di.Logf("Opening %s to read dataset...", di.dataInput)
	}
	reading, err := csv.ReadDatasetFromFilePath(di.dataInput, schema, di.labelFeature, di.weightFeature)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reading dataset: %v", err)
	}
	return reading.Matrix, reading.Labels, reading.Weights, nil
}

func (di *datasetInput) loadSqlite3(ctx context.Context, schema *feature.Schema) (*dataset.Matrix, []int, []float64, error) {
	di.Logf("Creating SQLite3 adapter for file %s to read dataset...", di.dataInput)
	adapter, err := sqlite3adapter.New(di.dataInput, di.maxDBConns)
	if err != nil {
		return nil, nil, nil, err
	}
	di.Logf("Reading dataset over SQLite3 adapter for file %s...", di.dataInput)
	return sqldataset.Read(ctx, adapter, schema, di.table, di.labelFeature, di.weightFeature)
}

func (di *datasetInput) loadPostgreSQL(ctx context.Context, schema *feature.Schema) (*dataset.Matrix, []int, []float64, error) {
	di.Logf("Creating PostgreSQL adapter for url %s to read dataset...", di.dataInput)
	adapter, err := pgadapter.New(di.dataInput)
	if err != nil {
		return nil, nil, nil, err
	}
	di.Logf("Reading dataset over PostgreSQL adapter for url %s...", di.dataInput)
	return sqldataset.Read(ctx, adapter, schema, di.table, di.labelFeature, di.weightFeature)
}

func (di *datasetInput) loadMongoDB(ctx context.Context, schema *feature.Schema) (*dataset.Matrix, []int, []float64, error) {
	di.Logf("Connecting to MongoDB at %s to read dataset...", di.dataInput)
	session, err := mgo.Dial(di.dataInput)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connecting to MongoDB at %s: %v", di.dataInput, err)
	}
	defer session.Close()
	return mongodataset.Read(ctx, session, schema, di.labelFeature, di.weightFeature)
}

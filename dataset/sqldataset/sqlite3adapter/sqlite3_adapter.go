/*
Package sqlite3adapter provides an implementation of the Adapter
interface in the sqldataset package that works over a SQLite3 database
file.
*/
package sqlite3adapter

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/Gakkilovemath/mlpack/dataset/sqldataset"

	// Import of SQLite3 driver
	_ "github.com/mattn/go-sqlite3"
)

type adapter struct {
	db *sql.DB
}

/*
New takes a path to a SQLite3 database file and a limit for the number
of open connections (0 meaning no limit) and returns an Adapter that
works on the database or an error if it fails to open it.
*/
func New(filepath string, maxConns int) (sqldataset.Adapter, error) {
	db, err := sql.Open("sqlite3", filepath)
	if err != nil {
		return nil, err
	}
	if maxConns > 0 {
		db.SetMaxOpenConns(maxConns)
	}
	return &adapter{db}, nil
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

func (a *adapter) ColumnName(attributeName string) (string, error) {
	if attributeName == "id" {
		return "", fmt.Errorf(`'%s' is reserved and cannot be used as attribute name`, attributeName)
	}
	if strings.ContainsAny(attributeName, `"`) {
		return "", fmt.Errorf(`attribute name '%s' contains invalid character '"'`, attributeName)
	}
	return attributeName, nil
}

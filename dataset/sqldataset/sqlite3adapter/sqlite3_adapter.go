/*
Package sqlite3adapter provides an implementation of the Adapter
interface in the sqldataset package that works over an SQLite3
database.
*/
package sqlite3adapter

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pbanos/ancestree/dataset/sqldataset"
	"github.com/pkg/errors"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

/*
MaxRowsPerInsert is the maximum number of rows inserted with a
single statement, keeping every statement under the default SQLite
limit of 999 arguments.
*/
const MaxRowsPerInsert = 300

var tableCreateStmts = []string{
	`PRAGMA foreign_keys=ON`,
	`CREATE TABLE IF NOT EXISTS labels (
		position INTEGER PRIMARY KEY,
		name TEXT UNIQUE NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS variants (
		position INTEGER PRIMARY KEY,
		id TEXT UNIQUE NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS individuals (
		id TEXT PRIMARY KEY,
		position INTEGER NOT NULL,
		label TEXT NOT NULL REFERENCES labels(name))`,
	`CREATE TABLE IF NOT EXISTS calls (
		individual_id TEXT NOT NULL REFERENCES individuals(id),
		variant_id TEXT NOT NULL REFERENCES variants(id),
		PRIMARY KEY (individual_id, variant_id))`,
	`CREATE INDEX IF NOT EXISTS calls_variant_idx ON calls(variant_id, individual_id)`,
}

type adapter struct {
	db *sql.DB
}

/*
New takes a path to an SQLite3 database file and returns an Adapter
that works on the file's database or an error if it fails to open as
an sqlite3 database. The path ":memory:" opens an in-memory database.
*/
func New(path string) (sqldataset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// in-memory databases are not shared between connections
	db.SetMaxOpenConns(1)
	return &adapter{db}, nil
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

func (a *adapter) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.Question
}

func (a *adapter) MaxRowsPerInsert() int {
	return MaxRowsPerInsert
}

func (a *adapter) CreateTables(ctx context.Context) error {
	for _, stmt := range tableCreateStmts {
		if _, err := a.db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrapf(err, "running %q", stmt)
		}
	}
	return nil
}

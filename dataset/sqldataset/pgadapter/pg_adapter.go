/*
Package pgadapter provides an implementation of the
Adapter interface in the sqldataset package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/pbanos/ancestree/dataset/sqldataset"
	"github.com/pkg/errors"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

// MaxRowsPerInsert is the maximum number of rows
// inserted with a single statement.
const MaxRowsPerInsert = 1000

var tableCreateStmts = []string{
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
New takes a PostgreSQL database connection URL and returns
an Adapter that works on the database or an error if it fails to connect to it.
*/
func New(url string) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return &adapter{db}, nil
}

func (a *adapter) DB() *sql.DB {
	return a.db
}

func (a *adapter) PlaceholderFormat() sq.PlaceholderFormat {
	return sq.Dollar
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

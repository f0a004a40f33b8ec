package sqldataset

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
)

/*
Adapter is an interface providing the database specifics
needed to store a population on an SQL database.
*/
type Adapter interface {
	// DB returns the database handle the adapter works on.
	DB() *sql.DB
	// PlaceholderFormat returns the format for query arguments
	// the database driver expects.
	PlaceholderFormat() sq.PlaceholderFormat
	// CreateTables ensures the tables of the population exist.
	CreateTables(ctx context.Context) error
	// MaxRowsPerInsert is the maximum number of rows to insert
	// with a single statement.
	MaxRowsPerInsert() int
}

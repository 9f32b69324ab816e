package sqlwrap

import (
	"context"
)

// Conn is a live session to the database. It is implemented by the adapters
// in sqladapter and pgxadapter.
type Conn interface {
	// Prepare creates a prepared statement for query.
	Prepare(ctx context.Context, query string) (Stmt, error)
	Close() error
	IsClosed() bool
}

// Stmt is a prepared, parameterized command scoped to one call.
type Stmt interface {
	// Bind sets the positional parameter at index, starting at 1.
	Bind(index int, value any) error
	// Query executes the statement and returns a cursor over its rows.
	Query(ctx context.Context) (ResultSet, error)
	// Exec executes the statement and returns the number of rows affected.
	Exec(ctx context.Context) (int64, error)
	Close() error
}

// Row is the read-only view of the current cursor row handed to a
// [RowMapper].
type Row interface {
	// ReadString returns the named column of the current row as a string.
	ReadString(column string) (string, error)
}

// ResultSet is a forward-only cursor over the rows produced by a query.
type ResultSet interface {
	Row
	// Next advances the cursor and reports whether a row is available.
	Next() (bool, error)
	Close() error
}

// RowMapper converts the current row into a value of type T. It is called
// once per row, in cursor order.
type RowMapper[T any] func(Row) (T, error)

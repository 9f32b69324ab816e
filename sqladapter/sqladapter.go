// Package sqladapter adapts database/sql session types to the sqlwrap
// capabilities: *sql.Conn to sqlwrap.Conn, *sql.Stmt to sqlwrap.Stmt and
// *sql.Rows to sqlwrap.ResultSet. It works with any database/sql driver.
//
// Each capability call maps onto one database/sql call and driver errors are
// returned unchanged.
//
//	db, _ := sql.Open("sqlite", "file::memory:")
//	c, _ := db.Conn(ctx)
//	conn, _ := sqladapter.NewConn(c)
//	w, _ := sqlwrap.New(conn)
package sqladapter

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-mizu/sqlwrap"
)

// Conn adapts a dedicated *sql.Conn session.
type Conn struct {
	conn *sql.Conn
}

var _ sqlwrap.Conn = (*Conn)(nil)

// NewConn returns a Conn over conn.
func NewConn(conn *sql.Conn) (*Conn, error) {
	if conn == nil {
		return nil, sqlwrap.InvalidArgument("sqladapter: *sql.Conn cannot be nil")
	}
	return &Conn{conn: conn}, nil
}

// Prepare creates a prepared statement on the session.
func (c *Conn) Prepare(ctx context.Context, query string) (sqlwrap.Stmt, error) {
	stmt, err := c.conn.PrepareContext(ctx, query)
	if err != nil {
		return nil, err
	}
	return &Stmt{stmt: stmt}, nil
}

// Close returns the session's connection to the pool.
func (c *Conn) Close() error {
	return c.conn.Close()
}

// IsClosed reports whether the session has been closed. Raw fails with
// sql.ErrConnDone on a closed session before touching the driver.
func (c *Conn) IsClosed() bool {
	err := c.conn.Raw(func(any) error { return nil })
	return errors.Is(err, sql.ErrConnDone)
}

// Stmt adapts a *sql.Stmt. Bound parameters are handed to the driver when
// the statement executes.
type Stmt struct {
	stmt *sql.Stmt
	args []any
}

var _ sqlwrap.Stmt = (*Stmt)(nil)

// NewStmt returns a Stmt over stmt.
func NewStmt(stmt *sql.Stmt) (*Stmt, error) {
	if stmt == nil {
		return nil, sqlwrap.InvalidArgument("sqladapter: *sql.Stmt cannot be nil")
	}
	return &Stmt{stmt: stmt}, nil
}

// Bind sets parameter index (1-based). Positions left unbound are sent as
// NULL.
func (s *Stmt) Bind(index int, value any) error {
	if index < 1 {
		return sqlwrap.InvalidArgument("sqladapter: parameter index %d out of range", index)
	}
	for len(s.args) < index {
		s.args = append(s.args, nil)
	}
	s.args[index-1] = value
	return nil
}

// Query executes the statement with the bound arguments and returns its rows.
func (s *Stmt) Query(ctx context.Context) (sqlwrap.ResultSet, error) {
	rows, err := s.stmt.QueryContext(ctx, s.args...)
	if err != nil {
		return nil, err
	}
	return &Rows{rows: rows}, nil
}

// Exec executes the statement and returns the number of rows affected.
func (s *Stmt) Exec(ctx context.Context) (int64, error) {
	res, err := s.stmt.ExecContext(ctx, s.args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Close closes the prepared statement.
func (s *Stmt) Close() error {
	return s.stmt.Close()
}

// Rows adapts *sql.Rows.
type Rows struct {
	rows *sql.Rows

	cols    map[string]int // lowercase column name -> index
	cur     []sql.NullString
	scanned bool
}

var _ sqlwrap.ResultSet = (*Rows)(nil)

// NewRows returns Rows over rows.
func NewRows(rows *sql.Rows) (*Rows, error) {
	if rows == nil {
		return nil, sqlwrap.InvalidArgument("sqladapter: *sql.Rows cannot be nil")
	}
	return &Rows{rows: rows}, nil
}

// Next advances the cursor. Iteration errors surface once Next reports no
// more rows.
func (r *Rows) Next() (bool, error) {
	r.scanned = false
	if r.rows.Next() {
		return true, nil
	}
	return false, r.rows.Err()
}

// ReadString returns the named column (case-insensitive) of the current row.
// The row is scanned once into sql.NullString values, so the driver's usual
// conversions apply; SQL NULL reads as "".
func (r *Rows) ReadString(column string) (string, error) {
	if r.cols == nil {
		names, err := r.rows.Columns()
		if err != nil {
			return "", err
		}
		r.cols = make(map[string]int, len(names))
		for i, n := range names {
			if _, dup := r.cols[strings.ToLower(n)]; !dup {
				r.cols[strings.ToLower(n)] = i
			}
		}
		r.cur = make([]sql.NullString, len(names))
	}
	idx, ok := r.cols[strings.ToLower(column)]
	if !ok {
		return "", sqlwrap.NoColumn(column)
	}
	if !r.scanned {
		dest := make([]any, len(r.cur))
		for i := range r.cur {
			dest[i] = &r.cur[i]
		}
		if err := r.rows.Scan(dest...); err != nil {
			return "", err
		}
		r.scanned = true
	}
	return r.cur[idx].String, nil
}

// Close closes the cursor.
func (r *Rows) Close() error {
	return r.rows.Close()
}

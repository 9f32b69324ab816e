// Package sqlwraptest provides in-memory implementations of the sqlwrap
// capabilities that record every call, for tests that need no database.
//
// A Conn hands out the Stmt in its Stmt field; the Stmt hands out its
// Rows. All three append to a shared Log so a test can assert the exact
// call sequence, including release order.
//
//	log := &sqlwraptest.Log{}
//	rows := sqlwraptest.NewRows(log, []string{"name"}, []string{"John Doe"})
//	conn := &sqlwraptest.Conn{Log: log, Stmt: &sqlwraptest.Stmt{Log: log, Rows: rows}}
package sqlwraptest

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-mizu/sqlwrap"
)

// Log records calls in order, one entry per call.
type Log struct {
	Calls []string
}

func (l *Log) add(format string, args ...any) {
	if l != nil {
		l.Calls = append(l.Calls, fmt.Sprintf(format, args...))
	}
}

// Count returns how many recorded calls equal call.
func (l *Log) Count(call string) int {
	n := 0
	for _, c := range l.Calls {
		if c == call {
			n++
		}
	}
	return n
}

// Conn is a recording sqlwrap.Conn.
type Conn struct {
	Log *Log
	// Stmt is returned by every Prepare call that does not fail.
	Stmt       *Stmt
	PrepareErr error
	CloseErr   error
	Closed     bool
}

var _ sqlwrap.Conn = (*Conn)(nil)

// Prepare records the call and returns c.Stmt, or PrepareErr.
func (c *Conn) Prepare(_ context.Context, query string) (sqlwrap.Stmt, error) {
	c.Log.add("prepare %s", query)
	if c.PrepareErr != nil {
		return nil, c.PrepareErr
	}
	if c.Stmt == nil {
		c.Stmt = &Stmt{Log: c.Log}
	}
	return c.Stmt, nil
}

// Close records the call and marks c closed unless CloseErr is set.
func (c *Conn) Close() error {
	c.Log.add("close connection")
	if c.CloseErr != nil {
		return c.CloseErr
	}
	c.Closed = true
	return nil
}

// IsClosed reports the Closed field.
func (c *Conn) IsClosed() bool {
	c.Log.add("is closed")
	return c.Closed
}

// Stmt is a recording sqlwrap.Stmt.
type Stmt struct {
	Log *Log
	// Params holds bound values by position; Params[0] is parameter 1.
	Params []any
	// Rows is returned by Query. A nil Rows yields an empty result.
	Rows     *Rows
	Affected int64
	// BindErrAt makes Bind fail with BindErr at that 1-based index.
	BindErrAt int
	BindErr   error
	QueryErr  error
	ExecErr   error
	CloseErr  error
}

var _ sqlwrap.Stmt = (*Stmt)(nil)

// Bind stores value at Params[index-1], growing Params with nils.
func (s *Stmt) Bind(index int, value any) error {
	s.Log.add("bind %d %v", index, value)
	if s.BindErr != nil && index == s.BindErrAt {
		return s.BindErr
	}
	if index < 1 {
		return sqlwrap.InvalidArgument("parameter index %d out of range", index)
	}
	for len(s.Params) < index {
		s.Params = append(s.Params, nil)
	}
	s.Params[index-1] = value
	return nil
}

// Query returns s.Rows rewound to before the first row, or QueryErr.
// Repeated queries on the same Stmt therefore see the same data again.
func (s *Stmt) Query(context.Context) (sqlwrap.ResultSet, error) {
	s.Log.add("query")
	if s.QueryErr != nil {
		return nil, s.QueryErr
	}
	if s.Rows == nil {
		s.Rows = NewRows(s.Log, nil)
	}
	s.Rows.pos, s.Rows.nexts = 0, 0
	return s.Rows, nil
}

// Exec returns Affected, or ExecErr.
func (s *Stmt) Exec(context.Context) (int64, error) {
	s.Log.add("exec")
	if s.ExecErr != nil {
		return 0, s.ExecErr
	}
	return s.Affected, nil
}

// Close records the call and returns CloseErr.
func (s *Stmt) Close() error {
	s.Log.add("close statement")
	return s.CloseErr
}

// Rows is a recording sqlwrap.ResultSet over fixed string data.
type Rows struct {
	Log     *Log
	Columns []string
	Data    [][]string
	// NextErrAt makes the n-th Next call (1-based) fail with NextErr.
	NextErrAt int
	NextErr   error
	CloseErr  error

	pos   int
	nexts int
}

var _ sqlwrap.ResultSet = (*Rows)(nil)

// NewRows returns Rows over data, one slice per row in column order.
func NewRows(log *Log, columns []string, data ...[]string) *Rows {
	return &Rows{Log: log, Columns: columns, Data: data}
}

// Next advances to the next row of Data.
func (r *Rows) Next() (bool, error) {
	r.Log.add("next")
	r.nexts++
	if r.NextErr != nil && r.nexts == r.NextErrAt {
		return false, r.NextErr
	}
	if r.pos >= len(r.Data) {
		return false, nil
	}
	r.pos++
	return true, nil
}

// ReadString returns the current row's value for column, matched
// case-insensitively.
func (r *Rows) ReadString(column string) (string, error) {
	r.Log.add("read %s", column)
	if r.pos == 0 || r.pos > len(r.Data) {
		return "", fmt.Errorf("sqlwraptest: no current row")
	}
	for i, c := range r.Columns {
		if strings.EqualFold(c, column) {
			return r.Data[r.pos-1][i], nil
		}
	}
	return "", sqlwrap.NoColumn(column)
}

// Close records the call and returns CloseErr.
func (r *Rows) Close() error {
	r.Log.add("close result set")
	return r.CloseErr
}

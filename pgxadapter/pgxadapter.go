// Package pgxadapter adapts a native pgx connection to the sqlwrap
// capabilities.
//
// Statements are prepared server-side under generated names and executed by
// name; closing a statement deallocates it. Driver errors are returned
// unchanged. Queries use PostgreSQL's $n placeholders; pair the wrapper with
// sqlwrap.WithPlaceholder(sqlwrap.PlaceholderDollar) to keep writing '?'.
package pgxadapter

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/go-mizu/sqlwrap"
)

// pgxConn is the subset of *pgx.Conn the adapters call.
type pgxConn interface {
	Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Deallocate(ctx context.Context, name string) error
	Close(ctx context.Context) error
	IsClosed() bool
}

var _ pgxConn = (*pgx.Conn)(nil)

// Conn adapts a *pgx.Conn.
type Conn struct {
	conn pgxConn
}

var _ sqlwrap.Conn = (*Conn)(nil)

// NewConn returns a Conn over conn.
func NewConn(conn *pgx.Conn) (*Conn, error) {
	if conn == nil {
		return nil, sqlwrap.InvalidArgument("pgxadapter: *pgx.Conn cannot be nil")
	}
	return &Conn{conn: conn}, nil
}

// Prepare prepares query under a fresh statement name.
func (c *Conn) Prepare(ctx context.Context, query string) (sqlwrap.Stmt, error) {
	sd, err := c.conn.Prepare(ctx, "sqlwrap_"+uuid.NewString(), query)
	if err != nil {
		return nil, err
	}
	return &Stmt{conn: c.conn, name: sd.Name}, nil
}

// Close closes the underlying pgx connection.
func (c *Conn) Close() error {
	return c.conn.Close(context.Background())
}

// IsClosed reports whether the pgx connection is closed.
func (c *Conn) IsClosed() bool {
	return c.conn.IsClosed()
}

// Stmt is a named prepared statement on a pgx connection.
type Stmt struct {
	conn pgxConn
	name string
	args []any
}

var _ sqlwrap.Stmt = (*Stmt)(nil)

// NewStmt returns a Stmt for a statement already prepared on conn.
func NewStmt(conn *pgx.Conn, sd *pgconn.StatementDescription) (*Stmt, error) {
	if conn == nil {
		return nil, sqlwrap.InvalidArgument("pgxadapter: *pgx.Conn cannot be nil")
	}
	if sd == nil {
		return nil, sqlwrap.InvalidArgument("pgxadapter: *pgconn.StatementDescription cannot be nil")
	}
	return &Stmt{conn: conn, name: sd.Name}, nil
}

// Bind sets parameter index (1-based). Positions left unbound are sent as
// NULL.
func (s *Stmt) Bind(index int, value any) error {
	if index < 1 {
		return sqlwrap.InvalidArgument("pgxadapter: parameter index %d out of range", index)
	}
	for len(s.args) < index {
		s.args = append(s.args, nil)
	}
	s.args[index-1] = value
	return nil
}

// Query runs the prepared statement by name and returns its rows.
func (s *Stmt) Query(ctx context.Context) (sqlwrap.ResultSet, error) {
	rows, err := s.conn.Query(ctx, s.name, s.args...)
	if err != nil {
		return nil, err
	}
	return &Rows{rows: rows}, nil
}

// Exec runs the prepared statement by name and returns the rows affected.
func (s *Stmt) Exec(ctx context.Context) (int64, error) {
	tag, err := s.conn.Exec(ctx, s.name, s.args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Close deallocates the prepared statement.
func (s *Stmt) Close() error {
	return s.conn.Deallocate(context.Background(), s.name)
}

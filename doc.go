/*
Package sqlwrap is a small, driver-agnostic layer over relational database
clients. It narrows a driver's connection, prepared statement and result
cursor down to three capability interfaces and runs parameterized queries
and updates through them with deterministic resource release.

# Overview

You write plain SQL with positional parameters and a row mapper; sqlwrap
prepares the statement, binds parameters 1..N in order, executes it, maps
each row and closes everything it opened before returning.

	w, err := sqlwrap.New(conn)
	if err != nil {
	    log.Fatal(err)
	}
	defer w.Close()

	names, err := sqlwrap.Query(ctx, w, `SELECT name FROM users WHERE age > ?`,
	    []any{20},
	    func(r sqlwrap.Row) (string, error) { return r.ReadString("name") },
	)

	n, err := w.Update(ctx, `UPDATE users SET name = ? WHERE id = ?`, []any{"Jane Doe", 1})

# Capabilities

  - [Conn] prepares statements, closes, and reports whether it is closed.
  - [Stmt] binds positional parameters and executes for rows or for a count.
  - [ResultSet] advances a forward-only cursor and reads string columns.

Adapters for database/sql live in package sqladapter and for native pgx in
package pgxadapter. Recording in-memory implementations for tests live in
package sqlwraptest.

# Error handling

  - Missing collaborators fail with [ErrInvalidArgument].
  - Driver errors are returned unchanged.
  - Mapper errors are returned as [*MapperError], which unwraps to the
    mapper's error. A driver error raised inside the mapper, such as a
    failing [Row.ReadString], arrives wrapped the same way; test for it
    with [errors.Is] or [errors.As], not ==.
  - No partial results: on failure the returned slice is nil.

# Resources

The statement and result set opened by a call are closed before that call
returns, on every path. The connection is never closed implicitly; only
[Wrapper.Close] closes it, and only when it is still open. A Wrapper is not
safe for concurrent use.
*/
package sqlwrap

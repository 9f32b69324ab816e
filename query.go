package sqlwrap

import (
	"context"

	"go.uber.org/zap"
)

// Query prepares query, binds params to positions 1..N in order, executes it
// and returns mapper's result for every row, in cursor order.
//
// The statement and result set are closed before Query returns, whether it
// succeeds, the driver fails, or the mapper fails. Driver errors are returned
// unchanged; mapper errors are returned as a *MapperError. That includes
// driver errors raised inside the mapper (a failing Row.ReadString), so
// match those with errors.Is or errors.As rather than ==. On failure the
// returned slice is nil, never a partial result.
//
// Example:
//
//	names, err := sqlwrap.Query(ctx, w, `SELECT name FROM users WHERE age > ?`,
//	    []any{20},
//	    func(r sqlwrap.Row) (string, error) { return r.ReadString("name") },
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Query[T any](ctx context.Context, w *Wrapper, query string, params []any, mapper RowMapper[T]) (out []T, err error) {
	if mapper == nil {
		return nil, InvalidArgument("mapper cannot be nil")
	}
	// Runs last: drop anything mapped so far if a later close failed.
	defer func() {
		if err != nil {
			out = nil
		}
	}()

	stmt, err := w.prepare(ctx, query, params)
	if err != nil {
		return nil, err
	}
	defer w.release("statement", stmt, &err)

	rs, err := stmt.Query(ctx)
	if err != nil {
		return nil, err
	}
	defer w.release("result set", rs, &err)

	var ok bool
	for {
		if ok, err = rs.Next(); err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		v, merr := mapper(rs)
		if merr != nil {
			return nil, &MapperError{Row: len(out) + 1, Err: merr}
		}
		out = append(out, v)
	}
	w.log.Debug("sqlwrap: query done", zap.Int("rows", len(out)))
	return out, nil
}

package sqlwrap

import (
	"context"

	"go.uber.org/zap"
)

// Update prepares query, binds params to positions 1..N in order, executes it
// and returns the number of rows affected (INSERT, UPDATE, DELETE, DDL).
//
// The statement is closed before Update returns on every path. Driver errors
// are returned unchanged.
//
// Example:
//
//	n, err := w.Update(ctx, `UPDATE users SET name = ? WHERE id = ?`, []any{"Jane Doe", 1})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("rows:", n)
func (w *Wrapper) Update(ctx context.Context, query string, params []any) (n int64, err error) {
	stmt, err := w.prepare(ctx, query, params)
	if err != nil {
		return 0, err
	}
	defer func() {
		w.release("statement", stmt, &err)
		if err != nil {
			n = 0
		}
	}()

	if n, err = stmt.Exec(ctx); err != nil {
		return 0, err
	}
	w.log.Debug("sqlwrap: update done", zap.Int64("rows_affected", n))
	return n, nil
}

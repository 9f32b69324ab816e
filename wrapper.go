package sqlwrap

import (
	"context"
	"io"

	"go.uber.org/zap"
)

// Wrapper runs parameterized queries and updates over a Conn. It holds a
// non-owning reference to the connection; only Close ever closes it.
//
// A Wrapper is not safe for concurrent use.
type Wrapper struct {
	conn Conn
	log  *zap.Logger
	ph   Placeholder
}

// Option configures a Wrapper.
type Option func(*Wrapper)

// WithLogger sets the logger used for debug tracing and for close errors
// that are suppressed by an earlier failure. The default discards output.
func WithLogger(l *zap.Logger) Option {
	return func(w *Wrapper) {
		if l != nil {
			w.log = l
		}
	}
}

// WithPlaceholder rewrites '?' markers into ph before each statement is
// prepared. The default, PlaceholderQuestion, leaves SQL untouched.
func WithPlaceholder(ph Placeholder) Option {
	return func(w *Wrapper) { w.ph = ph }
}

// New returns a Wrapper over conn.
func New(conn Conn, opts ...Option) (*Wrapper, error) {
	if conn == nil {
		return nil, InvalidArgument("connection cannot be nil")
	}
	w := &Wrapper{conn: conn, log: zap.NewNop()}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Close closes the underlying connection if it is still open. Calling Close
// on an already closed connection is a no-op.
func (w *Wrapper) Close() error {
	if w.conn.IsClosed() {
		return nil
	}
	return w.conn.Close()
}

// prepare obtains a statement for query and binds params to positions 1..N.
// On a bind failure the statement is closed before returning.
func (w *Wrapper) prepare(ctx context.Context, query string, params []any) (_ Stmt, err error) {
	query = rewritePlaceholders(query, w.ph)
	w.log.Debug("sqlwrap: prepare", zap.String("query", query), zap.Int("params", len(params)))

	stmt, err := w.conn.Prepare(ctx, query)
	if err != nil {
		return nil, err
	}
	for i, p := range params {
		if err = stmt.Bind(i+1, p); err != nil {
			w.release("statement", stmt, &err)
			return nil, err
		}
	}
	return stmt, nil
}

// release closes c. The close error replaces *err only when nothing failed
// before; otherwise it is logged and *err is left unchanged.
func (w *Wrapper) release(resource string, c io.Closer, err *error) {
	cerr := c.Close()
	if cerr == nil {
		return
	}
	if *err == nil {
		*err = cerr
		return
	}
	w.log.Warn("sqlwrap: close failed after earlier error",
		zap.String("resource", resource),
		zap.Error(cerr),
		zap.NamedError("cause", *err),
	)
}

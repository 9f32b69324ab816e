package sqlwraptest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-mizu/sqlwrap"
)

func TestRecordsCalls(t *testing.T) {
	log := &Log{}
	rows := NewRows(log, []string{"Name"}, []string{"a"})
	conn := &Conn{Log: log, Stmt: &Stmt{Log: log, Rows: rows}}
	ctx := context.Background()

	stmt, err := conn.Prepare(ctx, "q")
	require.NoError(t, err)
	require.NoError(t, stmt.Bind(2, "x"))
	rs, err := stmt.Query(ctx)
	require.NoError(t, err)

	ok, err := rs.Next()
	require.NoError(t, err)
	require.True(t, ok)
	v, err := rs.ReadString("name")
	require.NoError(t, err)
	assert.Equal(t, "a", v)
	_, err = rs.ReadString("age")
	assert.ErrorIs(t, err, sqlwrap.ErrNoColumn)

	ok, err = rs.Next()
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, rs.Close())
	require.NoError(t, stmt.Close())

	assert.Equal(t, []any{nil, "x"}, conn.Stmt.Params)
	assert.Equal(t, []string{
		"prepare q", "bind 2 x", "query", "next", "read name", "read age", "next",
		"close result set", "close statement",
	}, log.Calls)
}

func TestInjectedErrors(t *testing.T) {
	boom := errors.New("boom")
	ctx := context.Background()

	_, err := (&Conn{PrepareErr: boom}).Prepare(ctx, "q")
	assert.Same(t, boom, err)

	s := &Stmt{BindErrAt: 1, BindErr: boom, QueryErr: boom, ExecErr: boom}
	assert.Same(t, boom, s.Bind(1, 1))
	assert.NoError(t, s.Bind(2, 1))
	assert.ErrorIs(t, s.Bind(0, 1), sqlwrap.ErrInvalidArgument)
	_, err = s.Query(ctx)
	assert.Same(t, boom, err)
	_, err = s.Exec(ctx)
	assert.Same(t, boom, err)

	r := NewRows(nil, []string{"c"}, []string{"1"}, []string{"2"})
	r.NextErrAt, r.NextErr = 2, boom
	ok, err := r.Next()
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = r.Next()
	assert.Same(t, boom, err)
}

func TestStmtQueryRewindsRows(t *testing.T) {
	log := &Log{}
	rows := NewRows(log, []string{"name"}, []string{"John Doe"}, []string{"Alice Smith"})
	stmt := &Stmt{Log: log, Rows: rows}
	ctx := context.Background()

	drain := func() []string {
		rs, err := stmt.Query(ctx)
		require.NoError(t, err)
		var names []string
		for {
			ok, err := rs.Next()
			require.NoError(t, err)
			if !ok {
				break
			}
			v, err := rs.ReadString("name")
			require.NoError(t, err)
			names = append(names, v)
		}
		require.NoError(t, rs.Close())
		return names
	}

	want := []string{"John Doe", "Alice Smith"}
	assert.Equal(t, want, drain())
	assert.Equal(t, want, drain(), "second query sees the rows again")
}

func TestConnCloseState(t *testing.T) {
	c := &Conn{}
	assert.False(t, c.IsClosed())
	require.NoError(t, c.Close())
	assert.True(t, c.IsClosed())
}

package sqladapter

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-mizu/sqlwrap"
)

func newMockConn(t *testing.T) (*Conn, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	c, err := db.Conn(context.Background())
	require.NoError(t, err)
	conn, err := NewConn(c)
	require.NoError(t, err)
	return conn, mock
}

func TestConstructors_NilArguments(t *testing.T) {
	_, err := NewConn(nil)
	assert.ErrorIs(t, err, sqlwrap.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "*sql.Conn")

	_, err = NewStmt(nil)
	assert.ErrorIs(t, err, sqlwrap.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "*sql.Stmt")

	_, err = NewRows(nil)
	assert.ErrorIs(t, err, sqlwrap.ErrInvalidArgument)
	assert.Contains(t, err.Error(), "*sql.Rows")
}

func TestStmt_QueryDelegates(t *testing.T) {
	conn, mock := newMockConn(t)
	const q = "SELECT name, age FROM users WHERE age > ?"
	mock.ExpectPrepare(q).
		WillBeClosed().
		ExpectQuery().
		WithArgs(20).
		WillReturnRows(sqlmock.NewRows([]string{"NAME", "age"}).
			AddRow("John Doe", int64(25)).
			AddRow(nil, int64(30))).
		RowsWillBeClosed()

	ctx := context.Background()
	stmt, err := conn.Prepare(ctx, q)
	require.NoError(t, err)
	require.NoError(t, stmt.Bind(1, 20))

	rs, err := stmt.Query(ctx)
	require.NoError(t, err)

	ok, err := rs.Next()
	require.NoError(t, err)
	require.True(t, ok)
	name, err := rs.ReadString("name")
	require.NoError(t, err)
	assert.Equal(t, "John Doe", name)
	age, err := rs.ReadString("AGE")
	require.NoError(t, err)
	assert.Equal(t, "25", age)

	ok, err = rs.Next()
	require.NoError(t, err)
	require.True(t, ok)
	name, err = rs.ReadString("name")
	require.NoError(t, err)
	assert.Empty(t, name, "NULL reads as empty string")

	_, err = rs.ReadString("email")
	assert.ErrorIs(t, err, sqlwrap.ErrNoColumn)

	ok, err = rs.Next()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, rs.Close())
	require.NoError(t, stmt.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStmt_ExecDelegates(t *testing.T) {
	conn, mock := newMockConn(t)
	const q = "UPDATE users SET name = ? WHERE id = ?"
	mock.ExpectPrepare(q).
		WillBeClosed().
		ExpectExec().
		WithArgs("Jane Doe", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	stmt, err := conn.Prepare(ctx, q)
	require.NoError(t, err)
	require.NoError(t, stmt.Bind(1, "Jane Doe"))
	require.NoError(t, stmt.Bind(2, 1))

	n, err := stmt.Exec(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, stmt.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStmt_BindOutOfOrderKeepsPositions(t *testing.T) {
	conn, mock := newMockConn(t)
	const q = "UPDATE users SET name = ? WHERE id = ?"
	mock.ExpectPrepare(q).
		ExpectExec().
		WithArgs("Jane Doe", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	stmt, err := conn.Prepare(ctx, q)
	require.NoError(t, err)
	require.NoError(t, stmt.Bind(2, 1))
	require.NoError(t, stmt.Bind(1, "Jane Doe"))

	_, err = stmt.Exec(ctx)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStmt_BindIndexOutOfRange(t *testing.T) {
	s := &Stmt{}
	assert.ErrorIs(t, s.Bind(0, "x"), sqlwrap.ErrInvalidArgument)
	assert.ErrorIs(t, s.Bind(-1, "x"), sqlwrap.ErrInvalidArgument)
	assert.Empty(t, s.args)
}

func TestDriverErrorsPropagate(t *testing.T) {
	ctx := context.Background()

	t.Run("prepare", func(t *testing.T) {
		conn, mock := newMockConn(t)
		boom := errors.New("Database error")
		mock.ExpectPrepare("bad sql").WillReturnError(boom)

		_, err := conn.Prepare(ctx, "bad sql")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("query", func(t *testing.T) {
		conn, mock := newMockConn(t)
		boom := errors.New("Query error")
		mock.ExpectPrepare("q").ExpectQuery().WillReturnError(boom)

		stmt, err := conn.Prepare(ctx, "q")
		require.NoError(t, err)
		_, err = stmt.Query(ctx)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("exec", func(t *testing.T) {
		conn, mock := newMockConn(t)
		boom := errors.New("Update error")
		mock.ExpectPrepare("q").ExpectExec().WillReturnError(boom)

		stmt, err := conn.Prepare(ctx, "q")
		require.NoError(t, err)
		_, err = stmt.Exec(ctx)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("statement close", func(t *testing.T) {
		conn, mock := newMockConn(t)
		boom := errors.New("Close error")
		mock.ExpectPrepare("q").WillReturnCloseError(boom)

		stmt, err := conn.Prepare(ctx, "q")
		require.NoError(t, err)
		assert.ErrorIs(t, stmt.Close(), boom)
	})

	t.Run("next", func(t *testing.T) {
		conn, mock := newMockConn(t)
		boom := errors.New("cursor error")
		mock.ExpectPrepare("q").ExpectQuery().
			WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("a").AddRow("b").RowError(1, boom))

		stmt, err := conn.Prepare(ctx, "q")
		require.NoError(t, err)
		rs, err := stmt.Query(ctx)
		require.NoError(t, err)

		ok, err := rs.Next()
		require.NoError(t, err)
		require.True(t, ok)
		ok, err = rs.Next()
		assert.False(t, ok)
		assert.ErrorIs(t, err, boom)
	})
}

func TestConn_IsClosed(t *testing.T) {
	conn, _ := newMockConn(t)
	assert.False(t, conn.IsClosed())
	require.NoError(t, conn.Close())
	assert.True(t, conn.IsClosed())
	assert.ErrorIs(t, conn.Close(), sql.ErrConnDone)
}

// Command sqlwrap-demo seeds a users table and runs a query, an update and
// the query again through sqlwrap, against SQLite (default), PostgreSQL via
// lib/pq, or PostgreSQL via native pgx.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	_ "github.com/glebarez/go-sqlite"
	"github.com/jackc/pgx/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/go-mizu/sqlwrap"
	"github.com/go-mizu/sqlwrap/internal/config"
	"github.com/go-mizu/sqlwrap/internal/logging"
	"github.com/go-mizu/sqlwrap/pgxadapter"
	"github.com/go-mizu/sqlwrap/sqladapter"
)

var seed = []string{
	`CREATE TABLE users (id INT PRIMARY KEY, name VARCHAR(255), age INT)`,
	`INSERT INTO users (id, name, age) VALUES (1, 'John Doe', 25)`,
	`INSERT INTO users (id, name, age) VALUES (2, 'Alice Smith', 30)`,
	`INSERT INTO users (id, name, age) VALUES (3, 'Bob Jones', 18)`,
}

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("Database error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	log.Info("Connecting", zap.String("driver", cfg.Driver))

	conn, cleanup, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	w, err := sqlwrap.New(conn, sqlwrap.WithLogger(log), sqlwrap.WithPlaceholder(cfg.Placeholder()))
	if err != nil {
		return err
	}
	defer func() {
		if err := w.Close(); err != nil {
			log.Warn("Failed to close connection", zap.Error(err))
		}
	}()

	for _, stmt := range seed {
		if _, err := w.Update(ctx, stmt, nil); err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}
	}

	const selectQuery = "SELECT name FROM users WHERE age > ?"
	selectParams := []any{20}
	readName := func(r sqlwrap.Row) (string, error) { return r.ReadString("name") }

	names, err := sqlwrap.Query(ctx, w, selectQuery, selectParams, readName)
	if err != nil {
		return err
	}
	printNames("Users with age > 20:", names)

	n, err := w.Update(ctx, "UPDATE users SET name = ? WHERE id = ?", []any{"Jane Doe", 1})
	if err != nil {
		return err
	}
	fmt.Println("Rows updated:", n)

	names, err = sqlwrap.Query(ctx, w, selectQuery, selectParams, readName)
	if err != nil {
		return err
	}
	printNames("Users with age > 20 after update:", names)
	return nil
}

// connect opens the configured driver and adapts one session of it. The
// returned cleanup releases what the session was drawn from.
func connect(ctx context.Context, cfg *config.Config) (sqlwrap.Conn, func(), error) {
	if cfg.Driver == config.DriverPgx {
		pc, err := pgx.Connect(ctx, cfg.DSN)
		if err != nil {
			return nil, nil, err
		}
		conn, err := pgxadapter.NewConn(pc)
		if err != nil {
			_ = pc.Close(ctx)
			return nil, nil, err
		}
		return conn, func() {}, nil
	}

	db, err := sqlx.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, nil, err
	}
	cx, err := db.Connx(ctx)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	conn, err := sqladapter.NewConn(cx.Conn)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return conn, func() { _ = db.Close() }, nil
}

func printNames(title string, names []string) {
	fmt.Println(title)
	for _, n := range names {
		fmt.Println(n)
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store owns the SQLite handle shared with the club web application:
// opening the file, applying pragmas, running embedded migrations, and the
// queries the admin tooling issues against the users table.
package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // SQLite driver for database/sql
)

//go:embed migrations/*.sql
var migrations embed.FS

// VersionTable is the goose bookkeeping table. It is namespaced so it does not
// collide with anything the web application creates in the same file.
const VersionTable = "clubmgr_goose_version"

// DBConfig holds database configuration options.
type DBConfig struct {
	// BusyTimeout is how long a statement waits for a lock held by another
	// process (typically the running web application) before failing.
	BusyTimeout time.Duration
	// MaxOpenConns is the maximum number of open connections. The tooling is a
	// single writer, so one connection keeps transactions on one handle.
	MaxOpenConns int
}

// DefaultDBConfig returns sensible defaults for a one-shot command.
func DefaultDBConfig() DBConfig {
	return DBConfig{
		BusyTimeout:  5 * time.Second,
		MaxOpenConns: 1,
	}
}

// Open creates the parent directory of path if needed and opens the database.
func Open(path string) (*sql.DB, error) {
	return OpenWithConfig(path, DefaultDBConfig())
}

// OpenWithConfig is Open with custom configuration.
func OpenWithConfig(path string, cfg DBConfig) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)

	// journal_mode is persisted in the file, so it stays whatever the web
	// application chose.
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout=%d", cfg.BusyTimeout.Milliseconds()),
		"PRAGMA foreign_keys=ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("setting pragma %q: %w", pragma, err)
		}
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

// Migrate runs all pending migrations. It is idempotent and safe to call on
// every invocation. goose output goes to logger at debug level; a nil logger
// means slog.Default().
func Migrate(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	goose.SetBaseFS(migrations)
	goose.SetTableName(VersionTable)
	goose.SetLogger(gooseLogger{logger: logger.With("component", "goose")})

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

// HasUsersTable reports whether the users table exists.
func HasUsersTable(ctx context.Context, db DBTX) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'users'`,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("inspecting schema: %w", err)
	}
	return n > 0, nil
}

// gooseLogger keeps goose progress off stdout. Fatalf only logs: the failure
// also comes back as an error from goose, and the caller owns the exit.
type gooseLogger struct {
	logger *slog.Logger
}

func (l gooseLogger) Printf(format string, v ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l gooseLogger) Fatalf(format string, v ...any) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/olegiv/clubmgr/internal/auth"
	"github.com/olegiv/clubmgr/internal/store"
)

// TestLoggerSilent creates a logger that discards everything.
func TestLoggerSilent() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// TestDBPath returns <tmp>/instance/clubmgr-test.db without creating it.
func TestDBPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "instance", "clubmgr-test.db")
}

// TestRawDB opens a temporary database without running migrations.
// It is closed when the test ends.
func TestRawDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := store.Open(TestDBPath(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// TestDB opens a temporary database with migrations applied.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	db := TestRawDB(t)
	if err := store.Migrate(context.Background(), db, TestLoggerSilent()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

// FastHasher returns a werkzeug-format scrypt hasher with a low cost factor
// so tests that hash many passwords stay quick.
func FastHasher(t *testing.T) *auth.Hasher {
	t.Helper()

	h, err := auth.NewHasher(auth.MethodScrypt, auth.WithScryptCost(1024, 8, 1))
	if err != nil {
		t.Fatalf("NewHasher: %v", err)
	}
	return h
}

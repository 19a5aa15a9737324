// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database. Tests that use it skip themselves unless DATABASE_URL
// is set, so the default test run stays hermetic.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

// Timeout bounds individual database operations in tests.
const Timeout = 5 * time.Second

// Available reports whether an integration test database is configured.
func Available() bool {
	return os.Getenv("DATABASE_URL") != ""
}

// Open connects to the test database, verifies the connection, and applies
// migrations. It skips the calling test when DATABASE_URL is not set.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("skipping integration test: DATABASE_URL not set")
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("warning: failed to close test database: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), Timeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "failed to ping test database")

	applyMigrations(t, db)
	return db
}

// WithTx runs fn inside a transaction that is always rolled back, keeping
// tests isolated from each other and from existing data.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "failed to begin transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()

	root, err := findModuleRoot()
	require.NoError(t, err, "failed to locate module root")

	dir := filepath.Join(root, "cmd", "server", "migrations")
	require.DirExists(t, dir, "migrations directory missing: %s", dir)

	goose.SetLogger(goose.NopLogger())
	require.NoError(t, goose.SetDialect("postgres"))
	goose.SetBaseFS(os.DirFS(dir))
	require.NoError(t, goose.Up(db, "."), "failed to apply migrations")
}

// findModuleRoot walks upward from the working directory until it finds the
// directory containing go.mod.
func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found in any parent directory")
		}
		dir = parent
	}
}

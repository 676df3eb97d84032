package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds connection checks made by this package.
const TestTimeout = 5 * time.Second

// DSNEnvVar names the variable holding the integration database DSN.
const DSNEnvVar = "MJOLNIR_TEST_POSTGRES_DSN"

// GetTestDatabaseURL returns the DSN for integration tests. It checks
// MJOLNIR_TEST_POSTGRES_DSN and DATABASE_URL in that order.
func GetTestDatabaseURL() string {
	if dsn := os.Getenv(DSNEnvVar); dsn != "" {
		return dsn
	}
	return os.Getenv("DATABASE_URL")
}

// IsIntegrationTestEnvironment reports whether a PostgreSQL DSN is configured.
func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// RequirePostgres returns the integration DSN, skipping the test when none
// is configured.
func RequirePostgres(t *testing.T) string {
	t.Helper()

	dsn := GetTestDatabaseURL()
	if dsn == "" {
		t.Skipf("skipping PostgreSQL integration test: %s not set", DSNEnvVar)
	}
	return dsn
}

// OpenPostgres connects to the integration database and verifies the
// connection. The handle is closed when the test ends.
func OpenPostgres(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", RequirePostgres(t))
	require.NoError(t, err, "Failed to open database connection")
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close database: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "Failed to ping database")

	return db
}

// WithTx executes a test function within a transaction, automatically rolling back
// after the test completes. This ensures test isolation and prevents side effects.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "Failed to begin transaction")

	defer func() {
		err := tx.Rollback()
		// sql.ErrTxDone is expected if tx is already committed or rolled back
		if err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("Warning: failed to rollback transaction: %v", err)
		}
	}()

	fn(t, tx)
}

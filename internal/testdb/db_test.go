package testdb

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTestDatabaseURL(t *testing.T) {
	t.Setenv(DSNEnvVar, "")
	t.Setenv("DATABASE_URL", "")
	assert.Empty(t, GetTestDatabaseURL())
	assert.False(t, IsIntegrationTestEnvironment())

	t.Setenv("DATABASE_URL", "postgres://fallback")
	assert.Equal(t, "postgres://fallback", GetTestDatabaseURL())

	t.Setenv(DSNEnvVar, "postgres://primary")
	assert.Equal(t, "postgres://primary", GetTestDatabaseURL())
	assert.True(t, IsIntegrationTestEnvironment())
}

func TestWithTx_RollsBack(t *testing.T) {
	db := OpenPostgres(t)

	WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		_, err := tx.Exec(`CREATE TABLE testdb_probe (id int)`)
		require.NoError(t, err)
	})

	var exists bool
	err := db.QueryRow(`SELECT EXISTS (SELECT 1 FROM pg_tables WHERE tablename = 'testdb_probe')`).Scan(&exists)
	require.NoError(t, err)
	assert.False(t, exists)
}

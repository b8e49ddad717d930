package db_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/hippomemory/internal/db"
	"github.com/vytor/hippomemory/internal/testutil"
)

func TestOpen_AppliesMigrations(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "progress.db"))
	require.NoError(t, err)
	defer testutil.MustClose(t, database)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	assert.Equal(t, 2, count)

	_, err = database.Exec(`INSERT INTO kv_records (key, value) VALUES (?, ?)`, "k", []byte("v"))
	assert.NoError(t, err)
}

func TestMigrate_Idempotent(t *testing.T) {
	sqlDB := testutil.NewTestDB(t)
	defer testutil.MustClose(t, sqlDB)

	require.NoError(t, db.Migrate(context.Background(), sqlDB))

	var count int
	require.NoError(t, sqlDB.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&count))
	assert.Equal(t, 2, count)
}

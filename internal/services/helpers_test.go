package services

import (
	"path/filepath"
	"testing"

	"cattery-backend-go/internal/db"
	"cattery-backend-go/internal/migrations"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, migrations.Apply(database))
	return database
}

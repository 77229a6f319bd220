package migrations

import (
	"path/filepath"
	"testing"

	"cattery-backend-go/internal/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyIsIdempotent(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "schema.db"))
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Apply(database))
	require.NoError(t, Apply(database))

	var applied int
	require.NoError(t, database.Get(&applied, `SELECT count(*) FROM schema_migrations`))
	assert.Equal(t, 1, applied)

	for _, table := range []string{"kittens", "parents", "waiting_list", "products", "page_content", "admin_settings"} {
		var count int
		require.NoError(t, database.Get(&count, `SELECT count(*) FROM `+table), table)
		assert.Zero(t, count, table)
	}
}

func TestListMigrationsOrdersByVersion(t *testing.T) {
	migs, err := listMigrations("sql/postgres")
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Equal(t, "V1__init.sql", migs[0].Name)
}

func TestParseVersion(t *testing.T) {
	assert.Equal(t, "12", parseVersion("V12__add_index.sql"))
	assert.Equal(t, "", parseVersion("seed.sql"))

	n, ok := parseVersionNumber("V3__x.sql")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = parseVersionNumber("Vx__x.sql")
	assert.False(t, ok)
}

func TestDialectDirRejectsUnknownDriver(t *testing.T) {
	_, err := dialectDir("mysql")
	assert.Error(t, err)
}

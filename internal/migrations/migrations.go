package migrations

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"cattery-backend-go/internal/db"

	"github.com/jmoiron/sqlx"
)

//go:embed sql
var files embed.FS

type migration struct {
	Name string
	Path string
}

// Apply creates any missing tables for the connected database. Each script is
// idempotent and recorded in schema_migrations once it has run.
func Apply(database *sqlx.DB) error {
	dir, err := dialectDir(database.DriverName())
	if err != nil {
		return err
	}
	if err := ensureTable(database); err != nil {
		return err
	}
	migs, err := listMigrations(dir)
	if err != nil {
		return err
	}
	applied, err := appliedMigrations(database)
	if err != nil {
		return err
	}
	for _, mig := range migs {
		if applied[mig.Name] {
			continue
		}
		if err := applyMigration(database, mig); err != nil {
			return err
		}
	}
	return nil
}

func dialectDir(driver string) (string, error) {
	switch driver {
	case db.DriverPostgres:
		return "sql/postgres", nil
	case db.DriverSQLite:
		return "sql/sqlite", nil
	default:
		return "", fmt.Errorf("no schema for driver %q", driver)
	}
}

func ensureTable(database *sqlx.DB) error {
	_, err := database.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  name TEXT PRIMARY KEY,
  version TEXT NULL,
  applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`)
	return err
}

func listMigrations(dir string) ([]migration, error) {
	entries, err := fs.ReadDir(files, dir)
	if err != nil {
		return nil, err
	}
	migs := make([]migration, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".sql") {
			continue
		}
		migs = append(migs, migration{
			Name: name,
			Path: path.Join(dir, name),
		})
	}
	sort.Slice(migs, func(i, j int) bool {
		iVersion, iOk := parseVersionNumber(migs[i].Name)
		jVersion, jOk := parseVersionNumber(migs[j].Name)
		switch {
		case iOk && jOk && iVersion != jVersion:
			return iVersion < jVersion
		case iOk != jOk:
			return iOk
		default:
			return migs[i].Name < migs[j].Name
		}
	})
	return migs, nil
}

func appliedMigrations(database *sqlx.DB) (map[string]bool, error) {
	rows := []string{}
	if err := database.Select(&rows, `SELECT name FROM schema_migrations`); err != nil {
		return nil, err
	}
	names := make(map[string]bool, len(rows))
	for _, name := range rows {
		names[name] = true
	}
	return names, nil
}

func applyMigration(database *sqlx.DB, mig migration) error {
	content, err := files.ReadFile(mig.Path)
	if err != nil {
		return err
	}
	if _, err := database.Exec(string(content)); err != nil {
		return fmt.Errorf("apply %s: %w", mig.Name, err)
	}
	_, err = database.Exec(database.Rebind(`INSERT INTO schema_migrations (name, version) VALUES (?, ?)`), mig.Name, nullIfEmpty(parseVersion(mig.Name)))
	return err
}

func parseVersion(name string) string {
	if !strings.HasPrefix(name, "V") {
		return ""
	}
	parts := strings.SplitN(name[1:], "__", 2)
	if len(parts) == 0 {
		return ""
	}
	return strings.TrimSpace(parts[0])
}

func parseVersionNumber(name string) (int, bool) {
	raw := parseVersion(name)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}

func nullIfEmpty(value string) interface{} {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

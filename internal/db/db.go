package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// Open connects to DATABASE_URL. postgres:// and postgresql:// URLs go through
// pgx; sqlite:// URLs and bare paths open a SQLite file.
func Open(dsn string) (*sqlx.DB, error) {
	driver, source, err := Resolve(dsn)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		return openSQLite(source)
	}
	db, err := sqlx.Open(driver, source)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Resolve maps a DATABASE_URL onto a driver name and a driver-specific source.
func Resolve(dsn string) (string, string, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return "", "", fmt.Errorf("empty database url")
	case strings.HasPrefix(dsn, "postgres://"):
		return DriverPostgres, "postgresql://" + strings.TrimPrefix(dsn, "postgres://"), nil
	case strings.HasPrefix(dsn, "postgresql://"):
		return DriverPostgres, dsn, nil
	case strings.HasPrefix(dsn, "sqlite:///"):
		return DriverSQLite, strings.TrimPrefix(dsn, "sqlite:///"), nil
	case strings.HasPrefix(dsn, "sqlite://"):
		return DriverSQLite, strings.TrimPrefix(dsn, "sqlite://"), nil
	case strings.Contains(dsn, "://"):
		return "", "", fmt.Errorf("unsupported database url scheme: %s", dsn[:strings.Index(dsn, "://")])
	default:
		return DriverSQLite, dsn, nil
	}
}

func openSQLite(path string) (*sqlx.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}
	source := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sqlx.Open(DriverSQLite, source)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

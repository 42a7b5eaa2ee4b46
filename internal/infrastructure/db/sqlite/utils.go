package sqlitedb

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/arkade-os/offerd/internal/core/ports"
	"github.com/arkade-os/offerd/internal/infrastructure/db/sqlstore"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// OpenDb opens the sqlite db at dbPath, ":memory:" is accepted.
func OpenDb(dbPath string) (*sql.DB, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn = fmt.Sprintf(
			"file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)",
			dbPath,
		)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	// sqlite serializes writers, a single connection avoids SQLITE_BUSY on
	// concurrent transactions and keeps ":memory:" dbs shared.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("unable to establish connection with db: %w", err)
	}
	return db, nil
}

func NewRepoManager(db *sql.DB) ports.RepoManager {
	return sqlstore.NewRepoManager(
		sqlx.NewDb(db, driverName), sqlstore.Options{IsConflict: isConflictError},
	)
}

func isConflictError(err error) bool {
	if err == nil {
		return false
	}

	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "database is locked") ||
		strings.Contains(errMsg, "database table is locked") ||
		strings.Contains(errMsg, "busy")
}

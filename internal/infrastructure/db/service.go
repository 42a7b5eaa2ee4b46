package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arkade-os/offerd/internal/core/ports"
	badgerdb "github.com/arkade-os/offerd/internal/infrastructure/db/badger"
	pgdb "github.com/arkade-os/offerd/internal/infrastructure/db/postgres"
	sqlitedb "github.com/arkade-os/offerd/internal/infrastructure/db/sqlite"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	log "github.com/sirupsen/logrus"
)

//go:embed sqlite/migration/*
var migrations embed.FS

//go:embed postgres/migration/*
var pgMigration embed.FS

const sqliteDbFile = "sqlite.db"

var repoManagerTypes = map[string]func(...interface{}) (ports.RepoManager, error){
	"badger":   badgerdb.NewRepoManager,
	"sqlite":   newSqliteRepoManager,
	"postgres": newPostgresRepoManager,
}

type ServiceConfig struct {
	DbType string
	// DbConfig is [baseDir, badger.Logger] for badger, [baseDir] for sqlite
	// and [dsn, autoCreate] for postgres.
	DbConfig []interface{}
}

func NewService(config ServiceConfig) (ports.RepoManager, error) {
	factory, ok := repoManagerTypes[config.DbType]
	if !ok {
		return nil, fmt.Errorf("invalid db type: %s", config.DbType)
	}

	repoManager, err := factory(config.DbConfig...)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s db: %w", config.DbType, err)
	}
	log.Debugf("opened %s db", config.DbType)

	return repoManager, nil
}

func newSqliteRepoManager(config ...interface{}) (ports.RepoManager, error) {
	if len(config) != 1 {
		return nil, fmt.Errorf("invalid data store config")
	}

	baseDir, ok := config[0].(string)
	if !ok {
		return nil, fmt.Errorf("invalid base directory")
	}

	dbFile := ":memory:"
	if len(baseDir) > 0 {
		if err := os.MkdirAll(baseDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create db dir: %s", err)
		}
		dbFile = filepath.Join(baseDir, sqliteDbFile)
	}
	db, err := sqlitedb.OpenDb(dbFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %s", err)
	}

	driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to init driver: %s", err)
	}
	if err := runMigrations(driver, migrations, "sqlite/migration", "offerdb"); err != nil {
		closeDb(db)
		return nil, err
	}

	return sqlitedb.NewRepoManager(db), nil
}

func newPostgresRepoManager(config ...interface{}) (ports.RepoManager, error) {
	if len(config) != 2 {
		return nil, fmt.Errorf("invalid data store config for postgres")
	}

	dsn, ok := config[0].(string)
	if !ok {
		return nil, fmt.Errorf("invalid DSN for postgres")
	}

	autoCreate, ok := config[1].(bool)
	if !ok {
		return nil, fmt.Errorf("invalid autocreate flag for postgres")
	}

	db, err := pgdb.OpenDb(dsn, autoCreate)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres db: %s", err)
	}

	pgDriver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres migration driver: %s", err)
	}
	if err := runMigrations(pgDriver, pgMigration, "postgres/migration", "postgres"); err != nil {
		closeDb(db)
		return nil, err
	}

	return pgdb.NewRepoManager(db), nil
}

func runMigrations(driver database.Driver, fs embed.FS, path, dbName string) error {
	source, err := iofs.New(fs, path)
	if err != nil {
		return fmt.Errorf("failed to embed migrations: %s", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dbName, driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %s", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %s", err)
	}
	return nil
}

func closeDb(db *sql.DB) {
	if err := db.Close(); err != nil {
		log.WithError(err).Warn("failed to close db")
	}
}

// Package database opens the configured backing store and manages its schema.
package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/asakaida/edurecords/internal/infrastructure/config"
	"github.com/asakaida/edurecords/internal/repositories"
	"github.com/asakaida/edurecords/internal/repositories/postgres"
	"github.com/asakaida/edurecords/internal/repositories/sqlite"
	"github.com/asakaida/edurecords/migrations"
	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Store is an open database of one of the supported drivers
type Store interface {
	Driver() string
	SQL() *sql.DB
	RunMigrations() error
	MigrateDriver() (migratedb.Driver, error)
	HealthCheck() error
	Close() error
}

// Open connects to the database selected by cfg.Driver
func Open(cfg *config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewPostgres(cfg)
	case config.DriverSQLite:
		return NewSQLite(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

// NewPersonRepository returns the person repository implementation for the store's driver
func NewPersonRepository(store Store) (repositories.PersonRepository, error) {
	switch store.Driver() {
	case config.DriverPostgres:
		return postgres.NewPostgresPersonRepository(store.SQL()), nil
	case config.DriverSQLite:
		return sqlite.NewSQLitePersonRepository(store.SQL()), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", store.Driver())
	}
}

// NewMigrator creates a golang-migrate instance reading the embedded migrations for the store's driver
// Closing the returned Migrate also closes the store's connection pool.
func NewMigrator(store Store) (*migrate.Migrate, error) {
	driver, err := store.MigrateDriver()
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	return newMigrator(store.Driver(), driver)
}

func newMigrator(driverName string, driver migratedb.Driver) (*migrate.Migrate, error) {
	source, err := iofs.New(migrations.FS, driverName)
	if err != nil {
		return nil, fmt.Errorf("failed to open migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, driverName, driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration instance: %w", err)
	}

	return m, nil
}

// migrateUp applies pending migrations; having none pending is not an error
func migrateUp(m *migrate.Migrate) error {
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/asakaida/edurecords/internal/infrastructure/config"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/mattn/go-sqlite3"
)

// SQLite represents an SQLite database file
type SQLite struct {
	DB *sql.DB
}

// NewSQLite opens the SQLite database at cfg.Path, creating the file if needed
func NewSQLite(cfg *config.DatabaseConfig) (*SQLite, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", cfg.Path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLite{DB: db}, nil
}

// Driver returns the configured driver name
func (s *SQLite) Driver() string {
	return config.DriverSQLite
}

// SQL returns the underlying connection pool
func (s *SQLite) SQL() *sql.DB {
	return s.DB
}

// RunMigrations applies all pending embedded migrations
// The sqlite3 migration driver holds no connection of its own, so the instance is left open:
// closing it would close the database.
func (s *SQLite) RunMigrations() error {
	m, err := NewMigrator(s)
	if err != nil {
		return err
	}
	return migrateUp(m)
}

// MigrateDriver returns a golang-migrate driver bound to this database
func (s *SQLite) MigrateDriver() (migratedb.Driver, error) {
	return sqlite3.WithInstance(s.DB, &sqlite3.Config{})
}

// HealthCheck checks if the database is reachable
func (s *SQLite) HealthCheck() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	return nil
}

// Close closes the database
func (s *SQLite) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

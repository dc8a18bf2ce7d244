package postgres

import (
	"database/sql"
	"testing"

	"github.com/asakaida/edurecords/internal/infrastructure/config"
	"github.com/asakaida/edurecords/migrations"
	_ "github.com/lib/pq"
)

// SetupTestDB connects to the test database and applies the schema
// The test is skipped when no PostgreSQL test database is configured or reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	if err := config.InitConfig("test"); err != nil {
		t.Fatalf("Failed to init config: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Skipf("PostgreSQL test database not configured: %v", err)
	}
	if cfg.Database.Driver != config.DriverPostgres {
		t.Skipf("PostgreSQL test database not configured (DB_DRIVER=%s)", cfg.Database.Driver)
	}

	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("PostgreSQL test database unavailable: %v", err)
	}

	schema, err := migrations.FS.ReadFile("postgres/000001_create_persons.up.sql")
	if err != nil {
		t.Fatalf("Failed to read migration: %v", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		t.Fatalf("Failed to apply migration: %v", err)
	}

	cleanupTables(t, db)

	return db
}

// CleanupTestDB removes test data and closes the database connection
func CleanupTestDB(t *testing.T, db *sql.DB) {
	t.Helper()

	cleanupTables(t, db)

	if err := db.Close(); err != nil {
		t.Logf("Warning: Failed to close database: %v", err)
	}
}

func cleanupTables(t *testing.T, db *sql.DB) {
	t.Helper()

	if _, err := db.Exec("DELETE FROM persons"); err != nil {
		t.Logf("Warning: Failed to clean up table persons: %v", err)
	}
}

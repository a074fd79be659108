package migration

import (
	"database/sql"
	"io/fs"
	"os"
	"testing"

	_ "github.com/lib/pq"

	"github.com/julianstephens/coursecal/migrations"
)

// Set POSTGRES_TEST_URL to run, e.g.
// POSTGRES_TEST_URL="postgres://user@localhost:5432/testdb?sslmode=disable"
func setupPostgresTestDB(t *testing.T) *sql.DB {
	t.Helper()
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("failed to open postgres database: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Fatalf("failed to ping postgres database: %v", err)
	}

	t.Cleanup(func() {
		for _, table := range []string{"schema_version", "settings", "terms", "courses", "assignments", "events"} {
			db.Exec("DROP TABLE IF EXISTS " + table)
		}
		db.Close()
	})
	return db
}

func TestPostgresEmbeddedSchema(t *testing.T) {
	db := setupPostgresTestDB(t)

	sub, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		t.Fatalf("fs.Sub failed: %v", err)
	}
	runner := NewRunner(db, sub, DialectPostgres)

	count, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if count < 1 {
		t.Errorf("expected at least 1 migration applied, got %d", count)
	}

	var exists bool
	err = db.QueryRow("SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = 'events')").Scan(&exists)
	if err != nil {
		t.Fatalf("failed to check events table: %v", err)
	}
	if !exists {
		t.Error("events table was not created")
	}

	if err := runner.SetVersion(count); err != nil {
		t.Errorf("SetVersion with $1 placeholder failed: %v", err)
	}
	if count, err = runner.ApplyMigrations(nil); err != nil || count != 0 {
		t.Errorf("second run applied %d, err %v", count, err)
	}
}

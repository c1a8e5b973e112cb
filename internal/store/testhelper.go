package store

import (
	"adcraft-server/internal/observability"
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
)

// TestDBType represents the type of database to use for testing
type TestDBType string

const (
	TestDBTypePostgres TestDBType = "postgres"
)

// resetOrder lists tables children first so TRUNCATE never trips a foreign key
var resetOrder = []string{
	"ad_publishing_metadata",
	"meta_connections",
	"ads",
	"campaigns",
	"users",
}

// TestDB is a migrated postgres database for store integration tests
type TestDB struct {
	db    *sqlx.DB
	Store Store
}

// SetupTestDB connects to the TEST_DB_* postgres, applies the embedded
// migrations and skips the test when no database is reachable.
func SetupTestDB(t *testing.T, dbType TestDBType) *TestDB {
	t.Helper()

	if dbType == "" {
		dbType = TestDBType(envOr("TEST_DB_TYPE", string(TestDBTypePostgres)))
	}
	if dbType != TestDBTypePostgres {
		t.Fatalf("unsupported database type: %s", dbType)
	}

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		envOr("TEST_DB_USER", "adcraft_user"),
		envOr("TEST_DB_PASSWORD", "adcraft_password"),
		envOr("TEST_DB_HOST", "localhost"),
		envOr("TEST_DB_PORT", "5432"),
		envOr("TEST_DB_NAME", "adcraft_test"),
	)

	db, err := sqlx.Open("pgx", connStr)
	if err != nil {
		t.Skipf("test database unavailable: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("test database unavailable: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	store := Store{db: db, logger: observability.NewLogger()}
	if _, err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return &TestDB{db: db, Store: store}
}

// Truncate empties the given tables, or every table when none are named
func (tdb *TestDB) Truncate(t *testing.T, tables ...string) {
	t.Helper()
	if len(tables) == 0 {
		tables = resetOrder
	}
	for _, table := range tables {
		if _, err := tdb.db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			t.Fatalf("failed to truncate table %s: %v", table, err)
		}
	}
}

// MustExec executes SQL and fails the test if there's an error
func (tdb *TestDB) MustExec(t *testing.T, query string, args ...interface{}) {
	t.Helper()
	if _, err := tdb.db.Exec(query, args...); err != nil {
		t.Fatalf("failed to execute SQL: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

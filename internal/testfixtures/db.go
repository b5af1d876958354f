// Package testfixtures provides shared helpers for tests that need a real
// SQL store.  It is imported from _test.go files only.
package testfixtures

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/iliyamo/cinema-ticketing/internal/database"
)

// OpenSQLite opens a fresh SQLite database in a temp dir with the
// application schema applied.  The database is closed when the test ends.
func OpenSQLite(tb testing.TB) (*sql.DB, database.Dialect) {
	tb.Helper()

	db, dialect, err := database.Open(database.Options{
		Driver: "sqlite",
		Name:   filepath.Join(tb.TempDir(), "cinema.db"),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	tb.Cleanup(func() { _ = db.Close() })

	if err := database.EnsureSchema(context.Background(), db, dialect); err != nil {
		tb.Fatalf("ensure schema: %v", err)
	}
	return db, dialect
}

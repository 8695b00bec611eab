// Package testutil provides shared helpers for package tests.
package testutil

import (
	"database/sql"
	"testing"

	"github.com/avelina-cafes/cafewifi/internal/database"
)

// OpenDB opens a named in-memory SQLite database with the schema applied.
// The shared cache keeps the database alive for the lifetime of the
// connection pool; distinct names give tests isolated databases. The
// handle is closed via t.Cleanup.
func OpenDB(t *testing.T, name string) *sql.DB {
	t.Helper()
	db, err := database.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

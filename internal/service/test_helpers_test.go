package service_test

import (
	"database/sql"
	"math"
	"path/filepath"
	"testing"

	"github.com/saadjs/dietgoals/internal/db"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dietgoals.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func floatPtr(v float64) *float64 {
	return &v
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

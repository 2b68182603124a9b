package data

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitDuckDB(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := InitDuckDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize DB: %v", err)
	}
	defer db.Close()

	var tableCount int
	err = db.QueryRow(`SELECT COUNT(*) FROM information_schema.tables WHERE table_name IN ('preferences', 'progress')`).Scan(&tableCount)
	if err != nil {
		t.Fatalf("Failed to query tables: %v", err)
	}

	if tableCount != 2 {
		t.Errorf("Expected 2 tables, got %d", tableCount)
	}
}

func TestInitDuckDBCreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	db, err := InitDuckDB(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize DB with nested path: %v", err)
	}
	defer db.Close()

	if _, err := os.Stat(filepath.Dir(dbPath)); os.IsNotExist(err) {
		t.Error("DB directory was not created")
	}
}

func TestInitDuckDBIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	for i := 0; i < 2; i++ {
		db, err := InitDuckDB(dbPath)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		db.Close()
	}
}

package db_test

import (
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/example/moviedq/internal/db"
)

func TestOpen_AppliesMigrations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "moviedq.db")

	database, err := db.Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	for _, table := range []string{"movies", "genres", "keywords", "movie_genres", "movie_keywords", "audit_log", "movies_archive"} {
		var name string
		err := database.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Errorf("expected table %s: %v", table, err)
		}
	}

	var version int
	if err := database.QueryRow("SELECT version FROM schema_migrations").Scan(&version); err != nil {
		t.Fatalf("failed to read migration version: %v", err)
	}
	if version != 2 {
		t.Errorf("expected schema version 2, got %d", version)
	}

	if err := db.Close(database); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Reopening an up-to-date store is a no-op.
	database, err = db.Open(path, zap.NewNop())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if err := db.Close(database); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestOpen_ForeignKeysEnforced(t *testing.T) {
	database, err := db.Open(filepath.Join(t.TempDir(), "moviedq.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close(database)

	_, err = database.Exec("INSERT INTO movie_genres (movie_id, genre_id) VALUES (99, 99)")
	if err == nil || !strings.Contains(err.Error(), "FOREIGN KEY") {
		t.Errorf("expected foreign key violation, got %v", err)
	}
}

func TestGetSchemaSQL(t *testing.T) {
	schema := db.GetSchemaSQL()

	for _, want := range []string{"CREATE TABLE IF NOT EXISTS movies", "CREATE TABLE IF NOT EXISTS movies_archive", "trg_movies_archive_no_update"} {
		if !strings.Contains(schema, want) {
			t.Errorf("expected schema to contain %q", want)
		}
	}
	if strings.Contains(schema, "DROP TABLE") {
		t.Error("expected only up migrations")
	}
}

func TestClose_Nil(t *testing.T) {
	if err := db.Close(nil); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

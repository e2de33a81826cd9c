// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative migrations, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/moviedq/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// The pool is pinned to one connection so every query sees the same memory database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedMovie inserts a movie with the given identity and returns its surrogate id.
// externalID may be nil; releaseDate may be empty.
func seedMovie(t *testing.T, db *sql.DB, externalID any, title, releaseDate string) int64 {
	t.Helper()

	var date any
	if releaseDate != "" {
		date = releaseDate
	}

	result, err := db.Exec(
		"INSERT INTO movies (external_id, title, release_date) VALUES (?, ?, ?)",
		externalID, title, date,
	)
	if err != nil {
		t.Fatalf("failed to seed movie: %v", err)
	}
	id, _ := result.LastInsertId()
	return id
}

// seedGenreLink creates a genre (if absent) and links it to a movie.
func seedGenreLink(t *testing.T, db *sql.DB, movieID int64, genre string) {
	t.Helper()

	if _, err := db.Exec("INSERT OR IGNORE INTO genres (name) VALUES (?)", genre); err != nil {
		t.Fatalf("failed to seed genre: %v", err)
	}
	_, err := db.Exec(
		"INSERT INTO movie_genres (movie_id, genre_id) SELECT ?, id FROM genres WHERE name = ?",
		movieID, genre,
	)
	if err != nil {
		t.Fatalf("failed to seed genre link: %v", err)
	}
}

// countRows returns COUNT(*) of a query.
func countRows(t *testing.T, db *sql.DB, query string, args ...any) int64 {
	t.Helper()

	var n int64
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	return n
}

// setupEmptyDB creates an in-memory database without any schema.
func setupEmptyDB(t *testing.T) *sql.DB {
	t.Helper()

	emptyDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open empty db: %v", err)
	}
	emptyDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		emptyDB.Close()
	})

	return emptyDB
}

// Package db opens the moviedq SQLite store and keeps its schema current.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Open opens (creating if needed) the database at path and applies pending migrations.
// The returned handle is owned by the caller, who must Close it on every exit path.
func Open(path string, logger *zap.Logger) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	database, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single writer; also keeps per-connection pragmas stable.
	database.SetMaxOpenConns(1)

	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := RunMigrations(database, logger); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// Close flushes the WAL (if any) and closes the connection.
func Close(database *sql.DB) error {
	if database == nil {
		return nil
	}
	// Best effort: a checkpoint failure must not keep the handle open.
	_, _ = database.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
	return database.Close()
}

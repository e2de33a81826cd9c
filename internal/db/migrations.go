package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies every pending embedded migration to database.
//
// The migrate instance is intentionally not closed: closing it would close
// the caller's *sql.DB through the sqlite3 driver.
func RunMigrations(database *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	defer source.Close()

	driver, err := sqlite3.WithInstance(database, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return fmt.Errorf("failed to initialize migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Debug("schema migrated", zap.Uint("version", version), zap.Bool("dirty", dirty))

	return nil
}

// GetSchemaSQL returns the concatenated up-migrations for use by tests.
//
// # Schema Drift Protection
//
// The embedded migrations are the SINGLE SOURCE OF TRUTH for the schema.
// Tests open an in-memory database and execute this script instead of
// hardcoding CREATE TABLE statements, so a column referenced by a
// repository but missing from the migrations fails with "no such column".
func GetSchemaSQL() string {
	entries, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	if err != nil {
		panic(fmt.Sprintf("invalid migrations glob: %v", err))
	}
	sort.Strings(entries)

	var b strings.Builder
	for _, name := range entries {
		data, err := migrationsFS.ReadFile(name)
		if err != nil {
			panic(fmt.Sprintf("failed to read embedded migration %s: %v", name, err))
		}
		b.Write(data)
		b.WriteString("\n")
	}
	return b.String()
}

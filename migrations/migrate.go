// Package migrations embeds the goose SQL migrations for both halves of
// the system: the PostgreSQL schema behind the sync server and the
// SQLite schema kept on every field device.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed server/*.sql client/*.sql
var embedMigrations embed.FS

// MigrateServer applies the PostgreSQL migrations.
func MigrateServer(db *sql.DB) error {
	return migrate(db, "pgx", "server")
}

// MigrateClient applies the SQLite migrations on a field device.
func MigrateClient(db *sql.DB) error {
	return migrate(db, "sqlite3", "client")
}

func migrate(db *sql.DB, dialect, dir string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

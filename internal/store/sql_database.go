package store

import (
	"database/sql"

	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/migrations"
)

// DB wraps the raw connection together with the driver-specific error
// classifier. The classifier is nil for SQLite: on a single-writer local
// database there is nothing transient worth retrying.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// MigrateServer applies the embedded PostgreSQL migrations.
func (db *DB) MigrateServer() error {
	return migrations.MigrateServer(db.DB)
}

// MigrateClient applies the embedded SQLite migrations.
func (db *DB) MigrateClient() error {
	return migrations.MigrateClient(db.DB)
}

// Retryable reports whether err is classified as transient for the
// underlying driver. Callers use it to distinguish "try again later"
// failures from permanent ones.
func (db *DB) Retryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == Retryable
}

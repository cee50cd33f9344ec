package store

import (
	"context"
	"fmt"

	"github.com/agrostack/fieldsync/internal/config"
	"github.com/agrostack/fieldsync/internal/logger"
)

// Storages groups the server-side repositories into a single value that
// is passed to the service layer.
type Storages struct {
	Users       UserRepository
	Records     RecordRepository
	SyncLog     SyncLogRepository
	Attachments AttachmentRepository

	db *DB
}

// NewStorages initialises the server storage layer: it connects to
// PostgreSQL, applies pending migrations, and wires up all repositories.
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectPostgres(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err := db.MigrateServer(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		Users:       NewUserRepository(db, log),
		Records:     NewRecordRepository(db, log),
		SyncLog:     NewSyncLogRepository(db, log),
		Attachments: NewAttachmentRepository(db, log),
		db:          db,
	}, nil
}

// Retryable reports whether err is a transient database failure.
func (s *Storages) Retryable(err error) bool {
	return s.db.Retryable(err)
}

// Close releases the underlying database connection pool.
func (s *Storages) Close() error {
	return s.db.Close()
}

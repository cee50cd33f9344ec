package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/models"
)

// syncStateRepository is the SQLite-backed implementation of
// [SyncStateRepository].
type syncStateRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncStateRepository constructs a [SyncStateRepository] backed by the
// client database.
func NewSyncStateRepository(db *DB, logger *logger.Logger) SyncStateRepository {
	return &syncStateRepository{
		DB:     db,
		logger: logger,
	}
}

// Get returns the pull watermark for one entity type. A type that has never
// been pulled yields the zero time, which makes the next pull fetch
// everything.
func (r *syncStateRepository) Get(ctx context.Context, entityType models.EntityType) (time.Time, error) {
	log := logger.FromContext(ctx)

	var lastPullAt sql.NullTime
	err := r.DB.QueryRowContext(ctx, getSyncState, entityType).Scan(&lastPullAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, nil
		}
		log.Err(err).
			Str("func", "syncStateRepository.Get").
			Str("entity_type", string(entityType)).
			Msg("failed to read sync state")
		return time.Time{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return lastPullAt.Time, nil
}

// Set advances the pull watermark for one entity type.
func (r *syncStateRepository) Set(ctx context.Context, entityType models.EntityType, lastPullAt time.Time) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, setSyncState, entityType, lastPullAt)
	if err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.Set").
			Str("entity_type", string(entityType)).
			Msg("failed to write sync state")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// All returns the watermark of every entity type that has been pulled at
// least once.
func (r *syncStateRepository) All(ctx context.Context) (map[models.EntityType]time.Time, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, allSyncState)
	if err != nil {
		log.Err(err).
			Str("func", "syncStateRepository.All").
			Msg("failed to execute query for listing sync state")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	watermarks := make(map[models.EntityType]time.Time)

	for rows.Next() {
		var (
			entityType models.EntityType
			lastPullAt sql.NullTime
		)
		if scanErr := rows.Scan(&entityType, &lastPullAt); scanErr != nil {
			log.Err(scanErr).Msg("failed to scan sync state row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		watermarks[entityType] = lastPullAt.Time
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Msg("failure during sync state rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return watermarks, nil
}

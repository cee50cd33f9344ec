package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/models"
)

// localSyncLogRepository is the SQLite-backed implementation of
// [LocalSyncLogRepository]. Entries are append-only: nothing ever updates or
// deletes a row once CompletedAt is written.
type localSyncLogRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalSyncLogRepository constructs a [LocalSyncLogRepository] backed by
// the client database.
func NewLocalSyncLogRepository(db *DB, logger *logger.Logger) LocalSyncLogRepository {
	return &localSyncLogRepository{
		DB:     db,
		logger: logger,
	}
}

// Append stores one completed sync phase and returns the entry with its
// assigned id.
func (r *localSyncLogRepository) Append(ctx context.Context, entry models.SyncLogEntry) (models.SyncLogEntry, error) {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, appendLocalSyncLog,
		entry.Direction,
		entry.RecordsProcessed,
		entry.RecordsFailed,
		entry.Status,
		entry.Error,
		entry.StartedAt,
		entry.CompletedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "localSyncLogRepository.Append").
			Str("direction", string(entry.Direction)).
			Msg("failed to append sync log entry")
		return models.SyncLogEntry{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	entry.ID, err = result.LastInsertId()
	if err != nil {
		log.Err(err).
			Str("func", "localSyncLogRepository.Append").
			Msg("failed to read inserted sync log id")
		return models.SyncLogEntry{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entry, nil
}

// List returns sync log entries newest first.
func (r *localSyncLogRepository) List(ctx context.Context, limit int, offset int) ([]models.SyncLogEntry, error) {
	log := logger.FromContext(ctx)

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.DB.QueryContext(ctx, listLocalSyncLog, limit, offset)
	if err != nil {
		log.Err(err).
			Str("func", "localSyncLogRepository.List").
			Msg("failed to execute query for listing sync log")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.SyncLogEntry, 0, limit)

	for rows.Next() {
		entry, scanErr := scanSyncLogEntry(rows)
		if scanErr != nil {
			log.Err(scanErr).Msg("failed to scan sync log row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Msg("failure during sync log rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return entries, nil
}

// Last returns the most recent entry for one direction. Returns
// [ErrSyncLogEmpty] when that direction never ran.
func (r *localSyncLogRepository) Last(ctx context.Context, direction models.SyncDirection) (models.SyncLogEntry, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, lastLocalSyncLog, direction)

	entry, err := scanSyncLogEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SyncLogEntry{}, ErrSyncLogEmpty
		}
		log.Err(err).
			Str("func", "localSyncLogRepository.Last").
			Str("direction", string(direction)).
			Msg("failed to scan sync log row")
		return models.SyncLogEntry{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return entry, nil
}

func scanSyncLogEntry(row rowScanner) (models.SyncLogEntry, error) {
	var entry models.SyncLogEntry

	err := row.Scan(
		&entry.ID,
		&entry.Direction,
		&entry.RecordsProcessed,
		&entry.RecordsFailed,
		&entry.Status,
		&entry.Error,
		&entry.StartedAt,
		&entry.CompletedAt,
	)
	if err != nil {
		return models.SyncLogEntry{}, err
	}

	return entry, nil
}

package store

import (
	"context"
	"fmt"

	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/models"
)

// syncLogRepository is the PostgreSQL-backed implementation of
// [SyncLogRepository]. The sync log is append-only: rows are written once
// per completed push or pull pass and never updated.
type syncLogRepository struct {
	*DB
	logger *logger.Logger
}

// NewSyncLogRepository constructs a [SyncLogRepository] backed by the
// provided database connection and logger.
func NewSyncLogRepository(db *DB, logger *logger.Logger) SyncLogRepository {
	return &syncLogRepository{
		DB:     db,
		logger: logger,
	}
}

// Append inserts one audit entry and returns it with the server-assigned ID.
func (s *syncLogRepository) Append(ctx context.Context, entry models.SyncLogEntry) (models.SyncLogEntry, error) {
	log := logger.FromContext(ctx)

	err := s.DB.QueryRowContext(ctx, appendSyncLog,
		entry.UserID,
		entry.Direction,
		entry.RecordsProcessed,
		entry.RecordsFailed,
		entry.Status,
		entry.Error,
		entry.StartedAt,
		entry.CompletedAt,
	).Scan(&entry.ID)
	if err != nil {
		log.Err(err).
			Str("func", "syncLogRepository.Append").
			Int64("user_id", entry.UserID).
			Str("direction", string(entry.Direction)).
			Msg("failed to append sync log entry")
		return models.SyncLogEntry{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entry, nil
}

// List returns the newest entries first, paginated by limit and offset.
func (s *syncLogRepository) List(ctx context.Context, userID int64, limit, offset int) ([]models.SyncLogEntry, error) {
	log := logger.FromContext(ctx)

	rows, err := s.DB.QueryContext(ctx, listSyncLog, userID, limit, offset)
	if err != nil {
		log.Err(err).
			Str("func", "syncLogRepository.List").
			Int64("user_id", userID).
			Msg("failed to execute query for listing sync log")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.SyncLogEntry, 0, limit)

	for rows.Next() {
		var entry models.SyncLogEntry

		scanErr := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.Direction,
			&entry.RecordsProcessed,
			&entry.RecordsFailed,
			&entry.Status,
			&entry.Error,
			&entry.StartedAt,
			&entry.CompletedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "syncLogRepository.List").
				Int64("user_id", userID).
				Msg("failed to scan sync log row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "syncLogRepository.List").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return entries, nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/models"
)

// localRecordRepository is the SQLite-backed implementation of
// [LocalRecordRepository]. Every row carries the synchronization metadata
// columns (sync_status, base_version, last_synced_at, local_changes) next to
// the entity payload, so a single table answers both listing and sync needs.
type localRecordRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalRecordRepository constructs a [LocalRecordRepository] backed by
// the client database.
func NewLocalRecordRepository(db *DB, logger *logger.Logger) LocalRecordRepository {
	return &localRecordRepository{
		DB:     db,
		logger: logger,
	}
}

// Upsert inserts the row or replaces an existing one for the same entity.
// The original created_at is kept on replace; the returned record carries
// the surrogate id and creation time actually stored.
func (r *localRecordRepository) Upsert(ctx context.Context, record models.LocalRecord) (models.LocalRecord, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, upsertLocalRecord,
		record.EntityType,
		record.EntityID,
		record.Name,
		normalizePayload(record.Payload),
		record.Version,
		record.Deleted,
		record.CreatedAt,
		record.UpdatedAt,
		record.SyncStatus,
		record.BaseVersion,
		record.LastSyncedAt,
		[]byte(record.LocalChanges),
	)

	if err := row.Scan(&record.ID, &record.CreatedAt); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.Upsert").
			Str("entity_type", string(record.EntityType)).
			Str("entity_id", record.EntityID).
			Msg("failed to upsert local record")
		return models.LocalRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return record, nil
}

// Get fetches a single local record. Returns [ErrRecordNotFound] when no
// row matches.
func (r *localRecordRepository) Get(ctx context.Context, entityType models.EntityType, entityID string) (models.LocalRecord, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getLocalRecord, entityType, entityID)

	rec, err := scanLocalRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.LocalRecord{}, ErrRecordNotFound
		}
		log.Err(err).
			Str("func", "localRecordRepository.Get").
			Str("entity_type", string(entityType)).
			Str("entity_id", entityID).
			Msg("failed to scan local record row")
		return models.LocalRecord{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return rec, nil
}

// List returns the local records matching query, ordered by updated_at.
func (r *localRecordRepository) List(ctx context.Context, query models.RecordQuery) ([]models.LocalRecord, error) {
	log := logger.FromContext(ctx)

	listSQL, listArgs, err := buildListLocalRecordsQuery(query)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.List").
			Msg("failed to build list query")
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.List").
			Msg("failed to execute query for listing local records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectLocalRecords(rows, log)
}

// ListDirty returns every row whose edits the server has not acknowledged
// yet, oldest first.
func (r *localRecordRepository) ListDirty(ctx context.Context) ([]models.LocalRecord, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listDirtyRecords)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.ListDirty").
			Msg("failed to execute query for listing dirty records")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectLocalRecords(rows, log)
}

// MarkSynced records a server acknowledgement: the row takes the assigned
// version as both version and base_version, turns synced, and drops its
// tracked local changes.
func (r *localRecordRepository) MarkSynced(ctx context.Context, entityType models.EntityType, entityID string, version int64, syncedAt time.Time) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, markRecordSynced, version, version, syncedAt, entityType, entityID)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.MarkSynced").
			Str("entity_type", string(entityType)).
			Str("entity_id", entityID).
			Msg("failed to mark record synced")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireRowAffected(result, ErrRecordNotFound)
}

// MarkStatus sets the row's sync status without touching anything else.
func (r *localRecordRepository) MarkStatus(ctx context.Context, entityType models.EntityType, entityID string, status models.SyncStatus) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, markRecordStatus, status, entityType, entityID)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.MarkStatus").
			Str("entity_type", string(entityType)).
			Str("entity_id", entityID).
			Msg("failed to mark record status")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireRowAffected(result, ErrRecordNotFound)
}

// Delete removes the row entirely. Used when a record created offline is
// deleted before it ever reached the server, and when a server-side
// deletion is replicated locally.
func (r *localRecordRepository) Delete(ctx context.Context, entityType models.EntityType, entityID string) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deleteLocalRecord, entityType, entityID)
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.Delete").
			Str("entity_type", string(entityType)).
			Str("entity_id", entityID).
			Msg("failed to delete local record")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireRowAffected(result, ErrRecordNotFound)
}

// Count returns the number of live rows, optionally narrowed to one entity
// type. Soft-deleted rows are excluded.
func (r *localRecordRepository) Count(ctx context.Context, entityType models.EntityType) (int64, error) {
	log := logger.FromContext(ctx)

	var (
		count int64
		err   error
	)
	if entityType == "" {
		err = r.DB.QueryRowContext(ctx, countLocalRecords).Scan(&count)
	} else {
		err = r.DB.QueryRowContext(ctx, countLocalRecordsByType, entityType).Scan(&count)
	}
	if err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.Count").
			Str("entity_type", string(entityType)).
			Msg("failed to count local records")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// OldestUnsynced returns the updated_at of the longest-waiting row the server
// has not acknowledged. The zero time means every row is synced.
func (r *localRecordRepository) OldestUnsynced(ctx context.Context) (time.Time, error) {
	log := logger.FromContext(ctx)

	var oldest sql.NullTime
	if err := r.DB.QueryRowContext(ctx, oldestUnsyncedRecord).Scan(&oldest); err != nil {
		log.Err(err).
			Str("func", "localRecordRepository.OldestUnsynced").
			Msg("failed to query oldest unsynced record")
		return time.Time{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if !oldest.Valid {
		return time.Time{}, nil
	}

	return oldest.Time, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanLocalRecord reads one full local record row. local_changes is read
// through a plain byte slice because the column is nullable.
func scanLocalRecord(row rowScanner) (models.LocalRecord, error) {
	var (
		rec          models.LocalRecord
		localChanges []byte
	)

	err := row.Scan(
		&rec.ID,
		&rec.EntityType,
		&rec.EntityID,
		&rec.Name,
		&rec.Payload,
		&rec.Version,
		&rec.Deleted,
		&rec.CreatedAt,
		&rec.UpdatedAt,
		&rec.SyncStatus,
		&rec.BaseVersion,
		&rec.LastSyncedAt,
		&localChanges,
	)
	if err != nil {
		return models.LocalRecord{}, err
	}

	rec.LocalChanges = json.RawMessage(localChanges)

	return rec, nil
}

func collectLocalRecords(rows *sql.Rows, log *logger.Logger) ([]models.LocalRecord, error) {
	records := make([]models.LocalRecord, 0, 50)

	for rows.Next() {
		rec, err := scanLocalRecord(rows)
		if err != nil {
			log.Err(err).Msg("failed to scan local record row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Msg("failure during local record rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return records, nil
}

// normalizePayload keeps the NOT NULL payload column satisfied for rows,
// such as replicated tombstones, that arrive without a document.
func normalizePayload(payload json.RawMessage) []byte {
	if len(payload) == 0 {
		return []byte("{}")
	}
	return []byte(payload)
}

// requireRowAffected converts a zero-row update into notFound.
func requireRowAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

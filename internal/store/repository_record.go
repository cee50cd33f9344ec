// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"

	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/models"
)

// recordRepository is the PostgreSQL-backed implementation of
// [RecordRepository]. It executes all canonical-record operations against
// the "records" table using the embedded [*DB] connection.
//
// Writes enforce optimistic concurrency through CTE queries that return
// both the updated row and the version found before the update, so the
// repository can tell a missing record from a stale base version.
type recordRepository struct {
	*DB
	logger *logger.Logger
}

// NewRecordRepository constructs a [RecordRepository] backed by the
// provided database connection and logger.
func NewRecordRepository(db *DB, logger *logger.Logger) RecordRepository {
	return &recordRepository{
		DB:     db,
		logger: logger,
	}
}

// GetRecord fetches a single record by owner and entity identity.
// Returns [ErrRecordNotFound] when no row matches.
func (r *recordRepository) GetRecord(ctx context.Context, userID int64, entityType models.EntityType, entityID string) (models.Record, error) {
	log := logger.FromContext(ctx)

	var rec models.Record
	row := r.DB.QueryRowContext(ctx, getRecord, userID, entityType, entityID)

	err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&rec.EntityType,
		&rec.EntityID,
		&rec.Name,
		&rec.Payload,
		&rec.Version,
		&rec.Deleted,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Record{}, ErrRecordNotFound
		}
		log.Err(err).
			Str("func", "recordRepository.GetRecord").
			Int64("user_id", userID).
			Str("entity_type", string(entityType)).
			Str("entity_id", entityID).
			Msg("failed to scan record row")
		return models.Record{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return rec, nil
}

// ListRecords returns the records matching query together with the total
// number of matches before pagination. Both queries are built dynamically
// from the same filter set so the count always agrees with the page.
func (r *recordRepository) ListRecords(ctx context.Context, userID int64, query models.RecordQuery) ([]models.Record, int64, error) {
	log := logger.FromContext(ctx)

	listSQL, listArgs, err := buildListRecordsQuery(userID, query)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListRecords").
			Int64("user_id", userID).
			Msg("failed to build list query")
		return nil, 0, err
	}

	rows, err := r.DB.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListRecords").
			Int64("user_id", userID).
			Msg("failed to execute query for listing records")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.Record, 0, 50)

	for rows.Next() {
		var rec models.Record

		scanErr := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.EntityType,
			&rec.EntityID,
			&rec.Name,
			&rec.Payload,
			&rec.Version,
			&rec.Deleted,
			&rec.CreatedAt,
			&rec.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "recordRepository.ListRecords").
				Int64("user_id", userID).
				Msg("failed to scan record row")
			return nil, 0, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		records = append(records, rec)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "recordRepository.ListRecords").
			Int64("user_id", userID).
			Msg("error occurred during rows iteration")
		return nil, 0, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	countSQL, countArgs, err := buildCountRecordsQuery(userID, query)
	if err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListRecords").
			Int64("user_id", userID).
			Msg("failed to build count query")
		return nil, 0, err
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		log.Err(err).
			Str("func", "recordRepository.ListRecords").
			Int64("user_id", userID).
			Msg("failed to count records")
		return nil, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return records, total, nil
}

// InsertRecord persists a brand-new record at version 1 and returns it
// with the server-assigned fields populated.
//
// A unique_violation on (user_id, entity_type, entity_id) is mapped to
// [ErrRecordAlreadyExists]: the entity was created concurrently by
// another device, which the caller reports as a conflict.
func (r *recordRepository) InsertRecord(ctx context.Context, record models.Record) (models.Record, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, insertRecord,
		record.UserID,
		record.EntityType,
		record.EntityID,
		record.Name,
		record.Payload,
	)

	err := row.Scan(&record.ID, &record.Version, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			log.Warn().
				Str("func", "recordRepository.InsertRecord").
				Int64("user_id", record.UserID).
				Str("entity_type", string(record.EntityType)).
				Str("entity_id", record.EntityID).
				Msg("record already exists")
			return models.Record{}, ErrRecordAlreadyExists
		}
		log.Err(err).
			Str("func", "recordRepository.InsertRecord").
			Int64("user_id", record.UserID).
			Str("entity_id", record.EntityID).
			Msg("failed to insert record")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	record.Deleted = false
	return record, nil
}

// UpdateRecord overwrites the record payload when baseVersion still
// matches the stored version, bumping the version by one.
//
// Outcome discrimination mirrors the CTE result:
//   - zero rows: record does not exist ([ErrRecordNotFound])
//   - row with NULL updated columns: stale base version ([ErrVersionConflict])
//   - row with values: success
func (r *recordRepository) UpdateRecord(ctx context.Context, record models.Record, baseVersion int64) (models.Record, error) {
	log := logger.FromContext(ctx)

	var (
		updatedID      *int64
		updatedVersion *int64
		updatedAt      *time.Time
		currentVersion int64
	)

	row := r.DB.QueryRowContext(ctx, updateRecord,
		record.UserID,
		record.EntityType,
		record.EntityID,
		record.Name,
		record.Payload,
		baseVersion,
	)

	err := row.Scan(&updatedID, &updatedVersion, &updatedAt, &currentVersion)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().
				Str("func", "recordRepository.UpdateRecord").
				Str("entity_id", record.EntityID).
				Msg("record not found")
			return models.Record{}, ErrRecordNotFound
		}
		log.Err(err).
			Str("func", "recordRepository.UpdateRecord").
			Str("entity_id", record.EntityID).
			Msg("failed to execute update query")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	// record found, but UPDATE did not apply: version mismatch
	if updatedID == nil {
		log.Warn().
			Str("func", "recordRepository.UpdateRecord").
			Str("entity_id", record.EntityID).
			Int64("db_version", currentVersion).
			Int64("provided_version", baseVersion).
			Msg("optimistic lock failed: version mismatch")
		return models.Record{}, ErrVersionConflict
	}

	record.ID = *updatedID
	record.Version = *updatedVersion
	record.UpdatedAt = *updatedAt
	record.Deleted = false

	return record, nil
}

// SoftDeleteRecord marks the record deleted and bumps its version,
// keeping the row as a tombstone for other devices to pull. Outcome
// discrimination is identical to [recordRepository.UpdateRecord].
func (r *recordRepository) SoftDeleteRecord(ctx context.Context, userID int64, entityType models.EntityType, entityID string, baseVersion int64) (models.Record, error) {
	log := logger.FromContext(ctx)

	var (
		updatedID      *int64
		updatedVersion *int64
		updatedAt      *time.Time
		currentVersion int64
	)

	row := r.DB.QueryRowContext(ctx, softDeleteRecord, userID, entityType, entityID, baseVersion)

	err := row.Scan(&updatedID, &updatedVersion, &updatedAt, &currentVersion)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Warn().
				Str("func", "recordRepository.SoftDeleteRecord").
				Str("entity_id", entityID).
				Msg("record not found")
			return models.Record{}, ErrRecordNotFound
		}
		log.Err(err).
			Str("func", "recordRepository.SoftDeleteRecord").
			Str("entity_id", entityID).
			Msg("failed to execute soft delete query")
		return models.Record{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if updatedID == nil {
		log.Warn().
			Str("func", "recordRepository.SoftDeleteRecord").
			Str("entity_id", entityID).
			Int64("db_version", currentVersion).
			Int64("provided_version", baseVersion).
			Msg("optimistic lock failed: version mismatch on delete")
		return models.Record{}, ErrVersionConflict
	}

	return models.Record{
		ID:         *updatedID,
		UserID:     userID,
		EntityType: entityType,
		EntityID:   entityID,
		Version:    *updatedVersion,
		Deleted:    true,
		UpdatedAt:  *updatedAt,
	}, nil
}

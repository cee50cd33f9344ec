// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/models"
)

// conflictRepository is the SQLite-backed implementation of
// [ConflictRepository]. Conflict payloads and the conflicting field list are
// stored as JSON text.
type conflictRepository struct {
	*DB
	logger *logger.Logger
}

// NewConflictRepository constructs a [ConflictRepository] backed by the
// client database.
func NewConflictRepository(db *DB, logger *logger.Logger) ConflictRepository {
	return &conflictRepository{
		DB:     db,
		logger: logger,
	}
}

// Upsert stores the conflict, replacing any stale conflict already recorded
// for the same entity.
func (r *conflictRepository) Upsert(ctx context.Context, conflict models.ConflictData) error {
	log := logger.FromContext(ctx)

	fields, err := marshalConflictFields(conflict.ConflictFields)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.Upsert").
			Str("conflict_id", conflict.ID).
			Msg("failed to marshal conflict fields")
		return err
	}

	_, err = r.DB.ExecContext(ctx, upsertConflict,
		conflict.ID,
		conflict.EntityType,
		conflict.EntityID,
		[]byte(conflict.LocalData),
		[]byte(conflict.ServerData),
		conflict.LocalVersion,
		conflict.ServerVersion,
		conflict.LocalTimestamp,
		conflict.ServerTimestamp,
		fields,
		conflict.DetectedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.Upsert").
			Str("conflict_id", conflict.ID).
			Str("entity_type", string(conflict.EntityType)).
			Str("entity_id", conflict.EntityID).
			Msg("failed to upsert conflict")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// Get fetches one conflict by id. Returns [ErrConflictNotFound] when it does
// not exist, which after a resolution is the common case.
func (r *conflictRepository) Get(ctx context.Context, conflictID string) (models.ConflictData, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getConflict, conflictID)

	conflict, err := scanConflict(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ConflictData{}, ErrConflictNotFound
		}
		log.Err(err).
			Str("func", "conflictRepository.Get").
			Str("conflict_id", conflictID).
			Msg("failed to scan conflict row")
		return models.ConflictData{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return conflict, nil
}

// GetForEntity fetches the open conflict for one entity, if any.
func (r *conflictRepository) GetForEntity(ctx context.Context, entityType models.EntityType, entityID string) (models.ConflictData, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getConflictForEntity, entityType, entityID)

	conflict, err := scanConflict(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ConflictData{}, ErrConflictNotFound
		}
		log.Err(err).
			Str("func", "conflictRepository.GetForEntity").
			Str("entity_type", string(entityType)).
			Str("entity_id", entityID).
			Msg("failed to scan conflict row")
		return models.ConflictData{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return conflict, nil
}

// List returns all open conflicts, oldest detection first.
func (r *conflictRepository) List(ctx context.Context) ([]models.ConflictData, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listConflicts)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.List").
			Msg("failed to execute query for listing conflicts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	conflicts := make([]models.ConflictData, 0, 10)

	for rows.Next() {
		conflict, scanErr := scanConflict(rows)
		if scanErr != nil {
			log.Err(scanErr).Msg("failed to scan conflict row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		conflicts = append(conflicts, conflict)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Msg("failure during conflict rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return conflicts, nil
}

// Delete removes one resolved conflict.
func (r *conflictRepository) Delete(ctx context.Context, conflictID string) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deleteConflict, conflictID)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.Delete").
			Str("conflict_id", conflictID).
			Msg("failed to delete conflict")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireRowAffected(result, ErrConflictNotFound)
}

// DeleteForEntity removes whatever conflict the entity has open. Removing a
// missing conflict is not an error.
func (r *conflictRepository) DeleteForEntity(ctx context.Context, entityType models.EntityType, entityID string) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, deleteConflictForEntity, entityType, entityID)
	if err != nil {
		log.Err(err).
			Str("func", "conflictRepository.DeleteForEntity").
			Str("entity_type", string(entityType)).
			Str("entity_id", entityID).
			Msg("failed to delete conflict for entity")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// Count returns the number of open conflicts.
func (r *conflictRepository) Count(ctx context.Context) (int64, error) {
	log := logger.FromContext(ctx)

	var count int64
	if err := r.DB.QueryRowContext(ctx, countConflicts).Scan(&count); err != nil {
		log.Err(err).
			Str("func", "conflictRepository.Count").
			Msg("failed to count conflicts")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

func scanConflict(row rowScanner) (models.ConflictData, error) {
	var (
		conflict        models.ConflictData
		fields          []byte
		localTimestamp  sql.NullTime
		serverTimestamp sql.NullTime
	)

	err := row.Scan(
		&conflict.ID,
		&conflict.EntityType,
		&conflict.EntityID,
		&conflict.LocalData,
		&conflict.ServerData,
		&conflict.LocalVersion,
		&conflict.ServerVersion,
		&localTimestamp,
		&serverTimestamp,
		&fields,
		&conflict.DetectedAt,
	)
	if err != nil {
		return models.ConflictData{}, err
	}

	conflict.LocalTimestamp = localTimestamp.Time
	conflict.ServerTimestamp = serverTimestamp.Time

	if err := json.Unmarshal(fields, &conflict.ConflictFields); err != nil {
		return models.ConflictData{}, fmt.Errorf("error unmarshalling conflict fields: %w", err)
	}

	return conflict, nil
}

func marshalConflictFields(fields []string) ([]byte, error) {
	if fields == nil {
		return []byte("[]"), nil
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("error marshalling conflict fields: %w", err)
	}
	return data, nil
}

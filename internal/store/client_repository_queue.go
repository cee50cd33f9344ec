// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

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

// queueRepository is the SQLite-backed implementation of [QueueRepository].
// The UNIQUE (entity_type, entity_id) constraint on the table enforces the
// one-operation-per-entity invariant; callers coalesce before inserting.
type queueRepository struct {
	*DB
	logger *logger.Logger
}

// NewQueueRepository constructs a [QueueRepository] backed by the client
// database.
func NewQueueRepository(db *DB, logger *logger.Logger) QueueRepository {
	return &queueRepository{
		DB:     db,
		logger: logger,
	}
}

// GetForEntity fetches the queued operation for one entity. Returns
// [ErrOperationNotFound] when the entity has nothing queued.
func (r *queueRepository) GetForEntity(ctx context.Context, entityType models.EntityType, entityID string) (models.PendingSyncOperation, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getPendingOperationForEntity, entityType, entityID)

	op, err := scanPendingOperation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PendingSyncOperation{}, ErrOperationNotFound
		}
		log.Err(err).
			Str("func", "queueRepository.GetForEntity").
			Str("entity_type", string(entityType)).
			Str("entity_id", entityID).
			Msg("failed to scan pending operation row")
		return models.PendingSyncOperation{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return op, nil
}

// Insert enqueues a fresh operation.
func (r *queueRepository) Insert(ctx context.Context, op models.PendingSyncOperation) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, insertPendingOperation,
		op.ID,
		op.EntityType,
		op.EntityID,
		op.Operation,
		[]byte(op.Payload),
		op.BaseVersion,
		op.RetryCount,
		op.LastError,
		op.CreatedAt,
		op.UpdatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.Insert").
			Str("operation_id", op.ID).
			Str("entity_type", string(op.EntityType)).
			Str("entity_id", op.EntityID).
			Msg("failed to insert pending operation")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// Update rewrites a queued operation in place. created_at is deliberately
// not part of the update so the operation keeps its FIFO position.
func (r *queueRepository) Update(ctx context.Context, op models.PendingSyncOperation) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, updatePendingOperation,
		op.Operation,
		[]byte(op.Payload),
		op.BaseVersion,
		op.RetryCount,
		op.LastError,
		op.UpdatedAt,
		op.ID,
	)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.Update").
			Str("operation_id", op.ID).
			Msg("failed to update pending operation")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireRowAffected(result, ErrOperationNotFound)
}

// Delete dequeues one operation by id.
func (r *queueRepository) Delete(ctx context.Context, operationID string) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deletePendingOperation, operationID)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.Delete").
			Str("operation_id", operationID).
			Msg("failed to delete pending operation")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireRowAffected(result, ErrOperationNotFound)
}

// DeleteForEntity dequeues whatever the entity has queued. Removing a
// missing operation is not an error.
func (r *queueRepository) DeleteForEntity(ctx context.Context, entityType models.EntityType, entityID string) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, deletePendingOperationForEntity, entityType, entityID)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.DeleteForEntity").
			Str("entity_type", string(entityType)).
			Str("entity_id", entityID).
			Msg("failed to delete pending operations for entity")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// ListFIFO returns all queued operations in first-enqueue order, the order
// the push phase replays them in.
func (r *queueRepository) ListFIFO(ctx context.Context) ([]models.PendingSyncOperation, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listPendingOperationsFIFO)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.ListFIFO").
			Msg("failed to execute query for listing pending operations")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	operations := make([]models.PendingSyncOperation, 0, 20)

	for rows.Next() {
		op, scanErr := scanPendingOperation(rows)
		if scanErr != nil {
			log.Err(scanErr).Msg("failed to scan pending operation row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		operations = append(operations, op)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Msg("failure during pending operation rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return operations, nil
}

// SetRetry records a failed replay attempt.
func (r *queueRepository) SetRetry(ctx context.Context, operationID string, retryCount int, lastError string) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, setPendingOperationRetry, retryCount, lastError, time.Now().UTC(), operationID)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.SetRetry").
			Str("operation_id", operationID).
			Msg("failed to set pending operation retry state")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireRowAffected(result, ErrOperationNotFound)
}

// ResetRetry re-arms a parked operation so the next sync pass replays it
// again from a clean slate.
func (r *queueRepository) ResetRetry(ctx context.Context, operationID string) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, resetPendingOperationRetry, time.Now().UTC(), operationID)
	if err != nil {
		log.Err(err).
			Str("func", "queueRepository.ResetRetry").
			Str("operation_id", operationID).
			Msg("failed to reset pending operation retry state")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireRowAffected(result, ErrOperationNotFound)
}

// Counts splits the queue into operations still eligible for replay and
// operations parked after exhausting maxAttempts. A non-positive
// maxAttempts means nothing ever parks.
func (r *queueRepository) Counts(ctx context.Context, maxAttempts int) (int64, int64, error) {
	log := logger.FromContext(ctx)

	var total int64
	if err := r.DB.QueryRowContext(ctx, countQueueTotal).Scan(&total); err != nil {
		log.Err(err).
			Str("func", "queueRepository.Counts").
			Msg("failed to count pending operations")
		return 0, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if maxAttempts <= 0 {
		return total, 0, nil
	}

	var parked int64
	if err := r.DB.QueryRowContext(ctx, countQueueParked, maxAttempts).Scan(&parked); err != nil {
		log.Err(err).
			Str("func", "queueRepository.Counts").
			Msg("failed to count parked operations")
		return 0, 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return total - parked, parked, nil
}

func scanPendingOperation(row rowScanner) (models.PendingSyncOperation, error) {
	var (
		op      models.PendingSyncOperation
		payload []byte
	)

	err := row.Scan(
		&op.ID,
		&op.EntityType,
		&op.EntityID,
		&op.Operation,
		&payload,
		&op.BaseVersion,
		&op.RetryCount,
		&op.LastError,
		&op.CreatedAt,
		&op.UpdatedAt,
	)
	if err != nil {
		return models.PendingSyncOperation{}, err
	}

	if len(payload) > 0 {
		op.Payload = payload
	}

	return op, nil
}

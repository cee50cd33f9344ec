// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/agrostack/fieldsync/internal/config"
	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/models"
)

// ClientStorages groups the client-side repositories and the [LocalStore]
// into a single value that is passed to the client service layer.
type ClientStorages struct {
	Records     LocalRecordRepository
	Queue       QueueRepository
	Conflicts   ConflictRepository
	SyncLog     LocalSyncLogRepository
	SyncState   SyncStateRepository
	Session     SessionRepository
	Attachments LocalAttachmentRepository

	// Local runs the multi-table transactions that keep entity rows, the
	// pending queue, and the conflicts table mutually consistent.
	Local *LocalStore

	db *DB
}

// NewClientStorages initialises the client storage layer: it opens (or
// creates) the SQLite replica, applies pending migrations, and wires up all
// repositories.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Msg("creating client storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.MigrateClient(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		Records:     NewLocalRecordRepository(db, log),
		Queue:       NewQueueRepository(db, log),
		Conflicts:   NewConflictRepository(db, log),
		SyncLog:     NewLocalSyncLogRepository(db, log),
		SyncState:   NewSyncStateRepository(db, log),
		Session:     NewSessionRepository(db, log),
		Attachments: NewLocalAttachmentRepository(db, log),
		Local:       NewLocalStore(db, log),
		db:          db,
	}, nil
}

// Close releases the underlying database connection.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}

// LocalStore owns every write that must touch more than one client table
// atomically. Local edits land in the entity row and the pending queue in
// one transaction, so a crash can never leave an edit that the sync engine
// does not know about.
type LocalStore struct {
	db     *DB
	logger *logger.Logger
}

// NewLocalStore constructs a [LocalStore] on the client database.
func NewLocalStore(db *DB, logger *logger.Logger) *LocalStore {
	return &LocalStore{
		db:     db,
		logger: logger,
	}
}

// SaveEntityAndEnqueue writes a created or updated entity row and queues the
// matching operation, coalescing with whatever the entity already has queued:
//
//   - nothing queued: the operation is enqueued as given;
//   - a queued create absorbs the edit and keeps being a create;
//   - a queued update takes the new payload and keeps its queue position;
//   - a queued delete stays a delete (the service layer rejects edits to
//     deleted rows, so this arm only preserves the invariant).
//
// Coalescing resets the retry budget: the operation now represents a fresh
// edit, not the one that may have been failing.
func (s *LocalStore) SaveEntityAndEnqueue(ctx context.Context, record models.LocalRecord, op models.PendingSyncOperation) (models.LocalRecord, error) {
	log := logger.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "LocalStore.SaveEntityAndEnqueue").
			Msg("failed to begin transaction")
		return models.LocalRecord{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, upsertLocalRecord,
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
			Str("func", "LocalStore.SaveEntityAndEnqueue").
			Str("entity_type", string(record.EntityType)).
			Str("entity_id", record.EntityID).
			Msg("failed to upsert local record")
		return models.LocalRecord{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	existing, err := s.pendingForEntity(ctx, tx, op.EntityType, op.EntityID)
	switch {
	case errors.Is(err, ErrOperationNotFound):
		if insertErr := s.insertPending(ctx, tx, op); insertErr != nil {
			return models.LocalRecord{}, insertErr
		}
	case err != nil:
		return models.LocalRecord{}, err
	case existing.Operation == models.OperationDelete:
		// keep delete
	default:
		existing.Payload = op.Payload
		existing.RetryCount = 0
		existing.LastError = ""
		existing.UpdatedAt = op.UpdatedAt
		if updateErr := s.updatePending(ctx, tx, existing); updateErr != nil {
			return models.LocalRecord{}, updateErr
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "LocalStore.SaveEntityAndEnqueue").
			Msg("failed to commit transaction")
		return models.LocalRecord{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return record, nil
}

// DeleteEntityAndEnqueue marks an entity row deleted and queues the delete.
// When the entity's queued operation is still a create, the record never
// existed on the server: the row and the operation are removed outright and
// removed reports true.
func (s *LocalStore) DeleteEntityAndEnqueue(ctx context.Context, op models.PendingSyncOperation) (bool, error) {
	log := logger.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "LocalStore.DeleteEntityAndEnqueue").
			Msg("failed to begin transaction")
		return false, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	existing, err := s.pendingForEntity(ctx, tx, op.EntityType, op.EntityID)
	if err != nil && !errors.Is(err, ErrOperationNotFound) {
		return false, err
	}

	if err == nil && existing.Operation == models.OperationCreate {
		if _, execErr := tx.ExecContext(ctx, deletePendingOperation, existing.ID); execErr != nil {
			log.Err(execErr).
				Str("func", "LocalStore.DeleteEntityAndEnqueue").
				Str("operation_id", existing.ID).
				Msg("failed to dequeue create operation")
			return false, fmt.Errorf("%w: %w", ErrExecutingQuery, execErr)
		}
		if _, execErr := tx.ExecContext(ctx, deleteLocalRecord, op.EntityType, op.EntityID); execErr != nil {
			log.Err(execErr).
				Str("func", "LocalStore.DeleteEntityAndEnqueue").
				Str("entity_id", op.EntityID).
				Msg("failed to delete local record")
			return false, fmt.Errorf("%w: %w", ErrExecutingQuery, execErr)
		}
		if commitErr := tx.Commit(); commitErr != nil {
			return false, fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
		}
		return true, nil
	}

	result, err := tx.ExecContext(ctx, markRecordDeleted, op.UpdatedAt, op.EntityType, op.EntityID)
	if err != nil {
		log.Err(err).
			Str("func", "LocalStore.DeleteEntityAndEnqueue").
			Str("entity_type", string(op.EntityType)).
			Str("entity_id", op.EntityID).
			Msg("failed to mark record deleted")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affectedErr := requireRowAffected(result, ErrRecordNotFound); affectedErr != nil {
		return false, affectedErr
	}

	switch {
	case existing.ID == "":
		op.Payload = nil
		if insertErr := s.insertPending(ctx, tx, op); insertErr != nil {
			return false, insertErr
		}
	case existing.Operation == models.OperationDelete:
		// already queued
	default:
		existing.Operation = models.OperationDelete
		existing.Payload = nil
		existing.RetryCount = 0
		existing.LastError = ""
		existing.UpdatedAt = op.UpdatedAt
		if updateErr := s.updatePending(ctx, tx, existing); updateErr != nil {
			return false, updateErr
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "LocalStore.DeleteEntityAndEnqueue").
			Msg("failed to commit transaction")
		return false, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return false, nil
}

// AcknowledgeOperation finalises a server-accepted push: the operation is
// dequeued and the entity row is marked synced at the assigned version, or
// removed entirely when the acknowledged operation was a delete.
func (s *LocalStore) AcknowledgeOperation(ctx context.Context, op models.PendingSyncOperation, newVersion int64, syncedAt time.Time) error {
	log := logger.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "LocalStore.AcknowledgeOperation").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, deletePendingOperation, op.ID); err != nil {
		log.Err(err).
			Str("func", "LocalStore.AcknowledgeOperation").
			Str("operation_id", op.ID).
			Msg("failed to dequeue operation")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if op.Operation == models.OperationDelete {
		if _, err := tx.ExecContext(ctx, deleteLocalRecord, op.EntityType, op.EntityID); err != nil {
			log.Err(err).
				Str("func", "LocalStore.AcknowledgeOperation").
				Str("entity_id", op.EntityID).
				Msg("failed to delete local record")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	} else {
		if _, err := tx.ExecContext(ctx, markRecordSynced, newVersion, newVersion, syncedAt, op.EntityType, op.EntityID); err != nil {
			log.Err(err).
				Str("func", "LocalStore.AcknowledgeOperation").
				Str("entity_id", op.EntityID).
				Msg("failed to mark record synced")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "LocalStore.AcknowledgeOperation").
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// FailOperation records one more failed replay attempt. When parked is true
// the retry budget is exhausted: the entity row is flipped to the error
// status and the operation waits for a re-arm instead of further retries.
func (s *LocalStore) FailOperation(ctx context.Context, op models.PendingSyncOperation, cause string, parked bool) error {
	log := logger.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "LocalStore.FailOperation").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, setPendingOperationRetry, op.RetryCount+1, cause, time.Now().UTC(), op.ID); err != nil {
		log.Err(err).
			Str("func", "LocalStore.FailOperation").
			Str("operation_id", op.ID).
			Msg("failed to record retry attempt")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if parked {
		if _, err := tx.ExecContext(ctx, markRecordStatus, models.SyncStatusError, op.EntityType, op.EntityID); err != nil {
			log.Err(err).
				Str("func", "LocalStore.FailOperation").
				Str("entity_id", op.EntityID).
				Msg("failed to mark record errored")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "LocalStore.FailOperation").
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// MaterializeConflict stores a detected conflict, flips the entity row to
// the conflict status, and dequeues the operation that collided. The local
// payload survives inside the conflict row until a resolution settles it.
func (s *LocalStore) MaterializeConflict(ctx context.Context, conflict models.ConflictData) error {
	log := logger.FromContext(ctx)

	fields, err := marshalConflictFields(conflict.ConflictFields)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "LocalStore.MaterializeConflict").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, upsertConflict,
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
			Str("func", "LocalStore.MaterializeConflict").
			Str("conflict_id", conflict.ID).
			Msg("failed to upsert conflict")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if _, err := tx.ExecContext(ctx, markRecordStatus, models.SyncStatusConflict, conflict.EntityType, conflict.EntityID); err != nil {
		log.Err(err).
			Str("func", "LocalStore.MaterializeConflict").
			Str("entity_id", conflict.EntityID).
			Msg("failed to mark record conflicted")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if _, err := tx.ExecContext(ctx, deletePendingOperationForEntity, conflict.EntityType, conflict.EntityID); err != nil {
		log.Err(err).
			Str("func", "LocalStore.MaterializeConflict").
			Str("entity_id", conflict.EntityID).
			Msg("failed to dequeue conflicted operation")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "LocalStore.MaterializeConflict").
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// ApplyServerRecord replicates one pulled server record into the replica as
// a synced row. Tombstones remove the local row instead. Callers must have
// established that the row carries no unsent local edits.
func (s *LocalStore) ApplyServerRecord(ctx context.Context, rec models.Record, syncedAt time.Time) error {
	log := logger.FromContext(ctx)

	if rec.Deleted {
		if _, err := s.db.ExecContext(ctx, deleteLocalRecord, rec.EntityType, rec.EntityID); err != nil {
			log.Err(err).
				Str("func", "LocalStore.ApplyServerRecord").
				Str("entity_id", rec.EntityID).
				Msg("failed to replicate server deletion")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		return nil
	}

	row := s.db.QueryRowContext(ctx, upsertLocalRecord,
		rec.EntityType,
		rec.EntityID,
		rec.Name,
		normalizePayload(rec.Payload),
		rec.Version,
		rec.Deleted,
		rec.CreatedAt,
		rec.UpdatedAt,
		models.SyncStatusSynced,
		rec.Version,
		syncedAt,
		[]byte(nil),
	)

	var (
		id        int64
		createdAt time.Time
	)
	if err := row.Scan(&id, &createdAt); err != nil {
		log.Err(err).
			Str("func", "LocalStore.ApplyServerRecord").
			Str("entity_type", string(rec.EntityType)).
			Str("entity_id", rec.EntityID).
			Msg("failed to replicate server record")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// ResolveKeepServer settles a conflict by overwriting the local row with the
// server copy: the row is stored as given (already synced), queued edits for
// the entity are discarded, and the conflict is removed. Returns
// [ErrConflictNotFound] when the conflict was already resolved.
func (s *LocalStore) ResolveKeepServer(ctx context.Context, conflict models.ConflictData, row models.LocalRecord) error {
	log := logger.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "LocalStore.ResolveKeepServer").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err := s.deleteConflictByID(ctx, tx, conflict.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, deletePendingOperationForEntity, conflict.EntityType, conflict.EntityID); err != nil {
		log.Err(err).
			Str("func", "LocalStore.ResolveKeepServer").
			Str("entity_id", conflict.EntityID).
			Msg("failed to discard queued edits")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if row.Deleted {
		if _, err := tx.ExecContext(ctx, deleteLocalRecord, conflict.EntityType, conflict.EntityID); err != nil {
			log.Err(err).
				Str("func", "LocalStore.ResolveKeepServer").
				Str("entity_id", conflict.EntityID).
				Msg("failed to replicate server deletion")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	} else {
		upsertRow := tx.QueryRowContext(ctx, upsertLocalRecord,
			row.EntityType,
			row.EntityID,
			row.Name,
			normalizePayload(row.Payload),
			row.Version,
			row.Deleted,
			row.CreatedAt,
			row.UpdatedAt,
			row.SyncStatus,
			row.BaseVersion,
			row.LastSyncedAt,
			[]byte(row.LocalChanges),
		)
		if err := upsertRow.Scan(&row.ID, &row.CreatedAt); err != nil {
			log.Err(err).
				Str("func", "LocalStore.ResolveKeepServer").
				Str("entity_id", row.EntityID).
				Msg("failed to overwrite local record")
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "LocalStore.ResolveKeepServer").
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// ResolveKeepLocal settles a conflict in favour of a local or merged
// payload: the row is stored as pending against the server's current
// version, the payload is queued for the next push, and the conflict is
// removed. Returns [ErrConflictNotFound] when the conflict was already
// resolved.
func (s *LocalStore) ResolveKeepLocal(ctx context.Context, conflict models.ConflictData, row models.LocalRecord, op models.PendingSyncOperation) error {
	log := logger.FromContext(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "LocalStore.ResolveKeepLocal").
			Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if err := s.deleteConflictByID(ctx, tx, conflict.ID); err != nil {
		return err
	}

	upsertRow := tx.QueryRowContext(ctx, upsertLocalRecord,
		row.EntityType,
		row.EntityID,
		row.Name,
		normalizePayload(row.Payload),
		row.Version,
		row.Deleted,
		row.CreatedAt,
		row.UpdatedAt,
		row.SyncStatus,
		row.BaseVersion,
		row.LastSyncedAt,
		[]byte(row.LocalChanges),
	)
	if err := upsertRow.Scan(&row.ID, &row.CreatedAt); err != nil {
		log.Err(err).
			Str("func", "LocalStore.ResolveKeepLocal").
			Str("entity_id", row.EntityID).
			Msg("failed to store resolved record")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if _, err := tx.ExecContext(ctx, deletePendingOperationForEntity, op.EntityType, op.EntityID); err != nil {
		log.Err(err).
			Str("func", "LocalStore.ResolveKeepLocal").
			Str("entity_id", op.EntityID).
			Msg("failed to clear stale queued edits")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if err := s.insertPending(ctx, tx, op); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "LocalStore.ResolveKeepLocal").
			Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

// RearmParkedOperations resets the retry budget of every parked operation
// and flips their entity rows back to pending, so the next sync pass picks
// them up again. Returns how many operations were re-armed.
func (s *LocalStore) RearmParkedOperations(ctx context.Context, maxAttempts int) (int64, error) {
	log := logger.FromContext(ctx)

	if maxAttempts <= 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).
			Str("func", "LocalStore.RearmParkedOperations").
			Msg("failed to begin transaction")
		return 0, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, rearmParkedOperations, time.Now().UTC(), maxAttempts)
	if err != nil {
		log.Err(err).
			Str("func", "LocalStore.RearmParkedOperations").
			Msg("failed to re-arm parked operations")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	rearmed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if _, err := tx.ExecContext(ctx, rearmErrorRecords); err != nil {
		log.Err(err).
			Str("func", "LocalStore.RearmParkedOperations").
			Msg("failed to reset errored records")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).
			Str("func", "LocalStore.RearmParkedOperations").
			Msg("failed to commit transaction")
		return 0, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return rearmed, nil
}

func (s *LocalStore) pendingForEntity(ctx context.Context, tx *sql.Tx, entityType models.EntityType, entityID string) (models.PendingSyncOperation, error) {
	row := tx.QueryRowContext(ctx, getPendingOperationForEntity, entityType, entityID)

	op, err := scanPendingOperation(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PendingSyncOperation{}, ErrOperationNotFound
		}
		return models.PendingSyncOperation{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return op, nil
}

func (s *LocalStore) insertPending(ctx context.Context, tx *sql.Tx, op models.PendingSyncOperation) error {
	_, err := tx.ExecContext(ctx, insertPendingOperation,
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
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (s *LocalStore) updatePending(ctx context.Context, tx *sql.Tx, op models.PendingSyncOperation) error {
	_, err := tx.ExecContext(ctx, updatePendingOperation,
		op.Operation,
		[]byte(op.Payload),
		op.BaseVersion,
		op.RetryCount,
		op.LastError,
		op.UpdatedAt,
		op.ID,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (s *LocalStore) deleteConflictByID(ctx context.Context, tx *sql.Tx, conflictID string) error {
	result, err := tx.ExecContext(ctx, deleteConflict, conflictID)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return requireRowAffected(result, ErrConflictNotFound)
}

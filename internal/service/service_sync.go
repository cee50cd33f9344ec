package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/store"
	"github.com/agrostack/fieldsync/internal/validators"
	"github.com/agrostack/fieldsync/models"
)

// syncService is the concrete implementation of SyncService. It replays
// client push batches against the records table under optimistic
// concurrency, answers pull queries, and appends the audit log entries the
// /sync/log endpoint serves.
type syncService struct {
	recordRepository  store.RecordRepository
	syncLogRepository store.SyncLogRepository

	validator validators.Validator

	logger *logger.Logger
}

// NewSyncService constructs a SyncService over the given repositories.
func NewSyncService(recordRepository store.RecordRepository, syncLogRepository store.SyncLogRepository, logger *logger.Logger) SyncService {
	return &syncService{
		recordRepository:  recordRepository,
		syncLogRepository: syncLogRepository,
		validator:         validators.NewRecordValidator(),
		logger:            logger,
	}
}

// ApplyPush implements SyncService.
//
// Operations are applied strictly in request order. Every operation yields
// exactly one result:
//
//   - applied: the mutation was accepted and NewVersion assigned.
//   - conflict: the base version no longer matches (or a create collided
//     with an existing record); ServerRecord carries the current server
//     copy so the client can materialize the conflict locally.
//   - error: the operation failed validation or storage; the message is
//     echoed back for the client's retry bookkeeping.
//
// A failing operation never aborts the batch: later operations still run,
// matching the client queue's per-operation retry model. One audit entry is
// appended per batch.
func (s *syncService) ApplyPush(ctx context.Context, userID int64, req models.PushRequest) (models.PushResponse, error) {
	log := logger.FromContext(ctx)
	startedAt := time.Now().UTC()

	if len(req.Operations) == 0 {
		return models.PushResponse{}, ErrEmptyBatch
	}
	if err := s.validator.Validate(ctx, req); err != nil {
		return models.PushResponse{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	results := make([]models.PushResult, 0, len(req.Operations))
	applied, failed := 0, 0

	for _, op := range req.Operations {
		if err := ctx.Err(); err != nil {
			return models.PushResponse{}, err
		}

		result := s.applyOperation(ctx, userID, op)
		if result.Status == models.PushApplied {
			applied++
		} else {
			failed++
		}
		results = append(results, result)
	}

	entry := models.SyncLogEntry{
		UserID:           userID,
		Direction:        models.DirectionPush,
		RecordsProcessed: applied,
		RecordsFailed:    failed,
		Status:           runStatus(applied, failed),
		StartedAt:        startedAt,
		CompletedAt:      time.Now().UTC(),
	}
	if _, err := s.syncLogRepository.Append(ctx, entry); err != nil {
		// the push itself succeeded; a lost audit row is not worth failing it
		log.Err(err).Int64("user_id", userID).Msg("failed to append push log entry")
	}

	return models.PushResponse{Results: results}, nil
}

func (s *syncService) applyOperation(ctx context.Context, userID int64, op models.PushOperation) models.PushResult {
	log := logger.FromContext(ctx)
	result := models.PushResult{OperationID: op.OperationID}

	record := models.Record{
		UserID:     userID,
		EntityType: op.EntityType,
		EntityID:   op.EntityID,
		Name:       models.PayloadName(op.EntityType, op.Payload),
		Payload:    op.Payload,
	}

	var (
		stored models.Record
		err    error
	)

	switch op.Operation {
	case models.OperationCreate:
		stored, err = s.recordRepository.InsertRecord(ctx, record)
	case models.OperationUpdate:
		stored, err = s.recordRepository.UpdateRecord(ctx, record, op.BaseVersion)
	case models.OperationDelete:
		stored, err = s.recordRepository.SoftDeleteRecord(ctx, userID, op.EntityType, op.EntityID, op.BaseVersion)
		if errors.Is(err, store.ErrRecordNotFound) {
			// another device already removed it; deleting again is a no-op
			result.Status = models.PushApplied
			return result
		}
	default:
		result.Status = models.PushError
		result.Error = fmt.Sprintf("unknown operation %q", op.Operation)
		return result
	}

	switch {
	case err == nil:
		result.Status = models.PushApplied
		result.NewVersion = stored.Version

	case errors.Is(err, store.ErrVersionConflict), errors.Is(err, store.ErrRecordAlreadyExists):
		result.Status = models.PushConflict
		serverRecord, getErr := s.recordRepository.GetRecord(ctx, userID, op.EntityType, op.EntityID)
		if getErr != nil {
			log.Err(getErr).
				Str("entity_type", string(op.EntityType)).
				Str("entity_id", op.EntityID).
				Msg("failed to load server copy for conflict result")
			result.Status = models.PushError
			result.Error = fmt.Sprintf("load server copy: %v", getErr)
			return result
		}
		result.ServerRecord = &serverRecord

	default:
		log.Err(err).
			Str("operation_id", op.OperationID).
			Str("entity_type", string(op.EntityType)).
			Str("entity_id", op.EntityID).
			Msg("push operation failed")
		result.Status = models.PushError
		result.Error = err.Error()
	}

	return result
}

// Changes implements SyncService. Tombstones are always included so
// deletions replicate; ServerTime is captured before the query so the
// client's next watermark cannot skip records committed mid-query.
func (s *syncService) Changes(ctx context.Context, userID int64, query models.RecordQuery) (models.ChangesResponse, error) {
	serverTime := time.Now().UTC()
	query.IncludeDeleted = true

	records, _, err := s.recordRepository.ListRecords(ctx, userID, query)
	if err != nil {
		return models.ChangesResponse{}, fmt.Errorf("list changes: %w", err)
	}

	return models.ChangesResponse{Records: records, ServerTime: serverTime}, nil
}

// Log implements SyncService.
func (s *syncService) Log(ctx context.Context, userID int64, limit int) ([]models.SyncLogEntry, error) {
	entries, err := s.syncLogRepository.List(ctx, userID, limit, 0)
	if err != nil {
		return nil, fmt.Errorf("list sync log: %w", err)
	}

	return entries, nil
}

// runStatus collapses per-operation outcomes into the batch audit status.
func runStatus(applied, failed int) models.SyncRunStatus {
	switch {
	case failed == 0:
		return models.SyncRunSuccess
	case applied == 0:
		return models.SyncRunError
	default:
		return models.SyncRunPartial
	}
}

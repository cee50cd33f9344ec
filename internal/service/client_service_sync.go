package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/agrostack/fieldsync/internal/adapter"
	"github.com/agrostack/fieldsync/internal/blob"
	"github.com/agrostack/fieldsync/internal/config"
	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/store"
	"github.com/agrostack/fieldsync/internal/utils"
	"github.com/agrostack/fieldsync/models"
)

// reconciler is the concrete implementation of Reconciler. One pass pushes
// the pending queue in FIFO order, pulls server changes past the per-type
// watermarks, uploads spooled attachments, and auto-resolves fresh conflicts
// when the configured default strategy says so.
type reconciler struct {
	storages  *store.ClientStorages
	local     LocalTransactions
	blobStore blob.Store
	adapter   adapter.ServerAdapter

	cfg config.ClientSync

	resolver ConflictResolver

	ids *utils.UUIDGenerator

	// passGate is a 1-slot semaphore; TryLock semantics make overlapping
	// passes impossible without ever blocking a caller.
	passGate chan struct{}

	logger *logger.Logger
}

// NewReconciler constructs a Reconciler over the local storages, the device
// blob spool, and the server adapter.
func NewReconciler(storages *store.ClientStorages, blobStore blob.Store, serverAdapter adapter.ServerAdapter, cfg config.ClientSync, logger *logger.Logger) Reconciler {
	return &reconciler{
		storages:  storages,
		local:     storages.Local,
		blobStore: blobStore,
		adapter:   serverAdapter,
		cfg:       cfg,
		resolver:  NewConflictResolver(storages, logger),
		ids:       utils.NewUUIDGenerator(),
		passGate:  make(chan struct{}, 1),
		logger:    logger,
	}
}

// Sync implements Reconciler. Push runs before pull so the server answers the
// pull with this device's own edits already applied. Either phase failing
// does not abort the other: a dead push (server unreachable) still leaves the
// queue intact, and the pass error reports the first failure.
func (r *reconciler) Sync(ctx context.Context) error {
	select {
	case r.passGate <- struct{}{}:
		defer func() { <-r.passGate }()
	default:
		return ErrSyncInProgress
	}

	log := logger.FromContext(ctx)

	if r.adapter.Token() == "" {
		return ErrNotAuthenticated
	}

	var firstErr error

	pushEntry, err := r.push(ctx)
	if err != nil {
		log.Err(err).Msg("push phase failed")
		firstErr = fmt.Errorf("push phase: %w", err)
	} else {
		log.Info().
			Int("processed", pushEntry.RecordsProcessed).
			Int("failed", pushEntry.RecordsFailed).
			Msg("push phase completed")
	}

	pullEntry, err := r.pull(ctx)
	if err != nil {
		log.Err(err).Msg("pull phase failed")
		if firstErr == nil {
			firstErr = fmt.Errorf("pull phase: %w", err)
		}
	} else {
		log.Info().
			Int("processed", pullEntry.RecordsProcessed).
			Int("failed", pullEntry.RecordsFailed).
			Msg("pull phase completed")
	}

	if r.cfg.SyncAttachments {
		if err := r.uploadSpooledAttachments(ctx); err != nil {
			log.Err(err).Msg("attachment upload failed")
			if firstErr == nil {
				firstErr = fmt.Errorf("attachment upload: %w", err)
			}
		}
	}

	if err := r.autoResolve(ctx); err != nil {
		log.Err(err).Msg("auto-resolution failed")
		if firstErr == nil {
			firstErr = fmt.Errorf("auto-resolution: %w", err)
		}
	}

	return firstErr
}

// Push implements Reconciler. Unlike Sync it does not take the pass gate:
// callers wanting exclusion go through Sync.
func (r *reconciler) Push(ctx context.Context) (models.SyncLogEntry, error) {
	select {
	case r.passGate <- struct{}{}:
		defer func() { <-r.passGate }()
	default:
		return models.SyncLogEntry{}, ErrSyncInProgress
	}

	return r.push(ctx)
}

// Pull implements Reconciler.
func (r *reconciler) Pull(ctx context.Context) (models.SyncLogEntry, error) {
	select {
	case r.passGate <- struct{}{}:
		defer func() { <-r.passGate }()
	default:
		return models.SyncLogEntry{}, ErrSyncInProgress
	}

	return r.pull(ctx)
}

// RearmParked implements Reconciler.
func (r *reconciler) RearmParked(ctx context.Context) (int64, error) {
	return r.local.RearmParkedOperations(ctx, r.cfg.MaxAttempts)
}

// History implements Reconciler. Entries come back newest first.
func (r *reconciler) History(ctx context.Context, limit int) ([]models.SyncLogEntry, error) {
	entries, err := r.storages.SyncLog.List(ctx, limit, 0)
	if err != nil {
		return nil, fmt.Errorf("list sync log: %w", err)
	}

	return entries, nil
}

// push drains the pending queue in FIFO order of first enqueue. Parked
// operations are skipped; each pushed operation is individually acknowledged,
// conflicted, or failed according to the server's per-operation result, so a
// partial batch leaves exactly the failed operations queued. Requests carry
// at most PushBatchSize operations.
func (r *reconciler) push(ctx context.Context) (models.SyncLogEntry, error) {
	startedAt := time.Now().UTC()

	ops, err := r.storages.Queue.ListFIFO(ctx)
	if err != nil {
		return models.SyncLogEntry{}, fmt.Errorf("list pending operations: %w", err)
	}

	replayable := make([]models.PendingSyncOperation, 0, len(ops))
	for _, op := range ops {
		if op.Exhausted(r.cfg.MaxAttempts) {
			continue
		}
		replayable = append(replayable, op)
	}

	if len(replayable) == 0 {
		return models.SyncLogEntry{Direction: models.DirectionPush, Status: models.SyncRunSuccess, StartedAt: startedAt, CompletedAt: time.Now().UTC()}, nil
	}

	batchSize := r.cfg.PushBatchSize
	if batchSize <= 0 {
		batchSize = len(replayable)
	}

	processed, failed := 0, 0

	for start := 0; start < len(replayable); start += batchSize {
		batch := replayable[start:min(start+batchSize, len(replayable))]

		batchProcessed, batchFailed, err := r.pushBatch(ctx, batch)
		processed += batchProcessed
		failed += batchFailed
		if err != nil {
			// later batches were never attempted: they stay queued with
			// their retry budget untouched
			entry := r.appendLog(ctx, models.SyncLogEntry{
				Direction:        models.DirectionPush,
				RecordsProcessed: processed,
				RecordsFailed:    failed,
				Status:           models.SyncRunError,
				Error:            err.Error(),
				StartedAt:        startedAt,
				CompletedAt:      time.Now().UTC(),
			})
			return entry, fmt.Errorf("push batch: %w", err)
		}
	}

	entry := r.appendLog(ctx, models.SyncLogEntry{
		Direction:        models.DirectionPush,
		RecordsProcessed: processed,
		RecordsFailed:    failed,
		Status:           runStatus(processed, failed),
		StartedAt:        startedAt,
		CompletedAt:      time.Now().UTC(),
	})

	return entry, nil
}

// pushBatch sends one request worth of operations and settles each according
// to the server's per-operation result.
func (r *reconciler) pushBatch(ctx context.Context, batch []models.PendingSyncOperation) (processed, failed int, err error) {
	log := logger.FromContext(ctx)

	request := models.PushRequest{Operations: make([]models.PushOperation, 0, len(batch))}
	for _, op := range batch {
		request.Operations = append(request.Operations, models.PushOperation{
			OperationID: op.ID,
			EntityType:  op.EntityType,
			EntityID:    op.EntityID,
			Operation:   op.Operation,
			Payload:     op.Payload,
			BaseVersion: op.BaseVersion,
		})
	}

	response, err := r.adapter.Push(ctx, request)
	if err != nil {
		// the whole request failed to reach the server; every operation in it
		// gets one failed attempt so the retry budget still moves
		mapped := mapAdapterError(err)
		cause := mapped.Error()
		for _, op := range batch {
			parked := op.RetryCount+1 >= r.cfg.MaxAttempts
			if failErr := r.local.FailOperation(ctx, op, cause, parked); failErr != nil {
				log.Err(failErr).Str("operation_id", op.ID).Msg("failed to record replay failure")
			}
		}
		return 0, len(batch), mapped
	}

	opsByID := make(map[string]models.PendingSyncOperation, len(batch))
	for _, op := range batch {
		opsByID[op.ID] = op
	}

	syncedAt := time.Now().UTC()

	for _, result := range response.Results {
		op, ok := opsByID[result.OperationID]
		if !ok {
			log.Warn().Str("operation_id", result.OperationID).Msg("server answered an unknown operation")
			continue
		}

		switch result.Status {
		case models.PushApplied:
			if err := r.local.AcknowledgeOperation(ctx, op, result.NewVersion, syncedAt); err != nil {
				log.Err(err).Str("operation_id", op.ID).Msg("failed to acknowledge operation")
				failed++
				continue
			}
			processed++

		case models.PushConflict:
			if result.ServerRecord == nil {
				log.Error().Str("operation_id", op.ID).Msg("conflict result without server record")
				failed++
				continue
			}
			if err := r.materializeConflict(ctx, op, *result.ServerRecord); err != nil {
				log.Err(err).Str("operation_id", op.ID).Msg("failed to materialize conflict")
				failed++
				continue
			}
			failed++

		default: // models.PushError and anything unknown
			parked := op.RetryCount+1 >= r.cfg.MaxAttempts
			if err := r.local.FailOperation(ctx, op, result.Error, parked); err != nil {
				log.Err(err).Str("operation_id", op.ID).Msg("failed to record replay failure")
			}
			failed++
		}
	}

	return processed, failed, nil
}

// pull fetches server changes past each watched entity type's watermark and
// applies them. A pulled change targeting a row with unsent local edits
// materializes a conflict instead of overwriting; the server's clock becomes
// the new watermark only when the type's whole page set applied cleanly.
func (r *reconciler) pull(ctx context.Context) (models.SyncLogEntry, error) {
	log := logger.FromContext(ctx)
	startedAt := time.Now().UTC()

	processed, failed := 0, 0
	var firstErr error

	watched := r.cfg.EntityTypes
	if len(watched) == 0 {
		watched = models.EntityTypes()
	}

	for _, entityType := range watched {
		if err := ctx.Err(); err != nil {
			return models.SyncLogEntry{}, err
		}

		since, err := r.storages.SyncState.Get(ctx, entityType)
		if err != nil {
			return models.SyncLogEntry{}, fmt.Errorf("load %s watermark: %w", entityType, err)
		}

		query := models.RecordQuery{
			EntityTypes:    []models.EntityType{entityType},
			IncludeDeleted: true,
			PageSize:       r.cfg.PullPageSize,
		}
		if !since.IsZero() {
			sinceCopy := since
			query.Since = &sinceCopy
		}

		typeFailed := false
		var serverTime time.Time

		for page := 0; ; page++ {
			query.Page = page

			changes, err := r.adapter.Changes(ctx, query)
			if err != nil {
				mapped := mapAdapterError(err)
				log.Err(mapped).Str("entity_type", string(entityType)).Msg("pull request failed")
				if firstErr == nil {
					firstErr = fmt.Errorf("pull %s: %w", entityType, mapped)
				}
				typeFailed = true
				break
			}
			serverTime = changes.ServerTime

			for _, rec := range changes.Records {
				if err := r.applyPulledRecord(ctx, rec); err != nil {
					log.Err(err).
						Str("entity_type", string(rec.EntityType)).
						Str("entity_id", rec.EntityID).
						Msg("failed to apply pulled record")
					failed++
					typeFailed = true
					continue
				}
				processed++
			}

			if r.cfg.PullPageSize <= 0 || len(changes.Records) < r.cfg.PullPageSize {
				break
			}
		}

		// advancing the watermark past a partially applied window would
		// silently drop the failed records forever
		if !typeFailed && !serverTime.IsZero() {
			if err := r.storages.SyncState.Set(ctx, entityType, serverTime); err != nil {
				return models.SyncLogEntry{}, fmt.Errorf("store %s watermark: %w", entityType, err)
			}
		}
	}

	entry := models.SyncLogEntry{
		Direction:        models.DirectionPull,
		RecordsProcessed: processed,
		RecordsFailed:    failed,
		Status:           runStatus(processed, failed),
		StartedAt:        startedAt,
		CompletedAt:      time.Now().UTC(),
	}
	if firstErr != nil {
		entry.Error = firstErr.Error()
		entry.Status = models.SyncRunError
		if processed > 0 {
			entry.Status = models.SyncRunPartial
		}
	}
	entry = r.appendLog(ctx, entry)

	return entry, firstErr
}

// applyPulledRecord replicates one server record into the local replica. Rows
// with unsent local edits are never overwritten: the divergence becomes a
// conflict for the resolver.
func (r *reconciler) applyPulledRecord(ctx context.Context, rec models.Record) error {
	syncedAt := time.Now().UTC()

	localRecord, err := r.storages.Records.Get(ctx, rec.EntityType, rec.EntityID)
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		return r.local.ApplyServerRecord(ctx, rec, syncedAt)
	case err != nil:
		return fmt.Errorf("load local row: %w", err)
	}

	if localRecord.Version == rec.Version && !localRecord.Dirty() {
		// nothing new: the record round-tripped through this device's push
		return nil
	}

	if !localRecord.Dirty() {
		return r.local.ApplyServerRecord(ctx, rec, syncedAt)
	}

	conflict, err := r.buildConflict(localRecord.Payload, localRecord.BaseVersion, localRecord.UpdatedAt, rec)
	if err != nil {
		return err
	}

	return r.local.MaterializeConflict(ctx, conflict)
}

// materializeConflict converts a rejected push into a stored conflict.
func (r *reconciler) materializeConflict(ctx context.Context, op models.PendingSyncOperation, serverRecord models.Record) error {
	conflict, err := r.buildConflict(op.Payload, op.BaseVersion, op.UpdatedAt, serverRecord)
	if err != nil {
		return err
	}

	return r.local.MaterializeConflict(ctx, conflict)
}

func (r *reconciler) buildConflict(localPayload []byte, localVersion int64, localTimestamp time.Time, serverRecord models.Record) (models.ConflictData, error) {
	fields, err := fieldDiff(localPayload, serverRecord.Payload)
	if err != nil {
		// a malformed side still deserves a conflict row; the dialog shows
		// raw payloads when no field list is available
		r.logger.Warn().Err(err).
			Str("entity_type", string(serverRecord.EntityType)).
			Str("entity_id", serverRecord.EntityID).
			Msg("field diff failed, storing conflict without field list")
		fields = nil
	}

	return models.ConflictData{
		ID:              r.ids.Generate(),
		EntityType:      serverRecord.EntityType,
		EntityID:        serverRecord.EntityID,
		LocalData:       localPayload,
		ServerData:      serverRecord.Payload,
		LocalVersion:    localVersion,
		ServerVersion:   serverRecord.Version,
		LocalTimestamp:  localTimestamp,
		ServerTimestamp: serverRecord.UpdatedAt,
		ConflictFields:  fields,
		DetectedAt:      time.Now().UTC(),
	}, nil
}

// uploadSpooledAttachments pushes files captured offline whose bytes have not
// reached the server yet.
func (r *reconciler) uploadSpooledAttachments(ctx context.Context) error {
	log := logger.FromContext(ctx)

	pending, err := r.storages.Attachments.ListPendingUpload(ctx)
	if err != nil {
		return fmt.Errorf("list spooled attachments: %w", err)
	}

	var firstErr error
	for _, attachment := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}

		_, body, err := r.blobStore.Get(ctx, attachment.StorageKey)
		if err != nil {
			if errors.Is(err, blob.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
				log.Warn().
					Str("attachment_id", attachment.AttachmentID).
					Msg("spooled attachment bytes missing, dropping metadata")
				if delErr := r.storages.Attachments.Delete(ctx, attachment.AttachmentID); delErr != nil {
					log.Err(delErr).Str("attachment_id", attachment.AttachmentID).Msg("failed to drop orphaned attachment row")
				}
				continue
			}
			if firstErr == nil {
				firstErr = fmt.Errorf("read spooled attachment %s: %w", attachment.AttachmentID, err)
			}
			continue
		}

		_, uploadErr := r.adapter.UploadAttachment(ctx, attachment.Attachment, body)
		body.Close()
		if uploadErr != nil {
			log.Err(uploadErr).Str("attachment_id", attachment.AttachmentID).Msg("attachment upload failed")
			if firstErr == nil {
				firstErr = fmt.Errorf("upload attachment %s: %w", attachment.AttachmentID, mapAdapterError(uploadErr))
			}
			continue
		}

		if err := r.storages.Attachments.MarkUploaded(ctx, attachment.AttachmentID); err != nil {
			log.Err(err).Str("attachment_id", attachment.AttachmentID).Msg("failed to mark attachment uploaded")
			if firstErr == nil {
				firstErr = fmt.Errorf("mark attachment %s uploaded: %w", attachment.AttachmentID, err)
			}
		}
	}

	return firstErr
}

// autoResolve settles fresh conflicts with the configured default strategy.
// Manual leaves them for the resolver dialog.
func (r *reconciler) autoResolve(ctx context.Context) error {
	strategy := r.cfg.DefaultStrategy
	if strategy == "" || strategy == models.StrategyManual {
		return nil
	}

	conflicts, err := r.storages.Conflicts.List(ctx)
	if err != nil {
		return fmt.Errorf("list conflicts: %w", err)
	}

	var firstErr error
	for _, conflict := range conflicts {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := r.resolver.Resolve(ctx, models.ResolveRequest{ConflictID: conflict.ID, Strategy: strategy})
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("auto-resolve conflict %s: %w", conflict.ID, err)
		}
	}

	return firstErr
}

func (r *reconciler) appendLog(ctx context.Context, entry models.SyncLogEntry) models.SyncLogEntry {
	stored, err := r.storages.SyncLog.Append(ctx, entry)
	if err != nil {
		// the pass outcome stands; a lost audit row is logged and forgotten
		logger.FromContext(ctx).Err(err).Str("direction", string(entry.Direction)).Msg("failed to append sync log entry")
		return entry
	}

	return stored
}

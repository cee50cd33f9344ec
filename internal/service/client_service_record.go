package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agrostack/fieldsync/internal/blob"
	"github.com/agrostack/fieldsync/internal/config"
	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/store"
	"github.com/agrostack/fieldsync/internal/utils"
	"github.com/agrostack/fieldsync/internal/validators"
	"github.com/agrostack/fieldsync/models"
)

// clientRecordService is the concrete implementation of ClientRecordService.
// It never touches the network: every mutation is a local transaction that
// writes the entity row and queues the replay operation together, which is
// what makes offline capture safe.
type clientRecordService struct {
	storages  *store.ClientStorages
	local     LocalTransactions
	blobStore blob.Store

	maxAttempts int

	ids *utils.UUIDGenerator

	logger *logger.Logger
}

// NewClientRecordService constructs a ClientRecordService over the local
// storages and the device blob spool.
func NewClientRecordService(storages *store.ClientStorages, blobStore blob.Store, syncCfg config.ClientSync, logger *logger.Logger) ClientRecordService {
	return &clientRecordService{
		storages:    storages,
		local:       storages.Local,
		blobStore:   blobStore,
		maxAttempts: syncCfg.MaxAttempts,
		ids:         utils.NewUUIDGenerator(),
		logger:      logger,
	}
}

// Create implements ClientRecordService. The entity receives a client-side
// UUID so it has stable identity before the server ever sees it.
func (s *clientRecordService) Create(ctx context.Context, entityType models.EntityType, payload json.RawMessage) (models.LocalRecord, error) {
	if err := validators.ValidatePayload(entityType, payload); err != nil {
		return models.LocalRecord{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	now := time.Now().UTC()
	entityID := s.ids.Generate()

	record := models.LocalRecord{
		Record: models.Record{
			EntityType: entityType,
			EntityID:   entityID,
			Name:       models.PayloadName(entityType, payload),
			Payload:    payload,
			Version:    0,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		SyncStatus:   models.SyncStatusPending,
		BaseVersion:  0,
		LocalChanges: payload,
	}

	op := models.PendingSyncOperation{
		ID:          s.ids.Generate(),
		EntityType:  entityType,
		EntityID:    entityID,
		Operation:   models.OperationCreate,
		Payload:     payload,
		BaseVersion: 0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	stored, err := s.local.SaveEntityAndEnqueue(ctx, record, op)
	if err != nil {
		return models.LocalRecord{}, fmt.Errorf("create %s: %w", entityType, err)
	}

	return stored, nil
}

// Update implements ClientRecordService. The edit coalesces with whatever the
// entity already has queued; LocalChanges keeps only the fields this edit
// actually touched so the conflict dialog can show them.
func (s *clientRecordService) Update(ctx context.Context, entityType models.EntityType, entityID string, payload json.RawMessage) (models.LocalRecord, error) {
	if err := validators.ValidatePayload(entityType, payload); err != nil {
		return models.LocalRecord{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	existing, err := s.storages.Records.Get(ctx, entityType, entityID)
	if err != nil {
		return models.LocalRecord{}, fmt.Errorf("load %s %s: %w", entityType, entityID, err)
	}
	if existing.Deleted {
		return models.LocalRecord{}, fmt.Errorf("update %s %s: %w", entityType, entityID, ErrEntityDeleted)
	}

	now := time.Now().UTC()

	record := existing
	record.Name = models.PayloadName(entityType, payload)
	record.Payload = payload
	record.UpdatedAt = now
	record.SyncStatus = models.SyncStatusPending
	record.LocalChanges = changedFields(existing.Payload, payload)

	op := models.PendingSyncOperation{
		ID:          s.ids.Generate(),
		EntityType:  entityType,
		EntityID:    entityID,
		Operation:   models.OperationUpdate,
		Payload:     payload,
		BaseVersion: existing.BaseVersion,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	stored, err := s.local.SaveEntityAndEnqueue(ctx, record, op)
	if err != nil {
		return models.LocalRecord{}, fmt.Errorf("update %s %s: %w", entityType, entityID, err)
	}

	return stored, nil
}

// Delete implements ClientRecordService. A delete of a still-unpushed create
// removes the entity outright; otherwise the row becomes a pending tombstone.
func (s *clientRecordService) Delete(ctx context.Context, entityType models.EntityType, entityID string) error {
	log := logger.FromContext(ctx)

	existing, err := s.storages.Records.Get(ctx, entityType, entityID)
	if err != nil {
		return fmt.Errorf("load %s %s: %w", entityType, entityID, err)
	}

	now := time.Now().UTC()
	op := models.PendingSyncOperation{
		ID:          s.ids.Generate(),
		EntityType:  entityType,
		EntityID:    entityID,
		Operation:   models.OperationDelete,
		BaseVersion: existing.BaseVersion,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	removed, err := s.local.DeleteEntityAndEnqueue(ctx, op)
	if err != nil {
		return fmt.Errorf("delete %s %s: %w", entityType, entityID, err)
	}
	if removed {
		log.Debug().
			Str("entity_type", string(entityType)).
			Str("entity_id", entityID).
			Msg("entity removed before first push, nothing to replay")
	}

	return nil
}

// Get implements ClientRecordService.
func (s *clientRecordService) Get(ctx context.Context, entityType models.EntityType, entityID string) (models.LocalRecord, error) {
	record, err := s.storages.Records.Get(ctx, entityType, entityID)
	if err != nil {
		return models.LocalRecord{}, fmt.Errorf("get %s %s: %w", entityType, entityID, err)
	}

	return record, nil
}

// List implements ClientRecordService.
func (s *clientRecordService) List(ctx context.Context, query models.RecordQuery) ([]models.LocalRecord, error) {
	records, err := s.storages.Records.List(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	return records, nil
}

// AttachFile implements ClientRecordService. The bytes land in the device
// blob spool immediately; the upload happens on the next reconciliation pass
// when attachment sync is enabled.
func (s *clientRecordService) AttachFile(ctx context.Context, attachment models.Attachment, data io.Reader) (models.LocalAttachment, error) {
	if !attachment.EntityType.Valid() || attachment.EntityID == "" {
		return models.LocalAttachment{}, fmt.Errorf("%w: attachment must reference an entity", ErrInvalidDataProvided)
	}

	if attachment.AttachmentID == "" {
		attachment.AttachmentID = s.ids.Generate()
	}
	attachment.StorageKey = attachment.AttachmentID
	attachment.CreatedAt = time.Now().UTC()

	info, err := s.blobStore.Put(ctx, attachment.StorageKey, data, attachment.ContentType)
	if err != nil {
		return models.LocalAttachment{}, fmt.Errorf("spool attachment bytes: %w", err)
	}
	attachment.SizeBytes = info.SizeBytes

	local := models.LocalAttachment{Attachment: attachment, Uploaded: false}
	if err := s.storages.Attachments.Save(ctx, local); err != nil {
		if _, delErr := s.blobStore.Delete(ctx, attachment.StorageKey); delErr != nil {
			s.logger.Err(delErr).Str("key", attachment.StorageKey).Msg("failed to remove orphaned spooled blob")
		}
		return models.LocalAttachment{}, fmt.Errorf("save attachment metadata: %w", err)
	}

	return local, nil
}

// PendingOperations implements ClientRecordService. Operations come back in
// the FIFO order the reconciler will replay them in.
func (s *clientRecordService) PendingOperations(ctx context.Context) ([]models.PendingSyncOperation, error) {
	ops, err := s.storages.Queue.ListFIFO(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending operations: %w", err)
	}

	return ops, nil
}

// DiscardOperation implements ClientRecordService. The queued replay is
// abandoned: a discarded create removes the local row it would have pushed,
// any other discard leaves the row in place marked synced.
func (s *clientRecordService) DiscardOperation(ctx context.Context, operationID string) error {
	ops, err := s.storages.Queue.ListFIFO(ctx)
	if err != nil {
		return fmt.Errorf("list pending operations: %w", err)
	}

	var op models.PendingSyncOperation
	found := false
	for _, candidate := range ops {
		if candidate.ID == operationID {
			op = candidate
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("discard operation %s: %w", operationID, store.ErrOperationNotFound)
	}

	if err := s.storages.Queue.Delete(ctx, operationID); err != nil {
		return fmt.Errorf("discard operation %s: %w", operationID, err)
	}

	if op.Operation == models.OperationCreate {
		if err := s.storages.Records.Delete(ctx, op.EntityType, op.EntityID); err != nil && !errors.Is(err, store.ErrRecordNotFound) {
			return fmt.Errorf("remove unpushed %s %s: %w", op.EntityType, op.EntityID, err)
		}
		return nil
	}

	if err := s.storages.Records.MarkStatus(ctx, op.EntityType, op.EntityID, models.SyncStatusSynced); err != nil && !errors.Is(err, store.ErrRecordNotFound) {
		return fmt.Errorf("settle %s %s after discard: %w", op.EntityType, op.EntityID, err)
	}

	return nil
}

// Stats implements ClientRecordService.
func (s *clientRecordService) Stats(ctx context.Context) (models.SyncStats, error) {
	var stats models.SyncStats

	for _, entityType := range models.EntityTypes() {
		count, err := s.storages.Records.Count(ctx, entityType)
		if err != nil {
			return models.SyncStats{}, fmt.Errorf("count %s records: %w", entityType, err)
		}
		stats.TotalRecords += int(count)
	}

	pending, parked, err := s.storages.Queue.Counts(ctx, s.maxAttempts)
	if err != nil {
		return models.SyncStats{}, fmt.Errorf("count queued operations: %w", err)
	}
	stats.PendingOperations = int(pending)
	stats.ParkedOperations = int(parked)

	conflicts, err := s.storages.Conflicts.Count(ctx)
	if err != nil {
		return models.SyncStats{}, fmt.Errorf("count conflicts: %w", err)
	}
	stats.Conflicts = int(conflicts)

	oldest, err := s.storages.Records.OldestUnsynced(ctx)
	if err != nil {
		return models.SyncStats{}, fmt.Errorf("oldest unsynced record: %w", err)
	}
	if !oldest.IsZero() {
		stats.OldestUnsyncedAt = &oldest
	}

	if entry, err := s.storages.SyncLog.Last(ctx, models.DirectionPush); err == nil {
		completedAt := entry.CompletedAt
		stats.LastPushAt = &completedAt
	} else if !errors.Is(err, store.ErrSyncLogEmpty) {
		return models.SyncStats{}, fmt.Errorf("last push entry: %w", err)
	}

	if entry, err := s.storages.SyncLog.Last(ctx, models.DirectionPull); err == nil {
		completedAt := entry.CompletedAt
		stats.LastPullAt = &completedAt
	} else if !errors.Is(err, store.ErrSyncLogEmpty) {
		return models.SyncStats{}, fmt.Errorf("last pull entry: %w", err)
	}

	return stats, nil
}

// changedFields returns a JSON object holding only the top-level fields whose
// values differ between the two payloads. Falls back to the full new payload
// when either document cannot be decoded.
func changedFields(oldPayload, newPayload json.RawMessage) json.RawMessage {
	var oldDoc, newDoc map[string]any
	if err := json.Unmarshal(oldPayload, &oldDoc); err != nil {
		return newPayload
	}
	if err := json.Unmarshal(newPayload, &newDoc); err != nil {
		return newPayload
	}

	changes := make(map[string]any)
	for key, newValue := range newDoc {
		oldValue, ok := oldDoc[key]
		if !ok || !jsonEqual(oldValue, newValue) {
			changes[key] = newValue
		}
	}
	for key := range oldDoc {
		if _, ok := newDoc[key]; !ok {
			changes[key] = nil
		}
	}

	encoded, err := json.Marshal(changes)
	if err != nil {
		return newPayload
	}
	return encoded
}

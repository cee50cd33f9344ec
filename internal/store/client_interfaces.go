package store

import (
	"context"
	"time"

	"github.com/agrostack/fieldsync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalRecordRepository manages entity rows in the client SQLite replica.
type LocalRecordRepository interface {
	Upsert(ctx context.Context, record models.LocalRecord) (models.LocalRecord, error)
	Get(ctx context.Context, entityType models.EntityType, entityID string) (models.LocalRecord, error)
	List(ctx context.Context, query models.RecordQuery) ([]models.LocalRecord, error)
	ListDirty(ctx context.Context) ([]models.LocalRecord, error)
	MarkSynced(ctx context.Context, entityType models.EntityType, entityID string, version int64, syncedAt time.Time) error
	MarkStatus(ctx context.Context, entityType models.EntityType, entityID string, status models.SyncStatus) error
	Delete(ctx context.Context, entityType models.EntityType, entityID string) error
	Count(ctx context.Context, entityType models.EntityType) (int64, error)
	OldestUnsynced(ctx context.Context) (time.Time, error)
}

// QueueRepository manages the pending operation queue. At most one operation
// exists per (entity type, entity id) pair: repeated local edits coalesce
// into the already queued operation.
type QueueRepository interface {
	GetForEntity(ctx context.Context, entityType models.EntityType, entityID string) (models.PendingSyncOperation, error)
	Insert(ctx context.Context, op models.PendingSyncOperation) error
	Update(ctx context.Context, op models.PendingSyncOperation) error
	Delete(ctx context.Context, operationID string) error
	DeleteForEntity(ctx context.Context, entityType models.EntityType, entityID string) error
	ListFIFO(ctx context.Context) ([]models.PendingSyncOperation, error)
	SetRetry(ctx context.Context, operationID string, retryCount int, lastError string) error
	ResetRetry(ctx context.Context, operationID string) error
	Counts(ctx context.Context, maxAttempts int) (pending int64, parked int64, err error)
}

// ConflictRepository manages unresolved conflicts. Resolution removes the
// stored conflict, so the table only ever holds open ones.
type ConflictRepository interface {
	Upsert(ctx context.Context, conflict models.ConflictData) error
	Get(ctx context.Context, conflictID string) (models.ConflictData, error)
	GetForEntity(ctx context.Context, entityType models.EntityType, entityID string) (models.ConflictData, error)
	List(ctx context.Context) ([]models.ConflictData, error)
	Delete(ctx context.Context, conflictID string) error
	DeleteForEntity(ctx context.Context, entityType models.EntityType, entityID string) error
	Count(ctx context.Context) (int64, error)
}

// LocalSyncLogRepository stores the append-only history of sync runs.
type LocalSyncLogRepository interface {
	Append(ctx context.Context, entry models.SyncLogEntry) (models.SyncLogEntry, error)
	List(ctx context.Context, limit int, offset int) ([]models.SyncLogEntry, error)
	Last(ctx context.Context, direction models.SyncDirection) (models.SyncLogEntry, error)
}

// SyncStateRepository tracks per entity type pull watermarks.
type SyncStateRepository interface {
	Get(ctx context.Context, entityType models.EntityType) (time.Time, error)
	Set(ctx context.Context, entityType models.EntityType, lastPullAt time.Time) error
	All(ctx context.Context) (map[models.EntityType]time.Time, error)
}

// SessionRepository persists the single local session row so the client
// stays signed in across restarts.
type SessionRepository interface {
	Save(ctx context.Context, session models.Session) error
	Load(ctx context.Context) (models.Session, error)
	Clear(ctx context.Context) error
}

// LocalAttachmentRepository tracks files captured on this device and whether
// their bytes reached the server yet.
type LocalAttachmentRepository interface {
	Save(ctx context.Context, attachment models.LocalAttachment) error
	Get(ctx context.Context, attachmentID string) (models.LocalAttachment, error)
	ListForEntity(ctx context.Context, entityType models.EntityType, entityID string) ([]models.LocalAttachment, error)
	ListPendingUpload(ctx context.Context) ([]models.LocalAttachment, error)
	MarkUploaded(ctx context.Context, attachmentID string) error
	Delete(ctx context.Context, attachmentID string) error
}

package store

import (
	"context"
	"time"

	"github.com/agrostack/fieldsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// UserRepository handles user accounts on the sync server.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
}

// RecordRepository is the server-side repository over the canonical
// "records" table. Every write enforces optimistic concurrency: updates
// and deletes only apply when the caller's base version matches the
// stored version, otherwise [ErrVersionConflict] is returned.
type RecordRepository interface {
	GetRecord(ctx context.Context, userID int64, entityType models.EntityType, entityID string) (models.Record, error)
	ListRecords(ctx context.Context, userID int64, query models.RecordQuery) ([]models.Record, int64, error)
	InsertRecord(ctx context.Context, record models.Record) (models.Record, error)
	UpdateRecord(ctx context.Context, record models.Record, baseVersion int64) (models.Record, error)
	SoftDeleteRecord(ctx context.Context, userID int64, entityType models.EntityType, entityID string, baseVersion int64) (models.Record, error)
}

// SyncLogRepository appends and lists per-pass sync audit entries.
type SyncLogRepository interface {
	Append(ctx context.Context, entry models.SyncLogEntry) (models.SyncLogEntry, error)
	List(ctx context.Context, userID int64, limit, offset int) ([]models.SyncLogEntry, error)
}

// AttachmentRepository stores attachment metadata; the bytes themselves
// live in the blob store.
type AttachmentRepository interface {
	SaveAttachment(ctx context.Context, attachment models.Attachment) (models.Attachment, error)
	GetAttachment(ctx context.Context, userID int64, attachmentID string) (models.Attachment, error)
	ListAttachments(ctx context.Context, userID int64, entityType models.EntityType, entityID string) ([]models.Attachment, error)
	ListChangedSince(ctx context.Context, userID int64, since *time.Time) ([]models.Attachment, error)
}

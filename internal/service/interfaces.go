package service

import (
	"context"
	"encoding/json"
	"io"

	"github.com/agrostack/fieldsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService handles account registration, credential verification, and the
// JWT token lifecycle on the sync server.
type AuthService interface {
	RegisterUser(ctx context.Context, creds models.Credentials) (models.User, error)
	Login(ctx context.Context, creds models.Credentials) (models.User, error)
	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// RecordService is the server-side read/edit surface over synchronized
// records: listings for the BrAPI endpoints and direct edits that represent
// other users changing data between a client's syncs.
type RecordService interface {
	ListRecords(ctx context.Context, userID int64, query models.RecordQuery) ([]models.Record, int64, error)
	GetRecord(ctx context.Context, userID int64, entityType models.EntityType, entityID string) (models.Record, error)

	// PutRecord upserts an entity document: baseVersion zero creates the
	// record, a non-zero baseVersion updates it under the optimistic
	// concurrency check. The stored record with its new version is returned.
	PutRecord(ctx context.Context, userID int64, entityType models.EntityType, entityID string, payload json.RawMessage, baseVersion int64) (models.Record, error)
}

// SyncService applies client push batches and answers pull queries.
type SyncService interface {
	// ApplyPush replays the batch in request order and reports one result
	// per operation: applied, conflict (with the current server copy), or
	// error. A failed operation never aborts the rest of the batch.
	ApplyPush(ctx context.Context, userID int64, req models.PushRequest) (models.PushResponse, error)

	// Changes lists records updated after query.Since, tombstones included,
	// together with the server clock for the client's next watermark.
	Changes(ctx context.Context, userID int64, query models.RecordQuery) (models.ChangesResponse, error)

	// Log lists the user's most recent sync audit entries, newest first.
	Log(ctx context.Context, userID int64, limit int) ([]models.SyncLogEntry, error)
}

// AttachmentService stores and serves entity attachments: metadata in the
// relational store, bytes in the blob store.
type AttachmentService interface {
	Upload(ctx context.Context, userID int64, attachment models.Attachment, data io.Reader) (models.Attachment, error)
	Download(ctx context.Context, userID int64, attachmentID string) (models.Attachment, io.ReadCloser, error)
	List(ctx context.Context, userID int64, entityType models.EntityType, entityID string) ([]models.Attachment, error)
}

// AppInfoService exposes build/version information to handlers.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

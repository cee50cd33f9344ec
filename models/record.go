package models

import (
	"encoding/json"
	"time"
)

// Record is the canonical synchronized row shared by the server store and the
// client replica. EntityID is a client-generated UUID so records created
// offline have stable identity before they ever reach the server; ID is the
// server-side surrogate key and never leaves the server process.
//
// Version implements optimistic concurrency: the server increments it on every
// accepted write, and a push whose base version no longer matches is rejected
// as a conflict together with the current server copy.
type Record struct {
	// ID is the server surrogate key. Zero on the client.
	ID int64 `json:"-"`

	// UserID is the owning account. Server side only.
	UserID int64 `json:"-"`

	// EntityType discriminates which typed payload Payload decodes into.
	EntityType EntityType `json:"entity_type"`

	// EntityID is the client-generated UUID identifying the entity across
	// both stores.
	EntityID string `json:"entity_id"`

	// Name is the display name extracted from the payload (germplasmName,
	// trialName, ...). Denormalized for listings and the sync status panel.
	Name string `json:"name"`

	// Payload is the typed entity document in its canonical JSON form.
	Payload json.RawMessage `json:"payload"`

	// Version is the server-assigned monotonically increasing revision.
	Version int64 `json:"version"`

	// Deleted marks a soft-deleted record. Deletions replicate like updates.
	Deleted bool `json:"deleted"`

	// UpdatedAt is the time of the last accepted mutation.
	UpdatedAt time.Time `json:"updated_at"`

	// CreatedAt is set once when the server first stores the record.
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// TableName returns the name of the database table
// associated with the Record model.
func (r Record) TableName() string {
	return "records"
}

// LocalRecord is a Record as held in the client replica together with the
// synchronization metadata columns every local row carries.
type LocalRecord struct {
	Record

	// SyncStatus reflects where the row stands relative to the server:
	// synced, pending (unsent local edits), conflict, or error (replay
	// attempts exhausted).
	SyncStatus SyncStatus `json:"sync_status"`

	// BaseVersion is the server version this row was last reconciled at.
	// Pushes carry it so the server can detect concurrent edits.
	BaseVersion int64 `json:"base_version"`

	// LastSyncedAt is the time of the last successful reconciliation of
	// this row, nil if it has never reached the server.
	LastSyncedAt *time.Time `json:"last_synced_at,omitempty"`

	// LocalChanges holds only the locally modified fields as a JSON object.
	// Cleared when the server acknowledges the change or a resolution
	// discards it.
	LocalChanges json.RawMessage `json:"local_changes,omitempty"`
}

// Dirty reports whether the row has local edits the server has not seen.
func (r LocalRecord) Dirty() bool {
	return r.SyncStatus == SyncStatusPending || r.SyncStatus == SyncStatusConflict || r.SyncStatus == SyncStatusError
}

package models

import (
	"encoding/json"
	"time"
)

// PushRequest carries queued client mutations to the server. Operations are
// listed in FIFO order of first enqueue; the server applies them in order and
// answers each one individually.
type PushRequest struct {
	Operations []PushOperation `json:"operations"`
}

// PushOperation is one replayed mutation inside a push request.
type PushOperation struct {
	// OperationID echoes the client-side queue UUID so results can be
	// matched back to their operations.
	OperationID string `json:"operation_id"`

	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`
	Operation  Operation  `json:"operation"`

	// Payload is the full entity document. Omitted for deletes.
	Payload json.RawMessage `json:"payload,omitempty"`

	// BaseVersion is the server version the client last reconciled at.
	// Zero for creates. A mismatch with the server's current version is
	// answered as a conflict.
	BaseVersion int64 `json:"base_version"`
}

// PushStatus is the per-operation outcome inside a push response.
type PushStatus string

const (
	// PushApplied means the mutation was accepted and NewVersion assigned.
	PushApplied PushStatus = "applied"

	// PushConflict means the base version no longer matches; ServerRecord
	// carries the current server copy for conflict materialization.
	PushConflict PushStatus = "conflict"

	// PushError means the mutation was rejected for a reason other than a
	// version conflict (validation failure, storage error).
	PushError PushStatus = "error"
)

// PushResult reports the outcome of one pushed operation.
type PushResult struct {
	OperationID string     `json:"operation_id"`
	Status      PushStatus `json:"status"`

	// NewVersion is the version assigned by an applied mutation.
	NewVersion int64 `json:"new_version,omitempty"`

	// ServerRecord is the server's current copy, set only on conflict.
	ServerRecord *Record `json:"server_record,omitempty"`

	// Error is the rejection reason, set on error results.
	Error string `json:"error,omitempty"`
}

// PushResponse answers a push request with one result per operation, in
// request order.
type PushResponse struct {
	Results []PushResult `json:"results"`
}

// ChangesResponse lists server records changed since the client's watermark.
// ServerTime is the server clock at query time; the client stores it as the
// next pull watermark so no window between query and response is lost.
type ChangesResponse struct {
	Records    []Record  `json:"records"`
	ServerTime time.Time `json:"server_time"`
}

// RecordQuery filters record listings on both stores.
type RecordQuery struct {
	// EntityTypes restricts results to the given types. Empty means all.
	EntityTypes []EntityType `json:"entity_types,omitempty"`

	// EntityIDs restricts results to specific entities.
	EntityIDs []string `json:"entity_ids,omitempty"`

	// Since restricts results to records updated strictly after the given
	// time. Used by the pull phase.
	Since *time.Time `json:"since,omitempty"`

	// IncludeDeleted includes soft-deleted records. Pulls always set it so
	// deletions replicate.
	IncludeDeleted bool `json:"include_deleted,omitempty"`

	// Page and PageSize control result pagination, zero-based page index.
	Page     int `json:"page,omitempty"`
	PageSize int `json:"page_size,omitempty"`
}

// ResolveRequest asks the client conflict resolver to settle one conflict.
type ResolveRequest struct {
	ConflictID string             `json:"conflict_id"`
	Strategy   ResolutionStrategy `json:"strategy"`

	// MergedPayload is the caller-supplied merged document for the merge
	// strategy. When nil, the resolver falls back to the automatic deep
	// merge of local over server.
	MergedPayload json.RawMessage `json:"merged_payload,omitempty"`
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SyncStatus is the synchronization state of a client-side entity row.
type SyncStatus string

const (
	// SyncStatusSynced means the row matches the last known server copy.
	SyncStatusSynced SyncStatus = "synced"

	// SyncStatusPending means the row has local edits queued for push.
	SyncStatusPending SyncStatus = "pending"

	// SyncStatusConflict means local and server copies diverged and a
	// ConflictData row awaits resolution.
	SyncStatusConflict SyncStatus = "conflict"

	// SyncStatusError means replay attempts for the row's pending operation
	// exhausted the retry budget; the operation is parked until re-armed.
	SyncStatusError SyncStatus = "error"
)

// Operation is the kind of mutation a pending sync operation replays.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
)

// Valid reports whether o is one of the replayable mutation kinds.
func (o Operation) Valid() bool {
	switch o {
	case OperationCreate, OperationUpdate, OperationDelete:
		return true
	}
	return false
}

// SyncDirection distinguishes the two phases of a reconciliation pass.
type SyncDirection string

const (
	DirectionPush SyncDirection = "push"
	DirectionPull SyncDirection = "pull"
)

// PendingSyncOperation is one queued local mutation awaiting replay against
// the server. Operations are created in the same transaction as the local
// write, coalesced per (EntityType, EntityID), drained in FIFO order of first
// enqueue, and deleted only once the server acknowledges them. A failed
// replay increments RetryCount and records LastError; the operation is never
// silently dropped.
type PendingSyncOperation struct {
	// ID is a client-generated UUID naming this operation in push requests
	// and their per-operation results.
	ID string `json:"id"`

	// EntityType and EntityID identify the affected entity row.
	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`

	// Operation is the mutation kind to replay.
	Operation Operation `json:"operation"`

	// Payload is the full entity document to apply. Empty for deletes.
	Payload json.RawMessage `json:"payload,omitempty"`

	// BaseVersion is the server version the mutation was made against.
	// Zero for creates.
	BaseVersion int64 `json:"base_version"`

	// RetryCount is how many replay attempts have failed so far.
	RetryCount int `json:"retry_count"`

	// LastError describes the most recent replay failure, empty if none.
	LastError string `json:"last_error,omitempty"`

	// CreatedAt is the first-enqueue time and fixes the FIFO position even
	// when later edits coalesce into the operation.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the time of the last coalesced edit or replay attempt.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the PendingSyncOperation model.
func (p PendingSyncOperation) TableName() string {
	return "pending_sync"
}

// Exhausted reports whether the operation has used up the given retry budget
// and should be parked rather than replayed.
func (p PendingSyncOperation) Exhausted(maxAttempts int) bool {
	return maxAttempts > 0 && p.RetryCount >= maxAttempts
}

// SyncRunStatus is the overall outcome of one push or pull phase.
type SyncRunStatus string

const (
	SyncRunSuccess SyncRunStatus = "success"
	SyncRunPartial SyncRunStatus = "partial"
	SyncRunError   SyncRunStatus = "error"
)

// SyncLogEntry is one append-only audit row describing a completed push or
// pull phase. Entries are never mutated after CompletedAt is set.
type SyncLogEntry struct {
	ID int64 `json:"id"`

	// UserID is the account the pass ran for. Server side only.
	UserID int64 `json:"-"`

	Direction        SyncDirection `json:"direction"`
	RecordsProcessed int           `json:"records_processed"`
	RecordsFailed    int           `json:"records_failed"`
	Status           SyncRunStatus `json:"status"`

	// Error carries the failure description when Status is partial or error.
	Error string `json:"error,omitempty"`

	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
}

// TableName returns the name of the database table
// associated with the SyncLogEntry model.
func (s SyncLogEntry) TableName() string {
	return "sync_log"
}

// ConflictData captures a detected divergence between the local and server
// copies of one entity, kept until a resolution strategy is applied. At most
// one conflict exists per entity row at a time.
type ConflictData struct {
	// ID is a client-generated UUID for the conflict row.
	ID string `json:"id"`

	EntityType EntityType `json:"entity_type"`
	EntityID   string     `json:"entity_id"`

	// LocalData and ServerData are the two full payloads under dispute.
	LocalData  json.RawMessage `json:"local_data"`
	ServerData json.RawMessage `json:"server_data"`

	// LocalVersion is the base version the local edit was made against;
	// ServerVersion is the version the server holds now.
	LocalVersion  int64 `json:"local_version"`
	ServerVersion int64 `json:"server_version"`

	// LocalTimestamp and ServerTimestamp are the respective last-modified
	// times, shown side by side in the resolution dialog.
	LocalTimestamp  time.Time `json:"local_timestamp"`
	ServerTimestamp time.Time `json:"server_timestamp"`

	// ConflictFields lists the payload fields whose values differ, nested
	// keys in dotted form (for example "additionalInfo.plotNumber").
	ConflictFields []string `json:"conflict_fields"`

	DetectedAt time.Time `json:"detected_at"`
}

// TableName returns the name of the database table
// associated with the ConflictData model.
func (c ConflictData) TableName() string {
	return "conflicts"
}

// ResolutionStrategy selects how a conflict is settled.
type ResolutionStrategy string

const (
	// StrategyKeepLocal re-queues the local payload as a pending push made
	// against the server's current version, so the next push wins.
	StrategyKeepLocal ResolutionStrategy = "keep_local"

	// StrategyKeepServer overwrites the local row with the server payload
	// and discards queued local edits.
	StrategyKeepServer ResolutionStrategy = "keep_server"

	// StrategyMerge stores a merged payload locally and queues it for push.
	StrategyMerge ResolutionStrategy = "merge"

	// StrategyManual is a configuration-only value: fresh conflicts are left
	// for interactive resolution instead of being auto-resolved.
	StrategyManual ResolutionStrategy = "manual"
)

// ErrUnknownStrategy is returned when a resolution request names a strategy
// that is not keep_local, keep_server, or merge.
var ErrUnknownStrategy = errors.New("unknown resolution strategy")

// ParseResolutionStrategy converts s to a [ResolutionStrategy] usable in a
// resolution request. StrategyManual is rejected here: it only makes sense
// as a configuration default.
func ParseResolutionStrategy(s string) (ResolutionStrategy, error) {
	switch strategy := ResolutionStrategy(s); strategy {
	case StrategyKeepLocal, StrategyKeepServer, StrategyMerge:
		return strategy, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}

// SyncState is the per-entity-type pull watermark kept by the client.
// A pull asks the server only for records changed after LastPullAt.
type SyncState struct {
	EntityType EntityType `json:"entity_type"`
	LastPullAt time.Time  `json:"last_pull_at"`
}

// TableName returns the name of the database table
// associated with the SyncState model.
func (s SyncState) TableName() string {
	return "sync_state"
}

// SyncStats aggregates queue and conflict counters for the status panel and
// the client stats endpoint.
type SyncStats struct {
	TotalRecords      int        `json:"total_records"`
	PendingOperations int        `json:"pending_operations"`
	ParkedOperations  int        `json:"parked_operations"`
	Conflicts         int        `json:"conflicts"`
	LastPushAt        *time.Time `json:"last_push_at,omitempty"`
	LastPullAt        *time.Time `json:"last_pull_at,omitempty"`

	// OldestUnsyncedAt is the updated_at of the longest-waiting local change
	// the server has not acknowledged. Nil when every row is synced.
	OldestUnsyncedAt *time.Time `json:"oldest_unsynced_at,omitempty"`
}

// OfflineTooLong reports whether the oldest unsynced change has waited more
// than maxDays days as of now.
func (s SyncStats) OfflineTooLong(maxDays int, now time.Time) bool {
	if s.OldestUnsyncedAt == nil || maxDays <= 0 {
		return false
	}
	return now.Sub(*s.OldestUnsyncedAt) > time.Duration(maxDays)*24*time.Hour
}

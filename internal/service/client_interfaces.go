package service

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/agrostack/fieldsync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientAuthService handles the field device's account lifecycle: register,
// login, session persistence, and session restore on startup. Devices keep
// working offline against a persisted session; an expired token only matters
// once connectivity returns.
type ClientAuthService interface {
	// Register creates an account on the server, stores the session locally,
	// and primes the adapter with the bearer token.
	Register(ctx context.Context, creds models.Credentials) (models.Session, error)

	// Login authenticates against the server, stores the session locally,
	// and primes the adapter with the bearer token.
	Login(ctx context.Context, creds models.Credentials) (models.Session, error)

	// RestoreSession loads the persisted session, if any, and primes the
	// adapter with its token. Returns store.ErrSessionNotFound when the
	// device has never logged in.
	RestoreSession(ctx context.Context) (models.Session, error)

	// Logout clears the persisted session and the adapter token. Local data
	// and the pending queue are left untouched.
	Logout(ctx context.Context) error
}

// ClientRecordService is the offline-first CRUD surface over the local
// replica. Every mutation lands in the entity row and the pending queue in
// one transaction; nothing here talks to the network.
type ClientRecordService interface {
	Create(ctx context.Context, entityType models.EntityType, payload json.RawMessage) (models.LocalRecord, error)
	Update(ctx context.Context, entityType models.EntityType, entityID string, payload json.RawMessage) (models.LocalRecord, error)
	Delete(ctx context.Context, entityType models.EntityType, entityID string) error
	Get(ctx context.Context, entityType models.EntityType, entityID string) (models.LocalRecord, error)
	List(ctx context.Context, query models.RecordQuery) ([]models.LocalRecord, error)

	// AttachFile spools a captured file into the device blob store and
	// records it for upload on the next reconciliation pass.
	AttachFile(ctx context.Context, attachment models.Attachment, data io.Reader) (models.LocalAttachment, error)

	// PendingOperations lists the replay queue in FIFO order.
	PendingOperations(ctx context.Context) ([]models.PendingSyncOperation, error)

	// DiscardOperation drops one queued operation without replaying it. A
	// discarded create also removes the local row it would have pushed.
	DiscardOperation(ctx context.Context, operationID string) error

	// Stats aggregates the queue/conflict counters for the status panel.
	Stats(ctx context.Context) (models.SyncStats, error)
}

// Reconciler drives synchronization passes against the server.
type Reconciler interface {
	// Sync runs one full push+pull pass. Overlapping passes are impossible:
	// a second concurrent caller receives ErrSyncInProgress.
	Sync(ctx context.Context) error

	// Push replays the pending queue in FIFO order. Parked operations are
	// skipped until re-armed.
	Push(ctx context.Context) (models.SyncLogEntry, error)

	// Pull fetches server changes past each entity type's watermark and
	// applies them, materializing conflicts instead of overwriting rows
	// with unsent local edits.
	Pull(ctx context.Context) (models.SyncLogEntry, error)

	// RearmParked resets the retry budget of parked operations so the next
	// pass retries them.
	RearmParked(ctx context.Context) (int64, error)

	// History returns the most recent sync log entries, newest first.
	History(ctx context.Context, limit int) ([]models.SyncLogEntry, error)
}

// ConflictResolver settles materialized conflicts.
type ConflictResolver interface {
	// Resolve applies the requested strategy to one conflict. For the merge
	// strategy a nil MergedPayload falls back to the automatic deep merge of
	// local over server.
	Resolve(ctx context.Context, req models.ResolveRequest) error

	// Conflicts lists the open conflicts, oldest first.
	Conflicts(ctx context.Context) ([]models.ConflictData, error)
}

// ClientSyncJob is the background worker running reconciliation passes on a
// ticker.
type ClientSyncJob interface {
	// Start launches the background goroutine. Any previously running job is
	// stopped before the new one begins.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it has
	// fully terminated.
	Stop()
}

// ConnectivityProbe tracks whether the sync server is reachable.
type ConnectivityProbe interface {
	// Start begins probing on the given interval until ctx is cancelled.
	Start(ctx context.Context, interval time.Duration)

	// Online reports the last observed connectivity state.
	Online() bool

	// OnOnline registers a callback fired on every offline-to-online
	// transition. Must be called before Start.
	OnOnline(fn func())
}

// LocalTransactions is the subset of the client store's multi-table
// transactions the sync engine depends on. *store.LocalStore implements it;
// tests substitute stubs.
type LocalTransactions interface {
	SaveEntityAndEnqueue(ctx context.Context, record models.LocalRecord, op models.PendingSyncOperation) (models.LocalRecord, error)
	DeleteEntityAndEnqueue(ctx context.Context, op models.PendingSyncOperation) (bool, error)
	AcknowledgeOperation(ctx context.Context, op models.PendingSyncOperation, newVersion int64, syncedAt time.Time) error
	FailOperation(ctx context.Context, op models.PendingSyncOperation, cause string, parked bool) error
	MaterializeConflict(ctx context.Context, conflict models.ConflictData) error
	ApplyServerRecord(ctx context.Context, rec models.Record, syncedAt time.Time) error
	ResolveKeepServer(ctx context.Context, conflict models.ConflictData, row models.LocalRecord) error
	ResolveKeepLocal(ctx context.Context, conflict models.ConflictData, row models.LocalRecord, op models.PendingSyncOperation) error
	RearmParkedOperations(ctx context.Context, maxAttempts int) (int64, error)
}

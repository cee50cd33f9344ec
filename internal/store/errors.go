package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrLoginAlreadyExists is returned when an attempt to register a new user
	// fails because a user with the same login already exists in the database.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrUserNotFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrUserNotFound = errors.New("user not found")

	// ErrRecordNotFound is returned when a query or update targets an entity
	// record (identified by entity type and entity ID) that does not exist.
	ErrRecordNotFound = errors.New("record not found")

	// ErrRecordAlreadyExists is returned when an INSERT collides with an
	// existing record for the same (user, entity type, entity ID) triple,
	// meaning another device already created this entity.
	ErrRecordAlreadyExists = errors.New("record already exists")

	// ErrVersionConflict is returned when an optimistic-locking check fails:
	// the base version supplied by the client does not match the current
	// version stored in the database, meaning another device has modified the
	// record since this client last synchronized.
	ErrVersionConflict = errors.New("record version conflict occurred")

	// ErrOperationNotFound is returned when a pending sync operation lookup
	// by ID or by entity produces no rows.
	ErrOperationNotFound = errors.New("pending operation not found")

	// ErrConflictNotFound is returned when a conflict lookup by ID or by
	// entity produces no rows.
	ErrConflictNotFound = errors.New("conflict not found")

	// ErrSessionNotFound is returned when the device has no persisted login
	// session.
	ErrSessionNotFound = errors.New("local session not found")

	// ErrSyncLogEmpty is returned when the most recent sync log entry is
	// requested but no synchronization pass has ever completed.
	ErrSyncLogEmpty = errors.New("sync log has no entries")

	// ErrAttachmentNotFound is returned when an attachment metadata lookup
	// produces no rows.
	ErrAttachmentNotFound = errors.New("attachment not found")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrPreparingStatement is returned when a SQL statement cannot be
	// prepared (e.g. syntax error or connection issue).
	ErrPreparingStatement = errors.New("failed to prepare statement")

	// ErrExecutingStatement is returned when executing a prepared DML
	// statement (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)

package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrVersionIsNotSpecified = errors.New("application version is not specified")

	// ErrEmptyBatch is returned when a push request carries no operations.
	ErrEmptyBatch = errors.New("push request has no operations")

	// ErrAttachmentTooLarge is returned when an upload exceeds the size cap.
	ErrAttachmentTooLarge = errors.New("attachment exceeds size limit")
)

// Client-side sentinels.
var (
	// ErrSyncInProgress is returned when a reconciliation pass is requested
	// while another one is still running.
	ErrSyncInProgress = errors.New("sync pass already in progress")

	// ErrNotAuthenticated is returned when a sync pass starts without a
	// session token.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrEntityDeleted is returned when a local edit targets a row whose
	// deletion is already queued.
	ErrEntityDeleted = errors.New("entity is deleted")

	// ErrMergePayloadRequired is returned when a merge resolution cannot
	// produce a payload (both documents malformed and none supplied).
	ErrMergePayloadRequired = errors.New("merge resolution requires a payload")
)

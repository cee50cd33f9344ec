// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

// Package app contains shared application-layer constants used across the
// fieldsync server handlers and middleware.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies or log entries to describe the outcome of an operation.
// Keeping them in one place ensures consistent wording throughout the API.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded or fails basic validation (e.g. missing required fields).
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInvalidLoginPassword is returned when the supplied login/password
	// combination does not match any existing user record.
	MsgInvalidLoginPassword = "invalid login/password"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs that the client cannot resolve.
	MsgInternalServerError = "internal server error"

	// MsgTokenIsExpiredOrInvalid is returned when a JWT bearer token is
	// either expired or cannot be verified (e.g. wrong signature).
	MsgTokenIsExpiredOrInvalid = "token is expired or invalid"

	// MsgLoginAlreadyExists is returned when registration collides with an
	// existing account login.
	MsgLoginAlreadyExists = "login already exists"

	// MsgNoUserIDProvided is returned when a handler requires a user ID (e.g.
	// extracted from the JWT claim) but none is present in the request
	// context.
	MsgNoUserIDProvided = "no user ID provided"

	// MsgVersionConflict is returned when an optimistic concurrency check
	// fails: the record was modified since the caller last reconciled.
	MsgVersionConflict = "record version conflict occurred"

	// MsgRecordNotFound is returned when an entity lookup by type and ID
	// produces no rows.
	MsgRecordNotFound = "record not found"

	// MsgAttachmentNotFound is returned when an attachment lookup produces no
	// rows or its bytes are missing from the blob store.
	MsgAttachmentNotFound = "attachment not found"

	// MsgEmptyPushBatch is returned when a push request carries no operations.
	MsgEmptyPushBatch = "push request has no operations"

	// MsgUnknownEntityType is returned when a path or payload names an entity
	// type the synchronizer does not manage.
	MsgUnknownEntityType = "unknown entity type"

	// MsgBodyHashMismatch is returned when the request body does not verify
	// against the HashSHA256 integrity header.
	MsgBodyHashMismatch = "body hash mismatch"
)

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

// Package adapter provides transport-layer abstractions for communicating with
// the fieldsync server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// service layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) speaking the /api/v2 surface.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrVersionConflict] for 409, [ErrUnauthorized] for
// 401). Transient transport failures are retried inside the adapter with a
// capped exponential backoff before they surface to the reconciler.
package adapter

import (
	"context"
	"io"

	"github.com/agrostack/fieldsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the fieldsync
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests. It should be called immediately
	// after a successful Register or Login, or when a persisted session is
	// restored.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates a new account on the server. On success the bearer
	// token from the Authorization response header is stored via SetToken
	// and returned together with the user ID parsed from its subject claim.
	Register(ctx context.Context, creds models.Credentials) (models.Token, error)

	// Login authenticates against the server. On success the bearer token
	// is stored via SetToken and returned together with the user ID parsed
	// from its subject claim.
	Login(ctx context.Context, creds models.Credentials) (models.Token, error)

	// Health probes the unauthenticated health endpoint. A nil error means
	// the server answered; the connectivity probe treats any error as
	// offline.
	Health(ctx context.Context) error

	// Push replays a batch of queued operations in order and returns the
	// per-operation results. The whole batch is signed with the transport
	// integrity hash when a hash key is configured. Transient failures are
	// retried with backoff inside the call.
	Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error)

	// Changes fetches server records updated after query.Since for the given
	// entity types, tombstones included. The response carries the server
	// clock for use as the next pull watermark.
	Changes(ctx context.Context, query models.RecordQuery) (models.ChangesResponse, error)

	// SyncLog lists the server-side sync audit entries for the
	// authenticated user, newest first.
	SyncLog(ctx context.Context, limit int) ([]models.SyncLogEntry, error)

	// UploadAttachment streams an attachment's bytes to the server and
	// returns the stored metadata.
	UploadAttachment(ctx context.Context, attachment models.Attachment, data io.Reader) (models.Attachment, error)
}

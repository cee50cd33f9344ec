// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

// Package blob stores attachment bytes behind a driver-selectable interface.
//
// The relational stores keep only attachment metadata; the bytes live here.
// Three drivers ship with the application: an in-memory store for tests, a
// filesystem store for single-node deployments and the field client's local
// spool, and an S3-compatible store for production servers.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/agrostack/fieldsync/internal/config"
)

// Driver identifies a concrete blob storage backend implementation.
type Driver string

const (
	DriverFilesystem Driver = "fs"     // local filesystem (default)
	DriverS3         Driver = "s3"     // S3 / MinIO compatible
	DriverMemory     Driver = "memory" // in-memory (tests)
)

// Info describes a stored blob.
type Info struct {
	Key         string    `json:"key"`
	SizeBytes   int64     `json:"size_bytes"`
	ContentType string    `json:"content_type,omitempty"`
	StoredAt    time.Time `json:"stored_at"`
}

// Store is the attachment byte store. Keys are opaque strings chosen by the
// caller; the attachment service derives them from attachment UUIDs.
// Semantics mirror a minimal subset of S3 so the fs and memory drivers can
// emulate the s3 driver exactly.
type Store interface {
	// Put stores the blob under key. Fails when the key already exists:
	// attachment keys are UUIDs and never legitimately collide.
	Put(ctx context.Context, key string, r io.Reader, contentType string) (Info, error)

	// Get returns the blob metadata and a reader over its bytes. The caller
	// owns the reader and must close it.
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)

	// Stat returns metadata only.
	Stat(ctx context.Context, key string) (Info, error)

	// Delete removes the blob. Returns (false, nil) when the key is absent.
	Delete(ctx context.Context, key string) (bool, error)

	// Driver reports the configured backend.
	Driver() Driver
}

var (
	// ErrNotFound is returned when a key has no stored blob.
	ErrNotFound = errors.New("blob not found")

	// ErrAlreadyExists is returned by Put when the key is taken.
	ErrAlreadyExists = errors.New("blob already exists")
)

// Open constructs the store selected by cfg.Driver. An empty driver falls
// back to the filesystem store.
func Open(ctx context.Context, cfg config.Blob) (Store, error) {
	switch Driver(cfg.Driver) {
	case DriverMemory:
		return NewMemory(), nil
	case DriverS3:
		return NewS3(ctx, cfg)
	case DriverFilesystem, "":
		return NewFilesystem(cfg.Dir)
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.Driver)
	}
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// memoryStore keeps blobs in a map. Used by tests and as a reference
// implementation of the Store semantics.
type memoryStore struct {
	mu    sync.RWMutex
	blobs map[string]memoryBlob
}

type memoryBlob struct {
	data        []byte
	contentType string
	storedAt    time.Time
}

// NewMemory returns an empty in-memory blob store.
func NewMemory() Store {
	return &memoryStore{blobs: make(map[string]memoryBlob)}
}

func (m *memoryStore) Put(ctx context.Context, key string, r io.Reader, contentType string) (Info, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Info{}, fmt.Errorf("read blob %s: %w", key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.blobs[key]; exists {
		return Info{}, fmt.Errorf("%w: %s", ErrAlreadyExists, key)
	}

	b := memoryBlob{data: data, contentType: contentType, storedAt: time.Now().UTC()}
	m.blobs[key] = b

	return m.info(key, b), nil
}

func (m *memoryStore) Get(ctx context.Context, key string) (Info, io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.blobs[key]
	if !ok {
		return Info{}, nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	return m.info(key, b), io.NopCloser(bytes.NewReader(b.data)), nil
}

func (m *memoryStore) Stat(ctx context.Context, key string) (Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.blobs[key]
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	return m.info(key, b), nil
}

func (m *memoryStore) Delete(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.blobs[key]; !ok {
		return false, nil
	}
	delete(m.blobs, key)
	return true, nil
}

func (m *memoryStore) Driver() Driver {
	return DriverMemory
}

func (m *memoryStore) info(key string, b memoryBlob) Info {
	return Info{
		Key:         key,
		SizeBytes:   int64(len(b.data)),
		ContentType: b.contentType,
		StoredAt:    b.storedAt,
	}
}

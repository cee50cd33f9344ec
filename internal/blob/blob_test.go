// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package blob

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newStores returns each driver that can run without external services.
func newStores(t *testing.T) map[string]Store {
	t.Helper()

	fsStore, err := NewFilesystem(t.TempDir())
	require.NoError(t, err)

	return map[string]Store{
		"memory": NewMemory(),
		"fs":     fsStore,
	}
}

func TestStorePutGetRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			payload := "field photo bytes"

			info, err := store.Put(ctx, "0198f1a2-op", strings.NewReader(payload), "image/jpeg")
			require.NoError(t, err)
			assert.Equal(t, int64(len(payload)), info.SizeBytes)
			assert.Equal(t, "image/jpeg", info.ContentType)

			got, rc, err := store.Get(ctx, "0198f1a2-op")
			require.NoError(t, err)
			defer rc.Close()

			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, payload, string(data))
			assert.Equal(t, info.SizeBytes, got.SizeBytes)
			assert.Equal(t, "image/jpeg", got.ContentType)
		})
	}
}

func TestStorePutRejectsDuplicateKey(t *testing.T) {
	ctx := context.Background()

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Put(ctx, "dup", strings.NewReader("a"), "")
			require.NoError(t, err)

			_, err = store.Put(ctx, "dup", strings.NewReader("b"), "")
			assert.ErrorIs(t, err, ErrAlreadyExists)
		})
	}
}

func TestStoreGetMissingKey(t *testing.T) {
	ctx := context.Background()

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			_, _, err := store.Get(ctx, "absent")
			assert.ErrorIs(t, err, ErrNotFound)

			_, err = store.Stat(ctx, "absent")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStoreDelete(t *testing.T) {
	ctx := context.Background()

	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Put(ctx, "gone", strings.NewReader("x"), "")
			require.NoError(t, err)

			removed, err := store.Delete(ctx, "gone")
			require.NoError(t, err)
			assert.True(t, removed)

			removed, err = store.Delete(ctx, "gone")
			require.NoError(t, err)
			assert.False(t, removed)

			_, err = store.Stat(ctx, "gone")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestFilesystemRejectsTraversalKeys(t *testing.T) {
	store, err := NewFilesystem(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape", `a/b`, `a\b`} {
		_, putErr := store.Put(context.Background(), key, strings.NewReader("x"), "")
		assert.Error(t, putErr, "key %q", key)
	}
}

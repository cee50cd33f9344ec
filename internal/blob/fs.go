// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package blob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// fsStore lays blobs out as <root>/<2-char shard>/<key> with a sidecar
// <key>.meta JSON file carrying the content type. The shard level keeps
// directories small when a season's worth of field photos accumulates.
type fsStore struct {
	root string
}

type fsMeta struct {
	ContentType string `json:"content_type,omitempty"`
}

// NewFilesystem returns a filesystem blob store rooted at dir, creating the
// directory when missing. An empty dir defaults to "./blobs".
func NewFilesystem(dir string) (Store, error) {
	if dir == "" {
		dir = "blobs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create blob root %s: %w", dir, err)
	}
	return &fsStore{root: dir}, nil
}

func (f *fsStore) Put(ctx context.Context, key string, r io.Reader, contentType string) (Info, error) {
	path, err := f.path(key)
	if err != nil {
		return Info{}, err
	}

	if _, err := os.Stat(path); err == nil {
		return Info{}, fmt.Errorf("%w: %s", ErrAlreadyExists, key)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return Info{}, fmt.Errorf("create shard dir for %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return Info{}, fmt.Errorf("create temp file for %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	size, err := io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return Info{}, fmt.Errorf("write blob %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return Info{}, fmt.Errorf("store blob %s: %w", key, err)
	}

	if contentType != "" {
		meta, marshalErr := json.Marshal(fsMeta{ContentType: contentType})
		if marshalErr == nil {
			_ = os.WriteFile(path+".meta", meta, 0o644)
		}
	}

	return Info{Key: key, SizeBytes: size, ContentType: contentType, StoredAt: time.Now().UTC()}, nil
}

func (f *fsStore) Get(ctx context.Context, key string) (Info, io.ReadCloser, error) {
	info, err := f.Stat(ctx, key)
	if err != nil {
		return Info{}, nil, err
	}

	path, err := f.path(key)
	if err != nil {
		return Info{}, nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return Info{}, nil, fmt.Errorf("open blob %s: %w", key, err)
	}

	return info, file, nil
}

func (f *fsStore) Stat(ctx context.Context, key string) (Info, error) {
	path, err := f.path(key)
	if err != nil {
		return Info{}, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Info{}, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return Info{}, fmt.Errorf("stat blob %s: %w", key, err)
	}

	info := Info{Key: key, SizeBytes: stat.Size(), StoredAt: stat.ModTime().UTC()}

	if metaBytes, metaErr := os.ReadFile(path + ".meta"); metaErr == nil {
		var meta fsMeta
		if json.Unmarshal(metaBytes, &meta) == nil {
			info.ContentType = meta.ContentType
		}
	}

	return info, nil
}

func (f *fsStore) Delete(ctx context.Context, key string) (bool, error) {
	path, err := f.path(key)
	if err != nil {
		return false, err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("delete blob %s: %w", key, err)
	}
	_ = os.Remove(path + ".meta")

	return true, nil
}

func (f *fsStore) Driver() Driver {
	return DriverFilesystem
}

// path validates the key and maps it to its sharded location. Keys are
// attachment UUIDs, so path traversal characters are always a caller bug.
func (f *fsStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid blob key %q", key)
	}

	shard := key
	if len(shard) > 2 {
		shard = shard[:2]
	}

	return filepath.Join(f.root, shard, key), nil
}

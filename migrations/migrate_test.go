// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package migrations

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	_ "github.com/mattn/go-sqlite3"
)

func TestMigrateServer_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	_ = mock // goose talks to the DB directly; no expectations are set

	err = MigrateServer(db)
	if err == nil {
		t.Fatal("expected error from MigrateServer, got nil")
	}

	if !strings.Contains(err.Error(), "migration error") {
		t.Errorf("expected wrapped migration error, got: %v", err)
	}
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	if err := MigrateServer(db); err == nil || !strings.Contains(err.Error(), "db is nil") {
		t.Errorf("expected 'db is nil' error from MigrateServer, got: %v", err)
	}

	if err := MigrateClient(db); err == nil || !strings.Contains(err.Error(), "db is nil") {
		t.Errorf("expected 'db is nil' error from MigrateClient, got: %v", err)
	}
}

func TestMigrateClient_InMemorySQLite(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	defer db.Close()

	if err := MigrateClient(db); err != nil {
		t.Fatalf("expected client migrations to apply cleanly, got: %v", err)
	}

	tables := []string{
		"records", "pending_sync", "conflicts",
		"sync_log", "sync_state", "session", "attachments",
	}
	for _, table := range tables {
		var name string
		err := db.QueryRow(
			`SELECT name FROM sqlite_master WHERE type='table' AND name = ?`, table,
		).Scan(&name)
		if err != nil {
			t.Errorf("expected table %q after migration: %v", table, err)
		}
	}
}

func TestMigrateClient_Idempotent(t *testing.T) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	defer db.Close()

	if err := MigrateClient(db); err != nil {
		t.Fatalf("first migration run failed: %v", err)
	}
	if err := MigrateClient(db); err != nil {
		t.Fatalf("second migration run must be a no-op, got: %v", err)
	}
}

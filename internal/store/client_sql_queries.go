// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/agrostack/fieldsync/models"
)

// localRecordColumns is the scan order shared by every client record query.
const localRecordColumns = `
	id,
	entity_type,
	entity_id,
	name,
	payload,
	version,
	deleted,
	created_at,
	updated_at,
	sync_status,
	base_version,
	last_synced_at,
	local_changes`

const (
	upsertLocalRecord = `
		INSERT INTO records (
			entity_type,
			entity_id,
			name,
			payload,
			version,
			deleted,
			created_at,
			updated_at,
			sync_status,
			base_version,
			last_synced_at,
			local_changes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (entity_type, entity_id) DO UPDATE SET
			name           = excluded.name,
			payload        = excluded.payload,
			version        = excluded.version,
			deleted        = excluded.deleted,
			updated_at     = excluded.updated_at,
			sync_status    = excluded.sync_status,
			base_version   = excluded.base_version,
			last_synced_at = excluded.last_synced_at,
			local_changes  = excluded.local_changes
		RETURNING id, created_at;`

	getLocalRecord = `
		SELECT` + localRecordColumns + `
		FROM records
		WHERE entity_type = ? AND entity_id = ?;`

	listDirtyRecords = `
		SELECT` + localRecordColumns + `
		FROM records
		WHERE sync_status != 'synced'
		ORDER BY updated_at ASC, id ASC;`

	markRecordSynced = `
		UPDATE records SET
			version        = ?,
			base_version   = ?,
			sync_status    = 'synced',
			last_synced_at = ?,
			local_changes  = NULL
		WHERE entity_type = ? AND entity_id = ?;`

	markRecordStatus = `
		UPDATE records
		SET sync_status = ?
		WHERE entity_type = ? AND entity_id = ?;`

	deleteLocalRecord = `
		DELETE FROM records
		WHERE entity_type = ? AND entity_id = ?;`

	markRecordDeleted = `
		UPDATE records SET
			deleted     = 1,
			sync_status = 'pending',
			updated_at  = ?
		WHERE entity_type = ? AND entity_id = ?;`

	rearmErrorRecords = `
		UPDATE records
		SET sync_status = 'pending'
		WHERE sync_status = 'error';`

	countLocalRecords = `
		SELECT COUNT(*) FROM records
		WHERE deleted = 0;`

	oldestUnsyncedRecord = `
		SELECT MIN(updated_at) FROM records
		WHERE sync_status != 'synced';`

	countLocalRecordsByType = `
		SELECT COUNT(*) FROM records
		WHERE deleted = 0 AND entity_type = ?;`
)

const (
	pendingOperationColumns = `
		id,
		entity_type,
		entity_id,
		operation,
		payload,
		base_version,
		retry_count,
		last_error,
		created_at,
		updated_at`

	getPendingOperationForEntity = `
		SELECT` + pendingOperationColumns + `
		FROM pending_sync
		WHERE entity_type = ? AND entity_id = ?;`

	insertPendingOperation = `
		INSERT INTO pending_sync (
			id,
			entity_type,
			entity_id,
			operation,
			payload,
			base_version,
			retry_count,
			last_error,
			created_at,
			updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`

	// created_at stays untouched so coalesced edits keep the operation's
	// original FIFO position.
	updatePendingOperation = `
		UPDATE pending_sync SET
			operation    = ?,
			payload      = ?,
			base_version = ?,
			retry_count  = ?,
			last_error   = ?,
			updated_at   = ?
		WHERE id = ?;`

	deletePendingOperation = `
		DELETE FROM pending_sync
		WHERE id = ?;`

	deletePendingOperationForEntity = `
		DELETE FROM pending_sync
		WHERE entity_type = ? AND entity_id = ?;`

	listPendingOperationsFIFO = `
		SELECT` + pendingOperationColumns + `
		FROM pending_sync
		ORDER BY created_at ASC, id ASC;`

	setPendingOperationRetry = `
		UPDATE pending_sync SET
			retry_count = ?,
			last_error  = ?,
			updated_at  = ?
		WHERE id = ?;`

	resetPendingOperationRetry = `
		UPDATE pending_sync SET
			retry_count = 0,
			last_error  = '',
			updated_at  = ?
		WHERE id = ?;`

	countQueueTotal = `
		SELECT COUNT(*) FROM pending_sync;`

	countQueueParked = `
		SELECT COUNT(*) FROM pending_sync
		WHERE retry_count >= ?;`

	rearmParkedOperations = `
		UPDATE pending_sync SET
			retry_count = 0,
			last_error  = '',
			updated_at  = ?
		WHERE retry_count >= ?;`
)

const (
	conflictColumns = `
		id,
		entity_type,
		entity_id,
		local_data,
		server_data,
		local_version,
		server_version,
		local_timestamp,
		server_timestamp,
		conflict_fields,
		detected_at`

	upsertConflict = `
		INSERT INTO conflicts (
			id,
			entity_type,
			entity_id,
			local_data,
			server_data,
			local_version,
			server_version,
			local_timestamp,
			server_timestamp,
			conflict_fields,
			detected_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (entity_type, entity_id) DO UPDATE SET
			id               = excluded.id,
			local_data       = excluded.local_data,
			server_data      = excluded.server_data,
			local_version    = excluded.local_version,
			server_version   = excluded.server_version,
			local_timestamp  = excluded.local_timestamp,
			server_timestamp = excluded.server_timestamp,
			conflict_fields  = excluded.conflict_fields,
			detected_at      = excluded.detected_at;`

	getConflict = `
		SELECT` + conflictColumns + `
		FROM conflicts
		WHERE id = ?;`

	getConflictForEntity = `
		SELECT` + conflictColumns + `
		FROM conflicts
		WHERE entity_type = ? AND entity_id = ?;`

	listConflicts = `
		SELECT` + conflictColumns + `
		FROM conflicts
		ORDER BY detected_at ASC, id ASC;`

	deleteConflict = `
		DELETE FROM conflicts
		WHERE id = ?;`

	deleteConflictForEntity = `
		DELETE FROM conflicts
		WHERE entity_type = ? AND entity_id = ?;`

	countConflicts = `
		SELECT COUNT(*) FROM conflicts;`
)

const (
	appendLocalSyncLog = `
		INSERT INTO sync_log (
			direction,
			records_processed,
			records_failed,
			status,
			error,
			started_at,
			completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?);`

	listLocalSyncLog = `
		SELECT
			id,
			direction,
			records_processed,
			records_failed,
			status,
			error,
			started_at,
			completed_at
		FROM sync_log
		ORDER BY started_at DESC, id DESC
		LIMIT ? OFFSET ?;`

	lastLocalSyncLog = `
		SELECT
			id,
			direction,
			records_processed,
			records_failed,
			status,
			error,
			started_at,
			completed_at
		FROM sync_log
		WHERE direction = ?
		ORDER BY started_at DESC, id DESC
		LIMIT 1;`
)

const (
	getSyncState = `
		SELECT last_pull_at FROM sync_state
		WHERE entity_type = ?;`

	setSyncState = `
		INSERT INTO sync_state (entity_type, last_pull_at)
		VALUES (?, ?)
		ON CONFLICT (entity_type) DO UPDATE SET
			last_pull_at = excluded.last_pull_at;`

	allSyncState = `
		SELECT entity_type, last_pull_at FROM sync_state;`
)

const (
	saveSession = `
		INSERT INTO session (id, login, token, user_id, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			login      = excluded.login,
			token      = excluded.token,
			user_id    = excluded.user_id,
			updated_at = excluded.updated_at;`

	loadSession = `
		SELECT login, token, user_id, updated_at FROM session
		WHERE id = 1;`

	clearSession = `
		DELETE FROM session;`
)

const (
	localAttachmentColumns = `
		id,
		attachment_id,
		entity_type,
		entity_id,
		file_name,
		content_type,
		size_bytes,
		checksum,
		storage_key,
		uploaded,
		created_at`

	saveLocalAttachment = `
		INSERT INTO attachments (
			attachment_id,
			entity_type,
			entity_id,
			file_name,
			content_type,
			size_bytes,
			checksum,
			storage_key,
			uploaded,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (attachment_id) DO UPDATE SET
			file_name    = excluded.file_name,
			content_type = excluded.content_type,
			size_bytes   = excluded.size_bytes,
			checksum     = excluded.checksum,
			storage_key  = excluded.storage_key,
			uploaded     = excluded.uploaded;`

	getLocalAttachment = `
		SELECT` + localAttachmentColumns + `
		FROM attachments
		WHERE attachment_id = ?;`

	listLocalAttachmentsForEntity = `
		SELECT` + localAttachmentColumns + `
		FROM attachments
		WHERE entity_type = ? AND entity_id = ?
		ORDER BY created_at ASC, id ASC;`

	listLocalAttachmentsPendingUpload = `
		SELECT` + localAttachmentColumns + `
		FROM attachments
		WHERE uploaded = 0
		ORDER BY created_at ASC, id ASC;`

	markLocalAttachmentUploaded = `
		UPDATE attachments
		SET uploaded = 1
		WHERE attachment_id = ?;`

	deleteLocalAttachment = `
		DELETE FROM attachments
		WHERE attachment_id = ?;`
)

// buildListLocalRecordsQuery translates a RecordQuery into SQL for the client
// replica. SQLite keeps the default question mark placeholders.
func buildListLocalRecordsQuery(query models.RecordQuery) (string, []interface{}, error) {
	qb := sq.Select(
		"id", "entity_type", "entity_id", "name", "payload", "version",
		"deleted", "created_at", "updated_at", "sync_status", "base_version",
		"last_synced_at", "local_changes",
	).From("records")

	if len(query.EntityTypes) > 0 {
		qb = qb.Where(sq.Eq{"entity_type": query.EntityTypes})
	}
	if len(query.EntityIDs) > 0 {
		qb = qb.Where(sq.Eq{"entity_id": query.EntityIDs})
	}
	if query.Since != nil {
		qb = qb.Where(sq.Gt{"updated_at": *query.Since})
	}
	if !query.IncludeDeleted {
		qb = qb.Where(sq.Eq{"deleted": 0})
	}

	qb = qb.OrderBy("updated_at ASC", "id ASC")
	if query.PageSize > 0 {
		qb = qb.Limit(uint64(query.PageSize)).Offset(uint64(query.Page * query.PageSize))
	}

	sql, args, err := qb.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return sql, args, nil
}

package store

import (
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/agrostack/fieldsync/models"
)

const (
	createUser = `INSERT INTO users (login, name, password_hash)
    VALUES ($1, $2, $3)
    RETURNING user_id, login, name, password_hash, created_at;`

	findUserByLogin = `SELECT user_id, login, name, password_hash, created_at
    FROM users
    WHERE login = $1;`

	getRecord = `SELECT id, user_id, entity_type, entity_id, name, payload, version, deleted, created_at, updated_at
    FROM records
    WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3;`

	insertRecord = `INSERT INTO records (user_id, entity_type, entity_id, name, payload, version, deleted, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, 1, FALSE, now(), now())
    RETURNING id, version, created_at, updated_at;`

	// updateRecord bumps the version only when the caller's base version
	// still matches the stored one. The trailing LEFT JOIN lets the caller
	// distinguish "not found" (zero rows) from "version conflict" (a row
	// whose updated columns are NULL but whose current_version is not).
	updateRecord = `WITH target_record AS (
        SELECT id, version
        FROM records
        WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3
    ), updated AS (
        UPDATE records r
        SET name = $4,
            payload = $5,
            deleted = FALSE,
            version = t.version + 1,
            updated_at = now()
        FROM target_record t
        WHERE r.id = t.id AND t.version = $6
        RETURNING r.id, r.version, r.updated_at
    )
    SELECT u.id, u.version, u.updated_at, t.version AS current_version
    FROM target_record t
    LEFT JOIN updated u ON u.id = t.id;`

	// softDeleteRecord keeps the row as a tombstone so that other devices
	// observe the deletion on their next pull.
	softDeleteRecord = `WITH target_record AS (
        SELECT id, version
        FROM records
        WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3
    ), updated AS (
        UPDATE records r
        SET deleted = TRUE,
            version = t.version + 1,
            updated_at = now()
        FROM target_record t
        WHERE r.id = t.id AND t.version = $4
        RETURNING r.id, r.version, r.updated_at
    )
    SELECT u.id, u.version, u.updated_at, t.version AS current_version
    FROM target_record t
    LEFT JOIN updated u ON u.id = t.id;`

	appendSyncLog = `INSERT INTO sync_log (user_id, direction, records_processed, records_failed, status, error, started_at, completed_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    RETURNING id;`

	listSyncLog = `SELECT id, user_id, direction, records_processed, records_failed, status, error, started_at, completed_at
    FROM sync_log
    WHERE user_id = $1
    ORDER BY started_at DESC, id DESC
    LIMIT $2 OFFSET $3;`

	saveAttachment = `INSERT INTO attachments (user_id, attachment_id, entity_type, entity_id, file_name, content_type, size_bytes, checksum, storage_key)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    RETURNING id, created_at;`

	getAttachment = `SELECT id, user_id, attachment_id, entity_type, entity_id, file_name, content_type, size_bytes, checksum, storage_key, created_at
    FROM attachments
    WHERE user_id = $1 AND attachment_id = $2;`

	listAttachmentsForEntity = `SELECT id, user_id, attachment_id, entity_type, entity_id, file_name, content_type, size_bytes, checksum, storage_key, created_at
    FROM attachments
    WHERE user_id = $1 AND entity_type = $2 AND entity_id = $3
    ORDER BY created_at ASC;`
)

var recordColumns = []string{
	"id", "user_id", "entity_type", "entity_id", "name",
	"payload", "version", "deleted", "created_at", "updated_at",
}

// buildListRecordsQuery assembles the filtered SELECT used by both the
// BrAPI list endpoints and the incremental /sync/changes pull. Rows are
// ordered by (updated_at, id) so that pagination stays stable while
// other devices keep pushing.
func buildListRecordsQuery(userID int64, query models.RecordQuery) (string, []any, error) {
	qb := recordFilter(sq.Select(recordColumns...).From("records"), userID, query).
		OrderBy("updated_at ASC", "id ASC")

	if query.PageSize > 0 {
		qb = qb.Limit(uint64(query.PageSize)).Offset(uint64(query.Page) * uint64(query.PageSize))
	}

	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return sqlStr, args, nil
}

// buildCountRecordsQuery assembles the COUNT companion of
// [buildListRecordsQuery], sharing the same filters but no pagination.
func buildCountRecordsQuery(userID int64, query models.RecordQuery) (string, []any, error) {
	qb := recordFilter(sq.Select("COUNT(*)").From("records"), userID, query)

	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return sqlStr, args, nil
}

func recordFilter(qb sq.SelectBuilder, userID int64, query models.RecordQuery) sq.SelectBuilder {
	qb = qb.Where(sq.Eq{"user_id": userID}).PlaceholderFormat(sq.Dollar)

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
		qb = qb.Where(sq.Eq{"deleted": false})
	}

	return qb
}

// buildListChangedAttachmentsQuery lists attachment metadata created after
// the given watermark. Attachments are immutable, so created_at is the
// only change signal.
func buildListChangedAttachmentsQuery(userID int64, since *time.Time) (string, []any, error) {
	qb := sq.Select(
		"id", "user_id", "attachment_id", "entity_type", "entity_id",
		"file_name", "content_type", "size_bytes", "checksum", "storage_key", "created_at",
	).
		From("attachments").
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(sq.Dollar).
		OrderBy("created_at ASC", "id ASC")

	if since != nil {
		qb = qb.Where(sq.Gt{"created_at": *since})
	}

	sqlStr, args, err := qb.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return sqlStr, args, nil
}

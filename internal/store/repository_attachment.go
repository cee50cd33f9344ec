package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"

	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/models"
)

// attachmentRepository is the PostgreSQL-backed implementation of
// [AttachmentRepository]. Rows hold metadata only; the attachment bytes
// are written to the blob store under StorageKey before the row exists.
type attachmentRepository struct {
	*DB
	logger *logger.Logger
}

// NewAttachmentRepository constructs an [AttachmentRepository] backed by
// the provided database connection and logger.
func NewAttachmentRepository(db *DB, logger *logger.Logger) AttachmentRepository {
	return &attachmentRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveAttachment inserts one metadata row. Re-uploading the same
// attachment ID is treated as idempotent success: the existing row is
// fetched and returned.
func (a *attachmentRepository) SaveAttachment(ctx context.Context, attachment models.Attachment) (models.Attachment, error) {
	log := logger.FromContext(ctx)

	err := a.DB.QueryRowContext(ctx, saveAttachment,
		attachment.UserID,
		attachment.AttachmentID,
		attachment.EntityType,
		attachment.EntityID,
		attachment.FileName,
		attachment.ContentType,
		attachment.SizeBytes,
		attachment.Checksum,
		attachment.StorageKey,
	).Scan(&attachment.ID, &attachment.CreatedAt)
	if err != nil {
		if postgresError(err) == pgerrcode.UniqueViolation {
			log.Debug().
				Str("func", "attachmentRepository.SaveAttachment").
				Str("attachment_id", attachment.AttachmentID).
				Msg("attachment already saved, returning existing row")
			return a.GetAttachment(ctx, attachment.UserID, attachment.AttachmentID)
		}
		log.Err(err).
			Str("func", "attachmentRepository.SaveAttachment").
			Int64("user_id", attachment.UserID).
			Str("attachment_id", attachment.AttachmentID).
			Msg("failed to save attachment metadata")
		return models.Attachment{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return attachment, nil
}

// GetAttachment fetches one metadata row by owner and attachment ID.
// Returns [ErrAttachmentNotFound] when no row matches.
func (a *attachmentRepository) GetAttachment(ctx context.Context, userID int64, attachmentID string) (models.Attachment, error) {
	log := logger.FromContext(ctx)

	var att models.Attachment
	row := a.DB.QueryRowContext(ctx, getAttachment, userID, attachmentID)

	err := row.Scan(
		&att.ID,
		&att.UserID,
		&att.AttachmentID,
		&att.EntityType,
		&att.EntityID,
		&att.FileName,
		&att.ContentType,
		&att.SizeBytes,
		&att.Checksum,
		&att.StorageKey,
		&att.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Attachment{}, ErrAttachmentNotFound
		}
		log.Err(err).
			Str("func", "attachmentRepository.GetAttachment").
			Int64("user_id", userID).
			Str("attachment_id", attachmentID).
			Msg("failed to scan attachment row")
		return models.Attachment{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return att, nil
}

// ListAttachments returns all attachment metadata for one entity in
// upload order.
func (a *attachmentRepository) ListAttachments(ctx context.Context, userID int64, entityType models.EntityType, entityID string) ([]models.Attachment, error) {
	log := logger.FromContext(ctx)

	rows, err := a.DB.QueryContext(ctx, listAttachmentsForEntity, userID, entityType, entityID)
	if err != nil {
		log.Err(err).
			Str("func", "attachmentRepository.ListAttachments").
			Int64("user_id", userID).
			Str("entity_id", entityID).
			Msg("failed to execute query for listing attachments")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return a.scanAttachmentRows(rows, log)
}

// ListChangedSince returns attachment metadata created after the given
// watermark; a nil watermark returns everything.
func (a *attachmentRepository) ListChangedSince(ctx context.Context, userID int64, since *time.Time) ([]models.Attachment, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListChangedAttachmentsQuery(userID, since)
	if err != nil {
		log.Err(err).
			Str("func", "attachmentRepository.ListChangedSince").
			Int64("user_id", userID).
			Msg("failed to build query")
		return nil, err
	}

	rows, err := a.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "attachmentRepository.ListChangedSince").
			Int64("user_id", userID).
			Msg("failed to execute query for changed attachments")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return a.scanAttachmentRows(rows, log)
}

func (a *attachmentRepository) scanAttachmentRows(rows *sql.Rows, log *logger.Logger) ([]models.Attachment, error) {
	attachments := make([]models.Attachment, 0, 10)

	for rows.Next() {
		var att models.Attachment

		scanErr := rows.Scan(
			&att.ID,
			&att.UserID,
			&att.AttachmentID,
			&att.EntityType,
			&att.EntityID,
			&att.FileName,
			&att.ContentType,
			&att.SizeBytes,
			&att.Checksum,
			&att.StorageKey,
			&att.CreatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "attachmentRepository.scanAttachmentRows").
				Msg("failed to scan attachment row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		attachments = append(attachments, att)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "attachmentRepository.scanAttachmentRows").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return attachments, nil
}

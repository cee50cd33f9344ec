package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/models"
)

// localAttachmentRepository is the SQLite-backed implementation of
// [LocalAttachmentRepository]. Only metadata lives here; the bytes sit in
// the device-local blob store under StorageKey until uploaded.
type localAttachmentRepository struct {
	*DB
	logger *logger.Logger
}

// NewLocalAttachmentRepository constructs a [LocalAttachmentRepository]
// backed by the client database.
func NewLocalAttachmentRepository(db *DB, logger *logger.Logger) LocalAttachmentRepository {
	return &localAttachmentRepository{
		DB:     db,
		logger: logger,
	}
}

// Save stores the attachment metadata, replacing an existing row with the
// same attachment id so retried captures stay idempotent.
func (r *localAttachmentRepository) Save(ctx context.Context, attachment models.LocalAttachment) error {
	log := logger.FromContext(ctx)

	_, err := r.DB.ExecContext(ctx, saveLocalAttachment,
		attachment.AttachmentID,
		attachment.EntityType,
		attachment.EntityID,
		attachment.FileName,
		attachment.ContentType,
		attachment.SizeBytes,
		attachment.Checksum,
		attachment.StorageKey,
		attachment.Uploaded,
		attachment.CreatedAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "localAttachmentRepository.Save").
			Str("attachment_id", attachment.AttachmentID).
			Str("entity_id", attachment.EntityID).
			Msg("failed to save local attachment")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// Get fetches one attachment by its client-generated id.
func (r *localAttachmentRepository) Get(ctx context.Context, attachmentID string) (models.LocalAttachment, error) {
	log := logger.FromContext(ctx)

	row := r.DB.QueryRowContext(ctx, getLocalAttachment, attachmentID)

	attachment, err := scanLocalAttachment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.LocalAttachment{}, ErrAttachmentNotFound
		}
		log.Err(err).
			Str("func", "localAttachmentRepository.Get").
			Str("attachment_id", attachmentID).
			Msg("failed to scan local attachment row")
		return models.LocalAttachment{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return attachment, nil
}

// ListForEntity returns the attachments linked to one entity.
func (r *localAttachmentRepository) ListForEntity(ctx context.Context, entityType models.EntityType, entityID string) ([]models.LocalAttachment, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listLocalAttachmentsForEntity, entityType, entityID)
	if err != nil {
		log.Err(err).
			Str("func", "localAttachmentRepository.ListForEntity").
			Str("entity_type", string(entityType)).
			Str("entity_id", entityID).
			Msg("failed to execute query for listing attachments")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectLocalAttachments(rows, log)
}

// ListPendingUpload returns attachments whose bytes have not reached the
// server yet, oldest first.
func (r *localAttachmentRepository) ListPendingUpload(ctx context.Context) ([]models.LocalAttachment, error) {
	log := logger.FromContext(ctx)

	rows, err := r.DB.QueryContext(ctx, listLocalAttachmentsPendingUpload)
	if err != nil {
		log.Err(err).
			Str("func", "localAttachmentRepository.ListPendingUpload").
			Msg("failed to execute query for listing pending attachments")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	return collectLocalAttachments(rows, log)
}

// MarkUploaded records that the server acknowledged the attachment bytes.
func (r *localAttachmentRepository) MarkUploaded(ctx context.Context, attachmentID string) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, markLocalAttachmentUploaded, attachmentID)
	if err != nil {
		log.Err(err).
			Str("func", "localAttachmentRepository.MarkUploaded").
			Str("attachment_id", attachmentID).
			Msg("failed to mark attachment uploaded")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireRowAffected(result, ErrAttachmentNotFound)
}

// Delete removes the attachment metadata row.
func (r *localAttachmentRepository) Delete(ctx context.Context, attachmentID string) error {
	log := logger.FromContext(ctx)

	result, err := r.DB.ExecContext(ctx, deleteLocalAttachment, attachmentID)
	if err != nil {
		log.Err(err).
			Str("func", "localAttachmentRepository.Delete").
			Str("attachment_id", attachmentID).
			Msg("failed to delete local attachment")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return requireRowAffected(result, ErrAttachmentNotFound)
}

func scanLocalAttachment(row rowScanner) (models.LocalAttachment, error) {
	var attachment models.LocalAttachment

	err := row.Scan(
		&attachment.ID,
		&attachment.AttachmentID,
		&attachment.EntityType,
		&attachment.EntityID,
		&attachment.FileName,
		&attachment.ContentType,
		&attachment.SizeBytes,
		&attachment.Checksum,
		&attachment.StorageKey,
		&attachment.Uploaded,
		&attachment.CreatedAt,
	)
	if err != nil {
		return models.LocalAttachment{}, err
	}

	return attachment, nil
}

func collectLocalAttachments(rows *sql.Rows, log *logger.Logger) ([]models.LocalAttachment, error) {
	attachments := make([]models.LocalAttachment, 0, 10)

	for rows.Next() {
		attachment, err := scanLocalAttachment(rows)
		if err != nil {
			log.Err(err).Msg("failed to scan local attachment row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		attachments = append(attachments, attachment)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Msg("failure during local attachment rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return attachments, nil
}

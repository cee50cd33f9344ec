package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/agrostack/fieldsync/internal/blob"
	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/store"
	"github.com/agrostack/fieldsync/models"
	"github.com/google/uuid"
)

// maxAttachmentSize caps uploads at 32 MiB, matching the largest field photo
// the mobile capture pipeline produces.
const maxAttachmentSize = 32 << 20

// attachmentService is the concrete implementation of AttachmentService.
// Metadata rows live in the relational store; the bytes live in the blob
// store under a server-generated key so clients cannot address each other's
// objects.
type attachmentService struct {
	attachmentRepository store.AttachmentRepository
	blobStore            blob.Store

	logger *logger.Logger
}

// NewAttachmentService constructs an AttachmentService over the given
// metadata repository and blob store.
func NewAttachmentService(attachmentRepository store.AttachmentRepository, blobStore blob.Store, logger *logger.Logger) AttachmentService {
	return &attachmentService{
		attachmentRepository: attachmentRepository,
		blobStore:            blobStore,
		logger:               logger,
	}
}

// Upload implements AttachmentService. It streams data into the blob store
// while computing the SHA-256 checksum, then saves the metadata row. The blob
// is removed again if the metadata insert fails, so the two stores cannot
// drift apart.
func (s *attachmentService) Upload(ctx context.Context, userID int64, attachment models.Attachment, data io.Reader) (models.Attachment, error) {
	log := logger.FromContext(ctx)

	if !attachment.EntityType.Valid() || attachment.EntityID == "" {
		return models.Attachment{}, fmt.Errorf("%w: attachment must reference an entity", ErrInvalidDataProvided)
	}
	if attachment.AttachmentID == "" {
		attachment.AttachmentID = uuid.NewString()
	}

	hasher := sha256.New()
	limited := io.LimitReader(data, maxAttachmentSize+1)
	body := io.TeeReader(limited, hasher)

	storageKey := uuid.NewString()
	info, err := s.blobStore.Put(ctx, storageKey, body, attachment.ContentType)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("store attachment bytes: %w", err)
	}
	if info.SizeBytes > maxAttachmentSize {
		s.removeBlob(ctx, storageKey)
		return models.Attachment{}, ErrAttachmentTooLarge
	}

	attachment.UserID = userID
	attachment.StorageKey = storageKey
	attachment.SizeBytes = info.SizeBytes
	attachment.Checksum = hex.EncodeToString(hasher.Sum(nil))

	stored, err := s.attachmentRepository.SaveAttachment(ctx, attachment)
	if err != nil {
		s.removeBlob(ctx, storageKey)
		log.Err(err).
			Str("attachment_id", attachment.AttachmentID).
			Msg("failed to save attachment metadata")
		return models.Attachment{}, fmt.Errorf("save attachment metadata: %w", err)
	}

	return stored, nil
}

// Download implements AttachmentService. Ownership is enforced by the
// metadata lookup: the blob store is only consulted after the row check.
func (s *attachmentService) Download(ctx context.Context, userID int64, attachmentID string) (models.Attachment, io.ReadCloser, error) {
	attachment, err := s.attachmentRepository.GetAttachment(ctx, userID, attachmentID)
	if err != nil {
		return models.Attachment{}, nil, fmt.Errorf("get attachment metadata: %w", err)
	}

	_, body, err := s.blobStore.Get(ctx, attachment.StorageKey)
	if err != nil {
		if errors.Is(err, blob.ErrNotFound) {
			// metadata without bytes means a previous upload was interrupted
			return models.Attachment{}, nil, fmt.Errorf("attachment bytes missing: %w", store.ErrAttachmentNotFound)
		}
		return models.Attachment{}, nil, fmt.Errorf("read attachment bytes: %w", err)
	}

	return attachment, body, nil
}

// List implements AttachmentService.
func (s *attachmentService) List(ctx context.Context, userID int64, entityType models.EntityType, entityID string) ([]models.Attachment, error) {
	attachments, err := s.attachmentRepository.ListAttachments(ctx, userID, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("list attachments: %w", err)
	}

	return attachments, nil
}

func (s *attachmentService) removeBlob(ctx context.Context, key string) {
	if _, err := s.blobStore.Delete(ctx, key); err != nil {
		s.logger.Err(err).Str("key", key).Msg("failed to remove orphaned blob")
	}
}

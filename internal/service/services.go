package service

import (
	"fmt"

	"github.com/agrostack/fieldsync/internal/blob"
	"github.com/agrostack/fieldsync/internal/config"
	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/store"
)

// Services aggregates the server-side business logic layers and is the single
// dependency the HTTP handler receives.
type Services struct {
	AuthService       AuthService
	RecordService     RecordService
	SyncService       SyncService
	AttachmentService AttachmentService
	AppInfoService    AppInfoService
}

// NewServices wires every server service to its repositories and the blob
// store.
func NewServices(storages *store.Storages, blobStore blob.Store, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("app info service init: %w", err)
	}

	return &Services{
		AuthService:       NewAuthService(storages.Users, cfg.App, logger),
		RecordService:     NewRecordService(storages.Records, logger),
		SyncService:       NewSyncService(storages.Records, storages.SyncLog, logger),
		AttachmentService: NewAttachmentService(storages.Attachments, blobStore, logger),
		AppInfoService:    appInfoService,
	}, nil
}

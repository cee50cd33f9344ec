package service

import (
	"github.com/agrostack/fieldsync/internal/adapter"
	"github.com/agrostack/fieldsync/internal/blob"
	"github.com/agrostack/fieldsync/internal/config"
	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/store"
)

// ClientServices aggregates the field client's business logic layers.
type ClientServices struct {
	AuthService   ClientAuthService
	RecordService ClientRecordService
	Reconciler    Reconciler
	Resolver      ConflictResolver
	SyncJob       ClientSyncJob
	Probe         ConnectivityProbe
}

// NewClientServices wires the client services to the local storages, the
// device blob spool, and the server adapter.
func NewClientServices(storages *store.ClientStorages, blobStore blob.Store, serverAdapter adapter.ServerAdapter, syncCfg config.ClientSync, logger *logger.Logger) *ClientServices {
	authSvc := NewClientAuthService(storages, serverAdapter, logger)
	recordSvc := NewClientRecordService(storages, blobStore, syncCfg, logger)
	reconciler := NewReconciler(storages, blobStore, serverAdapter, syncCfg, logger)
	resolver := NewConflictResolver(storages, logger)

	return &ClientServices{
		AuthService:   authSvc,
		RecordService: recordSvc,
		Reconciler:    reconciler,
		Resolver:      resolver,
		SyncJob:       NewClientSyncJob(reconciler, logger),
		Probe:         NewConnectivityProbe(serverAdapter, logger),
	}
}

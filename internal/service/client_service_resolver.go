package service

import (
	"context"
	"fmt"
	"time"

	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/store"
	"github.com/agrostack/fieldsync/internal/utils"
	"github.com/agrostack/fieldsync/models"
)

// conflictResolver is the concrete implementation of ConflictResolver.
type conflictResolver struct {
	storages *store.ClientStorages
	local    LocalTransactions
	ids      *utils.UUIDGenerator
	logger   *logger.Logger
}

// NewConflictResolver constructs a ConflictResolver over the local storages.
func NewConflictResolver(storages *store.ClientStorages, logger *logger.Logger) ConflictResolver {
	return &conflictResolver{
		storages: storages,
		local:    storages.Local,
		ids:      utils.NewUUIDGenerator(),
		logger:   logger,
	}
}

// Resolve implements ConflictResolver. Each strategy settles the conflict in
// one local transaction, so a crash mid-resolution leaves the conflict fully
// open rather than half-applied.
func (c *conflictResolver) Resolve(ctx context.Context, req models.ResolveRequest) error {
	log := logger.FromContext(ctx)

	strategy, err := models.ParseResolutionStrategy(string(req.Strategy))
	if err != nil {
		return err
	}

	conflict, err := c.storages.Conflicts.Get(ctx, req.ConflictID)
	if err != nil {
		return fmt.Errorf("load conflict: %w", err)
	}

	switch strategy {
	case models.StrategyKeepServer:
		err = c.keepServer(ctx, conflict)
	case models.StrategyKeepLocal:
		err = c.keepLocal(ctx, conflict, conflict.LocalData)
	case models.StrategyMerge:
		merged := req.MergedPayload
		if merged == nil {
			merged, err = deepMerge(conflict.LocalData, conflict.ServerData)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrMergePayloadRequired, err)
			}
		}
		err = c.keepLocal(ctx, conflict, merged)
	}
	if err != nil {
		return err
	}

	log.Info().
		Str("conflict_id", conflict.ID).
		Str("entity_type", string(conflict.EntityType)).
		Str("entity_id", conflict.EntityID).
		Str("strategy", string(strategy)).
		Msg("conflict resolved")

	return nil
}

// Conflicts implements ConflictResolver.
func (c *conflictResolver) Conflicts(ctx context.Context) ([]models.ConflictData, error) {
	return c.storages.Conflicts.List(ctx)
}

// keepServer overwrites the local row with the server copy and discards the
// queued local edits.
func (c *conflictResolver) keepServer(ctx context.Context, conflict models.ConflictData) error {
	row := models.LocalRecord{
		Record: models.Record{
			EntityType: conflict.EntityType,
			EntityID:   conflict.EntityID,
			Name:       models.PayloadName(conflict.EntityType, conflict.ServerData),
			Payload:    conflict.ServerData,
			Version:    conflict.ServerVersion,
			Deleted:    len(conflict.ServerData) == 0,
			CreatedAt:  conflict.ServerTimestamp,
			UpdatedAt:  conflict.ServerTimestamp,
		},
		SyncStatus:  models.SyncStatusSynced,
		BaseVersion: conflict.ServerVersion,
	}
	now := time.Now().UTC()
	row.LastSyncedAt = &now

	return c.local.ResolveKeepServer(ctx, conflict, row)
}

// keepLocal stores the given payload as a pending edit made against the
// server's current version and queues it for the next push.
func (c *conflictResolver) keepLocal(ctx context.Context, conflict models.ConflictData, payload []byte) error {
	now := time.Now().UTC()

	row := models.LocalRecord{
		Record: models.Record{
			EntityType: conflict.EntityType,
			EntityID:   conflict.EntityID,
			Name:       models.PayloadName(conflict.EntityType, payload),
			Payload:    payload,
			Version:    conflict.ServerVersion,
			CreatedAt:  now,
			UpdatedAt:  now,
		},
		SyncStatus:   models.SyncStatusPending,
		BaseVersion:  conflict.ServerVersion,
		LocalChanges: payload,
	}

	op := models.PendingSyncOperation{
		ID:          c.ids.Generate(),
		EntityType:  conflict.EntityType,
		EntityID:    conflict.EntityID,
		Operation:   models.OperationUpdate,
		Payload:     payload,
		BaseVersion: conflict.ServerVersion,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return c.local.ResolveKeepLocal(ctx, conflict, row, op)
}

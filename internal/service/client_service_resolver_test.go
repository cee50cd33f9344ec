// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/mock"
	"github.com/agrostack/fieldsync/internal/store"
	"github.com/agrostack/fieldsync/internal/utils"
	"github.com/agrostack/fieldsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// resolverStubLocal records the resolution transaction it receives.
type resolverStubLocal struct {
	stubLocal

	keptServer   *models.LocalRecord
	keptLocalRow *models.LocalRecord
	keptLocalOp  *models.PendingSyncOperation
}

func (s *resolverStubLocal) ResolveKeepServer(_ context.Context, _ models.ConflictData, row models.LocalRecord) error {
	s.keptServer = &row
	return nil
}

func (s *resolverStubLocal) ResolveKeepLocal(_ context.Context, _ models.ConflictData, row models.LocalRecord, op models.PendingSyncOperation) error {
	s.keptLocalRow = &row
	s.keptLocalOp = &op
	return nil
}

func newTestResolver(t *testing.T, ctrl *gomock.Controller) (*conflictResolver, *mock.MockConflictRepository, *resolverStubLocal) {
	t.Helper()

	conflicts := mock.NewMockConflictRepository(ctrl)
	local := &resolverStubLocal{}

	resolver := &conflictResolver{
		storages: &store.ClientStorages{Conflicts: conflicts},
		local:    local,
		ids:      utils.NewUUIDGenerator(),
		logger:   logger.Nop(),
	}

	return resolver, conflicts, local
}

func testConflict() models.ConflictData {
	return models.ConflictData{
		ID:              "c-1",
		EntityType:      models.EntityGermplasm,
		EntityID:        "g-1",
		LocalData:       json.RawMessage(`{"germplasmName":"L-044","pedigree":"A/B"}`),
		ServerData:      json.RawMessage(`{"germplasmName":"L-044","pedigree":"A/C","genus":"Vicia"}`),
		LocalVersion:    2,
		ServerVersion:   5,
		ServerTimestamp: time.Now().UTC().Add(-time.Minute),
		ConflictFields:  []string{"pedigree"},
		DetectedAt:      time.Now().UTC(),
	}
}

// ── Resolve ──────────────────────────────────────────────────────────────────

func TestConflictResolver_Resolve_RejectsManual(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver, _, _ := newTestResolver(t, ctrl)

	err := resolver.Resolve(context.Background(), models.ResolveRequest{
		ConflictID: "c-1",
		Strategy:   models.StrategyManual,
	})

	require.ErrorIs(t, err, models.ErrUnknownStrategy)
}

func TestConflictResolver_Resolve_ConflictGone(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver, conflicts, _ := newTestResolver(t, ctrl)

	conflicts.EXPECT().
		Get(gomock.Any(), "c-1").
		Return(models.ConflictData{}, store.ErrConflictNotFound)

	err := resolver.Resolve(context.Background(), models.ResolveRequest{
		ConflictID: "c-1",
		Strategy:   models.StrategyKeepServer,
	})

	require.ErrorIs(t, err, store.ErrConflictNotFound)
}

func TestConflictResolver_Resolve_KeepServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver, conflicts, local := newTestResolver(t, ctrl)

	conflict := testConflict()
	conflicts.EXPECT().Get(gomock.Any(), "c-1").Return(conflict, nil)

	err := resolver.Resolve(context.Background(), models.ResolveRequest{
		ConflictID: "c-1",
		Strategy:   models.StrategyKeepServer,
	})

	require.NoError(t, err)
	require.NotNil(t, local.keptServer)
	row := *local.keptServer
	assert.Equal(t, models.SyncStatusSynced, row.SyncStatus)
	assert.Equal(t, int64(5), row.Version)
	assert.Equal(t, int64(5), row.BaseVersion)
	assert.JSONEq(t, string(conflict.ServerData), string(row.Payload))
	assert.Equal(t, "L-044", row.Name)
}

func TestConflictResolver_Resolve_KeepLocal(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver, conflicts, local := newTestResolver(t, ctrl)

	conflict := testConflict()
	conflicts.EXPECT().Get(gomock.Any(), "c-1").Return(conflict, nil)

	err := resolver.Resolve(context.Background(), models.ResolveRequest{
		ConflictID: "c-1",
		Strategy:   models.StrategyKeepLocal,
	})

	require.NoError(t, err)
	require.NotNil(t, local.keptLocalRow)
	require.NotNil(t, local.keptLocalOp)

	row := *local.keptLocalRow
	assert.Equal(t, models.SyncStatusPending, row.SyncStatus)
	assert.Equal(t, int64(5), row.BaseVersion, "re-queued edit must target the server's current version")
	assert.JSONEq(t, string(conflict.LocalData), string(row.Payload))

	op := *local.keptLocalOp
	assert.Equal(t, models.OperationUpdate, op.Operation)
	assert.Equal(t, int64(5), op.BaseVersion)
	assert.JSONEq(t, string(conflict.LocalData), string(op.Payload))
	assert.NotEmpty(t, op.ID)
}

func TestConflictResolver_Resolve_MergeWithExplicitPayload(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver, conflicts, local := newTestResolver(t, ctrl)

	conflicts.EXPECT().Get(gomock.Any(), "c-1").Return(testConflict(), nil)

	merged := json.RawMessage(`{"germplasmName":"L-044","pedigree":"A/B//C"}`)
	err := resolver.Resolve(context.Background(), models.ResolveRequest{
		ConflictID:    "c-1",
		Strategy:      models.StrategyMerge,
		MergedPayload: merged,
	})

	require.NoError(t, err)
	require.NotNil(t, local.keptLocalOp)
	assert.JSONEq(t, string(merged), string(local.keptLocalOp.Payload))
}

func TestConflictResolver_Resolve_MergeDeepMergesByDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver, conflicts, local := newTestResolver(t, ctrl)

	conflicts.EXPECT().Get(gomock.Any(), "c-1").Return(testConflict(), nil)

	err := resolver.Resolve(context.Background(), models.ResolveRequest{
		ConflictID: "c-1",
		Strategy:   models.StrategyMerge,
	})

	require.NoError(t, err)
	require.NotNil(t, local.keptLocalOp)
	// local pedigree wins, server-only genus survives
	assert.JSONEq(t,
		`{"germplasmName":"L-044","pedigree":"A/B","genus":"Vicia"}`,
		string(local.keptLocalOp.Payload))
}

func TestConflictResolver_Resolve_MergeMalformedPayloads(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver, conflicts, _ := newTestResolver(t, ctrl)

	conflict := testConflict()
	conflict.LocalData = json.RawMessage(`{`)
	conflicts.EXPECT().Get(gomock.Any(), "c-1").Return(conflict, nil)

	err := resolver.Resolve(context.Background(), models.ResolveRequest{
		ConflictID: "c-1",
		Strategy:   models.StrategyMerge,
	})

	require.ErrorIs(t, err, ErrMergePayloadRequired)
}

// ── Conflicts ────────────────────────────────────────────────────────────────

func TestConflictResolver_Conflicts_Delegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	resolver, conflicts, _ := newTestResolver(t, ctrl)

	want := []models.ConflictData{testConflict()}
	conflicts.EXPECT().List(gomock.Any()).Return(want, nil)

	got, err := resolver.Conflicts(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

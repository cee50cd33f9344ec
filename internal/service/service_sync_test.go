// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/mock"
	"github.com/agrostack/fieldsync/internal/store"
	"github.com/agrostack/fieldsync/internal/validators"
	"github.com/agrostack/fieldsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const testUserID int64 = 42

var germplasmPayload = json.RawMessage(`{"germplasmName":"Vicia faba L-044"}`)

func newTestSyncService(t *testing.T, ctrl *gomock.Controller) (*syncService, *mock.MockRecordRepository, *mock.MockSyncLogRepository) {
	t.Helper()

	records := mock.NewMockRecordRepository(ctrl)
	syncLog := mock.NewMockSyncLogRepository(ctrl)

	svc := &syncService{
		recordRepository:  records,
		syncLogRepository: syncLog,
		validator:         validators.NewRecordValidator(),
		logger:            logger.Nop(),
	}

	return svc, records, syncLog
}

// ── ApplyPush ────────────────────────────────────────────────────────────────

func TestSyncService_ApplyPush_EmptyBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestSyncService(t, ctrl)

	_, err := svc.ApplyPush(context.Background(), testUserID, models.PushRequest{})

	require.ErrorIs(t, err, ErrEmptyBatch)
}

func TestSyncService_ApplyPush_ValidationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _ := newTestSyncService(t, ctrl)

	req := models.PushRequest{Operations: []models.PushOperation{{
		OperationID: "op-1",
		EntityType:  "planet", // not a breeding entity
		EntityID:    "g-1",
		Operation:   models.OperationCreate,
		Payload:     germplasmPayload,
	}}}

	_, err := svc.ApplyPush(context.Background(), testUserID, req)

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestSyncService_ApplyPush_CreateApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, records, syncLog := newTestSyncService(t, ctrl)

	records.EXPECT().
		InsertRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record models.Record) (models.Record, error) {
			assert.Equal(t, testUserID, record.UserID)
			assert.Equal(t, models.EntityGermplasm, record.EntityType)
			assert.Equal(t, "Vicia faba L-044", record.Name)
			record.Version = 1
			return record, nil
		})
	syncLog.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry models.SyncLogEntry) (models.SyncLogEntry, error) {
			assert.Equal(t, models.DirectionPush, entry.Direction)
			assert.Equal(t, models.SyncRunSuccess, entry.Status)
			assert.Equal(t, 1, entry.RecordsProcessed)
			assert.Equal(t, 0, entry.RecordsFailed)
			return entry, nil
		})

	resp, err := svc.ApplyPush(context.Background(), testUserID, models.PushRequest{
		Operations: []models.PushOperation{{
			OperationID: "op-1",
			EntityType:  models.EntityGermplasm,
			EntityID:    "g-1",
			Operation:   models.OperationCreate,
			Payload:     germplasmPayload,
		}},
	})

	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "op-1", resp.Results[0].OperationID)
	assert.Equal(t, models.PushApplied, resp.Results[0].Status)
	assert.Equal(t, int64(1), resp.Results[0].NewVersion)
}

func TestSyncService_ApplyPush_UpdateConflictCarriesServerRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, records, syncLog := newTestSyncService(t, ctrl)

	serverCopy := models.Record{
		UserID:     testUserID,
		EntityType: models.EntityGermplasm,
		EntityID:   "g-1",
		Payload:    json.RawMessage(`{"germplasmName":"Vicia faba L-044","genus":"Vicia"}`),
		Version:    7,
	}

	records.EXPECT().
		UpdateRecord(gomock.Any(), gomock.Any(), int64(3)).
		Return(models.Record{}, store.ErrVersionConflict)
	records.EXPECT().
		GetRecord(gomock.Any(), testUserID, models.EntityGermplasm, "g-1").
		Return(serverCopy, nil)
	syncLog.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry models.SyncLogEntry) (models.SyncLogEntry, error) {
			assert.Equal(t, models.SyncRunError, entry.Status)
			return entry, nil
		})

	resp, err := svc.ApplyPush(context.Background(), testUserID, models.PushRequest{
		Operations: []models.PushOperation{{
			OperationID: "op-1",
			EntityType:  models.EntityGermplasm,
			EntityID:    "g-1",
			Operation:   models.OperationUpdate,
			Payload:     germplasmPayload,
			BaseVersion: 3,
		}},
	})

	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, models.PushConflict, resp.Results[0].Status)
	require.NotNil(t, resp.Results[0].ServerRecord)
	assert.Equal(t, int64(7), resp.Results[0].ServerRecord.Version)
}

func TestSyncService_ApplyPush_CreateCollisionIsConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, records, syncLog := newTestSyncService(t, ctrl)

	records.EXPECT().
		InsertRecord(gomock.Any(), gomock.Any()).
		Return(models.Record{}, store.ErrRecordAlreadyExists)
	records.EXPECT().
		GetRecord(gomock.Any(), testUserID, models.EntityGermplasm, "g-1").
		Return(models.Record{EntityID: "g-1", Version: 2}, nil)
	syncLog.EXPECT().Append(gomock.Any(), gomock.Any()).Return(models.SyncLogEntry{}, nil)

	resp, err := svc.ApplyPush(context.Background(), testUserID, models.PushRequest{
		Operations: []models.PushOperation{{
			OperationID: "op-1",
			EntityType:  models.EntityGermplasm,
			EntityID:    "g-1",
			Operation:   models.OperationCreate,
			Payload:     germplasmPayload,
		}},
	})

	require.NoError(t, err)
	assert.Equal(t, models.PushConflict, resp.Results[0].Status)
}

func TestSyncService_ApplyPush_DeleteNotFoundIsApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, records, syncLog := newTestSyncService(t, ctrl)

	records.EXPECT().
		SoftDeleteRecord(gomock.Any(), testUserID, models.EntityGermplasm, "g-1", int64(2)).
		Return(models.Record{}, store.ErrRecordNotFound)
	syncLog.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry models.SyncLogEntry) (models.SyncLogEntry, error) {
			assert.Equal(t, models.SyncRunSuccess, entry.Status)
			return entry, nil
		})

	resp, err := svc.ApplyPush(context.Background(), testUserID, models.PushRequest{
		Operations: []models.PushOperation{{
			OperationID: "op-1",
			EntityType:  models.EntityGermplasm,
			EntityID:    "g-1",
			Operation:   models.OperationDelete,
			BaseVersion: 2,
		}},
	})

	require.NoError(t, err)
	assert.Equal(t, models.PushApplied, resp.Results[0].Status)
}

func TestSyncService_ApplyPush_PartialBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, records, syncLog := newTestSyncService(t, ctrl)

	records.EXPECT().
		InsertRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record models.Record) (models.Record, error) {
			record.Version = 1
			return record, nil
		})
	records.EXPECT().
		UpdateRecord(gomock.Any(), gomock.Any(), int64(1)).
		Return(models.Record{}, errors.New("disk full"))
	syncLog.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, entry models.SyncLogEntry) (models.SyncLogEntry, error) {
			assert.Equal(t, models.SyncRunPartial, entry.Status)
			assert.Equal(t, 1, entry.RecordsProcessed)
			assert.Equal(t, 1, entry.RecordsFailed)
			return entry, nil
		})

	resp, err := svc.ApplyPush(context.Background(), testUserID, models.PushRequest{
		Operations: []models.PushOperation{
			{
				OperationID: "op-1",
				EntityType:  models.EntityGermplasm,
				EntityID:    "g-1",
				Operation:   models.OperationCreate,
				Payload:     germplasmPayload,
			},
			{
				OperationID: "op-2",
				EntityType:  models.EntityGermplasm,
				EntityID:    "g-2",
				Operation:   models.OperationUpdate,
				Payload:     germplasmPayload,
				BaseVersion: 1,
			},
		},
	})

	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, models.PushApplied, resp.Results[0].Status)
	assert.Equal(t, models.PushError, resp.Results[1].Status)
	assert.Contains(t, resp.Results[1].Error, "disk full")
}

func TestSyncService_ApplyPush_AuditFailureDoesNotFailPush(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, records, syncLog := newTestSyncService(t, ctrl)

	records.EXPECT().
		InsertRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record models.Record) (models.Record, error) {
			record.Version = 1
			return record, nil
		})
	syncLog.EXPECT().
		Append(gomock.Any(), gomock.Any()).
		Return(models.SyncLogEntry{}, errors.New("log table locked"))

	resp, err := svc.ApplyPush(context.Background(), testUserID, models.PushRequest{
		Operations: []models.PushOperation{{
			OperationID: "op-1",
			EntityType:  models.EntityGermplasm,
			EntityID:    "g-1",
			Operation:   models.OperationCreate,
			Payload:     germplasmPayload,
		}},
	})

	require.NoError(t, err)
	assert.Equal(t, models.PushApplied, resp.Results[0].Status)
}

// ── Changes ──────────────────────────────────────────────────────────────────

func TestSyncService_Changes_AlwaysIncludesTombstones(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, records, _ := newTestSyncService(t, ctrl)

	before := time.Now().UTC()

	records.EXPECT().
		ListRecords(gomock.Any(), testUserID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, query models.RecordQuery) ([]models.Record, int64, error) {
			assert.True(t, query.IncludeDeleted)
			return []models.Record{{EntityID: "g-1", Deleted: true}}, 1, nil
		})

	resp, err := svc.Changes(context.Background(), testUserID, models.RecordQuery{
		EntityTypes: []models.EntityType{models.EntityGermplasm},
	})

	require.NoError(t, err)
	require.Len(t, resp.Records, 1)
	assert.False(t, resp.ServerTime.Before(before))
	assert.False(t, resp.ServerTime.After(time.Now().UTC()))
}

func TestSyncService_Changes_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, records, _ := newTestSyncService(t, ctrl)

	records.EXPECT().
		ListRecords(gomock.Any(), testUserID, gomock.Any()).
		Return(nil, int64(0), errors.New("connection reset"))

	_, err := svc.Changes(context.Background(), testUserID, models.RecordQuery{})

	require.Error(t, err)
}

// ── Log ──────────────────────────────────────────────────────────────────────

func TestSyncService_Log_Delegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, syncLog := newTestSyncService(t, ctrl)

	entries := []models.SyncLogEntry{{ID: 2}, {ID: 1}}
	syncLog.EXPECT().
		List(gomock.Any(), testUserID, 10, 0).
		Return(entries, nil)

	got, err := svc.Log(context.Background(), testUserID, 10)

	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

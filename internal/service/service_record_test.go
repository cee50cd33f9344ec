// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/mock"
	"github.com/agrostack/fieldsync/internal/store"
	"github.com/agrostack/fieldsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestRecordService(t *testing.T, ctrl *gomock.Controller) (*recordService, *mock.MockRecordRepository) {
	t.Helper()

	records := mock.NewMockRecordRepository(ctrl)
	svc := &recordService{recordRepository: records, logger: logger.Nop()}

	return svc, records
}

// ── PutRecord ────────────────────────────────────────────────────────────────

func TestRecordService_PutRecord_CreateOnZeroBaseVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, records := newTestRecordService(t, ctrl)

	records.EXPECT().
		InsertRecord(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record models.Record) (models.Record, error) {
			assert.Equal(t, "Vicia faba L-044", record.Name)
			record.Version = 1
			return record, nil
		})

	stored, err := svc.PutRecord(context.Background(), testUserID, models.EntityGermplasm, "g-1", germplasmPayload, 0)

	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Version)
}

func TestRecordService_PutRecord_UpdateOnNonZeroBaseVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, records := newTestRecordService(t, ctrl)

	records.EXPECT().
		UpdateRecord(gomock.Any(), gomock.Any(), int64(3)).
		DoAndReturn(func(_ context.Context, record models.Record, _ int64) (models.Record, error) {
			record.Version = 4
			return record, nil
		})

	stored, err := svc.PutRecord(context.Background(), testUserID, models.EntityGermplasm, "g-1", germplasmPayload, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(4), stored.Version)
}

func TestRecordService_PutRecord_CreateCollisionMapsToVersionConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, records := newTestRecordService(t, ctrl)

	records.EXPECT().
		InsertRecord(gomock.Any(), gomock.Any()).
		Return(models.Record{}, store.ErrRecordAlreadyExists)

	_, err := svc.PutRecord(context.Background(), testUserID, models.EntityGermplasm, "g-1", germplasmPayload, 0)

	require.ErrorIs(t, err, store.ErrVersionConflict)
}

func TestRecordService_PutRecord_StaleBaseVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, records := newTestRecordService(t, ctrl)

	records.EXPECT().
		UpdateRecord(gomock.Any(), gomock.Any(), int64(2)).
		Return(models.Record{}, store.ErrVersionConflict)

	_, err := svc.PutRecord(context.Background(), testUserID, models.EntityGermplasm, "g-1", germplasmPayload, 2)

	require.ErrorIs(t, err, store.ErrVersionConflict)
}

func TestRecordService_PutRecord_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestRecordService(t, ctrl)

	tests := []struct {
		name       string
		entityType models.EntityType
		entityID   string
		payload    json.RawMessage
	}{
		{"unknown entity type", "planet", "g-1", germplasmPayload},
		{"empty entity id", models.EntityGermplasm, "", germplasmPayload},
		{"malformed payload", models.EntityGermplasm, "g-1", json.RawMessage(`{`)},
		{"missing name", models.EntityGermplasm, "g-1", json.RawMessage(`{"genus":"Vicia"}`)},
		{"observation without value", models.EntityObservation, "o-1", json.RawMessage(`{"observationVariableName":"plant height"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.PutRecord(context.Background(), testUserID, tt.entityType, tt.entityID, tt.payload, 0)
			require.ErrorIs(t, err, ErrInvalidDataProvided)
		})
	}
}

// ── Reads ────────────────────────────────────────────────────────────────────

func TestRecordService_GetRecord_Delegates(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, records := newTestRecordService(t, ctrl)

	records.EXPECT().
		GetRecord(gomock.Any(), testUserID, models.EntityGermplasm, "g-1").
		Return(models.Record{EntityID: "g-1", Version: 5}, nil)

	record, err := svc.GetRecord(context.Background(), testUserID, models.EntityGermplasm, "g-1")

	require.NoError(t, err)
	assert.Equal(t, int64(5), record.Version)
}

func TestRecordService_GetRecord_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, records := newTestRecordService(t, ctrl)

	records.EXPECT().
		GetRecord(gomock.Any(), testUserID, models.EntityGermplasm, "missing").
		Return(models.Record{}, store.ErrRecordNotFound)

	_, err := svc.GetRecord(context.Background(), testUserID, models.EntityGermplasm, "missing")

	require.ErrorIs(t, err, store.ErrRecordNotFound)
}

func TestRecordService_ListRecords_ReturnsTotal(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, records := newTestRecordService(t, ctrl)

	records.EXPECT().
		ListRecords(gomock.Any(), testUserID, gomock.Any()).
		Return([]models.Record{{EntityID: "g-1"}, {EntityID: "g-2"}}, int64(17), nil)

	got, total, err := svc.ListRecords(context.Background(), testUserID, models.RecordQuery{PageSize: 2})

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Equal(t, int64(17), total)
}

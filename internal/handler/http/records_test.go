// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agrostack/fieldsync/internal/app"
	"github.com/agrostack/fieldsync/internal/service"
	"github.com/agrostack/fieldsync/internal/store"
	"github.com/agrostack/fieldsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRecords(t *testing.T) {
	var gotQuery models.RecordQuery

	h := newHandlerWith(t, &service.Services{
		RecordService: &mockRecordService{
			listRecordsFn: func(_ context.Context, userID int64, query models.RecordQuery) ([]models.Record, int64, error) {
				require.Equal(t, testUserID, userID)
				gotQuery = query
				return []models.Record{
					{EntityType: models.EntityTrial, EntityID: "t-1", Name: "Spring wheat 2026"},
				}, 1, nil
			},
		},
	})

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/api/v2/records/trial?page=0&pageSize=25", nil))
	req = withURLParams(req, map[string]string{"entityType": "trial"})
	rr := httptest.NewRecorder()

	h.listRecords(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []models.EntityType{models.EntityTrial}, gotQuery.EntityTypes)
	assert.False(t, gotQuery.IncludeDeleted, "record listings hide tombstones")
	assert.Equal(t, 25, gotQuery.PageSize)

	var resp recordListResponse
	decodeJSON(t, rr.Body.Bytes(), &resp)
	assert.Equal(t, int64(1), resp.Total)
	require.Len(t, resp.Records, 1)
	assert.Equal(t, "t-1", resp.Records[0].EntityID)
}

func TestListRecords_UnknownEntityType(t *testing.T) {
	h := newHandlerWith(t, &service.Services{RecordService: &mockRecordService{}})

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/api/v2/records/rover", nil))
	req = withURLParams(req, map[string]string{"entityType": "rover"})
	rr := httptest.NewRecorder()

	h.listRecords(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, app.MsgUnknownEntityType, strings.TrimSpace(rr.Body.String()))
}

func TestGetRecord(t *testing.T) {
	tests := []struct {
		name        string
		getRecordFn func(ctx context.Context, userID int64, entityType models.EntityType, entityID string) (models.Record, error)
		wantStatus  int
		wantBody    string
	}{
		{
			name: "found record is returned",
			getRecordFn: func(_ context.Context, _ int64, entityType models.EntityType, entityID string) (models.Record, error) {
				return models.Record{EntityType: entityType, EntityID: entityID, Version: 4}, nil
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "missing record answers 404",
			getRecordFn: func(context.Context, int64, models.EntityType, string) (models.Record, error) {
				return models.Record{}, store.ErrRecordNotFound
			},
			wantStatus: http.StatusNotFound,
			wantBody:   app.MsgRecordNotFound,
		},
		{
			name: "storage failure answers 500",
			getRecordFn: func(context.Context, int64, models.EntityType, string) (models.Record, error) {
				return models.Record{}, errors.New("connection lost")
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWith(t, &service.Services{
				RecordService: &mockRecordService{getRecordFn: tt.getRecordFn},
			})

			req := authedRequest(httptest.NewRequest(http.MethodGet, "/api/v2/records/germplasm/g-1", nil))
			req = withURLParams(req, map[string]string{"entityType": "germplasm", "entityID": "g-1"})
			rr := httptest.NewRecorder()

			h.getRecord(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, strings.TrimSpace(rr.Body.String()))
			}
		})
	}
}

func TestPutRecord(t *testing.T) {
	var gotPayload json.RawMessage
	var gotBaseVersion int64

	h := newHandlerWith(t, &service.Services{
		RecordService: &mockRecordService{
			putRecordFn: func(_ context.Context, _ int64, entityType models.EntityType, entityID string, payload json.RawMessage, baseVersion int64) (models.Record, error) {
				gotPayload = payload
				gotBaseVersion = baseVersion
				return models.Record{EntityType: entityType, EntityID: entityID, Payload: payload, Version: baseVersion + 1}, nil
			},
		},
	})

	body := `{"payload":{"germplasmName":"L-044","genus":"Vicia"},"base_version":3}`
	req := authedRequest(httptest.NewRequest(http.MethodPut, "/api/v2/records/germplasm/g-1", strings.NewReader(body)))
	req = withURLParams(req, map[string]string{"entityType": "germplasm", "entityID": "g-1"})
	rr := httptest.NewRecorder()

	h.putRecord(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"germplasmName":"L-044","genus":"Vicia"}`, string(gotPayload))
	assert.Equal(t, int64(3), gotBaseVersion)

	var record models.Record
	decodeJSON(t, rr.Body.Bytes(), &record)
	assert.Equal(t, int64(4), record.Version)
}

func TestPutRecord_Errors(t *testing.T) {
	tests := []struct {
		name       string
		putErr     error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "validation failure",
			putErr:     service.ErrInvalidDataProvided,
			wantStatus: http.StatusBadRequest,
			wantBody:   app.MsgInvalidDataProvided,
		},
		{
			name:       "stale base version answers conflict",
			putErr:     store.ErrVersionConflict,
			wantStatus: http.StatusConflict,
			wantBody:   app.MsgVersionConflict,
		},
		{
			name:       "updating a missing record answers 404",
			putErr:     store.ErrRecordNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   app.MsgRecordNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWith(t, &service.Services{
				RecordService: &mockRecordService{
					putRecordFn: func(context.Context, int64, models.EntityType, string, json.RawMessage, int64) (models.Record, error) {
						return models.Record{}, tt.putErr
					},
				},
			})

			body := `{"payload":{"germplasmName":"L-044"},"base_version":1}`
			req := authedRequest(httptest.NewRequest(http.MethodPut, "/api/v2/records/germplasm/g-1", strings.NewReader(body)))
			req = withURLParams(req, map[string]string{"entityType": "germplasm", "entityID": "g-1"})
			rr := httptest.NewRecorder()

			h.putRecord(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantBody, strings.TrimSpace(rr.Body.String()))
		})
	}
}

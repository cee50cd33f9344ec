// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agrostack/fieldsync/internal/service"
	"github.com/agrostack/fieldsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrAPIList_Envelope(t *testing.T) {
	var gotQuery models.RecordQuery

	h := newHandlerWith(t, &service.Services{
		RecordService: &mockRecordService{
			listRecordsFn: func(_ context.Context, _ int64, query models.RecordQuery) ([]models.Record, int64, error) {
				gotQuery = query
				return []models.Record{
					{EntityType: models.EntityGermplasm, EntityID: "g-1", Payload: json.RawMessage(`{"germplasmName":"L-044"}`)},
					{EntityType: models.EntityGermplasm, EntityID: "g-2", Payload: json.RawMessage(`{"germplasmName":"L-045"}`)},
				}, 45, nil
			},
		},
	})

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/brapi/v2/germplasm", nil))
	rr := httptest.NewRecorder()

	h.brapiList(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []models.EntityType{models.EntityGermplasm}, gotQuery.EntityTypes)
	assert.Equal(t, brapiDefaultPageSize, gotQuery.PageSize)

	var resp brapiResponse
	decodeJSON(t, rr.Body.Bytes(), &resp)
	assert.Equal(t, 0, resp.Metadata.Pagination.CurrentPage)
	assert.Equal(t, brapiDefaultPageSize, resp.Metadata.Pagination.PageSize)
	assert.Equal(t, int64(45), resp.Metadata.Pagination.TotalCount)
	assert.Equal(t, int64(3), resp.Metadata.Pagination.TotalPages)
	require.Len(t, resp.Result.Data, 2)
	assert.JSONEq(t, `{"germplasmName":"L-044"}`, string(resp.Result.Data[0]))
}

func TestBrAPIList_CollectionsMapToEntityTypes(t *testing.T) {
	collections := map[string]models.EntityType{
		"/brapi/v2/germplasm":    models.EntityGermplasm,
		"/brapi/v2/trials":       models.EntityTrial,
		"/brapi/v2/studies":      models.EntityStudy,
		"/brapi/v2/observations": models.EntityObservation,
		"/brapi/v2/samples":      models.EntitySample,
	}

	for path, wantType := range collections {
		t.Run(path, func(t *testing.T) {
			var gotQuery models.RecordQuery
			h := newHandlerWith(t, &service.Services{
				RecordService: &mockRecordService{
					listRecordsFn: func(_ context.Context, _ int64, query models.RecordQuery) ([]models.Record, int64, error) {
						gotQuery = query
						return nil, 0, nil
					},
				},
			})

			req := authedRequest(httptest.NewRequest(http.MethodGet, path, nil))
			rr := httptest.NewRecorder()

			h.brapiList(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Equal(t, []models.EntityType{wantType}, gotQuery.EntityTypes)
		})
	}
}

func TestBrAPIList_Paging(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		wantPage     int
		wantPageSize int
		wantStatus   int
	}{
		{
			name:         "explicit page and pageSize",
			target:       "/brapi/v2/trials?page=3&pageSize=100",
			wantPage:     3,
			wantPageSize: 100,
			wantStatus:   http.StatusOK,
		},
		{
			name:         "pageSize capped at the BrAPI maximum",
			target:       "/brapi/v2/trials?pageSize=50000",
			wantPageSize: brapiMaxPageSize,
			wantStatus:   http.StatusOK,
		},
		{
			name:       "negative page rejected",
			target:     "/brapi/v2/trials?page=-2",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-numeric pageSize rejected",
			target:     "/brapi/v2/trials?pageSize=many",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotQuery models.RecordQuery
			h := newHandlerWith(t, &service.Services{
				RecordService: &mockRecordService{
					listRecordsFn: func(_ context.Context, _ int64, query models.RecordQuery) ([]models.Record, int64, error) {
						gotQuery = query
						return nil, 0, nil
					},
				},
			})

			req := authedRequest(httptest.NewRequest(http.MethodGet, tt.target, nil))
			rr := httptest.NewRecorder()

			h.brapiList(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantPage, gotQuery.Page)
				assert.Equal(t, tt.wantPageSize, gotQuery.PageSize)
			}
		})
	}
}

func TestBrAPIList_EmptyCollectionHasEmptyData(t *testing.T) {
	h := newHandlerWith(t, &service.Services{
		RecordService: &mockRecordService{
			listRecordsFn: func(context.Context, int64, models.RecordQuery) ([]models.Record, int64, error) {
				return nil, 0, nil
			},
		},
	})

	req := authedRequest(httptest.NewRequest(http.MethodGet, "/brapi/v2/samples", nil))
	rr := httptest.NewRecorder()

	h.brapiList(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp brapiResponse
	decodeJSON(t, rr.Body.Bytes(), &resp)
	assert.NotNil(t, resp.Result.Data)
	assert.Empty(t, resp.Result.Data)
	assert.Equal(t, int64(0), resp.Metadata.Pagination.TotalPages)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package validators

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agrostack/fieldsync/models"
)

func validObservation(t *testing.T) json.RawMessage {
	t.Helper()
	raw, err := models.EncodePayload(models.Observation{
		ObservationVariableName: "plant_height_cm",
		Value:                   "142",
		Collector:               "tech-7",
	})
	require.NoError(t, err)
	return raw
}

func TestValidatePayload(t *testing.T) {
	tests := []struct {
		name       string
		entityType models.EntityType
		payload    string
		wantErr    error
	}{
		{
			name:       "valid germplasm",
			entityType: models.EntityGermplasm,
			payload:    `{"germplasmName":"IR64","species":"Oryza sativa"}`,
		},
		{
			name:       "germplasm without name",
			entityType: models.EntityGermplasm,
			payload:    `{"species":"Oryza sativa"}`,
			wantErr:    ErrMissingName,
		},
		{
			name:       "observation without value",
			entityType: models.EntityObservation,
			payload:    `{"observationVariableName":"plant_height_cm"}`,
			wantErr:    ErrMissingValue,
		},
		{
			name:       "valid sample",
			entityType: models.EntitySample,
			payload:    `{"sampleName":"S-001","well":"A1"}`,
		},
		{
			name:       "empty payload",
			entityType: models.EntityTrial,
			payload:    "",
			wantErr:    ErrEmptyPayload,
		},
		{
			name:       "malformed json",
			entityType: models.EntityTrial,
			payload:    `{"trialName":`,
			wantErr:    ErrMalformedPayload,
		},
		{
			name:       "unknown entity type",
			entityType: models.EntityType("plot"),
			payload:    `{}`,
			wantErr:    ErrMalformedPayload,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayload(tt.entityType, []byte(tt.payload))
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRecordValidator_PushOperation(t *testing.T) {
	v := NewRecordValidator()
	ctx := context.Background()

	base := models.PushOperation{
		OperationID: "op-1",
		EntityType:  models.EntityObservation,
		EntityID:    "0198f000-obs",
		Operation:   models.OperationCreate,
		Payload:     validObservation(t),
		BaseVersion: 0,
	}

	t.Run("valid create", func(t *testing.T) {
		assert.NoError(t, v.Validate(ctx, base))
	})

	t.Run("create with non-zero base version", func(t *testing.T) {
		op := base
		op.BaseVersion = 3
		assert.ErrorIs(t, v.Validate(ctx, op), ErrInvalidCreateVersion)
	})

	t.Run("delete with payload", func(t *testing.T) {
		op := base
		op.Operation = models.OperationDelete
		op.BaseVersion = 2
		assert.ErrorIs(t, v.Validate(ctx, op), ErrDeleteCarriesPayload)
	})

	t.Run("delete without payload", func(t *testing.T) {
		op := base
		op.Operation = models.OperationDelete
		op.Payload = nil
		op.BaseVersion = 2
		assert.NoError(t, v.Validate(ctx, op))
	})

	t.Run("unknown operation", func(t *testing.T) {
		op := base
		op.Operation = models.Operation("upsert")
		assert.ErrorIs(t, v.Validate(ctx, op), ErrInvalidOperation)
	})

	t.Run("missing entity id", func(t *testing.T) {
		op := base
		op.EntityID = ""
		assert.ErrorIs(t, v.Validate(ctx, op), ErrInvalidEntityID)
	})

	t.Run("field scoping skips payload", func(t *testing.T) {
		op := base
		op.Payload = nil
		assert.NoError(t, v.Validate(ctx, op, FieldEntityType, FieldEntityID, FieldOperation))
	})
}

func TestRecordValidator_PushRequest(t *testing.T) {
	v := NewRecordValidator()
	ctx := context.Background()

	t.Run("empty operations", func(t *testing.T) {
		assert.ErrorIs(t, v.Validate(ctx, models.PushRequest{}), ErrNoOperations)
	})

	t.Run("reports failing index", func(t *testing.T) {
		req := models.PushRequest{Operations: []models.PushOperation{
			{
				OperationID: "op-1",
				EntityType:  models.EntityObservation,
				EntityID:    "a",
				Operation:   models.OperationCreate,
				Payload:     validObservation(t),
			},
			{
				OperationID: "op-2",
				EntityType:  models.EntityObservation,
				EntityID:    "",
				Operation:   models.OperationCreate,
				Payload:     validObservation(t),
			},
		}}

		err := v.Validate(ctx, req)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidEntityID)
		assert.Contains(t, err.Error(), "index 1")
	})
}

func TestRecordValidator_Record(t *testing.T) {
	v := NewRecordValidator()
	ctx := context.Background()

	t.Run("tombstone needs no payload", func(t *testing.T) {
		record := models.Record{
			EntityType: models.EntityTrial,
			EntityID:   "0198f000-tr",
			Version:    4,
			Deleted:    true,
		}
		assert.NoError(t, v.Validate(ctx, record))
	})

	t.Run("unsupported type", func(t *testing.T) {
		assert.ErrorIs(t, v.Validate(ctx, struct{}{}), ErrUnsupportedType)
	})
}

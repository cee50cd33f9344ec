// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Agrostack

package validators

import (
	"context"
	"fmt"

	"github.com/agrostack/fieldsync/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate or internal validation methods
// to restrict validation to a subset of fields (field-level scoping).
const (
	// FieldEntityType targets the entity type discriminator.
	FieldEntityType = "entity_type"

	// FieldEntityID targets the client-generated entity identifier.
	FieldEntityID = "entity_id"

	// FieldOperation targets the mutation kind of a pending operation.
	FieldOperation = "operation"

	// FieldPayload targets the typed entity document.
	FieldPayload = "payload"

	// FieldVersion targets the optimistic concurrency version.
	FieldVersion = "version"

	// FieldBaseVersion targets the base version a push was made against.
	FieldBaseVersion = "base_version"

	// FieldOperations targets the operation list of a push request.
	FieldOperations = "operations"
)

// RecordValidator validates synchronized records and the push operations
// that mutate them. Payload checks decode the document as its declared
// entity type and verify the fields every entity must carry.
type RecordValidator struct {
}

func NewRecordValidator() Validator {
	return &RecordValidator{}
}

func (v *RecordValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Record:
		return v.validateRecord(ctx, value, fields...)
	case *models.Record:
		return v.validateRecord(ctx, *value, fields...)

	case models.PushOperation:
		return v.validatePushOperation(ctx, value, fields...)
	case *models.PushOperation:
		return v.validatePushOperation(ctx, *value, fields...)

	case models.PushRequest:
		return v.validatePushRequest(ctx, value, fields...)
	case *models.PushRequest:
		return v.validatePushRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *RecordValidator) validateRecord(ctx context.Context, record models.Record, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEntityType, FieldEntityID, FieldPayload, FieldVersion}
	}

	for _, f := range fields {
		switch f {
		case FieldEntityType:
			if !record.EntityType.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidEntityType, record.EntityType)
			}
		case FieldEntityID:
			if record.EntityID == "" {
				return ErrInvalidEntityID
			}
		case FieldPayload:
			if record.Deleted {
				// Tombstones carry no payload.
				continue
			}
			if err := ValidatePayload(record.EntityType, record.Payload); err != nil {
				return err
			}
		case FieldVersion:
			if record.Version < 0 {
				return ErrInvalidVersion
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validatePushOperation(ctx context.Context, op models.PushOperation, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEntityType, FieldEntityID, FieldOperation, FieldPayload, FieldBaseVersion}
	}

	for _, f := range fields {
		switch f {
		case FieldEntityType:
			if !op.EntityType.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidEntityType, op.EntityType)
			}
		case FieldEntityID:
			if op.EntityID == "" {
				return ErrInvalidEntityID
			}
		case FieldOperation:
			if !op.Operation.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidOperation, op.Operation)
			}
		case FieldPayload:
			if op.Operation == models.OperationDelete {
				if len(op.Payload) != 0 {
					return ErrDeleteCarriesPayload
				}
				continue
			}
			if err := ValidatePayload(op.EntityType, op.Payload); err != nil {
				return err
			}
		case FieldBaseVersion:
			if op.BaseVersion < 0 {
				return ErrInvalidVersion
			}
			if op.Operation == models.OperationCreate && op.BaseVersion != 0 {
				return ErrInvalidCreateVersion
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RecordValidator) validatePushRequest(ctx context.Context, request models.PushRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldOperations}
	}

	for _, f := range fields {
		switch f {
		case FieldOperations:
			if len(request.Operations) == 0 {
				return ErrNoOperations
			}
			for i, op := range request.Operations {
				if err := v.validatePushOperation(ctx, op); err != nil {
					return fmt.Errorf("validation error at index %d: %w", i, err)
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// ValidatePayload decodes raw as the typed document of entityType and checks
// the fields every entity of that type must carry: a display name for the
// registry entities and a variable/value pair for observations.
func ValidatePayload(entityType models.EntityType, raw []byte) error {
	if len(raw) == 0 {
		return ErrEmptyPayload
	}

	decoded, err := models.DecodePayload(entityType, raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}

	switch payload := decoded.(type) {
	case *models.Germplasm:
		if payload.GermplasmName == "" {
			return ErrMissingName
		}
	case *models.Trial:
		if payload.TrialName == "" {
			return ErrMissingName
		}
	case *models.Study:
		if payload.StudyName == "" {
			return ErrMissingName
		}
	case *models.Observation:
		if payload.ObservationVariableName == "" {
			return ErrMissingName
		}
		if payload.Value == "" {
			return ErrMissingValue
		}
	case *models.Sample:
		if payload.SampleName == "" {
			return ErrMissingName
		}
	}

	return nil
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/store"
	"github.com/agrostack/fieldsync/internal/validators"
	"github.com/agrostack/fieldsync/models"
)

// recordService is the concrete implementation of RecordService. It serves
// the BrAPI read surface and the direct server-side edit endpoint; every
// accepted edit bumps the record version, which is what later turns into a
// conflict for a client pushing against the old version.
type recordService struct {
	recordRepository store.RecordRepository

	logger *logger.Logger
}

// NewRecordService constructs a RecordService over the given repository.
func NewRecordService(recordRepository store.RecordRepository, logger *logger.Logger) RecordService {
	return &recordService{recordRepository: recordRepository, logger: logger}
}

// ListRecords returns the user's records matching query together with the
// total count before paging.
func (s *recordService) ListRecords(ctx context.Context, userID int64, query models.RecordQuery) ([]models.Record, int64, error) {
	records, total, err := s.recordRepository.ListRecords(ctx, userID, query)
	if err != nil {
		return nil, 0, fmt.Errorf("list records: %w", err)
	}

	return records, total, nil
}

// GetRecord returns one record by its entity identity.
func (s *recordService) GetRecord(ctx context.Context, userID int64, entityType models.EntityType, entityID string) (models.Record, error) {
	record, err := s.recordRepository.GetRecord(ctx, userID, entityType, entityID)
	if err != nil {
		return models.Record{}, fmt.Errorf("get record: %w", err)
	}

	return record, nil
}

// PutRecord validates and stores an entity document. A zero baseVersion
// creates the record; otherwise the update only applies when baseVersion
// still matches the stored version (store.ErrVersionConflict otherwise).
func (s *recordService) PutRecord(ctx context.Context, userID int64, entityType models.EntityType, entityID string, payload json.RawMessage, baseVersion int64) (models.Record, error) {
	log := logger.FromContext(ctx)

	if !entityType.Valid() {
		return models.Record{}, fmt.Errorf("%w: unknown entity type %q", ErrInvalidDataProvided, entityType)
	}
	if entityID == "" {
		return models.Record{}, fmt.Errorf("%w: empty entity id", ErrInvalidDataProvided)
	}
	if err := validators.ValidatePayload(entityType, payload); err != nil {
		log.Warn().Err(err).
			Str("entity_type", string(entityType)).
			Str("entity_id", entityID).
			Msg("rejecting invalid payload")
		return models.Record{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	record := models.Record{
		UserID:     userID,
		EntityType: entityType,
		EntityID:   entityID,
		Name:       models.PayloadName(entityType, payload),
		Payload:    payload,
	}

	if baseVersion == 0 {
		stored, err := s.recordRepository.InsertRecord(ctx, record)
		if err != nil {
			if errors.Is(err, store.ErrRecordAlreadyExists) {
				return models.Record{}, fmt.Errorf("put record: %w", store.ErrVersionConflict)
			}
			return models.Record{}, fmt.Errorf("put record: %w", err)
		}
		return stored, nil
	}

	stored, err := s.recordRepository.UpdateRecord(ctx, record, baseVersion)
	if err != nil {
		return models.Record{}, fmt.Errorf("put record: %w", err)
	}

	return stored, nil
}

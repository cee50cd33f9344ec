package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agrostack/fieldsync/internal/app"
	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/service"
	"github.com/agrostack/fieldsync/internal/store"
	"github.com/agrostack/fieldsync/internal/utils"
	"github.com/agrostack/fieldsync/models"
	"github.com/go-chi/chi/v5"
)

// putRecordRequest is the body of PUT /api/v2/records/{entityType}/{entityID}.
// BaseVersion zero creates the record; non-zero updates it under the
// optimistic concurrency check.
type putRecordRequest struct {
	Payload     json.RawMessage `json:"payload"`
	BaseVersion int64           `json:"base_version"`
}

// recordListResponse answers the record listing with the page and the total
// match count.
type recordListResponse struct {
	Records []models.Record `json:"records"`
	Total   int64           `json:"total"`
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}

	entityType := models.EntityType(chi.URLParam(r, "entityType"))
	if !entityType.Valid() {
		log.Error().Str("entity_type", string(entityType)).Msg("unknown entity type")
		http.Error(w, app.MsgUnknownEntityType, http.StatusBadRequest)
		return
	}

	query, err := parseChangesQuery(r)
	if err != nil {
		log.Err(err).Msg("invalid record listing query")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}
	query.EntityTypes = []models.EntityType{entityType}
	query.IncludeDeleted = false

	records, total, err := h.services.RecordService.ListRecords(ctx, userID, query)
	if err != nil {
		log.Err(err).Msg("error listing records")
		http.Error(w, app.MsgInternalServerError, statusFromError(err))
		return
	}

	utils.WriteJSON(w, recordListResponse{Records: records, Total: total}, http.StatusOK)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}

	entityType := models.EntityType(chi.URLParam(r, "entityType"))
	entityID := chi.URLParam(r, "entityID")
	if !entityType.Valid() {
		log.Error().Str("entity_type", string(entityType)).Msg("unknown entity type")
		http.Error(w, app.MsgUnknownEntityType, http.StatusBadRequest)
		return
	}

	record, err := h.services.RecordService.GetRecord(ctx, userID, entityType, entityID)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			log.Err(err).Str("entity_id", entityID).Msg("record not found")
			http.Error(w, app.MsgRecordNotFound, http.StatusNotFound)
			return
		}
		log.Err(err).Msg("error loading record")
		http.Error(w, app.MsgInternalServerError, statusFromError(err))
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) putRecord(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}

	entityType := models.EntityType(chi.URLParam(r, "entityType"))
	entityID := chi.URLParam(r, "entityID")
	if !entityType.Valid() {
		log.Error().Str("entity_type", string(entityType)).Msg("unknown entity type")
		http.Error(w, app.MsgUnknownEntityType, http.StatusBadRequest)
		return
	}

	var req putRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	record, err := h.services.RecordService.PutRecord(ctx, userID, entityType, entityID, req.Payload, req.BaseVersion)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("record payload failed validation")
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		case errors.Is(err, store.ErrVersionConflict):
			log.Err(err).Str("entity_id", entityID).Msg("record version conflict")
			http.Error(w, app.MsgVersionConflict, http.StatusConflict)
		case errors.Is(err, store.ErrRecordNotFound):
			log.Err(err).Str("entity_id", entityID).Msg("record not found")
			http.Error(w, app.MsgRecordNotFound, http.StatusNotFound)
		default:
			log.Err(err).Msg("error storing record")
			http.Error(w, app.MsgInternalServerError, statusFromError(err))
		}
		return
	}

	utils.WriteJSON(w, record, http.StatusOK)
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/agrostack/fieldsync/internal/app"
	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/service"
	"github.com/agrostack/fieldsync/internal/utils"
	"github.com/agrostack/fieldsync/models"
)

const (
	defaultSyncLogLimit = 50
	maxChangesPageSize  = 1000
)

func (h *Handler) push(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}

	var req models.PushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	resp, err := h.services.SyncService.ApplyPush(ctx, userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyBatch):
			log.Err(err).Msg("empty push batch")
			http.Error(w, app.MsgEmptyPushBatch, http.StatusBadRequest)
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("push batch failed validation")
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		default:
			log.Err(err).Msg("error applying push batch")
			http.Error(w, app.MsgInternalServerError, statusFromError(err))
		}
		return
	}

	for _, result := range resp.Results {
		h.metrics.pushTotal.WithLabelValues(string(result.Status)).Inc()
		if result.Status == models.PushConflict {
			h.metrics.conflictsTotal.Inc()
		}
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) changes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}

	query, err := parseChangesQuery(r)
	if err != nil {
		log.Err(err).Msg("invalid changes query")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	resp, err := h.services.SyncService.Changes(ctx, userID, query)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDataProvided) {
			log.Err(err).Msg("changes query failed validation")
			http.Error(w, app.MsgUnknownEntityType, http.StatusBadRequest)
			return
		}
		log.Err(err).Msg("error listing changed records")
		http.Error(w, app.MsgInternalServerError, statusFromError(err))
		return
	}

	h.metrics.pullRecordsTotal.Add(float64(len(resp.Records)))

	utils.WriteJSON(w, resp, http.StatusOK)
}

func (h *Handler) syncLog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}

	limit := defaultSyncLogLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			log.Error().Str("limit", raw).Msg("invalid sync log limit")
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := h.services.SyncService.Log(ctx, userID, limit)
	if err != nil {
		log.Err(err).Msg("error listing sync log")
		http.Error(w, app.MsgInternalServerError, statusFromError(err))
		return
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) version(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}

// parseChangesQuery decodes the pull query parameters: since (RFC3339Nano),
// entityTypes (comma-separated), page and pageSize.
func parseChangesQuery(r *http.Request) (models.RecordQuery, error) {
	values := r.URL.Query()

	query := models.RecordQuery{IncludeDeleted: true}

	if raw := values.Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return models.RecordQuery{}, err
		}
		query.Since = &since
	}

	if raw := values.Get("entityTypes"); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			entityType := models.EntityType(strings.TrimSpace(name))
			if !entityType.Valid() {
				return models.RecordQuery{}, errors.New(app.MsgUnknownEntityType)
			}
			query.EntityTypes = append(query.EntityTypes, entityType)
		}
	}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return models.RecordQuery{}, errors.New("invalid page")
		}
		query.Page = page
	}

	if raw := values.Get("pageSize"); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil || pageSize <= 0 {
			return models.RecordQuery{}, errors.New("invalid page size")
		}
		if pageSize > maxChangesPageSize {
			pageSize = maxChangesPageSize
		}
		query.PageSize = pageSize
	}

	return query, nil
}

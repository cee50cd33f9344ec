package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/agrostack/fieldsync/internal/app"
	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/utils"
	"github.com/agrostack/fieldsync/models"
)

// BrAPI pagination defaults, per the Breeding API specification.
const (
	brapiDefaultPageSize = 20
	brapiMaxPageSize     = 1000
)

// brapiPathEntityTypes maps the BrAPI collection path segment to the stored
// entity type.
var brapiPathEntityTypes = map[string]models.EntityType{
	"germplasm":    models.EntityGermplasm,
	"trials":       models.EntityTrial,
	"studies":      models.EntityStudy,
	"observations": models.EntityObservation,
	"samples":      models.EntitySample,
}

type brapiPagination struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int64 `json:"totalPages"`
}

type brapiMetadata struct {
	Pagination brapiPagination `json:"pagination"`
	Status     []string        `json:"status"`
}

type brapiResult struct {
	Data []json.RawMessage `json:"data"`
}

// brapiResponse is the standard BrAPI listing envelope.
type brapiResponse struct {
	Metadata brapiMetadata `json:"metadata"`
	Result   brapiResult   `json:"result"`
}

// brapiList serves the read-only BrAPI collections. The collection name is
// the last path segment; the data elements are the stored entity documents.
func (h *Handler) brapiList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}

	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	collection := segments[len(segments)-1]
	entityType, ok := brapiPathEntityTypes[collection]
	if !ok {
		log.Error().Str("collection", collection).Msg("unknown BrAPI collection")
		http.Error(w, app.MsgUnknownEntityType, http.StatusBadRequest)
		return
	}

	page, pageSize, err := parseBrAPIPaging(r)
	if err != nil {
		log.Err(err).Msg("invalid BrAPI paging")
		http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		return
	}

	query := models.RecordQuery{
		EntityTypes: []models.EntityType{entityType},
		Page:        page,
		PageSize:    pageSize,
	}

	records, total, err := h.services.RecordService.ListRecords(ctx, userID, query)
	if err != nil {
		log.Err(err).Str("collection", collection).Msg("error listing BrAPI collection")
		http.Error(w, app.MsgInternalServerError, statusFromError(err))
		return
	}

	data := make([]json.RawMessage, 0, len(records))
	for _, record := range records {
		data = append(data, record.Payload)
	}

	totalPages := total / int64(pageSize)
	if total%int64(pageSize) != 0 {
		totalPages++
	}

	utils.WriteJSON(w, brapiResponse{
		Metadata: brapiMetadata{
			Pagination: brapiPagination{
				CurrentPage: page,
				PageSize:    pageSize,
				TotalCount:  total,
				TotalPages:  totalPages,
			},
			Status: []string{},
		},
		Result: brapiResult{Data: data},
	}, http.StatusOK)
}

func parseBrAPIPaging(r *http.Request) (page, pageSize int, err error) {
	values := r.URL.Query()

	pageSize = brapiDefaultPageSize
	if raw := values.Get("pageSize"); raw != "" {
		pageSize, err = strconv.Atoi(raw)
		if err != nil || pageSize <= 0 {
			return 0, 0, errInvalidPageSize
		}
		if pageSize > brapiMaxPageSize {
			pageSize = brapiMaxPageSize
		}
	}

	if raw := values.Get("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 0 {
			return 0, 0, errInvalidPage
		}
	}

	return page, pageSize, nil
}

package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/agrostack/fieldsync/internal/app"
	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/service"
	"github.com/agrostack/fieldsync/internal/store"
	"github.com/agrostack/fieldsync/internal/utils"
	"github.com/agrostack/fieldsync/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) uploadAttachment(w http.ResponseWriter, r *http.Request) {
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

	attachment := models.Attachment{
		// a client re-uploading a spooled file supplies its own ID so the
		// operation stays idempotent
		AttachmentID: r.URL.Query().Get("attachmentId"),
		EntityType:   entityType,
		EntityID:     entityID,
		FileName:     r.Header.Get("X-File-Name"),
		ContentType:  r.Header.Get("Content-Type"),
	}

	stored, err := h.services.AttachmentService.Upload(ctx, userID, attachment, r.Body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid attachment metadata")
			http.Error(w, app.MsgInvalidDataProvided, http.StatusBadRequest)
		case errors.Is(err, service.ErrAttachmentTooLarge):
			log.Err(err).Str("file_name", attachment.FileName).Msg("attachment exceeds size limit")
			http.Error(w, service.ErrAttachmentTooLarge.Error(), http.StatusRequestEntityTooLarge)
		default:
			log.Err(err).Msg("error storing attachment")
			http.Error(w, app.MsgInternalServerError, statusFromError(err))
		}
		return
	}

	utils.WriteJSON(w, stored, http.StatusCreated)
}

func (h *Handler) downloadAttachment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Msg("no user ID was given")
		http.Error(w, app.MsgNoUserIDProvided, http.StatusBadRequest)
		return
	}

	attachmentID := chi.URLParam(r, "attachmentID")

	attachment, body, err := h.services.AttachmentService.Download(ctx, userID, attachmentID)
	if err != nil {
		if errors.Is(err, store.ErrAttachmentNotFound) {
			log.Err(err).Str("attachment_id", attachmentID).Msg("attachment not found")
			http.Error(w, app.MsgAttachmentNotFound, http.StatusNotFound)
			return
		}
		log.Err(err).Msg("error loading attachment")
		http.Error(w, app.MsgInternalServerError, statusFromError(err))
		return
	}
	defer body.Close()

	contentType := attachment.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if attachment.FileName != "" {
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", attachment.FileName))
	}

	if _, err := io.Copy(w, body); err != nil {
		log.Err(err).Str("attachment_id", attachmentID).Msg("error streaming attachment body")
	}
}

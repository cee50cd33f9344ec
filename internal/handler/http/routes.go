package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withInstrumentation)
	router.Use(withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/v2/auth/register", h.register)
		r.Post("/api/v2/auth/login", h.login)
		r.Get("/api/v2/health", h.health)
		r.Get("/api/v2/version", h.version)
		r.Handle("/metrics", h.metrics.handler())
	})

	// authorized sync and record surface
	router.Group(func(r chi.Router) {
		r.Use(h.verifyBodyHash)
		r.Use(h.auth)

		r.Post("/api/v2/sync/push", h.push)
		r.Get("/api/v2/sync/changes", h.changes)
		r.Get("/api/v2/sync/log", h.syncLog)

		r.Get("/api/v2/records/{entityType}", h.listRecords)
		r.Get("/api/v2/records/{entityType}/{entityID}", h.getRecord)
		r.Put("/api/v2/records/{entityType}/{entityID}", h.putRecord)

		r.Post("/api/v2/attachments/{entityType}/{entityID}", h.uploadAttachment)
		r.Get("/api/v2/attachments/{attachmentID}", h.downloadAttachment)

		r.Get("/brapi/v2/germplasm", h.brapiList)
		r.Get("/brapi/v2/trials", h.brapiList)
		r.Get("/brapi/v2/studies", h.brapiList)
		r.Get("/brapi/v2/observations", h.brapiList)
		r.Get("/brapi/v2/samples", h.brapiList)
	})

	router.MethodNotAllowed(hideUnroutedMethods(router))

	return router
}

// routePattern returns the chi pattern that matched the request, falling back
// to the raw path before routing has happened.
func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

package handler

import (
	"errors"

	"github.com/agrostack/fieldsync/internal/config"
	"github.com/agrostack/fieldsync/internal/handler/http"
	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/service"
)

var errNoHandlersAreCreated = errors.New("no handlers are created: no listen address configured")

// Handlers aggregates the transport handlers of the sync server. Only HTTP is
// served today; the aggregate stays so a second transport can be added without
// touching the server wiring.
type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg.App, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}

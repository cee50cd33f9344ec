package http

import (
	"github.com/agrostack/fieldsync/internal/config"
	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/service"
	"github.com/agrostack/fieldsync/internal/utils"
)

type Handler struct {
	services *service.Services
	metrics  *metrics

	// hashKey enables the HashSHA256 body integrity check when non-empty.
	hashKey string

	logger *logger.Logger
}

func NewHandler(services *service.Services, appCfg config.App, logger *logger.Logger) *Handler {
	if appCfg.HashKey != "" {
		utils.InitHasherPool(appCfg.HashKey)
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		metrics:  newMetrics(),
		hashKey:  appCfg.HashKey,
		logger:   logger,
	}
}

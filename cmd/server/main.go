package main

import (
	"context"
	"fmt"

	"github.com/agrostack/fieldsync/internal/blob"
	"github.com/agrostack/fieldsync/internal/config"
	"github.com/agrostack/fieldsync/internal/handler"
	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/server"
	"github.com/agrostack/fieldsync/internal/service"
	"github.com/agrostack/fieldsync/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("fieldsync-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildVersion
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}

	blobStore, err := blob.Open(ctx, cfg.Storage.Blob)
	if err != nil {
		log.Fatal().Err(err).Msg("error opening attachment store")
	}

	services, err := service.NewServices(storages, blobStore, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}

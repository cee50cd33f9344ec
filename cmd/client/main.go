package main

import (
	"context"
	"fmt"

	"github.com/agrostack/fieldsync/internal/adapter"
	"github.com/agrostack/fieldsync/internal/blob"
	"github.com/agrostack/fieldsync/internal/client"
	"github.com/agrostack/fieldsync/internal/config"
	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/service"
	"github.com/agrostack/fieldsync/internal/store"
	"github.com/agrostack/fieldsync/internal/tui"
	"github.com/agrostack/fieldsync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewClientLogger("fieldsync-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, cfg.App, cfg.Sync, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create server adapter")
	}

	storages, err := store.NewClientStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	blobStore, err := openSpool(cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("open attachment spool")
	}

	services := service.NewClientServices(storages, blobStore, serverAdapter, cfg.Sync, log)

	var ui *tui.TUI
	if !cfg.Headless {
		buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
		ui, err = tui.New(services, cfg.Sync, buildInfo)
		if err != nil {
			log.Fatal().Err(err).Msg("error creating ui")
		}
	}

	app, err := client.NewApp(services, ui, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func openSpool(cfg config.ClientStorage) (blob.Store, error) {
	if cfg.SpoolDir == "" {
		return blob.NewMemory(), nil
	}
	return blob.NewFilesystem(cfg.SpoolDir)
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

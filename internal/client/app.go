package client

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/agrostack/fieldsync/internal/config"
	"github.com/agrostack/fieldsync/internal/logger"
	"github.com/agrostack/fieldsync/internal/service"
	"github.com/agrostack/fieldsync/internal/store"
	"github.com/agrostack/fieldsync/internal/tui"
	"github.com/agrostack/fieldsync/internal/workers"
)

type App struct {
	cfg      *config.ClientConfig
	services *service.ClientServices
	tui      *tui.TUI
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui *tui.TUI, cfg *config.ClientConfig, logger *logger.Logger) (*App, error) {
	if services == nil || cfg == nil {
		return nil, errors.New("client app needs services and config")
	}
	if ui == nil && !cfg.Headless {
		return nil, errors.New("interactive mode needs a terminal UI")
	}

	return &App{
		cfg:      cfg,
		services: services,
		tui:      ui,
		logger:   logger,
	}, nil
}

func (a *App) Run() error {
	ctx := context.Background()

	session, err := a.services.AuthService.RestoreSession(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrSessionNotFound) {
			return fmt.Errorf("restore session: %w", err)
		}
		if a.cfg.Headless {
			return fmt.Errorf("headless mode needs a persisted session, sign in interactively first: %w", err)
		}

		session, err = a.tui.LoginFlow(ctx)
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	a.logger.Info().Str("login", session.Login).Msg("session active")

	// Replays queued captures the moment connectivity returns instead of
	// waiting out the sync interval.
	a.services.Probe.OnOnline(func() {
		if syncErr := a.services.Reconciler.Sync(ctx); syncErr != nil && !errors.Is(syncErr, service.ErrSyncInProgress) {
			a.logger.Warn().Err(syncErr).Msg("reconnect sync failed")
		}
	})

	background := []workers.Worker{
		workers.WorkerFunc(func() { a.services.Probe.Start(ctx, a.cfg.Sync.ProbeInterval) }),
	}
	if a.cfg.Sync.AutoSync {
		background = append(background, workers.WorkerFunc(func() {
			a.services.SyncJob.Start(ctx, a.cfg.Sync.Interval)
		}))
		defer a.services.SyncJob.Stop()
	}
	workers.NewWorkers(background...).Run()

	if a.cfg.Headless {
		return a.runHeadless(ctx)
	}

	logout, err := a.tui.MainLoop(ctx, session)
	if err != nil {
		return err
	}
	if logout {
		if err := a.services.AuthService.Logout(ctx); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		return a.Run()
	}

	return nil
}

// runHeadless blocks until a stop signal; the background workers keep the
// replica reconciled in the meantime.
func (a *App) runHeadless(ctx context.Context) error {
	a.logger.Info().Msg("running headless, terminal UI disabled")

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	<-signalCtx.Done()
	a.logger.Info().Msg("shutting down")

	return nil
}

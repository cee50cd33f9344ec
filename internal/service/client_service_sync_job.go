package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/agrostack/fieldsync/internal/logger"
)

// defaultSyncInterval is used when Start is given a non-positive interval.
const defaultSyncInterval = 5 * time.Minute

// clientSyncJob is the concrete implementation of ClientSyncJob.
type clientSyncJob struct {
	reconciler Reconciler
	logger     *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientSyncJob constructs a ClientSyncJob over the given reconciler.
func NewClientSyncJob(reconciler Reconciler, logger *logger.Logger) ClientSyncJob {
	return &clientSyncJob{
		reconciler: reconciler,
		logger:     logger,
	}
}

// Start implements ClientSyncJob.
func (j *clientSyncJob) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSyncInterval
	}

	j.Stop()

	jobCtx, cancel := context.WithCancel(ctx)

	j.mu.Lock()
	j.cancel = cancel
	j.mu.Unlock()

	j.wg.Add(1)
	go j.run(jobCtx, interval)

	j.logger.Info().Dur("interval", interval).Msg("background sync job started")
}

// Stop implements ClientSyncJob.
func (j *clientSyncJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	j.wg.Wait()
	j.logger.Info().Msg("background sync job stopped")
}

func (j *clientSyncJob) run(ctx context.Context, interval time.Duration) {
	defer j.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.runPass(ctx)
		}
	}
}

func (j *clientSyncJob) runPass(ctx context.Context) {
	err := j.reconciler.Sync(ctx)
	switch {
	case err == nil:
	case errors.Is(err, ErrSyncInProgress):
		// a manual pass is already running; the ticker simply waits its turn
		j.logger.Debug().Msg("sync pass skipped, another pass in progress")
	case errors.Is(err, ErrNotAuthenticated):
		j.logger.Debug().Msg("sync pass skipped, no session")
	case errors.Is(err, context.Canceled):
	default:
		j.logger.Err(err).Msg("background sync pass failed")
	}
}

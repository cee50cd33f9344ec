package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/agrostack/fieldsync/internal/adapter"
	"github.com/agrostack/fieldsync/internal/logger"
)

// defaultProbeInterval is used when Start is given a non-positive interval.
const defaultProbeInterval = 30 * time.Second

// connectivityProbe is the concrete implementation of ConnectivityProbe. It
// pings the server health endpoint on a ticker and keeps the last observed
// state; an offline-to-online flip fires the registered callbacks so a
// reconnecting device syncs immediately instead of waiting for the next
// scheduled pass.
type connectivityProbe struct {
	adapter adapter.ServerAdapter
	logger  *logger.Logger

	online atomic.Bool

	mu        sync.Mutex
	callbacks []func()
}

// NewConnectivityProbe constructs a ConnectivityProbe over the given adapter.
func NewConnectivityProbe(serverAdapter adapter.ServerAdapter, logger *logger.Logger) ConnectivityProbe {
	return &connectivityProbe{
		adapter: serverAdapter,
		logger:  logger,
	}
}

// Start implements ConnectivityProbe. The first probe runs immediately so
// startup does not report a stale offline state for a whole interval.
func (p *connectivityProbe) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultProbeInterval
	}

	go func() {
		p.probe(ctx)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.probe(ctx)
			}
		}
	}()
}

// Online implements ConnectivityProbe.
func (p *connectivityProbe) Online() bool {
	return p.online.Load()
}

// OnOnline implements ConnectivityProbe.
func (p *connectivityProbe) OnOnline(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callbacks = append(p.callbacks, fn)
}

func (p *connectivityProbe) probe(ctx context.Context) {
	err := p.adapter.Health(ctx)
	nowOnline := err == nil

	wasOnline := p.online.Swap(nowOnline)
	if wasOnline == nowOnline {
		return
	}

	if nowOnline {
		p.logger.Info().Msg("server reachable, connectivity restored")
		p.mu.Lock()
		callbacks := make([]func(), len(p.callbacks))
		copy(callbacks, p.callbacks)
		p.mu.Unlock()
		for _, fn := range callbacks {
			fn()
		}
		return
	}

	p.logger.Warn().Err(err).Msg("server unreachable, working offline")
}

package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sourcegraph/conc/panics"

	"github.com/xvierd/focuswatch/internal/domain"
	"github.com/xvierd/focuswatch/internal/ports"
)

// DefaultPollInterval is the cadence used when none is configured.
const DefaultPollInterval = 500 * time.Millisecond

// PollerConfig configures a StatePoller.
type PollerConfig struct {
	// Interval between ticks. Zero means DefaultPollInterval.
	Interval time.Duration
	// RequestTimeout bounds each fetch. Zero means no timeout.
	RequestTimeout time.Duration
}

// PollHandlers receive successful poll results.
// They are never called concurrently with each other or after Stop returns.
type PollHandlers struct {
	Live  func(domain.LiveState)
	Stats func(domain.Stats)
}

// StatePoller fetches live state and stats on a fixed cadence while running.
//
// Each tick issues both fetches independently. Results are delivered only
// if the poller is still in the run that issued them: Stop bumps the
// generation under the same lock deliveries hold, so a response that
// arrives after Stop is dropped.
type StatePoller struct {
	api      ports.FocusAPI
	cfg      PollerConfig
	handlers PollHandlers
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
	gen     uint64
	cancel  context.CancelFunc

	loops    sync.WaitGroup
	inflight sync.WaitGroup
}

// NewStatePoller creates a stopped poller.
func NewStatePoller(api ports.FocusAPI, cfg PollerConfig, handlers PollHandlers, logger *slog.Logger) *StatePoller {
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPollInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StatePoller{
		api:      api,
		cfg:      cfg,
		handlers: handlers,
		logger:   logger,
	}
}

// Start begins polling and reports whether it was stopped before.
// Starting a running poller does nothing. Requests use ctx, which is not
// cancelled by Stop so in-flight requests can finish.
func (p *StatePoller) Start(ctx context.Context) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running {
		return false
	}
	p.running = true
	p.gen++

	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.loops.Add(1)
	go p.loop(loopCtx, ctx, p.gen)
	return true
}

// Stop cancels the recurrence and reports whether the poller was running.
// Once Stop returns no handler runs for requests issued before it.
func (p *StatePoller) Stop() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return false
	}
	p.running = false
	p.gen++
	p.cancel()
	p.cancel = nil
	return true
}

// Running reports whether the poller is active.
func (p *StatePoller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Wait blocks until the loop has exited and every in-flight request has
// finished. Call it after Stop.
func (p *StatePoller) Wait() {
	p.loops.Wait()
	p.inflight.Wait()
}

func (p *StatePoller) loop(loopCtx, reqCtx context.Context, gen uint64) {
	defer p.loops.Done()

	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-loopCtx.Done():
			return
		case <-ticker.C:
			p.inflight.Add(2)
			go pollOnce(p, reqCtx, gen, "live state", p.api.LiveState, p.handlers.Live)
			go pollOnce(p, reqCtx, gen, "stats", p.api.Stats, p.handlers.Stats)
		}
	}
}

// pollOnce runs one fetch and hands the result to handle if the run that
// issued it is still current. Errors and panics are logged, never raised.
func pollOnce[T any](p *StatePoller, ctx context.Context, gen uint64, what string, fetch func(context.Context) (T, error), handle func(T)) {
	defer p.inflight.Done()

	var pc panics.Catcher
	pc.Try(func() {
		if p.cfg.RequestTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, p.cfg.RequestTimeout)
			defer cancel()
		}

		result, err := fetch(ctx)
		if err != nil {
			p.logger.Warn("poll failed", "fetch", what, "err", err)
			return
		}
		if handle == nil {
			return
		}
		if !p.deliver(gen, func() { handle(result) }) {
			p.logger.Debug("dropped stale poll result", "fetch", what)
		}
	})
	if r := pc.Recovered(); r != nil {
		p.logger.Error("poll panicked", "fetch", what, "panic", r.String())
	}
}

func (p *StatePoller) deliver(gen uint64, fn func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running || gen != p.gen {
		return false
	}
	fn()
	return true
}

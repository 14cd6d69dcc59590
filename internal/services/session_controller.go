package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/sourcegraph/conc/panics"

	"github.com/xvierd/focuswatch/internal/domain"
	"github.com/xvierd/focuswatch/internal/ports"
)

// Poller is the part of StatePoller the controller drives.
type Poller interface {
	Start(ctx context.Context) bool
	Stop() bool
	Wait()
}

// StatusResetter restores the idle live status.
type StatusResetter interface {
	Reset()
}

// HistorySink draws a fetched history.
type HistorySink interface {
	Render(sessions []domain.Session)
}

// SessionController runs the Idle/Active state machine: it issues the start
// and end requests, drives the poller, flips the controls and reloads the
// history after every transition.
type SessionController struct {
	api      ports.FocusAPI
	poller   Poller
	status   StatusResetter
	history  HistorySink
	controls ports.ControlsDisplay
	logger   *slog.Logger

	// base outlives callers' contexts so polls and reloads survive the
	// request that started them; Close cancels it.
	base   context.Context
	cancel context.CancelFunc

	// op serializes Start and End.
	op sync.Mutex

	mu    sync.Mutex
	state domain.SessionState
	runID string

	reloadSeq atomic.Uint64
	renderMu  sync.Mutex
	reloads   sync.WaitGroup
}

// NewSessionController creates an idle controller.
func NewSessionController(api ports.FocusAPI, poller Poller, status StatusResetter, history HistorySink, controls ports.ControlsDisplay, logger *slog.Logger) *SessionController {
	if logger == nil {
		logger = slog.Default()
	}
	base, cancel := context.WithCancel(context.Background())
	return &SessionController{
		base:     base,
		cancel:   cancel,
		api:      api,
		poller:   poller,
		status:   status,
		history:  history,
		controls: controls,
		logger:   logger,
		state:    domain.SessionIdle,
	}
}

// State returns the current session state.
func (c *SessionController) State() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// RunID returns the id of the active run, or "" when idle.
func (c *SessionController) RunID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.runID
}

// Load shows idle controls and loads the history.
func (c *SessionController) Load(ctx context.Context) {
	c.setState(domain.SessionIdle, "")
	c.ReloadHistory(ctx)
}

// Start asks the service to begin a session. On success the poller starts,
// the controls flip to Active and the history reloads. On failure nothing
// changes and the error is returned.
func (c *SessionController) Start(ctx context.Context) error {
	c.op.Lock()
	defer c.op.Unlock()

	if c.State() == domain.SessionActive {
		return domain.ErrSessionAlreadyActive
	}

	if err := c.api.StartSession(ctx); err != nil {
		c.logger.Error("start session failed", "err", err)
		return fmt.Errorf("failed to start session: %w", err)
	}

	runID := domain.NewRunID()
	c.poller.Start(c.base)
	c.setState(domain.SessionActive, runID)
	c.logger.Info("session started", "run", runID)

	c.ReloadHistory(ctx)
	return nil
}

// End asks the service to finish the session. The poller is stopped, the
// live status reset and the controls flipped to Idle even when the request
// fails, so the UI never stays Active without polling. The request error
// is still returned.
func (c *SessionController) End(ctx context.Context) error {
	c.op.Lock()
	defer c.op.Unlock()

	if c.State() != domain.SessionActive {
		return domain.ErrNoActiveSession
	}
	runID := c.RunID()

	reqErr := c.api.EndSession(ctx)
	if reqErr != nil {
		c.logger.Error("end session failed, stopping anyway", "run", runID, "err", reqErr)
	}

	c.poller.Stop()
	c.status.Reset()
	c.setState(domain.SessionIdle, "")
	c.logger.Info("session ended", "run", runID)

	c.ReloadHistory(ctx)

	if reqErr != nil {
		return fmt.Errorf("failed to end session: %w", reqErr)
	}
	return nil
}

// ReloadHistory fetches the history in the background and redraws it.
// Only the most recently requested reload is drawn.
func (c *SessionController) ReloadHistory(ctx context.Context) {
	seq := c.reloadSeq.Add(1)
	ctx, cancel := c.detach(ctx)

	c.reloads.Add(1)
	go func() {
		defer c.reloads.Done()
		defer cancel()

		var pc panics.Catcher
		pc.Try(func() {
			sessions, err := c.api.History(ctx)
			if err != nil {
				c.logger.Warn("history fetch failed", "err", err)
				return
			}
			c.renderMu.Lock()
			defer c.renderMu.Unlock()
			if c.reloadSeq.Load() != seq {
				return
			}
			c.history.Render(sessions)
		})
		if r := pc.Recovered(); r != nil {
			c.logger.Error("history reload panicked", "panic", r.String())
		}
	}()
}

// Close stops polling without ending the remote session, aborts in-flight
// polls and history reloads, and waits for them to return.
func (c *SessionController) Close() {
	c.cancel()
	c.poller.Stop()
	c.Wait()
}

// Wait blocks until background history reloads and in-flight polls finish.
func (c *SessionController) Wait() {
	c.reloads.Wait()
	c.poller.Wait()
}

// WaitContext is Wait bounded by ctx. It reports whether the work drained.
func (c *SessionController) WaitContext(ctx context.Context) bool {
	done := make(chan struct{})
	go func() {
		c.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}

// detach returns a context with ctx's values that is not cancelled with
// ctx, only by Close.
func (c *SessionController) detach(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	stop := context.AfterFunc(c.base, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

func (c *SessionController) setState(state domain.SessionState, runID string) {
	c.mu.Lock()
	c.state = state
	c.runID = runID
	c.mu.Unlock()

	c.controls.ShowControls(state.Controls())
}

// Ensure SessionController implements ports.SessionControl.
var _ ports.SessionControl = (*SessionController)(nil)

package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/xvierd/focuswatch/internal/domain"
)

var errBoom = errors.New("boom")

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAPI is a scriptable ports.FocusAPI.
type fakeAPI struct {
	mu      sync.Mutex
	live    domain.LiveState
	stats   domain.Stats
	history []domain.Session

	liveErr    error
	statsErr   error
	historyErr error
	startErr   error
	endErr     error

	// liveHook runs before LiveState returns; it may block.
	liveHook func()
	// statsPanic makes Stats panic.
	statsPanic bool
	// stall makes LiveState and History block until ctx is done.
	stall bool

	calls map[string]int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		live:  domain.LiveState{Direction: domain.DirectionCenter},
		calls: make(map[string]int),
	}
}

func (f *fakeAPI) count(name string) {
	f.mu.Lock()
	f.calls[name]++
	f.mu.Unlock()
}

func (f *fakeAPI) Calls(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeAPI) set(fn func(f *fakeAPI)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeAPI) LiveState(ctx context.Context) (domain.LiveState, error) {
	f.count("live")
	f.mu.Lock()
	hook, live, err, stall := f.liveHook, f.live, f.liveErr, f.stall
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if stall {
		<-ctx.Done()
		return domain.LiveState{}, ctx.Err()
	}
	return live, err
}

func (f *fakeAPI) Stats(ctx context.Context) (domain.Stats, error) {
	f.count("stats")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statsPanic {
		panic("stats exploded")
	}
	return f.stats, f.statsErr
}

func (f *fakeAPI) History(ctx context.Context) ([]domain.Session, error) {
	f.count("history")
	f.mu.Lock()
	history, err, stall := f.history, f.historyErr, f.stall
	f.mu.Unlock()
	if stall {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return history, err
}

func (f *fakeAPI) StartSession(ctx context.Context) error {
	f.count("start")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.startErr
}

func (f *fakeAPI) EndSession(ctx context.Context) error {
	f.count("end")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.endErr
}

// recordingDisplay records every call it receives. It has a chart area.
type recordingDisplay struct {
	mu       sync.Mutex
	statuses []domain.StatusView
	stats    []domain.StatsView
	history  [][]domain.SessionView
	charts   []*domain.ChartView
	controls []domain.ControlsView
}

func (d *recordingDisplay) ShowStatus(v domain.StatusView) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.statuses = append(d.statuses, v)
}

func (d *recordingDisplay) ShowStats(v domain.StatsView) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stats = append(d.stats, v)
}

func (d *recordingDisplay) ShowHistory(v []domain.SessionView) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.history = append(d.history, v)
}

func (d *recordingDisplay) ShowChart(c *domain.ChartView) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.charts = append(d.charts, c)
}

func (d *recordingDisplay) ShowControls(v domain.ControlsView) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.controls = append(d.controls, v)
}

func (d *recordingDisplay) statusCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.statuses)
}

func (d *recordingDisplay) statsCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.stats)
}

func (d *recordingDisplay) historyCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.history)
}

func (d *recordingDisplay) lastStatus() domain.StatusView {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.statuses) == 0 {
		return domain.StatusView{}
	}
	return d.statuses[len(d.statuses)-1]
}

func (d *recordingDisplay) lastControls() domain.ControlsView {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.controls) == 0 {
		return domain.ControlsView{}
	}
	return d.controls[len(d.controls)-1]
}

// listOnlyDisplay has no chart area.
type listOnlyDisplay struct {
	calls int
}

func (d *listOnlyDisplay) ShowHistory([]domain.SessionView) { d.calls++ }

type fakeAlerter struct {
	mu     sync.Mutex
	labels []string
	err    error
	// block, when set, holds every alert until it is closed.
	block chan struct{}
}

func (a *fakeAlerter) AlertFocusLost(view domain.StatusView) error {
	if a.block != nil {
		<-a.block
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.labels = append(a.labels, view.Label)
	return a.err
}

func (a *fakeAlerter) sent() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.labels...)
}

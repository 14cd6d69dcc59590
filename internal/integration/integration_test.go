package integration

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/xvierd/focuswatch/internal/adapters/focusapi"
	"github.com/xvierd/focuswatch/internal/adapters/focusapi/focusapitest"
	"github.com/xvierd/focuswatch/internal/adapters/tui"
	"github.com/xvierd/focuswatch/internal/config"
	"github.com/xvierd/focuswatch/internal/domain"
	"github.com/xvierd/focuswatch/internal/services"
)

const pollInterval = 20 * time.Millisecond

// lockedBuffer lets the test read what the printer writes concurrently.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type stack struct {
	srv        *focusapitest.Server
	out        *lockedBuffer
	poller     *services.StatePoller
	controller *services.SessionController
}

func setupStack(t *testing.T) *stack {
	t.Helper()

	srv := focusapitest.NewServer()
	t.Cleanup(srv.Close)

	api, err := focusapi.New(srv.URL)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	out := &lockedBuffer{}
	printer := tui.NewPrinter(out, domain.LocaleEN, config.DefaultThemeConfig())

	status := services.NewLiveStatusRenderer(printer, domain.LocaleEN, domain.DefaultIcons, logger)
	stats := services.NewStatsRenderer(printer, domain.LocaleEN)
	history := services.NewHistoryRenderer(printer, domain.LocaleEN)
	poller := services.NewStatePoller(api, services.PollerConfig{Interval: pollInterval}, services.PollHandlers{
		Live:  func(s domain.LiveState) { status.Render(s) },
		Stats: stats.Render,
	}, logger)
	controller := services.NewSessionController(api, poller, status, history, printer, logger)
	t.Cleanup(controller.Close)

	return &stack{srv: srv, out: out, poller: poller, controller: controller}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(pollInterval / 4)
	}
}

// TestFullSessionLifecycle drives a session against the HTTP fake from
// start to end.
func TestFullSessionLifecycle(t *testing.T) {
	s := setupStack(t)
	ctx := context.Background()

	s.srv.SetHistory([]domain.Session{
		{Date: "2024-05-01", StartTime: "09:00", TotalFocus: 90, TotalUnfocus: 10, FocusPercentage: 90},
	})

	t.Run("load shows idle history", func(t *testing.T) {
		s.controller.Load(ctx)
		s.controller.Wait()

		out := s.out.String()
		if !strings.Contains(out, "Session 2024-05-01 09:00") {
			t.Errorf("history not printed:\n%s", out)
		}
		if strings.Contains(out, "Focus trend") {
			t.Error("a single session should not draw the trend chart")
		}
		if s.srv.Calls(focusapi.PathStart) != 0 {
			t.Error("loading must not start a session")
		}
	})

	t.Run("start begins polling", func(t *testing.T) {
		s.srv.SetLiveState(domain.LiveState{Direction: domain.DirectionLeft, Warned: true})
		s.srv.SetStats(domain.Stats{TotalFocus: 65, TotalUnfocus: 5, FocusPercentage: 92.86})

		if err := s.controller.Start(ctx); err != nil {
			t.Fatalf("Start() error = %v", err)
		}
		if !s.srv.Active() {
			t.Error("service should have an active session")
		}
		if s.controller.State() != domain.SessionActive {
			t.Errorf("state = %v, want active", s.controller.State())
		}

		waitFor(t, "live status", func() bool { return strings.Contains(s.out.String(), "looking left") })
		waitFor(t, "stats", func() bool { return strings.Contains(s.out.String(), "92.9%") })
	})

	t.Run("direction changes are printed once", func(t *testing.T) {
		s.srv.SetLiveState(domain.LiveState{Direction: domain.DirectionCenter})
		waitFor(t, "center status", func() bool { return strings.Contains(s.out.String(), "good focus") })

		// Several more ticks with the same direction.
		time.Sleep(5 * pollInterval)
		if n := strings.Count(s.out.String(), "good focus"); n != 1 {
			t.Errorf("good focus printed %d times, want 1", n)
		}
	})

	t.Run("end stops polling and resets", func(t *testing.T) {
		s.srv.SetHistory([]domain.Session{
			{Date: "2024-05-02", StartTime: "10:00", TotalFocus: 65, TotalUnfocus: 5, FocusPercentage: 92.86},
			{Date: "2024-05-01", StartTime: "09:00", TotalFocus: 90, TotalUnfocus: 10, FocusPercentage: 90},
		})

		if err := s.controller.End(ctx); err != nil {
			t.Fatalf("End() error = %v", err)
		}
		s.controller.Wait()

		if s.srv.Active() {
			t.Error("service session should be ended")
		}
		if s.poller.Running() {
			t.Error("poller should be stopped")
		}

		calls := s.srv.Calls(focusapi.PathLiveState)
		time.Sleep(5 * pollInterval)
		if got := s.srv.Calls(focusapi.PathLiveState); got != calls {
			t.Errorf("live state fetched %d times after end", got-calls)
		}

		out := s.out.String()
		if !strings.Contains(out, "ready to start") {
			t.Errorf("status not reset to idle:\n%s", out)
		}
		if !strings.Contains(out, "Focus trend") {
			t.Errorf("two sessions should draw the trend chart:\n%s", out)
		}
	})
}

// TestEndWhenServiceFails keeps the client consistent when the end request
// is rejected.
func TestEndWhenServiceFails(t *testing.T) {
	s := setupStack(t)
	ctx := context.Background()

	if err := s.controller.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	s.srv.FailNext(focusapi.PathEnd, 1)

	err := s.controller.End(ctx)
	if err == nil {
		t.Fatal("End() should report the failed request")
	}
	s.controller.Wait()

	if s.controller.State() != domain.SessionIdle {
		t.Errorf("state = %v, want idle", s.controller.State())
	}
	if s.poller.Running() {
		t.Error("poller should be stopped even though the request failed")
	}
}

// TestPollingSurvivesServiceErrors keeps ticking through failing fetches.
func TestPollingSurvivesServiceErrors(t *testing.T) {
	s := setupStack(t)
	s.srv.FailNext(focusapi.PathLiveState, 3)
	s.srv.SetLiveState(domain.LiveState{Direction: domain.DirectionRight})

	if err := s.controller.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	waitFor(t, "recovery after failures", func() bool { return strings.Contains(s.out.String(), "looking right") })

	if got := s.srv.Calls(focusapi.PathLiveState); got < 4 {
		t.Errorf("live state fetched %d times, want at least 4", got)
	}
}

// TestCloseAbortsStalledServer checks that shutting down does not wait on a
// service that accepted requests but never answers.
func TestCloseAbortsStalledServer(t *testing.T) {
	var stalled atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == focusapi.PathStart {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"status": "started"}`)
			return
		}
		stalled.Add(1)
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	api, err := focusapi.New(srv.URL)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	printer := tui.NewPrinter(io.Discard, domain.LocaleEN, config.DefaultThemeConfig())
	status := services.NewLiveStatusRenderer(printer, domain.LocaleEN, domain.DefaultIcons, logger)
	poller := services.NewStatePoller(api, services.PollerConfig{Interval: pollInterval}, services.PollHandlers{
		Live: func(s domain.LiveState) { status.Render(s) },
	}, logger)
	controller := services.NewSessionController(api, poller, status,
		services.NewHistoryRenderer(printer, domain.LocaleEN), printer, logger)

	ctx, cancel := context.WithCancel(context.Background())
	if err := controller.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	waitFor(t, "stalled requests", func() bool { return stalled.Load() >= 3 })
	cancel()

	closed := make(chan struct{})
	go func() {
		controller.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(3 * time.Second):
		t.Fatal("Close still blocked on the stalled service")
	}
}

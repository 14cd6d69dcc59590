// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"log/slog"
	"sync"

	"github.com/xvierd/focuswatch/internal/domain"
	"github.com/xvierd/focuswatch/internal/ports"
)

// LiveStatusRenderer turns live-state polls into status views.
// It only touches the display when the direction changes.
type LiveStatusRenderer struct {
	display ports.StatusDisplay
	alerter ports.Alerter
	locale  domain.Locale
	icons   domain.Icons
	logger  *slog.Logger

	mu            sync.Mutex
	lastDirection domain.Direction
	lastWarning   bool

	alerts sync.WaitGroup
}

// NewLiveStatusRenderer creates a renderer drawing into display.
func NewLiveStatusRenderer(display ports.StatusDisplay, locale domain.Locale, icons domain.Icons, logger *slog.Logger) *LiveStatusRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LiveStatusRenderer{
		display: display,
		locale:  locale,
		icons:   icons,
		logger:  logger,
	}
}

// SetAlerter sets the alerter fired when a warning becomes visible.
func (r *LiveStatusRenderer) SetAlerter(alerter ports.Alerter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.alerter = alerter
}

// Render shows state if its direction differs from the last rendered one
// and reports whether the display was touched.
//
// The warning flag is only looked at when the direction gate lets a render
// through, so a warning raised while the direction stays the same is not
// shown until the next direction change. Alerts are sent in the background
// so a slow notification daemon never holds up polling.
func (r *LiveStatusRenderer) Render(state domain.LiveState) bool {
	view, alerter, changed := r.render(state)
	if alerter != nil {
		r.alerts.Add(1)
		go func() {
			defer r.alerts.Done()
			if err := alerter.AlertFocusLost(view); err != nil {
				r.logger.Warn("focus alert failed", "err", err)
			}
		}()
	}
	return changed
}

// render updates the display under the lock and returns the alerter to
// notify, if the warning just became visible.
func (r *LiveStatusRenderer) render(state domain.LiveState) (domain.StatusView, ports.Alerter, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	direction := state.Direction
	if direction == "" {
		direction = domain.DirectionUnknown
	}
	if direction == r.lastDirection {
		return domain.StatusView{}, nil, false
	}

	view := domain.StatusView{
		Direction:  direction,
		Label:      r.locale.DirectionLabel(direction),
		Icon:       r.icons.For(direction),
		StateClass: direction.StateClass(),
		Warning:    state.Warned,
	}
	r.display.ShowStatus(view)
	r.lastDirection = direction

	var alerter ports.Alerter
	if view.Warning && !r.lastWarning {
		r.logger.Info("focus warning shown", "direction", string(direction))
		alerter = r.alerter
	}
	r.lastWarning = view.Warning
	return view, alerter, true
}

// WaitAlerts blocks until alerts sent so far have been delivered.
func (r *LiveStatusRenderer) WaitAlerts() {
	r.alerts.Wait()
}

// Reset forgets the last direction and shows the idle status.
func (r *LiveStatusRenderer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastDirection = ""
	r.lastWarning = false
	r.display.ShowStatus(r.idleView())
}

// IdleView returns the status shown before a session starts.
func (r *LiveStatusRenderer) IdleView() domain.StatusView {
	return r.idleView()
}

func (r *LiveStatusRenderer) idleView() domain.StatusView {
	return domain.StatusView{
		Label: r.locale.Ready,
		Icon:  r.icons.Default,
	}
}

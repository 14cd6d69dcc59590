// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/xvierd/focuswatch/internal/config"
	"github.com/xvierd/focuswatch/internal/domain"
	"github.com/xvierd/focuswatch/internal/ports"
)

// Notifier handles desktop notifications. The settings can be swapped while
// the dashboard runs, so access is guarded.
type Notifier struct {
	mu  sync.RWMutex
	cfg config.NotificationConfig

	notify func(title, message string, icon any) error
	alert  func(title, message string, icon any) error
}

// New creates a new notifier with the given configuration.
func New(cfg config.NotificationConfig) *Notifier {
	return &Notifier{
		cfg:    cfg,
		notify: beeep.Notify,
		alert:  beeep.Alert,
	}
}

// Notify displays a desktop notification if enabled. With sound on it
// plays the system alert as well.
func (n *Notifier) Notify(title, message string) error {
	n.mu.RLock()
	cfg := n.cfg
	n.mu.RUnlock()

	if !cfg.Enabled {
		return nil
	}
	if cfg.Sound {
		return n.alert(title, message, "")
	}
	return n.notify(title, message, "")
}

// AlertFocusLost tells the user their attention drifted. The message names
// the direction only when the gaze is actually off to one side.
func (n *Notifier) AlertFocusLost(view domain.StatusView) error {
	title := "👀 Focus lost"
	message := "Your attention drifted. Look back at the screen to keep your streak."
	switch view.Direction {
	case domain.DirectionLeft, domain.DirectionRight:
		message = fmt.Sprintf("You are %s. Look back at the screen to keep your streak.", view.Label)
	}
	return n.Notify(title, message)
}

// Apply replaces the notification settings.
func (n *Notifier) Apply(cfg config.NotificationConfig) {
	n.mu.Lock()
	n.cfg = cfg
	n.mu.Unlock()
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.cfg.Enabled
}

var _ ports.Alerter = (*Notifier)(nil)

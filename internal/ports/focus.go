// Package ports defines the interfaces (driven and driving ports)
// between the focuswatch services and their adapters: the remote
// focus service on one side, the display and notifications on the other.
package ports

import (
	"context"

	"github.com/xvierd/focuswatch/internal/domain"
)

// FocusAPI is the remote focus service.
// This is a driven port (implemented by adapters).
type FocusAPI interface {
	// LiveState returns the current gaze state.
	LiveState(ctx context.Context) (domain.LiveState, error)

	// Stats returns the running aggregate of the current session.
	Stats(ctx context.Context) (domain.Stats, error)

	// History returns past sessions in the order the service chooses.
	History(ctx context.Context) ([]domain.Session, error)

	// StartSession asks the service to begin tracking.
	StartSession(ctx context.Context) error

	// EndSession asks the service to stop tracking and record the session.
	EndSession(ctx context.Context) error
}

// SessionControl is what a display needs to drive session transitions.
// This is a driving port (implemented by the services layer).
type SessionControl interface {
	// Load performs the initial history load with idle controls.
	Load(ctx context.Context)

	// Start begins a session.
	Start(ctx context.Context) error

	// End finishes the current session.
	End(ctx context.Context) error

	// ReloadHistory refetches and redraws the history.
	ReloadHistory(ctx context.Context)
}

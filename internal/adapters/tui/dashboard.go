package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/focuswatch/internal/ports"
)

// Dashboard runs the fullscreen bubbletea dashboard.
type Dashboard struct {
	display *ProgramDisplay
	control ports.SessionControl
	opts    Options
}

// NewDashboard creates a dashboard. The renderers must draw into display.
func NewDashboard(display *ProgramDisplay, control ports.SessionControl, opts Options) *Dashboard {
	return &Dashboard{display: display, control: control, opts: opts}
}

// Run blocks until the user quits or ctx is cancelled. Quitting stops the
// dashboard only; an active remote session keeps running.
func (d *Dashboard) Run(ctx context.Context) error {
	program := tea.NewProgram(
		NewModel(ctx, d.control, d.opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	d.display.attach(program)
	defer d.display.attach(nil)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// SetNotify reflects a notification toggle made elsewhere, such as a
// config file edit.
func (d *Dashboard) SetNotify(on bool) {
	d.display.send(notifyMsg(on))
}

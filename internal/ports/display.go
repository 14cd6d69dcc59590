package ports

import "github.com/xvierd/focuswatch/internal/domain"

// StatusDisplay shows the live status area.
type StatusDisplay interface {
	ShowStatus(view domain.StatusView)
}

// StatsDisplay shows the current-session stats area.
type StatsDisplay interface {
	ShowStats(view domain.StatsView)
}

// HistoryDisplay shows the per-session history list.
type HistoryDisplay interface {
	ShowHistory(sessions []domain.SessionView)
}

// ChartDisplay is implemented by displays that have a trend chart area.
// A nil chart clears the area.
type ChartDisplay interface {
	ShowChart(chart *domain.ChartView)
}

// ControlsDisplay enables and disables the session controls.
type ControlsDisplay interface {
	ShowControls(view domain.ControlsView)
}

// Display is the rendering target for every renderer.
// Implementations are called from several goroutines and must be safe
// for concurrent use.
type Display interface {
	StatusDisplay
	StatsDisplay
	HistoryDisplay
	ControlsDisplay
}

// Alerter raises an out-of-band alert when focus is lost. view is the
// status that carried the warning.
type Alerter interface {
	AlertFocusLost(view domain.StatusView) error
}

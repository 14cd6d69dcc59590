package services

import (
	"math"

	"github.com/xvierd/focuswatch/internal/domain"
	"github.com/xvierd/focuswatch/internal/ports"
)

// StatsRenderer overwrites the stats area on every call.
type StatsRenderer struct {
	display ports.StatsDisplay
	locale  domain.Locale
}

// NewStatsRenderer creates a renderer drawing into display.
func NewStatsRenderer(display ports.StatsDisplay, locale domain.Locale) *StatsRenderer {
	return &StatsRenderer{display: display, locale: locale}
}

// Render shows stats.
func (r *StatsRenderer) Render(stats domain.Stats) {
	r.display.ShowStats(BuildStatsView(stats, r.locale))
}

// BuildStatsView formats stats for display.
func BuildStatsView(stats domain.Stats, locale domain.Locale) domain.StatsView {
	return domain.StatsView{
		FocusTime:     domain.FormatDuration(stats.TotalFocus, locale),
		UnfocusTime:   domain.FormatDuration(stats.TotalUnfocus, locale),
		Percentage:    domain.FormatPercent(stats.FocusPercentage),
		FocusFraction: unitFraction(stats.FocusPercentage / 100),
	}
}

// unitFraction clamps f into [0,1], mapping non-finite values to 0.
func unitFraction(f float64) float64 {
	switch {
	case math.IsNaN(f), math.IsInf(f, 0), f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

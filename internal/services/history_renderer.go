package services

import (
	"fmt"
	"math"

	"github.com/xvierd/focuswatch/internal/domain"
	"github.com/xvierd/focuswatch/internal/ports"
)

// minChartSessions is the fewest sessions the trend chart is drawn for.
const minChartSessions = 2

// HistoryRenderer redraws the full history on every call.
type HistoryRenderer struct {
	display ports.HistoryDisplay
	locale  domain.Locale
}

// NewHistoryRenderer creates a renderer drawing into display. If display
// also implements ports.ChartDisplay the trend chart is drawn too.
func NewHistoryRenderer(display ports.HistoryDisplay, locale domain.Locale) *HistoryRenderer {
	return &HistoryRenderer{display: display, locale: locale}
}

// Render replaces the displayed history with sessions.
func (r *HistoryRenderer) Render(sessions []domain.Session) {
	r.display.ShowHistory(BuildSessionViews(sessions, r.locale))

	if chart, ok := r.display.(ports.ChartDisplay); ok {
		chart.ShowChart(BuildChart(sessions))
	}
}

// BuildSessionViews builds one history row per session, keeping the
// service's order.
func BuildSessionViews(sessions []domain.Session, locale domain.Locale) []domain.SessionView {
	views := make([]domain.SessionView, 0, len(sessions))
	for _, s := range sessions {
		segments := make([]domain.SegmentView, 0, len(s.Periods))
		for _, p := range s.Periods {
			segments = append(segments, domain.SegmentView{
				Type:  p.Type,
				Width: s.Fraction(p),
				Title: fmt.Sprintf("%s: %s", locale.PeriodLabel(p.Type), domain.FormatDuration(p.Duration, locale)),
			})
		}

		views = append(views, domain.SessionView{
			Title:       fmt.Sprintf("%s %s %s", locale.Session, s.Date, s.StartTime),
			Date:        s.Date,
			StartTime:   s.StartTime,
			Percentage:  domain.FormatPercent(s.FocusPercentage),
			Tier:        domain.Classify(s.FocusPercentage),
			FocusTime:   domain.FormatDuration(s.TotalFocus, locale),
			UnfocusTime: domain.FormatDuration(s.TotalUnfocus, locale),
			Segments:    segments,
		})
	}
	return views
}

// BuildChart builds the trend chart in chronological order, assuming
// sessions arrive newest first. It returns nil for fewer than two sessions.
func BuildChart(sessions []domain.Session) *domain.ChartView {
	if len(sessions) < minChartSessions {
		return nil
	}

	chart := &domain.ChartView{
		Bars:   make([]domain.ChartBar, 0, len(sessions)),
		Labels: make([]domain.ChartLabel, 0, len(sessions)),
	}
	for i := len(sessions) - 1; i >= 0; i-- {
		s := sessions[i]
		pct := s.FocusPercentage
		if math.IsNaN(pct) || math.IsInf(pct, 0) {
			pct = 0
		}
		chart.Bars = append(chart.Bars, domain.ChartBar{Height: unitFraction(pct / 100)})
		chart.Labels = append(chart.Labels, domain.ChartLabel{
			Date:  s.Date,
			Value: domain.FormatPercent(pct),
		})
	}
	return chart
}

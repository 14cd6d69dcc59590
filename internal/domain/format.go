package domain

import (
	"fmt"
	"math"
	"strings"
)

// Tier is the severity class of a focus percentage.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// Classify buckets a focus percentage. Lower bounds are inclusive.
func Classify(pct float64) Tier {
	switch {
	case pct >= 70:
		return TierHigh
	case pct >= 40:
		return TierMedium
	default:
		return TierLow
	}
}

// FormatDuration renders seconds as "<mins> <unit> <secs> <unit>".
// Negative and non-finite input is treated as 0.
func FormatDuration(seconds float64, loc Locale) string {
	total := wholeSeconds(seconds)
	return fmt.Sprintf("%d %s %d %s", total/60, loc.MinuteUnit, total%60, loc.SecondUnit)
}

// FormatDurationLong renders seconds with an hours part and drops leading
// zero parts: "1 h 2 min 3 sec", "2 min 3 sec", "3 sec".
func FormatDurationLong(seconds float64, loc Locale) string {
	total := wholeSeconds(seconds)
	hours, rest := total/3600, total%3600
	mins, secs := rest/60, rest%60

	parts := make([]string, 0, 3)
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", hours, loc.HourUnit))
	}
	if hours > 0 || mins > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", mins, loc.MinuteUnit))
	}
	parts = append(parts, fmt.Sprintf("%d %s", secs, loc.SecondUnit))
	return strings.Join(parts, " ")
}

// FormatPercent renders a percentage with one decimal place.
func FormatPercent(pct float64) string {
	if isBad(pct) || pct < 0 {
		pct = 0
	}
	return fmt.Sprintf("%.1f%%", pct)
}

func wholeSeconds(seconds float64) uint64 {
	seconds = clampSeconds(seconds)
	if seconds >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(math.Floor(seconds))
}

func clampSeconds(v float64) float64 {
	if isBad(v) || v < 0 {
		return 0
	}
	return v
}

func isBad(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

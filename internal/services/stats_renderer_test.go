package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xvierd/focuswatch/internal/domain"
)

func TestStatsRenderer_AlwaysRenders(t *testing.T) {
	d := &recordingDisplay{}
	r := NewStatsRenderer(d, domain.LocaleEN)

	stats := domain.Stats{TotalFocus: 125, TotalUnfocus: 61.7, FocusPercentage: 66.94}
	r.Render(stats)
	r.Render(stats)

	assert.Equal(t, 2, d.statsCount())
	got := d.stats[1]
	assert.Equal(t, "2 min 5 sec", got.FocusTime)
	assert.Equal(t, "1 min 1 sec", got.UnfocusTime)
	assert.Equal(t, "66.9%", got.Percentage)
	assert.InDelta(t, 0.6694, got.FocusFraction, 1e-9)
}

func TestBuildStatsView_Defaults(t *testing.T) {
	got := BuildStatsView(domain.Stats{}, domain.LocaleEN)
	assert.Equal(t, "0 min 0 sec", got.FocusTime)
	assert.Equal(t, "0 min 0 sec", got.UnfocusTime)
	assert.Equal(t, "0.0%", got.Percentage)
	assert.Zero(t, got.FocusFraction)
}

func TestBuildStatsView_ClampsFraction(t *testing.T) {
	assert.Equal(t, 1.0, BuildStatsView(domain.Stats{FocusPercentage: 250}, domain.LocaleEN).FocusFraction)
	assert.Zero(t, BuildStatsView(domain.Stats{FocusPercentage: math.NaN()}, domain.LocaleEN).FocusFraction)
}

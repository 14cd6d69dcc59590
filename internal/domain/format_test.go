package domain

import (
	"fmt"
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0 min 0 sec"},
		{125, "2 min 5 sec"},
		{59.99, "0 min 59 sec"},
		{60, "1 min 0 sec"},
		{3725, "62 min 5 sec"},
		{-5, "0 min 0 sec"},
		{math.NaN(), "0 min 0 sec"},
		{math.Inf(1), "0 min 0 sec"},
		{math.Inf(-1), "0 min 0 sec"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := FormatDuration(tt.seconds, LocaleEN)
			if got != tt.want {
				t.Errorf("FormatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatDuration_Arabic(t *testing.T) {
	got := FormatDuration(125, LocaleAR)
	want := "2 دقيقة 5 ثانية"
	if got != want {
		t.Errorf("FormatDuration(125, ar) = %q, want %q", got, want)
	}
}

func TestFormatDuration_LargeValues(t *testing.T) {
	got := FormatDuration(1e12, LocaleEN)
	want := fmt.Sprintf("%d min %d sec", uint64(1e12)/60, uint64(1e12)%60)
	if got != want {
		t.Errorf("FormatDuration(1e12) = %q, want %q", got, want)
	}
	// Must not panic on values past the integer range.
	_ = FormatDuration(math.MaxFloat64, LocaleEN)
}

func TestFormatDuration_Decomposes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		secs := rapid.Uint64Range(0, 1<<40).Draw(t, "secs")
		frac := rapid.Float64Range(0, 0.999).Draw(t, "frac")

		got := FormatDuration(float64(secs)+frac, LocaleEN)

		var mins, rest uint64
		if _, err := fmt.Sscanf(got, "%d min %d sec", &mins, &rest); err != nil {
			t.Fatalf("unparseable output %q: %v", got, err)
		}
		if rest >= 60 {
			t.Fatalf("seconds part %d out of range in %q", rest, got)
		}
		if mins*60+rest != secs {
			t.Fatalf("%q does not decompose %d", got, secs)
		}
	})
}

func TestFormatDurationLong(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0 sec"},
		{42, "42 sec"},
		{125, "2 min 5 sec"},
		{3600, "1 h 0 min 0 sec"},
		{3725.9, "1 h 2 min 5 sec"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatDurationLong(tt.seconds, LocaleEN); got != tt.want {
				t.Errorf("FormatDurationLong(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{0, "0.0%"},
		{66.666, "66.7%"},
		{100, "100.0%"},
		{-3, "0.0%"},
		{math.NaN(), "0.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatPercent(tt.pct); got != tt.want {
				t.Errorf("FormatPercent(%v) = %q, want %q", tt.pct, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		pct  float64
		want Tier
	}{
		{100, TierHigh},
		{70, TierHigh},
		{69.9, TierMedium},
		{40, TierMedium},
		{39.9, TierLow},
		{0, TierLow},
		{math.NaN(), TierLow},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.pct), func(t *testing.T) {
			if got := Classify(tt.pct); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.pct, got, tt.want)
			}
		})
	}
}

func TestClassify_Monotonic(t *testing.T) {
	rank := map[Tier]int{TierLow: 0, TierMedium: 1, TierHigh: 2}
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.Float64Range(0, 100).Draw(t, "a")
		b := rapid.Float64Range(0, 100).Draw(t, "b")
		if a > b {
			a, b = b, a
		}
		if rank[Classify(a)] > rank[Classify(b)] {
			t.Fatalf("Classify(%v)=%v ranks above Classify(%v)=%v", a, Classify(a), b, Classify(b))
		}
	})
}

package utils

import (
	"testing"
	"time"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name    string
		current int
		max     int
		width   int
		want    string
	}{
		{name: "empty", current: 0, max: 10, width: 10, want: "░░░░░░░░░░ 0/10"},
		{name: "partial", current: 7, max: 10, width: 10, want: "███████░░░ 7/10"},
		{name: "full", current: 10, max: 10, width: 10, want: "██████████ 10/10"},
		{name: "overshoot clamps", current: 15, max: 10, width: 10, want: "██████████ 10/10"},
		{name: "negative clamps", current: -3, max: 10, width: 10, want: "░░░░░░░░░░ 0/10"},
		{name: "zero max", current: 1, max: 0, width: 10, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProgressBar(tt.current, tt.max, tt.width); got != tt.want {
				t.Errorf("ProgressBar(%d, %d, %d) = %q, want %q", tt.current, tt.max, tt.width, got, tt.want)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{90 * time.Minute, "1h 30m"},
		{150 * time.Second, "2m 30s"},
		{45 * time.Second, "45s"},
		{200 * time.Millisecond, "1s"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(0.35); got != "35%" {
		t.Errorf("FormatPercent(0.35) = %q, want 35%%", got)
	}
	if got := FormatPercent(0.9); got != "90%" {
		t.Errorf("FormatPercent(0.9) = %q, want 90%%", got)
	}
}

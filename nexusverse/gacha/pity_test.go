package gacha

import (
	"errors"
	"testing"
)

func TestApplyPity(t *testing.T) {
	tests := []struct {
		name      string
		current   int
		success   bool
		premium   bool
		wantPity  int
		wantBreak bool
	}{
		{name: "success resets from seven", current: 7, success: true, wantPity: 0},
		{name: "success resets from zero", current: 0, success: true, wantPity: 0},
		{name: "failure increments", current: 3, wantPity: 4},
		{name: "premium failure increments twice", current: 3, premium: true, wantPity: 5},
		{name: "break at threshold", current: 9, wantPity: 0, wantBreak: true},
		{name: "premium break from eight", current: 8, premium: true, wantPity: 0, wantBreak: true},
		{name: "premium break from nine overshoots", current: 9, premium: true, wantPity: 0, wantBreak: true},
		{name: "no break one below", current: 8, wantPity: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotPity, gotBreak, err := ApplyPity(tt.current, tt.success, tt.premium, PityThreshold)
			if err != nil {
				t.Fatalf("ApplyPity() error = %v", err)
			}
			if gotPity != tt.wantPity || gotBreak != tt.wantBreak {
				t.Errorf("ApplyPity(%d, success=%v, premium=%v) = (%d, %v), want (%d, %v)",
					tt.current, tt.success, tt.premium, gotPity, gotBreak, tt.wantPity, tt.wantBreak)
			}
		})
	}
}

func TestApplyPityRejectsNegative(t *testing.T) {
	if _, _, err := ApplyPity(-1, false, false, PityThreshold); !errors.Is(err, ErrInvalidProgression) {
		t.Errorf("ApplyPity(-1) error = %v, want ErrInvalidProgression", err)
	}
}

func TestApplyPityDefaultThreshold(t *testing.T) {
	// A non-positive threshold falls back to the standard bar.
	pity, broke, err := ApplyPity(9, false, false, 0)
	if err != nil {
		t.Fatalf("ApplyPity() error = %v", err)
	}
	if pity != 0 || !broke {
		t.Errorf("ApplyPity(9, threshold=0) = (%d, %v), want (0, true)", pity, broke)
	}
}

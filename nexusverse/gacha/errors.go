package gacha

import "errors"

var (
	// ErrInvalidProgression flags malformed input state (negative pity,
	// negative credits, level below one, non-positive power). The core
	// rejects these instead of clamping so persistence bugs surface early.
	ErrInvalidProgression = errors.New("invalid progression state")

	// ErrInsufficientCredits is returned by the pull variant when the
	// snapshot cannot cover the pull cost.
	ErrInsufficientCredits = errors.New("insufficient credits")
)

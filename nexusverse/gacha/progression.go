package gacha

import (
	"fmt"
	"math"
	"time"
)

// Progression is the per-user snapshot the core operates on. It is passed
// by value and returned mutated; persistence belongs to the caller, which
// must serialize encounters per user (read-modify-write).
type Progression struct {
	UserID           string
	Credits          int64
	Collection       []Entity // insertion order is acquisition order, duplicates allowed
	Level            int
	Pity             int
	PityBreakPending bool // armed Rare+ floor for the next spawn
	PremiumUntil     time.Time
	Streak           int
	LastDaily        time.Time
}

// PremiumActive reports whether premium is active at the given instant.
func (p Progression) PremiumActive(now time.Time) bool {
	return !p.PremiumUntil.IsZero() && p.PremiumUntil.After(now)
}

// TotalPower sums the power of every owned entity.
func (p Progression) TotalPower() int {
	total := 0
	for _, e := range p.Collection {
		total += e.Power
	}
	return total
}

func (p Progression) validate() error {
	if p.Credits < 0 {
		return fmt.Errorf("%w: negative credits %d", ErrInvalidProgression, p.Credits)
	}
	if p.Level < 1 {
		return fmt.Errorf("%w: level %d below 1", ErrInvalidProgression, p.Level)
	}
	if p.Pity < 0 {
		return fmt.Errorf("%w: negative pity %d", ErrInvalidProgression, p.Pity)
	}
	return nil
}

// CreditsForCatch computes the award for a successful catch:
// floor(power/5) scaled by the composed credit multiplier.
func CreditsForCatch(power int, creditMult float64) (int64, error) {
	if power <= 0 {
		return 0, fmt.Errorf("%w: non-positive entity power %d", ErrInvalidProgression, power)
	}
	if creditMult <= 0 {
		creditMult = 1.0
	}
	return int64(math.Floor(float64(power/5) * creditMult)), nil
}

// LevelAfterCollectionSize reports the level after the collection grew from
// oldSize to newSize: one level per multiple of five crossed. Catches grow
// the collection one entity at a time, so leveledUp flips on every fifth
// entity.
func LevelAfterCollectionSize(oldSize, newSize, oldLevel int) (newLevel int, leveledUp bool) {
	newLevel = oldLevel
	for n := oldSize + 1; n <= newSize; n++ {
		if n%5 == 0 {
			newLevel++
		}
	}
	return newLevel, newLevel > oldLevel
}

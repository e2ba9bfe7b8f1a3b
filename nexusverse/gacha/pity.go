package gacha

import "fmt"

// PityThreshold is the number of failure points that arms a guaranteed
// Rare-or-better spawn on the following encounter.
const PityThreshold = 10

// ApplyPity advances the pity counter after one encounter.
//
// On success the counter resets to zero regardless of its prior value.
// On failure it grows by one point, or two for premium users, so premium
// reaches the guaranteed floor in half as many failed attempts. When the
// incremented counter would reach the threshold it clamps back to zero and
// pityBreak is set; the caller must arm the Rare+ floor for the next spawn.
func ApplyPity(current int, success, premium bool, threshold int) (newPity int, pityBreak bool, err error) {
	if current < 0 {
		return 0, false, fmt.Errorf("%w: negative pity count %d", ErrInvalidProgression, current)
	}
	if threshold <= 0 {
		threshold = PityThreshold
	}

	if success {
		return 0, false, nil
	}

	step := 1
	if premium {
		step = 2
	}
	newPity = current + step
	if newPity >= threshold {
		return 0, true, nil
	}
	return newPity, false, nil
}

package utils

import (
	"fmt"
	"strings"
	"time"
)

// ProgressBar renders a fixed-width unicode bar, e.g. pity 7/10 ->
// "███████░░░ 7/10".
func ProgressBar(current, max, width int) string {
	if max <= 0 || width <= 0 {
		return ""
	}
	if current < 0 {
		current = 0
	}
	if current > max {
		current = max
	}

	filled := current * width / max
	return fmt.Sprintf("%s%s %d/%d",
		strings.Repeat("█", filled),
		strings.Repeat("░", width-filled),
		current, max)
}

// FormatCredits renders a credit amount with the coin emoji.
func FormatCredits(amount int64) string {
	return fmt.Sprintf("💰 %d credits", amount)
}

// FormatDuration renders a wait in the largest sensible unit.
func FormatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	case d >= time.Minute:
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		seconds := int(d.Seconds())
		if seconds < 1 {
			seconds = 1
		}
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatPercent renders a probability as a whole percentage.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.0f%%", p*100)
}

package utils

import "github.com/nexusverse/nexusverse-bot/nexusverse/gacha"

// Embed colors.
const (
	SuccessColor = 0x00FF00
	ErrorColor   = 0xFF0000
	InfoColor    = 0x00D4FF
	WarningColor = 0xFFD700
	PremiumColor = 0x8B00FF
)

// RarityColor maps a tier to its embed accent color.
func RarityColor(r gacha.Rarity) int {
	switch r {
	case gacha.RarityMythic:
		return 0xFF0000
	case gacha.RarityLegendary:
		return 0xFFD700
	case gacha.RarityEpic:
		return 0x8B00FF
	case gacha.RarityRare:
		return 0x00D4FF
	default:
		return 0x95A5A6
	}
}

// RarityEmoji maps a tier to its display star string.
func RarityEmoji(r gacha.Rarity) string {
	switch r {
	case gacha.RarityMythic:
		return "🌟🌟🌟🌟🌟"
	case gacha.RarityLegendary:
		return "⭐⭐⭐⭐"
	case gacha.RarityEpic:
		return "⭐⭐⭐"
	case gacha.RarityRare:
		return "⭐⭐"
	default:
		return "⭐"
	}
}

package gacha

import (
	"fmt"
	"strings"
)

// Rarity tiers, ordered from most to least common. The zero value is Common.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityEpic
	RarityLegendary
	RarityMythic
)

// Rarities lists all tiers in ascending rarity order.
var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic, RarityLegendary, RarityMythic}

func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	case RarityMythic:
		return "Mythic"
	default:
		return fmt.Sprintf("Rarity(%d)", int(r))
	}
}

// ParseRarity converts a tier name back into a Rarity. Matching is
// case-insensitive so catalog files can use lowercase names.
func ParseRarity(s string) (Rarity, error) {
	switch strings.ToLower(s) {
	case "common":
		return RarityCommon, nil
	case "rare":
		return RarityRare, nil
	case "epic":
		return RarityEpic, nil
	case "legendary":
		return RarityLegendary, nil
	case "mythic":
		return RarityMythic, nil
	default:
		return RarityCommon, fmt.Errorf("unknown rarity %q", s)
	}
}

// UnmarshalText lets rarity names be decoded straight from the catalog TOML.
func (r *Rarity) UnmarshalText(text []byte) error {
	parsed, err := ParseRarity(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r Rarity) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Cumulative thresholds for the rarity roll, checked rarest first so a
// boost can only move probability mass toward rarer tiers.
const (
	mythicThreshold    = 0.01
	legendaryThreshold = 0.05
	epicThreshold      = 0.20
	rareThreshold      = 0.50
)

// RollRarity draws a rarity tier. The multiplier scales the ladder's
// thresholds, so values above 1.0 widen the rare bands without ever
// hard-guaranteeing them; only the pity floor guarantees anything.
func RollRarity(rarityMult float64, rng RandomSource) Rarity {
	if rarityMult <= 0 {
		rarityMult = 1.0
	}
	roll := rng.Float64()
	switch {
	case roll < mythicThreshold*rarityMult:
		return RarityMythic
	case roll < legendaryThreshold*rarityMult:
		return RarityLegendary
	case roll < epicThreshold*rarityMult:
		return RarityEpic
	case roll < rareThreshold*rarityMult:
		return RarityRare
	default:
		return RarityCommon
	}
}

// ResolveRarity draws a tier and a concrete entity from the catalog. When
// floorRarePlus is set (an armed pity break) a Common draw is promoted to
// Rare, so the result is always Rare or better.
func ResolveRarity(rarityMult float64, floorRarePlus bool, catalog *Catalog, rng RandomSource) (Rarity, Entity, error) {
	tier := RollRarity(rarityMult, rng)
	if floorRarePlus && tier == RarityCommon {
		tier = RarityRare
	}

	entity, ok := catalog.PickRandom(tier, rng)
	if !ok {
		return tier, Entity{}, fmt.Errorf("resolve rarity: %w", ErrEmptyCatalog)
	}
	// The fallback may have walked to a rarer tier; report what was picked.
	return entity.Rarity, entity, nil
}

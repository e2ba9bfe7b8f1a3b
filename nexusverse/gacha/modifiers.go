package gacha

// EventDoubleSpawn is the only event type with a numeric effect. Any other
// event type is display-only and must not change probabilities.
const EventDoubleSpawn = "double_spawn"

// DefaultSpawnMultiplier applies to official guilds that never configured
// their own multiplier.
const DefaultSpawnMultiplier = 3.0

// GuildContext is the per-invocation guild state the caller supplies.
type GuildContext struct {
	Official        bool
	SpawnMultiplier float64
}

// GlobalEvent is the active server-wide event, if any. An empty Type means
// no event is running.
type GlobalEvent struct {
	Type string
}

// Active reports whether any event is running.
func (e GlobalEvent) Active() bool { return e.Type != "" }

// DoubleSpawn reports whether the running event doubles spawn rates.
func (e GlobalEvent) DoubleSpawn() bool { return e.Type == EventDoubleSpawn }

// RateModifiers is the composed effect of premium, official-guild and
// event boosts on a single encounter.
type RateModifiers struct {
	RarityMult   float64 // multiplies the rarity roll
	SuccessBonus float64 // added to the catch success rate
	CreditMult   float64 // multiplies the credit award
}

// ComposeModifiers folds the three independent boost sources into one
// modifier set. Rarity boosts stack multiplicatively, success bonuses
// additively, and credit boosts multiplicatively; the asymmetry is part
// of the game design and must not be "fixed".
func ComposeModifiers(premium bool, guild GuildContext, event GlobalEvent) RateModifiers {
	m := RateModifiers{
		RarityMult: 1.0,
		CreditMult: 1.0,
	}

	if guild.Official {
		mult := guild.SpawnMultiplier
		if mult <= 0 {
			mult = DefaultSpawnMultiplier
		}
		m.RarityMult *= mult
		m.SuccessBonus += 0.10
	}
	if event.DoubleSpawn() {
		m.RarityMult *= 2.0
		m.SuccessBonus += 0.10
		m.CreditMult *= 2.0
	}
	if premium {
		m.RarityMult *= 1.5
		m.SuccessBonus += 0.20
		m.CreditMult *= 2.0
	}
	return m
}

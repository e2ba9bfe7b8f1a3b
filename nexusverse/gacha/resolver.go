package gacha

import (
	"fmt"
	"time"
)

const (
	baseSuccessRate = 0.30
	successPerLevel = 0.05
	maxSuccessRate  = 0.90

	// PullCost is the credit price of one gacha pull.
	PullCost = 50

	pullMinEntities = 1
	pullMaxEntities = 3
)

// EncounterOutcome is the result of a single catch attempt. An encounter
// always produces a visible spawn, even on failure.
type EncounterOutcome struct {
	Spawned        Entity
	Tier           Rarity
	Success        bool
	SuccessRate    float64
	CreditsAwarded int64 // zero on failure
	LeveledUp      bool
	PityAfter      int
	PityBreak      bool // this call consumed a full pity bar
	FloorApplied   bool // the spawn honored an armed Rare+ floor
	Modifiers      RateModifiers
}

// PullOutcome is the result of one paid pull: one to three spawns with no
// catch roll.
type PullOutcome struct {
	Entities     []Entity
	CreditsSpent int64
	PityAfter    int
	PityBreak    bool
	FloorApplied bool
	Modifiers    RateModifiers
}

// Resolver runs encounters against a fixed catalog. It holds no per-user
// state; everything mutable lives in the Progression value passed through
// each call, so distinct users can resolve concurrently while the caller
// serializes per-user access.
type Resolver struct {
	catalog       *Catalog
	rng           RandomSource
	pityThreshold int
}

// NewResolver builds a resolver over the given catalog. A nil rng selects
// the crypto-backed default.
func NewResolver(catalog *Catalog, rng RandomSource) *Resolver {
	if rng == nil {
		rng = DefaultRNG()
	}
	return &Resolver{
		catalog:       catalog,
		rng:           rng,
		pityThreshold: PityThreshold,
	}
}

// Catalog exposes the resolver's entity table.
func (r *Resolver) Catalog() *Catalog { return r.catalog }

// SuccessRate is the catch probability for a level and composed bonus:
// base 30%, +5% per level, capped at 90% no matter how bonuses stack.
func SuccessRate(level int, successBonus float64) float64 {
	rate := baseSuccessRate + successPerLevel*float64(level) + successBonus
	if rate > maxSuccessRate {
		rate = maxSuccessRate
	}
	return rate
}

// ResolveCatch runs one full encounter: rarity roll, catch roll, pity and
// progression updates. It never fails on valid input and always reports a
// spawned entity. The returned Progression replaces the input snapshot.
func (r *Resolver) ResolveCatch(p Progression, guild GuildContext, event GlobalEvent, now time.Time) (Progression, EncounterOutcome, error) {
	if err := p.validate(); err != nil {
		return p, EncounterOutcome{}, err
	}

	premium := p.PremiumActive(now)
	mods := ComposeModifiers(premium, guild, event)

	// A break on the previous encounter armed a Rare+ floor; it is
	// consumed by this spawn whether or not the catch lands.
	floored := p.PityBreakPending
	p.PityBreakPending = false

	tier, entity, err := ResolveRarity(mods.RarityMult, floored, r.catalog, r.rng)
	if err != nil {
		return p, EncounterOutcome{}, err
	}

	rate := SuccessRate(p.Level, mods.SuccessBonus)
	success := r.rng.Float64() < rate

	out := EncounterOutcome{
		Spawned:      entity,
		Tier:         tier,
		Success:      success,
		SuccessRate:  rate,
		FloorApplied: floored,
		Modifiers:    mods,
	}

	if success {
		oldSize := len(p.Collection)
		p.Collection = append(p.Collection, entity)

		credits, err := CreditsForCatch(entity.Power, mods.CreditMult)
		if err != nil {
			return p, out, err
		}
		p.Credits += credits
		out.CreditsAwarded = credits

		p.Level, out.LeveledUp = LevelAfterCollectionSize(oldSize, len(p.Collection), p.Level)
	}

	newPity, broke, err := ApplyPity(p.Pity, success, premium, r.pityThreshold)
	if err != nil {
		return p, out, fmt.Errorf("apply pity: %w", err)
	}
	p.Pity = newPity
	if broke {
		p.PityBreakPending = true
	}
	out.PityAfter = newPity
	out.PityBreak = broke

	return p, out, nil
}

// ResolvePull runs the paid gacha variant: spends PullCost credits, draws
// one to three entities with no catch roll, and advances pity by a single
// point. An armed Rare+ floor applies to the first draw.
func (r *Resolver) ResolvePull(p Progression, guild GuildContext, event GlobalEvent, now time.Time) (Progression, PullOutcome, error) {
	if err := p.validate(); err != nil {
		return p, PullOutcome{}, err
	}
	if p.Credits < PullCost {
		return p, PullOutcome{}, fmt.Errorf("%w: have %d, need %d", ErrInsufficientCredits, p.Credits, PullCost)
	}

	premium := p.PremiumActive(now)
	mods := ComposeModifiers(premium, guild, event)

	floored := p.PityBreakPending
	p.PityBreakPending = false

	count := pullMinEntities + r.rng.IntN(pullMaxEntities-pullMinEntities+1)
	pulled := make([]Entity, 0, count)
	for i := 0; i < count; i++ {
		_, entity, err := ResolveRarity(mods.RarityMult, floored && i == 0, r.catalog, r.rng)
		if err != nil {
			return p, PullOutcome{}, err
		}
		pulled = append(pulled, entity)
	}

	p.Credits -= PullCost
	p.Collection = append(p.Collection, pulled...)

	// Pulls have no success gate, so pity advances by one point per pull
	// regardless of premium; only catch failures fill the bar faster.
	newPity, broke, err := ApplyPity(p.Pity, false, false, r.pityThreshold)
	if err != nil {
		return p, PullOutcome{}, fmt.Errorf("apply pity: %w", err)
	}
	p.Pity = newPity
	if broke {
		p.PityBreakPending = true
	}

	return p, PullOutcome{
		Entities:     pulled,
		CreditsSpent: PullCost,
		PityAfter:    newPity,
		PityBreak:    broke,
		FloorApplied: floored,
		Modifiers:    mods,
	}, nil
}

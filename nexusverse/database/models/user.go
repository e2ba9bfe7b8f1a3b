package models

import (
	"time"

	"github.com/nexusverse/nexusverse-bot/nexusverse/gacha"
	"github.com/uptrace/bun"
)

const StartingCredits = 100

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int64  `bun:"id,pk,autoincrement"`
	DiscordID string `bun:"discord_id,notnull,unique"`
	Username  string `bun:"username,notnull"`

	Credits int64 `bun:"credits,notnull,default:0"`
	Level   int   `bun:"level,notnull,default:1"`

	// Collection is the full caught-entity list stored as JSONB; the
	// engine only needs name/rarity/power, caught_at is display-only.
	Collection []OwnedEntity `bun:"collection,type:jsonb"`

	// Pity state survives restarts. PityBreakPending means a broken bar
	// still owes this user a Rare+ spawn.
	Pity             int  `bun:"pity,notnull,default:0"`
	PityBreakPending bool `bun:"pity_break_pending,notnull,default:false"`

	PremiumUntil time.Time `bun:"premium_until"`

	// Daily streak
	Streak    int       `bun:"streak,notnull,default:0"`
	LastDaily time.Time `bun:"last_daily"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

type OwnedEntity struct {
	Name     string       `json:"name"`
	Rarity   gacha.Rarity `json:"rarity"`
	Power    int          `json:"power"`
	CaughtAt time.Time    `json:"caught_at"`
}

// NewUser builds a fresh row with the starting balance.
func NewUser(discordID, username string) *User {
	return &User{
		DiscordID: discordID,
		Username:  username,
		Credits:   StartingCredits,
		Level:     1,
	}
}

// Progression converts the stored row into the engine's snapshot type.
func (u *User) Progression() gacha.Progression {
	collection := make([]gacha.Entity, len(u.Collection))
	for i, o := range u.Collection {
		collection[i] = gacha.Entity{Name: o.Name, Rarity: o.Rarity, Power: o.Power}
	}
	return gacha.Progression{
		UserID:           u.DiscordID,
		Credits:          u.Credits,
		Collection:       collection,
		Level:            u.Level,
		Pity:             u.Pity,
		PityBreakPending: u.PityBreakPending,
		PremiumUntil:     u.PremiumUntil,
		Streak:           u.Streak,
		LastDaily:        u.LastDaily,
	}
}

// ApplyProgression writes an engine snapshot back onto the row. Entities
// past the stored collection length are treated as newly caught and
// stamped with now.
func (u *User) ApplyProgression(p gacha.Progression, now time.Time) {
	for _, e := range p.Collection[len(u.Collection):] {
		u.Collection = append(u.Collection, OwnedEntity{
			Name:     e.Name,
			Rarity:   e.Rarity,
			Power:    e.Power,
			CaughtAt: now,
		})
	}
	u.Credits = p.Credits
	u.Level = p.Level
	u.Pity = p.Pity
	u.PityBreakPending = p.PityBreakPending
	u.PremiumUntil = p.PremiumUntil
	u.Streak = p.Streak
	u.LastDaily = p.LastDaily
}

// TotalPower sums the power of every owned entity.
func (u *User) TotalPower() int {
	total := 0
	for _, o := range u.Collection {
		total += o.Power
	}
	return total
}

package models

import (
	"time"

	"github.com/nexusverse/nexusverse-bot/nexusverse/gacha"
	"github.com/uptrace/bun"
)

const (
	EncounterKindCatch = "catch"
	EncounterKindPull  = "pull"
)

// EncounterLog is one resolved encounter, kept for audit and stats.
type EncounterLog struct {
	bun.BaseModel `bun:"table:encounter_logs,alias:el"`

	ID      int64  `bun:"id,pk,autoincrement"`
	UserID  string `bun:"user_id,notnull"`
	GuildID string `bun:"guild_id"`
	Kind    string `bun:"kind,notnull"`

	EntityName string       `bun:"entity_name,notnull"`
	Tier       gacha.Rarity `bun:"tier,notnull"`
	Success    bool         `bun:"success,notnull"`

	CreditsDelta int64 `bun:"credits_delta,notnull,default:0"`
	PityAfter    int   `bun:"pity_after,notnull"`
	PityBreak    bool  `bun:"pity_break,notnull,default:false"`
	FloorApplied bool  `bun:"floor_applied,notnull,default:false"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

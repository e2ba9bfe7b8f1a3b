package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Guild struct {
	bun.BaseModel `bun:"table:guilds,alias:g"`

	ID      int64  `bun:"id,pk,autoincrement"`
	GuildID string `bun:"guild_id,notnull,unique"`

	// Official guilds get the boosted spawn multiplier. Zero means use
	// the configured default.
	Official        bool    `bun:"official,notnull,default:false"`
	SpawnMultiplier float64 `bun:"spawn_multiplier,notnull,default:0"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

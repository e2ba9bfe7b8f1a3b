package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Ban struct {
	bun.BaseModel `bun:"table:bans,alias:b"`

	ID       int64  `bun:"id,pk,autoincrement"`
	UserID   string `bun:"user_id,notnull,unique"`
	Reason   string `bun:"reason"`
	BannedBy string `bun:"banned_by,notnull"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

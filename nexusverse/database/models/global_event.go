package models

import (
	"time"

	"github.com/uptrace/bun"
)

type GlobalEvent struct {
	bun.BaseModel `bun:"table:global_events,alias:ge"`

	ID int64 `bun:"id,pk,autoincrement"`

	// Type is the machine name ("double_spawn"); anything else is a
	// display-only event with no rate effect.
	Type        string `bun:"type,notnull"`
	Name        string `bun:"name,notnull"`
	Description string `bun:"description"`

	StartsAt time.Time `bun:"starts_at,notnull"`
	EndsAt   time.Time `bun:"ends_at,notnull"`

	CreatedBy string    `bun:"created_by,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}

// ActiveAt reports whether the event window covers the given instant.
func (e *GlobalEvent) ActiveAt(now time.Time) bool {
	return !now.Before(e.StartsAt) && now.Before(e.EndsAt)
}

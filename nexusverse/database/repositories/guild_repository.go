package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/nexusverse/nexusverse-bot/nexusverse/database/models"
	"github.com/uptrace/bun"
)

type GuildRepository interface {
	Get(ctx context.Context, guildID string) (*models.Guild, error)
	SetOfficial(ctx context.Context, guildID string, official bool, spawnMultiplier float64) error
	ListOfficial(ctx context.Context) ([]*models.Guild, error)
}

type guildRepository struct {
	db *bun.DB
}

func NewGuildRepository(db *bun.DB) GuildRepository {
	return &guildRepository{db: db}
}

func (r *guildRepository) Get(ctx context.Context, guildID string) (*models.Guild, error) {
	guild := new(models.Guild)
	err := r.db.NewSelect().
		Model(guild).
		Where("guild_id = ?", guildID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return guild, nil
}

// SetOfficial upserts the guild row; demoting a guild keeps the row so
// the multiplier survives a later re-promotion.
func (r *guildRepository) SetOfficial(ctx context.Context, guildID string, official bool, spawnMultiplier float64) error {
	now := time.Now()
	guild := &models.Guild{
		GuildID:         guildID,
		Official:        official,
		SpawnMultiplier: spawnMultiplier,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	_, err := r.db.NewInsert().
		Model(guild).
		On("CONFLICT (guild_id) DO UPDATE").
		Set("official = EXCLUDED.official").
		Set("spawn_multiplier = EXCLUDED.spawn_multiplier").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

func (r *guildRepository) ListOfficial(ctx context.Context) ([]*models.Guild, error) {
	var guilds []*models.Guild
	err := r.db.NewSelect().
		Model(&guilds).
		Where("official = true").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return guilds, nil
}

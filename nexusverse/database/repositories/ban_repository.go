package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/nexusverse/nexusverse-bot/nexusverse/database/models"
	"github.com/uptrace/bun"
)

type BanRepository interface {
	Ban(ctx context.Context, userID, reason, bannedBy string) error
	Unban(ctx context.Context, userID string) (bool, error)
	IsBanned(ctx context.Context, userID string) (bool, error)
	List(ctx context.Context) ([]*models.Ban, error)
}

type banRepository struct {
	db *bun.DB
}

func NewBanRepository(db *bun.DB) BanRepository {
	return &banRepository{db: db}
}

func (r *banRepository) Ban(ctx context.Context, userID, reason, bannedBy string) error {
	ban := &models.Ban{
		UserID:    userID,
		Reason:    reason,
		BannedBy:  bannedBy,
		CreatedAt: time.Now(),
	}
	_, err := r.db.NewInsert().
		Model(ban).
		On("CONFLICT (user_id) DO UPDATE").
		Set("reason = EXCLUDED.reason").
		Set("banned_by = EXCLUDED.banned_by").
		Set("created_at = EXCLUDED.created_at").
		Exec(ctx)
	return err
}

func (r *banRepository) Unban(ctx context.Context, userID string) (bool, error) {
	res, err := r.db.NewDelete().
		Model((*models.Ban)(nil)).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	return affected > 0, err
}

func (r *banRepository) IsBanned(ctx context.Context, userID string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*models.Ban)(nil)).
		Where("user_id = ?", userID).
		Exists(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	return exists, nil
}

func (r *banRepository) List(ctx context.Context) ([]*models.Ban, error) {
	var bans []*models.Ban
	err := r.db.NewSelect().
		Model(&bans).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return bans, nil
}

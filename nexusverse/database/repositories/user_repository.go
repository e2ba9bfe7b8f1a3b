package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nexusverse/nexusverse-bot/nexusverse/database/models"
	"github.com/uptrace/bun"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByDiscordID(ctx context.Context, discordID string) (*models.User, error)
	GetOrCreate(ctx context.Context, discordID, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, discordID string) error
	SetPremiumUntil(ctx context.Context, discordID string, until time.Time) error
	GetTopByCredits(ctx context.Context, limit int) ([]*models.User, error)
	Count(ctx context.Context) (int, error)
}

type userRepository struct {
	db *bun.DB
}

func NewUserRepository(db *bun.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(user).Exec(ctx)
	return err
}

func (r *userRepository) GetByDiscordID(ctx context.Context, discordID string) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("discord_id = ?", discordID).
		Scan(ctx)

	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("Database error when getting user",
				slog.String("type", "db"),
				slog.String("operation", "GetByDiscordID"),
				slog.String("discord_id", discordID),
				slog.String("error", err.Error()))
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetOrCreate(ctx context.Context, discordID, username string) (*models.User, error) {
	user, err := r.GetByDiscordID(ctx, discordID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	user = models.NewUser(discordID, username)
	if err := r.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", discordID, err)
	}

	slog.Info("New collector registered",
		slog.String("type", "db"),
		slog.String("discord_id", discordID),
		slog.String("username", username))
	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	_, err := r.db.NewUpdate().
		Model(user).
		WherePK().
		Exec(ctx)
	return err
}

func (r *userRepository) Delete(ctx context.Context, discordID string) error {
	_, err := r.db.NewDelete().
		Model((*models.User)(nil)).
		Where("discord_id = ?", discordID).
		Exec(ctx)
	return err
}

func (r *userRepository) SetPremiumUntil(ctx context.Context, discordID string, until time.Time) error {
	_, err := r.db.NewUpdate().
		Model((*models.User)(nil)).
		Set("premium_until = ?", until).
		Set("updated_at = ?", time.Now()).
		Where("discord_id = ?", discordID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update premium_until: %w", err)
	}
	return nil
}

func (r *userRepository) GetTopByCredits(ctx context.Context, limit int) ([]*models.User, error) {
	var users []*models.User
	err := r.db.NewSelect().
		Model(&users).
		OrderExpr("credits DESC").
		Limit(limit).
		Scan(ctx)
	return users, err
}

func (r *userRepository) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().
		Model((*models.User)(nil)).
		Count(ctx)
}

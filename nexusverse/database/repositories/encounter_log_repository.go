package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/nexusverse/nexusverse-bot/nexusverse/database/models"
	"github.com/uptrace/bun"
)

type EncounterLogRepository interface {
	Record(ctx context.Context, log *models.EncounterLog) error
	RecentForUser(ctx context.Context, userID string, limit int) ([]*models.EncounterLog, error)
	CountSince(ctx context.Context, userID string, since time.Time) (int, error)
}

type encounterLogRepository struct {
	db *bun.DB
}

func NewEncounterLogRepository(db *bun.DB) EncounterLogRepository {
	return &encounterLogRepository{db: db}
}

// Record is best-effort from the caller's point of view: command
// handlers log a failure here but never fail the encounter over it.
func (r *encounterLogRepository) Record(ctx context.Context, log *models.EncounterLog) error {
	log.CreatedAt = time.Now()
	_, err := r.db.NewInsert().Model(log).Exec(ctx)
	if err != nil {
		slog.Error("Failed to record encounter",
			slog.String("type", "db"),
			slog.String("operation", "Record"),
			slog.String("user_id", log.UserID),
			slog.String("error", err.Error()))
	}
	return err
}

func (r *encounterLogRepository) RecentForUser(ctx context.Context, userID string, limit int) ([]*models.EncounterLog, error) {
	var logs []*models.EncounterLog
	err := r.db.NewSelect().
		Model(&logs).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	return logs, err
}

func (r *encounterLogRepository) CountSince(ctx context.Context, userID string, since time.Time) (int, error) {
	return r.db.NewSelect().
		Model((*models.EncounterLog)(nil)).
		Where("user_id = ?", userID).
		Where("created_at >= ?", since).
		Count(ctx)
}

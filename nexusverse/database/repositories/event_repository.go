package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/nexusverse/nexusverse-bot/nexusverse/database/models"
	"github.com/uptrace/bun"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.GlobalEvent) error
	GetActive(ctx context.Context, now time.Time) (*models.GlobalEvent, error)
	EndActive(ctx context.Context, now time.Time) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]*models.GlobalEvent, error)
}

type eventRepository struct {
	db *bun.DB
}

func NewEventRepository(db *bun.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.GlobalEvent) error {
	event.CreatedAt = time.Now()
	_, err := r.db.NewInsert().Model(event).Exec(ctx)
	return err
}

// GetActive returns the newest event whose window covers now, or
// sql.ErrNoRows when nothing is running.
func (r *eventRepository) GetActive(ctx context.Context, now time.Time) (*models.GlobalEvent, error) {
	event := new(models.GlobalEvent)
	err := r.db.NewSelect().
		Model(event).
		Where("starts_at <= ?", now).
		Where("ends_at > ?", now).
		Order("created_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// EndActive closes every running event by pulling its end time forward.
func (r *eventRepository) EndActive(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.NewUpdate().
		Model((*models.GlobalEvent)(nil)).
		Set("ends_at = ?", now).
		Where("starts_at <= ?", now).
		Where("ends_at > ?", now).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *eventRepository) ListRecent(ctx context.Context, limit int) ([]*models.GlobalEvent, error) {
	var events []*models.GlobalEvent
	err := r.db.NewSelect().
		Model(&events).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	return events, nil
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/nexusverse/nexusverse-bot/nexusverse/database/models"
	"github.com/nexusverse/nexusverse-bot/nexusverse/database/repositories"
	"github.com/nexusverse/nexusverse-bot/nexusverse/gacha"
)

const (
	guildCacheSize = 1024
	guildCacheTTL  = 5 * time.Minute
	eventCacheTTL  = 30 * time.Second
)

// EventService answers the two per-encounter questions ("which global
// event is running?" and "is this an official guild?") from cache, so
// every catch does not cost two extra queries.
type EventService struct {
	events repositories.EventRepository
	guilds repositories.GuildRepository

	defaultSpawnMult float64

	guildCache *lru.Cache

	mu            sync.Mutex
	cachedEvent   gacha.GlobalEvent
	eventCachedAt time.Time
}

type cachedGuild struct {
	ctx      gacha.GuildContext
	cachedAt time.Time
}

func NewEventService(events repositories.EventRepository, guilds repositories.GuildRepository, defaultSpawnMult float64) (*EventService, error) {
	cache, err := lru.New(guildCacheSize)
	if err != nil {
		return nil, err
	}
	if defaultSpawnMult <= 0 {
		defaultSpawnMult = gacha.DefaultSpawnMultiplier
	}
	return &EventService{
		events:           events,
		guilds:           guilds,
		defaultSpawnMult: defaultSpawnMult,
		guildCache:       cache,
	}, nil
}

// ActiveEvent returns the running global event, or the zero value when
// none is live. Database errors degrade to "no event" so encounters
// keep resolving.
func (s *EventService) ActiveEvent(ctx context.Context, now time.Time) gacha.GlobalEvent {
	s.mu.Lock()
	if now.Sub(s.eventCachedAt) < eventCacheTTL {
		event := s.cachedEvent
		s.mu.Unlock()
		return event
	}
	s.mu.Unlock()

	event, err := s.events.GetActive(ctx, now)
	resolved := gacha.GlobalEvent{}
	switch {
	case err == nil:
		resolved = gacha.GlobalEvent{Type: event.Type}
	case errors.Is(err, sql.ErrNoRows):
		// no event running
	default:
		slog.Error("Failed to load active event, assuming none",
			slog.String("type", "sys"),
			slog.String("error", err.Error()))
	}

	s.mu.Lock()
	s.cachedEvent = resolved
	s.eventCachedAt = now
	s.mu.Unlock()
	return resolved
}

// GuildContext resolves a guild's spawn modifiers, defaulting to a
// non-official guild for unknown IDs and direct messages.
func (s *EventService) GuildContext(ctx context.Context, guildID string) gacha.GuildContext {
	if guildID == "" {
		return gacha.GuildContext{}
	}

	if v, ok := s.guildCache.Get(guildID); ok {
		entry := v.(cachedGuild)
		if time.Since(entry.cachedAt) < guildCacheTTL {
			return entry.ctx
		}
	}

	gc := gacha.GuildContext{}
	guild, err := s.guilds.Get(ctx, guildID)
	switch {
	case err == nil && guild.Official:
		mult := guild.SpawnMultiplier
		if mult <= 0 {
			mult = s.defaultSpawnMult
		}
		gc = gacha.GuildContext{Official: true, SpawnMultiplier: mult}
	case err == nil, errors.Is(err, sql.ErrNoRows):
		// not official, keep the zero context
	default:
		slog.Error("Failed to load guild context, assuming unofficial",
			slog.String("type", "sys"),
			slog.String("guild_id", guildID),
			slog.String("error", err.Error()))
		return gc // transient failure, don't cache
	}

	s.guildCache.Add(guildID, cachedGuild{ctx: gc, cachedAt: time.Now()})
	return gc
}

// StartEvent opens a new global event window and drops the event cache.
func (s *EventService) StartEvent(ctx context.Context, event *models.GlobalEvent) error {
	if err := s.events.Create(ctx, event); err != nil {
		return err
	}
	s.invalidateEvent()
	slog.Info("Global event started",
		slog.String("type", "sys"),
		slog.String("event_type", event.Type),
		slog.Time("ends_at", event.EndsAt))
	return nil
}

// EndActiveEvent closes any running event and returns how many closed.
func (s *EventService) EndActiveEvent(ctx context.Context, now time.Time) (int64, error) {
	ended, err := s.events.EndActive(ctx, now)
	if err != nil {
		return 0, err
	}
	s.invalidateEvent()
	return ended, nil
}

// SetGuildOfficial flips a guild's official flag and drops its cache
// entry so the change takes effect on the next encounter.
func (s *EventService) SetGuildOfficial(ctx context.Context, guildID string, official bool, spawnMultiplier float64) error {
	if err := s.guilds.SetOfficial(ctx, guildID, official, spawnMultiplier); err != nil {
		return err
	}
	s.guildCache.Remove(guildID)
	return nil
}

func (s *EventService) invalidateEvent() {
	s.mu.Lock()
	s.eventCachedAt = time.Time{}
	s.mu.Unlock()
}

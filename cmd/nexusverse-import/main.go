// nexusverse-import migrates a legacy SQLite NexusVerse database into
// the Postgres schema used by the bot.
//
// Usage:
//
//	nexusverse-import -sqlite nexusverse.db -config config.toml
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/nexusverse/nexusverse-bot/nexusverse"
	"github.com/nexusverse/nexusverse-bot/nexusverse/database"
	"github.com/nexusverse/nexusverse-bot/nexusverse/database/models"
	"github.com/nexusverse/nexusverse-bot/nexusverse/gacha"
	"github.com/nexusverse/nexusverse-bot/nexusverse/logger"
)

func main() {
	sqlitePath := flag.String("sqlite", "nexusverse.db", "path to the legacy SQLite database")
	configPath := flag.String("config", "config.toml", "path to the bot config")
	dryRun := flag.Bool("dry-run", false, "read the legacy data but write nothing")
	flag.Parse()

	slog.SetDefault(slog.New(logger.NewHandler(slog.LevelInfo)))

	if err := run(*sqlitePath, *configPath, *dryRun); err != nil {
		slog.Error("Import failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(sqlitePath, configPath string, dryRun bool) error {
	cfg, err := nexusverse.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	legacy, err := sql.Open("sqlite", sqlitePath)
	if err != nil {
		return fmt.Errorf("open legacy database: %w", err)
	}
	defer legacy.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := legacy.PingContext(ctx); err != nil {
		return fmt.Errorf("legacy database unreachable: %w", err)
	}

	users, err := readLegacyUsers(ctx, legacy)
	if err != nil {
		return fmt.Errorf("read legacy users: %w", err)
	}
	guilds, err := readLegacyGuilds(ctx, legacy)
	if err != nil {
		return fmt.Errorf("read legacy guilds: %w", err)
	}
	bans, err := readLegacyBans(ctx, legacy)
	if err != nil {
		return fmt.Errorf("read legacy bans: %w", err)
	}
	events, err := readLegacyEvents(ctx, legacy)
	if err != nil {
		return fmt.Errorf("read legacy events: %w", err)
	}

	slog.Info("Legacy data loaded",
		slog.Int("users", len(users)),
		slog.Int("guilds", len(guilds)),
		slog.Int("bans", len(bans)),
		slog.Int("events", len(events)))

	if dryRun {
		slog.Info("Dry run, nothing written")
		return nil
	}

	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}

	bunDB := db.BunDB()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for _, user := range users {
			if _, err := bunDB.NewInsert().
				Model(user).
				On("CONFLICT (discord_id) DO NOTHING").
				Exec(gctx); err != nil {
				return fmt.Errorf("insert user %s: %w", user.DiscordID, err)
			}
		}
		slog.Info("Users imported", slog.Int("count", len(users)))
		return nil
	})

	g.Go(func() error {
		for _, guild := range guilds {
			if _, err := bunDB.NewInsert().
				Model(guild).
				On("CONFLICT (guild_id) DO NOTHING").
				Exec(gctx); err != nil {
				return fmt.Errorf("insert guild %s: %w", guild.GuildID, err)
			}
		}
		slog.Info("Guilds imported", slog.Int("count", len(guilds)))
		return nil
	})

	g.Go(func() error {
		for _, ban := range bans {
			if _, err := bunDB.NewInsert().
				Model(ban).
				On("CONFLICT (user_id) DO NOTHING").
				Exec(gctx); err != nil {
				return fmt.Errorf("insert ban %s: %w", ban.UserID, err)
			}
		}
		slog.Info("Bans imported", slog.Int("count", len(bans)))
		return nil
	})

	g.Go(func() error {
		for _, event := range events {
			if _, err := bunDB.NewInsert().
				Model(event).
				Exec(gctx); err != nil {
				return fmt.Errorf("insert event %s: %w", event.Name, err)
			}
		}
		slog.Info("Events imported", slog.Int("count", len(events)))
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("Import finished")
	return nil
}

// legacyEntity is the JSON shape the Python bot stored in the users
// table's entities column.
type legacyEntity struct {
	Name   string `json:"name"`
	Rarity string `json:"rarity"`
	Emoji  string `json:"emoji"`
	Power  int    `json:"power"`
}

func readLegacyUsers(ctx context.Context, db *sql.DB) ([]*models.User, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT user_id, credits, entities, level, pity, premium_until, streak, last_daily FROM users`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now()
	var users []*models.User
	for rows.Next() {
		var (
			userID       int64
			credits      int64
			entitiesJSON string
			level        int
			pity         int
			premiumUntil sql.NullString
			streak       int
			lastDaily    sql.NullString
		)
		if err := rows.Scan(&userID, &credits, &entitiesJSON, &level, &pity, &premiumUntil, &streak, &lastDaily); err != nil {
			return nil, err
		}

		var legacyEntities []legacyEntity
		if entitiesJSON != "" {
			if err := json.Unmarshal([]byte(entitiesJSON), &legacyEntities); err != nil {
				slog.Warn("Skipping unparseable collection",
					slog.Int64("user_id", userID),
					slog.Any("error", err))
			}
		}

		collection := make([]models.OwnedEntity, 0, len(legacyEntities))
		for _, le := range legacyEntities {
			rarity, err := gacha.ParseRarity(le.Rarity)
			if err != nil {
				slog.Warn("Skipping entity with unknown rarity",
					slog.Int64("user_id", userID),
					slog.String("entity", le.Name),
					slog.String("rarity", le.Rarity))
				continue
			}
			collection = append(collection, models.OwnedEntity{
				Name:     le.Name,
				Rarity:   rarity,
				Power:    le.Power,
				CaughtAt: now,
			})
		}

		if level < 1 {
			level = 1
		}
		if pity < 0 {
			pity = 0
		}

		users = append(users, &models.User{
			DiscordID:    strconv.FormatInt(userID, 10),
			Username:     strconv.FormatInt(userID, 10), // refreshed on first command
			Credits:      credits,
			Level:        level,
			Collection:   collection,
			Pity:         pity,
			PremiumUntil: parseLegacyTime(premiumUntil),
			Streak:       streak,
			LastDaily:    parseLegacyTime(lastDaily),
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return users, rows.Err()
}

func readLegacyGuilds(ctx context.Context, db *sql.DB) ([]*models.Guild, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT guild_id, is_official, spawn_multiplier FROM guilds`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now()
	var guilds []*models.Guild
	for rows.Next() {
		var (
			guildID  int64
			official bool
			mult     float64
		)
		if err := rows.Scan(&guildID, &official, &mult); err != nil {
			return nil, err
		}
		guilds = append(guilds, &models.Guild{
			GuildID:         strconv.FormatInt(guildID, 10),
			Official:        official,
			SpawnMultiplier: mult,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}
	return guilds, rows.Err()
}

func readLegacyBans(ctx context.Context, db *sql.DB) ([]*models.Ban, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT user_id, reason, timestamp FROM bans`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bans []*models.Ban
	for rows.Next() {
		var (
			userID    int64
			reason    sql.NullString
			timestamp sql.NullString
		)
		if err := rows.Scan(&userID, &reason, &timestamp); err != nil {
			return nil, err
		}
		createdAt := parseLegacyTime(timestamp)
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		bans = append(bans, &models.Ban{
			UserID:    strconv.FormatInt(userID, 10),
			Reason:    reason.String,
			BannedBy:  "legacy-import",
			CreatedAt: createdAt,
		})
	}
	return bans, rows.Err()
}

func readLegacyEvents(ctx context.Context, db *sql.DB) ([]*models.GlobalEvent, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT event_type, start_time, end_time FROM global_events`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	now := time.Now()
	var events []*models.GlobalEvent
	for rows.Next() {
		var (
			eventType string
			startTime sql.NullString
			endTime   sql.NullString
		)
		if err := rows.Scan(&eventType, &startTime, &endTime); err != nil {
			return nil, err
		}
		starts := parseLegacyTime(startTime)
		ends := parseLegacyTime(endTime)
		if ends.IsZero() {
			slog.Warn("Skipping event without an end time", slog.String("event_type", eventType))
			continue
		}
		events = append(events, &models.GlobalEvent{
			Type:      eventType,
			Name:      eventType,
			StartsAt:  starts,
			EndsAt:    ends,
			CreatedBy: "legacy-import",
			CreatedAt: now,
		})
	}
	return events, rows.Err()
}

// parseLegacyTime handles the ISO timestamps Python's datetime wrote,
// with or without fractional seconds.
func parseLegacyTime(v sql.NullString) time.Time {
	if !v.Valid || v.String == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
		time.RFC3339,
	} {
		if t, err := time.Parse(layout, v.String); err == nil {
			return t
		}
	}
	slog.Warn("Unparseable legacy timestamp", slog.String("value", v.String))
	return time.Time{}
}

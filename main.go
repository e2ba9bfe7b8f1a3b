package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"
	"github.com/nexusverse/nexusverse-bot/nexusverse"
	"github.com/nexusverse/nexusverse-bot/nexusverse/commands"
	"github.com/nexusverse/nexusverse-bot/nexusverse/database"
	"github.com/nexusverse/nexusverse-bot/nexusverse/database/repositories"
	"github.com/nexusverse/nexusverse-bot/nexusverse/encounter"
	"github.com/nexusverse/nexusverse-bot/nexusverse/gacha"
	"github.com/nexusverse/nexusverse-bot/nexusverse/handlers"
	"github.com/nexusverse/nexusverse-bot/nexusverse/logger"
	"github.com/nexusverse/nexusverse-bot/nexusverse/services"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := nexusverse.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}

	slog.SetDefault(slog.New(logger.NewHandler(cfg.Log.Level)))
	slog.Info("Starting NexusVerse Discord Bot",
		slog.String("version", version),
		slog.String("commit", commit))

	catalogPath := cfg.Game.CatalogPath
	if catalogPath == "" {
		catalogPath = "entities.toml"
	}
	catalog, err := gacha.LoadCatalog(catalogPath)
	if err != nil {
		slog.Error("Failed to load entity catalog",
			slog.String("path", catalogPath),
			slog.Any("error", err))
		os.Exit(-1)
	}
	slog.Info("Entity catalog loaded",
		slog.String("path", catalogPath),
		slog.Int("entities", catalog.Size()))

	slog.Info("Initializing database connection...")
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema",
			slog.String("error", err.Error()))
		os.Exit(-1)
	}

	slog.Info("Database ready",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	b := nexusverse.New(*cfg, version, commit)
	b.DB = db

	b.UserRepository = repositories.NewUserRepository(db.BunDB())
	b.GuildRepository = repositories.NewGuildRepository(db.BunDB())
	b.EventRepository = repositories.NewEventRepository(db.BunDB())
	b.BanRepository = repositories.NewBanRepository(db.BunDB())
	b.EncounterLogRepository = repositories.NewEncounterLogRepository(db.BunDB())

	b.Resolver = gacha.NewResolver(catalog, gacha.DefaultRNG())
	b.DexService = services.NewDexService(catalog)

	b.EventService, err = services.NewEventService(b.EventRepository, b.GuildRepository, cfg.Game.SpawnMultiplier)
	if err != nil {
		slog.Error("Failed to initialize event service", slog.Any("error", err))
		os.Exit(-1)
	}

	b.EncounterManager = encounter.NewManager(cfg.Game.CatchCooldown())
	b.EncounterManager.StartCleanupRoutine(context.Background())

	h := handler.New()

	h.Command("/catch", handlers.WrapWithLogging("catch", commands.CatchHandler(b)))
	h.Command("/pull", handlers.WrapWithLogging("pull", commands.PullHandler(b)))
	h.Command("/daily", handlers.WrapWithLogging("daily", commands.DailyHandler(b)))
	h.Command("/profile", handlers.WrapWithLogging("profile", commands.ProfileHandler(b)))
	h.Command("/collection", handlers.WrapWithLogging("collection", commands.CollectionHandler(b)))
	h.Command("/dex", handlers.WrapWithLogging("dex", commands.DexHandler(b)))
	h.Autocomplete("/dex", commands.DexAutocompleteHandler(b))
	h.Command("/leaderboard", handlers.WrapWithLogging("leaderboard", commands.LeaderboardHandler(b)))
	h.Command("/battle", handlers.WrapWithLogging("battle", commands.BattleHandler(b)))
	h.Command("/premium", handlers.WrapWithLogging("premium", commands.PremiumHandler(b)))
	h.Command("/version", commands.VersionHandler(b))
	h.Command("/owner", handlers.WrapWithLogging("owner", commands.OwnerHandler(b)))

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err))
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds))
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err))
		}
	}

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = b.Client.OpenGateway(ctx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err))
		os.Exit(-1)
	}

	slog.Info("Bot is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	slog.Info("Shutting down bot...")
}

package nexusverse

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"
	"github.com/disgoorg/snowflake/v2"
	"github.com/nexusverse/nexusverse-bot/nexusverse/database"
	"github.com/nexusverse/nexusverse-bot/nexusverse/database/repositories"
	"github.com/nexusverse/nexusverse-bot/nexusverse/encounter"
	"github.com/nexusverse/nexusverse-bot/nexusverse/gacha"
	"github.com/nexusverse/nexusverse-bot/nexusverse/services"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
	}
}

type Bot struct {
	Cfg       Config
	Client    bot.Client
	Paginator *paginator.Manager
	Version   string
	Commit    string
	DB        *database.DB

	UserRepository         repositories.UserRepository
	GuildRepository        repositories.GuildRepository
	EventRepository        repositories.EventRepository
	BanRepository          repositories.BanRepository
	EncounterLogRepository repositories.EncounterLogRepository

	Resolver         *gacha.Resolver
	EventService     *services.EventService
	DexService       *services.DexService
	EncounterManager *encounter.Manager
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

// IsOwner reports whether the given user may run owner commands.
func (b *Bot) IsOwner(userID snowflake.ID) bool {
	for _, id := range b.Cfg.Bot.OwnerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("NexusVerse Bot is now ready",
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithWatchingActivity("the multiverse spawn"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}
}

package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/nexusverse/nexusverse-bot/nexusverse"
	"github.com/nexusverse/nexusverse-bot/nexusverse/database/models"
	"github.com/nexusverse/nexusverse-bot/nexusverse/gacha"
	"github.com/nexusverse/nexusverse-bot/nexusverse/utils"
)

var Owner = discord.SlashCommandCreate{
	Name:        "owner",
	Description: "Bot owner administration",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionSubCommand{
			Name:        "ban",
			Description: "Ban a user from NexusVerse",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionUser{Name: "user", Description: "User to ban", Required: true},
				discord.ApplicationCommandOptionString{Name: "reason", Description: "Ban reason", Required: false},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "unban",
			Description: "Lift a NexusVerse ban",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionUser{Name: "user", Description: "User to unban", Required: true},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "premium",
			Description: "Grant premium to a user",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionUser{Name: "user", Description: "User to grant premium", Required: true},
				discord.ApplicationCommandOptionInt{Name: "days", Description: "Premium duration in days", Required: true, MinValue: intPtr(1)},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "event-start",
			Description: "Start a global event",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionString{
					Name: "event_type", Description: "Event type", Required: true,
					Choices: []discord.ApplicationCommandOptionChoiceString{
						{Name: "Double Spawn (×2 rarity, +10% catch, ×2 credits)", Value: gacha.EventDoubleSpawn},
						{Name: "Community Celebration (display only)", Value: "celebration"},
					},
				},
				discord.ApplicationCommandOptionString{Name: "name", Description: "Display name", Required: true},
				discord.ApplicationCommandOptionInt{Name: "hours", Description: "Event duration in hours", Required: true, MinValue: intPtr(1)},
			},
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "event-end",
			Description: "End all running global events",
		},
		discord.ApplicationCommandOptionSubCommand{
			Name:        "official",
			Description: "Mark this guild as official",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionBool{Name: "official", Description: "Official status", Required: true},
				discord.ApplicationCommandOptionFloat{Name: "multiplier", Description: "Spawn multiplier (default 3.0)", Required: false},
			},
		},
	},
}

func intPtr(v int) *int { return &v }

func OwnerHandler(b *nexusverse.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		if !b.IsOwner(e.User().ID) {
			return utils.EH.CreatePermissionError(e, "run owner commands")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data := e.SlashCommandInteractionData()
		switch *data.SubCommandName {
		case "ban":
			return ownerBan(ctx, b, e, data)
		case "unban":
			return ownerUnban(ctx, b, e, data)
		case "premium":
			return ownerPremium(ctx, b, e, data)
		case "event-start":
			return ownerEventStart(ctx, b, e, data)
		case "event-end":
			return ownerEventEnd(ctx, b, e)
		case "official":
			return ownerOfficial(ctx, b, e, data)
		default:
			return utils.EH.CreateErrorEmbed(e, "Unknown subcommand.")
		}
	}
}

func ownerBan(ctx context.Context, b *nexusverse.Bot, e *handler.CommandEvent, data discord.SlashCommandInteractionData) error {
	target := data.User("user")
	reason := data.String("reason")

	if err := b.BanRepository.Ban(ctx, target.ID.String(), reason, e.User().ID.String()); err != nil {
		slog.Error("Failed to ban user",
			slog.String("type", "db"),
			slog.String("discord_id", target.ID.String()),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to ban the user.")
	}
	return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("🚫 Banned **%s** from NexusVerse.", target.Username))
}

func ownerUnban(ctx context.Context, b *nexusverse.Bot, e *handler.CommandEvent, data discord.SlashCommandInteractionData) error {
	target := data.User("user")

	removed, err := b.BanRepository.Unban(ctx, target.ID.String())
	if err != nil {
		slog.Error("Failed to unban user",
			slog.String("type", "db"),
			slog.String("discord_id", target.ID.String()),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to unban the user.")
	}
	if !removed {
		return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("**%s** is not banned.", target.Username))
	}
	return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("✅ Unbanned **%s**.", target.Username))
}

func ownerPremium(ctx context.Context, b *nexusverse.Bot, e *handler.CommandEvent, data discord.SlashCommandInteractionData) error {
	target := data.User("user")
	days := data.Int("days")

	user, err := b.UserRepository.GetOrCreate(ctx, target.ID.String(), target.Username)
	if err != nil {
		return utils.EH.CreateErrorEmbed(e, "Failed to load the target user.")
	}

	// Extend an active subscription instead of restarting it.
	now := time.Now()
	from := now
	if user.PremiumUntil.After(now) {
		from = user.PremiumUntil
	}
	until := from.Add(time.Duration(days) * 24 * time.Hour)

	if err := b.UserRepository.SetPremiumUntil(ctx, target.ID.String(), until); err != nil {
		slog.Error("Failed to grant premium",
			slog.String("type", "db"),
			slog.String("discord_id", target.ID.String()),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to grant premium.")
	}
	return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("💎 **%s** has premium until <t:%d:f>.", target.Username, until.Unix()))
}

func ownerEventStart(ctx context.Context, b *nexusverse.Bot, e *handler.CommandEvent, data discord.SlashCommandInteractionData) error {
	eventType := data.String("event_type")
	name := data.String("name")
	hours := data.Int("hours")

	now := time.Now()
	event := &models.GlobalEvent{
		Type:      eventType,
		Name:      name,
		StartsAt:  now,
		EndsAt:    now.Add(time.Duration(hours) * time.Hour),
		CreatedBy: e.User().ID.String(),
	}
	if err := b.EventService.StartEvent(ctx, event); err != nil {
		slog.Error("Failed to start event",
			slog.String("type", "db"),
			slog.String("event_type", eventType),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to start the event.")
	}
	return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("🎉 **%s** is live for %d hours!", name, hours))
}

func ownerEventEnd(ctx context.Context, b *nexusverse.Bot, e *handler.CommandEvent) error {
	ended, err := b.EventService.EndActiveEvent(ctx, time.Now())
	if err != nil {
		slog.Error("Failed to end events",
			slog.String("type", "db"),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to end the running events.")
	}
	if ended == 0 {
		return utils.EH.CreateInfoEmbed(e, "No events are running.")
	}
	return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("🏁 Ended %d event(s).", ended))
}

func ownerOfficial(ctx context.Context, b *nexusverse.Bot, e *handler.CommandEvent, data discord.SlashCommandInteractionData) error {
	if e.GuildID() == nil {
		return utils.EH.CreateErrorEmbed(e, "This subcommand only works inside a guild.")
	}
	official := data.Bool("official")
	multiplier, ok := data.OptFloat("multiplier")
	if !ok {
		multiplier = gacha.DefaultSpawnMultiplier
	}

	if err := b.EventService.SetGuildOfficial(ctx, e.GuildID().String(), official, multiplier); err != nil {
		slog.Error("Failed to update guild status",
			slog.String("type", "db"),
			slog.String("guild_id", e.GuildID().String()),
			slog.Any("error", err))
		return utils.EH.CreateErrorEmbed(e, "Failed to update the guild status.")
	}
	if official {
		return utils.EH.CreateSuccessEmbed(e, fmt.Sprintf("🏛️ This guild is now official (×%.1f spawn multiplier).", multiplier))
	}
	return utils.EH.CreateSuccessEmbed(e, "This guild is no longer official.")
}

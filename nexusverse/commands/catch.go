package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/nexusverse/nexusverse-bot/nexusverse"
	"github.com/nexusverse/nexusverse-bot/nexusverse/database/models"
	"github.com/nexusverse/nexusverse-bot/nexusverse/gacha"
	"github.com/nexusverse/nexusverse-bot/nexusverse/utils"
)

var Catch = discord.SlashCommandCreate{
	Name:        "catch",
	Description: "A wild entity appears - try to catch it!",
}

func CatchHandler(b *nexusverse.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		userID := e.User().ID.String()

		if banned, err := b.BanRepository.IsBanned(ctx, userID); err == nil && banned {
			return utils.EH.CreatePermissionError(e, "use NexusVerse while banned")
		}

		user, err := b.UserRepository.GetOrCreate(ctx, userID, e.User().Username)
		if err != nil {
			slog.Error("Failed to load user",
				slog.String("type", "db"),
				slog.String("discord_id", userID),
				slog.Any("error", err))
			return utils.EH.CreateErrorEmbed(e, "Failed to load your collector data. Please try again later.")
		}

		now := time.Now()
		guildID := ""
		if e.GuildID() != nil {
			guildID = e.GuildID().String()
		}
		guildCtx := b.EventService.GuildContext(ctx, guildID)
		event := b.EventService.ActiveEvent(ctx, now)

		// Premium collectors and official guilds skip the catch cooldown.
		exempt := guildCtx.Official || user.Progression().PremiumActive(now)
		if ok, wait := b.EncounterManager.CanEncounter(userID, exempt); !ok {
			return utils.EH.CreateCooldownEmbed(e, "catch", utils.FormatDuration(wait))
		}
		if !b.EncounterManager.Lock(userID) {
			return utils.EH.CreateErrorEmbed(e, "Your previous encounter is still resolving.")
		}
		defer b.EncounterManager.Release(userID)

		progression, outcome, err := b.Resolver.ResolveCatch(user.Progression(), guildCtx, event, now)
		if err != nil {
			slog.Error("Encounter resolution failed",
				slog.String("type", "sys"),
				slog.String("discord_id", userID),
				slog.Any("error", err))
			return utils.EH.CreateErrorEmbed(e, "The encounter fizzled out. Please try again.")
		}

		user.ApplyProgression(progression, now)
		if err := b.UserRepository.Update(ctx, user); err != nil {
			slog.Error("Failed to save encounter result",
				slog.String("type", "db"),
				slog.String("discord_id", userID),
				slog.Any("error", err))
			return utils.EH.CreateErrorEmbed(e, "Failed to save your catch. Please try again later.")
		}

		b.EncounterManager.SetCooldown(userID)

		_ = b.EncounterLogRepository.Record(ctx, &models.EncounterLog{
			UserID:       userID,
			GuildID:      guildID,
			Kind:         models.EncounterKindCatch,
			EntityName:   outcome.Spawned.Name,
			Tier:         outcome.Tier,
			Success:      outcome.Success,
			CreditsDelta: outcome.CreditsAwarded,
			PityAfter:    outcome.PityAfter,
			PityBreak:    outcome.PityBreak,
			FloorApplied: outcome.FloorApplied,
		})

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{catchEmbed(user, outcome)},
		})
	}
}

func catchEmbed(user *models.User, out gacha.EncounterOutcome) discord.Embed {
	spawn := out.Spawned

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s **%s** %s\nPower: %d ⚡\n\n",
		spawn.Emoji, spawn.Name, utils.RarityEmoji(out.Tier), spawn.Power)

	embed := discord.Embed{
		Color: utils.RarityColor(out.Tier),
	}

	if out.Success {
		embed.Title = "🎉 Caught!"
		fmt.Fprintf(&sb, "You caught it with a %s catch rate!\n+%d credits 💰",
			utils.FormatPercent(out.SuccessRate), out.CreditsAwarded)
		if out.LeveledUp {
			fmt.Fprintf(&sb, "\n\n🆙 **Level up!** You are now level %d.", user.Level)
		}
	} else {
		embed.Title = "💨 It got away..."
		fmt.Fprintf(&sb, "It slipped away despite a %s catch rate.",
			utils.FormatPercent(out.SuccessRate))
	}

	if out.FloorApplied {
		sb.WriteString("\n✨ Your pity break guaranteed a Rare+ spawn!")
	}
	if out.PityBreak {
		sb.WriteString("\n💔 Pity broken - your next spawn is guaranteed Rare or better!")
	}

	embed.Description = sb.String()
	embed.Fields = []discord.EmbedField{
		{
			Name:  "Pity",
			Value: utils.ProgressBar(out.PityAfter, gacha.PityThreshold, 10),
		},
	}
	if spawn.ImageURL != "" {
		embed.Thumbnail = &discord.EmbedResource{URL: spawn.ImageURL}
	}
	return embed
}

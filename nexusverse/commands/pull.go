package commands

import (
	"context"
	"errors"
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

var Pull = discord.SlashCommandCreate{
	Name:        "pull",
	Description: fmt.Sprintf("Spend %d credits on a gacha pull (1-3 entities, no catch roll)", gacha.PullCost),
}

func PullHandler(b *nexusverse.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		userID := e.User().ID.String()

		if banned, err := b.BanRepository.IsBanned(ctx, userID); err == nil && banned {
			return utils.EH.CreatePermissionError(e, "use NexusVerse while banned")
		}

		if !b.EncounterManager.Lock(userID) {
			return utils.EH.CreateErrorEmbed(e, "Your previous encounter is still resolving.")
		}
		defer b.EncounterManager.Release(userID)

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

		progression, outcome, err := b.Resolver.ResolvePull(user.Progression(), guildCtx, event, now)
		if err != nil {
			if errors.Is(err, gacha.ErrInsufficientCredits) {
				return utils.EH.CreateErrorEmbed(e, fmt.Sprintf(
					"You need %d credits for a pull but only have %d. Catch entities to earn more!",
					gacha.PullCost, user.Credits))
			}
			slog.Error("Pull resolution failed",
				slog.String("type", "sys"),
				slog.String("discord_id", userID),
				slog.Any("error", err))
			return utils.EH.CreateErrorEmbed(e, "The pull fizzled out. Please try again.")
		}

		user.ApplyProgression(progression, now)
		if err := b.UserRepository.Update(ctx, user); err != nil {
			slog.Error("Failed to save pull result",
				slog.String("type", "db"),
				slog.String("discord_id", userID),
				slog.Any("error", err))
			return utils.EH.CreateErrorEmbed(e, "Failed to save your pull. Please try again later.")
		}

		for _, log := range pullEncounterLogs(userID, guildID, outcome) {
			_ = b.EncounterLogRepository.Record(ctx, log)
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{pullEmbed(user, outcome)},
		})
	}
}

// pullEncounterLogs flattens a pull into one log row per entity. The
// spend lands on the first row only so the rows sum to the real balance
// change.
func pullEncounterLogs(userID, guildID string, out gacha.PullOutcome) []*models.EncounterLog {
	logs := make([]*models.EncounterLog, 0, len(out.Entities))
	for i, entity := range out.Entities {
		var delta int64
		if i == 0 {
			delta = -out.CreditsSpent
		}
		logs = append(logs, &models.EncounterLog{
			UserID:       userID,
			GuildID:      guildID,
			Kind:         models.EncounterKindPull,
			EntityName:   entity.Name,
			Tier:         entity.Rarity,
			Success:      true,
			CreditsDelta: delta,
			PityAfter:    out.PityAfter,
			PityBreak:    out.PityBreak,
			FloorApplied: out.FloorApplied,
		})
	}
	return logs
}

func pullEmbed(user *models.User, out gacha.PullOutcome) discord.Embed {
	best := out.Entities[0].Rarity
	var sb strings.Builder
	for _, entity := range out.Entities {
		if entity.Rarity > best {
			best = entity.Rarity
		}
		fmt.Fprintf(&sb, "%s **%s** %s - Power %d ⚡\n",
			entity.Emoji, entity.Name, utils.RarityEmoji(entity.Rarity), entity.Power)
	}

	fmt.Fprintf(&sb, "\n-%d credits (balance: %d 💰)", out.CreditsSpent, user.Credits)
	if out.FloorApplied {
		sb.WriteString("\n✨ Your pity break guaranteed a Rare+ first draw!")
	}
	if out.PityBreak {
		sb.WriteString("\n💔 Pity broken - your next spawn is guaranteed Rare or better!")
	}

	return discord.Embed{
		Title:       fmt.Sprintf("🎰 Gacha Pull - %d entities!", len(out.Entities)),
		Description: sb.String(),
		Color:       utils.RarityColor(best),
		Fields: []discord.EmbedField{
			{
				Name:  "Pity",
				Value: utils.ProgressBar(out.PityAfter, gacha.PityThreshold, 10),
			},
		},
	}
}

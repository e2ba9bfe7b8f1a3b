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
	"github.com/nexusverse/nexusverse-bot/nexusverse/utils"
)

const leaderboardSize = 10

var Leaderboard = discord.SlashCommandCreate{
	Name:        "leaderboard",
	Description: "Top collectors by credits",
}

func LeaderboardHandler(b *nexusverse.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		users, err := b.UserRepository.GetTopByCredits(ctx, leaderboardSize)
		if err != nil {
			slog.Error("Failed to load leaderboard",
				slog.String("type", "db"),
				slog.Any("error", err))
			return utils.EH.CreateErrorEmbed(e, "Failed to load the leaderboard. Please try again later.")
		}
		if len(users) == 0 {
			return utils.EH.CreateInfoEmbed(e, "No collectors yet. Be the first with /catch!")
		}

		medals := []string{"🥇", "🥈", "🥉"}
		var sb strings.Builder
		for i, user := range users {
			rank := fmt.Sprintf("%d.", i+1)
			if i < len(medals) {
				rank = medals[i]
			}
			fmt.Fprintf(&sb, "%s **%s** - %d 💰 (Lv %d, %d entities)\n",
				rank, user.Username, user.Credits, user.Level, len(user.Collection))
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🏆 NexusVerse Leaderboard",
				Description: sb.String(),
				Color:       utils.WarningColor,
			}},
		})
	}
}

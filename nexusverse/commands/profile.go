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

var Profile = discord.SlashCommandCreate{
	Name:        "profile",
	Description: "View your collector profile",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "View another collector's profile",
			Required:    false,
		},
	},
}

func ProfileHandler(b *nexusverse.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		target := e.User()
		if u, ok := e.SlashCommandInteractionData().OptUser("user"); ok {
			target = u
		}

		user, err := b.UserRepository.GetOrCreate(ctx, target.ID.String(), target.Username)
		if err != nil {
			slog.Error("Failed to load user",
				slog.String("type", "db"),
				slog.String("discord_id", target.ID.String()),
				slog.Any("error", err))
			return utils.EH.CreateErrorEmbed(e, "Failed to load collector data. Please try again later.")
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{profileEmbed(user, target.EffectiveAvatarURL())},
		})
	}
}

func profileEmbed(user *models.User, avatarURL string) discord.Embed {
	now := time.Now()
	premium := user.Progression().PremiumActive(now)

	// Entities until the next level-up (one level per 5 catches).
	toNext := len(user.Collection) % 5

	counts := make(map[gacha.Rarity]int)
	for _, o := range user.Collection {
		counts[o.Rarity]++
	}
	var rarities strings.Builder
	for i := len(gacha.Rarities) - 1; i >= 0; i-- {
		r := gacha.Rarities[i]
		if counts[r] > 0 {
			fmt.Fprintf(&rarities, "%s %s: %d\n", utils.RarityEmoji(r), r, counts[r])
		}
	}
	if rarities.Len() == 0 {
		rarities.WriteString("No entities yet - try /catch!")
	}

	status := "Free collector"
	if premium {
		status = fmt.Sprintf("💎 Premium until <t:%d:d>", user.PremiumUntil.Unix())
	}

	embed := discord.Embed{
		Title: fmt.Sprintf("🌌 %s's NexusVerse Profile", user.Username),
		Color: utils.InfoColor,
		Fields: []discord.EmbedField{
			{Name: "Level", Value: fmt.Sprintf("%d (%s)", user.Level, utils.ProgressBar(toNext, 5, 5))},
			{Name: "Credits", Value: utils.FormatCredits(user.Credits)},
			{Name: "Collection", Value: fmt.Sprintf("%d entities, %d total power ⚡", len(user.Collection), user.TotalPower())},
			{Name: "Rarities", Value: rarities.String()},
			{Name: "Pity", Value: utils.ProgressBar(user.Pity, gacha.PityThreshold, 10)},
			{Name: "Daily Streak", Value: fmt.Sprintf("%d days 🔥", user.Streak)},
			{Name: "Status", Value: status},
		},
	}
	if user.PityBreakPending {
		embed.Fields = append(embed.Fields, discord.EmbedField{
			Name: "✨ Pity Break", Value: "Next spawn is guaranteed Rare or better!",
		})
	}
	if avatarURL != "" {
		embed.Thumbnail = &discord.EmbedResource{URL: avatarURL}
	}
	return embed
}

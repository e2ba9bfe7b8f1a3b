package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/nexusverse/nexusverse-bot/nexusverse"
	"github.com/nexusverse/nexusverse-bot/nexusverse/utils"
)

const (
	dailyBaseReward  = 100
	dailyStreakBonus = 50
)

var Daily = discord.SlashCommandCreate{
	Name:        "daily",
	Description: "Claim your daily credits - keep the streak alive!",
}

func DailyHandler(b *nexusverse.Bot) handler.CommandHandler {
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
		today := now.Truncate(24 * time.Hour)
		lastDay := user.LastDaily.Truncate(24 * time.Hour)

		if !user.LastDaily.IsZero() && lastDay.Equal(today) {
			return e.CreateMessage(discord.MessageCreate{
				Embeds: []discord.Embed{{
					Title:       "📅 Already Claimed",
					Description: fmt.Sprintf("Come back tomorrow! Streak: %d 🔥", user.Streak),
					Color:       utils.ErrorColor,
				}},
				Flags: discord.MessageFlagEphemeral,
			})
		}

		// Streak continues only when yesterday was claimed too.
		streakBonus := int64(0)
		if user.Streak > 0 {
			streakBonus = int64(user.Streak) * dailyStreakBonus
		}
		reward := int64(dailyBaseReward) + streakBonus

		premium := user.Progression().PremiumActive(now)
		if premium {
			reward *= 2
		}

		if !user.LastDaily.IsZero() && today.Sub(lastDay) == 24*time.Hour {
			user.Streak++
		} else {
			user.Streak = 1
		}
		user.Credits += reward
		user.LastDaily = now

		if err := b.UserRepository.Update(ctx, user); err != nil {
			slog.Error("Failed to save daily reward",
				slog.String("type", "db"),
				slog.String("discord_id", userID),
				slog.Any("error", err))
			return utils.EH.CreateErrorEmbed(e, "Failed to claim your daily reward. Please try again later.")
		}

		embed := discord.Embed{
			Title: "🎁 Daily Reward Claimed!",
			Description: fmt.Sprintf("+%d credits!\nStreak: %d days 🔥 (Bonus +%d)",
				reward, user.Streak, streakBonus),
			Color: utils.SuccessColor,
			Fields: []discord.EmbedField{
				{Name: "Total", Value: utils.FormatCredits(user.Credits)},
			},
		}
		if premium {
			embed.Fields = append(embed.Fields, discord.EmbedField{
				Name: "💎 Premium Bonus", Value: "Doubled reward!",
			})
		}
		return e.CreateMessage(discord.MessageCreate{Embeds: []discord.Embed{embed}})
	}
}

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

const battleReward = 50

var Battle = discord.SlashCommandCreate{
	Name:        "battle",
	Description: "Pit your collection's power against another collector",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "opponent",
			Description: "The collector to battle",
			Required:    true,
		},
	},
}

func BattleHandler(b *nexusverse.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		opponent := e.SlashCommandInteractionData().User("opponent")
		userID := e.User().ID.String()

		if opponent.ID == e.User().ID {
			return utils.EH.CreateErrorEmbed(e, "Battle someone else!")
		}
		if opponent.Bot {
			return utils.EH.CreateErrorEmbed(e, "Bots don't collect entities.")
		}

		if banned, err := b.BanRepository.IsBanned(ctx, userID); err == nil && banned {
			return utils.EH.CreatePermissionError(e, "use NexusVerse while banned")
		}

		challenger, err := b.UserRepository.GetOrCreate(ctx, userID, e.User().Username)
		if err != nil {
			return battleLoadError(e, userID, err)
		}
		defender, err := b.UserRepository.GetOrCreate(ctx, opponent.ID.String(), opponent.Username)
		if err != nil {
			return battleLoadError(e, opponent.ID.String(), err)
		}

		if len(challenger.Collection) == 0 || len(defender.Collection) == 0 {
			return utils.EH.CreateErrorEmbed(e, "Both collectors need entities to battle. Catch some first!")
		}

		power1 := challenger.TotalPower()
		power2 := defender.TotalPower()
		maxPower := max(max(power1, power2), 1)

		embed := discord.Embed{
			Title: fmt.Sprintf("⚔️ Battle: %s vs %s", challenger.Username, defender.Username),
			Color: utils.InfoColor,
			Fields: []discord.EmbedField{
				{Name: challenger.Username + "'s Power", Value: fmt.Sprintf("[%s] ⚡", utils.ProgressBar(power1, maxPower, 10))},
				{Name: defender.Username + "'s Power", Value: fmt.Sprintf("[%s] ⚡", utils.ProgressBar(power2, maxPower, 10))},
			},
		}

		switch {
		case power1 > power2:
			challenger.Credits += battleReward
			if err := b.UserRepository.Update(ctx, challenger); err != nil {
				return battleSaveError(e, userID, err)
			}
			embed.Description = fmt.Sprintf("**%s wins!** +%d credits - the stronger collection prevails.", challenger.Username, battleReward)
			embed.Color = utils.SuccessColor
		case power2 > power1:
			defender.Credits += battleReward
			if err := b.UserRepository.Update(ctx, defender); err != nil {
				return battleSaveError(e, opponent.ID.String(), err)
			}
			embed.Description = fmt.Sprintf("**%s wins!** +%d credits - the stronger collection prevails.", defender.Username, battleReward)
			embed.Color = utils.ErrorColor
		default:
			embed.Description = "**It's a tie!** Evenly matched collections."
		}

		return e.CreateMessage(discord.MessageCreate{Embeds: []discord.Embed{embed}})
	}
}

func battleLoadError(e *handler.CommandEvent, discordID string, err error) error {
	slog.Error("Failed to load user",
		slog.String("type", "db"),
		slog.String("discord_id", discordID),
		slog.Any("error", err))
	return utils.EH.CreateErrorEmbed(e, "Failed to load collector data. Please try again later.")
}

func battleSaveError(e *handler.CommandEvent, discordID string, err error) error {
	slog.Error("Failed to save battle result",
		slog.String("type", "db"),
		slog.String("discord_id", discordID),
		slog.Any("error", err))
	return utils.EH.CreateErrorEmbed(e, "Failed to save the battle result. Please try again later.")
}

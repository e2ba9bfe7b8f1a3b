package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/nexusverse/nexusverse-bot/nexusverse"
	"github.com/nexusverse/nexusverse-bot/nexusverse/utils"
)

var Premium = discord.SlashCommandCreate{
	Name:        "premium",
	Description: "Check your premium status and perks",
}

func PremiumHandler(b *nexusverse.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		user, err := b.UserRepository.GetOrCreate(ctx, e.User().ID.String(), e.User().Username)
		if err != nil {
			return utils.EH.CreateErrorEmbed(e, "Failed to load your collector data. Please try again later.")
		}

		perks := "• ×1.5 rarity multiplier on every spawn\n" +
			"• +20% catch success rate\n" +
			"• ×2 credits from catches\n" +
			"• ×2 daily reward\n" +
			"• Pity fills twice as fast on failed catches"

		now := time.Now()
		if user.Progression().PremiumActive(now) {
			return e.CreateMessage(discord.MessageCreate{
				Embeds: []discord.Embed{{
					Title:       "💎 Premium Active",
					Description: fmt.Sprintf("Your premium runs until <t:%d:f>.\n\n**Perks:**\n%s", user.PremiumUntil.Unix(), perks),
					Color:       utils.PremiumColor,
				}},
			})
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "💎 Premium",
				Description: "You don't have premium right now.\n\n**Perks you're missing:**\n" + perks,
				Color:       utils.InfoColor,
			}},
		})
	}
}

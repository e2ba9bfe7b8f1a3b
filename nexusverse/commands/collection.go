package commands

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/nexusverse/nexusverse-bot/nexusverse"
	"github.com/nexusverse/nexusverse-bot/nexusverse/utils"
)

const entitiesPerPage = 10

var Collection = discord.SlashCommandCreate{
	Name:        "collection",
	Description: "Browse your caught entities",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "user",
			Description: "Browse another collector's entities",
			Required:    false,
		},
	},
}

func CollectionHandler(b *nexusverse.Bot) handler.CommandHandler {
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

		if len(user.Collection) == 0 {
			return utils.EH.CreateInfoEmbed(e, fmt.Sprintf("%s has no entities yet. Try /catch!", user.Username))
		}

		collection := user.Collection
		totalPages := int(math.Ceil(float64(len(collection)) / float64(entitiesPerPage)))

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				startIdx := page * entitiesPerPage
				endIdx := min(startIdx+entitiesPerPage, len(collection))

				var description strings.Builder
				for _, owned := range collection[startIdx:endIdx] {
					fmt.Fprintf(&description, "%s **%s** - Power %d ⚡\n",
						utils.RarityEmoji(owned.Rarity), owned.Name, owned.Power)
				}

				embed.
					SetTitle(fmt.Sprintf("🗃️ %s's Collection (%d entities)", user.Username, len(collection))).
					SetDescription(description.String()).
					SetColor(utils.InfoColor).
					SetFooter(fmt.Sprintf("Page %d/%d • Total power: %d ⚡", page+1, totalPages, user.TotalPower()), "")
			},
			Pages: totalPages,
		}, false)
	}
}

package commands

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/nexusverse/nexusverse-bot/nexusverse"
	"github.com/nexusverse/nexusverse-bot/nexusverse/utils"
)

var Dex = discord.SlashCommandCreate{
	Name:        "dex",
	Description: "Look up an entity in the NexusVerse catalog",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:         "entity",
			Description:  "Entity name",
			Required:     true,
			Autocomplete: true,
		},
	},
}

func DexHandler(b *nexusverse.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		name := e.SlashCommandInteractionData().String("entity")

		entity, ok := b.DexService.Find(name)
		if !ok {
			return utils.EH.CreateErrorEmbed(e, fmt.Sprintf("No entity named '%s' in the catalog.", name))
		}

		embed := discord.Embed{
			Title: fmt.Sprintf("%s %s", entity.Emoji, entity.Name),
			Description: fmt.Sprintf("%s\n\n%s %s\nPower: %d ⚡\nBase credit reward: %d 💰",
				entity.Description,
				utils.RarityEmoji(entity.Rarity), entity.Rarity,
				entity.Power, entity.Power/5),
			Color: utils.RarityColor(entity.Rarity),
		}
		if entity.ImageURL != "" {
			embed.Thumbnail = &discord.EmbedResource{URL: entity.ImageURL}
		}
		return e.CreateMessage(discord.MessageCreate{Embeds: []discord.Embed{embed}})
	}
}

func DexAutocompleteHandler(b *nexusverse.Bot) handler.AutocompleteHandler {
	return func(e *handler.AutocompleteEvent) error {
		query := e.Data.String("entity")

		choices := make([]discord.AutocompleteChoice, 0, 25)
		for _, entity := range b.DexService.Search(query, 25) {
			choices = append(choices, discord.AutocompleteChoiceString{
				Name:  fmt.Sprintf("%s (%s)", entity.Name, entity.Rarity),
				Value: entity.Name,
			})
		}
		return e.AutocompleteResult(choices)
	}
}

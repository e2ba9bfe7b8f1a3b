package commands

import (
	"fmt"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/nexusverse/nexusverse-bot/nexusverse"
	"github.com/nexusverse/nexusverse-bot/nexusverse/utils"
)

var Version = discord.SlashCommandCreate{
	Name:        "version",
	Description: "Show the bot version",
}

func VersionHandler(b *nexusverse.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		return utils.EH.CreateInfoEmbed(e, fmt.Sprintf("NexusVerse %s (%s), catalog: %d entities",
			b.Version, b.Commit, b.Resolver.Catalog().Size()))
	}
}

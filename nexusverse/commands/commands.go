package commands

import (
	"github.com/disgoorg/disgo/discord"
)

// Commands is the full slash command set synced to Discord.
var Commands = []discord.ApplicationCommandCreate{
	Catch,
	Pull,
	Daily,
	Profile,
	Collection,
	Dex,
	Leaderboard,
	Battle,
	Premium,
	Version,
	Owner,
}

package commands

import (
	"github.com/disgoorg/disgo/discord"
)

var Commands = []discord.ApplicationCommandCreate{
	BuildDeck,
	SearchCards,
	RecentDecks,
	Version,
}

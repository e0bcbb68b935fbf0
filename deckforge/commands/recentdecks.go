package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/inklore/deckforge/deckforge"
	"github.com/inklore/deckforge/deckforge/config"
	"github.com/inklore/deckforge/deckforge/utils"
)

const recentDeckLimit = 5

var RecentDecks = discord.SlashCommandCreate{
	Name:        "recentdecks",
	Description: "📜 Show the most recently generated decks",
}

func RecentDecksHandler(a *deckforge.App) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		decks, err := a.DeckRepository.GetRecent(ctx, recentDeckLimit)
		if err != nil {
			return utils.EH.CreateError(e, "Lookup Failed", err.Error())
		}
		if len(decks) == 0 {
			return utils.EH.CreateInfoEmbed(e, "No decks generated yet. Try `/builddeck`!")
		}

		var description strings.Builder
		for _, d := range decks {
			inks := make([]string, 0, len(d.Inks))
			for _, ink := range d.Inks {
				inks = append(inks, utils.InkEmoji(ink)+" "+ink)
			}
			status := "✅"
			if !d.Complete {
				status = "⚠️ incomplete"
			}
			description.WriteString(fmt.Sprintf("**#%d** %s · %s · %d cards · %s · <t:%d:R>\n",
				d.ID,
				strings.Join(inks, " / "),
				d.Archetype,
				len(d.CardIDs),
				status,
				d.CreatedAt.Unix()))
		}

		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "📜 Recent Decks",
				Description: description.String(),
				Color:       config.EmbedDefaultColor,
			}},
		})
	}
}

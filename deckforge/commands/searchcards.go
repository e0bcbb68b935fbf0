package commands

import (
	"fmt"
	"math"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/inklore/deckforge/deckforge"
	"github.com/inklore/deckforge/deckforge/config"
	"github.com/inklore/deckforge/deckforge/utils"
)

const searchResultLimit = 50

var SearchCards = discord.SlashCommandCreate{
	Name:        "searchcards",
	Description: "🔍 Search the card catalog by name",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "query",
			Description: "Card name or part of it",
			Required:    true,
		},
	},
}

func SearchCardsHandler(a *deckforge.App) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		query := strings.TrimSpace(e.SlashCommandInteractionData().String("query"))

		results := a.SearchService.Search(query, searchResultLimit)
		if len(results) == 0 {
			return utils.EH.CreateError(e, "No Results",
				fmt.Sprintf("No cards match %q", query))
		}

		totalPages := int(math.Ceil(float64(len(results)) / float64(config.CardsPerPage)))

		return a.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				start := page * config.CardsPerPage
				end := min(start+config.CardsPerPage, len(results))

				var description strings.Builder
				description.WriteString(fmt.Sprintf("🔍 `%s`\n\n", query))
				for _, card := range results[start:end] {
					description.WriteString(fmt.Sprintf("%s **%s** · %d⬡ · %s\n",
						utils.InkEmoji(string(card.Ink)),
						card.Title(),
						card.Cost,
						strings.Join(typeNames(card.Types), "/")))
				}

				embed.SetTitle("Card Search").
					SetDescription(description.String()).
					SetColor(config.EmbedDefaultColor).
					SetFooter(fmt.Sprintf("Page %d/%d · %d results", page+1, totalPages, len(results)), "")
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

func typeNames[T ~string](types []T) []string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, string(t))
	}
	return names
}

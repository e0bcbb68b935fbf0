package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"
	"github.com/inklore/deckforge/deckforge"
	"github.com/inklore/deckforge/deckforge/cards"
	"github.com/inklore/deckforge/deckforge/config"
	"github.com/inklore/deckforge/deckforge/database/models"
	"github.com/inklore/deckforge/deckforge/generator"
	"github.com/inklore/deckforge/deckforge/utils"
)

var BuildDeck = discord.SlashCommandCreate{
	Name:        "builddeck",
	Description: "🃏 Generate a legal 60-card deck for your inks!",
	Options:     utils.InkFilterOptions,
}

func BuildDeckHandler(a *deckforge.App) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		data := e.SlashCommandInteractionData()

		inks, err := parseInks(data)
		if err != nil {
			return utils.EH.CreateError(e, "Invalid Inks", err.Error())
		}
		archetype := generator.ParseArchetype(data.String("archetype"))

		ctx, cancel := context.WithTimeout(context.Background(), config.GenerateTimeout)
		defer cancel()

		deck, genErr := a.Generator.Generate(inks, archetype)

		var emptyPool *generator.EmptyInkPoolError
		if errors.As(genErr, &emptyPool) {
			return utils.EH.CreateError(e, "No Cards",
				fmt.Sprintf("No legal cards found for %v", inks))
		}

		var exhausted *generator.RetryBudgetExhaustedError
		incomplete := errors.As(genErr, &exhausted)
		if genErr != nil && !incomplete {
			return utils.EH.CreateError(e, "Generation Failed", genErr.Error())
		}

		// Persist even best-effort decks; the completeness flag keeps them
		// distinguishable.
		saved := &models.Deck{
			Inks:      inkNames(deck.Inks),
			Archetype: string(archetype),
			CardIDs:   cardIDs(deck),
			Complete:  !incomplete,
		}
		if err := a.DeckRepository.Create(ctx, saved); err != nil {
			// The deck still exists in memory; losing the save is not
			// worth failing the command over.
			slog.Error("Failed to save generated deck",
				slog.String("type", "db"),
				slog.Any("error", err))
		}

		return respondWithDeck(a, e, deck, archetype, incomplete)
	}
}

func respondWithDeck(a *deckforge.App, e *handler.CommandEvent, deck *cards.Deck, archetype generator.Archetype, incomplete bool) error {
	filters := utils.BuildFilterDescription(utils.FilterInfo{
		Inks:      inkNames(deck.Inks),
		Archetype: string(archetype),
	})
	listing := utils.FormatDeckList(deck)
	lines := strings.Split(strings.TrimRight(listing, "\n"), "\n")
	linesPerPage := 20
	totalPages := int(math.Ceil(float64(len(lines)) / float64(linesPerPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	title := "🃏 Generated Deck"
	if incomplete {
		title = "⚠️ Best-Effort Deck (retry budget exhausted)"
	}

	return a.Paginator.Create(e.Respond, paginator.Pages{
		ID:      e.ID().String(),
		Creator: e.User().ID,
		PageFunc: func(page int, embed *discord.EmbedBuilder) {
			start := page * linesPerPage
			end := min(start+linesPerPage, len(lines))
			embed.SetTitle(title).
				SetDescription(fmt.Sprintf("%s\n%s```\n%s\n```",
					utils.FormatDeckSummary(deck),
					filters,
					strings.Join(lines[start:end], "\n"))).
				SetColor(config.InfoColor).
				SetFooterText(fmt.Sprintf("Generated %s", time.Now().Format("2006-01-02 15:04")))
		},
		Pages:      totalPages,
		ExpireMode: paginator.ExpireModeAfterLastUsage,
	}, false)
}

func parseInks(data discord.SlashCommandInteractionData) ([]cards.Ink, error) {
	primary, ok := cards.ParseInk(data.String("ink"))
	if !ok {
		return nil, fmt.Errorf("unknown ink %q", data.String("ink"))
	}
	inks := []cards.Ink{primary}

	if raw, present := data.OptString("second_ink"); present && raw != "" {
		second, ok := cards.ParseInk(raw)
		if !ok {
			return nil, fmt.Errorf("unknown ink %q", raw)
		}
		if second == primary {
			return nil, fmt.Errorf("both inks are %s; pick two different colors", primary)
		}
		inks = append(inks, second)
	}
	return inks, nil
}

func inkNames(inks []cards.Ink) []string {
	names := make([]string, 0, len(inks))
	for _, ink := range inks {
		names = append(names, string(ink))
	}
	return names
}

func cardIDs(deck *cards.Deck) []string {
	ids := make([]string, 0, len(deck.Cards))
	for _, c := range deck.Cards {
		ids = append(ids, c.ID)
	}
	return ids
}

package utils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/inklore/deckforge/deckforge/cards"
)

// FormatDeckList renders a deck grouped by cost, one line per distinct
// title with its copy count. This is the text form posted to exports.
func FormatDeckList(deck *cards.Deck) string {
	type entry struct {
		card  *cards.Card
		count int
	}

	byTitle := make(map[string]*entry)
	for _, c := range deck.Cards {
		if e, ok := byTitle[c.Title()]; ok {
			e.count++
		} else {
			byTitle[c.Title()] = &entry{card: c, count: 1}
		}
	}

	entries := make([]*entry, 0, len(byTitle))
	for _, e := range byTitle {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].card.Cost != entries[j].card.Cost {
			return entries[i].card.Cost < entries[j].card.Cost
		}
		return entries[i].card.Title() < entries[j].card.Title()
	})

	var b strings.Builder
	lastCost := -1
	for _, e := range entries {
		if e.card.Cost != lastCost {
			if lastCost != -1 {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "-- %d --\n", e.card.Cost)
			lastCost = e.card.Cost
		}
		fmt.Fprintf(&b, "%dx %s\n", e.count, e.card.Title())
	}
	return b.String()
}

// FormatDeckSummary is the one-line header for a generated deck.
func FormatDeckSummary(deck *cards.Deck) string {
	inkNames := make([]string, 0, len(deck.Inks))
	for _, ink := range deck.Inks {
		inkNames = append(inkNames, InkEmoji(string(ink))+" "+string(ink))
	}
	return fmt.Sprintf("%s | %d cards | %d distinct",
		strings.Join(inkNames, " / "), deck.Size(), len(deck.Distinct()))
}

// Ptr returns a pointer to v, for the disgo message-update builders.
func Ptr[T any](v T) *T {
	return &v
}

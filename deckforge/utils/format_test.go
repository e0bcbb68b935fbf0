package utils

import (
	"strings"
	"testing"

	"github.com/inklore/deckforge/deckforge/cards"
)

func formatDeck() *cards.Deck {
	mk := func(name, version string, cost int) *cards.Card {
		return &cards.Card{
			ID:      name + "-" + version,
			Name:    name,
			Version: version,
			Cost:    cost,
		}
	}
	d := cards.NewDeck([]cards.Ink{cards.InkAmber, cards.InkSteel})
	d.Add(mk("Olaf", "Friendly Snowman", 1), 4)
	d.Add(mk("Elsa", "Snow Queen", 8), 2)
	d.Add(mk("Mickey Mouse", "Brave Little Tailor", 8), 3)
	d.Add(mk("Lantern", "", 2), 1)
	return d
}

func TestFormatDeckList(t *testing.T) {
	out := FormatDeckList(formatDeck())

	wantLines := []string{
		"-- 1 --",
		"4x Olaf - Friendly Snowman",
		"-- 2 --",
		"1x Lantern",
		"-- 8 --",
		"2x Elsa - Snow Queen",
		"3x Mickey Mouse - Brave Little Tailor",
	}
	for _, line := range wantLines {
		if !strings.Contains(out, line) {
			t.Errorf("FormatDeckList() missing line %q in:\n%s", line, out)
		}
	}

	// Cost groups appear in ascending order.
	if strings.Index(out, "-- 1 --") > strings.Index(out, "-- 8 --") {
		t.Error("FormatDeckList() cost groups out of order")
	}
	// Titles inside one cost group sort alphabetically.
	if strings.Index(out, "Elsa - Snow Queen") > strings.Index(out, "Mickey Mouse") {
		t.Error("FormatDeckList() titles within a cost group out of order")
	}
}

func TestFormatDeckSummary(t *testing.T) {
	out := FormatDeckSummary(formatDeck())
	if !strings.Contains(out, "10 cards") {
		t.Errorf("FormatDeckSummary() = %q, want total card count", out)
	}
	if !strings.Contains(out, "4 distinct") {
		t.Errorf("FormatDeckSummary() = %q, want distinct count", out)
	}
	if !strings.Contains(out, "Amber") || !strings.Contains(out, "Steel") {
		t.Errorf("FormatDeckSummary() = %q, want both ink names", out)
	}
}

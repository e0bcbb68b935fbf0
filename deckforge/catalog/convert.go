package catalog

import (
	"strings"

	"github.com/inklore/deckforge/deckforge/cards"
	"github.com/inklore/deckforge/deckforge/database/models"
)

// ToModel converts a wire record into its persisted form. Missing optional
// fields get their defaults here so the database row is always complete.
func ToModel(rec CardRecord) *models.Card {
	inks := rec.Inks
	if len(inks) == 0 && rec.Ink != "" {
		inks = []string{rec.Ink}
	}
	maxAmount := rec.MaxAmount
	if maxAmount == 0 {
		maxAmount = cards.DefaultMaxCopies
	}
	return &models.Card{
		ID:              rec.ID,
		Name:            rec.Name,
		Version:         rec.Version,
		Cost:            rec.Cost,
		Inkwell:         rec.Inkwell,
		Ink:             rec.Ink,
		Inks:            inks,
		Keywords:        rec.Keywords,
		Types:           rec.Types,
		Classifications: rec.Classifications,
		Text:            rec.Text,
		Lore:            rec.Lore,
		Strength:        rec.Strength,
		Willpower:       rec.Willpower,
		Legality:        strings.ToLower(rec.Legality),
		MaxAmount:       maxAmount,
		ImageURL:        rec.ImageURI,
	}
}

// ToDomain builds the immutable domain card from a persisted row, parsing
// keywords and computing the sanitized rules text once.
func ToDomain(m *models.Card) *cards.Card {
	inks := make([]cards.Ink, 0, len(m.Inks))
	for _, raw := range m.Inks {
		if ink, ok := cards.ParseInk(raw); ok {
			inks = append(inks, ink)
		}
	}
	types := make([]cards.CardType, 0, len(m.Types))
	for _, raw := range m.Types {
		types = append(types, cards.CardType(raw))
	}

	ink, _ := cards.ParseInk(m.Ink)
	maxCopies := m.MaxAmount
	if maxCopies == 0 {
		maxCopies = cards.DefaultMaxCopies
	}
	if strings.EqualFold(m.Name, cards.UnlimitedCopiesName) {
		maxCopies = cards.UnlimitedCopies
	}

	return &cards.Card{
		ID:              m.ID,
		Name:            m.Name,
		Version:         m.Version,
		Cost:            m.Cost,
		Inkwell:         m.Inkwell,
		Ink:             ink,
		Inks:            inks,
		Keywords:        cards.ParseKeywords(m.Keywords),
		Types:           types,
		Classifications: m.Classifications,
		Text:            m.Text,
		SanitizedText:   cards.SanitizeText(m.Text),
		Lore:            m.Lore,
		Strength:        m.Strength,
		Willpower:       m.Willpower,
		Legality:        cards.Legality(m.Legality),
		MaxCopies:       maxCopies,
		ImageURL:        m.ImageURL,
	}
}

// ToDomainAll converts a full set of rows and runs the one-time dependency
// analysis over the result. This must complete before any generation call
// reads the catalog.
func ToDomainAll(rows []*models.Card) []*cards.Card {
	catalog := make([]*cards.Card, 0, len(rows))
	for _, m := range rows {
		catalog = append(catalog, ToDomain(m))
	}
	cards.NewAnalyzer(catalog).Annotate()
	return catalog
}

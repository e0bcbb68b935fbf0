package cards

import (
	"log/slog"
	"regexp"
	"strings"
	"time"
)

// Analyzer derives every card's dependency sets from its sanitized rules
// text. It runs exactly once over the whole catalog, before any deck
// generation starts, and is idempotent.
type Analyzer struct {
	catalog []*Card

	// Union of classifications seen anywhere in the catalog.
	classifications []string
}

func NewAnalyzer(catalog []*Card) *Analyzer {
	classSet := make(map[string]struct{})
	for _, c := range catalog {
		for _, class := range c.Classifications {
			classSet[strings.ToLower(class)] = struct{}{}
		}
	}
	classifications := make([]string, 0, len(classSet))
	for class := range classSet {
		classifications = append(classifications, class)
	}
	return &Analyzer{catalog: catalog, classifications: classifications}
}

// Annotate fills in the Required* fields of every catalog card. Re-running
// it recomputes the same sets from scratch.
func (a *Analyzer) Annotate() {
	start := time.Now()
	for _, c := range a.catalog {
		c.RequiredKeywords = a.requiredKeywords(c)
		c.RequiredClassifications = a.requiredClassifications(c)
		c.RequiredTypes = a.requiredTypes(c)
		c.RequiredNames = a.requiredNames(c)
	}
	slog.Debug("Catalog dependency analysis complete",
		slog.String("type", "sys"),
		slog.Int("cards", len(a.catalog)),
		slog.Duration("took", time.Since(start)))
}

// grantPattern matches phrases that give a keyword to another card, e.g.
// "gains Rush" or "gain Evasive". Effects that grant a keyword do not
// depend on cards already having it.
var grantPattern = regexp.MustCompile(`gains?\s+[a-z' ]+`)

func (a *Analyzer) requiredKeywords(c *Card) []string {
	text := grantPattern.ReplaceAllString(c.SanitizedText, "")
	var required []string
	for _, kw := range KnownKeywords {
		if strings.Contains(text, kw) {
			required = append(required, kw)
		}
	}
	return required
}

func (a *Analyzer) requiredClassifications(c *Card) []string {
	var required []string
	for _, class := range a.classifications {
		// "challenges a Pirate" style wordings refer to opposing cards,
		// not to deck contents.
		text := strings.ReplaceAll(c.SanitizedText, "challenges a "+class, "")
		text = strings.ReplaceAll(text, "challenges an "+class, "")
		if strings.Contains(text, class) {
			required = append(required, class)
		}
	}
	return required
}

// itemPhrases are the wordings that reference items in the same deck.
// A bare "item" substring is too noisy to use.
var itemPhrases = []string{
	"chosen item of yours",
	"your items",
	"reveal an item",
}

func (a *Analyzer) requiredTypes(c *Card) []CardType {
	var required []CardType
	for _, t := range []CardType{TypeAction, TypeItem, TypeLocation, TypeSong} {
		// Nearly every deck runs characters, so a character reference
		// is not a discriminating dependency.
		if t == TypeItem {
			for _, phrase := range itemPhrases {
				if strings.Contains(c.SanitizedText, phrase) {
					required = append(required, t)
					break
				}
			}
			continue
		}
		if strings.Contains(c.SanitizedText, strings.ToLower(string(t))) {
			required = append(required, t)
		}
	}
	return required
}

func (a *Analyzer) requiredNames(c *Card) []string {
	var required []string
	seen := make(map[string]struct{})

	add := func(name string) {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			required = append(required, name)
		}
	}

	for _, other := range a.catalog {
		if strings.EqualFold(other.Name, c.Name) {
			continue
		}
		// A leading space keeps "elsa" from matching inside another word.
		if strings.Contains(c.SanitizedText, " "+strings.ToLower(other.Name)) {
			add(strings.ToLower(other.Name))
		}
	}

	// Shift needs a same-named base in the deck; registering the card's own
	// name segments feeds the shift-target check during repair.
	if c.Keywords.Has(KeywordShift) {
		for _, seg := range c.NameSegments() {
			add(seg)
		}
	}
	return required
}

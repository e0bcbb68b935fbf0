package services

import (
	"strings"

	"github.com/inklore/deckforge/deckforge/cards"
	"github.com/sahilm/fuzzy"
)

// SearchService finds catalog cards by approximate title match.
type SearchService struct {
	catalog []*cards.Card
	titles  titleSource
}

type titleSource []*cards.Card

func (s titleSource) String(i int) string {
	return strings.ToLower(s[i].Title())
}

func (s titleSource) Len() int {
	return len(s)
}

func NewSearchService(catalog []*cards.Card) *SearchService {
	return &SearchService{catalog: catalog, titles: titleSource(catalog)}
}

// Search returns up to limit cards ranked by fuzzy match quality. Exact
// title matches rank first.
func (s *SearchService) Search(query string, limit int) []*cards.Card {
	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return nil
	}

	// Exact title hit short-circuits the fuzzy pass.
	for _, c := range s.catalog {
		if strings.ToLower(c.Title()) == normalized {
			return []*cards.Card{c}
		}
	}

	matches := fuzzy.FindFrom(normalized, s.titles)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]*cards.Card, 0, len(matches))
	for _, m := range matches {
		results = append(results, s.catalog[m.Index])
	}
	return results
}

// ByName returns every printing of the given card name, cheapest first.
func (s *SearchService) ByName(name string) []*cards.Card {
	normalized := strings.ToLower(strings.TrimSpace(name))
	var results []*cards.Card
	for _, c := range s.catalog {
		if strings.ToLower(c.Name) == normalized {
			results = append(results, c)
		}
	}
	for i := 1; i < len(results); i++ {
		for j := i; j > 0 && results[j].Cost < results[j-1].Cost; j-- {
			results[j], results[j-1] = results[j-1], results[j]
		}
	}
	return results
}

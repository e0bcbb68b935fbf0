package generator

import (
	"regexp"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru"
	"github.com/inklore/deckforge/deckforge/cards"
)

const staticWeightCacheSize = 10000

// WeightConfig names every multiplier of the weight pipeline. All
// multiplicative factors default to values near 1; penalties sit below it,
// bonuses above.
type WeightConfig struct {
	BaseWeight        float64
	NonInkablePenalty float64
	EffectTextBonus   float64

	SongBonus             float64
	SingTogetherBonus     float64
	SingerExactBonus      float64
	SingerOverkillPenalty float64

	ShiftFirstBonus       float64
	ShiftCheapBonus       float64
	ShiftExpensivePenalty float64

	DrawPerCardBonus  float64
	LorePerPointBonus float64
	VanillaPenalty    float64

	ChallengerPerPoint float64
	ResistPerPoint     float64

	ExistingCopyBonus   float64
	CopyCountEscalation float64
	RetryEscalation     float64

	UnmetRequirementPenalty float64
	FulfilsRequirementBonus float64

	ArchetypeRemovalBonus float64
	ArchetypeLorePerPoint float64

	// MaxTries mirrors the generator retry budget so the duplicate bonus
	// can escalate as attempts are consumed.
	MaxTries int
}

func DefaultWeightConfig() WeightConfig {
	return WeightConfig{
		BaseWeight:        100,
		NonInkablePenalty: 0.75, // uninkable cards clog the resource row
		EffectTextBonus:   1.1,

		SongBonus:             1.35,
		SingTogetherBonus:     1.25,
		SingerExactBonus:      1.3,
		SingerOverkillPenalty: 0.9,

		ShiftFirstBonus:       1.4,
		ShiftCheapBonus:       1.6,
		ShiftExpensivePenalty: 0.85,

		DrawPerCardBonus:  0.15,
		LorePerPointBonus: 0.1,
		VanillaPenalty:    0.6,

		ChallengerPerPoint: 0.08,
		ResistPerPoint:     0.12,

		ExistingCopyBonus:   2.5,
		CopyCountEscalation: 0.5,
		RetryEscalation:     0.04,

		UnmetRequirementPenalty: 0.02,
		FulfilsRequirementBonus: 2.0,

		ArchetypeRemovalBonus: 1.5,
		ArchetypeLorePerPoint: 0.12,

		MaxTries: DefaultMaxTries,
	}
}

// effectBonuses maps a sanitized-text fragment to its multiplier. These are
// the common beneficial effects worth favoring regardless of archetype.
var effectBonuses = map[string]float64{
	"draw":                    1.2,
	"banish":                  1.4,
	"return chosen character": 1.3,
	"to their player's hand":  1.15,
	"into their inkwell":      1.35,
}

// keywordBonuses maps a keyword to its flat multiplier. Challenger and
// Resist are handled separately because they scale with their amount.
var keywordBonuses = map[string]float64{
	cards.KeywordEvasive:   1.3,
	cards.KeywordWard:      1.25,
	cards.KeywordRush:      1.2,
	cards.KeywordBodyguard: 1.15,
	cards.KeywordSupport:   1.1,
	cards.KeywordSinger:    1.1,
	cards.KeywordVanish:    0.95,
	cards.KeywordReckless:  0.9,
}

var (
	drawCardsPattern = regexp.MustCompile(`draws? (\d+) cards?`)
	gainLorePattern  = regexp.MustCompile(`gains? (\d+) lore`)
	removalPhrases   = []string{"banish", "return chosen character"}
)

// Calculator scores one candidate against a partial deck. It is pure with
// respect to its inputs; the only internal state is a cache of the
// candidate-only factor product, which depends on nothing but the card.
type Calculator struct {
	config WeightConfig
	static *lru.Cache
}

func NewCalculator(config WeightConfig) *Calculator {
	cache, _ := lru.New(staticWeightCacheSize)
	return &Calculator{config: config, static: cache}
}

// Calculate returns the sampling weight for candidate against the partial
// deck. A zero weight is a hard exclusion. Factor order follows the
// pipeline: candidate-only factors first, deck-relative synergies next, and
// the title-presence and requirement checks last since they can zero out or
// massively amplify the result.
func (wc *Calculator) Calculate(candidate *cards.Card, deck *cards.Deck, archetype Archetype, triesRemaining int) float64 {
	weight := wc.staticWeight(candidate)

	weight *= wc.songSynergy(candidate, deck)
	weight *= wc.shiftSynergy(candidate, deck)

	presence := wc.titlePresence(candidate, deck, triesRemaining)
	if presence == 0 {
		return 0
	}
	weight *= presence

	weight *= wc.requirementFactor(candidate, deck)
	weight *= wc.archetypeFactor(candidate, archetype)

	if weight < 0 {
		return 0
	}
	return weight
}

// staticWeight is the product of every factor that reads only the
// candidate. Cached per card ID.
func (wc *Calculator) staticWeight(c *cards.Card) float64 {
	if cached, ok := wc.static.Get(c.ID); ok {
		return cached.(float64)
	}

	weight := wc.config.BaseWeight

	if !c.Inkwell {
		weight *= wc.config.NonInkablePenalty
	}
	if c.SanitizedText != "" {
		weight *= wc.config.EffectTextBonus
	}

	weight *= wc.effectFactor(c)
	weight *= wc.keywordFactor(c)

	wc.static.Add(c.ID, weight)
	return weight
}

func (wc *Calculator) effectFactor(c *cards.Card) float64 {
	factor := 1.0
	matched := false
	for phrase, bonus := range effectBonuses {
		if strings.Contains(c.SanitizedText, phrase) {
			factor *= bonus
			matched = true
		}
	}

	if m := drawCardsPattern.FindStringSubmatch(c.SanitizedText); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			factor *= 1 + wc.config.DrawPerCardBonus*float64(n)
		}
	}
	if m := gainLorePattern.FindStringSubmatch(c.SanitizedText); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			factor *= 1 + wc.config.LorePerPointBonus*float64(n)
		}
	}

	if !matched && c.HasType(cards.TypeCharacter) && !wc.hasBonusKeyword(c) {
		// Plain vanilla bodies rarely earn a deck slot.
		factor *= wc.config.VanillaPenalty
	}
	return factor
}

func (wc *Calculator) hasBonusKeyword(c *cards.Card) bool {
	for kw := range keywordBonuses {
		if c.Keywords.Has(kw) {
			return true
		}
	}
	return c.Keywords.Has(cards.KeywordChallenger) ||
		c.Keywords.Has(cards.KeywordResist) ||
		c.Keywords.Has(cards.KeywordShift)
}

func (wc *Calculator) keywordFactor(c *cards.Card) float64 {
	factor := 1.0
	for kw, bonus := range keywordBonuses {
		if c.Keywords.Has(kw) {
			factor *= bonus
		}
	}
	if amount, ok := c.Keywords.Amount(cards.KeywordChallenger); ok {
		factor *= 1 + wc.config.ChallengerPerPoint*float64(amount)
	}
	if amount, ok := c.Keywords.Amount(cards.KeywordResist); ok {
		factor *= 1 + wc.config.ResistPerPoint*float64(amount)
	}
	return factor
}

// songSynergy rewards songs the deck can already sing and singers the deck
// has songs for. An exact sing-cost match is the sweet spot; overkill
// singers get a slight penalty.
func (wc *Calculator) songSynergy(c *cards.Card, deck *cards.Deck) float64 {
	factor := 1.0

	if c.HasType(cards.TypeSong) {
		factor *= wc.config.SongBonus
		if strings.Contains(c.SanitizedText, cards.KeywordSingTogether) {
			factor *= wc.config.SingTogetherBonus
		}
		for _, ch := range deck.Characters() {
			switch sing := ch.SingCost(); {
			case sing == c.Cost:
				factor *= wc.config.SingerExactBonus
			case sing > c.Cost:
				factor *= wc.config.SingerOverkillPenalty
			}
		}
		return factor
	}

	if c.Keywords.Has(cards.KeywordSinger) {
		for _, song := range deck.Songs() {
			switch sing := c.SingCost(); {
			case sing == song.Cost:
				factor *= wc.config.SingerExactBonus
			case sing > song.Cost:
				factor *= wc.config.SingerOverkillPenalty
			}
		}
	}
	return factor
}

// shiftSynergy pairs shift characters with cheap bases. The first shift
// card is always welcome; after that the cost gap decides.
func (wc *Calculator) shiftSynergy(c *cards.Card, deck *cards.Deck) float64 {
	if !c.HasType(cards.TypeCharacter) {
		return 1.0
	}

	if c.Keywords.Has(cards.KeywordShift) {
		hasShift := false
		for _, other := range deck.Cards {
			if other.Keywords.Has(cards.KeywordShift) {
				hasShift = true
				break
			}
		}
		if !hasShift {
			return wc.config.ShiftFirstBonus
		}
		for _, ch := range deck.Characters() {
			if ch.Title() == c.Title() || !c.CanShiftFrom(ch) {
				continue
			}
			if ch.Cost < c.Cost {
				return wc.config.ShiftCheapBonus
			}
			return wc.config.ShiftExpensivePenalty
		}
		return 1.0
	}

	// Candidate could be a base for a shift card already in the deck.
	for _, shifter := range deck.Distinct() {
		if !shifter.Keywords.Has(cards.KeywordShift) || shifter.Title() == c.Title() {
			continue
		}
		if !shifter.CanShiftFrom(c) {
			continue
		}
		if c.Cost < shifter.Cost {
			return wc.config.ShiftCheapBonus
		}
		return wc.config.ShiftExpensivePenalty
	}
	return 1.0
}

// titlePresence returns 0 once the candidate is at its copy cap. Below the
// cap each copy already in the deck raises the weight further, and the
// whole bonus escalates as construction attempts are burned, pushing late
// retries toward 4-of staples.
func (wc *Calculator) titlePresence(c *cards.Card, deck *cards.Deck, triesRemaining int) float64 {
	count := deck.Count(c.Title())
	if count >= c.MaxCopies {
		return 0
	}
	if count == 0 {
		return 1.0
	}
	used := wc.config.MaxTries - triesRemaining
	if used < 0 {
		used = 0
	}
	escalation := 1 + wc.config.RetryEscalation*float64(used)
	return wc.config.ExistingCopyBonus * (1 + wc.config.CopyCountEscalation*float64(count-1)) * escalation
}

// requirementFactor punishes candidates whose own dependencies would be
// unmet (a severe penalty, not a hard zero, so the repair loop keeps the
// final say) and rewards candidates that satisfy a requirement some deck
// card is still waiting on.
func (wc *Calculator) requirementFactor(c *cards.Card, deck *cards.Deck) float64 {
	joined := make([]*cards.Card, 0, len(deck.Cards)+1)
	joined = append(joined, deck.Cards...)
	joined = append(joined, c)

	if !c.MeetsRequirements(joined) {
		return wc.config.UnmetRequirementPenalty
	}

	for _, waiting := range deck.Distinct() {
		if !waiting.MeetsRequirements(deck.Cards) && waiting.MeetsRequirements(joined) {
			return wc.config.FulfilsRequirementBonus
		}
	}
	return 1.0
}

func (wc *Calculator) archetypeFactor(c *cards.Card, archetype Archetype) float64 {
	if archetype == ArchetypeDefault || archetype == "" {
		return 1.0
	}
	factor := 1.0
	if c.Cost <= 2 {
		for _, phrase := range removalPhrases {
			if strings.Contains(c.SanitizedText, phrase) {
				factor *= wc.config.ArchetypeRemovalBonus
				break
			}
		}
	}
	if c.Lore > 0 {
		factor *= 1 + wc.config.ArchetypeLorePerPoint*float64(c.Lore)
	}
	return factor
}

package generator

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/inklore/deckforge/deckforge/cards"
)

const (
	// DefaultMaxTries is the retry budget for the generate/repair loop.
	DefaultMaxTries = 50

	// defaultMaxSingletons is how many distinct one-copy cards a repaired
	// deck may keep before they are all culled as too diffuse.
	defaultMaxSingletons = 4
)

type Config struct {
	DeckSize      int
	MaxTries      int
	MaxSingletons int
	Rand          *rand.Rand
}

func DefaultConfig() Config {
	return Config{
		DeckSize:      cards.TargetDeckSize,
		MaxTries:      DefaultMaxTries,
		MaxSingletons: defaultMaxSingletons,
	}
}

// Generator builds legal decks from an analyzed catalog by weighted
// sampling plus an iterative dependency-repair loop. It holds no state
// across Generate calls apart from its random source; the catalog is
// read-only.
type Generator struct {
	catalog []*cards.Card
	weights *Calculator
	cfg     Config
	rng     *rand.Rand
}

func NewGenerator(catalog []*cards.Card, weights *Calculator, cfg Config) *Generator {
	if cfg.DeckSize == 0 {
		cfg.DeckSize = cards.TargetDeckSize
	}
	if cfg.MaxTries == 0 {
		cfg.MaxTries = DefaultMaxTries
	}
	if cfg.MaxSingletons == 0 {
		cfg.MaxSingletons = defaultMaxSingletons
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{catalog: catalog, weights: weights, cfg: cfg, rng: rng}
}

// Generate builds one deck for the requested 1-2 inks. On success the deck
// is exactly DeckSize cards, every card's inks are covered, no title
// exceeds its copy cap, and every card's dependencies are met. On failure
// the best-effort deck is returned together with a typed error.
//
// The retry loop is explicit: the surviving cards of a failed repair become
// the partial deck of the next attempt, and exhaustion is a distinct
// terminal state rather than a silent fallthrough.
func (g *Generator) Generate(inks []cards.Ink, archetype Archetype) (*cards.Deck, error) {
	start := time.Now()
	pool := g.filterByInks(inks)
	if len(pool) == 0 {
		return cards.NewDeck(inks), &EmptyInkPoolError{Inks: inks}
	}

	deck := cards.NewDeck(inks)
	for tries := g.cfg.MaxTries; tries > 0; tries-- {
		if err := g.fill(deck, pool, archetype, tries); err != nil {
			return deck, err
		}
		g.repair(deck)
		if deck.Size() == g.cfg.DeckSize {
			slog.Debug("Deck generated",
				slog.String("type", "gen"),
				slog.Any("inks", inks),
				slog.String("archetype", string(archetype)),
				slog.Int("attempts", g.cfg.MaxTries-tries+1),
				slog.Duration("took", time.Since(start)))
			return deck, nil
		}
	}

	return deck, &RetryBudgetExhaustedError{Tries: g.cfg.MaxTries, DeckSize: deck.Size()}
}

// filterByInks restricts the catalog to tournament-legal cards playable
// with the requested inks. Dual-ink cards need both of their inks present.
func (g *Generator) filterByInks(inks []cards.Ink) []*cards.Card {
	var pool []*cards.Card
	for _, c := range g.catalog {
		if c.Legality != cards.LegalityLegal {
			continue
		}
		if cards.InksSubset(c.Inks, inks) {
			pool = append(pool, c)
		}
	}
	return pool
}

// fill samples cards until the deck reaches its target size.
func (g *Generator) fill(deck *cards.Deck, pool []*cards.Card, archetype Archetype, triesRemaining int) error {
	for deck.Size() < g.cfg.DeckSize {
		bucket := g.pickBucket(deck, archetype)

		pick, err := g.pickCard(deck, pool, bucket, archetype, triesRemaining)
		if err != nil {
			return err
		}

		slots := g.cfg.DeckSize - deck.Size()
		maxAdd := pick.MaxCopies - deck.Count(pick.Title())
		if maxAdd > slots {
			maxAdd = slots
		}
		if maxAdd > cards.DefaultMaxCopies {
			maxAdd = cards.DefaultMaxCopies
		}
		deck.Add(pick, rollCopyCount(g.rng, maxAdd))
	}
	return nil
}

// pickBucket chooses a cost bucket proportionally to its remaining slots.
// Over-filled buckets clamp to zero remaining; when every bucket is full
// the choice falls back to uniform so sampling can still make progress.
func (g *Generator) pickBucket(deck *cards.Deck, archetype Archetype) int {
	targets := archetype.CurveTargets()

	remaining := make([]float64, len(targets))
	total := 0.0
	for i, target := range targets {
		var filled int
		if i == len(targets)-1 {
			filled = deck.CountAtCostOrAbove(bucketTopCost)
		} else if i == 0 {
			filled = deck.CountAtCost(0) + deck.CountAtCost(1)
		} else {
			filled = deck.CountAtCost(i + 1)
		}
		slots := target - filled
		if slots < 0 {
			slots = 0
		}
		remaining[i] = float64(slots)
		total += remaining[i]
	}

	if total <= 0 {
		return g.rng.Intn(len(targets))
	}
	return sampleByWeight(remaining, g.rng.Float64()*total)
}

// pickCard weighs every candidate in the bucket and samples one. If the
// whole bucket weighs zero the pool is widened once across all costs;
// if even that yields nothing, the condition is surfaced instead of
// letting an undefined pick corrupt the deck.
func (g *Generator) pickCard(deck *cards.Deck, pool []*cards.Card, bucket int, archetype Archetype, triesRemaining int) (*cards.Card, error) {
	if pick := g.sampleFrom(deck, pool, bucket, archetype, triesRemaining); pick != nil {
		return pick, nil
	}
	if pick := g.sampleFrom(deck, pool, -1, archetype, triesRemaining); pick != nil {
		return pick, nil
	}
	return nil, &NoPickableCandidateError{Bucket: bucket}
}

// sampleFrom weighs the candidates of one bucket (-1 means every bucket)
// and samples proportionally. Returns nil when nothing weighs above zero.
func (g *Generator) sampleFrom(deck *cards.Deck, pool []*cards.Card, bucket int, archetype Archetype, triesRemaining int) *cards.Card {
	var candidates []*cards.Card
	var weights []float64
	total := 0.0

	for _, c := range pool {
		if bucket >= 0 && bucketFor(c.Cost) != bucket {
			continue
		}
		if deck.Count(c.Title()) >= c.MaxCopies {
			continue
		}
		w := g.weights.Calculate(c, deck, archetype, triesRemaining)
		if w <= 0 {
			continue
		}
		candidates = append(candidates, c)
		weights = append(weights, w)
		total += w
	}

	if len(candidates) == 0 {
		return nil
	}
	return candidates[sampleByWeight(weights, g.rng.Float64()*total)]
}

// repair removes cards with unmet dependencies until a fixpoint, then culls
// every singleton when the deck is spread across too many one-ofs. Running
// repair on an already-repaired deck is a no-op.
func (g *Generator) repair(deck *cards.Deck) {
	g.removeUnmet(deck)

	var singles []string
	for _, c := range deck.Distinct() {
		if deck.Count(c.Title()) == 1 {
			singles = append(singles, c.Title())
		}
	}
	if len(singles) > g.cfg.MaxSingletons {
		for _, title := range singles {
			deck.RemoveAll(title)
		}
		// Pruning may have broken a dependency the singletons satisfied.
		g.removeUnmet(deck)
	}
}

// removeUnmet removes every distinct card whose dependency predicate fails
// against the rest of the deck, repeating until no removal happens.
func (g *Generator) removeUnmet(deck *cards.Deck) {
	for {
		removed := false
		for _, c := range deck.Distinct() {
			if !c.MeetsRequirements(deck.Cards) {
				deck.RemoveAll(c.Title())
				removed = true
			}
		}
		if !removed {
			return
		}
	}
}

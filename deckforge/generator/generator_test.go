package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/inklore/deckforge/deckforge/cards"
)

// newCard builds a vanilla inkable character for generator tests.
func newCard(name string, cost int, ink cards.Ink, keywords ...string) *cards.Card {
	return &cards.Card{
		ID:        name,
		Name:      name,
		Cost:      cost,
		Inkwell:   true,
		Ink:       ink,
		Inks:      []cards.Ink{ink},
		Keywords:  cards.ParseKeywords(keywords),
		Types:     []cards.CardType{cards.TypeCharacter},
		Legality:  cards.LegalityLegal,
		MaxCopies: cards.DefaultMaxCopies,
	}
}

// fillerCatalog builds n requirement-free characters spread across the cost
// curve.
func fillerCatalog(n int, ink cards.Ink) []*cards.Card {
	catalog := make([]*cards.Card, 0, n)
	for i := 0; i < n; i++ {
		catalog = append(catalog, newCard(fmt.Sprintf("Filler %s %d", ink, i), i%7, ink))
	}
	return catalog
}

func testGenerator(catalog []*cards.Card, cfg Config) *Generator {
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(42))
	}
	return NewGenerator(catalog, NewCalculator(DefaultWeightConfig()), cfg)
}

func TestGenerateCompleteDeck(t *testing.T) {
	catalog := fillerCatalog(16, cards.InkAmber)
	g := testGenerator(catalog, Config{MaxSingletons: cards.TargetDeckSize})

	deck, err := g.Generate([]cards.Ink{cards.InkAmber}, ArchetypeDefault)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if deck.Size() != cards.TargetDeckSize {
		t.Fatalf("Size() = %d, want %d", deck.Size(), cards.TargetDeckSize)
	}
	if !deck.UsesOnly([]cards.Ink{cards.InkAmber}) {
		t.Error("deck contains cards outside the requested ink")
	}
	for _, c := range deck.Distinct() {
		if count := deck.Count(c.Title()); count > c.MaxCopies {
			t.Errorf("Count(%q) = %d exceeds cap %d", c.Title(), count, c.MaxCopies)
		}
		if !c.MeetsRequirements(deck.Cards) {
			t.Errorf("card %q has unmet requirements in the final deck", c.Title())
		}
	}
}

func TestGenerateRecoversFromSingletonPrune(t *testing.T) {
	// Default singleton limit: early attempts spread across one-ofs get
	// pruned, and the escalating duplicate bonus pulls later attempts
	// toward playsets until the deck closes.
	catalog := fillerCatalog(16, cards.InkAmber)
	g := testGenerator(catalog, Config{})

	deck, err := g.Generate([]cards.Ink{cards.InkAmber}, ArchetypeDefault)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if deck.Size() != cards.TargetDeckSize {
		t.Fatalf("Size() = %d, want %d", deck.Size(), cards.TargetDeckSize)
	}
	singles := 0
	for _, c := range deck.Distinct() {
		if deck.Count(c.Title()) == 1 {
			singles++
		}
	}
	if singles > defaultMaxSingletons {
		t.Errorf("final deck holds %d singletons, limit is %d", singles, defaultMaxSingletons)
	}
}

func TestGenerateDualInk(t *testing.T) {
	catalog := fillerCatalog(10, cards.InkAmber)
	catalog = append(catalog, fillerCatalog(10, cards.InkRuby)...)
	catalog = append(catalog, fillerCatalog(5, cards.InkSteel)...)
	g := testGenerator(catalog, Config{MaxSingletons: cards.TargetDeckSize})

	pair := []cards.Ink{cards.InkAmber, cards.InkRuby}
	deck, err := g.Generate(pair, ArchetypeDefault)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if !deck.UsesOnly(pair) {
		t.Error("deck contains cards outside the requested ink pair")
	}
}

func TestGenerateEmptyInkPool(t *testing.T) {
	g := testGenerator(fillerCatalog(10, cards.InkSteel), Config{})

	deck, err := g.Generate([]cards.Ink{cards.InkAmber}, ArchetypeDefault)
	var poolErr *EmptyInkPoolError
	if !errors.As(err, &poolErr) {
		t.Fatalf("Generate() error = %v, want EmptyInkPoolError", err)
	}
	if deck == nil || deck.Size() != 0 {
		t.Errorf("deck = %v, want empty deck alongside the error", deck)
	}
}

func TestFilterByInksExcludesIllegal(t *testing.T) {
	banned := newCard("Banned One", 3, cards.InkAmber)
	banned.Legality = cards.LegalityBanned
	unreleased := newCard("Future One", 3, cards.InkAmber)
	unreleased.Legality = cards.LegalityUnreleased
	legal := newCard("Legal One", 3, cards.InkAmber)

	g := testGenerator([]*cards.Card{banned, unreleased, legal}, Config{})
	pool := g.filterByInks([]cards.Ink{cards.InkAmber})
	if len(pool) != 1 || pool[0] != legal {
		t.Errorf("filterByInks() = %v, want only the legal card", pool)
	}
}

func TestGenerateUnlimitedCopies(t *testing.T) {
	puppy := newCard("Dalmatian Puppy", 1, cards.InkAmber)
	puppy.MaxCopies = cards.UnlimitedCopies
	catalog := append(fillerCatalog(5, cards.InkAmber), puppy)
	g := testGenerator(catalog, Config{MaxSingletons: cards.TargetDeckSize})

	deck, err := g.Generate([]cards.Ink{cards.InkAmber}, ArchetypeDefault)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	// Five capped fillers cover at most 20 slots, so the uncapped title has
	// to carry the rest.
	if count := deck.Count(puppy.Title()); count <= cards.DefaultMaxCopies {
		t.Errorf("Count(%q) = %d, want more than the normal cap", puppy.Title(), count)
	}
	for _, c := range deck.Distinct() {
		if c == puppy {
			continue
		}
		if count := deck.Count(c.Title()); count > cards.DefaultMaxCopies {
			t.Errorf("Count(%q) = %d exceeds normal cap", c.Title(), count)
		}
	}
}

func TestGenerateRetryBudgetExhausted(t *testing.T) {
	// Every card depends on a keyword nothing in the pool provides, so each
	// repair pass empties the deck again.
	catalog := fillerCatalog(16, cards.InkAmber)
	for _, c := range catalog {
		c.RequiredKeywords = []string{cards.KeywordWard}
	}
	g := testGenerator(catalog, Config{MaxTries: 3})

	deck, err := g.Generate([]cards.Ink{cards.InkAmber}, ArchetypeDefault)
	var exhausted *RetryBudgetExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("Generate() error = %v, want RetryBudgetExhaustedError", err)
	}
	if exhausted.Tries != 3 {
		t.Errorf("Tries = %d, want 3", exhausted.Tries)
	}
	if deck.Size() != 0 {
		t.Errorf("best-effort deck size = %d, want 0", deck.Size())
	}
}

func TestPickCardNoPickableCandidate(t *testing.T) {
	only := newCard("Only One", 3, cards.InkAmber)
	g := testGenerator([]*cards.Card{only}, Config{})

	deck := cards.NewDeck([]cards.Ink{cards.InkAmber})
	deck.Add(only, only.MaxCopies)

	_, err := g.pickCard(deck, []*cards.Card{only}, bucketFor(only.Cost), ArchetypeDefault, DefaultMaxTries)
	var noPick *NoPickableCandidateError
	if !errors.As(err, &noPick) {
		t.Fatalf("pickCard() error = %v, want NoPickableCandidateError", err)
	}
}

func TestRepairRemovesUnmetShift(t *testing.T) {
	shifter := newCard("Elsa", 6, cards.InkAmber, "Shift 4")
	shifter.Version = "Spirit of Winter"
	shifter.RequiredNames = []string{"elsa"}
	base := newCard("Elsa", 4, cards.InkAmber)
	base.Version = "Snow Queen"
	base.ID = "elsa-base"
	fillers := fillerCatalog(4, cards.InkAmber)

	g := testGenerator(nil, Config{})

	withBase := cards.NewDeck([]cards.Ink{cards.InkAmber})
	withBase.Add(shifter, 4)
	withBase.Add(base, 4)
	for _, f := range fillers {
		withBase.Add(f, 4)
	}
	g.repair(withBase)
	if withBase.Count(shifter.Title()) != 4 {
		t.Error("shift card with a base in deck should survive repair")
	}

	withoutBase := cards.NewDeck([]cards.Ink{cards.InkAmber})
	withoutBase.Add(shifter, 4)
	for _, f := range fillers {
		withoutBase.Add(f, 4)
	}
	g.repair(withoutBase)
	if withoutBase.Count(shifter.Title()) != 0 {
		t.Error("shift card without a base should be removed by repair")
	}
}

func TestRepairUniversalShiftTarget(t *testing.T) {
	shifter := newCard("Elsa", 6, cards.InkAmber, "Shift 4")
	shifter.RequiredNames = []string{"elsa"}
	morph := newCard("Morph", 2, cards.InkAmber)

	g := testGenerator(nil, Config{})
	deck := cards.NewDeck([]cards.Ink{cards.InkAmber})
	deck.Add(shifter, 4)
	deck.Add(morph, 4)
	for _, f := range fillerCatalog(3, cards.InkAmber) {
		deck.Add(f, 4)
	}
	g.repair(deck)
	if deck.Count(shifter.Title()) != 4 {
		t.Error("universal target should keep a shift card alive through repair")
	}
}

func TestRepairCascade(t *testing.T) {
	// leaf depends on provider's keyword; provider depends on an absent
	// classification. Removing the provider must cascade to the leaf.
	provider := newCard("Provider", 3, cards.InkAmber, "Evasive")
	provider.RequiredClassifications = []string{"puppy"}
	leaf := newCard("Leaf", 2, cards.InkAmber)
	leaf.RequiredKeywords = []string{cards.KeywordEvasive}

	g := testGenerator(nil, Config{})
	deck := cards.NewDeck([]cards.Ink{cards.InkAmber})
	deck.Add(provider, 4)
	deck.Add(leaf, 4)
	for _, f := range fillerCatalog(4, cards.InkAmber) {
		deck.Add(f, 4)
	}
	g.repair(deck)
	if deck.Count(provider.Title()) != 0 {
		t.Error("provider with unmet classification should be removed")
	}
	if deck.Count(leaf.Title()) != 0 {
		t.Error("leaf should be removed once its provider is gone")
	}
}

func TestRepairSingletonPrune(t *testing.T) {
	g := testGenerator(nil, Config{})

	deck := cards.NewDeck([]cards.Ink{cards.InkAmber})
	for _, f := range fillerCatalog(6, cards.InkAmber) {
		deck.Add(f, 4)
	}
	singles := fillerCatalog(6, cards.InkRuby)
	for _, s := range singles {
		deck.Add(s, 1)
	}
	g.repair(deck)
	for _, s := range singles {
		if deck.Count(s.Title()) != 0 {
			t.Errorf("singleton %q should be pruned when too many one-ofs remain", s.Title())
		}
	}
	if deck.Size() != 24 {
		t.Errorf("Size() after prune = %d, want 24", deck.Size())
	}

	// At or under the limit, singletons survive.
	under := cards.NewDeck([]cards.Ink{cards.InkAmber})
	for _, f := range fillerCatalog(6, cards.InkAmber) {
		under.Add(f, 4)
	}
	kept := fillerCatalog(4, cards.InkRuby)
	for _, s := range kept {
		under.Add(s, 1)
	}
	g.repair(under)
	for _, s := range kept {
		if under.Count(s.Title()) != 1 {
			t.Errorf("singleton %q should survive under the limit", s.Title())
		}
	}
}

func TestRepairIdempotent(t *testing.T) {
	shifter := newCard("Elsa", 6, cards.InkAmber, "Shift 4")
	shifter.RequiredNames = []string{"elsa"}
	g := testGenerator(nil, Config{})

	deck := cards.NewDeck([]cards.Ink{cards.InkAmber})
	deck.Add(shifter, 2)
	for _, f := range fillerCatalog(5, cards.InkAmber) {
		deck.Add(f, 4)
	}
	for _, s := range fillerCatalog(6, cards.InkRuby) {
		deck.Add(s, 1)
	}

	g.repair(deck)
	first := deck.Size()
	g.repair(deck)
	if deck.Size() != first {
		t.Errorf("second repair changed deck size from %d to %d", first, deck.Size())
	}
}

package generator

import (
	"testing"

	"github.com/inklore/deckforge/deckforge/cards"
)

func TestTitlePresenceMonotone(t *testing.T) {
	wc := NewCalculator(DefaultWeightConfig())
	c := newCard("Staple", 3, cards.InkAmber)

	prev := -1.0
	for copies := 0; copies < c.MaxCopies; copies++ {
		deck := cards.NewDeck([]cards.Ink{cards.InkAmber})
		deck.Add(c, copies)
		w := wc.Calculate(c, deck, ArchetypeDefault, DefaultMaxTries)
		if w <= prev {
			t.Errorf("weight at %d copies = %v, want more than %v", copies, w, prev)
		}
		prev = w
	}

	capped := cards.NewDeck([]cards.Ink{cards.InkAmber})
	capped.Add(c, c.MaxCopies)
	if w := wc.Calculate(c, capped, ArchetypeDefault, DefaultMaxTries); w != 0 {
		t.Errorf("weight at copy cap = %v, want 0", w)
	}
}

func TestTitlePresenceRetryEscalation(t *testing.T) {
	wc := NewCalculator(DefaultWeightConfig())
	c := newCard("Staple", 3, cards.InkAmber)
	deck := cards.NewDeck([]cards.Ink{cards.InkAmber})
	deck.Add(c, 2)

	early := wc.Calculate(c, deck, ArchetypeDefault, DefaultMaxTries)
	late := wc.Calculate(c, deck, ArchetypeDefault, 5)
	if late <= early {
		t.Errorf("late-attempt weight %v should exceed early-attempt weight %v", late, early)
	}
}

func TestUnmetRequirementPenalty(t *testing.T) {
	wc := NewCalculator(DefaultWeightConfig())
	plain := newCard("Plain", 3, cards.InkAmber)
	needy := newCard("Needy", 3, cards.InkAmber)
	needy.RequiredKeywords = []string{cards.KeywordEvasive}

	deck := cards.NewDeck([]cards.Ink{cards.InkAmber})
	wPlain := wc.Calculate(plain, deck, ArchetypeDefault, DefaultMaxTries)
	wNeedy := wc.Calculate(needy, deck, ArchetypeDefault, DefaultMaxTries)
	if wNeedy >= wPlain {
		t.Errorf("unmet requirement weight %v should be far below %v", wNeedy, wPlain)
	}
	if wNeedy <= 0 {
		t.Errorf("unmet requirement weight = %v, want a soft penalty above zero", wNeedy)
	}
}

func TestFulfilsRequirementBonus(t *testing.T) {
	wc := NewCalculator(DefaultWeightConfig())
	provider := newCard("Provider", 3, cards.InkAmber, "Evasive")

	waiting := newCard("Waiting", 2, cards.InkAmber)
	waiting.RequiredKeywords = []string{cards.KeywordEvasive}
	withWaiting := cards.NewDeck([]cards.Ink{cards.InkAmber})
	withWaiting.Add(waiting, 2)

	content := newCard("Content", 2, cards.InkAmber)
	withContent := cards.NewDeck([]cards.Ink{cards.InkAmber})
	withContent.Add(content, 2)

	bonus := wc.Calculate(provider, withWaiting, ArchetypeDefault, DefaultMaxTries)
	base := wc.Calculate(provider, withContent, ArchetypeDefault, DefaultMaxTries)
	if bonus <= base {
		t.Errorf("satisfying a waiting card should raise weight: %v <= %v", bonus, base)
	}
}

func TestSongSynergy(t *testing.T) {
	wc := NewCalculator(DefaultWeightConfig())
	song := &cards.Card{
		ID:        "let-it-go",
		Name:      "Let It Go",
		Cost:      5,
		Inkwell:   true,
		Inks:      []cards.Ink{cards.InkAmber},
		Keywords:  cards.Keywords{},
		Types:     []cards.CardType{cards.TypeAction, cards.TypeSong},
		Legality:  cards.LegalityLegal,
		MaxCopies: cards.DefaultMaxCopies,
	}
	singer := newCard("Ariel", 3, cards.InkAmber, "Singer 5")
	mute := newCard("Maui", 3, cards.InkAmber)

	withSinger := cards.NewDeck([]cards.Ink{cards.InkAmber})
	withSinger.Add(singer, 1)
	withMute := cards.NewDeck([]cards.Ink{cards.InkAmber})
	withMute.Add(mute, 1)

	boosted := wc.Calculate(song, withSinger, ArchetypeDefault, DefaultMaxTries)
	plain := wc.Calculate(song, withMute, ArchetypeDefault, DefaultMaxTries)
	if boosted <= plain {
		t.Errorf("song with an exact singer in deck should weigh more: %v <= %v", boosted, plain)
	}
}

func TestShiftSynergy(t *testing.T) {
	wc := NewCalculator(DefaultWeightConfig())
	cfg := DefaultWeightConfig()

	shifter := newCard("Elsa", 6, cards.InkAmber, "Shift 4")
	shifter.Version = "Spirit of Winter"
	otherShifter := newCard("Maui", 7, cards.InkAmber, "Shift 5")
	cheapBase := newCard("Elsa", 3, cards.InkAmber)
	cheapBase.ID = "elsa-cheap"
	cheapBase.Version = "Snow Queen"
	expensiveBase := newCard("Elsa", 8, cards.InkAmber)
	expensiveBase.ID = "elsa-big"
	expensiveBase.Version = "Ice Maker"

	empty := cards.NewDeck([]cards.Ink{cards.InkAmber})
	if got := wc.shiftSynergy(shifter, empty); got != cfg.ShiftFirstBonus {
		t.Errorf("first shift card factor = %v, want %v", got, cfg.ShiftFirstBonus)
	}

	cheap := cards.NewDeck([]cards.Ink{cards.InkAmber})
	cheap.Add(otherShifter, 1)
	cheap.Add(cheapBase, 1)
	if got := wc.shiftSynergy(shifter, cheap); got != cfg.ShiftCheapBonus {
		t.Errorf("cheap base factor = %v, want %v", got, cfg.ShiftCheapBonus)
	}

	expensive := cards.NewDeck([]cards.Ink{cards.InkAmber})
	expensive.Add(otherShifter, 1)
	expensive.Add(expensiveBase, 1)
	if got := wc.shiftSynergy(shifter, expensive); got != cfg.ShiftExpensivePenalty {
		t.Errorf("expensive base factor = %v, want %v", got, cfg.ShiftExpensivePenalty)
	}
}

func TestStaticWeightPenalties(t *testing.T) {
	wc := NewCalculator(DefaultWeightConfig())
	deck := cards.NewDeck([]cards.Ink{cards.InkAmber})

	inkable := newCard("Inkable", 3, cards.InkAmber)
	uninkable := newCard("Uninkable", 3, cards.InkAmber)
	uninkable.Inkwell = false
	if wi, wu := wc.Calculate(inkable, deck, ArchetypeDefault, DefaultMaxTries),
		wc.Calculate(uninkable, deck, ArchetypeDefault, DefaultMaxTries); wu >= wi {
		t.Errorf("uninkable weight %v should be below inkable %v", wu, wi)
	}

	vanilla := newCard("Vanilla", 3, cards.InkAmber)
	drawer := newCard("Drawer", 3, cards.InkAmber)
	drawer.Text = "When you play this character, draw 2 cards."
	drawer.SanitizedText = cards.SanitizeText(drawer.Text)
	if wv, wd := wc.Calculate(vanilla, deck, ArchetypeDefault, DefaultMaxTries),
		wc.Calculate(drawer, deck, ArchetypeDefault, DefaultMaxTries); wd <= wv {
		t.Errorf("card drawer weight %v should exceed vanilla %v", wd, wv)
	}
}

func TestArchetypeFactor(t *testing.T) {
	wc := NewCalculator(DefaultWeightConfig())
	deck := cards.NewDeck([]cards.Ink{cards.InkAmber})

	runner := newCard("Runner", 1, cards.InkAmber)
	runner.Lore = 2
	aggro := wc.Calculate(runner, deck, ArchetypeAggro, DefaultMaxTries)
	neutral := wc.Calculate(runner, deck, ArchetypeDefault, DefaultMaxTries)
	if aggro <= neutral {
		t.Errorf("aggro should favor lore-heavy cheap cards: %v <= %v", aggro, neutral)
	}
}

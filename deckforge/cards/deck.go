package cards

// TargetDeckSize is the legal deck length.
const TargetDeckSize = 60

// Deck is an ordered multiset of card references plus the 1-2 inks it was
// built for. Order encodes display sorting only. The generator mutates a
// deck during construction; downstream consumers treat it as immutable.
type Deck struct {
	Cards []*Card
	Inks  []Ink
}

func NewDeck(inks []Ink) *Deck {
	return &Deck{Inks: inks}
}

func (d *Deck) Size() int {
	return len(d.Cards)
}

// Count returns how many copies of the given title the deck holds.
func (d *Deck) Count(title string) int {
	n := 0
	for _, c := range d.Cards {
		if c.Title() == title {
			n++
		}
	}
	return n
}

// CountAtCost returns how many deck cards have exactly the given cost.
func (d *Deck) CountAtCost(cost int) int {
	n := 0
	for _, c := range d.Cards {
		if c.Cost == cost {
			n++
		}
	}
	return n
}

// CountAtCostOrAbove returns how many deck cards cost at least the given
// amount.
func (d *Deck) CountAtCostOrAbove(cost int) int {
	n := 0
	for _, c := range d.Cards {
		if c.Cost >= cost {
			n++
		}
	}
	return n
}

func (d *Deck) Add(c *Card, copies int) {
	for i := 0; i < copies; i++ {
		d.Cards = append(d.Cards, c)
	}
}

// RemoveAll drops every copy of the given title and returns how many were
// removed.
func (d *Deck) RemoveAll(title string) int {
	kept := d.Cards[:0]
	removed := 0
	for _, c := range d.Cards {
		if c.Title() == title {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	d.Cards = kept
	return removed
}

// Distinct returns one reference per distinct title, in first-seen order.
func (d *Deck) Distinct() []*Card {
	seen := make(map[string]struct{}, len(d.Cards))
	var distinct []*Card
	for _, c := range d.Cards {
		if _, ok := seen[c.Title()]; ok {
			continue
		}
		seen[c.Title()] = struct{}{}
		distinct = append(distinct, c)
	}
	return distinct
}

// Characters returns every deck card with the Character type, duplicates
// included.
func (d *Deck) Characters() []*Card {
	var chars []*Card
	for _, c := range d.Cards {
		if c.HasType(TypeCharacter) {
			chars = append(chars, c)
		}
	}
	return chars
}

// Songs returns every deck card with the Song type, duplicates included.
func (d *Deck) Songs() []*Card {
	var songs []*Card
	for _, c := range d.Cards {
		if c.HasType(TypeSong) {
			songs = append(songs, c)
		}
	}
	return songs
}

// UsesOnly reports whether every card's ink requirements are covered by the
// given inks.
func (d *Deck) UsesOnly(inks []Ink) bool {
	for _, c := range d.Cards {
		if !InksSubset(c.Inks, inks) {
			return false
		}
	}
	return true
}

// InksSubset reports whether every ink in need is present in have.
func InksSubset(need, have []Ink) bool {
	for _, n := range need {
		found := false
		for _, h := range have {
			if n == h {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

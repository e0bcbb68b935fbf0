package cards

import (
	"strings"
)

type Ink string

const (
	InkAmber    Ink = "Amber"
	InkAmethyst Ink = "Amethyst"
	InkEmerald  Ink = "Emerald"
	InkRuby     Ink = "Ruby"
	InkSapphire Ink = "Sapphire"
	InkSteel    Ink = "Steel"
)

// AllInks lists every ink color in display order.
var AllInks = []Ink{InkAmber, InkAmethyst, InkEmerald, InkRuby, InkSapphire, InkSteel}

func ParseInk(s string) (Ink, bool) {
	for _, ink := range AllInks {
		if strings.EqualFold(s, string(ink)) {
			return ink, true
		}
	}
	return "", false
}

type CardType string

const (
	TypeCharacter CardType = "Character"
	TypeAction    CardType = "Action"
	TypeItem      CardType = "Item"
	TypeLocation  CardType = "Location"
	TypeSong      CardType = "Song"
)

type Legality string

const (
	LegalityLegal      Legality = "legal"
	LegalityBanned     Legality = "banned"
	LegalityUnreleased Legality = "unreleased"
)

const (
	// DefaultMaxCopies is the normal per-title copy cap.
	DefaultMaxCopies = 4

	// UnlimitedCopies marks the one named exception that ignores the cap.
	UnlimitedCopies = 99

	// UnlimitedCopiesName is the card that carries UnlimitedCopies even
	// when the catalog feed omits its copy limit.
	UnlimitedCopiesName = "dalmatian puppy"

	// AnyShiftTargetName is the card any Shift character may be played on
	// top of, regardless of name or cost.
	AnyShiftTargetName = "morph"
)

// Card is one catalog entry plus the dependency sets derived by the Analyzer.
// Cards are built once from catalog data and never mutated after analysis.
type Card struct {
	ID              string
	Name            string
	Version         string
	Cost            int
	Inkwell         bool
	Ink             Ink
	Inks            []Ink
	Keywords        Keywords
	Types           []CardType
	Classifications []string
	Text            string
	SanitizedText   string
	Lore            int
	Strength        int
	Willpower       int
	Legality        Legality
	MaxCopies       int
	ImageURL        string

	// Derived by Analyzer.Annotate. Things that must also be present
	// elsewhere in any deck containing this card.
	RequiredKeywords        []string
	RequiredClassifications []string
	RequiredTypes           []CardType
	RequiredNames           []string
}

// Title is the display and grouping key: name plus version when present.
func (c *Card) Title() string {
	if c.Version == "" {
		return c.Name
	}
	return c.Name + " - " + c.Version
}

func (c *Card) HasType(t CardType) bool {
	for _, ct := range c.Types {
		if ct == t {
			return true
		}
	}
	return false
}

func (c *Card) HasClassification(class string) bool {
	for _, cl := range c.Classifications {
		if strings.EqualFold(cl, class) {
			return true
		}
	}
	return false
}

// NameSegments splits dual-named cards ("Flotsam & Jetsam") into their
// individual names, lower-cased.
func (c *Card) NameSegments() []string {
	parts := strings.Split(strings.ToLower(c.Name), "&")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// SingCost is the cost at which this character sings songs: the Singer
// amount when the keyword is present, the play cost otherwise.
func (c *Card) SingCost() int {
	if amount, ok := c.Keywords.Amount(KeywordSinger); ok {
		return amount
	}
	return c.Cost
}

// IsAnyShiftTarget reports whether this is the universal shift target.
func (c *Card) IsAnyShiftTarget() bool {
	return strings.EqualFold(c.Name, AnyShiftTargetName)
}

// CanShiftFrom reports whether a character with Shift could be played on
// top of other: either other is the universal target, or the two cards
// share a name segment.
func (c *Card) CanShiftFrom(other *Card) bool {
	if other.IsAnyShiftTarget() {
		return true
	}
	for _, mine := range c.NameSegments() {
		for _, theirs := range other.NameSegments() {
			if mine == theirs {
				return true
			}
		}
	}
	return false
}

// MeetsShiftRequirements reports whether deck gives this card a legal shift
// base: trivially true without the Shift keyword, true when the universal
// target is present, and otherwise true only when a same-named card with a
// strictly lower cost is in the deck.
func (c *Card) MeetsShiftRequirements(deck []*Card) bool {
	if !c.Keywords.Has(KeywordShift) {
		return true
	}
	for _, other := range deck {
		if other == c {
			continue
		}
		if other.IsAnyShiftTarget() {
			return true
		}
		if other.Cost < c.Cost && c.CanShiftFrom(other) {
			return true
		}
	}
	return false
}

// MeetsRequirements reports whether every dependency derived for this card
// is satisfied by the rest of deck. Exactly one instance of the receiver is
// excluded: additional copies still count as part of the rest.
func (c *Card) MeetsRequirements(deck []*Card) bool {
	others := make([]*Card, 0, len(deck))
	skipped := false
	for _, other := range deck {
		if !skipped && other == c {
			skipped = true
			continue
		}
		others = append(others, other)
	}

	for _, kw := range c.RequiredKeywords {
		if !anyCard(others, func(o *Card) bool { return o.Keywords.Has(kw) }) {
			return false
		}
	}
	for _, class := range c.RequiredClassifications {
		class := class
		if !anyCard(others, func(o *Card) bool { return o.HasClassification(class) }) {
			return false
		}
	}
	for _, t := range c.RequiredTypes {
		t := t
		if !anyCard(others, func(o *Card) bool { return o.HasType(t) }) {
			return false
		}
	}
	hasShift := c.Keywords.Has(KeywordShift)
	for _, name := range c.RequiredNames {
		name := name
		satisfied := anyCard(others, func(o *Card) bool {
			// The universal shift target stands in for any name a Shift
			// card is looking for.
			if hasShift && o.IsAnyShiftTarget() {
				return true
			}
			for _, seg := range o.NameSegments() {
				if seg == name {
					return true
				}
			}
			return false
		})
		if !satisfied {
			return false
		}
	}

	return c.MeetsShiftRequirements(others)
}

func anyCard(cards []*Card, pred func(*Card) bool) bool {
	for _, c := range cards {
		if pred(c) {
			return true
		}
	}
	return false
}

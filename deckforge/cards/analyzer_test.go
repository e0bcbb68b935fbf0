package cards

import (
	"testing"
)

func analyzedCard(t *testing.T, catalog []*Card, id string) *Card {
	t.Helper()
	for _, c := range catalog {
		c.SanitizedText = SanitizeText(c.Text)
	}
	NewAnalyzer(catalog).Annotate()
	for _, c := range catalog {
		if c.ID == id {
			return c
		}
	}
	t.Fatalf("card %q not in catalog", id)
	return nil
}

func TestAnalyzerKeywordDependency(t *testing.T) {
	seeker := testCard("Magic Broom", "Bucket Brigade", 2)
	seeker.Text = "Your characters with Evasive get +1 strength."
	c := analyzedCard(t, []*Card{seeker}, seeker.ID)

	if len(c.RequiredKeywords) != 1 || c.RequiredKeywords[0] != KeywordEvasive {
		t.Errorf("RequiredKeywords = %v, want [evasive]", c.RequiredKeywords)
	}
}

func TestAnalyzerKeywordGrantIgnored(t *testing.T) {
	granter := testCard("Zeus", "God of Lightning", 4)
	granter.Text = "Chosen character gains Rush this turn."
	c := analyzedCard(t, []*Card{granter}, granter.ID)

	if len(c.RequiredKeywords) != 0 {
		t.Errorf("RequiredKeywords = %v, want none for a grant effect", c.RequiredKeywords)
	}
}

func TestAnalyzerClassificationDependency(t *testing.T) {
	puppy := testCard("Dalmatian Puppy", "Tail Wagger", 1)
	puppy.Classifications = []string{"Puppy"}
	counter := testCard("Pongo", "Determined Father", 3)
	counter.Text = "Your Puppy characters get +1 lore."
	c := analyzedCard(t, []*Card{puppy, counter}, counter.ID)

	if len(c.RequiredClassifications) != 1 || c.RequiredClassifications[0] != "puppy" {
		t.Errorf("RequiredClassifications = %v, want [puppy]", c.RequiredClassifications)
	}
}

func TestAnalyzerChallengeWordingIgnored(t *testing.T) {
	pirate := testCard("Mr. Smee", "Loyal First Mate", 2)
	pirate.Classifications = []string{"Pirate"}
	brawler := testCard("Tinker Bell", "Tiny Tactician", 3)
	brawler.Text = "Whenever this character challenges a Pirate, gain 1 lore."
	c := analyzedCard(t, []*Card{pirate, brawler}, brawler.ID)

	if len(c.RequiredClassifications) != 0 {
		t.Errorf("RequiredClassifications = %v, want none for challenge wording", c.RequiredClassifications)
	}
}

func TestAnalyzerTypeDependencies(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []CardType
	}{
		{
			name: "song reference",
			text: "Whenever you play a song, draw a card.",
			want: []CardType{TypeSong},
		},
		{
			name: "item phrase",
			text: "Banish chosen item of yours to draw 2 cards.",
			want: []CardType{TypeItem},
		},
		{
			name: "bare item word ignored",
			text: "Banish chosen item.",
			want: nil,
		},
		{
			name: "action reference",
			text: "Whenever you play an action, this character gets +1 strength.",
			want: []CardType{TypeAction},
		},
		{
			name: "character reference never required",
			text: "Chosen character gets +2 willpower.",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := testCard("Test Subject", tt.name, 3)
			card.Text = tt.text
			c := analyzedCard(t, []*Card{card}, card.ID)
			if len(c.RequiredTypes) != len(tt.want) {
				t.Fatalf("RequiredTypes = %v, want %v", c.RequiredTypes, tt.want)
			}
			for i := range tt.want {
				if c.RequiredTypes[i] != tt.want[i] {
					t.Errorf("RequiredTypes[%d] = %v, want %v", i, c.RequiredTypes[i], tt.want[i])
				}
			}
		})
	}
}

func TestAnalyzerNamedCardDependency(t *testing.T) {
	lantern := testCard("Lantern", "", 2)
	lantern.Types = []CardType{TypeItem}
	seeker := testCard("Rapunzel", "Gifted with Healing", 4)
	seeker.Text = "If you have a card named Lantern in play, this character gets +2 lore."
	c := analyzedCard(t, []*Card{lantern, seeker}, seeker.ID)

	if len(c.RequiredNames) != 1 || c.RequiredNames[0] != "lantern" {
		t.Errorf("RequiredNames = %v, want [lantern]", c.RequiredNames)
	}
}

func TestAnalyzerShiftAddsOwnName(t *testing.T) {
	shifter := testCard("Elsa", "Spirit of Winter", 6, "Shift 4")
	base := testCard("Elsa", "Snow Queen", 4)
	c := analyzedCard(t, []*Card{shifter, base}, shifter.ID)

	found := false
	for _, name := range c.RequiredNames {
		if name == "elsa" {
			found = true
		}
	}
	if !found {
		t.Errorf("RequiredNames = %v, want to contain elsa", c.RequiredNames)
	}
}

func TestAnalyzerIdempotent(t *testing.T) {
	seeker := testCard("Magic Broom", "Bucket Brigade", 2)
	seeker.Text = "Your characters with Evasive get +1 strength."
	seeker.SanitizedText = SanitizeText(seeker.Text)

	a := NewAnalyzer([]*Card{seeker})
	a.Annotate()
	first := len(seeker.RequiredKeywords)
	a.Annotate()
	if len(seeker.RequiredKeywords) != first {
		t.Errorf("second Annotate changed RequiredKeywords: %v", seeker.RequiredKeywords)
	}
}

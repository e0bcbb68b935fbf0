package generator

import (
	"testing"

	"github.com/inklore/deckforge/deckforge/cards"
)

func TestParseArchetype(t *testing.T) {
	tests := []struct {
		in   string
		want Archetype
	}{
		{"aggro", ArchetypeAggro},
		{"default", ArchetypeDefault},
		{"", ArchetypeDefault},
		{"midrange", ArchetypeDefault},
	}
	for _, tt := range tests {
		if got := ParseArchetype(tt.in); got != tt.want {
			t.Errorf("ParseArchetype(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCurveTargetsSumToDeckSize(t *testing.T) {
	for _, a := range []Archetype{ArchetypeDefault, ArchetypeAggro} {
		sum := 0
		for _, n := range a.CurveTargets() {
			sum += n
		}
		if sum != cards.TargetDeckSize {
			t.Errorf("%s curve targets sum to %d, want %d", a, sum, cards.TargetDeckSize)
		}
	}
}

func TestBucketFor(t *testing.T) {
	tests := []struct {
		cost int
		want int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 2},
		{4, 3},
		{5, 4},
		{9, 4},
	}
	for _, tt := range tests {
		if got := bucketFor(tt.cost); got != tt.want {
			t.Errorf("bucketFor(%d) = %d, want %d", tt.cost, got, tt.want)
		}
	}
}

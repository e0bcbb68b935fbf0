package generator

// Archetype is a named weighting profile. It biases the cost-curve targets
// and a few effect bonuses but never changes deck legality rules.
type Archetype string

const (
	ArchetypeDefault Archetype = "default"
	ArchetypeAggro   Archetype = "aggro"
)

func ParseArchetype(s string) Archetype {
	switch Archetype(s) {
	case ArchetypeAggro:
		return ArchetypeAggro
	default:
		return ArchetypeDefault
	}
}

// CurveTargets holds the target card count per cost bucket. Index 0 is the
// bucket for cost <= 1, indexes 1-3 cover costs 2-4, and index 4 aggregates
// cost >= 5. Targets sum to the deck size.
type CurveTargets [5]int

func (a Archetype) CurveTargets() CurveTargets {
	switch a {
	case ArchetypeAggro:
		return CurveTargets{12, 16, 14, 8, 10}
	default:
		return CurveTargets{8, 14, 12, 10, 16}
	}
}

// bucketCost is the minimum cost of the aggregate top bucket.
const bucketTopCost = 5

// bucketFor maps a card cost to its curve bucket index.
func bucketFor(cost int) int {
	switch {
	case cost <= 1:
		return 0
	case cost >= bucketTopCost:
		return 4
	default:
		return cost - 1
	}
}

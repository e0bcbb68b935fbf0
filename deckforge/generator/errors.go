package generator

import (
	"fmt"

	"github.com/inklore/deckforge/deckforge/cards"
)

// EmptyInkPoolError reports that no catalog card matches the requested
// inks. Generation returns an empty deck alongside it; callers usually
// retry with different inks.
type EmptyInkPoolError struct {
	Inks []cards.Ink
}

func (e *EmptyInkPoolError) Error() string {
	return fmt.Sprintf("no legal cards available for inks %v", e.Inks)
}

// NoPickableCandidateError reports that every candidate in a sampling round
// weighed in at zero, even after widening past the cost bucket. The partial
// deck built so far accompanies it.
type NoPickableCandidateError struct {
	Bucket int
}

func (e *NoPickableCandidateError) Error() string {
	return fmt.Sprintf("no pickable candidate in cost bucket %d or the widened pool", e.Bucket)
}

// RetryBudgetExhaustedError reports that the generate/repair loop consumed
// its full retry budget without reaching a legal deck. The best-effort deck
// is still returned and must not be mistaken for success.
type RetryBudgetExhaustedError struct {
	Tries    int
	DeckSize int
}

func (e *RetryBudgetExhaustedError) Error() string {
	return fmt.Sprintf("deck incomplete after %d attempts (%d cards)", e.Tries, e.DeckSize)
}

package generator

import "math/rand"

// sampleByWeight returns the index selected by cumulative-sum sampling.
// r must lie in [0, total) where total is the sum of weights; the strict
// comparison guarantees the scan terminates and the last candidate stays
// reachable even under float rounding.
func sampleByWeight(weights []float64, r float64) int {
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// copyLadder is the probability ladder for how many copies to append in one
// sampling step. One copy is the common case; four is rare.
var copyLadder = []float64{0.4, 0.3, 0.2, 0.1}

// rollCopyCount draws a copy count from the ladder, re-rolling until the
// result fits within max.
func rollCopyCount(rng *rand.Rand, max int) int {
	if max <= 1 {
		return max
	}
	for {
		n := sampleByWeight(copyLadder, rng.Float64()) + 1
		if n <= max {
			return n
		}
	}
}

// Package ordering computes fractional position keys for kanban columns and
// cards. Positions are opaque floats; only their relative order matters.
// Inserting or moving an item costs O(1) because neighbours are bisected
// instead of renumbering the whole sibling set.
package ordering

// Gap is the base increment used when appending to an empty or end-of-sequence
// collection.
const Gap = 65536.0

// MinGap is the smallest adjacent distance a collection may reach before the
// rebalancer should renumber it. Repeated bisection between two fixed
// neighbours halves the gap each time, so this bounds float precision decay.
const MinGap = 1e-6

// Append returns the position for an item added to the end of a sibling set.
// positions need not be sorted; an empty set yields Gap.
func Append(positions []float64) float64 {
	if len(positions) == 0 {
		return Gap
	}
	max := positions[0]
	for _, p := range positions[1:] {
		if p > max {
			max = p
		}
	}
	return max + Gap
}

// AtIndex returns the position for an item placed at index among siblings.
// siblings must be sorted ascending and must not contain the item being
// placed. Indexes at or past the end append, index 0 halves the current
// minimum, and interior indexes bisect the two neighbours.
func AtIndex(siblings []float64, index int) float64 {
	if len(siblings) == 0 {
		return Gap
	}
	if index <= 0 {
		return siblings[0] / 2
	}
	if index >= len(siblings) {
		return siblings[len(siblings)-1] + Gap
	}
	return (siblings[index-1] + siblings[index]) / 2
}

// NeedsRebalance reports whether any adjacent pair in a sorted sibling set is
// closer than MinGap, or whether the minimum has been halved into the
// sub-MinGap range. Collections that trip this should be renumbered with
// Renumber.
func NeedsRebalance(sorted []float64) bool {
	if len(sorted) == 0 {
		return false
	}
	if sorted[0] < MinGap && sorted[0] != 0 {
		return true
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i]-sorted[i-1] < MinGap {
			return true
		}
	}
	return false
}

// Renumber assigns fresh integer ranks spaced by Gap, preserving the current
// order. The result has the same length as the input.
func Renumber(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i+1) * Gap
	}
	return out
}

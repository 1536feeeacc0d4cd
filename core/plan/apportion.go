package plan

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// apportion distributes total whole tokens across weights using the
// largest-remainder method: floor shares first, then one extra token per
// largest fractional remainder until the budget is met. The result always
// sums to total. A non-positive weight sum falls back to an even split.
// Ties on the remainder keep input order.
func apportion(weights []float64, total int) []int {
	out := make([]int, len(weights))
	if total <= 0 || len(weights) == 0 {
		return out
	}

	w := make([]float64, len(weights))
	for i, v := range weights {
		if v > 0 {
			w[i] = v
		}
	}

	raw := make([]float64, len(w))
	if sum := floats.Sum(w); sum > 0 {
		for i, v := range w {
			raw[i] = v / sum * float64(total)
		}
	} else {
		even := float64(total) / float64(len(w))
		for i := range raw {
			raw[i] = even
		}
	}

	assigned := 0
	rem := make([]float64, len(raw))
	for i, v := range raw {
		base := int(math.Floor(v))
		out[i] = base
		rem[i] = v - float64(base)
		assigned += base
	}

	idx := make([]int, len(raw))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return rem[idx[a]] > rem[idx[b]] })
	for k := 0; k < total-assigned && k < len(idx); k++ {
		out[idx[k]]++
	}
	return out
}

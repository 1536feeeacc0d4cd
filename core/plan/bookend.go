package plan

import (
	"fmt"

	"github.com/podiumhq/podium/core/model"
)

// CoverageBookendAllocator fills the first and last rehearsals to exact
// token capacity. When a bookend can seat every work it hands each one a
// baseline token; when only the pair together can, uncovered works are
// walked in input order and seated on whichever bookend has more tokens
// left. Leftover tokens are apportioned per bookend by work weight.
type CoverageBookendAllocator struct{}

// Allocate implements BookendAllocator.
func (CoverageBookendAllocator) Allocate(works []model.Work, firstTokens, lastTokens int) ([]int, []int, error) {
	n := len(works)
	first := make([]int, n)
	last := make([]int, n)
	if n == 0 {
		return first, last, nil
	}

	if firstTokens >= n {
		for i := range first {
			first[i] = 1
		}
	}
	if lastTokens >= n {
		for i := range last {
			last[i] = 1
		}
	}

	// Cross-bookend baseline when neither side can cover everyone alone.
	if (firstTokens < n || lastTokens < n) && firstTokens+lastTokens >= n {
		fRem := firstTokens - sumInts(first)
		lRem := lastTokens - sumInts(last)
		for i := range works {
			if first[i]+last[i] >= 1 {
				continue
			}
			if fRem <= 0 && lRem <= 0 {
				break
			}
			if fRem >= lRem && fRem > 0 {
				first[i]++
				fRem--
			} else {
				last[i]++
				lRem--
			}
		}
	}

	weights := make([]float64, n)
	for i, w := range works {
		weights[i] = w.Weight()
	}

	for i, extra := range apportion(weights, firstTokens-sumInts(first)) {
		first[i] += extra
	}
	for i, extra := range apportion(weights, lastTokens-sumInts(last)) {
		last[i] += extra
	}

	if got := sumInts(first); got != firstTokens {
		return nil, nil, fmt.Errorf("plan: first bookend allocated %d tokens, capacity %d", got, firstTokens)
	}
	if got := sumInts(last); got != lastTokens {
		return nil, nil, fmt.Errorf("plan: last bookend allocated %d tokens, capacity %d", got, lastTokens)
	}
	return first, last, nil
}

func sumInts(xs []int) int {
	total := 0
	for _, x := range xs {
		total += x
	}
	return total
}

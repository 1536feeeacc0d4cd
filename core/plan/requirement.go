package plan

import "github.com/podiumhq/podium/core/model"

// ProportionalRequirements apportions the token budget across works
// weighted by duration times difficulty.
type ProportionalRequirements struct{}

// Compute implements RequirementComputer. The returned tokens sum exactly
// to totalTokens; works with zero weight still participate through the
// even-split fallback when every weight is zero.
func (ProportionalRequirements) Compute(works []model.Work, totalTokens int) []int {
	weights := make([]float64, len(works))
	for i, w := range works {
		weights[i] = w.Weight()
	}
	return apportion(weights, totalTokens)
}

package plan

import (
	"errors"

	"github.com/podiumhq/podium/core/model"
)

// DefaultGranularity is the token size in minutes when none is configured.
const DefaultGranularity = 5

// ErrInsufficientInput marks caller configuration errors that abort the
// run: no works, fewer than two rehearsals, or zero snapped capacity.
var ErrInsufficientInput = errors.New("plan: insufficient input")

// RequirementComputer converts work weights into per-work token targets
// that sum exactly to the total token budget.
type RequirementComputer interface {
	Compute(works []model.Work, totalTokens int) []int
}

// BookendAllocator fills the first and last rehearsals to exact token
// capacity while maximising coverage across the pair.
type BookendAllocator interface {
	Allocate(works []model.Work, firstTokens, lastTokens int) (first, last []int, err error)
}

// MiddleRequest carries the inputs for middle-rehearsal allocation.
type MiddleRequest struct {
	Works   []model.Work
	Middles []model.Rehearsal
	// RemainingTokens is the per-work requirement left after bookends.
	RemainingTokens []int
	// RequiredTokens is the original per-work requirement, used to size
	// the flexible overfill allowance.
	RequiredTokens []int
	Granularity    int
}

// MiddleResult is the token grid produced for the middle rehearsals,
// indexed [work][middle position], plus non-fatal warnings.
type MiddleResult struct {
	Tokens   [][]int
	Warnings []string
}

// MiddleAllocator fills all middle rehearsals from the remaining
// requirements.
type MiddleAllocator interface {
	Allocate(req MiddleRequest) (MiddleResult, error)
}

// Allocation is the completed required-minutes vector and allocation
// matrix for one run. Titles and Sequences preserve the deterministic
// iteration order; the maps are keyed by title and sequence number.
type Allocation struct {
	RunID       string
	Granularity int

	Titles    []string
	Sequences []int

	Required map[string]int
	Matrix   map[string]map[int]int
	Capacity map[int]int

	Warnings []string
}

// Minutes returns the allocated minutes for a work on a rehearsal.
func (a Allocation) Minutes(title string, seq int) int {
	return a.Matrix[title][seq]
}

// WorkTotal returns the scheduled minutes for a work across all rehearsals.
func (a Allocation) WorkTotal(title string) int {
	total := 0
	for _, seq := range a.Sequences {
		total += a.Matrix[title][seq]
	}
	return total
}

// RehearsalTotal returns the scheduled minutes on a rehearsal across all
// works.
func (a Allocation) RehearsalTotal(seq int) int {
	total := 0
	for _, t := range a.Titles {
		total += a.Matrix[t][seq]
	}
	return total
}

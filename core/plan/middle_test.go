package plan

import (
	"strings"
	"testing"

	"github.com/podiumhq/podium/core/model"
)

func TestMiddleCoveragePlacesSpecialistWork(t *testing.T) {
	works := []model.Work{
		{Title: "Drums", DurationMin: 20, Difficulty: 1, Instr: model.Instrumentation{Percussion: 2}},
		{Title: "Tune", DurationMin: 20, Difficulty: 1},
	}
	mids := []model.Rehearsal{
		{Sequence: 2, DurationMin: 30},
		{Sequence: 3, DurationMin: 30, Available: model.Availability{Percussion: true}},
	}

	res, err := NewSpreadMiddleAllocator().Allocate(MiddleRequest{
		Works:           works,
		Middles:         mids,
		RemainingTokens: []int{2, 2},
		RequiredTokens:  []int{2, 2},
		Granularity:     10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Tokens[0][1] < 1 {
		t.Fatalf("percussion work never meets the percussion session: %v", res.Tokens)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
}

func TestMiddleDisplacementFreesSpecialistNight(t *testing.T) {
	// One token of shared capacity on the only piano night; the percussion
	// work seated there first must make room.
	works := []model.Work{
		{Title: "Drums", DurationMin: 10, Difficulty: 1, Instr: model.Instrumentation{Percussion: 2}},
		{Title: "Keys", DurationMin: 10, Difficulty: 1, Instr: model.Instrumentation{Piano: 1}},
	}
	mids := []model.Rehearsal{
		{Sequence: 2, DurationMin: 10, Available: model.Availability{Percussion: true, Piano: true}},
		{Sequence: 3, DurationMin: 30},
	}

	res, err := NewSpreadMiddleAllocator().Allocate(MiddleRequest{
		Works:           works,
		Middles:         mids,
		RemainingTokens: []int{1, 1},
		RequiredTokens:  []int{1, 1},
		Granularity:     10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Tokens[1][0] < 1 {
		t.Fatalf("piano work missed the only piano session: %v", res.Tokens)
	}
	if res.Tokens[0][0] != 0 || res.Tokens[0][1] != 1 {
		t.Fatalf("displaced work should move to the spare session: %v", res.Tokens)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
}

func TestMiddleCoverageWarningWhenNightFull(t *testing.T) {
	works := []model.Work{
		{Title: "Drums", DurationMin: 10, Difficulty: 1, Instr: model.Instrumentation{Percussion: 2}},
		{Title: "Cymbals", DurationMin: 10, Difficulty: 1, Instr: model.Instrumentation{Percussion: 1}},
	}
	mids := []model.Rehearsal{
		{Sequence: 2, DurationMin: 10, Available: model.Availability{Percussion: true}},
	}

	res, err := NewSpreadMiddleAllocator().Allocate(MiddleRequest{
		Works:           works,
		Middles:         mids,
		RemainingTokens: []int{1, 1},
		RequiredTokens:  []int{1, 1},
		Granularity:     10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "Cymbals") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a coverage warning for the crowded-out work, got %v", res.Warnings)
	}
}

func TestMiddleNeverOverdrawsCapacity(t *testing.T) {
	works := []model.Work{
		{Title: "A", DurationMin: 40, Difficulty: 2},
		{Title: "B", DurationMin: 20, Difficulty: 1, Instr: model.Instrumentation{Harp: 1}},
		{Title: "C", DurationMin: 10, Difficulty: 1},
	}
	mids := []model.Rehearsal{
		{Sequence: 2, DurationMin: 45, Available: model.Availability{Harp: true}},
		{Sequence: 3, DurationMin: 60},
		{Sequence: 4, DurationMin: 30},
	}
	g := 10

	res, err := NewSpreadMiddleAllocator().Allocate(MiddleRequest{
		Works:           works,
		Middles:         mids,
		RemainingTokens: []int{6, 3, 2},
		RequiredTokens:  []int{8, 4, 2},
		Granularity:     g,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for j, r := range mids {
		col := 0
		for i := range works {
			col += res.Tokens[i][j]
		}
		if col > r.Tokens(g) {
			t.Fatalf("rehearsal %d overdrawn: %d tokens of %d", r.Sequence, col, r.Tokens(g))
		}
	}
}

func TestMiddleFlexStaysWithinAllowance(t *testing.T) {
	// Plenty of spare capacity: the fill may exceed the requirement only by
	// the allowance share.
	works := []model.Work{{Title: "A", DurationMin: 20, Difficulty: 1}}
	mids := []model.Rehearsal{
		{Sequence: 2, DurationMin: 100},
		{Sequence: 3, DurationMin: 100},
	}

	alloc := NewSpreadMiddleAllocator()
	res, err := alloc.Allocate(MiddleRequest{
		Works:           works,
		Middles:         mids,
		RemainingTokens: []int{4},
		RequiredTokens:  []int{10},
		Granularity:     10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	total := res.Tokens[0][0] + res.Tokens[0][1]
	if total > 4+1 {
		t.Fatalf("flex fill exceeded allowance: %d tokens placed for 4 remaining", total)
	}
}

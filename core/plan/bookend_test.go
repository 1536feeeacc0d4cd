package plan

import (
	"testing"

	"github.com/podiumhq/podium/core/model"
)

func bookendWorks() []model.Work {
	return []model.Work{
		{Title: "A", DurationMin: 20, Difficulty: 1},
		{Title: "B", DurationMin: 10, Difficulty: 1},
	}
}

func TestBookendBaselineBothSides(t *testing.T) {
	first, last, err := CoverageBookendAllocator{}.Allocate(bookendWorks(), 4, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range first {
		if first[i] < 1 || last[i] < 1 {
			t.Fatalf("work %d missing baseline: first=%v last=%v", i, first, last)
		}
	}
	if sumInts(first) != 4 || sumInts(last) != 3 {
		t.Fatalf("bookends not filled exactly: first=%v last=%v", first, last)
	}
}

func TestBookendCrossCoverage(t *testing.T) {
	// Neither side seats both works alone; together they must.
	first, last, err := CoverageBookendAllocator{}.Allocate(bookendWorks(), 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range first {
		if first[i]+last[i] != 1 {
			t.Fatalf("work %d not covered exactly once across bookends: first=%v last=%v", i, first, last)
		}
	}
}

func TestBookendLeftoverFollowsWeight(t *testing.T) {
	first, last, err := CoverageBookendAllocator{}.Allocate(bookendWorks(), 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first[0] != 1 || first[1] != 1 {
		t.Fatalf("first = %v, want a baseline token each", first)
	}
	if last[0] != 1 || last[1] != 0 {
		t.Fatalf("last = %v, want the heavier work to take the single token", last)
	}
}

func TestBookendExactCapacity(t *testing.T) {
	works := []model.Work{
		{Title: "A", DurationMin: 25, Difficulty: 2},
		{Title: "B", DurationMin: 10, Difficulty: 1},
		{Title: "C", DurationMin: 15, Difficulty: 1.2},
	}
	for _, tc := range [][2]int{{3, 3}, {5, 4}, {10, 3}, {2, 1}} {
		first, last, err := CoverageBookendAllocator{}.Allocate(works, tc[0], tc[1])
		if err != nil {
			t.Fatalf("capacity %v: %v", tc, err)
		}
		if sumInts(first) != tc[0] || sumInts(last) != tc[1] {
			t.Fatalf("capacity %v: first=%v last=%v", tc, first, last)
		}
	}
}

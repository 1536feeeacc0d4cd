package programme

import (
	"testing"
	"time"

	"github.com/podiumhq/podium/core/model"
)

func TestChooseBreakOffsetMidpoint(t *testing.T) {
	if got := chooseBreakOffset([]int{30, 30, 30, 30}); got != 60 {
		t.Fatalf("offset = %d, want 60", got)
	}
	if got := chooseBreakOffset([]int{50, 10, 60}); got != 60 {
		t.Fatalf("offset = %d, want 60", got)
	}
}

func TestChooseBreakOffsetTiePrefersLongerFirstHalf(t *testing.T) {
	// Boundaries at 20 and 40 for 60 total are equally distant from the
	// midpoint; the later one wins.
	if got := chooseBreakOffset([]int{20, 20, 20}); got != 40 {
		t.Fatalf("offset = %d, want the later boundary 40", got)
	}
}

func TestChooseBreakOffsetTooFewItems(t *testing.T) {
	if got := chooseBreakOffset([]int{45}); got != 0 {
		t.Fatalf("offset = %d, want 0 for a single item", got)
	}
	if got := chooseBreakOffset(nil); got != 0 {
		t.Fatalf("offset = %d, want 0 for no items", got)
	}
}

func TestBuildTimelineInsertsBreak(t *testing.T) {
	r := model.Rehearsal{
		Sequence:    1,
		Date:        time.Date(2026, time.October, 6, 0, 0, 0, 0, time.UTC),
		StartMin:    19 * 60,
		DurationMin: 135,
		BreakMin:    15,
	}
	entries := []Entry{
		{Sequence: 1, Title: "First", Minutes: 60},
		{Sequence: 1, Title: "Second", Minutes: 60},
	}
	items := BuildTimeline(entries, []model.Rehearsal{r})
	if len(items) != 3 {
		t.Fatalf("item count = %d, want 3 with the break", len(items))
	}
	if !items[1].IsBreak || items[1].Minutes != 15 {
		t.Fatalf("middle item should be the break: %+v", items[1])
	}

	wantBreak := time.Date(2026, time.October, 6, 20, 0, 0, 0, time.UTC)
	if !items[1].Start.Equal(wantBreak) {
		t.Fatalf("break start = %v, want %v", items[1].Start, wantBreak)
	}
	if !items[2].Start.Equal(wantBreak.Add(15 * time.Minute)) {
		t.Fatalf("second half not shifted by the break: %v", items[2].Start)
	}
	if !items[2].End.Equal(items[2].Start.Add(60 * time.Minute)) {
		t.Fatalf("slot end mismatch: %+v", items[2])
	}
}

func TestBuildTimelineNoBreakForSingleItem(t *testing.T) {
	r := model.Rehearsal{Sequence: 1, StartMin: 10 * 60, DurationMin: 60, BreakMin: 15}
	items := BuildTimeline([]Entry{{Sequence: 1, Title: "Only", Minutes: 60}}, []model.Rehearsal{r})
	if len(items) != 1 {
		t.Fatalf("item count = %d, want 1 with no break", len(items))
	}
	if items[0].IsBreak {
		t.Fatalf("single item must not be a break")
	}
}

func TestBuildTimelineNoBreakWhenNoneScheduled(t *testing.T) {
	r := model.Rehearsal{Sequence: 1, StartMin: 10 * 60, DurationMin: 60}
	entries := []Entry{
		{Sequence: 1, Title: "First", Minutes: 30},
		{Sequence: 1, Title: "Second", Minutes: 30},
	}
	items := BuildTimeline(entries, []model.Rehearsal{r})
	for _, it := range items {
		if it.IsBreak {
			t.Fatalf("no break configured, got %+v", it)
		}
	}
	if !items[1].Start.Equal(items[0].End) {
		t.Fatalf("items should run back to back: %+v", items)
	}
}

func TestBuildTimelineMultipleRehearsals(t *testing.T) {
	rehearsals := []model.Rehearsal{
		{Sequence: 1, StartMin: 19 * 60, DurationMin: 60},
		{Sequence: 2, StartMin: 19 * 60, DurationMin: 60},
	}
	entries := []Entry{
		{Sequence: 1, Title: "A", Minutes: 60},
		{Sequence: 2, Title: "B", Minutes: 30},
		{Sequence: 2, Title: "C", Minutes: 30},
	}
	items := BuildTimeline(entries, rehearsals)
	if len(items) != 3 {
		t.Fatalf("item count = %d, want 3", len(items))
	}
	if items[1].Sequence != 2 || items[2].Sequence != 2 {
		t.Fatalf("rehearsal grouping broken: %+v", items)
	}
}

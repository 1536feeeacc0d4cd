package programme

import (
	"time"

	"github.com/podiumhq/podium/core/model"
)

// Item is one row of the timed running order: either a work slot or the
// interval break.
type Item struct {
	Sequence int
	Title    string
	Start    time.Time
	End      time.Time
	Minutes  int
	IsBreak  bool
}

// chooseBreakOffset picks the internal boundary (cumulative minutes after
// some item) closest to the midpoint of the played minutes. Ties favour
// the later boundary, so the first half runs longer. Returns 0 when no
// internal boundary exists.
func chooseBreakOffset(minutes []int) int {
	if len(minutes) < 2 {
		return 0
	}
	total := 0
	for _, m := range minutes {
		total += m
	}

	best, bestDiff := 0, -1
	elapsed := 0
	for i := 0; i < len(minutes)-1; i++ {
		elapsed += minutes[i]
		diff := 2*elapsed - total
		if diff < 0 {
			diff = -diff
		}
		half := 2*elapsed >= total
		switch {
		case bestDiff < 0 || diff < bestDiff:
			best, bestDiff = elapsed, diff
		case diff == bestDiff && half && elapsed > best:
			best = elapsed
		}
	}
	return best
}

// BuildTimeline converts the ordered programme into timed items. Each
// rehearsal's items run back to back from the session start; when the
// rehearsal carries a break it is inserted at the chosen boundary and
// everything after shifts by the break length.
func BuildTimeline(entries []Entry, rehearsals []model.Rehearsal) []Item {
	bySeq := make(map[int]model.Rehearsal, len(rehearsals))
	for _, r := range rehearsals {
		bySeq[r.Sequence] = r
	}

	var out []Item
	for start := 0; start < len(entries); {
		end := start
		for end < len(entries) && entries[end].Sequence == entries[start].Sequence {
			end++
		}
		out = append(out, rehearsalTimeline(entries[start:end], bySeq[entries[start].Sequence])...)
		start = end
	}
	return out
}

func rehearsalTimeline(entries []Entry, r model.Rehearsal) []Item {
	minutes := make([]int, len(entries))
	for i, e := range entries {
		minutes[i] = e.Minutes
	}

	offset := 0
	if r.BreakMin > 0 {
		offset = chooseBreakOffset(minutes)
	}

	clock := r.Start()
	elapsed := 0
	items := make([]Item, 0, len(entries)+1)
	for _, e := range entries {
		if offset > 0 && elapsed == offset {
			brkEnd := clock.Add(time.Duration(r.BreakMin) * time.Minute)
			items = append(items, Item{
				Sequence: r.Sequence,
				Title:    "Break",
				Start:    clock,
				End:      brkEnd,
				Minutes:  r.BreakMin,
				IsBreak:  true,
			})
			clock = brkEnd
		}
		slotEnd := clock.Add(time.Duration(e.Minutes) * time.Minute)
		items = append(items, Item{
			Sequence: r.Sequence,
			Title:    e.Title,
			Start:    clock,
			End:      slotEnd,
			Minutes:  e.Minutes,
		})
		clock = slotEnd
		elapsed += e.Minutes
	}
	return items
}

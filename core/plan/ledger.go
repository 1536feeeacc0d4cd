package plan

import "github.com/podiumhq/podium/core/model"

// capacityLedger owns the remaining token counters for the middle
// rehearsals. A single ledger is threaded through all three allocation
// passes so tokens moved during coverage displacement stay visible to the
// spreading and flex passes. Indexed by middle rehearsal position.
type capacityLedger struct {
	remaining []int
}

func newCapacityLedger(mids []model.Rehearsal, g int) *capacityLedger {
	l := &capacityLedger{remaining: make([]int, len(mids))}
	for i, r := range mids {
		l.remaining[i] = r.Tokens(g)
	}
	return l
}

// Remaining returns the free tokens on the rehearsal at position i.
func (l *capacityLedger) Remaining(i int) int {
	return l.remaining[i]
}

// Take reserves n tokens on position i. The caller checks capacity first.
func (l *capacityLedger) Take(i, n int) {
	l.remaining[i] -= n
}

// Give returns n tokens to position i.
func (l *capacityLedger) Give(i, n int) {
	l.remaining[i] += n
}

// Total returns the free tokens across all positions.
func (l *capacityLedger) Total() int {
	total := 0
	for _, n := range l.remaining {
		if n > 0 {
			total += n
		}
	}
	return total
}

// MostSpare returns the position with the most free tokens and that count,
// or (-1, 0) when every position is exhausted. Ties keep the earliest
// position.
func (l *capacityLedger) MostSpare() (int, int) {
	best, bestCap := -1, 0
	for i, n := range l.remaining {
		if n > bestCap {
			best, bestCap = i, n
		}
	}
	return best, bestCap
}

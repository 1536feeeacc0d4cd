package model

import (
	"fmt"
	"time"
)

// Rehearsal is a single session with a fixed working capacity. Immutable
// after load. DurationMin is the gross session length; the break comes out
// of it before any capacity is derived.
type Rehearsal struct {
	Sequence    int
	Date        time.Time
	StartMin    int // minutes since midnight
	DurationMin int
	BreakMin    int

	Available Availability
}

// WorkingMinutes returns the playable minutes: duration minus break,
// clipped at zero.
func (r Rehearsal) WorkingMinutes() int {
	work := r.DurationMin - r.BreakMin
	if work < 0 {
		return 0
	}
	return work
}

// Tokens returns the session capacity in whole granularity tokens.
func (r Rehearsal) Tokens(g int) int {
	if g <= 0 {
		return 0
	}
	return r.WorkingMinutes() / g
}

// SnappedCapacity returns the working time floored to a multiple of g
// minutes.
func (r Rehearsal) SnappedCapacity(g int) int {
	return r.Tokens(g) * g
}

// Remainder returns the sub-granularity sliver that can never be scheduled.
func (r Rehearsal) Remainder(g int) int {
	return r.WorkingMinutes() - r.SnappedCapacity(g)
}

// Start combines the rehearsal date and start-of-day offset into an
// absolute time.
func (r Rehearsal) Start() time.Time {
	d := r.Date
	if d.IsZero() {
		d = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location()).
		Add(time.Duration(r.StartMin) * time.Minute)
}

// Validate checks that the rehearsal record is usable.
func (r Rehearsal) Validate() error {
	if r.Sequence <= 0 {
		return fmt.Errorf("rehearsal sequence must be positive, got %d", r.Sequence)
	}
	if r.DurationMin < 0 {
		return fmt.Errorf("rehearsal %d: duration must not be negative", r.Sequence)
	}
	if r.BreakMin < 0 {
		return fmt.Errorf("rehearsal %d: break must not be negative", r.Sequence)
	}
	if r.StartMin < 0 || r.StartMin >= 24*60 {
		return fmt.Errorf("rehearsal %d: start time out of range", r.Sequence)
	}
	return nil
}

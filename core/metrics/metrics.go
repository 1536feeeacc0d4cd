package metrics

import "time"

// PlanRunEvent summarises one full allocation run for observability.
type PlanRunEvent struct {
	RunID       string
	Granularity int
	Works       int
	Rehearsals  int
	Warnings    int
	TotalMin    int // total snapped capacity apportioned
	Elapsed     time.Duration
	Time        time.Time
}

// RehearsalFill is a per-rehearsal utilisation snapshot after allocation.
type RehearsalFill struct {
	RunID       string
	Sequence    int
	CapacityMin int
	UsedMin     int
	Time        time.Time
}

// Ratio returns the fraction of the snapped capacity actually scheduled.
func (f RehearsalFill) Ratio() float64 {
	if f.CapacityMin <= 0 {
		return 0
	}
	return float64(f.UsedMin) / float64(f.CapacityMin)
}

// MetricsSink records plan runs for observability purposes.
type MetricsSink interface {
	RecordPlanRun(ev PlanRunEvent) error
}

// RehearsalFillRecorder records per-rehearsal utilisation. Sinks implement
// it optionally.
type RehearsalFillRecorder interface {
	RecordRehearsalFill(fills []RehearsalFill) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordPlanRun(PlanRunEvent) error { return nil }

func (NopSink) RecordRehearsalFill([]RehearsalFill) error { return nil }

package metrics

import coremetrics "github.com/podiumhq/podium/core/metrics"

// MultiSink fans planning events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPlanRun forwards the run to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordPlanRun(ev coremetrics.PlanRunEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordPlanRun(ev); err != nil {
			return err
		}
	}
	return nil
}

// RecordRehearsalFill forwards fill events when supported by the sink.
func (m *MultiSink) RecordRehearsalFill(fills []coremetrics.RehearsalFill) error {
	for _, s := range m.Sinks {
		if rec, ok := s.(coremetrics.RehearsalFillRecorder); ok {
			if err := rec.RecordRehearsalFill(fills); err != nil {
				return err
			}
		}
	}
	return nil
}

package metrics

import (
	coremetrics "github.com/podiumhq/podium/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records planning runs in Prometheus metrics.
type PromSink struct {
	runs     prometheus.Counter
	warnings prometheus.Counter
	elapsed  prometheus.Histogram
	fill     prometheus.Histogram
}

// NewPromSink registers planning metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "plan_runs_total",
		Help: "Total number of completed planning runs",
	})
	warnings := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "plan_warnings_total",
		Help: "Total number of warnings emitted by planning runs",
	})
	elapsed := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "plan_run_duration_seconds",
		Help:    "Wall time of a planning run",
		Buckets: prometheus.DefBuckets,
	})
	fill := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "plan_rehearsal_fill_ratio",
		Help:    "Scheduled minutes over snapped capacity per rehearsal",
		Buckets: prometheus.LinearBuckets(0, 0.1, 12),
	})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(warnings); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			warnings = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(elapsed); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			elapsed = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(fill); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			fill = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{runs: runs, warnings: warnings, elapsed: elapsed, fill: fill}, nil
}

// RecordPlanRun counts the run and its warnings and observes the run time.
func (s *PromSink) RecordPlanRun(ev coremetrics.PlanRunEvent) error {
	s.runs.Inc()
	s.warnings.Add(float64(ev.Warnings))
	s.elapsed.Observe(ev.Elapsed.Seconds())
	return nil
}

// RecordRehearsalFill observes the fill ratio of each rehearsal.
func (s *PromSink) RecordRehearsalFill(fills []coremetrics.RehearsalFill) error {
	for _, f := range fills {
		s.fill.Observe(f.Ratio())
	}
	return nil
}

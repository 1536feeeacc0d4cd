package app

import (
	"context"
	"fmt"
	"io"

	"github.com/podiumhq/podium/config"
	coremetrics "github.com/podiumhq/podium/core/metrics"
	"github.com/podiumhq/podium/core/pipeline"
	"github.com/podiumhq/podium/infra/logger"
	"github.com/podiumhq/podium/infra/metrics"
	"github.com/podiumhq/podium/internal/eventbus"
	"github.com/podiumhq/podium/pkg/export"
)

// Service wires the planning pipeline to its sinks and runs it over a
// season file.
type Service struct {
	pipeline    *pipeline.Pipeline
	bus         *eventbus.Bus
	log         logger.Logger
	promEnabled bool
	promPort    string
	influx      *metrics.InfluxSink
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logger.SetLevel(cfg.Logging.Level)
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	var influx *metrics.InfluxSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		if is, ok := sink.(*metrics.InfluxSink); ok {
			influx = is
		}
		sinks = append(sinks, sink)
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	pipe := pipeline.NewDefault(cfg.Granularity, logg, sink, pipeline.WithBus(bus))

	svc := &Service{
		pipeline:    pipe,
		bus:         bus,
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
		influx:      influx,
	}
	go svc.logEvents(bus.Subscribe())
	return svc, nil
}

func (s *Service) logEvents(ch <-chan eventbus.Event) {
	for e := range ch {
		switch p := e.Payload.(type) {
		case eventbus.PlanCompletedPayload:
			s.log.Infof("run %s: %d works, %d rehearsals, %d warning(s) in %s",
				p.RunID, p.Works, p.Rehearsals, p.Warnings, p.Elapsed)
		case eventbus.PlanWarningPayload:
			s.log.Warnf("run %s: %s", p.RunID, p.Message)
		}
	}
}

// Plan loads the season file and runs the full pipeline.
func (s *Service) Plan(seasonPath string) (pipeline.Result, error) {
	season, err := config.LoadSeason(seasonPath)
	if err != nil {
		return pipeline.Result{}, fmt.Errorf("load season: %w", err)
	}
	works, err := season.ToWorks()
	if err != nil {
		return pipeline.Result{}, err
	}
	rehearsals, err := season.ToRehearsals()
	if err != nil {
		return pipeline.Result{}, err
	}
	return s.pipeline.Run(works, rehearsals)
}

// Export writes the result in the requested format: json, csv,
// programme-csv or timeline-csv.
func (s *Service) Export(w io.Writer, res pipeline.Result, format string) error {
	switch format {
	case "json":
		return export.WriteJSON(w, res)
	case "csv":
		return export.WriteMatrixCSV(w, res.Allocation)
	case "programme-csv":
		return export.WriteProgrammeCSV(w, res)
	case "timeline-csv":
		return export.WriteTimelineCSV(w, res)
	}
	return fmt.Errorf("unsupported export format: %s", format)
}

// ServeMetrics starts the Prometheus endpoint when enabled and blocks
// until the context is cancelled.
func (s *Service) ServeMetrics(ctx context.Context) {
	if !s.promEnabled {
		return
	}
	if err := metrics.StartPromServer(ctx, s.promPort); err != nil {
		s.log.Errorf("prom server: %v", err)
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.influx != nil {
		s.influx.Close()
	}
	return nil
}

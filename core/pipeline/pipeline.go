package pipeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/podiumhq/podium/core/logger"
	"github.com/podiumhq/podium/core/metrics"
	"github.com/podiumhq/podium/core/model"
	"github.com/podiumhq/podium/core/plan"
	"github.com/podiumhq/podium/core/programme"
	"github.com/podiumhq/podium/internal/eventbus"
)

// Result is the full output of one planning run: the allocation matrix,
// the ordered programme and the timed running order.
type Result struct {
	Allocation plan.Allocation
	Programme  []programme.Entry
	Timeline   []programme.Item
	Elapsed    time.Duration
}

// Pipeline runs planning end to end: allocation, bundle ordering,
// timeline. Stages are injected so callers can swap heuristics.
type Pipeline struct {
	planner *plan.Planner
	log     logger.Logger
	bus     *eventbus.Bus
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithBus attaches an event bus; run and warning events are published on
// it.
func WithBus(bus *eventbus.Bus) Option {
	return func(p *Pipeline) { p.bus = bus }
}

// New builds a pipeline around an existing planner.
func New(planner *plan.Planner, log logger.Logger, opts ...Option) (*Pipeline, error) {
	if planner == nil {
		return nil, fmt.Errorf("pipeline: planner is required")
	}
	p := &Pipeline{planner: planner, log: log}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// NewDefault wires the standard planner stages.
func NewDefault(granularity int, log logger.Logger, sink metrics.MetricsSink, opts ...Option) *Pipeline {
	p, _ := New(plan.NewDefaultPlanner(granularity, log, sink), log, opts...)
	return p
}

// Run validates the inputs and executes all stages. Works keep their
// input order; rehearsals are processed by sequence number.
func (p *Pipeline) Run(works []model.Work, rehearsals []model.Rehearsal) (Result, error) {
	start := time.Now()

	for _, w := range works {
		if err := w.Validate(); err != nil {
			return Result{}, fmt.Errorf("pipeline: %w", err)
		}
	}
	seen := make(map[int]bool, len(rehearsals))
	for _, r := range rehearsals {
		if err := r.Validate(); err != nil {
			return Result{}, fmt.Errorf("pipeline: %w", err)
		}
		if seen[r.Sequence] {
			return Result{}, fmt.Errorf("pipeline: duplicate rehearsal sequence %d", r.Sequence)
		}
		seen[r.Sequence] = true
	}

	alloc, err := p.planner.Plan(works, rehearsals)
	if err != nil {
		return Result{}, err
	}

	prog, err := programme.BuildProgramme(alloc, works)
	if err != nil {
		return Result{}, err
	}

	ordered := append([]model.Rehearsal(nil), rehearsals...)
	sort.SliceStable(ordered, func(a, b int) bool { return ordered[a].Sequence < ordered[b].Sequence })
	timeline := programme.BuildTimeline(prog, ordered)

	res := Result{
		Allocation: alloc,
		Programme:  prog,
		Timeline:   timeline,
		Elapsed:    time.Since(start),
	}
	p.publish(res)
	return res, nil
}

func (p *Pipeline) publish(res Result) {
	if p.bus == nil {
		return
	}
	p.bus.Publish(eventbus.Event{
		Type: eventbus.PlanCompleted,
		Payload: eventbus.PlanCompletedPayload{
			RunID:      res.Allocation.RunID,
			Works:      len(res.Allocation.Titles),
			Rehearsals: len(res.Allocation.Sequences),
			Warnings:   len(res.Allocation.Warnings),
			Elapsed:    res.Elapsed,
		},
	})
	for _, w := range res.Allocation.Warnings {
		p.bus.Publish(eventbus.Event{
			Type:    eventbus.PlanWarning,
			Payload: eventbus.PlanWarningPayload{RunID: res.Allocation.RunID, Message: w},
		})
	}
}

package plan

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/podiumhq/podium/core/logger"
	"github.com/podiumhq/podium/core/metrics"
	"github.com/podiumhq/podium/core/model"
)

// Planner runs the allocation stages in order: requirements, bookends,
// middles. The stages share the planner's granularity; everything else is
// passed explicitly so a run has no hidden state.
type Planner struct {
	granularity  int
	requirements RequirementComputer
	bookends     BookendAllocator
	middles      MiddleAllocator
	log          logger.Logger
	metrics      metrics.MetricsSink
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

// NewPlanner creates a planner from explicit stage implementations. A nil
// logger or sink falls back to a no-op.
func NewPlanner(granularity int, req RequirementComputer, be BookendAllocator, mid MiddleAllocator, log logger.Logger, sink metrics.MetricsSink) (*Planner, error) {
	if req == nil || be == nil || mid == nil {
		return nil, fmt.Errorf("plan: nil stage provided to NewPlanner")
	}
	if granularity <= 0 {
		granularity = DefaultGranularity
	}
	if log == nil {
		log = nopLogger{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Planner{
		granularity:  granularity,
		requirements: req,
		bookends:     be,
		middles:      mid,
		log:          log,
		metrics:      sink,
	}, nil
}

// NewDefaultPlanner wires the standard stage implementations.
func NewDefaultPlanner(granularity int, log logger.Logger, sink metrics.MetricsSink) *Planner {
	p, _ := NewPlanner(granularity, ProportionalRequirements{}, CoverageBookendAllocator{}, NewSpreadMiddleAllocator(), log, sink)
	return p
}

// Plan produces the completed allocation matrix for the given works and
// rehearsals. Works keep input order, rehearsals are ordered by sequence
// number; both orders are also the tie-break order for every heuristic, so
// identical inputs always give identical output.
func (p *Planner) Plan(works []model.Work, rehearsals []model.Rehearsal) (Allocation, error) {
	start := time.Now()
	g := p.granularity

	if len(works) == 0 {
		return Allocation{}, fmt.Errorf("%w: at least one work is required", ErrInsufficientInput)
	}
	if len(rehearsals) < 2 {
		return Allocation{}, fmt.Errorf("%w: at least two rehearsals are required for first/last roles", ErrInsufficientInput)
	}

	ordered := append([]model.Rehearsal(nil), rehearsals...)
	sort.SliceStable(ordered, func(a, b int) bool { return ordered[a].Sequence < ordered[b].Sequence })

	totalTokens := 0
	for _, r := range ordered {
		totalTokens += r.Tokens(g)
	}
	if totalTokens <= 0 {
		return Allocation{}, fmt.Errorf("%w: total capacity is zero after snapping to %d-minute tokens", ErrInsufficientInput, g)
	}

	required := p.requirements.Compute(works, totalTokens)

	first := ordered[0]
	last := ordered[len(ordered)-1]
	firstAlloc, lastAlloc, err := p.bookends.Allocate(works, first.Tokens(g), last.Tokens(g))
	if err != nil {
		return Allocation{}, err
	}

	remaining := make([]int, len(works))
	remainingTotal := 0
	for i := range works {
		remaining[i] = required[i] - firstAlloc[i] - lastAlloc[i]
		if remaining[i] < 0 {
			remaining[i] = 0
		}
		remainingTotal += remaining[i]
	}

	mids := ordered[1 : len(ordered)-1]
	midRes := MiddleResult{Tokens: make([][]int, len(works))}
	for i := range midRes.Tokens {
		midRes.Tokens[i] = make([]int, len(mids))
	}
	if len(mids) > 0 && remainingTotal > 0 {
		midRes, err = p.middles.Allocate(MiddleRequest{
			Works:           works,
			Middles:         mids,
			RemainingTokens: remaining,
			RequiredTokens:  required,
			Granularity:     g,
		})
		if err != nil {
			return Allocation{}, err
		}
	}

	alloc := p.assemble(works, ordered, required, firstAlloc, lastAlloc, midRes, g)
	p.record(alloc, ordered, totalTokens, start)
	return alloc, nil
}

// assemble converts the token vectors into the minute-based result and
// collects the non-fatal warnings.
func (p *Planner) assemble(works []model.Work, ordered []model.Rehearsal, required, firstAlloc, lastAlloc []int, midRes MiddleResult, g int) Allocation {
	alloc := Allocation{
		RunID:       uuid.NewString(),
		Granularity: g,
		Titles:      make([]string, len(works)),
		Sequences:   make([]int, len(ordered)),
		Required:    make(map[string]int, len(works)),
		Matrix:      make(map[string]map[int]int, len(works)),
		Capacity:    make(map[int]int, len(ordered)),
		Warnings:    append([]string(nil), midRes.Warnings...),
	}
	for j, r := range ordered {
		alloc.Sequences[j] = r.Sequence
		alloc.Capacity[r.Sequence] = r.SnappedCapacity(g)
	}

	firstSeq := ordered[0].Sequence
	lastSeq := ordered[len(ordered)-1].Sequence
	for i, w := range works {
		alloc.Titles[i] = w.Title
		alloc.Required[w.Title] = required[i] * g
		row := make(map[int]int, len(ordered))
		row[firstSeq] = firstAlloc[i] * g
		row[lastSeq] = lastAlloc[i] * g
		for j, r := range ordered[1 : len(ordered)-1] {
			row[r.Sequence] = midRes.Tokens[i][j] * g
		}
		alloc.Matrix[w.Title] = row
	}

	for _, r := range ordered {
		if sliver := r.Remainder(g); sliver > 0 {
			alloc.Warnings = append(alloc.Warnings, fmt.Sprintf(
				"granularity: rehearsal %d leaves %d minute(s) below the %d-minute grid unscheduled", r.Sequence, sliver, g))
		}
	}
	for _, t := range alloc.Titles {
		if short := alloc.Required[t] - alloc.WorkTotal(t); short > 0 {
			alloc.Warnings = append(alloc.Warnings, fmt.Sprintf(
				"unmet: %q is %d minute(s) short of its required time", t, short))
		}
	}
	return alloc
}

func (p *Planner) record(alloc Allocation, ordered []model.Rehearsal, totalTokens int, start time.Time) {
	p.log.Infof("planned %d works across %d rehearsals, %d warning(s)",
		len(alloc.Titles), len(alloc.Sequences), len(alloc.Warnings))
	for _, w := range alloc.Warnings {
		p.log.Warnf("%s", w)
	}

	now := time.Now()
	ev := metrics.PlanRunEvent{
		RunID:       alloc.RunID,
		Granularity: alloc.Granularity,
		Works:       len(alloc.Titles),
		Rehearsals:  len(alloc.Sequences),
		Warnings:    len(alloc.Warnings),
		TotalMin:    totalTokens * alloc.Granularity,
		Elapsed:     now.Sub(start),
		Time:        now,
	}
	if err := p.metrics.RecordPlanRun(ev); err != nil {
		p.log.Errorf("record plan run: %v", err)
	}
	if rec, ok := p.metrics.(metrics.RehearsalFillRecorder); ok {
		fills := make([]metrics.RehearsalFill, 0, len(ordered))
		for _, r := range ordered {
			fills = append(fills, metrics.RehearsalFill{
				RunID:       alloc.RunID,
				Sequence:    r.Sequence,
				CapacityMin: r.SnappedCapacity(alloc.Granularity),
				UsedMin:     alloc.RehearsalTotal(r.Sequence),
				Time:        now,
			})
		}
		if err := rec.RecordRehearsalFill(fills); err != nil {
			p.log.Errorf("record rehearsal fill: %v", err)
		}
	}
}

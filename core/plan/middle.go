package plan

import (
	"fmt"
	"math"
	"sort"

	"github.com/podiumhq/podium/core/model"
)

// SpreadMiddleAllocator fills the middle rehearsals in three passes over a
// shared capacity ledger: specialist coverage (with single-token
// displacement when a capability night is full), even spreading scored by
// affinity, spread distance, stacking and recency, and a final flexible
// fill that may exceed a work's requirement by a small allowance.
type SpreadMiddleAllocator struct {
	// SectionAffinity multiplies a rehearsal's affinity once per ordinary
	// specialist section it offers that the work needs. SoloistAffinity is
	// the stronger pull for soloist nights.
	SectionAffinity float64
	SoloistAffinity float64

	// MinSlotFrac sets the minimum appearance length as a fraction of the
	// work's duration. MaxSlotMult and SoloistMaxMult cap a single slot as
	// a multiple of the duration.
	MinSlotFrac    float64
	MaxSlotMult    float64
	SoloistMaxMult float64

	SpreadWeight   float64
	RecencyBonus   float64
	StackingWeight float64

	// FlexAllowance is the extra share of a work's requirement the final
	// fill may schedule, as a fraction.
	FlexAllowance float64
}

// NewSpreadMiddleAllocator returns an allocator with the standard tuning.
func NewSpreadMiddleAllocator() SpreadMiddleAllocator {
	return SpreadMiddleAllocator{
		SectionAffinity: 3.0,
		SoloistAffinity: 6.0,
		MinSlotFrac:     0.20,
		MaxSlotMult:     3.0,
		SoloistMaxMult:  6.0,
		SpreadWeight:    1.0,
		RecencyBonus:    0.6,
		StackingWeight:  0.5,
		FlexAllowance:   0.10,
	}
}

// middleState is the mutable working set shared by the three passes.
type middleState struct {
	works  []model.Work
	needs  []model.Capabilities
	mids   []model.Rehearsal
	grid   [][]int // tokens, [work][middle position]
	bounds []slotBounds
	aff    [][]float64
	ledger *capacityLedger
	rem    []int // remaining required tokens per work after bookends

	warnings []string
}

// Allocate implements MiddleAllocator.
func (s SpreadMiddleAllocator) Allocate(req MiddleRequest) (MiddleResult, error) {
	n := len(req.Works)
	m := len(req.Middles)
	g := req.Granularity
	if g <= 0 {
		return MiddleResult{}, fmt.Errorf("plan: granularity must be positive, got %d", g)
	}
	if len(req.RemainingTokens) != n || len(req.RequiredTokens) != n {
		return MiddleResult{}, fmt.Errorf("plan: requirement vectors must match work count %d", n)
	}

	st := &middleState{
		works:  req.Works,
		needs:  make([]model.Capabilities, n),
		mids:   req.Middles,
		grid:   make([][]int, n),
		bounds: make([]slotBounds, n),
		aff:    make([][]float64, n),
		ledger: newCapacityLedger(req.Middles, g),
		rem:    req.RemainingTokens,
	}
	for i, w := range req.Works {
		st.needs[i] = w.Needs()
		st.grid[i] = make([]int, m)
		st.bounds[i] = s.boundsFor(w.DurationMin, req.RemainingTokens[i], m, g, st.needs[i].Soloist)
		st.aff[i] = s.affinities(w, st.needs[i], req.Middles, g)
	}
	if m == 0 {
		return MiddleResult{Tokens: st.grid}, nil
	}

	s.coveragePass(st)
	s.spreadPass(st)
	s.flexPass(st, req.RequiredTokens)

	return MiddleResult{Tokens: st.grid, Warnings: st.warnings}, nil
}

// affinities scores every middle rehearsal for one work: snapped capacity
// in minutes, multiplied per matching specialist section.
func (s SpreadMiddleAllocator) affinities(w model.Work, needs model.Capabilities, mids []model.Rehearsal, g int) []float64 {
	out := make([]float64, len(mids))
	for j, r := range mids {
		base := float64(r.SnappedCapacity(g))
		if base <= 0 {
			continue
		}
		mult := 1.0
		for _, sec := range model.SpecialistSections {
			if sec == model.SectionSoloist {
				continue
			}
			if needs.Has(sec) && r.Available.Has(sec) {
				mult *= s.SectionAffinity
			}
		}
		if needs.Soloist && r.Available.Soloist {
			mult *= s.SoloistAffinity
		}
		out[j] = base * mult
	}
	return out
}

// place puts up to tok tokens of work i on middle position j, honouring
// the per-slot maximum and the ledger. Returns the number placed.
func (st *middleState) place(i, j, tok int) int {
	if tok <= 0 || st.ledger.Remaining(j) <= 0 {
		return 0
	}
	allowed := st.bounds[i].maxTokens - st.grid[i][j]
	if allowed <= 0 {
		return 0
	}
	can := tok
	if allowed < can {
		can = allowed
	}
	if free := st.ledger.Remaining(j); free < can {
		can = free
	}
	st.grid[i][j] += can
	st.ledger.Take(j, can)
	return can
}

func (st *middleState) placedOn(i int) int {
	return sumInts(st.grid[i])
}

// coveragePass guarantees each work needing a specialist section appears
// at least once on a rehearsal where that section is present, displacing a
// token of an indifferent work when the night is full.
func (s SpreadMiddleAllocator) coveragePass(st *middleState) {
	for _, sec := range model.SpecialistSections {
		var yMids []int
		for j, r := range st.mids {
			if r.Available.Has(sec) {
				yMids = append(yMids, j)
			}
		}
		if len(yMids) == 0 {
			continue
		}

		for i := range st.works {
			if !st.needs[i].Has(sec) || st.rem[i] <= 0 {
				continue
			}
			covered := false
			for _, j := range yMids {
				if st.grid[i][j] > 0 {
					covered = true
					break
				}
			}
			if covered {
				continue
			}

			need := st.bounds[i].minTokens
			if st.rem[i] < need {
				need = st.rem[i]
			}
			if need <= 0 {
				continue
			}

			ranked := append([]int(nil), yMids...)
			sort.SliceStable(ranked, func(a, b int) bool {
				ra, rb := st.ledger.Remaining(ranked[a]), st.ledger.Remaining(ranked[b])
				if ra != rb {
					return ra > rb
				}
				return st.aff[i][ranked[a]] > st.aff[i][ranked[b]]
			})
			target := ranked[0]

			placed := st.place(i, target, need)
			if placed < need {
				s.displace(st, i, sec, target, need-placed)
				if st.ledger.Remaining(target) > 0 {
					placed += st.place(i, target, need-placed)
				}
			}
			if placed == 0 {
				st.warnings = append(st.warnings, fmt.Sprintf(
					"coverage: could not place %q on any %s-available rehearsal", st.works[i].Title, sec))
			}
		}
	}
}

// displace frees up to tok tokens on the target rehearsal by moving single
// tokens of works that do not need the section to another middle with
// spare capacity. Donors with the lowest affinity for the target move
// first.
func (s SpreadMiddleAllocator) displace(st *middleState, i int, sec model.Section, target, tok int) {
	var donors []int
	for j := range st.works {
		if j == i || st.grid[j][target] < 1 || st.needs[j].Has(sec) {
			continue
		}
		donors = append(donors, j)
	}
	sort.SliceStable(donors, func(a, b int) bool {
		return st.aff[donors[a]][target] < st.aff[donors[b]][target]
	})

	freed := 0
	for _, d := range donors {
		if freed >= tok {
			break
		}
		for alt := range st.mids {
			if alt == target || st.ledger.Remaining(alt) <= 0 {
				continue
			}
			if st.grid[d][alt] >= st.bounds[d].maxTokens {
				continue
			}
			st.grid[d][target]--
			st.grid[d][alt]++
			st.ledger.Take(alt, 1)
			st.ledger.Give(target, 1)
			freed++
			break
		}
	}
}

// spreadPass walks works by specialist count then remaining need, placing
// one token at a time on the rehearsal scoring best on affinity, even
// spacing, stacking and distance from the previous placement.
func (s SpreadMiddleAllocator) spreadPass(st *middleState) {
	m := len(st.mids)

	order := make([]int, len(st.works))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		na, nb := st.needs[order[a]].SpecialistCount(), st.needs[order[b]].SpecialistCount()
		if na != nb {
			return na > nb
		}
		return st.rem[order[a]] > st.rem[order[b]]
	})

	for _, i := range order {
		need := st.rem[i] - st.placedOn(i)
		if need <= 0 {
			continue
		}

		lastPos := -1
		for k := 0; k < need; k++ {
			targetPos := (float64(k)+0.5)*float64(m)/float64(need) - 0.5

			bestJ := -1
			bestScore := math.Inf(-1)
			for j := 0; j < m; j++ {
				if st.ledger.Remaining(j) <= 0 {
					continue
				}
				cur := st.grid[i][j]
				if cur >= st.bounds[i].maxTokens {
					continue
				}
				score := st.aff[i][j]
				score -= s.SpreadWeight * math.Abs(float64(j)-targetPos)
				score -= s.StackingWeight * float64(cur) / math.Max(1, float64(st.bounds[i].maxTokens))
				if lastPos >= 0 {
					score += s.RecencyBonus * math.Abs(float64(j-lastPos))
				}
				if score > bestScore {
					bestJ, bestScore = j, score
				}
			}
			if bestJ == -1 {
				break
			}

			if st.place(i, bestJ, 1) > 0 {
				lastPos = bestJ
				continue
			}
			// Fallback: any rehearsal with capacity, by affinity.
			if j, ok := s.fallbackPlace(st, i); ok {
				lastPos = j
				continue
			}
			break
		}
	}
}

func (s SpreadMiddleAllocator) fallbackPlace(st *middleState, i int) (int, bool) {
	ranked := make([]int, len(st.mids))
	for j := range ranked {
		ranked[j] = j
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return st.aff[i][ranked[a]] > st.aff[i][ranked[b]]
	})
	for _, j := range ranked {
		if st.place(i, j, 1) > 0 {
			return j, true
		}
	}
	return -1, false
}

// flexPass spends leftover capacity as overfill, up to FlexAllowance of
// each work's original requirement, preferring the emptiest rehearsal and
// the work with the highest affinity for it.
func (s SpreadMiddleAllocator) flexPass(st *middleState, requiredTokens []int) {
	if st.ledger.Total() <= 0 {
		return
	}

	extra := make([]int, len(st.works))
	for i, req := range requiredTokens {
		extra[i] = int(math.Round(float64(req) * s.FlexAllowance))
	}

	for {
		j, free := st.ledger.MostSpare()
		if j < 0 || free <= 0 {
			return
		}

		bestI := -1
		bestScore := math.Inf(-1)
		for i := range st.works {
			if extra[i] <= 0 || st.grid[i][j] >= st.bounds[i].maxTokens {
				continue
			}
			if st.aff[i][j] > bestScore {
				bestI, bestScore = i, st.aff[i][j]
			}
		}
		if bestI == -1 {
			return
		}
		if st.place(bestI, j, 1) == 0 {
			return
		}
		extra[bestI]--
	}
}

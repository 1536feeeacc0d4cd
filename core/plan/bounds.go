package plan

import "math"

// slotBounds limits how many tokens of one work may land on a single
// middle rehearsal.
type slotBounds struct {
	minTokens int
	maxTokens int
}

// boundsFor derives the per-slot bounds for a work. The minimum keeps an
// appearance long enough to be worth setting up (at least one token, or a
// fraction of the work's duration). The maximum is the largest of a
// duration multiple, the even-split feasibility bump, and the minimum
// itself. Soloist works get a higher cap so a soloist night can absorb
// them.
func (s SpreadMiddleAllocator) boundsFor(durationMin float64, remTokens, nMid, g int, soloist bool) slotBounds {
	gf := float64(g)

	minTok := int(math.Ceil(math.Max(gf, s.MinSlotFrac*durationMin) / gf))

	capMult := s.MaxSlotMult
	if soloist {
		capMult = s.SoloistMaxMult
	}
	capTok := int(math.Ceil(capMult * durationMin / gf))

	evenTok := 0
	if nMid > 0 && remTokens > 0 {
		evenTok = int(math.Ceil(float64(remTokens) / float64(nMid)))
	}

	maxTok := minTok
	if capTok > maxTok {
		maxTok = capTok
	}
	if evenTok > maxTok {
		maxTok = evenTok
	}
	return slotBounds{minTokens: minTok, maxTokens: maxTok}
}

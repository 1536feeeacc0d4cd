package programme

import (
	"fmt"
	"sort"

	"github.com/podiumhq/podium/core/model"
	"github.com/podiumhq/podium/core/plan"
)

// Entry is one work's slot in a rehearsal programme.
type Entry struct {
	Sequence      int
	Title         string
	Minutes       int
	GroupKey      string
	MovementLabel string
	MovementOrder int
	PlayerLoad    float64
	Sig           model.Signature
}

// Bundle groups the entries of one rehearsal that share a group key. A
// bundle is sequenced as a unit: members keep movement order, the
// signature is the union of member signatures and the player load is the
// sum of member loads.
type Bundle struct {
	Key        string
	Items      []Entry
	Minutes    int
	PlayerLoad float64
	Sig        model.Signature
}

// BuildProgramme converts an allocation matrix into the ordered programme:
// per rehearsal, non-zero cells are grouped into bundles, bundles are
// sequenced to minimise force changes, and the bundles are flattened back
// into entries.
func BuildProgramme(alloc plan.Allocation, works []model.Work) ([]Entry, error) {
	byTitle := make(map[string]model.Work, len(works))
	for _, w := range works {
		byTitle[w.Title] = w
	}

	var out []Entry
	for _, seq := range alloc.Sequences {
		var entries []Entry
		for _, title := range alloc.Titles {
			mins := alloc.Minutes(title, seq)
			if mins <= 0 {
				continue
			}
			w, ok := byTitle[title]
			if !ok {
				return nil, fmt.Errorf("programme: allocation references unknown work %q", title)
			}
			info := ParseGroup(w)
			entries = append(entries, Entry{
				Sequence:      seq,
				Title:         title,
				Minutes:       mins,
				GroupKey:      info.Key,
				MovementLabel: info.MovementLabel,
				MovementOrder: info.MovementOrder,
				PlayerLoad:    w.Instr.PlayerLoad(),
				Sig:           w.Signature(),
			})
		}
		for _, b := range OrderBundles(BuildBundles(entries)) {
			out = append(out, b.Items...)
		}
	}
	return out, nil
}

// BuildBundles groups entries by group key, keeping first-seen key order,
// and sorts members by movement order then title. Entries without a
// movement order sort last within their bundle.
func BuildBundles(entries []Entry) []Bundle {
	var keys []string
	byKey := make(map[string][]Entry)
	for _, e := range entries {
		if _, seen := byKey[e.GroupKey]; !seen {
			keys = append(keys, e.GroupKey)
		}
		byKey[e.GroupKey] = append(byKey[e.GroupKey], e)
	}

	bundles := make([]Bundle, 0, len(keys))
	for _, key := range keys {
		members := byKey[key]
		sort.SliceStable(members, func(a, b int) bool {
			ma, mb := members[a].MovementOrder, members[b].MovementOrder
			switch {
			case ma > 0 && mb > 0 && ma != mb:
				return ma < mb
			case ma > 0 && mb == 0:
				return true
			case ma == 0 && mb > 0:
				return false
			}
			return members[a].Title < members[b].Title
		})

		b := Bundle{Key: key, Items: members}
		for _, m := range members {
			b.Minutes += m.Minutes
			b.PlayerLoad += m.PlayerLoad
			b.Sig = mergeSignatures(b.Sig, m.Sig)
		}
		bundles = append(bundles, b)
	}
	return bundles
}

func mergeSignatures(a, b model.Signature) model.Signature {
	out := model.Signature{
		Capabilities: model.Capabilities{
			Percussion: a.Percussion || b.Percussion,
			Piano:      a.Piano || b.Piano,
			Harp:       a.Harp || b.Harp,
			Brass:      a.Brass || b.Brass,
			Soloist:    a.Soloist || b.Soloist,
			Winds:      a.Winds || b.Winds,
			Strings:    a.Strings || b.Strings,
		},
		PercProfile: a.PercProfile,
	}
	if b.PercProfile > out.PercProfile {
		out.PercProfile = b.PercProfile
	}
	return out
}

// TransitionCost scores how disruptive it is to rehearse b directly after
// a: percussion changes dominate, keys and harp matter, family presence
// changes cost one each.
func TransitionCost(a, b model.Signature) int {
	cost := 0
	if a.Percussion != b.Percussion {
		cost += 3
	}
	if a.Percussion && b.Percussion && a.PercProfile != b.PercProfile {
		cost += 2
	}
	if a.Piano != b.Piano {
		cost += 2
	}
	if a.Harp != b.Harp {
		cost += 2
	}
	if a.Winds != b.Winds {
		cost++
	}
	if a.Brass != b.Brass {
		cost++
	}
	if a.Strings != b.Strings {
		cost++
	}
	return cost
}

// SequenceCost sums the transition costs along an ordered bundle list.
func SequenceCost(bundles []Bundle) int {
	cost := 0
	for i := 0; i+1 < len(bundles); i++ {
		cost += TransitionCost(bundles[i].Sig, bundles[i+1].Sig)
	}
	return cost
}

// OrderBundles sequences bundles: seed with the heaviest player load,
// greedily append the cheapest transition, then improve with adjacent
// swaps until no swap strictly reduces the total cost. The swap loop is
// bounded so pathological ties still terminate.
func OrderBundles(bundles []Bundle) []Bundle {
	if len(bundles) <= 1 {
		return bundles
	}

	remaining := append([]Bundle(nil), bundles...)
	seed := 0
	for i, b := range remaining {
		if b.PlayerLoad > remaining[seed].PlayerLoad ||
			(b.PlayerLoad == remaining[seed].PlayerLoad && b.Minutes > remaining[seed].Minutes) {
			seed = i
		}
	}
	ordered := []Bundle{remaining[seed]}
	remaining = append(remaining[:seed], remaining[seed+1:]...)

	for len(remaining) > 0 {
		last := ordered[len(ordered)-1]
		best := 0
		for i := 1; i < len(remaining); i++ {
			if lessTransition(last, remaining[i], remaining[best]) {
				best = i
			}
		}
		ordered = append(ordered, remaining[best])
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	// Local improvement: adjacent swaps, strict decrease only.
	maxSweeps := len(ordered) * len(ordered)
	for sweep := 0; sweep < maxSweeps; sweep++ {
		improved := false
		for k := 0; k+1 < len(ordered); k++ {
			before := SequenceCost(ordered)
			ordered[k], ordered[k+1] = ordered[k+1], ordered[k]
			if SequenceCost(ordered) < before {
				improved = true
			} else {
				ordered[k], ordered[k+1] = ordered[k+1], ordered[k]
			}
		}
		if !improved {
			break
		}
	}
	return ordered
}

// lessTransition reports whether candidate beats current as the next
// bundle after last: lower transition cost, then higher player load, then
// longer duration.
func lessTransition(last, candidate, current Bundle) bool {
	cc := TransitionCost(last.Sig, candidate.Sig)
	cur := TransitionCost(last.Sig, current.Sig)
	if cc != cur {
		return cc < cur
	}
	if candidate.PlayerLoad != current.PlayerLoad {
		return candidate.PlayerLoad > current.PlayerLoad
	}
	return candidate.Minutes > current.Minutes
}

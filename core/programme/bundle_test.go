package programme

import (
	"testing"

	"github.com/podiumhq/podium/core/model"
)

func sigOf(instr model.Instrumentation) model.Signature {
	return model.Signature{Capabilities: instr.Capabilities(), PercProfile: instr.PercProfile()}
}

func TestTransitionCost(t *testing.T) {
	quiet := sigOf(model.Instrumentation{Winds: 2, StringsPresent: true})
	loud := sigOf(model.Instrumentation{Winds: 2, Brass: 4, Percussion: 4, StringsPresent: true})
	keys := sigOf(model.Instrumentation{Winds: 2, Piano: 1, StringsPresent: true})
	lightPerc := sigOf(model.Instrumentation{Winds: 2, Percussion: 1, StringsPresent: true})

	if got := TransitionCost(quiet, quiet); got != 0 {
		t.Fatalf("identical signatures cost %d, want 0", got)
	}
	// Percussion appears (+3) and brass appears (+1).
	if got := TransitionCost(quiet, loud); got != 4 {
		t.Fatalf("quiet to loud = %d, want 4", got)
	}
	if got := TransitionCost(quiet, keys); got != 2 {
		t.Fatalf("piano change = %d, want 2", got)
	}
	// Both have percussion, profiles differ (+2), brass appears (+1).
	if got := TransitionCost(lightPerc, loud); got != 3 {
		t.Fatalf("profile change = %d, want 3", got)
	}
	if got := TransitionCost(quiet, loud); got != TransitionCost(loud, quiet) {
		t.Fatalf("transition cost should be symmetric")
	}
}

func TestBuildBundlesGroupsMovements(t *testing.T) {
	entries := []Entry{
		{Sequence: 1, Title: "Suite: II. Waltz", GroupKey: "Suite", MovementOrder: 2, Minutes: 10},
		{Sequence: 1, Title: "Overture", GroupKey: "Overture", Minutes: 15},
		{Sequence: 1, Title: "Suite: I. March", GroupKey: "Suite", MovementOrder: 1, Minutes: 10},
	}
	bundles := BuildBundles(entries)
	if len(bundles) != 2 {
		t.Fatalf("bundle count = %d, want 2", len(bundles))
	}
	if bundles[0].Key != "Suite" || bundles[1].Key != "Overture" {
		t.Fatalf("keys should keep first-seen order: %q, %q", bundles[0].Key, bundles[1].Key)
	}
	if bundles[0].Items[0].MovementOrder != 1 || bundles[0].Items[1].MovementOrder != 2 {
		t.Fatalf("movements out of order: %+v", bundles[0].Items)
	}
	if bundles[0].Minutes != 20 {
		t.Fatalf("bundle minutes = %d, want 20", bundles[0].Minutes)
	}
}

func TestBundleSignatureMerge(t *testing.T) {
	entries := []Entry{
		{Sequence: 1, Title: "Suite: I", GroupKey: "Suite", MovementOrder: 1,
			Sig: sigOf(model.Instrumentation{Winds: 2, Percussion: 1})},
		{Sequence: 1, Title: "Suite: II", GroupKey: "Suite", MovementOrder: 2,
			Sig: sigOf(model.Instrumentation{Brass: 4, Percussion: 5})},
	}
	b := BuildBundles(entries)[0]
	if !b.Sig.Winds || !b.Sig.Brass || !b.Sig.Percussion {
		t.Fatalf("merged signature missing sections: %+v", b.Sig)
	}
	if b.Sig.PercProfile != model.PercHeavy {
		t.Fatalf("merged profile = %d, want the heavier class", b.Sig.PercProfile)
	}
}

func TestOrderBundlesSeedsHeaviest(t *testing.T) {
	light := Bundle{Key: "L", PlayerLoad: 3, Minutes: 10,
		Sig: sigOf(model.Instrumentation{Winds: 2, StringsPresent: true})}
	heavy := Bundle{Key: "H", PlayerLoad: 20, Minutes: 25,
		Sig: sigOf(model.Instrumentation{Winds: 8, Brass: 6, Percussion: 4, StringsPresent: true})}
	mid := Bundle{Key: "M", PlayerLoad: 8, Minutes: 15,
		Sig: sigOf(model.Instrumentation{Winds: 4, Brass: 2, StringsPresent: true})}

	ordered := OrderBundles([]Bundle{light, mid, heavy})
	if ordered[0].Key != "H" {
		t.Fatalf("first bundle = %q, want the heaviest", ordered[0].Key)
	}
}

func TestOrderBundlesGroupsPercussion(t *testing.T) {
	perc := func(key string, load float64) Bundle {
		return Bundle{Key: key, PlayerLoad: load, Minutes: 10,
			Sig: sigOf(model.Instrumentation{Winds: 2, Percussion: 4, StringsPresent: true})}
	}
	plain := func(key string, load float64) Bundle {
		return Bundle{Key: key, PlayerLoad: load, Minutes: 10,
			Sig: sigOf(model.Instrumentation{Winds: 2, StringsPresent: true})}
	}
	ordered := OrderBundles([]Bundle{perc("P1", 12), plain("Q1", 5), perc("P2", 11), plain("Q2", 4)})

	changes := 0
	for i := 0; i+1 < len(ordered); i++ {
		if ordered[i].Sig.Percussion != ordered[i+1].Sig.Percussion {
			changes++
		}
	}
	if changes != 1 {
		t.Fatalf("percussion should change once along the sequence, changed %d times: %v", changes, keysOf(ordered))
	}
}

func TestOrderBundlesDeterministic(t *testing.T) {
	in := []Bundle{
		{Key: "A", PlayerLoad: 5, Minutes: 10, Sig: sigOf(model.Instrumentation{Winds: 2})},
		{Key: "B", PlayerLoad: 5, Minutes: 10, Sig: sigOf(model.Instrumentation{Winds: 2})},
		{Key: "C", PlayerLoad: 5, Minutes: 10, Sig: sigOf(model.Instrumentation{Winds: 2})},
	}
	first := keysOf(OrderBundles(append([]Bundle(nil), in...)))
	second := keysOf(OrderBundles(append([]Bundle(nil), in...)))
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("ordering not stable: %v vs %v", first, second)
		}
	}
}

func keysOf(bundles []Bundle) []string {
	keys := make([]string, len(bundles))
	for i, b := range bundles {
		keys[i] = b.Key
	}
	return keys
}

package model

import "fmt"

// Player-load weights per section. These are relative cost estimates, not
// literal headcounts: percussion carries setup time, strings count per desk.
const (
	loadWind    = 1.0
	loadBrass   = 1.5
	loadPerc    = 2.0
	loadPiano   = 1.0
	loadHarp    = 1.2
	loadString  = 0.6
	loadSoloist = 1.0

	// Baseline applied when strings are flagged present without counts.
	stringsBaseline = 4.0
)

// Instrumentation holds per-section performer counts for a work. A zero
// count means the section is not used.
type Instrumentation struct {
	Winds      float64
	Brass      float64
	Strings    float64
	Percussion float64
	Piano      float64
	Harp       float64
	Soloists   float64

	// StringsPresent marks string writing whose desk counts are unknown.
	StringsPresent bool
}

// Capabilities derives the boolean requirement flags: any positive count
// means the section is required.
func (i Instrumentation) Capabilities() Capabilities {
	return Capabilities{
		Percussion: i.Percussion > 0,
		Piano:      i.Piano > 0,
		Harp:       i.Harp > 0,
		Brass:      i.Brass > 0,
		Soloist:    i.Soloists > 0,
		Winds:      i.Winds > 0,
		Strings:    i.Strings > 0 || i.StringsPresent,
	}
}

// PercProfile classifies the percussion demand for sequencing.
func (i Instrumentation) PercProfile() int {
	n := int(i.Percussion)
	switch {
	case n <= 0:
		return PercNone
	case n <= 2:
		return PercLight
	default:
		return PercHeavy
	}
}

// PlayerLoad estimates the ensemble size and setup cost for the work.
func (i Instrumentation) PlayerLoad() float64 {
	load := loadWind*i.Winds +
		loadBrass*i.Brass +
		loadPerc*i.Percussion +
		loadPiano*i.Piano +
		loadHarp*i.Harp +
		loadSoloist*i.Soloists
	if i.Strings > 0 {
		load += loadString * i.Strings
	} else if i.StringsPresent {
		load += stringsBaseline
	}
	return load
}

// Work is a piece of repertoire competing for rehearsal time. Immutable
// after load.
type Work struct {
	Title       string
	DurationMin float64
	Difficulty  float64

	Instr Instrumentation

	// GroupHint names the parent work when movements are listed as
	// separate titles. Empty means the group must be inferred from the
	// title.
	GroupHint string
	// MovementOrder orders movements within a group; 0 means unknown.
	MovementOrder int
}

// Weight is the apportionment weight: longer and harder works need more
// rehearsal time.
func (w Work) Weight() float64 {
	return w.DurationMin * w.Difficulty
}

// Needs returns the derived capability requirements.
func (w Work) Needs() Capabilities {
	return w.Instr.Capabilities()
}

// Signature returns the capability fingerprint used for sequencing.
func (w Work) Signature() Signature {
	return Signature{Capabilities: w.Needs(), PercProfile: w.Instr.PercProfile()}
}

// Validate checks that the work record is usable.
func (w Work) Validate() error {
	if w.Title == "" {
		return fmt.Errorf("work title must not be empty")
	}
	if w.DurationMin < 0 {
		return fmt.Errorf("work %q: duration must not be negative", w.Title)
	}
	if w.Difficulty < 0.1 {
		return fmt.Errorf("work %q: difficulty must be at least 0.1", w.Title)
	}
	return nil
}

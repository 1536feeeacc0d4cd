package model

// Section identifies a specialist section that a work may require and a
// rehearsal may or may not have available.
type Section int

const (
	SectionPercussion Section = iota
	SectionPiano
	SectionHarp
	SectionBrass
	SectionSoloist
)

// SpecialistSections lists the sections considered during coverage, in the
// fixed order the allocator walks them.
var SpecialistSections = []Section{
	SectionPercussion,
	SectionPiano,
	SectionHarp,
	SectionBrass,
	SectionSoloist,
}

// String returns a human-readable representation of the section.
func (s Section) String() string {
	switch s {
	case SectionPercussion:
		return "percussion"
	case SectionPiano:
		return "piano"
	case SectionHarp:
		return "harp"
	case SectionBrass:
		return "brass"
	case SectionSoloist:
		return "soloist"
	}
	return "unknown"
}

// Capabilities holds the boolean requirement flags derived from a work's
// instrumentation. Winds and Strings are general families used only for
// sequencing, not for coverage.
type Capabilities struct {
	Percussion bool
	Piano      bool
	Harp       bool
	Brass      bool
	Soloist    bool
	Winds      bool
	Strings    bool
}

// Has reports whether the specialist section is required.
func (c Capabilities) Has(s Section) bool {
	switch s {
	case SectionPercussion:
		return c.Percussion
	case SectionPiano:
		return c.Piano
	case SectionHarp:
		return c.Harp
	case SectionBrass:
		return c.Brass
	case SectionSoloist:
		return c.Soloist
	}
	return false
}

// SpecialistCount returns how many specialist sections the work requires.
func (c Capabilities) SpecialistCount() int {
	n := 0
	for _, s := range SpecialistSections {
		if c.Has(s) {
			n++
		}
	}
	return n
}

// Availability holds the per-rehearsal specialist availability flags.
type Availability struct {
	Percussion bool
	Piano      bool
	Harp       bool
	Brass      bool
	Soloist    bool
}

// Has reports whether the specialist section is present that session.
func (a Availability) Has(s Section) bool {
	switch s {
	case SectionPercussion:
		return a.Percussion
	case SectionPiano:
		return a.Piano
	case SectionHarp:
		return a.Harp
	case SectionBrass:
		return a.Brass
	case SectionSoloist:
		return a.Soloist
	}
	return false
}

// Percussion profile classes used by the transition cost: none, light (1-2
// players) and heavy (3+).
const (
	PercNone  = 0
	PercLight = 1
	PercHeavy = 2
)

// Signature is the capability fingerprint used when sequencing bundles.
type Signature struct {
	Capabilities
	PercProfile int
}

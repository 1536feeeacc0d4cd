package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/podiumhq/podium/core/model"
)

// SeasonConfig is the planning input file: the programme under rehearsal
// and the rehearsal schedule.
type SeasonConfig struct {
	Works      []WorkRecord      `json:"works" yaml:"works"`
	Rehearsals []RehearsalRecord `json:"rehearsals" yaml:"rehearsals"`
}

// WorkRecord is one work as written in the season file.
type WorkRecord struct {
	Title       string  `json:"title" yaml:"title"`
	DurationMin float64 `json:"duration_min" yaml:"duration_min"`
	Difficulty  float64 `json:"difficulty" yaml:"difficulty"`

	Winds          float64 `json:"winds" yaml:"winds"`
	Brass          float64 `json:"brass" yaml:"brass"`
	Strings        float64 `json:"strings" yaml:"strings"`
	StringsPresent bool    `json:"strings_present" yaml:"strings_present"`
	Percussion     float64 `json:"percussion" yaml:"percussion"`
	Piano          float64 `json:"piano" yaml:"piano"`
	Harp           float64 `json:"harp" yaml:"harp"`
	Soloists       float64 `json:"soloists" yaml:"soloists"`

	Group         string `json:"group" yaml:"group"`
	MovementOrder int    `json:"movement_order" yaml:"movement_order"`
}

// RehearsalRecord is one rehearsal as written in the season file. Start is
// a wall clock in HH:MM form; Date is YYYY-MM-DD and may be empty.
// DurationMin is the gross session length, break included.
type RehearsalRecord struct {
	Sequence    int    `json:"sequence" yaml:"sequence"`
	Date        string `json:"date" yaml:"date"`
	Start       string `json:"start" yaml:"start"`
	DurationMin int    `json:"duration_min" yaml:"duration_min"`
	BreakMin    int    `json:"break_min" yaml:"break_min"`

	// Available lists the specialist sections booked for the session:
	// percussion, piano, harp, brass, soloist.
	Available []string `json:"available" yaml:"available"`
}

// LoadSeason loads a SeasonConfig from a JSON or YAML file.
func LoadSeason(path string) (SeasonConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return SeasonConfig{}, err
	}
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return DecodeSeason(strings.NewReader(string(b)), "yaml")
	case ".json":
		return DecodeSeason(strings.NewReader(string(b)), "json")
	default:
		return SeasonConfig{}, fmt.Errorf("unsupported season format: %s", ext)
	}
}

// DecodeSeason reads from r to decode a SeasonConfig.
func DecodeSeason(r io.Reader, format string) (SeasonConfig, error) {
	var cfg SeasonConfig
	switch strings.ToLower(format) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(r)
		if err := dec.Decode(&cfg); err != nil {
			return cfg, err
		}
	case "json":
		dec := json.NewDecoder(r)
		if err := dec.Decode(&cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported format: %s", format)
	}
	return cfg, nil
}

// ToWorks converts the work records to model works. Difficulty is clamped
// to a minimum of 0.1 so a forgotten field does not zero a work's share.
func (c SeasonConfig) ToWorks() ([]model.Work, error) {
	works := make([]model.Work, 0, len(c.Works))
	for _, rec := range c.Works {
		d := rec.Difficulty
		if d < 0.1 {
			d = 0.1
		}
		w := model.Work{
			Title:       strings.TrimSpace(rec.Title),
			DurationMin: rec.DurationMin,
			Difficulty:  d,
			Instr: model.Instrumentation{
				Winds:          rec.Winds,
				Brass:          rec.Brass,
				Strings:        rec.Strings,
				StringsPresent: rec.StringsPresent,
				Percussion:     rec.Percussion,
				Piano:          rec.Piano,
				Harp:           rec.Harp,
				Soloists:       rec.Soloists,
			},
			GroupHint:     strings.TrimSpace(rec.Group),
			MovementOrder: rec.MovementOrder,
		}
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("season: %w", err)
		}
		works = append(works, w)
	}
	return works, nil
}

// ToRehearsals converts the rehearsal records to model rehearsals.
func (c SeasonConfig) ToRehearsals() ([]model.Rehearsal, error) {
	rehearsals := make([]model.Rehearsal, 0, len(c.Rehearsals))
	for _, rec := range c.Rehearsals {
		startMin, err := parseClock(rec.Start)
		if err != nil {
			return nil, fmt.Errorf("season: rehearsal %d: %w", rec.Sequence, err)
		}
		var date time.Time
		if rec.Date != "" {
			date, err = time.Parse("2006-01-02", rec.Date)
			if err != nil {
				return nil, fmt.Errorf("season: rehearsal %d: bad date %q", rec.Sequence, rec.Date)
			}
		}
		avail, err := parseAvailability(rec.Available)
		if err != nil {
			return nil, fmt.Errorf("season: rehearsal %d: %w", rec.Sequence, err)
		}
		r := model.Rehearsal{
			Sequence:    rec.Sequence,
			Date:        date,
			StartMin:    startMin,
			DurationMin: rec.DurationMin,
			BreakMin:    rec.BreakMin,
			Available:   avail,
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("season: %w", err)
		}
		rehearsals = append(rehearsals, r)
	}
	return rehearsals, nil
}

// parseClock converts "HH:MM" to minutes since midnight. Empty means
// midnight.
func parseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("bad start time %q, want HH:MM", s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func parseAvailability(sections []string) (model.Availability, error) {
	var a model.Availability
	for _, s := range sections {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "percussion":
			a.Percussion = true
		case "piano":
			a.Piano = true
		case "harp":
			a.Harp = true
		case "brass":
			a.Brass = true
		case "soloist":
			a.Soloist = true
		default:
			return a, fmt.Errorf("unknown section %q", s)
		}
	}
	return a, nil
}

package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/podiumhq/podium/core/pipeline"
	"github.com/podiumhq/podium/core/plan"
)

// Document is the JSON export of one planning run.
type Document struct {
	RunID       string         `json:"run_id"`
	Granularity int            `json:"granularity"`
	Required    map[string]int `json:"required_minutes"`
	Matrix      []MatrixRow    `json:"allocation"`
	Programme   []ProgrammeRow `json:"programme"`
	Timeline    []TimelineRow  `json:"timeline"`
	Warnings    []string       `json:"warnings,omitempty"`
}

// MatrixRow is one work's allocation across rehearsals, keyed by sequence
// number.
type MatrixRow struct {
	Title   string      `json:"title"`
	Minutes map[int]int `json:"minutes_by_rehearsal"`
}

// ProgrammeRow is one ordered slot of a rehearsal programme.
type ProgrammeRow struct {
	Sequence      int     `json:"rehearsal"`
	Position      int     `json:"position"`
	Title         string  `json:"title"`
	GroupKey      string  `json:"group"`
	MovementOrder int     `json:"movement_order,omitempty"`
	Minutes       int     `json:"minutes"`
	PlayerLoad    float64 `json:"player_load"`
}

// TimelineRow is one timed slot of the running order.
type TimelineRow struct {
	Sequence int       `json:"rehearsal"`
	Title    string    `json:"title"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Minutes  int       `json:"minutes"`
	IsBreak  bool      `json:"is_break,omitempty"`
}

// NewDocument flattens a pipeline result for export.
func NewDocument(res pipeline.Result) Document {
	doc := Document{
		RunID:       res.Allocation.RunID,
		Granularity: res.Allocation.Granularity,
		Required:    res.Allocation.Required,
		Warnings:    res.Allocation.Warnings,
	}
	for _, title := range res.Allocation.Titles {
		row := MatrixRow{Title: title, Minutes: make(map[int]int, len(res.Allocation.Sequences))}
		for _, seq := range res.Allocation.Sequences {
			row.Minutes[seq] = res.Allocation.Minutes(title, seq)
		}
		doc.Matrix = append(doc.Matrix, row)
	}
	pos := 0
	lastSeq := -1
	for _, e := range res.Programme {
		if e.Sequence != lastSeq {
			pos = 0
			lastSeq = e.Sequence
		}
		pos++
		doc.Programme = append(doc.Programme, ProgrammeRow{
			Sequence:      e.Sequence,
			Position:      pos,
			Title:         e.Title,
			GroupKey:      e.GroupKey,
			MovementOrder: e.MovementOrder,
			Minutes:       e.Minutes,
			PlayerLoad:    e.PlayerLoad,
		})
	}
	for _, it := range res.Timeline {
		doc.Timeline = append(doc.Timeline, TimelineRow{
			Sequence: it.Sequence,
			Title:    it.Title,
			Start:    it.Start,
			End:      it.End,
			Minutes:  it.Minutes,
			IsBreak:  it.IsBreak,
		})
	}
	return doc
}

// WriteJSON writes the full run document to w in JSON format.
func WriteJSON(w io.Writer, res pipeline.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(res))
}

// WriteMatrixCSV writes the allocation matrix to w: one row per work, one
// column per rehearsal, plus the required and scheduled totals.
func WriteMatrixCSV(w io.Writer, alloc plan.Allocation) error {
	cw := csv.NewWriter(w)

	header := []string{"title"}
	for _, seq := range alloc.Sequences {
		header = append(header, "r"+strconv.Itoa(seq))
	}
	header = append(header, "required_min", "scheduled_min")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, title := range alloc.Titles {
		rec := []string{title}
		for _, seq := range alloc.Sequences {
			rec = append(rec, strconv.Itoa(alloc.Minutes(title, seq)))
		}
		rec = append(rec,
			strconv.Itoa(alloc.Required[title]),
			strconv.Itoa(alloc.WorkTotal(title)))
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteProgrammeCSV writes the ordered programme to w: one row per slot
// with its grouping and load details.
func WriteProgrammeCSV(w io.Writer, res pipeline.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"rehearsal", "position", "title", "group", "movement_order", "minutes", "player_load"}); err != nil {
		return err
	}
	for _, row := range NewDocument(res).Programme {
		rec := []string{
			strconv.Itoa(row.Sequence),
			strconv.Itoa(row.Position),
			row.Title,
			row.GroupKey,
			strconv.Itoa(row.MovementOrder),
			strconv.Itoa(row.Minutes),
			strconv.FormatFloat(row.PlayerLoad, 'f', -1, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTimelineCSV writes the timed running order to w.
func WriteTimelineCSV(w io.Writer, res pipeline.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"rehearsal", "start", "end", "minutes", "title"}); err != nil {
		return err
	}
	for _, it := range res.Timeline {
		rec := []string{
			strconv.Itoa(it.Sequence),
			it.Start.Format(time.RFC3339),
			it.End.Format(time.RFC3339),
			strconv.Itoa(it.Minutes),
			it.Title,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

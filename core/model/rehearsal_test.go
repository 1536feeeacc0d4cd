package model

import (
	"testing"
	"time"
)

func TestRehearsalTokens(t *testing.T) {
	r := Rehearsal{Sequence: 1, DurationMin: 94}
	if got := r.Tokens(5); got != 18 {
		t.Fatalf("tokens = %d, want 18", got)
	}
	if got := r.SnappedCapacity(5); got != 90 {
		t.Fatalf("snapped capacity = %d, want 90", got)
	}
	if got := r.Remainder(5); got != 4 {
		t.Fatalf("remainder = %d, want 4", got)
	}
}

func TestRehearsalBreakReducesCapacity(t *testing.T) {
	r := Rehearsal{Sequence: 1, DurationMin: 120, BreakMin: 15}
	if got := r.WorkingMinutes(); got != 105 {
		t.Fatalf("working minutes = %d, want 105", got)
	}
	if got := r.SnappedCapacity(5); got != 105 {
		t.Fatalf("snapped capacity = %d, want 105 with the break excluded", got)
	}
	if got := r.Tokens(10); got != 10 {
		t.Fatalf("tokens = %d, want 10", got)
	}
	if got := r.Remainder(10); got != 5 {
		t.Fatalf("remainder = %d, want 5", got)
	}
}

func TestRehearsalBreakSwallowsSession(t *testing.T) {
	r := Rehearsal{Sequence: 1, DurationMin: 20, BreakMin: 30}
	if got := r.WorkingMinutes(); got != 0 {
		t.Fatalf("working minutes = %d, want 0 when the break exceeds the session", got)
	}
	if got := r.Tokens(5); got != 0 {
		t.Fatalf("tokens = %d, want 0", got)
	}
}

func TestRehearsalTokensZero(t *testing.T) {
	r := Rehearsal{Sequence: 1, DurationMin: 3}
	if got := r.Tokens(5); got != 0 {
		t.Fatalf("tokens = %d, want 0 for sub-granularity session", got)
	}
}

func TestRehearsalStart(t *testing.T) {
	r := Rehearsal{
		Sequence: 1,
		Date:     time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC),
		StartMin: 19*60 + 30,
	}
	want := time.Date(2026, time.September, 14, 19, 30, 0, 0, time.UTC)
	if got := r.Start(); !got.Equal(want) {
		t.Fatalf("start = %v, want %v", got, want)
	}
}

func TestRehearsalValidate(t *testing.T) {
	ok := Rehearsal{Sequence: 1, DurationMin: 120, BreakMin: 15, StartMin: 19 * 60}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := (Rehearsal{Sequence: 0, DurationMin: 120}).Validate(); err == nil {
		t.Fatalf("expected error for zero sequence")
	}
	if err := (Rehearsal{Sequence: 1, DurationMin: -5}).Validate(); err == nil {
		t.Fatalf("expected error for negative duration")
	}
	if err := (Rehearsal{Sequence: 1, DurationMin: 60, StartMin: 25 * 60}).Validate(); err == nil {
		t.Fatalf("expected error for out-of-range start")
	}
}

package surface

import (
	"errors"
	"testing"
)

func TestNewMemory(t *testing.T) {
	m := NewMemory("scratch", "one\ntwo\nthree")
	if m.Name() != "scratch" {
		t.Fatalf("Name = %q", m.Name())
	}
	if !m.Writable() {
		t.Fatal("new surface not writable")
	}
	if m.LineCount() != 3 {
		t.Fatalf("LineCount = %d, want 3", m.LineCount())
	}
	line, err := m.Line(1)
	if err != nil || line != "two" {
		t.Fatalf("Line(1) = %q, %v", line, err)
	}
	if _, err := m.Line(3); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Line(3) err = %v, want ErrOutOfRange", err)
	}

	empty := NewMemory("empty", "")
	if empty.LineCount() != 1 {
		t.Fatalf("empty surface LineCount = %d, want 1", empty.LineCount())
	}
}

func TestInsertSingleLine(t *testing.T) {
	m := NewMemory("s", "hello world")
	end, err := m.Insert(Position{Line: 0, Col: 5}, ",")
	if err != nil {
		t.Fatal(err)
	}
	if m.Text() != "hello, world" {
		t.Fatalf("Text = %q", m.Text())
	}
	if end != (Position{Line: 0, Col: 6}) {
		t.Fatalf("end = %v", end)
	}
}

func TestInsertMultiLine(t *testing.T) {
	m := NewMemory("s", "ab")
	end, err := m.Insert(Position{Line: 0, Col: 1}, "x\ny")
	if err != nil {
		t.Fatal(err)
	}
	if m.Text() != "ax\nyb" {
		t.Fatalf("Text = %q", m.Text())
	}
	if end != (Position{Line: 1, Col: 1}) {
		t.Fatalf("end = %v", end)
	}
}

func TestDeleteWithinLine(t *testing.T) {
	m := NewMemory("s", "hello world")
	removed, err := m.Delete(Range{
		Start: Position{Line: 0, Col: 5},
		End:   Position{Line: 0, Col: 11},
	})
	if err != nil {
		t.Fatal(err)
	}
	if removed != " world" {
		t.Fatalf("removed = %q", removed)
	}
	if m.Text() != "hello" {
		t.Fatalf("Text = %q", m.Text())
	}
}

func TestDeleteAcrossLines(t *testing.T) {
	m := NewMemory("s", "one\ntwo\nthree")
	removed, err := m.Delete(Range{
		Start: Position{Line: 0, Col: 2},
		End:   Position{Line: 2, Col: 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	if removed != "e\ntwo\nthr" {
		t.Fatalf("removed = %q", removed)
	}
	if m.Text() != "onee" {
		t.Fatalf("Text = %q", m.Text())
	}
}

func TestDeleteNormalizesReversedRange(t *testing.T) {
	m := NewMemory("s", "abcdef")
	removed, err := m.Delete(Range{
		Start: Position{Line: 0, Col: 4},
		End:   Position{Line: 0, Col: 1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if removed != "bcd" || m.Text() != "aef" {
		t.Fatalf("removed = %q, Text = %q", removed, m.Text())
	}
}

func TestReplace(t *testing.T) {
	m := NewMemory("s", "good morning")
	removed, err := m.Replace(Range{
		Start: Position{Line: 0, Col: 5},
		End:   Position{Line: 0, Col: 12},
	}, "night")
	if err != nil {
		t.Fatal(err)
	}
	if removed != "morning" {
		t.Fatalf("removed = %q", removed)
	}
	if m.Text() != "good night" {
		t.Fatalf("Text = %q", m.Text())
	}
}

func TestReadOnlyRefusesMutation(t *testing.T) {
	m := NewMemory("s", "text")
	m.SetWritable(false)

	if _, err := m.Insert(Position{}, "x"); !errors.Is(err, ErrNotWritable) {
		t.Fatalf("Insert err = %v, want ErrNotWritable", err)
	}
	if _, err := m.Delete(Range{End: Position{Col: 1}}); !errors.Is(err, ErrNotWritable) {
		t.Fatalf("Delete err = %v, want ErrNotWritable", err)
	}
	if m.Text() != "text" {
		t.Fatalf("read-only surface changed: %q", m.Text())
	}
}

func TestCursorClamping(t *testing.T) {
	m := NewMemory("s", "ab\ncd")
	m.SetCursor(Position{Line: 9, Col: 9})
	if got := m.Cursor(); got != (Position{Line: 1, Col: 2}) {
		t.Fatalf("clamped cursor = %v", got)
	}
	m.SetCursor(Position{Line: -1, Col: -1})
	if got := m.Cursor(); got != (Position{}) {
		t.Fatalf("clamped cursor = %v", got)
	}

	// Deleting under the cursor pulls it back into range.
	m.SetCursor(Position{Line: 1, Col: 2})
	if _, err := m.Delete(Range{Start: Position{Line: 0, Col: 0}, End: Position{Line: 1, Col: 1}}); err != nil {
		t.Fatal(err)
	}
	if got := m.Cursor(); got != (Position{Line: 0, Col: 1}) {
		t.Fatalf("cursor after delete = %v", got)
	}
}

func TestPositionAndRangeHelpers(t *testing.T) {
	a := Position{Line: 1, Col: 2}
	b := Position{Line: 1, Col: 5}
	if !a.Before(b) || b.Before(a) {
		t.Fatal("Before ordering wrong within a line")
	}
	if !a.Before(Position{Line: 2}) {
		t.Fatal("Before ordering wrong across lines")
	}
	r := Range{Start: b, End: a}.Normalize()
	if r.Start != a || r.End != b {
		t.Fatalf("Normalize = %+v", r)
	}
	if !(Range{Start: a, End: a}).IsEmpty() {
		t.Fatal("IsEmpty false for empty range")
	}
}

package surface

import "fmt"

// Position addresses a rune inside a surface. Line and Col are
// zero-based; Col counts runes, not bytes.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Before reports whether p precedes q in document order.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Col < q.Col
}

// Range is a half-open span [Start, End) in document order.
type Range struct {
	Start Position
	End   Position
}

// Normalize returns r with Start and End swapped if reversed.
func (r Range) Normalize() Range {
	if r.End.Before(r.Start) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// IsEmpty reports whether the range covers nothing.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// Surface is the text area commands act on. Implementations must be
// safe for concurrent use; the executor serializes mutations but status
// queries can race with them.
type Surface interface {
	// Name identifies the surface, e.g. for the % register.
	Name() string

	// Writable reports whether mutating commands may run.
	Writable() bool

	// LineCount returns the number of lines. A surface always has at
	// least one (possibly empty) line.
	LineCount() int

	// Line returns the text of line i without a trailing newline.
	Line(i int) (string, error)

	// Cursor returns the caret position.
	Cursor() Position

	// SetCursor moves the caret, clamping to valid positions.
	SetCursor(p Position)

	// Insert places text at p and returns the position after it.
	Insert(p Position, text string) (Position, error)

	// Delete removes r and returns the removed text.
	Delete(r Range) (string, error)

	// Replace substitutes text for r and returns the removed text.
	Replace(r Range, text string) (string, error)
}

// Messenger receives user-facing signals from the interpreter and the
// executor: at most one error per rejected command, transient status
// for pending state, and a clear when the state resolves.
type Messenger interface {
	Error(err error)
	Status(msg string)
	Clear()
}

// ExParser consumes a completed command-line string, ":" through Enter.
// The interpreter captures the text; parsing and execution of the ex
// language live behind this interface.
type ExParser interface {
	Execute(line string) error
}

// NopMessenger discards all signals.
type NopMessenger struct{}

func (NopMessenger) Error(error)   {}
func (NopMessenger) Status(string) {}
func (NopMessenger) Clear()        {}

package digraph

import (
	"github.com/veldin/keyweave/internal/input/key"
)

// State is the sub-machine position.
type State uint8

const (
	// Inactive means no digraph or literal input is underway.
	Inactive State = iota

	// AwaitingChar1 means the digraph introducer was seen.
	AwaitingChar1

	// AwaitingChar2 means the first digraph character was seen.
	AwaitingChar2

	// AwaitingLiteralDigits means a literal prefix was seen and digits
	// are accumulating.
	AwaitingLiteralDigits
)

// Verdict is the per-key outcome of feeding the machine.
type Verdict uint8

const (
	// Unhandled: the machine is inactive and did not look at the key.
	Unhandled Verdict = iota

	// Handled: the key was consumed and more input is needed.
	Handled

	// Done: the sequence completed and produced a character.
	Done

	// Bad: the sequence is invalid; the machine has reset itself.
	Bad
)

// Result is the outcome of one Feed call. When a non-digit key ends a
// literal sequence early, the terminating key is returned in Replay and
// must be fed back through the dispatcher.
type Result struct {
	Verdict Verdict
	Rune    rune
	Replay  *key.Event
}

// base identifies the radix of an active literal sequence.
type base uint8

const (
	baseDecimal base = iota
	baseOctal
	baseHex
)

// Machine is the digraph/literal input sub-state-machine. Feed it one key
// at a time; it reports per key whether it consumed the key, completed a
// character, or rejected the sequence.
type Machine struct {
	state State

	first rune // first digraph character

	literalBase base
	digitsMax   int
	digitsSeen  int
	value       rune
}

// New returns an inactive machine.
func New() *Machine {
	return &Machine{}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Active reports whether a sequence is underway.
func (m *Machine) Active() bool { return m.state != Inactive }

// Reset returns the machine to Inactive.
func (m *Machine) Reset() {
	m.state = Inactive
	m.first = 0
	m.digitsSeen = 0
	m.value = 0
}

// BeginDigraph arms the machine for a two-character digraph.
func (m *Machine) BeginDigraph() {
	m.Reset()
	m.state = AwaitingChar1
}

// BeginLiteral arms the machine for a literal character code. The radix
// and digit limit are fixed by the first key fed afterwards.
func (m *Machine) BeginLiteral() {
	m.Reset()
	m.state = AwaitingLiteralDigits
	m.literalBase = baseDecimal
	m.digitsMax = 3
}

// Feed advances the machine with one key.
func (m *Machine) Feed(ev key.Event) Result {
	switch m.state {
	case Inactive:
		return Result{Verdict: Unhandled}
	case AwaitingChar1:
		return m.feedChar1(ev)
	case AwaitingChar2:
		return m.feedChar2(ev)
	case AwaitingLiteralDigits:
		return m.feedLiteral(ev)
	default:
		m.Reset()
		return Result{Verdict: Bad}
	}
}

func (m *Machine) feedChar1(ev key.Event) Result {
	if !ev.IsPrintable() || ev.IsModified() {
		m.Reset()
		return Result{Verdict: Bad}
	}
	m.first = ev.Rune
	m.state = AwaitingChar2
	return Result{Verdict: Handled}
}

func (m *Machine) feedChar2(ev key.Event) Result {
	if !ev.IsPrintable() || ev.IsModified() {
		m.Reset()
		return Result{Verdict: Bad}
	}
	r, ok := Lookup(m.first, ev.Rune)
	m.Reset()
	if !ok {
		return Result{Verdict: Bad}
	}
	return Result{Verdict: Done, Rune: r}
}

func (m *Machine) feedLiteral(ev key.Event) Result {
	// The first key may switch the radix and digit limit.
	if m.digitsSeen == 0 && m.literalBase == baseDecimal && ev.IsRune() && !ev.IsModified() {
		switch ev.Rune {
		case 'x', 'X':
			m.literalBase = baseHex
			m.digitsMax = 2
			return Result{Verdict: Handled}
		case 'u':
			m.literalBase = baseHex
			m.digitsMax = 4
			return Result{Verdict: Handled}
		case 'U':
			m.literalBase = baseHex
			m.digitsMax = 8
			return Result{Verdict: Handled}
		case 'o', 'O':
			m.literalBase = baseOctal
			m.digitsMax = 3
			return Result{Verdict: Handled}
		}
	}

	if d, ok := m.digitValue(ev); ok {
		m.value = m.value*rune(m.radix()) + rune(d)
		m.digitsSeen++
		if m.digitsSeen >= m.digitsMax {
			r := m.value
			m.Reset()
			return Result{Verdict: Done, Rune: r}
		}
		return Result{Verdict: Handled}
	}

	// A non-digit ends the sequence.
	if m.digitsSeen > 0 {
		// Early terminator: finish with what we have and replay the key.
		r := m.value
		replay := ev
		m.Reset()
		return Result{Verdict: Done, Rune: r, Replay: &replay}
	}

	// No digits at all: the key itself is taken literally.
	if ev.IsRune() && !ev.IsModified() {
		r := ev.Rune
		m.Reset()
		return Result{Verdict: Done, Rune: r}
	}
	if ev.IsEnter() {
		m.Reset()
		return Result{Verdict: Done, Rune: '\r'}
	}
	if ev.IsEscape() {
		m.Reset()
		return Result{Verdict: Done, Rune: 0x1b}
	}

	m.Reset()
	return Result{Verdict: Bad}
}

func (m *Machine) radix() int {
	switch m.literalBase {
	case baseOctal:
		return 8
	case baseHex:
		return 16
	default:
		return 10
	}
}

func (m *Machine) digitValue(ev key.Event) (int, bool) {
	if !ev.IsRune() || ev.IsModified() {
		return 0, false
	}
	r := ev.Rune
	switch m.literalBase {
	case baseDecimal:
		if r >= '0' && r <= '9' {
			return int(r - '0'), true
		}
	case baseOctal:
		if r >= '0' && r <= '7' {
			return int(r - '0'), true
		}
	case baseHex:
		switch {
		case r >= '0' && r <= '9':
			return int(r - '0'), true
		case r >= 'a' && r <= 'f':
			return int(r-'a') + 10, true
		case r >= 'A' && r <= 'F':
			return int(r-'A') + 10, true
		}
	}
	return 0, false
}

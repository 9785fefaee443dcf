package command

import (
	"errors"
	"fmt"

	"github.com/veldin/keyweave/internal/input/action"
	"github.com/veldin/keyweave/internal/input/key"
)

// State is the builder lifecycle position.
type State uint8

const (
	// StateNew is the idle state before and after each command.
	StateNew State = iota

	// StateInProgress means keys have contributed to an incomplete command.
	StateInProgress

	// StateReady means the topmost part needs no further argument and a
	// Command can be built.
	StateReady

	// StateBad is the terminal state after malformed input. Only an
	// explicit Reset leaves it.
	StateBad

	// StateError is the terminal state after an internal failure such as
	// mapping recursion overflow. Only an explicit Reset leaves it.
	StateError
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateInProgress:
		return "inProgress"
	case StateReady:
		return "ready"
	case StateBad:
		return "bad"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Part is a partially resolved action on the builder's stack, together
// with the key that triggered it and the count typed before it.
type Part struct {
	Def    *action.Def
	Key    key.Event
	Count  CountState
	Arg    Argument
	HasArg bool
}

// NeedsArg reports whether the part still awaits an argument.
func (p *Part) NeedsArg() bool {
	return p.Def != nil && p.Def.Arg != action.ArgNone && !p.HasArg
}

// Builder assembles one command from a stream of classified key events.
// It is the single mutable value of an interpretation session; the
// interpreter drives it and hands off the built Command on StateReady.
type Builder struct {
	keys            []key.Event
	count           CountState
	register        rune
	registerPending bool
	parts           []Part
	state           State
}

// NewBuilder returns an idle builder.
func NewBuilder() *Builder {
	return &Builder{keys: make([]key.Event, 0, 8)}
}

// State returns the lifecycle state.
func (b *Builder) State() State { return b.state }

// Keys returns the key events consumed so far.
func (b *Builder) Keys() []key.Event { return b.keys }

// Count returns the count currently being accumulated.
func (b *Builder) Count() *CountState { return &b.count }

// Register returns the selected register, or 0.
func (b *Builder) Register() rune { return b.register }

// RegisterPending reports whether a register name is being awaited.
func (b *Builder) RegisterPending() bool { return b.registerPending }

// Reset returns the builder to idle, dropping all accumulated state.
func (b *Builder) Reset() {
	b.keys = b.keys[:0]
	b.count.Reset()
	b.register = 0
	b.registerPending = false
	b.parts = b.parts[:0]
	b.state = StateNew
}

// terminal reports whether the builder is stuck until Reset.
func (b *Builder) terminal() bool {
	return b.state == StateBad || b.state == StateError
}

// Record appends a consumed key to the command's history.
func (b *Builder) Record(ev key.Event) {
	if b.terminal() {
		return
	}
	b.keys = append(b.keys, ev)
	if b.state == StateNew {
		b.state = StateInProgress
	}
}

// PushDigit folds a digit into the pending count.
func (b *Builder) PushDigit(r rune) bool {
	if b.terminal() || !b.count.PushDigit(r) {
		return false
	}
	if b.state == StateNew {
		b.state = StateInProgress
	}
	return true
}

// PopDigit drops the last count digit. Valid only while a count is pending.
func (b *Builder) PopDigit() bool {
	return b.count.PopDigit()
}

// BeginRegister marks that the next key names a register.
func (b *Builder) BeginRegister() {
	if b.terminal() {
		return
	}
	b.registerPending = true
	if b.state == StateNew {
		b.state = StateInProgress
	}
}

// SetRegister records the selected register and clears the pending flag.
func (b *Builder) SetRegister(r rune) {
	b.register = r
	b.registerPending = false
}

// ExpectedArg returns the argument kind the topmost part awaits, or
// action.ArgNone when no part is pending an argument.
func (b *Builder) ExpectedArg() action.ArgKind {
	if top := b.top(); top != nil && top.NeedsArg() {
		return top.Def.Arg
	}
	return action.ArgNone
}

// Top returns the topmost part, or nil.
func (b *Builder) Top() *Part { return b.top() }

// Depth returns the number of stacked parts.
func (b *Builder) Depth() int { return len(b.parts) }

// PopPart removes and returns the topmost part. The interpreter pops a
// completed motion part to fold it into the operator part beneath.
func (b *Builder) PopPart() (Part, bool) {
	if len(b.parts) == 0 {
		return Part{}, false
	}
	part := b.parts[len(b.parts)-1]
	b.parts = b.parts[:len(b.parts)-1]
	return part, true
}

func (b *Builder) top() *Part {
	if len(b.parts) == 0 {
		return nil
	}
	return &b.parts[len(b.parts)-1]
}

// Push stacks a resolved action. The count typed so far attaches to this
// part and a fresh count begins for any following part. The builder moves
// to StateReady when the part needs no argument.
func (b *Builder) Push(def *action.Def, trigger key.Event) {
	if b.terminal() {
		return
	}
	part := Part{Def: def, Key: trigger, Count: b.count}
	b.count.Reset()
	b.parts = append(b.parts, part)
	if part.NeedsArg() {
		b.state = StateInProgress
	} else {
		b.state = StateReady
	}
}

// Capture completes the topmost part with its argument.
// Capturing with no part pending is an internal error.
func (b *Builder) Capture(arg Argument) error {
	if b.terminal() {
		return fmt.Errorf("builder is %s until reset", b.state)
	}
	top := b.top()
	if top == nil || !top.NeedsArg() {
		return errors.New("no pending argument to capture")
	}
	top.Arg = arg
	top.HasArg = true
	b.state = StateReady
	return nil
}

// MarkBad drives the builder to its terminal bad state.
func (b *Builder) MarkBad() { b.state = StateBad }

// MarkError drives the builder to its terminal error state.
func (b *Builder) MarkError() { b.state = StateError }

// IsDoubledOperator reports whether ev repeats the key that opened the
// pending operator part, the "dd" form that selects the linewise variant.
func (b *Builder) IsDoubledOperator(ev key.Event) bool {
	top := b.top()
	if top == nil || !top.NeedsArg() || top.Def.Arg != action.ArgMotion {
		return false
	}
	return ev.IsRune() && ev.Rune == top.Def.OperatorKey
}

// ResolveLinewise swaps the pending operator part for its doubled-key
// linewise variant, completing the command.
func (b *Builder) ResolveLinewise(linewise *action.Def) {
	if b.terminal() {
		return
	}
	top := b.top()
	if top == nil {
		return
	}
	top.Def = linewise
	top.HasArg = true
	b.state = StateReady
}

// Build freezes the builder into an immutable Command. The builder must be
// in StateReady with exactly one part awaiting nothing.
func (b *Builder) Build() (*Command, error) {
	if b.state != StateReady {
		return nil, fmt.Errorf("builder not ready: %s", b.state)
	}
	top := b.top()
	if top == nil || top.NeedsArg() {
		return nil, errors.New("builder ready without a complete part")
	}

	count := top.Count.Get()
	if arg := top.Arg; arg.Type == ArgTypeMotion && arg.Motion != nil {
		count = CombineCounts(count, arg.Motion.Count)
	}
	// A still-pending trailing count folds in as well.
	if b.count.Active {
		count = CombineCounts(count, b.count.Get())
	}

	keys := make([]key.Event, len(b.keys))
	copy(keys, b.keys)

	return &Command{
		Action:   top.Def,
		Count:    count,
		Register: b.register,
		Arg:      top.Arg,
		Keys:     keys,
	}, nil
}

// Command is an immutable, fully resolved editing command ready for the
// execution collaborator.
type Command struct {
	// Action is the resolved action definition.
	Action *action.Def

	// Count is the effective repeat count, at least 1.
	Count int

	// Register is the selected register, or 0 for the default.
	Register rune

	// Arg is the captured argument, if the action required one.
	Arg Argument

	// Keys is the raw key history that produced the command, kept for
	// repeat and macro replay.
	Keys []key.Event
}

// Mutating reports whether the command writes to the surface.
func (c *Command) Mutating() bool {
	return c.Action != nil && c.Action.Mutating
}

// String renders the command for messages and logs.
func (c *Command) String() string {
	name := "<nil>"
	if c.Action != nil {
		name = c.Action.Name
	}
	if c.Arg.Type == ArgTypeNone {
		return fmt.Sprintf("%dx %s", c.Count, name)
	}
	return fmt.Sprintf("%dx %s %s", c.Count, name, c.Arg)
}

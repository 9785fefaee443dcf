package input

import (
	"github.com/veldin/keyweave/internal/input/action"
	"github.com/veldin/keyweave/internal/input/command"
	"github.com/veldin/keyweave/internal/input/key"
	"github.com/veldin/keyweave/internal/input/mode"
)

// Decision is a captured classification of one key event against a
// snapshot of session state. It answers "will this key be handled"
// without committing to process it; Apply later performs the commit,
// rejecting if the session has moved on since.
type Decision struct {
	// Event is the key the decision covers.
	Event key.Event

	// Consumed predicts whether the session will handle the event.
	Consumed bool

	generation uint64
	valid      bool
}

// Classify snapshots whether the session would consume ev, without
// mutating any state.
func (i *Interpreter) Classify(ev key.Event) Decision {
	i.mu.Lock()
	defer i.mu.Unlock()
	return Decision{
		Event:      ev,
		Consumed:   i.wouldConsume(ev),
		generation: i.generation,
		valid:      true,
	}
}

// Apply commits a prior classification. It fails with ErrStateDrift if
// any event was processed between Classify and Apply, since the
// decision would then describe a state that no longer exists.
func (i *Interpreter) Apply(d Decision) (Result, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !d.valid {
		return Result{}, ErrStateDrift
	}
	if d.generation != i.generation {
		return Result{}, ErrStateDrift
	}
	if i.closed {
		return Result{Mode: i.mode}, nil
	}
	return i.handleLocked(d.Event), nil
}

// wouldConsume predicts the dispatcher outcome without side effects.
// Anything mid-command is consumed; otherwise the key must begin a
// mapping, a count, or a command-tree path, or land in a text-entry
// mode, or be one of the always-handled keys.
func (i *Interpreter) wouldConsume(ev key.Event) bool {
	m := i.mode

	if i.resolver.HasPending() || i.digraphs.Active() ||
		i.builder.RegisterPending() || i.builder.Count().Active ||
		i.builder.ExpectedArg() != action.ArgNone ||
		i.builder.State() == command.StateInProgress || len(i.path) > 0 {
		return true
	}
	if m.IsTextEntry() || m.Kind == mode.Select {
		return true
	}
	if ev.IsEscape() {
		return true
	}
	if m.Kind == mode.Normal && ev.IsRune() && ev.Rune == 'c' && ev.Mods.Has(key.ModCtrl) {
		return true
	}
	if m.AcceptsCount() && ev.IsRune() && !ev.IsModified() && command.IsCountStart(ev.Rune) {
		return true
	}
	if (m.Kind == mode.Normal || m.IsVisual()) && ev.IsRune() && ev.Rune == '"' && !ev.Mods.Has(key.ModCtrl) {
		return true
	}
	if mp, longer := i.mappings.Lookup(m.Kind, key.SequenceOf(ev)); mp != nil || longer {
		return true
	}
	if tree := i.actions.Tree(m.Kind); tree != nil {
		if def, longer := tree.Walk([]key.Event{ev}); def != nil || longer {
			return true
		}
	}
	return false
}

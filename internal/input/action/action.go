package action

import "fmt"

// ArgKind describes the argument an action still needs before it can run.
type ArgKind uint8

const (
	// ArgNone means the action is complete as soon as its keys are typed.
	ArgNone ArgKind = iota

	// ArgCharacter means the action consumes the next raw key as a
	// character argument (f, r, m, @).
	ArgCharacter

	// ArgMotion means the action is an operator awaiting a motion or
	// text object (d, c, y).
	ArgMotion

	// ArgDigraph means the action consumes a digraph sequence.
	ArgDigraph

	// ArgExString means the action consumes a free-text command line.
	ArgExString
)

// String returns the argument kind name.
func (a ArgKind) String() string {
	switch a {
	case ArgNone:
		return "none"
	case ArgCharacter:
		return "character"
	case ArgMotion:
		return "motion"
	case ArgDigraph:
		return "digraph"
	case ArgExString:
		return "exstring"
	default:
		return fmt.Sprintf("argkind(%d)", uint8(a))
	}
}

// Wise describes the shape of the range an action covers.
type Wise uint8

const (
	CharWise Wise = iota
	LineWise
	BlockWise
)

// Def is a registered editing action. The interpreter only ever inspects
// the metadata here; the behavior behind Name lives with the execution
// collaborator.
type Def struct {
	// Name identifies the action, e.g. "cursor.wordForward", "edit.delete".
	Name string

	// Arg is the argument the action requires after its trigger keys.
	Arg ArgKind

	// Mutating marks actions that modify the editing surface. Mutating
	// commands are refused on read-only surfaces.
	Mutating bool

	// Motion marks actions usable as an operator's target.
	Motion bool

	// Wise is the range shape for motions and operators.
	Wise Wise

	// Inclusive marks motions that cover the character under the cursor.
	Inclusive bool

	// LinewiseName, on operators, names the whole-line variant triggered
	// by doubling the operator key (dd, yy, cc).
	LinewiseName string

	// OperatorKey is the key that introduced an operator, used to detect
	// the doubled-key linewise form.
	OperatorKey rune

	// EntersInsert marks operators that finish in insert mode (change).
	EntersInsert bool

	// ExpectsInput marks actions that leave the session awaiting further
	// input, suppressing the automatic return-mode restore.
	ExpectsInput bool
}

// IsOperator reports whether the def is an operator awaiting a motion.
func (d *Def) IsOperator() bool {
	return d.Arg == ArgMotion
}

// Registry resolves action names to their definitions. The interpreter
// queries it for argument requirements and read/write classification.
type Registry interface {
	// Resolve returns the definition for an action name.
	Resolve(name string) (*Def, bool)
}

// StaticRegistry is a Registry backed by a name map. The static command
// trees and any user-scripted actions register here.
type StaticRegistry struct {
	defs map[string]*Def
}

// NewStaticRegistry returns an empty registry.
func NewStaticRegistry() *StaticRegistry {
	return &StaticRegistry{defs: make(map[string]*Def)}
}

// Register adds a definition, replacing any existing one with the same name.
func (r *StaticRegistry) Register(def *Def) error {
	if def == nil || def.Name == "" {
		return fmt.Errorf("action definition requires a name")
	}
	r.defs[def.Name] = def
	return nil
}

// Resolve returns the definition for name.
func (r *StaticRegistry) Resolve(name string) (*Def, bool) {
	def, ok := r.defs[name]
	return def, ok
}

// Names returns all registered action names.
func (r *StaticRegistry) Names() []string {
	names := make([]string, 0, len(r.defs))
	for name := range r.defs {
		names = append(names, name)
	}
	return names
}

package mode

import "fmt"

// Kind is the closed set of editor modes. Every dispatch decision switches
// exhaustively over Kind so an unhandled mode is a compile-time smell, not a
// silent runtime fallthrough.
type Kind uint8

const (
	Normal Kind = iota
	Insert
	Replace
	Visual
	Select
	OperatorPending
	CommandLine
)

// String returns the mode name as shown in the status area.
func (k Kind) String() string {
	switch k {
	case Normal:
		return "normal"
	case Insert:
		return "insert"
	case Replace:
		return "replace"
	case Visual:
		return "visual"
	case Select:
		return "select"
	case OperatorPending:
		return "operator-pending"
	case CommandLine:
		return "command-line"
	default:
		return fmt.Sprintf("mode(%d)", uint8(k))
	}
}

// VisualKind distinguishes the selection shape of Visual and Select modes.
type VisualKind uint8

const (
	CharWise VisualKind = iota
	LineWise
	BlockWise
)

// String returns the selection shape name.
func (v VisualKind) String() string {
	switch v {
	case CharWise:
		return "char"
	case LineWise:
		return "line"
	case BlockWise:
		return "block"
	default:
		return fmt.Sprintf("visual(%d)", uint8(v))
	}
}

// Mode is an editor mode value. Transient modes (Visual, Select,
// OperatorPending, CommandLine) carry the mode to restore when they
// complete; for the others ReturnTo is Normal and unused.
type Mode struct {
	Kind     Kind
	Visual   VisualKind
	ReturnTo Kind
}

// NewNormal returns normal mode.
func NewNormal() Mode { return Mode{Kind: Normal} }

// NewInsert returns insert mode.
func NewInsert() Mode { return Mode{Kind: Insert} }

// NewReplace returns replace mode.
func NewReplace() Mode { return Mode{Kind: Replace} }

// NewVisual returns visual mode with the given selection shape.
func NewVisual(v VisualKind, returnTo Kind) Mode {
	return Mode{Kind: Visual, Visual: v, ReturnTo: returnTo}
}

// NewSelect returns select mode with the given selection shape.
func NewSelect(v VisualKind, returnTo Kind) Mode {
	return Mode{Kind: Select, Visual: v, ReturnTo: returnTo}
}

// NewOperatorPending returns operator-pending mode. Normal and Visual
// host pending operators directly; Insert and Replace are return
// targets when the operator was issued from one-shot normal, so the
// motion completing lands back in text entry.
func NewOperatorPending(returnTo Kind) (Mode, error) {
	switch returnTo {
	case Normal, Visual, Insert, Replace:
		return Mode{Kind: OperatorPending, ReturnTo: returnTo}, nil
	default:
		return Mode{}, fmt.Errorf("operator-pending cannot return to %s", returnTo)
	}
}

// NewCommandLine returns command-line mode. The return target must be
// returnable from a command (Normal, Insert, or Replace).
func NewCommandLine(returnTo Kind) (Mode, error) {
	if !ReturnableFromCmd(returnTo) {
		return Mode{}, fmt.Errorf("command-line cannot return to %s", returnTo)
	}
	return Mode{Kind: CommandLine, ReturnTo: returnTo}, nil
}

// ReturnableFromCmd reports whether k may be the return target of
// command-line mode.
func ReturnableFromCmd(k Kind) bool {
	switch k {
	case Normal, Insert, Replace:
		return true
	case Visual, Select, OperatorPending, CommandLine:
		return false
	default:
		return false
	}
}

// IsTextEntry reports whether raw printable keys insert text in this mode.
func (m Mode) IsTextEntry() bool {
	switch m.Kind {
	case Insert, Replace, CommandLine:
		return true
	case Normal, Visual, Select, OperatorPending:
		return false
	default:
		return false
	}
}

// AcceptsCount reports whether a count prefix may start in this mode.
func (m Mode) AcceptsCount() bool {
	switch m.Kind {
	case Normal, Visual, Select, OperatorPending:
		return true
	case Insert, Replace, CommandLine:
		return false
	default:
		return false
	}
}

// IsVisual reports whether the mode is any visual or select variant.
func (m Mode) IsVisual() bool {
	return m.Kind == Visual || m.Kind == Select
}

// String renders the mode for the status area, e.g. "visual(line)".
func (m Mode) String() string {
	if m.IsVisual() && m.Visual != CharWise {
		return fmt.Sprintf("%s(%s)", m.Kind, m.Visual)
	}
	return m.Kind.String()
}

// Resume returns the mode to restore after a transient mode completes.
// For non-transient modes it returns the mode itself.
func (m Mode) Resume() Mode {
	switch m.Kind {
	case Visual, Select, OperatorPending, CommandLine:
		switch m.ReturnTo {
		case Insert:
			return NewInsert()
		case Replace:
			return NewReplace()
		case Visual:
			return NewVisual(m.Visual, Normal)
		default:
			return NewNormal()
		}
	case Normal, Insert, Replace:
		return m
	default:
		return NewNormal()
	}
}

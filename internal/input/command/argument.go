package command

import "fmt"

// ArgType tags the payload carried by an Argument.
type ArgType uint8

const (
	ArgTypeNone ArgType = iota
	ArgTypeChar
	ArgTypeMotion
	ArgTypeDigraph
	ArgTypeEx
)

// Argument is the captured payload for an action that required one: a raw
// character, a completed motion command, a digraph result, or an ex
// command-line string. Exactly one field matching Type is meaningful.
type Argument struct {
	Type   ArgType
	Char   rune
	Motion *Command
	Ex     string
}

// CharArg wraps a character argument.
func CharArg(r rune) Argument { return Argument{Type: ArgTypeChar, Char: r} }

// MotionArg wraps a completed motion command.
func MotionArg(m *Command) Argument { return Argument{Type: ArgTypeMotion, Motion: m} }

// DigraphArg wraps a digraph result character.
func DigraphArg(r rune) Argument { return Argument{Type: ArgTypeDigraph, Char: r} }

// ExArg wraps an ex command-line string.
func ExArg(s string) Argument { return Argument{Type: ArgTypeEx, Ex: s} }

// String renders the argument for messages and logs.
func (a Argument) String() string {
	switch a.Type {
	case ArgTypeNone:
		return "none"
	case ArgTypeChar:
		return fmt.Sprintf("char(%q)", a.Char)
	case ArgTypeMotion:
		if a.Motion != nil && a.Motion.Action != nil {
			return fmt.Sprintf("motion(%s)", a.Motion.Action.Name)
		}
		return "motion"
	case ArgTypeDigraph:
		return fmt.Sprintf("digraph(%q)", a.Char)
	case ArgTypeEx:
		return fmt.Sprintf("ex(%q)", a.Ex)
	default:
		return "unknown"
	}
}

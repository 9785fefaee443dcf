// Package surface defines the collaborator interfaces the interpreter
// acts through: the editing Surface, the Messenger for user-facing
// signals, and the ExParser for completed command lines. It also
// provides the in-memory surface used by the demo binary and tests.
package surface

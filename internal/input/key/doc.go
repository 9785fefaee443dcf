// Package key defines the key event types shared by the interpreter.
//
//   - Code: identifies a keyboard key (special keys, function keys, or runes)
//   - Modifier: a bit set of held modifier keys
//   - Event: a single immutable key press; compares with ==
//   - Sequence: an ordered run of events
//
// Specification strings for bindings and user mappings are parsed with
// Parse ("<C-s>", "Enter", "a") and ParseSequence ("gg", "C-x C-s", "diw").
package key

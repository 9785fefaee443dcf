// Package mode models the editor mode as a closed tagged value.
//
// A Mode is the Kind (normal, insert, replace, visual, select,
// operator-pending, command-line) plus the selection shape for visual
// variants and the mode to return to when a transient mode completes.
// Constructors enforce the two structural invariants: command-line mode
// only returns to Normal, Insert, or Replace, and operator-pending mode
// is only hosted by Normal or Visual.
package mode

// Package command assembles key events into executable editing commands.
//
// A Builder is the mutable heart of one interpretation session: it
// accumulates the count, the selected register, and a stack of partially
// resolved action parts, tracking which argument the topmost part still
// needs. When the top part is complete the builder freezes into an
// immutable Command carrying the resolved count (default 1), register,
// and captured argument.
package command

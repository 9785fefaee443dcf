// Package input is the key-event interpretation engine: it consumes a
// stream of key events and incrementally resolves them into executable
// editing commands.
//
// An Interpreter is one session per input stream. Each key passes
// through the user-mapping resolver (buffering ambiguous prefixes
// against the timeout window), then an ordered classification chain:
// count digits, count deletion, the interrupt key, pending character
// arguments, register selection, the digraph/literal machine, the
// per-mode command tree, and finally the mode's raw-input fallback.
// Mapping expansions and macro playback re-enter the same chain through
// an iterative work list bounded by the configured recursion depth.
//
// Completed commands are handed to the Executor collaborator; the
// surface, register store, messenger, and ex parser collaborators are
// consumed through the interfaces in internal/surface.
package input

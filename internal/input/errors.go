package input

import "errors"

// Interpretation errors. Incomplete input is not an error: the session
// simply keeps waiting for keys. Everything below drives the command
// builder to its bad state and produces exactly one messenger signal.
var (
	// ErrInvalidRegister reports a key that cannot name a register.
	ErrInvalidRegister = errors.New("invalid register")

	// ErrInvalidArgument reports a key that cannot serve as the pending
	// argument, or a digraph pair with no table entry.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrRecursionLimit reports mapping expansion past maxmapdepth.
	ErrRecursionLimit = errors.New("mapping recursion limit exceeded")

	// ErrSurfaceNotWritable reports a mutating command against a
	// read-only surface.
	ErrSurfaceNotWritable = errors.New("surface not writable")

	// ErrUnmappedKey reports a key with no binding in a mode that has
	// no raw-input fallback.
	ErrUnmappedKey = errors.New("unmapped key")

	// ErrStateDrift reports an Apply whose Decision was classified
	// against an earlier session state.
	ErrStateDrift = errors.New("session state changed since classification")
)

package mapping

import (
	"github.com/veldin/keyweave/internal/input/key"
	"github.com/veldin/keyweave/internal/input/mode"
)

// Verdict is the outcome of feeding one key to the Resolver.
type Verdict uint8

const (
	// VerdictPending means the key was buffered: the typed prefix could
	// still grow into a longer mapping. The caller should arm the
	// ambiguity timer.
	VerdictPending Verdict = iota

	// VerdictExpanded means a mapping resolved. Expansion holds the
	// replacement keys; Replay holds any buffered keys that follow the
	// matched left-hand side and must be reprocessed after it.
	VerdictExpanded

	// VerdictRejected means the buffered keys match no mapping. Replay
	// holds them in order; the first one must be dispatched without
	// another mapping lookup or it would loop forever.
	VerdictRejected

	// VerdictRecursion means expanding would exceed the configured
	// mapping depth. The buffered keys are discarded.
	VerdictRecursion
)

// Result carries the verdict and its payload.
type Result struct {
	Verdict   Verdict
	Expansion []key.Event
	Recursive bool
	Depth     int
	Replay    []key.Event
}

// Resolver matches incoming keys against a Table, buffering ambiguous
// prefixes until they resolve, fail, or time out. It implements
// longest-match: a short mapping that is a prefix of a longer one is
// held back while keys keep arriving inside the ambiguity window.
//
// The Resolver does not own a timer; the interpreter arms one whenever
// Feed reports VerdictPending and calls Timeout when it fires.
type Resolver struct {
	table    *Table
	maxDepth int

	pending   []key.Event
	depth     int
	lastMatch *Mapping
	lastLen   int
}

// NewResolver builds a resolver over table. maxDepth bounds nested
// mapping expansion, matching the 'maxmapdepth' option.
func NewResolver(table *Table, maxDepth int) *Resolver {
	if maxDepth < 1 {
		maxDepth = 1
	}
	return &Resolver{table: table, maxDepth: maxDepth}
}

// SetMaxDepth adjusts the expansion bound for subsequent keys.
func (r *Resolver) SetMaxDepth(n int) {
	if n < 1 {
		n = 1
	}
	r.maxDepth = n
}

// HasPending reports whether keys are buffered awaiting disambiguation.
func (r *Resolver) HasPending() bool { return len(r.pending) > 0 }

// Pending returns a copy of the buffered keys.
func (r *Resolver) Pending() []key.Event {
	out := make([]key.Event, len(r.pending))
	copy(out, r.pending)
	return out
}

// Reset drops all buffered state without replay.
func (r *Resolver) Reset() {
	r.pending = nil
	r.depth = 0
	r.lastMatch = nil
	r.lastLen = 0
}

// Feed processes one key typed (or replayed) in mode k at the given
// expansion depth. Depth is 0 for keys the user typed and parent+1 for
// keys produced by a mapping expansion.
func (r *Resolver) Feed(k mode.Kind, ev key.Event, depth int) Result {
	r.pending = append(r.pending, ev)
	if depth > r.depth {
		r.depth = depth
	}

	seq := key.NewSequence()
	seq.Events = r.pending
	m, hasLonger := r.table.Lookup(k, seq)

	if m != nil {
		r.lastMatch = m
		r.lastLen = len(r.pending)
		if !hasLonger {
			return r.expand()
		}
		return Result{Verdict: VerdictPending}
	}
	if hasLonger {
		return Result{Verdict: VerdictPending}
	}

	// Dead end. Fall back to the longest mapping already seen, or give
	// the whole buffer back if there was none.
	if r.lastMatch != nil {
		return r.expand()
	}
	replay := r.pending
	r.Reset()
	return Result{Verdict: VerdictRejected, Replay: replay}
}

// Timeout resolves the buffered prefix after the ambiguity window
// expires: the longest mapping matched so far wins, otherwise the
// buffered keys are replayed unmapped.
func (r *Resolver) Timeout() Result {
	if len(r.pending) == 0 {
		return Result{Verdict: VerdictRejected}
	}
	if r.lastMatch != nil {
		return r.expand()
	}
	replay := r.pending
	r.Reset()
	return Result{Verdict: VerdictRejected, Replay: replay}
}

func (r *Resolver) expand() Result {
	m := r.lastMatch
	newDepth := r.depth + 1
	leftover := make([]key.Event, len(r.pending)-r.lastLen)
	copy(leftover, r.pending[r.lastLen:])
	r.Reset()

	if newDepth > r.maxDepth {
		return Result{Verdict: VerdictRecursion, Depth: newDepth}
	}

	expansion := make([]key.Event, len(m.RHS.Events))
	copy(expansion, m.RHS.Events)
	return Result{
		Verdict:   VerdictExpanded,
		Expansion: expansion,
		Recursive: m.Recursive,
		Depth:     newDepth,
		Replay:    leftover,
	}
}

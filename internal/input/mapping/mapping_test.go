package mapping

import (
	"testing"

	"github.com/veldin/keyweave/internal/input/key"
	"github.com/veldin/keyweave/internal/input/mode"
)

func mustMap(t *testing.T, tbl *Table, k mode.Kind, lhs, rhs string, recursive bool) {
	t.Helper()
	err := tbl.Add(Mapping{
		Mode:      k,
		LHS:       key.MustParseSequence(lhs),
		RHS:       key.MustParseSequence(rhs),
		Recursive: recursive,
	})
	if err != nil {
		t.Fatalf("Add(%q -> %q): %v", lhs, rhs, err)
	}
}

func feedAll(r *Resolver, k mode.Kind, spec string, depth int) Result {
	var res Result
	for _, ev := range key.MustParseSequence(spec).Events {
		res = r.Feed(k, ev, depth)
	}
	return res
}

func TestTableLookup(t *testing.T) {
	tbl := NewTable()
	mustMap(t, tbl, mode.Normal, "ab", "x", false)
	mustMap(t, tbl, mode.Normal, "abc", "y", false)

	m, longer := tbl.Lookup(mode.Normal, key.MustParseSequence("ab"))
	if m == nil || m.RHS.VimString() != "x" {
		t.Fatalf("Lookup(ab) mapping = %v, want x", m)
	}
	if !longer {
		t.Fatal("Lookup(ab) hasLonger = false, want true")
	}

	m, longer = tbl.Lookup(mode.Normal, key.MustParseSequence("abc"))
	if m == nil || m.RHS.VimString() != "y" {
		t.Fatalf("Lookup(abc) mapping = %v, want y", m)
	}
	if longer {
		t.Fatal("Lookup(abc) hasLonger = true, want false")
	}

	if m, _ := tbl.Lookup(mode.Insert, key.MustParseSequence("ab")); m != nil {
		t.Fatal("Lookup in wrong mode returned a mapping")
	}
}

func TestTableAddValidation(t *testing.T) {
	tbl := NewTable()
	if err := tbl.Add(Mapping{Mode: mode.Normal, LHS: key.NewSequence(), RHS: key.MustParseSequence("x")}); err == nil {
		t.Fatal("Add with empty LHS succeeded")
	}
	if err := tbl.Add(Mapping{Mode: mode.Normal, LHS: key.MustParseSequence("a"), RHS: nil}); err == nil {
		t.Fatal("Add with nil RHS succeeded")
	}
}

func TestTableRemovePrunes(t *testing.T) {
	tbl := NewTable()
	mustMap(t, tbl, mode.Normal, "abc", "y", false)
	mustMap(t, tbl, mode.Normal, "a", "z", false)

	tbl.Remove(mode.Normal, key.MustParseSequence("abc"))

	if m, _ := tbl.Lookup(mode.Normal, key.MustParseSequence("abc")); m != nil {
		t.Fatal("mapping survived Remove")
	}
	m, longer := tbl.Lookup(mode.Normal, key.MustParseSequence("a"))
	if m == nil {
		t.Fatal("sibling mapping lost after Remove")
	}
	if longer {
		t.Fatal("pruning left dead branches behind 'a'")
	}
}

func TestTableReplaceAll(t *testing.T) {
	tbl := NewTable()
	mustMap(t, tbl, mode.Normal, "old", "x", false)

	err := tbl.ReplaceAll([]Mapping{{
		Mode: mode.Insert,
		LHS:  key.MustParseSequence("jk"),
		RHS:  key.MustParseSequence("<Esc>"),
	}})
	if err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	if m, _ := tbl.Lookup(mode.Normal, key.MustParseSequence("old")); m != nil {
		t.Fatal("old mapping survived ReplaceAll")
	}
	if m, _ := tbl.Lookup(mode.Insert, key.MustParseSequence("jk")); m == nil {
		t.Fatal("new mapping missing after ReplaceAll")
	}
}

func TestResolverExactMatch(t *testing.T) {
	tbl := NewTable()
	mustMap(t, tbl, mode.Normal, "Q", "gq", false)
	r := NewResolver(tbl, 5)

	res := feedAll(r, mode.Normal, "Q", 0)
	if res.Verdict != VerdictExpanded {
		t.Fatalf("verdict = %d, want VerdictExpanded", res.Verdict)
	}
	if got := (&key.Sequence{Events: res.Expansion}).VimString(); got != "gq" {
		t.Fatalf("expansion = %q, want gq", got)
	}
	if res.Recursive {
		t.Fatal("noremap mapping reported Recursive")
	}
	if res.Depth != 1 {
		t.Fatalf("depth = %d, want 1", res.Depth)
	}
	if r.HasPending() {
		t.Fatal("resolver kept pending state after expansion")
	}
}

func TestResolverUnmappedKey(t *testing.T) {
	tbl := NewTable()
	mustMap(t, tbl, mode.Normal, "ab", "x", false)
	r := NewResolver(tbl, 5)

	res := feedAll(r, mode.Normal, "z", 0)
	if res.Verdict != VerdictRejected {
		t.Fatalf("verdict = %d, want VerdictRejected", res.Verdict)
	}
	if len(res.Replay) != 1 || res.Replay[0] != key.RuneEvent('z', key.ModNone) {
		t.Fatalf("replay = %v, want [z]", res.Replay)
	}
}

func TestResolverLongerMappingWins(t *testing.T) {
	tbl := NewTable()
	mustMap(t, tbl, mode.Normal, "ab", "x", false)
	mustMap(t, tbl, mode.Normal, "abc", "y", false)
	r := NewResolver(tbl, 5)

	if res := feedAll(r, mode.Normal, "ab", 0); res.Verdict != VerdictPending {
		t.Fatalf("after ab: verdict = %d, want VerdictPending", res.Verdict)
	}
	res := r.Feed(mode.Normal, key.RuneEvent('c', key.ModNone), 0)
	if res.Verdict != VerdictExpanded {
		t.Fatalf("after abc: verdict = %d, want VerdictExpanded", res.Verdict)
	}
	if got := (&key.Sequence{Events: res.Expansion}).VimString(); got != "y" {
		t.Fatalf("expansion = %q, want y", got)
	}
	if len(res.Replay) != 0 {
		t.Fatalf("replay = %v, want empty", res.Replay)
	}
}

func TestResolverTimeoutResolvesShorterMapping(t *testing.T) {
	tbl := NewTable()
	mustMap(t, tbl, mode.Normal, "ab", "x", false)
	mustMap(t, tbl, mode.Normal, "abc", "y", false)
	r := NewResolver(tbl, 5)

	feedAll(r, mode.Normal, "ab", 0)
	res := r.Timeout()
	if res.Verdict != VerdictExpanded {
		t.Fatalf("verdict = %d, want VerdictExpanded", res.Verdict)
	}
	if got := (&key.Sequence{Events: res.Expansion}).VimString(); got != "x" {
		t.Fatalf("expansion = %q, want x", got)
	}
}

func TestResolverDeadEndFallsBack(t *testing.T) {
	tbl := NewTable()
	mustMap(t, tbl, mode.Normal, "ab", "x", false)
	mustMap(t, tbl, mode.Normal, "abc", "y", false)
	r := NewResolver(tbl, 5)

	feedAll(r, mode.Normal, "ab", 0)
	res := r.Feed(mode.Normal, key.RuneEvent('d', key.ModNone), 0)
	if res.Verdict != VerdictExpanded {
		t.Fatalf("verdict = %d, want VerdictExpanded", res.Verdict)
	}
	if got := (&key.Sequence{Events: res.Expansion}).VimString(); got != "x" {
		t.Fatalf("expansion = %q, want x", got)
	}
	if len(res.Replay) != 1 || res.Replay[0] != key.RuneEvent('d', key.ModNone) {
		t.Fatalf("replay = %v, want [d]", res.Replay)
	}
}

func TestResolverDeadEndNoMatchReplaysAll(t *testing.T) {
	tbl := NewTable()
	mustMap(t, tbl, mode.Normal, "abc", "y", false)
	r := NewResolver(tbl, 5)

	feedAll(r, mode.Normal, "ab", 0)
	res := r.Feed(mode.Normal, key.RuneEvent('z', key.ModNone), 0)
	if res.Verdict != VerdictRejected {
		t.Fatalf("verdict = %d, want VerdictRejected", res.Verdict)
	}
	if got := (&key.Sequence{Events: res.Replay}).VimString(); got != "abz" {
		t.Fatalf("replay = %q, want abz", got)
	}
}

func TestResolverTimeoutWithoutMatch(t *testing.T) {
	tbl := NewTable()
	mustMap(t, tbl, mode.Normal, "abc", "y", false)
	r := NewResolver(tbl, 5)

	feedAll(r, mode.Normal, "ab", 0)
	res := r.Timeout()
	if res.Verdict != VerdictRejected {
		t.Fatalf("verdict = %d, want VerdictRejected", res.Verdict)
	}
	if got := (&key.Sequence{Events: res.Replay}).VimString(); got != "ab" {
		t.Fatalf("replay = %q, want ab", got)
	}
}

func TestResolverRecursionBound(t *testing.T) {
	tbl := NewTable()
	mustMap(t, tbl, mode.Normal, "a", "ab", true)
	r := NewResolver(tbl, 5)

	// Drive the expansion loop the way the interpreter's work list
	// does: re-feed the first expansion key at the reported depth.
	depth := 0
	expansions := 0
	for {
		res := r.Feed(mode.Normal, key.RuneEvent('a', key.ModNone), depth)
		if res.Verdict == VerdictRecursion {
			break
		}
		if res.Verdict != VerdictExpanded {
			t.Fatalf("verdict = %d, want VerdictExpanded", res.Verdict)
		}
		expansions++
		if expansions > 20 {
			t.Fatal("recursion bound never tripped")
		}
		depth = res.Depth
	}
	if expansions != 5 {
		t.Fatalf("expansions before limit = %d, want 5", expansions)
	}
}

func TestResolverResetDropsState(t *testing.T) {
	tbl := NewTable()
	mustMap(t, tbl, mode.Normal, "abc", "y", false)
	r := NewResolver(tbl, 5)

	feedAll(r, mode.Normal, "ab", 0)
	r.Reset()
	if r.HasPending() {
		t.Fatal("pending keys survived Reset")
	}
	res := r.Timeout()
	if res.Verdict != VerdictRejected || len(res.Replay) != 0 {
		t.Fatalf("Timeout after Reset = %+v, want empty rejection", res)
	}
}

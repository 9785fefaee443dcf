package mapping

import (
	"fmt"
	"sync"

	"github.com/veldin/keyweave/internal/input/key"
	"github.com/veldin/keyweave/internal/input/mode"
)

// Mapping is one user-defined remap: when LHS is typed in Mode, RHS is
// substituted. Recursive mappings (":map") allow their substitution to
// match further mappings; non-recursive ones (":noremap") do not.
type Mapping struct {
	Mode      mode.Kind
	LHS       *key.Sequence
	RHS       *key.Sequence
	Recursive bool
}

// Table holds the user mappings as one prefix trie per mode. It is the
// overlay consulted before the static command trees.
type Table struct {
	mu    sync.RWMutex
	roots map[mode.Kind]*node
}

type node struct {
	children map[key.Event]*node
	mapping  *Mapping
}

func newNode() *node {
	return &node{children: make(map[key.Event]*node)}
}

// NewTable returns an empty mapping table.
func NewTable() *Table {
	return &Table{roots: make(map[mode.Kind]*node)}
}

// Add installs a mapping, replacing any existing mapping with the same
// left-hand side in the same mode.
func (t *Table) Add(m Mapping) error {
	if m.LHS == nil || m.LHS.IsEmpty() {
		return fmt.Errorf("mapping requires a left-hand side")
	}
	if m.RHS == nil || m.RHS.IsEmpty() {
		return fmt.Errorf("mapping %q requires a right-hand side", m.LHS.VimString())
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	root, ok := t.roots[m.Mode]
	if !ok {
		root = newNode()
		t.roots[m.Mode] = root
	}
	n := root
	for _, ev := range m.LHS.Events {
		child, ok := n.children[ev]
		if !ok {
			child = newNode()
			n.children[ev] = child
		}
		n = child
	}
	cp := m
	n.mapping = &cp
	return nil
}

// Remove deletes the mapping with the given left-hand side, if present.
func (t *Table) Remove(k mode.Kind, lhs *key.Sequence) {
	t.mu.Lock()
	defer t.mu.Unlock()

	root, ok := t.roots[k]
	if !ok {
		return
	}
	path := []*node{root}
	n := root
	for _, ev := range lhs.Events {
		child, ok := n.children[ev]
		if !ok {
			return
		}
		path = append(path, child)
		n = child
	}
	n.mapping = nil

	// Prune empty nodes leaf to root.
	for i := len(path) - 1; i > 0; i-- {
		cur := path[i]
		if cur.mapping != nil || len(cur.children) > 0 {
			break
		}
		parent := path[i-1]
		for ev, child := range parent.children {
			if child == cur {
				delete(parent.children, ev)
				break
			}
		}
	}
}

// Clear drops every mapping for a mode.
func (t *Table) Clear(k mode.Kind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.roots, k)
}

// ReplaceAll atomically swaps in a full set of mappings, as the config
// reloader does.
func (t *Table) ReplaceAll(mappings []Mapping) error {
	fresh := NewTable()
	for _, m := range mappings {
		if err := fresh.Add(m); err != nil {
			return err
		}
	}
	t.mu.Lock()
	t.roots = fresh.roots
	t.mu.Unlock()
	return nil
}

// Lookup walks the mode's trie along seq. It reports the mapping exactly
// at seq (nil if none) and whether seq is a proper prefix of at least one
// longer mapping.
func (t *Table) Lookup(k mode.Kind, seq *key.Sequence) (m *Mapping, hasLonger bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	root, ok := t.roots[k]
	if !ok {
		return nil, false
	}
	n := root
	for _, ev := range seq.Events {
		child, ok := n.children[ev]
		if !ok {
			return nil, false
		}
		n = child
	}
	return n.mapping, len(n.children) > 0
}

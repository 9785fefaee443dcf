package action

import (
	"github.com/veldin/keyweave/internal/input/key"
)

// Tree is a prefix tree from key sequences to action definitions. Each mode
// has its own tree; the dispatcher walks it one event at a time.
type Tree struct {
	root *treeNode
}

type treeNode struct {
	children map[key.Event]*treeNode
	def      *Def
}

func newTreeNode() *treeNode {
	return &treeNode{children: make(map[key.Event]*treeNode)}
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{root: newTreeNode()}
}

// Bind inserts a sequence, overwriting any definition already at that path.
func (t *Tree) Bind(seq *key.Sequence, def *Def) {
	node := t.root
	for _, ev := range seq.Events {
		child, ok := node.children[ev]
		if !ok {
			child = newTreeNode()
			node.children[ev] = child
		}
		node = child
	}
	node.def = def
}

// BindSpec inserts a binding given in key-spec notation, panicking on a
// malformed spec. Intended for the static tables.
func (t *Tree) BindSpec(spec string, def *Def) {
	t.Bind(key.MustParseSequence(spec), def)
}

// Walk follows events from the root. It returns the definition at the final
// node (nil when the node is intermediate or absent) and whether the path
// can still be extended to a longer binding.
func (t *Tree) Walk(events []key.Event) (def *Def, hasLonger bool) {
	node := t.root
	for _, ev := range events {
		child, ok := node.children[ev]
		if !ok {
			return nil, false
		}
		node = child
	}
	return node.def, len(node.children) > 0
}

// WalkOne follows a single event from the node reached by prefix. It is the
// common dispatch case: the accumulated path plus the key just pressed.
func (t *Tree) WalkOne(prefix []key.Event, ev key.Event) (def *Def, hasLonger bool) {
	return t.Walk(append(append(make([]key.Event, 0, len(prefix)+1), prefix...), ev))
}

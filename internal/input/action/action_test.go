package action

import (
	"testing"

	"github.com/veldin/keyweave/internal/input/key"
	"github.com/veldin/keyweave/internal/input/mode"
)

func events(s string) []key.Event {
	return key.MustParseSequence(s).Events
}

func TestTreeWalk(t *testing.T) {
	tree := NewTree()
	tree.BindSpec("gg", &DefFirstLine)
	tree.BindSpec("G", &DefLastLine)

	def, longer := tree.Walk(events("G"))
	if def != &DefLastLine || longer {
		t.Errorf("Walk(G) = (%v, %v), want terminal lastLine", def, longer)
	}

	def, longer = tree.Walk(events("g"))
	if def != nil || !longer {
		t.Errorf("Walk(g) = (%v, %v), want intermediate", def, longer)
	}

	def, longer = tree.Walk(events("gg"))
	if def != &DefFirstLine || longer {
		t.Errorf("Walk(gg) = (%v, %v), want terminal firstLine", def, longer)
	}

	def, longer = tree.Walk(events("gx"))
	if def != nil || longer {
		t.Errorf("Walk(gx) = (%v, %v), want miss", def, longer)
	}
}

func TestTreeWalkOne(t *testing.T) {
	tree := NewTree()
	tree.BindSpec("gg", &DefFirstLine)

	def, longer := tree.WalkOne(events("g"), key.RuneEvent('g', key.ModNone))
	if def != &DefFirstLine || longer {
		t.Errorf("WalkOne(g, g) = (%v, %v), want terminal", def, longer)
	}
}

func TestDefaultsRegistry(t *testing.T) {
	s := Defaults()

	def, ok := s.Registry().Resolve("edit.delete")
	if !ok {
		t.Fatal("edit.delete not registered")
	}
	if !def.IsOperator() || !def.Mutating || def.LinewiseName != "edit.deleteLine" {
		t.Errorf("edit.delete metadata wrong: %+v", def)
	}

	def, ok = s.Registry().Resolve("edit.yank")
	if !ok || def.Mutating {
		t.Error("edit.yank should be registered and read-only")
	}

	def, ok = s.Registry().Resolve("cursor.findForward")
	if !ok || def.Arg != ArgCharacter || !def.Motion {
		t.Errorf("cursor.findForward metadata wrong: %+v", def)
	}
}

func TestDefaultsTrees(t *testing.T) {
	s := Defaults()

	normal := s.Tree(mode.Normal)
	def, _ := normal.Walk(events("d"))
	if def != &DefDelete {
		t.Error("d should resolve to the delete operator in normal mode")
	}

	op := s.Tree(mode.OperatorPending)
	def, _ = op.Walk(events("iw"))
	if def != &DefInnerWord {
		t.Error("iw should resolve to the inner-word object in operator-pending")
	}
	if def, _ := op.Walk(events("x")); def != nil {
		t.Error("x is not a motion and must miss in operator-pending")
	}

	// Select shares the visual tree, replace shares insert.
	if s.Tree(mode.Select) != s.Tree(mode.Visual) {
		t.Error("select should share the visual tree")
	}
	if s.Tree(mode.Replace) != s.Tree(mode.Insert) {
		t.Error("replace should share the insert tree")
	}
}

package script

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/veldin/keyweave/internal/exec"
	"github.com/veldin/keyweave/internal/input/action"
	"github.com/veldin/keyweave/internal/input/command"
	"github.com/veldin/keyweave/internal/input/key"
	"github.com/veldin/keyweave/internal/input/mode"
	"github.com/veldin/keyweave/internal/register"
	"github.com/veldin/keyweave/internal/surface"
)

type fixture struct {
	host    *Host
	actions *action.Set
	exec    *exec.Executor
	mem     *surface.Memory
	regs    *register.Store
}

func newFixture(t *testing.T, content string) *fixture {
	t.Helper()
	actions := action.Defaults()
	mem := surface.NewMemory("scratch", content)
	regs := register.NewStore()
	e := exec.New(mem, regs)
	h := NewHost(actions, e.Registry())
	t.Cleanup(h.Close)
	return &fixture{host: h, actions: actions, exec: e, mem: mem, regs: regs}
}

func (f *fixture) runAction(t *testing.T, name string, count int) error {
	t.Helper()
	def, ok := f.actions.Registry().Resolve(name)
	if !ok {
		t.Fatalf("action %q not registered", name)
	}
	return f.exec.Execute(&command.Command{Action: def, Count: count})
}

func TestActionRegistration(t *testing.T) {
	f := newFixture(t, "abc")
	err := f.host.DoString(`
		keyweave.action("stamp", { mutating = true }, function(count)
			for i = 1, count do keyweave.insert("*") end
		end)
	`)
	if err != nil {
		t.Fatalf("DoString: %v", err)
	}

	def, ok := f.actions.Registry().Resolve("user.stamp")
	if !ok {
		t.Fatal("user.stamp not in the action registry")
	}
	if !def.Mutating {
		t.Error("Mutating not carried from the opts table")
	}

	if err := f.runAction(t, "user.stamp", 3); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := f.mem.Text(); got != "***abc" {
		t.Errorf("text = %q, want ***abc", got)
	}
	if got := f.mem.Cursor(); got != (surface.Position{Line: 0, Col: 3}) {
		t.Errorf("cursor = %v, want 0:3", got)
	}
}

func TestActionWithoutOpts(t *testing.T) {
	f := newFixture(t, "x")
	err := f.host.DoString(`keyweave.action("nop", function(count) end)`)
	if err != nil {
		t.Fatalf("DoString: %v", err)
	}
	def, ok := f.actions.Registry().Resolve("user.nop")
	if !ok {
		t.Fatal("user.nop not registered")
	}
	if def.Mutating {
		t.Error("Mutating should default to false")
	}
	if err := f.runAction(t, "user.nop", 1); err != nil {
		t.Errorf("Execute: %v", err)
	}
}

func TestBind(t *testing.T) {
	f := newFixture(t, "x")
	err := f.host.DoString(`
		keyweave.action("mark_spot", function(count) end)
		keyweave.bind("normal", "gx", "mark_spot")
	`)
	if err != nil {
		t.Fatalf("DoString: %v", err)
	}

	seq := key.MustParseSequence("gx")
	def, _ := f.actions.Tree(mode.Normal).Walk(seq.Events)
	if def == nil || def.Name != "user.mark_spot" {
		t.Fatalf("gx resolves to %v, want user.mark_spot", def)
	}
}

func TestBindUnknownAction(t *testing.T) {
	f := newFixture(t, "x")
	err := f.host.DoString(`keyweave.bind("normal", "gx", "missing")`)
	if err == nil || !strings.Contains(err.Error(), "unknown action") {
		t.Fatalf("err = %v, want unknown action", err)
	}
}

func TestSurfaceAccessOutsideCommand(t *testing.T) {
	f := newFixture(t, "x")
	err := f.host.DoString(`keyweave.insert("boom")`)
	if err == nil || !strings.Contains(err.Error(), ErrNoActiveCommand.Error()) {
		t.Fatalf("err = %v, want no-active-command failure", err)
	}
}

func TestLuaErrorPropagates(t *testing.T) {
	f := newFixture(t, "x")
	if err := f.host.DoString(`
		keyweave.action("explode", function(count) error("boom") end)
	`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	err := f.runAction(t, "user.explode", 1)
	if err == nil || !strings.Contains(err.Error(), "boom") {
		t.Fatalf("err = %v, want lua error text", err)
	}
}

func TestSurfaceQueries(t *testing.T) {
	f := newFixture(t, "one\ntwo\nthree")
	if err := f.host.DoString(`
		keyweave.action("probe", function(count)
			keyweave.set_register("p", keyweave.line(2) .. "/" .. keyweave.line_count())
			keyweave.set_cursor(3, 2)
		end)
	`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if err := f.runAction(t, "user.probe", 1); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	text, _, _ := f.regs.Get('p')
	if text != "two/3" {
		t.Errorf("register p = %q, want two/3", text)
	}
	if got := f.mem.Cursor(); got != (surface.Position{Line: 2, Col: 1}) {
		t.Errorf("cursor = %v, want 2:1", got)
	}
}

func TestRegisterRoundTrip(t *testing.T) {
	f := newFixture(t, "x")
	if err := f.regs.Set('a', "hello", register.CharWise); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := f.host.DoString(`
		keyweave.action("shout", function(count)
			keyweave.set_register("b", string.upper(keyweave.register("a")))
		end)
	`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if err := f.runAction(t, "user.shout", 1); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	text, _, _ := f.regs.Get('b')
	if text != "HELLO" {
		t.Errorf("register b = %q, want HELLO", text)
	}
}

func TestDeleteLine(t *testing.T) {
	f := newFixture(t, "one\ntwo\nthree")
	if err := f.host.DoString(`
		keyweave.action("drop_second", { mutating = true }, function(count)
			keyweave.delete_line(2)
		end)
	`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	if err := f.runAction(t, "user.drop_second", 1); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := f.mem.Text(); got != "one\nthree" {
		t.Errorf("text = %q, want 'one\\nthree'", got)
	}
}

func TestClosedHost(t *testing.T) {
	f := newFixture(t, "x")
	if err := f.host.DoString(`keyweave.action("late", function(count) end)`); err != nil {
		t.Fatalf("DoString: %v", err)
	}
	f.host.Close()

	if err := f.host.DoString(`return 1`); !errors.Is(err, ErrHostClosed) {
		t.Errorf("DoString after close: %v, want ErrHostClosed", err)
	}
	if err := f.runAction(t, "user.late", 1); !errors.Is(err, ErrHostClosed) {
		t.Errorf("Execute after close: %v, want ErrHostClosed", err)
	}
}

func TestLoadDir(t *testing.T) {
	f := newFixture(t, "x")
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("10-first.lua", `keyweave.action("first", function(count) end)`)
	write("20-second.lua", `keyweave.action("second", function(count) end)`)
	write("notes.txt", `ignored`)

	if err := f.host.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	for _, name := range []string{"user.first", "user.second"} {
		if _, ok := f.actions.Registry().Resolve(name); !ok {
			t.Errorf("%s not registered", name)
		}
	}

	if err := f.host.LoadDir(filepath.Join(dir, "missing")); err != nil {
		t.Errorf("LoadDir on a missing dir: %v, want nil", err)
	}
}

func TestLoadDirStopsOnError(t *testing.T) {
	f := newFixture(t, "x")
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "bad.lua"), []byte(`this is not lua`), 0o644); err != nil {
		t.Fatal(err)
	}
	err := f.host.LoadDir(dir)
	if err == nil || !strings.Contains(err.Error(), "bad.lua") {
		t.Fatalf("err = %v, want failure naming the script", err)
	}
}

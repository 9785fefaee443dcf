// Command keyweave is a terminal demo of the key interpretation
// engine: a modal scratch editor wired to the default command trees,
// user remaps, and Lua-scripted actions.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/veldin/keyweave/internal/config"
	"github.com/veldin/keyweave/internal/exec"
	"github.com/veldin/keyweave/internal/input"
	"github.com/veldin/keyweave/internal/input/action"
	"github.com/veldin/keyweave/internal/input/mapping"
	"github.com/veldin/keyweave/internal/input/mode"
	"github.com/veldin/keyweave/internal/register"
	"github.com/veldin/keyweave/internal/script"
	"github.com/veldin/keyweave/internal/surface"
)

const demoText = `keyweave scratch surface
type like in vim: counts, operators, registers, macros
:q quits, :w writes when a file was given
`

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath = flag.String("config", defaultConfigPath(), "settings file (TOML)")
		remapPath  = flag.String("remaps", "", "remap file (YAML or TOML), overrides the settings entry")
		scriptDir  = flag.String("scripts", "", "Lua script directory, overrides the settings entry")
		readOnly   = flag.Bool("readonly", false, "refuse mutating commands")
	)
	flag.Parse()

	settings, err := config.LoadSettings(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "keyweave: %v\n", err)
		return 1
	}
	if *remapPath != "" {
		settings.RemapFile = *remapPath
	}
	if *scriptDir != "" {
		settings.ScriptDir = *scriptDir
	}

	// The surface: a named file, or an in-memory scratch pad.
	var mem *surface.Memory
	var filePath string
	if flag.NArg() > 0 {
		filePath = flag.Arg(0)
		data, err := os.ReadFile(filePath)
		if err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "keyweave: %v\n", err)
			return 1
		}
		mem = surface.NewMemory(filepath.Base(filePath), string(data))
	} else {
		mem = surface.NewMemory("scratch", demoText)
	}
	if *readOnly {
		mem.SetWritable(false)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "keyweave: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "keyweave: %v\n", err)
		return 1
	}
	defer screen.Fini()

	status := &statusLine{}
	actions := action.Defaults()
	registers := register.NewStore()
	mappings := mapping.NewTable()
	executor := exec.New(mem, registers)

	host := script.NewHost(actions, executor.Registry())
	defer host.Close()
	if settings.ScriptDir != "" {
		if err := host.LoadDir(settings.ScriptDir); err != nil {
			status.Error(err)
		}
	}

	ex := &exRunner{mem: mem, path: filePath, status: status}

	interp, err := input.New(settings.InterpConfig(), input.Deps{
		Actions:   actions,
		Mappings:  mappings,
		Registers: registers,
		Surface:   mem,
		Messenger: status,
		Ex:        ex,
		Executor:  executor,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "keyweave: %v\n", err)
		return 1
	}
	defer interp.Close()

	if settings.RemapFile != "" {
		if n, err := config.ApplyRemaps(mappings, settings.RemapFile); err != nil {
			status.Error(err)
		} else {
			status.Status(fmt.Sprintf("%d remaps loaded", n))
		}
		watcher, err := config.WatchRemaps(settings.RemapFile, mappings, func(n int, err error) {
			if err != nil {
				status.Error(err)
			} else {
				status.Status(fmt.Sprintf("%d remaps reloaded", n))
			}
			_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
		})
		if err != nil {
			status.Error(err)
		} else {
			defer watcher.Close()
		}
	}

	// The mapping timeout resolves off the event loop; a slow tick
	// repaints so the resolved state becomes visible.
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = screen.PostEvent(tcell.NewEventInterrupt(nil))
			}
		}
	}()

	for {
		draw(screen, mem, interp, status)

		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if k, ok := translateKey(ev); ok {
				interp.Handle(k)
			}
			if ex.quit {
				return 0
			}
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventInterrupt:
			// Repaint only.
		}
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "keyweave.toml"
	}
	return filepath.Join(dir, "keyweave", "keyweave.toml")
}

// statusLine collects interpreter messages for the bottom row. The
// remap watcher reports from its own goroutine, hence the lock.
type statusLine struct {
	mu    sync.Mutex
	text  string
	isErr bool
}

func (s *statusLine) Error(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = err.Error()
	s.isErr = true
}

func (s *statusLine) Status(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = msg
	s.isErr = false
}

func (s *statusLine) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = ""
	s.isErr = false
}

func (s *statusLine) snapshot() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text, s.isErr
}

// exRunner executes the handful of ex commands the demo understands.
type exRunner struct {
	mem    *surface.Memory
	path   string
	status *statusLine
	quit   bool
}

func (e *exRunner) Execute(line string) error {
	cmd := strings.TrimSpace(line)
	switch cmd {
	case "":
		return nil
	case "q", "q!", "quit":
		e.quit = true
		return nil
	case "w", "write":
		return e.write()
	case "wq", "x":
		if err := e.write(); err != nil {
			return err
		}
		e.quit = true
		return nil
	default:
		return fmt.Errorf("not an editor command: %s", cmd)
	}
}

func (e *exRunner) write() error {
	if e.path == "" {
		return fmt.Errorf("no file name")
	}
	if err := os.WriteFile(e.path, []byte(e.mem.Text()), 0o644); err != nil {
		return err
	}
	e.status.Status(fmt.Sprintf("%q written", e.path))
	return nil
}

func draw(screen tcell.Screen, mem *surface.Memory, interp *input.Interpreter, status *statusLine) {
	screen.Clear()
	width, height := screen.Size()
	if height < 2 {
		screen.Show()
		return
	}

	textStyle := tcell.StyleDefault
	for row := 0; row < height-1 && row < mem.LineCount(); row++ {
		line, err := mem.Line(row)
		if err != nil {
			break
		}
		col := 0
		for _, r := range line {
			if col >= width {
				break
			}
			screen.SetContent(col, row, r, nil, textStyle)
			col++
		}
	}

	cur := mem.Cursor()
	if cur.Line < height-1 {
		screen.ShowCursor(cur.Col, cur.Line)
	} else {
		screen.HideCursor()
	}

	drawStatus(screen, interp, status, width, height-1)
	screen.Show()
}

func drawStatus(screen tcell.Screen, interp *input.Interpreter, status *statusLine, width, row int) {
	text, isErr := status.snapshot()
	style := tcell.StyleDefault.Reverse(true)
	if isErr {
		style = style.Foreground(tcell.ColorRed)
	}

	left := modeLabel(interp.Mode())
	if interp.IsRecording() {
		left += fmt.Sprintf("  recording @%c", interp.RecordingTarget())
	}
	if text != "" {
		left += "  " + text
	}
	right := interp.PendingKeys()

	col := 0
	for _, r := range left {
		if col >= width {
			break
		}
		screen.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < width-len(right); col++ {
		screen.SetContent(col, row, ' ', nil, style)
	}
	for _, r := range right {
		if col >= width {
			break
		}
		screen.SetContent(col, row, r, nil, style)
		col++
	}
}

func modeLabel(m mode.Mode) string {
	label := strings.ToUpper(m.Kind.String())
	if m.Kind == mode.Visual || m.Kind == mode.Select {
		label += " (" + m.Visual.String() + ")"
	}
	return "-- " + label + " --"
}

package input

import (
	"fmt"
	"time"

	"github.com/veldin/keyweave/internal/input/action"
	"github.com/veldin/keyweave/internal/input/command"
	"github.com/veldin/keyweave/internal/input/mode"
)

// rawInput is the last step of the chain: text-entry modes consume the
// key directly, everything else is a dead end.
func (i *Interpreter) rawInput(item workItem, res *Result) ([]workItem, error) {
	ev := item.ev
	m := i.mode

	switch m.Kind {
	case mode.Insert, mode.Replace:
		res.Consumed = true
		switch {
		case ev.IsEscape():
			i.endTextEntry()
			return nil, nil
		case ev.IsEnter():
			return nil, i.insertText(res, m, '\n')
		case ev.IsBackspace():
			return nil, i.eraseBefore(res)
		case ev.IsPrintable() && !ev.IsModified():
			return nil, i.insertText(res, m, ev.Rune)
		default:
			// Unbound control keys in text entry are ignored.
			return nil, nil
		}

	case mode.CommandLine:
		res.Consumed = true
		switch {
		case ev.IsEscape():
			i.cancelCommandLine(m)
			return nil, nil
		case ev.IsEnter():
			if err := i.builder.Capture(command.ExArg(string(i.cmdline))); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
			}
			return i.finish(item, res)
		case ev.IsBackspace():
			if len(i.cmdline) == 0 {
				i.cancelCommandLine(m)
				return nil, nil
			}
			i.cmdline = i.cmdline[:len(i.cmdline)-1]
			return nil, nil
		case ev.IsPrintable() && !ev.IsModified():
			i.cmdline = append(i.cmdline, ev.Rune)
			return nil, nil
		default:
			return nil, nil
		}

	case mode.Select:
		res.Consumed = true
		switch {
		case ev.IsEscape():
			i.mode = m.Resume()
			i.quietResetKeepMode()
			return nil, nil
		case ev.IsPrintable() && !ev.IsModified():
			// Typing over a selection replaces it and enters insert.
			if !i.surf.Writable() {
				return nil, fmt.Errorf("%w: %s", ErrSurfaceNotWritable, i.surf.Name())
			}
			del := &command.Command{
				Action: &action.DefChange,
				Count:  1,
				Arg:    command.Argument{Type: command.ArgTypeMotion},
			}
			if err := i.executor.Execute(del); err != nil {
				return nil, err
			}
			res.Executed = append(res.Executed, del)
			i.builder.Reset()
			i.mode = mode.NewInsert()
			return nil, i.insertText(res, i.mode, ev.Rune)
		default:
			return nil, nil
		}
	}

	if ev.IsEscape() {
		res.Consumed = true
		if m.IsVisual() || m.Kind == mode.OperatorPending {
			i.mode = m.Resume()
		}
		i.quietResetKeepMode()
		return nil, nil
	}

	return nil, fmt.Errorf("%w: %s in %s mode", ErrUnmappedKey, ev, m)
}

// insertText hands one typed rune to the executor as an insert or
// overstrike command.
func (i *Interpreter) insertText(res *Result, m mode.Mode, r rune) error {
	if !i.surf.Writable() {
		return fmt.Errorf("%w: %s", ErrSurfaceNotWritable, i.surf.Name())
	}
	def := &action.DefInsertText
	if m.Kind == mode.Replace {
		def = &action.DefOverstrikeText
	}
	cmd := &command.Command{Action: def, Count: 1, Arg: command.CharArg(r)}
	if err := i.executor.Execute(cmd); err != nil {
		return err
	}
	res.Executed = append(res.Executed, cmd)
	i.insertRun = append(i.insertRun, r)
	return nil
}

// eraseBefore hands a text-entry backspace to the executor.
func (i *Interpreter) eraseBefore(res *Result) error {
	if !i.surf.Writable() {
		return fmt.Errorf("%w: %s", ErrSurfaceNotWritable, i.surf.Name())
	}
	cmd := &command.Command{Action: &action.DefDeleteCharBefore, Count: 1}
	if err := i.executor.Execute(cmd); err != nil {
		return err
	}
	res.Executed = append(res.Executed, cmd)
	if n := len(i.insertRun); n > 0 {
		i.insertRun = i.insertRun[:n-1]
	}
	return nil
}

// endTextEntry leaves insert or replace mode, saving the typed run for
// the last-inserted register.
func (i *Interpreter) endTextEntry() {
	if len(i.insertRun) > 0 {
		i.registers.SetLastInserted(string(i.insertRun))
	}
	i.insertRun = i.insertRun[:0]
	i.builder.Reset()
	i.path = i.path[:0]
	i.mode = mode.NewNormal()
}

// cancelCommandLine abandons the ex line and returns to the mode the
// command line was opened from.
func (i *Interpreter) cancelCommandLine(m mode.Mode) {
	i.builder.Reset()
	i.path = i.path[:0]
	i.cmdline = i.cmdline[:0]
	i.mode = m.Resume()
}

// armTimer starts the ambiguity window; new input pre-empts it. The
// callback carries the generation it was armed under: Stop cannot
// retract a callback that has already fired and is waiting on the
// lock, so the flush itself must prove no event intervened.
func (i *Interpreter) armTimer() {
	i.stopTimer()
	if i.cfg.Timeoutlen <= 0 {
		return
	}
	gen := i.generation
	i.mapTimer = time.AfterFunc(i.cfg.Timeoutlen, func() {
		i.flushExpired(gen)
	})
}

// flushExpired resolves the pending buffer only if the session is still
// in the state the timer was armed under.
func (i *Interpreter) flushExpired(gen uint64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.closed || i.generation != gen {
		return
	}
	i.flushLocked()
}

func (i *Interpreter) stopTimer() {
	if i.mapTimer != nil {
		i.mapTimer.Stop()
		i.mapTimer = nil
	}
}

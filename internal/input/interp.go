package input

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/veldin/keyweave/internal/input/action"
	"github.com/veldin/keyweave/internal/input/command"
	"github.com/veldin/keyweave/internal/input/digraph"
	"github.com/veldin/keyweave/internal/input/key"
	"github.com/veldin/keyweave/internal/input/macro"
	"github.com/veldin/keyweave/internal/input/mapping"
	"github.com/veldin/keyweave/internal/input/mode"
	"github.com/veldin/keyweave/internal/register"
	"github.com/veldin/keyweave/internal/surface"
)

// Executor runs a fully resolved command against the editing surface.
// Implementations must serialize their mutations.
type Executor interface {
	Execute(cmd *command.Command) error
}

// Config configures an interpretation session.
type Config struct {
	// Timeoutlen is how long an ambiguous mapping prefix is held before
	// falling back to literal interpretation.
	Timeoutlen time.Duration

	// MaxMapDepth bounds nested mapping expansion.
	MaxMapDepth int

	// OnCancel is invoked when the interrupt key aborts the pending
	// operation in normal mode.
	OnCancel func()
}

// DefaultConfig returns the standard option values.
func DefaultConfig() Config {
	return Config{
		Timeoutlen:  1000 * time.Millisecond,
		MaxMapDepth: 20,
	}
}

// Deps are the collaborators a session acts through.
type Deps struct {
	Actions   *action.Set
	Mappings  *mapping.Table
	Registers *register.Store
	Surface   surface.Surface
	Messenger surface.Messenger
	Ex        surface.ExParser
	Executor  Executor
}

// Result reports what one key event (or a pending-state flush) did.
type Result struct {
	// Consumed reports whether the session handled the event.
	Consumed bool

	// Mode is the mode after processing.
	Mode mode.Mode

	// State is the builder state the event left behind. A bad or error
	// state is reported here even though the session has already been
	// reset to idle.
	State command.State

	// Executed lists the commands handed to the executor, in order. A
	// single event can complete several via mapping expansion.
	Executed []*command.Command

	// Err is the failure that drove the builder to its bad state, nil
	// otherwise.
	Err error
}

// workItem is one entry on the trampoline work list: a key to process,
// whether it bypasses mapping lookup, its expansion depth, and whether
// it came from macro or repeat replay.
type workItem struct {
	ev       key.Event
	literal  bool
	depth    int
	replayed bool
}

// Interpreter is one interpretation session: it owns the command
// builder, the mapping resolver state, and the digraph machine for a
// single input stream. Create one per editing surface.
type Interpreter struct {
	mu  sync.Mutex
	cfg Config

	actions   *action.Set
	mappings  *mapping.Table
	resolver  *mapping.Resolver
	builder   *command.Builder
	digraphs  *digraph.Machine
	recorder  *macro.Recorder
	registers *register.Store
	surf      surface.Surface
	messenger surface.Messenger
	exParser  surface.ExParser
	executor  Executor

	mode      mode.Mode
	path      []key.Event // buffered command-tree prefix
	cmdline   []rune
	insertRun []rune      // text typed since entering insert, for the . register
	lastRun   []key.Event // keys of the last mutating command, for repeat

	generation uint64
	mapTimer   *time.Timer
	closed     bool
}

// New creates a session over the given collaborators. Actions, Surface
// and Executor are required; the rest default to empty or no-op
// implementations.
func New(cfg Config, deps Deps) (*Interpreter, error) {
	if deps.Actions == nil {
		return nil, fmt.Errorf("interpreter requires an action set")
	}
	if deps.Surface == nil {
		return nil, fmt.Errorf("interpreter requires a surface")
	}
	if deps.Executor == nil {
		return nil, fmt.Errorf("interpreter requires an executor")
	}
	if cfg.Timeoutlen == 0 {
		cfg.Timeoutlen = DefaultConfig().Timeoutlen
	}
	if cfg.MaxMapDepth <= 0 {
		cfg.MaxMapDepth = DefaultConfig().MaxMapDepth
	}
	if deps.Mappings == nil {
		deps.Mappings = mapping.NewTable()
	}
	if deps.Registers == nil {
		deps.Registers = register.NewStore()
	}
	if deps.Messenger == nil {
		deps.Messenger = surface.NopMessenger{}
	}

	i := &Interpreter{
		cfg:       cfg,
		actions:   deps.Actions,
		mappings:  deps.Mappings,
		resolver:  mapping.NewResolver(deps.Mappings, cfg.MaxMapDepth),
		builder:   command.NewBuilder(),
		digraphs:  digraph.New(),
		recorder:  macro.NewRecorder(deps.Registers),
		registers: deps.Registers,
		surf:      deps.Surface,
		messenger: deps.Messenger,
		exParser:  deps.Ex,
		executor:  deps.Executor,
		mode:      mode.NewNormal(),
	}
	i.registers.SetSurfaceName(deps.Surface.Name())
	return i, nil
}

// Mode returns the current mode.
func (i *Interpreter) Mode() mode.Mode {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.mode
}

// PendingKeys renders the keys buffered toward a command or mapping,
// for status display.
func (i *Interpreter) PendingKeys() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	events := make([]key.Event, 0, 8)
	events = append(events, i.builder.Keys()...)
	events = append(events, i.resolver.Pending()...)
	return (&key.Sequence{Events: events}).VimString()
}

// IsRecording reports whether a macro recording is in progress.
func (i *Interpreter) IsRecording() bool { return i.recorder.IsRecording() }

// RecordingTarget returns the register being recorded to, or 0.
func (i *Interpreter) RecordingTarget() rune { return i.recorder.Target() }

// StartRecording begins a macro recording outside the key stream.
func (i *Interpreter) StartRecording(target rune) error { return i.recorder.Start(target) }

// StopRecording ends a macro recording outside the key stream.
func (i *Interpreter) StopRecording() (rune, error) { return i.recorder.Stop() }

// Handle processes one key event and returns what it did.
func (i *Interpreter) Handle(ev key.Event) Result {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.closed {
		return Result{Mode: i.mode}
	}
	return i.handleLocked(ev)
}

// Reset forces the session back to idle. A full reset also returns the
// mode to normal; a partial one drops only the mapping tracking.
func (i *Interpreter) Reset(full bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if full {
		i.quietReset()
		return
	}
	i.stopTimer()
	i.resolver.Reset()
}

// FlushPending resolves the ambiguous-mapping buffer immediately, as
// when the timeout window expires.
func (i *Interpreter) FlushPending() Result {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.closed {
		return Result{Mode: i.mode}
	}
	return i.flushLocked()
}

// Close stops the timeout timer. Further events are ignored.
func (i *Interpreter) Close() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.stopTimer()
	i.closed = true
}

func (i *Interpreter) handleLocked(ev key.Event) Result {
	i.generation++
	wasRecording := i.recorder.IsRecording()

	var res Result
	i.runWork([]workItem{{ev: ev}}, &res)

	// Typed keys join the recording; the stop key does not, because
	// recording has already ended by the time it is consumed.
	if wasRecording && i.recorder.IsRecording() {
		i.recorder.Record(ev)
	}
	return res
}

func (i *Interpreter) flushLocked() Result {
	i.generation++
	i.stopTimer()

	var res Result
	if !i.resolver.HasPending() {
		res.Mode = i.mode
		res.State = i.builder.State()
		return res
	}
	items, err := i.mappingOutcome(i.resolver.Timeout(), 0, false, &res)
	if err != nil {
		i.failResult(&res, err)
		return res
	}
	i.runWork(items, &res)
	return res
}

// runWork drives the trampoline: substituted key events are processed
// iteratively, never by call-stack recursion.
func (i *Interpreter) runWork(work []workItem, res *Result) {
	for len(work) > 0 {
		item := work[0]
		work = work[1:]

		extra, err := i.step(item, res)
		if err != nil {
			// Abort any pending substitutions from the same expansion.
			i.failResult(res, err)
			return
		}
		if len(extra) > 0 {
			next := make([]workItem, 0, len(extra)+len(work))
			next = append(next, extra...)
			next = append(next, work...)
			work = next
		}
	}
	res.State = i.builder.State()
	res.Mode = i.mode
}

// failResult finalizes a failed event: one messenger signal, the bad
// state reported in the result, and the session back to idle.
func (i *Interpreter) failResult(res *Result, err error) {
	res.Err = err
	res.Consumed = true
	if errors.Is(err, ErrRecursionLimit) {
		i.builder.MarkError()
	} else {
		i.builder.MarkBad()
	}
	res.State = i.builder.State()
	i.messenger.Error(err)
	i.quietReset()
	res.Mode = i.mode
}

// quietReset returns the session to idle without signaling.
func (i *Interpreter) quietReset() {
	i.stopTimer()
	i.builder.Reset()
	i.resolver.Reset()
	i.digraphs.Reset()
	i.path = i.path[:0]
	i.cmdline = i.cmdline[:0]
	i.mode = mode.NewNormal()
}

// step processes one work item: the mapping stage first, then the
// dispatcher chain. An active digraph machine bypasses mapping lookup;
// that precedence is fixed and tested.
func (i *Interpreter) step(item workItem, res *Result) ([]workItem, error) {
	if !item.literal && !i.digraphs.Active() {
		r := i.resolver.Feed(i.mode.Kind, item.ev, item.depth)
		if r.Verdict == mapping.VerdictPending {
			i.armTimer()
			res.Consumed = true
			return nil, nil
		}
		i.stopTimer()
		items, err := i.mappingOutcome(r, item.depth, item.replayed, res)
		if err != nil {
			return nil, err
		}
		if r.Verdict == mapping.VerdictExpanded {
			res.Consumed = true
			return items, nil
		}
		// Rejected: the buffered keys come back for dispatch, the first
		// one marked literal so it cannot match a mapping again.
		return items, nil
	}
	return i.dispatch(item, res)
}

// mappingOutcome turns a resolver result into work items.
func (i *Interpreter) mappingOutcome(r mapping.Result, depth int, replayed bool, res *Result) ([]workItem, error) {
	switch r.Verdict {
	case mapping.VerdictExpanded:
		items := make([]workItem, 0, len(r.Expansion)+len(r.Replay))
		for _, ev := range r.Expansion {
			items = append(items, workItem{ev: ev, literal: !r.Recursive, depth: r.Depth, replayed: replayed})
		}
		for _, ev := range r.Replay {
			items = append(items, workItem{ev: ev, depth: depth, replayed: replayed})
		}
		return items, nil
	case mapping.VerdictRejected:
		items := make([]workItem, 0, len(r.Replay))
		for n, ev := range r.Replay {
			items = append(items, workItem{ev: ev, literal: n == 0, depth: depth, replayed: replayed})
		}
		return items, nil
	case mapping.VerdictRecursion:
		return nil, fmt.Errorf("%w: depth %d", ErrRecursionLimit, r.Depth)
	default:
		return nil, nil
	}
}

// dispatch applies the classification chain to one key. First match
// wins; the chain order is load-bearing.
func (i *Interpreter) dispatch(item workItem, res *Result) ([]workItem, error) {
	ev := item.ev
	m := i.mode
	exp := i.builder.ExpectedArg()

	// 1. Count digit. Select mode passes printable keys through instead.
	if m.AcceptsCount() && m.Kind != mode.Select &&
		!i.builder.RegisterPending() && !i.digraphs.Active() &&
		(exp == action.ArgNone || exp == action.ArgMotion) &&
		ev.IsRune() && !ev.IsModified() && command.IsDigit(ev.Rune) {
		if i.builder.Count().Active || command.IsCountStart(ev.Rune) {
			i.builder.PushDigit(ev.Rune)
			i.builder.Record(ev)
			res.Consumed = true
			return nil, nil
		}
		// A leading '0' is a command key, not a count start.
	}

	// 2. Count-digit deletion.
	if m.AcceptsCount() && ev.IsBackspace() && i.builder.Count().Active {
		i.builder.PopDigit()
		res.Consumed = true
		return nil, nil
	}

	// 3. Normal-mode interrupt.
	if m.Kind == mode.Normal && ev.IsRune() && ev.Rune == 'c' && ev.Mods.Has(key.ModCtrl) {
		i.quietReset()
		if i.cfg.OnCancel != nil {
			i.cfg.OnCancel()
		}
		res.Consumed = true
		return nil, nil
	}

	// 4. Pending character argument.
	if exp == action.ArgCharacter {
		res.Consumed = true
		if ev.IsEscape() {
			if m.Kind == mode.OperatorPending {
				i.mode = m.Resume()
			}
			i.quietResetKeepMode()
			return nil, nil
		}
		if !ev.IsPrintable() || ev.IsModified() {
			return nil, fmt.Errorf("%w: %s cannot be a character argument", ErrInvalidArgument, ev)
		}
		i.builder.Record(ev)
		if err := i.builder.Capture(command.CharArg(ev.Rune)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		return i.finish(item, res)
	}

	// 5. Pending register selection.
	if i.builder.RegisterPending() {
		res.Consumed = true
		if !ev.IsRune() || ev.IsModified() || !register.IsValid(ev.Rune) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRegister, ev)
		}
		i.builder.Record(ev)
		i.builder.SetRegister(ev.Rune)
		return nil, nil
	}

	// Register prefix key.
	if (m.Kind == mode.Normal || m.IsVisual()) && exp == action.ArgNone &&
		ev.IsRune() && ev.Rune == '"' && !ev.Mods.Has(key.ModCtrl) && len(i.path) == 0 {
		i.builder.BeginRegister()
		i.builder.Record(ev)
		res.Consumed = true
		return nil, nil
	}

	// 6. Digraph machine.
	if i.digraphs.Active() {
		res.Consumed = true
		if ev.IsEscape() && i.digraphs.State() != digraph.AwaitingLiteralDigits {
			// Escape abandons a half-typed digraph.
			i.digraphs.Reset()
			if top := i.builder.Top(); top != nil && top.Def != nil && top.Def.Arg == action.ArgDigraph {
				i.builder.PopPart()
			}
			if i.builder.Depth() == 0 {
				i.builder.Reset()
			}
			return nil, nil
		}
		return i.feedDigraph(item, res)
	}

	// Select mode: printable keys replace the selection instead of
	// resolving as commands.
	if m.Kind == mode.Select && ev.IsPrintable() && !ev.IsModified() {
		return i.rawInput(item, res)
	}

	// Stop key for a recording in progress, checked before the tree so
	// "q" does not start a second recording.
	if m.Kind == mode.Normal && i.recorder.IsRecording() &&
		ev.IsRune() && ev.Rune == 'q' && !ev.IsModified() &&
		exp == action.ArgNone && len(i.path) == 0 && !i.builder.Count().Active {
		res.Consumed = true
		if _, err := i.recorder.Stop(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRegister, err)
		}
		return nil, nil
	}

	// 7. Command-tree lookup. The doubled operator key resolves to the
	// whole-line variant.
	if i.builder.IsDoubledOperator(ev) && !ev.IsModified() {
		top := i.builder.Top()
		if lw, ok := i.actions.Registry().Resolve(top.Def.LinewiseName); ok {
			i.builder.Record(ev)
			i.builder.ResolveLinewise(lw)
			res.Consumed = true
			return i.finish(item, res)
		}
	}

	if tree := i.actions.Tree(m.Kind); tree != nil {
		def, longer := tree.WalkOne(i.path, ev)
		if def != nil {
			i.path = i.path[:0]
			i.builder.Record(ev)
			res.Consumed = true
			return i.resolved(def, ev, item, res)
		}
		if longer {
			// 8. Intermediate node: buffer the key; only the mapping
			// tracking resets, the command parts stay.
			i.path = append(i.path, ev)
			i.builder.Record(ev)
			i.resolver.Reset()
			res.Consumed = true
			return nil, nil
		}
	}

	// 9. Raw-input passthrough, or a dead end.
	return i.rawInput(item, res)
}

// quietResetKeepMode aborts the pending command without touching the
// mode, as Escape does mid-command.
func (i *Interpreter) quietResetKeepMode() {
	i.stopTimer()
	i.builder.Reset()
	i.resolver.Reset()
	i.digraphs.Reset()
	i.path = i.path[:0]
}

// feedDigraph routes a key into the active digraph/literal machine.
func (i *Interpreter) feedDigraph(item workItem, res *Result) ([]workItem, error) {
	r := i.digraphs.Feed(item.ev)
	switch r.Verdict {
	case digraph.Handled:
		i.builder.Record(item.ev)
		return nil, nil
	case digraph.Bad:
		return nil, fmt.Errorf("%w: no digraph for that pair", ErrInvalidArgument)
	case digraph.Done:
		i.builder.Record(item.ev)
		var extra []workItem
		if r.Replay != nil {
			// Early literal terminator: the key re-enters the chain.
			extra = append(extra, workItem{ev: *r.Replay, literal: true, depth: item.depth, replayed: item.replayed})
		}
		if i.mode.Kind == mode.CommandLine {
			// The digraph part sits above the ex part; the result is
			// plain command-line text.
			i.builder.PopPart()
			i.cmdline = append(i.cmdline, r.Rune)
			return extra, nil
		}
		if err := i.builder.Capture(command.DigraphArg(r.Rune)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		finished, err := i.finish(item, res)
		if err != nil {
			return nil, err
		}
		return append(finished, extra...), nil
	default:
		return nil, fmt.Errorf("%w: digraph machine inactive", ErrInvalidArgument)
	}
}

// resolved handles a definition the command tree produced for this key.
func (i *Interpreter) resolved(def *action.Def, ev key.Event, item workItem, res *Result) ([]workItem, error) {
	m := i.mode

	// An operator in visual mode applies to the selection: no motion
	// argument is needed.
	if def.IsOperator() && m.IsVisual() {
		i.builder.Push(def, ev)
		_ = i.builder.Capture(command.Argument{Type: command.ArgTypeMotion})
		return i.finish(item, res)
	}

	// An operator in normal mode opens operator-pending. A one-shot
	// normal mode passes its return target along, so the completed
	// motion resumes text entry rather than staying in normal.
	if def.IsOperator() && m.Kind == mode.Normal {
		i.builder.Push(def, ev)
		ret := mode.Normal
		if m.ReturnTo == mode.Insert || m.ReturnTo == mode.Replace {
			ret = m.ReturnTo
		}
		op, err := mode.NewOperatorPending(ret)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		i.mode = op
		return nil, nil
	}

	i.builder.Push(def, ev)

	switch def.Arg {
	case action.ArgDigraph:
		if def.Name == "edit.insertLiteral" {
			i.digraphs.BeginLiteral()
		} else {
			i.digraphs.BeginDigraph()
		}
		return nil, nil
	case action.ArgExString:
		target := mode.Normal
		if mode.ReturnableFromCmd(m.Kind) {
			target = m.Kind
		}
		cl, err := mode.NewCommandLine(target)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
		i.mode = cl
		i.cmdline = i.cmdline[:0]
		return nil, nil
	}

	if i.builder.State() == command.StateReady {
		return i.finish(item, res)
	}
	return nil, nil
}

// finish builds the ready command and hands it off.
func (i *Interpreter) finish(item workItem, res *Result) ([]workItem, error) {
	// Fold completed motion parts into the operator beneath them.
	for i.builder.Depth() > 1 {
		part, _ := i.builder.PopPart()
		motion := &command.Command{
			Action: part.Def,
			Count:  part.Count.Get(),
			Arg:    part.Arg,
		}
		if err := i.builder.Capture(command.MotionArg(motion)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
		}
	}

	cmd, err := i.builder.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	switch cmd.Action.Name {
	case "macro.record":
		if err := i.recorder.Start(cmd.Arg.Char); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRegister, err)
		}
		i.afterCommand(cmd)
		return nil, nil

	case "macro.play":
		keys, err := i.recorder.Playback(cmd.Arg.Char)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRegister, err)
		}
		count := cmd.Count
		i.afterCommand(cmd)
		items := make([]workItem, 0, count*len(keys))
		for n := 0; n < count; n++ {
			for _, ev := range keys {
				items = append(items, workItem{ev: ev, depth: item.depth, replayed: true})
			}
		}
		return items, nil

	case "edit.repeat":
		if len(i.lastRun) == 0 {
			i.afterCommand(cmd)
			return nil, nil
		}
		count := cmd.Count
		replay := make([]key.Event, len(i.lastRun))
		copy(replay, i.lastRun)
		i.afterCommand(cmd)
		items := make([]workItem, 0, count*len(replay))
		for n := 0; n < count; n++ {
			for _, ev := range replay {
				items = append(items, workItem{ev: ev, literal: true, depth: item.depth, replayed: true})
			}
		}
		return items, nil

	case "mode.commandLine":
		line := cmd.Arg.Ex
		i.registers.SetLastCommand(line)
		if i.exParser != nil {
			if err := i.exParser.Execute(line); err != nil {
				return nil, err
			}
		}
		res.Executed = append(res.Executed, cmd)
		i.afterCommand(cmd)
		return nil, nil
	}

	// Mutating commands require a writable surface; refusal happens
	// before any state changes.
	if cmd.Mutating() && !i.surf.Writable() {
		return nil, fmt.Errorf("%w: %s", ErrSurfaceNotWritable, i.surf.Name())
	}

	if err := i.executor.Execute(cmd); err != nil {
		return nil, err
	}
	res.Executed = append(res.Executed, cmd)
	if cmd.Mutating() && len(cmd.Keys) > 0 {
		i.lastRun = append(i.lastRun[:0], cmd.Keys...)
	}
	i.afterCommand(cmd)
	return nil, nil
}

// afterCommand applies the post-execution mode transition and returns
// the builder to idle.
func (i *Interpreter) afterCommand(cmd *command.Command) {
	prev := i.mode
	i.builder.Reset()
	i.path = i.path[:0]
	i.messenger.Clear()

	switch cmd.Action.Name {
	case "mode.insert", "mode.insertAfter", "mode.insertLineStart",
		"mode.insertLineEnd", "mode.openBelow", "mode.openAbove":
		i.mode = mode.NewInsert()
		return
	case "mode.replace":
		i.mode = mode.NewReplace()
		return
	case "mode.visual":
		i.mode = i.toggleVisual(prev, mode.CharWise)
		return
	case "mode.visualLine":
		i.mode = i.toggleVisual(prev, mode.LineWise)
		return
	case "mode.visualBlock":
		i.mode = i.toggleVisual(prev, mode.BlockWise)
		return
	case "mode.normal":
		i.mode = mode.NewNormal()
		return
	case "mode.select":
		i.mode = mode.NewSelect(mode.CharWise, mode.Normal)
		return
	case "mode.commandLine":
		i.mode = prev.Resume()
		i.cmdline = i.cmdline[:0]
		return
	case "mode.oneShotNormal":
		ret := prev.Kind
		if ret != mode.Insert && ret != mode.Replace {
			ret = mode.Normal
		}
		i.mode = mode.Mode{Kind: mode.Normal, ReturnTo: ret}
		return
	}

	if cmd.Action.EntersInsert {
		i.mode = mode.NewInsert()
		return
	}

	switch {
	case prev.Kind == mode.OperatorPending:
		i.mode = prev.Resume()
	case prev.Kind == mode.Normal && prev.ReturnTo != mode.Normal && !cmd.Action.ExpectsInput:
		// One-shot normal command done: return to the recorded mode.
		i.mode = mode.Mode{Kind: prev.ReturnTo}
	case prev.IsVisual() && !cmd.Action.Motion:
		// A non-motion command collapses the selection.
		i.mode = prev.Resume()
	}
}

// toggleVisual enters the requested visual kind, switches kind inside
// visual mode, or leaves visual mode when the kind repeats.
func (i *Interpreter) toggleVisual(prev mode.Mode, kind mode.VisualKind) mode.Mode {
	if prev.IsVisual() {
		if prev.Visual == kind {
			return prev.Resume()
		}
		return mode.NewVisual(kind, prev.ReturnTo)
	}
	return mode.NewVisual(kind, mode.Normal)
}

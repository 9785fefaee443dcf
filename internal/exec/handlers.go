package exec

import (
	"fmt"
	"strings"

	"github.com/veldin/keyweave/internal/input/command"
	"github.com/veldin/keyweave/internal/register"
	"github.com/veldin/keyweave/internal/surface"
)

// tabStop is the fixed indent width for the indent operators.
const tabStop = 4

// motionNames are the cursor motions that, run standalone, just move
// the cursor.
var motionNames = []string{
	"cursor.left", "cursor.right", "cursor.up", "cursor.down",
	"cursor.wordForward", "cursor.wordBackward", "cursor.wordEnd",
	"cursor.WORDForward", "cursor.WORDBackward", "cursor.WORDEnd",
	"cursor.lineStart", "cursor.lineEnd", "cursor.firstNonBlank",
	"cursor.firstLine", "cursor.lastLine",
	"cursor.paragraphForward", "cursor.paragraphBackward",
	"cursor.matchPair",
	"cursor.findForward", "cursor.findBackward",
	"cursor.tillForward", "cursor.tillBackward",
	"mark.goto", "mark.gotoLine",
}

// noopNames are actions whose behavior lives entirely in the
// interpreter (mode transitions) or has no effect on a headless surface
// (viewport scrolling). They must still resolve so commands complete.
var noopNames = []string{
	"mode.insert", "mode.insertAfter", "mode.insertLineStart",
	"mode.insertLineEnd", "mode.replace",
	"mode.visual", "mode.visualLine", "mode.visualBlock",
	"mode.select", "mode.normal", "mode.oneShotNormal",
	"view.scrollDown", "view.scrollUp",
	"view.scrollPageDown", "view.scrollPageUp",
	"edit.undo", "edit.redo",
}

func registerBuiltins(r *Registry) {
	for _, name := range motionNames {
		r.Register(name, moveCursor)
	}
	for _, name := range noopNames {
		r.Register(name, func(*Context, *command.Command) error { return nil })
	}

	r.Register("mark.set", markSet)

	r.Register("edit.delete", opDelete)
	r.Register("edit.change", opDelete)
	r.Register("edit.yank", opYank)
	r.Register("edit.deleteLine", lineCut(true))
	r.Register("edit.changeLine", lineCut(true))
	r.Register("edit.yankLine", lineCut(false))

	r.Register("edit.indentRight", opIndent(true))
	r.Register("edit.indentLeft", opIndent(false))
	r.Register("edit.indentLineRight", lineIndent(true))
	r.Register("edit.indentLineLeft", lineIndent(false))

	r.Register("edit.lowercase", opCase(strings.ToLower))
	r.Register("edit.uppercase", opCase(strings.ToUpper))
	r.Register("edit.toggleCase", opCase(toggleCase))
	r.Register("edit.lowercaseLine", lineCase(strings.ToLower))
	r.Register("edit.uppercaseLine", lineCase(strings.ToUpper))
	r.Register("edit.toggleCaseLine", lineCase(toggleCase))

	r.Register("edit.deleteChar", deleteChars(false))
	r.Register("edit.deleteCharBefore", deleteChars(true))
	r.Register("edit.deleteToEnd", cutToEnd)
	r.Register("edit.changeToEnd", cutToEnd)
	r.Register("edit.replaceChar", replaceChar)
	r.Register("edit.insertText", insertChar)
	r.Register("edit.insertDigraph", insertChar)
	r.Register("edit.insertLiteral", insertChar)
	r.Register("edit.overstrikeText", overstrikeChar)
	r.Register("edit.pasteAfter", paste(true))
	r.Register("edit.pasteBefore", paste(false))
	r.Register("edit.joinLines", joinLines)
	r.Register("mode.openBelow", openLine(true))
	r.Register("mode.openAbove", openLine(false))
}

func moveCursor(ctx *Context, cmd *command.Command) error {
	p, err := target(ctx, cmd, ctx.Surface.Cursor())
	if err != nil {
		return err
	}
	ctx.Surface.SetCursor(p)
	return nil
}

func markSet(ctx *Context, cmd *command.Command) error {
	if cmd.Arg.Type != command.ArgTypeChar {
		return fmt.Errorf("%w: mark name", ErrMissingArgument)
	}
	ctx.Marks[cmd.Arg.Char] = ctx.Surface.Cursor()
	return nil
}

// readRange returns the text a range covers without mutating.
func readRange(s surface.Surface, r surface.Range) string {
	r = r.Normalize()
	if r.Start.Line == r.End.Line {
		line := lineRunes(s, r.Start.Line)
		a, b := clampIdx(r.Start.Col, len(line)), clampIdx(r.End.Col, len(line))
		return string(line[a:b])
	}
	var sb strings.Builder
	first := lineRunes(s, r.Start.Line)
	sb.WriteString(string(first[clampIdx(r.Start.Col, len(first)):]))
	for l := r.Start.Line + 1; l < r.End.Line; l++ {
		sb.WriteByte('\n')
		text, _ := s.Line(l)
		sb.WriteString(text)
	}
	sb.WriteByte('\n')
	last := lineRunes(s, r.End.Line)
	sb.WriteString(string(last[:clampIdx(r.End.Col, len(last))]))
	return sb.String()
}

func clampIdx(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

// storeCut routes deleted text into the selected register or through
// the numbered-register rotation.
func storeCut(ctx *Context, reg rune, text string, wise register.Wise) {
	if reg != 0 {
		_ = ctx.Registers.Set(reg, text, wise)
		return
	}
	small := wise == register.CharWise && !strings.ContainsRune(text, '\n')
	ctx.Registers.SetDelete(text, wise, small)
}

func storeYank(ctx *Context, reg rune, text string, wise register.Wise) {
	if reg != 0 {
		_ = ctx.Registers.Set(reg, text, wise)
		return
	}
	ctx.Registers.SetYank(text, wise)
}

func opDelete(ctx *Context, cmd *command.Command) error {
	rng, wise, err := motionRange(ctx, cmd)
	if err != nil {
		return err
	}
	text, err := ctx.Surface.Delete(rng)
	if err != nil {
		return err
	}
	storeCut(ctx, cmd.Register, text, wise)
	ctx.Surface.SetCursor(rng.Normalize().Start)
	return nil
}

func opYank(ctx *Context, cmd *command.Command) error {
	rng, wise, err := motionRange(ctx, cmd)
	if err != nil {
		return err
	}
	storeYank(ctx, cmd.Register, readRange(ctx.Surface, rng), wise)
	ctx.Surface.SetCursor(rng.Normalize().Start)
	return nil
}

// lineCut covers the whole-line operator variants (dd, cc, yy).
func lineCut(remove bool) Handler {
	return func(ctx *Context, cmd *command.Command) error {
		s := ctx.Surface
		start := s.Cursor().Line
		rng := lineSpan(s, start, start+cmd.Count-1)
		if !remove {
			text := strings.TrimSuffix(readRange(s, rng), "\n")
			storeYank(ctx, cmd.Register, text+"\n", register.LineWise)
			return nil
		}
		text, err := s.Delete(rng)
		if err != nil {
			return err
		}
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		storeCut(ctx, cmd.Register, text, register.LineWise)
		s.SetCursor(surface.Position{Line: rng.Start.Line, Col: 0})
		return nil
	}
}

func opIndent(right bool) Handler {
	return func(ctx *Context, cmd *command.Command) error {
		rng, _, err := motionRange(ctx, cmd)
		if err != nil {
			return err
		}
		rng = rng.Normalize()
		return indentLines(ctx.Surface, rng.Start.Line, rng.End.Line, right)
	}
}

func lineIndent(right bool) Handler {
	return func(ctx *Context, cmd *command.Command) error {
		start := ctx.Surface.Cursor().Line
		return indentLines(ctx.Surface, start, start+cmd.Count-1, right)
	}
}

func indentLines(s surface.Surface, a, b int, right bool) error {
	if b >= s.LineCount() {
		b = s.LineCount() - 1
	}
	for l := a; l <= b; l++ {
		if right {
			if _, err := s.Insert(surface.Position{Line: l, Col: 0}, "\t"); err != nil {
				return err
			}
			continue
		}
		line := lineRunes(s, l)
		n := 0
		if len(line) > 0 && line[0] == '\t' {
			n = 1
		} else {
			for n < len(line) && n < tabStop && line[n] == ' ' {
				n++
			}
		}
		if n == 0 {
			continue
		}
		end := surface.Position{Line: l, Col: n}
		if _, err := s.Delete(surface.Range{Start: surface.Position{Line: l, Col: 0}, End: end}); err != nil {
			return err
		}
	}
	return nil
}

func opCase(transform func(string) string) Handler {
	return func(ctx *Context, cmd *command.Command) error {
		rng, _, err := motionRange(ctx, cmd)
		if err != nil {
			return err
		}
		text := readRange(ctx.Surface, rng)
		_, err = ctx.Surface.Replace(rng, transform(text))
		return err
	}
}

func lineCase(transform func(string) string) Handler {
	return func(ctx *Context, cmd *command.Command) error {
		s := ctx.Surface
		start := s.Cursor().Line
		end := start + cmd.Count - 1
		if end >= s.LineCount() {
			end = s.LineCount() - 1
		}
		for l := start; l <= end; l++ {
			line, err := s.Line(l)
			if err != nil {
				return err
			}
			rng := surface.Range{
				Start: surface.Position{Line: l, Col: 0},
				End:   surface.Position{Line: l, Col: len([]rune(line))},
			}
			if _, err := s.Replace(rng, transform(line)); err != nil {
				return err
			}
		}
		return nil
	}
}

func toggleCase(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z':
			return r - 'A' + 'a'
		default:
			return r
		}
	}, text)
}

func deleteChars(before bool) Handler {
	return func(ctx *Context, cmd *command.Command) error {
		s := ctx.Surface
		cur := s.Cursor()
		n := len(lineRunes(s, cur.Line))
		rng := surface.Range{Start: cur, End: cur}
		if before {
			rng.Start.Col = clampIdx(cur.Col-cmd.Count, n)
		} else {
			rng.End.Col = clampIdx(cur.Col+cmd.Count, n)
		}
		if rng.IsEmpty() {
			return nil
		}
		text, err := s.Delete(rng)
		if err != nil {
			return err
		}
		storeCut(ctx, cmd.Register, text, register.CharWise)
		return nil
	}
}

func cutToEnd(ctx *Context, cmd *command.Command) error {
	s := ctx.Surface
	cur := s.Cursor()
	end := surface.Position{Line: cur.Line, Col: len(lineRunes(s, cur.Line))}
	if cur.Col >= end.Col {
		return nil
	}
	text, err := s.Delete(surface.Range{Start: cur, End: end})
	if err != nil {
		return err
	}
	storeCut(ctx, cmd.Register, text, register.CharWise)
	return nil
}

func replaceChar(ctx *Context, cmd *command.Command) error {
	if cmd.Arg.Type != command.ArgTypeChar {
		return fmt.Errorf("%w: replacement character", ErrMissingArgument)
	}
	s := ctx.Surface
	cur := s.Cursor()
	line := lineRunes(s, cur.Line)
	if cur.Col+cmd.Count > len(line) {
		return fmt.Errorf("%w: not enough characters to replace", ErrTargetNotFound)
	}
	rng := surface.Range{
		Start: cur,
		End:   surface.Position{Line: cur.Line, Col: cur.Col + cmd.Count},
	}
	_, err := s.Replace(rng, strings.Repeat(string(cmd.Arg.Char), cmd.Count))
	if err == nil {
		s.SetCursor(cur)
	}
	return err
}

func insertChar(ctx *Context, cmd *command.Command) error {
	if cmd.Arg.Type != command.ArgTypeChar && cmd.Arg.Type != command.ArgTypeDigraph {
		return fmt.Errorf("%w: character to insert", ErrMissingArgument)
	}
	s := ctx.Surface
	after, err := s.Insert(s.Cursor(), string(cmd.Arg.Char))
	if err != nil {
		return err
	}
	s.SetCursor(after)
	return nil
}

func overstrikeChar(ctx *Context, cmd *command.Command) error {
	if cmd.Arg.Type != command.ArgTypeChar {
		return fmt.Errorf("%w: character to overstrike", ErrMissingArgument)
	}
	s := ctx.Surface
	cur := s.Cursor()
	line := lineRunes(s, cur.Line)
	if cmd.Arg.Char == '\n' || cur.Col >= len(line) {
		return insertChar(ctx, cmd)
	}
	rng := surface.Range{
		Start: cur,
		End:   surface.Position{Line: cur.Line, Col: cur.Col + 1},
	}
	if _, err := s.Replace(rng, string(cmd.Arg.Char)); err != nil {
		return err
	}
	s.SetCursor(surface.Position{Line: cur.Line, Col: cur.Col + 1})
	return nil
}

func paste(after bool) Handler {
	return func(ctx *Context, cmd *command.Command) error {
		name := cmd.Register
		if name == 0 {
			name = '"'
		}
		text, wise, err := ctx.Registers.Get(name)
		if err != nil {
			return err
		}
		if text == "" {
			return nil
		}
		s := ctx.Surface
		cur := s.Cursor()

		if wise == register.LineWise {
			block := strings.TrimSuffix(text, "\n")
			if after {
				end := surface.Position{Line: cur.Line, Col: len(lineRunes(s, cur.Line))}
				if _, err := s.Insert(end, "\n"+block); err != nil {
					return err
				}
				s.SetCursor(surface.Position{Line: cur.Line + 1, Col: 0})
				return nil
			}
			if _, err := s.Insert(surface.Position{Line: cur.Line, Col: 0}, block+"\n"); err != nil {
				return err
			}
			s.SetCursor(surface.Position{Line: cur.Line, Col: 0})
			return nil
		}

		p := cur
		if after && p.Col < len(lineRunes(s, p.Line)) {
			p.Col++
		}
		for n := 0; n < cmd.Count; n++ {
			end, err := s.Insert(p, text)
			if err != nil {
				return err
			}
			p = end
		}
		s.SetCursor(p)
		return nil
	}
}

func joinLines(ctx *Context, cmd *command.Command) error {
	s := ctx.Surface
	joins := cmd.Count - 1
	if joins < 1 {
		joins = 1
	}
	for n := 0; n < joins; n++ {
		cur := s.Cursor().Line
		if cur+1 >= s.LineCount() {
			return nil
		}
		line := lineRunes(s, cur)
		next := lineRunes(s, cur+1)
		lead := 0
		for lead < len(next) && (next[lead] == ' ' || next[lead] == '\t') {
			lead++
		}
		rng := surface.Range{
			Start: surface.Position{Line: cur, Col: len(line)},
			End:   surface.Position{Line: cur + 1, Col: lead},
		}
		sep := " "
		if len(next) == lead || len(line) == 0 {
			sep = ""
		}
		if _, err := s.Replace(rng, sep); err != nil {
			return err
		}
		s.SetCursor(surface.Position{Line: cur, Col: len(line)})
	}
	return nil
}

// openLine inserts the blank line for o/O; insert mode entry is the
// interpreter's transition.
func openLine(below bool) Handler {
	return func(ctx *Context, cmd *command.Command) error {
		s := ctx.Surface
		cur := s.Cursor()
		if below {
			end := surface.Position{Line: cur.Line, Col: len(lineRunes(s, cur.Line))}
			if _, err := s.Insert(end, "\n"); err != nil {
				return err
			}
			s.SetCursor(surface.Position{Line: cur.Line + 1, Col: 0})
			return nil
		}
		if _, err := s.Insert(surface.Position{Line: cur.Line, Col: 0}, "\n"); err != nil {
			return err
		}
		s.SetCursor(surface.Position{Line: cur.Line, Col: 0})
		return nil
	}
}

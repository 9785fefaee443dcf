package exec

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/veldin/keyweave/internal/input/action"
	"github.com/veldin/keyweave/internal/input/command"
	"github.com/veldin/keyweave/internal/register"
	"github.com/veldin/keyweave/internal/surface"
)

func lineRunes(s surface.Surface, i int) []rune {
	text, err := s.Line(i)
	if err != nil {
		return nil
	}
	return []rune(text)
}

// runeAt treats the position one past the last column as the line break.
func runeAt(s surface.Surface, p surface.Position) (rune, bool) {
	if p.Line < 0 || p.Line >= s.LineCount() {
		return 0, false
	}
	line := lineRunes(s, p.Line)
	if p.Col >= len(line) {
		return '\n', true
	}
	return line[p.Col], true
}

func nextPos(s surface.Surface, p surface.Position) (surface.Position, bool) {
	if p.Col < len(lineRunes(s, p.Line)) {
		return surface.Position{Line: p.Line, Col: p.Col + 1}, true
	}
	if p.Line+1 >= s.LineCount() {
		return p, false
	}
	return surface.Position{Line: p.Line + 1, Col: 0}, true
}

func prevPos(s surface.Surface, p surface.Position) (surface.Position, bool) {
	if p.Col > 0 {
		return surface.Position{Line: p.Line, Col: p.Col - 1}, true
	}
	if p.Line == 0 {
		return p, false
	}
	return surface.Position{Line: p.Line - 1, Col: len(lineRunes(s, p.Line-1))}, true
}

type charClass uint8

const (
	classSpace charClass = iota
	classWord
	classPunct
)

// class follows the vim notion of a word; coarse collapses word and
// punctuation into one class for WORD motions.
func class(r rune, coarse bool) charClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case coarse, r == '_', unicode.IsLetter(r), unicode.IsDigit(r):
		return classWord
	default:
		return classPunct
	}
}

func wordForward(s surface.Surface, p surface.Position, coarse bool) surface.Position {
	cur, ok := runeAt(s, p)
	if !ok {
		return p
	}
	q := p
	if cls := class(cur, coarse); cls != classSpace {
		for {
			n, ok := nextPos(s, q)
			if !ok {
				return n
			}
			q = n
			r, _ := runeAt(s, q)
			if class(r, coarse) != cls {
				break
			}
		}
	}
	for {
		r, ok := runeAt(s, q)
		if !ok || class(r, coarse) != classSpace {
			break
		}
		n, ok := nextPos(s, q)
		if !ok {
			break
		}
		q = n
	}
	return q
}

func wordBackward(s surface.Surface, p surface.Position, coarse bool) surface.Position {
	q, ok := prevPos(s, p)
	if !ok {
		return p
	}
	for {
		r, _ := runeAt(s, q)
		if class(r, coarse) != classSpace {
			break
		}
		n, ok := prevPos(s, q)
		if !ok {
			return q
		}
		q = n
	}
	r, _ := runeAt(s, q)
	cls := class(r, coarse)
	for {
		n, ok := prevPos(s, q)
		if !ok {
			return q
		}
		nr, _ := runeAt(s, n)
		if class(nr, coarse) != cls {
			return q
		}
		q = n
	}
}

func wordEnd(s surface.Surface, p surface.Position, coarse bool) surface.Position {
	q, ok := nextPos(s, p)
	if !ok {
		return p
	}
	for {
		r, _ := runeAt(s, q)
		if class(r, coarse) != classSpace {
			break
		}
		n, ok := nextPos(s, q)
		if !ok {
			return q
		}
		q = n
	}
	r, _ := runeAt(s, q)
	cls := class(r, coarse)
	for {
		n, ok := nextPos(s, q)
		if !ok {
			return q
		}
		nr, _ := runeAt(s, n)
		if class(nr, coarse) != cls {
			return q
		}
		q = n
	}
}

func firstNonBlankCol(line []rune) int {
	for i, r := range line {
		if !unicode.IsSpace(r) {
			return i
		}
	}
	return 0
}

func isBlankLine(s surface.Surface, i int) bool {
	return strings.TrimSpace(string(lineRunes(s, i))) == ""
}

func findInLine(line []rune, from int, ch rune, count int, forward bool) (int, bool) {
	col := from
	for n := 0; n < count; n++ {
		found := -1
		if forward {
			for i := col + 1; i < len(line); i++ {
				if line[i] == ch {
					found = i
					break
				}
			}
		} else {
			for i := col - 1; i >= 0; i-- {
				if line[i] == ch {
					found = i
					break
				}
			}
		}
		if found < 0 {
			return 0, false
		}
		col = found
	}
	return col, true
}

var pairs = map[rune]struct {
	other   rune
	forward bool
}{
	'(': {')', true}, ')': {'(', false},
	'[': {']', true}, ']': {'[', false},
	'{': {'}', true}, '}': {'{', false},
}

// matchPair jumps between a bracket and its partner, starting from the
// first bracket at or after the cursor on the current line.
func matchPair(s surface.Surface, start surface.Position) (surface.Position, error) {
	line := lineRunes(s, start.Line)
	p := start
	for p.Col < len(line) {
		if _, ok := pairs[line[p.Col]]; ok {
			break
		}
		p.Col++
	}
	if p.Col >= len(line) {
		return start, fmt.Errorf("%w: no bracket on line", ErrTargetNotFound)
	}

	open := line[p.Col]
	pair := pairs[open]
	depth := 0
	q := p
	for {
		r, ok := runeAt(s, q)
		if !ok {
			return start, fmt.Errorf("%w: unmatched %q", ErrTargetNotFound, open)
		}
		switch r {
		case open:
			depth++
		case pair.other:
			depth--
			if depth == 0 {
				return q, nil
			}
		}
		var moved bool
		if pair.forward {
			q, moved = nextPos(s, q)
		} else {
			q, moved = prevPos(s, q)
		}
		if !moved {
			return start, fmt.Errorf("%w: unmatched %q", ErrTargetNotFound, open)
		}
	}
}

// target resolves a motion command to the position it reaches from start.
func target(ctx *Context, m *command.Command, start surface.Position) (surface.Position, error) {
	s := ctx.Surface
	count := m.Count
	if count < 1 {
		count = 1
	}
	line := lineRunes(s, start.Line)
	last := s.LineCount() - 1

	clampLine := func(l int) int {
		if l < 0 {
			return 0
		}
		if l > last {
			return last
		}
		return l
	}
	clampCol := func(l, c int) surface.Position {
		n := len(lineRunes(s, l))
		if c > n {
			c = n
		}
		if c < 0 {
			c = 0
		}
		return surface.Position{Line: l, Col: c}
	}

	switch m.Action.Name {
	case "cursor.left":
		return clampCol(start.Line, start.Col-count), nil
	case "cursor.right":
		return clampCol(start.Line, start.Col+count), nil
	case "cursor.up":
		return clampCol(clampLine(start.Line-count), start.Col), nil
	case "cursor.down":
		return clampCol(clampLine(start.Line+count), start.Col), nil
	case "cursor.lineStart":
		return surface.Position{Line: start.Line, Col: 0}, nil
	case "cursor.lineEnd":
		col := len(line)
		if col > 0 {
			col--
		}
		return surface.Position{Line: start.Line, Col: col}, nil
	case "cursor.firstNonBlank":
		return surface.Position{Line: start.Line, Col: firstNonBlankCol(line)}, nil
	case "cursor.firstLine":
		l := clampLine(count - 1)
		return surface.Position{Line: l, Col: firstNonBlankCol(lineRunes(s, l))}, nil
	case "cursor.lastLine":
		return surface.Position{Line: last, Col: firstNonBlankCol(lineRunes(s, last))}, nil

	case "cursor.wordForward", "cursor.WORDForward":
		p := start
		for n := 0; n < count; n++ {
			p = wordForward(s, p, m.Action.Name == "cursor.WORDForward")
		}
		return p, nil
	case "cursor.wordBackward", "cursor.WORDBackward":
		p := start
		for n := 0; n < count; n++ {
			p = wordBackward(s, p, m.Action.Name == "cursor.WORDBackward")
		}
		return p, nil
	case "cursor.wordEnd", "cursor.WORDEnd":
		p := start
		for n := 0; n < count; n++ {
			p = wordEnd(s, p, m.Action.Name == "cursor.WORDEnd")
		}
		return p, nil

	case "cursor.paragraphForward":
		l := start.Line
		for n := 0; n < count; n++ {
			l++
			for l < last && !isBlankLine(s, l) {
				l++
			}
		}
		return surface.Position{Line: clampLine(l), Col: 0}, nil
	case "cursor.paragraphBackward":
		l := start.Line
		for n := 0; n < count; n++ {
			l--
			for l > 0 && !isBlankLine(s, l) {
				l--
			}
		}
		return surface.Position{Line: clampLine(l), Col: 0}, nil

	case "cursor.findForward", "cursor.findBackward",
		"cursor.tillForward", "cursor.tillBackward":
		if m.Arg.Type != command.ArgTypeChar {
			return start, fmt.Errorf("%w: search motion needs a character", ErrMissingArgument)
		}
		forward := m.Action.Name == "cursor.findForward" || m.Action.Name == "cursor.tillForward"
		col, ok := findInLine(line, start.Col, m.Arg.Char, count, forward)
		if !ok {
			return start, fmt.Errorf("%w: %q", ErrTargetNotFound, m.Arg.Char)
		}
		switch m.Action.Name {
		case "cursor.tillForward":
			col--
		case "cursor.tillBackward":
			col++
		}
		return surface.Position{Line: start.Line, Col: col}, nil

	case "cursor.matchPair":
		return matchPair(s, start)

	case "mark.goto", "mark.gotoLine":
		if m.Arg.Type != command.ArgTypeChar {
			return start, fmt.Errorf("%w: mark name", ErrMissingArgument)
		}
		p, ok := ctx.Marks[m.Arg.Char]
		if !ok {
			return start, fmt.Errorf("%w: mark %q not set", ErrTargetNotFound, m.Arg.Char)
		}
		l := clampLine(p.Line)
		if m.Action.Name == "mark.gotoLine" {
			return surface.Position{Line: l, Col: firstNonBlankCol(lineRunes(s, l))}, nil
		}
		return clampCol(l, p.Col), nil
	}

	return start, fmt.Errorf("%w: %s", ErrNoHandler, m.Action.Name)
}

// lineSpan covers whole lines a..b as a character range the surface can
// delete, break included except on the final line.
func lineSpan(s surface.Surface, a, b int) surface.Range {
	if a > b {
		a, b = b, a
	}
	last := s.LineCount() - 1
	if b >= last {
		return surface.Range{
			Start: surface.Position{Line: a, Col: 0},
			End:   surface.Position{Line: last, Col: len(lineRunes(s, last))},
		}
	}
	return surface.Range{
		Start: surface.Position{Line: a, Col: 0},
		End:   surface.Position{Line: b + 1, Col: 0},
	}
}

// motionRange resolves an operator's motion argument into the range it
// covers and the orientation the captured text carries.
func motionRange(ctx *Context, cmd *command.Command) (surface.Range, register.Wise, error) {
	s := ctx.Surface
	start := s.Cursor()
	m := cmd.Arg.Motion

	if m == nil || m.Action == nil {
		// Operator handed over without a motion: cover the character
		// under the cursor.
		end := surface.Position{Line: start.Line, Col: start.Col + 1}
		if n := len(lineRunes(s, start.Line)); end.Col > n {
			end.Col = n
		}
		return surface.Range{Start: start, End: end}, register.CharWise, nil
	}

	if strings.HasPrefix(m.Action.Name, "object.") {
		return objectRange(ctx, m, start)
	}

	end, err := target(ctx, m, start)
	if err != nil {
		return surface.Range{}, register.CharWise, err
	}
	if m.Action.Wise == action.LineWise {
		return lineSpan(s, start.Line, end.Line), register.LineWise, nil
	}
	if m.Action.Inclusive {
		end.Col++
	}
	return surface.Range{Start: start, End: end}.Normalize(), register.CharWise, nil
}

// objectRange resolves a text object around the cursor.
func objectRange(ctx *Context, m *command.Command, start surface.Position) (surface.Range, register.Wise, error) {
	s := ctx.Surface
	name := m.Action.Name
	line := lineRunes(s, start.Line)
	around := strings.HasPrefix(name, "object.around")

	switch name {
	case "object.innerWord", "object.aroundWord", "object.innerWORD", "object.aroundWORD":
		coarse := strings.HasSuffix(name, "WORD")
		if len(line) == 0 {
			return surface.Range{Start: start, End: start}, register.CharWise, nil
		}
		col := start.Col
		if col >= len(line) {
			col = len(line) - 1
		}
		cls := class(line[col], coarse)
		a, b := col, col+1
		for a > 0 && class(line[a-1], coarse) == cls {
			a--
		}
		for b < len(line) && class(line[b], coarse) == cls {
			b++
		}
		if around {
			for b < len(line) && class(line[b], coarse) == classSpace {
				b++
			}
		}
		return surface.Range{
			Start: surface.Position{Line: start.Line, Col: a},
			End:   surface.Position{Line: start.Line, Col: b},
		}, register.CharWise, nil

	case "object.innerParagraph", "object.aroundParagraph":
		a, b := start.Line, start.Line
		for a > 0 && !isBlankLine(s, a-1) {
			a--
		}
		for b < s.LineCount()-1 && !isBlankLine(s, b+1) {
			b++
		}
		if around {
			for b < s.LineCount()-1 && isBlankLine(s, b+1) {
				b++
			}
		}
		return lineSpan(s, a, b), register.LineWise, nil

	case "object.innerQuote", "object.aroundQuote":
		for _, q := range []rune{'"', '\''} {
			if r, ok := quoteRange(line, start.Col, q, around); ok {
				r.Start.Line = start.Line
				r.End.Line = start.Line
				return r, register.CharWise, nil
			}
		}
		return surface.Range{}, register.CharWise, fmt.Errorf("%w: no quoted text", ErrTargetNotFound)

	case "object.innerParen", "object.aroundParen":
		return enclosedRange(s, start, '(', ')', around)
	case "object.innerBrace", "object.aroundBrace":
		return enclosedRange(s, start, '{', '}', around)
	case "object.innerBracket", "object.aroundBracket":
		return enclosedRange(s, start, '[', ']', around)
	}

	return surface.Range{}, register.CharWise, fmt.Errorf("%w: %s", ErrNoHandler, name)
}

// quoteRange finds the quoted span the cursor sits in or before on one
// line. Columns only; the caller fills in the line.
func quoteRange(line []rune, col int, quote rune, around bool) (surface.Range, bool) {
	var marks []int
	for i, r := range line {
		if r == quote {
			marks = append(marks, i)
		}
	}
	for i := 0; i+1 < len(marks); i += 2 {
		a, b := marks[i], marks[i+1]
		if col <= b {
			if around {
				return surface.Range{Start: surface.Position{Col: a}, End: surface.Position{Col: b + 1}}, true
			}
			return surface.Range{Start: surface.Position{Col: a + 1}, End: surface.Position{Col: b}}, true
		}
	}
	return surface.Range{}, false
}

// enclosedRange finds the innermost open/close pair around the cursor,
// scanning across lines.
func enclosedRange(s surface.Surface, start surface.Position, open, close rune, around bool) (surface.Range, register.Wise, error) {
	depth := 0
	a := start
	for {
		r, ok := runeAt(s, a)
		if ok && r == close && a != start {
			depth++
		}
		if ok && r == open {
			if depth == 0 {
				break
			}
			depth--
		}
		p, moved := prevPos(s, a)
		if !moved {
			return surface.Range{}, register.CharWise, fmt.Errorf("%w: no enclosing %q", ErrTargetNotFound, open)
		}
		a = p
	}

	depth = 0
	b := start
	for {
		r, ok := runeAt(s, b)
		if ok && r == open && b != a {
			depth++
		}
		if ok && r == close {
			if depth == 0 {
				break
			}
			depth--
		}
		n, moved := nextPos(s, b)
		if !moved {
			return surface.Range{}, register.CharWise, fmt.Errorf("%w: no closing %q", ErrTargetNotFound, close)
		}
		b = n
	}

	if around {
		end, _ := nextPos(s, b)
		return surface.Range{Start: a, End: end}, register.CharWise, nil
	}
	inner, _ := nextPos(s, a)
	return surface.Range{Start: inner, End: b}, register.CharWise, nil
}

package digraph

import (
	"testing"

	"github.com/veldin/keyweave/internal/input/key"
)

func rk(r rune) key.Event { return key.RuneEvent(r, key.ModNone) }

func feedAll(m *Machine, s string) Result {
	var res Result
	for _, r := range s {
		res = m.Feed(rk(r))
	}
	return res
}

func TestInactiveIsUnhandled(t *testing.T) {
	m := New()
	if res := m.Feed(rk('a')); res.Verdict != Unhandled {
		t.Errorf("verdict = %v, want Unhandled while inactive", res.Verdict)
	}
}

func TestDigraphRoundTrip(t *testing.T) {
	tests := []struct {
		input string
		want  rune
	}{
		{"e'", 'é'},
		{"a:", 'ä'},
		{"o/", 'ø'},
		{"Eu", '€'},
		{"Co", '©'},
		{"a*", 'α'},
		{"->", '→'},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m := New()
			m.BeginDigraph()

			res := m.Feed(rk(rune(tt.input[0])))
			if res.Verdict != Handled {
				t.Fatalf("first char verdict = %v, want Handled", res.Verdict)
			}
			res = feedAll(m, tt.input[1:])
			if res.Verdict != Done || res.Rune != tt.want {
				t.Errorf("got (%v, %q), want (Done, %q)", res.Verdict, res.Rune, tt.want)
			}
			if m.Active() {
				t.Error("machine should be inactive after completion")
			}
		})
	}
}

func TestDigraphMiss(t *testing.T) {
	m := New()
	m.BeginDigraph()
	m.Feed(rk('q'))
	if res := m.Feed(rk('q')); res.Verdict != Bad {
		t.Errorf("verdict = %v, want Bad for unknown pair", res.Verdict)
	}
	if m.Active() {
		t.Error("machine should reset after a bad pair")
	}
}

func TestDigraphOrderMatters(t *testing.T) {
	if _, ok := Lookup('e', '\''); !ok {
		t.Fatal("e' should be in the table")
	}
	if _, ok := Lookup('\'', 'e'); ok {
		t.Error("'e (reversed) should not be in the table")
	}
}

func TestLiteralDecimal(t *testing.T) {
	m := New()
	m.BeginLiteral()
	res := feedAll(m, "065")
	if res.Verdict != Done || res.Rune != 'A' {
		t.Errorf("got (%v, %q), want (Done, 'A')", res.Verdict, res.Rune)
	}
}

func TestLiteralDecimalEarlyTerminator(t *testing.T) {
	m := New()
	m.BeginLiteral()
	feedAll(m, "65")
	res := m.Feed(rk('x'))
	if res.Verdict != Done || res.Rune != 'A' {
		t.Fatalf("got (%v, %q), want (Done, 'A')", res.Verdict, res.Rune)
	}
	if res.Replay == nil || res.Replay.Rune != 'x' {
		t.Error("terminating key must be returned for replay")
	}
}

func TestLiteralHex(t *testing.T) {
	m := New()
	m.BeginLiteral()
	if res := feedAll(m, "x41"); res.Verdict != Done || res.Rune != 'A' {
		t.Errorf("x41: got (%v, %q), want (Done, 'A')", res.Verdict, res.Rune)
	}

	m.BeginLiteral()
	if res := feedAll(m, "u20ac"); res.Verdict != Done || res.Rune != '€' {
		t.Errorf("u20ac: got (%v, %q), want (Done, '€')", res.Verdict, res.Rune)
	}

	m.BeginLiteral()
	if res := feedAll(m, "U0001f600"); res.Verdict != Done || res.Rune != 0x1f600 {
		t.Errorf("U0001f600: got (%v, %#x), want (Done, 0x1f600)", res.Verdict, res.Rune)
	}
}

func TestLiteralOctal(t *testing.T) {
	m := New()
	m.BeginLiteral()
	if res := feedAll(m, "o101"); res.Verdict != Done || res.Rune != 'A' {
		t.Errorf("o101: got (%v, %q), want (Done, 'A')", res.Verdict, res.Rune)
	}
}

func TestLiteralNext(t *testing.T) {
	// With no digits, the next key is taken literally.
	m := New()
	m.BeginLiteral()
	if res := m.Feed(rk('%')); res.Verdict != Done || res.Rune != '%' {
		t.Errorf("got (%v, %q), want (Done, '%%')", res.Verdict, res.Rune)
	}

	m.BeginLiteral()
	if res := m.Feed(key.SpecialEvent(key.CodeEscape, key.ModNone)); res.Verdict != Done || res.Rune != 0x1b {
		t.Errorf("escape: got (%v, %#x), want (Done, 0x1b)", res.Verdict, res.Rune)
	}
}

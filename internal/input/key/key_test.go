package key

import "testing"

func TestEventString(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  string
	}{
		{"plain rune", RuneEvent('a', ModNone), "a"},
		{"upper rune", RuneEvent('A', ModShift), "A"},
		{"space", RuneEvent(' ', ModNone), "Space"},
		{"ctrl rune", RuneEvent('s', ModCtrl), "C-s"},
		{"alt rune", RuneEvent('x', ModAlt), "A-x"},
		{"escape", SpecialEvent(CodeEscape, ModNone), "Esc"},
		{"shift tab", SpecialEvent(CodeTab, ModShift), "S-Tab"},
		{"ctrl shift f5", SpecialEvent(CodeF5, ModCtrl|ModShift), "C-S-F5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEventVimString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{RuneEvent('a', ModNone), "a"},
		{RuneEvent('<', ModNone), "<lt>"},
		{RuneEvent(' ', ModNone), "<Space>"},
		{RuneEvent('s', ModCtrl), "<C-s>"},
		{SpecialEvent(CodeEnter, ModNone), "<CR>"},
		{SpecialEvent(CodeEscape, ModNone), "<Esc>"},
	}

	for _, tt := range tests {
		if got := tt.event.VimString(); got != tt.want {
			t.Errorf("VimString(%#v) = %q, want %q", tt.event, got, tt.want)
		}
	}
}

func TestEventEquality(t *testing.T) {
	a := RuneEvent('a', ModNone)
	b := RuneEvent('a', ModNone)
	if a != b {
		t.Error("identical rune events should compare equal")
	}
	if a == RuneEvent('a', ModCtrl) {
		t.Error("events with different modifiers should not compare equal")
	}
	if a == RuneEvent('b', ModNone) {
		t.Error("events with different runes should not compare equal")
	}
}

func TestEventIsModified(t *testing.T) {
	if RuneEvent('A', ModShift).IsModified() {
		t.Error("shift alone should not count as modified for runes")
	}
	if !RuneEvent('a', ModCtrl).IsModified() {
		t.Error("ctrl should count as modified")
	}
	if !SpecialEvent(CodeTab, ModShift).IsModified() {
		t.Error("shift should count as modified for special keys")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		spec string
		want Event
	}{
		{"a", RuneEvent('a', ModNone)},
		{"A", RuneEvent('A', ModNone)},
		{"@", RuneEvent('@', ModNone)},
		{"Enter", SpecialEvent(CodeEnter, ModNone)},
		{"Esc", SpecialEvent(CodeEscape, ModNone)},
		{"<CR>", SpecialEvent(CodeEnter, ModNone)},
		{"<Esc>", SpecialEvent(CodeEscape, ModNone)},
		{"<C-s>", RuneEvent('s', ModCtrl)},
		{"<C-S>", RuneEvent('s', ModCtrl)},
		{"<A-x>", RuneEvent('x', ModAlt)},
		{"<C-A-Del>", SpecialEvent(CodeDelete, ModCtrl|ModAlt)},
		{"<Space>", RuneEvent(' ', ModNone)},
		{"<lt>", RuneEvent('<', ModNone)},
		{"<bar>", RuneEvent('|', ModNone)},
		{"<F10>", SpecialEvent(CodeF10, ModNone)},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %#v, want %#v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseUppercaseMatchesTyped(t *testing.T) {
	// Typed uppercase runes arrive without a shift modifier, so both
	// spec spellings of an uppercase character must produce that same
	// event or the binding can never fire.
	spaced := MustParseSequence("g G")
	run := MustParseSequence("gG")
	if !spaced.Equals(run) {
		t.Fatalf("\"g G\" = %s, \"gG\" = %s", spaced, run)
	}
	if got := spaced.Events[1]; got != RuneEvent('G', ModNone) {
		t.Errorf("second event = %#v, want unmodified G", got)
	}
}

func TestParseErrors(t *testing.T) {
	for _, spec := range []string{"", "<>", "<Q-x>", "ab"} {
		if _, err := Parse(spec); err == nil {
			t.Errorf("Parse(%q) expected error", spec)
		}
	}
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		input   string
		wantLen int
		wantVim string
	}{
		{"gg", 2, "gg"},
		{"diw", 3, "diw"},
		{"g g", 2, "gg"},
		{"<C-s>x", 2, "<C-s>x"},
		{"C-x C-s", 2, "<C-x><C-s>"},
		{"", 0, ""},
	}

	for _, tt := range tests {
		seq, err := ParseSequence(tt.input)
		if err != nil {
			t.Errorf("ParseSequence(%q) error: %v", tt.input, err)
			continue
		}
		if seq.Len() != tt.wantLen {
			t.Errorf("ParseSequence(%q) len = %d, want %d", tt.input, seq.Len(), tt.wantLen)
		}
		if got := seq.VimString(); got != tt.wantVim {
			t.Errorf("ParseSequence(%q).VimString() = %q, want %q", tt.input, got, tt.wantVim)
		}
	}
}

func TestParseSequenceUnmatchedBracket(t *testing.T) {
	seq, err := ParseSequence("a<b")
	if err != nil {
		t.Fatalf("ParseSequence(\"a<b\") error: %v", err)
	}
	if seq.Len() != 3 {
		t.Errorf("len = %d, want 3", seq.Len())
	}
}

func TestSequencePrefix(t *testing.T) {
	full := MustParseSequence("abc")
	if !full.HasPrefix(MustParseSequence("ab")) {
		t.Error("\"ab\" should be a prefix of \"abc\"")
	}
	if full.HasPrefix(MustParseSequence("abd")) {
		t.Error("\"abd\" should not be a prefix of \"abc\"")
	}
	if !full.HasPrefix(NewSequence()) {
		t.Error("empty sequence is a prefix of everything")
	}
	if MustParseSequence("ab").HasPrefix(full) {
		t.Error("longer sequence cannot be a prefix of a shorter one")
	}
}

func TestSequenceClone(t *testing.T) {
	orig := MustParseSequence("ab")
	clone := orig.Clone()
	clone.Append(RuneEvent('c', ModNone))
	if orig.Len() != 2 {
		t.Error("mutating a clone must not affect the original")
	}
}

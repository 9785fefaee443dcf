package key

import (
	"strings"
	"unicode"
)

// Event is a single key press. Events are immutable values and compare
// with ==; two presses of the same key with the same modifiers are equal.
type Event struct {
	// Code identifies the key pressed.
	Code Code

	// Rune is the character payload for CodeRune events, 0 otherwise.
	Rune rune

	// Mods contains the held modifier keys.
	Mods Modifier
}

// RuneEvent builds an event for a character key.
func RuneEvent(r rune, mods Modifier) Event {
	return Event{Code: CodeRune, Rune: r, Mods: mods}
}

// SpecialEvent builds an event for a non-character key.
func SpecialEvent(c Code, mods Modifier) Event {
	return Event{Code: c, Mods: mods}
}

// IsRune reports whether the event carries a character payload.
func (e Event) IsRune() bool {
	return e.Code == CodeRune && e.Rune != 0
}

// IsPrintable reports whether the event is a printable character.
func (e Event) IsPrintable() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// IsModified reports whether a non-Shift modifier is held. Shift alone is
// part of the character itself for rune events.
func (e Event) IsModified() bool {
	if e.IsRune() {
		return e.Mods&(ModCtrl|ModAlt|ModMeta) != 0
	}
	return e.Mods != ModNone
}

// IsEscape reports whether the event is a bare Escape press.
func (e Event) IsEscape() bool {
	return e.Code == CodeEscape && e.Mods == ModNone
}

// IsEnter reports whether the event is a bare Enter press.
func (e Event) IsEnter() bool {
	return e.Code == CodeEnter && e.Mods == ModNone
}

// IsBackspace reports whether the event is a bare Backspace press.
func (e Event) IsBackspace() bool {
	return e.Code == CodeBackspace && e.Mods == ModNone
}

// String returns a canonical form: "a", "C-s", "Esc", "C-S-F5".
func (e Event) String() string {
	var parts []string

	if e.Mods.Has(ModCtrl) {
		parts = append(parts, "C")
	}
	if e.Mods.Has(ModAlt) {
		parts = append(parts, "A")
	}
	if e.Mods.Has(ModMeta) {
		parts = append(parts, "M")
	}
	// Shift is only shown for special keys; for runes it is the character.
	if e.Mods.Has(ModShift) && !e.IsRune() {
		parts = append(parts, "S")
	}

	switch {
	case e.Code == CodeRune && e.Rune == ' ':
		parts = append(parts, "Space")
	case e.Code == CodeRune:
		parts = append(parts, string(e.Rune))
	default:
		parts = append(parts, e.Code.String())
	}

	return strings.Join(parts, "-")
}

// VimString returns the Vim notation form: "a", "<C-s>", "<Esc>", "<CR>".
func (e Event) VimString() string {
	if e.IsRune() && !e.IsModified() {
		if e.Rune == ' ' {
			return "<Space>"
		}
		if e.Rune == '<' {
			return "<lt>"
		}
		return string(e.Rune)
	}

	var parts []string
	if e.Mods.Has(ModCtrl) {
		parts = append(parts, "C")
	}
	if e.Mods.Has(ModAlt) {
		parts = append(parts, "A")
	}
	if e.Mods.Has(ModMeta) {
		parts = append(parts, "D")
	}
	if e.Mods.Has(ModShift) && !e.IsRune() {
		parts = append(parts, "S")
	}

	switch {
	case e.Code == CodeRune && e.Rune == ' ':
		parts = append(parts, "Space")
	case e.Code == CodeRune:
		parts = append(parts, string(e.Rune))
	case e.Code == CodeEnter:
		parts = append(parts, "CR")
	default:
		parts = append(parts, e.Code.String())
	}

	return "<" + strings.Join(parts, "-") + ">"
}

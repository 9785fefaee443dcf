package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/veldin/keyweave/internal/input/key"
)

var specialKeys = map[tcell.Key]key.Code{
	tcell.KeyEscape:     key.CodeEscape,
	tcell.KeyEnter:      key.CodeEnter,
	tcell.KeyTab:        key.CodeTab,
	tcell.KeyBackspace:  key.CodeBackspace,
	tcell.KeyBackspace2: key.CodeBackspace,
	tcell.KeyDelete:     key.CodeDelete,
	tcell.KeyInsert:     key.CodeInsert,
	tcell.KeyHome:       key.CodeHome,
	tcell.KeyEnd:        key.CodeEnd,
	tcell.KeyPgUp:       key.CodePageUp,
	tcell.KeyPgDn:       key.CodePageDown,
	tcell.KeyUp:         key.CodeUp,
	tcell.KeyDown:       key.CodeDown,
	tcell.KeyLeft:       key.CodeLeft,
	tcell.KeyRight:      key.CodeRight,
	tcell.KeyF1:         key.CodeF1,
	tcell.KeyF2:         key.CodeF2,
	tcell.KeyF3:         key.CodeF3,
	tcell.KeyF4:         key.CodeF4,
	tcell.KeyF5:         key.CodeF5,
	tcell.KeyF6:         key.CodeF6,
	tcell.KeyF7:         key.CodeF7,
	tcell.KeyF8:         key.CodeF8,
	tcell.KeyF9:         key.CodeF9,
	tcell.KeyF10:        key.CodeF10,
	tcell.KeyF11:        key.CodeF11,
	tcell.KeyF12:        key.CodeF12,
}

// translateKey converts a tcell key event into the engine's form.
// Returns false for events the engine has no representation for.
func translateKey(ev *tcell.EventKey) (key.Event, bool) {
	mods := translateMods(ev.Modifiers())

	if code, ok := specialKeys[ev.Key()]; ok {
		return key.SpecialEvent(code, mods), true
	}

	if ev.Key() == tcell.KeyRune {
		// Shift is already folded into the rune's case; reporting it
		// again would stop tree lookups from matching.
		return key.RuneEvent(ev.Rune(), mods.Without(key.ModShift)), true
	}

	// tcell reports control chords as the C0 byte.
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		r := 'a' + rune(ev.Key()-tcell.KeyCtrlA)
		return key.RuneEvent(r, mods.With(key.ModCtrl)), true
	}

	switch ev.Key() {
	case tcell.KeyCtrlSpace:
		return key.RuneEvent(' ', mods.With(key.ModCtrl)), true
	case tcell.KeyCtrlBackslash:
		return key.RuneEvent('\\', mods.With(key.ModCtrl)), true
	case tcell.KeyCtrlRightSq:
		return key.RuneEvent(']', mods.With(key.ModCtrl)), true
	case tcell.KeyCtrlUnderscore:
		return key.RuneEvent('_', mods.With(key.ModCtrl)), true
	}

	return key.Event{}, false
}

func translateMods(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	if m&tcell.ModMeta != 0 {
		mods = mods.With(key.ModMeta)
	}
	return mods
}

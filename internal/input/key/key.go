package key

// Code identifies a keyboard key. Character keys use CodeRune with the
// character stored in Event.Rune.
type Code uint16

const (
	CodeNone Code = iota

	CodeEscape
	CodeEnter
	CodeTab
	CodeBackspace
	CodeDelete
	CodeInsert
	CodeHome
	CodeEnd
	CodePageUp
	CodePageDown

	CodeUp
	CodeDown
	CodeLeft
	CodeRight

	CodeF1
	CodeF2
	CodeF3
	CodeF4
	CodeF5
	CodeF6
	CodeF7
	CodeF8
	CodeF9
	CodeF10
	CodeF11
	CodeF12

	// CodeRune marks a character key; the rune lives on the event.
	CodeRune
)

var codeNames = map[Code]string{
	CodeNone:      "None",
	CodeEscape:    "Esc",
	CodeEnter:     "Enter",
	CodeTab:       "Tab",
	CodeBackspace: "BS",
	CodeDelete:    "Del",
	CodeInsert:    "Ins",
	CodeHome:      "Home",
	CodeEnd:       "End",
	CodePageUp:    "PageUp",
	CodePageDown:  "PageDown",
	CodeUp:        "Up",
	CodeDown:      "Down",
	CodeLeft:      "Left",
	CodeRight:     "Right",
	CodeF1:        "F1",
	CodeF2:        "F2",
	CodeF3:        "F3",
	CodeF4:        "F4",
	CodeF5:        "F5",
	CodeF6:        "F6",
	CodeF7:        "F7",
	CodeF8:        "F8",
	CodeF9:        "F9",
	CodeF10:       "F10",
	CodeF11:       "F11",
	CodeF12:       "F12",
	CodeRune:      "Rune",
}

// nameCodes resolves lowercase key names, including the Vim aliases.
var nameCodes = map[string]Code{
	"esc":      CodeEscape,
	"escape":   CodeEscape,
	"cr":       CodeEnter,
	"return":   CodeEnter,
	"enter":    CodeEnter,
	"tab":      CodeTab,
	"bs":       CodeBackspace,
	"backspace": CodeBackspace,
	"del":      CodeDelete,
	"delete":   CodeDelete,
	"ins":      CodeInsert,
	"insert":   CodeInsert,
	"home":     CodeHome,
	"end":      CodeEnd,
	"pageup":   CodePageUp,
	"pgup":     CodePageUp,
	"pagedown": CodePageDown,
	"pgdn":     CodePageDown,
	"up":       CodeUp,
	"down":     CodeDown,
	"left":     CodeLeft,
	"right":    CodeRight,
	"f1":       CodeF1,
	"f2":       CodeF2,
	"f3":       CodeF3,
	"f4":       CodeF4,
	"f5":       CodeF5,
	"f6":       CodeF6,
	"f7":       CodeF7,
	"f8":       CodeF8,
	"f9":       CodeF9,
	"f10":      CodeF10,
	"f11":      CodeF11,
	"f12":      CodeF12,
}

// String returns the canonical name for the code.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "Unknown"
}

// IsSpecial reports whether the code is a non-character key.
func (c Code) IsSpecial() bool {
	return c != CodeNone && c != CodeRune
}

// CodeFromName resolves a lowercase key name to a code.
// Returns CodeNone for unknown names.
func CodeFromName(name string) Code {
	return nameCodes[name]
}

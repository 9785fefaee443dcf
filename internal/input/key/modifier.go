package key

import "strings"

// Modifier is a bit set of held modifier keys.
type Modifier uint8

const (
	ModNone Modifier = 0

	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether m contains mod.
func (m Modifier) Has(mod Modifier) bool { return m&mod != 0 }

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier { return m | mod }

// Without returns m with mod removed.
func (m Modifier) Without(mod Modifier) Modifier { return m &^ mod }

// String returns a compact form like "C-A".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "C")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "A")
	}
	if m.Has(ModShift) {
		parts = append(parts, "S")
	}
	if m.Has(ModMeta) {
		parts = append(parts, "M")
	}
	return strings.Join(parts, "-")
}

// modifierNames resolves spec-string modifier tokens.
var modifierNames = map[string]Modifier{
	"c":       ModCtrl,
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"a":       ModAlt,
	"alt":     ModAlt,
	"opt":     ModAlt,
	"option":  ModAlt,
	"s":       ModShift,
	"shift":   ModShift,
	"m":       ModMeta,
	"d":       ModMeta, // Vim's Command notation
	"meta":    ModMeta,
	"cmd":     ModMeta,
}

// ModifierFromName resolves a lowercase modifier name.
// Returns ModNone for unknown names.
func ModifierFromName(name string) Modifier {
	return modifierNames[name]
}

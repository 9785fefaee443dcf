package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Spec parsing errors.
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse converts a single key specification into an event.
//
// Accepted forms:
//   - a bare character: "a", "A", "@"
//   - a key name: "Enter", "Esc", "Space"
//   - Vim notation: "<C-s>", "<A-F4>", "<CR>", "<lt>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") && len(spec) > 2 {
		return parseBracketed(spec[1 : len(spec)-1])
	}

	// Case carries the shift information for characters: "G" must
	// produce the same event as a typed G, which arrives unmodified.
	if r, size := utf8.DecodeRuneInString(spec); size == len(spec) {
		return RuneEvent(r, ModNone), nil
	}

	if c := CodeFromName(strings.ToLower(spec)); c != CodeNone {
		return SpecialEvent(c, ModNone), nil
	}

	return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}

// parseBracketed parses the inside of a <...> group: "C-s", "CR", "S-Tab".
func parseBracketed(inner string) (Event, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Event{}, ErrInvalidSpec
	}

	parts := strings.Split(inner, "-")
	keyPart := parts[len(parts)-1]
	if keyPart == "" && len(parts) >= 2 {
		// Trailing hyphen means the key itself is '-', e.g. <C-->.
		keyPart = "-"
		parts = parts[:len(parts)-1]
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(strings.ToLower(strings.TrimSpace(p)))
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	return parseNamed(keyPart, mods)
}

// parseNamed resolves the key part of a bracketed spec.
func parseNamed(keyPart string, mods Modifier) (Event, error) {
	keyPart = strings.TrimSpace(keyPart)
	if keyPart == "" {
		return Event{}, ErrInvalidSpec
	}

	switch strings.ToLower(keyPart) {
	case "space":
		return RuneEvent(' ', mods), nil
	case "lt":
		return RuneEvent('<', mods), nil
	case "gt":
		return RuneEvent('>', mods), nil
	case "bar":
		return RuneEvent('|', mods), nil
	case "bslash":
		return RuneEvent('\\', mods), nil
	}

	if c := CodeFromName(strings.ToLower(keyPart)); c != CodeNone {
		return SpecialEvent(c, mods), nil
	}

	if r, size := utf8.DecodeRuneInString(keyPart); size == len(keyPart) {
		// Ctrl chords are case-insensitive: <C-S> is <C-s>.
		if mods.Has(ModCtrl) {
			r = unicode.ToLower(r)
		}
		return RuneEvent(r, mods), nil
	}

	return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, keyPart)
}

// ParseSequence converts a sequence specification into events.
//
// Accepted forms:
//   - space-separated specs: "g g", "C-x C-s"
//   - run-together Vim notation: "gg", "diw", "<C-s>x"
func ParseSequence(s string) (*Sequence, error) {
	s = strings.TrimSpace(s)
	seq := NewSequence()
	if s == "" {
		return seq, nil
	}

	if strings.Contains(s, " ") {
		for _, part := range strings.Fields(s) {
			event, err := Parse(part)
			if err != nil {
				return nil, err
			}
			seq.Append(event)
		}
		return seq, nil
	}

	for i := 0; i < len(s); {
		if s[i] == '<' {
			end := strings.IndexByte(s[i:], '>')
			if end > 0 {
				event, err := Parse(s[i : i+end+1])
				if err != nil {
					return nil, err
				}
				seq.Append(event)
				i += end + 1
				continue
			}
			// Unmatched bracket: a literal '<'.
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		seq.Append(RuneEvent(r, ModNone))
		i += size
	}

	return seq, nil
}

// MustParseSequence parses a known-valid sequence and panics on error.
// Intended for static binding tables.
func MustParseSequence(s string) *Sequence {
	seq, err := ParseSequence(s)
	if err != nil {
		panic("invalid key sequence " + s + ": " + err.Error())
	}
	return seq
}

package register

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/veldin/keyweave/internal/input/key"
)

// Store errors.
var (
	ErrInvalidName = errors.New("invalid register name")
	ErrReadOnly    = errors.New("register is read-only")
)

// Wise describes the orientation of register content.
type Wise uint8

const (
	CharWise Wise = iota
	LineWise
	BlockWise
)

func (w Wise) String() string {
	switch w {
	case CharWise:
		return "charwise"
	case LineWise:
		return "linewise"
	case BlockWise:
		return "blockwise"
	default:
		return fmt.Sprintf("wise(%d)", uint8(w))
	}
}

// Kind categorizes registers by their behavior.
type Kind uint8

const (
	// KindNamed is a named register (a-z, with A-Z appending).
	KindNamed Kind = iota

	// KindNumbered is part of the rotating delete history (1-9).
	KindNumbered

	// KindUnnamed is the default register (").
	KindUnnamed

	// KindLastYank is the yank register (0).
	KindLastYank

	// KindSmallDelete is the small delete register (-).
	KindSmallDelete

	// KindBlackHole is the discard register (_).
	KindBlackHole

	// KindLastInserted is the last inserted text register (.).
	KindLastInserted

	// KindSurfaceName is the current surface name register (%).
	KindSurfaceName

	// KindLastCommand is the last ex command register (:).
	KindLastCommand

	// KindClipboard is the system clipboard register (+).
	KindClipboard

	// KindSelection is the primary selection register (*).
	KindSelection
)

// Register is one storage slot. Text holds yanked or deleted content;
// Keys holds a recorded macro when the register was filled by the
// recorder.
type Register struct {
	Name     rune
	Kind     Kind
	Text     string
	Wise     Wise
	Keys     []key.Event
	ReadOnly bool
}

// ClipboardProvider abstracts system clipboard access for the + and *
// registers.
type ClipboardProvider interface {
	Get() (string, error)
	Set(content string) error
}

// Store manages the full register file: the unnamed register, named
// registers a-z, the numbered delete history, and the specials.
type Store struct {
	mu        sync.RWMutex
	registers map[rune]*Register

	// numbered is the delete history 1-9, rotating on each big delete.
	numbered [9]*Register

	clipboard ClipboardProvider
}

// NewStore creates a register store with every register initialized.
func NewStore() *Store {
	s := &Store{registers: make(map[rune]*Register)}

	s.registers['"'] = &Register{Name: '"', Kind: KindUnnamed}
	for r := 'a'; r <= 'z'; r++ {
		s.registers[r] = &Register{Name: r, Kind: KindNamed}
	}
	s.registers['0'] = &Register{Name: '0', Kind: KindLastYank}
	for i := 1; i <= 9; i++ {
		r := rune('0' + i)
		s.registers[r] = &Register{Name: r, Kind: KindNumbered}
		s.numbered[i-1] = s.registers[r]
	}
	s.registers['-'] = &Register{Name: '-', Kind: KindSmallDelete}
	s.registers['_'] = &Register{Name: '_', Kind: KindBlackHole}
	s.registers['.'] = &Register{Name: '.', Kind: KindLastInserted, ReadOnly: true}
	s.registers['%'] = &Register{Name: '%', Kind: KindSurfaceName, ReadOnly: true}
	s.registers[':'] = &Register{Name: ':', Kind: KindLastCommand, ReadOnly: true}
	s.registers['+'] = &Register{Name: '+', Kind: KindClipboard}
	s.registers['*'] = &Register{Name: '*', Kind: KindSelection}

	return s
}

// SetClipboard installs a system clipboard provider.
func (s *Store) SetClipboard(cp ClipboardProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clipboard = cp
}

// IsValid reports whether name designates a register.
func IsValid(name rune) bool {
	switch {
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z':
		return true
	case name >= '0' && name <= '9':
		return true
	case name == '"', name == '-', name == '_', name == '.':
		return true
	case name == '%', name == ':', name == '+', name == '*':
		return true
	default:
		return false
	}
}

// KindOf returns the behavior class for a register name.
func KindOf(name rune) Kind {
	switch {
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z':
		return KindNamed
	case name == '0':
		return KindLastYank
	case name >= '1' && name <= '9':
		return KindNumbered
	case name == '-':
		return KindSmallDelete
	case name == '_':
		return KindBlackHole
	case name == '.':
		return KindLastInserted
	case name == '%':
		return KindSurfaceName
	case name == ':':
		return KindLastCommand
	case name == '+':
		return KindClipboard
	case name == '*':
		return KindSelection
	default:
		return KindUnnamed
	}
}

// Get returns the text content and orientation of a register.
func (s *Store) Get(name rune) (string, Wise, error) {
	if !IsValid(name) {
		return "", CharWise, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if unicode.IsUpper(name) {
		name = unicode.ToLower(name)
	}

	// Clipboard registers read through the provider, outside the lock.
	if name == '+' || name == '*' {
		s.mu.RLock()
		cp := s.clipboard
		s.mu.RUnlock()
		if cp != nil {
			text, err := cp.Get()
			if err != nil {
				return "", CharWise, err
			}
			return text, CharWise, nil
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	reg := s.registers[name]
	return reg.Text, reg.Wise, nil
}

// Set stores text in a register. Uppercase names append to the
// lowercase register; the black hole register discards silently.
func (s *Store) Set(name rune, text string, wise Wise) error {
	if !IsValid(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if name == '_' {
		return nil
	}

	if name == '+' || name == '*' {
		s.mu.RLock()
		cp := s.clipboard
		s.mu.RUnlock()
		if cp != nil {
			return cp.Set(text)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	appendMode := false
	if unicode.IsUpper(name) {
		name = unicode.ToLower(name)
		appendMode = true
	}

	reg := s.registers[name]
	if reg.ReadOnly {
		return fmt.Errorf("%w: %q", ErrReadOnly, name)
	}

	if appendMode {
		if reg.Wise == LineWise && !strings.HasSuffix(reg.Text, "\n") {
			reg.Text += "\n"
		}
		reg.Text += text
	} else {
		reg.Text = text
		reg.Wise = wise
	}
	reg.Keys = nil
	return nil
}

// SetYank records a yank: register 0 and the unnamed register.
func (s *Store) SetYank(text string, wise Wise) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assign('0', text, wise)
	s.assign('"', text, wise)
}

// SetDelete records a delete. Small deletes (less than one line) go to
// the - register; larger ones rotate the 1-9 history. Both update the
// unnamed register.
func (s *Store) SetDelete(text string, wise Wise, small bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if small {
		s.assign('-', text, wise)
		s.assign('"', text, wise)
		return
	}

	for i := 8; i > 0; i-- {
		s.numbered[i].Text = s.numbered[i-1].Text
		s.numbered[i].Wise = s.numbered[i-1].Wise
	}
	s.numbered[0].Text = text
	s.numbered[0].Wise = wise

	s.assign('"', text, wise)
}

// SetMacro stores a recorded key list. Only named registers can hold
// macros; uppercase names append to an existing recording.
func (s *Store) SetMacro(name rune, keys []key.Event) error {
	if !unicode.IsLetter(name) || name > unicode.MaxASCII {
		return fmt.Errorf("%w: macro register %q", ErrInvalidName, name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	appendMode := unicode.IsUpper(name)
	if appendMode {
		name = unicode.ToLower(name)
	}

	reg := s.registers[name]
	if appendMode {
		reg.Keys = append(reg.Keys, keys...)
	} else {
		reg.Keys = append([]key.Event(nil), keys...)
	}
	seq := &key.Sequence{Events: reg.Keys}
	reg.Text = seq.VimString()
	reg.Wise = CharWise
	return nil
}

// Macro returns the recorded key list in a register, or nil.
func (s *Store) Macro(name rune) []key.Event {
	if unicode.IsUpper(name) {
		name = unicode.ToLower(name)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	reg, ok := s.registers[name]
	if !ok || len(reg.Keys) == 0 {
		return nil
	}
	out := make([]key.Event, len(reg.Keys))
	copy(out, reg.Keys)
	return out
}

// SetLastInserted updates the read-only . register.
func (s *Store) SetLastInserted(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registers['.'].Text = text
	s.registers['.'].Wise = CharWise
}

// SetSurfaceName updates the read-only % register.
func (s *Store) SetSurfaceName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registers['%'].Text = name
}

// SetLastCommand updates the read-only : register.
func (s *Store) SetLastCommand(cmd string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registers[':'].Text = cmd
}

// assign writes a register bypassing read-only checks. Caller holds mu.
func (s *Store) assign(name rune, text string, wise Wise) {
	reg := s.registers[name]
	reg.Text = text
	reg.Wise = wise
	reg.Keys = nil
}

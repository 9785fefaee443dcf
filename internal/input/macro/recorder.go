package macro

import (
	"errors"
	"fmt"
	"sync"
	"unicode"

	"github.com/veldin/keyweave/internal/input/key"
	"github.com/veldin/keyweave/internal/register"
)

// Recorder errors.
var (
	ErrInvalidRegister  = errors.New("invalid macro register")
	ErrAlreadyRecording = errors.New("already recording")
	ErrNotRecording     = errors.New("not recording")
	ErrEmptyRegister    = errors.New("macro register is empty")
	ErrNothingPlayed    = errors.New("no macro played yet")
)

// Recorder captures key events into a register and resolves playback
// requests. Recorded macros live in the register file, so "qa ... q"
// and the register view see the same content.
type Recorder struct {
	mu         sync.Mutex
	store      *register.Store
	recording  bool
	target     rune
	appendMode bool
	events     []key.Event
	lastPlayed rune
}

// NewRecorder creates a recorder backed by the given register store.
func NewRecorder(store *register.Store) *Recorder {
	return &Recorder{store: store}
}

// validTarget reports whether r can be recorded into: a-z records,
// A-Z appends to the lowercase register.
func validTarget(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Start begins recording into the named register. An uppercase name
// appends to the existing recording.
func (r *Recorder) Start(target rune) error {
	if !validTarget(target) {
		return fmt.Errorf("%w: %q", ErrInvalidRegister, target)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recording {
		return fmt.Errorf("%w: register %q", ErrAlreadyRecording, r.target)
	}
	r.recording = true
	r.target = target
	r.appendMode = unicode.IsUpper(target)
	r.events = nil
	return nil
}

// Stop ends the recording and saves it to the register file. An empty
// recording still clears the register, matching how "qaq" empties
// register a; in append mode it leaves the register alone.
func (r *Recorder) Stop() (rune, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return 0, ErrNotRecording
	}
	r.recording = false
	target := r.target
	events := r.events
	r.events = nil

	if r.appendMode && len(events) == 0 {
		return target, nil
	}
	if err := r.store.SetMacro(target, events); err != nil {
		return target, err
	}
	return target, nil
}

// Abort ends the recording without saving, as when the interpreter
// resets on an interrupt.
func (r *Recorder) Abort() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recording = false
	r.events = nil
}

// Record appends one event to the recording in progress. It is a no-op
// when not recording.
func (r *Recorder) Record(ev key.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		r.events = append(r.events, ev)
	}
}

// IsRecording reports whether a recording is in progress.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Target returns the register being recorded to, or 0 when idle.
func (r *Recorder) Target() rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return 0
	}
	return r.target
}

// Pending returns the number of events recorded so far.
func (r *Recorder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Playback resolves the key list to replay for "@x". The name '@'
// repeats the previously played register. On success the register is
// remembered for the next "@@".
func (r *Recorder) Playback(name rune) ([]key.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == '@' {
		if r.lastPlayed == 0 {
			return nil, ErrNothingPlayed
		}
		name = r.lastPlayed
	}
	if !validTarget(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRegister, name)
	}

	keys := r.store.Macro(name)
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyRegister, name)
	}
	r.lastPlayed = unicode.ToLower(name)
	return keys, nil
}

// LastPlayed returns the register last resolved by Playback, or 0.
func (r *Recorder) LastPlayed() rune {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastPlayed
}

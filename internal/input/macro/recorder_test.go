package macro

import (
	"errors"
	"testing"

	"github.com/veldin/keyweave/internal/input/key"
	"github.com/veldin/keyweave/internal/register"
)

func recordKeys(t *testing.T, r *Recorder, target rune, spec string) {
	t.Helper()
	if err := r.Start(target); err != nil {
		t.Fatalf("Start(%q): %v", target, err)
	}
	for _, ev := range key.MustParseSequence(spec).Events {
		r.Record(ev)
	}
	if _, err := r.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}

func TestRecordAndPlayback(t *testing.T) {
	store := register.NewStore()
	r := NewRecorder(store)

	recordKeys(t, r, 'a', "dw")

	keys, err := r.Playback('a')
	if err != nil {
		t.Fatalf("Playback(a): %v", err)
	}
	if got := (&key.Sequence{Events: keys}).VimString(); got != "dw" {
		t.Fatalf("playback keys = %q, want dw", got)
	}
	if r.LastPlayed() != 'a' {
		t.Fatalf("LastPlayed = %q, want a", r.LastPlayed())
	}
}

func TestPlaybackAtAtRepeatsLast(t *testing.T) {
	store := register.NewStore()
	r := NewRecorder(store)

	if _, err := r.Playback('@'); !errors.Is(err, ErrNothingPlayed) {
		t.Fatalf("Playback(@) before any play: err = %v, want ErrNothingPlayed", err)
	}

	recordKeys(t, r, 'b', "x")
	if _, err := r.Playback('b'); err != nil {
		t.Fatal(err)
	}
	keys, err := r.Playback('@')
	if err != nil {
		t.Fatalf("Playback(@): %v", err)
	}
	if len(keys) != 1 {
		t.Fatalf("replayed %d keys, want 1", len(keys))
	}
}

func TestRecordingState(t *testing.T) {
	store := register.NewStore()
	r := NewRecorder(store)

	if r.IsRecording() || r.Target() != 0 {
		t.Fatal("recorder not idle at start")
	}
	if err := r.Start('a'); err != nil {
		t.Fatal(err)
	}
	if !r.IsRecording() || r.Target() != 'a' {
		t.Fatal("recorder did not enter recording state")
	}
	if err := r.Start('b'); !errors.Is(err, ErrAlreadyRecording) {
		t.Fatalf("nested Start err = %v, want ErrAlreadyRecording", err)
	}
	r.Record(key.RuneEvent('x', key.ModNone))
	if r.Pending() != 1 {
		t.Fatalf("Pending = %d, want 1", r.Pending())
	}
	target, err := r.Stop()
	if err != nil || target != 'a' {
		t.Fatalf("Stop = %q, %v", target, err)
	}
	if _, err := r.Stop(); !errors.Is(err, ErrNotRecording) {
		t.Fatalf("double Stop err = %v, want ErrNotRecording", err)
	}
}

func TestInvalidTargets(t *testing.T) {
	store := register.NewStore()
	r := NewRecorder(store)

	if err := r.Start('1'); !errors.Is(err, ErrInvalidRegister) {
		t.Fatalf("Start(1) err = %v, want ErrInvalidRegister", err)
	}
	if _, err := r.Playback('%'); !errors.Is(err, ErrInvalidRegister) {
		t.Fatalf("Playback(%%) err = %v, want ErrInvalidRegister", err)
	}
	if _, err := r.Playback('c'); !errors.Is(err, ErrEmptyRegister) {
		t.Fatalf("Playback(empty) err = %v, want ErrEmptyRegister", err)
	}
}

func TestEmptyRecordingClearsRegister(t *testing.T) {
	store := register.NewStore()
	r := NewRecorder(store)

	recordKeys(t, r, 'a', "x")
	recordKeys(t, r, 'a', "")

	if _, err := r.Playback('a'); !errors.Is(err, ErrEmptyRegister) {
		t.Fatalf("Playback after qaq: err = %v, want ErrEmptyRegister", err)
	}
}

func TestUppercaseAppend(t *testing.T) {
	store := register.NewStore()
	r := NewRecorder(store)

	recordKeys(t, r, 'a', "dw")
	recordKeys(t, r, 'A', "x")

	keys, err := r.Playback('a')
	if err != nil {
		t.Fatal(err)
	}
	if got := (&key.Sequence{Events: keys}).VimString(); got != "dwx" {
		t.Fatalf("appended macro = %q, want dwx", got)
	}
}

func TestAbortDiscards(t *testing.T) {
	store := register.NewStore()
	r := NewRecorder(store)

	recordKeys(t, r, 'a', "dd")
	if err := r.Start('a'); err != nil {
		t.Fatal(err)
	}
	r.Record(key.RuneEvent('x', key.ModNone))
	r.Abort()
	if r.IsRecording() {
		t.Fatal("recorder still recording after Abort")
	}

	// The earlier recording survives.
	keys, err := r.Playback('a')
	if err != nil {
		t.Fatal(err)
	}
	if got := (&key.Sequence{Events: keys}).VimString(); got != "dd" {
		t.Fatalf("register = %q, want dd", got)
	}
}

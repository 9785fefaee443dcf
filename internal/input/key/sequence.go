package key

import "strings"

// Sequence is an ordered run of key events, e.g. the "g g" of a two-key
// command or the left side of a user mapping.
type Sequence struct {
	Events []Event
}

// NewSequence returns an empty sequence.
func NewSequence() *Sequence {
	return &Sequence{Events: make([]Event, 0, 4)}
}

// SequenceOf builds a sequence from events.
func SequenceOf(events ...Event) *Sequence {
	return &Sequence{Events: events}
}

// Len returns the number of events.
func (s *Sequence) Len() int { return len(s.Events) }

// IsEmpty reports whether the sequence has no events.
func (s *Sequence) IsEmpty() bool { return len(s.Events) == 0 }

// Append adds an event to the end.
func (s *Sequence) Append(e Event) { s.Events = append(s.Events, e) }

// Clear drops all events, keeping capacity.
func (s *Sequence) Clear() { s.Events = s.Events[:0] }

// Last returns the final event and true, or a zero event and false.
func (s *Sequence) Last() (Event, bool) {
	if len(s.Events) == 0 {
		return Event{}, false
	}
	return s.Events[len(s.Events)-1], true
}

// Equals reports whether two sequences hold the same events.
func (s *Sequence) Equals(other *Sequence) bool {
	if s == nil || other == nil {
		return s == other
	}
	if len(s.Events) != len(other.Events) {
		return false
	}
	for i, e := range s.Events {
		if e != other.Events[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether s begins with prefix.
func (s *Sequence) HasPrefix(prefix *Sequence) bool {
	if prefix == nil || prefix.IsEmpty() {
		return true
	}
	if len(prefix.Events) > len(s.Events) {
		return false
	}
	for i, e := range prefix.Events {
		if e != s.Events[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s *Sequence) Clone() *Sequence {
	if s == nil {
		return nil
	}
	events := make([]Event, len(s.Events))
	copy(events, s.Events)
	return &Sequence{Events: events}
}

// String returns the events space-separated in canonical form: "g g", "C-s".
func (s *Sequence) String() string {
	parts := make([]string, len(s.Events))
	for i, e := range s.Events {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

// VimString returns the events run together in Vim notation: "gg", "<C-s>x".
func (s *Sequence) VimString() string {
	var sb strings.Builder
	for _, e := range s.Events {
		sb.WriteString(e.VimString())
	}
	return sb.String()
}

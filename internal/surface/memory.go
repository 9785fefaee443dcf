package surface

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Memory surface errors.
var (
	ErrNotWritable = errors.New("surface is not writable")
	ErrOutOfRange  = errors.New("position out of range")
)

// Memory is an in-memory Surface holding lines of text. It backs the
// demo binary and the test suites.
type Memory struct {
	mu       sync.RWMutex
	name     string
	lines    []string
	cursor   Position
	writable bool
}

// NewMemory creates a writable surface with the given content. Empty
// content yields a single empty line.
func NewMemory(name, content string) *Memory {
	lines := strings.Split(content, "\n")
	return &Memory{name: name, lines: lines, writable: true}
}

// SetWritable toggles whether mutating operations are allowed.
func (m *Memory) SetWritable(w bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writable = w
}

// Name implements Surface.
func (m *Memory) Name() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.name
}

// Writable implements Surface.
func (m *Memory) Writable() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writable
}

// LineCount implements Surface.
func (m *Memory) LineCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.lines)
}

// Line implements Surface.
func (m *Memory) Line(i int) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i < 0 || i >= len(m.lines) {
		return "", fmt.Errorf("%w: line %d of %d", ErrOutOfRange, i, len(m.lines))
	}
	return m.lines[i], nil
}

// Text returns the whole content joined with newlines.
func (m *Memory) Text() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return strings.Join(m.lines, "\n")
}

// Cursor implements Surface.
func (m *Memory) Cursor() Position {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cursor
}

// SetCursor implements Surface, clamping to the content.
func (m *Memory) SetCursor(p Position) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cursor = m.clamp(p)
}

// Insert implements Surface.
func (m *Memory) Insert(p Position, text string) (Position, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insertLocked(p, text)
}

// insertLocked places text at p. Caller holds mu.
func (m *Memory) insertLocked(p Position, text string) (Position, error) {
	if !m.writable {
		return p, ErrNotWritable
	}
	p = m.clamp(p)

	line := []rune(m.lines[p.Line])
	head := string(line[:p.Col])
	tail := string(line[p.Col:])

	segments := strings.Split(text, "\n")
	segments[0] = head + segments[0]
	end := Position{
		Line: p.Line + len(segments) - 1,
		Col:  len([]rune(segments[len(segments)-1])),
	}
	segments[len(segments)-1] += tail

	replaced := make([]string, 0, len(m.lines)+len(segments)-1)
	replaced = append(replaced, m.lines[:p.Line]...)
	replaced = append(replaced, segments...)
	replaced = append(replaced, m.lines[p.Line+1:]...)
	m.lines = replaced
	return end, nil
}

// Delete implements Surface.
func (m *Memory) Delete(r Range) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteLocked(r)
}

// Replace implements Surface.
func (m *Memory) Replace(r Range, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed, err := m.deleteLocked(r)
	if err != nil {
		return "", err
	}
	if _, err := m.insertLocked(r.Normalize().Start, text); err != nil {
		return removed, err
	}
	return removed, nil
}

// deleteLocked removes r. Caller holds mu.
func (m *Memory) deleteLocked(r Range) (string, error) {
	if !m.writable {
		return "", ErrNotWritable
	}
	r = r.Normalize()
	r.Start = m.clamp(r.Start)
	r.End = m.clamp(r.End)
	if r.IsEmpty() {
		return "", nil
	}

	startLine := []rune(m.lines[r.Start.Line])
	endLine := []rune(m.lines[r.End.Line])
	head := string(startLine[:r.Start.Col])
	tail := string(endLine[r.End.Col:])

	var removed strings.Builder
	if r.Start.Line == r.End.Line {
		removed.WriteString(string(startLine[r.Start.Col:r.End.Col]))
	} else {
		removed.WriteString(string(startLine[r.Start.Col:]))
		for i := r.Start.Line + 1; i < r.End.Line; i++ {
			removed.WriteString("\n")
			removed.WriteString(m.lines[i])
		}
		removed.WriteString("\n")
		removed.WriteString(string(endLine[:r.End.Col]))
	}

	replaced := make([]string, 0, len(m.lines))
	replaced = append(replaced, m.lines[:r.Start.Line]...)
	replaced = append(replaced, head+tail)
	replaced = append(replaced, m.lines[r.End.Line+1:]...)
	m.lines = replaced
	m.cursor = m.clamp(m.cursor)
	return removed.String(), nil
}

// clamp bounds p to addressable positions. Caller holds mu.
func (m *Memory) clamp(p Position) Position {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(m.lines) {
		p.Line = len(m.lines) - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if n := len([]rune(m.lines[p.Line])); p.Col > n {
		p.Col = n
	}
	return p
}

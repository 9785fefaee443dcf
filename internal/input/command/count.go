package command

import "math"

// CountState accumulates a numeric count digit by digit.
type CountState struct {
	// Value is the accumulated count.
	Value int

	// Active reports whether any digit has been accepted.
	Active bool
}

// Reset clears the count.
func (c *CountState) Reset() {
	c.Value = 0
	c.Active = false
}

// PushDigit adds an ASCII digit to the count. A leading '0' is rejected:
// it is a command key, not a count start. Returns whether the digit was
// accepted.
func (c *CountState) PushDigit(r rune) bool {
	if r < '0' || r > '9' {
		return false
	}
	digit := int(r - '0')
	if !c.Active && digit == 0 {
		return false
	}
	c.Active = true
	if c.Value > (math.MaxInt-digit)/10 {
		c.Value = math.MaxInt / 10
		return true
	}
	c.Value = c.Value*10 + digit
	return true
}

// PopDigit removes the most recently added digit. Returns whether a digit
// was removed; the count deactivates when its last digit is removed.
func (c *CountState) PopDigit() bool {
	if !c.Active {
		return false
	}
	c.Value /= 10
	if c.Value == 0 {
		c.Active = false
	}
	return true
}

// Get returns the effective count: 1 when none was typed.
func (c *CountState) Get() int {
	if c.Value <= 0 {
		return 1
	}
	return c.Value
}

// IsCountStart reports whether r can begin a count ('0' cannot).
func IsCountStart(r rune) bool { return r >= '1' && r <= '9' }

// IsDigit reports whether r can continue a count.
func IsDigit(r rune) bool { return r >= '0' && r <= '9' }

// CombineCounts multiplies two counts with overflow protection, treating
// absent (non-positive) counts as 1. "2d3w" deletes 6 words.
func CombineCounts(a, b int) int {
	if a <= 0 {
		a = 1
	}
	if b <= 0 {
		b = 1
	}
	if a > math.MaxInt/b {
		return math.MaxInt / 10
	}
	return a * b
}

// Package digraph implements the digraph and literal-code input
// sub-machine.
//
// A Machine is armed with BeginDigraph (two table characters produce one
// rune, e.g. "e'" → é) or BeginLiteral (a decimal, hex, or octal character
// code; the radix and digit limit are chosen by the first key: plain
// digits for decimal, x/X for two hex digits, u for four, U for eight,
// o/O for three octal). Keys are fed one at a time and each returns a
// verdict: consumed, completed, rejected, or not handled at all.
package digraph

// Package macro implements macro recording and playback resolution.
// The recorder captures key events between "q{register}" and "q",
// stores them in the register file, and resolves "@{register}" and
// "@@" into key lists for the interpreter to replay.
package macro

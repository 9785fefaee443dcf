// Package register implements the register file: the unnamed register,
// named registers with uppercase append, the rotating numbered delete
// history, the small delete register, read-only specials, and macro
// key-list storage for the recorder.
package register

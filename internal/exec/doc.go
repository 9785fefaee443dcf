// Package exec is the execution collaborator of the key interpreter: it
// resolves a fully built command to a registered action handler and runs
// it against the editing surface inside a serialized, uuid-tagged
// transaction. The interpreter decides WHAT runs; this package decides
// HOW each named action manipulates the surface and the registers.
package exec

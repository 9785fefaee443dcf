// Package mapping implements user key remapping: a per-mode prefix
// trie of mappings and a resolver that buffers ambiguous prefixes,
// applies longest-match within the timeout window, and bounds nested
// expansion depth.
package mapping

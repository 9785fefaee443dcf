// Package config loads the keyweave.toml settings file and user remap
// files, and can watch the remap file for live reload. Settings map
// onto the interpreter options; remap files fill the mapping table
// consulted before the built-in command trees.
package config

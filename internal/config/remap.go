package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/veldin/keyweave/internal/input/key"
	"github.com/veldin/keyweave/internal/input/mapping"
	"github.com/veldin/keyweave/internal/input/mode"
)

// ErrBadRemap marks a remap entry that cannot be installed.
var ErrBadRemap = errors.New("bad remap")

// remapEntry is one mapping in a remap file. Both key specs use the
// angle-bracket notation, e.g. "Q", "gx", "<C-s>", "<Esc>".
type remapEntry struct {
	From      string `yaml:"from" toml:"from"`
	To        string `yaml:"to" toml:"to"`
	Recursive bool   `yaml:"recursive" toml:"recursive"`
}

// remapFile maps a mode section name to its entries.
type remapFile map[string][]remapEntry

var remapModes = map[string]mode.Kind{
	"normal":   mode.Normal,
	"insert":   mode.Insert,
	"visual":   mode.Visual,
	"operator": mode.OperatorPending,
}

// LoadRemaps parses a remap file into mappings. The format follows the
// extension: .yaml/.yml or .toml.
func LoadRemaps(path string) ([]mapping.Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read remaps: %w", err)
	}

	var file remapFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	case ".toml":
		err = toml.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("%w: unsupported remap format %q", ErrBadRemap, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return parseRemaps(file)
}

func parseRemaps(file remapFile) ([]mapping.Mapping, error) {
	var out []mapping.Mapping
	for section, entries := range file {
		kind, ok := remapModes[section]
		if !ok {
			return nil, fmt.Errorf("%w: unknown mode section %q", ErrBadRemap, section)
		}
		for _, e := range entries {
			lhs, err := key.ParseSequence(e.From)
			if err != nil {
				return nil, fmt.Errorf("%w: %s remap %q: %v", ErrBadRemap, section, e.From, err)
			}
			rhs, err := key.ParseSequence(e.To)
			if err != nil {
				return nil, fmt.Errorf("%w: %s remap %q -> %q: %v", ErrBadRemap, section, e.From, e.To, err)
			}
			out = append(out, mapping.Mapping{
				Mode:      kind,
				LHS:       lhs,
				RHS:       rhs,
				Recursive: e.Recursive,
			})
		}
	}
	return out, nil
}

// ApplyRemaps atomically swaps the table's contents for the file's.
func ApplyRemaps(table *mapping.Table, path string) (int, error) {
	ms, err := LoadRemaps(path)
	if err != nil {
		return 0, err
	}
	if err := table.ReplaceAll(ms); err != nil {
		return 0, err
	}
	return len(ms), nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/veldin/keyweave/internal/input"
)

// ErrInvalidSetting marks a settings value outside its allowed range.
var ErrInvalidSetting = errors.New("invalid setting")

// Settings is the keyweave.toml file. Durations are milliseconds,
// matching the option names they come from.
type Settings struct {
	// Timeoutlen is how long an ambiguous mapping prefix waits before
	// the shorter match fires, in milliseconds.
	Timeoutlen int `toml:"timeoutlen"`

	// MaxMapDepth bounds nested mapping expansion.
	MaxMapDepth int `toml:"maxmapdepth"`

	// RemapFile points at the YAML or TOML remap file, if any.
	RemapFile string `toml:"remapfile"`

	// ScriptDir holds user Lua scripts loaded at startup.
	ScriptDir string `toml:"scriptdir"`
}

// DefaultSettings mirrors the interpreter's own defaults.
func DefaultSettings() Settings {
	return Settings{
		Timeoutlen:  1000,
		MaxMapDepth: 20,
	}
}

// LoadSettings reads a TOML settings file. A missing file is not an
// error: defaults apply, as when the user has no config at all.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("read settings: %w", err)
	}
	if err := toml.Unmarshal(data, &s); err != nil {
		return DefaultSettings(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return DefaultSettings(), err
	}
	return s, nil
}

// Validate checks value ranges.
func (s Settings) Validate() error {
	if s.Timeoutlen <= 0 {
		return fmt.Errorf("%w: timeoutlen must be positive, got %d", ErrInvalidSetting, s.Timeoutlen)
	}
	if s.MaxMapDepth <= 0 {
		return fmt.Errorf("%w: maxmapdepth must be positive, got %d", ErrInvalidSetting, s.MaxMapDepth)
	}
	return nil
}

// InterpConfig converts the settings into interpreter options.
func (s Settings) InterpConfig() input.Config {
	return input.Config{
		Timeoutlen:  time.Duration(s.Timeoutlen) * time.Millisecond,
		MaxMapDepth: s.MaxMapDepth,
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSettings(t *testing.T) {
	path := writeFile(t, "keyweave.toml", `
timeoutlen = 500
maxmapdepth = 10
remapfile = "remaps.yaml"
scriptdir = "scripts"
`)
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Timeoutlen != 500 || s.MaxMapDepth != 10 {
		t.Errorf("settings = %+v", s)
	}
	if s.RemapFile != "remaps.yaml" || s.ScriptDir != "scripts" {
		t.Errorf("paths = %q %q", s.RemapFile, s.ScriptDir)
	}

	cfg := s.InterpConfig()
	if cfg.Timeoutlen != 500*time.Millisecond || cfg.MaxMapDepth != 10 {
		t.Errorf("interp config = %+v", cfg)
	}
}

func TestLoadSettingsMissingFileUsesDefaults(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s != DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", s)
	}
}

func TestLoadSettingsPartialFileKeepsDefaults(t *testing.T) {
	path := writeFile(t, "keyweave.toml", `timeoutlen = 250`)
	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	if s.Timeoutlen != 250 {
		t.Errorf("timeoutlen = %d, want 250", s.Timeoutlen)
	}
	if s.MaxMapDepth != DefaultSettings().MaxMapDepth {
		t.Errorf("maxmapdepth = %d, want default", s.MaxMapDepth)
	}
}

func TestLoadSettingsRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero timeout", `timeoutlen = 0`},
		{"negative timeout", `timeoutlen = -5`},
		{"zero depth", `maxmapdepth = 0`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "keyweave.toml", tt.body)
			_, err := LoadSettings(path)
			if !errors.Is(err, ErrInvalidSetting) {
				t.Errorf("err = %v, want ErrInvalidSetting", err)
			}
		})
	}
}

func TestLoadSettingsBadTOML(t *testing.T) {
	path := writeFile(t, "keyweave.toml", `timeoutlen = "soon"`)
	if _, err := LoadSettings(path); err == nil {
		t.Fatal("want parse error")
	}
}

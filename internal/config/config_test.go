package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Field.Width != 800 || cfg.Field.Height != 800 {
		t.Errorf("expected 800x800, got %dx%d", cfg.Field.Width, cfg.Field.Height)
	}
	if cfg.Field.Color != "#efefef" {
		t.Errorf("expected color #efefef, got %s", cfg.Field.Color)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("dense")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Field.Count != 220 {
		t.Errorf("expected count 220, got %d", cfg.Field.Count)
	}
	if cfg.Field.Width != DefaultWidth {
		t.Errorf("preset should keep default width, got %d", cfg.Field.Width)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestListPresetsSorted(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] > presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.yaml")
	cfg := GetPreset("swarm")
	cfg.Seed = 99

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.yaml")
	if err := os.WriteFile(path, []byte("field:\n  count: 12\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Field.Count != 12 {
		t.Errorf("expected count 12, got %d", cfg.Field.Count)
	}
	if cfg.Field.MaxLine != DefaultMaxLine {
		t.Errorf("expected default max line, got %f", cfg.Field.MaxLine)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "field.yaml")
	if err := os.WriteFile(path, []byte("field:\n  max_line: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative fps", func(c *Config) { c.Render.FPS = -1 }},
		{"negative speed", func(c *Config) { c.Motion.BaseSpeed = -5 }},
		{"bad color", func(c *Config) { c.Field.Color = "white" }},
		{"zero count", func(c *Config) { c.Field.Count = 0 }},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tt.name, err)
		}
	}
}

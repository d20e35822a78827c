package config

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Steps <= 0 {
		t.Error("steps should be positive")
	}
	if cfg.Memory != 0 {
		t.Error("default should keep the whole history")
	}
	if cfg.Left.Kind != "sin-absorber" {
		t.Errorf("expected driven left edge, got %q", cfg.Left.Kind)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("center")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Particles) != 1 || cfg.Particles[0].Cell != CenterCell {
		t.Errorf("center preset should place one centred particle, got %+v", cfg.Particles)
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}

	if len(ListPresets()) != 3 {
		t.Errorf("expected 3 presets, got %d", len(ListPresets()))
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero steps", func(c *Config) { c.Steps = 0 }},
		{"memory too small", func(c *Config) { c.Memory = 2 }},
		{"bad edge", func(c *Config) { c.Left.Kind = "teleport" }},
		{"animate without resolution", func(c *Config) { c.Output.Animate = true; c.Output.Width = 0 }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrConfig) {
			t.Errorf("%s: expected ErrConfig, got %v", tc.name, err)
		}
	}

	cfg := DefaultConfig()
	cfg.Memory = 5
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := GetPreset("center")
	cfg.Steps = 123
	cfg.Memory = 7
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Steps != 123 || loaded.Memory != 7 {
		t.Errorf("round trip lost values: %+v", loaded)
	}
	if len(loaded.Particles) != 1 {
		t.Errorf("round trip lost particles: %+v", loaded.Particles)
	}
}

func TestBuild(t *testing.T) {
	cfg := GetPreset("center")
	cfg.Steps = 50

	s, err := cfg.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if s.Model.Cells < 3 {
		t.Errorf("expected a real discretisation, got %d cells", s.Model.Cells)
	}
	if s.History.SpatialExtent() != s.Model.Cells {
		t.Error("history width disagrees with model cells")
	}
	if s.History.TimeExtent() != 2 {
		t.Errorf("expected two seed rows, got %d", s.History.TimeExtent())
	}

	// The centred particle resolves to an actual cell.
	pos := s.Model.Particles().PositionsAt(0)
	if len(pos) != 1 || pos[0] != s.Model.Cells/2 {
		t.Errorf("expected particle at cell %d, got %v", s.Model.Cells/2, pos)
	}
}

func TestBuild_BoundedHistory(t *testing.T) {
	cfg := GetPreset("free")
	cfg.Memory = 5
	cfg.Steps = 10

	s, err := cfg.Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if s.History.TimeExtent() != 2 {
		t.Errorf("expected seed-only history, got extent %d", s.History.TimeExtent())
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("parse(DefaultYAML()) failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded default = %+v, want %+v", cfg, Default())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	data := []byte("physics:\n  restitution: 0.5\ngrid:\n  cols: 8\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Physics.Restitution != 0.5 {
		t.Errorf("Restitution = %v, want 0.5", cfg.Physics.Restitution)
	}
	if cfg.Grid.Cols != 8 {
		t.Errorf("Cols = %d, want 8", cfg.Grid.Cols)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Grid.Rows != 32 || cfg.Step.TickRate != 60 {
		t.Errorf("defaults lost: rows=%d tick_rate=%d", cfg.Grid.Rows, cfg.Step.TickRate)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("grid: [1, 2"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"missing file", filepath.Join(dir, "missing.yaml"), "failed to read"},
		{"malformed yaml", bad, "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Engine)
		want   string
	}{
		{"restitution above one", func(e *Engine) { e.Physics.Restitution = 1.5 }, "restitution"},
		{"negative restitution", func(e *Engine) { e.Physics.Restitution = -0.1 }, "restitution"},
		{"zero cell size", func(e *Engine) { e.Grid.CellSize = 0 }, "cell_size"},
		{"zero rows", func(e *Engine) { e.Grid.Rows = 0 }, "dimensions"},
		{"zero tick rate", func(e *Engine) { e.Step.TickRate = 0 }, "tick_rate"},
		{"negative range", func(e *Engine) { e.Raycast.MaxRange = -1 }, "max_range"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestWorldOptions(t *testing.T) {
	cfg := Default()
	cfg.Grid.RefreshNeighborhood = false
	opts := cfg.WorldOptions()
	if opts.Restitution != 0.2 || opts.AngularDamping != 34 {
		t.Errorf("physics options = %+v", opts)
	}
	if opts.CellSize != 64 || opts.Cols != 32 || opts.Rows != 32 || opts.RefreshNeighborhood {
		t.Errorf("grid options = %+v", opts)
	}
	if dt := cfg.DeltaTime(); dt != 1.0/60 {
		t.Errorf("DeltaTime() = %v, want 1/60", dt)
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		name        string
		preset      string
		tickRate    int
		speculative bool
	}{
		{"empty means normal", "", 60, true},
		{"fast", "fast", 30, false},
		{"precise", "precise", 120, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := ParsePreset(tt.preset)
			if err != nil {
				t.Fatalf("ParsePreset() failed: %v", err)
			}
			cfg := Default()
			ApplyPreset(&cfg, p)
			if cfg.Step.TickRate != tt.tickRate || cfg.Step.Speculative != tt.speculative {
				t.Errorf("step = %+v, want tick_rate=%d speculative=%v", cfg.Step, tt.tickRate, tt.speculative)
			}
		})
	}

	if _, err := ParsePreset("ludicrous"); err == nil {
		t.Error("ParsePreset() accepted an unknown preset")
	}
}

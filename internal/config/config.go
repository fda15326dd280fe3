// Package config provides YAML-based engine configuration loading and
// precision presets for the collision engine.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/polycollide/internal/collide"
)

// Engine contains all configuration for a simulation.
type Engine struct {
	Physics Physics `yaml:"physics"`
	Grid    Grid    `yaml:"grid"`
	Step    Step    `yaml:"step"`
	Raycast Raycast `yaml:"raycast"`
}

// Physics defines resolution parameters.
type Physics struct {
	Restitution    float64 `yaml:"restitution"`     // 0 = perfectly inelastic, 1 = elastic
	AngularDamping float64 `yaml:"angular_damping"` // Scale of the angular impulse
	Gravity        Vec     `yaml:"gravity"`         // Applied to rigid bodies, world units / s^2
}

// Vec is a 2D vector in YAML form.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Grid defines the broad-phase mesh.
type Grid struct {
	CellSize            float64 `yaml:"cell_size"`
	Cols                int     `yaml:"cols"`
	Rows                int     `yaml:"rows"`
	RefreshNeighborhood bool    `yaml:"refresh_neighborhood"`
}

// Step defines the outer loop.
type Step struct {
	TickRate    int  `yaml:"tick_rate"` // Steps per simulated second
	Speculative bool `yaml:"speculative"`
	MaxSteps    int  `yaml:"max_steps"` // Default length of a headless run
}

// Raycast defines ray query limits.
type Raycast struct {
	MaxRange float64 `yaml:"max_range"` // 0 = unlimited
}

// DeltaTime returns the duration of one step in seconds.
func (e Engine) DeltaTime() float64 {
	if e.Step.TickRate <= 0 {
		return 0
	}
	return 1 / float64(e.Step.TickRate)
}

// WorldOptions converts the configuration into collide.Options.
func (e Engine) WorldOptions() collide.Options {
	return collide.Options{
		Restitution:         e.Physics.Restitution,
		AngularDamping:      e.Physics.AngularDamping,
		CellSize:            e.Grid.CellSize,
		Cols:                e.Grid.Cols,
		Rows:                e.Grid.Rows,
		RefreshNeighborhood: e.Grid.RefreshNeighborhood,
	}
}

// Validate reports every invalid field.
func (e Engine) Validate() error {
	var errs []error
	if e.Physics.Restitution < 0 || e.Physics.Restitution > 1 {
		errs = append(errs, fmt.Errorf("physics.restitution %v outside [0, 1]", e.Physics.Restitution))
	}
	if e.Grid.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("grid.cell_size must be positive, got %v", e.Grid.CellSize))
	}
	if e.Grid.Cols <= 0 || e.Grid.Rows <= 0 {
		errs = append(errs, fmt.Errorf("grid must have positive dimensions, got %dx%d", e.Grid.Cols, e.Grid.Rows))
	}
	if e.Step.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("step.tick_rate must be positive, got %d", e.Step.TickRate))
	}
	if e.Step.MaxSteps < 0 {
		errs = append(errs, fmt.Errorf("step.max_steps must not be negative, got %d", e.Step.MaxSteps))
	}
	if e.Raycast.MaxRange < 0 {
		errs = append(errs, fmt.Errorf("raycast.max_range must not be negative, got %v", e.Raycast.MaxRange))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Preset represents a named precision level.
type Preset string

const (
	PresetFast    Preset = "fast"
	PresetNormal  Preset = "normal"
	PresetPrecise Preset = "precise"
)

// ParsePreset validates a preset name. The empty string means PresetNormal.
func ParsePreset(s string) (Preset, error) {
	switch Preset(s) {
	case "", PresetNormal:
		return PresetNormal, nil
	case PresetFast, PresetPrecise:
		return Preset(s), nil
	default:
		return "", fmt.Errorf("unknown preset %q (want fast, normal or precise)", s)
	}
}

// ApplyPreset modifies the step section based on a precision preset.
func ApplyPreset(cfg *Engine, preset Preset) {
	switch preset {
	case PresetFast:
		cfg.Step.TickRate = 30
		cfg.Step.Speculative = false
	case PresetNormal:
		cfg.Step.TickRate = 60
		cfg.Step.Speculative = true
	case PresetPrecise:
		cfg.Step.TickRate = 120
		cfg.Step.Speculative = true
	}
}

package config

import (
	_ "embed"
)

//go:embed defaults/engine.yaml
var defaultEngineYAML []byte

// Default returns the hardcoded engine configuration.
func Default() Engine {
	return Engine{
		Physics: Physics{
			Restitution:    0.2,
			AngularDamping: 34,
		},
		Grid: Grid{
			CellSize:            64,
			Cols:                32,
			Rows:                32,
			RefreshNeighborhood: true,
		},
		Step: Step{
			TickRate:    60,
			Speculative: true,
			MaxSteps:    600,
		},
		Raycast: Raycast{
			MaxRange: 1000,
		},
	}
}

// DefaultYAML returns the embedded default engine YAML.
func DefaultYAML() []byte {
	return defaultEngineYAML
}

package config

import (
	_ "embed"
)

//go:embed defaults/t2048.yaml
var defaultT2048YAML []byte

// DefaultT2048Config returns the classic 4x4 configuration.
func DefaultT2048Config() T2048Config {
	return T2048Config{
		Board: T2048Board{
			Size:   4,
			Target: 2048,
		},
		Spawn: T2048Spawn{
			FourProbability: 0.1,
			StartTilesMin:   2,
			StartTilesMax:   3,
		},
		Animation: T2048Animation{
			SlideTicks: 8, // ~133ms at 60fps
			PopTicks:   6,
		},
		Input: T2048Input{
			SwipeThreshold: 1,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultT2048YAML
}

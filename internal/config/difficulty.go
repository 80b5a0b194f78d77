package config

import "fmt"

// DifficultyPreset represents a named difficulty level. In 2048 difficulty
// is the share of 4s among spawned tiles.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty accepts a preset name; empty means "keep the config".
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// FourProbabilityForPreset returns the spawn four_probability of a preset.
func FourProbabilityForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.05
	case DifficultyHard:
		return 0.25
	default:
		return 0.1
	}
}

// ApplyT2048Preset modifies the config based on a difficulty preset.
// An empty preset leaves it unchanged.
func ApplyT2048Preset(cfg *T2048Config, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	cfg.Spawn.FourProbability = FourProbabilityForPreset(preset)
}

// Package config provides YAML-based configuration loading for the 2048
// rules, animation timing and input handling.
package config

import "fmt"

// T2048Config contains all configuration for the 2048 game.
type T2048Config struct {
	Board     T2048Board     `yaml:"board"`
	Spawn     T2048Spawn     `yaml:"spawn"`
	Animation T2048Animation `yaml:"animation"`
	Input     T2048Input     `yaml:"input"`
}

// T2048Board defines the grid and win condition.
type T2048Board struct {
	Size   int `yaml:"size"`   // Grid dimension (size x size)
	Target int `yaml:"target"` // Tile value that wins the game
}

// T2048Spawn defines how new tiles appear.
type T2048Spawn struct {
	FourProbability float64 `yaml:"four_probability"` // Chance a spawned tile is a 4
	StartTilesMin   int     `yaml:"start_tiles_min"`
	StartTilesMax   int     `yaml:"start_tiles_max"`
}

// T2048Animation defines animation lengths in ticks. Zero disables a phase.
type T2048Animation struct {
	SlideTicks int `yaml:"slide_ticks"`
	PopTicks   int `yaml:"pop_ticks"`
}

// T2048Input defines input handling.
type T2048Input struct {
	SwipeThreshold int `yaml:"swipe_threshold"` // Drags within this many cells are ignored
}

// Validate reports the first out-of-range value.
func (c T2048Config) Validate() error {
	switch {
	case c.Board.Size < 2 || c.Board.Size > 8:
		return fmt.Errorf("config: board.size %d outside [2,8]", c.Board.Size)
	case c.Board.Target < 4 || c.Board.Target&(c.Board.Target-1) != 0:
		return fmt.Errorf("config: board.target %d is not a power of two >= 4", c.Board.Target)
	case c.Spawn.FourProbability < 0 || c.Spawn.FourProbability > 1:
		return fmt.Errorf("config: spawn.four_probability %v outside [0,1]", c.Spawn.FourProbability)
	case c.Spawn.StartTilesMin < 1:
		return fmt.Errorf("config: spawn.start_tiles_min %d must be at least 1", c.Spawn.StartTilesMin)
	case c.Spawn.StartTilesMax < c.Spawn.StartTilesMin:
		return fmt.Errorf("config: spawn.start_tiles_max %d below start_tiles_min %d",
			c.Spawn.StartTilesMax, c.Spawn.StartTilesMin)
	case c.Spawn.StartTilesMax > c.Board.Size*c.Board.Size:
		return fmt.Errorf("config: spawn.start_tiles_max %d exceeds %d cells",
			c.Spawn.StartTilesMax, c.Board.Size*c.Board.Size)
	case c.Animation.SlideTicks < 0 || c.Animation.PopTicks < 0:
		return fmt.Errorf("config: animation ticks must not be negative")
	case c.Input.SwipeThreshold < 0:
		return fmt.Errorf("config: input.swipe_threshold %d must not be negative", c.Input.SwipeThreshold)
	}
	return nil
}

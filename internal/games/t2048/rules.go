// Package t2048 implements the 2048 sliding-tile puzzle: a pure board
// transition engine plus the terminal game adapter that renders and animates it.
package t2048

// Default rule values for the classic game.
const (
	DefaultSize       = 4
	DefaultTarget     = 2048
	DefaultSpawn4Prob = 0.10

	// MaxSize bounds the grid dimension of any board, including restored ones.
	MaxSize = 16
)

// Rules holds the tunable parameters of a game.
type Rules struct {
	Size          int     // Grid dimension (Size x Size)
	Target        int     // Tile value that wins the game
	Spawn4Prob    float64 // Probability of spawning 4 instead of 2 (0.0-1.0)
	StartTilesMin int     // Fewest tiles placed by Reset
	StartTilesMax int     // Most tiles placed by Reset
}

// DefaultRules returns the classic 4x4 rules with a 2048 target.
func DefaultRules() Rules {
	return Rules{
		Size:          DefaultSize,
		Target:        DefaultTarget,
		Spawn4Prob:    DefaultSpawn4Prob,
		StartTilesMin: 2,
		StartTilesMax: 3,
	}
}

// normalized replaces out-of-range values with defaults.
func (r Rules) normalized() Rules {
	def := DefaultRules()
	if r.Size < 2 || r.Size > MaxSize {
		r.Size = def.Size
	}
	if r.Target < 4 || !isPowerOfTwo(r.Target) {
		r.Target = def.Target
	}
	if r.Spawn4Prob < 0 || r.Spawn4Prob > 1 {
		r.Spawn4Prob = def.Spawn4Prob
	}
	if r.StartTilesMin < 1 {
		r.StartTilesMin = def.StartTilesMin
	}
	if r.StartTilesMax < r.StartTilesMin {
		r.StartTilesMax = r.StartTilesMin
	}
	if cells := r.Size * r.Size; r.StartTilesMax > cells {
		r.StartTilesMax = cells
		if r.StartTilesMin > cells {
			r.StartTilesMin = cells
		}
	}
	return r
}

func isPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}

package t2048

import "github.com/vovakirdan/tui-2048/internal/config"

// Options configures a Game.
type Options struct {
	Rules      Rules
	SlideTicks int
	PopTicks   int
}

// DefaultOptions returns the classic rules with default animation lengths.
func DefaultOptions() Options {
	return Options{
		Rules:      DefaultRules(),
		SlideTicks: DefaultSlideTicks,
		PopTicks:   DefaultPopTicks,
	}
}

// Package-level options used by New (set once from the loaded config).
var (
	defaultOptions = DefaultOptions()
)

// Configure sets the options used by games created with New.
func Configure(opts Options) {
	defaultOptions = opts
}

// Variant is a registered board flavour. Zero Size or Target keep the
// configured rules.
type Variant struct {
	ID     string
	Title  string
	Size   int
	Target int
}

// Variants lists every registered flavour, classic first.
var Variants = []Variant{
	{ID: GameID, Title: "2048"},
	{ID: GameID + "_mini", Title: "2048 Mini (3x3)", Size: 3, Target: 256},
	{ID: GameID + "_big", Title: "2048 Big (5x5)", Size: 5, Target: 4096},
}

// Options returns base with the variant's overrides applied.
func (v Variant) Options(base Options) Options {
	if v.Size > 0 {
		base.Rules.Size = v.Size
	}
	if v.Target > 0 {
		base.Rules.Target = v.Target
	}
	return base
}

// OptionsFromConfig converts a loaded configuration into game options.
func OptionsFromConfig(cfg config.T2048Config) Options {
	return Options{
		Rules: Rules{
			Size:          cfg.Board.Size,
			Target:        cfg.Board.Target,
			Spawn4Prob:    cfg.Spawn.FourProbability,
			StartTilesMin: cfg.Spawn.StartTilesMin,
			StartTilesMax: cfg.Spawn.StartTilesMax,
		},
		SlideTicks: cfg.Animation.SlideTicks,
		PopTicks:   cfg.Animation.PopTicks,
	}
}

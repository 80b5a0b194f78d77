package core

// RuntimeConfig is what the platform hands a game when it starts: the
// drawable area, the tick rate and the RNG seed.
type RuntimeConfig struct {
	ScreenW  int
	ScreenH  int
	TickRate int   // ticks per second
	Seed     int64 // 0 lets the platform seed from the clock
}

// GameState is the status a game reports to the platform after each tick.
type GameState struct {
	Score     int
	BestScore int  // includes the running game
	GameOver  bool // no legal move left, or the target was reached
	Won       bool
	Paused    bool
}

// StepResult is returned by Game.Step.
type StepResult struct {
	State GameState
	Moved bool // a move changed the board this tick
}

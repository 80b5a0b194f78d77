package t2048

import (
	"encoding/json"
	"fmt"
)

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateGameOver    GameStateType = "game_over"
	StateWin         GameStateType = "win"
	StatePausedSmall GameStateType = "paused_small_window"
)

// SnapshotTile is the persisted form of a tile.
type SnapshotTile struct {
	ID    int `json:"id"`
	Value int `json:"value"`
	Row   int `json:"row"`
	Col   int `json:"col"`
}

// Snapshot captures a game for saving, restoring and determinism checks.
type Snapshot struct {
	Size      int            `json:"size"`
	NextID    int            `json:"next_id"`
	Tiles     []SnapshotTile `json:"tiles"`
	Score     int            `json:"score"`
	BestScore int            `json:"best_score"`
	GameOver  bool           `json:"game_over"`
	Won       bool           `json:"won"`
	Moves     int            `json:"moves"`
	MaxTile   int            `json:"max_tile"`
	State     GameStateType  `json:"state"`
}

// SnapshotOf converts an engine state into a snapshot.
func SnapshotOf(s State, moves int) Snapshot {
	snap := Snapshot{
		Size:      s.Board.Size(),
		NextID:    s.Board.NextID(),
		Score:     s.Score,
		BestScore: s.BestScore,
		GameOver:  s.GameOver,
		Won:       s.Won,
		Moves:     moves,
		MaxTile:   s.Board.MaxTile(),
		State:     StatePlaying,
	}
	for _, t := range s.Board.Tiles() {
		snap.Tiles = append(snap.Tiles, SnapshotTile(t))
	}

	switch {
	case s.Won:
		snap.State = StateWin
	case s.GameOver:
		snap.State = StateGameOver
	}
	return snap
}

// EngineState rebuilds and validates the engine state held by the snapshot.
func (s Snapshot) EngineState() (State, error) {
	tiles := make([]Tile, len(s.Tiles))
	for i, t := range s.Tiles {
		tiles[i] = Tile(t)
	}

	board := BoardFromTiles(s.Size, tiles, s.NextID)
	if err := board.Validate(); err != nil {
		return State{}, fmt.Errorf("t2048: invalid snapshot: %w", err)
	}
	if s.Score < 0 {
		return State{}, fmt.Errorf("t2048: invalid snapshot: negative score %d", s.Score)
	}

	return State{
		Board:     board,
		Score:     s.Score,
		BestScore: max(s.BestScore, s.Score),
		GameOver:  IsTerminal(board),
		Won:       s.Won,
	}, nil
}

// MarshalSnapshot encodes a snapshot as JSON.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("t2048: cannot encode snapshot: %w", err)
	}
	return data, nil
}

// UnmarshalSnapshot decodes a JSON snapshot.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("t2048: cannot decode snapshot: %w", err)
	}
	return s, nil
}

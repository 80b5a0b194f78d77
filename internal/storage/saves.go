package storage

import (
	"database/sql"
	"errors"
	"fmt"
)

// BestScore returns the player's best score for gameID, 0 when none is stored.
func (s *Store) BestScore(gameID, player string) (int, error) {
	var score int
	err := s.db.QueryRow(
		"SELECT score FROM best_scores WHERE game_id = ? AND player = ?",
		gameID, player,
	).Scan(&score)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return 0, nil
	case err != nil:
		return 0, fmt.Errorf("storage: best score: %w", err)
	}
	return score, nil
}

// SaveBestScore raises the stored best to score. A lower score is a no-op.
func (s *Store) SaveBestScore(gameID, player string, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO best_scores (game_id, player, score) VALUES (?, ?, ?)
		 ON CONFLICT(game_id, player) DO UPDATE SET
			score = MAX(best_scores.score, excluded.score),
			updated_at = CURRENT_TIMESTAMP`,
		gameID, player, score,
	)
	if err != nil {
		return fmt.Errorf("storage: save best score: %w", err)
	}
	return nil
}

// SaveGame stores the player's in-progress snapshot, replacing the old one.
func (s *Store) SaveGame(gameID, player string, snapshot []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO saved_games (game_id, player, snapshot) VALUES (?, ?, ?)
		 ON CONFLICT(game_id, player) DO UPDATE SET
			snapshot = excluded.snapshot,
			updated_at = CURRENT_TIMESTAMP`,
		gameID, player, string(snapshot),
	)
	if err != nil {
		return fmt.Errorf("storage: save game: %w", err)
	}
	return nil
}

// LoadGame returns the player's snapshot, or ErrNoSavedGame.
func (s *Store) LoadGame(gameID, player string) ([]byte, error) {
	var snapshot string
	err := s.db.QueryRow(
		"SELECT snapshot FROM saved_games WHERE game_id = ? AND player = ?",
		gameID, player,
	).Scan(&snapshot)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrNoSavedGame
	case err != nil:
		return nil, fmt.Errorf("storage: load game: %w", err)
	}
	return []byte(snapshot), nil
}

// ClearSavedGame deletes the player's snapshot. A missing one is not an error.
func (s *Store) ClearSavedGame(gameID, player string) error {
	_, err := s.db.Exec("DELETE FROM saved_games WHERE game_id = ? AND player = ?", gameID, player)
	if err != nil {
		return fmt.Errorf("storage: clear saved game: %w", err)
	}
	return nil
}

// ClearGameData removes the player's best score and snapshot together.
// Score history is kept.
func (s *Store) ClearGameData(gameID, player string) error {
	err := s.withTx(func(tx *sql.Tx) error {
		for _, table := range []string{"best_scores", "saved_games"} {
			q := "DELETE FROM " + table + " WHERE game_id = ? AND player = ?"
			if _, err := tx.Exec(q, gameID, player); err != nil {
				return fmt.Errorf("%s: %w", table, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("storage: clear game data: %w", err)
	}
	return nil
}

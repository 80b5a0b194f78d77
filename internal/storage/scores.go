package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ScoreEntry is one finished game.
type ScoreEntry struct {
	ID        int64
	RunID     string // assigned by SaveScore when empty
	GameID    string
	Player    string
	Score     int
	MaxTile   int
	Moves     int
	Won       bool
	CreatedAt time.Time
}

// GameStats aggregates the score history of one variant.
type GameStats struct {
	GameID     string
	GamesCount int
	Wins       int
	HighScore  int
	BestTile   int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// SaveScore records a finished game and returns its row ID. RunID is unique,
// so recording the same run twice fails.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	if e.RunID == "" {
		e.RunID = uuid.NewString()
	}
	if e.Player == "" {
		e.Player = LocalPlayer
	}

	res, err := s.db.Exec(
		`INSERT INTO scores (run_id, game_id, player, score, max_tile, moves, won)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.GameID, e.Player, e.Score, e.MaxTile, e.Moves, e.Won,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: save score: %w", err)
	}
	return res.LastInsertId()
}

// TopScores returns up to limit scores for gameID, highest first. Equal
// scores keep insertion order. A non-positive limit means 10.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, game_id, player, score, max_tile, moves, won, created_at
		 FROM scores WHERE game_id = ?
		 ORDER BY score DESC, id ASC LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: query scores: %w", err)
	}
	defer rows.Close()

	var out []ScoreEntry
	for rows.Next() {
		var (
			e       ScoreEntry
			created any
		)
		if err := rows.Scan(&e.ID, &e.RunID, &e.GameID, &e.Player, &e.Score, &e.MaxTile, &e.Moves, &e.Won, &created); err != nil {
			return nil, fmt.Errorf("storage: scan score: %w", err)
		}
		e.CreatedAt = parseTime(created)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: read scores: %w", err)
	}
	return out, nil
}

// ClearScores deletes the whole score history of gameID.
func (s *Store) ClearScores(gameID string) error {
	if _, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID); err != nil {
		return fmt.Errorf("storage: clear scores: %w", err)
	}
	return nil
}

// GetGameStats summarises the score history of gameID. A variant with no
// history yields zero counts and a zero LastPlayed.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	st := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(score), 0), COALESCE(MAX(max_tile), 0),
		        COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&st.GamesCount, &st.Wins, &st.HighScore, &st.BestTile, &st.AvgScore, &st.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: game stats: %w", err)
	}

	var last any
	err = s.db.QueryRow(
		"SELECT created_at FROM scores WHERE game_id = ? ORDER BY created_at DESC, id DESC LIMIT 1",
		gameID,
	).Scan(&last)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, fmt.Errorf("storage: last played: %w", err)
	default:
		st.LastPlayed = parseTime(last)
	}
	return st, nil
}

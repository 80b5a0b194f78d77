package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, e := range []ScoreEntry{
		{GameID: "2048", Score: 100, MaxTile: 16, Moves: 30},
		{GameID: "2048", Score: 50, MaxTile: 8, Moves: 12},
		{GameID: "2048", Player: "alice", Score: 20480, MaxTile: 2048, Moves: 900, Won: true},
		{GameID: "2048_mini", Score: 500},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("2048", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	type row struct {
		Player  string
		Score   int
		MaxTile int
		Won     bool
	}
	got := make([]row, len(scores))
	for i, s := range scores {
		got[i] = row{s.Player, s.Score, s.MaxTile, s.Won}
	}
	want := []row{
		{"alice", 20480, 2048, true},
		{LocalPlayer, 100, 16, false},
		{LocalPlayer, 50, 8, false},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("TopScores() mismatch (-want +got):\n%s", diff)
	}

	for _, s := range scores {
		if s.RunID == "" {
			t.Errorf("score %d has no run id", s.ID)
		}
	}
	if scores[0].RunID == scores[1].RunID {
		t.Error("run ids should be unique")
	}

	mini, err := store.TopScores("2048_mini", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(mini) != 1 {
		t.Errorf("Expected 1 mini score, got %d", len(mini))
	}
}

func TestStoreDuplicateRunID(t *testing.T) {
	store := openTestStore(t)

	e := ScoreEntry{RunID: "run-1", GameID: "2048", Score: 10}
	if _, err := store.SaveScore(e); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := store.SaveScore(e); err == nil {
		t.Error("SaveScore() with a repeated run id should fail")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 20 {
		if _, err := store.SaveScore(ScoreEntry{GameID: "2048", Score: i * 4}); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	top, err := store.TopScores("2048", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(top))
	}
	if top[0].Score != 76 {
		t.Errorf("Expected top score 76, got %d", top[0].Score)
	}

	all, err := store.TopScores("2048", 100)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(all))
	}
}

func highScore(t *testing.T, store *Store, gameID string) int {
	t.Helper()
	stats, err := store.GetGameStats(gameID)
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	return stats.HighScore
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	if high := highScore(t, store, "2048"); high != 0 {
		t.Errorf("high score with no history = %d, want 0", high)
	}

	store.SaveScore(ScoreEntry{GameID: "2048", Score: 300})
	store.SaveScore(ScoreEntry{GameID: "2048", Score: 1200})
	store.SaveScore(ScoreEntry{GameID: "2048_mini", Score: 64})

	if high := highScore(t, store, "2048"); high != 1200 {
		t.Errorf("high score = %d, want 1200", high)
	}

	if err := store.ClearScores("2048"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if high := highScore(t, store, "2048"); high != 0 {
		t.Errorf("high score after clear = %d, want 0", high)
	}
	if high := highScore(t, store, "2048_mini"); high != 64 {
		t.Errorf("other variant's history = %d, want 64 kept", high)
	}
}

func TestStoreMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")

	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := first.SaveScore(ScoreEntry{GameID: "2048", Score: 8}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	first.Close()

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer second.Close()

	v, err := second.schemaVersion()
	if err != nil {
		t.Fatalf("schemaVersion() failed: %v", err)
	}
	if v != len(migrations) {
		t.Errorf("schemaVersion() = %d, want %d", v, len(migrations))
	}
	if high := highScore(t, second, "2048"); high != 8 {
		t.Errorf("history lost on reopen, high score = %d", high)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandHome("~/.t2048/scores.db")
	if err != nil {
		t.Fatalf("expandHome() failed: %v", err)
	}
	if want := filepath.Join(home, ".t2048", "scores.db"); got != want {
		t.Errorf("expandHome() = %q, want %q", got, want)
	}
	if got, _ := expandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("expandHome() changed an absolute path to %q", got)
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore("2048", LocalPlayer)
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("BestScore() with nothing stored = %d, want 0", best)
	}

	steps := []struct {
		save int
		want int
	}{
		{400, 400},
		{100, 400}, // lower scores never replace the best
		{1600, 1600},
	}
	for _, st := range steps {
		if err := store.SaveBestScore("2048", LocalPlayer, st.save); err != nil {
			t.Fatalf("SaveBestScore(%d) failed: %v", st.save, err)
		}
		best, err := store.BestScore("2048", LocalPlayer)
		if err != nil {
			t.Fatalf("BestScore() failed: %v", err)
		}
		if best != st.want {
			t.Errorf("after SaveBestScore(%d): BestScore() = %d, want %d", st.save, best, st.want)
		}
	}

	other, _ := store.BestScore("2048", "bob")
	if other != 0 {
		t.Errorf("BestScore() for another player = %d, want 0", other)
	}
}

func TestStoreSavedGame(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.LoadGame("2048", "alice"); !errors.Is(err, ErrNoSavedGame) {
		t.Fatalf("LoadGame() error = %v, want ErrNoSavedGame", err)
	}

	first := []byte(`{"size":4,"score":8}`)
	second := []byte(`{"size":4,"score":64}`)

	if err := store.SaveGame("2048", "alice", first); err != nil {
		t.Fatalf("SaveGame() failed: %v", err)
	}
	if err := store.SaveGame("2048", "alice", second); err != nil {
		t.Fatalf("SaveGame() overwrite failed: %v", err)
	}

	got, err := store.LoadGame("2048", "alice")
	if err != nil {
		t.Fatalf("LoadGame() failed: %v", err)
	}
	if diff := cmp.Diff(string(second), string(got)); diff != "" {
		t.Errorf("LoadGame() mismatch (-want +got):\n%s", diff)
	}

	if _, err := store.LoadGame("2048", "bob"); !errors.Is(err, ErrNoSavedGame) {
		t.Errorf("LoadGame() for another player error = %v, want ErrNoSavedGame", err)
	}

	if err := store.ClearSavedGame("2048", "alice"); err != nil {
		t.Fatalf("ClearSavedGame() failed: %v", err)
	}
	if _, err := store.LoadGame("2048", "alice"); !errors.Is(err, ErrNoSavedGame) {
		t.Errorf("LoadGame() after clear error = %v, want ErrNoSavedGame", err)
	}
	if err := store.ClearSavedGame("2048", "alice"); err != nil {
		t.Errorf("ClearSavedGame() on a missing game failed: %v", err)
	}
}

func TestStoreClearGameData(t *testing.T) {
	store := openTestStore(t)

	store.SaveBestScore("2048", LocalPlayer, 900)
	store.SaveGame("2048", LocalPlayer, []byte(`{}`))
	store.SaveBestScore("2048", "carol", 50)
	store.SaveScore(ScoreEntry{GameID: "2048", Score: 900})

	if err := store.ClearGameData("2048", LocalPlayer); err != nil {
		t.Fatalf("ClearGameData() failed: %v", err)
	}

	if best, _ := store.BestScore("2048", LocalPlayer); best != 0 {
		t.Errorf("BestScore() after clear = %d, want 0", best)
	}
	if _, err := store.LoadGame("2048", LocalPlayer); !errors.Is(err, ErrNoSavedGame) {
		t.Errorf("LoadGame() after clear error = %v, want ErrNoSavedGame", err)
	}
	if best, _ := store.BestScore("2048", "carol"); best != 50 {
		t.Errorf("other player's best = %d, want 50 kept", best)
	}
	if high := highScore(t, store, "2048"); high != 900 {
		t.Errorf("score history should be kept, high score = %d", high)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats("2048")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveScore(ScoreEntry{GameID: "2048", Score: 1000, MaxTile: 128})
	store.SaveScore(ScoreEntry{GameID: "2048", Score: 3000, MaxTile: 2048, Won: true})

	stats, err = store.GetGameStats("2048")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}

	got := GameStats{
		GameID:     stats.GameID,
		GamesCount: stats.GamesCount,
		Wins:       stats.Wins,
		HighScore:  stats.HighScore,
		BestTile:   stats.BestTile,
		AvgScore:   stats.AvgScore,
		TotalScore: stats.TotalScore,
	}
	want := GameStats{
		GameID:     "2048",
		GamesCount: 2,
		Wins:       1,
		HighScore:  3000,
		BestTile:   2048,
		AvgScore:   2000,
		TotalScore: 4000,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetGameStats() mismatch (-want +got):\n%s", diff)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

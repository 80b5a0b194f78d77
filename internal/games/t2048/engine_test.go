package t2048

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// scriptedRand replays fixed values. Exhausted scripts return 0 for Intn
// and 0.5 for Float64 (always a 2 with default rules).
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0.5
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func newTestEngine() *Engine {
	return NewEngine(DefaultRules(), &scriptedRand{})
}

func stateFromGrid(grid [][]int) State {
	return State{Board: BoardFromGrid(grid)}
}

// gridWithoutSpawn returns the board grid with the spawned tile removed.
func gridWithoutSpawn(t *testing.T, s State, events []Event) [][]int {
	t.Helper()
	grid := s.Board.Grid()
	spawns := 0
	for _, ev := range events {
		if ev.Kind == EventSpawn {
			grid[ev.To.Row][ev.To.Col] = 0
			spawns++
		}
	}
	if spawns != 1 {
		t.Fatalf("expected exactly one spawn event, got %d", spawns)
	}
	return grid
}

// mergeScore sums the values produced by the merge events in evs.
func mergeScore(evs []Event) int {
	total := 0
	for _, ev := range evs {
		if ev.Kind == EventMerge {
			total += ev.Value
		}
	}
	return total
}

func countKinds(evs []Event) map[EventKind]int {
	n := make(map[EventKind]int)
	for _, ev := range evs {
		n[ev.Kind]++
	}
	return n
}

func emptyGrid() [][]int {
	return [][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
}

func TestApplyMoveMergesPair(t *testing.T) {
	e := newTestEngine()
	s := stateFromGrid([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	next, events, moved := e.ApplyMove(s, DirLeft)
	if !moved {
		t.Fatal("ApplyMove should report moved")
	}
	if next.Score != 4 {
		t.Errorf("Score = %d, want 4", next.Score)
	}

	want := emptyGrid()
	want[0][0] = 4
	if diff := cmp.Diff(want, gridWithoutSpawn(t, next, events)); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}

	// Spawn goes to the first empty cell with the scripted rand
	wantEvents := []Event{
		{Kind: EventMerge, TileID: 0, RemovedID: 1, From: Pos{0, 1}, To: Pos{0, 0}, Value: 4},
		{Kind: EventSpawn, TileID: 2, RemovedID: -1, From: Pos{0, 1}, To: Pos{0, 1}, Value: 2},
	}
	if diff := cmp.Diff(wantEvents, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyMoveRows(t *testing.T) {
	tests := []struct {
		name  string
		dir   Direction
		row   []int
		want  []int
		score int
	}{
		{"merge across gap", DirLeft, []int{2, 0, 2, 0}, []int{4, 0, 0, 0}, 4},
		{"merge with trailing tile", DirLeft, []int{2, 2, 2, 0}, []int{4, 2, 0, 0}, 4},
		{"double merge", DirLeft, []int{2, 2, 2, 2}, []int{4, 4, 0, 0}, 8},
		{"one merge per tile per move", DirLeft, []int{4, 4, 4, 4}, []int{8, 8, 0, 0}, 16},
		{"merged tile cannot merge again", DirLeft, []int{2, 2, 4, 0}, []int{4, 4, 0, 0}, 4},
		{"slide with multiple gaps", DirLeft, []int{2, 0, 0, 2}, []int{4, 0, 0, 0}, 4},
		{"single tile", DirLeft, []int{0, 4, 0, 0}, []int{4, 0, 0, 0}, 0},
		{"right merges nearest edge first", DirRight, []int{2, 2, 2, 0}, []int{0, 0, 2, 4}, 4},
		{"right double merge", DirRight, []int{2, 2, 2, 2}, []int{0, 0, 4, 4}, 8},
		{"right slide", DirRight, []int{4, 0, 0, 0}, []int{0, 0, 0, 4}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := emptyGrid()
			grid[3] = tt.row
			s := stateFromGrid(grid)

			next, events, moved := newTestEngine().ApplyMove(s, tt.dir)
			if !moved {
				t.Fatalf("row %v %s should move", tt.row, tt.dir)
			}

			got := gridWithoutSpawn(t, next, events)
			if diff := cmp.Diff(tt.want, got[3]); diff != "" {
				t.Errorf("row %v %s mismatch (-want +got):\n%s", tt.row, tt.dir, diff)
			}
			if next.Score != tt.score {
				t.Errorf("score = %d, want %d", next.Score, tt.score)
			}
		})
	}
}

func TestApplyMoveBlockedRowDoesNotMove(t *testing.T) {
	e := newTestEngine()
	s := stateFromGrid([][]int{
		{2, 4, 2, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	next, events, moved := e.ApplyMove(s, DirLeft)
	if moved {
		t.Error("[2,4,2,_] left should not move")
	}
	if len(events) != 0 {
		t.Errorf("events = %v, want none", events)
	}
	if diff := cmp.Diff(s, next, cmp.AllowUnexported(Board{})); diff != "" {
		t.Errorf("state changed on a no-op move (-want +got):\n%s", diff)
	}
	if next.Board.TileCount() != 3 {
		t.Errorf("no tile should spawn, got %d tiles", next.Board.TileCount())
	}
}

func TestApplyMoveUp(t *testing.T) {
	s := stateFromGrid([][]int{
		{2, 4, 2, 0},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 2},
	})

	next, events, moved := newTestEngine().ApplyMove(s, DirUp)
	if !moved {
		t.Fatal("ApplyMove up should move")
	}

	want := [][]int{
		{4, 8, 4, 2},
		{0, 0, 4, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	if diff := cmp.Diff(want, gridWithoutSpawn(t, next, events)); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
	if next.Score != 20 {
		t.Errorf("Score = %d, want 20", next.Score)
	}
}

func TestApplyMoveDown(t *testing.T) {
	s := stateFromGrid([][]int{
		{2, 4, 2, 2},
		{2, 0, 2, 0},
		{0, 4, 2, 0},
		{0, 0, 2, 0},
	})

	next, events, moved := newTestEngine().ApplyMove(s, DirDown)
	if !moved {
		t.Fatal("ApplyMove down should move")
	}

	want := [][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 4, 0},
		{4, 8, 4, 2},
	}
	if diff := cmp.Diff(want, gridWithoutSpawn(t, next, events)); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyMoveSlideEvents(t *testing.T) {
	s := stateFromGrid([][]int{
		{0, 0, 0, 0},
		{0, 0, 8, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	_, events, moved := newTestEngine().ApplyMove(s, DirDown)
	if !moved {
		t.Fatal("ApplyMove should move")
	}

	slide := events[0]
	want := Event{Kind: EventSlide, TileID: 0, RemovedID: -1, From: Pos{1, 2}, To: Pos{3, 2}, Value: 8}
	if diff := cmp.Diff(want, slide); diff != "" {
		t.Errorf("slide event mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyMoveWinStopsFurtherMoves(t *testing.T) {
	e := newTestEngine()
	s := stateFromGrid([][]int{
		{1024, 1024, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	won, _, moved := e.ApplyMove(s, DirLeft)
	if !moved {
		t.Fatal("merging 1024s should move")
	}
	if !won.Won {
		t.Fatal("merging into 2048 should set Won")
	}
	if won.Score != 2048 {
		t.Errorf("Score = %d, want 2048", won.Score)
	}

	for _, dir := range Directions {
		next, events, moved := e.ApplyMove(won, dir)
		if moved || len(events) != 0 {
			t.Errorf("%s after win: moved=%v events=%d, want no-op", dir, moved, len(events))
		}
		if diff := cmp.Diff(won, next, cmp.AllowUnexported(Board{})); diff != "" {
			t.Errorf("%s after win changed state (-want +got):\n%s", dir, diff)
		}
	}
}

func TestApplyMoveWinFinishesTheMove(t *testing.T) {
	s := stateFromGrid([][]int{
		{1024, 1024, 2, 2},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	next, events, moved := newTestEngine().ApplyMove(s, DirLeft)
	if !moved {
		t.Fatal("ApplyMove should move")
	}
	if !next.Won {
		t.Fatal("merging into 2048 should set Won")
	}
	if next.Score != 2052 {
		t.Errorf("Score = %d, want 2052", next.Score)
	}
	if got := mergeScore(events); got != 2052 {
		t.Errorf("merge events add up to %d, want 2052", got)
	}

	// The 2s after the winning merge still slide and merge.
	want := [][]int{
		{2048, 4, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	if diff := cmp.Diff(want, gridWithoutSpawn(t, next, events)); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}

	wantKinds := map[EventKind]int{EventMerge: 2, EventSlide: 1, EventSpawn: 1}
	if diff := cmp.Diff(wantKinds, countKinds(events)); diff != "" {
		t.Errorf("event kinds mismatch (-want +got):\n%s", diff)
	}
	if err := next.Board.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestApplyMoveCustomTarget(t *testing.T) {
	rules := DefaultRules()
	rules.Target = 64
	e := NewEngine(rules, &scriptedRand{})

	s := stateFromGrid([][]int{
		{32, 32, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	next, _, _ := e.ApplyMove(s, DirLeft)
	if !next.Won {
		t.Error("reaching a custom target should set Won")
	}
}

func TestApplyMoveGameOverIsNoop(t *testing.T) {
	s := stateFromGrid([][]int{
		{2, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
	s.GameOver = true

	_, _, moved := newTestEngine().ApplyMove(s, DirRight)
	if moved {
		t.Error("ApplyMove on a finished game should not move")
	}
}

func TestApplyMoveDetectsGameOver(t *testing.T) {
	// Row 0 slides to [4,2,4,_] and the spawn fills (0,3)
	s := stateFromGrid([][]int{
		{0, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	})
	rng := &scriptedRand{floats: []float64{0.01}} // spawn a 4
	e := NewEngine(DefaultRules(), rng)

	next, _, moved := e.ApplyMove(s, DirLeft)
	if !moved {
		t.Fatal("ApplyMove should move")
	}
	if next.Board.ValueAt(0, 3) != 4 {
		t.Fatalf("expected spawned 4 at (0,3), got grid %v", next.Board.Grid())
	}
	// Row 0 is now [4,2,4,4]: mergeable, not over
	if next.GameOver {
		t.Error("board with an adjacent pair should not be game over")
	}
}

func TestApplyMoveBestScore(t *testing.T) {
	s := stateFromGrid([][]int{
		{2, 2, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})

	s.BestScore = 100
	next, _, _ := newTestEngine().ApplyMove(s, DirLeft)
	if next.BestScore != 100 {
		t.Errorf("BestScore = %d, want 100 (stale best kept)", next.BestScore)
	}

	s.BestScore = 0
	next, _, _ = newTestEngine().ApplyMove(s, DirLeft)
	if next.BestScore != 4 {
		t.Errorf("BestScore = %d, want 4", next.BestScore)
	}
}

func TestApplyMoveDoesNotMutateInput(t *testing.T) {
	s := stateFromGrid([][]int{
		{2, 2, 0, 0},
		{0, 4, 0, 0},
		{0, 0, 0, 0},
		{8, 0, 0, 8},
	})
	before := s.Board.Tiles()

	newTestEngine().ApplyMove(s, DirRight)

	if diff := cmp.Diff(before, s.Board.Tiles()); diff != "" {
		t.Errorf("input board mutated (-before +after):\n%s", diff)
	}
}

func TestIsTerminal(t *testing.T) {
	checkerboard := [][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	if !IsTerminal(BoardFromGrid(checkerboard)) {
		t.Error("full checkerboard should be terminal")
	}

	horizontalPair := [][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 4, 8},
		{4, 2, 8, 2},
	}
	if IsTerminal(BoardFromGrid(horizontalPair)) {
		t.Error("full board with a horizontal pair should not be terminal")
	}

	verticalPair := [][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{2, 8, 16, 32},
	}
	if IsTerminal(BoardFromGrid(verticalPair)) {
		t.Error("full board with a vertical pair should not be terminal")
	}

	diagonalOnly := [][]int{
		{2, 4, 8, 16},
		{4, 2, 16, 8},
		{8, 16, 2, 4},
		{16, 8, 4, 2},
	}
	if !IsTerminal(BoardFromGrid(diagonalOnly)) {
		t.Error("diagonal neighbours should not count as a move")
	}

	withEmpty := [][]int{
		{2, 4, 2, 4},
		{4, 2, 0, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
	if IsTerminal(BoardFromGrid(withEmpty)) {
		t.Error("board with an empty cell should not be terminal")
	}
}

func TestSpawnRandomTile(t *testing.T) {
	board := BoardFromGrid([][]int{
		{2, 0, 2, 0},
		{2, 2, 2, 2},
		{2, 2, 2, 2},
		{2, 2, 2, 2},
	})

	tests := []struct {
		name      string
		pick      int
		roll      float64
		wantPos   Pos
		wantValue int
	}{
		{"first empty cell gets a 2", 0, 0.5, Pos{0, 1}, 2},
		{"second empty cell gets a 4", 1, 0.05, Pos{0, 3}, 4},
		{"probability boundary gives a 2", 0, 0.1, Pos{0, 1}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(DefaultRules(), &scriptedRand{ints: []int{tt.pick}, floats: []float64{tt.roll}})
			next, ev, ok := e.SpawnRandomTile(board)
			if !ok {
				t.Fatal("SpawnRandomTile should succeed with empty cells")
			}

			want := Event{Kind: EventSpawn, TileID: board.NextID(), RemovedID: -1, From: tt.wantPos, To: tt.wantPos, Value: tt.wantValue}
			if diff := cmp.Diff(want, ev); diff != "" {
				t.Errorf("spawn event mismatch (-want +got):\n%s", diff)
			}
			if next.ValueAt(tt.wantPos.Row, tt.wantPos.Col) != tt.wantValue {
				t.Errorf("ValueAt(%v) = %d, want %d", tt.wantPos, next.ValueAt(tt.wantPos.Row, tt.wantPos.Col), tt.wantValue)
			}
			if next.NextID() != board.NextID()+1 {
				t.Errorf("NextID = %d, want %d", next.NextID(), board.NextID()+1)
			}
			if board.TileCount() != 14 {
				t.Error("SpawnRandomTile mutated its input")
			}
		})
	}
}

func TestSpawnRandomTileFullBoard(t *testing.T) {
	full := BoardFromGrid([][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	})

	next, _, ok := newTestEngine().SpawnRandomTile(full)
	if ok {
		t.Error("SpawnRandomTile on a full board should report ok=false")
	}
	if next.TileCount() != 16 || next.NextID() != full.NextID() {
		t.Error("SpawnRandomTile on a full board should return it unchanged")
	}
}

func TestSpawnProbability(t *testing.T) {
	e := NewEngine(DefaultRules(), rand.New(rand.NewSource(7)))

	fours := 0
	const trials = 5000
	for range trials {
		_, ev, _ := e.SpawnRandomTile(NewBoard(DefaultSize))
		if ev.Value == 4 {
			fours++
		}
	}

	ratio := float64(fours) / trials
	if ratio < 0.07 || ratio > 0.13 {
		t.Errorf("fraction of 4s = %.3f, want about 0.10", ratio)
	}
}

func TestReset(t *testing.T) {
	tests := []struct {
		name      string
		countRoll int
		wantTiles int
	}{
		{"two starter tiles", 0, 2},
		{"three starter tiles", 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(DefaultRules(), &scriptedRand{ints: []int{tt.countRoll}})
			s, events := e.Reset(512)

			if s.Board.TileCount() != tt.wantTiles {
				t.Errorf("TileCount = %d, want %d", s.Board.TileCount(), tt.wantTiles)
			}
			if len(events) != tt.wantTiles {
				t.Errorf("spawn events = %d, want %d", len(events), tt.wantTiles)
			}
			if s.Score != 0 || s.GameOver || s.Won {
				t.Errorf("Reset state = %+v, want a fresh game", s)
			}
			if s.BestScore != 512 {
				t.Errorf("BestScore = %d, want 512 carried over", s.BestScore)
			}
			if err := s.Board.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestTraversals(t *testing.T) {
	tests := []struct {
		dir      Direction
		wantRows []int
		wantCols []int
	}{
		{DirUp, []int{0, 1, 2, 3}, []int{0, 1, 2, 3}},
		{DirLeft, []int{0, 1, 2, 3}, []int{0, 1, 2, 3}},
		{DirRight, []int{0, 1, 2, 3}, []int{3, 2, 1, 0}},
		{DirDown, []int{3, 2, 1, 0}, []int{0, 1, 2, 3}},
	}

	for _, tt := range tests {
		rows, cols := traversals(4, tt.dir)
		if diff := cmp.Diff(tt.wantRows, rows); diff != "" {
			t.Errorf("%s rows mismatch (-want +got):\n%s", tt.dir, diff)
		}
		if diff := cmp.Diff(tt.wantCols, cols); diff != "" {
			t.Errorf("%s cols mismatch (-want +got):\n%s", tt.dir, diff)
		}
	}
}

func TestFarthest(t *testing.T) {
	w := newWorkGrid(BoardFromGrid([][]int{
		{2, 0, 0, 4},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{8, 0, 0, 0},
	}))

	far, blocker, ok := w.farthest(Pos{0, 3}, 0, -1)
	if far != (Pos{0, 1}) || !ok || blocker != (Pos{0, 0}) {
		t.Errorf("farthest left from (0,3) = %v, %v, %v; want (0,1), (0,0), true", far, blocker, ok)
	}

	far, _, ok = w.farthest(Pos{0, 3}, 1, 0)
	if far != (Pos{3, 3}) || ok {
		t.Errorf("farthest down from (0,3) = %v, %v; want (3,3) with no blocker", far, ok)
	}

	far, blocker, ok = w.farthest(Pos{0, 0}, 1, 0)
	if far != (Pos{2, 0}) || !ok || blocker != (Pos{3, 0}) {
		t.Errorf("farthest down from (0,0) = %v, %v, %v; want (2,0), (3,0), true", far, blocker, ok)
	}
}

// TestRandomPlayInvariants drives many seeded games and checks the
// properties every transition must hold.
func TestRandomPlayInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		e := NewEngine(DefaultRules(), rng)
		s, _ := e.Reset(0)

		for step := 0; step < 400 && !s.GameOver && !s.Won; step++ {
			dir := Directions[rng.Intn(len(Directions))]
			next, events, moved := e.ApplyMove(s, dir)

			if !moved {
				if len(events) != 0 {
					t.Fatalf("seed %d step %d: no-op move produced %d events", seed, step, len(events))
				}
				continue
			}

			if err := next.Board.Validate(); err != nil {
				t.Fatalf("seed %d step %d: %v", seed, step, err)
			}

			spawned := 0
			survivors := make(map[int]bool)
			removed := make(map[int]bool)
			for _, ev := range events {
				switch ev.Kind {
				case EventSpawn:
					spawned += ev.Value
					if ev.TileID != s.Board.NextID() {
						t.Fatalf("seed %d step %d: spawn id %d, want %d", seed, step, ev.TileID, s.Board.NextID())
					}
				case EventMerge:
					if survivors[ev.TileID] || removed[ev.RemovedID] || removed[ev.TileID] || survivors[ev.RemovedID] {
						t.Fatalf("seed %d step %d: tile merged twice in one move: %+v", seed, step, ev)
					}
					survivors[ev.TileID] = true
					removed[ev.RemovedID] = true
				}
			}

			// Merges conserve value; only the spawn adds to the total
			if next.Board.Sum() != s.Board.Sum()+spawned {
				t.Fatalf("seed %d step %d: sum %d, want %d", seed, step, next.Board.Sum(), s.Board.Sum()+spawned)
			}
			if next.Score != s.Score+mergeScore(events) {
				t.Fatalf("seed %d step %d: score %d, want %d", seed, step, next.Score, s.Score+mergeScore(events))
			}
			if next.BestScore < s.BestScore || next.BestScore < next.Score {
				t.Fatalf("seed %d step %d: best score %d regressed", seed, step, next.BestScore)
			}
			if next.GameOver != IsTerminal(next.Board) {
				t.Fatalf("seed %d step %d: GameOver=%v disagrees with IsTerminal", seed, step, next.GameOver)
			}
			for id := range removed {
				if _, ok := findTile(next.Board, id); ok {
					t.Fatalf("seed %d step %d: removed tile %d still on board", seed, step, id)
				}
			}

			s = next
		}
	}
}

func findTile(b Board, id int) (Tile, bool) {
	for _, t := range b.Tiles() {
		if t.ID == id {
			return t, true
		}
	}
	return Tile{}, false
}

package t2048

// Rand is the random source used for spawning. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// State is the complete state of one game.
type State struct {
	Board     Board
	Score     int
	BestScore int
	GameOver  bool
	Won       bool
}

// Engine computes board transitions. It holds no game state between calls;
// only the injected random source advances.
type Engine struct {
	rules Rules
	rng   Rand
}

// NewEngine creates an engine with the given rules and random source.
func NewEngine(rules Rules, rng Rand) *Engine {
	return &Engine{rules: rules.normalized(), rng: rng}
}

// Rules returns the rules in effect.
func (e *Engine) Rules() Rules {
	return e.rules
}

// SpawnRandomTile places a 2 (or a 4 with probability Spawn4Prob) on a
// uniformly chosen empty cell. A full board is returned unchanged with ok=false.
func (e *Engine) SpawnRandomTile(b Board) (Board, Event, bool) {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return b, Event{}, false
	}

	cell := empty[e.rng.Intn(len(empty))]

	value := 2
	if e.rng.Float64() < e.rules.Spawn4Prob {
		value = 4
	}

	t := Tile{ID: b.nextID, Value: value, Row: cell.Row, Col: cell.Col}
	return b.withTile(t), SpawnEvent(t), true
}

// Reset starts a new game, carrying over the previous best score.
func (e *Engine) Reset(previousBest int) (State, []Event) {
	board := NewBoard(e.rules.Size)

	count := e.rules.StartTilesMin
	if span := e.rules.StartTilesMax - e.rules.StartTilesMin; span > 0 {
		count += e.rng.Intn(span + 1)
	}

	events := make([]Event, 0, count)
	for range count {
		var ev Event
		var ok bool
		board, ev, ok = e.SpawnRandomTile(board)
		if ok {
			events = append(events, ev)
		}
	}

	return State{Board: board, BestScore: previousBest}, events
}

// ApplyMove slides every tile toward dir, merging equal neighbours once per
// move. When nothing moves the input state is returned unchanged with no
// events. Finished games (GameOver or Won) never move.
func (e *Engine) ApplyMove(s State, dir Direction) (State, []Event, bool) {
	if s.GameOver || s.Won {
		return s, nil, false
	}

	w := newWorkGrid(s.Board)
	dr, dc := dir.Vector()
	rows, cols := traversals(w.size, dir)

	next := s
	var events []Event
	moved := false

	for _, r := range rows {
		for _, c := range cols {
			idx := w.cells[r][c]
			if idx < 0 {
				continue
			}
			origin := Pos{Row: r, Col: c}
			farthest, blocker, hasBlocker := w.farthest(origin, dr, dc)

			if hasBlocker {
				ti := w.cells[blocker.Row][blocker.Col]
				src, dst := &w.tiles[idx], &w.tiles[ti]
				if dst.Value == src.Value && !w.merged[ti] && !w.merged[idx] {
					dst.Value *= 2
					w.merged[ti] = true
					w.removed[idx] = true
					w.cells[r][c] = -1

					next.Score += dst.Value
					if dst.Value == e.rules.Target {
						next.Won = true
					}
					events = append(events, MergeEvent(*dst, *src, origin))
					moved = true
					continue
				}
			}

			if farthest != origin {
				w.cells[r][c] = -1
				w.cells[farthest.Row][farthest.Col] = idx
				w.tiles[idx].Row, w.tiles[idx].Col = farthest.Row, farthest.Col
				events = append(events, SlideEvent(w.tiles[idx], origin))
				moved = true
			}
		}
	}

	if !moved {
		return s, nil, false
	}

	board := w.board()
	if spawned, ev, ok := e.SpawnRandomTile(board); ok {
		board = spawned
		events = append(events, ev)
	}

	next.Board = board
	next.GameOver = IsTerminal(board)
	next.BestScore = max(s.BestScore, next.Score)
	return next, events, true
}

// workGrid is the per-move scratch view: a copy of the tiles plus a cell
// index rebuilt from them. It never outlives one ApplyMove call.
type workGrid struct {
	size    int
	nextID  int
	tiles   []Tile
	cells   [][]int // index into tiles, -1 when empty
	merged  []bool  // produced by a merge this move
	removed []bool  // absorbed by a merge this move
}

func newWorkGrid(b Board) *workGrid {
	w := &workGrid{
		size:    b.size,
		nextID:  b.nextID,
		tiles:   b.Tiles(),
		cells:   make([][]int, b.size),
		merged:  make([]bool, len(b.tiles)),
		removed: make([]bool, len(b.tiles)),
	}
	for r := range w.cells {
		w.cells[r] = make([]int, b.size)
		for c := range w.cells[r] {
			w.cells[r][c] = -1
		}
	}
	for i, t := range w.tiles {
		w.cells[t.Row][t.Col] = i
	}
	return w
}

func (w *workGrid) inBounds(p Pos) bool {
	return p.Row >= 0 && p.Row < w.size && p.Col >= 0 && p.Col < w.size
}

// farthest walks from origin along (dr, dc) across empty cells. It returns
// the last empty cell reached (origin if none) and the first occupied cell
// beyond it, when one exists before the edge.
func (w *workGrid) farthest(origin Pos, dr, dc int) (far, blocker Pos, hasBlocker bool) {
	far = origin
	cur := Pos{Row: origin.Row + dr, Col: origin.Col + dc}
	for w.inBounds(cur) && w.cells[cur.Row][cur.Col] < 0 {
		far = cur
		cur = Pos{Row: cur.Row + dr, Col: cur.Col + dc}
	}
	if w.inBounds(cur) {
		return far, cur, true
	}
	return far, Pos{}, false
}

func (w *workGrid) board() Board {
	b := Board{size: w.size, nextID: w.nextID}
	b.tiles = make([]Tile, 0, len(w.tiles))
	for i, t := range w.tiles {
		if !w.removed[i] {
			b.tiles = append(b.tiles, t)
		}
	}
	return b
}

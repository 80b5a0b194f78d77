package t2048

import (
	"fmt"
	"sort"
)

// Pos is a cell position on the board.
type Pos struct {
	Row, Col int
}

// Tile is a live tile with a persistent identity.
type Tile struct {
	ID    int
	Value int
	Row   int
	Col   int
}

// Pos returns the tile's cell.
func (t Tile) Pos() Pos {
	return Pos{Row: t.Row, Col: t.Col}
}

// Board is an immutable snapshot of the grid. The tile list is the single
// source of truth; the cell grid is derived from it on demand.
type Board struct {
	size   int
	tiles  []Tile // sorted by ID
	nextID int
}

// NewBoard returns an empty board of the given size.
func NewBoard(size int) Board {
	return Board{size: size}
}

// BoardFromTiles builds a board from explicit tiles. nextID must be greater
// than every tile ID. The result is not validated; call Validate when the
// tiles come from outside the engine.
func BoardFromTiles(size int, tiles []Tile, nextID int) Board {
	b := Board{size: size, nextID: nextID}
	b.tiles = append([]Tile(nil), tiles...)
	sortTiles(b.tiles)
	return b
}

// BoardFromGrid builds a board from a value grid, assigning IDs in row-major
// order. Zero means empty. Useful for fixtures and restoring value-only saves.
func BoardFromGrid(grid [][]int) Board {
	b := Board{size: len(grid)}
	for r, row := range grid {
		for c, v := range row {
			if v == 0 {
				continue
			}
			b.tiles = append(b.tiles, Tile{ID: b.nextID, Value: v, Row: r, Col: c})
			b.nextID++
		}
	}
	return b
}

// Size returns the board dimension.
func (b Board) Size() int {
	return b.size
}

// NextID returns the ID the next spawned tile will receive.
func (b Board) NextID() int {
	return b.nextID
}

// Tiles returns a copy of the live tiles ordered by ID.
func (b Board) Tiles() []Tile {
	return append([]Tile(nil), b.tiles...)
}

// TileCount returns the number of live tiles.
func (b Board) TileCount() int {
	return len(b.tiles)
}

// TileAt returns the tile occupying (row, col), if any.
func (b Board) TileAt(row, col int) (Tile, bool) {
	for _, t := range b.tiles {
		if t.Row == row && t.Col == col {
			return t, true
		}
	}
	return Tile{}, false
}

// ValueAt returns the value at (row, col), or 0 for an empty cell.
func (b Board) ValueAt(row, col int) int {
	t, ok := b.TileAt(row, col)
	if !ok {
		return 0
	}
	return t.Value
}

// Grid returns the derived value grid, 0 marking empty cells.
func (b Board) Grid() [][]int {
	grid := make([][]int, b.size)
	for r := range grid {
		grid[r] = make([]int, b.size)
	}
	for _, t := range b.tiles {
		if b.InBounds(t.Row, t.Col) {
			grid[t.Row][t.Col] = t.Value
		}
	}
	return grid
}

// InBounds reports whether (row, col) lies on the board.
func (b Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.size && col >= 0 && col < b.size
}

// EmptyCells returns all empty cells in row-major order.
func (b Board) EmptyCells() []Pos {
	grid := b.Grid()
	var cells []Pos
	for r := range b.size {
		for c := range b.size {
			if grid[r][c] == 0 {
				cells = append(cells, Pos{Row: r, Col: c})
			}
		}
	}
	return cells
}

// MaxTile returns the maximum tile value on the board.
func (b Board) MaxTile() int {
	maxVal := 0
	for _, t := range b.tiles {
		if t.Value > maxVal {
			maxVal = t.Value
		}
	}
	return maxVal
}

// Sum returns the total of all tile values.
func (b Board) Sum() int {
	total := 0
	for _, t := range b.tiles {
		total += t.Value
	}
	return total
}

// Validate checks that the tile set describes a consistent grid.
func (b Board) Validate() error {
	if b.size < 1 || b.size > MaxSize {
		return fmt.Errorf("t2048: invalid board size %d", b.size)
	}

	seenID := make(map[int]bool, len(b.tiles))
	seenCell := make(map[Pos]int, len(b.tiles))
	for _, t := range b.tiles {
		if !b.InBounds(t.Row, t.Col) {
			return fmt.Errorf("t2048: tile %d out of bounds at (%d,%d)", t.ID, t.Row, t.Col)
		}
		if t.Value < 2 || !isPowerOfTwo(t.Value) {
			return fmt.Errorf("t2048: tile %d has invalid value %d", t.ID, t.Value)
		}
		if t.ID < 0 || t.ID >= b.nextID {
			return fmt.Errorf("t2048: tile id %d outside allocated range [0,%d)", t.ID, b.nextID)
		}
		if seenID[t.ID] {
			return fmt.Errorf("t2048: duplicate tile id %d", t.ID)
		}
		seenID[t.ID] = true
		if other, ok := seenCell[t.Pos()]; ok {
			return fmt.Errorf("t2048: tiles %d and %d share cell (%d,%d)", other, t.ID, t.Row, t.Col)
		}
		seenCell[t.Pos()] = t.ID
	}
	return nil
}

// HasEmptyCell returns true if there's at least one empty cell.
func (b Board) HasEmptyCell() bool {
	return len(b.tiles) < b.size*b.size
}

// HasPossibleMerge returns true if any adjacent tiles can merge.
func (b Board) HasPossibleMerge() bool {
	grid := b.Grid()
	for r := range b.size {
		for c := range b.size {
			val := grid[r][c]
			if val == 0 {
				continue
			}
			// Check right neighbor
			if c < b.size-1 && grid[r][c+1] == val {
				return true
			}
			// Check bottom neighbor
			if r < b.size-1 && grid[r+1][c] == val {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any move is possible.
func (b Board) CanMove() bool {
	return b.HasEmptyCell() || b.HasPossibleMerge()
}

// IsTerminal reports a full board with no horizontally or vertically
// adjacent equal pair. Always recomputed from the whole grid.
func IsTerminal(b Board) bool {
	return !b.CanMove()
}

// withTile returns a copy of b with t added and nextID advanced past it.
func (b Board) withTile(t Tile) Board {
	out := Board{size: b.size, nextID: b.nextID}
	out.tiles = make([]Tile, 0, len(b.tiles)+1)
	out.tiles = append(out.tiles, b.tiles...)
	out.tiles = append(out.tiles, t)
	sortTiles(out.tiles)
	if t.ID >= out.nextID {
		out.nextID = t.ID + 1
	}
	return out
}

func sortTiles(tiles []Tile) {
	sort.Slice(tiles, func(i, j int) bool {
		return tiles[i].ID < tiles[j].ID
	})
}

package t2048

import "fmt"

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirRight
	DirDown
	DirLeft
)

// Directions lists every direction in clockwise order.
var Directions = []Direction{DirUp, DirRight, DirDown, DirLeft}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirRight:
		return "right"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "unknown"
	}
}

// ParseDirection accepts exactly "up", "right", "down" and "left".
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("t2048: unknown direction %q", s)
}

// Vector returns the unit step (dRow, dCol) for the direction.
func (d Direction) Vector() (int, int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirRight:
		return 0, 1
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	default:
		return 0, 0
	}
}

// traversals returns the row and column visiting order for a move.
// Tiles nearest the edge they move toward are processed first.
func traversals(size int, d Direction) (rows, cols []int) {
	rows = make([]int, size)
	cols = make([]int, size)
	for i := range size {
		rows[i] = i
		cols[i] = i
	}

	if d == DirRight {
		reverse(cols)
	}
	if d == DirDown {
		reverse(rows)
	}
	return rows, cols
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

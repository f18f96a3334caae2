// Package tetris implements the falling-block simulation that drives the
// jigsaw unlocks: board, pieces, line clears, scoring and gravity timing.
// The package is pure and deterministic for a given seed.
package tetris

import "github.com/vovakirdan/jigsaw-tetris/internal/core"

// Kind identifies a tetromino. The zero value marks an empty board cell.
type Kind uint8

const (
	KindNone Kind = iota
	KindI
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// Kinds lists the seven tetrominoes in catalog order.
var Kinds = [...]Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}

// String returns the tetromino letter.
func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindO:
		return "O"
	case KindT:
		return "T"
	case KindS:
		return "S"
	case KindZ:
		return "Z"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	default:
		return "."
	}
}

// Color returns the display color for the kind.
func (k Kind) Color() core.Color {
	switch k {
	case KindI:
		return core.ColorCyan
	case KindO:
		return core.ColorYellow
	case KindT:
		return core.ColorPurple
	case KindS:
		return core.ColorGreen
	case KindZ:
		return core.ColorRed
	case KindJ:
		return core.ColorBlue
	case KindL:
		return core.ColorOrange
	default:
		return core.ColorDefault
	}
}

// Shape is a rectangular occupancy matrix indexed [row][col].
type Shape [][]bool

// catalog holds the spawn orientation of every tetromino.
var catalog = map[Kind]Shape{
	KindI: parseShape("XXXX"),
	KindO: parseShape("XX", "XX"),
	KindT: parseShape(".X.", "XXX"),
	KindS: parseShape(".XX", "XX."),
	KindZ: parseShape("XX.", ".XX"),
	KindJ: parseShape("X..", "XXX"),
	KindL: parseShape("..X", "XXX"),
}

// parseShape builds a shape from rows where 'X' marks an occupied cell.
func parseShape(rows ...string) Shape {
	s := make(Shape, len(rows))
	for y, row := range rows {
		s[y] = make([]bool, len(row))
		for x, ch := range row {
			s[y][x] = ch == 'X'
		}
	}
	return s
}

// ShapeOf returns a fresh copy of the spawn shape for k.
// Returns nil for KindNone.
func ShapeOf(k Kind) Shape {
	s, ok := catalog[k]
	if !ok {
		return nil
	}
	return s.Clone()
}

// Width returns the number of columns.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the number of rows.
func (s Shape) Height() int {
	return len(s)
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	c := make(Shape, len(s))
	for y := range s {
		c[y] = append([]bool(nil), s[y]...)
	}
	return c
}

// Equal reports whether both shapes have the same dimensions and cells.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for y := range s {
		if len(s[y]) != len(other[y]) {
			return false
		}
		for x := range s[y] {
			if s[y][x] != other[y][x] {
				return false
			}
		}
	}
	return true
}

// Rotate returns the shape turned 90° clockwise.
// It transposes the matrix and reverses each row, so a shape of h rows and
// w columns becomes w rows and h columns.
func (s Shape) Rotate() Shape {
	h, w := s.Height(), s.Width()
	rotated := make(Shape, w)
	for y := range rotated {
		rotated[y] = make([]bool, h)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			rotated[x][h-1-y] = s[y][x]
		}
	}
	return rotated
}

// Cells returns the occupied (x, y) offsets of the shape in row-major order.
func (s Shape) Cells() [][2]int {
	var cells [][2]int
	for y, row := range s {
		for x, filled := range row {
			if filled {
				cells = append(cells, [2]int{x, y})
			}
		}
	}
	return cells
}

// Piece is a tetromino placed on the board at anchor (X, Y), the position
// of the shape's top-left corner.
type Piece struct {
	Kind  Kind
	Shape Shape
	X, Y  int
}

// moved returns a copy of p with the anchor shifted.
func (p Piece) moved(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

package tetris

// Board dimensions in cells.
const (
	BoardWidth  = 10
	BoardHeight = 20
)

// Board holds locked blocks indexed [row][col]; row 0 is the visible top.
// It is a value type so snapshots can copy it freely.
type Board [BoardHeight][BoardWidth]Kind

// Cell returns the kind locked at (x, y), or KindNone when out of bounds.
func (b Board) Cell(x, y int) Kind {
	if x < 0 || x >= BoardWidth || y < 0 || y >= BoardHeight {
		return KindNone
	}
	return b[y][x]
}

// IsValidPlacement reports whether shape fits with its top-left corner at
// (x, y). Every occupied cell must land in a column inside the board and a
// row above the floor; rows above the visible top are allowed so pieces can
// spawn partially off-board. Cells on visible rows must be empty.
func (b Board) IsValidPlacement(shape Shape, x, y int) bool {
	for sy, row := range shape {
		for sx, filled := range row {
			if !filled {
				continue
			}

			bx := x + sx
			by := y + sy

			if bx < 0 || bx >= BoardWidth || by >= BoardHeight {
				return false
			}
			if by >= 0 && b[by][bx] != KindNone {
				return false
			}
		}
	}
	return true
}

// Lock writes the piece's occupied cells into the board.
// Cells above the visible top are dropped.
func (b *Board) Lock(p Piece) {
	for sy, row := range p.Shape {
		for sx, filled := range row {
			if !filled {
				continue
			}
			bx, by := p.X+sx, p.Y+sy
			if by < 0 || by >= BoardHeight || bx < 0 || bx >= BoardWidth {
				continue
			}
			b[by][bx] = p.Kind
		}
	}
}

// rowFull reports whether every cell of row y is occupied.
func (b *Board) rowFull(y int) bool {
	for x := range BoardWidth {
		if b[y][x] == KindNone {
			return false
		}
	}
	return true
}

// ClearFullLines removes every full row, shifts the remaining rows down in
// their original order and fills the top with empty rows.
// Returns the number of rows removed.
func (b *Board) ClearFullLines() int {
	write := BoardHeight - 1
	for read := BoardHeight - 1; read >= 0; read-- {
		if b.rowFull(read) {
			continue
		}
		if write != read {
			b[write] = b[read]
		}
		write--
	}

	cleared := write + 1
	for y := 0; y < cleared; y++ {
		b[y] = [BoardWidth]Kind{}
	}
	return cleared
}

// FilledCells returns the number of occupied cells.
func (b Board) FilledCells() int {
	n := 0
	for y := range BoardHeight {
		for x := range BoardWidth {
			if b[y][x] != KindNone {
				n++
			}
		}
	}
	return n
}

// String renders the board as rows of kind letters, '.' for empty cells.
func (b Board) String() string {
	buf := make([]byte, 0, BoardHeight*(BoardWidth+1))
	for y := range BoardHeight {
		if y > 0 {
			buf = append(buf, '\n')
		}
		for x := range BoardWidth {
			buf = append(buf, b[y][x].String()...)
		}
	}
	return string(buf)
}

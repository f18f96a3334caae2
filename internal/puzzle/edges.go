package puzzle

// Edges records which sides of a piece carry an outward tab.
// The layout depends only on the slot.
type Edges struct {
	Top, Right, Bottom, Left bool
}

// EdgesAt returns the tab layout of the piece whose home is s.
func EdgesAt(s Slot) Edges {
	sum := s.Row + s.Col
	return Edges{
		Top:    s.Row > 0 && sum%3 == 0,
		Right:  s.Col < Cols-1 && sum%3 == 1,
		Bottom: s.Row < Rows-1 && sum%3 == 2,
		Left:   s.Col > 0 && sum%2 == 0,
	}
}

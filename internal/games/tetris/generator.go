package tetris

import "math/rand"

// Generator draws pieces uniformly and independently from the seven
// tetrominoes. There is no bag: the same kind may come up any number of
// times in a row.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator seeded for reproducible sequences.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Next returns a new piece at the top row, horizontally centered.
func (g *Generator) Next() Piece {
	return Spawn(Kinds[g.rng.Intn(len(Kinds))])
}

// Spawn instantiates a piece of kind k at its spawn position:
// row 0 and column BoardWidth/2 - shapeWidth/2.
func Spawn(k Kind) Piece {
	shape := ShapeOf(k)
	return Piece{
		Kind:  k,
		Shape: shape,
		X:     BoardWidth/2 - shape.Width()/2,
		Y:     0,
	}
}

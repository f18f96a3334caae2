// Package puzzle tracks the jigsaw meta-game: cleared Tetris blocks unlock
// pieces, pieces are placed into their home slot, and a completed puzzle
// reveals a character and moves on to the next one in the collection.
package puzzle

import (
	"fmt"

	"github.com/vovakirdan/jigsaw-tetris/internal/core"
)

// Grid geometry and unlock rate.
const (
	Rows           = 4
	Cols           = 6
	PieceCount     = Rows * Cols
	BlocksPerPiece = 7
)

// Slot is a grid position.
type Slot struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// HomeSlot returns the only slot piece id can be placed in.
func HomeSlot(id int) Slot {
	return Slot{Row: id / Cols, Col: id % Cols}
}

// Piece is one jigsaw piece. Position is always the piece's home slot.
type Piece struct {
	ID       int  `json:"id"`
	Unlocked bool `json:"unlocked"`
	Position Slot `json:"position"`
	Placed   bool `json:"placed"`
}

// Progress is the persisted state of the meta-game.
type Progress struct {
	Pieces             []Piece `json:"pieces"`
	TotalBlocks        int     `json:"totalBlocks"`
	CurrentPuzzleIndex int     `json:"currentPuzzleIndex"`
	CompletedPuzzles   int     `json:"completedPuzzles"`
}

// NewProgress returns progress with every piece locked.
func NewProgress() Progress {
	return Progress{Pieces: freshPieces()}
}

func freshPieces() []Piece {
	pieces := make([]Piece, PieceCount)
	for i := range pieces {
		pieces[i] = Piece{ID: i, Position: HomeSlot(i)}
	}
	return pieces
}

// Validate checks that a loaded document describes a well-formed puzzle.
func (p Progress) Validate() error {
	if len(p.Pieces) != PieceCount {
		return fmt.Errorf("%w: %d pieces", ErrInvalidProgress, len(p.Pieces))
	}
	for i, pc := range p.Pieces {
		if pc.ID != i || pc.Position != HomeSlot(i) {
			return fmt.Errorf("%w: piece %d out of order", ErrInvalidProgress, i)
		}
		if pc.Placed && !pc.Unlocked {
			return fmt.Errorf("%w: piece %d placed while locked", ErrInvalidProgress, i)
		}
	}
	if p.TotalBlocks < 0 || p.CurrentPuzzleIndex < 0 || p.CompletedPuzzles < 0 {
		return fmt.Errorf("%w: negative counter", ErrInvalidProgress)
	}
	return nil
}

// ProgressStore persists progress per player profile.
// LoadProgress reports found=false when the profile has no saved progress.
type ProgressStore interface {
	SaveProgress(profile string, p Progress) error
	LoadProgress(profile string) (p Progress, found bool, err error)
}

// Unlock describes the pieces unlocked by one AddBlocks call.
type Unlock struct {
	New      int // Pieces unlocked by this call
	Unlocked int // Pieces unlocked in total
	Puzzle   int // 1-based puzzle number
}

// Message returns the player-facing unlock notice.
func (u Unlock) Message() string {
	noun := "piece"
	if u.New != 1 {
		noun = "pieces"
	}
	return fmt.Sprintf("You received %d new jigsaw %s! You now have %d/%d pieces for Puzzle #%d. Open the puzzle board to assemble them!",
		u.New, noun, u.Unlocked, PieceCount, u.Puzzle)
}

// Rank is a title awarded for the share of unlocked pieces already placed.
type Rank struct {
	Title string
	Color core.Color
}

// Tracker applies the meta-game rules to a Progress document.
// It is not safe for concurrent use.
type Tracker struct {
	progress   Progress
	collection []Character
}

// NewTracker creates a tracker with fresh progress.
// An empty collection falls back to DefaultCollection.
func NewTracker(collection []Character) *Tracker {
	if len(collection) == 0 {
		collection = DefaultCollection()
	}
	return &Tracker{
		progress:   NewProgress(),
		collection: append([]Character(nil), collection...),
	}
}

// Restore replaces the tracker state with a saved document.
// The puzzle index wraps when the collection has shrunk since saving.
func (t *Tracker) Restore(p Progress) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.Pieces = append([]Piece(nil), p.Pieces...)
	p.CurrentPuzzleIndex = core.Wrap(p.CurrentPuzzleIndex, len(t.collection))
	t.progress = p
	return nil
}

// Progress returns a copy of the current state.
func (t *Tracker) Progress() Progress {
	p := t.progress
	p.Pieces = append([]Piece(nil), p.Pieces...)
	return p
}

// Collection returns the characters in unlock order.
func (t *Tracker) Collection() []Character {
	return append([]Character(nil), t.collection...)
}

// Character returns the character of the current puzzle.
func (t *Tracker) Character() Character {
	return t.collection[t.progress.CurrentPuzzleIndex]
}

// PuzzleNumber returns the 1-based number of the current puzzle.
func (t *Tracker) PuzzleNumber() int {
	return t.progress.CurrentPuzzleIndex + 1
}

// TotalBlocks returns the blocks cleared towards the current puzzle.
func (t *Tracker) TotalBlocks() int {
	return t.progress.TotalBlocks
}

// CompletedPuzzles returns how many puzzles have been finished.
func (t *Tracker) CompletedPuzzles() int {
	return t.progress.CompletedPuzzles
}

// AddBlocks credits cleared blocks. Every BlocksPerPiece blocks unlock the
// next piece in id order, up to PieceCount.
func (t *Tracker) AddBlocks(n int) Unlock {
	if n > 0 {
		t.progress.TotalBlocks += n
	}
	target := min(t.progress.TotalBlocks/BlocksPerPiece, PieceCount)

	fresh := 0
	for i := 0; i < target; i++ {
		if !t.progress.Pieces[i].Unlocked {
			t.progress.Pieces[i].Unlocked = true
			fresh++
		}
	}

	return Unlock{New: fresh, Unlocked: t.UnlockedCount(), Puzzle: t.PuzzleNumber()}
}

// BlocksToNextPiece returns how many more blocks unlock another piece,
// or 0 when every piece is unlocked.
func (t *Tracker) BlocksToNextPiece() int {
	if t.UnlockedCount() >= PieceCount {
		return 0
	}
	return BlocksPerPiece - t.progress.TotalBlocks%BlocksPerPiece
}

// Place puts piece id into the given slot. Only the piece's home slot is
// accepted. Placing the last piece completes the puzzle.
func (t *Tracker) Place(id int, s Slot) error {
	if id < 0 || id >= len(t.progress.Pieces) {
		return fmt.Errorf("%w: %d", ErrUnknownPiece, id)
	}
	pc := &t.progress.Pieces[id]
	switch {
	case !pc.Unlocked:
		return fmt.Errorf("%w: %d", ErrPieceLocked, id)
	case pc.Placed:
		return fmt.Errorf("%w: %d", ErrPiecePlaced, id)
	case pc.Position != s:
		return fmt.Errorf("%w: piece %d at (%d,%d)", ErrWrongSlot, id, s.Row, s.Col)
	}

	pc.Placed = true
	if t.Complete() {
		t.progress.CompletedPuzzles++
	}
	return nil
}

// Complete reports whether every piece is unlocked and placed.
func (t *Tracker) Complete() bool {
	for _, pc := range t.progress.Pieces {
		if !pc.Unlocked || !pc.Placed {
			return false
		}
	}
	return true
}

// NextPuzzle starts the next character's puzzle. The current puzzle must be
// complete. Blocks cleared beyond the last unlock do not carry over.
func (t *Tracker) NextPuzzle() error {
	if !t.Complete() {
		return ErrPuzzleIncomplete
	}
	t.progress.Pieces = freshPieces()
	t.progress.TotalBlocks = 0
	t.progress.CurrentPuzzleIndex = (t.progress.CurrentPuzzleIndex + 1) % len(t.collection)
	return nil
}

// Piece returns the piece with the given id.
func (t *Tracker) Piece(id int) (Piece, bool) {
	if id < 0 || id >= len(t.progress.Pieces) {
		return Piece{}, false
	}
	return t.progress.Pieces[id], true
}

// PieceAt returns the piece whose home is the given slot.
func (t *Tracker) PieceAt(s Slot) (Piece, bool) {
	if s.Row < 0 || s.Row >= Rows || s.Col < 0 || s.Col >= Cols {
		return Piece{}, false
	}
	return t.Piece(s.Row*Cols + s.Col)
}

// Tray returns unlocked pieces that are not placed yet, in id order.
func (t *Tracker) Tray() []Piece {
	var out []Piece
	for _, pc := range t.progress.Pieces {
		if pc.Unlocked && !pc.Placed {
			out = append(out, pc)
		}
	}
	return out
}

// UnlockedCount returns the number of unlocked pieces.
func (t *Tracker) UnlockedCount() int {
	n := 0
	for _, pc := range t.progress.Pieces {
		if pc.Unlocked {
			n++
		}
	}
	return n
}

// PlacedCount returns the number of placed pieces.
func (t *Tracker) PlacedCount() int {
	n := 0
	for _, pc := range t.progress.Pieces {
		if pc.Placed {
			n++
		}
	}
	return n
}

// CompletionPercent returns placed pieces as a percentage of unlocked ones.
func (t *Tracker) CompletionPercent() float64 {
	unlocked := t.UnlockedCount()
	if unlocked == 0 {
		return 0
	}
	return float64(t.PlacedCount()) / float64(unlocked) * 100
}

// Rank returns the title for the current completion percentage.
func (t *Tracker) Rank() Rank {
	return RankFor(t.CompletionPercent())
}

// RankFor returns the title for a completion percentage.
func RankFor(percent float64) Rank {
	switch {
	case percent <= 0:
		return Rank{"Pokémon Trainer", core.ColorGray}
	case percent < 25:
		return Rank{"Puzzle Explorer", core.ColorBlue}
	case percent < 50:
		return Rank{"Jigsaw Specialist", core.ColorGreen}
	case percent < 75:
		return Rank{"Puzzle Master", core.ColorPurple}
	case percent < 100:
		return Rank{"Legendary Assembler", core.ColorYellow}
	default:
		return Rank{"Pokémon Jigsaw Champion", core.ColorRed}
	}
}

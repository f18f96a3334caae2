package tetris

import "time"

// Snapshot captures the complete observable game state for rendering,
// determinism tests and replay.
type Snapshot struct {
	Tick         uint64
	State        State
	Board        Board // Locked cells with the active piece drawn in
	Active       Piece
	Next         Piece
	Score        int
	Level        int
	Lines        int
	Blocks       int
	DropInterval time.Duration
	Paused       bool
	GameOver     bool
}

// Snapshot returns the current engine state. The active piece is drawn into
// the board copy; its cells above the visible top are omitted.
func (e *Engine) Snapshot() Snapshot {
	board := e.board
	if !e.gameOver {
		board.Lock(e.active)
	}

	return Snapshot{
		State:        e.State(),
		Board:        board,
		Active:       e.Active(),
		Next:         e.Next(),
		Score:        e.progress.Score,
		Level:        e.progress.Level,
		Lines:        e.progress.Lines,
		Blocks:       e.progress.BlocksCleared,
		DropInterval: e.progress.DropInterval,
		Paused:       e.Paused(),
		GameOver:     e.gameOver,
	}
}

package tetris

import "time"

// State is the game loop state.
type State int

const (
	StateRunning State = iota
	StatePaused
	StateGameOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// LinesCleared is emitted once per lock that clears at least one line.
// Score and Level are the values after the award was applied.
type LinesCleared struct {
	Blocks int // Blocks removed by this lock (lines * BoardWidth)
	Lines  int // Cumulative lines cleared this game
	Score  int
	Level  int
}

// Engine owns the board, the active and next pieces and the progress record.
//
// Engine is not safe for concurrent use. The host serialises commands and
// ticks, which guarantees a command is never split by a gravity step.
type Engine struct {
	gen      *Generator
	board    Board
	active   Piece
	next     Piece
	progress Progress

	paused     bool // Pause()/Resume()
	hostPaused bool // pause signal owned by the host
	gameOver   bool

	sinceDrop time.Duration // time accumulated since the last gravity step
	listeners []func(LinesCleared)
}

// NewEngine creates an engine whose piece sequence is determined by seed.
func NewEngine(seed int64) *Engine {
	e := &Engine{gen: NewGenerator(seed)}
	e.reset()
	return e
}

// reset replaces all game state. Listeners and the host pause signal survive.
func (e *Engine) reset() {
	e.board = Board{}
	e.progress = NewProgress()
	e.paused = false
	e.gameOver = false
	e.sinceDrop = 0
	e.active = e.gen.Next()
	e.next = e.gen.Next()
}

// OnLinesCleared registers a listener for line-clear events.
// Listeners run synchronously after the engine state is fully updated, so
// they may query the engine or issue commands.
func (e *Engine) OnLinesCleared(fn func(LinesCleared)) {
	if fn != nil {
		e.listeners = append(e.listeners, fn)
	}
}

// canAct reports whether commands and gravity are currently allowed.
func (e *Engine) canAct() bool {
	return !e.gameOver && !e.paused && !e.hostPaused
}

// try replaces the active piece with candidate if it fits.
func (e *Engine) try(candidate Piece) bool {
	if !e.board.IsValidPlacement(candidate.Shape, candidate.X, candidate.Y) {
		return false
	}
	e.active = candidate
	return true
}

// MoveLeft shifts the active piece one column left.
func (e *Engine) MoveLeft() bool {
	if !e.canAct() {
		return false
	}
	return e.try(e.active.moved(-1, 0))
}

// MoveRight shifts the active piece one column right.
func (e *Engine) MoveRight() bool {
	if !e.canAct() {
		return false
	}
	return e.try(e.active.moved(1, 0))
}

// Rotate turns the active piece clockwise around its anchor.
// There is no kick search: a rotation that collides is rejected.
func (e *Engine) Rotate() bool {
	if !e.canAct() {
		return false
	}
	rotated := e.active
	rotated.Shape = e.active.Shape.Rotate()
	return e.try(rotated)
}

// SoftDrop moves the active piece one row down, awarding one point.
func (e *Engine) SoftDrop() bool {
	if !e.canAct() {
		return false
	}
	if !e.try(e.active.moved(0, 1)) {
		return false
	}
	e.progress = e.progress.addPoints(softDropPoints)
	return true
}

// HardDrop moves the active piece to the lowest row it can reach, awarding
// two points per row. The piece locks on the next gravity step.
// Returns false when the piece was already resting.
func (e *Engine) HardDrop() bool {
	if !e.canAct() {
		return false
	}
	d := e.DropDistance()
	if d == 0 {
		return false
	}
	e.active = e.active.moved(0, d)
	e.progress = e.progress.addPoints(d * hardDropRowPoints)
	return true
}

// DropDistance returns how many rows the active piece can still fall.
func (e *Engine) DropDistance() int {
	p := e.active
	d := 0
	for e.board.IsValidPlacement(p.Shape, p.X, p.Y+d+1) {
		d++
	}
	return d
}

// Pause sets the engine's own pause flag.
func (e *Engine) Pause() {
	e.paused = true
}

// Resume clears the engine's own pause flag.
// The game stays paused while the host pause signal is set.
func (e *Engine) Resume() {
	e.paused = false
}

// TogglePause flips the engine's own pause flag.
func (e *Engine) TogglePause() {
	e.paused = !e.paused
}

// SetHostPaused sets the external pause signal, e.g. while the host shows
// another screen on top of the game.
func (e *Engine) SetHostPaused(paused bool) {
	e.hostPaused = paused
}

// Restart begins a new game. It cannot fail.
func (e *Engine) Restart() {
	e.reset()
}

// Advance feeds elapsed wall-clock time into the loop. When the time since
// the last gravity step reaches the drop interval, one gravity step runs and
// the accumulator restarts from zero. Returns true if a step ran.
// Nothing accumulates while the game is paused or over.
//
// The overshoot past the interval is discarded, so with a fixed frame step
// the effective cadence rounds up to a whole number of frames: at 60 frames
// per second the 50ms minimum interval fires every fourth frame.
func (e *Engine) Advance(elapsed time.Duration) bool {
	if !e.canAct() {
		return false
	}
	e.sinceDrop += elapsed
	if e.sinceDrop < e.progress.DropInterval {
		return false
	}
	e.sinceDrop = 0
	e.gravity()
	return true
}

// Tick forces one gravity step regardless of elapsed time.
// Returns false when paused or over.
func (e *Engine) Tick() bool {
	if !e.canAct() {
		return false
	}
	e.sinceDrop = 0
	e.gravity()
	return true
}

// gravity moves the active piece one row down, or locks it when it rests.
func (e *Engine) gravity() {
	if e.try(e.active.moved(0, 1)) {
		return
	}
	e.lock()
}

// lock writes the active piece into the board, scores cleared lines and
// either spawns the next piece or ends the game. Listeners are notified
// after every field has been updated.
func (e *Engine) lock() {
	locked := e.active
	e.board.Lock(locked)

	n := e.board.ClearFullLines()
	e.progress = e.progress.clearLines(n)

	if locked.Y <= 0 {
		e.gameOver = true
	} else {
		e.active = e.next
		e.next = e.gen.Next()
	}

	if n == 0 {
		return
	}
	ev := LinesCleared{
		Blocks: n * BoardWidth,
		Lines:  e.progress.Lines,
		Score:  e.progress.Score,
		Level:  e.progress.Level,
	}
	for _, fn := range e.listeners {
		fn(ev)
	}
}

// State returns the loop state. Game over takes precedence over pause.
func (e *Engine) State() State {
	switch {
	case e.gameOver:
		return StateGameOver
	case e.paused || e.hostPaused:
		return StatePaused
	default:
		return StateRunning
	}
}

// Board returns a copy of the locked cells, without the active piece.
func (e *Engine) Board() Board {
	return e.board
}

// Active returns a copy of the falling piece.
func (e *Engine) Active() Piece {
	p := e.active
	p.Shape = p.Shape.Clone()
	return p
}

// Next returns a copy of the upcoming piece.
func (e *Engine) Next() Piece {
	p := e.next
	p.Shape = p.Shape.Clone()
	return p
}

// Progress returns the score record.
func (e *Engine) Progress() Progress {
	return e.progress
}

// Score returns the current score.
func (e *Engine) Score() int { return e.progress.Score }

// Level returns the current level.
func (e *Engine) Level() int { return e.progress.Level }

// Lines returns the cumulative lines cleared.
func (e *Engine) Lines() int { return e.progress.Lines }

// Paused reports whether either pause flag is set.
func (e *Engine) Paused() bool { return e.paused || e.hostPaused }

// GameOver reports whether the game has ended.
func (e *Engine) GameOver() bool { return e.gameOver }

package tetris

import (
	"testing"
	"time"
)

// newTestEngine returns an engine whose active piece is replaced by kind.
func newTestEngine(kind Kind) *Engine {
	e := NewEngine(1)
	e.active = Spawn(kind)
	return e
}

func TestIPieceHardDrop(t *testing.T) {
	e := newTestEngine(KindI)
	if e.active.X != 3 || e.active.Y != 0 {
		t.Fatalf("I spawned at (%d,%d), want (3,0)", e.active.X, e.active.Y)
	}

	if !e.HardDrop() {
		t.Fatal("HardDrop on empty board should apply")
	}
	if e.active.Y != 19 {
		t.Errorf("I landed at y=%d, want 19", e.active.Y)
	}
	if e.Score() != 38 {
		t.Errorf("Score = %d, want 38", e.Score())
	}
	if e.Board().FilledCells() != 0 {
		t.Error("hard drop must not lock by itself")
	}

	if !e.Tick() {
		t.Fatal("Tick should run while playing")
	}
	b := e.Board()
	for x := 3; x <= 6; x++ {
		if b.Cell(x, 19) != KindI {
			t.Errorf("cell (%d,19) = %v, want I", x, b.Cell(x, 19))
		}
	}
	if b.FilledCells() != 4 {
		t.Errorf("FilledCells = %d, want 4", b.FilledCells())
	}
	if e.GameOver() {
		t.Error("game should continue")
	}
}

func TestSingleLineCompletion(t *testing.T) {
	e := newTestEngine(KindI)
	fillRow(&e.board, 19, 3, 4, 5, 6)

	var events []LinesCleared
	e.OnLinesCleared(func(ev LinesCleared) {
		// The engine is fully updated when listeners run.
		if e.Score() != ev.Score || e.Lines() != ev.Lines {
			t.Errorf("listener saw stale engine state")
		}
		events = append(events, ev)
	})

	e.HardDrop()
	e.Tick()

	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	want := LinesCleared{Blocks: 10, Lines: 1, Score: 38 + 100, Level: 1}
	if events[0] != want {
		t.Errorf("event = %+v, want %+v", events[0], want)
	}
	if e.Board().FilledCells() != 0 {
		t.Errorf("board not empty after clear:\n%s", e.board.String())
	}
	if p := e.Progress(); p.BlocksCleared != 10 {
		t.Errorf("BlocksCleared = %d, want 10", p.BlocksCleared)
	}
}

func TestLineBuiltFromLockedPieces(t *testing.T) {
	e := NewEngine(7)

	var events []LinesCleared
	e.OnLinesCleared(func(ev LinesCleared) { events = append(events, ev) })

	drops := []struct {
		kind Kind
		x    int
	}{
		{KindI, 0},
		{KindI, 4},
		{KindO, 8},
	}
	for i, d := range drops {
		p := Spawn(d.kind)
		p.X = d.x
		e.active = p
		next := e.Next()

		if !e.HardDrop() {
			t.Fatalf("drop %d: hard drop rejected", i)
		}
		e.Tick()
		if e.GameOver() {
			t.Fatalf("drop %d: unexpected game over", i)
		}
		if e.active.Kind != next.Kind || e.active.Y != 0 {
			t.Errorf("drop %d: next piece not promoted", i)
		}
	}

	// Hard drops: 19 + 19 + 18 rows at two points each, then one line at level 1.
	score := 2*(19+19+18) + 100
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	want := LinesCleared{Blocks: 10, Lines: 1, Score: score, Level: 1}
	if events[0] != want {
		t.Errorf("event = %+v, want %+v", events[0], want)
	}

	b := e.Board()
	if b.FilledCells() != 2 {
		t.Fatalf("FilledCells = %d, want 2\n%s", b.FilledCells(), b.String())
	}
	if b.Cell(8, 19) != KindO || b.Cell(9, 19) != KindO {
		t.Errorf("upper half of O should drop to row 19:\n%s", b.String())
	}
}

func TestBoardQueriesOnCopies(t *testing.T) {
	e := newTestEngine(KindI)
	e.HardDrop()
	e.Tick()

	if n := e.Board().FilledCells(); n != 4 {
		t.Errorf("FilledCells on engine board = %d, want 4", n)
	}
	if e.Board().Cell(3, 19) != KindI {
		t.Error("Cell on engine board should see the locked piece")
	}
	if !e.Board().IsValidPlacement(ShapeOf(KindO), 0, 0) {
		t.Error("empty top-left corner should accept an O")
	}
	if n := e.Snapshot().Board.FilledCells(); n != 8 {
		t.Errorf("snapshot board has %d cells, want locked cells plus the active piece", n)
	}
}

func TestNoEventWithoutClear(t *testing.T) {
	e := newTestEngine(KindO)
	calls := 0
	e.OnLinesCleared(func(LinesCleared) { calls++ })

	e.HardDrop()
	e.Tick()
	if calls != 0 {
		t.Errorf("listener called %d times, want 0", calls)
	}
}

func TestGameOverAtTop(t *testing.T) {
	e := newTestEngine(KindO)
	e.board[2][4] = KindJ
	e.board[2][5] = KindJ

	e.Tick()
	if !e.GameOver() || e.State() != StateGameOver {
		t.Fatalf("expected game over, state %v", e.State())
	}

	before := e.Snapshot()
	if e.Tick() || e.Advance(time.Hour) {
		t.Error("no gravity step should run after game over")
	}
	if e.MoveLeft() || e.Rotate() || e.SoftDrop() || e.HardDrop() {
		t.Error("commands must be ignored after game over")
	}
	after := e.Snapshot()
	if after.Board != before.Board || after.Score != before.Score || after.Active.Y != before.Active.Y {
		t.Error("state changed after game over")
	}
}

func TestRestart(t *testing.T) {
	e := newTestEngine(KindO)
	e.board[2][4] = KindJ
	e.progress = e.progress.addPoints(1500)
	e.Tick()
	if !e.GameOver() {
		t.Fatal("setup: expected game over")
	}

	e.Restart()
	if e.Score() != 0 || e.Level() != 1 || e.Lines() != 0 {
		t.Errorf("after restart (score, level, lines) = (%d, %d, %d), want (0, 1, 0)",
			e.Score(), e.Level(), e.Lines())
	}
	if e.Board().FilledCells() != 0 {
		t.Error("board not empty after restart")
	}
	if e.GameOver() || e.State() != StateRunning {
		t.Errorf("state after restart = %v", e.State())
	}
	if e.Progress().DropInterval != InitialDropInterval {
		t.Errorf("DropInterval = %v", e.Progress().DropInterval)
	}
}

func TestRestartKeepsHostPause(t *testing.T) {
	e := NewEngine(3)
	e.Pause()
	e.SetHostPaused(true)
	e.Restart()

	if !e.Paused() {
		t.Error("host pause should survive restart")
	}
	e.SetHostPaused(false)
	if e.Paused() {
		t.Error("internal pause should be cleared by restart")
	}
}

func TestPauseGatesEverything(t *testing.T) {
	e := newTestEngine(KindT)
	e.Pause()

	if e.MoveLeft() || e.MoveRight() || e.Rotate() || e.SoftDrop() || e.HardDrop() {
		t.Error("commands must be ignored while paused")
	}
	if e.Advance(5*time.Second) || e.Tick() {
		t.Error("gravity must not run while paused")
	}
	if e.State() != StatePaused {
		t.Errorf("state = %v, want paused", e.State())
	}

	e.Resume()
	// Time spent paused was not accumulated.
	if e.Advance(999 * time.Millisecond) {
		t.Error("gravity fired before the interval elapsed")
	}
	if !e.Advance(time.Millisecond) {
		t.Error("gravity should fire once the interval is reached")
	}
	if e.active.Y != 1 {
		t.Errorf("active y = %d, want 1", e.active.Y)
	}
}

func TestHostPauseIndependentOfInternal(t *testing.T) {
	e := NewEngine(5)
	e.SetHostPaused(true)
	e.Resume()
	if !e.Paused() || e.MoveLeft() {
		t.Error("host pause must block commands even after Resume")
	}
	e.SetHostPaused(false)
	e.TogglePause()
	if !e.Paused() {
		t.Error("TogglePause should pause")
	}
	e.TogglePause()
	if e.Paused() {
		t.Error("TogglePause should resume")
	}
}

func TestAdvanceFiresOncePerCall(t *testing.T) {
	e := newTestEngine(KindO)
	if !e.Advance(10 * time.Second) {
		t.Fatal("expected a gravity step")
	}
	if e.active.Y != 1 {
		t.Errorf("active y = %d, want 1 (one step per call)", e.active.Y)
	}
	if e.Advance(500 * time.Millisecond) {
		t.Error("accumulator should restart after a step")
	}
}

func TestAdvanceCadenceAtMinimumInterval(t *testing.T) {
	e := newTestEngine(KindO)
	e.progress.DropInterval = MinDropInterval
	frame := time.Second / 60

	for i := 1; i <= 3; i++ {
		if e.Advance(frame) {
			t.Fatalf("gravity fired on frame %d", i)
		}
	}
	if !e.Advance(frame) {
		t.Fatal("gravity should fire on the fourth frame")
	}
	// The overshoot is dropped, so the next step again takes four frames.
	for i := 1; i <= 3; i++ {
		if e.Advance(frame) {
			t.Fatalf("second step fired early on frame %d", i)
		}
	}
	if !e.Advance(frame) || e.active.Y != 2 {
		t.Errorf("active y = %d after two steps, want 2", e.active.Y)
	}
}

func TestSoftDrop(t *testing.T) {
	e := newTestEngine(KindO)
	if !e.SoftDrop() || e.Score() != 1 || e.active.Y != 1 {
		t.Fatalf("soft drop: ok score=%d y=%d", e.Score(), e.active.Y)
	}

	e.active.Y = BoardHeight - 2
	score := e.Score()
	if e.SoftDrop() {
		t.Error("soft drop on the floor should be rejected")
	}
	if e.Score() != score {
		t.Error("rejected soft drop awarded points")
	}
	if e.HardDrop() {
		t.Error("hard drop of a resting piece should be rejected")
	}
}

func TestMoveAgainstWalls(t *testing.T) {
	e := newTestEngine(KindO)
	for e.MoveLeft() {
	}
	if e.active.X != 0 {
		t.Errorf("leftmost x = %d, want 0", e.active.X)
	}
	for e.MoveRight() {
	}
	if e.active.X != BoardWidth-2 {
		t.Errorf("rightmost x = %d, want %d", e.active.X, BoardWidth-2)
	}
}

func TestRotateWithoutKicks(t *testing.T) {
	e := newTestEngine(KindI)
	e.active.Shape = e.active.Shape.Rotate()
	e.active.X = BoardWidth - 1
	e.active.Y = 5

	if e.Rotate() {
		t.Error("rotation into the wall should be rejected")
	}
	if e.active.Shape.Width() != 1 || e.active.X != BoardWidth-1 {
		t.Error("rejected rotation changed the piece")
	}

	e.active.X = 3
	if !e.Rotate() {
		t.Error("rotation in open space should apply")
	}
	if e.active.Shape.Width() != 4 {
		t.Errorf("width after rotation = %d, want 4", e.active.Shape.Width())
	}
}

func TestLockPromotesNext(t *testing.T) {
	e := newTestEngine(KindO)
	next := e.Next()

	e.HardDrop()
	e.Tick()

	if e.active.Kind != next.Kind || e.active.Y != 0 {
		t.Errorf("active = %v at y=%d, want %v at y=0", e.active.Kind, e.active.Y, next.Kind)
	}
}

func TestSnapshotDrawsActivePiece(t *testing.T) {
	e := newTestEngine(KindO)
	s := e.Snapshot()
	if s.Board.FilledCells() != 4 {
		t.Errorf("snapshot board has %d cells, want 4", s.Board.FilledCells())
	}
	if e.Board().FilledCells() != 0 {
		t.Error("snapshot leaked into the engine board")
	}
	if s.State != StateRunning || s.Level != 1 || s.DropInterval != InitialDropInterval {
		t.Errorf("unexpected snapshot %+v", s)
	}
}

func TestGeneratorDeterminism(t *testing.T) {
	g1 := NewGenerator(99)
	g2 := NewGenerator(99)
	seen := make(map[Kind]bool)
	for i := 0; i < 200; i++ {
		a, b := g1.Next(), g2.Next()
		if a.Kind != b.Kind {
			t.Fatalf("draw %d differs: %v vs %v", i, a.Kind, b.Kind)
		}
		seen[a.Kind] = true
	}
	if len(seen) != len(Kinds) {
		t.Errorf("only %d kinds drawn in 200 pieces", len(seen))
	}
}

func TestSpawnPosition(t *testing.T) {
	tests := []struct {
		kind Kind
		x    int
	}{
		{KindI, 3},
		{KindO, 4},
		{KindT, 4},
		{KindS, 4},
		{KindZ, 4},
		{KindJ, 4},
		{KindL, 4},
	}
	for _, tt := range tests {
		p := Spawn(tt.kind)
		if p.X != tt.x || p.Y != 0 {
			t.Errorf("Spawn(%v) at (%d,%d), want (%d,0)", tt.kind, p.X, p.Y, tt.x)
		}
	}
}

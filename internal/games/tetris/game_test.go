package tetris

import (
	"strings"
	"testing"

	"github.com/vovakirdan/jigsaw-tetris/internal/core"
)

func newTestGame(seed int64) *Game {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: seed, ScreenW: 80, ScreenH: 24, TickRate: 10})
	return g
}

func TestGameDeterminism(t *testing.T) {
	g1 := newTestGame(12345)
	g2 := newTestGame(12345)

	input := core.NewInputFrame()
	for i := 0; i < 400; i++ {
		input.Clear()
		switch i % 7 {
		case 1:
			input.Set(core.ActionLeft)
		case 3:
			input.Set(core.ActionRotate)
		case 5:
			input.Set(core.ActionRight)
			input.Set(core.ActionSoftDrop)
		}
		if i%40 == 39 {
			input.Set(core.ActionHardDrop)
		}
		g1.Step(input)
		g2.Step(input)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Tick != s2.Tick || s1.Tick != 400 {
		t.Errorf("Tick mismatch: %d vs %d", s1.Tick, s2.Tick)
	}
	if s1.Board != s2.Board {
		t.Errorf("board mismatch:\n%s\n---\n%s", s1.Board.String(), s2.Board.String())
	}
	if s1.Score != s2.Score || s1.Next.Kind != s2.Next.Kind {
		t.Errorf("score/next mismatch: %d/%v vs %d/%v", s1.Score, s1.Next.Kind, s2.Score, s2.Next.Kind)
	}
}

func TestGameGravityFollowsTickRate(t *testing.T) {
	g := newTestGame(7)
	empty := core.NewInputFrame()

	for i := 0; i < 9; i++ {
		g.Step(empty)
	}
	if y := g.Engine().Active().Y; y != 0 {
		t.Fatalf("piece moved after 900ms: y=%d", y)
	}
	g.Step(empty)
	if y := g.Engine().Active().Y; y != 1 {
		t.Errorf("piece y = %d after 1s, want 1", y)
	}
}

func TestGameReportsClears(t *testing.T) {
	g := newTestGame(1)
	e := g.Engine()
	e.active = Spawn(KindI)
	fillRow(&e.board, 19, 3, 4, 5, 6)

	in := core.NewInputFrame()
	in.Set(core.ActionHardDrop)
	g.Step(in)

	var res core.StepResult
	for i := 0; i < 10; i++ {
		res = g.Step(core.NewInputFrame())
		if len(res.Clears) > 0 {
			break
		}
	}
	if len(res.Clears) != 1 {
		t.Fatalf("got %d clear events, want 1", len(res.Clears))
	}
	ev := res.Clears[0]
	if ev.Blocks != 10 || ev.Lines != 1 || ev.Score != 138 || ev.Level != 1 {
		t.Errorf("clear event = %+v", ev)
	}
	if res.State.Lines != 1 {
		t.Errorf("state lines = %d, want 1", res.State.Lines)
	}

	if next := g.Step(core.NewInputFrame()); len(next.Clears) != 0 {
		t.Error("clear event reported twice")
	}
}

func TestGamePauseAndRestart(t *testing.T) {
	g := newTestGame(2)

	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	if res := g.Step(in); !res.State.Paused {
		t.Fatal("pause action should pause")
	}

	in.Clear()
	in.Set(core.ActionRestart)
	g.Step(in)
	if !g.State().Paused {
		t.Error("restart must be ignored while the game is running")
	}

	in.Clear()
	in.Set(core.ActionPause)
	g.Step(in)
	if g.State().Paused {
		t.Error("second pause action should resume")
	}

	e := g.Engine()
	e.active = Spawn(KindO)
	e.board[2][4] = KindJ
	e.Tick()
	if !g.State().GameOver {
		t.Fatal("setup: expected game over")
	}

	in.Clear()
	in.Set(core.ActionRestart)
	res := g.Step(in)
	if res.State.GameOver || res.State.Score != 0 || res.State.Level != 1 {
		t.Errorf("state after restart = %+v", res.State)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(4)
	g.SetStatusLines("Jigsaw 3/24")
	scr := core.NewScreen(80, 24)
	g.Render(scr)

	out := scr.String()
	for _, want := range []string{"NEXT", "Score:", "Level:", "Lines:", "Jigsaw 3/24"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestGameTooSmallPauses(t *testing.T) {
	g := New()
	g.Reset(core.RuntimeConfig{Seed: 1, ScreenW: 20, ScreenH: 10, TickRate: 10})
	if !g.State().Paused {
		t.Error("small screen should hold the game")
	}

	scr := core.NewScreen(20, 10)
	g.Render(scr)
	if !strings.Contains(scr.String(), "too small") {
		t.Error("expected a too-small notice")
	}

	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("game should resume after resize")
	}
}

func TestGameAwayHoldsGravity(t *testing.T) {
	g := newTestGame(9)
	g.SetAway(true)
	for i := 0; i < 30; i++ {
		g.Step(core.NewInputFrame())
	}
	if y := g.Engine().Active().Y; y != 0 {
		t.Errorf("piece fell while away: y=%d", y)
	}

	g.SetAway(false)
	if g.State().Paused {
		t.Error("game should resume when the player is back")
	}
}

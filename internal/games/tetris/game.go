package tetris

import (
	"fmt"
	"time"

	"github.com/vovakirdan/jigsaw-tetris/internal/core"
)

// Layout constants for the terminal rendering. Each board cell is drawn two
// characters wide so blocks look square.
const (
	cellW        = 2
	boardBoxW    = BoardWidth*cellW + 2
	boardBoxH    = BoardHeight + 2
	sidebarGap   = 2
	sidebarW     = 18
	previewBoxW  = 4*cellW + 2
	previewBoxH  = 4
	minScreenW   = boardBoxW + sidebarGap + sidebarW
	minScreenH   = boardBoxH
	emptyCellRun = " ·"
)

// Game adapts the Engine to the platform's fixed-tick loop.
// Each Step feeds one tick's worth of time into the engine, so the game
// runs identically for a given seed and tick rate.
type Game struct {
	engine  *Engine
	tick    uint64
	dt      time.Duration
	screenW int
	screenH int

	tooSmall bool
	away     bool
	pending  []core.ClearEvent
	status   []string
}

// New creates a game. Reset must be called before the first Step.
func New() *Game {
	return &Game{}
}

// ID returns the game identifier used for score storage.
func (g *Game) ID() string {
	return "tetris"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Jigsaw Tetris"
}

// Reset initializes the game for a new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	tickRate := cfg.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}

	g.engine = NewEngine(cfg.Seed)
	g.engine.OnLinesCleared(g.queueClear)
	g.tick = 0
	g.dt = time.Second / time.Duration(tickRate)
	g.pending = nil
	g.away = false
	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize updates the screen dimensions without touching game state.
// A screen that cannot hold the board pauses the game through the host
// pause signal until it grows again.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = w < minScreenW || h < minScreenH
	g.syncHostPause()
}

// SetAway holds the game while the player is not looking at it, e.g. the
// terminal lost focus or another screen is shown on top.
func (g *Game) SetAway(away bool) {
	g.away = away
	g.syncHostPause()
}

func (g *Game) syncHostPause() {
	if g.engine != nil {
		g.engine.SetHostPaused(g.tooSmall || g.away)
	}
}

// SetStatusLines sets extra lines shown in the sidebar under the stats.
func (g *Game) SetStatusLines(lines ...string) {
	g.status = append(g.status[:0], lines...)
}

func (g *Game) queueClear(ev LinesCleared) {
	g.pending = append(g.pending, core.ClearEvent{
		Blocks: ev.Blocks,
		Lines:  ev.Lines,
		Score:  ev.Score,
		Level:  ev.Level,
	})
}

// Step applies this tick's input in arrival order, then advances gravity.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	for _, a := range in.Actions {
		g.apply(a)
	}
	g.engine.Advance(g.dt)

	clears := g.pending
	g.pending = nil
	return core.StepResult{State: g.State(), Clears: clears}
}

func (g *Game) apply(a core.Action) {
	switch a {
	case core.ActionPause:
		if !g.engine.GameOver() {
			g.engine.TogglePause()
		}
	case core.ActionRestart:
		if g.engine.GameOver() {
			g.engine.Restart()
		}
	case core.ActionLeft:
		g.engine.MoveLeft()
	case core.ActionRight:
		g.engine.MoveRight()
	case core.ActionRotate:
		g.engine.Rotate()
	case core.ActionSoftDrop:
		g.engine.SoftDrop()
	case core.ActionHardDrop:
		g.engine.HardDrop()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	p := g.engine.Progress()
	return core.GameState{
		Score:    p.Score,
		Level:    p.Level,
		Lines:    p.Lines,
		GameOver: g.engine.GameOver(),
		Paused:   g.engine.Paused(),
	}
}

// Engine exposes the underlying engine.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Snapshot returns the engine snapshot stamped with the tick counter.
func (g *Game) Snapshot() Snapshot {
	s := g.engine.Snapshot()
	s.Tick = g.tick
	return s
}

// Render draws the board, the next-piece preview and the stats sidebar.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("need %dx%d", minScreenW, minScreenH))
		return
	}

	snap := g.engine.Snapshot()

	originX := (dst.Width() - minScreenW) / 2
	originY := (dst.Height() - minScreenH) / 2
	boardBox := core.NewRect(originX, originY, boardBoxW, boardBoxH)
	dst.DrawBox(boardBox, core.ColorGray)
	g.drawBoard(dst, boardBox.Inner(), snap)

	sideX := boardBox.Right() + sidebarGap
	g.drawSidebar(dst, sideX, originY, snap)

	switch {
	case snap.GameOver:
		g.drawOverlay(dst, boardBox, core.ColorRed,
			"GAME OVER",
			fmt.Sprintf("Score %d", snap.Score),
			"R - play again",
		)
	case snap.Paused:
		g.drawOverlay(dst, boardBox, core.ColorYellow,
			"PAUSED",
			"P - resume",
		)
	}
}

func (g *Game) drawBoard(dst *core.Screen, area core.Rect, snap Snapshot) {
	for y := range BoardHeight {
		for x := range BoardWidth {
			px := area.X + x*cellW
			py := area.Y + y
			k := snap.Board[y][x]
			if k == KindNone {
				dst.DrawTextColor(px, py, emptyCellRun, core.ColorGray)
				continue
			}
			dst.DrawTextColor(px, py, "██", k.Color())
		}
	}
}

func (g *Game) drawSidebar(dst *core.Screen, x, y int, snap Snapshot) {
	dst.DrawTextColor(x, y, "NEXT", core.ColorWhite)
	preview := core.NewRect(x, y+1, previewBoxW, previewBoxH)
	dst.DrawBox(preview, core.ColorGray)
	inner := preview.Inner()
	for _, c := range snap.Next.Shape.Cells() {
		dst.DrawTextColor(inner.X+c[0]*cellW, inner.Y+c[1], "██", snap.Next.Kind.Color())
	}

	row := preview.Bottom() + 1
	stats := []struct {
		label string
		value int
		color core.Color
	}{
		{"Score", snap.Score, core.ColorYellow},
		{"Level", snap.Level, core.ColorBlue},
		{"Lines", snap.Lines, core.ColorGreen},
		{"Blocks", snap.Blocks, core.ColorPurple},
	}
	for _, s := range stats {
		dst.DrawText(x, row, s.label+":")
		dst.DrawTextColor(x+8, row, fmt.Sprintf("%d", s.value), s.color)
		row++
	}

	row++
	for _, line := range g.status {
		dst.DrawTextColor(x, row, line, core.ColorPink)
		row++
	}

	help := []string{"←/→ move", "↑ rotate", "↓ soft drop", "⏎ hard drop", "P pause  Q quit"}
	row = max(row+1, y+minScreenH-len(help))
	for _, line := range help {
		dst.DrawTextColor(x, row, line, core.ColorGray)
		row++
	}
}

func (g *Game) drawOverlay(dst *core.Screen, box core.Rect, c core.Color, lines ...string) {
	top := box.Y + box.H/2 - len(lines)/2
	for i, line := range lines {
		w := len([]rune(line))
		x := box.X + (box.W-w)/2
		dst.DrawTextColor(x-1, top+i, " "+line+" ", c)
	}
}

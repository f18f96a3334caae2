package tui

import (
	"github.com/vovakirdan/jigsaw-tetris/internal/core"
	"github.com/vovakirdan/jigsaw-tetris/internal/games/tetris"
)

// Game is a fixed-tick simulation the host can drive and draw.
type Game interface {
	ID() string
	Title() string
	Reset(cfg core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	State() core.GameState

	// Resize tells the game about new terminal dimensions.
	Resize(w, h int)
	// SetAway holds the game while another screen is shown or the terminal
	// has lost focus.
	SetAway(away bool)
	// SetStatusLines adds host information to the game's sidebar.
	SetStatusLines(lines ...string)
}

var _ Game = (*tetris.Game)(nil)

// NewGame returns the game played by sessions.
func NewGame() Game {
	return tetris.New()
}

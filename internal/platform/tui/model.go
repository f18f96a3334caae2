package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/jigsaw-tetris/internal/core"
	"github.com/vovakirdan/jigsaw-tetris/internal/puzzle"
)

// bannerSeconds is how long an unlock notice stays on screen.
const bannerSeconds = 4

// GameModel is the Bubble Tea model for a running game. Cleared blocks are
// credited to the session's puzzle tracker as they happen.
type GameModel struct {
	game       Game
	env        *Env
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	loop       uint64

	banner      string
	bannerTicks int

	quitting   bool
	backToMenu bool
	openPuzzle bool
	blurred    bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewGameModel creates a game model.
func NewGameModel(game Game, env *Env, cfg core.RuntimeConfig) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return GameModel{
		game:       game,
		env:        env,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		loop:       newTickLoop(),
	}
}

// Init resets the game and starts the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.game.Resize(msg.Width, msg.Height)
		return m, nil

	case tea.BlurMsg:
		m.blurred = true
		m.syncAway()
		return m, nil

	case tea.FocusMsg:
		m.blurred = false
		m.syncAway()
		return m, nil

	case TickMsg:
		if msg.Loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToMenuAction(msg) == MenuActionPuzzle {
		m.openPuzzle = true
		m.syncAway()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu only when nothing is in motion
	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if wasOver && !m.gameState.GameOver {
		m.scoreSaved = false
	}

	for _, ev := range result.Clears {
		m.creditBlocks(ev)
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved && m.gameState.Score > 0 {
		m.env.SaveScore(m.gameState)
		m.scoreSaved = true
	}

	if m.bannerTicks > 0 {
		m.bannerTicks--
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.loop)
}

// creditBlocks feeds a line clear into the puzzle tracker.
func (m *GameModel) creditBlocks(ev core.ClearEvent) {
	u := m.env.Tracker.AddBlocks(ev.Blocks)
	m.env.SaveProgress()
	if u.New > 0 {
		m.banner = u.Message()
		m.bannerTicks = bannerSeconds * m.config.TickRate
		m.env.Logger.Info("jigsaw pieces unlocked",
			"profile", m.env.Profile,
			"new", u.New,
			"unlocked", u.Unlocked,
			"puzzle", u.Puzzle,
		)
	}
}

// Resume returns to the game after the puzzle board was shown on top.
func (m *GameModel) Resume() {
	m.openPuzzle = false
	m.syncAway()
}

// syncAway holds the game while the terminal is unfocused or the puzzle
// board is shown.
func (m *GameModel) syncAway() {
	m.game.SetAway(m.blurred || m.openPuzzle)
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// draw renders the game and the host overlays into the screen buffer.
func (m *GameModel) draw() {
	tr := m.env.Tracker
	status := []string{
		fmt.Sprintf("Jigsaw: %d/%d", tr.UnlockedCount(), puzzle.PieceCount),
		fmt.Sprintf("Puzzle #%d", tr.PuzzleNumber()),
	}
	if n := tr.BlocksToNextPiece(); n > 0 {
		status = append(status, fmt.Sprintf("Next in %d blk", n))
	}
	status = append(status, "Tab: puzzle")
	m.game.SetStatusLines(status...)

	m.game.Render(m.screen)

	if m.bannerTicks > 0 && m.banner != "" {
		lines := wrapText(m.banner, min(m.screen.Width()-4, 60))
		top := m.screen.Height() - len(lines)
		for i, line := range lines {
			x := (m.screen.Width() - len([]rune(line))) / 2
			m.screen.DrawTextColor(x, top+i, line, core.ColorPink)
		}
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Banner returns the unlock notice currently shown, if any.
func (m GameModel) Banner() string {
	if m.bannerTicks == 0 {
		return ""
	}
	return m.banner
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// WantsPuzzle returns true if user asked to look at the puzzle board.
func (m GameModel) WantsPuzzle() bool {
	return m.openPuzzle
}

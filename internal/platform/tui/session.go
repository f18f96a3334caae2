package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/jigsaw-tetris/internal/core"
)

// ScreenID names a screen of a session.
type ScreenID int

const (
	ScreenMenu ScreenID = iota
	ScreenGame
	ScreenPuzzle
	ScreenScores
)

// String returns the screen name.
func (s ScreenID) String() string {
	switch s {
	case ScreenMenu:
		return "menu"
	case ScreenGame:
		return "game"
	case ScreenPuzzle:
		return "puzzle"
	case ScreenScores:
		return "scores"
	default:
		return "unknown"
	}
}

// SessionModel manages the full session flow between the menu, the game,
// the puzzle board and the scoreboard. It is the top-level model for both
// local and SSH sessions.
type SessionModel struct {
	env    *Env
	config core.RuntimeConfig
	screen ScreenID

	menu   MenuModel
	game   *GameModel // nil unless a game is in progress
	puzzle PuzzleModel
	scores ScoreboardModel

	quitting bool
}

// NewSessionModel creates a session that opens on the given screen.
func NewSessionModel(env *Env, cfg core.RuntimeConfig, start ScreenID) SessionModel {
	m := SessionModel{
		env:    env,
		config: cfg,
		menu:   NewMenuModel(env, cfg.ScreenW, cfg.ScreenH),
	}
	m.show(start)
	return m
}

// show switches to a screen, building a fresh model for it.
// Showing the game starts a new game unless one is in progress.
func (m *SessionModel) show(s ScreenID) {
	m.screen = s
	switch s {
	case ScreenMenu:
		m.menu = NewMenuModel(m.env, m.config.ScreenW, m.config.ScreenH)
	case ScreenGame:
		if m.game == nil {
			gm := NewGameModel(NewGame(), m.env, m.config)
			m.game = &gm
		}
	case ScreenPuzzle:
		m.puzzle = NewPuzzleModel(m.env, m.config.ScreenW, m.config.ScreenH)
	case ScreenScores:
		m.scores = NewScoreboardModel(m.env.Store, m.env.Profile, m.config.ScreenW, m.config.ScreenH)
	}
}

// Init starts the first screen.
func (m SessionModel) Init() tea.Cmd {
	if m.screen == ScreenGame && m.game != nil {
		return m.game.Init()
	}
	return nil
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m.resize(msg)

	case tea.FocusMsg, tea.BlurMsg:
		if m.game != nil {
			m.updateGame(msg)
		}
		return m, nil

	case TickMsg:
		// The game keeps its tick chain while another screen is on top
		if m.game == nil {
			return m, nil
		}
		cmd := m.updateGame(msg)
		return m, cmd
	}

	switch m.screen {
	case ScreenGame:
		return m.routeGame(msg)
	case ScreenPuzzle:
		return m.routePuzzle(msg)
	case ScreenScores:
		return m.routeScores(msg)
	default:
		return m.routeMenu(msg)
	}
}

func (m SessionModel) resize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if m.game != nil {
		m.updateGame(msg)
	}
	next, _ := m.menu.Update(msg)
	m.menu = next.(MenuModel)
	switch m.screen {
	case ScreenPuzzle:
		next, _ := m.puzzle.Update(msg)
		m.puzzle = next.(PuzzleModel)
	case ScreenScores:
		next, _ := m.scores.Update(msg)
		m.scores = next.(ScoreboardModel)
	}
	return m, nil
}

func (m *SessionModel) updateGame(msg tea.Msg) tea.Cmd {
	next, cmd := m.game.Update(msg)
	gm := next.(GameModel)
	m.game = &gm
	return cmd
}

func (m SessionModel) routeMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	choice := m.menu.Selected()
	m.menu.clearSelection()
	switch choice {
	case ChoicePlay:
		m.show(ScreenGame)
		return m, m.game.Init()
	case ChoicePuzzle:
		m.show(ScreenPuzzle)
	case ChoiceScores:
		m.show(ScreenScores)
	}
	return m, cmd
}

func (m SessionModel) routeGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.updateGame(msg)

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		m.game = nil
		m.show(ScreenMenu)
		return m, nil
	case m.game.WantsPuzzle():
		m.show(ScreenPuzzle)
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) routePuzzle(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.puzzle.Update(msg)
	m.puzzle = next.(PuzzleModel)

	switch {
	case m.puzzle.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.puzzle.IsGoingBack():
		if m.game != nil {
			m.game.Resume()
			m.screen = ScreenGame
		} else {
			m.show(ScreenMenu)
		}
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) routeScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)

	switch {
	case m.scores.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scores.IsGoingBack():
		m.show(ScreenMenu)
		return m, nil
	}
	return m, cmd
}

// View renders the current screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case ScreenGame:
		if m.game != nil {
			return m.game.View()
		}
	case ScreenPuzzle:
		return m.puzzle.View()
	case ScreenScores:
		return m.scores.View()
	}
	return m.menu.View()
}

// Screen returns the screen currently shown.
func (m SessionModel) Screen() ScreenID {
	return m.screen
}

// Game returns the running game model, or nil.
func (m SessionModel) Game() *GameModel {
	return m.game
}

// Run runs a local session in the alternate screen until the player quits.
func Run(env *Env, cfg core.RuntimeConfig, start ScreenID) error {
	p := tea.NewProgram(
		NewSessionModel(env, cfg, start),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
	)
	_, err := p.Run()
	return err
}

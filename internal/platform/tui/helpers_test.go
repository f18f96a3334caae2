package tui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/jigsaw-tetris/internal/core"
	"github.com/vovakirdan/jigsaw-tetris/internal/storage"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60, Seed: 7}
}

// fakeGame is a Game whose state is set by the test.
type fakeGame struct {
	state  core.GameState
	clears []core.ClearEvent
	steps  int
	resets int
	away   bool
	w, h   int
	status []string
	last   core.InputFrame
}

func (f *fakeGame) ID() string    { return "fake" }
func (f *fakeGame) Title() string { return "Fake" }

func (f *fakeGame) Reset(cfg core.RuntimeConfig) {
	f.resets++
	f.w, f.h = cfg.ScreenW, cfg.ScreenH
}

func (f *fakeGame) Step(in core.InputFrame) core.StepResult {
	f.steps++
	f.last = in.Clone()
	clears := f.clears
	f.clears = nil
	return core.StepResult{State: f.state, Clears: clears}
}

func (f *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "fake game")
}

func (f *fakeGame) State() core.GameState          { return f.state }
func (f *fakeGame) Resize(w, h int)                { f.w, f.h = w, h }
func (f *fakeGame) SetAway(away bool)              { f.away = away }
func (f *fakeGame) SetStatusLines(lines ...string) { f.status = lines }

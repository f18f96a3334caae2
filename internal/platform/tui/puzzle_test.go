package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/jigsaw-tetris/internal/puzzle"
)

func sendPuzzle(m PuzzleModel, msgs ...tea.Msg) PuzzleModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(PuzzleModel)
	}
	return m
}

func TestPuzzleModelCursorStaysOnBoard(t *testing.T) {
	m := NewPuzzleModel(NewEnv(nil, "test", nil, nil), 100, 40)

	m = sendPuzzle(m, keyType(tea.KeyUp), keyType(tea.KeyLeft))
	assert.Equal(t, puzzle.Slot{}, m.Cursor())

	for range 10 {
		m = sendPuzzle(m, keyType(tea.KeyDown), keyType(tea.KeyRight))
	}
	assert.Equal(t, puzzle.Slot{Row: puzzle.Rows - 1, Col: puzzle.Cols - 1}, m.Cursor())

	m = sendPuzzle(m, keyRunes("k"), keyRunes("h"))
	assert.Equal(t, puzzle.Slot{Row: 2, Col: 4}, m.Cursor())
}

func TestPuzzleModelPlaceHome(t *testing.T) {
	store := openTestStore(t)
	env := NewEnv(store, "local", nil, nil)
	env.Tracker.AddBlocks(puzzle.BlocksPerPiece)
	m := NewPuzzleModel(env, 100, 40)

	m = sendPuzzle(m, keyType(tea.KeyEnter))

	assert.Equal(t, msgPlaced, m.Message())
	assert.Equal(t, 1, env.Tracker.PlacedCount())
	assert.Empty(t, env.Tracker.Tray())

	saved, found, err := store.LoadProgress("local")
	require.NoError(t, err)
	require.True(t, found)
	assert.True(t, saved.Pieces[0].Placed)
}

func TestPuzzleModelWrongSlot(t *testing.T) {
	env := NewEnv(nil, "test", nil, nil)
	env.Tracker.AddBlocks(2 * puzzle.BlocksPerPiece)
	m := NewPuzzleModel(env, 100, 40)

	// Select piece 1 and try it on piece 0's slot
	m = sendPuzzle(m, keyType(tea.KeyTab))
	pc, ok := m.SelectedPiece()
	require.True(t, ok)
	require.Equal(t, 1, pc.ID)

	m = sendPuzzle(m, keyType(tea.KeyEnter))
	assert.Equal(t, msgWrongSlot, m.Message())
	assert.Zero(t, env.Tracker.PlacedCount())

	// Tray selection wraps
	m = sendPuzzle(m, keyType(tea.KeyTab))
	pc, _ = m.SelectedPiece()
	assert.Equal(t, 0, pc.ID)
	m = sendPuzzle(m, keyType(tea.KeyShiftTab))
	pc, _ = m.SelectedPiece()
	assert.Equal(t, 1, pc.ID)
}

func TestPuzzleModelFilledSlotAndEmptyTray(t *testing.T) {
	env := NewEnv(nil, "test", nil, nil)
	m := NewPuzzleModel(env, 100, 40)

	m = sendPuzzle(m, keyType(tea.KeyEnter))
	assert.Equal(t, msgEmptyTray, m.Message())

	env.Tracker.AddBlocks(2 * puzzle.BlocksPerPiece)
	require.NoError(t, env.Tracker.Place(0, puzzle.HomeSlot(0)))

	m = sendPuzzle(m, keyType(tea.KeyEnter))
	assert.Equal(t, msgSlotFilled, m.Message())
}

func TestPuzzleModelCompletionAndNextPuzzle(t *testing.T) {
	env := NewEnv(nil, "test", nil, nil)
	tr := env.Tracker
	tr.AddBlocks(puzzle.PieceCount * puzzle.BlocksPerPiece)
	for i := 0; i < puzzle.PieceCount-1; i++ {
		require.NoError(t, tr.Place(i, puzzle.HomeSlot(i)))
	}
	m := NewPuzzleModel(env, 100, 40)

	m = sendPuzzle(m, keyRunes("n"))
	assert.Equal(t, msgNotDone, m.Message())
	assert.Equal(t, 1, tr.PuzzleNumber())

	for range 3 {
		m = sendPuzzle(m, keyType(tea.KeyDown))
	}
	for range 5 {
		m = sendPuzzle(m, keyType(tea.KeyRight))
	}
	m = sendPuzzle(m, keyType(tea.KeySpace))

	assert.True(t, tr.Complete())
	assert.Equal(t, 1, tr.CompletedPuzzles())
	assert.Contains(t, m.Message(), "Amazing! You've revealed Pikachu!")
	assert.Contains(t, m.Message(), puzzle.ArtworkURL(25))
	assert.Contains(t, m.View(), "Press N for the next puzzle")

	m = sendPuzzle(m, keyRunes("n"))
	assert.Equal(t, 2, tr.PuzzleNumber())
	assert.Equal(t, "Charizard", tr.Character().Name)
	assert.Zero(t, tr.UnlockedCount())
	assert.Equal(t, puzzle.Slot{}, m.Cursor())
	assert.Equal(t, 1, tr.CompletedPuzzles())
}

func TestPuzzleModelBackAndQuit(t *testing.T) {
	m := NewPuzzleModel(NewEnv(nil, "test", nil, nil), 100, 40)

	back := sendPuzzle(m, keyType(tea.KeyEsc))
	assert.True(t, back.IsGoingBack())
	assert.False(t, back.IsQuitting())

	next, cmd := m.Update(keyRunes("q"))
	assert.True(t, next.(PuzzleModel).IsQuitting())
	assert.NotNil(t, cmd)
}

func TestPuzzleModelView(t *testing.T) {
	env := NewEnv(nil, "test", nil, nil)
	env.Tracker.AddBlocks(3 * puzzle.BlocksPerPiece)
	require.NoError(t, env.Tracker.Place(0, puzzle.HomeSlot(0)))
	m := NewPuzzleModel(env, 120, 40)

	view := m.View()
	assert.Contains(t, view, "JIGSAW PUZZLE #1")
	assert.Contains(t, view, "Unlocked:   3/24")
	assert.Contains(t, view, "Placed:     1/24")
	assert.Contains(t, view, "Completion: 33%")
	assert.Contains(t, view, "Jigsaw Specialist")
	assert.Contains(t, view, "Tray:")
	assert.NotContains(t, view, "Pikachu")
}

func TestPieceFaceShowsTabs(t *testing.T) {
	// Slot (1,2) only has a top tab
	face := pieceFace(8, puzzle.Slot{Row: 1, Col: 2})
	assert.Equal(t, "   ▲   ", face[0])
	assert.Equal(t, "   8   ", face[1])
	assert.Equal(t, "       ", face[2])

	// Slot (2,2) has a right and a left tab
	face = pieceFace(14, puzzle.Slot{Row: 2, Col: 2})
	assert.Equal(t, "◀ 14  ▶", face[1])

	for _, line := range pieceFace(23, puzzle.HomeSlot(23)) {
		assert.Equal(t, slotW, len([]rune(line)))
	}
}

func TestSlotColorsAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for id := range puzzle.PieceCount {
		c := string(slotColor(puzzle.HomeSlot(id)))
		assert.False(t, seen[c], "color %s reused", c)
		seen[c] = true
	}
}

package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/jigsaw-tetris/internal/core"
	"github.com/vovakirdan/jigsaw-tetris/internal/puzzle"
)

// Puzzle board cell size in characters.
const (
	slotW = 7
	slotH = 3
)

// Player feedback shown under the board.
const (
	msgWrongSlot  = "That piece doesn't belong there! Try matching the image pattern."
	msgSlotFilled = "That slot is already filled."
	msgEmptyTray  = "No pieces in the tray. Clear lines in Tetris to unlock more!"
	msgPlaced     = "Piece placed!"
	msgNotDone    = "Finish this puzzle before starting the next one."
)

// PuzzleKeyMap defines the key bindings for the puzzle board.
type PuzzleKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	NextPiece  key.Binding
	PrevPiece  key.Binding
	Place      key.Binding
	NextPuzzle key.Binding
	Back       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PuzzleKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPiece, k.Place, k.NextPuzzle, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PuzzleKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.NextPiece, k.PrevPiece, k.Place, k.NextPuzzle},
		{k.Back, k.Quit},
	}
}

// DefaultPuzzleKeyMap returns default key bindings.
func DefaultPuzzleKeyMap() PuzzleKeyMap {
	return PuzzleKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("→/l", "right"),
		),
		NextPiece: key.NewBinding(
			key.WithKeys("tab", "]"),
			key.WithHelp("tab", "next piece"),
		),
		PrevPiece: key.NewBinding(
			key.WithKeys("shift+tab", "["),
			key.WithHelp("S-tab", "prev piece"),
		),
		Place: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "place"),
		),
		NextPuzzle: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next puzzle"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// PuzzleModel is the Bubble Tea model for the jigsaw board.
type PuzzleModel struct {
	env     *Env
	keys    PuzzleKeyMap
	help    help.Model
	cursor  puzzle.Slot
	traySel int
	message string
	good    bool // message is good news
	width   int
	height  int

	quitting  bool
	goingBack bool
}

// NewPuzzleModel creates a puzzle board model.
func NewPuzzleModel(env *Env, width, height int) PuzzleModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width
	return PuzzleModel{
		env:    env,
		keys:   DefaultPuzzleKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
}

// Init initializes the puzzle model.
func (m PuzzleModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the puzzle board.
func (m PuzzleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m PuzzleModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tray := m.env.Tracker.Tray()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.goingBack = true

	case key.Matches(msg, m.keys.Up):
		m.cursor.Row = core.Clamp(m.cursor.Row-1, 0, puzzle.Rows-1)
	case key.Matches(msg, m.keys.Down):
		m.cursor.Row = core.Clamp(m.cursor.Row+1, 0, puzzle.Rows-1)
	case key.Matches(msg, m.keys.Left):
		m.cursor.Col = core.Clamp(m.cursor.Col-1, 0, puzzle.Cols-1)
	case key.Matches(msg, m.keys.Right):
		m.cursor.Col = core.Clamp(m.cursor.Col+1, 0, puzzle.Cols-1)

	case key.Matches(msg, m.keys.NextPiece):
		if len(tray) > 0 {
			m.traySel = core.Wrap(m.traySel+1, len(tray))
		}
	case key.Matches(msg, m.keys.PrevPiece):
		if len(tray) > 0 {
			m.traySel = core.Wrap(m.traySel-1, len(tray))
		}

	case key.Matches(msg, m.keys.Place):
		m.place(tray)

	case key.Matches(msg, m.keys.NextPuzzle):
		m.nextPuzzle()
	}

	return m, nil
}

// place puts the selected tray piece into the slot under the cursor.
func (m *PuzzleModel) place(tray []puzzle.Piece) {
	if len(tray) == 0 {
		m.say(msgEmptyTray, false)
		return
	}
	if pc, ok := m.env.Tracker.PieceAt(m.cursor); ok && pc.Placed {
		m.say(msgSlotFilled, false)
		return
	}

	sel := core.Clamp(m.traySel, 0, len(tray)-1)
	err := m.env.Tracker.Place(tray[sel].ID, m.cursor)
	switch {
	case errors.Is(err, puzzle.ErrWrongSlot):
		m.say(msgWrongSlot, false)
		return
	case err != nil:
		m.say(err.Error(), false)
		return
	}

	m.env.SaveProgress()
	m.traySel = core.Clamp(sel, 0, max(0, len(tray)-2))

	if m.env.Tracker.Complete() {
		ch := m.env.Tracker.Character()
		m.say(fmt.Sprintf("Amazing! You've revealed %s! %s", ch.Name, ch.ImageURL), true)
		m.env.Logger.Info("puzzle completed",
			"profile", m.env.Profile,
			"puzzle", m.env.Tracker.PuzzleNumber(),
			"character", ch.Name,
		)
		return
	}
	m.say(msgPlaced, true)
}

func (m *PuzzleModel) nextPuzzle() {
	if err := m.env.Tracker.NextPuzzle(); err != nil {
		m.say(msgNotDone, false)
		return
	}
	m.env.SaveProgress()
	m.cursor = puzzle.Slot{}
	m.traySel = 0
	m.say(fmt.Sprintf("Puzzle #%d started. Clear lines to unlock its pieces!", m.env.Tracker.PuzzleNumber()), true)
}

func (m *PuzzleModel) say(text string, good bool) {
	m.message = text
	m.good = good
}

// View renders the puzzle board.
func (m PuzzleModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	tr := m.env.Tracker
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder

	title := fmt.Sprintf("JIGSAW PUZZLE #%d", tr.PuzzleNumber())
	if tr.Complete() {
		title += " - " + tr.Character().Name
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		boxStyle.Render(m.renderGrid()),
		"  ",
		boxStyle.Render(m.renderStats()),
	)
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.renderTray())
	b.WriteString("\n")

	if m.message != "" {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		if m.good {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		}
		for _, line := range wrapText(m.message, max(20, m.width-2)) {
			b.WriteString(style.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))

	return b.String()
}

// renderGrid draws every slot, placed pieces filled with their color.
func (m PuzzleModel) renderGrid() string {
	rows := make([]string, 0, puzzle.Rows*slotH)
	for r := range puzzle.Rows {
		var lines [slotH]strings.Builder
		for c := range puzzle.Cols {
			s := puzzle.Slot{Row: r, Col: c}
			cell := m.renderSlot(s)
			for i := range slotH {
				lines[i].WriteString(cell[i])
			}
		}
		for i := range slotH {
			rows = append(rows, lines[i].String())
		}
	}
	return strings.Join(rows, "\n")
}

func (m PuzzleModel) renderSlot(s puzzle.Slot) [slotH]string {
	pc, _ := m.env.Tracker.PieceAt(s)
	color := slotColor(s)

	var text [slotH]string
	var style lipgloss.Style
	if pc.Placed {
		text = pieceFace(pc.ID, s)
		style = lipgloss.NewStyle().Background(color).Foreground(lipgloss.Color("16"))
	} else {
		text = [slotH]string{
			"  · ·  ",
			fmt.Sprintf(" %d,%d   ", s.Row, s.Col),
			"  · ·  ",
		}
		style = lipgloss.NewStyle().Foreground(color).Faint(true)
	}
	if s == m.cursor {
		style = style.Reverse(true).Bold(true)
	}

	for i := range text {
		text[i] = style.Render(text[i])
	}
	return text
}

// pieceFace draws a piece with a mark on each side that carries a tab.
func pieceFace(id int, s puzzle.Slot) [slotH]string {
	e := puzzle.EdgesAt(s)
	glyph := func(on bool, g string) string {
		if on {
			return g
		}
		return " "
	}
	return [slotH]string{
		"   " + glyph(e.Top, "▲") + "   ",
		fmt.Sprintf("%s %2d  %s", glyph(e.Left, "◀"), id, glyph(e.Right, "▶")),
		"   " + glyph(e.Bottom, "▼") + "   ",
	}
}

// slotColor is the hint color shared by a slot and the piece that belongs
// there.
func slotColor(s puzzle.Slot) lipgloss.Color {
	return lipgloss.Color(fmt.Sprint(16 + 36*(s.Row+1) + 6*2 + s.Col))
}

func (m PuzzleModel) renderStats() string {
	tr := m.env.Tracker
	rank := tr.Rank()

	lines := []string{
		fmt.Sprintf("Unlocked:   %d/%d", tr.UnlockedCount(), puzzle.PieceCount),
		fmt.Sprintf("Placed:     %d/%d", tr.PlacedCount(), puzzle.PieceCount),
		fmt.Sprintf("Completion: %.0f%%", tr.CompletionPercent()),
		"Rank:       " + styleFor(rank.Color).Render(rank.Title),
		"",
		fmt.Sprintf("Blocks:     %d", tr.TotalBlocks()),
	}
	if n := tr.BlocksToNextPiece(); n > 0 {
		lines = append(lines, fmt.Sprintf("Next piece: %d blocks", n))
	}
	lines = append(lines, fmt.Sprintf("Completed:  %d", tr.CompletedPuzzles()))

	if tr.Complete() {
		ch := tr.Character()
		lines = append(lines, "",
			styleFor(core.ColorPink).Render("Revealed: "+ch.Name),
			"Press N for the next puzzle",
		)
	}
	return strings.Join(lines, "\n")
}

// renderTray lists the unplaced pieces, the selected one highlighted.
func (m PuzzleModel) renderTray() string {
	tray := m.env.Tracker.Tray()
	if len(tray) == 0 {
		return lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Render("Tray is empty")
	}

	sel := core.Clamp(m.traySel, 0, len(tray)-1)
	parts := make([]string, len(tray))
	for i, pc := range tray {
		style := lipgloss.NewStyle().Foreground(slotColor(pc.Position))
		label := fmt.Sprintf(" %2d ", pc.ID)
		if i == sel {
			style = style.Reverse(true).Bold(true)
		}
		parts[i] = style.Render(label)
	}
	return "Tray: " + strings.Join(parts, " ")
}

// SelectedPiece returns the tray piece that Place would use.
func (m PuzzleModel) SelectedPiece() (puzzle.Piece, bool) {
	tray := m.env.Tracker.Tray()
	if len(tray) == 0 {
		return puzzle.Piece{}, false
	}
	return tray[core.Clamp(m.traySel, 0, len(tray)-1)], true
}

// Cursor returns the slot under the cursor.
func (m PuzzleModel) Cursor() puzzle.Slot {
	return m.cursor
}

// Message returns the last feedback line.
func (m PuzzleModel) Message() string {
	return m.message
}

// IsGoingBack returns true if user wants to leave the board.
func (m PuzzleModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m PuzzleModel) IsQuitting() bool {
	return m.quitting
}

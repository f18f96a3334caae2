package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/jigsaw-tetris/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColor(0, 0, "red", core.ColorRed)
	s.DrawText(4, 0, "plain")
	s.DrawTextColor(0, 1, "██", core.ColorCyan)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 12 {
			t.Errorf("line %d width = %d, want 12", i, w)
		}
	}
	if !strings.Contains(out, "plain") {
		t.Errorf("output lost text: %q", out)
	}
}

func TestStyleForUnknownColor(t *testing.T) {
	got := styleFor(core.Color(200)).Render("x")
	if got != "x" {
		t.Errorf("unknown color rendered %q, want plain text", got)
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("You received 2 new jigsaw pieces! Open the puzzle board.", 20)
	if len(lines) < 3 {
		t.Fatalf("expected several lines, got %q", lines)
	}
	for _, line := range lines {
		if w := lipgloss.Width(line); w > 20 {
			t.Errorf("line %q is %d wide", line, w)
		}
	}
	if got := strings.Join(lines, " "); !strings.Contains(got, "Open the puzzle board.") {
		t.Errorf("wrapped text lost words: %q", got)
	}
}

func TestCenterText(t *testing.T) {
	if got := centerText("ab", 6); got != "  ab" {
		t.Errorf("centerText = %q, want %q", got, "  ab")
	}
	if got := centerText("toolong", 3); got != "toolong" {
		t.Errorf("centerText = %q, want unchanged", got)
	}
}

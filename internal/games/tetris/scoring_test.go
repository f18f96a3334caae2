package tetris

import (
	"testing"
	"time"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		score, want int
	}{
		{0, 1},
		{999, 1},
		{1000, 2},
		{2500, 3},
		{19999, 20},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.score); got != tt.want {
			t.Errorf("LevelFor(%d) = %d, want %d", tt.score, got, tt.want)
		}
	}
}

func TestDropIntervalFor(t *testing.T) {
	tests := []struct {
		level int
		want  time.Duration
	}{
		{1, 1000 * time.Millisecond},
		{2, 950 * time.Millisecond},
		{10, 550 * time.Millisecond},
		{19, 100 * time.Millisecond},
		{20, 50 * time.Millisecond},
		{40, 50 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := DropIntervalFor(tt.level); got != tt.want {
			t.Errorf("DropIntervalFor(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestLineClearScore(t *testing.T) {
	base := []int{0, 100, 300, 500, 800}
	for _, level := range []int{1, 2, 7} {
		for n, points := range base {
			if got := LineClearScore(n, level); got != points*level {
				t.Errorf("LineClearScore(%d, %d) = %d, want %d", n, level, got, points*level)
			}
		}
	}
	if got := LineClearScore(5, 1); got != 0 {
		t.Errorf("LineClearScore(5, 1) = %d, want 0", got)
	}
}

func TestProgressClearLines(t *testing.T) {
	p := NewProgress()
	p.Score = 2000
	p.Level = 3

	p = p.clearLines(4)
	if p.Score != 2000+800*3 {
		t.Errorf("Score = %d, want %d", p.Score, 2000+800*3)
	}
	if p.Level != 5 {
		t.Errorf("Level = %d, want 5", p.Level)
	}
	if p.DropInterval != 800*time.Millisecond {
		t.Errorf("DropInterval = %v, want 800ms", p.DropInterval)
	}
	if p.Lines != 4 || p.BlocksCleared != 40 {
		t.Errorf("Lines/Blocks = %d/%d, want 4/40", p.Lines, p.BlocksCleared)
	}

	same := p.clearLines(0)
	if same != p {
		t.Error("clearing zero lines changed progress")
	}
}

func TestProgressAddPointsRaisesLevel(t *testing.T) {
	p := NewProgress()
	p.Score = 999
	p = p.addPoints(1)
	if p.Level != 2 || p.DropInterval != 950*time.Millisecond {
		t.Errorf("after 1000 points: level %d interval %v", p.Level, p.DropInterval)
	}
}

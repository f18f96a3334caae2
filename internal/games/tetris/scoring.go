package tetris

import "time"

// Timing and scoring constants.
const (
	InitialDropInterval = 1000 * time.Millisecond
	MinDropInterval     = 50 * time.Millisecond
	dropIntervalStep    = 50 * time.Millisecond

	pointsPerLevel    = 1000
	softDropPoints    = 1
	hardDropRowPoints = 2
	maxLinesPerLock   = 4
)

// lineScores is the base award for clearing n lines with one lock.
var lineScores = [maxLinesPerLock + 1]int{0, 100, 300, 500, 800}

// Progress is the single authoritative record of a game's score state.
// Derived values (level, drop interval) are recomputed together with the
// score so they can never disagree.
type Progress struct {
	Score         int
	Level         int
	Lines         int
	BlocksCleared int
	DropInterval  time.Duration
}

// NewProgress returns the progress of a fresh game.
func NewProgress() Progress {
	return Progress{
		Level:        1,
		DropInterval: InitialDropInterval,
	}
}

// LevelFor returns the level reached at the given score.
func LevelFor(score int) int {
	return score/pointsPerLevel + 1
}

// DropIntervalFor returns the gravity interval at the given level.
func DropIntervalFor(level int) time.Duration {
	return max(MinDropInterval, InitialDropInterval-time.Duration(level-1)*dropIntervalStep)
}

// LineClearScore returns the points for clearing n lines at the given level.
// n outside 0..4 scores nothing.
func LineClearScore(n, level int) int {
	if n <= 0 || n > maxLinesPerLock {
		return 0
	}
	return lineScores[n] * level
}

// addPoints adds drop points and refreshes the derived values.
func (p Progress) addPoints(points int) Progress {
	if points <= 0 {
		return p
	}
	p.Score += points
	p.Level = LevelFor(p.Score)
	p.DropInterval = DropIntervalFor(p.Level)
	return p
}

// clearLines applies the award for n lines cleared by one lock.
// The award uses the level in effect before the update.
func (p Progress) clearLines(n int) Progress {
	if n <= 0 {
		return p
	}
	p = p.addPoints(LineClearScore(n, p.Level))
	p.Lines += n
	p.BlocksCleared += n * BoardWidth
	return p
}

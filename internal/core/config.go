package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Level    int  // Current level (starts at 1)
	Lines    int  // Cumulative lines cleared
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// ClearEvent reports a lock that cleared at least one line.
// Values are taken after the score and level update.
type ClearEvent struct {
	Blocks int // Blocks removed by this lock
	Lines  int // Cumulative lines cleared
	Score  int
	Level  int
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Clears []ClearEvent
}

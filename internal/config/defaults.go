package config

import (
	_ "embed"
	"time"

	"github.com/vovakirdan/jigsaw-tetris/internal/puzzle"
)

//go:embed defaults/jigsaw.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Game: GameConfig{
			TickRate: 60,
			Seed:     0,
		},
		Storage: StorageConfig{
			DBPath:  "~/.arcade/jigsaw.db",
			Profile: "local",
		},
		Server: ServerConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		Puzzle: PuzzleConfig{
			Characters: puzzle.DefaultCollection(),
		},
		Source: "built-in defaults",
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

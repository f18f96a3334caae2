// Package config provides YAML-based configuration for the game host:
// timing, storage, the SSH server and the character collection.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/jigsaw-tetris/internal/puzzle"
)

// Config is the complete host configuration.
type Config struct {
	Game    GameConfig    `yaml:"game"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
	Puzzle  PuzzleConfig  `yaml:"puzzle"`

	// Source names where the configuration was read from.
	Source string `yaml:"-"`
}

// GameConfig controls the simulation loop.
type GameConfig struct {
	TickRate int   `yaml:"tick_rate"` // Ticks per second
	Seed     int64 `yaml:"seed"`      // 0 = seed from the clock
}

// StorageConfig locates the scores and progress database.
type StorageConfig struct {
	DBPath  string `yaml:"db_path"`
	Profile string `yaml:"profile"` // Progress profile for local play
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"` // Empty = ~/.arcade/host_key
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// PuzzleConfig lists the characters revealed by completed puzzles, in order.
type PuzzleConfig struct {
	Characters []puzzle.Character `yaml:"characters"`
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Game.TickRate < 1 || c.Game.TickRate > 240 {
		errs = append(errs, fmt.Errorf("game.tick_rate must be in 1..240, got %d", c.Game.TickRate))
	}
	if c.Storage.DBPath == "" {
		errs = append(errs, errors.New("storage.db_path is empty"))
	}
	if c.Storage.Profile == "" {
		errs = append(errs, errors.New("storage.profile is empty"))
	}
	if c.Server.IdleTimeout < 0 {
		errs = append(errs, errors.New("server.idle_timeout is negative"))
	}
	if len(c.Puzzle.Characters) == 0 {
		errs = append(errs, errors.New("puzzle.characters is empty"))
	}
	for i, ch := range c.Puzzle.Characters {
		if ch.ID <= 0 || ch.Name == "" {
			errs = append(errs, fmt.Errorf("puzzle.characters[%d] needs an id and a name", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid %s: %w", c.Source, errors.Join(errs...))
	}
	return nil
}

// normalize fills derived fields after loading.
func (c *Config) normalize() {
	for i, ch := range c.Puzzle.Characters {
		if ch.ImageURL == "" && ch.ID > 0 {
			c.Puzzle.Characters[i].ImageURL = puzzle.ArtworkURL(ch.ID)
		}
	}
}

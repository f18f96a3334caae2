// jigsaw is a terminal Tetris whose cleared lines unlock jigsaw puzzle pieces.
//
// Usage:
//
//	jigsaw play              - Play Tetris straight away
//	jigsaw menu              - Start the interactive menu
//	jigsaw puzzle            - Open the jigsaw board
//	jigsaw scores            - Show high scores
//	jigsaw progress          - Show or reset jigsaw progress
//	jigsaw serve             - Start SSH server for remote play
//	jigsaw config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 60)
//	--seed <value>    - Set RNG seed for reproducible gameplay
//	--db <path>       - Set database path (default: ~/.arcade/jigsaw.db)
//	--profile <name>  - Set progress profile (default: local)
//	--config <path>   - Read configuration from a YAML file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/jigsaw-tetris/internal/config"
	"github.com/vovakirdan/jigsaw-tetris/internal/core"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagProfile string
	flagConfig  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jigsaw",
	Short: "Jigsaw Tetris - clear lines, unlock puzzle pieces",
	Long: `Jigsaw Tetris is a terminal Tetris with a collection meta-game.
Every 7 cleared blocks unlock a jigsaw piece; assemble all 24 pieces
to reveal a character and move on to the next puzzle.

Available commands:
  play     - Play Tetris straight away
  menu     - Interactive menu
  puzzle   - Open the jigsaw board
  scores   - View high scores
  progress - Show or reset jigsaw progress
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  jigsaw menu
  jigsaw play --seed 42
  jigsaw scores --all
  jigsaw serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/jigsaw.db", "Path to scores and progress database")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "local", "Progress profile")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(puzzleCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig reads the configuration and applies flags the user set
// explicitly on top of it.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Game.TickRate = flagFPS
	}
	if flags.Changed("seed") {
		cfg.Game.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if flags.Changed("profile") {
		cfg.Storage.Profile = flagProfile
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// newLogger returns the logger used by non-interactive commands.
func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "jigsaw",
	})
}

// newFileLogger returns a logger writing to ~/.arcade/jigsaw.log, which keeps
// log lines out of the full-screen UI. The returned func closes the file.
func newFileLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), func() {}
	}

	path := filepath.Join(home, ".arcade", "jigsaw.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "jigsaw",
	})
	//nolint:errcheck // Best-effort close
	return logger, func() { f.Close() }
}

// runtimeConfig builds the per-session config from the terminal size.
func runtimeConfig(cfg config.Config) core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: cfg.Game.TickRate,
		Seed:     cfg.Game.Seed,
	}
}

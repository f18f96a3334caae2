package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jigsaw-tetris/internal/platform/tui"
	"github.com/vovakirdan/jigsaw-tetris/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Tetris",
	Long: `Start a game of Tetris right away.

Every cleared line is worth 10 blocks towards your jigsaw puzzle.

Controls:
  Left/Right/A/D - Move
  Up/W/Space     - Rotate
  Down/S         - Soft drop
  Enter          - Hard drop
  P              - Pause
  R              - Restart (after game over)
  Tab            - Peek at the jigsaw board
  B/Esc          - Back to menu (when paused or over)
  Q/Ctrl+C       - Quit

Examples:
  jigsaw play
  jigsaw play --seed 42
  jigsaw play --fps 30`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		runSession(cmd, tui.ScreenGame)
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
Your jigsaw progress is shown on the menu and saved as you play.

Examples:
  jigsaw menu
  jigsaw menu --profile alice`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		runSession(cmd, tui.ScreenMenu)
	},
}

var puzzleCmd = &cobra.Command{
	Use:   "puzzle",
	Short: "Open the jigsaw board",
	Long: `Open the jigsaw board to place unlocked pieces.

Controls:
  Arrows/hjkl   - Move the cursor
  Tab/[ ]       - Pick a piece from the tray
  Enter/Space   - Place the piece
  N             - Start the next puzzle (when complete)
  Esc/B         - Back
  Q             - Quit`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		runSession(cmd, tui.ScreenPuzzle)
	},
}

// runSession runs a local full-screen session starting on the given screen.
func runSession(cmd *cobra.Command, start tui.ScreenID) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog := newFileLogger()
	defer closeLog()
	logger.Info("session starting", "config", cfg.Source, "profile", cfg.Storage.Profile, "screen", start)

	// Open storage
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database, progress will not be saved: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	env := tui.NewEnv(store, cfg.Storage.Profile, cfg.Puzzle.Characters, logger)

	runErr := tui.Run(env, runtimeConfig(cfg), start)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jigsaw-tetris/internal/platform/tui"
	"github.com/vovakirdan/jigsaw-tetris/internal/puzzle"
	"github.com/vovakirdan/jigsaw-tetris/internal/storage"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show jigsaw progress",
	Long: `Show the jigsaw progress of the current profile.

The board legend is:
  #  placed piece
  +  unlocked piece waiting in the tray
  .  locked piece

Examples:
  jigsaw progress
  jigsaw progress --profile ssh:alice
  jigsaw progress profiles
  jigsaw progress reset`,
	Args: cobra.NoArgs,
	Run:  runProgressShow,
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the jigsaw progress of the current profile",
	Args:  cobra.NoArgs,
	Run:   runProgressReset,
}

var progressProfilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List profiles with saved progress",
	Args:  cobra.NoArgs,
	Run:   runProgressProfiles,
}

func init() {
	progressCmd.AddCommand(progressResetCmd)
	progressCmd.AddCommand(progressProfilesCmd)
}

// openStore loads the configuration and opens the database or exits.
func openStore(cmd *cobra.Command) (*storage.Store, string, []puzzle.Character) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	return store, cfg.Storage.Profile, cfg.Puzzle.Characters
}

func runProgressShow(cmd *cobra.Command, _ []string) {
	store, profile, collection := openStore(cmd)
	defer store.Close()

	env := tui.NewEnv(store, profile, collection, newLogger())
	tr := env.Tracker
	rank := tr.Rank()

	fmt.Printf("Jigsaw progress - %s\n", profile)
	fmt.Println()
	fmt.Printf("  Puzzle:      #%d (%s)\n", tr.PuzzleNumber(), revealName(tr))
	fmt.Printf("  Unlocked:    %d/%d\n", tr.UnlockedCount(), puzzle.PieceCount)
	fmt.Printf("  Placed:      %d/%d\n", tr.PlacedCount(), puzzle.PieceCount)
	fmt.Printf("  Completion:  %.0f%%\n", tr.CompletionPercent())
	fmt.Printf("  Rank:        %s\n", rank.Title)
	fmt.Printf("  Blocks:      %d", tr.TotalBlocks())
	if n := tr.BlocksToNextPiece(); n > 0 {
		fmt.Printf(" (next piece in %d)", n)
	}
	fmt.Println()
	fmt.Printf("  Completed:   %d\n", tr.CompletedPuzzles())
	fmt.Println()

	for _, line := range boardLines(tr) {
		fmt.Println("  " + line)
	}
}

// revealName hides the character until its puzzle is complete.
func revealName(tr *puzzle.Tracker) string {
	if tr.Complete() {
		return tr.Character().Name
	}
	return "???"
}

// boardLines draws the puzzle grid in plain text.
func boardLines(tr *puzzle.Tracker) []string {
	lines := make([]string, 0, puzzle.Rows)
	for r := range puzzle.Rows {
		var sb strings.Builder
		for c := range puzzle.Cols {
			pc, _ := tr.PieceAt(puzzle.Slot{Row: r, Col: c})
			switch {
			case pc.Placed:
				sb.WriteString("# ")
			case pc.Unlocked:
				sb.WriteString("+ ")
			default:
				sb.WriteString(". ")
			}
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}
	return lines
}

func runProgressReset(cmd *cobra.Command, _ []string) {
	store, profile, _ := openStore(cmd)
	defer store.Close()

	if err := store.ResetProgress(profile); err != nil {
		newLogger().Error("could not reset progress", "profile", profile, "error", err)
		return
	}
	fmt.Printf("Progress of %s reset.\n", profile)
}

func runProgressProfiles(cmd *cobra.Command, _ []string) {
	store, _, _ := openStore(cmd)
	defer store.Close()

	profiles, err := store.Profiles()
	if err != nil {
		newLogger().Error("could not list profiles", "error", err)
		return
	}
	if len(profiles) == 0 {
		fmt.Println("No saved progress yet.")
		return
	}
	for _, p := range profiles {
		fmt.Println(p)
	}
}

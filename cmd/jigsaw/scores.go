package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/jigsaw-tetris/internal/platform/tui"
	"github.com/vovakirdan/jigsaw-tetris/internal/storage"
)

var (
	flagScoresAll   bool
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top scores of the current profile, or of every player
with --all.

Examples:
  jigsaw scores
  jigsaw scores --all --limit 20
  jigsaw scores --profile ssh:alice
  jigsaw scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show scores of every profile")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the selected scores")
}

func runScores(cmd *cobra.Command, _ []string) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	profile := cfg.Storage.Profile
	title := "High Scores - " + profile
	if flagScoresAll {
		profile = ""
		title = "High Scores - all players"
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(profile); err != nil {
			newLogger().Error("could not clear scores", "error", err)
			return
		}
		fmt.Println("Scores cleared.")
		return
	}

	scores, err := store.TopScores(profile, flagScoresLimit)
	if err != nil {
		newLogger().Error("could not retrieve scores", "error", err)
		return
	}

	fmt.Println(title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Run 'jigsaw play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-16s  %s\n", "Rank", "Score", "Level", "Lines", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-5s  %-16s  %s\n", "----", "-----", "-----", "-----", "------", "----")

	for i, e := range scores {
		fmt.Printf("  %-4d  %-8d  %-5d  %-5d  %-16s  %s\n",
			i+1, e.Score, e.Level, e.Lines, e.Profile, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if stats, err := store.Stats(profile); err == nil {
		fmt.Println(tui.FormatStats(stats))
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/grid-arcade/internal/platform/tui"
	"github.com/vovakirdan/grid-arcade/internal/registry"
	"github.com/vovakirdan/grid-arcade/internal/scores"
)

var flagClearRuns bool

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show best scores and run history",
	Long: `Display the best score of every level and variant played, followed by
the top 10 recorded runs. Without a game, opens the interactive scoreboard.

Examples:
  arcade scores
  arcade scores robots
  arcade scores snake --clear-runs`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearRuns, "clear-runs", false, "Delete the run history of the game")
}

func runScores(_ *cobra.Command, args []string) {
	e, err := setup(os.Stderr, "arcade")
	if err != nil {
		exitErr(nil, "%v", err)
	}

	if len(args) == 0 {
		var runs tui.RunLister
		if e.db != nil {
			runs = e.db
		}
		if err := tui.RunScoreboard(e.stores, runs); err != nil {
			exitErr(e, "%v", err)
		}
		e.close()
		return
	}

	gameID := args[0]
	info, ok := registry.Info(gameID)
	if !ok {
		exitErr(e, "unknown game %q (run 'arcade list' to see available games)", gameID)
	}

	if flagClearRuns {
		if e.db == nil {
			exitErr(e, "no run database")
		}
		if err := e.db.ClearRuns(gameID); err != nil {
			exitErr(e, "%v", err)
		}
		fmt.Printf("Cleared run history of %s.\n", info.Title)
		e.close()
		return
	}

	printBest(e, info)
	if e.db != nil {
		if err := printRuns(e, info); err != nil {
			exitErr(e, "%v", err)
		}
	}
	e.close()
}

func printBest(e *env, info registry.GameInfo) {
	fmt.Printf("Best Scores - %s\n", info.Title)
	fmt.Println()

	table := scores.Load(e.stores(info.ID), info.Levels, info.Variants)

	variant := "Variant"
	if info.VariantLabel != "" {
		variant = info.VariantLabel
	}
	fmt.Printf("  %-5s  %-8s  %s\n", "Level", variant, "Best")
	fmt.Printf("  %-5s  %-8s  %s\n", "-----", "-------", "----")

	printed := 0
	for level, row := range table.Rows() {
		for v, best := range row {
			if best == 0 {
				continue
			}
			fmt.Printf("  %-5d  %-8d  %d\n", level, v, best)
			printed++
		}
	}
	if printed == 0 {
		fmt.Println("  No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", info.ID)
	}
	fmt.Println()
}

func printRuns(e *env, info registry.GameInfo) error {
	runs, err := e.db.TopRuns(info.ID, 10)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return nil
	}

	fmt.Println("Top Runs")
	fmt.Println()
	fmt.Printf("  %-4s  %-10s  %-5s  %-7s  %s\n", "Rank", "Score", "Level", "Variant", "Date")
	fmt.Printf("  %-4s  %-10s  %-5s  %-7s  %s\n", "----", "-----", "-----", "-------", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-10d  %-5d  %-7d  %s\n", i+1, r.Score, r.Level, r.Variant,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := e.db.Stats(info.ID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Runs: %d  Best: %d  Average: %.1f\n", stats.RunsCount, stats.HighScore, stats.AvgScore)
	return nil
}

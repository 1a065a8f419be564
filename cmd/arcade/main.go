// arcade runs three tick-driven grid games (blocks, snake and robots) in the
// terminal, in a window, over SSH, and exposes their scores over HTTP.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play [game]       - Play in the terminal
//	arcade window [game]     - Play in a desktop window
//	arcade scores [game]     - Show best scores and recorded runs
//	arcade serve             - Start SSH server for remote play
//	arcade web               - Start the read-only HTTP API
//
// Global flags:
//
//	--config <path> - Config file (default: ~/.arcade/configs/arcade.yaml)
//	--fps <rate>    - Override the frame rate
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Override the database path
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/grid-arcade/internal/games/blocks"
	_ "github.com/vovakirdan/grid-arcade/internal/games/robots"
	_ "github.com/vovakirdan/grid-arcade/internal/games/snake"
)

var (
	// Global flags
	flagConfig  string
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagBackend string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Grid Arcade - blocks, snake and robots",
	Long: `Grid Arcade runs three classic grid games on a shared engine:
a falling-block game, a snake game and a robots chase game.

Every game starts in its menu. Up/Down pick the level, Left/Right pick
the variant (clutter rows, field or robot count), Drop starts a run,
Tab/Shift+Tab switch games and Esc leaves.

Available commands:
  list     - Show all available games
  play     - Play in the terminal
  window   - Play in a desktop window
  scores   - View best scores and run history
  serve    - Start SSH server for remote play
  web      - Start the read-only HTTP API

Examples:
  arcade list
  arcade play robots
  arcade window snake
  arcade serve --ssh :2222
  arcade scores blocks`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = from config, else time based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the SQLite database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "scores", "", "Best-score backend: file or sqlite (default from config)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}

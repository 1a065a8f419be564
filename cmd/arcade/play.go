package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/grid-arcade/internal/platform/tui"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play in the terminal",
	Long: `Start the arcade in the terminal, showing the menu of the given game
(or the first game).

Controls (default keys, see the keys section of the config):
  Arrows/WASD   - Move; Up/Down pick the level in the menu
  Z/J, X/K      - Rotate or turn; teleport in robots
  Space/Enter   - Start, hard drop
  Esc/P         - Pause, leave the menu
  Tab/Shift+Tab - Next/previous game in the menu
  Ctrl+S        - Save a PNG screenshot
  Ctrl+C        - Quit

Edits to the config file are applied while playing.

Examples:
  arcade play
  arcade play robots
  arcade play snake --fps 30
  arcade play blocks --config ./my-arcade.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		exitErr(nil, "play needs a terminal")
	}

	e, err := setup(nil, "arcade")
	if err != nil {
		exitErr(nil, "%v", err)
	}

	session, err := e.session(optionalGame(args))
	if err != nil {
		exitErr(e, "%v", err)
	}

	runErr := tui.Run(cmd.Context(), session, e.cfg, tui.RunOptions{
		ConfigPath: e.cfgPath,
		Adjust:     applyFlags,
		Logger:     e.logger,
	})

	if runErr != nil {
		exitErr(e, "running arcade: %v", runErr)
	}
	e.close()
}

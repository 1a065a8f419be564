package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/grid-arcade/internal/platform/window"
)

var windowCmd = &cobra.Command{
	Use:   "window [game]",
	Short: "Play in a desktop window",
	Long: `Start the arcade in a desktop window. Keys come from the same keys
section of the config as the terminal; chords other than shift are not
available.

Examples:
  arcade window
  arcade window blocks`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func runWindow(_ *cobra.Command, args []string) {
	e, err := setup(os.Stderr, "arcade")
	if err != nil {
		exitErr(nil, "%v", err)
	}

	session, err := e.session(optionalGame(args))
	if err != nil {
		exitErr(e, "%v", err)
	}

	if err := window.Run(session, e.cfg, e.logger); err != nil {
		exitErr(e, "running arcade: %v", err)
	}
	e.close()
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/grid-arcade/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the read-only HTTP API",
	Long: `Serve games, best scores and run history as JSON, plus PNG previews.

Routes:
  GET /api/games
  GET /api/games/:id/best
  GET /api/games/:id/runs?limit=N
  GET /api/games/:id/stats
  GET /api/games/:id/preview.png?scale=N

Examples:
  arcade web
  arcade web --addr 127.0.0.1:9000`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", "", "Listen address (default from config)")
}

func runWeb(cmd *cobra.Command, _ []string) {
	e, err := setup(os.Stderr, "arcade-web")
	if err != nil {
		exitErr(nil, "%v", err)
	}

	addr := e.cfg.Web.Addr
	if flagWebAddr != "" {
		addr = flagWebAddr
	}

	var runs web.RunSource
	if e.db != nil {
		runs = e.db
	}
	server := web.NewServer(addr, e.stores, runs, e.logger)

	fmt.Printf("Serving arcade API on %s\n", addr)
	if err := server.ListenAndServe(cmd.Context()); err != nil {
		exitErr(e, "%v", err)
	}
	e.close()
}

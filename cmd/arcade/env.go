package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/grid-arcade/internal/arcade"
	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/registry"
	"github.com/vovakirdan/grid-arcade/internal/storage"
)

// env is what every command needs: configuration, score stores and the
// optional run database.
type env struct {
	cfg     config.Config
	cfgPath string
	stores  arcade.StoreFunc
	db      *storage.Store // nil when the database cannot be opened
	logger  *log.Logger
	logFile *os.File
}

// applyFlags puts command-line overrides on top of a loaded config.
func applyFlags(cfg config.Config) config.Config {
	if flagFPS > 0 {
		cfg.FPS = flagFPS
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	if flagDBPath != "" {
		cfg.Scores.DB = flagDBPath
	}
	if flagBackend != "" {
		cfg.Scores.Backend = flagBackend
	}
	return cfg
}

// newLogger creates the charmbracelet logger commands share.
func newLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// setup loads configuration and opens storage. logTo receives log output;
// nil sends it to ~/.arcade/arcade.log so a full-screen UI stays clean.
func setup(logTo io.Writer, prefix string) (*env, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	cfg = applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, cfgPath: config.Path(flagConfig)}
	if logTo == nil {
		path := config.ExpandHome("~/.arcade/arcade.log")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err == nil {
			e.logFile, err = os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				e.logFile = nil
			}
		}
		logTo = io.Discard
		if e.logFile != nil {
			logTo = e.logFile
		}
	}
	e.logger = newLogger(logTo, prefix)

	e.db, err = storage.Open(cfg.Scores.DB)
	if err != nil {
		if cfg.Scores.Backend == config.BackendSQLite {
			e.close()
			return nil, err
		}
		// Run history is optional with the file backend.
		e.logger.Warn("could not open database, run history disabled", "error", err)
		e.db = nil
	}

	switch cfg.Scores.Backend {
	case config.BackendSQLite:
		e.stores = e.db.TableStore
	default:
		e.stores = arcade.FileStores(config.ExpandHome(cfg.Scores.Dir))
	}
	return e, nil
}

// runs returns the run recorder, or a nil interface without a database.
func (e *env) runs() arcade.RunRecorder {
	if e.db == nil {
		return nil
	}
	return e.db
}

// session creates a session starting at gameID ("" for the first game).
func (e *env) session(gameID string) (*arcade.Session, error) {
	if gameID != "" && !registry.Exists(gameID) {
		return nil, fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}
	return arcade.New(gameID, arcade.Options{
		Rand:   e.cfg.Runtime().Rand(),
		Stores: e.stores,
		Runs:   e.runs(),
		Logger: e.logger,
	})
}

func (e *env) close() {
	if e.db != nil {
		e.db.Close()
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
}

// optionalGame returns the first argument or "".
func optionalGame(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// exitErr closes e (when set), reports the error and exits.
func exitErr(e *env, format string, a ...any) {
	if e != nil {
		e.close()
	}
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", a...)
	os.Exit(1)
}

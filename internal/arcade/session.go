// Package arcade runs a set of registered games for one player: it owns
// the game instances, follows the menu's game switching, and records
// finished runs.
package arcade

import (
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/registry"
	"github.com/vovakirdan/grid-arcade/internal/scores"
	"github.com/vovakirdan/grid-arcade/internal/storage"
)

// RunRecorder stores finished runs.
type RunRecorder interface {
	SaveRun(r storage.Run) (int64, error)
}

// StoreFunc returns the best-score store of a game.
type StoreFunc func(gameID string) scores.Store

// FileStores keeps one table file per game under dir.
func FileStores(dir string) StoreFunc {
	return func(gameID string) scores.Store {
		return scores.NewFileStore(filepath.Join(dir, gameID+".scores"))
	}
}

// MemoryStores keeps tables in memory only.
func MemoryStores() StoreFunc {
	return func(string) scores.Store {
		return scores.NewMemoryStore()
	}
}

// Options configures a Session.
type Options struct {
	Rand   *rand.Rand
	Stores StoreFunc
	Runs   RunRecorder // nil disables run history
	Logger *log.Logger
}

// Session drives one player's games. Games are created on first visit and
// keep their state while the player is elsewhere. Not safe for concurrent
// use; a driver calls it from its frame loop only.
type Session struct {
	opts    Options
	games   map[string]registry.Game
	current registry.Game
	phase   core.Phase // phase of current after the last tick
	done    bool
}

// New creates a session showing the menu of game start.
// An empty start picks the first registered game.
func New(start string, opts Options) (*Session, error) {
	if opts.Rand == nil {
		opts.Rand = core.DefaultConfig().Rand()
	}
	if opts.Stores == nil {
		opts.Stores = MemoryStores()
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	if start == "" {
		games := registry.List()
		if len(games) == 0 {
			return nil, fmt.Errorf("arcade: no games registered")
		}
		start = games[0].ID
	}

	s := &Session{
		opts:  opts,
		games: make(map[string]registry.Game),
	}
	if err := s.Switch(start); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the game on screen.
func (s *Session) Current() registry.Game {
	return s.current
}

// Input returns the input buffer of the game on screen.
func (s *Session) Input() *core.InputState {
	return s.current.Input()
}

// Frame returns the snapshot of the game on screen.
func (s *Session) Frame() core.Frame {
	return s.current.Frame()
}

// Done reports whether the player left the arcade from a menu.
func (s *Session) Done() bool {
	return s.done
}

// Switch puts game id on screen.
func (s *Session) Switch(id string) error {
	g, ok := s.games[id]
	if !ok {
		var err error
		g, err = registry.Create(id, registry.Env{
			Rand:   s.opts.Rand,
			Scores: s.opts.Stores(id),
		})
		if err != nil {
			return fmt.Errorf("arcade: %w", err)
		}
		s.games[id] = g
	}

	if s.current != nil {
		s.current.Input().Reset()
	}
	s.current = g
	s.phase = g.Status().Phase
	return nil
}

// Tick runs one frame of the game on screen and follows its result.
// It returns false once the player has left the arcade.
func (s *Session) Tick() bool {
	if s.done {
		return false
	}

	g := s.current
	before := s.phase
	res, err := g.Tick()
	if err != nil {
		s.opts.Logger.Warn("score flush failed, retrying on the next save", "game", g.ID(), "error", err)
	}

	st := g.Status()
	s.phase = st.Phase
	if st.Phase == core.PhaseRaising && before.Playing() {
		s.record(g)
	}

	switch res {
	case core.Exit:
		s.done = true
		return false
	case core.NextGame:
		s.switchLogged(registry.Next(g.ID()))
	case core.PrevGame:
		s.switchLogged(registry.Prev(g.ID()))
	}
	return true
}

func (s *Session) switchLogged(id string) {
	if err := s.Switch(id); err != nil {
		s.opts.Logger.Error("cannot switch game", "game", id, "error", err)
	}
}

// record stores the run that just ended. The game still holds its score
// until the curtain reaches the reset.
func (s *Session) record(g registry.Game) {
	setting := g.Setting()
	run := storage.Run{
		GameID:  g.ID(),
		Level:   setting.Level,
		Variant: setting.Variant,
		Score:   g.Score(),
	}
	s.opts.Logger.Info("run finished", "game", run.GameID, "score", run.Score, "level", run.Level, "variant", run.Variant)

	if s.opts.Runs == nil {
		return
	}
	if _, err := s.opts.Runs.SaveRun(run); err != nil {
		s.opts.Logger.Warn("cannot record run", "game", run.GameID, "error", err)
	}
}

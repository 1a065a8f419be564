// Package window runs an arcade session in a desktop window with Ebitengine.
// Unlike a terminal, a window reports key releases, so held intents
// follow the physical keys exactly.
package window

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/grid-arcade/internal/arcade"
	"github.com/vovakirdan/grid-arcade/internal/config"
	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/render"
)

// keyboard is the slice of ebiten's input API the driver polls.
type keyboard interface {
	IsKeyJustPressed(k ebiten.Key) bool
	IsKeyJustReleased(k ebiten.Key) bool
	IsKeyPressed(k ebiten.Key) bool
}

type ebitenKeyboard struct{}

func (ebitenKeyboard) IsKeyJustPressed(k ebiten.Key) bool  { return inpututil.IsKeyJustPressed(k) }
func (ebitenKeyboard) IsKeyJustReleased(k ebiten.Key) bool { return inpututil.IsKeyJustReleased(k) }
func (ebitenKeyboard) IsKeyPressed(k ebiten.Key) bool      { return ebiten.IsKeyPressed(k) }

// Game adapts a session to ebiten.Game.
type Game struct {
	session  *arcade.Session
	bindings []binding
	kb       keyboard
	opt      render.ImageOptions
	canvas   *ebiten.Image
}

// NewGame creates the window driver for session.
func NewGame(session *arcade.Session, cfg config.Config, logger *log.Logger) (*Game, error) {
	keys, err := cfg.KeyMap()
	if err != nil {
		return nil, err
	}
	bindings, skipped := parseBindings(keys)
	if len(skipped) > 0 && logger != nil {
		logger.Debug("keys not available in window mode", "keys", skipped)
	}

	cell := cfg.Window.CellSize
	if cell <= 0 {
		cell = config.Default().Window.CellSize
	}
	return &Game{
		session:  session,
		bindings: bindings,
		kb:       ebitenKeyboard{},
		opt:      render.ImageOptions{Cell: cell, Scale: 1},
	}, nil
}

// poll feeds this frame's key transitions into in.
func (g *Game) poll(in *core.InputState) {
	shift := g.kb.IsKeyPressed(ebiten.KeyShift)

	var released core.Intent
	for _, b := range g.bindings {
		if g.kb.IsKeyJustPressed(b.key) && b.shift == shift {
			in.Press(b.intent)
		}
		if g.kb.IsKeyJustReleased(b.key) {
			released |= b.intent
		}
	}
	if released == core.IntentNone {
		return
	}

	// An intent stays held while any other key bound to it is down.
	for _, b := range g.bindings {
		if g.kb.IsKeyPressed(b.key) {
			released &^= b.intent
		}
	}
	for _, i := range core.AllIntents {
		if released&i != 0 {
			in.Release(i)
		}
	}
}

// Update runs one frame.
func (g *Game) Update() error {
	g.poll(g.session.Input())
	if !g.session.Tick() {
		return ebiten.Termination
	}
	return nil
}

// Draw paints the current frame.
func (g *Game) Draw(screen *ebiten.Image) {
	img := render.Image(g.session.Frame(), g.opt)
	if g.canvas != nil {
		g.canvas.Deallocate()
	}
	g.canvas = ebiten.NewImageFromImage(img)
	screen.DrawImage(g.canvas, nil)
}

// Layout keeps the logical screen at the frame's pixel size; ebiten scales
// it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return render.ImageSize(g.session.Frame(), g.opt)
}

// Run opens the window and blocks until the player leaves the arcade or
// closes it.
func Run(session *arcade.Session, cfg config.Config, logger *log.Logger) error {
	g, err := NewGame(session, cfg, logger)
	if err != nil {
		return err
	}

	w, h := render.ImageSize(session.Frame(), g.opt)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Grid Arcade")
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(cfg.FPS)

	return ebiten.RunGame(g)
}

// Package blocks implements the falling-block game.
package blocks

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/registry"
	"github.com/vovakirdan/grid-arcade/internal/scores"
)

const (
	Width        = 10
	Height       = 20
	Buffer       = 2 // hidden spawn rows above the visible board
	AdvanceSpeed = 11
	MaxClutter   = 14
	KeyDelay     = 2
)

const id = "blocks"

func init() {
	registry.Register(registry.GameInfo{
		ID:           id,
		Title:        "Blocks",
		Order:        0,
		Levels:       core.MaxLevel,
		Variants:     MaxClutter + 1,
		VariantLabel: "clutter",
	}, func(env registry.Env) registry.Game {
		return New(env.Rand, env.Scores)
	})
}

type board = core.Grid[struct{}]

// Game is one block game instance. Not safe for concurrent use.
type Game struct {
	life    *core.Lifecycle
	input   core.InputState
	rng     *rand.Rand
	catalog *Catalog
	table   *scores.Table

	board   *board
	current Piece
	next    Piece
	pos     core.Point
	lines   []int // full rows waiting for the Clearing flash to end

	// Placing flash.
	landed    Piece
	landedPos core.Point

	clutter int
	level   int

	points      uint32
	dropRate    uint32
	speed       int
	remaining   int
	gravityTick int
	cleared     int
}

// New creates a game in the menu. The best-score table is read from store.
func New(rng *rand.Rand, store scores.Store) *Game {
	g := &Game{
		rng:       rng,
		catalog:   defaultCatalog,
		table:     scores.Load(store, core.MaxLevel, MaxClutter+1),
		board:     core.NewGrid[struct{}](Width, Height+Buffer),
		speed:     core.MaxLevel,
		remaining: AdvanceSpeed,
		current:   I2,
		next:      I2,
	}
	g.life = core.NewLifecycle(core.Curtain{From: Height + Buffer, To: Buffer}, (*rules)(g))
	g.newPiece()
	g.newPiece()
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return id
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Blocks"
}

// Input returns the input buffer.
func (g *Game) Input() *core.InputState {
	return &g.input
}

// Tick runs one frame.
func (g *Game) Tick() (core.TickResult, error) {
	return g.life.Tick(&g.input)
}

// Status returns the current phase.
func (g *Game) Status() core.Status {
	return g.life.Status()
}

// Setting returns the score-table key of the current run.
func (g *Game) Setting() core.Setting {
	return core.Setting{Level: g.level, Variant: g.clutter}
}

// Score returns the points of the current run.
func (g *Game) Score() uint32 {
	return g.points
}

// Level returns the current level, which rises as lines are cleared.
func (g *Game) Level() int {
	return core.MaxLevel - g.speed
}

// Best returns the best score for the current setting.
func (g *Game) Best() uint32 {
	return g.table.Get(g.level, g.clutter)
}

func (g *Game) newPiece() {
	g.current = g.next
	g.gravityTick = 0
	g.next = RandomPiece(g.rng)

	w, _ := g.catalog.Footprint(g.current).Size()
	y := 1
	if g.current == I1 {
		y = 0
	}
	g.pos = core.Pt((Width-w)/2, y)
	if !g.move(g.pos) || !g.board.AllClear(Buffer) {
		g.life.GameOver()
	}
}

func (g *Game) reset() {
	g.board = core.NewGrid[struct{}](Width, Height+Buffer)
	g.newPiece()
	g.newPiece()
	g.points = 0
	g.dropRate = 0
	g.cleared = 0
	g.lines = g.lines[:0]
	g.speed = core.MaxLevel - g.level
	g.remaining = (g.level + 1) * AdvanceSpeed
	for i := 0; i < g.clutter; i++ {
		g.board.RandomLine(Height+Buffer-1-i, core.Filled(struct{}{}), g.rng)
	}
}

// award adds the line-clear bonus for n lines at the current level.
func (g *Game) award(n int) {
	mult := uint32(g.Level() + 1)
	switch n {
	case 1:
		g.points += 40 * mult
	case 2:
		g.points += 100 * mult
	case 3:
		g.points += 300 * mult
	default:
		g.points += 1200 * mult
	}
}

func (g *Game) move(p core.Point) bool {
	if g.board.Accepts(g.catalog.Footprint(g.current), p) {
		g.pos = p
		return true
	}
	return false
}

func (g *Game) rotate(p Piece) {
	if g.board.Accepts(g.catalog.Footprint(p), g.pos) {
		g.current = p
	}
}

func (g *Game) hardDrop() {
	for g.life.Is(core.PhaseActive) {
		g.dropRate++
		g.down()
	}
}

// down moves the piece one row, or lands it.
func (g *Game) down() {
	if g.move(g.pos.Add(core.Pt(0, 1))) {
		return
	}

	g.points += g.dropRate
	g.dropRate = 0
	g.board.Stamp(g.catalog.Footprint(g.current), g.pos)

	if !g.board.FullLines(&g.lines) {
		g.landed, g.landedPos = g.current, g.pos
		g.life.Enter(core.PhasePlacing, 0)
		return
	}

	n := len(g.lines)
	g.remaining -= n
	for g.remaining <= 0 {
		g.remaining += AdvanceSpeed
		if g.speed > 1 {
			g.speed--
		}
	}
	g.life.Enter(core.PhaseClearing, 3*n)
}

func (g *Game) clearLines() {
	g.award(len(g.lines))
	g.cleared += len(g.lines)
	g.board.ClearLines(&g.lines)
}

// shift moves the piece sideways, honoring the autorepeat delay.
func (g *Game) shift(dx int, in *core.InputState) {
	if in.Autorepeat == 0 || in.Autorepeat > KeyDelay {
		g.move(g.pos.Add(core.Pt(dx, 0)))
	}
	if in.Autorepeat <= KeyDelay {
		in.Autorepeat++
	}
}

func (g *Game) active(in *core.InputState) {
	switch {
	case in.Active(core.IntentLeft):
		g.shift(-1, in)
	case in.Active(core.IntentRight):
		g.shift(1, in)
	}

	if in.Take(core.IntentSecondary) {
		g.rotate(g.current.RotateRight())
	} else {
		a, up := in.Take(core.IntentPrimary), in.Take(core.IntentUp)
		if a || up {
			g.rotate(g.current.RotateLeft())
		}
	}

	switch {
	case in.Take(core.IntentDrop):
		g.hardDrop()
	case in.Active(core.IntentDown):
		g.dropRate++
		g.down()
	default:
		g.dropRate = 0
		g.gravityTick = (g.gravityTick + 1) % g.speed
		if g.gravityTick == 0 {
			g.down()
		}
	}
}

// rules plugs the block game into core.Lifecycle.
type rules Game

func (r *rules) Step(l *core.Lifecycle, in *core.InputState) {
	g := (*Game)(r)
	st := l.Status()
	switch st.Phase {
	case core.PhaseActive:
		g.active(in)
	case core.PhaseClearing:
		if st.Frames > 0 {
			l.Enter(core.PhaseClearing, st.Frames-1)
			return
		}
		g.clearLines()
		l.Enter(core.PhaseActive, 0)
		g.newPiece()
	case core.PhasePlacing:
		l.Enter(core.PhaseActive, 0)
		g.newPiece()
	}
}

func (r *rules) ChangeVariant(delta int) error {
	g := (*Game)(r)
	switch {
	case delta > 0 && g.clutter < MaxClutter:
		g.board.RandomLine(Height+Buffer-1-g.clutter, core.Filled(struct{}{}), g.rng)
		g.clutter++
	case delta < 0 && g.clutter > 0:
		g.clutter--
		g.board.ClearLine(Height + Buffer - 1 - g.clutter)
	}
	return nil
}

func (r *rules) ChangeLevel(delta int) {
	g := (*Game)(r)
	level := core.Clamp(g.level+delta, 0, core.MaxLevel-1)
	if level == g.level {
		return
	}
	g.level = level
	g.speed = core.MaxLevel - level
	g.remaining = (level + 1) * AdvanceSpeed
}

func (r *rules) NewGame() error {
	g := (*Game)(r)
	_, err := g.table.Update(g.level, g.clutter, g.points)
	g.reset()
	if err != nil {
		return fmt.Errorf("blocks: %w", err)
	}
	return nil
}

// Package snake implements the snake game on a wrap-around board.
package snake

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
	BonusTime    = 24 // steps a bonus stays on the board
	NoBonusTime  = 32 // steps between bonuses
	StartGrowth  = 3
	DefaultLevel = 9
)

const id = "snake"

func init() {
	registry.Register(registry.GameInfo{
		ID:           id,
		Title:        "Snake",
		Order:        1,
		Levels:       core.MaxLevel,
		Variants:     Fields,
		VariantLabel: "field",
	}, func(env registry.Env) registry.Game {
		return New(env.Rand, env.Scores)
	})
}

// Segment is the payload of a board cell: a wall or a body segment that
// remembers the direction the snake left it in. The tail follows those
// directions to find the next segment.
type Segment struct {
	Wall bool
	Dir  core.Direction
}

var start = core.Pt(Width/2, Height/2)

// Game is one snake game instance. Not safe for concurrent use.
type Game struct {
	life  *core.Lifecycle
	input core.InputState
	rng   *rand.Rand
	table *scores.Table

	board     *core.Grid[Segment]
	head      core.Point
	tail      core.Point
	direction core.Direction
	food      core.Point
	bonus     *core.Point
	bonusTime int
	growth    int

	field int
	level int

	points       uint32
	speed        int
	movementTick int
	animTick     int
}

// New creates a game in the menu on the first field.
func New(rng *rand.Rand, store scores.Store) *Game {
	g := &Game{
		rng:   rng,
		table: scores.Load(store, core.MaxLevel, Fields),
		level: DefaultLevel,
	}
	g.life = core.NewLifecycle(core.Curtain{From: 0, To: Height}, (*rules)(g))
	g.reset()
	return g
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return id
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
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
	return core.Setting{Level: g.level, Variant: g.field}
}

// Score returns the points of the current run.
func (g *Game) Score() uint32 {
	return g.points
}

// Level returns the current level.
func (g *Game) Level() int {
	return core.MaxLevel - g.speed
}

// Best returns the best score for the current setting.
func (g *Game) Best() uint32 {
	return g.table.Get(g.level, g.field)
}

func (g *Game) reset() {
	g.board = field(g.field)
	g.direction = core.DirRight
	g.head = start
	g.tail = start
	g.bonus = nil
	g.growth = StartGrowth
	g.food = g.randomFreeSpot()
	g.bonusTime = NoBonusTime
	g.points = 0
	g.speed = core.MaxLevel - g.level
}

// randomFreeSpot picks a random cell, falling back to a scan from it when
// that cell is taken. The head and the food do not count as free.
func (g *Game) randomFreeSpot() core.Point {
	x, y := g.rng.Intn(Width), g.rng.Intn(Height)
	if g.free(core.Pt(x, y)) {
		return core.Pt(x, y)
	}
	for xo := 0; xo < Width; xo++ {
		for yo := 0; yo < Height; yo++ {
			p := core.Pt((x+xo)%Width, (y+yo)%Height)
			if g.free(p) {
				return p
			}
		}
	}
	return core.Pt(x, y)
}

func (g *Game) free(p core.Point) bool {
	return g.board.AtPoint(p).IsEmpty() && p != g.head && p != g.food
}

// advance moves the snake one cell.
func (g *Game) advance() {
	g.bonusTime--
	if g.bonusTime == 0 {
		if g.bonus != nil {
			g.bonus = nil
			g.bonusTime = NoBonusTime
		} else {
			p := g.randomFreeSpot()
			g.bonus = &p
			g.bonusTime = BonusTime
		}
	}

	g.board.SetPoint(g.head, core.Filled(Segment{Dir: g.direction}))
	next := core.Wrap(g.head, g.direction, Width, Height)
	if g.board.AtPoint(next).Filled {
		g.life.GameOver()
		return
	}
	if next == g.food {
		g.points += uint32(core.MaxLevel - g.speed + 1)
		g.growth++
		g.food = g.randomFreeSpot()
	}
	g.head = next
	g.board.SetPoint(g.head, core.Filled(Segment{Dir: g.direction}))

	if g.bonus != nil && *g.bonus == g.head {
		g.points += uint32(g.bonusTime*4 + 4)
		g.bonus = nil
		g.bonusTime = NoBonusTime
	}

	if g.growth > 0 {
		g.growth--
		return
	}
	if c := g.board.AtPoint(g.tail); c.Filled && !c.Value.Wall {
		g.board.SetPoint(g.tail, core.Empty[Segment]())
		g.tail = core.Wrap(g.tail, c.Value.Dir, Width, Height)
	}
}

// steer sets the heading unless it points straight back into the
// segment behind the head.
func (g *Game) steer(d core.Direction) {
	if c := g.board.AtPoint(g.head); c.Filled && !c.Value.Wall && d == c.Value.Dir.Opposite() {
		return
	}
	g.direction = d
}

func (g *Game) active(in *core.InputState) {
	if in.Active(core.IntentLeft) {
		g.steer(core.DirLeft)
	}
	if in.Active(core.IntentRight) {
		g.steer(core.DirRight)
	}
	if in.Active(core.IntentUp) {
		g.steer(core.DirUp)
	}
	if in.Active(core.IntentDown) {
		g.steer(core.DirDown)
	}
	if in.Take(core.IntentPrimary) {
		g.steer(g.direction.TurnLeft())
	}
	if in.Take(core.IntentSecondary) {
		g.steer(g.direction.TurnRight())
	}

	if g.movementTick == 0 {
		g.advance()
	}
	g.movementTick = (g.movementTick + 1) % g.speed
	g.animTick = (g.animTick + 1) % 4
}

// rules plugs snake into core.Lifecycle.
type rules Game

func (r *rules) Step(l *core.Lifecycle, in *core.InputState) {
	if l.Is(core.PhaseActive) {
		(*Game)(r).active(in)
	}
}

// ChangeVariant flushes under the old field before switching, so the board
// and Setting always agree even when the flush fails.
func (r *rules) ChangeVariant(delta int) error {
	g := (*Game)(r)
	err := g.flush()
	g.field = (g.field + delta + Fields) % Fields
	g.reset()
	return err
}

func (r *rules) ChangeLevel(delta int) {
	g := (*Game)(r)
	g.level = core.Clamp(g.level+delta, 0, core.MaxLevel-1)
	g.speed = core.MaxLevel - g.level
}

func (r *rules) NewGame() error {
	g := (*Game)(r)
	err := g.flush()
	g.reset()
	return err
}

func (g *Game) flush() error {
	if _, err := g.table.Update(g.level, g.field, g.points); err != nil {
		return fmt.Errorf("snake: %w", err)
	}
	return nil
}

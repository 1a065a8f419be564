// Package robots implements the robot-evasion game: robots walk straight
// at the player and wreck themselves on each other.
package robots

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/registry"
	"github.com/vovakirdan/grid-arcade/internal/scores"
)

const (
	Width         = 10
	Height        = 20
	MaxRobots     = 20
	DefaultRobots = 5
	Teleports     = 8
	BlastRadius   = 1
)

const id = "robots"

func init() {
	registry.Register(registry.GameInfo{
		ID:           id,
		Title:        "Robots",
		Order:        2,
		Levels:       core.MaxLevel,
		Variants:     MaxRobots + 1,
		VariantLabel: "robots",
		VariantMin:   1,
	}, func(env registry.Env) registry.Game {
		return New(env.Rand, env.Scores)
	})
}

// Thing is what occupies a board cell.
type Thing uint8

const (
	Robot Thing = iota
	Scrap
)

var center = core.Pt(Width/2, Height/2)

// Game is one robots game instance. Not safe for concurrent use.
type Game struct {
	life  *core.Lifecycle
	input core.InputState
	rng   *rand.Rand
	table *scores.Table

	board     *core.Grid[Thing]
	player    core.Point
	robots    []core.Point
	target    core.Point // teleport destination
	teleports int

	count int // robots kept on the board
	level int

	points       uint32
	speed        int
	movementTick int
	animTick     int
}

// New creates a game in the menu with the default robot count.
func New(rng *rand.Rand, store scores.Store) *Game {
	g := &Game{
		rng:   rng,
		table: scores.Load(store, core.MaxLevel, MaxRobots+1),
		count: DefaultRobots,
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
	return "Robots"
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
	return core.Setting{Level: g.level, Variant: g.count}
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
	return g.table.Get(g.level, g.count)
}

func (g *Game) reset() {
	g.board = core.NewGrid[Thing](Width, Height)
	g.player = center
	g.points = 0
	g.teleports = Teleports
	g.robots = g.robots[:0]
	g.speed = core.MaxLevel - g.level
	for i := 0; i < g.count; i++ {
		g.spawn()
	}
}

// spawn drops a robot on a random border cell. Landing on something
// wrecks it on the spot, with no points.
func (g *Game) spawn() {
	p := g.randomBorderSpot()
	g.robots = append(g.robots, p)
	if g.place(p) {
		g.validate()
	}
}

// place puts a robot at p and reports whether it was wrecked there.
func (g *Game) place(p core.Point) bool {
	if g.board.AtPoint(p).IsEmpty() {
		g.board.SetPoint(p, core.Filled(Robot))
		return false
	}
	g.board.SetPoint(p, core.Filled(Scrap))
	return true
}

// validate drops robots standing on scrap and returns the number of
// distinct cells they were wrecked on.
func (g *Game) validate() int {
	wrecks := map[core.Point]struct{}{}
	alive := g.robots[:0]
	for _, p := range g.robots {
		if g.board.AtPoint(p).Value == Scrap {
			wrecks[p] = struct{}{}
			continue
		}
		alive = append(alive, p)
	}
	g.robots = alive
	return len(wrecks)
}

func (g *Game) award(wrecks int) {
	g.points += uint32(wrecks * (g.Level() + 1))
}

func (g *Game) randomBorderSpot() core.Point {
	xc, yc := g.rng.Intn(Width), g.rng.Intn(Height)
	switch g.rng.Intn(4) {
	case 0:
		return core.Pt(xc, 0)
	case 1:
		return core.Pt(xc, Height-1)
	case 2:
		return core.Pt(0, yc)
	default:
		return core.Pt(Width-1, yc)
	}
}

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
	return g.board.AtPoint(p).IsEmpty() && p != g.player
}

// towards steps from one cell to another, one cell per axis at most.
func towards(from, to core.Point) core.Point {
	return core.Pt(from.X+core.Sign(to.X-from.X), from.Y+core.Sign(to.Y-from.Y))
}

func (g *Game) checkSafety() {
	if g.board.AtPoint(g.player).Filled {
		g.life.GameOver()
	}
}

// advance walks every robot one step toward the player.
func (g *Game) advance() {
	for _, p := range g.robots {
		g.board.SetPoint(p, core.Empty[Thing]())
	}
	for i, p := range g.robots {
		g.robots[i] = towards(p, g.player)
	}
	for _, p := range g.robots {
		g.place(p)
	}
	g.award(g.validate())
	g.checkSafety()

	if len(g.robots) < g.count {
		g.spawn()
	}
}

// blast wrecks everything in the box around p, clipped to the board.
func (g *Game) blast(p core.Point) {
	r := core.Around(p, BlastRadius).Clip(Width, Height)
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			if g.board.At(x, y).Filled {
				g.board.Set(x, y, core.Filled(Scrap))
			}
		}
	}
	g.award(g.validate())
}

func (g *Game) active(l *core.Lifecycle, in *core.InputState) {
	moves := []struct {
		intent core.Intent
		edge   func(core.Point) core.Point
	}{
		{core.IntentLeft, func(p core.Point) core.Point { return core.Pt(0, p.Y) }},
		{core.IntentRight, func(p core.Point) core.Point { return core.Pt(Width-1, p.Y) }},
		{core.IntentUp, func(p core.Point) core.Point { return core.Pt(p.X, 0) }},
		{core.IntentDown, func(p core.Point) core.Point { return core.Pt(p.X, Height-1) }},
	}
	for _, m := range moves {
		if !in.Take(m.intent) {
			continue
		}
		g.player = towards(g.player, m.edge(g.player))
		g.checkSafety()
		if !l.Is(core.PhaseActive) {
			return
		}
	}

	a, b := in.Take(core.IntentPrimary), in.Take(core.IntentSecondary)
	if (a || b) && g.teleports > 0 {
		g.teleports--
		g.target = g.randomFreeSpot()
		l.Enter(core.PhaseTeleporting, 0)
		return
	}

	if g.movementTick == 0 {
		g.advance()
	}
	g.movementTick = (g.movementTick + 1) % g.speed
	g.animTick = (g.animTick + 1) % 4
}

// teleport lands the player and blasts both ends of the jump.
func (g *Game) teleport(l *core.Lifecycle) {
	g.blast(g.player)
	g.blast(g.target)
	g.player = g.target
	l.Enter(core.PhaseActive, 0)
	g.checkSafety()
}

// rules plugs robots into core.Lifecycle.
type rules Game

func (r *rules) Step(l *core.Lifecycle, in *core.InputState) {
	g := (*Game)(r)
	switch {
	case l.Is(core.PhaseActive):
		g.active(l, in)
	case l.Is(core.PhaseTeleporting):
		g.teleport(l)
	}
}

func (r *rules) ChangeVariant(delta int) error {
	g := (*Game)(r)
	count := core.Clamp(g.count+delta, 1, MaxRobots)
	if count == g.count {
		return nil
	}
	err := g.flush()
	g.count = count
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

// flush records the run under the current level and robot count.
func (g *Game) flush() error {
	if _, err := g.table.Update(g.level, g.count, g.points); err != nil {
		return fmt.Errorf("robots: %w", err)
	}
	return nil
}

package robots

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/grid-arcade/internal/core"
	"github.com/vovakirdan/grid-arcade/internal/scores"
)

func tick(t *testing.T, g *Game, press core.Intent) {
	t.Helper()
	if press != core.IntentNone {
		g.Input().Press(press)
		g.Input().Release(press)
	}
	if _, err := g.Tick(); err != nil {
		t.Fatalf("Tick() error = %v", err)
	}
}

// newActive returns a game in play on an empty board with nothing left
// to respawn. The next Active frame advances the robots.
func newActive(t *testing.T) *Game {
	t.Helper()
	g := New(rand.New(rand.NewSource(11)), scores.NewMemoryStore())
	tick(t, g, core.IntentDrop)
	if !g.life.Is(core.PhaseActive) {
		t.Fatalf("Status() = %v, expected Active", g.Status())
	}
	g.board = core.NewGrid[Thing](Width, Height)
	g.robots = nil
	g.count = 0
	g.movementTick = 0
	return g
}

func put(g *Game, things ...core.Point) {
	for _, p := range things {
		g.robots = append(g.robots, p)
		g.board.SetPoint(p, core.Filled(Robot))
	}
}

func TestNewGame(t *testing.T) {
	g := New(rand.New(rand.NewSource(1)), scores.NewMemoryStore())

	if g.player != center {
		t.Errorf("player = %v, expected %v", g.player, center)
	}
	if g.Setting() != (core.Setting{Level: 0, Variant: DefaultRobots}) {
		t.Errorf("Setting() = %+v", g.Setting())
	}
	if g.teleports != Teleports {
		t.Errorf("teleports = %d, expected %d", g.teleports, Teleports)
	}
	if len(g.robots) == 0 || len(g.robots) > DefaultRobots {
		t.Errorf("len(robots) = %d", len(g.robots))
	}
	for _, p := range g.robots {
		if p.X != 0 && p.X != Width-1 && p.Y != 0 && p.Y != Height-1 {
			t.Errorf("robot %v spawned off the border", p)
		}
	}
}

func TestCollidingRobotsLeaveOneWreck(t *testing.T) {
	g := newActive(t)
	put(g, core.Pt(3, 9), core.Pt(3, 11), core.Pt(9, 0))

	tick(t, g, core.IntentNone)

	if c := g.board.At(4, 10); !c.Filled || c.Value != Scrap {
		t.Errorf("(4,10) = %+v, expected scrap", c)
	}
	if g.Score() != 1 {
		t.Errorf("Score() = %d, expected 1", g.Score())
	}
	if len(g.robots) != 1 {
		t.Errorf("len(robots) = %d, expected 1", len(g.robots))
	}
	if !g.life.Is(core.PhaseActive) {
		t.Errorf("Status() = %v, expected Active", g.Status())
	}
}

func TestRobotWrecksOnScrap(t *testing.T) {
	g := newActive(t)
	g.board.Set(4, 10, core.Filled(Scrap))
	put(g, core.Pt(3, 10))
	g.speed = core.MaxLevel - 4

	tick(t, g, core.IntentNone)

	if len(g.robots) != 0 {
		t.Errorf("len(robots) = %d, expected 0", len(g.robots))
	}
	if g.Score() != 5 {
		t.Errorf("Score() = %d, expected 1*(4+1)", g.Score())
	}
}

func TestRobotCatchesPlayer(t *testing.T) {
	g := newActive(t)
	put(g, core.Pt(4, 9))

	tick(t, g, core.IntentNone)

	if got := g.Status(); got != (core.Status{Phase: core.PhaseRaising, Frames: 0}) {
		t.Errorf("Status() = %v, expected Raising(0)", got)
	}
}

func TestRespawnAfterWreck(t *testing.T) {
	g := newActive(t)
	g.count = 2
	put(g, core.Pt(3, 9), core.Pt(3, 11))

	tick(t, g, core.IntentNone)

	if len(g.robots) != 1 {
		t.Fatalf("len(robots) = %d, expected one respawn", len(g.robots))
	}
	p := g.robots[0]
	if p.X != 0 && p.X != Width-1 && p.Y != 0 && p.Y != Height-1 {
		t.Errorf("respawned robot %v is off the border", p)
	}
}

func TestSpawnOnOccupiedCellWrecks(t *testing.T) {
	g := newActive(t)
	for x := 0; x < Width; x++ {
		g.board.Set(x, 0, core.Filled(Scrap))
		g.board.Set(x, Height-1, core.Filled(Scrap))
	}
	for y := 0; y < Height; y++ {
		g.board.Set(0, y, core.Filled(Scrap))
		g.board.Set(Width-1, y, core.Filled(Scrap))
	}

	g.spawn()

	if len(g.robots) != 0 {
		t.Errorf("len(robots) = %d, robot should be wrecked on arrival", len(g.robots))
	}
	if g.Score() != 0 {
		t.Errorf("Score() = %d, spawn wrecks score nothing", g.Score())
	}
}

func TestPlayerMoves(t *testing.T) {
	tests := []struct {
		name     string
		from     core.Point
		press    core.Intent
		expected core.Point
	}{
		{"left", core.Pt(5, 10), core.IntentLeft, core.Pt(4, 10)},
		{"right", core.Pt(5, 10), core.IntentRight, core.Pt(6, 10)},
		{"up", core.Pt(5, 10), core.IntentUp, core.Pt(5, 9)},
		{"down", core.Pt(5, 10), core.IntentDown, core.Pt(5, 11)},
		{"left edge", core.Pt(0, 10), core.IntentLeft, core.Pt(0, 10)},
		{"bottom edge", core.Pt(5, Height-1), core.IntentDown, core.Pt(5, Height-1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newActive(t)
			g.player = tt.from
			tick(t, g, tt.press)
			if g.player != tt.expected {
				t.Errorf("player = %v, expected %v", g.player, tt.expected)
			}
		})
	}
}

func TestHeldDirectionMovesOnce(t *testing.T) {
	g := newActive(t)
	g.Input().Press(core.IntentRight)
	tick(t, g, core.IntentNone)
	tick(t, g, core.IntentNone)
	if g.player != core.Pt(6, 10) {
		t.Errorf("player = %v, expected one step", g.player)
	}
}

func TestPlayerStepsOntoScrap(t *testing.T) {
	g := newActive(t)
	g.board.Set(4, 10, core.Filled(Scrap))
	put(g, core.Pt(9, 19))

	tick(t, g, core.IntentLeft)

	if !g.life.Is(core.PhaseRaising) {
		t.Errorf("Status() = %v, expected Raising", g.Status())
	}
	if g.robots[0] != core.Pt(9, 19) {
		t.Errorf("robot moved to %v after the player died", g.robots[0])
	}
}

func TestTeleportBlastsBothEnds(t *testing.T) {
	g := newActive(t)
	put(g, core.Pt(4, 9), core.Pt(8, 18), core.Pt(0, 0))

	tick(t, g, core.IntentPrimary)
	if !g.life.Is(core.PhaseTeleporting) {
		t.Fatalf("Status() = %v, expected Teleporting", g.Status())
	}
	if g.teleports != Teleports-1 {
		t.Errorf("teleports = %d, expected %d", g.teleports, Teleports-1)
	}
	if g.robots[0] != core.Pt(4, 9) {
		t.Error("robots should not move on the teleport frame")
	}
	if f := g.Frame(); f.Board.AtPoint(g.target).Value != core.TileTarget {
		t.Error("teleport target not marked")
	}

	g.target = core.Pt(Width-1, Height-1)
	tick(t, g, core.IntentNone)

	if !g.life.Is(core.PhaseActive) {
		t.Fatalf("Status() = %v, expected Active", g.Status())
	}
	if g.player != core.Pt(Width-1, Height-1) {
		t.Errorf("player = %v, expected the target", g.player)
	}
	for _, p := range []core.Point{core.Pt(4, 9), core.Pt(8, 18)} {
		if g.board.AtPoint(p).Value != Scrap {
			t.Errorf("%v should be scrap", p)
		}
	}
	if g.Score() != 2 {
		t.Errorf("Score() = %d, expected 2", g.Score())
	}
	if len(g.robots) != 1 || g.robots[0] != core.Pt(0, 0) {
		t.Errorf("robots = %v, expected only (0,0)", g.robots)
	}
}

func TestNoTeleportsLeft(t *testing.T) {
	g := newActive(t)
	g.teleports = 0
	put(g, core.Pt(0, 0))

	tick(t, g, core.IntentSecondary)

	if !g.life.Is(core.PhaseActive) {
		t.Errorf("Status() = %v, expected Active", g.Status())
	}
	if g.robots[0] != core.Pt(1, 1) {
		t.Errorf("robot = %v, expected the frame to advance", g.robots[0])
	}
}

func TestMovementSpeed(t *testing.T) {
	g := newActive(t)
	put(g, core.Pt(0, 10))

	// Level 0 moves every 20 frames, starting on the first.
	for i := 0; i < 21; i++ {
		tick(t, g, core.IntentNone)
	}
	if g.robots[0] != core.Pt(2, 10) {
		t.Errorf("robot = %v after 21 frames, expected two steps", g.robots[0])
	}
}

func TestMenuRobotCount(t *testing.T) {
	g := New(rand.New(rand.NewSource(5)), scores.NewMemoryStore())

	tick(t, g, core.IntentRight)
	if g.Setting().Variant != DefaultRobots+1 {
		t.Errorf("Variant = %d, expected %d", g.Setting().Variant, DefaultRobots+1)
	}
	for i := 0; i < MaxRobots+2; i++ {
		tick(t, g, core.IntentLeft)
	}
	if g.Setting().Variant != 1 {
		t.Errorf("Variant = %d, expected the floor of 1", g.Setting().Variant)
	}
	if len(g.robots) > 1 {
		t.Errorf("len(robots) = %d with one robot selected", len(g.robots))
	}

	tick(t, g, core.IntentUp)
	if g.Setting().Level != 1 || g.speed != core.MaxLevel-1 {
		t.Errorf("level = %d, speed = %d", g.Setting().Level, g.speed)
	}
}

func TestRobotCountChangeWithFailingStore(t *testing.T) {
	store := scores.NewMemoryStore()
	g := New(rand.New(rand.NewSource(5)), store)
	boom := errors.New("read-only file system")
	store.FailWith(boom)

	g.points = 40
	g.life.Enter(core.PhaseRaising, Height)
	if _, err := g.Tick(); !errors.Is(err, boom) {
		t.Fatalf("Tick() error = %v, expected %v", err, boom)
	}
	for !g.life.Is(core.PhaseMenu) {
		tick(t, g, core.IntentNone)
	}

	g.Input().Press(core.IntentRight)
	g.Input().Release(core.IntentRight)
	if _, err := g.Tick(); !errors.Is(err, boom) {
		t.Fatalf("Tick() error = %v, expected %v", err, boom)
	}
	if g.Setting().Variant != DefaultRobots+1 || len(g.robots) != DefaultRobots+1 {
		t.Errorf("Variant = %d, len(robots) = %d, expected %d for both",
			g.Setting().Variant, len(g.robots), DefaultRobots+1)
	}
	if g.table.Get(0, DefaultRobots) != 40 {
		t.Errorf("best = %d under the old count, expected 40", g.table.Get(0, DefaultRobots))
	}
}

func TestCurtainRecordsBest(t *testing.T) {
	g := New(rand.New(rand.NewSource(9)), scores.NewMemoryStore())
	tick(t, g, core.IntentDrop)
	g.points = 31

	tick(t, g, core.IntentEscape)
	tick(t, g, core.IntentEscape)
	for i := 0; i <= Height; i++ {
		tick(t, g, core.IntentNone)
	}
	if got := g.Status(); got != (core.Status{Phase: core.PhaseLowering, Frames: Height}) {
		t.Fatalf("Status() = %v, expected Lowering(%d)", got, Height)
	}
	if g.Best() != 31 || g.Score() != 0 || g.teleports != Teleports {
		t.Errorf("Best() = %d, Score() = %d, teleports = %d", g.Best(), g.Score(), g.teleports)
	}
}

func TestFrameMarksPlayer(t *testing.T) {
	g := newActive(t)
	g.board.Set(0, 0, core.Filled(Scrap))
	put(g, core.Pt(9, 19))

	f := g.Frame()
	if f.Board.AtPoint(g.player).Value != core.TilePlayer {
		t.Error("player tile missing")
	}
	if f.Board.At(0, 0).Value != core.TileScrap || f.Board.At(9, 19).Value != core.TileRobot {
		t.Error("robot or scrap tile missing")
	}
	if n, ok := f.Counter("teleports"); !ok || n != Teleports {
		t.Errorf("teleports counter = %d, %v", n, ok)
	}
}

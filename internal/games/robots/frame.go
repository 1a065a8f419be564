package robots

import "github.com/vovakirdan/grid-arcade/internal/core"

// Frame returns a snapshot with the player and any teleport target marked.
func (g *Game) Frame() core.Frame {
	st := g.life.Status()
	tiles := core.Map[Thing, core.Tile](g.board, func(c core.Cell[Thing]) core.Cell[core.Tile] {
		switch {
		case !c.Filled:
			return core.Empty[core.Tile]()
		case c.Value == Scrap:
			return core.Filled(core.TileScrap)
		default:
			return core.Filled(core.TileRobot)
		}
	})

	if st.Phase == core.PhaseTeleporting {
		tiles.SetPoint(g.target, core.Filled(core.TileTarget))
	}
	if st.Phase.Playing() || st.Phase == core.PhaseMenu {
		tiles.SetPoint(g.player, core.Filled(core.TilePlayer))
	}

	return core.Frame{
		Game:    id,
		Title:   g.Title(),
		Status:  st,
		Board:   tiles,
		Score:   g.points,
		Level:   g.Level(),
		Best:    g.Best(),
		Setting: g.Setting(),
		Counters: []core.Counter{
			{Label: "robots", Value: g.count},
			{Label: "alive", Value: len(g.robots)},
			{Label: "teleports", Value: g.teleports},
		},
		Curtain: g.life.Curtain(),
		Focus:   g.player,
	}
}

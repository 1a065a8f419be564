package blocks

import "github.com/vovakirdan/grid-arcade/internal/core"

// Frame returns a snapshot with the falling piece drawn into the board.
func (g *Game) Frame() core.Frame {
	st := g.life.Status()
	tiles := core.Map[struct{}, core.Tile](g.board, func(c core.Cell[struct{}]) core.Cell[core.Tile] {
		if c.Filled {
			return core.Filled(core.TileBlock)
		}
		return core.Empty[core.Tile]()
	})

	switch st.Phase {
	case core.PhaseActive, core.PhasePaused, core.PhaseRaising:
		overlay(tiles, g.catalog.Footprint(g.current), g.pos, core.TilePiece)
	case core.PhasePlacing:
		overlay(tiles, g.catalog.Footprint(g.landed), g.landedPos, core.TileFlash)
	case core.PhaseClearing:
		// Full rows blink while the flash counts down.
		if st.Frames%2 == 0 {
			for _, y := range g.lines {
				for x := 0; x < Width; x++ {
					tiles.Set(x, y, core.Filled(core.TileFlash))
				}
			}
		}
	}

	f := core.Frame{
		Game:    id,
		Title:   g.Title(),
		Status:  st,
		Board:   tiles,
		Hidden:  Buffer,
		Score:   g.points,
		Level:   g.Level(),
		Best:    g.Best(),
		Setting: g.Setting(),
		Counters: []core.Counter{
			{Label: "clutter", Value: g.clutter},
			{Label: "lines", Value: g.cleared},
		},
		Curtain: g.life.Curtain(),
	}
	if st.Phase != core.PhaseMenu {
		next := g.catalog.Footprint(g.next)
		f.Next = core.Map[struct{}, core.Tile](next, func(c core.Cell[struct{}]) core.Cell[core.Tile] {
			if c.Filled {
				return core.Filled(core.TilePiece)
			}
			return core.Empty[core.Tile]()
		})
	}
	return f
}

func overlay(tiles *core.Grid[core.Tile], shape *Footprint, at core.Point, t core.Tile) {
	w, h := shape.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !shape.At(x, y).Filled {
				continue
			}
			if tiles.InBounds(at.X+x, at.Y+y) {
				tiles.Set(at.X+x, at.Y+y, core.Filled(t))
			}
		}
	}
}

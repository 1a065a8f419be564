package snake

import "github.com/vovakirdan/grid-arcade/internal/core"

// Frame returns a snapshot with food, bonus and head marked.
func (g *Game) Frame() core.Frame {
	st := g.life.Status()
	tiles := core.Map[Segment, core.Tile](g.board, func(c core.Cell[Segment]) core.Cell[core.Tile] {
		switch {
		case !c.Filled:
			return core.Empty[core.Tile]()
		case c.Value.Wall:
			return core.Filled(core.TileWall)
		default:
			return core.Filled(core.TileSnake)
		}
	})

	if st.Phase.Playing() {
		tiles.SetPoint(g.food, core.Filled(core.TileFood))
		if g.bonus != nil {
			tiles.SetPoint(*g.bonus, core.Filled(core.TileBonus))
		}
		tiles.SetPoint(g.head, core.Filled(core.TileHead))
	}

	counters := []core.Counter{
		{Label: "field", Value: g.field},
		{Label: "length", Value: g.Length()},
	}
	if g.bonus != nil {
		counters = append(counters, core.Counter{Label: "bonus", Value: g.bonusTime})
	}

	return core.Frame{
		Game:     id,
		Title:    g.Title(),
		Status:   st,
		Board:    tiles,
		Score:    g.points,
		Level:    g.Level(),
		Best:     g.Best(),
		Setting:  g.Setting(),
		Counters: counters,
		Curtain:  g.life.Curtain(),
		Focus:    g.head,
	}
}

// Length returns the number of body cells, including growth still owed.
func (g *Game) Length() int {
	n := g.growth
	w, h := g.board.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if c := g.board.At(x, y); c.Filled && !c.Value.Wall {
				n++
			}
		}
	}
	if g.board.AtPoint(g.head).IsEmpty() {
		n++ // before the first step the head is not on the board yet
	}
	return n
}

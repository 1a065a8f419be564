package snake

import "github.com/vovakirdan/grid-arcade/internal/core"

// Fields is the number of selectable layouts.
const Fields = 5

// fieldLayouts are the selectable boards; '#' is a wall. The snake starts
// at the center heading right, so the cells right of center stay open.
var fieldLayouts = [Fields][Height]string{
	{
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
	},
	{
		"##########",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"#........#",
		"##########",
	},
	{
		"..........",
		"..........",
		"..##..##..",
		"..##..##..",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..##..##..",
		"..##..##..",
		"..........",
		"..........",
	},
	{
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"###....###",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
		"###....###",
		"..........",
		"..........",
		"..........",
		"..........",
	},
	{
		"####..####",
		"#........#",
		"#........#",
		"..........",
		"..........",
		"...#..#...",
		"...#..#...",
		"...#..#...",
		"..........",
		"..........",
		"..........",
		"..........",
		"...#..#...",
		"...#..#...",
		"...#..#...",
		"..........",
		"..........",
		"#........#",
		"#........#",
		"####..####",
	},
}

// field builds a fresh board for layout n.
func field(n int) *core.Grid[Segment] {
	g := core.NewGrid[Segment](Width, Height)
	for y, row := range fieldLayouts[n] {
		for x := 0; x < Width; x++ {
			if row[x] == '#' {
				g.Set(x, y, core.Filled(Segment{Wall: true}))
			}
		}
	}
	return g
}

package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gridFromStrings builds a bool grid where '#' is filled.
func gridFromStrings(rows ...string) *Grid[bool] {
	g := NewGrid[bool](len(rows[0]), len(rows))
	for y, row := range rows {
		for x, r := range row {
			if r == '#' {
				g.Set(x, y, Filled(true))
			}
		}
	}
	return g
}

func gridStrings(g *Grid[bool]) []string {
	out := make([]string, g.Height())
	for y := range out {
		b := make([]byte, g.Width())
		for x := range b {
			b[x] = '.'
			if g.At(x, y).Filled {
				b[x] = '#'
			}
		}
		out[y] = string(b)
	}
	return out
}

func TestGridOutOfRangePanics(t *testing.T) {
	g := NewGrid[bool](3, 2)

	assert.Panics(t, func() { g.At(3, 0) })
	assert.Panics(t, func() { g.At(0, -1) })
	assert.Panics(t, func() { g.Set(0, 2, Filled(true)) })
	assert.NotPanics(t, func() { g.At(2, 1) })
}

func TestAcceptsMatchesStamp(t *testing.T) {
	board := gridFromStrings(
		".....",
		"..#..",
		".....",
		"#####",
	)
	shape := gridFromStrings(
		"##",
		"#.",
	)

	tests := []struct {
		name     string
		offset   Point
		expected bool
	}{
		{"free space", Pt(0, 0), true},
		{"overlaps filled cell", Pt(2, 0), false},
		{"empty shape cell may cover filled", Pt(1, 0), true},
		{"off the right edge", Pt(4, 0), false},
		{"off the top", Pt(0, -1), false},
		{"into the floor", Pt(0, 2), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, board.Accepts(shape, tc.offset))

			if tc.expected {
				// Stamping where accepted must add exactly the shape's cells.
				c := Map[bool, bool](board, func(c Cell[bool]) Cell[bool] { return c })
				c.Stamp(shape, tc.offset)
				assert.Equal(t, board.Count()+shape.Count(), c.Count())
			}
		})
	}
}

func TestAcceptsOverEmptyCellsOfShape(t *testing.T) {
	board := gridFromStrings(
		"#..",
		"...",
	)
	shape := gridFromStrings(
		"..",
		"##",
	)
	// Empty shape row may hang outside the board.
	assert.True(t, board.Accepts(shape, Pt(1, -1)))
	assert.False(t, board.Accepts(shape, Pt(2, -1)))
}

func TestStampClips(t *testing.T) {
	board := NewGrid[bool](3, 3)
	shape := gridFromStrings(
		"##",
		"##",
	)

	board.Stamp(shape, Pt(2, -1))
	assert.Equal(t, []string{"..#", "...", "..."}, gridStrings(board))
}

func TestFullLines(t *testing.T) {
	board := gridFromStrings(
		"###",
		"#.#",
		"###",
		"###",
	)

	var lines []int
	require.True(t, board.FullLines(&lines))
	assert.Equal(t, []int{0, 2, 3}, lines)

	var none []int
	assert.False(t, NewGrid[bool](3, 3).FullLines(&none))
	assert.Empty(t, none)
}

func TestClearLines(t *testing.T) {
	tests := []struct {
		name     string
		rows     []string
		expected []string
	}{
		{
			name:     "single bottom row",
			rows:     []string{"...", "#..", ".#.", "###"},
			expected: []string{"...", "...", "#..", ".#."},
		},
		{
			name:     "non-adjacent rows",
			rows:     []string{"#..", "###", ".#.", "###", "..#"},
			expected: []string{"...", "...", "#..", ".#.", "..#"},
		},
		{
			name:     "adjacent rows",
			rows:     []string{"#..", ".#.", "###", "###"},
			expected: []string{"...", "...", "#..", ".#."},
		},
		{
			name:     "top row",
			rows:     []string{"###", "#..", "..#"},
			expected: []string{"...", "#..", "..#"},
		},
		{
			name:     "everything",
			rows:     []string{"###", "###"},
			expected: []string{"...", "..."},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := gridFromStrings(tc.rows...)
			before := g.Count()

			var lines []int
			g.FullLines(&lines)
			cleared := len(lines)
			g.ClearLines(&lines)

			assert.Empty(t, lines, "lines should be consumed")
			assert.Equal(t, tc.expected, gridStrings(g))
			assert.Equal(t, before-cleared*g.Width(), g.Count())
		})
	}
}

func TestClearLineAndRandomLine(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	g := NewGrid[bool](10, 4)

	for i := 0; i < 50; i++ {
		g.RandomLine(3, Filled(true), rng)
		n := 0
		for x := 0; x < 10; x++ {
			if g.At(x, 3).Filled {
				n++
			}
		}
		assert.GreaterOrEqual(t, n, 5)
		assert.Less(t, n, 10, "random line must leave a gap")
	}
	assert.True(t, g.AllClear(3), "other rows must not change")

	g.ClearLine(3)
	assert.Zero(t, g.Count())
}

func TestAllClear(t *testing.T) {
	g := gridFromStrings(
		"...",
		"...",
		".#.",
	)
	assert.True(t, g.AllClear(0))
	assert.True(t, g.AllClear(2))
	assert.False(t, g.AllClear(3))
}

func TestGridFromRows(t *testing.T) {
	g := GridFromRows([][]uint8{{0, 1}, {1, 1}}, "x")
	w, h := g.Size()
	require.Equal(t, 2, w)
	require.Equal(t, 2, h)
	assert.True(t, g.At(0, 0).IsEmpty())
	assert.Equal(t, "x", g.At(1, 0).Value)
	assert.Equal(t, 3, g.Count())
}

func TestMap(t *testing.T) {
	g := gridFromStrings("#.", ".#")
	m := Map[bool, Tile](g, func(c Cell[bool]) Cell[Tile] {
		if c.Filled {
			return Filled(TileBlock)
		}
		return Empty[Tile]()
	})
	assert.Equal(t, TileBlock, m.At(0, 0).Value)
	assert.True(t, m.At(1, 0).IsEmpty())
}

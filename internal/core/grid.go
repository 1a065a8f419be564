package core

import (
	"fmt"
	"math/rand"
)

// Cell is either empty or filled with a payload of type T.
type Cell[T any] struct {
	Value  T
	Filled bool
}

// Empty returns an empty cell.
func Empty[T any]() Cell[T] {
	return Cell[T]{}
}

// Filled returns a cell holding v.
func Filled[T any](v T) Cell[T] {
	return Cell[T]{Value: v, Filled: true}
}

// IsEmpty reports whether the cell holds nothing.
func (c Cell[T]) IsEmpty() bool {
	return !c.Filled
}

// GridView is the read-only side of a Grid handed to renderers.
type GridView[T any] interface {
	Size() (w, h int)
	At(x, y int) Cell[T]
}

// Grid is a fixed-size, row-major matrix of cells.
// Coordinates outside (0..W, 0..H) are a programming error and panic.
type Grid[T any] struct {
	cells  []Cell[T]
	width  int
	height int
}

// NewGrid creates an all-empty grid.
func NewGrid[T any](width, height int) *Grid[T] {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("core: invalid grid size %dx%d", width, height))
	}
	return &Grid[T]{
		cells:  make([]Cell[T], width*height),
		width:  width,
		height: height,
	}
}

// GridFromRows builds a grid from rows of equal length. Non-zero entries
// become cells filled with style.
func GridFromRows[T any](rows [][]uint8, style T) *Grid[T] {
	g := NewGrid[T](len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != g.width {
			panic(fmt.Sprintf("core: ragged footprint row %d", y))
		}
		for x, v := range row {
			if v > 0 {
				g.Set(x, y, Filled(style))
			}
		}
	}
	return g
}

// Size returns the grid dimensions.
func (g *Grid[T]) Size() (w, h int) {
	return g.width, g.height
}

// Width returns the number of columns.
func (g *Grid[T]) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid[T]) Height() int {
	return g.height
}

func (g *Grid[T]) index(x, y int) int {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		panic(fmt.Sprintf("core: cell (%d, %d) outside %dx%d grid", x, y, g.width, g.height))
	}
	return y*g.width + x
}

// At returns the cell at (x, y).
func (g *Grid[T]) At(x, y int) Cell[T] {
	return g.cells[g.index(x, y)]
}

// AtPoint returns the cell at p.
func (g *Grid[T]) AtPoint(p Point) Cell[T] {
	return g.At(p.X, p.Y)
}

// Set stores c at (x, y).
func (g *Grid[T]) Set(x, y int, c Cell[T]) {
	g.cells[g.index(x, y)] = c
}

// SetPoint stores c at p.
func (g *Grid[T]) SetPoint(p Point, c Cell[T]) {
	g.Set(p.X, p.Y, c)
}

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Count returns the number of filled cells.
func (g *Grid[T]) Count() int {
	n := 0
	for _, c := range g.cells {
		if c.Filled {
			n++
		}
	}
	return n
}

// Accepts reports whether every filled cell of shape, translated by
// offset, lands inside g over an empty cell.
func Accepts[T, S any](g *Grid[T], shape *Grid[S], offset Point) bool {
	for y := 0; y < shape.height; y++ {
		for x := 0; x < shape.width; x++ {
			if !shape.At(x, y).Filled {
				continue
			}
			gx, gy := offset.X+x, offset.Y+y
			if !g.InBounds(gx, gy) {
				return false
			}
			if g.At(gx, gy).Filled {
				return false
			}
		}
	}
	return true
}

// Accepts is the same-payload form of the package-level Accepts.
func (g *Grid[T]) Accepts(shape *Grid[T], offset Point) bool {
	return Accepts(g, shape, offset)
}

// Stamp copies every filled cell of shape, translated by offset, into g.
// Cells that fall outside g are clipped.
func (g *Grid[T]) Stamp(shape *Grid[T], offset Point) {
	for y := 0; y < shape.height; y++ {
		for x := 0; x < shape.width; x++ {
			c := shape.At(x, y)
			if !c.Filled {
				continue
			}
			gx, gy := offset.X+x, offset.Y+y
			if g.InBounds(gx, gy) {
				g.Set(gx, gy, c)
			}
		}
	}
}

// FullLines appends the indices of completely filled rows, top to bottom,
// to out and reports whether any were found.
func (g *Grid[T]) FullLines(out *[]int) bool {
	found := false
	for y := 0; y < g.height; y++ {
		full := true
		for x := 0; x < g.width; x++ {
			if !g.At(x, y).Filled {
				full = false
				break
			}
		}
		if full {
			*out = append(*out, y)
			found = true
		}
	}
	return found
}

// ClearLines removes the rows listed in lines (sorted ascending) and
// shifts everything above them down. The vacated top rows become empty.
// lines is consumed: it is empty on return.
func (g *Grid[T]) ClearLines(lines *[]int) {
	pop := func() int {
		n := len(*lines)
		if n == 0 {
			return g.height
		}
		v := (*lines)[n-1]
		*lines = (*lines)[:n-1]
		return v
	}

	next := pop()
	src := g.height - 1
	for dst := g.height - 1; dst >= 0; dst-- {
		for src == next {
			src--
			next = pop()
		}
		g.copyRow(src, dst)
		src--
	}
}

// copyRow copies row src over row dst; a negative src blanks dst.
func (g *Grid[T]) copyRow(src, dst int) {
	if src == dst {
		return
	}
	if src < 0 {
		g.ClearLine(dst)
		return
	}
	copy(g.cells[dst*g.width:(dst+1)*g.width], g.cells[src*g.width:(src+1)*g.width])
}

// ClearLine blanks row y without moving any other row.
func (g *Grid[T]) ClearLine(y int) {
	for x := 0; x < g.width; x++ {
		g.Set(x, y, Cell[T]{})
	}
}

// RandomLine fills row y with fill and then empties width/2 randomly
// chosen cells (repeats allowed), leaving at least one gap.
func (g *Grid[T]) RandomLine(y int, fill Cell[T], rng *rand.Rand) {
	for x := 0; x < g.width; x++ {
		g.Set(x, y, fill)
	}
	for i := 0; i < g.width/2; i++ {
		g.Set(rng.Intn(g.width), y, Cell[T]{})
	}
}

// AllClear reports whether the top rows of the grid are empty.
func (g *Grid[T]) AllClear(rows int) bool {
	for y := 0; y < rows; y++ {
		for x := 0; x < g.width; x++ {
			if g.At(x, y).Filled {
				return false
			}
		}
	}
	return true
}

// Map converts every cell of g through fn into a new grid.
func Map[T, U any](g GridView[T], fn func(Cell[T]) Cell[U]) *Grid[U] {
	w, h := g.Size()
	out := NewGrid[U](w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			out.Set(x, y, fn(g.At(x, y)))
		}
	}
	return out
}

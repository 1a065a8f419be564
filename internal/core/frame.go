package core

// Tile is what a renderer draws in one board cell.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileBlock      // settled block or clutter
	TilePiece      // falling piece
	TileFlash      // cleared line or just-landed piece
	TileWall
	TileSnake
	TileHead
	TileFood
	TileBonus
	TileRobot
	TileScrap
	TilePlayer
	TileTarget // teleport destination
)

// Setting is the (level, variant) pair that keys a game's best-score table.
// Variant is clutter rows, snake field or robot count.
type Setting struct {
	Level   int
	Variant int
}

// Counter is a labelled game-specific number shown beside the board.
type Counter struct {
	Label string
	Value int
}

// Frame is an immutable snapshot of one game, produced after Tick and
// handed to a renderer. The grids are copies; a renderer may keep them.
type Frame struct {
	Game     string
	Title    string
	Status   Status
	Board    *Grid[Tile]
	Hidden   int         // top rows of Board that are spawn buffer, not drawn
	Next     *Grid[Tile] // nil when the game has no preview
	Score    uint32
	Level    int // current level; may run ahead of Setting.Level
	Best     uint32
	Setting  Setting
	Counters []Counter

	Curtain Curtain
	Focus   Point // where a rising square curtain grows from
}

// Counter returns the value of the named counter.
func (f Frame) Counter(label string) (int, bool) {
	for _, c := range f.Counters {
		if c.Label == label {
			return c.Value, true
		}
	}
	return 0, false
}

// Covered reports whether the game-over curtain hides board cell (x, y).
//
// A curtain running downward from the board height fills rows from the
// bottom up while rising and clears them top down while lowering. One
// running upward from zero grows as a square around Focus while rising
// and then uncovers the board from the top.
func (f Frame) Covered(x, y int) bool {
	n := f.Status.Frames
	down := f.Curtain.From > f.Curtain.To
	switch f.Status.Phase {
	case PhaseRaising:
		if down {
			return y >= n
		}
		return Abs(x-f.Focus.X) <= n && Abs(y-f.Focus.Y) <= n
	case PhaseLowering:
		if down {
			return y >= n
		}
		return f.Board != nil && y >= f.Board.Height()-n
	}
	return false
}

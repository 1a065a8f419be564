package blocks

import (
	"math/rand"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

// Piece is one orientation of a tetromino. There are 19 of them.
type Piece uint8

const (
	I1 Piece = iota
	I2
	S1
	S2
	Z1
	Z2
	O1
	J1
	J2
	J3
	J4
	L1
	L2
	L3
	L4
	T1
	T2
	T3
	T4

	numPieces
)

// Footprint is the immutable shape of a piece orientation.
type Footprint = core.Grid[struct{}]

var pieceNames = [numPieces]string{
	"I1", "I2", "S1", "S2", "Z1", "Z2", "O1",
	"J1", "J2", "J3", "J4", "L1", "L2", "L3", "L4",
	"T1", "T2", "T3", "T4",
}

func (p Piece) String() string {
	if p < numPieces {
		return pieceNames[p]
	}
	return "Piece(?)"
}

// Family returns the shape letter: I, O, S, Z, J, L or T.
func (p Piece) Family() byte {
	return pieceNames[p][0]
}

var shapes = [numPieces][]string{
	I1: {"....", "....", "####", "...."},
	I2: {"..#.", "..#.", "..#.", "..#."},
	S1: {"...", ".##", "##."},
	S2: {".#.", ".##", "..#"},
	Z1: {"...", "##.", ".##"},
	Z2: {"..#", ".##", ".#."},
	O1: {"....", ".##.", ".##.", "...."},
	J1: {"...", "###", "..#"},
	J2: {".#.", ".#.", "##."},
	J3: {"#..", "###", "..."},
	J4: {".##", ".#.", ".#."},
	L1: {"...", "###", "#.."},
	L2: {"##.", ".#.", ".#."},
	L3: {"..#", "###", "..."},
	L4: {".#.", ".#.", ".##"},
	T1: {"...", "###", ".#."},
	T2: {".#.", "##.", ".#."},
	T3: {".#.", "###", "..."},
	T4: {".#.", ".##", ".#."},
}

var rotateRight = [numPieces]Piece{
	I1: I2, I2: I1,
	S1: S2, S2: S1,
	Z1: Z2, Z2: Z1,
	O1: O1,
	J1: J2, J2: J3, J3: J4, J4: J1,
	L1: L2, L2: L3, L3: L4, L4: L1,
	T1: T2, T2: T3, T3: T4, T4: T1,
}

// spawnable are the family base orientations new pieces are drawn from.
var spawnable = [...]Piece{I1, O1, J1, L1, S1, T1, Z1}

// Catalog holds the footprints of all orientations. It is built once and
// shared read-only by every game.
type Catalog struct {
	footprints [numPieces]*Footprint
}

// NewCatalog builds every footprint.
func NewCatalog() *Catalog {
	c := &Catalog{}
	for p, rows := range shapes {
		grid := make([][]uint8, len(rows))
		for y, row := range rows {
			grid[y] = make([]uint8, len(row))
			for x := range row {
				if row[x] == '#' {
					grid[y][x] = 1
				}
			}
		}
		c.footprints[p] = core.GridFromRows(grid, struct{}{})
	}
	return c
}

// defaultCatalog is shared by every block game in the process.
var defaultCatalog = NewCatalog()

// Footprint returns the shape of p. Callers must not modify it.
func (c *Catalog) Footprint(p Piece) *Footprint {
	return c.footprints[p]
}

// RotateRight returns the next orientation clockwise.
func (p Piece) RotateRight() Piece {
	return rotateRight[p]
}

// RotateLeft is three right rotations.
func (p Piece) RotateLeft() Piece {
	return p.RotateRight().RotateRight().RotateRight()
}

// RandomPiece draws uniformly over the seven families.
func RandomPiece(rng *rand.Rand) Piece {
	return spawnable[rng.Intn(len(spawnable))]
}

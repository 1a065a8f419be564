// Package render turns game frames into something a driver can show: a
// text screen for terminals or an image for the window and HTTP frontends.
package render

import "github.com/vovakirdan/grid-arcade/internal/core"

// Style is how one board cell looks: two runes wide in text, one colour
// everywhere.
type Style struct {
	Glyph string
	Color core.Color
}

var tileStyles = map[core.Tile]Style{
	core.TileEmpty:  {" .", core.ColorGray},
	core.TileBlock:  {"[]", core.ColorWhite},
	core.TilePiece:  {"[]", core.ColorBrightCyan},
	core.TileFlash:  {"██", core.ColorBrightWhite},
	core.TileWall:   {"##", core.ColorGray},
	core.TileSnake:  {"()", core.ColorGreen},
	core.TileHead:   {"@@", core.ColorBrightGreen},
	core.TileFood:   {"<>", core.ColorBrightRed},
	core.TileBonus:  {"$$", core.ColorBrightYellow},
	core.TileRobot:  {"}{", core.ColorOrange},
	core.TileScrap:  {"**", core.ColorRed},
	core.TilePlayer: {"@@", core.ColorBrightCyan},
	core.TileTarget: {"++", core.ColorBrightMagenta},
}

// curtainStyle draws cells hidden by the game-over curtain.
var curtainStyle = Style{"▒▒", core.ColorGray}

// TileStyle returns the style of t.
func TileStyle(t core.Tile) Style {
	if s, ok := tileStyles[t]; ok {
		return s
	}
	return tileStyles[core.TileEmpty]
}

// cellStyle resolves what is drawn at board cell (x, y) of f.
func cellStyle(f core.Frame, x, y int) Style {
	if f.Covered(x, y) {
		return curtainStyle
	}
	c := f.Board.At(x, y)
	if !c.Filled {
		return tileStyles[core.TileEmpty]
	}
	return TileStyle(c.Value)
}

package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

const (
	hudWidth = 18
	hudGap   = 2
)

// Size returns the screen size Text needs for f.
func Size(f core.Frame) (w, h int) {
	bw, bh := boardSize(f)
	return bw*2 + 2 + hudGap + hudWidth, bh + 2
}

// boardSize is the visible board in cells.
func boardSize(f core.Frame) (w, h int) {
	w, h = f.Board.Size()
	return w, h - f.Hidden
}

// Text draws f into s: the board in a box on the left and the score panel
// on the right. s should be at least Size(f).
func Text(s *core.Screen, f core.Frame) {
	s.Clear()
	bw, bh := boardSize(f)
	s.DrawBox(core.NewRect(0, 0, bw*2+2, bh+2), core.ColorGray)

	for y := 0; y < bh; y++ {
		for x := 0; x < bw; x++ {
			st := cellStyle(f, x, y+f.Hidden)
			s.DrawTextColored(1+x*2, 1+y, st.Glyph, st.Color)
		}
	}

	if f.Status.Phase == core.PhaseMenu {
		marquee(s, f, bw, bh)
	}
	hud(s, f, bw*2+2+hudGap)
}

// marquee scrolls the game title across the middle of the board.
func marquee(s *core.Screen, f core.Frame, bw, bh int) {
	text := strings.ToUpper(f.Title)
	width := bw * 2
	span := width + utf8.RuneCountInString(text)
	start := width - (f.Status.Frames*span/core.MenuCycle)%span

	y := 1 + bh/2
	i := 0
	for _, r := range text {
		if x := start + i; x >= 0 && x < width {
			s.SetColored(1+x, y, r, core.ColorBrightWhite)
		}
		i++
	}
	if (f.Status.Frames/10)%2 == 0 {
		hint := "PRESS DROP"
		s.DrawTextColored(1+(width-len(hint))/2, y+2, hint, core.ColorBrightYellow)
	}
}

func hud(s *core.Screen, f core.Frame, x int) {
	y := 1
	line := func(text string, c core.Color) {
		s.DrawTextColored(x, y, text, c)
		y++
	}

	line(f.Title, core.ColorBrightWhite)
	y++
	line(fmt.Sprintf("%-7s%10d", "SCORE", f.Score), core.ColorWhite)
	line(fmt.Sprintf("%-7s%10d", "BEST", f.Best), core.ColorYellow)
	line(fmt.Sprintf("%-7s%10d", "LEVEL", f.Level), core.ColorWhite)
	for _, c := range f.Counters {
		line(fmt.Sprintf("%-10s%7d", c.Label, c.Value), core.ColorGray)
	}

	if f.Next != nil {
		y++
		line("NEXT", core.ColorWhite)
		nw, nh := f.Next.Size()
		for ny := 0; ny < nh; ny++ {
			for nx := 0; nx < nw; nx++ {
				if c := f.Next.At(nx, ny); c.Filled {
					st := TileStyle(c.Value)
					s.DrawTextColored(x+nx*2, y, st.Glyph, st.Color)
				}
			}
			y++
		}
	}

	y++
	for _, h := range statusLines(f) {
		line(h.Glyph, h.Color)
	}
}

// statusLines are the phase hints at the bottom of the panel.
func statusLines(f core.Frame) []Style {
	switch f.Status.Phase {
	case core.PhaseMenu:
		variant := "variant"
		if len(f.Counters) > 0 {
			variant = f.Counters[0].Label
		}
		return []Style{
			{"drop   start", core.ColorBrightYellow},
			{"←/→    " + variant, core.ColorGray},
			{"↑/↓    level", core.ColorGray},
			{"tab    next game", core.ColorGray},
			{"esc    quit", core.ColorGray},
		}
	case core.PhasePaused:
		return []Style{
			{"PAUSED", core.ColorBrightYellow},
			{"any key resumes", core.ColorGray},
			{"esc    give up", core.ColorGray},
		}
	case core.PhaseRaising, core.PhaseLowering:
		return []Style{{"GAME OVER", core.ColorBrightRed}}
	}
	return nil
}

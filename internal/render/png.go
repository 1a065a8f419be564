package render

import (
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/vovakirdan/grid-arcade/internal/core"
)

// ImageOptions controls raster output.
type ImageOptions struct {
	Cell  int // pixels per board cell before scaling
	Scale int // integer upscale factor; 1 keeps the drawn size
}

// DefaultImageOptions returns the options used for screenshots.
func DefaultImageOptions() ImageOptions {
	return ImageOptions{Cell: 8, Scale: 4}
}

const (
	panelCells = 12 // width of the score panel in board cells
	lineHeight = 14 // basicfont is 13px tall
)

func setColor(dc *gg.Context, c core.Color) {
	r, g, b := c.RGB()
	dc.SetRGB255(int(r), int(g), int(b))
}

// ImageSize returns the pixel size Image produces for f.
func ImageSize(f core.Frame, opt ImageOptions) (w, h int) {
	bw, bh := boardSize(f)
	scale := max(opt.Scale, 1)
	return (bw + panelCells) * opt.Cell * scale, bh * opt.Cell * scale
}

// Image draws f with gg and upscales it without smoothing.
func Image(f core.Frame, opt ImageOptions) image.Image {
	bw, bh := boardSize(f)
	cell := float64(opt.Cell)
	dc := gg.NewContext((bw+panelCells)*opt.Cell, bh*opt.Cell)
	dc.SetRGB(0.08, 0.08, 0.1)
	dc.Clear()

	for y := 0; y < bh; y++ {
		for x := 0; x < bw; x++ {
			st := cellStyle(f, x, y+f.Hidden)
			if st == tileStyles[core.TileEmpty] {
				continue
			}
			setColor(dc, st.Color)
			dc.DrawRectangle(float64(x)*cell+1, float64(y)*cell+1, cell-1, cell-1)
			dc.Fill()
		}
	}

	// Board edge
	setColor(dc, core.ColorGray)
	dc.SetLineWidth(1)
	dc.DrawLine(float64(bw)*cell+0.5, 0, float64(bw)*cell+0.5, float64(bh)*cell)
	dc.Stroke()

	drawPanel(dc, f, float64(bw)*cell+4, cell)

	img := dc.Image()
	if opt.Scale > 1 {
		b := img.Bounds()
		return imaging.Resize(img, b.Dx()*opt.Scale, b.Dy()*opt.Scale, imaging.NearestNeighbor)
	}
	return img
}

func drawPanel(dc *gg.Context, f core.Frame, x, cell float64) {
	y := float64(lineHeight)
	text := func(s string, c core.Color) {
		setColor(dc, c)
		dc.DrawString(s, x, y)
		y += lineHeight
	}

	text(f.Title, core.ColorBrightWhite)
	text(fmt.Sprintf("SCORE %d", f.Score), core.ColorWhite)
	text(fmt.Sprintf("BEST  %d", f.Best), core.ColorYellow)
	text(fmt.Sprintf("LEVEL %d", f.Level), core.ColorWhite)
	for _, c := range f.Counters {
		text(fmt.Sprintf("%s %d", c.Label, c.Value), core.ColorGray)
	}
	// Key hints only make sense in a terminal.
	if f.Status.Phase != core.PhaseMenu {
		for _, s := range statusLines(f) {
			text(s.Glyph, s.Color)
		}
	}

	if f.Next == nil {
		return
	}
	nw, nh := f.Next.Size()
	for ny := 0; ny < nh; ny++ {
		for nx := 0; nx < nw; nx++ {
			c := f.Next.At(nx, ny)
			if !c.Filled {
				continue
			}
			setColor(dc, TileStyle(c.Value).Color)
			dc.DrawRectangle(x+float64(nx)*cell, y+float64(ny)*cell, cell-1, cell-1)
			dc.Fill()
		}
	}
}

// PNG encodes Image(f, opt) to w.
func PNG(w io.Writer, f core.Frame, opt ImageOptions) error {
	if err := imaging.Encode(w, Image(f, opt), imaging.PNG); err != nil {
		return fmt.Errorf("render: cannot encode png: %w", err)
	}
	return nil
}

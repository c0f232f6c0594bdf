package tui

import (
	"image/color"
	"math"

	"github.com/vovakirdan/nestlines/internal/core"
)

// screenSurface rasterizes canvas-space strokes onto a cell grid.
// Axis-aligned strokes become box-drawing runs; anything else is traced
// with dots. Stroke width has no meaning at cell resolution and is ignored.
type screenSurface struct {
	screen  *core.Screen
	canvasW float64
	canvasH float64
}

func newScreenSurface(screen *core.Screen, canvas core.Box) *screenSurface {
	return &screenSurface{
		screen:  screen,
		canvasW: canvas.Width(),
		canvasH: canvas.Height(),
	}
}

// cell maps a canvas point to a cell coordinate, clamped to the grid.
func (s *screenSurface) cell(x, y float64) (int, int) {
	w, h := s.screen.Width(), s.screen.Height()
	cx := int(math.Floor(x / s.canvasW * float64(w)))
	cy := int(math.Floor(y / s.canvasH * float64(h)))
	return core.Clamp(cx, 0, max(w-1, 0)), core.Clamp(cy, 0, max(h-1, 0))
}

func (s *screenSurface) StrokeLine(x0, y0, x1, y1, _ float64, c color.RGBA) {
	if s.screen.Width() == 0 || s.screen.Height() == 0 {
		return
	}
	clr := core.FromRGBA(c)
	cx0, cy0 := s.cell(x0, y0)
	cx1, cy1 := s.cell(x1, y1)

	switch {
	case x0 == x1:
		lo, hi := min(cy0, cy1), max(cy0, cy1)
		s.screen.DrawVLine(cx0, lo, hi-lo+1, core.RuneVLine, clr)
	case y0 == y1:
		lo, hi := min(cx0, cx1), max(cx0, cx1)
		s.screen.DrawHLine(lo, cy0, hi-lo+1, core.RuneHLine, clr)
	default:
		s.trace(cx0, cy0, cx1, cy1, clr)
	}
}

// trace walks a diagonal with a simple DDA.
func (s *screenSurface) trace(x0, y0, x1, y1 int, c core.Color) {
	dx, dy := x1-x0, y1-y0
	steps := max(abs(dx), abs(dy))
	if steps == 0 {
		s.screen.Plot(x0, y0, core.RuneDot, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Round(float64(x0) + t*float64(dx)))
		y := int(math.Round(float64(y0) + t*float64(dy)))
		s.screen.Plot(x, y, core.RuneDot, c)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

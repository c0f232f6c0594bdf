package nest

import (
	"image/color"

	"github.com/vovakirdan/nestlines/internal/config"
)

// Surface is anything a frame can be painted on: a terminal cell buffer,
// a window image or an offscreen raster. Coordinates are canvas units.
type Surface interface {
	StrokeLine(x0, y0, x1, y1, width float64, c color.RGBA)
}

// Axis identifies which pair a segment belongs to.
type Axis int

const (
	AxisVertical Axis = iota
	AxisHorizontal
)

// Segment is a single draw command.
type Segment struct {
	X0, Y0 float64
	X1, Y1 float64
	Width  float64
	Color  color.RGBA
	Depth  int
	Axis   Axis
}

// Frame is the ordered list of draw commands produced by one Step,
// outermost depth first.
type Frame struct {
	Index    uint64
	Segments []Segment
	Active   int // Levels updated and drawn this frame
}

// Paint replays the frame's segments onto a surface in order.
func (f Frame) Paint(s Surface) {
	for _, seg := range f.Segments {
		s.StrokeLine(seg.X0, seg.Y0, seg.X1, seg.Y1, seg.Width, seg.Color)
	}
}

// segments returns the four draw commands of a level: vertical lines span the
// box height, horizontal lines span the box width.
func (l Level) segments(p config.Palette, maxDepth int) []Segment {
	b := l.Box
	vc := p.Vertical(l.Depth, maxDepth)
	hc := p.Horizontal(l.Depth, maxDepth)
	return []Segment{
		{X0: l.Vertical.Low.Pos, Y0: b.MinY, X1: l.Vertical.Low.Pos, Y1: b.MaxY, Width: p.Thickness, Color: vc, Depth: l.Depth, Axis: AxisVertical},
		{X0: l.Vertical.High.Pos, Y0: b.MinY, X1: l.Vertical.High.Pos, Y1: b.MaxY, Width: p.Thickness, Color: vc, Depth: l.Depth, Axis: AxisVertical},
		{X0: b.MinX, Y0: l.Horizontal.Low.Pos, X1: b.MaxX, Y1: l.Horizontal.Low.Pos, Width: p.Thickness, Color: hc, Depth: l.Depth, Axis: AxisHorizontal},
		{X0: b.MinX, Y0: l.Horizontal.High.Pos, X1: b.MaxX, Y1: l.Horizontal.High.Pos, Width: p.Thickness, Color: hc, Depth: l.Depth, Axis: AxisHorizontal},
	}
}

package nest

import (
	"math"

	"github.com/vovakirdan/nestlines/internal/core"
)

// move advances the line by one frame of its velocity.
func (l *Line) move() {
	l.Pos += l.Speed * float64(l.Dir)
}

// bounce clamps the line into [lo+Buffer, hi-Buffer], pointing it back inward
// when it touched an edge.
func (l *Line) bounce(lo, hi float64) {
	if l.Pos >= hi-Buffer {
		l.Pos = hi - Buffer
		l.Dir = Backward
	} else if l.Pos <= lo+Buffer {
		l.Pos = lo + Buffer
		l.Dir = Forward
	}
}

// order keeps High at least RuntimeSeparation above Low unless the pair is
// approaching head-on, in which case the lines may pass through each other.
// Directions are never changed here.
func (p *Pair) order() {
	if p.Approaching() {
		return
	}
	if p.High.Pos <= p.Low.Pos+RuntimeSeparation {
		p.High.Pos = p.Low.Pos + RuntimeSeparation
	}
	// Inverted pair: swap with a gap.
	if p.High.Pos < p.Low.Pos {
		low := p.Low.Pos
		p.Low.Pos = p.High.Pos + RuntimeSeparation
		p.High.Pos = low - RuntimeSeparation
	}
}

// advance runs one frame of motion for the pair inside [lo, hi].
func (p *Pair) advance(lo, hi float64) {
	p.Low.move()
	p.High.move()
	p.Low.bounce(lo, hi)
	p.High.bounce(lo, hi)
	p.order()
}

// advance moves all four lines of the level inside its current box.
func (l *Level) advance() {
	l.Vertical.advance(l.Box.MinX, l.Box.MaxX)
	l.Horizontal.advance(l.Box.MinY, l.Box.MaxY)
}

// childBox derives the next depth's box from the level's current lines.
// Axes narrower than MinChildBox are widened around their center, then the
// box is kept Buffer units inside the parent.
func (l Level) childBox() core.Box {
	minX, maxX := l.Vertical.Span()
	minY, maxY := l.Horizontal.Span()

	minX, maxX = widen(minX, maxX)
	minY, maxY = widen(minY, maxY)

	minX, maxX = fit(minX, maxX, l.Box.MinX+Buffer, l.Box.MaxX-Buffer)
	minY, maxY = fit(minY, maxY, l.Box.MinY+Buffer, l.Box.MaxY-Buffer)

	return core.NewBox(minX, minY, maxX, maxY)
}

// widen expands [lo, hi] to MinChildBox around its center when it is narrower.
func widen(lo, hi float64) (float64, float64) {
	if hi-lo < MinChildBox {
		c := (lo + hi) / 2
		return c - MinChildBox/2, c + MinChildBox/2
	}
	return lo, hi
}

// fit clamps [lo, hi] into [minEdge, maxEdge]. If clamping one side leaves
// less than MinChildBox while the parent range has room, a MinChildBox window
// is placed against that edge.
func fit(lo, hi, minEdge, maxEdge float64) (float64, float64) {
	cLo, cHi := math.Max(lo, minEdge), math.Min(hi, maxEdge)
	if cHi-cLo >= MinChildBox || maxEdge-minEdge < MinChildBox {
		return cLo, cHi
	}
	switch {
	case cLo > lo:
		return minEdge, minEdge + MinChildBox
	case cHi < hi:
		return maxEdge - MinChildBox, maxEdge
	}
	return cLo, cHi
}

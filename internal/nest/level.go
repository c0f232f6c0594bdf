// Package nest implements the recursive moving-lines simulation.
//
// Each recursion depth owns two vertical and two horizontal lines that bounce
// inside the depth's box. Every frame the box of depth d+1 is rebuilt from the
// freshly moved lines of depth d, which produces a frame-inside-a-frame
// animation. The package is pure: it draws through the Surface interface and
// never touches a terminal or window itself.
package nest

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/nestlines/internal/core"
)

// Simulation constants. They are not configurable.
const (
	CanvasSize        = 800  // Default canvas width and height
	MaxDepth          = 5    // Default number of recursion levels
	SpawnSeparation   = 20.0 // Minimum gap between sibling lines at generation
	RuntimeSeparation = 10.0 // Minimum gap enforced between sibling lines while moving
	Buffer            = 5.0  // Margin between a line and its box edge
	MinChildBox       = 30.0 // Minimum width/height of a derived child box
	SpawnThreshold    = 40.0 // Inner box span required to create a deeper level at startup
	SkipThreshold     = 20.0 // Boxes no wider/taller than this are frozen for the frame
	SpeedFactor       = 0.008
	MinSpeedRatio     = 0.2
)

// ErrInvalidBox is returned when a level is generated from a box without a
// positive span on both axes.
var ErrInvalidBox = errors.New("nest: invalid box")

// Direction is the signed unit velocity of a line.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// Line is one moving line on an axis.
type Line struct {
	Pos   float64
	Dir   Direction
	Speed float64 // Fixed at generation
}

// Pair holds the two lines of one axis. Low is meant to stay at or below High.
type Pair struct {
	Low  Line
	High Line
}

// Span returns the ordered (min, max) of the two positions.
func (p Pair) Span() (float64, float64) {
	return math.Min(p.Low.Pos, p.High.Pos), math.Max(p.Low.Pos, p.High.Pos)
}

// Approaching reports whether the lines move toward each other head-on.
func (p Pair) Approaching() bool {
	return p.Low.Dir == Forward && p.High.Dir == Backward
}

// Level is the state of one recursion depth.
type Level struct {
	Depth      int
	Box        core.Box
	Vertical   Pair // x positions
	Horizontal Pair // y positions
}

// Frozen reports whether the level's box is too small to animate this frame.
func (l Level) Frozen() bool {
	return l.Box.MaxX <= l.Box.MinX+SkipThreshold || l.Box.MaxY <= l.Box.MinY+SkipThreshold
}

// NewLevel generates the initial state of a level.
// Lines start at the thirds of the box, recentered with exactly SpawnSeparation
// when the thirds are closer than that. Directions are random and speeds are
// drawn from a range that shrinks with depth.
func NewLevel(depth int, box core.Box, rng *rand.Rand) (Level, error) {
	if depth < 0 {
		return Level{}, fmt.Errorf("%w: negative depth %d", ErrInvalidBox, depth)
	}
	if !box.Valid() {
		return Level{}, fmt.Errorf("%w: %s", ErrInvalidBox, box)
	}

	width, height := box.Width(), box.Height()
	v1, v2 := spawnPositions(box.MinX, width)
	h1, h2 := spawnPositions(box.MinY, height)

	maxSpeed := math.Min(width, height) * SpeedFactor / float64(depth+1)
	minSpeed := maxSpeed * MinSpeedRatio

	lv := Level{Depth: depth, Box: box}
	lv.Vertical.Low = Line{Pos: v1, Dir: randomDirection(rng)}
	lv.Vertical.High = Line{Pos: v2, Dir: randomDirection(rng)}
	lv.Horizontal.Low = Line{Pos: h1, Dir: randomDirection(rng)}
	lv.Horizontal.High = Line{Pos: h2, Dir: randomDirection(rng)}

	lv.Vertical.Low.Speed = randomSpeed(rng, minSpeed, maxSpeed)
	lv.Vertical.High.Speed = randomSpeed(rng, minSpeed, maxSpeed)
	lv.Horizontal.Low.Speed = randomSpeed(rng, minSpeed, maxSpeed)
	lv.Horizontal.High.Speed = randomSpeed(rng, minSpeed, maxSpeed)

	return lv, nil
}

// spawnPositions places two lines at the thirds of [origin, origin+span].
func spawnPositions(origin, span float64) (float64, float64) {
	third := span / 3
	a := origin + third
	b := origin + 2*third
	if b-a < SpawnSeparation {
		a = origin + span/2 - SpawnSeparation/2
		b = a + SpawnSeparation
	}
	return a, b
}

func randomDirection(rng *rand.Rand) Direction {
	if rng.Intn(2) == 0 {
		return Backward
	}
	return Forward
}

func randomSpeed(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

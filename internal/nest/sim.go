package nest

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/nestlines/internal/config"
	"github.com/vovakirdan/nestlines/internal/core"
)

// Simulation owns the ordered levels and advances them frame by frame.
// It is not safe for concurrent use; one driver loop owns it.
type Simulation struct {
	levels   []Level
	maxDepth int
	palette  config.Palette
	canvas   core.Box
	seed     int64
	frame    uint64
}

// New builds the level sequence for a run.
// Depth 0 covers the canvas. Each deeper level is generated from the box
// spanned by its parent's lines, and only while that box is wider and taller
// than SpawnThreshold. The number of levels is fixed for the rest of the run.
func New(cfg core.RuntimeConfig, palette config.Palette) (*Simulation, error) {
	if cfg.CanvasW == 0 && cfg.CanvasH == 0 {
		cfg.CanvasW, cfg.CanvasH = CanvasSize, CanvasSize
	}
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = MaxDepth
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	canvas := cfg.Canvas()

	root, err := NewLevel(0, canvas, rng)
	if err != nil {
		return nil, fmt.Errorf("nest: cannot build root level: %w", err)
	}
	levels := make([]Level, 0, maxDepth)
	levels = append(levels, root)

	for depth := 1; depth < maxDepth; depth++ {
		parent := levels[depth-1]
		minX, maxX := parent.Vertical.Span()
		minY, maxY := parent.Horizontal.Span()
		if maxX-minX <= SpawnThreshold || maxY-minY <= SpawnThreshold {
			break
		}
		lv, err := NewLevel(depth, core.NewBox(minX, minY, maxX, maxY), rng)
		if err != nil {
			return nil, fmt.Errorf("nest: cannot build level %d: %w", depth, err)
		}
		levels = append(levels, lv)
	}

	return &Simulation{
		levels:   levels,
		maxDepth: maxDepth,
		palette:  palette,
		canvas:   canvas,
		seed:     cfg.Seed,
	}, nil
}

// Step advances every level by one frame, outermost first, and returns the
// draw commands for the frame.
//
// Frozen levels are neither drawn nor moved, and do not update their child.
// A drawn level shows its lines where they were at the start of the frame,
// inside the box its parent assigned earlier in this same pass. After a
// level moves, its child's box is rebuilt from the new line positions; the
// child's lines are left where they are and bounce against the new box when
// the child is processed.
func (s *Simulation) Step() Frame {
	s.frame++
	f := Frame{Index: s.frame, Segments: make([]Segment, 0, 4*len(s.levels))}

	for d := range s.levels {
		lv := &s.levels[d]
		if lv.Frozen() {
			continue
		}
		f.Active++
		f.Segments = append(f.Segments, lv.segments(s.palette, s.maxDepth)...)

		lv.advance()

		if d+1 < len(s.levels) {
			s.levels[d+1].Box = lv.childBox()
		}
	}
	return f
}

// Snapshot returns a copy of the levels for read-only use by renderers.
func (s *Simulation) Snapshot() []Level {
	out := make([]Level, len(s.levels))
	copy(out, s.levels)
	return out
}

// Levels returns the number of levels created at startup.
func (s *Simulation) Levels() int {
	return len(s.levels)
}

// MaxDepth returns the configured recursion limit.
func (s *Simulation) MaxDepth() int {
	return s.maxDepth
}

// Frame returns the number of frames stepped so far.
func (s *Simulation) Frame() uint64 {
	return s.frame
}

// Seed returns the seed the levels were generated from.
func (s *Simulation) Seed() int64 {
	return s.seed
}

// Canvas returns the depth-0 box.
func (s *Simulation) Canvas() core.Box {
	return s.canvas
}

package config

import (
	"image/color"
	"math"
)

// Palette maps a recursion depth to stroke colors.
// Intensity rises linearly from Base at depth 0 by Span*depth/maxDepth,
// so inner frames are drawn brighter than outer ones.
type Palette struct {
	Base      float64 `yaml:"base"`
	Span      float64 `yaml:"span"`
	Thickness float64 `yaml:"thickness"`
}

// Intensity returns the channel value for the given depth, clamped to 255.
func (p Palette) Intensity(depth, maxDepth int) uint8 {
	if maxDepth <= 0 {
		maxDepth = 1
	}
	v := p.Base + p.Span*float64(depth)/float64(maxDepth)
	return uint8(clampF(v, 0, 255))
}

// Vertical returns the blue stroke color for vertical lines at depth.
func (p Palette) Vertical(depth, maxDepth int) color.RGBA {
	return color.RGBA{B: p.Intensity(depth, maxDepth), A: 255}
}

// Horizontal returns the green stroke color for horizontal lines at depth.
func (p Palette) Horizontal(depth, maxDepth int) color.RGBA {
	return color.RGBA{G: p.Intensity(depth, maxDepth), A: 255}
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

// Package core provides fundamental types and utilities shared by the
// simulation and the display backends. It contains no external dependencies
// (especially no Bubble Tea or Ebiten) to keep the simulation pure and testable.
package core

import "fmt"

// Box is an axis-aligned rectangle in canvas coordinates.
// Unlike a cell rectangle it is described by its edges, not origin and size,
// because the simulation derives boxes from line positions.
type Box struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewBox creates a box from its edges.
func NewBox(minX, minY, maxX, maxY float64) Box {
	return Box{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// Width returns the horizontal span of the box.
func (b Box) Width() float64 {
	return b.MaxX - b.MinX
}

// Height returns the vertical span of the box.
func (b Box) Height() float64 {
	return b.MaxY - b.MinY
}

// Center returns the center point of the box.
func (b Box) Center() (float64, float64) {
	return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2
}

// Valid reports whether the box has a positive span on both axes.
func (b Box) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}

// Inset returns the box shrunk by d on every side.
// A negative d grows the box.
func (b Box) Inset(d float64) Box {
	return Box{MinX: b.MinX + d, MinY: b.MinY + d, MaxX: b.MaxX - d, MaxY: b.MaxY - d}
}

// Contains returns true if the point (x, y) lies inside or on the edge of the box.
func (b Box) Contains(x, y float64) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// ContainsBox returns true if other lies entirely inside this box.
func (b Box) ContainsBox(other Box) bool {
	return other.MinX >= b.MinX && other.MaxX <= b.MaxX &&
		other.MinY >= b.MinY && other.MaxY <= b.MaxY
}

// String formats the box as (minX,minY)-(maxX,maxY).
func (b Box) String() string {
	return fmt.Sprintf("(%.2f,%.2f)-(%.2f,%.2f)", b.MinX, b.MinY, b.MaxX, b.MaxY)
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

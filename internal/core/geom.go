// Package core provides fundamental types and utilities shared by the game
// and the platform. It contains no external dependencies (especially no
// Bubble Tea) to keep game logic pure and testable.
package core

import (
	"cmp"
	"math"
)

// Rect is an axis-aligned block of screen cells. Y grows downward.
type Rect struct {
	X, Y int // Top-left cell
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Inset shrinks the rectangle by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return NewRect(r.X+n, r.Y+n, max(r.W-2*n, 0), max(r.H-2*n, 0))
}

// Clamp restricts a value to be within [lo, hi].
func Clamp[T cmp.Ordered](val, lo, hi T) T {
	return min(max(val, lo), hi)
}

// Viewport maps the square world [-Extent, Extent]² (y up) onto a block of
// screen cells (y down).
type Viewport struct {
	Area   Rect
	Extent float64
}

// NewViewport creates a viewport over area for a world of half-size extent.
func NewViewport(area Rect, extent float64) Viewport {
	return Viewport{Area: area, Extent: extent}
}

// Col returns the screen column holding world x, clamped into the area.
func (v Viewport) Col(x float64) int {
	t := (x + v.Extent) / (2 * v.Extent)
	return v.Area.X + Clamp(int(math.Floor(t*float64(v.Area.W))), 0, max(v.Area.W-1, 0))
}

// Row returns the screen row holding world y, clamped into the area.
func (v Viewport) Row(y float64) int {
	t := (v.Extent - y) / (2 * v.Extent)
	return v.Area.Y + Clamp(int(math.Floor(t*float64(v.Area.H))), 0, max(v.Area.H-1, 0))
}

// Project converts a world-space box given by its min corner and size to the
// cells it covers. Every box covers at least one cell.
func (v Viewport) Project(minX, minY, w, h float64) Rect {
	left, right := v.Col(minX), v.Col(minX+w)
	top, bottom := v.Row(minY+h), v.Row(minY)
	return NewRect(left, top, right-left+1, bottom-top+1)
}

// Package physics implements a small deterministic 2D rigid-body world for
// axis-aligned rectangles and circles. Bodies are integrated with
// semi-implicit Euler steps, contacts are detected fresh every tick and
// static contacts are resolved with a simple elastic bounce.
//
// The package has no notion of game rules. Consumers observe contacts through
// collision listeners or by draining the per-tick event queue.
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Tolerance is the absolute threshold under which two floats compare equal.
// Integration snaps near-zero components to exact zero using it.
type Tolerance float64

// DefaultTolerance is used by worlds created without WithTolerance.
const DefaultTolerance Tolerance = 1e-4

// Equal reports whether |a-b| is strictly below the tolerance.
func (t Tolerance) Equal(a, b float64) bool {
	return math.Abs(a-b) < float64(t)
}

// EqualVec compares both components with Equal.
func (t Tolerance) EqualVec(a, b mgl64.Vec2) bool {
	return t.Equal(a.X(), b.X()) && t.Equal(a.Y(), b.Y())
}

// IsZero reports whether v is indistinguishable from the zero value.
func (t Tolerance) IsZero(v float64) bool {
	return t.Equal(v, 0)
}

// Snap returns exact zero for values within tolerance of zero.
func (t Tolerance) Snap(v float64) float64 {
	if t.IsZero(v) {
		return 0
	}
	return v
}

// SnapVec applies Snap per component.
func (t Tolerance) SnapVec(v mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{t.Snap(v.X()), t.Snap(v.Y())}
}

// DistSquared returns the squared euclidean distance between two points.
func DistSquared(a, b mgl64.Vec2) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

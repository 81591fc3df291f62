package physics

import "github.com/go-gl/mathgl/mgl64"

// CircleVsRect clamps the circle center into the rectangle to find the
// closest point and compares the squared distance against the squared
// radius. Tangent contact does not count.
func CircleVsRect(circle, rect Entity) bool {
	center := circle.Center()
	closest := mgl64.Vec2{
		mgl64.Clamp(center.X(), rect.Left(), rect.Right()),
		mgl64.Clamp(center.Y(), rect.Bottom(), rect.Top()),
	}
	r := circle.Radius()
	return DistSquared(closest, center) < r*r
}

// RectVsRect is a separating axis test on both axes. For each axis only the
// edge pair facing the other rectangle's center is compared. Rectangles that
// merely share an edge do not overlap.
func RectVsRect(a, b Entity) bool {
	if a.MidX() < b.MidX() {
		if a.Right() <= b.Left() {
			return false
		}
	} else if a.Left() >= b.Right() {
		return false
	}

	if a.MidY() < b.MidY() {
		if a.Top() <= b.Bottom() {
			return false
		}
	} else if a.Bottom() >= b.Top() {
		return false
	}
	return true
}

package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Maximum share of speed moved between axes on a two-axis circle bounce.
const cornerBounceSpread = 0.3

// Fraction of |vx|+|vy| within which a penetrating edge is snapped flush.
const penetrationSlop = 0.05

type contact struct {
	kind     ContactKind
	collider Handle
	collidee Handle
}

// detect finds every overlapping pair for this tick. Moving entities are
// discovered in registration order; each is tested against the movers
// already seen, then every mover is tested against every resting entity.
func (w *World) detect() []contact {
	var contacts []contact
	moving := make([]Handle, 0, len(w.movable))
	isMoving := make(map[Handle]bool, len(w.movable))

	for _, h := range w.collidable {
		e := w.slots[h.Index].entity
		if !e.IsMoving(w.tol) {
			continue
		}
		for _, prev := range moving {
			if kind, ok := overlap(e, w.slots[prev.Index].entity); ok {
				contacts = append(contacts, contact{kind: kind, collider: h, collidee: prev})
			}
		}
		moving = append(moving, h)
		isMoving[h] = true
	}

	for _, m := range moving {
		mover := w.slots[m.Index].entity
		for _, h := range w.collidable {
			if isMoving[h] {
				continue
			}
			if kind, ok := overlap(mover, w.slots[h.Index].entity); ok {
				contacts = append(contacts, contact{kind: kind, collider: m, collidee: h})
			}
		}
	}
	return contacts
}

// overlap picks the narrow-phase predicate for the shape pair.
func overlap(a, b Entity) (ContactKind, bool) {
	switch a.Shape() {
	case ShapeCircle:
		switch b.Shape() {
		case ShapeCircle:
			panic(&UnsupportedCollisionError{Collider: a, Collidee: b, Reason: "circle against circle"})
		case ShapeRectangle:
			return ContactCircleRect, CircleVsRect(a, b)
		}
	case ShapeRectangle:
		switch b.Shape() {
		case ShapeCircle:
			return ContactCircleRect, CircleVsRect(b, a)
		case ShapeRectangle:
			return ContactRectRect, RectVsRect(a, b)
		}
	}
	panic(&UnsupportedCollisionError{Collider: a, Collidee: b, Reason: "unknown shape"})
}

func (w *World) handleCollisions() {
	for _, c := range w.detect() {
		// A listener may have removed one side of a later pair.
		a, b := w.slot(c.collider), w.slot(c.collidee)
		if a == nil || b == nil {
			continue
		}
		switch {
		case a.entity.IsDynamic() && b.entity.IsDynamic():
			panic(&UnsupportedCollisionError{Collider: a.entity, Collidee: b.entity, Reason: "dynamic against dynamic"})
		default:
			w.resolveStatic(&a.entity, &b.entity)
		}

		w.events = append(w.events, CollisionEvent{
			Kind:     c.kind,
			Collider: c.collider,
			Collidee: c.collidee,
			SimTime:  w.elapsed,
		})
		w.notify(c)
	}
}

func (w *World) notify(c contact) {
	listeners := append([]listener(nil), w.listeners...)
	for _, l := range listeners {
		collider, ok1 := w.Lookup(c.collider)
		collidee, ok2 := w.Lookup(c.collidee)
		if !ok1 || !ok2 {
			return
		}
		if l.trigger(collider, collidee, w.elapsed) {
			l.callback(collider, collidee, w.elapsed)
		}
	}
}

// resolveStatic handles every pair with at least one static side. The
// dynamic side, if any, becomes the mover.
func (w *World) resolveStatic(collider, collidee *Entity) {
	if collidee.IsDynamic() {
		collider, collidee = collidee, collider
	}

	dx := collider.MidX() - collidee.MidX()
	dy := collider.MidY() - collidee.MidY()
	halfW := (collider.Width() + collidee.Width()) * 0.5
	halfH := (collider.Height() + collidee.Height()) * 0.5
	if dx*dx >= halfW*halfW || dy*dy >= halfH*halfH {
		return
	}

	v := collider.Velocity
	slop := (math.Abs(v.X()) + math.Abs(v.Y())) * penetrationSlop

	hitX := true
	switch {
	case v.X() > 0 && collider.MidX() < collidee.MidX() &&
		math.Abs(collider.Right()-collidee.Left()) < slop:
		collider.Position[0] = collidee.Left() - collider.Width()
	case v.X() < 0 && collider.MidX() > collidee.MidX() &&
		math.Abs(collider.Left()-collidee.Right()) < slop:
		collider.Position[0] = collidee.Right()
	default:
		hitX = false
	}

	hitY := true
	switch {
	case v.Y() > 0 && collider.MidY() < collidee.MidY() &&
		math.Abs(collider.Top()-collidee.Bottom()) < slop:
		collider.Position[1] = collidee.Bottom() - collider.Height()
	case v.Y() < 0 && collider.MidY() > collidee.MidY() &&
		math.Abs(collider.Bottom()-collidee.Top()) < slop:
		collider.Position[1] = collidee.Top()
	default:
		hitY = false
	}

	if !collider.IsDynamic() {
		// Two static bodies, e.g. a paddle driven into a side wall.
		collider.Acceleration = mgl64.Vec2{}
		collider.Velocity = mgl64.Vec2{}
		return
	}

	if hitX {
		collider.Velocity[0] = -collider.Velocity[0]
	}
	if hitY {
		collider.Velocity[1] = -collider.Velocity[1]
	}
	if hitX && hitY && collider.IsShape(ShapeCircle) {
		r := math.Abs((w.rng.Float64() - 0.5) * cornerBounceSpread)
		collider.Velocity[0] *= 1 + r
		collider.Velocity[1] *= 1 - r
	}
}

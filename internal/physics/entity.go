package physics

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape is the collision geometry of an entity.
type Shape uint8

const (
	ShapeRectangle Shape = iota
	ShapeCircle
)

func (s Shape) String() string {
	switch s {
	case ShapeRectangle:
		return "RECTANGLE"
	case ShapeCircle:
		return "CIRCLE"
	default:
		return fmt.Sprintf("Shape(%d)", uint8(s))
	}
}

// Kind tells the world whether an entity is integrated each tick.
type Kind uint8

const (
	Immovable Kind = iota
	Movable
)

func (k Kind) String() string {
	switch k {
	case Immovable:
		return "IMMOVABLE"
	case Movable:
		return "MOVABLE"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// CollideType selects how an entity responds to contacts. Static bodies are
// never pushed around by resolution; dynamic bodies bounce.
type CollideType uint8

const (
	Static CollideType = iota
	Dynamic
)

func (c CollideType) String() string {
	switch c {
	case Static:
		return "STATIC"
	case Dynamic:
		return "DYNAMIC"
	default:
		return fmt.Sprintf("CollideType(%d)", uint8(c))
	}
}

// ErrCircleNotSquare is returned by New when a circle is given unequal sides.
var ErrCircleNotSquare = errors.New("physics: circle width and height differ")

// Entity is a body in the world. Position is the minimum corner; y grows
// upward, so Top is Position.Y() + height.
//
// Shape, kind and collide type are fixed at construction. Once an entity is
// registered the world owns its canonical copy: values handed out by the
// world are snapshots, and changes go through World.SetState or World.Patch.
type Entity struct {
	Position     mgl64.Vec2
	Velocity     mgl64.Vec2
	Acceleration mgl64.Vec2

	// Data carries caller tags (ball, paddle, wall type...). The world never
	// inspects it.
	Data any

	size    mgl64.Vec2
	shape   Shape
	kind    Kind
	collide CollideType
	handle  Handle
}

// Params describes an entity of any shape by its center.
type Params struct {
	Kind        Kind
	Shape       Shape
	CollideType CollideType
	Width       float64
	Height      float64
	Center      mgl64.Vec2
	Data        any
}

// RectParams describes a rectangle by its center.
type RectParams struct {
	Kind        Kind
	CollideType CollideType
	Width       float64
	Height      float64
	Center      mgl64.Vec2
	Data        any
}

// CircleParams describes a circle by its center.
type CircleParams struct {
	Kind        Kind
	CollideType CollideType
	Radius      float64
	Center      mgl64.Vec2
	Data        any
}

// New builds an entity at rest. Circles must have width == height.
func New(p Params) (Entity, error) {
	if p.Shape == ShapeCircle && p.Width != p.Height {
		return Entity{}, fmt.Errorf("%w: %gx%g", ErrCircleNotSquare, p.Width, p.Height)
	}
	size := mgl64.Vec2{p.Width, p.Height}
	return Entity{
		Position: p.Center.Sub(size.Mul(0.5)),
		Data:     p.Data,
		size:     size,
		shape:    p.Shape,
		kind:     p.Kind,
		collide:  p.CollideType,
	}, nil
}

// NewRect builds a rectangle. It cannot fail.
func NewRect(p RectParams) Entity {
	e, _ := New(Params{
		Kind:        p.Kind,
		Shape:       ShapeRectangle,
		CollideType: p.CollideType,
		Width:       p.Width,
		Height:      p.Height,
		Center:      p.Center,
		Data:        p.Data,
	})
	return e
}

// NewCircle builds a circle with both sides set to twice the radius.
func NewCircle(p CircleParams) Entity {
	e, _ := New(Params{
		Kind:        p.Kind,
		Shape:       ShapeCircle,
		CollideType: p.CollideType,
		Width:       p.Radius * 2,
		Height:      p.Radius * 2,
		Center:      p.Center,
		Data:        p.Data,
	})
	return e
}

func (e Entity) Shape() Shape             { return e.shape }
func (e Entity) Kind() Kind               { return e.kind }
func (e Entity) CollideType() CollideType { return e.collide }

// Handle is the world handle assigned on registration, or the zero Handle.
func (e Entity) Handle() Handle { return e.handle }

func (e Entity) Width() float64  { return e.size.X() }
func (e Entity) Height() float64 { return e.size.Y() }

func (e Entity) Left() float64   { return e.Position.X() }
func (e Entity) Right() float64  { return e.Position.X() + e.size.X() }
func (e Entity) Bottom() float64 { return e.Position.Y() }
func (e Entity) Top() float64    { return e.Position.Y() + e.size.Y() }

func (e Entity) MidX() float64 { return e.Position.X() + e.size.X()*0.5 }
func (e Entity) MidY() float64 { return e.Position.Y() + e.size.Y()*0.5 }

// Center returns (MidX, MidY).
func (e Entity) Center() mgl64.Vec2 {
	return mgl64.Vec2{e.MidX(), e.MidY()}
}

// Radius panics on anything but a circle.
func (e Entity) Radius() float64 {
	if e.shape != ShapeCircle {
		panic(fmt.Sprintf("physics: radius of %s entity", e.shape))
	}
	return e.size.X() * 0.5
}

// SetWidth resizes without moving the min corner.
func (e *Entity) SetWidth(w float64) { e.size[0] = w }

// SetHeight resizes without moving the min corner.
func (e *Entity) SetHeight(h float64) { e.size[1] = h }

func (e Entity) IsShape(s Shape) bool { return e.shape == s }
func (e Entity) IsMovable() bool      { return e.kind == Movable }
func (e Entity) IsDynamic() bool      { return e.collide == Dynamic }

// IsMoving reports a velocity distinguishable from zero.
func (e Entity) IsMoving(tol Tolerance) bool {
	return !tol.EqualVec(e.Velocity, mgl64.Vec2{})
}

package physics

import "github.com/go-gl/mathgl/mgl64"

// Kinematics is the read-only snapshot handed to SetState updaters.
type Kinematics struct {
	Acceleration mgl64.Vec2
	Velocity     mgl64.Vec2
	Position     mgl64.Vec2
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Position     *mgl64.Vec2
	Velocity     *mgl64.Vec2
	Acceleration *mgl64.Vec2
	Width        *float64
	Height       *float64
}

func (p Patch) WithPosition(v mgl64.Vec2) Patch     { p.Position = &v; return p }
func (p Patch) WithVelocity(v mgl64.Vec2) Patch     { p.Velocity = &v; return p }
func (p Patch) WithAcceleration(v mgl64.Vec2) Patch { p.Acceleration = &v; return p }
func (p Patch) WithWidth(w float64) Patch           { p.Width = &w; return p }
func (p Patch) WithHeight(h float64) Patch          { p.Height = &h; return p }

// Empty reports whether applying the patch would change nothing.
func (p Patch) Empty() bool {
	return p.Position == nil && p.Velocity == nil && p.Acceleration == nil &&
		p.Width == nil && p.Height == nil
}

// Apply returns e with every non-nil patch field written. Sizes are changed
// through SetWidth/SetHeight, so the min corner stays where it was.
func Apply(e Entity, p Patch) Entity {
	if p.Acceleration != nil {
		e.Acceleration = *p.Acceleration
	}
	if p.Velocity != nil {
		e.Velocity = *p.Velocity
	}
	if p.Position != nil {
		e.Position = *p.Position
	}
	if p.Width != nil {
		e.SetWidth(*p.Width)
	}
	if p.Height != nil {
		e.SetHeight(*p.Height)
	}
	return e
}

func (e Entity) kinematics() Kinematics {
	return Kinematics{
		Acceleration: e.Acceleration,
		Velocity:     e.Velocity,
		Position:     e.Position,
	}
}

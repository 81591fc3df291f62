package physics

import "fmt"

// ContactKind is the narrow-phase pair class of a contact.
type ContactKind uint8

const (
	ContactCircleRect ContactKind = iota
	ContactRectRect
)

func (k ContactKind) String() string {
	switch k {
	case ContactCircleRect:
		return "circle-rect"
	case ContactRectRect:
		return "rect-rect"
	default:
		return fmt.Sprintf("ContactKind(%d)", uint8(k))
	}
}

// CollisionEvent records one resolved contact. Collider is the entity that
// was moving when the pair was discovered.
type CollisionEvent struct {
	Kind     ContactKind
	Collider Handle
	Collidee Handle
	SimTime  float64
}

// Trigger decides whether a listener's Callback runs for a contact.
type Trigger func(collider, collidee Entity, simTime float64) bool

// Callback reacts to a contact. The entities are copies taken after the
// pair was resolved.
type Callback func(collider, collidee Entity, simTime float64)

// ListenerID identifies a registered listener. IDs grow monotonically and
// listeners run in ID order.
type ListenerID int

type listener struct {
	id       ListenerID
	trigger  Trigger
	callback Callback
}

// Always is a Trigger that accepts every contact.
func Always(Entity, Entity, float64) bool { return true }

// UnsupportedCollisionError is the panic value for contact pairs the world
// cannot handle: circle against circle, and dynamic against dynamic.
type UnsupportedCollisionError struct {
	Collider Entity
	Collidee Entity
	Reason   string
}

func (e *UnsupportedCollisionError) Error() string {
	return fmt.Sprintf("physics: unsupported collision %s/%s vs %s/%s: %s",
		e.Collider.Shape(), e.Collider.CollideType(),
		e.Collidee.Shape(), e.Collidee.CollideType(),
		e.Reason)
}

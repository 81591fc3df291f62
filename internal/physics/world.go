package physics

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrUnknownHandle is returned for handles that were never issued, or whose
// entity has since been removed.
var ErrUnknownHandle = errors.New("physics: unknown handle")

// Handle refers to a registered entity. A handle goes stale when its entity
// is removed; the slot may be reused, but with a new generation, so stale
// handles never alias a newer entity. The zero Handle is never valid.
type Handle struct {
	Index uint32
	Gen   uint32
}

func (h Handle) String() string {
	return fmt.Sprintf("#%d.%d", h.Index, h.Gen)
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h == Handle{} }

type slot struct {
	entity Entity
	gen    uint32
	live   bool
}

// BodyState is the copy returned by World.State.
type BodyState struct {
	Position mgl64.Vec2 // min corner
	Velocity mgl64.Vec2
	Width    float64
	Height   float64
}

// BodySnapshot is one entry of World.AllStates. Center, not min corner.
type BodySnapshot struct {
	Center   mgl64.Vec2
	Velocity mgl64.Vec2
}

// World owns every registered entity and advances them in fixed steps.
// It is not safe for concurrent use; one goroutine drives a world.
type World struct {
	slots []slot
	free  []uint32

	// Insertion ordered. Every entity is collidable.
	collidable []Handle
	movable    []Handle

	listeners    []listener
	nextListener ListenerID

	events  []CollisionEvent
	elapsed float64

	tol    Tolerance
	rng    *rand.Rand
	logger *log.Logger
}

// Option configures a World.
type Option func(*World)

// WithTolerance overrides DefaultTolerance.
func WithTolerance(t Tolerance) Option {
	return func(w *World) { w.tol = t }
}

// WithLogger routes diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(w *World) { w.logger = l }
}

// WithSeed seeds the generator used for corner-bounce perturbation.
func WithSeed(seed int64) Option {
	return func(w *World) { w.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand shares an existing generator with the world.
func WithRand(r *rand.Rand) Option {
	return func(w *World) { w.rng = r }
}

// NewWorld creates an empty world.
func NewWorld(opts ...Option) *World {
	w := &World{tol: DefaultTolerance}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewSource(1))
	}
	if w.logger == nil {
		w.logger = log.New(io.Discard)
	}
	return w
}

// Tolerance returns the float comparison threshold in use.
func (w *World) Tolerance() Tolerance { return w.tol }

// Elapsed is the total simulated time passed to Update.
func (w *World) Elapsed() float64 { return w.elapsed }

// Len returns the number of live entities.
func (w *World) Len() int { return len(w.collidable) }

// Add registers entities and returns their handles in argument order.
func (w *World) Add(entities ...Entity) []Handle {
	handles := make([]Handle, 0, len(entities))
	for _, e := range entities {
		h := w.alloc()
		e.handle = h
		w.slots[h.Index].entity = e
		if e.IsMovable() {
			w.movable = append(w.movable, h)
		}
		w.collidable = append(w.collidable, h)
		handles = append(handles, h)
	}
	return handles
}

func (w *World) alloc() Handle {
	if n := len(w.free); n > 0 {
		idx := w.free[n-1]
		w.free = w.free[:n-1]
		s := &w.slots[idx]
		s.gen++
		s.live = true
		return Handle{Index: idx, Gen: s.gen}
	}
	w.slots = append(w.slots, slot{gen: 1, live: true})
	return Handle{Index: uint32(len(w.slots) - 1), Gen: 1} //nolint:gosec // slot count never nears 2^32
}

// Remove unregisters an entity. Removing a stale handle is an error.
func (w *World) Remove(h Handle) error {
	s := w.slot(h)
	if s == nil {
		return fmt.Errorf("remove %s: %w", h, ErrUnknownHandle)
	}
	if s.entity.IsMovable() {
		w.movable = removeHandle(w.movable, h)
	}
	w.collidable = removeHandle(w.collidable, h)
	s.live = false
	s.entity = Entity{}
	w.free = append(w.free, h.Index)
	return nil
}

func removeHandle(list []Handle, h Handle) []Handle {
	for i, x := range list {
		if x == h {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func (w *World) slot(h Handle) *slot {
	if h.IsZero() || int(h.Index) >= len(w.slots) {
		return nil
	}
	s := &w.slots[h.Index]
	if !s.live || s.gen != h.Gen {
		return nil
	}
	return s
}

// Contains reports whether h refers to a live entity.
func (w *World) Contains(h Handle) bool { return w.slot(h) != nil }

// Lookup returns a copy of the entity behind h.
func (w *World) Lookup(h Handle) (Entity, bool) {
	s := w.slot(h)
	if s == nil {
		return Entity{}, false
	}
	return s.entity, true
}

// State returns a copy of the entity's position, velocity and size.
func (w *World) State(h Handle) (BodyState, error) {
	s := w.slot(h)
	if s == nil {
		return BodyState{}, fmt.Errorf("state %s: %w", h, ErrUnknownHandle)
	}
	e := s.entity
	return BodyState{
		Position: e.Position,
		Velocity: e.Velocity,
		Width:    e.Width(),
		Height:   e.Height(),
	}, nil
}

// SetState passes a snapshot of the entity's kinematics to update and applies
// the returned patch in one step. Unknown handles are logged and ignored so
// callers racing an entity's removal do not fail; the result reports whether
// the patch was applied.
func (w *World) SetState(h Handle, update func(Kinematics) Patch) bool {
	s := w.slot(h)
	if s == nil {
		w.logger.Debug("set state on unknown handle", "handle", h)
		return false
	}
	s.entity = Apply(s.entity, update(s.entity.kinematics()))
	return true
}

// Patch applies p directly. Same unknown-handle policy as SetState.
func (w *World) Patch(h Handle, p Patch) bool {
	return w.SetState(h, func(Kinematics) Patch { return p })
}

// AllStates maps every live entity to its center and velocity.
func (w *World) AllStates() map[Handle]BodySnapshot {
	states := make(map[Handle]BodySnapshot, len(w.collidable))
	for _, h := range w.collidable {
		e := w.slots[h.Index].entity
		states[h] = BodySnapshot{Center: e.Center(), Velocity: e.Velocity}
	}
	return states
}

// Handles lists live handles in registration order.
func (w *World) Handles() []Handle {
	return append([]Handle(nil), w.collidable...)
}

// AddCollisionListener registers a trigger/callback pair. Listeners run in
// registration order after each contact is resolved.
func (w *World) AddCollisionListener(trigger Trigger, callback Callback) ListenerID {
	id := w.nextListener
	w.nextListener++
	w.listeners = append(w.listeners, listener{id: id, trigger: trigger, callback: callback})
	return id
}

// RemoveCollisionListener drops a listener; false if it was not registered.
func (w *World) RemoveCollisionListener(id ListenerID) bool {
	for i, l := range w.listeners {
		if l.id == id {
			w.listeners = append(w.listeners[:i], w.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// DrainEvents returns the contacts queued since the previous drain.
func (w *World) DrainEvents() []CollisionEvent {
	events := w.events
	w.events = nil
	return events
}

// Update advances the world by dt: velocities, then positions, then the
// collision pass.
func (w *World) Update(dt float64) {
	w.elapsed += dt
	w.integrateVelocities(dt)
	w.integratePositions(dt)
	w.handleCollisions()
}

func (w *World) integrateVelocities(dt float64) {
	for _, h := range w.movable {
		e := &w.slots[h.Index].entity
		e.Acceleration = w.tol.SnapVec(e.Acceleration)
		e.Velocity = w.tol.SnapVec(e.Velocity.Add(e.Acceleration.Mul(dt)))
	}
}

func (w *World) integratePositions(dt float64) {
	for _, h := range w.movable {
		e := &w.slots[h.Index].entity
		e.Position = w.tol.SnapVec(e.Position.Add(e.Velocity.Mul(dt)))
	}
}

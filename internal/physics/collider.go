package physics

import (
	"mirgo/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ShapeKind tags the concrete collider geometry. The set is closed.
type ShapeKind uint8

const (
	KindSphere ShapeKind = iota
	KindAABB
	kindCount
)

func (k ShapeKind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindAABB:
		return "aabb"
	default:
		return "unknown"
	}
}

// Collider is implemented by SphereCollider and AABBCollider.
type Collider interface {
	engine.Component
	Kind() ShapeKind
	// Bounds is the world-space box around the collider.
	Bounds() Bounds
	Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool)
	// Intersects is the trigger overlap test. It is symmetric.
	Intersects(other Collider) bool
	// CheckIntersect is the collision test. On overlap it accumulates
	// corrections into the actors (either may be nil for static sides).
	CheckIntersect(other Collider, self, otherActor *Actor) bool
	base() *ColliderBase
}

// ColliderBase holds the state shared by every collider kind.
type ColliderBase struct {
	engine.BaseComponent
	IsTrigger  bool
	Bounciness float32
	Offset     rl.Vector3 // local-space center offset

	world    *World
	shape    Handle
	attached *Rigidbody
}

func newColliderBase(w *World) ColliderBase {
	if w == nil {
		panic("physics: collider with nil world")
	}
	return ColliderBase{world: w, Bounciness: 0.75}
}

func (c *ColliderBase) base() *ColliderBase {
	return c
}

// AttachedRigidbody is the nearest registered Rigidbody on this GameObject
// or an ancestor. It is resolved when the collider is enabled and again
// whenever a rigidbody above it registers or unregisters. Nil means static.
func (c *ColliderBase) AttachedRigidbody() *Rigidbody {
	return c.attached
}

// Registered reports whether the collider currently takes part in simulation.
func (c *ColliderBase) Registered() bool {
	return c.world.shapes.valid(c.shape)
}

// center is the world-space collider center. Attached bodies may have been
// moved by the current step before their Transform is written back, so
// their pending drift is added.
func (c *ColliderBase) center() rl.Vector3 {
	g := c.GetGameObject()
	p := g.TransformPoint(c.Offset)
	if c.attached != nil && c.attached.GetGameObject() != nil {
		p = rl.Vector3Add(p, c.attached.drift())
	}
	return p
}

func enableCollider(c Collider) {
	b := c.base()
	b.world.Register3D(c)
	b.attached = nearestRegisteredRigidbody(b.GetGameObject())
}

func disableCollider(c Collider) {
	b := c.base()
	b.world.Unregister3D(c)
	b.attached = nil
}

// Intersects runs the trigger table for a and b.
func Intersects(a, b Collider) bool {
	return triggerTable[a.Kind()][b.Kind()](a, b)
}

// CheckIntersect runs the collision table for a and b.
func CheckIntersect(a, b Collider, actA, actB *Actor) bool {
	_, ok := resolve(a, b, actA, actB)
	return ok
}

func resolve(a, b Collider, actA, actB *Actor) (contact, bool) {
	return resolveTable[a.Kind()][b.Kind()](a, b, actA, actB)
}

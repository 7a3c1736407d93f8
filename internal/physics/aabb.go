package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// AABBCollider is an axis-aligned box. Rotation of the GameObject is ignored.
type AABBCollider struct {
	ColliderBase
	Size rl.Vector3 // full size dimensions in local space
}

func NewAABBCollider(w *World, size rl.Vector3) *AABBCollider {
	return &AABBCollider{
		ColliderBase: newColliderBase(w),
		Size:         size,
	}
}

func (a *AABBCollider) Kind() ShapeKind {
	return KindAABB
}

func (a *AABBCollider) OnEnable() {
	enableCollider(a)
}

func (a *AABBCollider) OnDisable() {
	disableCollider(a)
}

// WorldSize returns the size scaled by the world scale, with absolute
// values to handle negative scale.
func (a *AABBCollider) WorldSize() rl.Vector3 {
	return absVec(rl.Vector3Multiply(a.Size, a.GetGameObject().WorldScale()))
}

func (a *AABBCollider) Bounds() Bounds {
	return NewBoundsFromCenter(a.center(), a.WorldSize())
}

func (a *AABBCollider) Intersects(other Collider) bool {
	return Intersects(a, other)
}

func (a *AABBCollider) CheckIntersect(other Collider, self, otherActor *Actor) bool {
	return CheckIntersect(a, other, self, otherActor)
}

func (a *AABBCollider) Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	hit, ok := raycastBounds(origin, direction, a.Bounds(), maxDistance)
	if ok {
		hit.Collider = a
		hit.GameObject = a.GetGameObject()
	}
	return hit, ok
}

package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type SphereCollider struct {
	ColliderBase
	Radius float32
}

func NewSphereCollider(w *World, radius float32) *SphereCollider {
	return &SphereCollider{
		ColliderBase: newColliderBase(w),
		Radius:       radius,
	}
}

func (s *SphereCollider) Kind() ShapeKind {
	return KindSphere
}

func (s *SphereCollider) OnEnable() {
	enableCollider(s)
}

func (s *SphereCollider) OnDisable() {
	disableCollider(s)
}

// Center is the world-space sphere center.
func (s *SphereCollider) Center() rl.Vector3 {
	return s.center()
}

// WorldRadius is Radius scaled by the largest world scale component.
func (s *SphereCollider) WorldRadius() float32 {
	scale := absVec(s.GetGameObject().WorldScale())
	return math32.Abs(s.Radius) * maxComponent(scale)
}

func (s *SphereCollider) Bounds() Bounds {
	r := s.WorldRadius()
	return NewBounds(s.center(), rl.Vector3{X: r, Y: r, Z: r})
}

func (s *SphereCollider) Intersects(other Collider) bool {
	return Intersects(s, other)
}

func (s *SphereCollider) CheckIntersect(other Collider, self, otherActor *Actor) bool {
	return CheckIntersect(s, other, self, otherActor)
}

func (s *SphereCollider) Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	hit, ok := raycastSphere(origin, direction, s.center(), s.WorldRadius(), maxDistance)
	if ok {
		hit.Collider = s
		hit.GameObject = s.GetGameObject()
	}
	return hit, ok
}

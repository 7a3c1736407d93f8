package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// contact is the result of a successful collision test. Normal points from
// the second collider of the pair towards the first.
type contact struct {
	point  rl.Vector3
	normal rl.Vector3
}

func (c contact) flipped() contact {
	return contact{point: c.point, normal: rl.Vector3Negate(c.normal)}
}

type triggerFunc func(a, b Collider) bool

type resolveFunc func(a, b Collider, actA, actB *Actor) (contact, bool)

var (
	triggerTable [kindCount][kindCount]triggerFunc
	resolveTable [kindCount][kindCount]resolveFunc
)

func init() {
	triggerTable[KindSphere][KindSphere] = triggerSphereSphere
	triggerTable[KindSphere][KindAABB] = triggerSphereAABB
	triggerTable[KindAABB][KindSphere] = func(a, b Collider) bool { return triggerSphereAABB(b, a) }
	triggerTable[KindAABB][KindAABB] = triggerAABBAABB

	resolveTable[KindSphere][KindSphere] = resolveSphereSphere
	resolveTable[KindSphere][KindAABB] = resolveSphereAABB
	resolveTable[KindAABB][KindSphere] = func(a, b Collider, actA, actB *Actor) (contact, bool) {
		c, ok := resolveSphereAABB(b, a, actB, actA)
		return c.flipped(), ok
	}
	resolveTable[KindAABB][KindAABB] = resolveAABBAABB
}

func triggerSphereSphere(a, b Collider) bool {
	sa, sb := a.(*SphereCollider), b.(*SphereCollider)
	r := sa.WorldRadius() + sb.WorldRadius()
	return rl.Vector3DistanceSqr(sa.center(), sb.center()) <= r*r
}

func triggerSphereAABB(a, b Collider) bool {
	s, box := a.(*SphereCollider), b.(*AABBCollider)
	r := s.WorldRadius()
	return box.Bounds().SqrDistance(s.center()) <= r*r
}

func triggerAABBAABB(a, b Collider) bool {
	return a.Bounds().Intersects(b.Bounds())
}

// resolveSphereSphere splits the push-out evenly between the two sides and
// ignores mass. A separating pair is still pushed apart but reports no
// contact and gets no velocity response.
func resolveSphereSphere(a, b Collider, actA, actB *Actor) (contact, bool) {
	sa, sb := a.(*SphereCollider), b.(*SphereCollider)
	ca, cb := sa.center(), sb.center()
	ra, rb := sa.WorldRadius(), sb.WorldRadius()

	d := rl.Vector3Subtract(cb, ca)
	dist := rl.Vector3Length(d)
	if dist > ra+rb {
		return contact{}, false
	}

	// n points from a to b
	n := normalizeOr(d, rl.Vector3{Y: 1})
	penetration := ra + rb - dist

	if actA.movable() {
		actA.AddCorrectPosition(rl.Vector3Scale(n, -penetration*0.5))
	}
	if actB.movable() {
		actB.AddCorrectPosition(rl.Vector3Scale(n, penetration*0.5))
	}

	rel := rl.Vector3Subtract(velocityOf(actA), velocityOf(actB))
	vn := rl.Vector3DotProduct(rel, n)
	if vn < 0 {
		return contact{}, false
	}

	bounce := sa.Bounciness * sb.Bounciness
	delta := rl.Vector3Scale(n, bounce*vn)
	if actA.movable() {
		actA.AddCorrectVelocity(rl.Vector3Negate(delta))
	}
	if actB.movable() {
		actB.AddCorrectVelocity(delta)
	}

	point := rl.Vector3Add(ca, rl.Vector3Scale(n, ra-penetration*0.5))
	return contact{point: point, normal: rl.Vector3Negate(n)}, true
}

// resolveSphereAABB splits corrections by inverse mass, so a static or
// kinematic side takes no share. A sphere moving away from the box gets
// no correction at all.
func resolveSphereAABB(a, b Collider, actS, actB *Actor) (contact, bool) {
	s, box := a.(*SphereCollider), b.(*AABBCollider)
	c := s.center()
	r := s.WorldRadius()
	bounds := box.Bounds()

	closest := bounds.ClosestPoint(c)
	d := rl.Vector3Subtract(c, closest)
	distSqr := rl.Vector3LengthSqr(d)
	if distSqr > r*r {
		return contact{}, false
	}

	// n points from the box towards the sphere
	var n rl.Vector3
	var penetration float32
	if distSqr > epsilon*epsilon {
		dist := math32.Sqrt(distSqr)
		n = rl.Vector3Scale(d, 1/dist)
		penetration = r - dist
	} else {
		var depth float32
		n, depth = shallowestFace(bounds, c)
		penetration = r + depth
		closest = rl.Vector3Add(c, rl.Vector3Scale(n, depth))
	}

	rel := rl.Vector3Subtract(velocityOf(actS), velocityOf(actB))
	vn := rl.Vector3DotProduct(rel, n)
	if vn > 0 {
		return contact{}, false
	}

	invS, invB := inverseMass(actS), inverseMass(actB)
	if total := invS + invB; total > 0 {
		shareS, shareB := invS/total, invB/total
		if invS > 0 {
			actS.AddCorrectPosition(rl.Vector3Scale(n, penetration*shareS))
		}
		if invB > 0 {
			actB.AddCorrectPosition(rl.Vector3Scale(n, -penetration*shareB))
		}

		if vn < 0 {
			bounce := s.Bounciness * box.Bounciness
			impulse := rl.Vector3Scale(n, -(1+bounce)*vn)
			if invS > 0 {
				actS.AddCorrectVelocity(rl.Vector3Scale(impulse, shareS))
			}
			if invB > 0 {
				actB.AddCorrectVelocity(rl.Vector3Scale(impulse, -shareB))
			}
		}
	}

	return contact{point: closest, normal: n}, true
}

// Boxes have no rigid response against each other.
func resolveAABBAABB(a, b Collider, actA, actB *Actor) (contact, bool) {
	return contact{}, false
}

// shallowestFace returns the outward normal of the face of b nearest to p
// (p inside b) and the distance from p to that face.
func shallowestFace(b Bounds, p rl.Vector3) (rl.Vector3, float32) {
	mn, mx := b.Min(), b.Max()
	faces := [6]struct {
		depth  float32
		normal rl.Vector3
	}{
		{p.X - mn.X, rl.Vector3{X: -1}},
		{mx.X - p.X, rl.Vector3{X: 1}},
		{p.Y - mn.Y, rl.Vector3{Y: -1}},
		{mx.Y - p.Y, rl.Vector3{Y: 1}},
		{p.Z - mn.Z, rl.Vector3{Z: -1}},
		{mx.Z - p.Z, rl.Vector3{Z: 1}},
	}
	best := faces[0]
	for _, f := range faces[1:] {
		if f.depth < best.depth {
			best = f
		}
	}
	return best.normal, best.depth
}

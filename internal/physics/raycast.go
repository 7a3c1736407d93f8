package physics

import (
	"mirgo/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	Collider   Collider
	GameObject *engine.GameObject
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
}

// Raycast returns the closest hit among the registered colliders. filter may
// be nil; colliders it rejects are skipped. Rays starting inside a collider
// ignore that collider.
func (w *World) Raycast(origin, direction rl.Vector3, maxDistance float32, filter func(Collider) bool) (RaycastHit, bool) {
	if maxDistance <= 0 || isZero(direction) {
		return RaycastHit{}, false
	}
	direction = rl.Vector3Normalize(direction)

	var closestHit RaycastHit
	closestHit.Distance = math32.Inf(1)
	hit := false

	for i := 0; i < w.shapes.len(); i++ {
		shape := w.shapes.at(i)
		if shape == nil || !shape.valid() {
			continue
		}
		if filter != nil && !filter(shape.collider) {
			continue
		}
		if hitInfo, ok := shape.collider.Raycast(origin, direction, maxDistance); ok {
			if hitInfo.Distance < closestHit.Distance {
				closestHit = hitInfo
				hit = true
			}
		}
	}

	if !hit {
		return RaycastHit{}, false
	}
	return closestHit, true
}

// raycastBounds intersects a ray with b using the slab method.
func raycastBounds(origin, direction rl.Vector3, b Bounds, maxDistance float32) (RaycastHit, bool) {
	if maxDistance <= 0 || isZero(direction) {
		return RaycastHit{}, false
	}
	direction = rl.Vector3Normalize(direction)

	// origin inside the box is ignored
	if b.SqrDistance(origin) <= epsilon*epsilon {
		return RaycastHit{}, false
	}

	min, max := b.Min(), b.Max()
	tmin := float32(0)
	tmax := maxDistance

	o := [3]float32{origin.X, origin.Y, origin.Z}
	d := [3]float32{direction.X, direction.Y, direction.Z}
	lo := [3]float32{min.X, min.Y, min.Z}
	hi := [3]float32{max.X, max.Y, max.Z}

	for axis := 0; axis < 3; axis++ {
		if math32.Abs(d[axis]) < epsilon {
			if o[axis] < lo[axis] || o[axis] > hi[axis] {
				return RaycastHit{}, false
			}
			continue
		}
		inv := 1 / d[axis]
		t1 := (lo[axis] - o[axis]) * inv
		t2 := (hi[axis] - o[axis]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
		if tmin > tmax {
			return RaycastHit{}, false
		}
	}

	if tmin > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, tmin))

	// Calculate normal based on which face was hit
	var normal rl.Vector3
	switch {
	case math32.Abs(point.X-min.X) < normalEpsilon:
		normal = rl.Vector3{X: -1}
	case math32.Abs(point.X-max.X) < normalEpsilon:
		normal = rl.Vector3{X: 1}
	case math32.Abs(point.Y-min.Y) < normalEpsilon:
		normal = rl.Vector3{Y: -1}
	case math32.Abs(point.Y-max.Y) < normalEpsilon:
		normal = rl.Vector3{Y: 1}
	case math32.Abs(point.Z-min.Z) < normalEpsilon:
		normal = rl.Vector3{Z: -1}
	case math32.Abs(point.Z-max.Z) < normalEpsilon:
		normal = rl.Vector3{Z: 1}
	default:
		normal = rl.Vector3Negate(direction)
	}

	return RaycastHit{Point: point, Normal: normal, Distance: tmin}, true
}

// raycastSphere takes the smallest non-negative root of the ray/sphere quadratic.
func raycastSphere(origin, direction, center rl.Vector3, radius, maxDistance float32) (RaycastHit, bool) {
	if maxDistance <= 0 || isZero(direction) {
		return RaycastHit{}, false
	}
	direction = rl.Vector3Normalize(direction)

	// origin inside the sphere is ignored
	if rl.Vector3DistanceSqr(origin, center) <= radius*radius {
		return RaycastHit{}, false
	}

	oc := rl.Vector3Subtract(origin, center)
	a := rl.Vector3DotProduct(direction, direction)
	b := 2.0 * rl.Vector3DotProduct(oc, direction)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return RaycastHit{}, false
	}

	sqrtD := math32.Sqrt(discriminant)
	t := (-b - sqrtD) / (2 * a)
	if t < 0 {
		t = (-b + sqrtD) / (2 * a)
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := normalizeOr(rl.Vector3Subtract(point, center), rl.Vector3{X: 1})

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Bounds is an axis-aligned box stored as center and extents (half size).
type Bounds struct {
	Center  rl.Vector3
	Extents rl.Vector3
}

func NewBounds(center, extents rl.Vector3) Bounds {
	return Bounds{Center: center, Extents: extents}
}

// NewBoundsFromCenter creates Bounds from a center point and full size dimensions.
func NewBoundsFromCenter(center, size rl.Vector3) Bounds {
	return Bounds{Center: center, Extents: rl.Vector3Scale(size, 0.5)}
}

// NewBoundsMinMax creates Bounds spanning min to max.
func NewBoundsMinMax(min, max rl.Vector3) Bounds {
	var b Bounds
	b.SetMinMax(min, max)
	return b
}

// EmptyBounds returns bounds that intersect nothing and become exactly the
// first encapsulated point or box.
func EmptyBounds() Bounds {
	inf := math32.Inf(-1)
	return Bounds{Extents: rl.Vector3{X: inf, Y: inf, Z: inf}}
}

// IsEmpty reports whether b was never grown from EmptyBounds.
func (b Bounds) IsEmpty() bool {
	return b.Extents.X < 0 || b.Extents.Y < 0 || b.Extents.Z < 0
}

func (b Bounds) Min() rl.Vector3 {
	return rl.Vector3Subtract(b.Center, b.Extents)
}

func (b Bounds) Max() rl.Vector3 {
	return rl.Vector3Add(b.Center, b.Extents)
}

// Size is the full length along each axis.
func (b Bounds) Size() rl.Vector3 {
	return rl.Vector3Scale(b.Extents, 2)
}

func (b *Bounds) SetMinMax(min, max rl.Vector3) {
	b.Center = rl.Vector3Scale(rl.Vector3Add(min, max), 0.5)
	b.Extents = rl.Vector3Scale(rl.Vector3Subtract(max, min), 0.5)
}

// Encapsulate grows b to include p.
func (b *Bounds) Encapsulate(p rl.Vector3) {
	if b.IsEmpty() {
		b.Center = p
		b.Extents = rl.Vector3{}
		return
	}
	b.SetMinMax(rl.Vector3Min(b.Min(), p), rl.Vector3Max(b.Max(), p))
}

// EncapsulateBounds grows b to include o.
func (b *Bounds) EncapsulateBounds(o Bounds) {
	if o.IsEmpty() {
		return
	}
	if b.IsEmpty() {
		*b = o
		return
	}
	b.SetMinMax(rl.Vector3Min(b.Min(), o.Min()), rl.Vector3Max(b.Max(), o.Max()))
}

// Translate returns b moved by offset.
func (b Bounds) Translate(offset rl.Vector3) Bounds {
	return Bounds{Center: rl.Vector3Add(b.Center, offset), Extents: b.Extents}
}

// Intersects uses the per-axis center distance test; touching counts.
func (b Bounds) Intersects(o Bounds) bool {
	if math32.Abs(b.Center.X-o.Center.X) > b.Extents.X+o.Extents.X {
		return false
	}
	if math32.Abs(b.Center.Z-o.Center.Z) > b.Extents.Z+o.Extents.Z {
		return false
	}
	if math32.Abs(b.Center.Y-o.Center.Y) > b.Extents.Y+o.Extents.Y {
		return false
	}
	return true
}

// Contains reports whether p lies inside or on b.
func (b Bounds) Contains(p rl.Vector3) bool {
	mn, mx := b.Min(), b.Max()
	return p.X >= mn.X && p.X <= mx.X &&
		p.Y >= mn.Y && p.Y <= mx.Y &&
		p.Z >= mn.Z && p.Z <= mx.Z
}

// ClosestPoint clamps p into b.
func (b Bounds) ClosestPoint(p rl.Vector3) rl.Vector3 {
	mn, mx := b.Min(), b.Max()
	return rl.Vector3{
		X: clamp(p.X, mn.X, mx.X),
		Y: clamp(p.Y, mn.Y, mx.Y),
		Z: clamp(p.Z, mn.Z, mx.Z),
	}
}

// SqrDistance is the squared distance from p to the closest point of b; zero inside.
func (b Bounds) SqrDistance(p rl.Vector3) float32 {
	return rl.Vector3LengthSqr(rl.Vector3Subtract(b.ClosestPoint(p), p))
}

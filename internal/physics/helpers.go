package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// epsilon below which a direction or distance is treated as zero
	epsilon = 1e-6
	// normalEpsilon is the tolerance for deciding which box face a ray crossed
	normalEpsilon = 1e-3
)

// clamp restricts a value to a range
func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// absVec returns the componentwise absolute value
func absVec(v rl.Vector3) rl.Vector3 {
	return rl.Vector3{X: math32.Abs(v.X), Y: math32.Abs(v.Y), Z: math32.Abs(v.Z)}
}

// maxComponent returns the largest of the three components
func maxComponent(v rl.Vector3) float32 {
	return math32.Max(v.X, math32.Max(v.Y, v.Z))
}

// isZero reports whether every component is within epsilon of zero
func isZero(v rl.Vector3) bool {
	return math32.Abs(v.X) < epsilon && math32.Abs(v.Y) < epsilon && math32.Abs(v.Z) < epsilon
}

// normalizeOr returns v normalized, or fallback when v has no length
func normalizeOr(v, fallback rl.Vector3) rl.Vector3 {
	l := rl.Vector3Length(v)
	if l <= epsilon {
		return fallback
	}
	return rl.Vector3Scale(v, 1/l)
}

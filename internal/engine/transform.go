package engine

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// rotationMatrix builds the rotation for Euler angles in degrees
// applied X then Y then Z.
func rotationMatrix(euler rl.Vector3) rl.Matrix {
	rotX := rl.MatrixRotateX(euler.X * rl.Deg2rad)
	rotY := rl.MatrixRotateY(euler.Y * rl.Deg2rad)
	rotZ := rl.MatrixRotateZ(euler.Z * rl.Deg2rad)
	return rl.MatrixMultiply(rl.MatrixMultiply(rotX, rotY), rotZ)
}

func (g *GameObject) WorldPosition() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Position
	}
	return g.Parent.TransformPoint(g.Transform.Position)
}

func (g *GameObject) WorldRotation() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Rotation
	}
	return rl.Vector3Add(g.Parent.WorldRotation(), g.Transform.Rotation)
}

func (g *GameObject) WorldScale() rl.Vector3 {
	if g.Parent == nil {
		return g.Transform.Scale
	}
	ps := g.Parent.WorldScale()
	return rl.Vector3{
		X: ps.X * g.Transform.Scale.X,
		Y: ps.Y * g.Transform.Scale.Y,
		Z: ps.Z * g.Transform.Scale.Z,
	}
}

// Forward is the world-space +Z axis of g.
func (g *GameObject) Forward() rl.Vector3 {
	return rl.Vector3Transform(rl.Vector3{Z: 1}, rotationMatrix(g.WorldRotation()))
}

// TransformVector scales and rotates a local-space vector into world space.
// Translation is not applied.
func (g *GameObject) TransformVector(local rl.Vector3) rl.Vector3 {
	scaled := rl.Vector3Multiply(local, g.WorldScale())
	rot := g.WorldRotation()
	if rot == (rl.Vector3{}) {
		return scaled
	}
	return rl.Vector3Transform(scaled, rotationMatrix(rot))
}

// TransformPoint converts a local-space point into world space.
func (g *GameObject) TransformPoint(local rl.Vector3) rl.Vector3 {
	return rl.Vector3Add(g.WorldPosition(), g.TransformVector(local))
}

// SetWorldPosition moves g so that WorldPosition returns p.
func (g *GameObject) SetWorldPosition(p rl.Vector3) {
	if g.Parent == nil {
		g.Transform.Position = p
		return
	}
	d := rl.Vector3Subtract(p, g.Parent.WorldPosition())
	if rot := g.Parent.WorldRotation(); rot != (rl.Vector3{}) {
		// inverse of an orthonormal rotation is its transpose
		d = rl.Vector3Transform(d, rl.MatrixTranspose(rotationMatrix(rot)))
	}
	ps := g.Parent.WorldScale()
	g.Transform.Position = rl.Vector3{
		X: safeDiv(d.X, ps.X),
		Y: safeDiv(d.Y, ps.Y),
		Z: safeDiv(d.Z, ps.Z),
	}
}

// SetWorldRotation sets the local rotation so that WorldRotation returns r.
func (g *GameObject) SetWorldRotation(r rl.Vector3) {
	if g.Parent == nil {
		g.Transform.Rotation = r
		return
	}
	g.Transform.Rotation = rl.Vector3Subtract(r, g.Parent.WorldRotation())
}

func safeDiv(a, b float32) float32 {
	if b == 0 {
		return 0
	}
	return a / b
}

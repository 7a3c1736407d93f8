package physics

import (
	"testing"

	"mirgo/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-4

func newTestWorld(t *testing.T, opts ...Option) *World {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Gravity = 0
	w, err := New(cfg, opts...)
	require.NoError(t, err)
	return w
}

func spawnSphere(w *World, name string, pos rl.Vector3, radius float32, dynamic bool) (*engine.GameObject, *SphereCollider, *Rigidbody) {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	var rb *Rigidbody
	if dynamic {
		rb = NewRigidbody(w)
		g.AddComponent(rb)
	}
	col := NewSphereCollider(w, radius)
	g.AddComponent(col)
	return g, col, rb
}

func spawnBox(w *World, name string, pos, size rl.Vector3, dynamic bool) (*engine.GameObject, *AABBCollider, *Rigidbody) {
	g := engine.NewGameObject(name)
	g.Transform.Position = pos
	var rb *Rigidbody
	if dynamic {
		rb = NewRigidbody(w)
		g.AddComponent(rb)
	}
	col := NewAABBCollider(w, size)
	g.AddComponent(col)
	return g, col, rb
}

func actorOf(w *World, rb *Rigidbody) *Actor {
	if rb == nil {
		return nil
	}
	return w.actors.get(rb.actor)
}

func assertVecNear(t *testing.T, want, got rl.Vector3, msgAndArgs ...any) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tolerance, msgAndArgs...)
	assert.InDelta(t, want.Y, got.Y, tolerance, msgAndArgs...)
	assert.InDelta(t, want.Z, got.Z, tolerance, msgAndArgs...)
}

func TestNormalizeOrFallsBackOnZero(t *testing.T) {
	fallback := rl.Vector3{Y: 1}
	assert.Equal(t, fallback, normalizeOr(rl.Vector3{}, fallback))
	assertVecNear(t, rl.Vector3{X: 1}, normalizeOr(rl.Vector3{X: 3}, fallback))
}

func TestMaxComponentAndAbs(t *testing.T) {
	v := absVec(rl.Vector3{X: -3, Y: 2, Z: -1})
	assert.Equal(t, rl.Vector3{X: 3, Y: 2, Z: 1}, v)
	assert.Equal(t, float32(3), maxComponent(v))
	assert.True(t, isZero(rl.Vector3{X: 1e-7}))
	assert.False(t, isZero(rl.Vector3{Z: -0.01}))
	assert.Equal(t, float32(2), clamp(5, -2, 2))
	assert.Equal(t, 0, clampInt(-4, 0, 3))
	assert.False(t, math32.IsNaN(clamp(0, 0, 0)))
}

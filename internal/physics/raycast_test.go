package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaycastBoxFromOutside(t *testing.T) {
	w := newTestWorld(t)
	g, box, _ := spawnBox(w, "box", rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2}, false)

	hit, ok := box.Raycast(rl.Vector3{X: 5}, rl.Vector3{X: -1}, 100)
	require.True(t, ok)
	assertVecNear(t, rl.Vector3{X: 1}, hit.Point)
	assert.InDelta(t, 4, hit.Distance, tolerance)
	assert.Equal(t, rl.Vector3{X: 1}, hit.Normal)
	assert.Same(t, g, hit.GameObject)
	assert.Equal(t, Collider(box), hit.Collider)
}

func TestRaycastBoxMisses(t *testing.T) {
	w := newTestWorld(t)
	_, box, _ := spawnBox(w, "box", rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2}, false)

	tests := []struct {
		name        string
		origin, dir rl.Vector3
		maxDistance float32
	}{
		{"origin inside", rl.Vector3{}, rl.Vector3{X: 1}, 100},
		{"parallel outside slab", rl.Vector3{X: 5, Y: 2}, rl.Vector3{X: -1}, 100},
		{"pointing away", rl.Vector3{X: 5}, rl.Vector3{X: 1}, 100},
		{"too short", rl.Vector3{X: 5}, rl.Vector3{X: -1}, 3.9},
		{"zero direction", rl.Vector3{X: 5}, rl.Vector3{}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := box.Raycast(tt.origin, tt.dir, tt.maxDistance)
			assert.False(t, ok)
		})
	}
}

func TestRaycastBoxFaceNormals(t *testing.T) {
	w := newTestWorld(t)
	_, box, _ := spawnBox(w, "box", rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2}, false)

	tests := []struct {
		origin, dir, normal rl.Vector3
	}{
		{rl.Vector3{X: -5}, rl.Vector3{X: 1}, rl.Vector3{X: -1}},
		{rl.Vector3{Y: 5}, rl.Vector3{Y: -1}, rl.Vector3{Y: 1}},
		{rl.Vector3{Y: -5}, rl.Vector3{Y: 1}, rl.Vector3{Y: -1}},
		{rl.Vector3{Z: 5}, rl.Vector3{Z: -1}, rl.Vector3{Z: 1}},
		{rl.Vector3{Z: -5}, rl.Vector3{Z: 1}, rl.Vector3{Z: -1}},
	}
	for _, tt := range tests {
		hit, ok := box.Raycast(tt.origin, tt.dir, 100)
		require.True(t, ok)
		assert.Equal(t, tt.normal, hit.Normal)
		assert.InDelta(t, 4, hit.Distance, tolerance)
	}
}

func TestRaycastDirectionIsNormalized(t *testing.T) {
	w := newTestWorld(t)
	_, box, _ := spawnBox(w, "box", rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2}, false)

	hit, ok := box.Raycast(rl.Vector3{X: 5}, rl.Vector3{X: -10}, 100)
	require.True(t, ok)
	assert.InDelta(t, 4, hit.Distance, tolerance)
}

func TestRaycastSphere(t *testing.T) {
	w := newTestWorld(t)
	_, s, _ := spawnSphere(w, "ball", rl.Vector3{Z: 10}, 2, false)

	hit, ok := s.Raycast(rl.Vector3{}, rl.Vector3{Z: 1}, 100)
	require.True(t, ok)
	assert.InDelta(t, 8, hit.Distance, tolerance)
	assertVecNear(t, rl.Vector3{Z: 8}, hit.Point)
	assertVecNear(t, rl.Vector3{Z: -1}, hit.Normal)

	_, ok = s.Raycast(rl.Vector3{Z: 10}, rl.Vector3{Z: 1}, 100)
	assert.False(t, ok, "origin inside")

	_, ok = s.Raycast(rl.Vector3{}, rl.Vector3{Z: 1}, 7)
	assert.False(t, ok, "out of range")

	_, ok = s.Raycast(rl.Vector3{X: 3}, rl.Vector3{Z: 1}, 100)
	assert.False(t, ok, "passes beside")
}

func TestWorldRaycastClosestAndFilter(t *testing.T) {
	w := newTestWorld(t)
	_, near, _ := spawnBox(w, "near", rl.Vector3{X: 5}, rl.Vector3{X: 2, Y: 2, Z: 2}, false)
	_, far, _ := spawnSphere(w, "far", rl.Vector3{X: 10}, 1, false)

	hit, ok := w.Raycast(rl.Vector3{}, rl.Vector3{X: 1}, 100, nil)
	require.True(t, ok)
	assert.Equal(t, Collider(near), hit.Collider)
	assert.InDelta(t, 4, hit.Distance, tolerance)

	skipNear := func(c Collider) bool { return c != Collider(near) }
	hit, ok = w.Raycast(rl.Vector3{}, rl.Vector3{X: 1}, 100, skipNear)
	require.True(t, ok)
	assert.Equal(t, Collider(far), hit.Collider)
	assert.InDelta(t, 9, hit.Distance, tolerance)

	_, ok = w.Raycast(rl.Vector3{}, rl.Vector3{}, 100, nil)
	assert.False(t, ok)
	_, ok = w.Raycast(rl.Vector3{}, rl.Vector3{X: 1}, 0, nil)
	assert.False(t, ok)
}

func TestWorldRaycastIgnoresUnregistered(t *testing.T) {
	w := newTestWorld(t)
	g, _, _ := spawnBox(w, "box", rl.Vector3{X: 5}, rl.Vector3{X: 2, Y: 2, Z: 2}, false)
	g.SetActive(false)

	_, ok := w.Raycast(rl.Vector3{}, rl.Vector3{X: 1}, 100, nil)
	assert.False(t, ok)
}

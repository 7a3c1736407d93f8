package world

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mirgo/internal/engine"
	"mirgo/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneYAML = `
objects:
  - name: floor
    tags: [static]
    position: [0, -1, 0]
    components:
      - type: AABBCollider
        size: [20, 2, 20]
        bounciness: 0.5
  - name: cart
    position: [0, 2, 0]
    components:
      - type: Rigidbody
        mass: 4
        gravityScale: 0.5
        velocity: [1, 0, 0]
    children:
      - name: wheel
        position: [1, 0, 0]
        components:
          - type: SphereCollider
            radius: 0.5
            offset: [0, -0.25, 0]
  - name: sensor
    inactive: true
    components:
      - type: SphereCollider
        radius: 3
        isTrigger: true
`

const sceneJSON = `{
  "objects": [
    {
      "name": "floor",
      "tags": ["static"],
      "position": [0, -1, 0],
      "components": [{"type": "AABBCollider", "size": [20, 2, 20], "bounciness": 0.5}]
    },
    {
      "name": "cart",
      "position": [0, 2, 0],
      "components": [{"type": "Rigidbody", "mass": 4, "gravityScale": 0.5, "velocity": [1, 0, 0]}],
      "children": [
        {
          "name": "wheel",
          "position": [1, 0, 0],
          "components": [{"type": "SphereCollider", "radius": 0.5, "offset": [0, -0.25, 0]}]
        }
      ]
    },
    {
      "name": "sensor",
      "inactive": true,
      "components": [{"type": "SphereCollider", "radius": 3, "isTrigger": true}]
    }
  ]
}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSceneYAMLAndJSONAgree(t *testing.T) {
	fromYAML := newTestWorld(t, nil)
	_, err := fromYAML.LoadScene(writeFile(t, "scene.yaml", sceneYAML))
	require.NoError(t, err)

	fromJSON := newTestWorld(t, nil)
	_, err = fromJSON.LoadScene(writeFile(t, "scene.json", sceneJSON))
	require.NoError(t, err)

	assert.Equal(t, fromYAML.Snapshot(), fromJSON.Snapshot())
}

func TestLoadSceneBuildsComponents(t *testing.T) {
	w := newTestWorld(t, nil)
	roots, err := w.LoadScene(writeFile(t, "scene.yml", sceneYAML))
	require.NoError(t, err)
	require.Len(t, roots, 3)
	assert.Len(t, w.Scene.GameObjects, 4)

	floor := w.Scene.FindByName("floor")
	require.NotNil(t, floor)
	assert.True(t, floor.HasTag("static"))
	assert.Equal(t, rl.Vector3{X: 1, Y: 1, Z: 1}, floor.Transform.Scale)
	box := engine.GetComponent[*physics.AABBCollider](floor)
	require.NotNil(t, box)
	assert.Equal(t, rl.Vector3{X: 20, Y: 2, Z: 20}, box.Size)
	assert.Equal(t, float32(0.5), box.Bounciness)
	assert.True(t, box.Registered())
	assert.Nil(t, box.AttachedRigidbody())

	cart := w.Scene.FindByName("cart")
	rb := engine.GetComponent[*physics.Rigidbody](cart)
	require.NotNil(t, rb)
	assert.Equal(t, float32(4), rb.Mass)
	assert.Equal(t, float32(0.5), rb.GravityScale)
	assert.Equal(t, rl.Vector3{X: 1}, rb.Velocity)
	assert.True(t, rb.Registered())

	wheel := w.Scene.FindByName("wheel")
	require.NotNil(t, wheel)
	assert.Same(t, cart, wheel.Parent)
	sphere := engine.GetComponent[*physics.SphereCollider](wheel)
	require.NotNil(t, sphere)
	assert.Same(t, rb, sphere.AttachedRigidbody())
	assert.Equal(t, float32(0.75), sphere.Bounciness, "default bounciness")
	assert.Equal(t, rl.Vector3{X: 1, Y: 1.75}, sphere.Center())

	sensor := w.Scene.FindByName("sensor")
	trigger := engine.GetComponent[*physics.SphereCollider](sensor)
	require.NotNil(t, trigger)
	assert.True(t, trigger.IsTrigger)
	assert.False(t, trigger.Registered(), "inactive objects do not register")

	sensor.SetActive(true)
	assert.True(t, trigger.Registered())
}

func TestLoadSceneErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		target  error
	}{
		{"unknown extension", "scene.txt", sceneYAML, ErrUnknownFormat},
		{"unknown component", "scene.yaml", "objects:\n  - name: a\n    components:\n      - type: MeshCollider\n", ErrUnknownComponent},
		{"unknown child component", "scene.json", `{"objects":[{"name":"a","children":[{"name":"b","components":[{"type":"Light"}]}]}]}`, ErrUnknownComponent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t, nil)
			_, err := w.LoadScene(writeFile(t, tt.file, tt.content))
			assert.ErrorIs(t, err, tt.target)
			assert.Empty(t, w.Scene.GameObjects)
		})
	}

	t.Run("box without size", func(t *testing.T) {
		w := newTestWorld(t, nil)
		_, err := w.LoadScene(writeFile(t, "scene.yaml", "objects:\n  - name: a\n    components:\n      - type: AABBCollider\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "needs a size")
		assert.Empty(t, w.Scene.GameObjects)
	})

	t.Run("malformed", func(t *testing.T) {
		w := newTestWorld(t, nil)
		_, err := w.LoadScene(writeFile(t, "scene.json", `{"objects": [`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse scene")
	})

	t.Run("missing file", func(t *testing.T) {
		w := newTestWorld(t, nil)
		_, err := w.LoadScene(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestDecodeEmptyYAML(t *testing.T) {
	sf, err := DecodeScene(strings.NewReader(""), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, sf.Objects)

	_, err = DecodeScene(strings.NewReader("{}"), Format("toml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestSaveSceneRoundTrip(t *testing.T) {
	for _, name := range []string{"saved.json", "saved.yaml"} {
		t.Run(name, func(t *testing.T) {
			w := newTestWorld(t, func(cfg *physics.Config) { cfg.Gravity = -9.81 })
			_, err := w.LoadScene(writeFile(t, "scene.yaml", sceneYAML))
			require.NoError(t, err)
			for range 4 {
				w.Step()
			}

			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, w.SaveScene(path))

			loaded := newTestWorld(t, nil)
			_, err = loaded.LoadScene(path)
			require.NoError(t, err)
			assert.Equal(t, w.Snapshot(), loaded.Snapshot())
		})
	}
}

func TestSnapshotReflectsSimulation(t *testing.T) {
	w := newTestWorld(t, nil)
	_, err := w.Instantiate(SceneFile{Objects: []ObjectDef{{
		Name:       "mover",
		Components: []ComponentDef{{Type: "Rigidbody", Velocity: [3]float32{2, 0, 0}}},
	}}})
	require.NoError(t, err)

	w.Step()

	sf := w.Snapshot()
	require.Len(t, sf.Objects, 1)
	assert.Equal(t, [3]float32{0.5, 0, 0}, sf.Objects[0].Position)
	assert.Equal(t, [3]float32{2, 0, 0}, sf.Objects[0].Components[0].Velocity)

	var buf bytes.Buffer
	require.NoError(t, EncodeScene(&buf, sf, FormatYAML))
	assert.Contains(t, buf.String(), "name: mover")
}

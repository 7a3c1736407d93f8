package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dropScene = `
objects:
  - name: floor
    components:
      - type: AABBCollider
        size: [10, 1, 10]
  - name: ball
    position: [0, 3, 0]
    components:
      - type: Rigidbody
      - type: SphereCollider
        radius: 0.5
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeScene(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drop.yaml")
	require.NoError(t, os.WriteFile(path, []byte(dropScene), 0o644))
	return path
}

func TestRunPrintsPosesAndEvents(t *testing.T) {
	scene := writeScene(t)
	saved := filepath.Join(t.TempDir(), "final.json")

	out, err := execute(t, "run", "--scene", scene, "--steps", "120", "--events", "--out", saved)
	require.NoError(t, err)
	assert.Contains(t, out, "collision-enter  ball                 floor")
	assert.Contains(t, out, "collision-enter  floor                ball")
	assert.Contains(t, out, "ball                 position")
	assert.NotContains(t, out, "floor                position", "static objects have no pose line")

	data, err := os.ReadFile(saved)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"name": "ball"`)
}

func TestRunErrors(t *testing.T) {
	_, err := execute(t, "run")
	assert.Error(t, err, "scene is required")

	_, err = execute(t, "run", "--scene", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = execute(t, "run", "--scene", writeScene(t), "--steps", "-1")
	assert.Error(t, err)

	badConfig := filepath.Join(t.TempDir(), "physics.yaml")
	require.NoError(t, os.WriteFile(badConfig, []byte("fixed_delta_time: -1\n"), 0o644))
	_, err = execute(t, "--config", badConfig, "run", "--scene", writeScene(t))
	assert.Error(t, err)
}

func TestRaycast(t *testing.T) {
	scene := writeScene(t)

	out, err := execute(t, "raycast", "--scene", scene, "--origin", "0,10,0", "--direction", "0,-1,0")
	require.NoError(t, err)
	assert.Equal(t, "hit ball at (0.0000, 3.5000, 0.0000) normal (0.0000, 1.0000, 0.0000) distance 6.5000\n", out)

	out, err = execute(t, "raycast", "--scene", scene, "--origin", "20,10,0")
	require.NoError(t, err)
	assert.Equal(t, "no hit\n", out)

	_, err = execute(t, "raycast", "--scene", scene, "--origin", "1,2")
	assert.Error(t, err)
}

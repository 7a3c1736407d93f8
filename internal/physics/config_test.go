package physics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigOverridesDefaults(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(`
gravity: -20
broad_phase: bruteforce
grid:
  max_per_cell: 4
`))
	require.NoError(t, err)

	want := DefaultConfig()
	want.Gravity = -20
	want.BroadPhase = BroadPhaseBruteForce
	want.Grid.MaxPerCell = 4
	assert.Equal(t, want, cfg)
}

func TestLoadConfigEmptyIsDefault(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		invalid bool
	}{
		{"malformed", "gravity: [", false},
		{"wrong type", "grid: 3", false},
		{"zero timestep", "fixed_delta_time: 0", true},
		{"unknown broad phase", "broad_phase: octree", true},
		{"bad divide", "grid: {node_divide: 0}", true},
		{"negative depth", "grid: {max_depth: -1}", true},
		{"negative interval", "stats_interval: -5", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Equal(t, tt.invalid, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "physics.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fixed_delta_time: 0.02\n"), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, float32(0.02), cfg.FixedDeltaTime)

	_, err = LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

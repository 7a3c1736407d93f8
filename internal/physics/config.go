package physics

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid physics config")

// BroadPhase selects how candidate pairs are gathered.
type BroadPhase string

const (
	BroadPhaseGrid       BroadPhase = "grid"
	BroadPhaseBruteForce BroadPhase = "bruteforce"
)

type GridConfig struct {
	NodeDivide int `json:"node_divide" yaml:"node_divide"` // cells per axis before the minimum cell size applies
	MaxPerCell int `json:"max_per_cell" yaml:"max_per_cell"`
	MaxDepth   int `json:"max_depth" yaml:"max_depth"`
}

type Config struct {
	Gravity        float32    `json:"gravity" yaml:"gravity"` // along Y
	FixedDeltaTime float32    `json:"fixed_delta_time" yaml:"fixed_delta_time"`
	BroadPhase     BroadPhase `json:"broad_phase" yaml:"broad_phase"`
	Grid           GridConfig `json:"grid" yaml:"grid"`
	StatsInterval  int        `json:"stats_interval" yaml:"stats_interval"` // steps between debug stat logs, 0 disables
}

func DefaultConfig() Config {
	return Config{
		Gravity:        -9.81,
		FixedDeltaTime: 0.01667,
		BroadPhase:     BroadPhaseGrid,
		Grid: GridConfig{
			NodeDivide: 8,
			MaxPerCell: 16,
			MaxDepth:   8,
		},
		StatsInterval: 100,
	}
}

// LoadConfig reads YAML from r on top of DefaultConfig.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode physics config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open physics config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

func (c Config) Validate() error {
	if c.FixedDeltaTime <= 0 {
		return fmt.Errorf("%w: fixed_delta_time must be positive, got %v", ErrInvalidConfig, c.FixedDeltaTime)
	}
	switch c.BroadPhase {
	case BroadPhaseGrid, BroadPhaseBruteForce:
	default:
		return fmt.Errorf("%w: unknown broad_phase %q", ErrInvalidConfig, c.BroadPhase)
	}
	if c.Grid.NodeDivide < 1 {
		return fmt.Errorf("%w: grid.node_divide must be at least 1, got %d", ErrInvalidConfig, c.Grid.NodeDivide)
	}
	if c.Grid.MaxPerCell < 1 {
		return fmt.Errorf("%w: grid.max_per_cell must be at least 1, got %d", ErrInvalidConfig, c.Grid.MaxPerCell)
	}
	if c.Grid.MaxDepth < 0 {
		return fmt.Errorf("%w: grid.max_depth must not be negative, got %d", ErrInvalidConfig, c.Grid.MaxDepth)
	}
	if c.StatsInterval < 0 {
		return fmt.Errorf("%w: stats_interval must not be negative, got %d", ErrInvalidConfig, c.StatsInterval)
	}
	return nil
}

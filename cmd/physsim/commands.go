package main

import (
	"errors"
	"fmt"
	"io"

	"mirgo/internal/engine"
	"mirgo/internal/physics"
	"mirgo/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type globalFlags struct {
	config  string
	verbose bool
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}
	root := &cobra.Command{
		Use:          "physsim",
		Short:        "Run physics scenes without a window",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "physics config (YAML); defaults when empty")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newRunCommand(flags), newRaycastCommand(flags))
	return root
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// loadWorld builds a world from the config flag and instantiates scenePath.
func loadWorld(flags *globalFlags, scenePath string, log *zap.Logger) (*world.World, error) {
	cfg := physics.DefaultConfig()
	if flags.config != "" {
		var err error
		if cfg, err = physics.LoadConfigFile(flags.config); err != nil {
			return nil, err
		}
	}
	w, err := world.New(cfg, world.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if _, err := w.LoadScene(scenePath); err != nil {
		return nil, err
	}
	return w, nil
}

func newRunCommand(flags *globalFlags) *cobra.Command {
	var (
		scene  string
		steps  int
		out    string
		events bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Step a scene and print the final poses",
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 0 {
				return errors.New("steps must not be negative")
			}
			log, err := newLogger(flags.verbose)
			if err != nil {
				return err
			}
			defer log.Sync()

			w, err := loadWorld(flags, scene, log)
			if err != nil {
				return err
			}
			defer w.Unload()

			if events {
				attachEventLoggers(w.Scene, cmd.OutOrStdout(), w.Physics)
			}
			w.Start()
			for range steps {
				w.Step()
			}

			stats := w.Physics.Stats()
			log.Info("simulation finished",
				zap.Int("steps", steps),
				zap.Int("shapes", stats.Shapes),
				zap.Int("actors", stats.Actors),
			)
			printPoses(cmd.OutOrStdout(), w.Scene)

			if out != "" {
				if err := w.SaveScene(out); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&scene, "scene", "s", "", "scene file (.json, .yaml)")
	cmd.Flags().IntVarP(&steps, "steps", "n", 600, "fixed steps to simulate")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the final scene to this file")
	cmd.Flags().BoolVar(&events, "events", false, "print trigger and collision events")
	_ = cmd.MarkFlagRequired("scene")
	return cmd
}

func newRaycastCommand(flags *globalFlags) *cobra.Command {
	var (
		scene       string
		origin      []float32
		direction   []float32
		maxDistance float32
	)
	cmd := &cobra.Command{
		Use:   "raycast",
		Short: "Cast a ray into a scene and print the closest hit",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := vectorFlag("origin", origin)
			if err != nil {
				return err
			}
			d, err := vectorFlag("direction", direction)
			if err != nil {
				return err
			}
			log, err := newLogger(flags.verbose)
			if err != nil {
				return err
			}
			defer log.Sync()

			w, err := loadWorld(flags, scene, log)
			if err != nil {
				return err
			}
			defer w.Unload()

			hit, ok := w.Physics.Raycast(o, d, maxDistance, nil)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "no hit")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "hit %s at %s normal %s distance %.4f\n",
				hit.GameObject.Name, formatVec(hit.Point), formatVec(hit.Normal), hit.Distance)
			return nil
		},
	}
	cmd.Flags().StringVarP(&scene, "scene", "s", "", "scene file (.json, .yaml)")
	cmd.Flags().Float32SliceVar(&origin, "origin", []float32{0, 0, 0}, "ray origin x,y,z")
	cmd.Flags().Float32SliceVar(&direction, "direction", []float32{0, -1, 0}, "ray direction x,y,z")
	cmd.Flags().Float32Var(&maxDistance, "max-distance", 1000, "ray length")
	_ = cmd.MarkFlagRequired("scene")
	return cmd
}

func vectorFlag(name string, v []float32) (rl.Vector3, error) {
	if len(v) != 3 {
		return rl.Vector3{}, fmt.Errorf("--%s needs 3 components, got %d", name, len(v))
	}
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}, nil
}

func formatVec(v rl.Vector3) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}

func printPoses(out io.Writer, scene *engine.Scene) {
	for _, g := range scene.GameObjects {
		rb := engine.GetComponent[*physics.Rigidbody](g)
		if rb == nil {
			continue
		}
		fmt.Fprintf(out, "%-20s position %s velocity %s\n", g.Name, formatVec(g.WorldPosition()), formatVec(rb.Velocity))
	}
}

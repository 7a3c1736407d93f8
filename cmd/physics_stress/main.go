// Stress test comparing grid vs brute-force broad phase
package main

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"time"

	"mirgo/internal/engine"
	"mirgo/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type options struct {
	counts  []int
	steps   int
	seed    int64
	verbose bool
}

type result struct {
	count  int
	grid   run
	brute  run
	equals bool
}

type run struct {
	perStep time.Duration
	pairs   int // candidates that passed the swept-bounds test, summed over steps
	hits    int // confirmed triggers and collisions, summed over steps
	nodes   int
}

func main() {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "physics_stress",
		Short: "Time grid and brute-force pair gathering on random populations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return stress(cmd, opts)
		},
		SilenceUsage: true,
	}
	cmd.Flags().IntSliceVar(&opts.counts, "counts", []int{100, 500, 1000, 2000, 5000}, "object counts to test")
	cmd.Flags().IntVar(&opts.steps, "steps", 10, "steps timed per world")
	cmd.Flags().Int64Var(&opts.seed, "seed", 42, "population seed")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func stress(cmd *cobra.Command, opts options) error {
	log, err := newLogger(opts.verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	// Worlds share nothing, so every count runs on its own goroutine.
	results := make([]result, len(opts.counts))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, count := range opts.counts {
		g.Go(func() error {
			r, err := compare(count, opts, log.With(zap.Int("count", count)))
			if err != nil {
				return fmt.Errorf("%d objects: %w", count, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	mismatch := false
	for _, r := range results {
		speedup := float64(r.brute.perStep) / float64(max(r.grid.perStep, 1))
		status := "ok"
		if !r.equals {
			status = "MISMATCH"
			mismatch = true
		}
		fmt.Fprintf(out, "%5d objects: grid %10v (%5d nodes) | brute %10v | %6d pairs %6d hits | %.1fx speedup | %s\n",
			r.count, r.grid.perStep.Round(time.Microsecond), r.grid.nodes,
			r.brute.perStep.Round(time.Microsecond), r.grid.pairs, r.grid.hits, speedup, status)
	}
	if mismatch {
		return fmt.Errorf("broad phases disagree")
	}
	return nil
}

func compare(count int, opts options, log *zap.Logger) (result, error) {
	grid, err := simulate(count, opts, physics.BroadPhaseGrid, log)
	if err != nil {
		return result{}, err
	}
	brute, err := simulate(count, opts, physics.BroadPhaseBruteForce, log)
	if err != nil {
		return result{}, err
	}
	return result{
		count:  count,
		grid:   grid,
		brute:  brute,
		equals: grid.pairs == brute.pairs && grid.hits == brute.hits,
	}, nil
}

// simulate builds a seeded population and steps it. Contacts are solved
// order-independently, so both broad phases evolve the same population
// identically and their counters must match step for step.
func simulate(count int, opts options, bp physics.BroadPhase, log *zap.Logger) (run, error) {
	cfg := physics.DefaultConfig()
	cfg.Gravity = 0
	w, err := physics.New(cfg, physics.WithBroadPhase(bp), physics.WithLogger(log.Named(string(bp))))
	if err != nil {
		return run{}, err
	}
	defer w.Destroy()

	var r run
	w.Stepped.AddListener(func(s physics.StepStats) {
		r.pairs += s.TriggerPairs + s.CollisionPairs
		r.hits += s.Triggers + s.Collisions
		r.nodes = s.GridNodes
	})

	populate(w, count, opts.seed)

	start := time.Now()
	for range opts.steps {
		w.SimulatePositionCorrection(cfg.FixedDeltaTime)
	}
	r.perStep = time.Since(start) / time.Duration(max(opts.steps, 1))
	log.Debug("broad phase timed", zap.String("broad_phase", string(bp)), zap.Duration("per_step", r.perStep))
	return r, nil
}

// populate spawns count objects in a cube whose size grows with count to
// keep density reasonable.
func populate(w *physics.World, count int, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	spawnSize := float32(50.0) + float32(count)/100.0

	for i := range count {
		g := engine.NewGameObject(fmt.Sprintf("Body_%d", i))
		g.Transform.Position = rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: rng.Float32()*spawnSize - spawnSize/2,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}

		// every fourth object is static
		if i%4 != 0 {
			rb := physics.NewRigidbody(w)
			rb.Velocity = rl.Vector3{
				X: rng.Float32()*4 - 2,
				Y: rng.Float32()*4 - 2,
				Z: rng.Float32()*4 - 2,
			}
			g.AddComponent(rb)
		}

		if i%3 == 0 {
			size := 0.5 + rng.Float32()*1.5
			col := physics.NewAABBCollider(w, rl.Vector3{X: size, Y: size, Z: size})
			col.IsTrigger = i%5 == 0
			g.AddComponent(col)
		} else {
			col := physics.NewSphereCollider(w, 0.5+rng.Float32()*0.5)
			col.IsTrigger = i%5 == 0
			g.AddComponent(col)
		}
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

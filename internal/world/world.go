package world

import (
	"fmt"

	"mirgo/internal/engine"
	"mirgo/internal/physics"

	"github.com/chewxy/math32"
	"go.uber.org/zap"
)

// DefaultMaxSubSteps bounds how many fixed steps a single Update may run.
const DefaultMaxSubSteps = 8

// World couples a Scene with the physics world that simulates it and
// advances both from a variable frame time.
type World struct {
	Scene   *engine.Scene
	Physics *physics.World

	// MaxSubSteps caps the fixed steps per Update. Time beyond the cap is
	// dropped so a long frame cannot snowball.
	MaxSubSteps int

	log         *zap.Logger
	accumulator float32
}

type Option func(*World)

func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

func WithMaxSubSteps(n int) Option {
	return func(w *World) {
		w.MaxSubSteps = n
	}
}

// New creates an empty scene backed by a physics world built from cfg.
func New(cfg physics.Config, opts ...Option) (*World, error) {
	w := &World{
		Scene:       engine.NewScene("Main"),
		MaxSubSteps: DefaultMaxSubSteps,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.MaxSubSteps < 1 {
		w.MaxSubSteps = 1
	}

	pw, err := physics.New(cfg, physics.WithLogger(w.log.Named("physics")))
	if err != nil {
		return nil, fmt.Errorf("create physics world: %w", err)
	}
	w.Physics = pw
	return w, nil
}

// FixedDeltaTime is the length of one physics step.
func (w *World) FixedDeltaTime() float32 {
	return w.Physics.Config().FixedDeltaTime
}

// Pending is the simulated time carried over to the next Update.
func (w *World) Pending() float32 {
	return w.accumulator
}

func (w *World) Start() {
	w.Scene.Start()
}

// Update runs the scene's components, then as many fixed physics steps as
// deltaTime covers. It returns the number of steps taken.
func (w *World) Update(deltaTime float32) int {
	w.Scene.Update(deltaTime)
	if deltaTime <= 0 {
		return 0
	}

	fixed := w.FixedDeltaTime()
	w.accumulator += deltaTime
	steps := 0
	for w.accumulator >= fixed && steps < w.MaxSubSteps {
		w.Physics.SimulatePositionCorrection(fixed)
		w.accumulator -= fixed
		steps++
	}
	if w.accumulator >= fixed {
		w.log.Debug("dropping simulation time",
			zap.Float32("seconds", w.accumulator),
			zap.Int("max_sub_steps", w.MaxSubSteps),
		)
		w.accumulator = math32.Mod(w.accumulator, fixed)
	}
	return steps
}

// Step runs exactly one fixed physics step, leaving the accumulator alone.
func (w *World) Step() {
	w.Physics.SimulatePositionCorrection(w.FixedDeltaTime())
}

// Spawn adds g to the scene. Components should already be attached so
// that they register with the physics world.
func (w *World) Spawn(g *engine.GameObject) {
	w.Scene.AddGameObject(g)
}

// GetCollidableObjects returns all GameObjects that carry a collider.
func (w *World) GetCollidableObjects() []*engine.GameObject {
	var result []*engine.GameObject
	for _, g := range w.Scene.GameObjects {
		if c := engine.GetComponent[physics.Collider](g); c != nil {
			result = append(result, g)
		}
	}
	return result
}

// Unload destroys every object in the scene and then the physics world.
func (w *World) Unload() {
	objects := append([]*engine.GameObject(nil), w.Scene.GameObjects...)
	for _, g := range objects {
		if g.Parent == nil {
			g.Destroy()
		}
	}
	w.Physics.Destroy()
	w.accumulator = 0
}

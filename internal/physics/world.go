package physics

import (
	"time"

	"mirgo/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// StepStats describes one call to SimulatePositionCorrection.
type StepStats struct {
	Step           uint64
	Shapes         int
	Actors         int
	Candidates     int // pairs handed over by the broad phase
	TriggerPairs   int // candidates with overlapping swept bounds and a trigger side
	CollisionPairs int // candidates with overlapping swept bounds and no trigger side
	Triggers       int // confirmed trigger overlaps
	Collisions     int // confirmed collisions
	GridNodes      int
	Duration       time.Duration
}

type shapePair struct {
	a, b *Shape
}

// World owns every registered rigidbody and collider and steps them.
// A World is not safe for concurrent use; separate Worlds share nothing.
type World struct {
	cfg Config
	log *zap.Logger

	actors pool[Actor]
	shapes pool[Shape]
	grid   *Grid

	liveActors     []*Actor
	liveShapes     []*Shape
	triggerPairs   []shapePair
	collisionPairs []shapePair

	stats     StepStats
	steps     uint64
	destroyed bool

	// Stepped fires at the end of every step, after all callbacks.
	Stepped engine.EventWithArg[StepStats]
}

// Option configures a World at construction.
type Option func(*World)

// WithLogger sets the logger; nil keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithBroadPhase overrides Config.BroadPhase.
func WithBroadPhase(bp BroadPhase) Option {
	return func(w *World) {
		w.cfg.BroadPhase = bp
	}
}

// New validates cfg and returns an empty World ready to be stepped.
func New(cfg Config, opts ...Option) (*World, error) {
	w := &World{
		cfg: cfg,
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.cfg.Validate(); err != nil {
		return nil, err
	}
	w.grid = NewGrid(w.cfg.Grid, w.checkBounds)
	w.triggerPairs = make([]shapePair, 0, 128)
	w.collisionPairs = make([]shapePair, 0, 128)
	return w, nil
}

func (w *World) Config() Config {
	return w.cfg
}

// Stats returns the statistics of the last step.
func (w *World) Stats() StepStats {
	return w.stats
}

// Destroy unregisters everything. The World must not be stepped afterwards;
// later registrations are ignored.
func (w *World) Destroy() {
	if w.destroyed {
		w.log.Warn("physics world destroyed twice")
		return
	}
	for i := 0; i < w.shapes.len(); i++ {
		if s := w.shapes.at(i); s != nil {
			s.collider.base().shape = Handle{}
			s.setInvalid()
		}
	}
	for i := 0; i < w.actors.len(); i++ {
		if a := w.actors.at(i); a != nil {
			a.body.actor = Handle{}
			a.setInvalid()
		}
	}
	w.shapes.reset()
	w.actors.reset()
	w.Stepped.RemoveAllListeners()
	w.destroyed = true
}

func (w *World) RegisterRigidbody(rb *Rigidbody) {
	if w.destroyed {
		w.log.Warn("rigidbody registered with destroyed world", zap.String("object", objectName(rb)))
		return
	}
	if w.actors.valid(rb.actor) {
		return
	}
	a := &Actor{body: rb}
	a.handle = w.actors.insert(a)
	rb.actor = a.handle
	w.log.Debug("rigidbody registered", zap.String("object", objectName(rb)))
	w.refreshAttachments(rb.GetGameObject())
}

func (w *World) UnregisterRigidbody(rb *Rigidbody) {
	a := w.actors.get(rb.actor)
	if a == nil {
		return
	}
	a.setInvalid()
	w.actors.release(rb.actor)
	rb.actor = Handle{}
	w.refreshAttachments(rb.GetGameObject())
}

// Register3D adds c to the simulation. Registering twice is a no-op.
func (w *World) Register3D(c Collider) {
	b := c.base()
	if w.destroyed {
		w.log.Warn("collider registered with destroyed world", zap.String("object", objectName(c)))
		return
	}
	if w.shapes.valid(b.shape) {
		return
	}
	s := &Shape{collider: c}
	s.handle = w.shapes.insert(s)
	b.shape = s.handle
}

// Unregister3D tombstones the shape of c. It is dropped at the next step.
func (w *World) Unregister3D(c Collider) {
	b := c.base()
	s := w.shapes.get(b.shape)
	if s == nil {
		return
	}
	s.setInvalid()
	w.shapes.release(b.shape)
	b.shape = Handle{}
}

// refreshAttachments re-resolves the rigidbody of every registered collider
// in the subtree of g. Colliders enabled before their rigidbody pick it up
// here, and colliders of a removed rigidbody fall back to the next one up.
func (w *World) refreshAttachments(g *engine.GameObject) {
	if g == nil {
		return
	}
	for _, c := range g.Components() {
		if col, ok := c.(Collider); ok && w.shapes.valid(col.base().shape) {
			col.base().attached = nearestRegisteredRigidbody(g)
		}
	}
	for _, child := range g.Children {
		w.refreshAttachments(child)
	}
}

func nearestRegisteredRigidbody(g *engine.GameObject) *Rigidbody {
	for cur := g; cur != nil; cur = cur.Parent {
		for _, c := range cur.Components() {
			if rb, ok := c.(*Rigidbody); ok && rb.Registered() {
				return rb
			}
		}
	}
	return nil
}

// SimulatePositionCorrection advances the world by step seconds.
func (w *World) SimulatePositionCorrection(step float32) {
	if w.destroyed {
		return
	}
	start := time.Now()
	w.steps++
	w.stats = StepStats{Step: w.steps}

	// 1. Drop tombstones, integrate bodies and sweep shape bounds
	w.initializeSimulate(step)

	// 2. Broad phase
	w.triggerPairs = w.triggerPairs[:0]
	w.collisionPairs = w.collisionPairs[:0]
	if w.cfg.BroadPhase == BroadPhaseBruteForce {
		for i := 0; i < len(w.liveShapes); i++ {
			for j := i + 1; j < len(w.liveShapes); j++ {
				w.checkBounds(w.liveShapes[i], w.liveShapes[j])
			}
		}
		w.stats.GridNodes = 0
	} else {
		w.grid.Update(w.liveShapes)
		w.grid.GatherPairs()
		w.stats.GridNodes = w.grid.NodeCount()
	}
	w.stats.TriggerPairs = len(w.triggerPairs)
	w.stats.CollisionPairs = len(w.collisionPairs)

	// 3. Move bodies before the narrow phase
	for _, a := range w.liveActors {
		a.body.applyMove(step, w.cfg.FixedDeltaTime)
	}

	// 4. Triggers
	for _, p := range w.triggerPairs {
		if Intersects(p.a.collider, p.b.collider) {
			p.a.addTrigger(p.b.collider)
			p.b.addTrigger(p.a.collider)
			w.stats.Triggers++
		}
	}

	// 5. Collisions accumulate corrections into the actors
	for _, p := range w.collisionPairs {
		c, ok := resolve(p.a.collider, p.b.collider, p.a.actor, p.b.actor)
		if !ok {
			continue
		}
		p.a.addCollision(engine.Collision{
			Collider:   p.b.collider,
			GameObject: p.b.collider.GetGameObject(),
			Contacts:   []engine.ContactPoint{{Point: c.point, Normal: c.normal}},
		})
		p.b.addCollision(engine.Collision{
			Collider:   p.a.collider,
			GameObject: p.a.collider.GetGameObject(),
			Contacts:   []engine.ContactPoint{{Point: c.point, Normal: rl.Vector3Negate(c.normal)}},
		})
		w.stats.Collisions++
	}

	// 6. Apply combined corrections once per body
	for _, a := range w.liveActors {
		if a.Valid() {
			a.body.solveCorrection(a.CorrectPosition(), a.CorrectVelocity())
		}
	}

	// 7. Callbacks. Shapes registered by a callback join next step.
	for _, s := range w.liveShapes {
		if s.valid() {
			s.collideCallback()
		}
	}

	w.stats.Duration = time.Since(start)
	if w.cfg.StatsInterval > 0 && w.steps%uint64(w.cfg.StatsInterval) == 0 {
		w.log.Debug("physics step",
			zap.Uint64("step", w.stats.Step),
			zap.Int("shapes", w.stats.Shapes),
			zap.Int("actors", w.stats.Actors),
			zap.Int("candidates", w.stats.Candidates),
			zap.Int("triggers", w.stats.Triggers),
			zap.Int("collisions", w.stats.Collisions),
			zap.Int("grid_nodes", w.stats.GridNodes),
			zap.Duration("duration", w.stats.Duration),
		)
	}
	w.Stepped.Invoke(w.stats)
}

func (w *World) initializeSimulate(step float32) {
	w.actors.purge()
	w.shapes.purge()

	w.liveActors = w.liveActors[:0]
	for i := 0; i < w.actors.len(); i++ {
		a := w.actors.at(i)
		if a == nil {
			continue
		}
		a.body.physicsUpdate(w.cfg.Gravity, w.cfg.FixedDeltaTime)
		a.initCorrections()
		w.liveActors = append(w.liveActors, a)
	}

	w.liveShapes = w.liveShapes[:0]
	for i := 0; i < w.shapes.len(); i++ {
		s := w.shapes.at(i)
		if s == nil {
			continue
		}
		s.initOtherNew()

		bounds := s.collider.Bounds()
		s.actor = nil
		if rb := s.body(); rb != nil {
			if a := w.actors.get(rb.actor); a != nil {
				s.actor = a
				mv := rb.moveVector(step, w.cfg.FixedDeltaTime)
				bounds.Encapsulate(rl.Vector3Add(bounds.Min(), mv))
				bounds.Encapsulate(rl.Vector3Add(bounds.Max(), mv))
			}
		}
		s.moveBounds = bounds
		w.liveShapes = append(w.liveShapes, s)
	}

	w.stats.Actors = len(w.liveActors)
	w.stats.Shapes = len(w.liveShapes)
}

// checkBounds classifies a broad-phase candidate.
func (w *World) checkBounds(a, b *Shape) {
	w.stats.Candidates++
	if !a.moveBounds.Intersects(b.moveBounds) {
		return
	}
	// compound colliders of one body do not collide with themselves
	if a.actor != nil && a.actor == b.actor {
		return
	}
	if a.collider.base().IsTrigger || b.collider.base().IsTrigger {
		w.triggerPairs = append(w.triggerPairs, shapePair{a, b})
		return
	}
	// two static solids have nothing to resolve
	if a.actor == nil && b.actor == nil {
		return
	}
	w.collisionPairs = append(w.collisionPairs, shapePair{a, b})
}

func objectName(c engine.Component) string {
	if g := c.GetGameObject(); g != nil {
		return g.Name
	}
	return ""
}

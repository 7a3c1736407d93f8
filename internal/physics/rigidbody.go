package physics

import (
	"mirgo/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Rigidbody simulates one body. Its position and rotation shadow the
// Transform during a step and are written back once all contacts of the
// step have been solved. Editing the Transform directly between steps
// teleports the body.
type Rigidbody struct {
	engine.BaseComponent
	Velocity     rl.Vector3
	Mass         float32 // <= 0 is treated as 1
	GravityScale float32 // 1 = normal gravity, 0 = none, negative = reversed
	IsKinematic  bool    // moves but never receives contact corrections

	world    *World
	actor    Handle
	position rl.Vector3
	rotation rl.Vector3
	move     rl.Vector3

	// pose last written to the Transform; a different Transform pose at
	// the start of a step means it was edited directly
	writtenPos rl.Vector3
	writtenRot rl.Vector3

	hasMovePos bool
	hasMoveRot bool
}

func NewRigidbody(w *World) *Rigidbody {
	if w == nil {
		panic("physics: NewRigidbody with nil world")
	}
	return &Rigidbody{
		world:        w,
		Mass:         1.0,
		GravityScale: 1.0,
	}
}

func (r *Rigidbody) OnEnable() {
	g := r.GetGameObject()
	r.position = g.WorldPosition()
	r.rotation = g.WorldRotation()
	r.writtenPos = r.position
	r.writtenRot = r.rotation
	r.world.RegisterRigidbody(r)
}

func (r *Rigidbody) OnDisable() {
	r.world.UnregisterRigidbody(r)
}

// Registered reports whether r currently participates in simulation.
func (r *Rigidbody) Registered() bool {
	return r.world.actors.valid(r.actor)
}

func (r *Rigidbody) Position() rl.Vector3 {
	return r.position
}

func (r *Rigidbody) Rotation() rl.Vector3 {
	return r.rotation
}

// SetPosition teleports the body. No movement is swept this step.
func (r *Rigidbody) SetPosition(p rl.Vector3) {
	r.position = p
	r.move = rl.Vector3{}
	r.hasMovePos = true
}

// SetRotation sets the rotation immediately.
func (r *Rigidbody) SetRotation(rot rl.Vector3) {
	r.rotation = rot
	r.hasMoveRot = true
}

// MovePosition drives the body to p during the next step, replacing
// velocity integration for that step. The path is swept for collisions.
func (r *Rigidbody) MovePosition(p rl.Vector3) {
	r.move = rl.Vector3Subtract(p, r.position)
	r.hasMovePos = true
}

// MoveRotation sets the rotation for the next step.
func (r *Rigidbody) MoveRotation(rot rl.Vector3) {
	r.rotation = rot
	r.hasMoveRot = true
}

func (r *Rigidbody) effectiveMass() float32 {
	if r.Mass <= 0 {
		return 1.0
	}
	return r.Mass
}

// moveVector is the pending movement scaled for a step of the given length.
func (r *Rigidbody) moveVector(step, fixedDeltaTime float32) rl.Vector3 {
	if fixedDeltaTime <= 0 {
		return r.move
	}
	return rl.Vector3Scale(r.move, step/fixedDeltaTime)
}

// drift is how far the simulated position has moved away from the
// Transform since the last write-back.
func (r *Rigidbody) drift() rl.Vector3 {
	return rl.Vector3Subtract(r.position, r.GetGameObject().WorldPosition())
}

// physicsUpdate runs before any contact is evaluated. It only prepares the
// pending movement; position and velocity change after collision handling.
func (r *Rigidbody) physicsUpdate(gravity, fixedDeltaTime float32) {
	r.syncTransform()
	if !r.IsKinematic && r.GravityScale != 0 {
		r.Velocity.Y += gravity * r.GravityScale * fixedDeltaTime
	}
	if !r.hasMovePos {
		r.move = rl.Vector3Scale(r.Velocity, fixedDeltaTime)
	}
}

func (r *Rigidbody) applyMove(step, fixedDeltaTime float32) {
	r.position = rl.Vector3Add(r.position, r.moveVector(step, fixedDeltaTime))
	r.move = rl.Vector3{}
	r.hasMovePos = false
	r.hasMoveRot = false
}

// solveCorrection applies the step's combined corrections and writes the
// pose back to the Transform.
func (r *Rigidbody) solveCorrection(position, velocity rl.Vector3) {
	r.position = rl.Vector3Add(r.position, position)
	r.Velocity = rl.Vector3Add(r.Velocity, velocity)

	g := r.GetGameObject()
	g.SetWorldPosition(r.position)
	g.SetWorldRotation(r.rotation)
	r.writtenPos = g.WorldPosition()
	r.writtenRot = g.WorldRotation()
}

// syncTransform adopts Transform edits made since the last write-back.
func (r *Rigidbody) syncTransform() {
	g := r.GetGameObject()
	if p := g.WorldPosition(); p != r.writtenPos {
		r.position = p
		r.writtenPos = p
	}
	if rot := g.WorldRotation(); rot != r.writtenRot {
		r.rotation = rot
		r.writtenRot = rot
	}
}

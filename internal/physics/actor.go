package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// CorrectionAccumulator combines the corrections a body receives from all
// of its contacts in one step. Per axis it keeps the most negative and the
// most positive contribution (zero included) and Sum returns their total,
// so two contacts pushing the same way do not stack while opposing pushes
// cancel. The result does not depend on the order contacts are added.
type CorrectionAccumulator struct {
	lo, hi rl.Vector3
}

func (c *CorrectionAccumulator) Add(v rl.Vector3) {
	c.lo = rl.Vector3{X: math32.Min(c.lo.X, v.X), Y: math32.Min(c.lo.Y, v.Y), Z: math32.Min(c.lo.Z, v.Z)}
	c.hi = rl.Vector3{X: math32.Max(c.hi.X, v.X), Y: math32.Max(c.hi.Y, v.Y), Z: math32.Max(c.hi.Z, v.Z)}
}

func (c CorrectionAccumulator) Sum() rl.Vector3 {
	return rl.Vector3Add(c.lo, c.hi)
}

func (c *CorrectionAccumulator) Reset() {
	*c = CorrectionAccumulator{}
}

// Actor is the per-step simulation record of one registered Rigidbody.
type Actor struct {
	body     *Rigidbody
	handle   Handle
	position CorrectionAccumulator
	velocity CorrectionAccumulator
}

func (a *Actor) Rigidbody() *Rigidbody {
	return a.body
}

// Valid is false once the rigidbody has been unregistered.
func (a *Actor) Valid() bool {
	return a.body != nil
}

func (a *Actor) setInvalid() {
	a.body = nil
}

func (a *Actor) AddCorrectPosition(v rl.Vector3) {
	a.position.Add(v)
}

func (a *Actor) AddCorrectVelocity(v rl.Vector3) {
	a.velocity.Add(v)
}

// CorrectPosition is the combined position correction gathered this step.
func (a *Actor) CorrectPosition() rl.Vector3 {
	return a.position.Sum()
}

// CorrectVelocity is the combined velocity correction gathered this step.
func (a *Actor) CorrectVelocity() rl.Vector3 {
	return a.velocity.Sum()
}

func (a *Actor) initCorrections() {
	a.position.Reset()
	a.velocity.Reset()
}

// movable reports whether contact corrections may be applied to a's body.
func (a *Actor) movable() bool {
	return a != nil && a.body != nil && !a.body.IsKinematic
}

// velocityOf returns the linear velocity of the body behind a; statics are at rest.
func velocityOf(a *Actor) rl.Vector3 {
	if a == nil || a.body == nil {
		return rl.Vector3{}
	}
	return a.body.Velocity
}

// inverseMass is zero for statics and kinematic bodies.
func inverseMass(a *Actor) float32 {
	if !a.movable() {
		return 0
	}
	return 1 / a.body.effectiveMass()
}

package physics

import (
	"math/rand"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestCorrectionAccumulatorSameDirectionDoesNotStack(t *testing.T) {
	var c CorrectionAccumulator
	c.Add(rl.Vector3{X: 1})
	c.Add(rl.Vector3{X: 0.5})
	assert.Equal(t, rl.Vector3{X: 1}, c.Sum())
}

func TestCorrectionAccumulatorOpposingCancel(t *testing.T) {
	var c CorrectionAccumulator
	c.Add(rl.Vector3{Y: 2})
	c.Add(rl.Vector3{Y: -2})
	assert.Equal(t, rl.Vector3{}, c.Sum())

	c.Reset()
	assert.Equal(t, rl.Vector3{}, c.Sum())
}

func TestCorrectionAccumulatorOrderIndependent(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for i := 0; i < 100; i++ {
		vs := make([]rl.Vector3, 2+r.Intn(6))
		for j := range vs {
			vs[j] = randVec(r, 5)
		}

		var forward, shuffled CorrectionAccumulator
		for _, v := range vs {
			forward.Add(v)
		}
		for _, j := range r.Perm(len(vs)) {
			shuffled.Add(vs[j])
		}
		assert.Equal(t, forward.Sum(), shuffled.Sum())
	}
}

func TestActorContactOrderIndependent(t *testing.T) {
	// body A touches B and C in one step; the order the pairs are
	// resolved in must not change A's corrections
	run := func(order [2]int) (rl.Vector3, rl.Vector3) {
		w := newTestWorld(t)
		_, a, rbA := spawnSphere(w, "A", rl.Vector3{}, 1, true)
		_, b, rbB := spawnSphere(w, "B", rl.Vector3{X: 1.5}, 1, true)
		_, c, rbC := spawnBox(w, "C", rl.Vector3{Y: -1.2}, rl.Vector3{X: 4, Y: 1, Z: 4}, true)
		rbA.Velocity = rl.Vector3{X: 1, Y: -1}
		rbC.Mass = 2

		actA, actB, actC := actorOf(w, rbA), actorOf(w, rbB), actorOf(w, rbC)
		pairs := [2]func(){
			func() { CheckIntersect(a, b, actA, actB) },
			func() { CheckIntersect(a, c, actA, actC) },
		}
		for _, i := range order {
			pairs[i]()
		}
		return actA.CorrectPosition(), actA.CorrectVelocity()
	}

	p1, v1 := run([2]int{0, 1})
	p2, v2 := run([2]int{1, 0})
	assert.Equal(t, p1, p2)
	assert.Equal(t, v1, v2)
	assert.NotEqual(t, rl.Vector3{}, p1)
}

func TestInverseMass(t *testing.T) {
	w := newTestWorld(t)
	_, _, rb := spawnSphere(w, "s", rl.Vector3{}, 1, true)
	a := actorOf(w, rb)

	rb.Mass = 4
	assert.Equal(t, float32(0.25), inverseMass(a))

	rb.Mass = -1
	assert.Equal(t, float32(1), inverseMass(a))

	rb.IsKinematic = true
	assert.Equal(t, float32(0), inverseMass(a))
	assert.Equal(t, float32(0), inverseMass(nil))
	assert.Equal(t, rl.Vector3{}, velocityOf(nil))
}

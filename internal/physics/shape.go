package physics

import (
	"slices"

	"mirgo/internal/engine"
)

// Shape is the per-step simulation record of one registered Collider.
type Shape struct {
	collider   Collider
	handle     Handle
	actor      *Actor
	moveBounds Bounds // bounds swept over the step's pending movement

	triggers      []Collider
	triggersNew   []Collider
	collisions    []engine.Collision
	collisionsNew []engine.Collision
}

func (s *Shape) Collider() Collider {
	return s.collider
}

// MoveBounds is the swept bounds computed at the start of the last step.
func (s *Shape) MoveBounds() Bounds {
	return s.moveBounds
}

func (s *Shape) valid() bool {
	return s.collider != nil
}

func (s *Shape) setInvalid() {
	s.collider = nil
	s.actor = nil
}

// body is the rigidbody the shape moves with, or nil for statics.
func (s *Shape) body() *Rigidbody {
	if s.collider == nil {
		return nil
	}
	return s.collider.base().attached
}

func (s *Shape) initOtherNew() {
	s.triggersNew = s.triggersNew[:0]
	s.collisionsNew = s.collisionsNew[:0]
}

func (s *Shape) addTrigger(other Collider) {
	if slices.Contains(s.triggersNew, other) {
		return
	}
	s.triggersNew = append(s.triggersNew, other)
}

func (s *Shape) addCollision(c engine.Collision) {
	if slices.ContainsFunc(s.collisionsNew, func(e engine.Collision) bool { return e.Collider == c.Collider }) {
		return
	}
	s.collisionsNew = append(s.collisionsNew, c)
}

// collideCallback compares this step's contacts with the previous step's
// and fires Enter, Stay and Exit on the collider's GameObject. It returns
// early once the shape is unregistered by a callback.
func (s *Shape) collideCallback() {
	g := s.collider.GetGameObject()

	for _, other := range s.triggersNew {
		if i := slices.Index(s.triggers, other); i < 0 {
			g.SendTriggerEnter(other)
			if !s.valid() {
				return
			}
		} else {
			s.triggers = slices.Delete(s.triggers, i, i+1)
		}
		g.SendTriggerStay(other)
		if !s.valid() {
			return
		}
	}
	for _, other := range s.triggers {
		g.SendTriggerExit(other)
		if !s.valid() {
			return
		}
	}
	s.triggers, s.triggersNew = s.triggersNew, s.triggers[:0]

	for _, c := range s.collisionsNew {
		i := slices.IndexFunc(s.collisions, func(e engine.Collision) bool { return e.Collider == c.Collider })
		if i < 0 {
			g.SendCollisionEnter(c)
			if !s.valid() {
				return
			}
		} else {
			s.collisions = slices.Delete(s.collisions, i, i+1)
		}
		g.SendCollisionStay(c)
		if !s.valid() {
			return
		}
	}
	for _, c := range s.collisions {
		g.SendCollisionExit(c)
		if !s.valid() {
			return
		}
	}
	s.collisions, s.collisionsNew = s.collisionsNew, s.collisions[:0]
}

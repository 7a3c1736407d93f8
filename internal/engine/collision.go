package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// ContactPoint describes one point of contact of a collision.
// Normal points away from the other object, towards the receiver.
type ContactPoint struct {
	Point  rl.Vector3
	Normal rl.Vector3
}

// Collision is passed to CollisionHandler callbacks.
// Defined here to avoid circular imports with physics package.
type Collision struct {
	Collider   Component   // the other side's collider
	GameObject *GameObject // owner of Collider at the time of contact
	Contacts   []ContactPoint
}

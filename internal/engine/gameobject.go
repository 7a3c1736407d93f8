package engine

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var nextUID atomic.Uint64

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scale    rl.Vector3
}

type GameObject struct {
	UID        uint64
	Name       string
	Tags       []string
	Transform  Transform
	Active     bool
	Scene      *Scene
	Parent     *GameObject
	Children   []*GameObject
	components []Component
	started    bool
	destroyed  bool
}

func NewGameObject(name string) *GameObject {
	return &GameObject{
		UID:    nextUID.Add(1),
		Name:   name,
		Active: true,
		Transform: Transform{
			Position: rl.Vector3{},
			Rotation: rl.Vector3{},
			Scale:    rl.Vector3{X: 1, Y: 1, Z: 1},
		},
		components: make([]Component, 0),
		Children:   make([]*GameObject, 0),
	}
}

// AddComponent attaches c and enables it right away when the object is active.
func (g *GameObject) AddComponent(c Component) {
	c.SetGameObject(g)
	g.components = append(g.components, c)
	if g.ActiveInHierarchy() {
		if e, ok := c.(Enabler); ok {
			e.OnEnable()
		}
	}
}

// RemoveComponent detaches c, disabling it first when the object is active.
func (g *GameObject) RemoveComponent(c Component) {
	for i, existing := range g.components {
		if existing != c {
			continue
		}
		if g.ActiveInHierarchy() {
			if d, ok := c.(Disabler); ok {
				d.OnDisable()
			}
		}
		g.components = append(g.components[:i], g.components[i+1:]...)
		return
	}
}

// GetComponent returns the first component of type T, or the zero value.
func GetComponent[T Component](g *GameObject) T {
	var zero T
	for _, c := range g.components {
		if typed, ok := c.(T); ok {
			return typed
		}
	}
	return zero
}

// GetComponentInParent searches g and then each ancestor for a component of type T.
func GetComponentInParent[T Component](g *GameObject) (T, bool) {
	for cur := g; cur != nil; cur = cur.Parent {
		for _, c := range cur.components {
			if typed, ok := c.(T); ok {
				return typed, true
			}
		}
	}
	var zero T
	return zero, false
}

func (g *GameObject) Start() {
	if g.started {
		return
	}
	for _, c := range g.components {
		c.Start()
	}
	g.started = true
}

func (g *GameObject) Update(deltaTime float32) {
	if !g.Active || g.destroyed {
		return
	}
	for _, c := range g.components {
		c.Update(deltaTime)
	}
}

func (g *GameObject) Components() []Component {
	return g.components
}

func (g *GameObject) HasTag(tag string) bool {
	for _, t := range g.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

func (g *GameObject) AddChild(child *GameObject) {
	child.Parent = g
	g.Children = append(g.Children, child)
}

func (g *GameObject) RemoveChild(child *GameObject) {
	for i, c := range g.Children {
		if c == child {
			g.Children = append(g.Children[:i], g.Children[i+1:]...)
			child.Parent = nil
			return
		}
	}
}

// ActiveInHierarchy reports whether g and all of its ancestors are active.
func (g *GameObject) ActiveInHierarchy() bool {
	for cur := g; cur != nil; cur = cur.Parent {
		if !cur.Active || cur.destroyed {
			return false
		}
	}
	return true
}

// SetActive toggles the object. Components of g and of every active
// descendant receive OnEnable/OnDisable when the effective state changes.
func (g *GameObject) SetActive(active bool) {
	if g.Active == active || g.destroyed {
		return
	}
	parentActive := g.Parent == nil || g.Parent.ActiveInHierarchy()
	g.Active = active
	if parentActive {
		g.notifyEnabled(active)
	}
}

func (g *GameObject) notifyEnabled(enabled bool) {
	for _, c := range g.components {
		if enabled {
			if e, ok := c.(Enabler); ok {
				e.OnEnable()
			}
		} else if d, ok := c.(Disabler); ok {
			d.OnDisable()
		}
	}
	for _, child := range g.Children {
		if child.Active {
			child.notifyEnabled(enabled)
		}
	}
}

// Destroy disables every component in the subtree, detaches g from its
// parent and scene and marks it destroyed. Safe to call from inside a
// physics callback; calling it twice is a no-op.
func (g *GameObject) Destroy() {
	if g.destroyed {
		return
	}
	if g.ActiveInHierarchy() {
		g.notifyEnabled(false)
	}
	g.markDestroyed()
	if g.Parent != nil {
		g.Parent.RemoveChild(g)
	}
	if g.Scene != nil {
		g.Scene.RemoveGameObject(g)
	}
}

func (g *GameObject) markDestroyed() {
	g.destroyed = true
	for _, child := range g.Children {
		child.markDestroyed()
		if child.Scene != nil {
			child.Scene.RemoveGameObject(child)
		}
	}
}

// Destroyed reports whether Destroy has been called on g or an ancestor.
func (g *GameObject) Destroyed() bool {
	return g.destroyed
}

// SendTriggerEnter forwards to every TriggerHandler on g.
// Dispatch stops as soon as a handler destroys g.
func (g *GameObject) SendTriggerEnter(other Component) {
	for _, c := range g.components {
		if h, ok := c.(TriggerHandler); ok {
			h.OnTriggerEnter(other)
			if g.destroyed {
				return
			}
		}
	}
}

func (g *GameObject) SendTriggerStay(other Component) {
	for _, c := range g.components {
		if h, ok := c.(TriggerHandler); ok {
			h.OnTriggerStay(other)
			if g.destroyed {
				return
			}
		}
	}
}

func (g *GameObject) SendTriggerExit(other Component) {
	for _, c := range g.components {
		if h, ok := c.(TriggerHandler); ok {
			h.OnTriggerExit(other)
			if g.destroyed {
				return
			}
		}
	}
}

func (g *GameObject) SendCollisionEnter(col Collision) {
	for _, c := range g.components {
		if h, ok := c.(CollisionHandler); ok {
			h.OnCollisionEnter(col)
			if g.destroyed {
				return
			}
		}
	}
}

func (g *GameObject) SendCollisionStay(col Collision) {
	for _, c := range g.components {
		if h, ok := c.(CollisionHandler); ok {
			h.OnCollisionStay(col)
			if g.destroyed {
				return
			}
		}
	}
}

func (g *GameObject) SendCollisionExit(col Collision) {
	for _, c := range g.components {
		if h, ok := c.(CollisionHandler); ok {
			h.OnCollisionExit(col)
			if g.destroyed {
				return
			}
		}
	}
}

package main

import (
	"fmt"
	"io"

	"mirgo/internal/engine"
	"mirgo/internal/physics"
)

// eventLogger prints the physics callbacks its GameObject receives.
type eventLogger struct {
	engine.BaseComponent
	out  io.Writer
	step func() uint64
}

func (e *eventLogger) print(event string, other engine.Component) {
	name := "?"
	if other != nil && other.GetGameObject() != nil {
		name = other.GetGameObject().Name
	}
	fmt.Fprintf(e.out, "step %5d  %-16s %-20s %s\n", e.step(), event, e.GetGameObject().Name, name)
}

func (e *eventLogger) OnTriggerEnter(other engine.Component) { e.print("trigger-enter", other) }
func (e *eventLogger) OnTriggerStay(other engine.Component)  {}
func (e *eventLogger) OnTriggerExit(other engine.Component)  { e.print("trigger-exit", other) }

func (e *eventLogger) OnCollisionEnter(c engine.Collision) { e.print("collision-enter", c.Collider) }
func (e *eventLogger) OnCollisionStay(c engine.Collision)  {}
func (e *eventLogger) OnCollisionExit(c engine.Collision)  { e.print("collision-exit", c.Collider) }

// attachEventLoggers adds an eventLogger to every object with a collider.
// Stay events are not printed.
func attachEventLoggers(scene *engine.Scene, out io.Writer, w *physics.World) {
	step := func() uint64 { return w.Stats().Step }
	for _, g := range scene.GameObjects {
		if c := engine.GetComponent[physics.Collider](g); c != nil {
			g.AddComponent(&eventLogger{out: out, step: step})
		}
	}
}

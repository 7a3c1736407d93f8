package engine

// EventWithArg is a multi-cast event with one argument.
type EventWithArg[T any] struct {
	listeners []listener[T]
	nextID    uint64
}

type listener[T any] struct {
	id       uint64
	callback func(T)
}

// AddListener subscribes callback and returns a function that unsubscribes it.
func (e *EventWithArg[T]) AddListener(callback func(T)) (remove func()) {
	if callback == nil {
		return func() {}
	}
	e.nextID++
	id := e.nextID
	e.listeners = append(e.listeners, listener[T]{id: id, callback: callback})
	return func() {
		for i, l := range e.listeners {
			if l.id == id {
				e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
				return
			}
		}
	}
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls the listeners in subscription order. Listeners added or
// removed by a callback take effect on the next Invoke.
func (e *EventWithArg[T]) Invoke(arg T) {
	for _, l := range e.listeners {
		l.callback(arg)
	}
}

// GetListenerCount returns the number of registered listeners (for debugging)
func (e *EventWithArg[T]) GetListenerCount() int {
	return len(e.listeners)
}

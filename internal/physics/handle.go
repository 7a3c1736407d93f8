package physics

// Handle refers to a slot in one of the World's registries. A handle
// outlives the object it names: once the slot is released, its generation
// moves on and every old handle stops resolving. The zero Handle never
// resolves.
type Handle struct {
	index      int32
	generation uint32
}

// IsZero reports whether h was never assigned.
func (h Handle) IsZero() bool {
	return h.generation == 0
}

type poolSlot[T any] struct {
	value      *T
	generation uint32
	alive      bool
}

// pool is a slot table with tombstoning. Released slots keep their value
// until purge so iteration in progress never sees a slot disappear; insert
// prefers released slots over growing the table.
type pool[T any] struct {
	slots []poolSlot[T]
	free  []int32
}

func (p *pool[T]) insert(v *T) Handle {
	if n := len(p.free); n > 0 {
		i := p.free[n-1]
		p.free = p.free[:n-1]
		s := &p.slots[i]
		s.value = v
		s.alive = true
		return Handle{index: i, generation: s.generation}
	}
	p.slots = append(p.slots, poolSlot[T]{value: v, generation: 1, alive: true})
	return Handle{index: int32(len(p.slots) - 1), generation: 1}
}

// release tombstones the slot named by h. It reports false for stale handles.
func (p *pool[T]) release(h Handle) bool {
	if !p.valid(h) {
		return false
	}
	s := &p.slots[h.index]
	s.alive = false
	s.generation++
	p.free = append(p.free, h.index)
	return true
}

func (p *pool[T]) valid(h Handle) bool {
	if h.generation == 0 || h.index < 0 || int(h.index) >= len(p.slots) {
		return false
	}
	s := &p.slots[h.index]
	return s.alive && s.generation == h.generation
}

func (p *pool[T]) get(h Handle) *T {
	if !p.valid(h) {
		return nil
	}
	return p.slots[h.index].value
}

// at returns the live value stored at index i, or nil.
func (p *pool[T]) at(i int) *T {
	s := &p.slots[i]
	if !s.alive {
		return nil
	}
	return s.value
}

func (p *pool[T]) len() int {
	return len(p.slots)
}

// count returns the number of live slots.
func (p *pool[T]) count() int {
	return len(p.slots) - len(p.free)
}

// purge drops the values held by tombstoned slots. Returns how many were dropped.
func (p *pool[T]) purge() int {
	n := 0
	for i := range p.slots {
		s := &p.slots[i]
		if !s.alive && s.value != nil {
			s.value = nil
			n++
		}
	}
	return n
}

func (p *pool[T]) reset() {
	p.slots = nil
	p.free = nil
}

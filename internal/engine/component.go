package engine

type Component interface {
	Start()
	Update(deltaTime float32)
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// Enabler is implemented by components that react to becoming active.
// OnEnable runs when the component is added to an active GameObject and
// whenever its GameObject is re-activated.
type Enabler interface {
	OnEnable()
}

// Disabler is implemented by components that react to becoming inactive.
// OnDisable runs on SetActive(false) and on Destroy.
type Disabler interface {
	OnDisable()
}

// TriggerHandler is implemented by components that want trigger overlap callbacks.
// other is the collider component on the other side of the overlap.
type TriggerHandler interface {
	OnTriggerEnter(other Component)
	OnTriggerStay(other Component)
	OnTriggerExit(other Component)
}

// CollisionHandler is implemented by components that want to receive collision callbacks.
// Scripts can implement these methods to react to collisions.
type CollisionHandler interface {
	OnCollisionEnter(c Collision)
	OnCollisionStay(c Collision)
	OnCollisionExit(c Collision)
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update(deltaTime float32) {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}

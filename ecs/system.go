package ecs

// System is one step of simulation logic run by a Pipeline every tick.
// Systems can keep their own state in fields; it persists between ticks.
type System interface {
	Execute(frame *UpdateFrame)
}

// Named lets a system report its own name in pipeline stats instead of its type name.
type Named interface {
	Name() string
}

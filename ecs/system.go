package ecs

// System represents a behavior that runs once per frame against the World.
// Systems keep their own state between frames in struct fields.
type System interface {
	Execute(frame *UpdateFrame)
}

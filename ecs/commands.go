package ecs

// Commands provides a buffer for deferred World operations that are executed at the end of a frame.
// This prevents structural changes to the World while systems are iterating it.
type Commands struct {
	deletes []EntityId
	removes []removeComponentCommand
	defers  []deferCommand
}

func newCommands() *Commands {
	return &Commands{}
}

type deferCommand struct {
	fn func()
}

type removeComponentCommand struct {
	entity EntityId
	kind   ComponentKind
}

// Defer queues a function execution operation.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Delete queues an entity destruction.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity EntityId, kind ComponentKind) {
	c.removes = append(c.removes, removeComponentCommand{
		entity: entity,
		kind:   kind,
	})
}

// Flush applies all queued commands to the world, resetting the buffer state.
// Deletes run first, then component removals, then deferred functions in
// the order they were queued.
func (c *Commands) Flush(world *World) {
	for _, id := range c.deletes {
		world.DestroyEntity(id)
	}

	for _, cmd := range c.removes {
		world.RemoveComponent(cmd.entity, cmd.kind)
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.deletes = c.deletes[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}

package ecs

// Commands provides a buffer for deferred ECS operations that are executed at the end of a frame.
// This prevents structural changes to the ECS storage during system execution.
type Commands struct {
	spawns  []spawnCommand
	deletes []EntityId
	defers  []deferCommand

	queuedDeletes map[EntityId]struct{}
}

func newCommands() *Commands {
	return &Commands{
		queuedDeletes: make(map[EntityId]struct{}),
	}
}

type deferCommand struct {
	fn func()
}

type spawnCommand struct {
	components []any
}

// Defer queues a function to run after all spawns and deletes of the frame were applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, deferCommand{fn: fn})
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Delete queues an entity deletion operation. Queuing the same entity more than
// once per frame deletes it once.
func (c *Commands) Delete(entity EntityId) {
	if _, queued := c.queuedDeletes[entity]; queued {
		return
	}
	c.queuedDeletes[entity] = struct{}{}
	c.deletes = append(c.deletes, entity)
}

// Pending returns the number of queued spawns and deletes.
func (c *Commands) Pending() (spawns, deletes int) {
	return len(c.spawns), len(c.deletes)
}

// Flush applies all commands to the provided storage, deletes before spawns, and
// resets the buffer. Deleting first lets the frame's spawns reuse the freed slots.
func (c *Commands) Flush(storage *Storage) {
	for _, id := range c.deletes {
		storage.Delete(id)
	}

	for _, cmd := range c.spawns {
		storage.Spawn(cmd.components...)
	}

	for _, df := range c.defers {
		df.fn()
	}

	c.Reset()
}

// Reset drops every queued command without applying it.
func (c *Commands) Reset() {
	clear(c.spawns)
	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	clear(c.defers)
	c.defers = c.defers[:0]
	clear(c.queuedDeletes)
}

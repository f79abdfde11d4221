package ecs_test

import (
	"testing"

	"github.com/plus3/shmup/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spawnSystem struct {
	names []Name
}

func (s *spawnSystem) Execute(frame *ecs.UpdateFrame) {
	for _, name := range s.names {
		frame.Commands.Spawn(name, Position{})
	}
}

type deleteSystem struct {
	targets []ecs.EntityId
}

func (s *deleteSystem) Execute(frame *ecs.UpdateFrame) {
	for _, id := range s.targets {
		frame.Commands.Delete(id)
	}
}

// countSystem records how many positioned entities its snapshot saw.
type countSystem struct {
	Entities ecs.Query[struct{ *Position }]
	seen     []int
}

func (s *countSystem) Execute(frame *ecs.UpdateFrame) {
	s.seen = append(s.seen, s.Entities.Len())
}

func TestCommandsAppliedAfterAllSystems(t *testing.T) {
	storage := newTestStorage()
	scheduler := ecs.NewScheduler(storage)

	counter := &countSystem{}
	scheduler.Register(&spawnSystem{names: []Name{"a", "b"}})
	scheduler.Register(counter)

	require.NoError(t, scheduler.Once(1, 0))
	require.NoError(t, scheduler.Once(1, 0))

	assert.Equal(t, []int{0, 2}, counter.seen, "queued spawns are invisible within their frame")
	assert.Equal(t, 4, ecs.NewView[struct{ *Name }](storage).Count())
}

func TestCommandsDeleteBeforeSpawn(t *testing.T) {
	storage := newTestStorage()
	rec := &recorder{storage: storage}
	storage.Observe(rec)

	old := storage.Spawn(Name("old"), Position{})
	rec.events = nil

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&spawnSystem{names: []Name{"new"}})
	scheduler.Register(&deleteSystem{targets: []ecs.EntityId{old, old}})
	require.NoError(t, scheduler.Once(1, 0))

	assert.Equal(t, []string{"delete old", "spawn new"}, rec.events, "duplicate deletes collapse into one")

	view := ecs.NewView[struct {
		ecs.EntityId
		*Name
	}](storage)
	for item := range view.Values() {
		assert.Equal(t, old, item.EntityId, "the new entity reuses the freed slot")
		assert.Equal(t, Name("new"), *item.Name)
	}
}

func TestCommandsDeferRunsLast(t *testing.T) {
	storage := newTestStorage()
	scheduler := ecs.NewScheduler(storage)

	var seen int
	scheduler.Register(systemFunc(func(frame *ecs.UpdateFrame) {
		frame.Commands.Defer(func() {
			seen = ecs.NewView[struct{ *Name }](storage).Count()
		})
		frame.Commands.Spawn(Name("x"))
	}))

	require.NoError(t, scheduler.Once(1, 0))
	assert.Equal(t, 1, seen)
}

func TestCommandsPendingAndReset(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Name("keep"))

	var commands *ecs.Commands
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(systemFunc(func(frame *ecs.UpdateFrame) {
		commands = frame.Commands
		frame.Commands.Spawn(Name("a"))
		frame.Commands.Spawn(Name("b"))
		frame.Commands.Delete(id)
		frame.Commands.Delete(id)

		spawns, deletes := frame.Commands.Pending()
		assert.Equal(t, 2, spawns)
		assert.Equal(t, 1, deletes)

		frame.Commands.Reset()
	}))

	require.NoError(t, scheduler.Once(1, 0))

	spawns, deletes := commands.Pending()
	assert.Zero(t, spawns)
	assert.Zero(t, deletes)
	assert.True(t, storage.Exists(id))
	assert.Equal(t, 1, ecs.NewView[struct{ *Name }](storage).Count())
}

package ecs_test

import (
	"reflect"
	"runtime"
	"testing"

	"github.com/plus3/shmup/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityRef(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Position{X: 1}, Name("target"))

	ref := storage.CreateEntityRef(id)
	require.NotNil(t, ref)
	assert.Equal(t, id, ref.Id)
	assert.Same(t, ref, storage.CreateEntityRef(id), "refs to the same entity are shared")

	resolved, ok := storage.ResolveEntityRef(ref)
	assert.True(t, ok)
	assert.Equal(t, id, resolved)

	storage.Delete(id)
	assert.Equal(t, ecs.EntityId(0), ref.Id)
	assert.Nil(t, ref.Archetype)

	_, ok = storage.ResolveEntityRef(ref)
	assert.False(t, ok)
}

func TestEntityRefDoesNotFollowReusedSlot(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Position{X: 1})
	ref := storage.CreateEntityRef(id)

	storage.Delete(id)
	reused := storage.Spawn(Position{X: 2})
	require.Equal(t, id, reused)

	_, ok := storage.ResolveEntityRef(ref)
	assert.False(t, ok)

	fresh := storage.CreateEntityRef(reused)
	require.NotNil(t, fresh)
	assert.NotSame(t, ref, fresh)
}

func TestEntityRefMissingEntity(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Position{})
	storage.Delete(id)

	assert.Nil(t, storage.CreateEntityRef(id))
	assert.Nil(t, storage.CreateEntityRef(ecs.NewEntityId(7, 7)))

	_, ok := storage.ResolveEntityRef(nil)
	assert.False(t, ok)
}

func TestEntityRefIsWeak(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Position{})

	storage.CreateEntityRef(id)
	runtime.GC()

	// the storage does not keep refs alive; a fresh one is handed out
	ref := storage.CreateEntityRef(id)
	require.NotNil(t, ref)
	assert.Equal(t, id, ref.Id)
}

func TestEntityRefResolvesZeroId(t *testing.T) {
	archetype := ecs.NewArchetype(0, []reflect.Type{reflect.TypeFor[Position]()}, newTestRegistry())
	slot := archetype.Spawn([]any{Position{X: 3}})
	require.Equal(t, uint32(0), slot)

	ref := &ecs.EntityRef{Id: ecs.NewEntityId(0, slot), Archetype: archetype}
	id, ok := newTestStorage().ResolveEntityRef(ref)
	assert.True(t, ok, "slot 0 of archetype 0 is a live entity")
	assert.Equal(t, ecs.EntityId(0), id)

	archetype.Delete(slot)
	_, ok = newTestStorage().ResolveEntityRef(ref)
	assert.False(t, ok)
}

func TestSpawnNeverYieldsZeroArchetype(t *testing.T) {
	storage := newTestStorage()
	ids := []ecs.EntityId{
		storage.Spawn(Position{}),
		storage.Spawn(Velocity{}),
		storage.Spawn(Position{}, Velocity{}),
		storage.Spawn(Health{}, Name("x"), Pilot{}),
		storage.Spawn(Ammo(1)),
		storage.Spawn(Clock{}),
	}
	for _, id := range ids {
		if id.ArchetypeId() == 0 {
			t.Errorf("entity %d landed in archetype 0", id)
		}
		if id == 0 {
			t.Errorf("spawn returned the zero id")
		}
	}
}

package ecs_test

import (
	"testing"

	"github.com/plus3/shmup/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuerySnapshot(t *testing.T) {
	storage := newTestStorage()
	storage.Spawn(Position{X: 1})

	query := ecs.NewQuery[struct{ *Position }](storage)
	query.Execute()
	assert.Equal(t, 1, query.Len())

	// spawns after Execute are not visible until the next Execute
	storage.Spawn(Position{X: 2})
	storage.Spawn(Position{X: 3}, Pilot{})
	assert.Equal(t, 1, query.Len())

	query.Execute()
	assert.Equal(t, 3, query.Len())

	var xs []float64
	for _, item := range query.Iter() {
		xs = append(xs, item.Position.X)
	}
	assert.Equal(t, []float64{1, 2, 3}, xs)
}

func TestQueryPanicsBeforeExecute(t *testing.T) {
	storage := newTestStorage()
	query := ecs.NewQuery[struct{ *Position }](storage)

	assert.Panics(t, func() { query.Len() })
	assert.Panics(t, func() { query.Iter() })
	assert.Panics(t, func() { query.Values() })
	assert.Panics(t, func() { query.Single() })
}

func TestQuerySingle(t *testing.T) {
	storage := newTestStorage()
	query := ecs.NewQuery[struct {
		ecs.EntityId
		*Pilot
		*Position
	}](storage)

	query.Execute()
	_, _, err := query.Single()
	assert.ErrorIs(t, err, ecs.ErrNoMatch)

	id := storage.Spawn(Pilot{}, Position{X: 4})
	storage.Spawn(Position{X: 5})
	query.Execute()

	gotId, pilot, err := query.Single()
	require.NoError(t, err)
	assert.Equal(t, id, gotId)
	assert.Equal(t, id, pilot.EntityId)
	assert.Equal(t, 4.0, pilot.Position.X)

	storage.Spawn(Pilot{}, Position{X: 6}, Health{})
	query.Execute()
	_, _, err = query.Single()
	assert.ErrorIs(t, err, ecs.ErrMultipleMatches)
	assert.EqualError(t, err, "ecs: more than one matching entity: found 2")
}

func TestQueryRefreshesArchetypeCache(t *testing.T) {
	storage := newTestStorage()
	query := ecs.NewQuery[struct{ *Health }](storage)

	query.Execute()
	assert.Equal(t, 0, query.Len())

	storage.Spawn(Health{Current: 1})
	storage.Spawn(Health{Current: 2}, Name("b"))
	query.Execute()
	assert.Equal(t, 2, query.Len())

	var total int
	for item := range query.Values() {
		total += item.Health.Current
	}
	assert.Equal(t, 3, total)
}

func TestQuerySkipsDeletedEntities(t *testing.T) {
	storage := newTestStorage()
	a := storage.Spawn(Ammo(1))
	storage.Spawn(Ammo(2))

	query := ecs.NewQuery[struct{ *Ammo }](storage)
	storage.Delete(a)
	query.Execute()

	require.Equal(t, 1, query.Len())
	for item := range query.Values() {
		assert.Equal(t, Ammo(2), *item.Ammo)
	}
}

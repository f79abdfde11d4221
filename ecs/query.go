package ecs

import (
	"errors"
	"fmt"
	"iter"
)

var (
	// ErrNoMatch is returned by Query.Single when no entity matches.
	ErrNoMatch = errors.New("ecs: no matching entity")
	// ErrMultipleMatches is returned by Query.Single when more than one entity matches.
	ErrMultipleMatches = errors.New("ecs: more than one matching entity")
)

// Query wraps a View with caching for repeated iteration.
// Execute takes a snapshot of the matching entities; Iter, Values, Len and Single read
// that snapshot until the next Execute, so entities spawned or deleted through Commands
// during a tick are not observed until the following tick.
type Query[T any] struct {
	view               *View[T]
	storage            *Storage
	cachedArchetypes   []*Archetype
	lastArchetypeCount int

	cachedEntities   []EntityId
	cachedComponents []T
	cacheValid       bool
}

// NewQuery creates a new Query with archetype-level caching.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init initializes or re-initializes the Query with a storage.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.cachedArchetypes = nil
	q.lastArchetypeCount = -1
	q.cacheValid = false
}

// Execute builds the entity and component snapshot.
// The Scheduler calls it right before the owning system runs.
func (q *Query[T]) Execute() {
	q.ensureArchetypeCache()

	q.cachedEntities = q.cachedEntities[:0]
	clear(q.cachedComponents)
	q.cachedComponents = q.cachedComponents[:0]

	for _, archetype := range q.cachedArchetypes {
		for id, item := range q.view.iterArchetype(archetype) {
			q.cachedEntities = append(q.cachedEntities, id)
			q.cachedComponents = append(q.cachedComponents, item)
		}
	}

	q.cacheValid = true
}

func (q *Query[T]) ensureArchetypeCache() {
	if q.cachedArchetypes != nil && len(q.storage.order) == q.lastArchetypeCount {
		return
	}

	q.lastArchetypeCount = len(q.storage.order)
	q.cachedArchetypes = make([]*Archetype, 0)
	for _, archetype := range q.storage.order {
		if q.view.matchesArchetype(archetype) {
			q.cachedArchetypes = append(q.cachedArchetypes, archetype)
		}
	}
}

func (q *Query[T]) mustBeExecuted(method string) {
	if !q.cacheValid {
		panic("Query." + method + "() called before Query.Execute()")
	}
}

// Iter returns an iterator over entity IDs and component data.
// Panics if Execute() has not been called.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.mustBeExecuted("Iter")

	return func(yield func(EntityId, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over component data only.
// Panics if Execute() has not been called.
func (q *Query[T]) Values() iter.Seq[T] {
	q.mustBeExecuted("Values")

	return func(yield func(T) bool) {
		for i := range q.cachedComponents {
			if !yield(q.cachedComponents[i]) {
				return
			}
		}
	}
}

// Len returns the number of entities in the current snapshot.
func (q *Query[T]) Len() int {
	q.mustBeExecuted("Len")
	return len(q.cachedEntities)
}

// Single returns the only entity of the snapshot. It fails with ErrNoMatch or
// ErrMultipleMatches when the snapshot does not hold exactly one entity.
func (q *Query[T]) Single() (EntityId, T, error) {
	q.mustBeExecuted("Single")

	var zero T
	switch n := len(q.cachedEntities); n {
	case 1:
		return q.cachedEntities[0], q.cachedComponents[0], nil
	case 0:
		return 0, zero, ErrNoMatch
	default:
		return 0, zero, fmt.Errorf("%w: found %d", ErrMultipleMatches, n)
	}
}

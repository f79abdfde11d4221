package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent ECS systems to coexist without interference.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be used.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const (
	genericBlockSize = 64
)

type componentBlock[T any] struct {
	items  [genericBlockSize]T
	filled [genericBlockSize]bool
}

// genericComponentStorage stores components of type T in fixed-size blocks.
// Blocks are heap allocated individually, so a pointer returned by Get stays
// valid while the storage grows.
type genericComponentStorage[T any] struct {
	blocks    []*componentBlock[T]
	freeSlots []int
	nextIndex int
	count     int
}

func (cs *genericComponentStorage[T]) locate(index int) (*componentBlock[T], int) {
	if index < 0 || index >= cs.nextIndex {
		return nil, 0
	}
	return cs.blocks[index/genericBlockSize], index % genericBlockSize
}

// Append adds a component to storage and returns its index.
func (cs *genericComponentStorage[T]) Append(item any) int {
	var concreteItem T
	if ptr, ok := item.(*T); ok {
		concreteItem = *ptr
	} else if val, ok := item.(T); ok {
		concreteItem = val
	} else {
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/genericBlockSize >= len(cs.blocks) {
			cs.blocks = append(cs.blocks, &componentBlock[T]{})
		}
	}

	block, slot := cs.locate(index)
	block.items[slot] = concreteItem
	block.filled[slot] = true
	cs.count++
	return index
}

// Get returns a pointer to the component at the given index.
func (cs *genericComponentStorage[T]) Get(index int) any {
	block, slot := cs.locate(index)
	if block == nil || !block.filled[slot] {
		return nil
	}
	return &block.items[slot]
}

// Delete marks a component slot as empty.
func (cs *genericComponentStorage[T]) Delete(index int) {
	block, slot := cs.locate(index)
	if block == nil || !block.filled[slot] {
		return
	}

	var zero T
	block.filled[slot] = false
	block.items[slot] = zero
	cs.freeSlots = append(cs.freeSlots, index)
	cs.count--
}

// Has checks if a component exists at the given index.
func (cs *genericComponentStorage[T]) Has(index int) bool {
	block, slot := cs.locate(index)
	return block != nil && block.filled[slot]
}

// Len returns the number of occupied slots.
func (cs *genericComponentStorage[T]) Len() int {
	return cs.count
}

func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < cs.nextIndex; i++ {
			block := cs.blocks[i/genericBlockSize]
			if block.filled[i%genericBlockSize] {
				if !yield(i) {
					return
				}
			}
		}
	}
}

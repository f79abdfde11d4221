package ecs

import (
	"encoding/binary"
	"reflect"
	"sort"
	"unsafe"
	"weak"

	"github.com/cespare/xxhash/v2"
)

// Observer is notified about structural changes of a Storage.
// EntityDeleted is called before the entity's components are cleared, so the
// observer can still read them.
type Observer interface {
	EntitySpawned(id EntityId)
	EntityDeleted(id EntityId)
}

// Storage is the main ECS storage interface
type Storage struct {
	archetypes map[uint32]*Archetype
	order      []*Archetype
	registry   *ComponentRegistry
	singletons map[reflect.Type]*singletonEntry
	observers  []Observer
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Observe registers an observer for spawn and delete notifications.
func (s *Storage) Observe(o Observer) {
	s.observers = append(s.observers, o)
}

// Archetypes returns every archetype in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return s.order
}

func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil || !archetype.Alive(id.Index()) {
		return nil
	}

	if weakPtr, ok := archetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{
		Id:        id,
		Archetype: archetype,
	}
	archetype.refs.Put(id, weak.Make(ref))

	return ref
}

// ResolveEntityRef returns the current id of ref, or false if the entity was deleted.
// A deleted ref has no archetype; a zero Id alone is a valid slot.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if ref == nil || ref.Archetype == nil || !ref.Archetype.Alive(ref.Id.Index()) {
		return 0, false
	}
	return ref.Id, true
}

// GetArchetype returns an archetype storage (if one exists)
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	return s.archetypes[hashTypesToUint32(types)]
}

// GetArchetypeByTypes returns an archetype storage (if one exists) based on reflect.Type
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := append([]reflect.Type(nil), types...)
	sort.Sort(byTypeName(sorted))
	return s.archetypes[hashTypesToUint32(sorted)]
}

func (s *Storage) archetypeFor(archetypeId uint32, types []reflect.Type) *Archetype {
	archetype, exists := s.archetypes[archetypeId]
	if !exists {
		archetype = NewArchetype(archetypeId, types, s.registry)
		s.archetypes[archetypeId] = archetype
		s.order = append(s.order, archetype)
	}
	return archetype
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetypeId := hashTypesToUint32(types)
	archetype := s.archetypeFor(archetypeId, types)

	id := NewEntityId(archetypeId, archetype.Spawn(components))
	for _, o := range s.observers {
		o.EntitySpawned(id)
	}
	return id
}

// Delete removes all data related to the entity ID.
// It reports false when the entity does not exist (for example when it was already deleted).
func (s *Storage) Delete(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.Alive(id.Index()) {
		return false
	}

	for _, o := range s.observers {
		o.EntityDeleted(id)
	}
	archetype.Delete(id.Index())
	return true
}

// Exists reports whether id currently names a live entity.
func (s *Storage) Exists(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.Alive(id.Index())
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return archetype.HasComponent(compType)
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := reflect.TypeOf(comp)
		if compType.Kind() == reflect.Ptr {
			compType = compType.Elem()
		}

		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic("components cannot be pointers, maps, channels, or functions")
		}

		types = append(types, compType)
	}
	sort.Sort(byTypeName(types))
	return types
}

// hashTypesToUint32 folds the identities of a sorted slice of types into an archetype ID
func hashTypesToUint32(types []reflect.Type) uint32 {
	var (
		d   xxhash.Digest
		buf [8]byte
	)
	d.Reset()
	for _, t := range types {
		ptr := (*iface)(unsafe.Pointer(&t)).data
		binary.LittleEndian.PutUint64(buf[:], uint64(uintptr(ptr)))
		d.Write(buf[:])
	}
	sum := d.Sum64()
	// 0 is reserved so that EntityId(0) never names a live entity
	if id := uint32(sum) ^ uint32(sum>>32); id != 0 {
		return id
	}
	return 1
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns a typed pointer to the component of entityId, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}

package ecs

// EntityId encodes both the archetype ID (upper 32 bits) and the slot index (lower 32 bits).
// Slots are reused after a delete, so an EntityId only identifies an entity until the end of
// the tick in which it is deleted. Hold an EntityRef to detect deletion across ticks.
type EntityId uint64

// NewEntityId creates an EntityId from an archetype ID and slot index
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId extracts the archetype ID from the entity ID
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// EntityRef is a stable reference to an entity. On delete its Id is zeroed and its
// Archetype cleared. Archetype id 0 is never assigned, so EntityId(0) is never live.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}

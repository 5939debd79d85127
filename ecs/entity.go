package ecs

// MaxEntities is the fixed number of entity slots in a World.
const MaxEntities = 256

// EntityId encodes the slot generation (upper 32 bits) and the slot index (lower 32 bits).
// Generations start at 1, so the zero EntityId never refers to a live entity.
type EntityId uint64

// InvalidEntity is returned when no entity could be created.
const InvalidEntity EntityId = 0

// NewEntityId creates an EntityId from a slot index and generation
func NewEntityId(index uint32, generation uint32) EntityId {
	return EntityId(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index from the entity ID
func (e EntityId) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the slot generation from the entity ID
func (e EntityId) Generation() uint32 {
	return uint32(e >> 32)
}

// EntityRef is a stable reference to an entity. Its Id is reset to zero once the
// entity is destroyed, so holders can tell a dead entity from a recycled slot.
type EntityRef struct {
	Id EntityId
}

package ecs

import (
	"errors"
	"iter"
	"weak"

	"github.com/kamstrup/intmap"
)

var (
	// ErrCapacityExceeded is returned when all MaxEntities slots are in use.
	ErrCapacityExceeded = errors.New("ecs: entity capacity exceeded")
	// ErrInvalidEntity is returned for ids that are out of range, inactive or stale.
	ErrInvalidEntity = errors.New("ecs: invalid entity")
)

type entitySlot struct {
	active     bool
	mask       Mask
	generation uint32
}

// World owns a fixed array of entity slots and one component store per kind.
// Destroyed slots are reused lowest index first; each reuse bumps the slot
// generation so ids captured before the destroy stop resolving.
type World struct {
	slots [MaxEntities]entitySlot
	count int

	transforms  componentStore[Transform]
	renderables componentStore[Renderable]
	cameras     componentStore[Camera]
	inputs      componentStore[Input]

	refs *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

// NewWorld creates an empty world
func NewWorld() *World {
	w := &World{
		refs: intmap.New[EntityId, weak.Pointer[EntityRef]](MaxEntities),
	}
	for i := range w.slots {
		w.slots[i].generation = 1
	}
	return w
}

// Count returns the number of active entities
func (w *World) Count() int {
	return w.count
}

// slot returns the slot addressed by id if it is live.
func (w *World) slot(id EntityId) (*entitySlot, bool) {
	index := id.Index()
	if index >= MaxEntities {
		return nil, false
	}
	s := &w.slots[index]
	if !s.active || s.generation != id.Generation() {
		return nil, false
	}
	return s, true
}

// IsAlive reports whether id refers to an active entity of the current slot generation.
func (w *World) IsAlive(id EntityId) bool {
	_, ok := w.slot(id)
	return ok
}

// CreateEntity activates the lowest free slot. When every slot is taken it
// returns InvalidEntity and ErrCapacityExceeded and leaves the world unchanged.
func (w *World) CreateEntity() (EntityId, error) {
	if w.count >= MaxEntities {
		return InvalidEntity, ErrCapacityExceeded
	}

	for i := range w.slots {
		s := &w.slots[i]
		if s.active {
			continue
		}
		s.active = true
		s.mask = 0
		w.count++
		return NewEntityId(uint32(i), s.generation), nil
	}

	return InvalidEntity, ErrCapacityExceeded
}

// DestroyEntity releases every component the entity owns and frees its slot.
// Invalid or already destroyed ids are ignored.
func (w *World) DestroyEntity(id EntityId) {
	s, ok := w.slot(id)
	if !ok {
		return
	}

	index := id.Index()
	for kind := range KindCount {
		if s.mask.Has(kind) {
			w.release(index, kind)
		}
	}

	if weakPtr, ok := w.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
		}
		w.refs.Del(id)
	}

	s.active = false
	s.mask = 0
	s.generation++
	if s.generation == 0 {
		s.generation = 1
	}
	w.count--
}

// AddComponent gives the entity a component of the given kind initialised to
// the kind defaults and returns a pointer to it. If the entity already owns one
// the existing instance is returned unchanged. Returns nil for invalid entities
// or unknown kinds.
func (w *World) AddComponent(id EntityId, kind ComponentKind) any {
	s, ok := w.slot(id)
	if !ok {
		return nil
	}

	index := id.Index()
	var comp any
	switch kind {
	case KindTransform:
		comp = w.transforms.add(index, DefaultTransform())
	case KindRenderable:
		comp = w.renderables.add(index, DefaultRenderable())
	case KindCamera:
		comp = w.cameras.add(index, DefaultCamera())
	case KindInput:
		comp = w.inputs.add(index, DefaultInput())
	default:
		return nil
	}

	s.mask |= 1 << kind
	return comp
}

// GetComponent returns a pointer to the entity's component of the given kind,
// or nil when the entity is invalid or does not own one.
func (w *World) GetComponent(id EntityId, kind ComponentKind) any {
	if _, ok := w.slot(id); !ok {
		return nil
	}

	index := id.Index()
	switch kind {
	case KindTransform:
		if c := w.transforms.get(index); c != nil {
			return c
		}
	case KindRenderable:
		if c := w.renderables.get(index); c != nil {
			return c
		}
	case KindCamera:
		if c := w.cameras.get(index); c != nil {
			return c
		}
	case KindInput:
		if c := w.inputs.get(index); c != nil {
			return c
		}
	}
	return nil
}

// HasComponent checks the entity mask for kind
func (w *World) HasComponent(id EntityId, kind ComponentKind) bool {
	s, ok := w.slot(id)
	if !ok || kind >= KindCount {
		return false
	}
	return s.mask.Has(kind)
}

// RemoveComponent releases the entity's component of the given kind if it has one.
func (w *World) RemoveComponent(id EntityId, kind ComponentKind) {
	s, ok := w.slot(id)
	if !ok || kind >= KindCount || !s.mask.Has(kind) {
		return
	}

	w.release(id.Index(), kind)
	s.mask &^= 1 << kind
}

func (w *World) release(index uint32, kind ComponentKind) {
	switch kind {
	case KindTransform:
		w.transforms.remove(index)
	case KindRenderable:
		w.renderables.remove(index)
	case KindCamera:
		w.cameras.remove(index)
	case KindInput:
		w.inputs.remove(index)
	}
}

// Mask returns the component mask of a live entity, zero otherwise.
func (w *World) Mask(id EntityId) Mask {
	s, ok := w.slot(id)
	if !ok {
		return 0
	}
	return s.mask
}

// ComponentCount returns how many entities own a component of the given kind.
func (w *World) ComponentCount(kind ComponentKind) int {
	switch kind {
	case KindTransform:
		return w.transforms.len()
	case KindRenderable:
		return w.renderables.len()
	case KindCamera:
		return w.cameras.len()
	case KindInput:
		return w.inputs.len()
	}
	return 0
}

// Cleanup destroys every active entity.
func (w *World) Cleanup() {
	for i := range w.slots {
		s := &w.slots[i]
		if s.active {
			w.DestroyEntity(NewEntityId(uint32(i), s.generation))
		}
	}
}

// Reset destroys every entity and drops all cached entity refs. Slot
// generations survive so ids from before the reset stay invalid.
func (w *World) Reset() {
	w.Cleanup()
	w.refs.Clear()
}

// Entities yields the id of every active entity whose mask contains required,
// in ascending slot order. A zero mask matches every active entity.
func (w *World) Entities(required Mask) iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for i := range w.slots {
			s := &w.slots[i]
			if !s.active || !s.mask.Contains(required) {
				continue
			}
			if !yield(NewEntityId(uint32(i), s.generation)) {
				return
			}
		}
	}
}

// First returns the lowest-slot entity whose mask contains required.
func (w *World) First(required Mask) (EntityId, bool) {
	for id := range w.Entities(required) {
		return id, true
	}
	return InvalidEntity, false
}

// CreateEntityRef returns the shared EntityRef for a live entity, or nil.
func (w *World) CreateEntityRef(id EntityId) *EntityRef {
	if !w.IsAlive(id) {
		return nil
	}

	if weakPtr, ok := w.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		// Weak pointer is dead, remove it
		w.refs.Del(id)
	}

	ref := &EntityRef{Id: id}
	w.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the id behind ref if the entity is still alive.
func (w *World) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if ref == nil || ref.Id == 0 {
		return 0, false
	}
	if !w.IsAlive(ref.Id) {
		ref.Id = 0
		return 0, false
	}
	return ref.Id, true
}

// Component is the set of component types a World stores.
type Component interface {
	Transform | Renderable | Camera | Input
}

// KindOf returns the ComponentKind for the component type T.
func KindOf[T Component]() ComponentKind {
	var zero T
	switch any(zero).(type) {
	case Transform:
		return KindTransform
	case Renderable:
		return KindRenderable
	case Camera:
		return KindCamera
	default:
		return KindInput
	}
}

// AddComponentOf is the typed form of World.AddComponent.
func AddComponentOf[T Component](w *World, id EntityId) *T {
	c, _ := w.AddComponent(id, KindOf[T]()).(*T)
	return c
}

// ReadComponent is the typed form of World.GetComponent.
func ReadComponent[T Component](w *World, id EntityId) *T {
	c, _ := w.GetComponent(id, KindOf[T]()).(*T)
	return c
}

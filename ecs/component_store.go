package ecs

import "iter"

// componentStore holds the components of one kind in a fixed-capacity slot array.
// Slot i belongs to the entity at index i, so an entity owns at most one
// component of each kind and no two entities ever share an instance.
type componentStore[T any] struct {
	items  [MaxEntities]T
	filled [MaxEntities]bool
	count  int
}

// add fills the slot with init and returns a pointer to it. If the slot is
// already filled the existing instance is returned untouched.
func (cs *componentStore[T]) add(index uint32, init T) *T {
	if index >= MaxEntities {
		return nil
	}

	if !cs.filled[index] {
		cs.items[index] = init
		cs.filled[index] = true
		cs.count++
	}
	return &cs.items[index]
}

// get returns a pointer to the component at the given index, or nil when the slot is empty.
func (cs *componentStore[T]) get(index uint32) *T {
	if index >= MaxEntities || !cs.filled[index] {
		return nil
	}
	return &cs.items[index]
}

// has checks if a component exists at the given index.
func (cs *componentStore[T]) has(index uint32) bool {
	return index < MaxEntities && cs.filled[index]
}

// remove marks a component slot as empty and zeroes it.
func (cs *componentStore[T]) remove(index uint32) bool {
	if index >= MaxEntities || !cs.filled[index] {
		return false
	}

	var zero T
	cs.items[index] = zero
	cs.filled[index] = false
	cs.count--
	return true
}

func (cs *componentStore[T]) len() int {
	return cs.count
}

// iter yields filled slot indices in ascending order.
func (cs *componentStore[T]) iter() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		for i := range uint32(MaxEntities) {
			if cs.filled[i] {
				if !yield(i) {
					return
				}
			}
		}
	}
}

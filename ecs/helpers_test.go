package ecs_test

import (
	"testing"

	"github.com/plus3/pspecs/ecs"
	"github.com/stretchr/testify/require"
)

// spawn creates an entity and adds the given kinds to it.
func spawn(t testing.TB, w *ecs.World, kinds ...ecs.ComponentKind) ecs.EntityId {
	t.Helper()
	id, err := w.CreateEntity()
	require.NoError(t, err)
	for _, k := range kinds {
		require.NotNil(t, w.AddComponent(id, k))
	}
	return id
}

// activeSlots counts entities the slow way, through the iterator.
func activeSlots(w *ecs.World) int {
	n := 0
	for range w.Entities(0) {
		n++
	}
	return n
}

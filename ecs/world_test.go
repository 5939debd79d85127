package ecs_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/plus3/pspecs/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		index      uint32
		generation uint32
	}{
		{0, 1},
		{255, 1},
		{7, 42},
		{0xFFFFFFFF, 0xFFFFFFFF},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("index=%d,generation=%d", tt.index, tt.generation), func(t *testing.T) {
			id := ecs.NewEntityId(tt.index, tt.generation)
			assert.Equal(t, tt.index, id.Index())
			assert.Equal(t, tt.generation, id.Generation())
		})
	}
}

func TestCreateEntity(t *testing.T) {
	w := ecs.NewWorld()

	id, err := w.CreateEntity()
	require.NoError(t, err)
	assert.NotEqual(t, ecs.InvalidEntity, id)
	assert.Equal(t, uint32(0), id.Index())
	assert.Equal(t, 1, w.Count())
	assert.True(t, w.IsAlive(id))
	assert.Equal(t, ecs.Mask(0), w.Mask(id))

	id2, err := w.CreateEntity()
	require.NoError(t, err)
	assert.Equal(t, uint32(1), id2.Index())
	assert.Equal(t, 2, w.Count())
}

func TestCreateEntityCapacity(t *testing.T) {
	w := ecs.NewWorld()

	ids := make([]ecs.EntityId, 0, ecs.MaxEntities)
	for range ecs.MaxEntities {
		id, err := w.CreateEntity()
		require.NoError(t, err)
		ids = append(ids, id)
	}
	require.Equal(t, ecs.MaxEntities, w.Count())

	id, err := w.CreateEntity()
	assert.ErrorIs(t, err, ecs.ErrCapacityExceeded)
	assert.Equal(t, ecs.InvalidEntity, id)
	assert.Equal(t, ecs.MaxEntities, w.Count())
	assert.Equal(t, ecs.MaxEntities, activeSlots(w))

	for _, id := range ids {
		assert.True(t, w.IsAlive(id))
	}
}

func TestDestroyEntityFirstFitReuse(t *testing.T) {
	w := ecs.NewWorld()

	a := spawn(t, w, ecs.KindTransform)
	b := spawn(t, w, ecs.KindTransform)
	c := spawn(t, w, ecs.KindTransform)

	w.DestroyEntity(c)
	w.DestroyEntity(a)
	assert.Equal(t, 1, w.Count())

	for kind := range ecs.KindCount {
		assert.Nil(t, w.GetComponent(a, kind))
		assert.False(t, w.HasComponent(a, kind))
	}

	reused, err := w.CreateEntity()
	require.NoError(t, err)
	assert.Equal(t, a.Index(), reused.Index(), "lowest free slot is reused first")
	assert.NotEqual(t, a, reused)
	assert.Equal(t, ecs.Mask(0), w.Mask(reused))
	assert.Nil(t, w.GetComponent(reused, ecs.KindTransform))

	next, err := w.CreateEntity()
	require.NoError(t, err)
	assert.Equal(t, c.Index(), next.Index())
	assert.True(t, w.IsAlive(b))
}

func TestDestroyEntityInvalid(t *testing.T) {
	w := ecs.NewWorld()
	id := spawn(t, w, ecs.KindInput)

	w.DestroyEntity(ecs.NewEntityId(ecs.MaxEntities+3, 1))
	w.DestroyEntity(ecs.NewEntityId(9, 1))
	w.DestroyEntity(ecs.InvalidEntity)
	assert.Equal(t, 1, w.Count())

	w.DestroyEntity(id)
	w.DestroyEntity(id)
	assert.Equal(t, 0, w.Count())
}

func TestStaleIdDoesNotAlias(t *testing.T) {
	w := ecs.NewWorld()

	stale := spawn(t, w, ecs.KindTransform)
	w.DestroyEntity(stale)

	fresh := spawn(t, w, ecs.KindTransform)
	require.Equal(t, stale.Index(), fresh.Index())

	assert.False(t, w.IsAlive(stale))
	assert.Nil(t, w.GetComponent(stale, ecs.KindTransform))
	assert.Nil(t, w.AddComponent(stale, ecs.KindCamera))
	assert.False(t, w.HasComponent(stale, ecs.KindTransform))

	w.RemoveComponent(stale, ecs.KindTransform)
	w.DestroyEntity(stale)
	assert.True(t, w.HasComponent(fresh, ecs.KindTransform))
	assert.Equal(t, 1, w.Count())
}

func TestAddComponentDefaults(t *testing.T) {
	w := ecs.NewWorld()
	id := spawn(t, w)

	transform := ecs.AddComponentOf[ecs.Transform](w, id)
	require.NotNil(t, transform)
	assert.Equal(t, ecs.DefaultTransform(), *transform)
	assert.Equal(t, ecs.Vector3{1, 1, 1}, transform.Scale)

	renderable := ecs.AddComponentOf[ecs.Renderable](w, id)
	require.NotNil(t, renderable)
	assert.Equal(t, ecs.ShapeCube, renderable.Shape)
	assert.Equal(t, ecs.White, renderable.Color)

	camera := ecs.AddComponentOf[ecs.Camera](w, id)
	require.NotNil(t, camera)
	assert.Equal(t, ecs.Vector3{10, 10, 10}, camera.View.Position)
	assert.Equal(t, float32(45), camera.View.Fovy)
	assert.Equal(t, float32(5), camera.MoveSpeed)
	assert.Equal(t, float32(2), camera.LookSpeed)

	input := ecs.AddComponentOf[ecs.Input](w, id)
	require.NotNil(t, input)
	assert.True(t, input.Active)

	assert.Equal(t, ecs.MaskOf(ecs.KindTransform, ecs.KindRenderable, ecs.KindCamera, ecs.KindInput), w.Mask(id))
}

func TestAddComponentIdempotent(t *testing.T) {
	w := ecs.NewWorld()
	id := spawn(t, w)

	first := ecs.AddComponentOf[ecs.Transform](w, id)
	first.Position = ecs.Vector3{4, 5, 6}

	second := ecs.AddComponentOf[ecs.Transform](w, id)
	assert.Same(t, first, second)
	assert.Equal(t, ecs.Vector3{4, 5, 6}, second.Position, "existing instance is not overwritten")
	assert.Equal(t, 1, w.ComponentCount(ecs.KindTransform))
}

func TestAddComponentInvalid(t *testing.T) {
	w := ecs.NewWorld()

	assert.Nil(t, w.AddComponent(ecs.NewEntityId(0, 1), ecs.KindTransform))
	assert.Nil(t, w.AddComponent(ecs.NewEntityId(ecs.MaxEntities, 1), ecs.KindTransform))

	id := spawn(t, w)
	assert.Nil(t, w.AddComponent(id, ecs.KindCount))
	assert.Nil(t, ecs.AddComponentOf[ecs.Camera](w, ecs.InvalidEntity))
	assert.Equal(t, ecs.Mask(0), w.Mask(id))
}

func TestGetComponent(t *testing.T) {
	w := ecs.NewWorld()
	id := spawn(t, w, ecs.KindCamera)

	camera, ok := w.GetComponent(id, ecs.KindCamera).(*ecs.Camera)
	require.True(t, ok)
	camera.MoveSpeed = 12

	assert.Equal(t, float32(12), ecs.ReadComponent[ecs.Camera](w, id).MoveSpeed)
	assert.Nil(t, w.GetComponent(id, ecs.KindTransform))
	assert.Nil(t, ecs.ReadComponent[ecs.Transform](w, id))
	assert.Nil(t, w.GetComponent(id, ecs.KindCount))
	assert.Equal(t, 0, w.ComponentCount(ecs.KindTransform))
}

func TestRemoveComponent(t *testing.T) {
	w := ecs.NewWorld()
	id := spawn(t, w, ecs.KindTransform, ecs.KindRenderable)

	w.RemoveComponent(id, ecs.KindTransform)
	assert.False(t, w.HasComponent(id, ecs.KindTransform))
	assert.Nil(t, w.GetComponent(id, ecs.KindTransform))
	assert.True(t, w.HasComponent(id, ecs.KindRenderable))
	assert.Equal(t, ecs.MaskOf(ecs.KindRenderable), w.Mask(id))

	// no-op when absent
	w.RemoveComponent(id, ecs.KindTransform)
	w.RemoveComponent(id, ecs.KindCamera)
	assert.Equal(t, ecs.MaskOf(ecs.KindRenderable), w.Mask(id))

	readded := ecs.AddComponentOf[ecs.Transform](w, id)
	require.NotNil(t, readded)
	assert.Equal(t, ecs.DefaultTransform(), *readded, "re-added component starts from defaults")
}

func TestMaskMatchesComponents(t *testing.T) {
	w := ecs.NewWorld()
	rng := rand.New(rand.NewPCG(1, 2))

	var live []ecs.EntityId
	for range 2000 {
		switch rng.IntN(4) {
		case 0:
			if id, err := w.CreateEntity(); err == nil {
				live = append(live, id)
			}
		case 1:
			if len(live) > 0 {
				i := rng.IntN(len(live))
				w.DestroyEntity(live[i])
				live = append(live[:i], live[i+1:]...)
			}
		case 2:
			if len(live) > 0 {
				w.AddComponent(live[rng.IntN(len(live))], ecs.ComponentKind(rng.IntN(int(ecs.KindCount))))
			}
		case 3:
			if len(live) > 0 {
				w.RemoveComponent(live[rng.IntN(len(live))], ecs.ComponentKind(rng.IntN(int(ecs.KindCount))))
			}
		}

		require.Equal(t, activeSlots(w), w.Count())
		require.Equal(t, len(live), w.Count())
	}

	for _, id := range live {
		mask := w.Mask(id)
		for kind := range ecs.KindCount {
			assert.Equal(t, mask.Has(kind), w.GetComponent(id, kind) != nil, "kind %s", kind)
		}
	}
}

func TestEntitiesIteration(t *testing.T) {
	w := ecs.NewWorld()

	camera := spawn(t, w, ecs.KindCamera, ecs.KindInput)
	cube := spawn(t, w, ecs.KindTransform, ecs.KindRenderable)
	bare := spawn(t, w, ecs.KindTransform)
	grid := spawn(t, w, ecs.KindTransform, ecs.KindRenderable)

	var drawable []ecs.EntityId
	for id := range w.Entities(ecs.MaskOf(ecs.KindTransform, ecs.KindRenderable)) {
		drawable = append(drawable, id)
	}
	assert.Equal(t, []ecs.EntityId{cube, grid}, drawable)

	var all []ecs.EntityId
	for id := range w.Entities(0) {
		all = append(all, id)
	}
	assert.Equal(t, []ecs.EntityId{camera, cube, bare, grid}, all)

	first, ok := w.First(ecs.MaskOf(ecs.KindCamera))
	assert.True(t, ok)
	assert.Equal(t, camera, first)

	w.DestroyEntity(camera)
	_, ok = w.First(ecs.MaskOf(ecs.KindCamera))
	assert.False(t, ok)
}

func TestCleanup(t *testing.T) {
	w := ecs.NewWorld()
	ids := []ecs.EntityId{
		spawn(t, w, ecs.KindCamera, ecs.KindInput),
		spawn(t, w, ecs.KindTransform, ecs.KindRenderable),
	}

	w.Cleanup()
	assert.Equal(t, 0, w.Count())
	for kind := range ecs.KindCount {
		assert.Equal(t, 0, w.ComponentCount(kind))
	}
	for _, id := range ids {
		assert.False(t, w.IsAlive(id))
	}

	id := spawn(t, w)
	assert.Equal(t, uint32(0), id.Index())
}

func TestMaskHelpers(t *testing.T) {
	m := ecs.MaskOf(ecs.KindTransform, ecs.KindInput)

	assert.True(t, m.Has(ecs.KindTransform))
	assert.False(t, m.Has(ecs.KindCamera))
	assert.True(t, m.Contains(ecs.MaskOf(ecs.KindInput)))
	assert.False(t, m.Contains(ecs.MaskOf(ecs.KindInput, ecs.KindCamera)))
	assert.Equal(t, []ecs.ComponentKind{ecs.KindTransform, ecs.KindInput}, m.Kinds())
	assert.Equal(t, ecs.Mask(0b1001), m)
	assert.Equal(t, "Renderable", ecs.KindRenderable.String())
	assert.Equal(t, "Unknown", ecs.KindCount.String())
}

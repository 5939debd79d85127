package main

import (
	"bytes"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/pspecs/ecs"
)

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3 * time.Millisecond, time.Millisecond, 2 * time.Millisecond}}
	s.Finalize()
	assert.Equal(t, time.Millisecond, s.Min)
	assert.Equal(t, 3*time.Millisecond, s.Max)
	assert.Equal(t, 2*time.Millisecond, s.Avg)
	assert.Equal(t, 3*time.Millisecond, s.P95)

	var empty Stats
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}

func TestChurnKeepsPopulation(t *testing.T) {
	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(7))
	for range 100 {
		_, err := SpawnRandomEntity(world, rng)
		require.NoError(t, err)
	}

	scheduler := ecs.NewScheduler(world)
	churner := &ChurnSystem{Rate: 0.2, Rand: rng}
	scheduler.Register(&DriftSystem{})
	scheduler.Register(&SpinCameraSystem{})
	scheduler.Register(churner)

	for range 50 {
		scheduler.Once(1.0 / 60)
	}
	assert.Equal(t, 100, world.Count())
	assert.Positive(t, churner.Respawned)
	assert.Zero(t, churner.Rejected)
	assert.Positive(t, churner.Hidden)
}

func TestChurnStripsRenderables(t *testing.T) {
	world := ecs.NewWorld()
	var ids []ecs.EntityId
	for range 20 {
		id, err := world.CreateEntity()
		require.NoError(t, err)
		ecs.AddComponentOf[ecs.Transform](world, id)
		ecs.AddComponentOf[ecs.Renderable](world, id)
		ids = append(ids, id)
	}

	// Rate 0.5 puts every roll in either the delete or the strip band.
	scheduler := ecs.NewScheduler(world)
	churner := &ChurnSystem{Rate: 0.5, Rand: rand.New(rand.NewSource(11))}
	scheduler.Register(churner)
	scheduler.Once(1.0 / 60)

	var survivors int64
	for _, id := range ids {
		if world.IsAlive(id) {
			survivors++
			assert.False(t, world.HasComponent(id, ecs.KindRenderable))
			assert.True(t, world.HasComponent(id, ecs.KindTransform))
		}
	}
	assert.Equal(t, churner.Hidden, survivors)
	assert.Equal(t, 20, world.Count())
}

func TestRoundTripAndReport(t *testing.T) {
	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(3))
	for range ecs.MaxEntities {
		_, err := SpawnRandomEntity(world, rng)
		require.NoError(t, err)
	}

	report := &Report{Entities: ecs.MaxEntities, RecordSize: 29700}
	require.NoError(t, roundTrip(world, ecs.NewWorld(), report))
	report.EncodeTime.Finalize()
	report.DecodeTime.Finalize()

	var out bytes.Buffer
	require.NoError(t, report.Generate(&out))
	assert.Contains(t, out.String(), "Save Record Size:** 29700 bytes")
	assert.Contains(t, out.String(), "Snapshot Round Trips (1)")
	assert.Contains(t, out.String(), "Decode + Restore:")
	assert.NotContains(t, out.String(), "GC Pauses")
}

package main

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/plus3/pspecs/ecs"
)

var (
	shapes  = []ecs.Shape{ecs.ShapeCube, ecs.ShapeSphere, ecs.ShapePlane, ecs.ShapeGrid}
	movable = ecs.MaskOf(ecs.KindTransform, ecs.KindRenderable)
	viewers = ecs.MaskOf(ecs.KindCamera)
)

// SpawnRandomEntity creates an entity with a random subset of the component
// kinds. A Transform is always present.
func SpawnRandomEntity(world *ecs.World, rng *rand.Rand) (ecs.EntityId, error) {
	id, err := world.CreateEntity()
	if err != nil {
		return ecs.InvalidEntity, err
	}

	t := ecs.AddComponentOf[ecs.Transform](world, id)
	t.Position = ecs.Vector3{rng.Float32()*20 - 10, rng.Float32() * 5, rng.Float32()*20 - 10}

	if rng.Intn(4) != 0 {
		r := ecs.AddComponentOf[ecs.Renderable](world, id)
		r.Shape = shapes[rng.Intn(len(shapes))]
		r.Color = ecs.Color{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256)), A: 255}
	}
	if rng.Intn(16) == 0 {
		ecs.AddComponentOf[ecs.Camera](world, id)
		if rng.Intn(2) == 0 {
			ecs.AddComponentOf[ecs.Input](world, id)
		}
	}
	return id, nil
}

// DriftSystem moves every visible entity along a fixed diagonal.
type DriftSystem struct{}

func (s *DriftSystem) Execute(frame *ecs.UpdateFrame) {
	step := float32(frame.DeltaTime)
	for id := range frame.World.Entities(movable) {
		t := ecs.ReadComponent[ecs.Transform](frame.World, id)
		t.Position = t.Position.Add(ecs.Vector3{step, 0, step})
		t.Rotation[1] += step
	}
}

// SpinCameraSystem orbits every camera target around its position.
type SpinCameraSystem struct{}

func (s *SpinCameraSystem) Execute(frame *ecs.UpdateFrame) {
	spin := mgl32.QuatRotate(float32(frame.DeltaTime), ecs.Vector3{0, 1, 0})
	for id := range frame.World.Entities(viewers) {
		cam := ecs.ReadComponent[ecs.Camera](frame.World, id)
		dir := cam.View.Target.Sub(cam.View.Position)
		cam.View.Target = cam.View.Position.Add(spin.Rotate(dir))
	}
}

// ChurnSystem queues the destruction of a random share of entities and
// respawns as many once the commands are flushed. About as many survivors
// lose their Renderable.
type ChurnSystem struct {
	Rate float64
	Rand *rand.Rand

	Respawned int64
	Rejected  int64
	Hidden    int64
}

func (s *ChurnSystem) Execute(frame *ecs.UpdateFrame) {
	var doomed int
	for id := range frame.World.Entities(0) {
		switch roll := s.Rand.Float64(); {
		case roll < s.Rate:
			frame.Commands.Delete(id)
			doomed++
		case roll < 2*s.Rate && frame.World.HasComponent(id, ecs.KindRenderable):
			frame.Commands.RemoveComponent(id, ecs.KindRenderable)
			s.Hidden++
		}
	}
	if doomed == 0 {
		return
	}

	frame.Commands.Defer(func() {
		for range doomed {
			if _, err := SpawnRandomEntity(frame.World, s.Rand); err != nil {
				s.Rejected++
				continue
			}
			s.Respawned++
		}
	})
}

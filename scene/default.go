package scene

import "github.com/plus3/pspecs/ecs"

// CreateTestScene adds the demo layout to w: a controllable camera, a 2x2x2
// white cube resting on the ground and the ground grid.
func CreateTestScene(w *ecs.World) error {
	cam, err := w.CreateEntity()
	if err != nil {
		return err
	}
	*ecs.AddComponentOf[ecs.Camera](w, cam) = ecs.DefaultCamera()
	ecs.AddComponentOf[ecs.Input](w, cam)

	cube, err := w.CreateEntity()
	if err != nil {
		return err
	}
	ecs.AddComponentOf[ecs.Transform](w, cube).Position = ecs.Vector3{0, 1, 0}
	r := ecs.AddComponentOf[ecs.Renderable](w, cube)
	r.Shape = ecs.ShapeCube
	r.Color = ecs.White
	r.Size = ecs.Vector3{2, 2, 2}

	ground, err := w.CreateEntity()
	if err != nil {
		return err
	}
	ecs.AddComponentOf[ecs.Transform](w, ground)
	ecs.AddComponentOf[ecs.Renderable](w, ground).Shape = ecs.ShapeGrid
	return nil
}

// ResetToDefault destroys every entity in w and recreates the demo layout.
func ResetToDefault(w *ecs.World) error {
	w.Reset()
	return CreateTestScene(w)
}

package render

import "github.com/plus3/pspecs/ecs"

const (
	// GridSlices and GridSpacing size the reference grid. Grid entities
	// ignore their own transform and size.
	GridSlices  = 10
	GridSpacing = 5.0
)

// PlaneOutline is the color of the wireframe drawn around planes.
var PlaneOutline = ecs.Color{R: 80, G: 80, B: 80, A: 255}

var drawable = ecs.MaskOf(ecs.KindTransform, ecs.KindRenderable)

// System draws every entity that has both a Transform and a Renderable, in
// slot order. There is no sorting or culling.
type System struct{}

// Render issues the draw calls for all drawable entities in w.
func (System) Render(w *ecs.World, d Drawer) {
	for id := range w.Entities(drawable) {
		transform := ecs.ReadComponent[ecs.Transform](w, id)
		renderable := ecs.ReadComponent[ecs.Renderable](w, id)
		if transform == nil || renderable == nil {
			continue
		}
		drawEntity(d, transform, renderable)
	}
}

func drawEntity(d Drawer, t *ecs.Transform, r *ecs.Renderable) {
	switch r.Shape {
	case ecs.ShapeCube:
		d.DrawCube(t.Position, r.Size.X(), r.Size.Y(), r.Size.Z(), r.Color)
		d.DrawCubeWires(t.Position, r.Size.X(), r.Size.Y(), r.Size.Z(), ecs.Black)
	case ecs.ShapeSphere:
		d.DrawSphere(t.Position, r.Size.X()*0.5, r.Color)
	case ecs.ShapeGrid:
		d.DrawGrid(GridSlices, GridSpacing)
	case ecs.ShapePlane:
		d.DrawPlane(t.Position, r.Size.X(), r.Size.Z(), r.Color)
		drawPlaneWireframe(d, t.Position, r.Size.X(), r.Size.Z(), PlaneOutline)
	}
}

func drawPlaneWireframe(d Drawer, center ecs.Vector3, width, length float32, color ecs.Color) {
	hw, hl := width*0.5, length*0.5
	x, y, z := center.X(), center.Y(), center.Z()

	corners := [4]ecs.Vector3{
		{x - hw, y, z - hl},
		{x + hw, y, z - hl},
		{x + hw, y, z + hl},
		{x - hw, y, z + hl},
	}
	for i := range corners {
		d.DrawLine3D(corners[i], corners[(i+1)%len(corners)], color)
	}
}

// Scene renders the world through cam. Nothing is drawn without a camera.
func (s System) Scene(w *ecs.World, d Drawer, cam *ecs.Camera) {
	if cam == nil {
		return
	}
	d.BeginMode3D(cam.View)
	s.Render(w, d)
	d.EndMode3D()
}

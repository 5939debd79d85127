// Package render turns World entities into draw calls on a backend.
package render

import "github.com/plus3/pspecs/ecs"

// Drawer is the 3D half of a drawing backend. Implementations issue the
// actual draw calls; nothing is returned to the caller.
type Drawer interface {
	BeginMode3D(view ecs.View)
	EndMode3D()
	DrawCube(position ecs.Vector3, width, height, length float32, color ecs.Color)
	DrawCubeWires(position ecs.Vector3, width, height, length float32, color ecs.Color)
	DrawSphere(center ecs.Vector3, radius float32, color ecs.Color)
	DrawPlane(center ecs.Vector3, width, length float32, color ecs.Color)
	DrawLine3D(start, end ecs.Vector3, color ecs.Color)
	DrawGrid(slices int, spacing float32)
}

// Overlay is the 2D half of a drawing backend, used for the HUD and menus.
type Overlay interface {
	ScreenWidth() int
	ScreenHeight() int
	DrawText(text string, x, y, size int, color ecs.Color)
	DrawRectangle(x, y, width, height int, color ecs.Color)
	MeasureText(text string, size int) int
}

// Backend is a complete drawing backend.
type Backend interface {
	Drawer
	Overlay
	BeginFrame(clear ecs.Color)
	EndFrame()
}

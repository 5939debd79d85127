// Package raylib is the raylib window, drawing and controller backend.
package raylib

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/plus3/pspecs/app"
	"github.com/plus3/pspecs/ecs"
	"github.com/plus3/pspecs/input"
)

var _ app.Platform = (*Platform)(nil)

// Platform implements app.Platform on a raylib window.
type Platform struct {
	gamepad int32
}

// Open creates the window. Close must be called when done.
func Open(width, height int, title string, fps int) *Platform {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(width), int32(height), title)
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
	return &Platform{}
}

func (p *Platform) Close() {
	rl.CloseWindow()
}

func (p *Platform) ShouldClose() bool  { return rl.WindowShouldClose() }
func (p *Platform) FrameTime() float32 { return rl.GetFrameTime() }
func (p *Platform) FPS() int           { return int(rl.GetFPS()) }

func rgba(c ecs.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func vec3(v ecs.Vector3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

func (p *Platform) BeginFrame(clear ecs.Color) {
	rl.BeginDrawing()
	rl.ClearBackground(rgba(clear))
}

func (p *Platform) EndFrame() {
	rl.EndDrawing()
}

func (p *Platform) BeginMode3D(view ecs.View) {
	projection := rl.CameraPerspective
	if view.Projection == ecs.ProjectionOrthographic {
		projection = rl.CameraOrthographic
	}
	rl.BeginMode3D(rl.Camera3D{
		Position:   vec3(view.Position),
		Target:     vec3(view.Target),
		Up:         vec3(view.Up),
		Fovy:       view.Fovy,
		Projection: projection,
	})
}

func (p *Platform) EndMode3D() {
	rl.EndMode3D()
}

func (p *Platform) DrawCube(pos ecs.Vector3, w, h, l float32, c ecs.Color) {
	rl.DrawCube(vec3(pos), w, h, l, rgba(c))
}

func (p *Platform) DrawCubeWires(pos ecs.Vector3, w, h, l float32, c ecs.Color) {
	rl.DrawCubeWires(vec3(pos), w, h, l, rgba(c))
}

func (p *Platform) DrawSphere(center ecs.Vector3, radius float32, c ecs.Color) {
	rl.DrawSphere(vec3(center), radius, rgba(c))
}

func (p *Platform) DrawPlane(center ecs.Vector3, w, l float32, c ecs.Color) {
	rl.DrawPlane(vec3(center), rl.NewVector2(w, l), rgba(c))
}

func (p *Platform) DrawLine3D(start, end ecs.Vector3, c ecs.Color) {
	rl.DrawLine3D(vec3(start), vec3(end), rgba(c))
}

func (p *Platform) DrawGrid(slices int, spacing float32) {
	rl.DrawGrid(int32(slices), spacing)
}

func (p *Platform) ScreenWidth() int  { return rl.GetScreenWidth() }
func (p *Platform) ScreenHeight() int { return rl.GetScreenHeight() }

func (p *Platform) DrawText(text string, x, y, size int, c ecs.Color) {
	rl.DrawText(text, int32(x), int32(y), int32(size), rgba(c))
}

func (p *Platform) DrawRectangle(x, y, w, h int, c ecs.Color) {
	rl.DrawRectangle(int32(x), int32(y), int32(w), int32(h), rgba(c))
}

func (p *Platform) MeasureText(text string, size int) int {
	return int(rl.MeasureText(text, int32(size)))
}

var padButtons = []struct {
	button  input.Button
	gamepad int32
	keys    []int32
}{
	{input.ButtonUp, rl.GamepadButtonLeftFaceUp, []int32{rl.KeyUp}},
	{input.ButtonDown, rl.GamepadButtonLeftFaceDown, []int32{rl.KeyDown}},
	{input.ButtonLeft, rl.GamepadButtonLeftFaceLeft, []int32{rl.KeyLeft}},
	{input.ButtonRight, rl.GamepadButtonLeftFaceRight, []int32{rl.KeyRight}},
	{input.ButtonLTrigger, rl.GamepadButtonLeftTrigger1, []int32{rl.KeyQ}},
	{input.ButtonRTrigger, rl.GamepadButtonRightTrigger1, []int32{rl.KeyE}},
	{input.ButtonCross, rl.GamepadButtonRightFaceDown, []int32{rl.KeyZ, rl.KeySpace}},
	{input.ButtonCircle, rl.GamepadButtonRightFaceRight, []int32{rl.KeyX, rl.KeyBackspace}},
	{input.ButtonSquare, rl.GamepadButtonRightFaceLeft, []int32{rl.KeyA}},
	{input.ButtonTriangle, rl.GamepadButtonRightFaceUp, []int32{rl.KeyS}},
	{input.ButtonStart, rl.GamepadButtonMiddleRight, []int32{rl.KeyEnter, rl.KeyEscape}},
	{input.ButtonSelect, rl.GamepadButtonMiddleLeft, []int32{rl.KeyTab}},
}

// ReadSample samples the first gamepad if one is connected, merged with the
// keyboard. IJKL stand in for the analog stick.
func (p *Platform) ReadSample() input.Sample {
	pad := rl.IsGamepadAvailable(p.gamepad)

	s := input.NeutralSample
	for _, b := range padButtons {
		down := pad && rl.IsGamepadButtonDown(p.gamepad, b.gamepad)
		for _, k := range b.keys {
			down = down || rl.IsKeyDown(k)
		}
		if down {
			s.Buttons |= b.button
		}
	}

	if pad {
		s.Lx = input.AxisByte(rl.GetGamepadAxisMovement(p.gamepad, rl.GamepadAxisLeftX))
		s.Ly = input.AxisByte(rl.GetGamepadAxisMovement(p.gamepad, rl.GamepadAxisLeftY))
	}
	switch {
	case rl.IsKeyDown(rl.KeyJ):
		s.Lx = 255
	case rl.IsKeyDown(rl.KeyL):
		s.Lx = 0
	}
	switch {
	case rl.IsKeyDown(rl.KeyI):
		s.Ly = 255
	case rl.IsKeyDown(rl.KeyK):
		s.Ly = 0
	}
	return s
}

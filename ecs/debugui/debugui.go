// Package debugui draws Dear ImGui windows that inspect and edit a World
// while the game runs.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pspecs/ecs"
)

// Window is a debug window redrawn every frame.
type Window interface {
	Render(world *ecs.World)
}

// WindowFunc adapts a plain function to a Window.
type WindowFunc func(world *ecs.World)

func (f WindowFunc) Render(world *ecs.World) { f(world) }

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers the render of each window to the end of the frame and
// refreshes InputState. It must run between the ImGui backend's BeginFrame
// and EndFrame.
type ImguiSystem struct {
	Windows    []Window
	InputState InputState
}

// Execute updates input state and queues all window renders.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	i.InputState.WantCaptureMouse = io.WantCaptureMouse()
	i.InputState.WantCaptureKeyboard = io.WantCaptureKeyboard()

	world := frame.World
	for _, w := range i.Windows {
		frame.Commands.Defer(func() { w.Render(world) })
	}
}

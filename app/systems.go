package app

import (
	"github.com/plus3/pspecs/ecs"
)

var driven = ecs.MaskOf(ecs.KindCamera, ecs.KindInput)

// MenuSystem runs the menu on frames that started with the menu open.
type MenuSystem struct {
	app *App
}

func (s *MenuSystem) Enabled() bool { return s.app.menuMode }

func (s *MenuSystem) Execute(frame *ecs.UpdateFrame) {
	s.app.Menu.Update(s.app.Bindings, s.app.frame)
}

// CameraSystem flies every active controllable camera on frames that
// started with the menu closed.
type CameraSystem struct {
	app *App
}

func (s *CameraSystem) Enabled() bool { return !s.app.menuMode }

func (s *CameraSystem) Execute(frame *ecs.UpdateFrame) {
	w := frame.World
	dt := float32(frame.DeltaTime)
	for id := range w.Entities(driven) {
		if in := ecs.ReadComponent[ecs.Input](w, id); in == nil || !in.Active {
			continue
		}
		s.app.Camera.Update(ecs.ReadComponent[ecs.Camera](w, id), s.app.Bindings, s.app.frame, dt)
	}
}

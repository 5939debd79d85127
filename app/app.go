// Package app holds the application state and runs the frame loop: poll
// input, update either the menu or the camera, then draw.
package app

import (
	"go.uber.org/zap"

	"github.com/plus3/pspecs/camera"
	"github.com/plus3/pspecs/ecs"
	"github.com/plus3/pspecs/input"
	"github.com/plus3/pspecs/menu"
	"github.com/plus3/pspecs/render"
	"github.com/plus3/pspecs/savedata"
	"github.com/plus3/pspecs/scene"
)

type Options struct {
	Title    string
	DeadZone float32
	Save     scene.Options
	// SaveService defaults to a savedata.DirService rooted at Save.Dir.
	SaveService savedata.Service
	// Bindings defaults to input.DefaultBindings.
	Bindings *input.Bindings
	Feedback menu.Feedback
	Log      *zap.Logger
	// PersistLog receives save and load milestones.
	PersistLog *zap.Logger
}

type App struct {
	World       *ecs.World
	Bindings    *input.Bindings
	Menu        *menu.Menu
	Persistence *scene.Persistence
	Camera      *camera.Controller
	Renderer    render.System
	Title       string
	Log         *zap.Logger

	scheduler *ecs.Scheduler
	frame     input.Frame
	menuMode  bool
	cameraRef *ecs.EntityRef
}

// New builds the application around a world holding the demo scene.
func New(opts Options) (*App, error) {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	binds := opts.Bindings
	if binds == nil {
		binds = input.DefaultBindings()
	}
	svc := opts.SaveService
	if svc == nil {
		svc = savedata.NewDirService(opts.Save.Dir)
	}

	a := &App{
		World:       ecs.NewWorld(),
		Bindings:    binds,
		Persistence: scene.NewPersistence(opts.Save, svc, opts.PersistLog),
		Camera:      camera.NewController(),
		Title:       opts.Title,
		Log:         log,
		frame:       input.Frame{Prev: input.NeutralSample, Cur: input.NeutralSample},
	}
	if opts.DeadZone > 0 {
		a.Camera.DeadZone = opts.DeadZone
	}

	a.Menu = menu.New(sceneActions{a}, log.Named("menu"))
	a.Menu.SetFeedback(opts.Feedback)

	a.scheduler = ecs.NewScheduler(a.World)
	a.scheduler.Register(&MenuSystem{app: a})
	a.scheduler.Register(&CameraSystem{app: a})

	if err := scene.CreateTestScene(a.World); err != nil {
		return nil, err
	}
	log.Info("scene ready", zap.Int("entities", a.World.Count()))
	return a, nil
}

// Scheduler exposes the per-system timings.
func (a *App) Scheduler() *ecs.Scheduler { return a.scheduler }

// AddSystem registers an extra system. It runs every tick, after the menu
// and camera systems.
func (a *App) AddSystem(s ecs.System) {
	a.scheduler.Register(s)
}

// Frame is the input pair of the last tick.
func (a *App) Frame() input.Frame { return a.frame }

// Tick advances the game by one frame of dt seconds using sample as the
// current controller state.
func (a *App) Tick(sample input.Sample, dt float32) {
	a.frame = a.frame.Next(sample)

	if a.Bindings.Pressed(input.ActionToggleMenu, a.frame) {
		a.Menu.Toggle()
	}
	a.menuMode = a.Menu.IsActive()

	a.scheduler.Once(float64(dt))
}

// ActiveCamera returns the entity whose camera views the scene: the first
// entity owning a Camera. The choice is cached until that entity goes away.
func (a *App) ActiveCamera() (ecs.EntityId, *ecs.Camera, bool) {
	if id, ok := a.World.ResolveEntityRef(a.cameraRef); ok {
		if cam := ecs.ReadComponent[ecs.Camera](a.World, id); cam != nil {
			return id, cam, true
		}
	}

	id, ok := a.World.First(ecs.MaskOf(ecs.KindCamera))
	if !ok {
		a.cameraRef = nil
		return ecs.InvalidEntity, nil, false
	}
	a.cameraRef = a.World.CreateEntityRef(id)
	return id, ecs.ReadComponent[ecs.Camera](a.World, id), true
}

// Draw renders one frame: the scene, then either the HUD or the menu.
func (a *App) Draw(b render.Backend, fps int) {
	b.BeginFrame(render.Background)

	_, cam, _ := a.ActiveCamera()
	a.Renderer.Scene(a.World, b, cam)

	if !a.Menu.IsActive() {
		render.HUD(b, a.Title, fps)
	}
	a.Menu.Draw(b, a.Bindings)

	b.EndFrame()
}

// sceneActions carries out menu actions on the app's world.
type sceneActions struct {
	a *App
}

func (s sceneActions) ResetToDefault() error {
	return s.a.Persistence.ResetToDefault(s.a.World)
}

func (s sceneActions) Save() error {
	return s.a.Persistence.Save(s.a.World)
}

func (s sceneActions) Load() error {
	return s.a.Persistence.Load(s.a.World)
}

func (s sceneActions) PopulatedSaveCount() int {
	return s.a.Persistence.PopulatedSaveCount()
}

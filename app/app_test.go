package app_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/plus3/pspecs/app"
	"github.com/plus3/pspecs/ecs"
	"github.com/plus3/pspecs/input"
	"github.com/plus3/pspecs/menu"
	"github.com/plus3/pspecs/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dt = float32(1.0 / 60.0)

// fakePlatform replays scripted samples and records what gets drawn.
type fakePlatform struct {
	samples []input.Sample
	frames  int
	calls   []string
	texts   []string
}

func (p *fakePlatform) record(format string, args ...any) {
	p.calls = append(p.calls, fmt.Sprintf(format, args...))
}

func (p *fakePlatform) BeginFrame(c ecs.Color)             { p.record("frame %v", c) }
func (p *fakePlatform) EndFrame()                          { p.frames++; p.record("end") }
func (p *fakePlatform) BeginMode3D(v ecs.View)             { p.record("3d %v", v.Position) }
func (p *fakePlatform) EndMode3D()                         { p.record("end3d") }
func (p *fakePlatform) DrawGrid(int, float32)              { p.record("grid") }
func (p *fakePlatform) ScreenWidth() int                   { return 480 }
func (p *fakePlatform) ScreenHeight() int                  { return 272 }
func (p *fakePlatform) MeasureText(s string, size int) int { return len(s) * size / 2 }
func (p *fakePlatform) DrawRectangle(x, y, w, h int, c ecs.Color) {
	p.record("rect")
}
func (p *fakePlatform) DrawText(text string, x, y, size int, c ecs.Color) {
	p.texts = append(p.texts, text)
}
func (p *fakePlatform) DrawCube(ecs.Vector3, float32, float32, float32, ecs.Color) {
	p.record("cube")
}
func (p *fakePlatform) DrawCubeWires(ecs.Vector3, float32, float32, float32, ecs.Color) {
	p.record("wires")
}
func (p *fakePlatform) DrawSphere(ecs.Vector3, float32, ecs.Color)         { p.record("sphere") }
func (p *fakePlatform) DrawPlane(ecs.Vector3, float32, float32, ecs.Color) { p.record("plane") }
func (p *fakePlatform) DrawLine3D(ecs.Vector3, ecs.Vector3, ecs.Color)     { p.record("line") }

func (p *fakePlatform) ReadSample() input.Sample {
	if len(p.samples) == 0 {
		return input.NeutralSample
	}
	s := p.samples[0]
	p.samples = p.samples[1:]
	return s
}
func (p *fakePlatform) ShouldClose() bool  { return len(p.samples) == 0 }
func (p *fakePlatform) FrameTime() float32 { return dt }
func (p *fakePlatform) FPS() int           { return 60 }

func press(b input.Button) input.Sample {
	return input.Sample{Buttons: b, Lx: input.AxisCenter, Ly: input.AxisCenter}
}

func newApp(t *testing.T) *app.App {
	t.Helper()
	opts := app.Options{Title: "PSP-ECS Demo", Save: scene.DefaultOptions()}
	opts.Save.Dir = t.TempDir()
	opts.Save.PollInterval = 0

	a, err := app.New(opts)
	require.NoError(t, err)
	return a
}

func cameraPosition(t *testing.T, a *app.App) ecs.Vector3 {
	t.Helper()
	_, cam, ok := a.ActiveCamera()
	require.True(t, ok)
	return cam.View.Position
}

func TestNewBuildsDemoScene(t *testing.T) {
	a := newApp(t)
	assert.Equal(t, 3, a.World.Count())
	assert.False(t, a.Menu.IsActive())
	assert.Equal(t, ecs.Vector3{10, 10, 10}, cameraPosition(t, a))
}

func TestToggleIsEdgeTriggered(t *testing.T) {
	a := newApp(t)

	for range 10 {
		a.Tick(press(input.ButtonStart), dt)
	}
	assert.True(t, a.Menu.IsActive(), "holding start opens the menu once")

	a.Tick(input.NeutralSample, dt)
	a.Tick(press(input.ButtonStart), dt)
	assert.False(t, a.Menu.IsActive())
}

func TestCameraFrozenWhileMenuOpen(t *testing.T) {
	a := newApp(t)
	start := cameraPosition(t, a)

	a.Tick(press(input.ButtonStart), dt)
	require.True(t, a.Menu.IsActive())
	for range 5 {
		a.Tick(press(input.ButtonUp), dt)
	}
	assert.Equal(t, start, cameraPosition(t, a))
	assert.Equal(t, 3, a.Menu.Selected(), "menu consumed the up press")

	a.Tick(press(input.ButtonStart), dt)
	require.False(t, a.Menu.IsActive())
	a.Tick(press(input.ButtonUp), dt)
	assert.NotEqual(t, start, cameraPosition(t, a))
}

func TestMenuDoesNotRunWhileClosed(t *testing.T) {
	a := newApp(t)
	a.Tick(press(input.ButtonDown), dt)
	a.Tick(input.NeutralSample, dt)
	assert.Equal(t, 0, a.Menu.Selected())
}

func TestInactiveInputIsNotDriven(t *testing.T) {
	a := newApp(t)
	id, _, ok := a.ActiveCamera()
	require.True(t, ok)
	ecs.ReadComponent[ecs.Input](a.World, id).Active = false

	start := cameraPosition(t, a)
	a.Tick(press(input.ButtonUp), dt)
	assert.Equal(t, start, cameraPosition(t, a))
}

func TestStartGameResetsScene(t *testing.T) {
	a := newApp(t)
	extra, err := a.World.CreateEntity()
	require.NoError(t, err)
	a.World.AddComponent(extra, ecs.KindTransform)

	a.Tick(press(input.ButtonUp), dt) // moves the camera
	a.Tick(press(input.ButtonStart), dt)
	a.Tick(press(input.ButtonCross), dt)

	assert.False(t, a.Menu.IsActive())
	assert.Equal(t, 3, a.World.Count())
	assert.Equal(t, ecs.Vector3{10, 10, 10}, cameraPosition(t, a))
}

func TestSaveThenLoadThroughMenu(t *testing.T) {
	a := newApp(t)
	a.Tick(press(input.ButtonStart), dt)

	// Save Game
	a.Tick(press(input.ButtonDown), dt)
	a.Tick(press(input.ButtonCross), dt)
	msg, _ := a.Menu.Status()
	require.Equal(t, menu.MsgSaved, msg)
	assert.Equal(t, 1, a.Persistence.PopulatedSaveCount())

	id, err := a.World.CreateEntity()
	require.NoError(t, err)
	a.World.AddComponent(id, ecs.KindRenderable)
	require.Equal(t, 4, a.World.Count())

	// Load Game
	a.Tick(press(input.ButtonDown), dt)
	a.Tick(press(input.ButtonCross), dt)
	msg, _ = a.Menu.Status()
	assert.Equal(t, menu.MsgLoaded, msg)
	assert.Equal(t, 3, a.World.Count())
}

func TestLoadWithoutSavesKeepsWorld(t *testing.T) {
	a := newApp(t)
	before := scene.Capture(a.World)

	a.Tick(press(input.ButtonStart), dt)
	a.Tick(press(input.ButtonUp), dt)
	a.Tick(input.NeutralSample, dt)
	a.Tick(press(input.ButtonUp), dt)
	require.Equal(t, 2, a.Menu.Selected())
	a.Tick(press(input.ButtonCross), dt)

	msg, _ := a.Menu.Status()
	assert.Equal(t, menu.MsgNoSaves, msg)
	assert.Equal(t, before.Entries, scene.Capture(a.World).Entries)
}

func TestActiveCameraFollowsReset(t *testing.T) {
	a := newApp(t)
	first, _, ok := a.ActiveCamera()
	require.True(t, ok)

	again, _, _ := a.ActiveCamera()
	assert.Equal(t, first, again)

	require.NoError(t, scene.ResetToDefault(a.World))
	after, _, ok := a.ActiveCamera()
	require.True(t, ok)
	assert.NotEqual(t, first, after)
	assert.True(t, a.World.IsAlive(after))

	a.World.Cleanup()
	_, _, ok = a.ActiveCamera()
	assert.False(t, ok)
}

func TestDrawHUDAndMenu(t *testing.T) {
	a := newApp(t)

	p := &fakePlatform{}
	a.Draw(p, 60)
	assert.Equal(t, []string{
		fmt.Sprintf("frame %v", ecs.Color{100, 100, 100, 255}),
		fmt.Sprintf("3d %v", ecs.Vector3{10, 10, 10}),
		"cube", "wires", "grid",
		"end3d",
		"end",
	}, p.calls)
	assert.Contains(t, p.texts, "PSP-ECS Demo")
	assert.Contains(t, p.texts, "Press START for menu")

	a.Menu.Show(menu.StateMain)
	p = &fakePlatform{}
	a.Draw(p, 60)
	assert.Contains(t, p.calls, "rect")
	assert.Contains(t, p.texts, "MAIN MENU")
	assert.NotContains(t, p.texts, "Press START for menu")
}

func TestDrawWithoutCamera(t *testing.T) {
	a := newApp(t)
	a.World.Cleanup()

	p := &fakePlatform{}
	a.Draw(p, 60)
	assert.NotContains(t, p.calls, "end3d")
	assert.Equal(t, 1, p.frames)
}

func TestRunStopsWhenPlatformCloses(t *testing.T) {
	a := newApp(t)
	p := &fakePlatform{samples: []input.Sample{
		press(input.ButtonStart),
		input.NeutralSample,
		input.NeutralSample,
	}}

	require.NoError(t, a.Run(context.Background(), p))
	assert.Equal(t, 3, p.frames)
	assert.True(t, a.Menu.IsActive())

	stats := a.Scheduler().GetStats()
	require.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, "MenuSystem", stats.Systems[0].Name)
	assert.Equal(t, "CameraSystem", stats.Systems[1].Name)
	assert.Equal(t, int64(3), stats.Systems[0].ExecutionCount)
	assert.Zero(t, stats.Systems[1].ExecutionCount)
	assert.Equal(t, int64(3), stats.Systems[1].SkipCount)
}

func TestRunHonorsContext(t *testing.T) {
	a := newApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &fakePlatform{samples: []input.Sample{input.NeutralSample}}
	assert.ErrorIs(t, a.Run(ctx, p), context.Canceled)
	assert.Zero(t, p.frames)
}

type countingSystem struct {
	runs     int
	entities int
}

func (s *countingSystem) Execute(frame *ecs.UpdateFrame) {
	s.runs++
	s.entities = frame.World.Count()
}

func TestAddSystemRunsEveryTick(t *testing.T) {
	a := newApp(t)
	extra := &countingSystem{}
	a.AddSystem(extra)

	a.Tick(input.NeutralSample, dt)
	a.Tick(press(input.ButtonStart), dt)
	a.Tick(input.NeutralSample, dt)

	assert.Equal(t, 3, extra.runs)
	assert.Equal(t, 3, extra.entities)
	assert.True(t, a.Menu.IsActive())

	stats := a.Scheduler().GetStats()
	require.Len(t, stats.Systems, 3)
	assert.Equal(t, "countingSystem", stats.Systems[2].Name)
}

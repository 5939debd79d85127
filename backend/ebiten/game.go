package ebiten

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/pspecs/app"
	"github.com/plus3/pspecs/ecs/debugui"
	debugui_ebiten "github.com/plus3/pspecs/ecs/debugui/ebiten"
)

// Game runs an App under ebiten.RunGame. Ebitengine owns the loop, so each
// Update is one App tick at the fixed TPS.
type Game struct {
	ctx        context.Context
	app        *app.App
	canvas     Canvas
	controller Controller

	width, height int

	imgui *debugui_ebiten.ImguiBackend
	debug *debugui.ImguiSystem
}

// NewGame wraps a. The game ends with ebiten.Termination once ctx is done.
func NewGame(ctx context.Context, a *app.App, width, height int) *Game {
	return &Game{ctx: ctx, app: a, width: width, height: height}
}

// EnableDebugUI hosts the standard debug windows in b. The windows are
// drawn by a system added to the app, so they see the world as it is at
// the end of each tick.
func (g *Game) EnableDebugUI(b *debugui_ebiten.ImguiBackend) {
	g.imgui = b
	g.debug = debugui.NewSystem(g.app.Scheduler())
	g.app.AddSystem(g.debug)
}

func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}

	if g.imgui != nil {
		g.imgui.BeginFrame()
		g.controller.IgnoreKeyboard = g.debug.InputState.WantCaptureKeyboard
	}

	g.app.Tick(g.controller.ReadSample(), 1/float32(ebiten.TPS()))

	if g.imgui != nil {
		g.imgui.EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.Target(screen)
	g.app.Draw(&g.canvas, int(ebiten.ActualFPS()+0.5))

	if g.imgui != nil {
		g.imgui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
		return outsideWidth, outsideHeight
	}
	return g.width, g.height
}

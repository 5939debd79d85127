package render

import (
	"fmt"

	"github.com/plus3/pspecs/ecs"
)

var (
	Yellow    = ecs.Color{R: 253, G: 249, B: 0, A: 255}
	LightGray = ecs.Color{R: 200, G: 200, B: 200, A: 255}
	Lime      = ecs.Color{R: 0, G: 158, B: 47, A: 255}
	// Background is the clear color of every frame.
	Background = ecs.Color{R: 100, G: 100, B: 100, A: 255}
)

// HUD draws the in-game overlay shown while no menu is open.
func HUD(o Overlay, title string, fps int) {
	h := o.ScreenHeight()
	o.DrawText(title, 10, 10, 20, ecs.White)
	o.DrawText(fmt.Sprintf("%d FPS", fps), o.ScreenWidth()-80, 10, 20, Lime)
	o.DrawText("Press START for menu", 10, h-30, 15, LightGray)
}

// CenterText draws text horizontally centered at row y.
func CenterText(o Overlay, text string, y, size int, color ecs.Color) {
	x := (o.ScreenWidth() - o.MeasureText(text, size)) / 2
	o.DrawText(text, x, y, size, color)
}

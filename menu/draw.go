package menu

import (
	"fmt"

	"github.com/plus3/pspecs/ecs"
	"github.com/plus3/pspecs/input"
	"github.com/plus3/pspecs/render"
)

var backdrop = ecs.Color{R: 0, G: 0, B: 0, A: 180}

const (
	titleY      = 50
	titleSize   = 30
	itemsY      = 120
	itemSpacing = 40
	itemSize    = 20

	bindingsY       = 90
	bindingsSpacing = 14
	bindingsSize    = 10
)

func (s State) title() string {
	switch s {
	case StateMain:
		return "MAIN MENU"
	case StateOptions:
		return "OPTIONS"
	case StateKeybindings:
		return "KEYBINDINGS"
	}
	return ""
}

// Draw renders the active menu over whatever is already on screen. The
// keybindings screen lists binds; it may be nil on other screens.
func (m *Menu) Draw(o render.Overlay, binds *input.Bindings) {
	if !m.active {
		return
	}
	w, h := o.ScreenWidth(), o.ScreenHeight()

	o.DrawRectangle(0, 0, w, h, backdrop)
	render.CenterText(o, m.state.title(), titleY, titleSize, ecs.White)

	help := "UP/DOWN: Navigate | X: Select"
	if m.state == StateKeybindings {
		help = "O: Back"
		if binds != nil {
			for a := range input.ActionCount {
				line := fmt.Sprintf("%s: %s", a.Name(), binds.Get(a))
				render.CenterText(o, line, bindingsY+int(a)*bindingsSpacing, bindingsSize, ecs.White)
			}
		}
	}

	for i, item := range m.Items() {
		color, prefix := ecs.White, "  "
		if i == m.selected {
			color, prefix = render.Yellow, "> "
		}
		render.CenterText(o, prefix+item.Text, itemsY+i*itemSpacing, itemSize, color)
	}

	o.DrawText(help, 10, h-30, 15, render.LightGray)

	if m.status != "" {
		render.CenterText(o, m.status, h-55, 18, render.Yellow)
	}
}

package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pspecs/ecs"
)

func NewQueryDebugger() QueryDebugger {
	return QueryDebugger{}
}

func (qd *QueryDebugger) Render(world *ecs.World) {
	if !imgui.BeginV("Query Debugger", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.selected = 0
	}

	for kind := ecs.ComponentKind(0); kind < ecs.KindCount; kind++ {
		selected := qd.selected.Has(kind)
		if imgui.Checkbox(kind.String(), &selected) {
			qd.Toggle(kind, selected)
		}
	}

	imgui.Separator()

	if qd.selected == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matches := qd.Matches(world)
	imgui.Text(fmt.Sprintf("Required Mask: 0b%04b", qd.selected))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matches)))

	if imgui.TreeNodeStr("Entity Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryEntityTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Slot")
			imgui.TableSetupColumn("Generation")
			imgui.TableSetupColumn("Mask")
			imgui.TableHeadersRow()

			for _, id := range matches {
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("%d", id.Index()))

				imgui.TableSetColumnIndex(1)
				imgui.Text(fmt.Sprintf("%d", id.Generation()))

				imgui.TableSetColumnIndex(2)
				imgui.Text(fmt.Sprintf("0b%04b", world.Mask(id)))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// Toggle adds or removes kind from the required mask.
func (qd *QueryDebugger) Toggle(kind ecs.ComponentKind, on bool) {
	if on {
		qd.selected |= ecs.MaskOf(kind)
	} else {
		qd.selected &^= ecs.MaskOf(kind)
	}
}

// Matches lists the entities owning every selected kind. With nothing
// selected it returns nil.
func (qd *QueryDebugger) Matches(world *ecs.World) []ecs.EntityId {
	if qd.selected == 0 {
		return nil
	}
	var ids []ecs.EntityId
	for id := range world.Entities(qd.selected) {
		ids = append(ids, id)
	}
	return ids
}

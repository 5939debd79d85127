package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pspecs/ecs"
)

// MaskInfo groups the live entities sharing one component mask.
type MaskInfo struct {
	Mask           ecs.Mask
	ComponentTypes []string
	EntityCount    int
}

func NewMaskViewer() MaskViewer {
	return MaskViewer{sortColumn: 2}
}

// Render draws the mask table and returns the mask clicked this frame, if any.
func (mv *MaskViewer) Render(world *ecs.World) *ecs.Mask {
	if !imgui.BeginV("Mask Viewer", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return nil
	}

	mv.masks = collectMasks(world)
	sortMasks(mv.masks, mv.sortColumn, mv.sortAscending)

	maxEntityCount := 0
	for _, m := range mv.masks {
		maxEntityCount = max(maxEntityCount, m.EntityCount)
	}

	var clicked *ecs.Mask

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("MaskTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Mask")
		imgui.TableSetupColumn("Components")
		imgui.TableSetupColumn("Entity Count")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			mv.sortColumn = int(spec.ColumnIndex())
			mv.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortMasks(mv.masks, mv.sortColumn, mv.sortAscending)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, info := range mv.masks {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := mv.selectedMask != nil && *mv.selectedMask == info.Mask
			if imgui.SelectableBoolV(fmt.Sprintf("0b%04b", info.Mask), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				mask := info.Mask
				clicked = &mask
				mv.selectedMask = &mask
			}

			imgui.TableNextColumn()
			imgui.Text(strings.Join(info.ComponentTypes, ", "))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", info.EntityCount))

			if maxEntityCount > 0 {
				barWidth := float32(info.EntityCount) / float32(maxEntityCount) * 80.0
				imgui.SameLine()
				drawList := imgui.WindowDrawList()
				pos := imgui.CursorScreenPos()
				color := imgui.ColorU32Vec4(imgui.NewVec4(0.2, 0.6, 0.8, 0.6))
				drawList.AddRectFilled(pos, imgui.NewVec2(pos.X+barWidth, pos.Y+10), color)
			}
		}

		imgui.EndTable()
	}

	imgui.End()
	return clicked
}

func collectMasks(world *ecs.World) []MaskInfo {
	index := make(map[ecs.Mask]int)
	var masks []MaskInfo
	for id := range world.Entities(0) {
		mask := world.Mask(id)
		i, ok := index[mask]
		if !ok {
			i = len(masks)
			index[mask] = i
			masks = append(masks, MaskInfo{Mask: mask, ComponentTypes: kindNames(mask)})
		}
		masks[i].EntityCount++
	}
	return masks
}

func sortMasks(masks []MaskInfo, column int, ascending bool) {
	sort.SliceStable(masks, func(i, j int) bool {
		a, b := masks[i], masks[j]
		if !ascending {
			a, b = b, a
		}
		var less bool
		switch column {
		case 0:
			less = a.Mask < b.Mask
		case 1:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		default:
			less = a.EntityCount < b.EntityCount
		}

		return less
	})
}

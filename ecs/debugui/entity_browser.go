package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/pspecs/ecs"
)

type EntityInfo struct {
	ID             ecs.EntityId
	Mask           ecs.Mask
	ComponentTypes []string
}

func NewEntityBrowser(maxPerPage int) EntityBrowser {
	return EntityBrowser{
		sortAscending: true,
		maxPerPage:    maxPerPage,
	}
}

func (eb *EntityBrowser) Render(world *ecs.World) {
	if !imgui.BeginV("Entity Browser", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	eb.entities = collectEntities(world)
	sortEntities(eb.entities, eb.sortColumn, eb.sortAscending)

	imgui.InputTextWithHint("##search", "Search...", &eb.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		eb.filterText = ""
		eb.filterMask = nil
	}

	filtered := filterEntities(eb.entities, eb.filterText, eb.filterMask)
	start, end := pageBounds(len(filtered), eb.currentPage, eb.maxPerPage)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("EntityTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("Slot")
		imgui.TableSetupColumn("Generation")
		imgui.TableSetupColumn("Mask")
		imgui.TableSetupColumn("Components")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			eb.sortColumn = int(spec.ColumnIndex())
			eb.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortEntities(eb.entities, eb.sortColumn, eb.sortAscending)
			filtered = filterEntities(eb.entities, eb.filterText, eb.filterMask)
			sortSpecs.SetSpecsDirty(false)
		}

		for _, entity := range filtered[start:end] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			isSelected := eb.selectedEntityId == entity.ID
			if imgui.SelectableBoolV(fmt.Sprintf("%d", entity.ID.Index()), isSelected, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				eb.selectedEntityId = entity.ID
			}

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", entity.ID.Generation()))

			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("0b%04b", entity.Mask))

			imgui.TableNextColumn()
			imgui.Text(strings.Join(entity.ComponentTypes, ", "))
		}

		imgui.EndTable()
	}

	if len(filtered) > eb.maxPerPage {
		totalPages := (len(filtered) + eb.maxPerPage - 1) / eb.maxPerPage
		imgui.Text(fmt.Sprintf("Page %d / %d (%d entities)", eb.currentPage+1, totalPages, len(filtered)))
		imgui.SameLine()
		if imgui.Button("Prev") && eb.currentPage > 0 {
			eb.currentPage--
		}
		imgui.SameLine()
		if imgui.Button("Next") && eb.currentPage < totalPages-1 {
			eb.currentPage++
		}
	} else {
		imgui.Text(fmt.Sprintf("Total: %d / %d slots", len(filtered), ecs.MaxEntities))
	}

	imgui.End()
}

// SelectedEntity is the entity last clicked in the table, or InvalidEntity.
func (eb *EntityBrowser) SelectedEntity() ecs.EntityId {
	return eb.selectedEntityId
}

func collectEntities(world *ecs.World) []EntityInfo {
	entities := make([]EntityInfo, 0, world.Count())
	for id := range world.Entities(0) {
		mask := world.Mask(id)
		entities = append(entities, EntityInfo{
			ID:             id,
			Mask:           mask,
			ComponentTypes: kindNames(mask),
		})
	}
	return entities
}

func kindNames(mask ecs.Mask) []string {
	kinds := mask.Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = k.String()
	}
	return names
}

func sortEntities(entities []EntityInfo, column int, ascending bool) {
	sort.SliceStable(entities, func(i, j int) bool {
		a, b := entities[i], entities[j]
		if !ascending {
			a, b = b, a
		}
		var less bool
		switch column {
		case 1:
			less = a.ID.Generation() < b.ID.Generation()
		case 2:
			less = a.Mask < b.Mask
		case 3:
			less = strings.Join(a.ComponentTypes, ",") < strings.Join(b.ComponentTypes, ",")
		default:
			less = a.ID.Index() < b.ID.Index()
		}

		return less
	})
}

// filterEntities keeps entities whose slot number or component names contain
// text, case-insensitively. A non-nil mask additionally requires an exact
// mask match.
func filterEntities(entities []EntityInfo, text string, mask *ecs.Mask) []EntityInfo {
	if text == "" && mask == nil {
		return entities
	}

	filtered := make([]EntityInfo, 0, len(entities))
	filterLower := strings.ToLower(text)

	for _, entity := range entities {
		if mask != nil && entity.Mask != *mask {
			continue
		}

		if text != "" {
			slot := fmt.Sprintf("%d", entity.ID.Index())
			components := strings.ToLower(strings.Join(entity.ComponentTypes, " "))
			if !strings.Contains(slot, filterLower) && !strings.Contains(components, filterLower) {
				continue
			}
		}

		filtered = append(filtered, entity)
	}

	return filtered
}

func pageBounds(total, page, perPage int) (start, end int) {
	start = page * perPage
	if start > total {
		start = total
	}
	end = start + perPage
	if end > total {
		end = total
	}
	return start, end
}

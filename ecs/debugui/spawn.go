package debugui

import "github.com/plus3/pspecs/ecs"

// Inspector bundles the standard debug windows. The entity browser and the
// mask viewer feed the component inspector and the browser filter.
type Inspector struct {
	Browser     EntityBrowser
	Components  ComponentInspector
	Masks       MaskViewer
	Performance PerformanceStats
	Query       QueryDebugger
}

// NewInspector builds the standard windows. scheduler may be nil, in which
// case the per-system table is left out.
func NewInspector(scheduler *ecs.Scheduler) *Inspector {
	return &Inspector{
		Browser:     NewEntityBrowser(100),
		Components:  NewComponentInspector(),
		Masks:       NewMaskViewer(),
		Performance: NewPerformanceStats(scheduler, 120),
		Query:       NewQueryDebugger(),
	}
}

func (in *Inspector) Render(world *ecs.World) {
	if mask := in.Masks.Render(world); mask != nil {
		in.Browser.filterMask = mask
		in.Browser.currentPage = 0
	}
	in.Browser.Render(world)
	in.Components.Render(world, in.Browser.SelectedEntity())
	in.Performance.Render(world)
	in.Query.Render(world)
}

// NewSystem returns an ImguiSystem drawing the standard windows.
func NewSystem(scheduler *ecs.Scheduler) *ImguiSystem {
	return &ImguiSystem{Windows: []Window{NewInspector(scheduler)}}
}

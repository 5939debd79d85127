package debugui

import "github.com/plus3/pspecs/ecs"

type EntityBrowser struct {
	entities         []EntityInfo
	sortColumn       int
	sortAscending    bool
	selectedEntityId ecs.EntityId
	filterText       string
	filterMask       *ecs.Mask
	maxPerPage       int
	currentPage      int
}

type ComponentInspector struct {
	selectedEntityId ecs.EntityId
}

type MaskViewer struct {
	masks         []MaskInfo
	selectedMask  *ecs.Mask
	sortColumn    int
	sortAscending bool
}

type PerformanceStats struct {
	scheduler     *ecs.Scheduler
	timer         *FrameTimer
	historyFrames int
	frameHistory  []float32
	frameIndex    int
}

type QueryDebugger struct {
	selected ecs.Mask
}

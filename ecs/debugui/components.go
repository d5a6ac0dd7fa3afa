package debugui

import (
	"github.com/plus3/momo/ecs"
)

type EntityBrowserComponent struct {
	cache              *EntityBrowserCache
	selectedEntity     ecs.Entity
	filterText         string
	filterKind         *ecs.Kind
	maxEntitiesPerPage int
	currentPage        int
}

type ComponentInspectorComponent struct {
	selectedEntity ecs.Entity
}

type StoreViewerComponent struct {
	sortColumn    int
	sortAscending bool
	selectedKind  *ecs.Kind
}

type PerformanceStatsComponent struct {
	history *FrameHistory
}

type QueryDebuggerComponent struct {
	selectedKinds map[ecs.Kind]bool
}

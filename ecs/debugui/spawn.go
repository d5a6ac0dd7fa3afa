package debugui

import "github.com/plus3/momo/ecs"

// SpawnDebugUI creates one entity per debug panel. Panels are components, so
// they show up in the entity browser like anything else.
func SpawnDebugUI(reg *ecs.Registry) {
	c := reg.Catalog()
	ecs.Add(c, reg.Create(), NewEntityBrowserComponent(100))
	ecs.Add(c, reg.Create(), NewComponentInspectorComponent())
	ecs.Add(c, reg.Create(), NewStoreViewerComponent())
	ecs.Add(c, reg.Create(), NewPerformanceStatsComponent(120))
	ecs.Add(c, reg.Create(), NewQueryDebuggerComponent())
}

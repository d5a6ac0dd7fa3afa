// Package debugui provides immediate-mode GUI inspection of a running catalog using Dear ImGui.
// Panels are ordinary components; Debugger.Render draws every panel entity once per displayed frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/momo/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Debugger renders the debug panels of a catalog. Scheduler and Pipeline are
// optional and feed the performance panel.
type Debugger struct {
	Catalog   *ecs.Catalog
	Scheduler *ecs.Scheduler
	Pipeline  *ecs.Pipeline

	InputState ImguiInputState

	timer *FrameTimer
}

func NewDebugger(c *ecs.Catalog, scheduler *ecs.Scheduler, pipeline *ecs.Pipeline) *Debugger {
	return &Debugger{
		Catalog:   c,
		Scheduler: scheduler,
		Pipeline:  pipeline,
		timer:     NewFrameTimer(ecs.SystemClock{}),
	}
}

// Render draws every panel. Call it between the ImGui backend's BeginFrame
// and EndFrame.
func (d *Debugger) Render() {
	io := imgui.CurrentIO()
	d.InputState.WantCaptureMouse = io.WantCaptureMouse()
	d.InputState.WantCaptureKeyboard = io.WantCaptureKeyboard()

	dt := d.timer.Delta()
	c := d.Catalog

	ecs.ForEach(c, func(_ ecs.Entity, ps *PerformanceStatsComponent) {
		ps.Render(d, dt)
	})

	var selectedKind *ecs.Kind
	ecs.ForEach(c, func(_ ecs.Entity, sv *StoreViewerComponent) {
		if kind := sv.Render(c); kind != nil {
			selectedKind = kind
		}
	})

	selected := ecs.Nil
	ecs.ForEach(c, func(_ ecs.Entity, eb *EntityBrowserComponent) {
		if selectedKind != nil {
			eb.FilterKind(*selectedKind)
		}
		eb.Render(c)
		if e := eb.SelectedEntity(); e != ecs.Nil {
			selected = e
		}
	})

	ecs.ForEach(c, func(_ ecs.Entity, ci *ComponentInspectorComponent) {
		ci.Render(c, selected)
	})

	ecs.ForEach(c, func(_ ecs.Entity, qd *QueryDebuggerComponent) {
		qd.Render(c)
	})

	ecs.ForEach(c, func(_ ecs.Entity, item *ImguiItem) {
		if item.Render != nil {
			item.Render()
		}
	})
}

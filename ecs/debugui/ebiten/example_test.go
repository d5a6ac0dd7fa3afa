package ebiten_test

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/momo/ecs"
	"github.com/plus3/momo/ecs/debugui"
	debugui_ebiten "github.com/plus3/momo/ecs/debugui/ebiten"
	"github.com/plus3/momo/engine"
	"github.com/plus3/momo/engine/ebitenhost"
)

func Example() {
	cfg := engine.DefaultConfig()
	backend := ebitenhost.New(cfg.Window)

	session, err := engine.NewSession(cfg,
		engine.WithRenderer(backend),
		engine.WithInput(backend),
	)
	if err != nil {
		panic(err)
	}

	debugger := debugui.NewDebugger(session.Catalog(), session.Scheduler(), session.Pipeline())
	// The overlay needs the session's catalog, so it is attached once the
	// session exists.
	backend.SetOverlay(debugui_ebiten.NewOverlay(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, debugger))

	// Panels are entities like any other.
	debugui.SpawnDebugUI(session.Registry())

	ecs.Add(session.Catalog(), session.Registry().Create(), debugui.ImguiItem{
		Render: func() {
			imgui.Begin("Debug Window")
			imgui.Text("Hello from ECS!")
			imgui.End()
		},
	})

	if err := session.Startup(); err != nil {
		panic(err)
	}
	defer session.Shutdown()

	if err := session.RunLoop(nil, nil); err != nil {
		panic(err)
	}
}

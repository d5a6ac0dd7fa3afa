// Package ebiten provides Dear ImGui backend integration for the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/momo/ecs/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend implementation.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Overlay renders the debug panels of a Debugger over an Ebiten window. It
// fits the overlay hook of the ebiten host: panels are laid out in EndFrame,
// after the frame's ticks, and drawn over the sprites.
type Overlay struct {
	Backend  ImguiBackend
	Debugger *debugui.Debugger
}

// NewOverlay creates the ImGui context for an Ebiten window titled title.
func NewOverlay(title string, width, height int, d *debugui.Debugger) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &Overlay{
		Backend:  ImguiBackend{EbitenBackend: backend},
		Debugger: d,
	}
}

func (o *Overlay) BeginFrame() {
	o.Backend.BeginFrame()
}

func (o *Overlay) EndFrame() {
	if o.Debugger != nil {
		o.Debugger.Render()
	}
	o.Backend.EndFrame()
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.Backend.Draw(screen)
}

func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.Backend.Layout(outsideWidth, outsideHeight)
}

// Package ebiten hosts the debug overlay on the Ebiten Dear ImGui backend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/tetra/debugui"
	"github.com/plus3/tetra/game"
)

// ImguiBackend wraps the Ebiten Dear ImGui backend and drives a
// debugui.Overlay. It satisfies the overlay hook of the ebiten renderer.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
	overlay *debugui.Overlay
}

// NewImguiBackend creates the backend window. Call it before ebiten.RunGame.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &ImguiBackend{
		EbitenBackend: backend,
		overlay:       debugui.New(120),
	}
}

// Update builds the overlay for this tick.
func (b *ImguiBackend) Update(loop *game.Loop) {
	b.BeginFrame()
	b.overlay.Build(loop)
	b.EndFrame()
}

// Draw paints the overlay on top of screen.
func (b *ImguiBackend) Draw(screen *ebiten.Image) {
	b.EbitenBackend.Draw(screen)
}

// Layout forwards the outside size to ImGui.
func (b *ImguiBackend) Layout(width, height int) {
	b.EbitenBackend.Layout(width, height)
}

// WantsKeyboard reports whether an ImGui widget has keyboard focus.
func (b *ImguiBackend) WantsKeyboard() bool {
	return debugui.WantsKeyboard()
}

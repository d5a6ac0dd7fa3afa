// Package ebitenhost runs a session inside an Ebitengine window.
//
// Backend is the session's renderer, input source and loop driver at once:
// ebiten.RunGame owns the OS loop, and every Update call runs one session
// frame. Sprite positions are window pixels with the origin at the top left.
package ebitenhost

import (
	"image/color"
	_ "image/png"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/rotisserie/eris"

	"github.com/plus3/momo/engine"
)

var discardLogger = slog.New(slog.DiscardHandler)

// PlaceholderSize is the edge length in pixels of the tile drawn for sprites
// whose image has not been loaded.
const PlaceholderSize = 16

// Overlay draws on top of the sprites, typically a Dear ImGui backend.
// BeginFrame and EndFrame bracket each session frame.
type Overlay interface {
	BeginFrame()
	EndFrame()
	Draw(screen *ebiten.Image)
	Layout(outsideWidth, outsideHeight int)
}

type Backend struct {
	window  engine.WindowConfig
	log     *slog.Logger
	overlay Overlay
	clear   color.Color

	started     bool
	textures    map[string]*ebiten.Image
	placeholder *ebiten.Image
	drawables   []engine.Drawable

	held    map[engine.Key]bool
	pressed func(ebiten.Key) bool
}

type Option func(*Backend)

func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.log = l
		}
	}
}

// WithOverlay draws o over the sprites every frame.
func WithOverlay(o Overlay) Option {
	return func(b *Backend) {
		b.overlay = o
	}
}

// WithClearColor sets the background colour.
func WithClearColor(c color.Color) Option {
	return func(b *Backend) {
		b.clear = c
	}
}

func New(window engine.WindowConfig, opts ...Option) *Backend {
	b := &Backend{
		window:   window,
		log:      discardLogger,
		clear:    color.RGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff},
		textures: make(map[string]*ebiten.Image),
		held:     make(map[engine.Key]bool),
		pressed:  ebiten.IsKeyPressed,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SetOverlay replaces the overlay. Call it before the loop starts.
func (b *Backend) SetOverlay(o Overlay) {
	b.overlay = o
}

// Startup applies the window settings. The session starts the backend once as
// renderer and once as input; only the first call does anything.
func (b *Backend) Startup() error {
	if b.started {
		return nil
	}
	if b.window.Width <= 0 || b.window.Height <= 0 {
		return eris.Errorf("invalid window size %dx%d", b.window.Width, b.window.Height)
	}

	ebiten.SetWindowTitle(b.window.Title)
	ebiten.SetWindowSize(b.window.Width, b.window.Height)
	ebiten.SetFullscreen(b.window.Fullscreen)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// The session scheduler does its own fixed stepping; one Update per displayed frame.
	ebiten.SetTPS(ebiten.SyncWithFPS)

	b.started = true
	b.log.Info("window configured",
		"title", b.window.Title,
		"width", b.window.Width,
		"height", b.window.Height)
	return nil
}

func (b *Backend) Shutdown() {
	if !b.started {
		return
	}
	b.started = false
	for name, img := range b.textures {
		img.Deallocate()
		delete(b.textures, name)
	}
	clear(b.held)
}

// LoadTexture decodes the PNG at path and registers it under name, replacing
// any image already registered under that name.
func (b *Backend) LoadTexture(name, path string) error {
	img, _, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return eris.Wrapf(err, "failed to decode image %s", path)
	}
	if old, ok := b.textures[name]; ok {
		old.Deallocate()
	}
	b.textures[name] = img
	return nil
}

// Draw keeps the frame's drawables for the next screen refresh.
func (b *Backend) Draw(drawables []engine.Drawable) error {
	b.drawables = append(b.drawables[:0], drawables...)
	return nil
}

func (b *Backend) PollEvents() {
	for _, k := range engine.Keys() {
		ek, ok := ebitenKey(k)
		b.held[k] = ok && b.pressed(ek)
	}
}

func (b *Backend) KeyPressed(k engine.Key) bool {
	return b.held[k]
}

// Drive runs the ebiten game loop until frame reports done or fails. A done
// frame ends the loop with ebiten.Termination, which RunGame reports as nil.
func (b *Backend) Drive(frame func() (done bool, err error)) error {
	return ebiten.RunGame(&game{backend: b, frame: frame})
}

type game struct {
	backend *Backend
	frame   func() (bool, error)
}

func (g *game) Update() error {
	overlay := g.backend.overlay
	if overlay != nil {
		overlay.BeginFrame()
	}

	done, err := g.frame()

	if overlay != nil {
		overlay.EndFrame()
	}

	if err != nil {
		return err
	}
	if done {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	b := g.backend
	screen.Fill(b.clear)

	for _, d := range b.drawables {
		img, scaleX, scaleY := b.image(d)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scaleX, scaleY)
		op.GeoM.Translate(float64(d.Position.X), float64(d.Position.Y))
		screen.DrawImage(img, op)
	}

	if b.overlay != nil {
		b.overlay.Draw(screen)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.backend.overlay != nil {
		g.backend.overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// image returns the image for d and the scale to draw it at. Unknown images
// fall back to a placeholder tile sized by the sprite's width and height.
func (b *Backend) image(d engine.Drawable) (*ebiten.Image, float64, float64) {
	if img, ok := b.textures[d.Image]; ok {
		return img, float64(d.Scale.X), float64(d.Scale.Y)
	}
	if b.placeholder == nil {
		b.placeholder = ebiten.NewImage(PlaceholderSize, PlaceholderSize)
		b.placeholder.Fill(color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff})
	}
	sx, sy := placeholderScale(d)
	return b.placeholder, sx, sy
}

// placeholderScale stretches the PlaceholderSize tile to Width x Height pixels,
// then applies the sprite scale. A zero size keeps the tile's own edge.
func placeholderScale(d engine.Drawable) (float64, float64) {
	edge := func(px int, scale float32) float64 {
		if px <= 0 {
			px = PlaceholderSize
		}
		return float64(scale) * float64(px) / PlaceholderSize
	}
	return edge(d.Width, d.Scale.X), edge(d.Height, d.Scale.Y)
}

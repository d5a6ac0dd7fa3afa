// Package termhost renders a session into a terminal with tcell.
//
// Every drawable becomes one glyph cell. Sprite positions are divided by the
// cell size to find their row and column, with the origin at the top left.
// Terminals report key presses but not releases, so a key counts as held for
// a short window after its last key event.
package termhost

import (
	"log/slog"
	"os"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/rotisserie/eris"

	"github.com/plus3/momo/engine"
)

var discardLogger = slog.New(slog.DiscardHandler)

const (
	// DefaultKeyHold is how long a key stays held after its last key event.
	// Terminal key repeat usually fires faster than this.
	DefaultKeyHold = 150 * time.Millisecond

	// DefaultCellWidth and DefaultCellHeight are the pixels covered by one cell.
	DefaultCellWidth  = 8
	DefaultCellHeight = 16

	// PlaceholderGlyph marks sprites whose image has not been loaded.
	PlaceholderGlyph = '?'
)

type Backend struct {
	screen    tcell.Screen
	newScreen func() (tcell.Screen, error)
	log       *slog.Logger
	now       func() time.Time

	hold       time.Duration
	cellWidth  float32
	cellHeight float32
	style      tcell.Style

	started     bool
	glyphs      map[string]rune
	lastPressed map[engine.Key]time.Time
	held        map[engine.Key]bool
	interrupted bool
}

type Option func(*Backend)

// WithScreen draws to s instead of the controlling terminal. Tests pass a
// tcell simulation screen.
func WithScreen(s tcell.Screen) Option {
	return func(b *Backend) {
		b.screen = s
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.log = l
		}
	}
}

// WithKeyHold sets how long a key counts as held after its last event.
func WithKeyHold(d time.Duration) Option {
	return func(b *Backend) {
		if d > 0 {
			b.hold = d
		}
	}
}

// WithCellSize sets the pixels covered by one terminal cell.
func WithCellSize(width, height float32) Option {
	return func(b *Backend) {
		if width > 0 && height > 0 {
			b.cellWidth, b.cellHeight = width, height
		}
	}
}

// WithNow replaces the time source used for key hold windows.
func WithNow(now func() time.Time) Option {
	return func(b *Backend) {
		if now != nil {
			b.now = now
		}
	}
}

func New(opts ...Option) *Backend {
	b := &Backend{
		newScreen:   tcell.NewScreen,
		log:         discardLogger,
		now:         time.Now,
		hold:        DefaultKeyHold,
		cellWidth:   DefaultCellWidth,
		cellHeight:  DefaultCellHeight,
		style:       tcell.StyleDefault,
		glyphs:      make(map[string]rune),
		lastPressed: make(map[engine.Key]time.Time),
		held:        make(map[engine.Key]bool),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Startup takes over the terminal. The session starts the backend once as
// renderer and once as input; only the first call does anything.
func (b *Backend) Startup() error {
	if b.started {
		return nil
	}
	if b.screen == nil {
		s, err := b.newScreen()
		if err != nil {
			return eris.Wrap(err, "failed to open terminal screen")
		}
		b.screen = s
	}
	if err := b.screen.Init(); err != nil {
		return eris.Wrap(err, "failed to initialise terminal screen")
	}
	b.screen.HideCursor()
	b.screen.Clear()

	b.started = true
	w, h := b.screen.Size()
	b.log.Info("terminal screen ready", "columns", w, "rows", h)
	return nil
}

// Shutdown restores the terminal.
func (b *Backend) Shutdown() {
	if !b.started {
		return
	}
	b.started = false
	b.screen.Fini()
	clear(b.held)
	clear(b.lastPressed)
}

// Screen returns the tcell screen, or nil before Startup.
func (b *Backend) Screen() tcell.Screen {
	return b.screen
}

// LoadTexture registers name as a drawable image. Terminals cannot show the
// image itself; the sprite is drawn as the first letter of name. The file
// must exist so that a missing asset fails the same way on every backend.
func (b *Backend) LoadTexture(name, path string) error {
	if _, err := os.Stat(path); err != nil {
		return eris.Wrapf(err, "failed to stat image %s", path)
	}
	b.glyphs[name] = glyphFor(name)
	return nil
}

// SetGlyph draws sprites using image as r.
func (b *Backend) SetGlyph(image string, r rune) {
	b.glyphs[image] = r
}

func glyphFor(name string) rune {
	r, _ := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError || !unicode.IsPrint(r) {
		return PlaceholderGlyph
	}
	return unicode.ToUpper(r)
}

// Draw repaints the screen. Drawables arrive back to front, so a later
// drawable in the same cell wins.
func (b *Backend) Draw(drawables []engine.Drawable) error {
	if !b.started {
		return eris.New("terminal screen is not started")
	}

	b.screen.Clear()
	w, h := b.screen.Size()
	for _, d := range drawables {
		x, y := b.Cell(d.Position)
		if x < 0 || y < 0 || x >= w || y >= h {
			continue
		}
		glyph, ok := b.glyphs[d.Image]
		if !ok {
			glyph = PlaceholderGlyph
		}
		b.screen.SetContent(x, y, glyph, nil, b.style)
	}
	b.screen.Show()
	return nil
}

// Cell converts a pixel position to a column and row.
func (b *Backend) Cell(p engine.Vec2) (int, int) {
	col := p.X / b.cellWidth
	row := p.Y / b.cellHeight
	// Truncation would fold -0.5 into column 0.
	if col < 0 || row < 0 {
		return -1, -1
	}
	return int(col), int(row)
}

// PollEvents drains pending terminal events without blocking and refreshes
// the held keys.
func (b *Backend) PollEvents() {
	if !b.started {
		return
	}

	now := b.now()
drain:
	for b.screen.HasPendingEvent() {
		switch ev := b.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC {
				b.interrupted = true
				continue
			}
			if k, ok := engineKey(ev); ok {
				b.lastPressed[k] = now
			}
		case *tcell.EventResize:
			b.screen.Sync()
		case nil:
			break drain
		}
	}

	for _, k := range engine.Keys() {
		at, ok := b.lastPressed[k]
		b.held[k] = ok && now.Sub(at) < b.hold
	}
}

func (b *Backend) KeyPressed(k engine.Key) bool {
	return b.held[k]
}

// Interrupted reports whether Ctrl-C was pressed. The terminal is in raw mode
// while the backend runs, so Ctrl-C does not reach the process as a signal.
func (b *Backend) Interrupted() bool {
	return b.interrupted
}

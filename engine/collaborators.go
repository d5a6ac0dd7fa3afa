package engine

import (
	"github.com/plus3/momo/ecs"
)

// Renderer owns the output surface. Draw is called once per frame after the
// frame's ticks with every drawable sorted back to front.
type Renderer interface {
	Startup() error
	Shutdown()
	Draw(drawables []Drawable) error
}

// TextureLoader is implemented by renderers that can load images by name.
type TextureLoader interface {
	LoadTexture(name, path string) error
}

// LoopDriver is implemented by renderers whose windowing library owns the OS
// loop. Drive calls frame once per displayed frame until frame reports done or
// fails.
type LoopDriver interface {
	Drive(frame func() (done bool, err error)) error
}

// InputSource reports keyboard state. PollEvents is called once per frame;
// KeyPressed answers from the state gathered by the last poll.
type InputSource interface {
	Startup() error
	Shutdown()
	PollEvents()
	KeyPressed(k Key) bool
}

// ScriptHost runs the update logic of the script attached to an entity.
type ScriptHost interface {
	RunUpdate(e ecs.Entity, c *ecs.Catalog) error
}

// Starter is implemented by collaborators that need setup before the first frame.
type Starter interface {
	Startup() error
}

// Stopper is implemented by collaborators that hold resources until shutdown.
type Stopper interface {
	Shutdown()
}

// Key identifies a keyboard key independently of any backend.
type Key int

const (
	KeyUnknown Key = iota
	KeySpace
	KeyEscape
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyR
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

var keyNames = map[Key]string{
	KeySpace:  "SPACE",
	KeyEscape: "ESCAPE",
	KeyW:      "W",
	KeyA:      "A",
	KeyS:      "S",
	KeyD:      "D",
	KeyQ:      "Q",
	KeyR:      "R",
	KeyUp:     "UP",
	KeyDown:   "DOWN",
	KeyLeft:   "LEFT",
	KeyRight:  "RIGHT",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Keys returns every known key in declaration order.
func Keys() []Key {
	keys := make([]Key, 0, len(keyNames))
	for k := KeySpace; k <= KeyRight; k++ {
		keys = append(keys, k)
	}
	return keys
}

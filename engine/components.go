package engine

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Scale(f float32) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Position is where an entity is in the world, in pixels with y pointing down.
type Position Vec2

// Velocity is an entity's speed in world units per second.
type Velocity Vec2

// DefaultGravity is the pull NewGravity applies, in meters per second squared.
const DefaultGravity = 9.8

// Gravity makes GravitySystem accelerate the entity's Velocity downwards.
type Gravity struct {
	MetersPerSecond float32
}

func NewGravity() Gravity {
	return Gravity{MetersPerSecond: DefaultGravity}
}

// Sprite draws the named image at the entity's Position.
type Sprite struct {
	Image string
	Scale Vec2
	// Depth orders drawing: lower depths are drawn first.
	Depth float32
	// Width and Height size the placeholder drawn while Image is not loaded, in
	// pixels before Scale. Zero keeps the backend's native placeholder size.
	Width  int
	Height int
}

// NewSprite returns a sprite for image at unit scale and depth zero.
func NewSprite(image string) Sprite {
	return Sprite{
		Image:  image,
		Scale: Vec2{X: 1, Y: 1},
	}
}

// Health is an entity's remaining health as a percentage.
type Health struct {
	Percent float32
}

// NewHealth returns full health.
func NewHealth() Health {
	return Health{Percent: 100}
}

// Script attaches the named script to an entity. The ScriptSystem runs it every tick.
type Script struct {
	Name string
}

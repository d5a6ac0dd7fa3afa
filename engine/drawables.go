package engine

import (
	"slices"

	"github.com/plus3/momo/ecs"
)

// Drawable is one sprite instance ready for a Renderer.
type Drawable struct {
	Entity   ecs.Entity
	Position Vec2
	Scale    Vec2
	Depth    float32
	Image    string
	Width    int
	Height   int
}

// CollectDrawables builds the draw list from every entity holding a Position
// and a Sprite, sorted back to front by depth. Entities at equal depth keep
// the order their positions were added in.
func CollectDrawables(c *ecs.Catalog) []Drawable {
	return AppendDrawables(nil, c)
}

// AppendDrawables is CollectDrawables reusing dst's storage.
func AppendDrawables(dst []Drawable, c *ecs.Catalog) []Drawable {
	dst = dst[:0]
	ecs.ForEach2(c, func(e ecs.Entity, p *Position, s *Sprite) {
		dst = append(dst, Drawable{
			Entity:   e,
			Position: Vec2(*p),
			Scale:    s.Scale,
			Depth:    s.Depth,
			Image:    s.Image,
			Width:    s.Width,
			Height:   s.Height,
		})
	})
	slices.SortStableFunc(dst, func(a, b Drawable) int {
		switch {
		case a.Depth < b.Depth:
			return -1
		case a.Depth > b.Depth:
			return 1
		default:
			return 0
		}
	})
	return dst
}

package ecs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/momo/ecs"
)

func TestCatalogStores(t *testing.T) {
	t.Run("one store per kind", func(t *testing.T) {
		c, _ := newWorld()
		a := ecs.StoreFor[Position](c)
		b := ecs.StoreFor[Position](c)
		assert.Same(t, a, b)

		s, ok := c.StoreOf(ecs.KindOf[Position]())
		require.True(t, ok)
		assert.Equal(t, ecs.KindOf[Position](), s.Kind())
	})

	t.Run("lookup does not create", func(t *testing.T) {
		c, _ := newWorld()
		_, ok := ecs.LookupStore[Velocity](c)
		assert.False(t, ok)
		assert.Equal(t, 0, c.Stats().StoreCount)
	})

	t.Run("get on an unknown kind does not create", func(t *testing.T) {
		c, reg := newWorld()
		e := reg.Create()

		_, err := ecs.Get[Velocity](c, e)
		assert.True(t, errors.Is(err, ecs.ErrComponentNotFound))
		assert.False(t, errors.Is(err, ecs.ErrInvalidEntity))

		_, err = ecs.Get[Velocity](c, e+10)
		assert.True(t, errors.Is(err, ecs.ErrInvalidEntity))

		_, ok := ecs.LookupStore[Velocity](c)
		assert.False(t, ok)
	})

	t.Run("for all stores in creation order", func(t *testing.T) {
		c, reg := newWorld()
		e := reg.Create()
		ecs.Add(c, e, Health{})
		ecs.Add(c, e, Position{})
		ecs.Add(c, e, Name{})

		var kinds []ecs.Kind
		c.ForAllStores(func(s ecs.AnyStore) bool {
			kinds = append(kinds, s.Kind())
			return true
		})
		assert.Equal(t, []ecs.Kind{ecs.KindOf[Health](), ecs.KindOf[Position](), ecs.KindOf[Name]()}, kinds)
		assert.Equal(t, kinds, c.KindsOf(e))

		visited := 0
		c.ForAllStores(func(ecs.AnyStore) bool {
			visited++
			return false
		})
		assert.Equal(t, 1, visited)
	})
}

func TestCatalogHelpers(t *testing.T) {
	c, reg := newWorld()
	e := reg.Create()

	ecs.Add(c, e, Position{X: 4})
	assert.True(t, ecs.Has[Position](c, e))
	assert.False(t, ecs.Has[Velocity](c, e))

	ecs.Add(c, ecs.Entity(999), Position{})
	assert.Equal(t, 1, ecs.StoreFor[Position](c).Len())

	v, ok := ecs.StoreFor[Position](c).Value(e)
	require.True(t, ok)
	assert.Equal(t, &Position{X: 4}, v)

	ecs.Remove[Position](c, e)
	ecs.Remove[Velocity](c, e)
	assert.False(t, ecs.Has[Position](c, e))
}

func TestCatalogDefer(t *testing.T) {
	t.Run("runs immediately outside a query", func(t *testing.T) {
		c, _ := newWorld()
		ran := false
		c.Defer(func() { ran = true })
		assert.True(t, ran)
	})

	t.Run("runs after the outermost query in request order", func(t *testing.T) {
		c, reg := newWorld()
		e := reg.Create()
		ecs.Add(c, e, Position{})

		var order []string
		ecs.ForEach(c, func(ecs.Entity, *Position) {
			c.Defer(func() { order = append(order, "first") })
			ecs.ForEach(c, func(ecs.Entity, *Position) {
				c.Defer(func() { order = append(order, "nested") })
			})
			assert.Empty(t, order, "nested query must not flush")
			c.Defer(func() { order = append(order, "last") })
			assert.Equal(t, 3, c.Pending())
		})

		assert.Equal(t, []string{"first", "nested", "last"}, order)
		assert.Equal(t, 0, c.Pending())
	})
}

func TestCatalogStats(t *testing.T) {
	c, reg := newWorld()

	stats := c.Stats()
	assert.Equal(t, 0, stats.StoreCount)
	assert.Equal(t, 0, stats.TotalComponents)

	a, b := reg.Create(), reg.Create()
	ecs.Add(c, a, Position{})
	ecs.Add(c, b, Position{})
	ecs.Add(c, a, Velocity{})
	ecs.Add(c, a, Velocity{DX: 1})
	reg.Destroy(b)

	stats = c.Stats()
	assert.Equal(t, 2, stats.StoreCount)
	assert.Equal(t, 2, stats.TotalComponents)
	assert.Equal(t, uint64(2), stats.IssuedEntities)
	assert.Equal(t, uint64(1), stats.Destroyed)
	require.Len(t, stats.Stores, 2)
	assert.Equal(t, "ecs_test.Position", stats.Stores[0].Kind)
	assert.Equal(t, 1, stats.Stores[0].Len)
	assert.Equal(t, uint64(1), stats.Stores[1].Replacements)

	ecs.ForEach(c, func(e ecs.Entity, _ *Position) {
		reg.Destroy(e)
		ecs.Add(c, reg.Create(), Position{})
		inner := c.Stats()
		assert.Equal(t, 2, inner.Pending)
		assert.Equal(t, 1, inner.PendingByOp["destroy"])
		assert.Equal(t, 1, inner.PendingByOp["add"])
	})
}

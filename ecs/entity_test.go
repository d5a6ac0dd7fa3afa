package ecs_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/momo/ecs"
)

func TestRegistryCreate(t *testing.T) {
	t.Run("ids are unique and ascending", func(t *testing.T) {
		_, reg := newWorld()

		var prev ecs.Entity
		seen := make(map[ecs.Entity]bool)
		for i := 0; i < 1000; i++ {
			e := reg.Create()
			assert.NotEqual(t, ecs.Nil, e)
			assert.Greater(t, e, prev)
			assert.False(t, seen[e], "id %d issued twice", e)
			seen[e] = true
			prev = e
		}
		assert.Equal(t, uint64(1000), reg.Len())
	})

	t.Run("first id is one", func(t *testing.T) {
		_, reg := newWorld()
		assert.Equal(t, ecs.Entity(1), reg.Create())
	})

	t.Run("ids are not reused after destroy", func(t *testing.T) {
		c, reg := newWorld()
		a := reg.Create()
		ecs.Add(c, a, Position{})
		reg.Destroy(a)

		b := reg.Create()
		assert.NotEqual(t, a, b)
		assert.Greater(t, b, a)
	})

	t.Run("a catalog accepts one registry", func(t *testing.T) {
		c, _ := newWorld()
		assert.Panics(t, func() { ecs.NewRegistry(c) })
	})
}

func TestRegistryIssued(t *testing.T) {
	_, reg := newWorld()
	e := reg.Create()

	assert.True(t, reg.Issued(e))
	assert.False(t, reg.Issued(ecs.Nil))
	assert.False(t, reg.Issued(e+1))

	reg.Destroy(e)
	assert.True(t, reg.Issued(e), "issued does not track liveness")
}

func TestRegistryDestroy(t *testing.T) {
	t.Run("removes every kind", func(t *testing.T) {
		c, reg := newWorld()
		e := reg.Create()
		other := reg.Create()
		ecs.Add(c, e, Position{X: 1})
		ecs.Add(c, e, Velocity{DX: 2})
		ecs.Add(c, e, Health{Current: 3})
		ecs.Add(c, other, Position{X: 9})

		reg.Destroy(e)

		_, err := ecs.Get[Position](c, e)
		assert.True(t, errors.Is(err, ecs.ErrComponentNotFound))
		_, err = ecs.Get[Velocity](c, e)
		assert.True(t, errors.Is(err, ecs.ErrComponentNotFound))
		_, err = ecs.Get[Health](c, e)
		assert.True(t, errors.Is(err, ecs.ErrComponentNotFound))

		pos, err := ecs.Get[Position](c, other)
		require.NoError(t, err)
		assert.Equal(t, float32(9), pos.X)
		assert.Equal(t, uint64(1), reg.Destroyed())
	})

	t.Run("is idempotent", func(t *testing.T) {
		c, reg := newWorld()
		e := reg.Create()
		ecs.Add(c, e, Position{})

		reg.Destroy(e)
		reg.Destroy(e)
		assert.Equal(t, uint64(1), reg.Destroyed())
		assert.False(t, ecs.Has[Position](c, e))
	})

	t.Run("unknown ids are a no-op", func(t *testing.T) {
		c, reg := newWorld()
		e := reg.Create()
		ecs.Add(c, e, Position{})

		reg.Destroy(ecs.Nil)
		reg.Destroy(e + 100)
		assert.True(t, ecs.Has[Position](c, e))
		assert.Equal(t, uint64(0), reg.Destroyed())
	})

	t.Run("entity without components", func(t *testing.T) {
		_, reg := newWorld()
		e := reg.Create()
		assert.NotPanics(t, func() { reg.Destroy(e) })
		assert.Equal(t, uint64(0), reg.Destroyed())
	})
}

func TestEntityString(t *testing.T) {
	assert.Equal(t, "entity(42)", ecs.Entity(42).String())
	assert.Equal(t, "ecs_test.Position", ecs.KindOf[Position]().String())
	assert.Equal(t, "<nil>", ecs.Kind{}.String())
}
